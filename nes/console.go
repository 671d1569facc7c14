package nes

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path"
	"strings"
)

const (
	ppuRegistersSize = 8
	ioRegistersSize  = 32
	expRomSize       = 8160
	sramSize         = 8192
	prgBankSize      = 16384
	prgRomSize       = 16384 * 2 //TODO
)

type Console struct {
	cartridge   *cartridge
	ram         *ram
	cpu         *cpu
	apu         *apu
	ppu         *ppu
	controller1 *controller
	controller2 *controller

	bus *sysBus

	openFiles []*os.File
}

// NewConsole wires up a complete, cartridge-less machine: RAM, both
// controller ports, PPU, APU and CPU bound to a shared bus. pc overrides the
// CPU's post-reset program counter (mostly for test ROMs that don't rely on
// the reset vector); sampleRate is the APU's output rate, and debugOut, when
// non-nil, receives a disassembly trace of every instruction executed.
func NewConsole(sampleRate float32, pc uint16, debugOut io.Writer) *Console {
	console := &Console{}

	wram := newRam()
	ctrl1 := &controller{}
	ctrl2 := &controller{}
	ppu := newPpu()
	apu := newApu(4096, sampleRate, console.wavFile)
	cpu := newCpu(debugOut, ppu, apu)
	ppu.cpu = cpu

	bus := newSysBus(wram, cpu, ppu, apu, ctrl1, ctrl2)
	apu.bus = bus

	if pc != 0 {
		cpu.setPC(pc)
	}
	cpu.cycles = 7 //TODO

	console.ram = wram
	console.cpu = cpu
	console.apu = apu
	console.ppu = ppu
	console.controller1 = ctrl1
	console.controller2 = ctrl2
	console.bus = bus

	return console
}

// newSysBus assembles the shared bus each component talks through; kept
// separate from NewConsole so the wiring step can be read (and eventually
// tested) independently of sample-rate/debug-output plumbing.
func newSysBus(wram *ram, cpu *cpu, ppu *ppu, apu *apu, ctrl1, ctrl2 *controller) *sysBus {
	return &sysBus{
		ram:   wram,
		cpu:   cpu,
		apu:   apu,
		ppu:   ppu,
		ctrl1: ctrl1,
		ctrl2: ctrl2,
	}
}

// wavFile opens a fresh per-channel WAV file for the APU's optional audio
// debug recording, tracking it so Close can clean up afterward.
func (c *Console) wavFile(channel string) (io.WriteSeeker, error) {
	name := "TODO"
	dir, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	f, err := ioutil.TempFile(dir, strings.TrimSuffix(path.Base(name), path.Ext(name))+"_"+channel+"_*.wav")
	if err != nil {
		return nil, err
	}

	c.openFiles = append(c.openFiles, f)
	return f, nil
}

func (c *Console) Empty() bool {
	return c.cartridge == nil
}

func (c *Console) load(cartridge *cartridge) {
	first := c.cartridge == nil
	c.cartridge = cartridge
	c.bus.cartridge = cartridge
	c.ppu.cartridge = cartridge

	if first {
		// A pc passed to NewConsole takes precedence over the reset vector.
		if c.cpu.pc == resetAddr {
			c.cpu.init(c.bus)
		}
		return
	}

	c.Reset()
}

func (c *Console) LoadPath(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("unable to open rom: %s", err)
	}
	defer f.Close()

	cart, err := loadRom(f)
	if err != nil {
		return err
	}

	c.load(cart)
	return nil
}

func (c *Console) LoadRom(rom io.Reader) error {
	cart, err := loadRom(rom)
	if err != nil {
		return err
	}

	c.load(cart)
	return nil
}

func (c *Console) StartRecording() error {
	return c.apu.mixer.startRecording()
}

func (c *Console) PauseRecording() {
	c.apu.mixer.pauseRecording()
}

func (c *Console) UnpauseRecording() {
	c.apu.mixer.unpauseRecording()
}

func (c *Console) StopRecording() error {
	return c.apu.mixer.stopRecording()
}

func (c *Console) Close() error {
	if err := c.StopRecording(); err != nil {
		return err
	}

	var err error
	for _, f := range c.openFiles {
		err = f.Close()
	}

	return err
}

// Reset performs a soft reset: the CPU restarts from the reset vector and
// the APU reinitializes, but work RAM and cartridge state are left alone,
// matching the NES's reset line behavior.
func (c *Console) Reset() {
	c.cpu.reset(c.bus)
	c.apu.reset()
}

// PowerCycle simulates cutting power and reapplying it. Unlike Reset, it
// also zeroes work RAM before restarting the CPU, since a real NES's RAM
// does not reliably survive a power-down.
func (c *Console) PowerCycle() {
	c.ram.clear()
	c.cpu.reset(c.bus)
	c.apu.reset()
}

// Step executes a single cpu instruction and returns the cycle count it
// took to run.
func (c *Console) Step() uint64 {
	return c.cpu.execute(c.bus)
}

func (c *Console) StepFrame() {
	if c.Empty() {
		return
	}

	frame := c.ppu.frame
	for frame == c.ppu.frame {
		c.cpu.execute(c.bus)
	}
}

func (c *Console) Press(ctrl int, button Button) {
	switch ctrl {
	case 0:
		c.controller1.press(button)
	case 1:
		c.controller2.press(button)
	}
}

func (c *Console) Release(ctrl int, button Button) {
	switch ctrl {
	case 0:
		c.controller1.release(button)
	case 1:
		c.controller2.release(button)
	}
}

func (c *Console) Buffer() []byte {
	return c.ppu.buffer
}

func (c *Console) AudioChannel() <-chan float32 {
	return c.apu.channel()
}

func (c *Console) DrawNametables(buf []byte) {
	c.ppu.drawNametables(buf)
}

func (c *Console) DrawPatternTables(buf []byte, palette byte) {
	c.ppu.drawPatternTables(buf, palette)
}

func (c *Console) Read(addr uint16) byte {
	return c.bus.read(addr)
}

func (c *Console) Write(addr uint16, v byte) {
	c.bus.write(addr, v)
}

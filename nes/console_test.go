package nes

import (
	"bufio"
	"bytes"
	"io"
	"io/ioutil"
	"os"
	"testing"
)

// minimalNrom builds a one-bank NROM iNES image whose reset vector points at
// $C000, where prg holds the given program bytes padded out with NOPs.
func minimalNrom(program []byte) []byte {
	header := []byte{'N', 'E', 'S', 0x1A, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}

	prg := make([]byte, prgMul)
	for i := range prg {
		prg[i] = 0xEA // NOP
	}
	copy(prg, program)
	prg[0x3FFC] = 0x00 // reset vector low -> $C000
	prg[0x3FFD] = 0xC0 // reset vector high

	return append(header, prg...)
}

func TestConsole_loadAndStep(t *testing.T) {
	rom := minimalNrom([]byte{0x4C, 0x00, 0xC0}) // JMP $C000, an infinite loop

	console := NewConsole(44100, 0, nil)
	if err := console.LoadRom(bytes.NewReader(rom)); err != nil {
		t.Fatalf("LoadRom() error = %v", err)
	}

	if console.Empty() {
		t.Fatal("console reports empty after loading a cartridge")
	}

	frame := console.ppu.frame
	console.StepFrame()
	if console.ppu.frame == frame {
		t.Error("StepFrame() did not advance the ppu frame counter")
	}

	console.Write(0x0000, 0x42)
	if got := console.Read(0x0000); got != 0x42 {
		t.Errorf("Read(0x0000) = %#x, want 0x42", got)
	}

	console.Press(0, A)
	console.Release(0, A)

	if err := console.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestConsole_reset(t *testing.T) {
	rom := minimalNrom([]byte{0x4C, 0x00, 0xC0})

	console := NewConsole(44100, 0, nil)
	if err := console.LoadRom(bytes.NewReader(rom)); err != nil {
		t.Fatalf("LoadRom() error = %v", err)
	}

	console.StepFrame()
	console.Reset()

	if console.cpu.pc != 0xC000 {
		t.Errorf("Reset(): pc = %#x, want 0xC000", console.cpu.pc)
	}
}

func TestConsole_nestest(t *testing.T) {
	testRom, err := os.Open("../roms/cpu/nestest/nestest.nes")
	if err != nil {
		t.Skip("nestest fixture not bundled in this workspace")
	}
	defer testRom.Close()

	buf := bytes.NewBuffer(nil)
	out := io.MultiWriter(buf, ioutil.Discard)

	console := NewConsole(44100, 0xC000, out)
	if err := console.LoadRom(testRom); err != nil {
		t.Fatalf("unable to load rom: %s", err)
	}

	log, err := os.Open("../roms/cpu/nestest/nestest.log.txt")
	if err != nil {
		t.Skip("nestest log fixture not bundled in this workspace")
	}
	defer log.Close()

	scanner := bufio.NewScanner(log)

	for scanner.Scan() {
		want := scanner.Bytes()
		want = append(want, '\n')

		console.Step()

		t1, t2 := console.Read(0x02), console.Read(0x03)
		if t1 != 0 || t2 != 0 {
			t.Fatalf("%02x%02x", t1, t2)
		}

		if got := buf.Bytes(); !bytes.Equal(got, want) {
			t.Fatalf("nestest: want %q, got %q", want, got)
		}

		buf.Reset()
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("unable to read log: %v", err)
	}
}

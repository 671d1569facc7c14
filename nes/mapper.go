package nes

// nrom implements mapper 0: fixed 16 or 32 KiB PRG, fixed 8 KiB CHR, no
// bank switching. A 16 KiB image is mirrored into both PRG windows.
type nrom struct {
	prg    []byte
	chr    []byte
	chrRAM bool
	wram   [0x2000]byte
	mirror mirrorMode
}

func newNrom(prg, chr []byte, chrRAM bool, mirror mirrorMode) *nrom {
	return &nrom{prg: prg, chr: chr, chrRAM: chrRAM, mirror: mirror}
}

func (m *nrom) cpuRead(addr uint16) byte {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		return m.wram[addr-0x6000]
	case addr >= 0x8000:
		return m.prg[int(addr-0x8000)%len(m.prg)]
	}
	return 0
}

func (m *nrom) cpuWrite(addr uint16, v byte) {
	if addr >= 0x6000 && addr < 0x8000 {
		m.wram[addr-0x6000] = v
	}
	// PRG-ROM writes are no-ops: NROM has no bank registers.
}

func (m *nrom) ppuRead(addr uint16) byte {
	if int(addr) < len(m.chr) {
		return m.chr[addr]
	}
	return 0
}

func (m *nrom) ppuWrite(addr uint16, v byte) {
	if m.chrRAM && int(addr) < len(m.chr) {
		m.chr[addr] = v
	}
}

func (m *nrom) mirroring() mirrorMode      { return m.mirror }
func (m *nrom) tickPPUAddress(addr uint16) {}

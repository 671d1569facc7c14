package nes

// mmc1 implements mapper 1: a 5-bit serial shift register feeding four
// registers (control, chrBank0, chrBank1, prgBank). PRG mode selects
// between a 32 KiB switchable window and 16 KiB fix-first/fix-last
// windows; CHR mode selects between one 8 KiB bank and two 4 KiB banks.
// Mirroring is controlled by the control register rather than fixed at
// load, so mirroring() consults it instead of a constructor argument.
type mmc1 struct {
	prg    []byte
	chr    []byte
	chrRAM bool
	wram   [0x2000]byte

	control  byte
	chrBank0 byte
	chrBank1 byte
	prgBank  byte

	shiftRegister byte
	writeCount    byte
}

func newMmc1(prg, chr []byte, chrRAM bool, mirror mirrorMode) *mmc1 {
	control := byte(0x0C)
	if mirror == vertical {
		control |= 0x02
	} else {
		control |= 0x03
	}
	return &mmc1{prg: prg, chr: chr, chrRAM: chrRAM, control: control}
}

func (m *mmc1) prgBankMode() byte { return (m.control >> 2) & 3 }

func (m *mmc1) cpuRead(addr uint16) byte {
	if addr >= 0x6000 && addr < 0x8000 {
		return m.wram[addr-0x6000]
	}
	if addr < 0x8000 {
		return 0
	}

	numBanks := uint32(len(m.prg) / 0x4000)
	var final uint32
	switch m.prgBankMode() {
	case 0, 1: // switch 32 KiB at $8000
		bank := uint32(m.prgBank&0x0E) >> 1
		if numBanks/2 > 0 {
			bank %= numBanks / 2
		}
		final = bank*0x8000 + uint32(addr&0x7FFF)
	case 2: // fix first bank at $8000, switch 16 KiB at $C000
		var bank uint32
		if addr < 0xC000 {
			bank = 0
		} else {
			bank = uint32(m.prgBank & 0x0F)
			if numBanks > 0 {
				bank %= numBanks
			}
		}
		final = bank*0x4000 + uint32(addr&0x3FFF)
	case 3: // switch 16 KiB at $8000, fix last bank at $C000
		var bank uint32
		if addr < 0xC000 {
			bank = uint32(m.prgBank & 0x0F)
			if numBanks > 0 {
				bank %= numBanks
			}
		} else {
			bank = numBanks - 1
		}
		final = bank*0x4000 + uint32(addr&0x3FFF)
	}
	if int(final) >= len(m.prg) {
		return 0
	}
	return m.prg[final]
}

func (m *mmc1) cpuWrite(addr uint16, v byte) {
	if addr >= 0x6000 && addr < 0x8000 {
		m.wram[addr-0x6000] = v
		return
	}
	if addr < 0x8000 {
		return
	}

	if v&0x80 != 0 {
		m.shiftRegister = 0
		m.writeCount = 0
		m.control |= 0x0C
		return
	}

	m.shiftRegister = (m.shiftRegister >> 1) | (v&1)<<4
	m.writeCount++

	if m.writeCount == 5 {
		switch (addr >> 13) & 3 {
		case 0:
			m.control = m.shiftRegister
		case 1:
			m.chrBank0 = m.shiftRegister
		case 2:
			m.chrBank1 = m.shiftRegister
		case 3:
			m.prgBank = m.shiftRegister
		}
		m.shiftRegister = 0
		m.writeCount = 0
	}
}

func (m *mmc1) chrBankAddr(addr uint16) uint32 {
	chrMode := (m.control >> 4) & 1
	if chrMode == 0 {
		// 8 KiB mode: low bit of chrBank0 is ignored.
		numBanks := uint32(len(m.chr) / 0x2000)
		bank := uint32(m.chrBank0&0x1E) >> 1
		if numBanks > 0 {
			bank %= numBanks
		}
		return bank*0x2000 + uint32(addr&0x1FFF)
	}

	numBanks := uint32(len(m.chr) / 0x1000)
	var bank uint32
	if addr < 0x1000 {
		bank = uint32(m.chrBank0)
	} else {
		bank = uint32(m.chrBank1)
	}
	if numBanks > 0 {
		bank %= numBanks
	}
	return bank*0x1000 + uint32(addr&0x0FFF)
}

func (m *mmc1) ppuRead(addr uint16) byte {
	final := m.chrBankAddr(addr)
	if int(final) >= len(m.chr) {
		return 0
	}
	return m.chr[final]
}

func (m *mmc1) ppuWrite(addr uint16, v byte) {
	if !m.chrRAM {
		return
	}
	final := m.chrBankAddr(addr)
	if int(final) < len(m.chr) {
		m.chr[final] = v
	}
}

func (m *mmc1) mirroring() mirrorMode {
	switch m.control & 3 {
	case 2:
		return vertical
	default:
		// One-screen modes (0, 1) have no horizontal/vertical equivalent in
		// this core's two-mode model; the closest observable behavior is
		// horizontal, same as mode 3.
		return horizontal
	}
}

func (m *mmc1) tickPPUAddress(addr uint16) {}

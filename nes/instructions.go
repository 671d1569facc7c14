package nes

// addressingMode identifies how an instruction's operand is located.
//
// Quick reference (operand column omitted where the mode takes none):
//
//	immediate            1-byte literal follows the opcode                  LDA #$07
//	zeroPage             1-byte address, page $00 only                      LDA $EE
//	absolute             2-byte address, full map                          LDA $16A0
//	relative             1-byte signed displacement from PC, branches only  BEQ $04
//	implied              no operand, fixed by the opcode                    TAX
//	accumulator           implied, but targets A specifically                ASL
//	indexedX/indexedY    absolute address plus X or Y                      STA $1000,X
//	zeroPageIndexedX/Y   zeroPage address plus X or Y, wraps within page   STA $00,X
//	indirect             2-byte pointer holds the real address (JMP only)  JMP ($0020)
//	preIndexedIndirect   zeroPage ptr selected by operand+X, then deref    LDA ($40,X)
//	postIndexedIndirect  zeroPage ptr deref'd first, then offset by Y      LDA ($46),Y
//
// indexedX, indexedY, and postIndexedIndirect cost an extra "oops" cycle
// whenever the indexing crosses a page boundary on a read, or unconditionally
// on a write; that cost is the dummy read the CPU's resolveAddress issues
// for the mode and the instruction's kind. instruction.pageCycles records
// the documented penalty but is not read by the CPU.
type addressingMode byte

const (
	immediate addressingMode = iota
	zeroPage
	absolute
	relative
	implied
	accumulator
	indexedX
	indexedY
	zeroPageIndexedX
	zeroPageIndexedY
	indirect
	preIndexedIndirect
	postIndexedIndirect
)

// instructionKind says whether an opcode's addressing step needs to read the
// target operand, write to it, or both (read-modify-write). The CPU's address
// resolution uses it to pick the dummy reads of the indexed modes; the
// operand fetch and the write-back happen in each opcode's handler.
// Branch/flag/transfer opcodes that operate purely on
// registers leave this at its zero value, noKind.
type instructionKind byte

const (
	noKind instructionKind = iota
	read
	write
	readModWrite
)

// instruction is one row of the 6502 opcode matrix: everything the CPU needs
// to fetch, time, and execute a single byte value without branching on its
// mnemonic.
type instruction struct {
	opCode     byte
	name       string
	mode       addressingMode
	kind       instructionKind
	size       byte
	cycles     byte
	pageCycles byte
	illegal    bool
}

// op builds one instruction row positionally; it exists so the 256-entry
// matrix below reads as a dense grid instead of 256 repetitions of every
// field name.
func op(opCode byte, name string, mode addressingMode, kind instructionKind, size, cycles, pageCycles byte, illegal bool) instruction {
	return instruction{opCode: opCode, name: name, mode: mode, kind: kind, size: size, cycles: cycles, pageCycles: pageCycles, illegal: illegal}
}

// instructions is the full 256-opcode matrix, including the unofficial
// ("illegal") opcodes that early cartridges and test ROMs rely on. Rows are
// grouped in blocks of 16 to mirror the conventional opcode chart layout
// ($x0-$xF per row).
var instructions = [256]instruction{
	// $00-$0F
	op(0x00, "BRK", implied, noKind, 2, 7, 0, false),
	op(0x01, "ORA", preIndexedIndirect, read, 2, 6, 0, false),
	op(0x02, "KIL", implied, noKind, 0, 2, 0, true),
	op(0x03, "SLO", preIndexedIndirect, readModWrite, 2, 8, 0, true),
	op(0x04, "NOP", zeroPage, read, 2, 3, 0, true),
	op(0x05, "ORA", zeroPage, read, 2, 3, 0, false),
	op(0x06, "ASL", zeroPage, readModWrite, 2, 5, 0, false),
	op(0x07, "SLO", zeroPage, readModWrite, 2, 5, 0, true),
	op(0x08, "PHP", implied, noKind, 1, 3, 0, false),
	op(0x09, "ORA", immediate, read, 2, 2, 0, false),
	op(0x0A, "ASL", accumulator, readModWrite, 1, 2, 0, false),
	op(0x0B, "ANC", immediate, noKind, 0, 2, 0, true),
	op(0x0C, "NOP", absolute, read, 3, 4, 0, true),
	op(0x0D, "ORA", absolute, read, 3, 4, 0, false),
	op(0x0E, "ASL", absolute, readModWrite, 3, 6, 0, false),
	op(0x0F, "SLO", absolute, readModWrite, 3, 6, 0, true),

	// $10-$1F
	op(0x10, "BPL", relative, noKind, 2, 2, 1, false),
	op(0x11, "ORA", postIndexedIndirect, read, 2, 5, 1, false),
	op(0x12, "KIL", implied, noKind, 0, 2, 0, true),
	op(0x13, "SLO", postIndexedIndirect, readModWrite, 2, 8, 0, true),
	op(0x14, "NOP", zeroPageIndexedX, read, 2, 4, 0, true),
	op(0x15, "ORA", zeroPageIndexedX, read, 2, 4, 0, false),
	op(0x16, "ASL", zeroPageIndexedX, readModWrite, 2, 6, 0, false),
	op(0x17, "SLO", zeroPageIndexedX, readModWrite, 2, 6, 0, true),
	op(0x18, "CLC", implied, noKind, 1, 2, 0, false),
	op(0x19, "ORA", indexedY, read, 3, 4, 1, false),
	op(0x1A, "NOP", implied, read, 1, 2, 0, true),
	op(0x1B, "SLO", indexedY, readModWrite, 3, 7, 0, true),
	op(0x1C, "NOP", indexedX, read, 3, 4, 1, true),
	op(0x1D, "ORA", indexedX, read, 3, 4, 1, false),
	op(0x1E, "ASL", indexedX, readModWrite, 3, 7, 0, false),
	op(0x1F, "SLO", indexedX, readModWrite, 3, 7, 0, true),

	// $20-$2F
	op(0x20, "JSR", absolute, noKind, 3, 6, 0, false),
	op(0x21, "AND", preIndexedIndirect, read, 2, 6, 0, false),
	op(0x22, "KIL", implied, noKind, 0, 2, 0, true),
	op(0x23, "RLA", preIndexedIndirect, readModWrite, 2, 8, 0, true),
	op(0x24, "BIT", zeroPage, read, 2, 3, 0, false),
	op(0x25, "AND", zeroPage, read, 2, 3, 0, false),
	op(0x26, "ROL", zeroPage, readModWrite, 2, 5, 0, false),
	op(0x27, "RLA", zeroPage, readModWrite, 2, 5, 0, true),
	op(0x28, "PLP", implied, noKind, 1, 4, 0, false),
	op(0x29, "AND", immediate, read, 2, 2, 0, false),
	op(0x2A, "ROL", accumulator, readModWrite, 1, 2, 0, false),
	op(0x2B, "ANC", immediate, noKind, 0, 2, 0, true),
	op(0x2C, "BIT", absolute, read, 3, 4, 0, false),
	op(0x2D, "AND", absolute, read, 3, 4, 0, false),
	op(0x2E, "ROL", absolute, readModWrite, 3, 6, 0, false),
	op(0x2F, "RLA", absolute, readModWrite, 3, 6, 0, true),

	// $30-$3F
	op(0x30, "BMI", relative, noKind, 2, 2, 1, false),
	op(0x31, "AND", postIndexedIndirect, read, 2, 5, 1, false),
	op(0x32, "KIL", implied, noKind, 0, 2, 0, true),
	op(0x33, "RLA", postIndexedIndirect, readModWrite, 2, 8, 0, true),
	op(0x34, "NOP", zeroPageIndexedX, read, 2, 4, 0, true),
	op(0x35, "AND", zeroPageIndexedX, read, 2, 4, 0, false),
	op(0x36, "ROL", zeroPageIndexedX, readModWrite, 2, 6, 0, false),
	op(0x37, "RLA", zeroPageIndexedX, readModWrite, 2, 6, 0, true),
	op(0x38, "SEC", implied, noKind, 1, 2, 0, false),
	op(0x39, "AND", indexedY, read, 3, 4, 1, false),
	op(0x3A, "NOP", implied, read, 1, 2, 0, true),
	op(0x3B, "RLA", indexedY, readModWrite, 3, 7, 0, true),
	op(0x3C, "NOP", indexedX, read, 3, 4, 1, true),
	op(0x3D, "AND", indexedX, read, 3, 4, 1, false),
	op(0x3E, "ROL", indexedX, readModWrite, 3, 7, 0, false),
	op(0x3F, "RLA", indexedX, readModWrite, 3, 7, 0, true),

	// $40-$4F
	op(0x40, "RTI", implied, noKind, 1, 6, 0, false),
	op(0x41, "EOR", preIndexedIndirect, read, 2, 6, 0, false),
	op(0x42, "KIL", implied, noKind, 0, 2, 0, true),
	op(0x43, "SRE", preIndexedIndirect, readModWrite, 2, 8, 0, true),
	op(0x44, "NOP", zeroPage, read, 2, 3, 0, true),
	op(0x45, "EOR", zeroPage, read, 2, 3, 0, false),
	op(0x46, "LSR", zeroPage, readModWrite, 2, 5, 0, false),
	op(0x47, "SRE", zeroPage, readModWrite, 2, 5, 0, true),
	op(0x48, "PHA", implied, noKind, 1, 3, 0, false),
	op(0x49, "EOR", immediate, read, 2, 2, 0, false),
	op(0x4A, "LSR", accumulator, readModWrite, 1, 2, 0, false),
	op(0x4B, "ALR", immediate, noKind, 0, 2, 0, true),
	op(0x4C, "JMP", absolute, noKind, 3, 3, 0, false),
	op(0x4D, "EOR", absolute, read, 3, 4, 0, false),
	op(0x4E, "LSR", absolute, readModWrite, 3, 6, 0, false),
	op(0x4F, "SRE", absolute, readModWrite, 3, 6, 0, true),

	// $50-$5F
	op(0x50, "BVC", relative, noKind, 2, 2, 1, false),
	op(0x51, "EOR", postIndexedIndirect, read, 2, 5, 1, false),
	op(0x52, "KIL", implied, noKind, 0, 2, 0, true),
	op(0x53, "SRE", postIndexedIndirect, readModWrite, 2, 8, 0, true),
	op(0x54, "NOP", zeroPageIndexedX, read, 2, 4, 0, true),
	op(0x55, "EOR", zeroPageIndexedX, read, 2, 4, 0, false),
	op(0x56, "LSR", zeroPageIndexedX, readModWrite, 2, 6, 0, false),
	op(0x57, "SRE", zeroPageIndexedX, readModWrite, 2, 6, 0, true),
	op(0x58, "CLI", implied, noKind, 1, 2, 0, false),
	op(0x59, "EOR", indexedY, read, 3, 4, 1, false),
	op(0x5A, "NOP", implied, read, 1, 2, 0, true),
	op(0x5B, "SRE", indexedY, readModWrite, 3, 7, 0, true),
	op(0x5C, "NOP", indexedX, read, 3, 4, 1, true),
	op(0x5D, "EOR", indexedX, read, 3, 4, 1, false),
	op(0x5E, "LSR", indexedX, readModWrite, 3, 7, 0, false),
	op(0x5F, "SRE", indexedX, readModWrite, 3, 7, 0, true),

	// $60-$6F
	op(0x60, "RTS", implied, noKind, 1, 6, 0, false),
	op(0x61, "ADC", preIndexedIndirect, read, 2, 6, 0, false),
	op(0x62, "KIL", implied, noKind, 0, 2, 0, true),
	op(0x63, "RRA", preIndexedIndirect, readModWrite, 2, 8, 0, true),
	op(0x64, "NOP", zeroPage, read, 2, 3, 0, true),
	op(0x65, "ADC", zeroPage, read, 2, 3, 0, false),
	op(0x66, "ROR", zeroPage, readModWrite, 2, 5, 0, false),
	op(0x67, "RRA", zeroPage, readModWrite, 2, 5, 0, true),
	op(0x68, "PLA", implied, noKind, 1, 4, 0, false),
	op(0x69, "ADC", immediate, read, 2, 2, 0, false),
	op(0x6A, "ROR", accumulator, readModWrite, 1, 2, 0, false),
	op(0x6B, "ARR", immediate, noKind, 0, 2, 0, true),
	op(0x6C, "JMP", indirect, noKind, 3, 5, 0, false),
	op(0x6D, "ADC", absolute, read, 3, 4, 0, false),
	op(0x6E, "ROR", absolute, readModWrite, 3, 6, 0, false),
	op(0x6F, "RRA", absolute, readModWrite, 3, 6, 0, true),

	// $70-$7F
	op(0x70, "BVS", relative, noKind, 2, 2, 1, false),
	op(0x71, "ADC", postIndexedIndirect, read, 2, 5, 1, false),
	op(0x72, "KIL", implied, noKind, 0, 2, 0, true),
	op(0x73, "RRA", postIndexedIndirect, readModWrite, 2, 8, 0, true),
	op(0x74, "NOP", zeroPageIndexedX, read, 2, 4, 0, true),
	op(0x75, "ADC", zeroPageIndexedX, read, 2, 4, 0, false),
	op(0x76, "ROR", zeroPageIndexedX, readModWrite, 2, 6, 0, false),
	op(0x77, "RRA", zeroPageIndexedX, readModWrite, 2, 6, 0, true),
	op(0x78, "SEI", implied, noKind, 1, 2, 0, false),
	op(0x79, "ADC", indexedY, read, 3, 4, 1, false),
	op(0x7A, "NOP", implied, read, 1, 2, 0, true),
	op(0x7B, "RRA", indexedY, readModWrite, 3, 7, 0, true),
	op(0x7C, "NOP", indexedX, read, 3, 4, 1, true),
	op(0x7D, "ADC", indexedX, read, 3, 4, 1, false),
	op(0x7E, "ROR", indexedX, readModWrite, 3, 7, 0, false),
	op(0x7F, "RRA", indexedX, readModWrite, 3, 7, 0, true),

	// $80-$8F
	op(0x80, "NOP", immediate, read, 2, 2, 0, true),
	op(0x81, "STA", preIndexedIndirect, write, 2, 6, 0, false),
	op(0x82, "NOP", immediate, read, 0, 2, 0, true),
	op(0x83, "SAX", preIndexedIndirect, write, 2, 6, 0, true),
	op(0x84, "STY", zeroPage, write, 2, 3, 0, false),
	op(0x85, "STA", zeroPage, write, 2, 3, 0, false),
	op(0x86, "STX", zeroPage, write, 2, 3, 0, false),
	op(0x87, "SAX", zeroPage, write, 2, 3, 0, true),
	op(0x88, "DEY", implied, noKind, 1, 2, 0, false),
	op(0x89, "NOP", immediate, read, 0, 2, 0, true),
	op(0x8A, "TXA", implied, noKind, 1, 2, 0, false),
	op(0x8B, "XAA", immediate, noKind, 0, 2, 0, true),
	op(0x8C, "STY", absolute, write, 3, 4, 0, false),
	op(0x8D, "STA", absolute, write, 3, 4, 0, false),
	op(0x8E, "STX", absolute, write, 3, 4, 0, false),
	op(0x8F, "SAX", absolute, write, 3, 4, 0, true),

	// $90-$9F
	op(0x90, "BCC", relative, noKind, 2, 2, 1, false),
	op(0x91, "STA", postIndexedIndirect, write, 2, 6, 0, false),
	op(0x92, "KIL", implied, noKind, 0, 2, 0, true),
	op(0x93, "AHX", postIndexedIndirect, noKind, 0, 6, 0, true),
	op(0x94, "STY", zeroPageIndexedX, write, 2, 4, 0, false),
	op(0x95, "STA", zeroPageIndexedX, write, 2, 4, 0, false),
	op(0x96, "STX", zeroPageIndexedY, write, 2, 4, 0, false),
	op(0x97, "SAX", zeroPageIndexedY, write, 2, 4, 0, true),
	op(0x98, "TYA", implied, noKind, 1, 2, 0, false),
	op(0x99, "STA", indexedY, write, 3, 5, 0, false),
	op(0x9A, "TXS", implied, noKind, 1, 2, 0, false),
	op(0x9B, "TAS", indexedY, noKind, 0, 5, 0, true),
	op(0x9C, "SHY", indexedX, write, 0, 5, 0, true),
	op(0x9D, "STA", indexedX, write, 3, 5, 0, false),
	op(0x9E, "SHX", indexedY, write, 0, 5, 0, true),
	op(0x9F, "AHX", indexedY, noKind, 0, 5, 0, true),

	// $A0-$AF
	op(0xA0, "LDY", immediate, read, 2, 2, 0, false),
	op(0xA1, "LDA", preIndexedIndirect, read, 2, 6, 0, false),
	op(0xA2, "LDX", immediate, read, 2, 2, 0, false),
	op(0xA3, "LAX", preIndexedIndirect, read, 2, 6, 0, true),
	op(0xA4, "LDY", zeroPage, read, 2, 3, 0, false),
	op(0xA5, "LDA", zeroPage, read, 2, 3, 0, false),
	op(0xA6, "LDX", zeroPage, read, 2, 3, 0, false),
	op(0xA7, "LAX", zeroPage, read, 2, 3, 0, true),
	op(0xA8, "TAY", implied, noKind, 1, 2, 0, false),
	op(0xA9, "LDA", immediate, read, 2, 2, 0, false),
	op(0xAA, "TAX", implied, noKind, 1, 2, 0, false),
	op(0xAB, "LAX", immediate, read, 0, 2, 0, true),
	op(0xAC, "LDY", absolute, read, 3, 4, 0, false),
	op(0xAD, "LDA", absolute, read, 3, 4, 0, false),
	op(0xAE, "LDX", absolute, read, 3, 4, 0, false),
	op(0xAF, "LAX", absolute, read, 3, 4, 0, true),

	// $B0-$BF
	op(0xB0, "BCS", relative, noKind, 2, 2, 1, false),
	op(0xB1, "LDA", postIndexedIndirect, read, 2, 5, 1, false),
	op(0xB2, "KIL", implied, noKind, 0, 2, 0, true),
	op(0xB3, "LAX", postIndexedIndirect, read, 2, 5, 1, true),
	op(0xB4, "LDY", zeroPageIndexedX, read, 2, 4, 0, false),
	op(0xB5, "LDA", zeroPageIndexedX, read, 2, 4, 0, false),
	op(0xB6, "LDX", zeroPageIndexedY, read, 2, 4, 0, false),
	op(0xB7, "LAX", zeroPageIndexedY, read, 2, 4, 0, true),
	op(0xB8, "CLV", implied, noKind, 1, 2, 0, false),
	op(0xB9, "LDA", indexedY, read, 3, 4, 1, false),
	op(0xBA, "TSX", implied, noKind, 1, 2, 0, false),
	op(0xBB, "LAS", indexedY, noKind, 0, 4, 1, true),
	op(0xBC, "LDY", indexedX, read, 3, 4, 1, false),
	op(0xBD, "LDA", indexedX, read, 3, 4, 1, false),
	op(0xBE, "LDX", indexedY, read, 3, 4, 1, false),
	op(0xBF, "LAX", indexedY, read, 3, 4, 1, true),

	// $C0-$CF
	op(0xC0, "CPY", immediate, noKind, 2, 2, 0, false),
	op(0xC1, "CMP", preIndexedIndirect, read, 2, 6, 0, false),
	op(0xC2, "NOP", immediate, read, 0, 2, 0, true),
	op(0xC3, "DCP", preIndexedIndirect, readModWrite, 2, 8, 0, true),
	op(0xC4, "CPY", zeroPage, noKind, 2, 3, 0, false),
	op(0xC5, "CMP", zeroPage, read, 2, 3, 0, false),
	op(0xC6, "DEC", zeroPage, readModWrite, 2, 5, 0, false),
	op(0xC7, "DCP", zeroPage, readModWrite, 2, 5, 0, true),
	op(0xC8, "INY", implied, noKind, 1, 2, 0, false),
	op(0xC9, "CMP", immediate, read, 2, 2, 0, false),
	op(0xCA, "DEX", implied, noKind, 1, 2, 0, false),
	op(0xCB, "AXS", immediate, noKind, 0, 2, 0, true),
	op(0xCC, "CPY", absolute, noKind, 3, 4, 0, false),
	op(0xCD, "CMP", absolute, read, 3, 4, 0, false),
	op(0xCE, "DEC", absolute, readModWrite, 3, 6, 0, false),
	op(0xCF, "DCP", absolute, readModWrite, 3, 6, 0, true),

	// $D0-$DF
	op(0xD0, "BNE", relative, noKind, 2, 2, 1, false),
	op(0xD1, "CMP", postIndexedIndirect, read, 2, 5, 1, false),
	op(0xD2, "KIL", implied, noKind, 0, 2, 0, true),
	op(0xD3, "DCP", postIndexedIndirect, readModWrite, 2, 8, 0, true),
	op(0xD4, "NOP", zeroPageIndexedX, read, 2, 4, 0, true),
	op(0xD5, "CMP", zeroPageIndexedX, read, 2, 4, 0, false),
	op(0xD6, "DEC", zeroPageIndexedX, readModWrite, 2, 6, 0, false),
	op(0xD7, "DCP", zeroPageIndexedX, readModWrite, 2, 6, 0, true),
	op(0xD8, "CLD", implied, noKind, 1, 2, 0, false),
	op(0xD9, "CMP", indexedY, read, 3, 4, 1, false),
	op(0xDA, "NOP", implied, read, 1, 2, 0, true),
	op(0xDB, "DCP", indexedY, readModWrite, 3, 7, 0, true),
	op(0xDC, "NOP", indexedX, read, 3, 4, 1, true),
	op(0xDD, "CMP", indexedX, read, 3, 4, 1, false),
	op(0xDE, "DEC", indexedX, readModWrite, 3, 7, 0, false),
	op(0xDF, "DCP", indexedX, readModWrite, 3, 7, 0, true),

	// $E0-$EF
	op(0xE0, "CPX", immediate, noKind, 2, 2, 0, false),
	op(0xE1, "SBC", preIndexedIndirect, read, 2, 6, 0, false),
	op(0xE2, "NOP", immediate, read, 0, 2, 0, true),
	op(0xE3, "ISB", preIndexedIndirect, readModWrite, 2, 8, 0, true),
	op(0xE4, "CPX", zeroPage, noKind, 2, 3, 0, false),
	op(0xE5, "SBC", zeroPage, read, 2, 3, 0, false),
	op(0xE6, "INC", zeroPage, readModWrite, 2, 5, 0, false),
	op(0xE7, "ISB", zeroPage, readModWrite, 2, 5, 0, true),
	op(0xE8, "INX", implied, noKind, 1, 2, 0, false),
	op(0xE9, "SBC", immediate, read, 2, 2, 0, false),
	op(0xEA, "NOP", implied, read, 1, 2, 0, false),
	op(0xEB, "SBC", immediate, read, 2, 2, 0, true),
	op(0xEC, "CPX", absolute, noKind, 3, 4, 0, false),
	op(0xED, "SBC", absolute, read, 3, 4, 0, false),
	op(0xEE, "INC", absolute, readModWrite, 3, 6, 0, false),
	op(0xEF, "ISB", absolute, readModWrite, 3, 6, 0, true),

	// $F0-$FF
	op(0xF0, "BEQ", relative, noKind, 2, 2, 1, false),
	op(0xF1, "SBC", postIndexedIndirect, read, 2, 5, 1, false),
	op(0xF2, "KIL", implied, noKind, 0, 2, 0, true),
	op(0xF3, "ISB", postIndexedIndirect, readModWrite, 2, 8, 0, true),
	op(0xF4, "NOP", zeroPageIndexedX, read, 2, 4, 0, true),
	op(0xF5, "SBC", zeroPageIndexedX, read, 2, 4, 0, false),
	op(0xF6, "INC", zeroPageIndexedX, readModWrite, 2, 6, 0, false),
	op(0xF7, "ISB", zeroPageIndexedX, readModWrite, 2, 6, 0, true),
	op(0xF8, "SED", implied, noKind, 1, 2, 0, false),
	op(0xF9, "SBC", indexedY, read, 3, 4, 1, false),
	op(0xFA, "NOP", implied, read, 1, 2, 0, true),
	op(0xFB, "ISB", indexedY, readModWrite, 3, 7, 0, true),
	op(0xFC, "NOP", indexedX, read, 3, 4, 1, true),
	op(0xFD, "SBC", indexedX, read, 3, 4, 1, false),
	op(0xFE, "INC", indexedX, readModWrite, 3, 7, 0, false),
	op(0xFF, "ISB", indexedX, readModWrite, 3, 7, 0, true),
}

package nes

import (
	"io"
	"io/ioutil"
	"testing"
)

// newCPUWithRAM wires up a minimal cpu/sysBus pair backed by an NROM
// cartridge, with the given byte placed at address 0 (zero page, inside RAM)
// so the tests below can read it back as an immediate operand.
func newCPUWithRAM(operand byte) (*cpu, *sysBus) {
	prg := make([]byte, prgRomSize)
	cart := &cartridge{m: newNrom(prg, make([]byte, 8192), true, horizontal)}

	ppu := newPpu()
	apu := newApu(4096, 44100, func(string) (io.WriteSeeker, error) {
		return nil, ioutil.ErrClosedPipe
	})
	c := newCpu(nil, ppu, apu)

	bus := &sysBus{
		ram:       newRam(),
		cpu:       c,
		ppu:       ppu,
		apu:       apu,
		cartridge: cart,
		ctrl1:     &controller{},
		ctrl2:     &controller{},
	}
	ppu.cartridge = cart
	bus.ram.write(0, operand)

	return c, bus
}

func TestCPU_ADC(t *testing.T) {
	type args struct {
		a    byte
		addr uint16
		mem  byte
	}
	type want struct {
		carry    bool
		overflow bool
		a        byte
	}
	tests := []struct {
		name string
		args args
		want want
	}{
		// M7 N7 C6  C7 S7 V   Carry / Overflow                          Hex             Unsigned  Signed
		// 0  0  0   0  0  0   No unsigned carry or signed overflow      0x50+0x10=0x60  80+16=96  80+16=96
		{
			name: "no unsigned carry or signed overflow",
			args: args{a: 0x50, mem: 0x10},
			want: want{a: 0x60, carry: false, overflow: false},
		},
		// 0  0  1   0  1  1   No unsigned carry but signed overflow     0x50+0x50=0xa0  80+80=160 80+80=-96
		{
			name: "no unsigned carry but signed overflow",
			args: args{a: 0x50, mem: 0x50},
			want: want{a: 0xA0, carry: false, overflow: true},
		},
		// 0  1  0   0  1  0   No unsigned carry or signed overflow      0x50+0x90=0xe0  80+144=224 80+-112=-32
		{
			name: "no unsigned carry or signed overflow, negative operand",
			args: args{a: 0x50, mem: 0x90},
			want: want{a: 0xE0, carry: false, overflow: false},
		},
		// 0  1  1   1  0  0   Unsigned carry, but no signed overflow    0x50+0xd0=0x120 80+208=288 80+-48=32
		{
			name: "unsigned carry but no signed overflow",
			args: args{a: 0x50, mem: 0xD0},
			want: want{a: 0x20, carry: true, overflow: false},
		},
		// 1  0  0   0  1  0   No unsigned carry or signed overflow      0xd0+0x10=0xe0  208+16=224 -48+16=-32
		{
			name: "no unsigned carry or signed overflow, negative accumulator",
			args: args{a: 0xD0, mem: 0x10},
			want: want{a: 0xE0, carry: false, overflow: false},
		},
		// 1  0  1   1  0  0   Unsigned carry but no signed overflow     0xd0+0x50=0x120 208+80=288 -48+80=32
		{
			name: "unsigned carry but no signed overflow, negative accumulator",
			args: args{a: 0xD0, mem: 0x50},
			want: want{a: 0x20, carry: true, overflow: false},
		},
		// 1  1  0   1  0  1   Unsigned carry and signed overflow        0xd0+0x90=0x160 208+144=352 -48+-112=96
		{
			name: "unsigned carry and signed overflow",
			args: args{a: 0xD0, mem: 0x90},
			want: want{a: 0x60, carry: true, overflow: true},
		},
		// 1  1  1   1  1  0   Unsigned carry, but no signed overflow    0xd0+0xd0=0x1a0 208+208=416 -48+-48=-96
		{
			name: "unsigned carry, but no signed overflow, both negative",
			args: args{a: 0xD0, mem: 0xD0},
			want: want{a: 0xA0, carry: true, overflow: false},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, bus := newCPUWithRAM(tt.args.mem)
			c.a = tt.args.a

			c.adc(bus, immediate, 0)

			gotCarry := c.p&carry > 0
			gotOverflow := c.p&overflow > 0
			if c.a != tt.want.a {
				t.Errorf("adc(%#x, %#x) got a = %#x, want %#x", tt.args.a, tt.args.mem, c.a, tt.want.a)
			}
			if gotCarry != tt.want.carry {
				t.Errorf("adc(%#x, %#x) got carry %v, want %v", tt.args.a, tt.args.mem, gotCarry, tt.want.carry)
			}
			if gotOverflow != tt.want.overflow {
				t.Errorf("adc(%#x, %#x) got overflow %v, want %v", tt.args.a, tt.args.mem, gotOverflow, tt.want.overflow)
			}
		})
	}
}

func TestCPU_SBC(t *testing.T) {
	type args struct {
		a   byte
		mem byte
	}
	type want struct {
		carry    bool
		overflow bool
		a        byte
	}
	tests := []struct {
		name string
		args args
		want want
	}{
		// M7 N7 C6  C7 B S7 V  Borrow / Overflow                       Hex             Unsigned   Signed
		// 0  1  0   0  1 0  0  Unsigned borrow but no signed overflow  0x50-0xF0=0x60  80-240=96  80--16=96
		{
			name: "unsigned borrow but no signed overflow",
			args: args{a: 0x50, mem: 0xF0},
			want: want{a: 0x60, carry: false, overflow: false},
		},
		// 0  1  1   0  1 1  1  Unsigned borrow and signed overflow     0x50-0xB0=0xA0  80-176=160 80--80=-96
		{
			name: "unsigned borrow and signed overflow",
			args: args{a: 0x50, mem: 0xB0},
			want: want{a: 0xA0, carry: false, overflow: true},
		},
		// 0  0  1   1  0 0  0  No unsigned borrow or signed overflow   0x50-0x30=0x120 80-48=32   80-48=32
		{
			name: "no unsigned borrow or signed overflow",
			args: args{a: 0x50, mem: 0x30},
			want: want{a: 0x20, carry: true, overflow: false},
		},
		// 1  0  1   1  0 0  0  No unsigned borrow or signed overflow   0xD0-0xB0=0x120 208-176=32 -48--80=32
		{
			name: "no unsigned borrow or signed overflow, negative accumulator",
			args: args{a: 0xD0, mem: 0xB0},
			want: want{a: 0x20, carry: true, overflow: false},
		},
		// 1  0  0   1  0 0  1  No unsigned borrow but signed overflow  0xD0-0x70=0x160 208-112=96 -48-112=96
		{
			name: "no unsigned borrow but signed overflow",
			args: args{a: 0xD0, mem: 0x70},
			want: want{a: 0x60, carry: true, overflow: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, bus := newCPUWithRAM(tt.args.mem)
			c.a = tt.args.a
			c.p |= carry // no borrow in, as the table above assumes

			c.sbc(bus, immediate, 0)

			gotCarry := c.p&carry > 0
			gotOverflow := c.p&overflow > 0
			if c.a != tt.want.a {
				t.Errorf("sbc(%#x, %#x) got a = %#x, want %#x", tt.args.a, tt.args.mem, c.a, tt.want.a)
			}
			if gotCarry != tt.want.carry {
				t.Errorf("sbc(%#x, %#x) got carry %v, want %v", tt.args.a, tt.args.mem, gotCarry, tt.want.carry)
			}
			if gotOverflow != tt.want.overflow {
				t.Errorf("sbc(%#x, %#x) got overflow %v, want %v", tt.args.a, tt.args.mem, gotOverflow, tt.want.overflow)
			}
		})
	}
}

func TestCPU_flags(t *testing.T) {
	c, bus := newCPUWithRAM(0)

	c.sec(bus, implied, 0)
	if c.p&carry == 0 {
		t.Error("sec did not set carry")
	}
	c.clc(bus, implied, 0)
	if c.p&carry != 0 {
		t.Error("clc did not clear carry")
	}

	c.sei(bus, implied, 0)
	if c.p&interruptDisable == 0 {
		t.Error("sei did not set interruptDisable")
	}
	c.cli(bus, implied, 0)
	if c.p&interruptDisable != 0 {
		t.Error("cli did not clear interruptDisable")
	}
}

func TestCPU_incDecRegisters(t *testing.T) {
	c, bus := newCPUWithRAM(0)

	c.x = 0xFF
	c.inx(bus, implied, 0)
	if c.x != 0 || c.p&zero == 0 {
		t.Errorf("inx wraparound: got x=%#x, zero=%v", c.x, c.p&zero != 0)
	}

	c.y = 0x00
	c.dey(bus, implied, 0)
	if c.y != 0xFF || c.p&negative == 0 {
		t.Errorf("dey wraparound: got y=%#x, negative=%v", c.y, c.p&negative != 0)
	}
}

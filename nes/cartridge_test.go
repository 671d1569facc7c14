package nes

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
)

type check func(*cartridge) error
type romfn func([]byte) ([]byte, check)

func TestLoadRom(t *testing.T) {
	empty := func([]byte) ([]byte, check) {
		return []byte{}, isNil
	}
	tooShort := func([]byte) ([]byte, check) {
		return []byte{'N', 'E', 'S', 0x1A, 0, 0, 0, 0, 0, 0}, isNil
	}
	invalidMagic1 := func([]byte) ([]byte, check) {
		return []byte{'N', 'O', 'S', 0x1A, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, isNil
	}
	invalidMagic2 := func([]byte) ([]byte, check) {
		return []byte{'N', 'E', 'S', ' ', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, isNil
	}

	tests := []struct {
		name    string
		rom     []romfn
		wantErr bool
	}{
		{
			name: "empty",
			rom: []romfn{
				empty,
			},
			wantErr: true,
		},
		{
			name: "too short",
			rom: []romfn{
				tooShort,
			},
			wantErr: true,
		},
		{
			name: "invalidMagic 1",
			rom: []romfn{
				invalidMagic1,
			},
			wantErr: true,
		},
		{
			name: "invalidMagic 2",
			rom: []romfn{
				invalidMagic2,
			},
			wantErr: true,
		},
		{
			name: "horizontal mirroring",
			rom: []romfn{
				withHorizontal,
			},
			wantErr: false,
		},
		{
			name: "vertical mirroring",
			rom: []romfn{
				withVertical,
			},
			wantErr: false,
		},
		{
			name: "has ram",
			rom: []romfn{
				withRAM,
			},
			wantErr: false,
		},
		{
			name: "no ram",
			rom: []romfn{
				withoutRAM,
			},
			wantErr: false,
		},
		{
			name: "has trainer",
			rom: []romfn{
				withTrainer,
			},
			wantErr: false,
		},
		{
			name: "no trainer",
			rom: []romfn{
				withoutTrainer,
			},
			wantErr: false,
		},
		{
			// four-screen VRAM requires extra nametable RAM no mapper here
			// provides for; rejected at load time rather than silently
			// falling back to a two-screen layout.
			name: "four screen is unsupported",
			rom: []romfn{
				withFourScreen,
			},
			wantErr: true,
		},
		{
			name: "no four screen",
			rom: []romfn{
				withoutFourScreen,
			},
			wantErr: false,
		},
		{
			name: "mapper 0 (NROM)",
			rom: []romfn{
				withMapper(0),
			},
			wantErr: false,
		},
		{
			name: "mapper 4 (MMC3)",
			rom: []romfn{
				withMapper(4),
			},
			wantErr: false,
		},
		{
			name: "unsupported mapper",
			rom: []romfn{
				withMapper(42),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rom := []byte{'N', 'E', 'S', 0x1a, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
			var checks []check

			for _, fn := range tt.rom {
				var c check
				rom, c = fn(rom)
				checks = append(checks, c)
			}
			rom = append(rom, make([]byte, prgMul)...)

			got, err := loadRom(bytes.NewBuffer(rom))
			if (err != nil) != tt.wantErr {
				t.Errorf("loadRom() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			for _, fn := range checks {
				if err := fn(got); err != nil {
					t.Errorf("loadRom(): %s", err)
				}
			}
		})
	}
}

func TestLoadRom_mapperRange(t *testing.T) {
	supported := map[byte]bool{0: true, 1: true, 2: true, 3: true, 4: true}

	for i := 0; i < 255; i++ {
		mapperID := byte(i)
		rom := []byte{'N', 'E', 'S', 0x1a, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
		rom, _ = withMapper(mapperID)(rom)
		rom = append(rom, make([]byte, prgMul)...)

		got, err := loadRom(bytes.NewBuffer(rom))
		if supported[mapperID] {
			if err != nil {
				t.Errorf("loadRom() mapper %d: unexpected error %v", mapperID, err)
				continue
			}
			if got.mapperID != mapperID {
				t.Errorf("loadRom() mapper %d: got mapperID %d", mapperID, got.mapperID)
			}
			continue
		}

		var cartErr *CartridgeError
		if !errors.As(err, &cartErr) || cartErr.Kind != UnsupportedMapper || cartErr.Mapper != mapperID {
			t.Errorf("loadRom() mapper %d: want UnsupportedMapper(%d), got %v", mapperID, mapperID, err)
		}
	}
}

func withHorizontal(rom []byte) ([]byte, check) {
	rom[6] = unset(rom[6], rc1MirrorModeVertical)
	return rom, hasMode(horizontal)
}

func withVertical(rom []byte) ([]byte, check) {
	rom[6] = set(rom[6], rc1MirrorModeVertical)
	return rom, hasMode(vertical)
}

func withRAM(rom []byte) ([]byte, check) {
	rom[6] = set(rom[6], rc1SaveRAM)
	return rom, hasRAM(true)
}

func withoutRAM(rom []byte) ([]byte, check) {
	rom[6] = unset(rom[6], rc1SaveRAM)
	return rom, hasRAM(false)
}

func withTrainer(rom []byte) ([]byte, check) {
	rom[6] = set(rom[6], rc1Trainer)
	rom = append(rom, make([]byte, trainerLen)...)
	return rom, hasTrainer(true)
}

func withoutTrainer(rom []byte) ([]byte, check) {
	rom[6] = unset(rom[6], rc1Trainer)
	return rom, hasTrainer(false)
}

func withFourScreen(rom []byte) ([]byte, check) {
	rom[6] = set(rom[6], rc1FourScreen)
	return rom, isNil
}

func withoutFourScreen(rom []byte) ([]byte, check) {
	rom[6] = unset(rom[6], rc1FourScreen)
	return rom, hasMode(horizontal)
}

func withMapper(m byte) romfn {
	lo := m & 0x0F
	hi := m & 0xF0

	return func(rom []byte) ([]byte, check) {
		rom[6] = (rom[6] & 0x0F) | (lo << 4)
		rom[7] = (rom[7] & 0x0F) | hi
		return rom, hasMapper(m)
	}
}

func isNil(c *cartridge) error {
	if c != nil {
		return fmt.Errorf("%s() expected %s to be %v, got %v", "isNil", "cartridge", nil, c)
	}
	return nil
}

func hasMode(v mirrorMode) check {
	return func(c *cartridge) error {
		if c.mirroring() != v {
			return fmt.Errorf("%s() expected %s to be %v, got %v", "hasMode", "mirroring", v, c.mirroring())
		}
		return nil
	}
}

func hasRAM(v bool) check {
	return func(c *cartridge) error {
		if c.saveRAM != v {
			return fmt.Errorf("%s() expected %s to be %v, got %v", "hasRAM", "saveRAM", v, c.saveRAM)
		}
		return nil
	}
}

func hasTrainer(v bool) check {
	var want int
	if v {
		want = trainerLen
	}
	return func(c *cartridge) error {
		if len(c.trainer) != want {
			return fmt.Errorf("%s() expected %s to be %v, got %v", "hasTrainer", "len(trainer)", want, len(c.trainer))
		}
		return nil
	}
}

func hasMapper(v byte) check {
	return func(c *cartridge) error {
		if c.mapperID != v {
			return fmt.Errorf("%s() expected %s to be %v, got %v", "hasMapper", "mapperID", v, c.mapperID)
		}
		return nil
	}
}

func set(v byte, mask byte) byte {
	return v | mask
}

func unset(v byte, mask byte) byte {
	return v &^ mask
}

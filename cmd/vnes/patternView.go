package main

import (
	"fmt"
	"image"

	"github.com/aurora-emu/nes/cmd/internal/gui"
	"github.com/aurora-emu/nes/nes"
	"github.com/veandco/go-sdl2/sdl"
)

type patternView struct {
	*view

	console    *nes.Console
	buf        *image.RGBA
	showGrid   bool
	paletteNum byte
}

func newPatternView(scale int, fontCache gui.FontMap) (*patternView, error) {
	w, h := 256, 128

	view, err := newView("vnes - pattern tables", w, h, scale, sdl.WINDOW_HIDDEN|sdl.WINDOW_RESIZABLE, sdl.BLENDMODE_BLEND)
	if err != nil {
		return nil, fmt.Errorf("unable to create pattern table view: %s", err)
	}

	return &patternView{
		view: view,
		buf:  image.NewRGBA(image.Rect(0, 0, w, h)),
	}, nil
}

func (v *patternView) Title() string {
	return v.title
}

func (v *patternView) Visible() bool {
	return v.view.visible
}

func (v *patternView) Destroy() error {
	return v.free()
}

func (v *patternView) Paint() {
	v.paint()
}

func (v *patternView) Init(engine *engine, console *nes.Console) error {
	v.console = console
	return nil
}

func (v *patternView) Update(console *nes.Console, engine *engine) {
	v.console = console
}

func (v *patternView) Handle(event sdl.Event, console *nes.Console) (handled bool, err error) {
	handled, err = v.view.handle(event)
	if handled {
		return true, err
	}

	switch evt := event.(type) {
	case *sdl.KeyboardEvent:
		if evt.Type == sdl.KEYUP && evt.Keysym.Sym == sdl.K_g {
			v.showGrid = !v.showGrid
			return true, nil
		}
		if evt.Type == sdl.KEYUP && evt.Keysym.Sym == sdl.K_UP {
			if v.paletteNum == 7 {
				v.paletteNum = 0
			} else {
				v.paletteNum++
			}
			v.setFlashMsg(fmt.Sprintf("palette %d", v.paletteNum))
			return true, nil
		}
		if evt.Type == sdl.KEYUP && evt.Keysym.Sym == sdl.K_DOWN {
			if v.paletteNum == 0 {
				v.paletteNum = 7
			} else {
				v.paletteNum--
			}
			v.setFlashMsg(fmt.Sprintf("palette %d", v.paletteNum))
			return true, nil
		}
	}

	return false, nil
}

func (v *patternView) Render() error {
	if !v.Visible() || v.console == nil {
		return nil
	}

	if err := v.clear(black); err != nil {
		return v.errorf("unable to clear view: %s", err)
	}

	// draw main view
	v.console.DrawPatternTables(v.buf.Pix, v.paletteNum)
	if err := drawRGBA(v.view, v.buf.Pix); err != nil {
		return v.errorf("unable to draw pattern tables: %s", err)
	}

	if err := v.drawStatus(fontLarge); err != nil {
		return v.errorf("unable to draw status: %s", err)
	}

	// draw grid
	if v.showGrid {
		if err := drawGrid(v.view, 16*8, 32*8, sdl.Rect{}, false, white64); err != nil {
			return v.errorf("unable to draw grid: %s", err)
		}
		if err := drawGrid(v.view, 16, 32, sdl.Rect{}, false, white128); err != nil {
			return v.errorf("unable to draw grid: %s", err)
		}
		if err := drawGrid(v.view, 1, 2, sdl.Rect{}, true, white); err != nil {
			return v.errorf("unable to draw grid: %s", err)
		}
	}

	return nil
}

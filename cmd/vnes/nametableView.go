package main

import (
	"fmt"
	"image"

	"github.com/aurora-emu/nes/cmd/internal/gui"
	"github.com/aurora-emu/nes/nes"
	"github.com/veandco/go-sdl2/sdl"
)

type nametableView struct {
	*view

	console  *nes.Console
	showGrid bool
	buf      *image.RGBA
}

func newNametableView(scale int, fontCache gui.FontMap) (*nametableView, error) {
	w, h := 256*2, 240*2

	view, err := newView("vnes - nametables", w, h, scale, sdl.WINDOW_HIDDEN|sdl.WINDOW_RESIZABLE, sdl.BLENDMODE_BLEND)
	if err != nil {
		return nil, fmt.Errorf("unable to create name table view: %s", err)
	}

	return &nametableView{
		view: view,
		buf:  image.NewRGBA(image.Rect(0, 0, w, h)),
	}, nil
}

func (v *nametableView) Title() string {
	return v.title
}

func (v *nametableView) Visible() bool {
	return v.view.visible
}

func (v *nametableView) Destroy() error {
	return v.free()
}

func (v *nametableView) Paint() {
	v.paint()
}

func (v *nametableView) Init(engine *engine, console *nes.Console) error {
	v.console = console
	return nil
}

func (v *nametableView) Update(console *nes.Console, engine *engine) {
	v.console = console
}

func (v *nametableView) Handle(event sdl.Event, console *nes.Console) (handled bool, err error) {
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
	}

	return false, nil
}

func (v *nametableView) Render() error {
	if !v.Visible() || v.console == nil {
		return nil
	}

	if err := v.clear(black); err != nil {
		return v.errorf("unable to clear view: %s", err)
	}

	// draw main view
	v.console.DrawNametables(v.buf.Pix)
	if err := drawRGBA(v.view, v.buf.Pix); err != nil {
		return v.errorf("unable to draw nametables: %s", err)
	}

	// draw grid
	if v.showGrid {
		if err := drawGrid(v.view, 60, 64, sdl.Rect{}, false, white64); err != nil {
			return v.errorf("unable to draw grid: %s", err)
		}
		if err := drawGrid(v.view, 8, 16, sdl.Rect{H: v.rect.W / 2}, false, white128); err != nil {
			return v.errorf("unable to draw grid: %s", err)
		}
		if err := drawGrid(v.view, 8, 16, sdl.Rect{H: v.rect.W / 2, Y: v.rect.H / 2}, false, white128); err != nil {
			return v.errorf("unable to draw grid: %s", err)
		}
		if err := drawGrid(v.view, 2, 2, sdl.Rect{}, true, white); err != nil {
			return v.errorf("unable to draw grid: %s", err)
		}
	}

	return nil
}

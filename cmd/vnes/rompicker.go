package main

import (
	"sort"

	"github.com/bmatcuk/doublestar"
)

// romPicker walks a directory tree (recursively, via doublestar's globbing)
// looking for .nes images, and lets the game view cycle through them with
// F5/F6 without the user having to pass a new path on the command line.
type romPicker struct {
	roms []string
	idx  int
}

func newRomPicker(root string) (*romPicker, error) {
	if root == "" {
		return &romPicker{}, nil
	}

	matches, err := doublestar.Glob(root + "/**/*.nes")
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)

	return &romPicker{roms: matches}, nil
}

func (p *romPicker) empty() bool {
	return len(p.roms) == 0
}

func (p *romPicker) current() string {
	if p.empty() {
		return ""
	}
	return p.roms[p.idx]
}

func (p *romPicker) next() string {
	if p.empty() {
		return ""
	}
	p.idx = (p.idx + 1) % len(p.roms)
	return p.current()
}

func (p *romPicker) prev() string {
	if p.empty() {
		return ""
	}
	p.idx = (p.idx - 1 + len(p.roms)) % len(p.roms)
	return p.current()
}

// Package city generates the street lattice and buildings of a run.
//
// A World is built once per new game and never changes afterwards. It is
// the single authority on where bodies may stand: Blocked tests an axis
// aligned square against every building.
package city

import (
	"github.com/vovakirdan/on-the-run/internal/core"
)

// Style is the cosmetic classification of a building.
type Style string

const (
	StyleLarge Style = "large"
	StyleSmall Style = "small"
)

// Building is a solid rectangle inside a city block.
type Building struct {
	X, Y          float64
	Width, Height float64
	Style         Style
	Shade         int // palette index, cosmetic only
}

// Rect returns the building footprint.
func (b Building) Rect() core.Rect {
	return core.NewRect(b.X, b.Y, b.Width, b.Height)
}

// Street is one band of the lattice.
type Street struct {
	X, Y          float64
	Width, Height float64
}

// Rect returns the street footprint.
func (s Street) Rect() core.Rect {
	return core.NewRect(s.X, s.Y, s.Width, s.Height)
}

// World is the immutable city layout of one run.
type World struct {
	Width, Height float64
	Buildings     []Building
	Streets       []Street
}

// NewWorld wraps an existing layout, for example one restored from a save.
func NewWorld(width, height float64, buildings []Building, streets []Street) World {
	return World{
		Width:     width,
		Height:    height,
		Buildings: append([]Building(nil), buildings...),
		Streets:   append([]Street(nil), streets...),
	}
}

// Bounds returns the canvas rectangle.
func (w World) Bounds() core.Rect {
	return core.NewRect(0, 0, w.Width, w.Height)
}

// Blocked reports whether a square of half-extent size centered on pos
// overlaps any building.
func (w World) Blocked(pos core.Vec, size float64) bool {
	box := core.Square(pos, size)
	for _, b := range w.Buildings {
		if box.Intersects(b.Rect()) {
			return true
		}
	}
	return false
}

// InBounds reports whether the square of half-extent size centered on pos
// lies fully on the canvas.
func (w World) InBounds(pos core.Vec, size float64) bool {
	return w.Bounds().ContainsRect(core.Square(pos, size))
}

// Valid reports whether a body of the given size may stand at pos:
// on the canvas and clear of buildings.
func (w World) Valid(pos core.Vec, size float64) bool {
	return w.InBounds(pos, size) && !w.Blocked(pos, size)
}

// Empty reports whether the world has no buildings, as happens for saves
// written before the layout was generated.
func (w World) Empty() bool {
	return len(w.Buildings) == 0
}

// Clone returns a deep copy.
func (w World) Clone() World {
	return NewWorld(w.Width, w.Height, w.Buildings, w.Streets)
}

package city

import (
	"math"

	"github.com/vovakirdan/on-the-run/internal/config"
	"github.com/vovakirdan/on-the-run/internal/core"
)

// Generator builds Worlds from the city and canvas configuration.
type Generator struct {
	canvas config.CanvasConfig
	city   config.CityConfig
	rng    core.Rand
}

// NewGenerator creates a generator drawing from rng.
func NewGenerator(cfg config.Config, rng core.Rand) *Generator {
	return &Generator{
		canvas: cfg.Canvas,
		city:   cfg.City,
		rng:    rng,
	}
}

// Generate lays out the street lattice and fills each block with 1-3
// buildings. The lattice is walked exactly once.
func (g *Generator) Generate() World {
	w := World{
		Width:  g.canvas.Width,
		Height: g.canvas.Height,
	}
	w.Streets = g.streets()
	w.Buildings = g.buildings()
	return w
}

func (g *Generator) streets() []Street {
	block := g.city.BlockSize
	width := g.city.StreetWidth
	var out []Street

	// Horizontal bands
	for y := block; y < g.canvas.Height; y += block {
		out = append(out, Street{X: 0, Y: y, Width: g.canvas.Width, Height: width})
	}

	// Vertical bands
	for x := block; x < g.canvas.Width; x += block {
		out = append(out, Street{X: x, Y: 0, Width: width, Height: g.canvas.Height})
	}
	return out
}

// interior returns the buildable area of the block whose corner is (bx, by).
// It clears the street bands on both sides plus the margin, and is clipped
// to the canvas. ok is false when nothing is left.
func (g *Generator) interior(bx, by float64) (core.Rect, bool) {
	inset := g.city.StreetWidth + g.city.BuildingMargin
	span := g.city.BlockSize - 2*g.city.StreetWidth - 2*g.city.BuildingMargin

	x0, y0 := bx+inset, by+inset
	x1 := math.Min(x0+span, g.canvas.Width)
	y1 := math.Min(y0+span, g.canvas.Height)

	r := core.NewRect(x0, y0, x1-x0, y1-y0)
	return r, r.W > 0 && r.H > 0
}

func (g *Generator) buildings() []Building {
	block := g.city.BlockSize
	var out []Building

	for by := 0.0; by < g.canvas.Height; by += block {
		for bx := 0.0; bx < g.canvas.Width; bx += block {
			// Lattice origin is treated as an intersection
			if bx == 0 && by == 0 {
				continue
			}
			area, ok := g.interior(bx, by)
			if !ok {
				continue
			}

			n := g.rng.Intn(3) + 1
			for i := 0; i < n; i++ {
				out = append(out, g.building(area))
			}
		}
	}
	return out
}

// building places one building fully inside area.
func (g *Generator) building(area core.Rect) Building {
	minSize := g.city.MinBuildingSize

	width := math.Min(core.Uniform(g.rng, minSize, minSize+area.W/2), area.W)
	height := math.Min(core.Uniform(g.rng, minSize, minSize+area.H/2), area.H)
	x := area.X + g.rng.Float64()*(area.W-width)
	y := area.Y + g.rng.Float64()*(area.H-height)

	style := StyleSmall
	if width > g.city.LargeThreshold {
		style = StyleLarge
	}

	return Building{
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
		Style:  style,
		Shade:  g.rng.Intn(core.BuildingShades),
	}
}

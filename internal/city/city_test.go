package city

import (
	"math"
	"reflect"
	"testing"

	"github.com/vovakirdan/on-the-run/internal/config"
	"github.com/vovakirdan/on-the-run/internal/core"
)

func generate(seed int64) World {
	return NewGenerator(config.Default(), core.NewRand(seed)).Generate()
}

func TestGenerateIsDeterministic(t *testing.T) {
	a := generate(42)
	b := generate(42)
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed should produce the same world")
	}

	c := generate(43)
	if reflect.DeepEqual(a.Buildings, c.Buildings) {
		t.Error("different seeds should produce different buildings")
	}
}

func TestStreetLattice(t *testing.T) {
	cfg := config.Default()
	w := generate(1)

	// 600/120 -> bands at 120..480 (4), 800/120 -> bands at 120..720 (6)
	var horizontal, vertical int
	for _, s := range w.Streets {
		switch {
		case s.X == 0 && s.Width == cfg.Canvas.Width:
			horizontal++
			if s.Height != cfg.City.StreetWidth {
				t.Errorf("horizontal band height = %v", s.Height)
			}
			if math.Mod(s.Y, cfg.City.BlockSize) != 0 {
				t.Errorf("horizontal band off the lattice at y=%v", s.Y)
			}
		case s.Y == 0 && s.Height == cfg.Canvas.Height:
			vertical++
			if s.Width != cfg.City.StreetWidth {
				t.Errorf("vertical band width = %v", s.Width)
			}
		default:
			t.Errorf("unexpected street %+v", s)
		}
	}
	if horizontal != 4 || vertical != 6 {
		t.Errorf("got %d horizontal and %d vertical bands, expected 4 and 6", horizontal, vertical)
	}
}

func TestBuildingsStayInsideBlocks(t *testing.T) {
	cfg := config.Default()
	block := cfg.City.BlockSize
	inset := cfg.City.StreetWidth + cfg.City.BuildingMargin

	for seed := int64(0); seed < 20; seed++ {
		w := generate(seed)
		if len(w.Buildings) == 0 {
			t.Fatalf("seed %d: no buildings generated", seed)
		}

		for _, b := range w.Buildings {
			bx := math.Floor(b.X/block) * block
			by := math.Floor(b.Y/block) * block

			if b.X < bx+inset || b.Y < by+inset {
				t.Errorf("seed %d: building %+v starts inside the street margin", seed, b)
			}
			if b.X+b.Width > bx+block-cfg.City.StreetWidth-cfg.City.BuildingMargin+1e-9 {
				t.Errorf("seed %d: building %+v spills past its block", seed, b)
			}
			if !w.Bounds().ContainsRect(b.Rect()) {
				t.Errorf("seed %d: building %+v leaves the canvas", seed, b)
			}
			for _, s := range w.Streets {
				if b.Rect().Intersects(s.Rect()) {
					t.Errorf("seed %d: building %+v overlaps street %+v", seed, b, s)
				}
			}
		}
	}
}

func TestBuildingsPerBlock(t *testing.T) {
	cfg := config.Default()
	block := cfg.City.BlockSize
	w := generate(7)

	counts := map[[2]int]int{}
	for _, b := range w.Buildings {
		key := [2]int{int(b.X / block), int(b.Y / block)}
		counts[key]++
	}

	// 7 columns x 5 rows, minus the origin block
	if len(counts) != 34 {
		t.Errorf("buildings found in %d blocks, expected 34", len(counts))
	}
	if _, ok := counts[[2]int{0, 0}]; ok {
		t.Error("origin block should stay empty")
	}
	for k, n := range counts {
		if n < 1 || n > 3 {
			t.Errorf("block %v has %d buildings, expected 1-3", k, n)
		}
	}
}

func TestBuildingStyleAndSize(t *testing.T) {
	cfg := config.Default()
	w := generate(99)

	for _, b := range w.Buildings {
		want := StyleSmall
		if b.Width > cfg.City.LargeThreshold {
			want = StyleLarge
		}
		if b.Style != want {
			t.Errorf("building width %v has style %q, expected %q", b.Width, b.Style, want)
		}
		if b.Width < cfg.City.MinBuildingSize || b.Height < cfg.City.MinBuildingSize {
			t.Errorf("building %+v below the minimum size", b)
		}
		if b.Shade < 0 || b.Shade >= core.BuildingShades {
			t.Errorf("shade %d out of range", b.Shade)
		}
	}
}

func TestGenerateDegenerateConfig(t *testing.T) {
	cfg := config.Default()
	cfg.City.BlockSize = 60 // interior 60-60-16 < 0

	w := NewGenerator(cfg, core.NewRand(1)).Generate()
	if len(w.Buildings) != 0 {
		t.Errorf("degenerate blocks should hold no buildings, got %d", len(w.Buildings))
	}
	if len(w.Streets) == 0 {
		t.Error("streets should still be laid out")
	}
}

func TestWorldBlockedAndValid(t *testing.T) {
	w := NewWorld(200, 200, []Building{{X: 50, Y: 50, Width: 40, Height: 40}}, nil)

	tests := []struct {
		name    string
		pos     core.Vec
		size    float64
		blocked bool
		valid   bool
	}{
		{"open street", core.V(20, 20), 5, false, true},
		{"inside building", core.V(70, 70), 5, true, false},
		{"touching edge", core.V(45, 70), 5, false, true},
		{"overlapping edge", core.V(46, 70), 5, true, false},
		{"off canvas", core.V(2, 100), 5, false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := w.Blocked(tc.pos, tc.size); got != tc.blocked {
				t.Errorf("Blocked = %v, expected %v", got, tc.blocked)
			}
			if got := w.Valid(tc.pos, tc.size); got != tc.valid {
				t.Errorf("Valid = %v, expected %v", got, tc.valid)
			}
		})
	}
}

func TestWorldCloneIsIndependent(t *testing.T) {
	w := generate(3)
	c := w.Clone()
	c.Buildings[0].X = -1000
	if w.Buildings[0].X == -1000 {
		t.Error("Clone should not share building storage")
	}
	if !(World{}).Empty() || w.Empty() {
		t.Error("Empty should reflect the building list")
	}
}

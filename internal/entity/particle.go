package entity

import "github.com/vovakirdan/on-the-run/internal/core"

const (
	smokeJitter = 10.0  // spawn spread around the source
	smokeDrift  = 3.0   // horizontal velocity spread
	smokeLift   = 0.08  // upward acceleration per tick
	smokeGrowth = 1.01  // size multiplier per tick
	smokeFade   = 0.016 // life lost per tick
)

// Particle is a short-lived smoke puff. Life runs from 1 down to 0.
type Particle struct {
	Pos  core.Vec
	Vel  core.Vec
	Size float64
	Life float64
}

func (p Particle) Kind() Kind         { return KindParticle }
func (p Particle) Position() core.Vec { return p.Pos }
func (p Particle) Radius() float64    { return p.Size * p.Life }

// SmokeBurst returns n puffs rising from pos.
func SmokeBurst(pos core.Vec, n int, rng core.Rand) []Particle {
	out := make([]Particle, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Particle{
			Pos: core.V(
				pos.X+(rng.Float64()-0.5)*smokeJitter,
				pos.Y+(rng.Float64()-0.5)*smokeJitter,
			),
			Vel: core.V(
				(rng.Float64()-0.5)*smokeDrift,
				-rng.Float64()*2-1,
			),
			Size: rng.Float64()*3 + 2,
			Life: 1,
		})
	}
	return out
}

// UpdateParticles advances every puff by one tick and drops the dead ones.
// The slice is filtered in place.
func UpdateParticles(ps []Particle) []Particle {
	alive := ps[:0]
	for _, p := range ps {
		p.Life -= smokeFade
		if p.Life <= 0 {
			continue
		}
		p.Pos = p.Pos.Add(p.Vel)
		p.Vel.Y -= smokeLift
		p.Size *= smokeGrowth
		alive = append(alive, p)
	}
	return alive
}

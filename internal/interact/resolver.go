// Package interact resolves contacts between the player and everything else.
//
// Resolution runs once per tick after movement, in a fixed order: building
// push-out, supplies, cash, police, dealers. Police and dealer contacts end
// resolution for the tick.
package interact

import (
	"math"
	"time"

	"github.com/vovakirdan/on-the-run/internal/city"
	"github.com/vovakirdan/on-the-run/internal/config"
	"github.com/vovakirdan/on-the-run/internal/core"
	"github.com/vovakirdan/on-the-run/internal/entity"
	"github.com/vovakirdan/on-the-run/internal/state"
)

// maxPushPasses bounds building push-out when the player touches
// several buildings at once.
const maxPushPasses = 4

// Outcome is what one resolution pass produced.
type Outcome struct {
	MoneyDelta float64
	BuzzDelta  float64
	Events     []core.Event

	// Transition is set when a contact requires a state change.
	Transition *state.Transition
}

// Resolver applies contact rules to a scene.
type Resolver struct {
	cfg   config.Config
	world city.World
	rng   core.Rand
}

// New creates a resolver for one run.
func New(cfg config.Config, world city.World, rng core.Rand) *Resolver {
	return &Resolver{cfg: cfg, world: world, rng: rng}
}

// Resolve applies every contact rule to s.
func (r *Resolver) Resolve(s *entity.Scene, now time.Time) Outcome {
	var out Outcome

	r.pushOut(&s.Player)
	r.collectSupplies(s, &out)
	r.collectCash(s, &out)

	if r.caught(s, &out) {
		return out
	}
	r.visitDealers(s, now, &out)
	return out
}

// pushOut moves the player out of any building along the axis of least
// penetration. Ties go to the vertical axis.
func (r *Resolver) pushOut(p *entity.Player) {
	for pass := 0; pass < maxPushPasses; pass++ {
		moved := false
		for _, b := range r.world.Buildings {
			box := core.Square(p.Pos, p.Size)
			br := b.Rect()
			if !box.Intersects(br) {
				continue
			}

			dx := displacement(box.Right()-br.X, br.Right()-box.X)
			dy := displacement(box.Bottom()-br.Y, br.Bottom()-box.Y)
			if math.Abs(dx) < math.Abs(dy) {
				p.Pos.X += dx
			} else {
				p.Pos.Y += dy
			}
			moved = true
		}
		if !moved {
			return
		}
	}
}

// displacement picks the shorter of pushing back (negative) by intoNear
// or forward by intoFar.
func displacement(intoNear, intoFar float64) float64 {
	if intoNear <= intoFar {
		return -intoNear
	}
	return intoFar
}

func (r *Resolver) collectSupplies(s *entity.Scene, out *Outcome) {
	p := &s.Player
	for i := len(s.Supplies) - 1; i >= 0; i-- {
		sup := s.Supplies[i]
		if core.Dist(p.Pos, sup.Pos) >= p.Size+sup.Size {
			continue
		}
		if r.cfg.Supply.ChargePolicy == config.ChargeAffordable && p.Money < sup.Cost {
			continue
		}

		before := p.Buzz
		p.Money -= sup.Cost
		p.AddBuzz(r.cfg.Supply.BuzzGain)

		out.MoneyDelta -= sup.Cost
		out.BuzzDelta += p.Buzz - before
		out.Events = append(out.Events, core.Event{Kind: core.EventPickup, Pos: sup.Pos, Amount: sup.Cost})

		s.Supplies = append(s.Supplies[:i], s.Supplies[i+1:]...)
		s.Particles = append(s.Particles, entity.SmokeBurst(p.Pos, r.cfg.Mechanics.SmokeParticles, r.rng)...)
	}
}

func (r *Resolver) collectCash(s *entity.Scene, out *Outcome) {
	p := &s.Player
	for i := len(s.Cash) - 1; i >= 0; i-- {
		c := s.Cash[i]
		if core.Dist(p.Pos, c.Pos) >= p.Size+c.Size {
			continue
		}
		p.Money += c.Value
		out.MoneyDelta += c.Value
		out.Events = append(out.Events, core.Event{Kind: core.EventCashCollected, Pos: c.Pos, Amount: c.Value})
		s.Cash = append(s.Cash[:i], s.Cash[i+1:]...)
	}
}

func (r *Resolver) caught(s *entity.Scene, out *Outcome) bool {
	for _, ag := range s.Police {
		if entity.Overlaps(s.Player, ag) {
			r.gameOver(out, state.ReasonBusted, ag.Pos)
			return true
		}
	}
	return false
}

func (r *Resolver) visitDealers(s *entity.Scene, now time.Time, out *Outcome) {
	p := s.Player
	for i, d := range s.Dealers {
		if core.Dist(p.Pos, d.Pos) >= p.Size+d.Size+r.cfg.Dealer.InteractBuffer {
			continue
		}

		switch {
		case p.Money < 0:
			r.gameOver(out, state.ReasonDealerKilled, d.Pos)
		case !d.OnCooldown(now):
			out.Transition = &state.Transition{To: state.Shop, Payload: state.Payload{Dealer: i}}
			out.Events = append(out.Events, core.Event{Kind: core.EventShopOpened, Pos: d.Pos})
		default:
			out.Events = append(out.Events, core.Event{
				Kind:   core.EventShopDenied,
				Pos:    d.Pos,
				Amount: d.Remaining(now).Seconds(),
			})
		}
		return
	}
}

func (r *Resolver) gameOver(out *Outcome, reason state.Reason, at core.Vec) {
	out.Transition = &state.Transition{To: state.GameOver, Payload: state.Payload{Reason: reason}}
	out.Events = append(out.Events, core.Event{Kind: core.EventGameOver, Pos: at, Detail: string(reason)})
}

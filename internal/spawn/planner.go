// Package spawn keeps pickup and police populations at their targets.
//
// Pickups are placed by rejection sampling: a candidate is drawn uniformly
// inside the canvas border and dropped if it lands on a building or too
// close to another pickup. Placement is bounded, so a crowded city simply
// ends the top-up early and reports it.
package spawn

import (
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/on-the-run/internal/city"
	"github.com/vovakirdan/on-the-run/internal/config"
	"github.com/vovakirdan/on-the-run/internal/core"
	"github.com/vovakirdan/on-the-run/internal/entity"
)

// Result reports what a top-up achieved.
type Result struct {
	Placed    int  // pickups added
	Wanted    int  // deficit at the start of the top-up
	Exhausted bool // a placement ran out of attempts
}

// Planner spawns entities into a scene.
type Planner struct {
	cfg    config.Config
	world  city.World
	scene  *entity.Scene
	rng    core.Rand
	logger *log.Logger

	lastPoliceSpawn time.Time
}

// NewPlanner creates a planner for one run.
func NewPlanner(cfg config.Config, world city.World, scene *entity.Scene, rng core.Rand, logger *log.Logger) *Planner {
	if logger == nil {
		logger = log.Default()
	}
	return &Planner{
		cfg:    cfg,
		world:  world,
		scene:  scene,
		rng:    rng,
		logger: logger,
	}
}

// TopUp adds pickups of kind until target is reached or a placement is
// exhausted. At or above target it does nothing and draws no randomness.
// Only KindSupply and KindCash are pickups; other kinds are ignored.
func (p *Planner) TopUp(kind entity.Kind, target int) Result {
	var have int
	switch kind {
	case entity.KindSupply:
		have = len(p.scene.Supplies)
	case entity.KindCash:
		have = len(p.scene.Cash)
	default:
		return Result{}
	}

	res := Result{Wanted: target - have}
	if res.Wanted <= 0 {
		res.Wanted = 0
		return res
	}

	for i := 0; i < res.Wanted; i++ {
		if !p.placeOne(kind) {
			res.Exhausted = true
			p.logger.Debug("placement exhausted",
				"kind", kind,
				"placed", res.Placed,
				"wanted", res.Wanted,
				"attempts", p.cfg.Spawn.MaxAttempts)
			break
		}
		res.Placed++
	}
	return res
}

func (p *Planner) sizeOf(kind entity.Kind) float64 {
	if kind == entity.KindSupply {
		return p.cfg.Supply.Size
	}
	return p.cfg.Cash.Size
}

func (p *Planner) placeOne(kind entity.Kind) bool {
	size := p.sizeOf(kind)
	pos, ok := p.findSpot(size)
	if !ok {
		return false
	}

	switch kind {
	case entity.KindSupply:
		p.scene.Supplies = append(p.scene.Supplies, entity.Supply{
			Pos:  pos,
			Size: size,
			Cost: core.Uniform(p.rng, p.cfg.Supply.MinCost, p.cfg.Supply.MaxCost),
		})
	case entity.KindCash:
		p.scene.Cash = append(p.scene.Cash, entity.Cash{
			Pos:   pos,
			Size:  size,
			Value: core.Uniform(p.rng, p.cfg.Cash.MinValue, p.cfg.Cash.MaxValue),
		})
	}
	return true
}

// findSpot samples candidate positions for a pickup of the given size.
func (p *Planner) findSpot(size float64) (core.Vec, bool) {
	border := p.cfg.Spawn.Border
	w, h := p.world.Width, p.world.Height

	for attempt := 0; attempt < p.cfg.Spawn.MaxAttempts; attempt++ {
		pos := core.V(
			core.Uniform(p.rng, border, w-border),
			core.Uniform(p.rng, border, h-border),
		)
		if !p.world.Valid(pos, size) {
			continue
		}
		if p.crowded(pos, size) {
			continue
		}
		return pos, true
	}
	return core.Vec{}, false
}

// crowded reports whether pos is too close to any existing pickup.
func (p *Planner) crowded(pos core.Vec, size float64) bool {
	sep := p.cfg.Spawn.MinSeparation
	for _, b := range p.scene.Pickups() {
		if core.Dist(pos, b.Position()) < size+b.Radius()+sep {
			return true
		}
	}
	return false
}

// PoliceTarget is the number of police a given amount of money attracts.
func PoliceTarget(money float64, cfg config.PoliceConfig) int {
	if money <= cfg.MoneyThreshold {
		return 0
	}
	n := int(math.Floor((money-cfg.MoneyThreshold)/cfg.SpawnDivisor)) + 1
	return min(n, cfg.MaxCount)
}

// SpawnPoliceIfDue adds one agent when the population is below the target
// for money and the last spawn is older than the minimum interval.
func (p *Planner) SpawnPoliceIfDue(money float64, now time.Time) bool {
	target := PoliceTarget(money, p.cfg.Police)
	if len(p.scene.Police) >= target {
		return false
	}
	if !p.lastPoliceSpawn.IsZero() && now.Sub(p.lastPoliceSpawn) <= p.cfg.Police.MinSpawnInterval() {
		return false
	}

	pc := p.cfg.Police
	p.scene.Police = append(p.scene.Police, entity.Police{
		Pos:            p.edgePosition(pc.EdgeOffset),
		Size:           pc.Size,
		Speed:          core.Uniform(p.rng, pc.MinSpeed, pc.MaxSpeed),
		AlertRadius:    pc.AlertRadius,
		Mode:           entity.ModePatrol,
		LastModeChange: now,
	})
	p.lastPoliceSpawn = now

	p.logger.Debug("police spawned", "count", len(p.scene.Police), "target", target, "money", money)
	return true
}

// edgePosition picks a point offset outside a uniformly chosen canvas side.
func (p *Planner) edgePosition(offset float64) core.Vec {
	w, h := p.world.Width, p.world.Height
	switch p.rng.Intn(4) {
	case 0: // top
		return core.V(p.rng.Float64()*w, -offset)
	case 1: // bottom
		return core.V(p.rng.Float64()*w, h+offset)
	case 2: // left
		return core.V(-offset, p.rng.Float64()*h)
	default: // right
		return core.V(w+offset, p.rng.Float64()*h)
	}
}

// Package pursuit drives police agents with a two-state machine.
//
// An agent patrols between random waypoints until the player comes within
// its alert radius, then heads straight for the player at full speed. It
// drops back to patrol as soon as the player is out of range again; there
// is no hysteresis, so an agent on the boundary may flip every tick.
package pursuit

import (
	"time"

	"github.com/vovakirdan/on-the-run/internal/city"
	"github.com/vovakirdan/on-the-run/internal/config"
	"github.com/vovakirdan/on-the-run/internal/core"
	"github.com/vovakirdan/on-the-run/internal/entity"
)

// AI advances police agents one tick at a time.
type AI struct {
	cfg   config.PoliceConfig
	world city.World
	rng   core.Rand
}

// New creates the AI for one run.
func New(cfg config.Config, world city.World, rng core.Rand) *AI {
	return &AI{
		cfg:   cfg.Police,
		world: world,
		rng:   rng,
	}
}

// Update advances one agent toward its goal.
func (a *AI) Update(agent *entity.Police, player core.Vec, now time.Time) {
	var (
		goal  core.Vec
		speed float64
	)

	if core.Dist(agent.Pos, player) < agent.AlertRadius {
		a.setMode(agent, entity.ModeChase, now)
		goal = player
		speed = agent.Speed
	} else {
		a.setMode(agent, entity.ModePatrol, now)
		if !agent.HasTarget || core.Dist(agent.Pos, agent.PatrolTarget) < a.cfg.ArriveRadius {
			agent.PatrolTarget = a.patrolTarget()
			agent.HasTarget = true
		}
		goal = agent.PatrolTarget
		speed = agent.Speed * a.cfg.PatrolFactor
	}

	dir := goal.Sub(agent.Pos).Normalize()
	next := agent.Pos.Add(dir.Scale(speed))
	if a.world.Blocked(next, agent.Size) {
		// Stay put; a stuck patroller picks a new waypoint next tick.
		if agent.Mode == entity.ModePatrol {
			agent.HasTarget = false
		}
		return
	}
	agent.Pos = next
}

// UpdateAll advances every agent and drops those that wandered too far
// off the canvas. The slice is filtered in place.
func (a *AI) UpdateAll(agents []entity.Police, player core.Vec, now time.Time) []entity.Police {
	kept := agents[:0]
	for i := range agents {
		ag := agents[i]
		a.Update(&ag, player, now)
		if a.OutOfPlay(ag) {
			continue
		}
		kept = append(kept, ag)
	}
	return kept
}

// OutOfPlay reports whether an agent is further than the cull margin
// outside the canvas.
func (a *AI) OutOfPlay(agent entity.Police) bool {
	m := a.cfg.CullMargin
	return agent.Pos.X < -m || agent.Pos.X > a.world.Width+m ||
		agent.Pos.Y < -m || agent.Pos.Y > a.world.Height+m
}

func (a *AI) setMode(agent *entity.Police, mode entity.Mode, now time.Time) {
	if agent.Mode == mode {
		return
	}
	agent.Mode = mode
	agent.LastModeChange = now
}

// patrolTarget draws a waypoint inside the inset canvas.
func (a *AI) patrolTarget() core.Vec {
	inset := a.cfg.PatrolInset
	return core.V(
		core.Uniform(a.rng, inset, a.world.Width-inset),
		core.Uniform(a.rng, inset, a.world.Height-inset),
	)
}

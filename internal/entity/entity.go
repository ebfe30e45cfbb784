// Package entity defines the bodies that share the canvas with the player.
package entity

import (
	"time"

	"github.com/vovakirdan/on-the-run/internal/config"
	"github.com/vovakirdan/on-the-run/internal/core"
)

// Kind tags an entity variant.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindSupply
	KindCash
	KindPolice
	KindDealer
	KindParticle
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindSupply:
		return "supply"
	case KindCash:
		return "cash"
	case KindPolice:
		return "police"
	case KindDealer:
		return "dealer"
	case KindParticle:
		return "particle"
	default:
		return "unknown"
	}
}

// Body is the spatial trait every entity shares.
// Radius is the half-extent used for placement and overlap tests.
type Body interface {
	Kind() Kind
	Position() core.Vec
	Radius() float64
}

// Player is the character under the user's control.
type Player struct {
	Pos     core.Vec
	Size    float64
	Speed   float64
	Buzz    float64
	MaxBuzz float64
	Money   float64 // may go negative
}

// NewPlayer returns a player at the configured start.
func NewPlayer(cfg config.PlayerConfig) Player {
	return Player{
		Pos:     core.V(cfg.InitialX, cfg.InitialY),
		Size:    cfg.Size,
		Speed:   cfg.Speed,
		Buzz:    cfg.InitialBuzz,
		MaxBuzz: cfg.MaxBuzz,
		Money:   cfg.InitialMoney,
	}
}

func (p Player) Kind() Kind         { return KindPlayer }
func (p Player) Position() core.Vec { return p.Pos }
func (p Player) Radius() float64    { return p.Size }

// AddBuzz changes buzz by delta, keeping it within [0, MaxBuzz].
func (p *Player) AddBuzz(delta float64) {
	p.Buzz = core.ClampF(p.Buzz+delta, 0, p.MaxBuzz)
}

// Supply is a consumable that restores buzz for a price.
type Supply struct {
	Pos  core.Vec
	Size float64
	Cost float64
}

func (s Supply) Kind() Kind         { return KindSupply }
func (s Supply) Position() core.Vec { return s.Pos }
func (s Supply) Radius() float64    { return s.Size }

// Cash is money lying on the street.
type Cash struct {
	Pos   core.Vec
	Size  float64
	Value float64
}

func (c Cash) Kind() Kind         { return KindCash }
func (c Cash) Position() core.Vec { return c.Pos }
func (c Cash) Radius() float64    { return c.Size }

// Mode is the behavioral state of a police agent.
type Mode uint8

const (
	ModePatrol Mode = iota
	ModeChase
)

func (m Mode) String() string {
	if m == ModeChase {
		return "CHASE"
	}
	return "PATROL"
}

// Police is a pursuing agent.
type Police struct {
	Pos            core.Vec
	Size           float64
	Speed          float64
	AlertRadius    float64
	Mode           Mode
	PatrolTarget   core.Vec
	HasTarget      bool
	LastModeChange time.Time
}

func (p Police) Kind() Kind         { return KindPolice }
func (p Police) Position() core.Vec { return p.Pos }
func (p Police) Radius() float64    { return p.Size }

// Dealer is a fixed shop location.
type Dealer struct {
	Pos             core.Vec
	Size            float64
	LastInteraction time.Time // zero means never visited
	Cooldown        time.Duration
}

func (d Dealer) Kind() Kind         { return KindDealer }
func (d Dealer) Position() core.Vec { return d.Pos }
func (d Dealer) Radius() float64    { return d.Size }

// OnCooldown reports whether the dealer refuses to trade at now.
func (d Dealer) OnCooldown(now time.Time) bool {
	if d.LastInteraction.IsZero() {
		return false
	}
	return now.Sub(d.LastInteraction) < d.Cooldown
}

// Remaining returns how long until the dealer trades again.
func (d Dealer) Remaining(now time.Time) time.Duration {
	if !d.OnCooldown(now) {
		return 0
	}
	return d.Cooldown - now.Sub(d.LastInteraction)
}

// NewDealers places one dealer at each configured position.
func NewDealers(cfg config.DealerConfig) []Dealer {
	out := make([]Dealer, 0, len(cfg.Positions))
	for _, p := range cfg.Positions {
		out = append(out, Dealer{
			Pos:      core.V(p.X, p.Y),
			Size:     cfg.Size,
			Cooldown: cfg.Cooldown(),
		})
	}
	return out
}

// Overlaps reports whether two bodies are closer than the sum of their radii.
func Overlaps(a, b Body) bool {
	return core.Dist(a.Position(), b.Position()) < a.Radius()+b.Radius()
}

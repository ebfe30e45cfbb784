package game

import (
	"fmt"
	"math"
	"sync"

	"github.com/vovakirdan/on-the-run/internal/config"
	"github.com/vovakirdan/on-the-run/internal/core"
	"github.com/vovakirdan/on-the-run/internal/registry"
	"github.com/vovakirdan/on-the-run/internal/state"
)

// Registry IDs.
const (
	IDDefault = "ontherun"
	IDStrict  = "ontherun_strict" // supplies are only collected when affordable
)

// Package-level config used by registry factories.
var (
	configMu   sync.RWMutex
	baseConfig = config.Default()
)

// SetConfig sets the configuration used by sessions created through the
// registry.
func SetConfig(cfg config.Config) {
	configMu.Lock()
	defer configMu.Unlock()
	baseConfig = cfg
}

func currentConfig() config.Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return baseConfig
}

// NewStrict creates a session that refuses supplies the player cannot pay for.
func NewStrict(cfg config.Config, opts ...Option) *Session {
	cfg.Supply.ChargePolicy = config.ChargeAffordable
	s := New(cfg, opts...)
	s.id = IDStrict
	return s
}

func init() {
	registry.Register(IDDefault, func() registry.Game {
		return New(currentConfig())
	})
	registry.Register(IDStrict, func() registry.Game {
		return NewStrict(currentConfig())
	})
}

// Create builds a registered session by ID and applies opts to it.
func Create(id string, opts ...Option) (*Session, error) {
	g, err := registry.Create(id)
	if err != nil {
		return nil, err
	}
	s, ok := g.(*Session)
	if !ok {
		return nil, fmt.Errorf("game: %q is not an On The Run session", id)
	}
	for _, opt := range opts {
		opt(s)
	}
	s.machine = state.NewMachine(s.logger)
	return s, nil
}

// ID returns the registry identifier.
func (s *Session) ID() string {
	return s.id
}

// Title returns the display name.
func (s *Session) Title() string {
	if s.id == IDStrict {
		return "On The Run (Strict)"
	}
	return "On The Run"
}

// Reset starts over from the title menu. A non-zero seed reseeds the
// random source.
func (s *Session) Reset(rc core.RuntimeConfig) {
	if rc.Seed != 0 {
		s.rng = core.NewRand(rc.Seed)
	}
	s.machine = state.NewMachine(s.logger)
	s.prepared = false
	s.tick = 0
	s.tickEvents = nil
	s.pending = nil
	s.Init()
}

// State reports the coarse status for the host.
func (s *Session) State() core.GameState {
	cur := s.machine.Current()
	return core.GameState{
		Score:    int(math.Floor(s.scene.Player.Money)),
		GameOver: cur == state.GameOver,
		Paused:   cur == state.Paused || cur == state.Shop,
		InShop:   cur == state.Shop,
		InMenu:   cur == state.Menu,
		Reason:   string(s.Reason()),
	}
}

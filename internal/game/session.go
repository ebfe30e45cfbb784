// Package game ties the city, spawner, pursuit AI, interaction resolver and
// state machine into one playable session.
//
// A Session is single-threaded: the host calls Step once per frame with the
// intents collected since the previous frame, then reads View or Render.
package game

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/on-the-run/internal/city"
	"github.com/vovakirdan/on-the-run/internal/config"
	"github.com/vovakirdan/on-the-run/internal/core"
	"github.com/vovakirdan/on-the-run/internal/entity"
	"github.com/vovakirdan/on-the-run/internal/interact"
	"github.com/vovakirdan/on-the-run/internal/pursuit"
	"github.com/vovakirdan/on-the-run/internal/spawn"
	"github.com/vovakirdan/on-the-run/internal/state"
)

// maxPendingEvents caps the buffer drained by Events.
const maxPendingEvents = 256

// Session is one player's game.
type Session struct {
	id     string
	cfg    config.Config
	rng    core.Rand
	clock  core.Clock
	logger *log.Logger

	machine  *state.Machine
	world    city.World
	scene    entity.Scene
	planner  *spawn.Planner
	ai       *pursuit.AI
	resolver *interact.Resolver

	prepared bool // a world and cast exist, fresh or restored
	dealer   int  // dealer whose shop is open, -1 otherwise
	elapsed  time.Duration
	tick     uint64

	tickEvents []core.Event
	pending    []core.Event
}

// Option configures a Session.
type Option func(*Session)

// WithRand sets the random source. Sessions sharing a seed and inputs
// play out identically.
func WithRand(r core.Rand) Option {
	return func(s *Session) { s.rng = r }
}

// WithClock sets the time source.
func WithClock(c core.Clock) Option {
	return func(s *Session) { s.clock = c }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// New creates a session in the INITIALIZING state.
func New(cfg config.Config, opts ...Option) *Session {
	s := &Session{
		id:     IDDefault,
		cfg:    cfg,
		dealer: -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = core.NewRand(time.Now().UnixNano())
	}
	if s.clock == nil {
		s.clock = core.SystemClock{}
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	s.machine = state.NewMachine(s.logger)
	return s
}

// Config returns the configuration the session was built with.
func (s *Session) Config() config.Config {
	return s.cfg
}

// Init moves from INITIALIZING to MENU, preparing a fresh game unless one
// was restored first.
func (s *Session) Init() {
	if !s.prepared {
		s.NewGame()
	}
	s.machine.Request(state.Menu, s.clock.Now(), state.Payload{})
}

// NewGame discards the current run and sets up a new one: a fresh city,
// a fresh player, dealers off cooldown and a full set of pickups.
func (s *Session) NewGame() {
	world := city.NewGenerator(s.cfg, s.rng).Generate()
	s.setWorld(world)

	s.scene = entity.Scene{
		Player:  entity.NewPlayer(s.cfg.Player),
		Dealers: entity.NewDealers(s.cfg.Dealer),
	}
	s.dealer = -1
	s.elapsed = 0
	s.topUp()
	s.prepared = true

	s.logger.Debug("new game",
		"buildings", len(world.Buildings),
		"supplies", len(s.scene.Supplies),
		"cash", len(s.scene.Cash))
}

// setWorld installs a layout and rebuilds the components that depend on it.
func (s *Session) setWorld(w city.World) {
	s.world = w
	s.planner = spawn.NewPlanner(s.cfg, s.world, &s.scene, s.rng, s.logger)
	s.ai = pursuit.New(s.cfg, s.world, s.rng)
	s.resolver = interact.New(s.cfg, s.world, s.rng)
}

// Step runs one tick: apply the frame's intents, then, while playing,
// move, spawn, pursue, resolve contacts and decay.
func (s *Session) Step(in core.InputFrame) core.StepResult {
	now := s.clock.Now()
	s.tick++
	s.tickEvents = s.tickEvents[:0]

	s.applyCommand(in, now)

	if s.machine.Is(state.Playing) {
		s.movePlayer(in.Move)
		s.spawn(now)
		s.scene.Police = s.ai.UpdateAll(s.scene.Police, s.scene.Player.Pos, now)
		s.scene.Particles = entity.UpdateParticles(s.scene.Particles)

		out := s.resolver.Resolve(&s.scene, now)
		s.emit(out.Events...)
		if out.Transition != nil {
			s.transition(*out.Transition, now)
		}

		if s.machine.Is(state.Playing) {
			s.decay(now)
		}
	}

	s.elapsed = s.machine.Elapsed(now)

	events := make([]core.Event, len(s.tickEvents))
	copy(events, s.tickEvents)
	return core.StepResult{State: s.State(), Events: events}
}

// applyCommand maps the frame's discrete command onto the current state.
func (s *Session) applyCommand(in core.InputFrame, now time.Time) {
	cur := s.machine.Current()

	switch in.Command {
	case core.CommandInteract:
		switch cur {
		case state.Menu:
			s.machine.Request(state.Playing, now, state.Payload{})
		case state.Shop:
			s.CloseShop()
		case state.GameOver:
			s.NewGame()
			s.machine.Request(state.Playing, now, state.Payload{})
		}

	case core.CommandPause:
		switch cur {
		case state.Playing:
			s.machine.Request(state.Paused, now, state.Payload{})
		case state.Paused:
			s.machine.Request(state.Playing, now, state.Payload{})
		}

	case core.CommandBack:
		switch cur {
		case state.Playing:
			s.machine.Request(state.Paused, now, state.Payload{})
		case state.Paused, state.GameOver:
			if s.machine.Request(state.Menu, now, state.Payload{}) {
				s.NewGame()
			}
		case state.Shop:
			s.CloseShop()
		}

	case core.CommandBuy:
		if cur == state.Shop {
			// Failures are reported through EventPurchaseDenied.
			_ = s.BuySupply(in.Offer)
		}
	}
}

// movePlayer moves by one step in the requested direction, clamped so the
// player stays fully on the canvas. Buildings are handled by push-out.
func (s *Session) movePlayer(dir core.Vec) {
	p := &s.scene.Player
	if dir == (core.Vec{}) {
		return
	}
	next := p.Pos.Add(dir.Normalize().Scale(p.Speed))
	p.Pos = core.V(
		core.ClampF(next.X, p.Size, s.world.Width-p.Size),
		core.ClampF(next.Y, p.Size, s.world.Height-p.Size),
	)
}

func (s *Session) topUp() {
	s.planner.TopUp(entity.KindSupply, s.cfg.Supply.Count)
	s.planner.TopUp(entity.KindCash, s.cfg.Cash.Count)
}

func (s *Session) spawn(now time.Time) {
	s.topUp()
	if s.planner.SpawnPoliceIfDue(s.scene.Player.Money, now) {
		agent := s.scene.Police[len(s.scene.Police)-1]
		s.emit(core.Event{Kind: core.EventPoliceSpawned, Pos: agent.Pos})
	}
}

// decay drains buzz once per tick; faster the more the player has bought.
func (s *Session) decay(now time.Time) {
	p := &s.scene.Player
	loss := s.cfg.Mechanics.DecayBase + float64(s.scene.PurchaseCount)*s.cfg.Mechanics.DecayIncrement
	p.AddBuzz(-loss)

	if p.Buzz <= 0 {
		s.emit(core.Event{Kind: core.EventGameOver, Pos: p.Pos, Detail: string(state.ReasonWithdrawal)})
		s.transition(state.Transition{
			To:      state.GameOver,
			Payload: state.Payload{Reason: state.ReasonWithdrawal},
		}, now)
	}
}

// transition applies a requested state change and its side effects.
func (s *Session) transition(t state.Transition, now time.Time) {
	if !s.machine.Request(t.To, now, t.Payload) {
		return
	}

	switch t.To {
	case state.Shop:
		s.dealer = t.Payload.Dealer
	case state.GameOver:
		s.elapsed = s.machine.Elapsed(now)
		s.logger.Info("run ended",
			"reason", t.Payload.Reason,
			"survived", s.elapsed.Round(time.Millisecond),
			"money", s.scene.Player.Money,
			"purchases", s.scene.PurchaseCount)
	}
}

func (s *Session) emit(events ...core.Event) {
	s.tickEvents = append(s.tickEvents, events...)
	s.pending = append(s.pending, events...)
	if over := len(s.pending) - maxPendingEvents; over > 0 {
		s.pending = append(s.pending[:0], s.pending[over:]...)
	}
}

// Events drains the events emitted since the previous call.
func (s *Session) Events() []core.Event {
	out := s.pending
	s.pending = nil
	return out
}

// Current returns the coarse state.
func (s *Session) Current() state.State {
	return s.machine.Current()
}

// Reason returns why the last run ended, if it has.
func (s *Session) Reason() state.Reason {
	if !s.machine.Is(state.GameOver) {
		return state.ReasonNone
	}
	return s.machine.Payload().Reason
}

// Elapsed returns the play time as of the last Step.
func (s *Session) Elapsed() time.Duration {
	return s.elapsed
}

// Player returns a copy of the player.
func (s *Session) Player() entity.Player {
	return s.scene.Player
}

// PurchaseCount returns the number of shop purchases made this run.
func (s *Session) PurchaseCount() int {
	return s.scene.PurchaseCount
}

// Tick returns the number of Steps taken.
func (s *Session) Tick() uint64 {
	return s.tick
}

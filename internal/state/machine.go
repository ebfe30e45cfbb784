// Package state holds the coarse session state machine and the play clock.
package state

import (
	"time"

	"github.com/charmbracelet/log"
)

// State is a coarse session state.
type State int

const (
	Initializing State = iota
	Menu
	Playing
	Paused
	Shop
	GameOver
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "INITIALIZING"
	case Menu:
		return "MENU"
	case Playing:
		return "PLAYING"
	case Paused:
		return "PAUSED"
	case Shop:
		return "SHOP"
	case GameOver:
		return "GAME_OVER"
	default:
		return "UNKNOWN"
	}
}

// Reason explains why a run ended.
type Reason string

const (
	ReasonNone         Reason = ""
	ReasonBusted       Reason = "BUSTED"
	ReasonWithdrawal   Reason = "WITHDRAWAL"
	ReasonDealerKilled Reason = "DEALER_KILLED"
)

// Payload travels with a transition.
type Payload struct {
	Reason Reason // set when entering GameOver
	Dealer int    // dealer index when entering Shop
}

// Transition is a requested move to another state.
type Transition struct {
	To      State
	Payload Payload
}

var transitions = map[State][]State{
	Initializing: {Menu},
	Menu:         {Playing},
	Playing:      {Paused, Shop, GameOver},
	Paused:       {Playing, Menu},
	Shop:         {Playing},
	GameOver:     {Menu, Playing},
}

// Allowed reports whether from -> to is in the transition table.
func Allowed(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Machine tracks the current state and drives the play clock.
type Machine struct {
	current   State
	previous  State
	changedAt time.Time
	payload   Payload
	clock     Clock
	logger    *log.Logger
}

// NewMachine returns a machine in Initializing.
func NewMachine(logger *log.Logger) *Machine {
	if logger == nil {
		logger = log.Default()
	}
	return &Machine{
		current:  Initializing,
		previous: Initializing,
		logger:   logger,
	}
}

// Request moves to state to if the table allows it. Illegal requests
// change nothing and return false.
func (m *Machine) Request(to State, now time.Time, p Payload) bool {
	from := m.current
	if !Allowed(from, to) {
		m.logger.Debug("illegal transition ignored", "from", from, "to", to)
		return false
	}

	switch to {
	case Playing:
		if from == Paused || from == Shop {
			m.clock.Resume(now)
		} else {
			m.clock.Start(now)
		}
	case Paused, Shop, GameOver:
		m.clock.Freeze(now)
	}

	m.previous = from
	m.current = to
	m.changedAt = now
	m.payload = p

	m.logger.Debug("state changed", "from", from, "to", to, "reason", p.Reason)
	return true
}

// Current returns the current state.
func (m *Machine) Current() State { return m.current }

// Previous returns the state before the last transition.
func (m *Machine) Previous() State { return m.previous }

// ChangedAt returns when the last transition happened.
func (m *Machine) ChangedAt() time.Time { return m.changedAt }

// Payload returns the payload of the last transition.
func (m *Machine) Payload() Payload { return m.payload }

// Is reports whether the machine is in s.
func (m *Machine) Is(s State) bool { return m.current == s }

// Elapsed returns the play time at now.
func (m *Machine) Elapsed(now time.Time) time.Duration {
	return m.clock.Elapsed(now)
}

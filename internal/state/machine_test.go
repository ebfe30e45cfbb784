package state

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func newMachine() *Machine {
	return NewMachine(log.New(io.Discard))
}

func TestTransitionTable(t *testing.T) {
	all := []State{Initializing, Menu, Playing, Paused, Shop, GameOver}
	legal := map[[2]State]bool{
		{Initializing, Menu}: true,
		{Menu, Playing}:      true,
		{Playing, Paused}:    true,
		{Playing, Shop}:      true,
		{Playing, GameOver}:  true,
		{Paused, Playing}:    true,
		{Paused, Menu}:       true,
		{Shop, Playing}:      true,
		{GameOver, Menu}:     true,
		{GameOver, Playing}:  true,
	}

	for _, from := range all {
		for _, to := range all {
			if got := Allowed(from, to); got != legal[[2]State{from, to}] {
				t.Errorf("Allowed(%v, %v) = %v", from, to, got)
			}
		}
	}
}

func TestIllegalRequestIsNoOp(t *testing.T) {
	m := newMachine()
	m.Request(Menu, t0, Payload{})

	if m.Request(Shop, t0.Add(time.Second), Payload{Dealer: 2}) {
		t.Fatal("MENU -> SHOP should be refused")
	}
	if m.Current() != Menu || m.Previous() != Initializing {
		t.Errorf("state changed on illegal request: %v (prev %v)", m.Current(), m.Previous())
	}
	if !m.ChangedAt().Equal(t0) {
		t.Error("illegal request should not touch the transition time")
	}
}

func TestRequestRecordsPayload(t *testing.T) {
	m := newMachine()
	m.Request(Menu, t0, Payload{})
	m.Request(Playing, t0, Payload{})

	if !m.Request(GameOver, t0.Add(time.Minute), Payload{Reason: ReasonBusted}) {
		t.Fatal("PLAYING -> GAME_OVER should be allowed")
	}
	if m.Payload().Reason != ReasonBusted {
		t.Errorf("Reason = %q", m.Payload().Reason)
	}
	if !m.Is(GameOver) || m.Previous() != Playing {
		t.Error("unexpected current/previous state")
	}
}

func TestPlayClock(t *testing.T) {
	m := newMachine()
	m.Request(Menu, t0, Payload{})
	m.Request(Playing, t0, Payload{})

	if e := m.Elapsed(t0.Add(10 * time.Second)); e != 10*time.Second {
		t.Errorf("running elapsed = %v", e)
	}

	// Pause for a minute; the clock must not advance.
	m.Request(Paused, t0.Add(10*time.Second), Payload{})
	if e := m.Elapsed(t0.Add(70 * time.Second)); e != 10*time.Second {
		t.Errorf("paused elapsed = %v, expected 10s", e)
	}

	// Resume continues from 10s.
	m.Request(Playing, t0.Add(70*time.Second), Payload{})
	if e := m.Elapsed(t0.Add(75 * time.Second)); e != 15*time.Second {
		t.Errorf("resumed elapsed = %v, expected 15s", e)
	}

	// A shop visit also freezes and resumes.
	m.Request(Shop, t0.Add(75*time.Second), Payload{Dealer: 1})
	m.Request(Playing, t0.Add(90*time.Second), Payload{})
	if e := m.Elapsed(t0.Add(95 * time.Second)); e != 20*time.Second {
		t.Errorf("after shop elapsed = %v, expected 20s", e)
	}

	// Game over freezes, restart starts fresh.
	m.Request(GameOver, t0.Add(100*time.Second), Payload{Reason: ReasonWithdrawal})
	if e := m.Elapsed(t0.Add(200 * time.Second)); e != 25*time.Second {
		t.Errorf("game over elapsed = %v, expected 25s", e)
	}
	m.Request(Playing, t0.Add(200*time.Second), Payload{})
	if e := m.Elapsed(t0.Add(201 * time.Second)); e != time.Second {
		t.Errorf("restart elapsed = %v, expected 1s", e)
	}
}

func TestPausedToMenuThenNewGameStartsFresh(t *testing.T) {
	m := newMachine()
	m.Request(Menu, t0, Payload{})
	m.Request(Playing, t0, Payload{})
	m.Request(Paused, t0.Add(30*time.Second), Payload{})
	m.Request(Menu, t0.Add(40*time.Second), Payload{})
	m.Request(Playing, t0.Add(50*time.Second), Payload{})

	if e := m.Elapsed(t0.Add(51 * time.Second)); e != time.Second {
		t.Errorf("elapsed = %v, expected fresh clock", e)
	}
}

func TestStateString(t *testing.T) {
	if GameOver.String() != "GAME_OVER" || State(42).String() != "UNKNOWN" {
		t.Error("unexpected state names")
	}
}

func TestZeroClock(t *testing.T) {
	var c Clock
	if c.Running() || c.Elapsed(t0) != 0 {
		t.Error("zero clock should be stopped at zero")
	}
	c.Freeze(t0)
	if c.Elapsed(t0.Add(time.Hour)) != 0 {
		t.Error("freezing a stopped clock keeps zero")
	}
}

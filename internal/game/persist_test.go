package game

import (
	"io"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/on-the-run/internal/config"
	"github.com/vovakirdan/on-the-run/internal/core"
	"github.com/vovakirdan/on-the-run/internal/entity"
	"github.com/vovakirdan/on-the-run/internal/snapshot"
	"github.com/vovakirdan/on-the-run/internal/state"
)

func TestSnapshotRoundTrip(t *testing.T) {
	s, clk := newTestSession(t, config.Default(), 3)
	for i := 0; i < 60; i++ {
		step(s, clk, scriptedInput(i))
	}
	if s.Current() != state.Playing {
		t.Fatalf("expected the run to still be going, got %v", s.Current())
	}
	s.scene.Player.Money = 1600
	s.scene.PurchaseCount = 2
	step(s, clk, idle()) // let an agent spawn

	want := s.Snapshot()
	if len(want.Police) == 0 {
		t.Fatal("expected at least one police agent in the snapshot")
	}

	blob, err := snapshot.Encode(want)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := snapshot.Decode(blob)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	restored := New(config.Default(),
		WithRand(core.NewRand(99)),
		WithClock(clk),
		WithLogger(log.New(io.Discard)))
	restored.Restore(decoded)
	restored.Init()

	if restored.Current() != state.Menu {
		t.Errorf("restored session should wait in MENU, got %v", restored.Current())
	}
	if got := restored.Snapshot(); !reflect.DeepEqual(got, want) {
		t.Errorf("restored snapshot differs:\ngot:  %+v\nwant: %+v", got, want)
	}
	if !reflect.DeepEqual(restored.world, s.world) {
		t.Error("restored city differs from the saved one")
	}
	for _, ag := range restored.scene.Police {
		if ag.Mode != entity.ModePatrol {
			t.Error("restored police should start on patrol")
		}
	}

	if restored.Player().Money != want.Player.Money || restored.PurchaseCount() != 2 {
		t.Error("restored run lost money or purchases")
	}

	// Continue the restored run.
	step(restored, clk, command(core.CommandInteract))
	if restored.Current() != state.Playing {
		t.Errorf("state = %v, expected PLAYING", restored.Current())
	}
}

func TestRestoreWithoutBuildingsGeneratesCity(t *testing.T) {
	s, _ := newTestSession(t, config.Default(), 5)

	d := snapshot.Data{
		Version:  snapshot.Version,
		Player:   snapshot.Player{X: 300, Y: 300, Money: 80, Buzz: 60},
		Supplies: []snapshot.Supply{{X: 40, Y: 40, Size: 8, Cost: 15}},
	}
	s.Restore(d)

	if s.world.Empty() {
		t.Error("a save without buildings should get a fresh city")
	}
	p := s.Player()
	if p.Pos != core.V(300, 300) || p.Money != 80 || p.Buzz != 60 {
		t.Errorf("player = %+v", p)
	}
	if len(s.scene.Supplies) != 1 {
		t.Errorf("supplies = %d, expected 1", len(s.scene.Supplies))
	}
}

func TestRestoreClampsBuzz(t *testing.T) {
	s, _ := newTestSession(t, openCity(), 1)
	s.Restore(snapshot.Data{Player: snapshot.Player{X: 50, Y: 50, Buzz: 500}})

	if s.Player().Buzz != s.Player().MaxBuzz {
		t.Errorf("buzz = %v, expected capped at %v", s.Player().Buzz, s.Player().MaxBuzz)
	}
}

func TestInitAfterRestoreKeepsSave(t *testing.T) {
	clk := core.NewManualClock(t0)
	s := New(openCity(), WithRand(core.NewRand(1)), WithClock(clk), WithLogger(log.New(io.Discard)))

	s.Restore(snapshot.Data{Player: snapshot.Player{X: 222, Y: 111, Money: 5, Buzz: 40}})
	s.Init()

	if s.Player().Pos != core.V(222, 111) {
		t.Errorf("Init discarded the restored run: player at %v", s.Player().Pos)
	}
}

func TestRestoreUnknownStyleFallsBackToWidth(t *testing.T) {
	w := restoreWorld(800, 600, 40, snapshot.Data{
		Buildings: []snapshot.Building{
			{X: 1, Y: 1, Width: 50, Height: 10, Style: ""},
			{X: 1, Y: 1, Width: 30, Height: 10, Style: ""},
		},
	})
	if w.Buildings[0].Style != "large" || w.Buildings[1].Style != "small" {
		t.Errorf("styles = %q, %q", w.Buildings[0].Style, w.Buildings[1].Style)
	}
}

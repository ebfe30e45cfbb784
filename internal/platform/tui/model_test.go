package tui

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/on-the-run/internal/config"
	"github.com/vovakirdan/on-the-run/internal/core"
	"github.com/vovakirdan/on-the-run/internal/game"
	"github.com/vovakirdan/on-the-run/internal/state"
	"github.com/vovakirdan/on-the-run/internal/storage"
)

func quietCity() config.Config {
	cfg := config.Default()
	cfg.City.BlockSize = 1000
	cfg.Supply.Count = 0
	cfg.Cash.Count = 0
	return cfg
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestModel(t *testing.T, cfg config.Config, store *storage.Store, slot string) (Model, *game.Session) {
	t.Helper()
	s := game.New(cfg,
		game.WithClock(core.NewManualClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))),
		game.WithLogger(log.New(io.Discard)))
	m := NewModel(s, Options{
		Store:         store,
		Slot:          slot,
		Runtime:       core.RuntimeConfig{ScreenW: 80, ScreenH: 25, TickRate: 60, Seed: 1},
		Theme:         MonochromeTheme(),
		Logger:        log.New(io.Discard),
		ScreenshotDir: t.TempDir(),
	})
	return m, s
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		if m, ok = next.(Model); !ok {
			t.Fatalf("Update returned %T", next)
		}
	}
	return m
}

var tick = TickMsg{}

func TestModelStartsInMenu(t *testing.T) {
	m, s := newTestModel(t, quietCity(), nil, "")

	if s.Current() != state.Menu {
		t.Fatalf("state = %v, expected MENU", s.Current())
	}
	if m.slot != DefaultSlot {
		t.Errorf("slot = %q, expected %q", m.slot, DefaultSlot)
	}
	if m.Init() == nil {
		t.Error("Init should start the tick loop")
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter}, tick)
	if s.Current() != state.Playing {
		t.Errorf("state = %v, expected PLAYING after enter", s.Current())
	}
}

func TestModelMovesPlayer(t *testing.T) {
	m, s := newTestModel(t, quietCity(), nil, "")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter}, tick)
	start := s.Player().Pos

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRight}, tick, tick, tick)

	if s.Player().Pos.X <= start.X {
		t.Errorf("player did not move right: %v -> %v", start, s.Player().Pos)
	}
	if s.Player().Pos.Y != start.Y {
		t.Errorf("player drifted vertically: %v -> %v", start, s.Player().Pos)
	}
}

func TestModelSavesOnPause(t *testing.T) {
	store := openStore(t)
	m, _ := newTestModel(t, quietCity(), store, "alice")

	send(t, m, tea.KeyMsg{Type: tea.KeyEnter}, tick, runeKey('p'), tick)

	if _, err := store.LoadSession("alice"); err != nil {
		t.Errorf("expected a save after pausing: %v", err)
	}
}

func TestModelSavesOnQuitAndResumes(t *testing.T) {
	store := openStore(t)
	m, s := newTestModel(t, quietCity(), store, "bob")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter}, tick, tea.KeyMsg{Type: tea.KeyDown}, tick, tick)
	pos := s.Player().Pos

	_, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit should return tea.Quit")
	}

	_, resumed := newTestModel(t, quietCity(), store, "bob")
	if resumed.Player().Pos != pos {
		t.Errorf("resumed at %v, expected %v", resumed.Player().Pos, pos)
	}
	if resumed.Current() != state.Menu {
		t.Errorf("resumed state = %v, expected MENU", resumed.Current())
	}

	_, fresh := newTestModel(t, quietCity(), store, "carol")
	if fresh.Player().Pos == pos {
		t.Error("another slot should not see bob's run")
	}
}

func TestModelFreshIgnoresSave(t *testing.T) {
	store := openStore(t)
	m, s := newTestModel(t, quietCity(), store, "dave")
	send(t, m, tea.KeyMsg{Type: tea.KeyEnter}, tick, tea.KeyMsg{Type: tea.KeyLeft}, tick, tick, runeKey('p'), tick)
	saved := s.Player().Pos

	fresh := game.New(quietCity(), game.WithLogger(log.New(io.Discard)))
	NewModel(fresh, Options{Store: store, Slot: "dave", Fresh: true, Logger: log.New(io.Discard)})

	if fresh.Player().Pos == saved {
		t.Error("a fresh start should not resume the save")
	}
}

func TestModelRecordsRunOnGameOver(t *testing.T) {
	cfg := quietCity()
	cfg.Player.InitialBuzz = 0.5
	cfg.Mechanics.DecayBase = 1

	store := openStore(t)
	m, s := newTestModel(t, cfg, store, "erin")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter}, tick)

	if s.Current() != state.GameOver {
		t.Fatalf("state = %v, expected GAME_OVER", s.Current())
	}
	runs, err := store.TopRuns(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("recorded %d runs, expected 1", len(runs))
	}
	if runs[0].Slot != "erin" || runs[0].Reason != string(state.ReasonWithdrawal) {
		t.Errorf("run = %+v", runs[0])
	}
	if _, err := store.LoadSession("erin"); !errors.Is(err, storage.ErrNoSave) {
		t.Errorf("a finished run should leave no save, got %v", err)
	}

	// Staying on the game over screen records nothing more.
	send(t, m, tick, tick)
	if runs, _ := store.TopRuns(10); len(runs) != 1 {
		t.Errorf("recorded %d runs, expected 1", len(runs))
	}
}

func TestModelWithoutStore(t *testing.T) {
	cfg := quietCity()
	cfg.Player.InitialBuzz = 0.5
	cfg.Mechanics.DecayBase = 1

	m, s := newTestModel(t, cfg, nil, "")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter}, tick, runeKey('q'))

	if s.Current() != state.GameOver {
		t.Errorf("state = %v", s.Current())
	}
	if m.View() != "" {
		t.Error("View should be empty after quitting")
	}
}

func TestModelScreenshot(t *testing.T) {
	m, _ := newTestModel(t, quietCity(), nil, "")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	entries, err := os.ReadDir(m.shotDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || !strings.HasPrefix(entries[0].Name(), game.IDDefault+"_") {
		t.Fatalf("screenshot files = %v", entries)
	}
	data, err := os.ReadFile(filepath.Join(m.shotDir, entries[0].Name()))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "ON THE RUN") {
		t.Error("screenshot should contain the menu")
	}
}

func TestModelResizeKeepsRun(t *testing.T) {
	m, s := newTestModel(t, quietCity(), nil, "")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter}, tick)
	before := s.Snapshot()

	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	if m.screen.Width() != 120 || m.screen.Height() != 39 {
		t.Errorf("screen = %dx%d, expected 120x39", m.screen.Width(), m.screen.Height())
	}
	if s.Current() != state.Playing || s.Player().Pos != core.V(before.Player.X, before.Player.Y) {
		t.Error("resizing should not restart the run")
	}
}

func TestModelViewHasStatusLine(t *testing.T) {
	m, _ := newTestModel(t, quietCity(), nil, "")

	lines := strings.Split(m.View(), "\n")
	if len(lines) != 25 {
		t.Fatalf("view has %d lines, expected 25", len(lines))
	}
	if !strings.Contains(lines[24], "quit") {
		t.Errorf("status line = %q, expected the key help", lines[24])
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		event core.Event
		want  string
		warn  bool
	}{
		{core.Event{Kind: core.EventPickup, Amount: 15}, "Scored a bag (-$15)", false},
		{core.Event{Kind: core.EventCashCollected, Amount: 40}, "Found $40", false},
		{core.Event{Kind: core.EventPurchase, Amount: 30}, "Bought for $30", false},
		{core.Event{Kind: core.EventPurchaseDenied, Detail: game.ErrInsufficientFunds.Error()}, "Can't buy: insufficient funds", true},
		{core.Event{Kind: core.EventShopDenied, Amount: 4.2}, "Dealer is lying low. Come back in 4s", true},
		{core.Event{Kind: core.EventShopClosed}, "", false},
		{core.Event{Kind: core.EventGameOver}, "", false},
	}
	for _, tc := range tests {
		t.Run(tc.event.Kind.String(), func(t *testing.T) {
			got, warn := statusFor(tc.event)
			if got != tc.want || warn != tc.warn {
				t.Errorf("statusFor = %q, %v; expected %q, %v", got, warn, tc.want, tc.warn)
			}
		})
	}
}

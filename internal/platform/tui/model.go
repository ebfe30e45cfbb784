package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/on-the-run/internal/core"
	"github.com/vovakirdan/on-the-run/internal/game"
	"github.com/vovakirdan/on-the-run/internal/state"
	"github.com/vovakirdan/on-the-run/internal/storage"
)

// DefaultSlot is the save slot used when none is given.
const DefaultSlot = "local"

// statusSeconds is how long a status message stays on screen.
const statusSeconds = 2

// Options configures a Model.
type Options struct {
	Store         *storage.Store // nil disables saving
	Slot          string
	Runtime       core.RuntimeConfig
	Theme         Theme
	Logger        *log.Logger
	Fresh         bool   // ignore any saved session in the slot
	ScreenshotDir string // defaults to ~/.ontherun/screenshots
}

// Model is the Bubble Tea model for one player's session.
type Model struct {
	session *game.Session
	keys    *KeyMapper
	help    help.Model
	theme   Theme
	painter *painter
	screen  *core.Screen
	store   *storage.Store
	slot    string
	logger  *log.Logger
	config  core.RuntimeConfig
	shotDir string

	inputFrame core.InputFrame
	status     string
	statusWarn bool
	statusTTL  int
	quitting   bool
}

// NewModel prepares the session and wraps it in a Bubble Tea model.
// A saved session in the slot is resumed unless Fresh is set. Storage
// failures are logged and the player gets a fresh run.
func NewModel(s *game.Session, opts Options) Model {
	cfg := opts.Runtime
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Slot == "" {
		opts.Slot = DefaultSlot
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Theme.Cells == nil {
		opts.Theme = DefaultTheme()
	}
	if opts.ScreenshotDir == "" {
		opts.ScreenshotDir = filepath.Join(os.Getenv("HOME"), ".ontherun", "screenshots")
	}

	m := Model{
		session: s,
		keys:    NewKeyMapper(DefaultKeyMap()),
		help:    help.New(),
		theme:   opts.Theme,
		painter: newPainter(opts.Theme),
		screen:  core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 0)),
		store:   opts.Store,
		slot:    opts.Slot,
		logger:  opts.Logger,
		config:  cfg,
		shotDir: opts.ScreenshotDir,
	}

	s.Reset(cfg)
	if !opts.Fresh {
		m.resume()
	}
	return m
}

// resume restores the slot's saved session, if any.
func (m *Model) resume() {
	if m.store == nil {
		return
	}
	d, err := m.store.LoadSession(m.slot)
	switch {
	case errors.Is(err, storage.ErrNoSave):
		return
	case err != nil:
		m.logger.Warn("could not load saved session, starting fresh", "slot", m.slot, "error", err)
		return
	}
	m.session.Restore(d)
	m.setStatus("Welcome back. Press enter to continue your run", false)
	m.logger.Info("session resumed", "slot", m.slot)
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	res := m.keys.MapKeyToFrame(msg, &m.inputFrame)
	switch {
	case res.Quit:
		if m.session.Current() != state.GameOver {
			m.persist("quit")
		}
		m.quitting = true
		return m, tea.Quit
	case res.Screenshot:
		m.saveScreenshot()
	}
	return m, nil
}

// handleResize keeps the run going at the new size; the view rescales.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-1, 0))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	prev := m.session.Current()
	if prev == state.Playing {
		m.keys.Fill(&m.inputFrame)
	}

	m.session.Step(m.inputFrame)
	m.inputFrame.Clear()

	for _, e := range m.session.Events() {
		if text, warn := statusFor(e); text != "" {
			m.setStatus(text, warn)
		}
	}
	if m.statusTTL > 0 {
		m.statusTTL--
	}

	if cur := m.session.Current(); cur != prev {
		if cur != state.Playing {
			m.keys.Stop()
		}
		switch cur {
		case state.Paused:
			m.persist("pause")
		case state.GameOver:
			m.recordRun()
		}
	}

	return m, tickCmd(m.config.TickRate)
}

func (m *Model) setStatus(text string, warn bool) {
	m.status = text
	m.statusWarn = warn
	m.statusTTL = statusSeconds * m.config.TickRate
}

// persist saves the session to the slot. Failures never stop the game.
func (m *Model) persist(on string) {
	if m.store == nil {
		return
	}
	if err := m.store.SaveSession(m.slot, m.session.Snapshot()); err != nil {
		m.logger.Warn("could not save session", "slot", m.slot, "on", on, "error", err)
		return
	}
	m.logger.Debug("session saved", "slot", m.slot, "on", on)
}

// recordRun stores the finished run and clears the slot: a run that has
// ended cannot be resumed.
func (m *Model) recordRun() {
	if m.store == nil {
		return
	}
	run := storage.Run{
		Slot:      m.slot,
		Reason:    string(m.session.Reason()),
		Survival:  m.session.Elapsed(),
		Money:     m.session.Player().Money,
		Purchases: m.session.PurchaseCount(),
	}
	if _, err := m.store.SaveRun(run); err != nil {
		m.logger.Warn("could not record run", "slot", m.slot, "error", err)
	}
	if err := m.store.DeleteSession(m.slot); err != nil {
		m.logger.Warn("could not clear save", "slot", m.slot, "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.session.Render(m.screen)

	if err := os.MkdirAll(m.shotDir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.shotDir, fmt.Sprintf("%s_%s.txt", m.session.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.setStatus("Screenshot saved to "+path, false)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.session.Render(m.screen)
	return m.painter.paint(m.screen) + "\n" + m.statusLine()
}

func (m Model) statusLine() string {
	if m.statusTTL > 0 && m.status != "" {
		if m.statusWarn {
			return m.theme.StatusWarn.Render(" " + m.status)
		}
		return m.theme.Status.Render(" " + m.status)
	}
	return m.theme.Help.Render(" " + m.help.View(m.keys.Keys()))
}

// statusFor turns an event into a status message.
func statusFor(e core.Event) (text string, warn bool) {
	switch e.Kind {
	case core.EventPickup:
		return fmt.Sprintf("Scored a bag (-$%.0f)", e.Amount), false
	case core.EventCashCollected:
		return fmt.Sprintf("Found $%.0f", e.Amount), false
	case core.EventPurchase:
		return fmt.Sprintf("Bought for $%.0f", e.Amount), false
	case core.EventPurchaseDenied:
		return "Can't buy: " + strings.TrimPrefix(e.Detail, "game: "), true
	case core.EventPoliceSpawned:
		return "Police are on the streets", true
	case core.EventShopDenied:
		return fmt.Sprintf("Dealer is lying low. Come back in %.0fs", e.Amount), true
	}
	return "", false
}

// Run starts the Bubble Tea program for the session.
func Run(s *game.Session, opts Options) error {
	model := NewModel(s, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}

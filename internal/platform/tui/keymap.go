package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/on-the-run/internal/core"
)

// moveHoldTicks is how long a single movement key press keeps the player
// walking. Terminals report held keys as a stream of repeats, so a press
// has to outlive the gap between them.
const moveHoldTicks = 12

// KeyMap holds the key bindings for the game.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Interact   key.Binding
	Pause      key.Binding
	Back       key.Binding
	Buy        key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default bindings: WASD or arrows to move.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("w", "up"),
			key.WithHelp("↑/w", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("s", "down"),
			key.WithHelp("↓/s", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("a", "left"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("d", "right"),
			key.WithHelp("→/d", "right"),
		),
		Interact: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "start/leave"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		Buy: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "buy"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns keybindings to be shown in the mini help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Interact, k.Pause, k.Buy, k.Back, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Interact, k.Pause, k.Back, k.Buy},
		{k.Screenshot, k.Quit},
	}
}

// KeyResult describes what a key press asks of the host.
type KeyResult struct {
	Quit       bool
	Screenshot bool
}

// KeyMapper translates Bubble Tea key messages into input frames.
// It remembers recent movement per axis so held keys and diagonals
// survive between key repeats.
type KeyMapper struct {
	keys KeyMap

	dx, dy     float64
	ttlX, ttlY int
}

// NewKeyMapper creates a new key mapper with the given bindings.
func NewKeyMapper(keys KeyMap) *KeyMapper {
	return &KeyMapper{keys: keys}
}

// Keys returns the bindings in use.
func (km *KeyMapper) Keys() KeyMap {
	return km.keys
}

// MapKeyToFrame updates an input frame based on a key message.
// Movement keys are remembered and written by Fill instead.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) KeyResult {
	switch {
	case key.Matches(msg, km.keys.Quit):
		return KeyResult{Quit: true}
	case key.Matches(msg, km.keys.Screenshot):
		return KeyResult{Screenshot: true}

	case key.Matches(msg, km.keys.Up):
		km.dy, km.ttlY = -1, moveHoldTicks
	case key.Matches(msg, km.keys.Down):
		km.dy, km.ttlY = 1, moveHoldTicks
	case key.Matches(msg, km.keys.Left):
		km.dx, km.ttlX = -1, moveHoldTicks
	case key.Matches(msg, km.keys.Right):
		km.dx, km.ttlX = 1, moveHoldTicks

	case key.Matches(msg, km.keys.Interact):
		frame.SetCommand(core.CommandInteract)
	case key.Matches(msg, km.keys.Pause):
		frame.SetCommand(core.CommandPause)
	case key.Matches(msg, km.keys.Back):
		frame.SetCommand(core.CommandBack)
	case key.Matches(msg, km.keys.Buy):
		// Offers are listed from 1; the frame holds a zero-based index.
		frame.SetBuy(int(msg.String()[0] - '1'))
	}
	return KeyResult{}
}

// Fill writes the remembered movement into the frame and ages it by one tick.
func (km *KeyMapper) Fill(frame *core.InputFrame) {
	var dx, dy float64
	if km.ttlX > 0 {
		dx = km.dx
		km.ttlX--
	}
	if km.ttlY > 0 {
		dy = km.dy
		km.ttlY--
	}
	if dx != 0 || dy != 0 {
		frame.SetMove(dx, dy)
	}
}

// Stop forgets any remembered movement.
func (km *KeyMapper) Stop() {
	km.ttlX, km.ttlY = 0, 0
}

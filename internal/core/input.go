package core

// Command is a discrete intent collected between frames.
// Only one command survives per frame; the last one written wins.
type Command int

const (
	CommandNone     Command = iota
	CommandInteract         // Enter, Space - start, leave shop, restart
	CommandPause            // P - toggle pause
	CommandBack             // Esc, B - back out of the current screen
	CommandBuy              // 1..9 in the shop, index in InputFrame.Offer
	CommandQuit             // Q, Ctrl+C - handled by the host
)

// String returns a human-readable name for the command.
func (c Command) String() string {
	switch c {
	case CommandNone:
		return "None"
	case CommandInteract:
		return "Interact"
	case CommandPause:
		return "Pause"
	case CommandBack:
		return "Back"
	case CommandBuy:
		return "Buy"
	case CommandQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame holds the intents gathered since the previous tick.
// It is applied atomically at the start of the next Step.
type InputFrame struct {
	Move    Vec     // Desired direction; last write wins, normalized on use
	Command Command // Discrete command slot; last write wins
	Offer   int     // Shop offer index when Command is CommandBuy
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// SetMove records a movement direction, replacing any earlier one.
func (f *InputFrame) SetMove(dx, dy float64) {
	f.Move = Vec{X: dx, Y: dy}
}

// SetCommand records a discrete command, replacing any earlier one.
func (f *InputFrame) SetCommand(c Command) {
	f.Command = c
	f.Offer = 0
}

// SetBuy records a purchase of the given offer, replacing any earlier command.
func (f *InputFrame) SetBuy(offer int) {
	f.Command = CommandBuy
	f.Offer = offer
}

// Has returns true if the given command was triggered this frame.
func (f InputFrame) Has(c Command) bool {
	return c != CommandNone && f.Command == c
}

// Clear resets the frame for the next tick.
func (f *InputFrame) Clear() {
	*f = InputFrame{}
}

package core

// EventKind identifies something that happened during a tick.
// Hosts map events to sounds and status messages.
type EventKind int

const (
	EventPickup EventKind = iota
	EventCashCollected
	EventPurchase
	EventPurchaseDenied
	EventPoliceSpawned
	EventShopOpened
	EventShopDenied
	EventShopClosed
	EventGameOver
)

func (k EventKind) String() string {
	switch k {
	case EventPickup:
		return "pickup"
	case EventCashCollected:
		return "cash"
	case EventPurchase:
		return "purchase"
	case EventPurchaseDenied:
		return "purchase_denied"
	case EventPoliceSpawned:
		return "police_spawned"
	case EventShopOpened:
		return "shop_opened"
	case EventShopDenied:
		return "shop_denied"
	case EventShopClosed:
		return "shop_closed"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event is a single notification emitted by the simulation.
type Event struct {
	Kind   EventKind
	Pos    Vec     // where it happened, if anywhere
	Amount float64 // money or buzz involved, if any
	Detail string  // e.g. the game over reason
}

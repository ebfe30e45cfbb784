package entity

// Scene is the mutable cast of one run. The session owns it; the spawn
// planner, pursuit AI and interaction resolver operate on it in turn.
type Scene struct {
	Player    Player
	Supplies  []Supply
	Cash      []Cash
	Police    []Police
	Dealers   []Dealer
	Particles []Particle

	// PurchaseCount is the number of shop purchases made this run.
	// It drives price escalation and faster decay.
	PurchaseCount int
}

// Clone returns a deep copy of the scene.
func (s *Scene) Clone() Scene {
	return Scene{
		Player:        s.Player,
		Supplies:      append([]Supply(nil), s.Supplies...),
		Cash:          append([]Cash(nil), s.Cash...),
		Police:        append([]Police(nil), s.Police...),
		Dealers:       append([]Dealer(nil), s.Dealers...),
		Particles:     append([]Particle(nil), s.Particles...),
		PurchaseCount: s.PurchaseCount,
	}
}

// Pickups returns supplies and cash as bodies, supplies first.
func (s *Scene) Pickups() []Body {
	out := make([]Body, 0, len(s.Supplies)+len(s.Cash))
	for _, p := range s.Supplies {
		out = append(out, p)
	}
	for _, c := range s.Cash {
		out = append(out, c)
	}
	return out
}

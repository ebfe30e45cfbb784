package game

import (
	"time"

	"github.com/vovakirdan/on-the-run/internal/city"
	"github.com/vovakirdan/on-the-run/internal/entity"
	"github.com/vovakirdan/on-the-run/internal/state"
)

// OfferView is a shop offer at its current price.
type OfferView struct {
	Price      float64
	BuzzGain   float64
	Affordable bool
}

// View is a read-only copy of everything a renderer needs.
type View struct {
	Width, Height float64
	Buildings     []city.Building
	Streets       []city.Street

	Player        entity.Player
	Supplies      []entity.Supply
	Cash          []entity.Cash
	Police        []entity.Police
	Dealers       []entity.Dealer
	DealerReady   []bool // parallel to Dealers
	Particles     []entity.Particle
	PurchaseCount int

	State   state.State
	Reason  state.Reason
	Elapsed time.Duration

	Dealer int // open shop, -1 when none
	Offers []OfferView
}

// View returns a snapshot of the session for rendering.
func (s *Session) View() View {
	now := s.clock.Now()
	scene := s.scene.Clone()
	world := s.world.Clone()

	ready := make([]bool, len(scene.Dealers))
	for i, d := range scene.Dealers {
		ready[i] = !d.OnCooldown(now)
	}

	offers := make([]OfferView, len(s.cfg.Shop.Offers))
	for i, o := range s.cfg.Shop.Offers {
		price, _ := s.Price(i)
		offers[i] = OfferView{
			Price:      price,
			BuzzGain:   o.BuzzGain,
			Affordable: scene.Player.Money >= price,
		}
	}

	return View{
		Width:         world.Width,
		Height:        world.Height,
		Buildings:     world.Buildings,
		Streets:       world.Streets,
		Player:        scene.Player,
		Supplies:      scene.Supplies,
		Cash:          scene.Cash,
		Police:        scene.Police,
		Dealers:       scene.Dealers,
		DealerReady:   ready,
		Particles:     scene.Particles,
		PurchaseCount: scene.PurchaseCount,
		State:         s.machine.Current(),
		Reason:        s.Reason(),
		Elapsed:       s.elapsed,
		Dealer:        s.dealer,
		Offers:        offers,
	}
}

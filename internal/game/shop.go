package game

import (
	"errors"
	"math"

	"github.com/vovakirdan/on-the-run/internal/core"
	"github.com/vovakirdan/on-the-run/internal/entity"
	"github.com/vovakirdan/on-the-run/internal/state"
)

// Purchase errors. A failed purchase changes nothing.
var (
	ErrNotInShop         = errors.New("game: no shop is open")
	ErrUnknownOffer      = errors.New("game: unknown offer")
	ErrInsufficientFunds = errors.New("game: insufficient funds")
)

// otherDealerGap keeps a nudged player out of reach of neighbouring dealers.
const otherDealerGap = 15

// Price returns the current price of offer i. Every purchase this run
// makes every offer more expensive. ok is false for an unknown offer.
func (s *Session) Price(i int) (price float64, ok bool) {
	offers := s.cfg.Shop.Offers
	if i < 0 || i >= len(offers) {
		return 0, false
	}
	scale := 1 + float64(s.scene.PurchaseCount)*s.cfg.Shop.PriceMultiplier
	return math.Floor(offers[i].Cost * scale), true
}

// BuySupply buys offer i from the open shop.
func (s *Session) BuySupply(i int) error {
	if !s.machine.Is(state.Shop) {
		return s.denyPurchase(i, ErrNotInShop)
	}

	price, ok := s.Price(i)
	if !ok {
		return s.denyPurchase(i, ErrUnknownOffer)
	}

	p := &s.scene.Player
	if p.Money < price {
		return s.denyPurchase(i, ErrInsufficientFunds)
	}

	p.Money -= price
	p.AddBuzz(s.cfg.Shop.Offers[i].BuzzGain)
	s.scene.PurchaseCount++
	s.scene.Particles = append(s.scene.Particles,
		entity.SmokeBurst(p.Pos, s.cfg.Mechanics.SmokeParticles, s.rng)...)

	s.emit(core.Event{Kind: core.EventPurchase, Pos: p.Pos, Amount: price})
	s.logger.Debug("purchase", "offer", i, "price", price, "buzz", p.Buzz, "count", s.scene.PurchaseCount)
	return nil
}

func (s *Session) denyPurchase(i int, err error) error {
	s.emit(core.Event{
		Kind:   core.EventPurchaseDenied,
		Pos:    s.scene.Player.Pos,
		Amount: float64(i),
		Detail: err.Error(),
	})
	return err
}

// CloseShop leaves the open shop: the dealer goes on cooldown, the player
// is nudged away from the counter and play resumes. It returns false when
// no shop is open.
func (s *Session) CloseShop() bool {
	if !s.machine.Is(state.Shop) {
		return false
	}
	now := s.clock.Now()

	if s.dealer >= 0 && s.dealer < len(s.scene.Dealers) {
		d := &s.scene.Dealers[s.dealer]
		d.LastInteraction = now
		if pos, ok := s.exitPosition(s.dealer); ok {
			s.scene.Player.Pos = pos
		}
		s.emit(core.Event{Kind: core.EventShopClosed, Pos: d.Pos})
	}

	s.dealer = -1
	s.machine.Request(state.Playing, now, state.Payload{})
	return true
}

// exitPosition looks for a free spot on a ring around dealer di.
func (s *Session) exitPosition(di int) (core.Vec, bool) {
	d := s.scene.Dealers[di]
	p := s.scene.Player
	dist := d.Size + p.Size + s.cfg.Dealer.ExitClearance

	for attempt := 0; attempt < s.cfg.Dealer.ExitAttempts; attempt++ {
		angle := s.rng.Float64() * 2 * math.Pi
		pos := d.Pos.Add(core.V(math.Cos(angle), math.Sin(angle)).Scale(dist))

		if !s.world.Valid(pos, p.Size) {
			continue
		}
		if s.nearOtherDealer(pos, di) {
			continue
		}
		return pos, true
	}
	s.logger.Debug("no exit found, player stays", "dealer", di)
	return core.Vec{}, false
}

func (s *Session) nearOtherDealer(pos core.Vec, di int) bool {
	size := s.scene.Player.Size
	for j, other := range s.scene.Dealers {
		if j == di {
			continue
		}
		if core.Dist(pos, other.Pos) < other.Size+size+otherDealerGap {
			return true
		}
	}
	return false
}

// OpenDealer returns the index of the dealer whose shop is open, or -1.
func (s *Session) OpenDealer() int {
	return s.dealer
}

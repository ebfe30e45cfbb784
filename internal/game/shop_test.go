package game

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/on-the-run/internal/config"
	"github.com/vovakirdan/on-the-run/internal/core"
	"github.com/vovakirdan/on-the-run/internal/state"
)

func TestShopPriceEscalation(t *testing.T) {
	s, clk := newTestSession(t, openCity(), 1)
	startPlaying(t, s, clk)
	s.scene.Player.Money = 1000
	enterShop(t, s, clk, 0)

	// base 20, multiplier 0.5
	wantPrices := []float64{20, 30, 40, 50}
	for i, want := range wantPrices {
		price, ok := s.Price(0)
		if !ok || price != want {
			t.Fatalf("purchase %d: price = %v, expected %v", i, price, want)
		}
		before := s.Player().Money
		if err := s.BuySupply(0); err != nil {
			t.Fatalf("purchase %d: %v", i, err)
		}
		if got := s.Player().Money; got != before-want {
			t.Errorf("purchase %d: money = %v, expected %v", i, got, before-want)
		}
	}
	if s.PurchaseCount() != len(wantPrices) {
		t.Errorf("PurchaseCount() = %d", s.PurchaseCount())
	}
}

func TestShopPriceIsFloored(t *testing.T) {
	cfg := openCity()
	cfg.Shop.Offers = []config.Offer{{Cost: 25, BuzzGain: 10}}
	s, _ := newTestSession(t, cfg, 1)
	s.scene.PurchaseCount = 1

	// 25 * 1.5 = 37.5
	if price, _ := s.Price(0); price != 37 {
		t.Errorf("price = %v, expected 37", price)
	}
}

func TestBuySupplyGainsBuzzCapped(t *testing.T) {
	s, clk := newTestSession(t, openCity(), 1)
	startPlaying(t, s, clk)
	s.scene.Player.Buzz = 30
	enterShop(t, s, clk, 0)

	if err := s.BuySupply(0); err != nil {
		t.Fatal(err)
	}
	if got := s.Player().Buzz; got != 80 {
		t.Errorf("buzz = %v", got)
	}
	if len(s.scene.Particles) == 0 {
		t.Error("purchase should puff smoke")
	}

	s.scene.Player.Money = 1000
	if err := s.BuySupply(2); err != nil {
		t.Fatal(err)
	}
	if s.Player().Buzz != s.Player().MaxBuzz {
		t.Errorf("buzz should cap at %v, got %v", s.Player().MaxBuzz, s.Player().Buzz)
	}
}

func TestBuySupplyErrors(t *testing.T) {
	s, clk := newTestSession(t, openCity(), 1)
	startPlaying(t, s, clk)

	if err := s.BuySupply(0); !errors.Is(err, ErrNotInShop) {
		t.Errorf("outside the shop: %v, expected ErrNotInShop", err)
	}

	enterShop(t, s, clk, 0)
	s.Events()

	tests := []struct {
		name  string
		offer int
		want  error
	}{
		{"negative index", -1, ErrUnknownOffer},
		{"past the menu", 3, ErrUnknownOffer},
		{"too expensive", 2, ErrInsufficientFunds}, // 100 > 50
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			before := s.Player()
			count := s.PurchaseCount()

			err := s.BuySupply(tc.offer)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, expected %v", err, tc.want)
			}
			if s.Player() != before || s.PurchaseCount() != count {
				t.Error("failed purchase changed the run")
			}
			if !hasEvent(s.Events(), core.EventPurchaseDenied) {
				t.Error("expected a purchase denied event")
			}
			if s.Current() != state.Shop {
				t.Errorf("state = %v, expected SHOP", s.Current())
			}
		})
	}
}

func TestBuyThroughInputFrame(t *testing.T) {
	s, clk := newTestSession(t, openCity(), 1)
	startPlaying(t, s, clk)
	enterShop(t, s, clk, 0)

	res := step(s, clk, buy(0))
	if !hasEvent(res.Events, core.EventPurchase) {
		t.Errorf("expected a purchase event, got %v", res.Events)
	}
	if s.Player().Money != 30 {
		t.Errorf("money = %v, expected 30", s.Player().Money)
	}
}

func TestCloseShopStartsCooldownAndNudges(t *testing.T) {
	s, clk := newTestSession(t, openCity(), 1)
	startPlaying(t, s, clk)
	enterShop(t, s, clk, 4)

	if !s.CloseShop() {
		t.Fatal("CloseShop() = false with a shop open")
	}
	if s.Current() != state.Playing {
		t.Errorf("state = %v, expected PLAYING", s.Current())
	}
	if s.OpenDealer() != -1 {
		t.Error("no dealer should be open after closing")
	}

	d := s.scene.Dealers[4]
	if !d.LastInteraction.Equal(clk.Now()) {
		t.Errorf("LastInteraction = %v, expected %v", d.LastInteraction, clk.Now())
	}

	p := s.Player()
	want := d.Size + p.Size + s.cfg.Dealer.ExitClearance
	if got := core.Dist(p.Pos, d.Pos); math.Abs(got-want) > 1e-9 {
		t.Errorf("nudged to distance %v, expected %v", got, want)
	}

	// Walking straight back in hits the cooldown.
	s.scene.Player.Pos = d.Pos
	res := step(s, clk, idle())
	if s.Current() != state.Playing {
		t.Errorf("dealer on cooldown reopened the shop")
	}
	if !hasEvent(res.Events, core.EventShopDenied) {
		t.Error("expected a shop denied event")
	}

	clk.Advance(s.cfg.Dealer.Cooldown())
	step(s, clk, idle())
	if s.Current() != state.Shop {
		t.Errorf("state = %v, expected SHOP after the cooldown", s.Current())
	}
}

func TestCloseShopOutsideShop(t *testing.T) {
	s, clk := newTestSession(t, openCity(), 1)
	startPlaying(t, s, clk)

	if s.CloseShop() {
		t.Error("CloseShop() = true with no shop open")
	}
}

func TestNudgeKeepsClearOfOtherDealers(t *testing.T) {
	cfg := openCity()
	cfg.Dealer.Positions = []config.Point{{X: 200, Y: 200}, {X: 200, Y: 290}}

	s, clk := newTestSession(t, cfg, 7)
	startPlaying(t, s, clk)

	other := s.scene.Dealers[1]
	gap := other.Size + s.scene.Player.Size + otherDealerGap

	for i := 0; i < 50; i++ {
		s.scene.Player.Buzz = s.scene.Player.MaxBuzz
		enterShop(t, s, clk, 0)
		s.CloseShop()

		if d := core.Dist(s.Player().Pos, other.Pos); d < gap {
			t.Fatalf("iteration %d: nudged within %v of the other dealer (need %v)", i, d, gap)
		}
		clk.Advance(s.cfg.Dealer.Cooldown() + time.Second)
	}
}

func TestNudgeFailsPlayerStays(t *testing.T) {
	cfg := openCity()
	cfg.Canvas = config.CanvasConfig{Width: 100, Height: 100}
	cfg.Player.InitialX, cfg.Player.InitialY = 20, 20
	cfg.Dealer.Positions = []config.Point{{X: 50, Y: 50}}

	s, clk := newTestSession(t, cfg, 1)
	startPlaying(t, s, clk)
	enterShop(t, s, clk, 0)
	at := s.Player().Pos

	s.CloseShop()

	if s.Player().Pos != at {
		t.Errorf("player moved to %v with no room on the ring", s.Player().Pos)
	}
	if s.Current() != state.Playing {
		t.Errorf("state = %v, expected PLAYING", s.Current())
	}
}

func TestNoDecayInShop(t *testing.T) {
	s, clk := newTestSession(t, openCity(), 1)
	startPlaying(t, s, clk)
	enterShop(t, s, clk, 0)
	before := s.Player().Buzz

	for i := 0; i < 30; i++ {
		step(s, clk, idle())
	}
	if s.Player().Buzz != before {
		t.Error("buzz should not decay in the shop")
	}
}

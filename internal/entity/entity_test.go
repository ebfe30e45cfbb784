package entity

import (
	"testing"
	"time"

	"github.com/vovakirdan/on-the-run/internal/config"
	"github.com/vovakirdan/on-the-run/internal/core"
)

func TestBodiesShareTrait(t *testing.T) {
	cfg := config.Default()
	bodies := []Body{
		NewPlayer(cfg.Player),
		Supply{Pos: core.V(1, 2), Size: 8},
		Cash{Pos: core.V(3, 4), Size: 10},
		Police{Pos: core.V(5, 6), Size: 15},
		NewDealers(cfg.Dealer)[0],
		Particle{Pos: core.V(7, 8), Size: 4, Life: 0.5},
	}
	want := []Kind{KindPlayer, KindSupply, KindCash, KindPolice, KindDealer, KindParticle}

	for i, b := range bodies {
		if b.Kind() != want[i] {
			t.Errorf("body %d kind = %v, expected %v", i, b.Kind(), want[i])
		}
		if b.Radius() <= 0 {
			t.Errorf("%v radius should be positive", b.Kind())
		}
	}
	if r := bodies[5].Radius(); r != 2 {
		t.Errorf("particle radius should shrink with life, got %v", r)
	}
}

func TestPlayerAddBuzzClamps(t *testing.T) {
	p := NewPlayer(config.Default().Player)

	p.AddBuzz(50)
	if p.Buzz != p.MaxBuzz {
		t.Errorf("Buzz = %v, expected cap %v", p.Buzz, p.MaxBuzz)
	}

	p.AddBuzz(-500)
	if p.Buzz != 0 {
		t.Errorf("Buzz = %v, expected floor 0", p.Buzz)
	}
}

func TestDealerCooldown(t *testing.T) {
	epoch := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	d := Dealer{Cooldown: 10 * time.Second}

	if d.OnCooldown(epoch) {
		t.Error("a dealer never visited should trade")
	}

	d.LastInteraction = epoch
	tests := []struct {
		after    time.Duration
		cooldown bool
	}{
		{0, true},
		{9999 * time.Millisecond, true},
		{10 * time.Second, false},
		{time.Minute, false},
	}
	for _, tc := range tests {
		if got := d.OnCooldown(epoch.Add(tc.after)); got != tc.cooldown {
			t.Errorf("OnCooldown(+%v) = %v, expected %v", tc.after, got, tc.cooldown)
		}
	}

	if r := d.Remaining(epoch.Add(4 * time.Second)); r != 6*time.Second {
		t.Errorf("Remaining = %v, expected 6s", r)
	}
}

func TestNewDealers(t *testing.T) {
	cfg := config.Default()
	ds := NewDealers(cfg.Dealer)
	if len(ds) != len(cfg.Dealer.Positions) {
		t.Fatalf("got %d dealers, expected %d", len(ds), len(cfg.Dealer.Positions))
	}
	if ds[4].Pos != core.V(400, 300) {
		t.Errorf("dealer 4 at %v, expected (400, 300)", ds[4].Pos)
	}
	if ds[0].Cooldown != 10*time.Second {
		t.Errorf("Cooldown = %v", ds[0].Cooldown)
	}
}

func TestOverlaps(t *testing.T) {
	a := Supply{Pos: core.V(0, 0), Size: 5}
	if !Overlaps(a, Cash{Pos: core.V(9, 0), Size: 5}) {
		t.Error("bodies 9 apart with radii 5+5 should overlap")
	}
	if Overlaps(a, Cash{Pos: core.V(10, 0), Size: 5}) {
		t.Error("touching bodies should not overlap")
	}
}

func TestModeString(t *testing.T) {
	if ModePatrol.String() != "PATROL" || ModeChase.String() != "CHASE" {
		t.Error("unexpected mode names")
	}
	if KindDealer.String() != "dealer" {
		t.Error("unexpected kind name")
	}
}

func TestSmokeLifecycle(t *testing.T) {
	ps := SmokeBurst(core.V(100, 100), 8, core.NewRand(1))
	if len(ps) != 8 {
		t.Fatalf("got %d particles, expected 8", len(ps))
	}
	for _, p := range ps {
		if p.Life != 1 || p.Vel.Y >= 0 {
			t.Errorf("fresh puff should have full life and rise: %+v", p)
		}
		if core.Dist(p.Pos, core.V(100, 100)) > smokeJitter {
			t.Errorf("puff spawned too far away: %v", p.Pos)
		}
	}

	startY := ps[0].Pos.Y
	ps = UpdateParticles(ps)
	if ps[0].Pos.Y >= startY {
		t.Error("smoke should float upward")
	}

	ticks := 1
	for len(ps) > 0 {
		ps = UpdateParticles(ps)
		ticks++
		if ticks > 1000 {
			t.Fatal("particles never expired")
		}
	}
	if ticks < 60 || ticks > 64 {
		t.Errorf("smoke lived %d ticks, expected about 62", ticks)
	}
}

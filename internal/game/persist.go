package game

import (
	"github.com/vovakirdan/on-the-run/internal/city"
	"github.com/vovakirdan/on-the-run/internal/core"
	"github.com/vovakirdan/on-the-run/internal/entity"
	"github.com/vovakirdan/on-the-run/internal/snapshot"
)

// Snapshot captures the run for saving. Play time, particles and dealer
// cooldowns are not kept.
func (s *Session) Snapshot() snapshot.Data {
	p := s.scene.Player
	d := snapshot.Data{
		Version:       snapshot.Version,
		Timestamp:     s.clock.Now().UnixMilli(),
		Player:        snapshot.Player{X: p.Pos.X, Y: p.Pos.Y, Money: p.Money, Buzz: p.Buzz},
		PurchaseCount: s.scene.PurchaseCount,
		Supplies:      make([]snapshot.Supply, 0, len(s.scene.Supplies)),
		CashItems:     make([]snapshot.Cash, 0, len(s.scene.Cash)),
		Police:        make([]snapshot.Police, 0, len(s.scene.Police)),
		Buildings:     make([]snapshot.Building, 0, len(s.world.Buildings)),
		Streets:       make([]snapshot.Street, 0, len(s.world.Streets)),
	}

	for _, sup := range s.scene.Supplies {
		d.Supplies = append(d.Supplies, snapshot.Supply{X: sup.Pos.X, Y: sup.Pos.Y, Size: sup.Size, Cost: sup.Cost})
	}
	for _, c := range s.scene.Cash {
		d.CashItems = append(d.CashItems, snapshot.Cash{X: c.Pos.X, Y: c.Pos.Y, Size: c.Size, Value: c.Value})
	}
	for _, ag := range s.scene.Police {
		d.Police = append(d.Police, snapshot.Police{
			X:           ag.Pos.X,
			Y:           ag.Pos.Y,
			Size:        ag.Size,
			Speed:       ag.Speed,
			AlertRadius: ag.AlertRadius,
		})
	}
	for _, b := range s.world.Buildings {
		d.Buildings = append(d.Buildings, snapshot.Building{
			X:      b.X,
			Y:      b.Y,
			Width:  b.Width,
			Height: b.Height,
			Style:  string(b.Style),
			Shade:  b.Shade,
		})
	}
	for _, st := range s.world.Streets {
		d.Streets = append(d.Streets, snapshot.Street{X: st.X, Y: st.Y, Width: st.Width, Height: st.Height})
	}
	return d
}

// Restore replaces the current run with a saved one. A save without
// buildings gets a freshly generated city. Dealers come back off cooldown
// and police restart on patrol.
func (s *Session) Restore(d snapshot.Data) {
	if len(d.Buildings) == 0 {
		s.setWorld(city.NewGenerator(s.cfg, s.rng).Generate())
	} else {
		s.setWorld(restoreWorld(s.cfg.Canvas.Width, s.cfg.Canvas.Height, s.cfg.City.LargeThreshold, d))
	}

	player := entity.NewPlayer(s.cfg.Player)
	player.Pos = core.V(d.Player.X, d.Player.Y)
	player.Money = d.Player.Money
	player.Buzz = core.ClampF(d.Player.Buzz, 0, player.MaxBuzz)

	s.scene = entity.Scene{
		Player:        player,
		Dealers:       entity.NewDealers(s.cfg.Dealer),
		PurchaseCount: d.PurchaseCount,
	}
	for _, sup := range d.Supplies {
		s.scene.Supplies = append(s.scene.Supplies, entity.Supply{Pos: core.V(sup.X, sup.Y), Size: sup.Size, Cost: sup.Cost})
	}
	for _, c := range d.CashItems {
		s.scene.Cash = append(s.scene.Cash, entity.Cash{Pos: core.V(c.X, c.Y), Size: c.Size, Value: c.Value})
	}
	now := s.clock.Now()
	for _, ag := range d.Police {
		s.scene.Police = append(s.scene.Police, entity.Police{
			Pos:            core.V(ag.X, ag.Y),
			Size:           ag.Size,
			Speed:          ag.Speed,
			AlertRadius:    ag.AlertRadius,
			Mode:           entity.ModePatrol,
			LastModeChange: now,
		})
	}

	s.dealer = -1
	s.elapsed = 0
	s.prepared = true

	s.logger.Debug("session restored",
		"saved_at", d.Timestamp,
		"buildings", len(s.world.Buildings),
		"police", len(s.scene.Police))
}

func restoreWorld(width, height, largeThreshold float64, d snapshot.Data) city.World {
	buildings := make([]city.Building, 0, len(d.Buildings))
	for _, b := range d.Buildings {
		style := city.Style(b.Style)
		if style != city.StyleLarge && style != city.StyleSmall {
			style = city.StyleSmall
			if b.Width > largeThreshold {
				style = city.StyleLarge
			}
		}
		buildings = append(buildings, city.Building{
			X:      b.X,
			Y:      b.Y,
			Width:  b.Width,
			Height: b.Height,
			Style:  style,
			Shade:  b.Shade,
		})
	}

	streets := make([]city.Street, 0, len(d.Streets))
	for _, st := range d.Streets {
		streets = append(streets, city.Street{X: st.X, Y: st.Y, Width: st.Width, Height: st.Height})
	}
	return city.NewWorld(width, height, buildings, streets)
}

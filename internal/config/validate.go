package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate rejects configurations the simulation cannot run with.
func Validate(cfg Config) error {
	if cfg.Canvas.Width <= 0 || cfg.Canvas.Height <= 0 {
		return invalid("canvas must be positive, got %vx%v", cfg.Canvas.Width, cfg.Canvas.Height)
	}

	if cfg.Player.Size <= 0 {
		return invalid("player.size must be positive")
	}
	if cfg.Player.Speed < 0 {
		return invalid("player.speed must not be negative")
	}
	if cfg.Player.MaxBuzz <= 0 {
		return invalid("player.max_buzz must be positive")
	}
	if cfg.Player.InitialBuzz <= 0 || cfg.Player.InitialBuzz > cfg.Player.MaxBuzz {
		return invalid("player.initial_buzz must be in (0, max_buzz]")
	}

	if cfg.City.BlockSize <= 0 {
		return invalid("city.block_size must be positive")
	}
	if cfg.City.StreetWidth < 0 || cfg.City.BuildingMargin < 0 {
		return invalid("city widths must not be negative")
	}
	if cfg.City.MinBuildingSize <= 0 {
		return invalid("city.min_building_size must be positive")
	}

	if cfg.Supply.Count < 0 || cfg.Cash.Count < 0 {
		return invalid("pickup counts must not be negative")
	}
	if cfg.Supply.Size <= 0 || cfg.Cash.Size <= 0 {
		return invalid("pickup sizes must be positive")
	}
	if cfg.Supply.MaxCost < cfg.Supply.MinCost {
		return invalid("supply.max_cost %v < min_cost %v", cfg.Supply.MaxCost, cfg.Supply.MinCost)
	}
	if cfg.Cash.MaxValue < cfg.Cash.MinValue {
		return invalid("cash.max_value %v < min_value %v", cfg.Cash.MaxValue, cfg.Cash.MinValue)
	}
	switch cfg.Supply.ChargePolicy {
	case ChargeUnconditional, ChargeAffordable:
	default:
		return invalid("supply.charge_policy %q is not one of %q, %q",
			cfg.Supply.ChargePolicy, ChargeUnconditional, ChargeAffordable)
	}

	if cfg.Spawn.MaxAttempts <= 0 {
		return invalid("spawn.max_attempts must be positive")
	}
	if 2*cfg.Spawn.Border >= cfg.Canvas.Width || 2*cfg.Spawn.Border >= cfg.Canvas.Height {
		return invalid("spawn.border %v leaves no room on the canvas", cfg.Spawn.Border)
	}

	if cfg.Police.Size <= 0 {
		return invalid("police.size must be positive")
	}
	if cfg.Police.MaxSpeed < cfg.Police.MinSpeed {
		return invalid("police.max_speed %v < min_speed %v", cfg.Police.MaxSpeed, cfg.Police.MinSpeed)
	}
	if cfg.Police.SpawnDivisor <= 0 {
		return invalid("police.spawn_divisor must be positive")
	}
	if cfg.Police.MaxCount < 0 {
		return invalid("police.max_count must not be negative")
	}
	if cfg.Police.MinSpawnIntervalMS < 0 {
		return invalid("police.min_spawn_interval_ms must not be negative")
	}

	if cfg.Dealer.Size <= 0 {
		return invalid("dealer.size must be positive")
	}
	if cfg.Dealer.CooldownMS < 0 {
		return invalid("dealer.cooldown_ms must not be negative")
	}
	if cfg.Dealer.ExitAttempts < 0 {
		return invalid("dealer.exit_attempts must not be negative")
	}

	if len(cfg.Shop.Offers) == 0 {
		return invalid("shop.offers must not be empty")
	}
	for i, o := range cfg.Shop.Offers {
		if o.Cost < 0 || o.BuzzGain < 0 {
			return invalid("shop.offers[%d] must not be negative", i)
		}
	}
	if cfg.Shop.PriceMultiplier < 0 {
		return invalid("shop.price_multiplier must not be negative")
	}

	if cfg.Mechanics.DecayBase < 0 || cfg.Mechanics.DecayIncrement < 0 {
		return invalid("decay rates must not be negative")
	}
	if cfg.Mechanics.SmokeParticles < 0 {
		return invalid("mechanics.smoke_particles must not be negative")
	}

	return nil
}

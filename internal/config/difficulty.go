package config

import "math"

// presetScale holds the multipliers a difficulty preset applies.
type presetScale struct {
	decay     float64
	threshold float64
	cooldown  float64
}

func scaleFor(preset DifficultyPreset) presetScale {
	switch preset {
	case DifficultyEasy:
		return presetScale{decay: 0.75, threshold: 1.5, cooldown: 0.6}
	case DifficultyHard:
		return presetScale{decay: 1.5, threshold: 0.5, cooldown: 1.5}
	default:
		return presetScale{decay: 1, threshold: 1, cooldown: 1}
	}
}

// ApplyPreset returns a copy of cfg tuned for the given difficulty.
// It scales buzz decay, the money level at which police appear, and the
// dealer cooldown. Presets are relative to cfg, so apply one at most once.
func ApplyPreset(cfg Config, preset DifficultyPreset) Config {
	s := scaleFor(preset)

	cfg.Mechanics.DecayBase *= s.decay
	cfg.Mechanics.DecayIncrement *= s.decay
	cfg.Police.MoneyThreshold *= s.threshold
	cfg.Dealer.CooldownMS = int(math.Round(float64(cfg.Dealer.CooldownMS) * s.cooldown))

	// Positions and offers are slices; detach them from the caller's copy.
	cfg.Dealer.Positions = append([]Point(nil), cfg.Dealer.Positions...)
	cfg.Shop.Offers = append([]Offer(nil), cfg.Shop.Offers...)

	if preset == "" {
		preset = DifficultyNormal
	}
	cfg.Difficulty.Preset = preset
	return cfg
}

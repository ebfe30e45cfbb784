package config

import (
	_ "embed"
)

//go:embed defaults/ontherun.yaml
var defaultYAML []byte

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	out := make([]byte, len(defaultYAML))
	copy(out, defaultYAML)
	return out
}

// Default returns the hardcoded default configuration.
// It is the last fallback when the embedded YAML cannot be parsed.
func Default() Config {
	return Config{
		Canvas: CanvasConfig{
			Width:  800,
			Height: 600,
		},
		Player: PlayerConfig{
			InitialX:     100,
			InitialY:     100,
			Size:         12,
			Speed:        3.5,
			InitialBuzz:  100,
			MaxBuzz:      100,
			InitialMoney: 50,
		},
		City: CityConfig{
			BlockSize:       120,
			StreetWidth:     30,
			BuildingMargin:  8,
			MinBuildingSize: 20,
			LargeThreshold:  40,
		},
		Supply: SupplyConfig{
			Count:        8,
			Size:         8,
			MinCost:      10,
			MaxCost:      25,
			BuzzGain:     25,
			ChargePolicy: ChargeUnconditional,
		},
		Cash: CashConfig{
			Count:    6,
			Size:     10,
			MinValue: 20,
			MaxValue: 50,
		},
		Spawn: SpawnConfig{
			Border:        20,
			MinSeparation: 10,
			MaxAttempts:   100,
		},
		Police: PoliceConfig{
			Size:               15,
			MinSpeed:           1.5,
			MaxSpeed:           2.0,
			AlertRadius:        100,
			MoneyThreshold:     1000,
			SpawnDivisor:       500,
			MaxCount:           8,
			MinSpawnIntervalMS: 3000,
			EdgeOffset:         20,
			PatrolFactor:       0.6,
			ArriveRadius:       20,
			PatrolInset:        50,
			CullMargin:         100,
		},
		Dealer: DealerConfig{
			Size: 25,
			Positions: []Point{
				{X: 150, Y: 150},
				{X: 650, Y: 150},
				{X: 150, Y: 450},
				{X: 650, Y: 450},
				{X: 400, Y: 300},
			},
			CooldownMS:     10000,
			InteractBuffer: 5,
			ExitClearance:  30,
			ExitAttempts:   20,
		},
		Shop: ShopConfig{
			PriceMultiplier: 0.5,
			Offers: []Offer{
				{Cost: 20, BuzzGain: 50},
				{Cost: 50, BuzzGain: 100},
				{Cost: 100, BuzzGain: 200},
			},
		},
		Mechanics: MechanicsConfig{
			DecayBase:      0.12,
			DecayIncrement: 0.02,
			SmokeParticles: 8,
		},
		Difficulty: DifficultyConfig{
			Preset: DifficultyNormal,
		},
	}
}

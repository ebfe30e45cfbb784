// Package config provides YAML-based configuration loading, validation and
// difficulty presets for the chase simulation.
package config

import "time"

// Config is the complete, immutable tuning of one session.
// It is loaded once and passed by value to every component.
type Config struct {
	Canvas     CanvasConfig     `yaml:"canvas"`
	Player     PlayerConfig     `yaml:"player"`
	City       CityConfig       `yaml:"city"`
	Supply     SupplyConfig     `yaml:"supply"`
	Cash       CashConfig       `yaml:"cash"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Police     PoliceConfig     `yaml:"police"`
	Dealer     DealerConfig     `yaml:"dealer"`
	Shop       ShopConfig       `yaml:"shop"`
	Mechanics  MechanicsConfig  `yaml:"mechanics"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// CanvasConfig is the size of the playfield in world units.
type CanvasConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlayerConfig defines the player's starting stats.
type PlayerConfig struct {
	InitialX     float64 `yaml:"initial_x"`
	InitialY     float64 `yaml:"initial_y"`
	Size         float64 `yaml:"size"`
	Speed        float64 `yaml:"speed"` // units per tick
	InitialBuzz  float64 `yaml:"initial_buzz"`
	MaxBuzz      float64 `yaml:"max_buzz"`
	InitialMoney float64 `yaml:"initial_money"`
}

// CityConfig defines the street lattice and building placement.
type CityConfig struct {
	BlockSize       float64 `yaml:"block_size"`
	StreetWidth     float64 `yaml:"street_width"`
	BuildingMargin  float64 `yaml:"building_margin"`
	MinBuildingSize float64 `yaml:"min_building_size"`
	LargeThreshold  float64 `yaml:"large_threshold"` // width above which a building is "large"
}

// ChargePolicy decides what happens when the player walks over a supply.
type ChargePolicy string

const (
	// ChargeUnconditional always deducts the cost; money may go negative.
	ChargeUnconditional ChargePolicy = "unconditional"
	// ChargeAffordable only collects the supply when money covers the cost.
	ChargeAffordable ChargePolicy = "affordable"
)

// SupplyConfig defines the supply pickups.
type SupplyConfig struct {
	Count        int          `yaml:"count"`
	Size         float64      `yaml:"size"`
	MinCost      float64      `yaml:"min_cost"`
	MaxCost      float64      `yaml:"max_cost"`
	BuzzGain     float64      `yaml:"buzz_gain"`
	ChargePolicy ChargePolicy `yaml:"charge_policy"`
}

// CashConfig defines the cash pickups.
type CashConfig struct {
	Count    int     `yaml:"count"`
	Size     float64 `yaml:"size"`
	MinValue float64 `yaml:"min_value"`
	MaxValue float64 `yaml:"max_value"`
}

// SpawnConfig tunes pickup placement by rejection sampling.
type SpawnConfig struct {
	Border        float64 `yaml:"border"`
	MinSeparation float64 `yaml:"min_separation"`
	MaxAttempts   int     `yaml:"max_attempts"`
}

// PoliceConfig defines pursuing agents and how their numbers scale.
type PoliceConfig struct {
	Size               float64 `yaml:"size"`
	MinSpeed           float64 `yaml:"min_speed"`
	MaxSpeed           float64 `yaml:"max_speed"`
	AlertRadius        float64 `yaml:"alert_radius"`
	MoneyThreshold     float64 `yaml:"money_threshold"`
	SpawnDivisor       float64 `yaml:"spawn_divisor"`
	MaxCount           int     `yaml:"max_count"`
	MinSpawnIntervalMS int     `yaml:"min_spawn_interval_ms"`
	EdgeOffset         float64 `yaml:"edge_offset"`
	PatrolFactor       float64 `yaml:"patrol_factor"`
	ArriveRadius       float64 `yaml:"arrive_radius"`
	PatrolInset        float64 `yaml:"patrol_inset"`
	CullMargin         float64 `yaml:"cull_margin"`
}

// MinSpawnInterval returns the spawn throttle as a duration.
func (p PoliceConfig) MinSpawnInterval() time.Duration {
	return time.Duration(p.MinSpawnIntervalMS) * time.Millisecond
}

// Point is a fixed position on the canvas.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// DealerConfig defines the fixed shop locations.
type DealerConfig struct {
	Size           float64 `yaml:"size"`
	Positions      []Point `yaml:"positions"`
	CooldownMS     int     `yaml:"cooldown_ms"`
	InteractBuffer float64 `yaml:"interact_buffer"`
	ExitClearance  float64 `yaml:"exit_clearance"`
	ExitAttempts   int     `yaml:"exit_attempts"`
}

// Cooldown returns the dealer cooldown as a duration.
func (d DealerConfig) Cooldown() time.Duration {
	return time.Duration(d.CooldownMS) * time.Millisecond
}

// Offer is one item on the dealer's menu.
type Offer struct {
	Cost     float64 `yaml:"cost"`
	BuzzGain float64 `yaml:"buzz_gain"`
}

// ShopConfig defines dealer offers and price escalation.
type ShopConfig struct {
	PriceMultiplier float64 `yaml:"price_multiplier"`
	Offers          []Offer `yaml:"offers"`
}

// MechanicsConfig defines passive decay and effects.
type MechanicsConfig struct {
	DecayBase      float64 `yaml:"decay_base"`      // buzz lost per tick
	DecayIncrement float64 `yaml:"decay_increment"` // extra loss per purchase made
	SmokeParticles int     `yaml:"smoke_particles"`
}

// DifficultyConfig records which preset produced this config.
type DifficultyConfig struct {
	Preset DifficultyPreset `yaml:"preset"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty converts a flag value into a preset.
func ParseDifficulty(s string) (DifficultyPreset, bool) {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s), true
	default:
		return "", false
	}
}

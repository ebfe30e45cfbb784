package core

// Color represents a foreground color for a screen cell.
// The renderer maps each value to an ANSI 256-color code.
type Color uint8

// Palette used when projecting the city onto the character grid.
const (
	ColorDefault  Color = iota
	ColorStreet         // asphalt bands
	ColorBuilding       // base building tone, shades follow
	ColorPlayer
	ColorSupply
	ColorCash
	ColorPolice
	ColorPoliceAlert // police currently chasing
	ColorDealer
	ColorDealerIdle // dealer on cooldown
	ColorSmoke
	ColorHUD
	ColorWarning
)

// BuildingShades is the number of distinct building tones.
// Building.Shade indexes into this range starting at ColorBuildingShade0.
const BuildingShades = 8

// ColorBuildingShade0 is the first building shade; shades occupy
// [ColorBuildingShade0, ColorBuildingShade0+BuildingShades).
const ColorBuildingShade0 Color = 32

// BuildingShade returns the color for a building shade index.
func BuildingShade(i int) Color {
	if i < 0 {
		i = 0
	}
	return ColorBuildingShade0 + Color(i%BuildingShades)
}

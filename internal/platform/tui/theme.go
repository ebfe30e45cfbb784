package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/on-the-run/internal/core"
)

// Theme maps screen colors and chrome to lipgloss styles.
type Theme struct {
	Cells map[core.Color]lipgloss.Style

	// Status line under the map
	Status     lipgloss.Style
	StatusWarn lipgloss.Style
	Help       lipgloss.Style
}

// buildingTones are the ANSI 256 tones cycled through by building shades.
var buildingTones = [core.BuildingShades]string{"60", "61", "66", "67", "95", "101", "102", "103"}

// DefaultTheme returns the night-city palette.
func DefaultTheme() Theme {
	cells := map[core.Color]lipgloss.Style{
		core.ColorDefault:     lipgloss.NewStyle(),
		core.ColorStreet:      lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		core.ColorBuilding:    lipgloss.NewStyle().Foreground(lipgloss.Color("60")),
		core.ColorPlayer:      lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		core.ColorSupply:      lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
		core.ColorCash:        lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		core.ColorPolice:      lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		core.ColorPoliceAlert: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		core.ColorDealer:      lipgloss.NewStyle().Foreground(lipgloss.Color("135")).Bold(true),
		core.ColorDealerIdle:  lipgloss.NewStyle().Foreground(lipgloss.Color("96")),
		core.ColorSmoke:       lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		core.ColorHUD:         lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		core.ColorWarning:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
	}
	for i, tone := range buildingTones {
		cells[core.BuildingShade(i)] = lipgloss.NewStyle().Foreground(lipgloss.Color(tone))
	}

	return Theme{
		Cells:      cells,
		Status:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		StatusWarn: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Help:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// MonochromeTheme renders without color, for terminals that lack it.
func MonochromeTheme() Theme {
	plain := lipgloss.NewStyle()
	bold := lipgloss.NewStyle().Bold(true)

	cells := map[core.Color]lipgloss.Style{}
	for c := range DefaultTheme().Cells {
		cells[c] = plain
	}
	cells[core.ColorPlayer] = bold
	cells[core.ColorPoliceAlert] = bold
	cells[core.ColorWarning] = bold

	return Theme{
		Cells:      cells,
		Status:     plain,
		StatusWarn: bold,
		Help:       plain,
	}
}

// ThemeByName returns a named theme. Unknown names get the default.
func ThemeByName(name string) Theme {
	if name == "mono" {
		return MonochromeTheme()
	}
	return DefaultTheme()
}

func (t Theme) style(c core.Color) lipgloss.Style {
	if s, ok := t.Cells[c]; ok {
		return s
	}
	return t.Cells[core.ColorDefault]
}

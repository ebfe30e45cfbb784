package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/on-the-run/internal/core"
)

// painter renders screens with one theme. Styles are resolved once per
// color, since a frame touches every cell.
type painter struct {
	theme  Theme
	styles map[core.Color]lipgloss.Style
}

func newPainter(theme Theme) *painter {
	return &painter{theme: theme, styles: make(map[core.Color]lipgloss.Style)}
}

func (p *painter) style(c core.Color) lipgloss.Style {
	s, ok := p.styles[c]
	if !ok {
		s = p.theme.style(c)
		p.styles[c] = s
	}
	return s
}

// paint writes the screen as styled rows. Each run of same-colored cells
// becomes one styled span, which keeps escape sequences to a minimum.
func (p *painter) paint(s *core.Screen) string {
	var out strings.Builder
	out.Grow(s.Width()*s.Height()*2 + s.Height())

	var span strings.Builder
	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			out.WriteByte('\n')
		}

		span.Reset()
		color := s.GetCell(0, y).Color
		for x := 0; x < s.Width(); x++ {
			cell := s.GetCell(x, y)
			if cell.Color != color {
				out.WriteString(p.style(color).Render(span.String()))
				span.Reset()
				color = cell.Color
			}
			span.WriteRune(cell.Rune)
		}
		if span.Len() > 0 {
			out.WriteString(p.style(color).Render(span.String()))
		}
	}
	return out.String()
}

// RenderScreen converts a Screen buffer to a styled string for display.
func RenderScreen(s *core.Screen, theme Theme) string {
	return newPainter(theme).paint(s)
}

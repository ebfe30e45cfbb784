package game

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/vovakirdan/on-the-run/internal/city"
	"github.com/vovakirdan/on-the-run/internal/core"
	"github.com/vovakirdan/on-the-run/internal/entity"
	"github.com/vovakirdan/on-the-run/internal/state"
)

// Glyphs used on the character grid.
const (
	StreetChar        = '·'
	LargeBuildingChar = '█'
	SmallBuildingChar = '▓'
	PlayerChar        = '@'
	SupplyChar        = '*'
	CashChar          = '$'
	PoliceChar        = 'P'
	DealerChar        = 'D'
	SmokeChar         = '°'
)

const (
	hudRows     = 1
	buzzBarSize = 10
	lowBuzz     = 0.25 // fraction of max at which the bar turns to a warning
)

// projection maps world coordinates to cells below the HUD.
type projection struct {
	sx, sy float64
	top    int
}

func newProjection(v View, dst *core.Screen) projection {
	rows := max(dst.Height()-hudRows, 1)
	return projection{
		sx:  float64(dst.Width()) / v.Width,
		sy:  float64(rows) / v.Height,
		top: hudRows,
	}
}

func (p projection) point(pos core.Vec) (int, int) {
	return int(math.Floor(pos.X * p.sx)), p.top + int(math.Floor(pos.Y*p.sy))
}

// rect returns the cells covered by r, at least one cell in each direction.
func (p projection) rect(r core.Rect) (x, y, w, h int) {
	x0, y0 := int(math.Floor(r.X*p.sx)), int(math.Floor(r.Y*p.sy))
	x1, y1 := int(math.Ceil(r.Right()*p.sx)), int(math.Ceil(r.Bottom()*p.sy))
	return x0, p.top + y0, max(x1-x0, 1), max(y1-y0, 1)
}

// Render draws the session onto dst.
func (s *Session) Render(dst *core.Screen) {
	RenderView(s.View(), dst)
}

// RenderView projects v onto the character grid of dst.
func RenderView(v View, dst *core.Screen) {
	dst.Clear()
	if dst.Width() == 0 || dst.Height() == 0 || v.Width <= 0 || v.Height <= 0 {
		return
	}
	proj := newProjection(v, dst)

	for _, st := range v.Streets {
		x, y, w, h := proj.rect(st.Rect())
		dst.FillRect(x, y, w, h, StreetChar, core.ColorStreet)
	}
	for _, b := range v.Buildings {
		ch := SmallBuildingChar
		if b.Style == city.StyleLarge {
			ch = LargeBuildingChar
		}
		x, y, w, h := proj.rect(b.Rect())
		dst.FillRect(x, y, w, h, ch, core.BuildingShade(b.Shade))
	}

	for _, sup := range v.Supplies {
		x, y := proj.point(sup.Pos)
		dst.Set(x, y, SupplyChar, core.ColorSupply)
	}
	for _, c := range v.Cash {
		x, y := proj.point(c.Pos)
		dst.Set(x, y, CashChar, core.ColorCash)
	}
	for i, d := range v.Dealers {
		color := core.ColorDealerIdle
		if i < len(v.DealerReady) && v.DealerReady[i] {
			color = core.ColorDealer
		}
		x, y := proj.point(d.Pos)
		dst.Set(x, y, DealerChar, color)
	}
	for _, p := range v.Particles {
		x, y := proj.point(p.Pos)
		dst.Set(x, y, SmokeChar, core.ColorSmoke)
	}
	for _, ag := range v.Police {
		color := core.ColorPolice
		if ag.Mode == entity.ModeChase {
			color = core.ColorPoliceAlert
		}
		x, y := proj.point(ag.Pos)
		dst.Set(x, y, PoliceChar, color)
	}

	x, y := proj.point(v.Player.Pos)
	dst.Set(x, y, PlayerChar, core.ColorPlayer)

	drawHUD(v, dst)

	switch v.State {
	case state.Menu:
		drawPanel(dst, core.ColorHUD,
			"ON THE RUN",
			"",
			"Grab cash, keep your buzz up,",
			"stay away from the police.",
			"",
			"Enter: start   Q: quit")
	case state.Paused:
		drawPanel(dst, core.ColorHUD, "PAUSED", "", "P: resume   Esc: menu")
	case state.Shop:
		drawShop(v, dst)
	case state.GameOver:
		drawPanel(dst, core.ColorWarning,
			"GAME OVER",
			ReasonText(v.Reason),
			"",
			fmt.Sprintf("Survived %s with $%.0f", FormatElapsed(v.Elapsed), v.Player.Money),
			"",
			"Enter: run again   Esc: menu")
	}
}

func drawHUD(v View, dst *core.Screen) {
	p := v.Player
	frac := 0.0
	if p.MaxBuzz > 0 {
		frac = core.ClampF(p.Buzz/p.MaxBuzz, 0, 1)
	}
	filled := int(math.Round(frac * buzzBarSize))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", buzzBarSize-filled)

	barColor := core.ColorHUD
	if frac < lowBuzz {
		barColor = core.ColorWarning
	}
	moneyColor := core.ColorHUD
	if p.Money < 0 {
		moneyColor = core.ColorWarning
	}

	dst.FillRect(0, 0, dst.Width(), hudRows, ' ', core.ColorHUD)
	dst.DrawText(1, 0, "BUZZ ", core.ColorHUD)
	dst.DrawText(6, 0, bar, barColor)

	money := fmt.Sprintf(" $%.0f", p.Money)
	dst.DrawText(6+buzzBarSize, 0, money, moneyColor)

	rest := fmt.Sprintf("  %s  COPS %d  BUYS %d", FormatElapsed(v.Elapsed), len(v.Police), v.PurchaseCount)
	dst.DrawText(6+buzzBarSize+len([]rune(money)), 0, rest, core.ColorHUD)
}

func drawShop(v View, dst *core.Screen) {
	lines := []string{"DEALER", ""}
	for i, o := range v.Offers {
		mark := " "
		if !o.Affordable {
			mark = "x"
		}
		lines = append(lines, fmt.Sprintf("%s %d) +%.0f buzz  $%.0f", mark, i+1, o.BuzzGain, o.Price))
	}
	lines = append(lines, "", fmt.Sprintf("Cash: $%.0f", v.Player.Money), "1-9: buy   Enter: leave")
	drawPanel(dst, core.ColorDealer, lines...)
}

// drawPanel draws a centered box holding lines.
func drawPanel(dst *core.Screen, c core.Color, lines ...string) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	boxW := width + 4
	boxH := len(lines) + 2
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.FillRect(boxX, boxY, boxW, boxH, ' ', c)
	dst.DrawBox(boxX, boxY, boxW, boxH, c)
	for i, l := range lines {
		x := boxX + (boxW-len([]rune(l)))/2
		dst.DrawText(x, boxY+1+i, l, c)
	}
}

// ReasonText describes a game over reason for the player.
func ReasonText(r state.Reason) string {
	switch r {
	case state.ReasonBusted:
		return "Busted by the police."
	case state.ReasonWithdrawal:
		return "Your buzz ran out."
	case state.ReasonDealerKilled:
		return "You showed up broke. The dealer did not take it well."
	default:
		return ""
	}
}

// FormatElapsed renders a play time as mm:ss.
func FormatElapsed(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

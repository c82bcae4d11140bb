package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	// Meters
	MeterFull  rune // █ filled cell
	MeterEmpty rune // ░ unfilled cell

	// Indicators
	On  rune // ● connected / selected
	Off rune // ○ waiting / unselected
}

func New(palette *Palette) *Theme {
	if palette == nil {
		palette = Default()
	}
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			MeterFull:  '█',
			MeterEmpty: '░',

			On:  '●',
			Off: '○',
		},
	}
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBG     = 0.0   // slate
	RoleMuted  = 0.25  // blue-grey
	RoleFG     = 0.5   // teal-green (readable)
	RoleAccent = 0.375 // teal
	RoleActive = 0.75  // amber
	RoleError  = 1.0   // red
)

// Style helpers

func (t *Theme) BG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleBG))
}

func (t *Theme) FG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleFG))
}

func (t *Theme) Accent() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleAccent))
}

func (t *Theme) Muted() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleMuted))
}

func (t *Theme) Active() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleActive))
}

func (t *Theme) Error() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleError))
}

// Color returns lipgloss color for any normalized value 0-1
func (t *Theme) Color(norm float64) lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(norm))
}

// Level returns the color for a 7-bit MIDI value
func (t *Theme) Level(v uint8) lipgloss.Color {
	return t.Color(float64(v) / 127)
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"motion-midi/theme"
)

// MeterCells returns how many of width cells a 7-bit value fills
func MeterCells(v uint8, width int) int {
	if width <= 0 {
		return 0
	}
	if v > 127 {
		v = 127
	}
	return (int(v)*width + 63) / 127
}

// RenderMeter renders "label ████░░░░ 64" with the filled part colored by level
func RenderMeter(th *theme.Theme, label string, v uint8, width int) string {
	filled := MeterCells(v, width)

	fullStyle := lipgloss.NewStyle().Foreground(th.Level(v))
	emptyStyle := lipgloss.NewStyle().Foreground(th.Muted())

	var out strings.Builder
	out.WriteString(fmt.Sprintf("%-9s ", label))
	out.WriteString(fullStyle.Render(strings.Repeat(string(th.Symbols.MeterFull), filled)))
	out.WriteString(emptyStyle.Render(strings.Repeat(string(th.Symbols.MeterEmpty), width-filled)))
	out.WriteString(fmt.Sprintf(" %3d", v))
	return out.String()
}

// RenderIndicator renders "● label" when on, "○ label" muted when off
func RenderIndicator(th *theme.Theme, label string, on bool) string {
	if on {
		style := lipgloss.NewStyle().Foreground(th.Active())
		return style.Render(string(th.Symbols.On) + " " + label)
	}
	style := lipgloss.NewStyle().Foreground(th.Muted())
	return style.Render(string(th.Symbols.Off) + " " + label)
}

// RenderChoice renders options in a row with the selected one highlighted
func RenderChoice(th *theme.Theme, options []string, selected int) string {
	on := lipgloss.NewStyle().Foreground(th.BG()).Background(th.Accent()).Padding(0, 1)
	off := lipgloss.NewStyle().Foreground(th.Muted()).Padding(0, 1)

	parts := make([]string, len(options))
	for i, opt := range options {
		if i == selected {
			parts[i] = on.Render(opt)
		} else {
			parts[i] = off.Render(opt)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

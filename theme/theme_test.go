package theme

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestNew(t *testing.T) {
	th := New(nil)
	if th.Palette == nil || len(th.Palette.Colors) != len(Default().Colors) {
		t.Fatal("Expected default palette")
	}
	if th.Symbols.MeterFull != '█' || th.Symbols.MeterEmpty != '░' {
		t.Errorf("Unexpected meter symbols %q %q", th.Symbols.MeterFull, th.Symbols.MeterEmpty)
	}
	if th.Symbols.On != '●' || th.Symbols.Off != '○' {
		t.Errorf("Unexpected indicator symbols %q %q", th.Symbols.On, th.Symbols.Off)
	}
}

func TestRoles(t *testing.T) {
	ramp, err := ReadGPL(strings.NewReader("GIMP Palette\n0 0 0 black\n255 255 255 white\n"))
	if err != nil {
		t.Fatal(err)
	}
	th := New(ramp)

	testCases := map[string]struct {
		got      lipgloss.Color
		expected lipgloss.Color
	}{
		"BG":       {got: th.BG(), expected: "#000000"},
		"Error":    {got: th.Error(), expected: "#ffffff"},
		"FG":       {got: th.FG(), expected: th.Color(RoleFG)},
		"Accent":   {got: th.Accent(), expected: th.Color(RoleAccent)},
		"Muted":    {got: th.Muted(), expected: th.Color(RoleMuted)},
		"Active":   {got: th.Active(), expected: th.Color(RoleActive)},
		"LevelMin": {got: th.Level(0), expected: th.BG()},
		"LevelMax": {got: th.Level(127), expected: th.Error()},
	}

	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, tt.got)
			}
			if s := string(tt.got); len(s) != 7 || s[0] != '#' {
				t.Errorf("Expected #rrggbb, got %q", s)
			}
		})
	}
}

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
	// Piano widget
	WhiteKey rune // ▓ natural key body
	BlackKey rune // █ accidental key body
	PadHeld  rune // ● pad with a live hold
	PadIdle  rune // ○ playable pad
	PadInert rune // · unparseable pad
}

func New(palette *Palette) *Theme {
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			WhiteKey: '▓',
			BlackKey: '█',
			PadHeld:  '●',
			PadIdle:  '○',
			PadInert: '·',
		},
	}
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBG        = 0.0 // deep purple
	RoleSurface   = 0.1 // dark purple
	RoleMuted     = 0.2 // purple-magenta
	RoleFG        = 0.4 // pink-purple (readable)
	RoleAccent    = 0.5 // vivid magenta
	RoleCursor    = 0.6 // rose pink
	RoleSounding  = 0.7 // soft red - sounding pitch
	RoleChordTone = 0.8 // orange - guide chord tone
	RoleTension   = 1.0 // bright yellow - guide tension
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

func (t *Theme) Cursor() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleCursor))
}

func (t *Theme) Sounding() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleSounding))
}

func (t *Theme) ChordTone() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleChordTone))
}

func (t *Theme) Tension() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleTension))
}

// Color returns lipgloss color for any normalized value 0-1
func (t *Theme) Color(norm float64) lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(norm))
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}

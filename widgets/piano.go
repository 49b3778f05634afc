package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Piano renders a pitch range as a two-row terminal keyboard and
// reports the pitch under a mouse click. The engine supplies four
// highlight layers; the widget only paints them.
type Piano struct {
	Min, Max int // inclusive absolute pitch range
}

// PianoStyle holds the colors for each highlight layer and the key
// body glyphs. Zero glyphs fall back to the defaults.
type PianoStyle struct {
	White     lipgloss.Color
	Black     lipgloss.Color
	Sounding  lipgloss.Color
	Picked    lipgloss.Color
	ChordTone lipgloss.Color
	Tension   lipgloss.Color

	WhiteGlyph rune
	BlackGlyph rune
}

// PianoHighlights is the widget's input contract: which pitches are
// sounding, which single pitch was picked, and the two guide layers
// keyed by pitch class.
type PianoHighlights struct {
	Sounding   map[int]bool
	Picked     int // -1 for none
	ChordTones map[int]bool // pitch classes 0-11
	Tensions   map[int]bool // pitch classes 0-11
}

// Natural pitch classes get wide keys on the bottom row; the rest sit
// on the top row straddling the boundary to their left neighbor.
var isNatural = [12]bool{true, false, true, false, true, true, false, true, false, true, false, true}

const whiteKeyWidth = 3

// keyCell is one key's horizontal span in the rendered rows.
type keyCell struct {
	pitch int
	x0    int // inclusive
	x1    int // exclusive
	black bool
}

// layout computes key spans for rendering and hit-testing.
func (p Piano) layout() []keyCell {
	var cells []keyCell
	whites := 0
	for pitch := p.Min; pitch <= p.Max; pitch++ {
		cls := pitch % 12
		if cls < 0 {
			cls += 12
		}
		if isNatural[cls] {
			x0 := whites * whiteKeyWidth
			cells = append(cells, keyCell{pitch: pitch, x0: x0, x1: x0 + whiteKeyWidth - 1})
			whites++
		} else {
			// Straddle the boundary with the white key to the left.
			x0 := whites*whiteKeyWidth - 2
			if x0 < 0 {
				x0 = 0
			}
			cells = append(cells, keyCell{pitch: pitch, x0: x0, x1: x0 + 2, black: true})
		}
	}
	return cells
}

// Width returns the rendered width in cells.
func (p Piano) Width() int {
	cells := p.layout()
	if len(cells) == 0 {
		return 0
	}
	max := 0
	for _, c := range cells {
		if c.x1 > max {
			max = c.x1
		}
	}
	return max
}

// Height is fixed: black row, white row, white row.
func (p Piano) Height() int { return 3 }

// keyColor picks the strongest applicable layer for a key.
func keyColor(c keyCell, h PianoHighlights, st PianoStyle) lipgloss.Color {
	cls := c.pitch % 12
	if cls < 0 {
		cls += 12
	}
	switch {
	case h.Sounding != nil && h.Sounding[c.pitch]:
		return st.Sounding
	case h.Picked == c.pitch:
		return st.Picked
	case h.Tensions != nil && h.Tensions[cls]:
		return st.Tension
	case h.ChordTones != nil && h.ChordTones[cls]:
		return st.ChordTone
	case c.black:
		return st.Black
	default:
		return st.White
	}
}

// Render paints the keyboard. Black keys occupy the top row; white
// keys fill the two rows below.
func (p Piano) Render(h PianoHighlights, st PianoStyle) string {
	cells := p.layout()
	width := p.Width()

	// Per-column color, top row and bottom rows resolved separately.
	top := make([]lipgloss.Color, width)
	bottom := make([]lipgloss.Color, width)
	topSet := make([]bool, width)
	bottomSet := make([]bool, width)

	for _, c := range cells {
		color := keyColor(c, h, st)
		for x := c.x0; x < c.x1 && x < width; x++ {
			if c.black {
				top[x] = color
				topSet[x] = true
			} else {
				bottom[x] = color
				bottomSet[x] = true
				if !topSet[x] {
					top[x] = color
					topSet[x] = true
				}
			}
		}
	}

	renderRow := func(colors []lipgloss.Color, set []bool, glyph string) string {
		var row strings.Builder
		for x := 0; x < width; x++ {
			if !set[x] {
				row.WriteString(" ")
				continue
			}
			row.WriteString(lipgloss.NewStyle().Foreground(colors[x]).Render(glyph))
		}
		return row.String()
	}

	white, black := st.WhiteGlyph, st.BlackGlyph
	if white == 0 {
		white = '▓'
	}
	if black == 0 {
		black = '█'
	}

	lines := []string{
		renderRow(top, topSet, string(black)),
		renderRow(bottom, bottomSet, string(white)),
		renderRow(bottom, bottomSet, string(white)),
	}
	return strings.Join(lines, "\n")
}

// HitTest maps widget-relative coordinates to a pitch. Row 0 prefers
// black keys; the lower rows hit only white keys.
func (p Piano) HitTest(x, y int) (pitch int, ok bool) {
	if y < 0 || y >= p.Height() {
		return 0, false
	}
	cells := p.layout()

	if y == 0 {
		for _, c := range cells {
			if c.black && x >= c.x0 && x < c.x1 {
				return c.pitch, true
			}
		}
	}
	for _, c := range cells {
		if !c.black && x >= c.x0 && x < c.x1 {
			return c.pitch, true
		}
	}
	return 0, false
}

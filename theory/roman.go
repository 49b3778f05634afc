package theory

import "strings"

// Mode is the key mode.
type Mode int

const (
	ModeMajor Mode = iota
	ModeMinor
)

// Key is a tonal center for analysis or playback.
type Key struct {
	Tonic string
	Mode  Mode
}

// Diatonic step offsets. Minor is always natural minor, so chords
// implying harmonic or melodic minor degree-match imperfectly.
var majorSteps = [7]int{0, 2, 4, 5, 7, 9, 11}
var minorSteps = [7]int{0, 2, 3, 5, 7, 8, 10}

var numerals = [7]string{"I", "II", "III", "IV", "V", "VI", "VII"}

// Romanize renders a chord symbol as a roman-numeral degree of the key.
// Returns "" when the symbol is unparseable.
func Romanize(symbol string, key Key, lk Lookup) string {
	c, ok := Parse(symbol, lk)
	if !ok {
		return ""
	}

	steps := majorSteps
	if key.Mode == ModeMinor {
		steps = minorSteps
	}

	diff := (SemitoneOf(c.Tonic) - SemitoneOf(key.Tonic)) % 12
	if diff < 0 {
		diff += 12
	}

	// Best-fit degree: smallest signed circular delta, first win on ties.
	best := 0
	bestDelta := 99
	for i, off := range steps {
		d := (diff - off) % 12
		if d < 0 {
			d += 12
		}
		if d > 5 {
			d -= 12
		}
		if abs(d) < abs(bestDelta) {
			best = i
			bestDelta = d
		}
	}

	if bestDelta < -2 {
		bestDelta = -2
	}
	if bestDelta > 2 {
		bestDelta = 2
	}
	accidental := [5]string{"bb", "b", "", "#", "##"}[bestDelta+2]

	numeral := numerals[best]
	decoration := ""
	switch {
	case strings.Contains(symbol, "m7b5"), strings.Contains(symbol, "ø"):
		numeral = strings.ToLower(numeral)
		decoration = "ø"
	case c.Quality == QualityDiminished:
		numeral = strings.ToLower(numeral)
		decoration = "°"
	case c.Quality == QualityAugmented:
		decoration = "+"
	case c.Quality == QualityMinor:
		numeral = strings.ToLower(numeral)
	}

	extension := ""
	if strings.Contains(symbol, "maj7") || strings.Contains(symbol, "ma7") || strings.Contains(symbol, "Δ7") {
		extension = "Δ7"
	} else if strings.Contains(symbol, "7") {
		extension = "7"
	}

	return accidental + numeral + decoration + extension
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

package theory

import (
	"regexp"
	"strings"
)

// Quality is the coarse chord quality used for voicing and analysis.
type Quality int

const (
	QualityMajor Quality = iota
	QualityMinor
	QualityDiminished
	QualityAugmented
)

// Chord is a parsed chord symbol.
type Chord struct {
	Symbol  string
	Tonic   string
	Pitches [7]string // root, 3rd, 5th, 7th, 9th, 11th, 13th; "" when absent
	Quality Quality
	Bass    string // slash bass pitch class, "" when none
}

// Degree accessors. Each returns "" when the chord lacks the degree.

func (c *Chord) Root() string       { return c.Pitches[0] }
func (c *Chord) Third() string      { return c.Pitches[1] }
func (c *Chord) Fifth() string      { return c.Pitches[2] }
func (c *Chord) Seventh() string    { return c.Pitches[3] }
func (c *Chord) Ninth() string      { return c.Pitches[4] }
func (c *Chord) Thirteenth() string { return c.Pitches[6] }

// A slash bass must be a bare letter with at most one accidental;
// anything longer stays part of the core symbol.
var slashBassRe = regexp.MustCompile(`^(.+)/([A-Ga-g][#b♯♭]?)$`)

// SplitBass separates an optional slash-bass suffix from the core symbol.
func SplitBass(symbol string) (core, bass string) {
	if m := slashBassRe.FindStringSubmatch(symbol); m != nil {
		return m[1], Normalize(m[2])
	}
	return symbol, ""
}

// Parse turns a chord symbol into a structured chord. The second
// return is false when the lookup cannot resolve a tonic; callers
// treat that as "this chord is unplayable", not as a fatal error.
func Parse(symbol string, lk Lookup) (*Chord, bool) {
	core, bass := SplitBass(strings.TrimSpace(symbol))
	tones, ok := lk.Resolve(core)
	if !ok {
		return nil, false
	}

	c := &Chord{
		Symbol:  symbol,
		Tonic:   tones.Tonic,
		Pitches: tones.Pitches,
		Quality: guessQuality(core, tones.Quality),
		Bass:    bass,
	}
	return c, true
}

// guessQuality infers the coarse quality. Explicit diminished and
// augmented markers win over the lookup's quality string; the final
// fallback is the bare-m heuristic.
func guessQuality(core, lookupQuality string) Quality {
	suffix := core
	if i := rootEnd(core); i > 0 {
		suffix = core[i:]
	}
	switch {
	case strings.Contains(suffix, "dim"),
		strings.Contains(suffix, "o"),
		strings.Contains(suffix, "°"),
		strings.Contains(suffix, "ø"),
		strings.Contains(suffix, "m7b5"):
		return QualityDiminished
	case strings.Contains(suffix, "aug"), strings.Contains(suffix, "+"):
		return QualityAugmented
	case strings.Contains(lookupQuality, "minor"):
		return QualityMinor
	case strings.Contains(lookupQuality, "major"):
		return QualityMajor
	case hasBareMinorM(suffix):
		return QualityMinor
	default:
		return QualityMajor
	}
}

// rootEnd returns the index just past the root letter and accidentals.
func rootEnd(core string) int {
	if core == "" {
		return 0
	}
	i := 1
	for i < len(core) && (core[i] == '#' || core[i] == 'b') {
		i++
	}
	return i
}

// hasBareMinorM reports an "m" that is not part of "maj".
func hasBareMinorM(suffix string) bool {
	for i := 0; i < len(suffix); i++ {
		if suffix[i] != 'm' {
			continue
		}
		if strings.HasPrefix(suffix[i:], "maj") || strings.HasPrefix(suffix[i:], "ma") {
			i += 1
			continue
		}
		return true
	}
	return false
}

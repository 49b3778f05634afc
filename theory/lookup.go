package theory

import "strings"

// Tones is the result of resolving a chord symbol (without slash bass).
// Pitches is ordered root, 3rd, 5th, 7th, 9th, 11th, 13th; slots the
// chord does not define are empty strings.
type Tones struct {
	Tonic   string
	Pitches [7]string
	Quality string
}

// Lookup resolves a textual chord symbol to its constituent tones.
// Implementations must signal failure instead of guessing a tonic.
type Lookup interface {
	Resolve(core string) (Tones, bool)
}

// tableRow is a chord quality: semitone intervals per degree slot,
// -1 where the quality does not define the degree.
type tableRow struct {
	quality   string
	intervals [7]int
}

func row(quality string, intervals ...int) tableRow {
	r := tableRow{quality: quality}
	for i := range r.intervals {
		r.intervals[i] = -1
	}
	copy(r.intervals[:], intervals)
	return r
}

// qualityTable maps the suffix after the root to a chord quality.
var qualityTable = map[string]tableRow{
	"":     row("major", 0, 4, 7),
	"maj":  row("major", 0, 4, 7),
	"M":    row("major", 0, 4, 7),
	"m":    row("minor", 0, 3, 7),
	"min":  row("minor", 0, 3, 7),
	"-":    row("minor", 0, 3, 7),
	"dim":  row("diminished", 0, 3, 6),
	"o":    row("diminished", 0, 3, 6),
	"°":    row("diminished", 0, 3, 6),
	"dim7": row("diminished seventh", 0, 3, 6, 9),
	"o7":   row("diminished seventh", 0, 3, 6, 9),
	"aug":  row("augmented", 0, 4, 8),
	"+":    row("augmented", 0, 4, 8),

	"5":  row("power", 0, -1, 7),
	"6":  {quality: "major sixth", intervals: [7]int{0, 4, 7, -1, -1, -1, 9}},
	"m6": {quality: "minor sixth", intervals: [7]int{0, 3, 7, -1, -1, -1, 9}},

	"7":  row("dominant seventh", 0, 4, 7, 10),
	"9":  row("dominant ninth", 0, 4, 7, 10, 14),
	"11": row("dominant eleventh", 0, 4, 7, 10, 14, 17),
	"13": {quality: "dominant thirteenth", intervals: [7]int{0, 4, 7, 10, 14, -1, 21}},

	"maj7":  row("major seventh", 0, 4, 7, 11),
	"ma7":   row("major seventh", 0, 4, 7, 11),
	"M7":    row("major seventh", 0, 4, 7, 11),
	"Δ7":    row("major seventh", 0, 4, 7, 11),
	"Δ":     row("major seventh", 0, 4, 7, 11),
	"maj9":  row("major ninth", 0, 4, 7, 11, 14),
	"maj13": {quality: "major thirteenth", intervals: [7]int{0, 4, 7, 11, 14, -1, 21}},

	"m7":   row("minor seventh", 0, 3, 7, 10),
	"min7": row("minor seventh", 0, 3, 7, 10),
	"-7":   row("minor seventh", 0, 3, 7, 10),
	"m9":   row("minor ninth", 0, 3, 7, 10, 14),
	"m11":  row("minor eleventh", 0, 3, 7, 10, 14, 17),
	"m13":  {quality: "minor thirteenth", intervals: [7]int{0, 3, 7, 10, 14, -1, 21}},

	"mmaj7":   row("minor major seventh", 0, 3, 7, 11),
	"mM7":     row("minor major seventh", 0, 3, 7, 11),
	"minmaj7": row("minor major seventh", 0, 3, 7, 11),

	"m7b5": row("half diminished", 0, 3, 6, 10),
	"ø":    row("half diminished", 0, 3, 6, 10),
	"ø7":   row("half diminished", 0, 3, 6, 10),

	"aug7": row("augmented seventh", 0, 4, 8, 10),
	"+7":   row("augmented seventh", 0, 4, 8, 10),
	"7#5":  row("augmented seventh", 0, 4, 8, 10),
	"7b5":  row("dominant seventh flat five", 0, 4, 6, 10),
	"7b9":  row("dominant seventh flat nine", 0, 4, 7, 10, 13),
	"7#9":  row("dominant seventh sharp nine", 0, 4, 7, 10, 15),
	"7#11": row("dominant seventh sharp eleven", 0, 4, 7, 10, 14, 18),

	"sus":   row("suspended fourth", 0, 5, 7),
	"sus4":  row("suspended fourth", 0, 5, 7),
	"sus2":  row("suspended second", 0, 2, 7),
	"7sus":  row("dominant seventh suspended", 0, 5, 7, 10),
	"7sus4": row("dominant seventh suspended", 0, 5, 7, 10),
	"9sus4": row("dominant ninth suspended", 0, 5, 7, 10, 14),

	"add9":  {quality: "major add nine", intervals: [7]int{0, 4, 7, -1, 14}},
	"madd9": {quality: "minor add nine", intervals: [7]int{0, 3, 7, -1, 14}},
	"add11": {quality: "major add eleven", intervals: [7]int{0, 4, 7, -1, -1, 17}},
}

// TableLookup resolves chord symbols against the bundled interval table.
type TableLookup struct{}

// NewTableLookup returns the bundled chord-theory table.
func NewTableLookup() *TableLookup {
	return &TableLookup{}
}

// Resolve splits a chord symbol into root and quality suffix and maps
// the suffix through the interval table. The second return is false
// when no tonic can be resolved.
func (t *TableLookup) Resolve(core string) (Tones, bool) {
	core = Normalize(core)
	if core == "" {
		return Tones{}, false
	}
	if _, ok := letterSemitones[core[0]]; !ok {
		return Tones{}, false
	}

	// Root consumes the letter and any run of accidentals.
	end := 1
	for end < len(core) && (core[end] == '#' || core[end] == 'b') {
		// A lone trailing "b" after a bare letter could also start a
		// suffix, but no quality in the table begins with "b".
		end++
	}
	root := core[:end]
	suffix := core[end:]

	r, ok := qualityTable[suffix]
	if !ok {
		return Tones{}, false
	}

	flats := strings.Contains(root, "b") || root == "F"
	base := SemitoneOf(root)
	tones := Tones{Tonic: root, Quality: r.quality}
	for i, iv := range r.intervals {
		if iv < 0 {
			continue
		}
		if i == 0 {
			tones.Pitches[0] = root
			continue
		}
		tones.Pitches[i] = ClassName(base+iv, flats)
	}
	return tones, true
}

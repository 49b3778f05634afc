package theory

import (
	"strconv"
	"strings"
)

// Semitone offsets of the natural letters (C=0 convention).
var letterSemitones = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

var sharpNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
var flatNames = [12]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

// Normalize cleans up a pitch class: uppercase letter, fullwidth
// accidental glyphs mapped to ASCII # and b.
func Normalize(pc string) string {
	pc = strings.TrimSpace(pc)
	if pc == "" {
		return ""
	}
	r := strings.NewReplacer("♯", "#", "♭", "b", "＃", "#", "ｂ", "b")
	pc = r.Replace(pc)
	return strings.ToUpper(pc[:1]) + pc[1:]
}

// SemitoneOf reduces a pitch class to a semitone value 0-11.
// Unknown letters resolve to 0.
func SemitoneOf(pc string) int {
	pc = Normalize(pc)
	if pc == "" {
		return 0
	}
	s, ok := letterSemitones[pc[0]]
	if !ok {
		return 0
	}
	for _, c := range pc[1:] {
		switch c {
		case '#':
			s++
		case 'b':
			s--
		}
	}
	s %= 12
	if s < 0 {
		s += 12
	}
	return s
}

// SignedDiff is the signed shortest semitone distance from one pitch
// class to another, in [-6,+5]. Ties at the tritone resolve negative
// so a raw distance of 6 becomes -6.
func SignedDiff(from, to string) int {
	d := (SemitoneOf(to) - SemitoneOf(from)) % 12
	if d < 0 {
		d += 12
	}
	if d > 5 {
		d -= 12
	}
	return d
}

// PitchAt places a pitch class in a register (MIDI numbering, C4=60).
func PitchAt(pc string, register int) int {
	return (register+1)*12 + SemitoneOf(pc)
}

// NameOf converts an absolute pitch back to letter+accidental+register.
// Flat spelling is used when flats is true.
func NameOf(pitch int, flats bool) string {
	cls := pitch % 12
	if cls < 0 {
		cls += 12
	}
	register := pitch/12 - 1
	name := sharpNames[cls]
	if flats {
		name = flatNames[cls]
	}
	return name + strconv.Itoa(register)
}

// ClassName returns the bare pitch-class name for a semitone value.
func ClassName(semitone int, flats bool) string {
	semitone %= 12
	if semitone < 0 {
		semitone += 12
	}
	if flats {
		return flatNames[semitone]
	}
	return sharpNames[semitone]
}

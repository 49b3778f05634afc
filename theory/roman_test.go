package theory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRomanizeMajorKey(t *testing.T) {
	key := Key{Tonic: "C", Mode: ModeMajor}
	cases := map[string]string{
		"C":     "I",
		"Dm7":   "ii7",
		"G7":    "V7",
		"Fmaj7": "IVΔ7",
		"Am":    "vi",
		"Bdim":  "vii°",
		"Cm7":   "i7",
		"Caug":  "I+",
	}
	for symbol, want := range cases {
		assert.Equal(t, want, Romanize(symbol, key, lk), symbol)
	}
}

func TestRomanizeIgnoresSlashBass(t *testing.T) {
	key := Key{Tonic: "C", Mode: ModeMajor}
	assert.Equal(t, "IV", Romanize("F/G", key, lk))
	assert.Equal(t, "ii7", Romanize("Dm7/C", key, lk))
}

func TestRomanizeMinorKey(t *testing.T) {
	key := Key{Tonic: "A", Mode: ModeMinor}
	cases := map[string]string{
		"Am":    "i",
		"C":     "III",
		"Dm":    "iv",
		"E7":    "V7",
		"F":     "VI",
		"G":     "VII",
		"Bm7b5": "iiø7",
	}
	for symbol, want := range cases {
		assert.Equal(t, want, Romanize(symbol, key, lk), symbol)
	}
}

func TestRomanizeAccidentals(t *testing.T) {
	key := Key{Tonic: "C", Mode: ModeMajor}
	// Semitone 1 ties between #I and bII; the lower degree wins.
	assert.Equal(t, "#I", Romanize("Db", key, lk))
	assert.Equal(t, "#ivø7", Romanize("F#m7b5", key, lk))
	// Semitone 3 also ties (#II vs bIII) and resolves the same way.
	assert.Equal(t, "#II", Romanize("Eb", key, lk))
}

func TestRomanizeHalfDiminished(t *testing.T) {
	key := Key{Tonic: "C", Mode: ModeMajor}
	assert.Equal(t, "iiø7", Romanize("Dm7b5", key, lk))
	assert.Equal(t, "iiø7", Romanize("Dø7", key, lk))
}

func TestRomanizeUnparseable(t *testing.T) {
	key := Key{Tonic: "C", Mode: ModeMajor}
	assert.Equal(t, "", Romanize("???", key, lk))
}

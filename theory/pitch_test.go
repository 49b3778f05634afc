package theory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "C#", Normalize("c♯"))
	assert.Equal(t, "Bb", Normalize("b♭"))
	assert.Equal(t, "F#", Normalize("f＃"))
	assert.Equal(t, "Eb", Normalize(" eｂ "))
	assert.Equal(t, "", Normalize("   "))
}

func TestSemitoneOf(t *testing.T) {
	cases := map[string]int{
		"C": 0, "D": 2, "E": 4, "F": 5, "G": 7, "A": 9, "B": 11,
		"C#": 1, "Db": 1, "Bb": 10, "Cb": 11, "B#": 0, "F##": 7,
	}
	for pc, want := range cases {
		assert.Equal(t, want, SemitoneOf(pc), pc)
	}
}

func TestSignedDiffRange(t *testing.T) {
	names := []string{"C", "C#", "D", "Eb", "E", "F", "F#", "G", "Ab", "A", "Bb", "B"}
	for _, from := range names {
		for _, to := range names {
			d := SignedDiff(from, to)
			assert.GreaterOrEqual(t, d, -6, "%s->%s", from, to)
			assert.LessOrEqual(t, d, 5, "%s->%s", from, to)
		}
		assert.Zero(t, SignedDiff(from, from))
	}
}

func TestSignedDiff(t *testing.T) {
	assert.Equal(t, 2, SignedDiff("C", "D"))
	assert.Equal(t, -1, SignedDiff("C", "B"))
	assert.Equal(t, -6, SignedDiff("C", "F#"), "tritone resolves negative")
	assert.Equal(t, 5, SignedDiff("C", "F"))
}

func TestPitchAt(t *testing.T) {
	assert.Equal(t, 60, PitchAt("C", 4))
	assert.Equal(t, 69, PitchAt("A", 4))
	assert.Equal(t, 36, PitchAt("C", 2))
	assert.Equal(t, 61, PitchAt("Db", 4))
}

func TestNameOf(t *testing.T) {
	assert.Equal(t, "C4", NameOf(60, false))
	assert.Equal(t, "C#4", NameOf(61, false))
	assert.Equal(t, "Db4", NameOf(61, true))
	assert.Equal(t, "A0", NameOf(21, false))
}

func TestNameOfPitchAtRoundTrip(t *testing.T) {
	for p := 21; p <= 108; p++ {
		name := NameOf(p, false)
		pc := name[:len(name)-1]
		assert.Equal(t, p%12, SemitoneOf(pc), name)
	}
}

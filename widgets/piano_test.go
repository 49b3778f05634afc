package widgets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPianoHitTestRoundTrip(t *testing.T) {
	p := Piano{Min: 48, Max: 72}
	for _, c := range p.layout() {
		y := 1
		if c.black {
			y = 0
		}
		pitch, ok := p.HitTest(c.x0, y)
		require.True(t, ok, "pitch %d", c.pitch)
		assert.Equal(t, c.pitch, pitch)
	}
}

func TestPianoHitTestMisses(t *testing.T) {
	p := Piano{Min: 60, Max: 72}
	_, ok := p.HitTest(-1, 1)
	assert.False(t, ok)
	_, ok = p.HitTest(p.Width()+5, 1)
	assert.False(t, ok)
	_, ok = p.HitTest(0, 3)
	assert.False(t, ok)
}

func TestPianoBottomRowsHitWhiteKeysOnly(t *testing.T) {
	p := Piano{Min: 60, Max: 72}
	for x := 0; x < p.Width(); x++ {
		for y := 1; y <= 2; y++ {
			if pitch, ok := p.HitTest(x, y); ok {
				cls := pitch % 12
				assert.True(t, isNatural[cls], "x=%d y=%d hit %d", x, y, pitch)
			}
		}
	}
}

func TestPianoWidthGrowsWithRange(t *testing.T) {
	small := Piano{Min: 60, Max: 64}
	large := Piano{Min: 48, Max: 84}
	assert.Greater(t, large.Width(), small.Width())
	assert.Equal(t, 3, large.Height())
}

func TestPianoRenderLineCount(t *testing.T) {
	p := Piano{Min: 60, Max: 72}
	out := p.Render(PianoHighlights{Picked: -1}, PianoStyle{})
	lines := 1
	for _, r := range out {
		if r == '\n' {
			lines++
		}
	}
	assert.Equal(t, p.Height(), lines)
}

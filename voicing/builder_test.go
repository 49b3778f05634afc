package voicing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chordpad/theory"
)

var lk = theory.NewTableLookup()

func TestBuildTriadBass(t *testing.T) {
	r, ok := Build("C", 4, PresetTriadBass, 0, OmitFlags{}, lk)
	require.True(t, ok)
	// Bass two registers down, then 3-5-1 stacked ascending.
	assert.Equal(t, []int{36, 64, 67, 72}, r.Pitches)
	assert.Equal(t, []string{"C2", "E4", "G4", "C5"}, r.Names)
}

func TestBuildTriadBassSlashBass(t *testing.T) {
	r, ok := Build("C/E", 4, PresetTriadBass, 0, OmitFlags{}, lk)
	require.True(t, ok)
	require.NotEmpty(t, r.Pitches)
	assert.Equal(t, 4, r.Pitches[0]%12, "bass voice should be E")
}

func TestBuildDrop2SetLaw(t *testing.T) {
	r, ok := Build("Cmaj7", 4, PresetDrop2, 0, OmitFlags{}, lk)
	require.True(t, ok)
	require.Len(t, r.Pitches, 4)

	// Drop-2 takes the closed stack's second voice from the top down an
	// octave. Against the closed stack 60-64-67-71 that gives
	// {55, 60, 64, 71}, re-sorted ascending.
	assert.Equal(t, []int{55, 60, 64, 71}, r.Pitches)

	for i := 1; i < len(r.Pitches); i++ {
		assert.Less(t, r.Pitches[i-1], r.Pitches[i])
	}
}

func TestBuildDropVariants(t *testing.T) {
	// Closed Cmaj7 at center 4 is 60-64-67-71.
	cases := []struct {
		preset Preset
		want   []int
	}{
		{PresetDrop2, []int{55, 60, 64, 71}},
		{PresetDrop3, []int{52, 60, 67, 71}},
		{PresetDrop4, []int{48, 64, 67, 71}},
		// Drop-2&4 lands its second voice at 55, below the crowding
		// floor, so everything above the bass lifts an octave.
		{PresetDrop24, []int{48, 67, 76, 83}},
	}
	for _, tc := range cases {
		r, ok := Build("Cmaj7", 4, tc.preset, 0, OmitFlags{}, lk)
		require.True(t, ok, tc.preset.String())
		assert.Equal(t, tc.want, r.Pitches, tc.preset.String())
	}
}

func TestBuildDropNeedsFourVoices(t *testing.T) {
	// Omitting the seventh leaves three voices; no drop applies and the
	// stack stays closed.
	r, ok := Build("Cmaj7", 4, PresetDrop2, 0, OmitFlags{Seventh: true}, lk)
	require.True(t, ok)
	assert.Equal(t, []int{60, 64, 67}, r.Pitches)
}

func TestBuildTranspositionLinearity(t *testing.T) {
	for _, preset := range Presets() {
		base, ok := Build("G7", 4, preset, 0, OmitFlags{}, lk)
		require.True(t, ok)
		shifted, ok := Build("G7", 4, preset, 3, OmitFlags{}, lk)
		require.True(t, ok)
		require.Len(t, shifted.Pitches, len(base.Pitches))
		for i := range base.Pitches {
			assert.Equal(t, base.Pitches[i]+3, shifted.Pitches[i], preset.String())
		}
	}
}

func TestBuildCrowdingKeepsBassRegister(t *testing.T) {
	// At center 3 the upper voices start below the floor and get lifted
	// an octave; the bass must not move.
	r, ok := Build("C", 3, PresetTriadBass, 0, OmitFlags{}, lk)
	require.True(t, ok)
	assert.Equal(t, []int{24, 64, 67, 72}, r.Pitches)
}

func TestBuildAllOmittedFallsBack(t *testing.T) {
	omit := OmitFlags{Root: true, Third: true, Fifth: true, Seventh: true}
	for _, preset := range Presets() {
		r, ok := Build("C", 4, preset, 0, omit, lk)
		require.True(t, ok, preset.String())
		assert.NotEmpty(t, r.Pitches, preset.String())
	}
}

func TestBuildFallbackPitch(t *testing.T) {
	omit := OmitFlags{Root: true, Third: true, Fifth: true, Seventh: true}
	r, ok := Build("C", 4, PresetTriadBass, 0, omit, lk)
	require.True(t, ok)
	assert.Equal(t, []int{48}, r.Pitches)
}

func TestBuildUnparseable(t *testing.T) {
	r, ok := Build("???", 4, PresetTriadBass, 0, OmitFlags{}, lk)
	assert.False(t, ok)
	assert.Nil(t, r)
}

func TestBuildFlatSpelling(t *testing.T) {
	r, ok := Build("Bbmaj7", 4, PresetShell, 0, OmitFlags{}, lk)
	require.True(t, ok)
	for _, name := range r.Names {
		assert.NotContains(t, name, "#")
	}
}

func TestBuildNeverEmptyAcrossSymbols(t *testing.T) {
	symbols := []string{"C", "Am7", "F#dim", "Bb13", "G7sus", "Dm7b5", "Eaug", "C/G"}
	for _, sym := range symbols {
		for _, preset := range Presets() {
			r, ok := Build(sym, 4, preset, 0, OmitFlags{}, lk)
			require.True(t, ok, "%s %s", sym, preset)
			assert.NotEmpty(t, r.Pitches, "%s %s", sym, preset)
			assert.Len(t, r.Names, len(r.Pitches))
		}
	}
}

func TestPresetStringRoundTrip(t *testing.T) {
	seen := map[string]bool{}
	for _, p := range Presets() {
		s := p.String()
		assert.NotEmpty(t, s)
		assert.False(t, seen[s], "duplicate preset name %q", s)
		seen[s] = true
	}
}

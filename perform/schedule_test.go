package perform

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func plainChord() Settings {
	s := DefaultSettings()
	s.JitterMs = 0
	s.Humanize = 0
	s.TopBoost = 0
	return s
}

func TestScheduleChordDelays(t *testing.T) {
	s := plainChord()
	s.StrumSpanMs = 30

	names := []string{"C", "E", "G", "B"}
	pitches := []int{60, 64, 67, 71}

	events := Schedule(names, pitches, s, 1.0, fixedRand())
	require.Len(t, events, 4)

	for i, want := range []float64{0, 10, 20, 30} {
		assert.InDelta(t, want, events[i].DelayMs, 1e-9)
	}
	// Up strum attacks in ascending pitch order.
	for i := 1; i < len(events); i++ {
		assert.Greater(t, events[i].Pitch, events[i-1].Pitch)
	}
}

func TestScheduleSingleNoteNoDelay(t *testing.T) {
	s := plainChord()
	s.StrumSpanMs = 500

	events := Schedule([]string{"C"}, []int{60}, s, 1.0, fixedRand())
	require.Len(t, events, 1)
	assert.Zero(t, events[0].DelayMs)
	assert.True(t, events[0].TopVoice)
}

func TestScheduleDownStrum(t *testing.T) {
	s := plainChord()
	s.StrumDirection = DirDown

	events := Schedule([]string{"C", "E", "G"}, []int{60, 64, 67}, s, 1.0, fixedRand())
	require.Len(t, events, 3)
	assert.Equal(t, 67, events[0].Pitch)
	assert.Equal(t, 60, events[2].Pitch)
}

func TestScheduleArp1357KeepsCallerOrder(t *testing.T) {
	s := plainChord()
	s.PlayMode = PlayArpeggio
	s.ArpPattern = Pattern1357
	s.ArpStepMs = 90

	// Deliberately not pitch-sorted: 1357 must not re-sort.
	names := []string{"G", "C", "B", "E"}
	pitches := []int{67, 60, 71, 64}

	events := Schedule(names, pitches, s, 10, fixedRand())
	require.Len(t, events, 4)

	for i := range events {
		assert.Equal(t, names[i], events[i].Name)
		assert.Equal(t, pitches[i], events[i].Pitch)
		assert.InDelta(t, float64(i)*90, events[i].DelayMs, 1e-9)
	}
}

func TestScheduleArpDurationGated(t *testing.T) {
	s := plainChord()
	s.PlayMode = PlayArpeggio
	s.ArpStepMs = 100
	s.ArpGate = 0.5

	events := Schedule([]string{"C", "E"}, []int{60, 64}, s, 10, fixedRand())
	require.NotEmpty(t, events)
	// 100ms step at gate 0.5 -> 50ms, the floor.
	assert.InDelta(t, 0.05, events[0].Duration, 1e-9)

	// Gated duration never exceeds the nominal duration.
	s.ArpStepMs = 2000
	s.ArpGate = 1.0
	events = Schedule([]string{"C", "E"}, []int{60, 64}, s, 0.3, fixedRand())
	require.NotEmpty(t, events)
	assert.InDelta(t, 0.3, events[0].Duration, 1e-9)
}

func TestScheduleTopVoiceBoost(t *testing.T) {
	s := plainChord()
	s.BaseVelocity = 0.5
	s.TopBoost = 0.2

	events := Schedule([]string{"C", "E", "G"}, []int{60, 64, 67}, s, 1.0, fixedRand())
	require.Len(t, events, 3)
	for _, e := range events {
		if e.TopVoice {
			assert.Equal(t, 67, e.Pitch)
			assert.InDelta(t, 0.6, e.Velocity, 1e-9)
		} else {
			assert.InDelta(t, 0.5, e.Velocity, 1e-9)
		}
	}
}

func TestScheduleVelocityClamped(t *testing.T) {
	s := plainChord()
	s.BaseVelocity = 1.0
	s.TopBoost = 1.0

	events := Schedule([]string{"C", "E"}, []int{60, 64}, s, 1.0, fixedRand())
	for _, e := range events {
		assert.LessOrEqual(t, e.Velocity, 1.0)
		assert.GreaterOrEqual(t, e.Velocity, 0.0)
	}
}

func TestScheduleJitterNeverNegative(t *testing.T) {
	s := plainChord()
	s.StrumSpanMs = 0
	s.JitterMs = 50

	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		events := Schedule([]string{"C", "E", "G"}, []int{60, 64, 67}, s, 1.0, rng)
		for _, e := range events {
			assert.GreaterOrEqual(t, e.DelayMs, 0.0)
		}
	}
}

func TestScheduleEmptyAndMismatched(t *testing.T) {
	s := DefaultSettings()
	assert.Empty(t, Schedule(nil, nil, s, 1.0, fixedRand()))
	assert.Empty(t, Schedule([]string{"C"}, []int{60, 64}, s, 1.0, fixedRand()))
}

func TestScheduleNormalizesGarbageSettings(t *testing.T) {
	s := Settings{
		PlayMode:       "bogus",
		StrumSpanMs:    -100,
		StrumDirection: "sideways",
		ArpPattern:     "zigzag",
		ArpStepMs:      -5,
		ArpGate:        99,
		JitterMs:       -1,
		Humanize:       -1,
		BaseVelocity:   42,
		TopBoost:       -3,
	}

	events := Schedule([]string{"C", "E"}, []int{60, 64}, s, -2, fixedRand())
	require.Len(t, events, 2)
	for _, e := range events {
		assert.GreaterOrEqual(t, e.DelayMs, 0.0)
		assert.GreaterOrEqual(t, e.Velocity, 0.0)
		assert.LessOrEqual(t, e.Velocity, 1.0)
		assert.GreaterOrEqual(t, e.Duration, 0.05)
	}
}

func TestNormalizedDefaults(t *testing.T) {
	var s Settings
	n := s.normalized()

	assert.Equal(t, PlayChord, n.PlayMode)
	assert.Equal(t, DirUp, n.StrumDirection)
	assert.Equal(t, PatternUp, n.ArpPattern)
	assert.InDelta(t, 120.0, n.ArpStepMs, 1e-9)
	assert.InDelta(t, 0.1, n.ArpGate, 1e-9)
	assert.InDelta(t, 0.05, n.BaseVelocity, 1e-9)
}

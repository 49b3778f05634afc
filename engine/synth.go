package engine

// Synth is the sound-engine boundary. The engine decides what sounds
// when; the synth only starts and stops voices. Attack may be called
// with the engine lock held, so implementations must not call back
// into the Manager.
type Synth interface {
	Attack(name string, pitch int, velocity float64)
	Release(names []string, pitches []int)
	ReleaseAll()
}

// NullSynth discards everything. Used when no MIDI output is
// available so the instrument still runs visually.
type NullSynth struct{}

func (NullSynth) Attack(name string, pitch int, velocity float64) {}
func (NullSynth) Release(names []string, pitches []int)           {}
func (NullSynth) ReleaseAll()                                     {}

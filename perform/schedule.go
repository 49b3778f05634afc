package perform

import (
	"math/rand"
	"sort"

	"chordpad/util"
)

// NoteEvent is one timed, humanized attack.
type NoteEvent struct {
	Name     string
	Pitch    int
	TopVoice bool
	DelayMs  float64 // >= 0
	Velocity float64 // 0-1
	Duration float64 // seconds
}

// Schedule turns an ordered note set into timed attacks. Events come
// back delay-ordered per the articulation; the caller owns delivery.
// Empty or mismatched inputs yield an empty schedule, never an error.
// The random source drives shuffle, jitter and humanization so tests
// can seed it.
func Schedule(names []string, pitches []int, s Settings, nominalDurSec float64, rng *rand.Rand) []NoteEvent {
	if len(names) == 0 || len(names) != len(pitches) {
		return nil
	}
	s = s.normalized()
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	// First occurrence of the highest pitch is the top voice.
	topIdx := 0
	for i, p := range pitches {
		if p > pitches[topIdx] {
			topIdx = i
		}
	}

	order := playOrder(pitches, s, rng)
	n := len(order)

	nominal := util.Clamp(nominalDurSec, 0.05, 10)
	duration := nominal
	if s.PlayMode == PlayArpeggio {
		gated := (s.ArpStepMs / 1000) * s.ArpGate
		if gated < 0.05 {
			gated = 0.05
		}
		if gated < duration {
			duration = gated
		}
	}

	events := make([]NoteEvent, 0, n)
	for i, idx := range order {
		var delay float64
		if s.PlayMode == PlayArpeggio {
			delay = float64(i) * s.ArpStepMs
		} else if n > 1 {
			delay = float64(i) * (s.StrumSpanMs / float64(n-1))
		}
		if s.JitterMs > 0 {
			delay += (rng.Float64()*2 - 1) * s.JitterMs
			if delay < 0 {
				delay = 0
			}
		}

		v := s.BaseVelocity
		if s.Humanize > 0 {
			v *= 1 + (rng.Float64()*2-1)*s.Humanize
		}
		if idx == topIdx && s.TopBoost > 0 {
			v *= 1 + s.TopBoost
		}
		v = util.Clamp(v, 0, 1)

		events = append(events, NoteEvent{
			Name:     names[idx],
			Pitch:    pitches[idx],
			TopVoice: idx == topIdx,
			DelayMs:  delay,
			Velocity: v,
			Duration: duration,
		})
	}
	return events
}

// playOrder returns source indices in attack order. The 1357 arp
// pattern keeps the caller's voice order verbatim; everything else
// sorts by pitch and applies direction.
func playOrder(pitches []int, s Settings, rng *rand.Rand) []int {
	order := make([]int, len(pitches))
	for i := range order {
		order[i] = i
	}

	if s.PlayMode == PlayArpeggio && s.ArpPattern == Pattern1357 {
		return order
	}

	descending := false
	shuffle := false
	if s.PlayMode == PlayArpeggio {
		descending = s.ArpPattern == PatternDown
		shuffle = s.ArpPattern == PatternRandom
	} else {
		descending = s.StrumDirection == DirDown
		shuffle = s.StrumDirection == DirRandom
	}

	if shuffle {
		rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
		return order
	}

	sort.SliceStable(order, func(i, j int) bool {
		return pitches[order[i]] < pitches[order[j]]
	})
	if descending {
		for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
			order[i], order[j] = order[j], order[i]
		}
	}
	return order
}

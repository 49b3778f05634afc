package perform

import "chordpad/util"

// PlayMode selects block-chord strum or arpeggio articulation.
type PlayMode string

const (
	PlayChord    PlayMode = "chord"
	PlayArpeggio PlayMode = "arpeggio"
)

// Direction orders strummed chord attacks.
type Direction string

const (
	DirUp     Direction = "up"
	DirDown   Direction = "down"
	DirRandom Direction = "random"
)

// Pattern orders arpeggiated attacks. Pattern1357 trusts the caller's
// voice order instead of re-sorting by pitch.
type Pattern string

const (
	PatternUp     Pattern = "up"
	PatternDown   Pattern = "down"
	PatternRandom Pattern = "random"
	Pattern1357   Pattern = "1357"
)

// Settings holds all performance parameters. Out-of-range values are
// clamped and invalid enums defaulted; a settings struct is never
// rejected.
type Settings struct {
	PlayMode       PlayMode  `json:"playMode"`
	StrumSpanMs    float64   `json:"strumSpanMs"`
	StrumDirection Direction `json:"strumDirection"`
	ArpPattern     Pattern   `json:"arpPattern"`
	ArpStepMs      float64   `json:"arpStepMs"`
	ArpGate        float64   `json:"arpGate"`  // fraction of a step, 0.1-1.0
	JitterMs       float64   `json:"jitterMs"` // uniform timing jitter, >= 0
	Humanize       float64   `json:"humanize"` // velocity humanize fraction, >= 0
	BaseVelocity   float64   `json:"baseVelocity"`
	TopBoost       float64   `json:"topBoost"` // top-voice velocity boost, 0-1
}

// DefaultSettings is a gentle strummed chord.
func DefaultSettings() Settings {
	return Settings{
		PlayMode:       PlayChord,
		StrumSpanMs:    25,
		StrumDirection: DirUp,
		ArpPattern:     PatternUp,
		ArpStepMs:      120,
		ArpGate:        0.9,
		JitterMs:       0,
		Humanize:       0.05,
		BaseVelocity:   0.7,
		TopBoost:       0.15,
	}
}

// normalized returns a copy with every field forced into range.
func (s Settings) normalized() Settings {
	if s.PlayMode != PlayChord && s.PlayMode != PlayArpeggio {
		s.PlayMode = PlayChord
	}
	switch s.StrumDirection {
	case DirUp, DirDown, DirRandom:
	default:
		s.StrumDirection = DirUp
	}
	switch s.ArpPattern {
	case PatternUp, PatternDown, PatternRandom, Pattern1357:
	default:
		s.ArpPattern = PatternUp
	}
	s.StrumSpanMs = util.Clamp(s.StrumSpanMs, 0, 2000)
	if s.ArpStepMs <= 0 {
		s.ArpStepMs = 120
	}
	s.ArpStepMs = util.Clamp(s.ArpStepMs, 1, 2000)
	s.ArpGate = util.Clamp(s.ArpGate, 0.1, 1.0)
	if s.JitterMs < 0 {
		s.JitterMs = 0
	}
	if s.Humanize < 0 {
		s.Humanize = 0
	}
	s.BaseVelocity = util.Clamp(s.BaseVelocity, 0.05, 1.0)
	s.TopBoost = util.Clamp(s.TopBoost, 0, 1.0)
	return s
}

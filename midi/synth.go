package midi

import (
	"fmt"
	"sync"

	gomidi "gitlab.com/gomidi/midi/v2"

	"chordpad/debug"
)

// Synth sends attacks and releases to a MIDI output port. It tracks
// active notes so ReleaseAll can silence exactly what it started.
type Synth struct {
	mu      sync.Mutex
	send    func(gomidi.Message) error
	channel uint8
	active  map[uint8]bool
}

// NewSynth opens the named output port, or the first available port
// when name is empty.
func NewSynth(portName string, channel int) (*Synth, error) {
	outPorts := gomidi.GetOutPorts()
	if len(outPorts) == 0 {
		return nil, fmt.Errorf("no MIDI output ports")
	}

	port := outPorts[0]
	if portName != "" {
		found := false
		for _, p := range outPorts {
			if p.String() == portName {
				port = p
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("MIDI output %q not found", portName)
		}
	}

	send, err := gomidi.SendTo(port)
	if err != nil {
		return nil, fmt.Errorf("open output %q: %w", port.String(), err)
	}

	if channel < 1 {
		channel = 1
	}
	if channel > 16 {
		channel = 16
	}

	return &Synth{
		send:    send,
		channel: uint8(channel - 1),
		active:  make(map[uint8]bool),
	}, nil
}

// clampNote keeps pitches inside the MIDI range.
func clampNote(pitch int) uint8 {
	if pitch < 0 {
		return 0
	}
	if pitch > 127 {
		return 127
	}
	return uint8(pitch)
}

// Attack starts a voice. Velocity is a 0-1 fraction.
func (s *Synth) Attack(name string, pitch int, velocity float64) {
	if velocity < 0 {
		velocity = 0
	}
	if velocity > 1 {
		velocity = 1
	}
	vel := uint8(velocity * 126)
	vel++ // never send velocity 0, that reads as note-off
	note := clampNote(pitch)

	s.mu.Lock()
	s.active[note] = true
	s.mu.Unlock()

	s.send(gomidi.NoteOn(s.channel, note, vel))
	debug.Log("synth", "attack %s note=%d vel=%d", name, note, vel)
}

// Release stops the given voices.
func (s *Synth) Release(names []string, pitches []int) {
	for _, p := range pitches {
		note := clampNote(p)
		s.mu.Lock()
		delete(s.active, note)
		s.mu.Unlock()
		s.send(gomidi.NoteOff(s.channel, note))
	}
}

// ReleaseAll stops every voice this synth started.
func (s *Synth) ReleaseAll() {
	s.mu.Lock()
	notes := make([]uint8, 0, len(s.active))
	for n := range s.active {
		notes = append(notes, n)
	}
	s.active = make(map[uint8]bool)
	s.mu.Unlock()

	for _, n := range notes {
		s.send(gomidi.NoteOff(s.channel, n))
	}
}

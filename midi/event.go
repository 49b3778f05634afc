package midi

// NoteEvent is sent when a note is played on an external keyboard.
type NoteEvent struct {
	Note     uint8
	Velocity uint8
	Channel  uint8
	Off      bool
}

// Controller is the interface for MIDI input devices.
type Controller interface {
	ID() string

	// NoteEvents reports pressed (and released) keys.
	NoteEvents() <-chan NoteEvent

	Close() error
}

package engine

import "github.com/google/uuid"

// Hold is one sustained, cancelable playback session tied to a pad
// index. It owns the cancel handles for attacks that have not fired
// and the names of voices already sounding. At most one Hold exists
// per index; a second press on a held index is a no-op.
type Hold struct {
	ID       uuid.UUID
	Index    int
	cancels  []func()
	sounding []soundingNote
}

type soundingNote struct {
	name  string
	pitch int
}

func newHold(index int) *Hold {
	return &Hold{ID: uuid.New(), Index: index}
}

// cancelPending stops every attack that has not fired yet.
func (h *Hold) cancelPending() {
	for _, c := range h.cancels {
		c()
	}
	h.cancels = nil
}

func (h *Hold) soundingNotes() (names []string, pitches []int) {
	for _, n := range h.sounding {
		names = append(names, n.name)
		pitches = append(pitches, n.pitch)
	}
	return names, pitches
}

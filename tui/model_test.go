package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chordpad/engine"
	"chordpad/theme"
	"chordpad/theory"
)

func newTestModel() Model {
	mgr := engine.NewManager(theory.NewTableLookup(), engine.NullSynth{}, engine.NewTimerTransport(), nil)
	return NewModel(mgr, nil, theme.New(theme.Default()))
}

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func TestMouseClickPicksPianoPitch(t *testing.T) {
	m := newTestModel()
	m.View() // caches the piano position for hit-testing

	// The lowest key sits at the left edge of the piano's white rows.
	next, _ := m.Update(click(0, m.bounds.pianoTop+1))
	nm, ok := next.(Model)
	require.True(t, ok)
	assert.Equal(t, pianoMin, nm.picked)
}

func TestMouseClickOutsidePianoIsIgnored(t *testing.T) {
	m := newTestModel()
	m.View()

	next, _ := m.Update(click(0, m.bounds.pianoTop-1))
	assert.Equal(t, -1, next.(Model).picked)

	next, _ = m.Update(click(0, m.bounds.pianoTop+m.bounds.pianoHeight))
	assert.Equal(t, -1, next.(Model).picked)
}

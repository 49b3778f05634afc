package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"chordpad/engine"
	"chordpad/midi"
	"chordpad/perform"
	"chordpad/theme"
	"chordpad/theory"
	"chordpad/voicing"
	"chordpad/widgets"
)

// layoutBounds holds cached layout info for mouse hit-testing.
type layoutBounds struct {
	pianoTop    int
	pianoHeight int
}

// Keyboard range shown by the piano widget (A1..C7).
const (
	pianoMin = 33
	pianoMax = 96
)

type Model struct {
	Manager   *engine.Manager
	DeviceMgr *midi.DeviceManager
	Theme     *theme.Theme

	piano  widgets.Piano
	bounds *layoutBounds

	editing  bool // typing a progression
	input    string
	selected int // pad cursor
	picked   int // last pitch pressed on the widget, -1 none
	status   string
	quitting bool
}

type UpdateMsg struct{}

type DeviceEventMsg midi.DeviceEvent

func NewModel(manager *engine.Manager, deviceMgr *midi.DeviceManager, th *theme.Theme) Model {
	return Model{
		Manager:   manager,
		DeviceMgr: deviceMgr,
		Theme:     th,
		piano:     widgets.Piano{Min: pianoMin, Max: pianoMax},
		bounds:    &layoutBounds{},
		picked:    -1,
	}
}

func ListenForUpdates(manager *engine.Manager) tea.Cmd {
	return func() tea.Msg {
		<-manager.UpdateChan
		return UpdateMsg{}
	}
}

func ListenForDevices(deviceMgr *midi.DeviceManager) tea.Cmd {
	if deviceMgr == nil {
		return nil
	}
	return func() tea.Msg {
		event := <-deviceMgr.Events()
		return DeviceEventMsg(event)
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		ListenForUpdates(m.Manager),
		ListenForDevices(m.DeviceMgr),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg), nil
		}
		return m.updatePlaying(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			relY := msg.Y - m.bounds.pianoTop
			if relY >= 0 && relY < m.bounds.pianoHeight {
				if pitch, ok := m.piano.HitTest(msg.X, relY); ok {
					m.picked = pitch
					m.Manager.PlayPitch(pitch, 0.5)
				}
			}
		}

	case UpdateMsg:
		return m, ListenForUpdates(m.Manager)

	case DeviceEventMsg:
		event := midi.DeviceEvent(msg)
		if event.Type == midi.DeviceConnected {
			m.status = "MIDI keyboard: " + event.ID
			mgr := m.Manager
			go func() {
				for evt := range event.Controller.NoteEvents() {
					if !evt.Off {
						mgr.PlayPitch(int(evt.Note), 0.5)
					}
				}
			}()
		} else {
			m.status = "MIDI keyboard disconnected"
		}
		return m, ListenForDevices(m.DeviceMgr)
	}

	return m, nil
}

// updateEditing handles progression text entry.
func (m Model) updateEditing(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "enter":
		m.Manager.SetProgression(m.input)
		m.editing = false
		m.status = "progression set"
	case "esc":
		m.editing = false
	case "backspace":
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case " ":
		m.input += " "
	default:
		if msg.Type == tea.KeyRunes {
			m.input += string(msg.Runes)
		}
	}
	return m
}

func (m Model) updatePlaying(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		m.Manager.StopAll()
		return m, tea.Quit

	case "i", "/":
		m.editing = true
		m.input = m.Manager.Progression()

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		idx := int(msg.String()[0] - '1')
		m.selected = idx
		m.Manager.ToggleHold(idx)

	case "enter":
		m.Manager.PlayPad(m.selected, 1.5)

	case " ", "esc":
		m.Manager.StopAll()

	case "h", "left":
		if m.selected > 0 {
			m.selected--
		}
	case "l", "right":
		if m.selected < engine.NumPads-1 {
			m.selected++
		}

	case "v":
		m.cyclePreset(1)
	case "V":
		m.cyclePreset(-1)

	case "z", "x", "c", "b":
		m.toggleOmit(msg.String())

	case "m":
		s := m.Manager.Settings()
		if s.PlayMode == perform.PlayChord {
			s.PlayMode = perform.PlayArpeggio
		} else {
			s.PlayMode = perform.PlayChord
		}
		m.Manager.SetSettings(s)

	case "d":
		s := m.Manager.Settings()
		s.StrumDirection = nextDirection(s.StrumDirection)
		m.Manager.SetSettings(s)

	case "a":
		s := m.Manager.Settings()
		s.ArpPattern = nextPattern(s.ArpPattern)
		m.Manager.SetSettings(s)

	case "[":
		s := m.Manager.Settings()
		s.StrumSpanMs -= 10
		m.Manager.SetSettings(s)
	case "]":
		s := m.Manager.Settings()
		s.StrumSpanMs += 10
		m.Manager.SetSettings(s)

	case "{":
		s := m.Manager.Settings()
		s.ArpStepMs -= 10
		m.Manager.SetSettings(s)
	case "}":
		s := m.Manager.Settings()
		s.ArpStepMs += 10
		m.Manager.SetSettings(s)

	case "-", "_":
		m.Manager.SetCenter(m.Manager.Center() - 1)
	case "+", "=":
		m.Manager.SetCenter(m.Manager.Center() + 1)

	case "k":
		analysis, _ := m.Manager.Keys()
		analysis.Tonic = nextTonic(analysis.Tonic)
		m.Manager.SetAnalysisKey(analysis)
	case "K":
		analysis, _ := m.Manager.Keys()
		if analysis.Mode == theory.ModeMajor {
			analysis.Mode = theory.ModeMinor
		} else {
			analysis.Mode = theory.ModeMajor
		}
		m.Manager.SetAnalysisKey(analysis)
	case "t":
		_, playback := m.Manager.Keys()
		playback.Tonic = nextTonic(playback.Tonic)
		m.Manager.SetPlaybackKey(playback)

	case "g":
		g := m.Manager.Guide()
		g.Enabled = !g.Enabled
		m.Manager.SetGuide(g)
	case "G":
		g := m.Manager.Guide()
		g.SourcePad = (g.SourcePad + 1) % engine.NumPads
		m.Manager.SetGuide(g)
	case "!":
		g := m.Manager.Guide()
		g.Tensions.Add9 = !g.Tensions.Add9
		m.Manager.SetGuide(g)
	case "@":
		g := m.Manager.Guide()
		g.Tensions.Add11 = !g.Tensions.Add11
		m.Manager.SetGuide(g)
	case "#":
		g := m.Manager.Guide()
		g.Tensions.Add13 = !g.Tensions.Add13
		m.Manager.SetGuide(g)
	}

	return m, nil
}

func (m *Model) cyclePreset(dir int) {
	pads := m.Manager.Pads()
	presets := voicing.Presets()
	cur := 0
	for i, p := range presets {
		if p == pads[m.selected].Preset {
			cur = i
			break
		}
	}
	cur = (cur + dir + len(presets)) % len(presets)
	m.Manager.SetPreset(m.selected, presets[cur])
}

func (m *Model) toggleOmit(key string) {
	pads := m.Manager.Pads()
	omit := pads[m.selected].Omit
	switch key {
	case "z":
		omit.Root = !omit.Root
	case "x":
		omit.Third = !omit.Third
	case "c":
		omit.Fifth = !omit.Fifth
	case "b":
		omit.Seventh = !omit.Seventh
	}
	m.Manager.SetOmit(m.selected, omit)
}

var tonicCycle = []string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

func nextTonic(t string) string {
	s := theory.SemitoneOf(t)
	return tonicCycle[(s+1)%12]
}

func nextDirection(d perform.Direction) perform.Direction {
	switch d {
	case perform.DirUp:
		return perform.DirDown
	case perform.DirDown:
		return perform.DirRandom
	default:
		return perform.DirUp
	}
}

func nextPattern(p perform.Pattern) perform.Pattern {
	switch p {
	case perform.PatternUp:
		return perform.PatternDown
	case perform.PatternDown:
		return perform.PatternRandom
	case perform.PatternRandom:
		return perform.Pattern1357
	default:
		return perform.PatternUp
	}
}

func modeName(mode theory.Mode) string {
	if mode == theory.ModeMinor {
		return "minor"
	}
	return "major"
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	selStyle := lipgloss.NewStyle().Foreground(m.Theme.Cursor())
	heldStyle := lipgloss.NewStyle().Foreground(m.Theme.Sounding())

	analysis, playback := m.Manager.Keys()
	s := m.Manager.Settings()
	g := m.Manager.Guide()

	shift := theory.SignedDiff(analysis.Tonic, playback.Tonic)
	header := headerStyle.Render(fmt.Sprintf(
		"chordpad  key:%s %s  play:%s %s  shift:%+d  center:C%d",
		analysis.Tonic, modeName(analysis.Mode),
		playback.Tonic, modeName(playback.Mode),
		shift, m.Manager.Center()))

	perfLine := dimStyle.Render(fmt.Sprintf(
		"mode:%s  strum:%.0fms %s  arp:%s %.0fms gate:%.1f  jitter:%.0fms  vel:%.2f hum:%.2f boost:%.2f",
		s.PlayMode, s.StrumSpanMs, s.StrumDirection,
		s.ArpPattern, s.ArpStepMs, s.ArpGate,
		s.JitterMs, s.BaseVelocity, s.Humanize, s.TopBoost))

	// Progression line
	var progression string
	if m.editing {
		progression = "progression> " + m.input + "_"
	} else {
		progression = dimStyle.Render("progression: ") + m.Manager.Progression()
	}

	// Pad strip
	pads := m.Manager.Pads()
	var padLines []string
	for i, pad := range pads {
		marker := string(m.Theme.Symbols.PadIdle)
		style := lipgloss.NewStyle().Foreground(m.Theme.FG())
		switch {
		case pad.Symbol == "":
			marker = " "
			style = dimStyle
		case !pad.Playable():
			marker = string(m.Theme.Symbols.PadInert)
			style = dimStyle
		case m.Manager.Held(i):
			marker = string(m.Theme.Symbols.PadHeld)
			style = heldStyle
		}

		cursor := " "
		if i == m.selected {
			cursor = selStyle.Render("▶")
		}

		body := fmt.Sprintf("%s %d %-8s %-6s %-10s", marker, i+1, pad.Symbol, pad.Roman, pad.Preset)
		if pad.Playable() {
			body += " " + strings.Join(pad.Voicing.Names, " ")
		} else if pad.Symbol != "" {
			body += " (unplayable)"
		}
		padLines = append(padLines, cursor+style.Render(body))
	}
	padStrip := strings.Join(padLines, "\n")

	// Piano
	chordTones, tensions := m.Manager.GuideHighlights()
	highlights := widgets.PianoHighlights{
		Sounding:   toSet(m.Manager.ActivePitches()),
		Picked:     m.picked,
		ChordTones: toSet(chordTones),
		Tensions:   toSet(tensions),
	}
	pianoStyle := widgets.PianoStyle{
		White:      m.Theme.FG(),
		Black:      m.Theme.Muted(),
		Sounding:   m.Theme.Sounding(),
		Picked:     m.Theme.Cursor(),
		ChordTone:  m.Theme.ChordTone(),
		Tension:    m.Theme.Tension(),
		WhiteGlyph: m.Theme.Symbols.WhiteKey,
		BlackGlyph: m.Theme.Symbols.BlackKey,
	}
	pianoView := m.piano.Render(highlights, pianoStyle)

	guideLine := dimStyle.Render(fmt.Sprintf(
		"guide:%s pad:%d  +9:%v +11:%v +13:%v",
		onOff(g.Enabled), g.SourcePad+1, g.Tensions.Add9, g.Tensions.Add11, g.Tensions.Add13))

	help := dimStyle.Render(widgets.RenderKeyHelp([]widgets.KeySection{
		{Keys: []widgets.KeyBinding{
			{Key: "i", Desc: "edit progression"},
			{Key: "1-9", Desc: "hold/release pad"},
			{Key: "enter", Desc: "play selected pad once"},
			{Key: "space", Desc: "stop everything"},
			{Key: "v / zxcb", Desc: "preset / omit R-3-5-7"},
			{Key: "m d a [ ]", Desc: "mode, strum dir, arp pattern, strum span"},
			{Key: "k K t", Desc: "analysis tonic, mode, transpose target"},
			{Key: "g G ! @ #", Desc: "guide on/off, source pad, +9 +11 +13"},
		}},
	}))

	// Layout bookkeeping for mouse hit-testing
	above := strings.Join([]string{"", header, perfLine, progression, "", padStrip, ""}, "\n")
	m.bounds.pianoTop = lipgloss.Height(above)
	m.bounds.pianoHeight = m.piano.Height()

	var out strings.Builder
	out.WriteString(above)
	out.WriteString("\n")
	out.WriteString(pianoView)
	out.WriteString("\n")
	out.WriteString(guideLine)
	out.WriteString("\n\n")
	out.WriteString(help)
	if m.status != "" {
		out.WriteString("\n")
		out.WriteString(dimStyle.Render(m.status))
	}

	return out.String()
}

func toSet(pitches []int) map[int]bool {
	set := make(map[int]bool, len(pitches))
	for _, p := range pitches {
		set[p] = true
	}
	return set
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

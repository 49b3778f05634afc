package engine

import (
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bep/debounce"

	"chordpad/debug"
	"chordpad/perform"
	"chordpad/theory"
	"chordpad/util"
	"chordpad/voicing"
)

// NumPads is the number of progression slots, bound to keys 1-9.
const NumPads = 9

// Highlight recompute is coalesced to roughly one per frame.
const highlightCoalesce = 16 * time.Millisecond

// Pad is one progression slot. Voicing is nil when the symbol failed
// to parse; such a pad is inert, it produces no sound and no label.
type Pad struct {
	Symbol  string
	Preset  voicing.Preset
	Omit    voicing.OmitFlags
	Roman   string
	Voicing *voicing.Result
}

// Playable reports whether pressing the pad will sound.
func (p Pad) Playable() bool {
	return p.Voicing != nil && len(p.Voicing.Pitches) > 0
}

// GuideSettings controls the chord-tone/tension keyboard overlay.
type GuideSettings struct {
	Enabled   bool
	SourcePad int
	Tensions  theory.GuideTensions
}

// oneShot tracks a non-held playback so its pending callbacks can be
// flushed by a global stop and its pitches shown on the keyboard.
type oneShot struct {
	cancels  []func()
	sounding []soundingNote
}

// Manager owns the pads, hold sessions and highlight state. All
// mutation goes through its mutex; scheduled callbacks re-enter
// through the same lock.
type Manager struct {
	mu        sync.Mutex
	lookup    theory.Lookup
	synth     Synth
	transport Transport
	rng       *rand.Rand

	pads  [NumPads]Pad
	holds map[int]*Hold
	shots []*oneShot

	analysisKey theory.Key
	playbackKey theory.Key
	center      int
	settings    perform.Settings
	guide       GuideSettings

	active    []int // sorted union of all sounding pitches
	debounced func(func())

	// UpdateChan notifies the TUI that visible state changed.
	UpdateChan chan struct{}
}

// NewManager wires the engine to its collaborators. A nil rng seeds
// from the clock.
func NewManager(lk theory.Lookup, synth Synth, transport Transport, rng *rand.Rand) *Manager {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	m := &Manager{
		lookup:      lk,
		synth:       synth,
		transport:   transport,
		rng:         rng,
		holds:       make(map[int]*Hold),
		analysisKey: theory.Key{Tonic: "C", Mode: theory.ModeMajor},
		playbackKey: theory.Key{Tonic: "C", Mode: theory.ModeMajor},
		center:      4,
		settings:    perform.DefaultSettings(),
		guide:       GuideSettings{Enabled: true},
		debounced:   debounce.New(highlightCoalesce),
		UpdateChan:  make(chan struct{}, 1),
	}
	for i := range m.pads {
		m.pads[i].Preset = voicing.PresetTriadBass
	}
	return m
}

// transposeShift is the uniform semitone shift from the analysis key
// to the playback key.
func (m *Manager) transposeShift() int {
	return theory.SignedDiff(m.analysisKey.Tonic, m.playbackKey.Tonic)
}

// rebuildPad recomputes a pad's voicing and roman label.
func (m *Manager) rebuildPad(i int) {
	p := &m.pads[i]
	if strings.TrimSpace(p.Symbol) == "" {
		p.Voicing = nil
		p.Roman = ""
		return
	}
	v, ok := voicing.Build(p.Symbol, m.center, p.Preset, m.transposeShift(), p.Omit, m.lookup)
	if !ok {
		p.Voicing = nil
		p.Roman = ""
		debug.Log("engine", "pad %d: unparseable symbol %q", i+1, p.Symbol)
		return
	}
	p.Voicing = v
	p.Roman = theory.Romanize(p.Symbol, m.analysisKey, m.lookup)
}

func (m *Manager) rebuildAll() {
	for i := range m.pads {
		m.rebuildPad(i)
	}
}

// SetProgression splits a progression string into pads, one symbol
// per whitespace-separated field, at most NumPads of them.
func (m *Manager) SetProgression(text string) {
	m.mu.Lock()
	fields := strings.Fields(text)
	for i := range m.pads {
		if i < len(fields) {
			m.pads[i].Symbol = fields[i]
		} else {
			m.pads[i].Symbol = ""
		}
	}
	m.rebuildAll()
	m.mu.Unlock()
	m.notify()
}

// Progression reassembles the pad symbols.
func (m *Manager) Progression() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var parts []string
	for _, p := range m.pads {
		if p.Symbol != "" {
			parts = append(parts, p.Symbol)
		}
	}
	return strings.Join(parts, " ")
}

// Pads returns a snapshot of all pads.
func (m *Manager) Pads() [NumPads]Pad {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pads
}

// SetPreset changes one pad's voicing preset.
func (m *Manager) SetPreset(idx int, preset voicing.Preset) {
	if idx < 0 || idx >= NumPads {
		return
	}
	m.mu.Lock()
	m.pads[idx].Preset = preset
	m.rebuildPad(idx)
	m.mu.Unlock()
	m.notify()
}

// SetOmit changes one pad's omission flags.
func (m *Manager) SetOmit(idx int, omit voicing.OmitFlags) {
	if idx < 0 || idx >= NumPads {
		return
	}
	m.mu.Lock()
	m.pads[idx].Omit = omit
	m.rebuildPad(idx)
	m.mu.Unlock()
	m.notify()
}

// SetAnalysisKey sets the key used for degree labels and the guide.
func (m *Manager) SetAnalysisKey(k theory.Key) {
	m.mu.Lock()
	m.analysisKey = k
	m.rebuildAll()
	m.mu.Unlock()
	m.notify()
}

// SetPlaybackKey sets the transposition target.
func (m *Manager) SetPlaybackKey(k theory.Key) {
	m.mu.Lock()
	m.playbackKey = k
	m.rebuildAll()
	m.mu.Unlock()
	m.notify()
}

func (m *Manager) Keys() (analysis, playback theory.Key) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.analysisKey, m.playbackKey
}

// SetCenter moves the center register anchor.
func (m *Manager) SetCenter(register int) {
	register = util.Clamp(register, 1, 7)
	m.mu.Lock()
	m.center = register
	m.rebuildAll()
	m.mu.Unlock()
	m.notify()
}

func (m *Manager) Center() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.center
}

// Settings returns the current performance settings.
func (m *Manager) Settings() perform.Settings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings
}

// SetSettings replaces the performance settings. Values are clamped
// at schedule time, so anything is accepted here.
func (m *Manager) SetSettings(s perform.Settings) {
	m.mu.Lock()
	m.settings = s
	m.mu.Unlock()
	m.notify()
}

// Guide returns the guide overlay settings.
func (m *Manager) Guide() GuideSettings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.guide
}

// SetGuide replaces the guide overlay settings.
func (m *Manager) SetGuide(g GuideSettings) {
	if g.SourcePad < 0 {
		g.SourcePad = 0
	}
	if g.SourcePad >= NumPads {
		g.SourcePad = NumPads - 1
	}
	m.mu.Lock()
	m.guide = g
	m.mu.Unlock()
	m.notify()
}

// GuideHighlights returns the pitch classes (0-11) to overlay on the
// keyboard: chord tones and available tensions of the source pad.
func (m *Manager) GuideHighlights() (chordTones, tensions []int) {
	m.mu.Lock()
	g := m.guide
	symbol := ""
	if g.SourcePad >= 0 && g.SourcePad < NumPads {
		symbol = m.pads[g.SourcePad].Symbol
	}
	lk := m.lookup
	m.mu.Unlock()

	if !g.Enabled || symbol == "" {
		return nil, nil
	}
	tonePCs, tensionPCs := theory.GuidePCs(symbol, g.Tensions, lk)
	for _, pc := range tonePCs {
		chordTones = append(chordTones, theory.SemitoneOf(pc))
	}
	for _, pc := range tensionPCs {
		tensions = append(tensions, theory.SemitoneOf(pc))
	}
	return chordTones, tensions
}

// StartHold begins a sustained playback session for a pad. Starting
// a hold on an index that already has one is a no-op, so key-repeat
// cannot stack voicings.
func (m *Manager) StartHold(idx int) {
	if idx < 0 || idx >= NumPads {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, held := m.holds[idx]; held {
		return
	}
	pad := m.pads[idx]
	if !pad.Playable() {
		return
	}

	// Holds sustain until release, so the nominal duration only
	// shapes arpeggio gating.
	events := perform.Schedule(pad.Voicing.Names, pad.Voicing.Pitches, m.settings, 10, m.rng)
	if len(events) == 0 {
		return
	}

	h := newHold(idx)
	m.holds[idx] = h
	debug.Log("hold", "start idx=%d id=%s notes=%d", idx+1, h.ID, len(events))

	for _, ev := range events {
		ev := ev
		cancel := m.transport.After(time.Duration(ev.DelayMs)*time.Millisecond, func() {
			m.mu.Lock()
			// The hold may have been stopped between firing and
			// locking; a replaced hold has a different ID.
			cur, ok := m.holds[idx]
			if !ok || cur.ID != h.ID {
				m.mu.Unlock()
				return
			}
			h.sounding = append(h.sounding, soundingNote{name: ev.Name, pitch: ev.Pitch})
			// Attack under the lock: a stop that takes the lock next
			// releases this voice after its note-on, never before.
			m.synth.Attack(ev.Name, ev.Pitch, ev.Velocity)
			m.mu.Unlock()
			m.markDirty()
		})
		h.cancels = append(h.cancels, cancel)
	}
	m.markDirty()
}

// StopHold releases a hold: pending attacks are canceled and voices
// already sounding are released. Stopping an index with no hold is a
// safe no-op.
func (m *Manager) StopHold(idx int) {
	m.mu.Lock()
	h, ok := m.holds[idx]
	if !ok {
		m.mu.Unlock()
		return
	}
	delete(m.holds, idx)
	h.cancelPending()
	names, pitches := h.soundingNotes()
	m.mu.Unlock()

	debug.Log("hold", "stop idx=%d id=%s released=%d", idx+1, h.ID, len(names))
	if len(names) > 0 {
		m.synth.Release(names, pitches)
	}
	m.markDirty()
}

// ToggleHold starts or stops a hold. Terminals deliver no key-up
// events, so the TUI drives holds through this.
func (m *Manager) ToggleHold(idx int) {
	m.mu.Lock()
	_, held := m.holds[idx]
	m.mu.Unlock()
	if held {
		m.StopHold(idx)
	} else {
		m.StartHold(idx)
	}
}

// Held reports whether a pad index has a live hold.
func (m *Manager) Held(idx int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, held := m.holds[idx]
	return held
}

// PlayPad fires a pad once: every note gets a scheduled attack and a
// matching release.
func (m *Manager) PlayPad(idx int, durSec float64) {
	if idx < 0 || idx >= NumPads {
		return
	}
	m.mu.Lock()
	pad := m.pads[idx]
	if !pad.Playable() {
		m.mu.Unlock()
		return
	}
	events := perform.Schedule(pad.Voicing.Names, pad.Voicing.Pitches, m.settings, durSec, m.rng)
	shot := &oneShot{}
	m.shots = append(m.shots, shot)
	for _, ev := range events {
		ev := ev
		attack := m.transport.After(time.Duration(ev.DelayMs)*time.Millisecond, func() {
			m.mu.Lock()
			shot.sounding = append(shot.sounding, soundingNote{name: ev.Name, pitch: ev.Pitch})
			m.synth.Attack(ev.Name, ev.Pitch, ev.Velocity)
			m.mu.Unlock()
			m.markDirty()
		})
		releaseAt := time.Duration(ev.DelayMs)*time.Millisecond + time.Duration(ev.Duration*float64(time.Second))
		release := m.transport.After(releaseAt, func() {
			m.releaseOneShotNote(shot, ev.Name, ev.Pitch)
		})
		shot.cancels = append(shot.cancels, attack, release)
	}
	m.mu.Unlock()
	m.markDirty()
}

// PlayPitch sounds a single pitch, bypassing parsing and voicing.
// Used for virtual-keyboard and MIDI-keyboard presses.
func (m *Manager) PlayPitch(pitch int, durSec float64) {
	if durSec <= 0 {
		durSec = 0.5
	}
	name := theory.NameOf(pitch, false)

	m.mu.Lock()
	shot := &oneShot{sounding: []soundingNote{{name: name, pitch: pitch}}}
	m.shots = append(m.shots, shot)
	m.synth.Attack(name, pitch, m.settings.BaseVelocity)
	m.mu.Unlock()

	cancel := m.transport.After(time.Duration(durSec*float64(time.Second)), func() {
		m.releaseOneShotNote(shot, name, pitch)
	})
	m.mu.Lock()
	shot.cancels = append(shot.cancels, cancel)
	m.mu.Unlock()
	m.markDirty()
}

// releaseOneShotNote releases one voice of a one-shot and drops the
// shot from the visualization set once nothing of it still sounds.
func (m *Manager) releaseOneShotNote(shot *oneShot, name string, pitch int) {
	m.mu.Lock()
	found := false
	for i, n := range shot.sounding {
		if n.pitch == pitch && n.name == name {
			shot.sounding = append(shot.sounding[:i], shot.sounding[i+1:]...)
			found = true
			break
		}
	}
	if len(shot.sounding) == 0 {
		m.removeShot(shot)
	}
	m.mu.Unlock()

	if found {
		m.synth.Release([]string{name}, []int{pitch})
	}
	m.markDirty()
}

// removeShot must be called with the lock held.
func (m *Manager) removeShot(shot *oneShot) {
	for i, s := range m.shots {
		if s == shot {
			m.shots = append(m.shots[:i], m.shots[i+1:]...)
			return
		}
	}
}

// StopAll stops every hold, flushes one-shot playback state and
// silences the synth.
func (m *Manager) StopAll() {
	m.mu.Lock()
	for idx, h := range m.holds {
		h.cancelPending()
		delete(m.holds, idx)
	}
	for _, shot := range m.shots {
		for _, c := range shot.cancels {
			c()
		}
	}
	m.shots = nil
	m.mu.Unlock()

	m.synth.ReleaseAll()
	m.markDirty()
}

// markDirty coalesces highlight recomputation to one per frame.
func (m *Manager) markDirty() {
	m.debounced(m.recomputeActive)
}

// recomputeActive rebuilds the sounding-pitch union from scratch.
// Recomputing instead of patching keeps the set from drifting under
// rapid press/release traffic.
func (m *Manager) recomputeActive() {
	m.mu.Lock()
	set := make(map[int]bool)
	for _, h := range m.holds {
		for _, n := range h.sounding {
			set[n.pitch] = true
		}
	}
	for _, shot := range m.shots {
		for _, n := range shot.sounding {
			set[n.pitch] = true
		}
	}
	active := make([]int, 0, len(set))
	for p := range set {
		active = append(active, p)
	}
	sort.Ints(active)
	m.active = active
	m.mu.Unlock()
	m.notify()
}

// ActivePitches returns the latest sounding-pitch snapshot.
func (m *Manager) ActivePitches() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]int, len(m.active))
	copy(out, m.active)
	return out
}

// notify nudges the TUI without blocking.
func (m *Manager) notify() {
	select {
	case m.UpdateChan <- struct{}{}:
	default:
	}
}

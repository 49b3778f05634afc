package voicing

import (
	"sort"
	"strings"

	"chordpad/theory"
)

// Preset selects a register-placement algorithm. The set is fixed.
type Preset int

const (
	PresetTriadBass Preset = iota
	PresetDrop2
	PresetDrop3
	PresetDrop24
	PresetDrop4
	PresetShell    // R-3-7(-9)
	PresetGuide    // 3-7-9 + root on top
	PresetRootless // 3-7-9-13
)

var presetNames = map[Preset]string{
	PresetTriadBass: "triad+bass",
	PresetDrop2:     "drop-2",
	PresetDrop3:     "drop-3",
	PresetDrop24:    "drop-2&4",
	PresetDrop4:     "drop-4",
	PresetShell:     "shell",
	PresetGuide:     "guide",
	PresetRootless:  "rootless",
}

func (p Preset) String() string {
	if n, ok := presetNames[p]; ok {
		return n
	}
	return "triad+bass"
}

// Presets lists all presets in display order.
func Presets() []Preset {
	return []Preset{
		PresetTriadBass, PresetDrop2, PresetDrop3, PresetDrop24,
		PresetDrop4, PresetShell, PresetGuide, PresetRootless,
	}
}

// OmitFlags requests per-voice suppression. Advisory: presets may
// substitute a related tone instead of truly dropping a voice.
type OmitFlags struct {
	Root    bool
	Third   bool
	Fifth   bool
	Seventh bool
}

// Result is a register-resolved voicing. Pitches are MIDI-numbered
// (C4=60) and ordered by voice role, bass first; they are not
// necessarily sorted.
type Result struct {
	Symbol  string
	Preset  Preset
	Pitches []int
	Names   []string
}

// Crowding floors per preset group.
const (
	floorTriad    = 55
	floorDrop     = 58
	floorShell    = 60
	floorRootless = 62
)

// Build voices a chord symbol around a center register, applies a
// uniform semitone shift, and derives display names. Returns false
// when the symbol fails to parse.
func Build(symbol string, center int, preset Preset, shift int, omit OmitFlags, lk theory.Lookup) (*Result, bool) {
	c, ok := theory.Parse(symbol, lk)
	if !ok {
		return nil, false
	}

	var pitches []int
	switch preset {
	case PresetDrop2, PresetDrop3, PresetDrop24, PresetDrop4:
		pitches = buildDrop(c, center, preset, omit)
	case PresetShell:
		pitches = buildShell(c, center, omit)
	case PresetGuide:
		pitches = buildGuide(c, center, omit)
	case PresetRootless:
		pitches = buildRootless(c, center, omit)
	default:
		pitches = buildTriadBass(c, center, omit)
	}

	// Never leave a pad silent: fall back to a single low root.
	if len(pitches) == 0 {
		pc := c.Tonic
		if c.Bass != "" {
			pc = c.Bass
		}
		pitches = []int{theory.PitchAt(pc, center-1)}
	}

	for i := range pitches {
		pitches[i] += shift
	}

	flats := strings.Contains(c.Tonic, "b") || c.Tonic == "F"
	names := make([]string, len(pitches))
	for i, p := range pitches {
		names[i] = theory.NameOf(p, flats)
	}

	return &Result{Symbol: symbol, Preset: preset, Pitches: pitches, Names: names}, true
}

// nearestAbove places a pitch class at the anchor register, then
// raises it by octaves until it clears the floor. Monotonically
// increasing floors give a strictly ascending stack.
func nearestAbove(pc string, floor, register int) int {
	p := theory.PitchAt(pc, register)
	for p < floor {
		p += 12
	}
	return p
}

// resolveCrowding lifts everything above the bass by whole octaves
// when the top three voices sit below the floor. The bass voice keeps
// its register.
func resolveCrowding(pitches []int, floor int) {
	if len(pitches) < 2 {
		return
	}
	top := pitches[1:]
	if len(pitches) > 3 {
		top = pitches[len(pitches)-3:]
	}
	low := top[0]
	for _, p := range top {
		if p < low {
			low = p
		}
	}
	if low >= floor {
		return
	}
	lift := ((floor - low + 11) / 12) * 12
	for i := 1; i < len(pitches); i++ {
		pitches[i] += lift
	}
}

// orFallback returns the first non-empty pitch class.
func orFallback(pcs ...string) string {
	for _, pc := range pcs {
		if pc != "" {
			return pc
		}
	}
	return ""
}

// buildTriadBass stacks bass (two registers down), third, fifth and a
// closing root with 2-semitone floor gaps. Missing third or fifth
// defaults to the root.
func buildTriadBass(c *theory.Chord, center int, omit OmitFlags) []int {
	bassPC := orFallback(c.Bass, c.Tonic)

	var pitches []int
	keepBass := !omit.Root || c.Bass != ""
	floor := 0
	if keepBass {
		bass := theory.PitchAt(bassPC, center-2)
		pitches = append(pitches, bass)
		floor = bass + 2
	}

	upper := []struct {
		skip bool
		pc   string
	}{
		{omit.Third, orFallback(c.Third(), c.Tonic)},
		{omit.Fifth, orFallback(c.Fifth(), c.Tonic)},
		{omit.Root, c.Tonic},
	}
	for _, v := range upper {
		if v.skip || v.pc == "" {
			continue
		}
		p := nearestAbove(v.pc, floor, center)
		pitches = append(pitches, p)
		floor = p + 2
	}

	resolveCrowding(pitches, floorTriad)
	return pitches
}

// closedStack builds an ascending stack with 1-semitone floor gaps.
func closedStack(pcs []string, center int) []int {
	var pitches []int
	floor := 0
	for _, pc := range pcs {
		p := nearestAbove(pc, floor, center)
		pitches = append(pitches, p)
		floor = p + 1
	}
	return pitches
}

// buildDrop builds a closed root-3-5-7 stack and drops voices down an
// octave, counted from the top. The drop only applies when exactly
// four voices survive omission; smaller stacks are used as-is.
func buildDrop(c *theory.Chord, center int, preset Preset, omit OmitFlags) []int {
	var pcs []string
	voices := []struct {
		skip bool
		pc   string
	}{
		{omit.Root, c.Tonic},
		{omit.Third, orFallback(c.Third(), c.Tonic)},
		{omit.Fifth, orFallback(c.Fifth(), c.Tonic)},
		{omit.Seventh, orFallback(c.Seventh(), c.Fifth(), c.Tonic)},
	}
	for _, v := range voices {
		if v.skip || v.pc == "" {
			continue
		}
		pcs = append(pcs, v.pc)
	}

	pitches := closedStack(pcs, center)
	if len(pitches) == 4 {
		// Voice 1 counted from the top is the highest.
		switch preset {
		case PresetDrop2:
			pitches[2] -= 12
		case PresetDrop3:
			pitches[1] -= 12
		case PresetDrop4:
			pitches[0] -= 12
		case PresetDrop24:
			pitches[2] -= 12
			pitches[0] -= 12
		}
		sort.Ints(pitches)
	}

	resolveCrowding(pitches, floorDrop)
	return pitches
}

// buildShell stacks root, third, seventh and ninth, substituting the
// fifth for missing upper voices.
func buildShell(c *theory.Chord, center int, omit OmitFlags) []int {
	voices := []struct {
		skip bool
		pc   string
	}{
		{omit.Root, c.Tonic},
		{omit.Third, orFallback(c.Third(), c.Tonic)},
		{omit.Seventh, orFallback(c.Seventh(), c.Fifth(), c.Tonic)},
		{false, orFallback(c.Ninth(), c.Fifth(), c.Tonic)},
	}
	var pcs []string
	for _, v := range voices {
		if v.skip || v.pc == "" {
			continue
		}
		pcs = append(pcs, v.pc)
	}
	pitches := closedStack(pcs, center)
	resolveCrowding(pitches, floorShell)
	return pitches
}

// buildGuide stacks third, seventh, ninth and a closing root. The
// fifth never appears in this preset.
func buildGuide(c *theory.Chord, center int, omit OmitFlags) []int {
	voices := []struct {
		skip bool
		pc   string
	}{
		{omit.Third, orFallback(c.Third(), c.Tonic)},
		{omit.Seventh, orFallback(c.Seventh(), c.Fifth(), c.Tonic)},
		{false, orFallback(c.Ninth(), c.Fifth(), c.Tonic)},
		{omit.Root, c.Tonic},
	}
	var pcs []string
	for _, v := range voices {
		if v.skip || v.pc == "" {
			continue
		}
		pcs = append(pcs, v.pc)
	}
	pitches := closedStack(pcs, center)
	resolveCrowding(pitches, floorShell)
	return pitches
}

// buildRootless stacks third, seventh, ninth and thirteenth, with the
// fifth standing in for anything the chord lacks.
func buildRootless(c *theory.Chord, center int, omit OmitFlags) []int {
	voices := []struct {
		skip bool
		pc   string
	}{
		{omit.Third, orFallback(c.Third(), c.Tonic)},
		{omit.Seventh, orFallback(c.Seventh(), c.Fifth(), c.Tonic)},
		{false, orFallback(c.Ninth(), c.Fifth(), c.Tonic)},
		{false, orFallback(c.Thirteenth(), c.Fifth(), c.Tonic)},
	}
	var pcs []string
	for _, v := range voices {
		if v.skip || v.pc == "" {
			continue
		}
		pcs = append(pcs, v.pc)
	}
	pitches := closedStack(pcs, center)
	resolveCrowding(pitches, floorRootless)
	return pitches
}

package theory

// GuideTensions selects which tensions the guide overlay shows.
type GuideTensions struct {
	Add9  bool
	Add11 bool
	Add13 bool
}

// GuidePCs returns the pitch classes to highlight for a chord: the
// chord tones (root, 3rd, 5th, 7th) and the requested tensions that
// are not already chord tones. Both sets are empty when the symbol
// cannot be parsed. Only the core symbol is analyzed; a slash bass
// is stripped first.
func GuidePCs(symbol string, t GuideTensions, lk Lookup) (chordTones, tensions []string) {
	core, _ := SplitBass(symbol)
	tones, ok := lk.Resolve(core)
	if !ok {
		return nil, nil
	}

	seen := make(map[int]bool)
	for _, pc := range tones.Pitches[:4] {
		if pc == "" {
			continue
		}
		s := SemitoneOf(pc)
		if seen[s] {
			continue
		}
		seen[s] = true
		chordTones = append(chordTones, pc)
	}

	want := []struct {
		on bool
		pc string
	}{
		{t.Add9, tones.Pitches[4]},
		{t.Add11, tones.Pitches[5]},
		{t.Add13, tones.Pitches[6]},
	}
	tensionSeen := make(map[int]bool)
	for _, w := range want {
		if !w.on || w.pc == "" {
			continue
		}
		s := SemitoneOf(w.pc)
		if seen[s] || tensionSeen[s] {
			continue
		}
		tensionSeen[s] = true
		tensions = append(tensions, w.pc)
	}
	return chordTones, tensions
}

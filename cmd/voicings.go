package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"chordpad/theory"
	"chordpad/voicing"
)

var (
	flagKey     string
	flagMinor   bool
	flagCenter  int
	flagShift   int
	flagPresets []string
)

var voicingsCmd = &cobra.Command{
	Use:   "voicings <progression>",
	Short: "Print voicings and roman numerals for a progression",
	Long: `Parses each chord symbol in the progression and prints its
roman-numeral degree plus the voiced pitches for the chosen presets,
without starting the TUI. Example:

  chordpad voicings "Dm7 G7 Cmaj7" --key C --preset shell --preset drop-2`,
	Args: cobra.ExactArgs(1),
	RunE: runVoicings,
}

func init() {
	voicingsCmd.Flags().StringVar(&flagKey, "key", "C", "analysis key tonic")
	voicingsCmd.Flags().BoolVar(&flagMinor, "minor", false, "analysis key is minor")
	voicingsCmd.Flags().IntVar(&flagCenter, "center", 4, "center register")
	voicingsCmd.Flags().IntVar(&flagShift, "shift", 0, "transpose shift in semitones")
	voicingsCmd.Flags().StringArrayVar(&flagPresets, "preset", nil, "preset to print (repeatable, default all)")
	rootCmd.AddCommand(voicingsCmd)
}

func runVoicings(cmd *cobra.Command, args []string) error {
	lk := theory.NewTableLookup()

	key := theory.Key{Tonic: theory.Normalize(flagKey), Mode: theory.ModeMajor}
	if flagMinor {
		key.Mode = theory.ModeMinor
	}

	presets := voicing.Presets()
	if len(flagPresets) > 0 {
		presets = presets[:0]
		for _, name := range flagPresets {
			found := false
			for _, p := range voicing.Presets() {
				if p.String() == name {
					presets = append(presets, p)
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("unknown preset %q", name)
			}
		}
	}

	for _, symbol := range strings.Fields(args[0]) {
		roman := theory.Romanize(symbol, key, lk)
		if roman == "" {
			fmt.Printf("%-8s  (unparseable)\n", symbol)
			continue
		}
		fmt.Printf("%-8s  %s\n", symbol, roman)
		for _, preset := range presets {
			v, ok := voicing.Build(symbol, flagCenter, preset, flagShift, voicing.OmitFlags{}, lk)
			if !ok {
				continue
			}
			fmt.Printf("  %-10s %v  %s\n", preset, v.Pitches, strings.Join(v.Names, " "))
		}
	}
	return nil
}

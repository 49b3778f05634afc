package cmd

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"chordpad/config"
	"chordpad/debug"
	"chordpad/engine"
	"chordpad/midi"
	"chordpad/theme"
	"chordpad/theory"
	"chordpad/tui"
	"chordpad/voicing"
)

var (
	flagDebug   bool
	flagPalette string
	flagPort    string
	flagNoMIDI  bool
)

var rootCmd = &cobra.Command{
	Use:   "chordpad",
	Short: "Interactive chord voicing pad",
	Long: `chordpad turns a typed chord progression into voiced, humanized
playback on a MIDI synth, with a virtual piano keyboard in the terminal.`,
	RunE: runTUI,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "log to ~/.config/chordpad/debug.log")
	rootCmd.Flags().StringVar(&flagPalette, "palette", "palettes/plasma.gpl", "path to a .gpl palette file")
	rootCmd.Flags().StringVar(&flagPort, "port", "", "MIDI output port name")
	rootCmd.Flags().BoolVar(&flagNoMIDI, "no-midi", false, "run without MIDI output")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

// parseKey maps a persisted key config to a theory key.
func parseKey(k config.KeyConfig) theory.Key {
	mode := theory.ModeMajor
	if k.Mode == "minor" {
		mode = theory.ModeMinor
	}
	tonic := theory.Normalize(k.Tonic)
	if tonic == "" {
		tonic = "C"
	}
	return theory.Key{Tonic: tonic, Mode: mode}
}

var presetByName = map[string]voicing.Preset{}

func init() {
	for _, p := range voicing.Presets() {
		presetByName[p.String()] = p
	}
}

// buildManager assembles the engine from persisted configuration.
func buildManager(cfg *config.Config, synth engine.Synth) *engine.Manager {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	m := engine.NewManager(theory.NewTableLookup(), synth, engine.NewTimerTransport(), rng)

	m.SetAnalysisKey(parseKey(cfg.AnalysisKey))
	m.SetPlaybackKey(parseKey(cfg.PlaybackKey))
	if cfg.CenterRegister != 0 {
		m.SetCenter(cfg.CenterRegister)
	}
	m.SetSettings(cfg.Performance)
	m.SetGuide(engine.GuideSettings{
		Enabled:   cfg.Guide.Enabled,
		SourcePad: cfg.Guide.SourcePad,
		Tensions: theory.GuideTensions{
			Add9:  cfg.Guide.Add9,
			Add11: cfg.Guide.Add11,
			Add13: cfg.Guide.Add13,
		},
	})
	for i, pc := range cfg.Pads {
		if i >= engine.NumPads {
			break
		}
		if preset, ok := presetByName[pc.Preset]; ok {
			m.SetPreset(i, preset)
		}
		m.SetOmit(i, voicing.OmitFlags{
			Root:    pc.OmitRoot,
			Third:   pc.OmitThird,
			Fifth:   pc.OmitFifth,
			Seventh: pc.OmitSeventh,
		})
	}
	m.SetProgression(cfg.Progression)
	return m
}

// saveState writes the runtime state back to the config file.
func saveState(cfg *config.Config, m *engine.Manager) {
	analysis, playback := m.Keys()
	cfg.Progression = m.Progression()
	cfg.AnalysisKey = config.KeyConfig{Tonic: analysis.Tonic, Mode: modeName(analysis.Mode)}
	cfg.PlaybackKey = config.KeyConfig{Tonic: playback.Tonic, Mode: modeName(playback.Mode)}
	cfg.CenterRegister = m.Center()
	cfg.Performance = m.Settings()
	g := m.Guide()
	cfg.Guide = config.GuideConfig{
		Enabled:   g.Enabled,
		SourcePad: g.SourcePad,
		Add9:      g.Tensions.Add9,
		Add11:     g.Tensions.Add11,
		Add13:     g.Tensions.Add13,
	}
	pads := m.Pads()
	cfg.Pads = cfg.Pads[:0]
	for _, p := range pads {
		cfg.Pads = append(cfg.Pads, config.PadConfig{
			Preset:      p.Preset.String(),
			OmitRoot:    p.Omit.Root,
			OmitThird:   p.Omit.Third,
			OmitFifth:   p.Omit.Fifth,
			OmitSeventh: p.Omit.Seventh,
		})
	}
	if err := cfg.Save(); err != nil {
		debug.Log("config", "save failed: %v", err)
	}
}

func modeName(mode theory.Mode) string {
	if mode == theory.ModeMinor {
		return "minor"
	}
	return "major"
}

func runTUI(cmd *cobra.Command, args []string) error {
	if flagDebug {
		if err := debug.Enable(); err != nil {
			return err
		}
		defer debug.Disable()
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Missing palette files fall back to the built-in plasma palette.
	palette, err := theme.LoadGPL(flagPalette)
	if err != nil {
		return fmt.Errorf("load palette: %w", err)
	}
	th := theme.New(palette)

	// Synth output; the instrument still runs silently without one.
	var synth engine.Synth = engine.NullSynth{}
	var deviceMgr *midi.DeviceManager
	if !flagNoMIDI {
		portName := cfg.SynthOutput.PortName
		if flagPort != "" {
			portName = flagPort
		}
		s, err := midi.NewSynth(portName, cfg.SynthOutput.Channel)
		if err != nil {
			fmt.Printf("MIDI output unavailable (%v), running silent\n", err)
		} else {
			synth = s
		}

		deviceMgr = midi.NewDeviceManager()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go deviceMgr.Run(ctx)
	}

	manager := buildManager(cfg, synth)

	m := tui.NewModel(manager, deviceMgr, th)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return err
	}

	manager.StopAll()
	saveState(cfg, manager)
	return nil
}

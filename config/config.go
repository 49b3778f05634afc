package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"chordpad/perform"
)

// KeyConfig names a tonal center.
type KeyConfig struct {
	Tonic string `json:"tonic"`
	Mode  string `json:"mode"` // "major" or "minor"
}

// PadConfig stores per-pad voicing choices.
type PadConfig struct {
	Preset      string `json:"preset,omitempty"`
	OmitRoot    bool   `json:"omitRoot,omitempty"`
	OmitThird   bool   `json:"omitThird,omitempty"`
	OmitFifth   bool   `json:"omitFifth,omitempty"`
	OmitSeventh bool   `json:"omitSeventh,omitempty"`
}

// GuideConfig stores the keyboard overlay toggles.
type GuideConfig struct {
	Enabled   bool `json:"enabled"`
	SourcePad int  `json:"sourcePad"`
	Add9      bool `json:"add9"`
	Add11     bool `json:"add11"`
	Add13     bool `json:"add13"`
}

// SynthOutputConfig defines the synth MIDI output.
type SynthOutputConfig struct {
	PortName string `json:"portName,omitempty"`
	Channel  int    `json:"channel,omitempty"`
}

// Config is the main configuration structure.
type Config struct {
	Progression    string            `json:"progression,omitempty"`
	AnalysisKey    KeyConfig         `json:"analysisKey"`
	PlaybackKey    KeyConfig         `json:"playbackKey"`
	CenterRegister int               `json:"centerRegister"`
	Pads           []PadConfig       `json:"pads,omitempty"`
	Performance    perform.Settings  `json:"performance"`
	Guide          GuideConfig       `json:"guide"`
	SynthOutput    SynthOutputConfig `json:"synthOutput,omitempty"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Progression:    "Dm7 G7 Cmaj7",
		AnalysisKey:    KeyConfig{Tonic: "C", Mode: "major"},
		PlaybackKey:    KeyConfig{Tonic: "C", Mode: "major"},
		CenterRegister: 4,
		Performance:    perform.DefaultSettings(),
		Guide:          GuideConfig{Enabled: true},
		SynthOutput:    SynthOutputConfig{Channel: 1},
	}
}

// ConfigDir returns the config directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "chordpad"), nil
}

// ConfigPath returns the full path to config.json.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the config to disk.
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

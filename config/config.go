package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// MIDIConfig defines the virtual device and per-deck channel routing.
type MIDIConfig struct {
	DeviceName   string `json:"deviceName"`
	Deck1Channel uint8  `json:"deck1Channel"`
	Deck2Channel uint8  `json:"deck2Channel"`
	SendRateHz   int    `json:"sendRateHz"`
	// Smoothing is the exponential retention factor applied before
	// quantization: 0 = none, values near 1 = heavy smoothing.
	Smoothing float64 `json:"smoothing"`
}

// GestureConfig stores the state-machine tunables.
type GestureConfig struct {
	// MaxAngleSpan is the pointer rotation in degrees covering a knob's
	// full range.
	MaxAngleSpan float64 `json:"maxAngleSpan"`
	// PinchDistancePx is the thumb/index pixel distance below which the
	// volume gesture engages.
	PinchDistancePx float64 `json:"pinchDistancePx"`
	// VolumeSensitivity is volume change per pixel of vertical motion,
	// negative so upward motion raises volume.
	VolumeSensitivity float64 `json:"volumeSensitivity"`
}

// TrackerConfig defines where the pose tracker pushes landmark frames.
type TrackerConfig struct {
	ListenAddr string `json:"listenAddr"`
}

// UIConfig holds terminal UI options.
type UIConfig struct {
	// Palette is an optional path to a GIMP palette file restyling the UI.
	// Empty uses the built-in gradient.
	Palette string `json:"palette,omitempty"`
}

// Config is the main configuration structure.
type Config struct {
	MIDI    MIDIConfig    `json:"midi"`
	Gesture GestureConfig `json:"gesture"`
	Tracker TrackerConfig `json:"tracker"`
	UI      UIConfig      `json:"ui,omitempty"`
	Verbose bool          `json:"verbose,omitempty"`
}

// DefaultConfig returns a config with the calibrated defaults.
func DefaultConfig() *Config {
	return &Config{
		MIDI: MIDIConfig{
			DeviceName:   "GesteDJ",
			Deck1Channel: 0,
			Deck2Channel: 1,
			SendRateHz:   30,
			Smoothing:    0.8,
		},
		Gesture: GestureConfig{
			MaxAngleSpan:      150,
			PinchDistancePx:   40,
			VolumeSensitivity: -0.0035,
		},
		Tracker: TrackerConfig{
			ListenAddr: "localhost:8765",
		},
	}
}

// Validate rejects configurations the engine cannot run with. Called once at
// startup; an error is fatal.
func (c *Config) Validate() error {
	if c.MIDI.SendRateHz <= 0 {
		return fmt.Errorf("midi.sendRateHz must be positive, got %d", c.MIDI.SendRateHz)
	}
	if c.MIDI.Smoothing < 0 || c.MIDI.Smoothing >= 1 {
		return fmt.Errorf("midi.smoothing must be in [0, 1), got %g", c.MIDI.Smoothing)
	}
	if c.MIDI.Deck1Channel > 15 || c.MIDI.Deck2Channel > 15 {
		return fmt.Errorf("deck channels must be MIDI channels 0-15")
	}
	if c.MIDI.Deck1Channel == c.MIDI.Deck2Channel {
		return fmt.Errorf("deck channels must differ, both are %d", c.MIDI.Deck1Channel)
	}
	if c.Gesture.MaxAngleSpan <= 0 {
		return fmt.Errorf("gesture.maxAngleSpan must be positive, got %g", c.Gesture.MaxAngleSpan)
	}
	if c.Gesture.PinchDistancePx <= 0 {
		return fmt.Errorf("gesture.pinchDistancePx must be positive, got %g", c.Gesture.PinchDistancePx)
	}
	return nil
}

// ConfigDir returns the config directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "gestedj"), nil
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

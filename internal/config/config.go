// Package config loads the dreamsketch settings from a YAML file laid over
// the built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ayusman/dreamsketch/internal/capture"
	"github.com/ayusman/dreamsketch/internal/detector"
	"github.com/ayusman/dreamsketch/internal/mode"
	"github.com/ayusman/dreamsketch/internal/render"
	"gopkg.in/yaml.v3"
)

// Config holds the full application configuration.
type Config struct {
	Camera    capture.Config        `yaml:"camera"`
	Detector  detector.Config       `yaml:"detector"`
	Display   DisplayConfig         `yaml:"display"`
	Particles render.ParticleConfig `yaml:"particles"`
	Server    ServerConfig          `yaml:"server"`
	Journal   JournalConfig         `yaml:"journal"`
	Tray      TrayConfig            `yaml:"tray"`
	Mode      mode.Config           `yaml:"mode"`
}

// DisplayConfig controls the preview window.
type DisplayConfig struct {
	// Window opens a desktop preview window; off for headless runs.
	Window bool   `yaml:"window"`
	Title  string `yaml:"title"`
	HUD    bool   `yaml:"hud"`
}

// ServerConfig controls the optional HTTP observation surface.
type ServerConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}

// JournalConfig controls the sqlite session journal.
type JournalConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// TrayConfig controls the system tray icon.
type TrayConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Camera:   capture.DefaultConfig(),
		Detector: detector.DefaultConfig(),
		Display: DisplayConfig{
			Window: true,
			Title:  "dreamsketch",
			HUD:    true,
		},
		Particles: render.DefaultParticleConfig(),
		Server: ServerConfig{
			Enabled: false,
			Listen:  "127.0.0.1:8080",
		},
		Journal: JournalConfig{
			Enabled: true,
			Path:    DefaultJournalPath(),
		},
		Mode: mode.DefaultConfig(),
	}
}

// DefaultJournalPath returns ~/.dreamsketch/journal.db, or a path in the
// working directory when the home directory is unknown.
func DefaultJournalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "dreamsketch.db"
	}
	return filepath.Join(home, ".dreamsketch", "journal.db")
}

// Load reads path and overlays it on Default. An empty path returns the
// defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks that sizes and durations are usable.
func (c *Config) Validate() error {
	var errs []error
	positive := func(name string, v int64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be > 0", name))
		}
	}

	positive("camera.width", int64(c.Camera.Width))
	positive("camera.height", int64(c.Camera.Height))
	positive("camera.fps", int64(c.Camera.FPS))

	if c.Detector.MaxHands < 1 || c.Detector.MaxHands > detector.MaxHands {
		errs = append(errs, fmt.Errorf("detector.max_hands must be 1..%d", detector.MaxHands))
	}

	m := c.Mode
	positive("mode.ok_hold", int64(m.OKHold))
	positive("mode.release_window", int64(m.ReleaseWindow))
	positive("mode.ready_timeout", int64(m.ReadyTimeout))
	positive("mode.trajectory_capacity", int64(m.TrajectoryCapacity))
	positive("mode.finish.brighten", int64(m.Finish.Brighten))
	positive("mode.finish.fade_out", int64(m.Finish.FadeOut))
	positive("mode.gestures.sweep.window", int64(m.Gestures.Sweep.Window))
	if m.Gestures.Sweep.Distance <= 0 {
		errs = append(errs, errors.New("mode.gestures.sweep.distance must be > 0"))
	}
	if m.Finish.Hold < 0 {
		errs = append(errs, errors.New("mode.finish.hold must be >= 0"))
	}
	if c.Particles.Overlay < 0 || c.Particles.Overlay > 1 {
		errs = append(errs, errors.New("particles.overlay must be within 0..1"))
	}
	if c.Server.Enabled && c.Server.Listen == "" {
		errs = append(errs, errors.New("server.listen is required when the server is enabled"))
	}
	if c.Journal.Enabled && c.Journal.Path == "" {
		errs = append(errs, errors.New("journal.path is required when the journal is enabled"))
	}

	return errors.Join(errs...)
}

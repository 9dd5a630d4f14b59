package config

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Backend names accepted by the backend field.
const (
	BackendAuto     = "auto"
	BackendX11      = "x11"
	BackendWin32    = "win32"
	BackendSDL      = "sdl"
	BackendHeadless = "headless"
)

const (
	DefaultRepeatDelay    = 250 * time.Millisecond
	DefaultRepeatRate     = 50 * time.Millisecond
	DefaultUpdateRate     = 4 * time.Millisecond
	DefaultFitScreenRatio = 0.75
	DefaultHeadlessWidth  = 1920
	DefaultHeadlessHeight = 1080
)

// Duration is a time.Duration written as a Go duration string in YAML.
// A bare "0" is accepted.
type Duration time.Duration

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("duration must be a string like \"250ms\"")
	}
	s := strings.TrimSpace(value.Value)
	if s == "0" {
		*d = 0
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Color is a 0x00RRGGBB value written as "#rrggbb" in YAML.
type Color uint32

func (c Color) MarshalYAML() (any, error) {
	return fmt.Sprintf("#%06x", uint32(c)&0xFFFFFF), nil
}

func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseColor(value.Value)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseColor accepts "#rrggbb", "rrggbb" and "0xrrggbb".
func ParseColor(s string) (Color, error) {
	hex := strings.TrimSpace(s)
	hex = strings.TrimPrefix(hex, "#")
	hex = strings.TrimPrefix(strings.TrimPrefix(hex, "0x"), "0X")
	if len(hex) != 6 {
		return 0, fmt.Errorf("invalid color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color(v), nil
}

// KeyRepeat controls the timing of repeated key presses.
type KeyRepeat struct {
	Delay Duration `yaml:"delay"`
	Rate  Duration `yaml:"rate"`
}

// Headless sizes the virtual screen of the headless backend.
type Headless struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// MenuColors styles the drawn menu strip of backends without a native
// menu bar.
type MenuColors struct {
	Background    Color `yaml:"background"`
	Foreground    Color `yaml:"foreground"`
	Highlight     Color `yaml:"highlight"`
	HighlightText Color `yaml:"highlight_text"`
	Disabled      Color `yaml:"disabled"`
	Border        Color `yaml:"border"`
}

// Config is the effective configuration.
type Config struct {
	Backend        string     `yaml:"backend"`
	LogLevel       string     `yaml:"log_level"`
	KeyRepeat      KeyRepeat  `yaml:"key_repeat"`
	UpdateRate     Duration   `yaml:"update_rate"` // 0 disables pacing
	FitScreenRatio float64    `yaml:"fit_screen_ratio"`
	Headless       Headless   `yaml:"headless"`
	Menu           MenuColors `yaml:"menu"`
}

func DefaultConfig() *Config {
	return &Config{
		Backend:  BackendAuto,
		LogLevel: "info",
		KeyRepeat: KeyRepeat{
			Delay: Duration(DefaultRepeatDelay),
			Rate:  Duration(DefaultRepeatRate),
		},
		UpdateRate:     Duration(DefaultUpdateRate),
		FitScreenRatio: DefaultFitScreenRatio,
		Headless: Headless{
			Width:  DefaultHeadlessWidth,
			Height: DefaultHeadlessHeight,
		},
		Menu: MenuColors{
			Background:    0xE8E8E8,
			Foreground:    0x202020,
			Highlight:     0x3070C0,
			HighlightText: 0xFFFFFF,
			Disabled:      0x909090,
			Border:        0x707070,
		},
	}
}

// SlogLevel maps log_level onto a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// UpdatePeriod returns the frame pacing period, nil when disabled.
func (c *Config) UpdatePeriod() *time.Duration {
	if c.UpdateRate <= 0 {
		return nil
	}
	d := time.Duration(c.UpdateRate)
	return &d
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendAuto, BackendX11, BackendWin32, BackendSDL, BackendHeadless:
	default:
		return &ValidationError{Path: "backend", Err: fmt.Errorf("backend must be one of: auto, x11, win32, sdl, headless")}
	}
	if c.LogLevel != "debug" && c.LogLevel != "info" && c.LogLevel != "warning" && c.LogLevel != "error" {
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	if c.KeyRepeat.Delay < 0 {
		return &ValidationError{Path: "key_repeat.delay", Err: fmt.Errorf("delay must be >= 0")}
	}
	if c.KeyRepeat.Rate < 0 {
		return &ValidationError{Path: "key_repeat.rate", Err: fmt.Errorf("rate must be >= 0")}
	}
	if c.UpdateRate < 0 {
		return &ValidationError{Path: "update_rate", Err: fmt.Errorf("update_rate must be >= 0")}
	}
	if c.FitScreenRatio <= 0 || c.FitScreenRatio > 1 {
		return &ValidationError{Path: "fit_screen_ratio", Err: fmt.Errorf("fit_screen_ratio must be in (0, 1]")}
	}
	if c.Headless.Width <= 0 {
		return &ValidationError{Path: "headless.width", Err: fmt.Errorf("width must be > 0")}
	}
	if c.Headless.Height <= 0 {
		return &ValidationError{Path: "headless.height", Err: fmt.Errorf("height must be > 0")}
	}
	return nil
}

package config

import "fmt"

// ValidationError names the config path a problem was found at and, when
// the value came from a file, where.
type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// BuildEffectiveConfig applies raw over the defaults.
func BuildEffectiveConfig(raw RawConfig) *Config {
	cfg := DefaultConfig()

	setIf(&cfg.Backend, raw.Backend)
	setIf(&cfg.LogLevel, raw.LogLevel)
	setIf(&cfg.UpdateRate, raw.UpdateRate)
	setIf(&cfg.FitScreenRatio, raw.FitScreenRatio)

	if kr := raw.KeyRepeat; kr != nil {
		setIf(&cfg.KeyRepeat.Delay, kr.Delay)
		setIf(&cfg.KeyRepeat.Rate, kr.Rate)
	}
	if h := raw.Headless; h != nil {
		setIf(&cfg.Headless.Width, h.Width)
		setIf(&cfg.Headless.Height, h.Height)
	}
	if m := raw.Menu; m != nil {
		setIf(&cfg.Menu.Background, m.Background)
		setIf(&cfg.Menu.Foreground, m.Foreground)
		setIf(&cfg.Menu.Highlight, m.Highlight)
		setIf(&cfg.Menu.HighlightText, m.HighlightText)
		setIf(&cfg.Menu.Disabled, m.Disabled)
		setIf(&cfg.Menu.Border, m.Border)
	}
	return cfg
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

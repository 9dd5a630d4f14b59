package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

// Raw types mirror the file layout with pointer fields so a merge can tell
// an explicit value from an absent one.

type RawKeyRepeat struct {
	Delay *Duration `yaml:"delay"`
	Rate  *Duration `yaml:"rate"`
}

type RawHeadless struct {
	Width  *int `yaml:"width"`
	Height *int `yaml:"height"`
}

type RawMenuColors struct {
	Background    *Color `yaml:"background"`
	Foreground    *Color `yaml:"foreground"`
	Highlight     *Color `yaml:"highlight"`
	HighlightText *Color `yaml:"highlight_text"`
	Disabled      *Color `yaml:"disabled"`
	Border        *Color `yaml:"border"`
}

type RawConfig struct {
	Include        IncludeList    `yaml:"include"`
	Backend        *string        `yaml:"backend"`
	LogLevel       *string        `yaml:"log_level"`
	KeyRepeat      *RawKeyRepeat  `yaml:"key_repeat"`
	UpdateRate     *Duration      `yaml:"update_rate"`
	FitScreenRatio *float64       `yaml:"fit_screen_ratio"`
	Headless       *RawHeadless   `yaml:"headless"`
	Menu           *RawMenuColors `yaml:"menu"`
}

func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c

	if overlay.Backend != nil {
		out.Backend = overlay.Backend
	}
	if overlay.LogLevel != nil {
		out.LogLevel = overlay.LogLevel
	}
	if overlay.UpdateRate != nil {
		out.UpdateRate = overlay.UpdateRate
	}
	if overlay.FitScreenRatio != nil {
		out.FitScreenRatio = overlay.FitScreenRatio
	}

	if overlay.KeyRepeat != nil {
		merged := RawKeyRepeat{}
		if out.KeyRepeat != nil {
			merged = *out.KeyRepeat
		}
		mergePtr(&merged.Delay, overlay.KeyRepeat.Delay)
		mergePtr(&merged.Rate, overlay.KeyRepeat.Rate)
		out.KeyRepeat = &merged
	}

	if overlay.Headless != nil {
		merged := RawHeadless{}
		if out.Headless != nil {
			merged = *out.Headless
		}
		mergePtr(&merged.Width, overlay.Headless.Width)
		mergePtr(&merged.Height, overlay.Headless.Height)
		out.Headless = &merged
	}

	if overlay.Menu != nil {
		merged := RawMenuColors{}
		if out.Menu != nil {
			merged = *out.Menu
		}
		mergePtr(&merged.Background, overlay.Menu.Background)
		mergePtr(&merged.Foreground, overlay.Menu.Foreground)
		mergePtr(&merged.Highlight, overlay.Menu.Highlight)
		mergePtr(&merged.HighlightText, overlay.Menu.HighlightText)
		mergePtr(&merged.Disabled, overlay.Menu.Disabled)
		mergePtr(&merged.Border, overlay.Menu.Border)
		out.Menu = &merged
	}

	return out
}

func mergePtr[T any](dst **T, overlay *T) {
	if overlay != nil {
		*dst = overlay
	}
}

package config

import (
	"fmt"
	"strings"
)

// Explain returns the effective value at the given YAML-like path and its
// source.
//
// Supported paths:
//
//	backend
//	log_level
//	key_repeat.delay
//	key_repeat.rate
//	update_rate
//	fit_screen_ratio
//	headless.width
//	headless.height
//	menu.<color>
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}
	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault, Name: "defaults"}, nil
}

func lookupValue(cfg *Config, path string) (any, error) {
	switch path {
	case "backend":
		return cfg.Backend, nil
	case "log_level":
		return cfg.LogLevel, nil
	case "key_repeat":
		return cfg.KeyRepeat, nil
	case "key_repeat.delay":
		return cfg.KeyRepeat.Delay, nil
	case "key_repeat.rate":
		return cfg.KeyRepeat.Rate, nil
	case "update_rate":
		return cfg.UpdateRate, nil
	case "fit_screen_ratio":
		return cfg.FitScreenRatio, nil
	case "headless":
		return cfg.Headless, nil
	case "headless.width":
		return cfg.Headless.Width, nil
	case "headless.height":
		return cfg.Headless.Height, nil
	case "menu":
		return cfg.Menu, nil
	}

	if name, ok := strings.CutPrefix(path, "menu."); ok {
		m := cfg.Menu
		switch name {
		case "background":
			return m.Background, nil
		case "foreground":
			return m.Foreground, nil
		case "highlight":
			return m.Highlight, nil
		case "highlight_text":
			return m.HighlightText, nil
		case "disabled":
			return m.Disabled, nil
		case "border":
			return m.Border, nil
		}
	}
	return nil, fmt.Errorf("unknown path: %s", path)
}

package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvBackend, "")
	t.Setenv(EnvLogLevel, "")
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.FitScreenRatio != 0.75 {
		t.Fatalf("expected fit_screen_ratio 0.75, got %v", cfg.FitScreenRatio)
	}
	if p := cfg.UpdatePeriod(); p == nil || *p != DefaultUpdateRate {
		t.Fatalf("expected default update period %v, got %v", DefaultUpdateRate, p)
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Backend != BackendAuto {
		t.Fatalf("expected backend auto, got %q", res.Config.Backend)
	}
	if len(res.Files) != 0 {
		t.Fatalf("expected no files, got %v", res.Files)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, t.TempDir(), "config.yaml", "# empty\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.KeyRepeat.Delay != Duration(DefaultRepeatDelay) {
		t.Fatalf("expected default repeat delay, got %v", time.Duration(res.Config.KeyRepeat.Delay))
	}
}

func TestLoadFromPath_Fields(t *testing.T) {
	clearEnv(t)
	data := strings.Join([]string{
		"backend: headless",
		"log_level: debug",
		"key_repeat:",
		"  delay: 400ms",
		"  rate: 30ms",
		"update_rate: 16ms",
		"fit_screen_ratio: 0.5",
		"headless:",
		"  width: 800",
		"  height: 600",
		"menu:",
		"  background: \"#101010\"",
		"  highlight: 0xff0000",
		"",
	}, "\n")
	path := writeConfig(t, t.TempDir(), "config.yaml", data)

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config
	if cfg.Backend != BackendHeadless {
		t.Fatalf("expected backend headless, got %q", cfg.Backend)
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Fatalf("expected debug level, got %v", cfg.SlogLevel())
	}
	if time.Duration(cfg.KeyRepeat.Delay) != 400*time.Millisecond || time.Duration(cfg.KeyRepeat.Rate) != 30*time.Millisecond {
		t.Fatalf("unexpected key repeat %+v", cfg.KeyRepeat)
	}
	if p := cfg.UpdatePeriod(); p == nil || *p != 16*time.Millisecond {
		t.Fatalf("expected 16ms update period, got %v", p)
	}
	if cfg.FitScreenRatio != 0.5 {
		t.Fatalf("expected ratio 0.5, got %v", cfg.FitScreenRatio)
	}
	if cfg.Headless.Width != 800 || cfg.Headless.Height != 600 {
		t.Fatalf("unexpected headless screen %+v", cfg.Headless)
	}
	if cfg.Menu.Background != 0x101010 || cfg.Menu.Highlight != 0xFF0000 {
		t.Fatalf("unexpected menu colors %+v", cfg.Menu)
	}
	if cfg.Menu.Foreground != DefaultConfig().Menu.Foreground {
		t.Fatalf("expected unset menu color to keep its default")
	}
}

func TestLoadFromPath_UpdateRateZeroDisablesPacing(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, t.TempDir(), "config.yaml", "update_rate: 0\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p := res.Config.UpdatePeriod(); p != nil {
		t.Fatalf("expected pacing disabled, got %v", *p)
	}
}

func TestLoadFromPath_StrictUnknownKeyErrors(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, t.TempDir(), "config.yaml", "backnd: x11\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "backnd") {
		t.Fatalf("expected error to mention unknown key, got %v", err)
	}
}

func TestLoadFromPath_BadColorErrors(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, t.TempDir(), "config.yaml", "menu:\n  border: \"#12\"\n")

	if _, err := LoadFromPath(path); err == nil {
		t.Fatalf("expected error for malformed color")
	}
}

func TestLoadFromPath_ValidationErrorHasSourceContext(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, t.TempDir(), "config.yaml", "log_level: info\nfit_screen_ratio: 1.5\n")

	_, err := LoadFromPath(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Path != "fit_screen_ratio" {
		t.Fatalf("expected path fit_screen_ratio, got %q", verr.Path)
	}
	if verr.Source.Line != 2 {
		t.Fatalf("expected line 2, got %d", verr.Source.Line)
	}
	if !strings.Contains(err.Error(), ":2:") {
		t.Fatalf("expected file:line in error, got %v", err)
	}
}

func TestLoadFromPath_IncludeDirectoryOrderAndMainOverrides(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	incDir := filepath.Join(dir, "conf.d")
	if err := os.Mkdir(incDir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeConfig(t, incDir, "10-a.yaml", "backend: x11\nfit_screen_ratio: 0.6\n")
	writeConfig(t, incDir, "20-b.yaml", "backend: sdl\n")
	writeConfig(t, incDir, "notes.txt", "backend: nonsense\n")
	path := writeConfig(t, dir, "config.yaml", "include: conf.d\nfit_screen_ratio: 0.9\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Backend != BackendSDL {
		t.Fatalf("expected later include to win, got %q", res.Config.Backend)
	}
	if res.Config.FitScreenRatio != 0.9 {
		t.Fatalf("expected main file to override includes, got %v", res.Config.FitScreenRatio)
	}
	if len(res.Files) != 3 {
		t.Fatalf("expected 3 loaded files, got %v", res.Files)
	}

	_, src, err := Explain(res, "backend")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if src.Kind != SourceFile || filepath.Base(src.File) != "20-b.yaml" {
		t.Fatalf("expected backend from 20-b.yaml, got %+v", src)
	}
}

func TestLoadFromPath_IncludeMissingPathHasContext(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, t.TempDir(), "config.yaml", "include: missing.yaml\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "missing.yaml") || !strings.Contains(err.Error(), ":1:") {
		t.Fatalf("expected include context, got %v", err)
	}
}

func TestLoadFromPath_IncludeCycleDetection(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeConfig(t, dir, "b.yaml", "include: a.yaml\n")
	path := writeConfig(t, dir, "a.yaml", "include: b.yaml\n")

	_, err := LoadFromPath(path)
	if err == nil || !strings.Contains(err.Error(), "include cycle") {
		t.Fatalf("expected include cycle error, got %v", err)
	}
}

func TestLoadFromPath_EnvOverridesFile(t *testing.T) {
	t.Setenv(EnvBackend, "Headless")
	t.Setenv(EnvLogLevel, "error")
	path := writeConfig(t, t.TempDir(), "config.yaml", "backend: x11\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Backend != BackendHeadless {
		t.Fatalf("expected env backend, got %q", res.Config.Backend)
	}
	_, src, err := Explain(res, "log_level")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if src.Kind != SourceEnv || src.Name != EnvLogLevel {
		t.Fatalf("expected env source, got %+v", src)
	}
}

func TestLoadFromPath_EnvInvalidBackend(t *testing.T) {
	t.Setenv(EnvBackend, "cocoa")
	t.Setenv(EnvLogLevel, "")

	_, err := LoadFromPath(filepath.Join(t.TempDir(), "absent.yaml"))
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Path != "backend" {
		t.Fatalf("expected backend validation error, got %v", err)
	}
}

func TestDefaultConfigPath_EnvOverride(t *testing.T) {
	t.Setenv(EnvConfig, "/tmp/pixelwin-test.yaml")
	path, err := DefaultConfigPath()
	if err != nil {
		t.Fatalf("path: %v", err)
	}
	if path != "/tmp/pixelwin-test.yaml" {
		t.Fatalf("expected env path, got %q", path)
	}
}

func TestExplain_DefaultsAndUnknownPath(t *testing.T) {
	res := &LoadResult{Config: DefaultConfig(), Sources: map[string]Source{}}

	val, src, err := Explain(res, "menu.highlight_text")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if val != Color(0xFFFFFF) {
		t.Fatalf("unexpected value %v", val)
	}
	if src.Kind != SourceDefault {
		t.Fatalf("expected default source, got %+v", src)
	}

	if _, _, err := Explain(res, "menu.nope"); err == nil {
		t.Fatalf("expected unknown path error")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
		ok   bool
	}{
		{"#a0b0c0", 0xA0B0C0, true},
		{"A0B0C0", 0xA0B0C0, true},
		{"0x0000ff", 0x0000FF, true},
		{"#fff", 0, false},
		{"#gggggg", 0, false},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err == nil) != tt.ok {
			t.Fatalf("ParseColor(%q) error = %v, want ok=%v", tt.in, err, tt.ok)
		}
		if tt.ok && got != tt.want {
			t.Fatalf("ParseColor(%q) = %06x, want %06x", tt.in, got, tt.want)
		}
	}
}

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/1broseidon/pixelwin"
	"github.com/1broseidon/pixelwin/internal/config"
)

func TestParseScale(t *testing.T) {
	tests := []struct {
		in   string
		want pixelwin.Scale
		ok   bool
	}{
		{"1", pixelwin.ScaleX1, true},
		{"16", pixelwin.ScaleX16, true},
		{"FIT", pixelwin.ScaleFitScreen, true},
		{"3", 0, false},
	}
	for _, tt := range tests {
		got, err := parseScale(tt.in)
		if (err == nil) != tt.ok || (tt.ok && got != tt.want) {
			t.Fatalf("parseScale(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestParseScaleMode(t *testing.T) {
	if m, err := parseScaleMode("aspect"); err != nil || m != pixelwin.ScaleModeAspectRatioStretch {
		t.Fatalf("expected aspect mode, got %v, %v", m, err)
	}
	if _, err := parseScaleMode("tile"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestPrintColumns(t *testing.T) {
	var out bytes.Buffer
	printColumns(&out, []string{"A", "B", "C", "D", "E"}, 9)
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %q", out.String())
	}
	if !strings.HasPrefix(lines[0], "A") || !strings.Contains(lines[0], "C") {
		t.Fatalf("expected column-major layout, got %q", lines[0])
	}

	out.Reset()
	printColumns(&out, []string{"A", "B"}, 0)
	if out.String() != "A\nB\n" {
		t.Fatalf("expected one name per line, got %q", out.String())
	}
}

func TestFormatSource(t *testing.T) {
	tests := []struct {
		src  config.Source
		want string
	}{
		{config.Source{Kind: config.SourceFile, File: "/c.yaml", Line: 3, Column: 5}, "file:/c.yaml:3:5"},
		{config.Source{Kind: config.SourceEnv, Name: config.EnvBackend}, "env:PIXELWIN_BACKEND"},
		{config.Source{Kind: config.SourceDefault, Name: "defaults"}, "default:defaults"},
	}
	for _, tt := range tests {
		if got := formatSource(tt.src); got != tt.want {
			t.Fatalf("expected %q, got %q", tt.want, got)
		}
	}
}

func TestDemoMenusAttach(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Backend = config.BackendHeadless
	opts := pixelwin.DefaultWindowOptions()
	opts.Config = cfg

	w, err := pixelwin.New("menus", 16, 16, opts)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer w.Close()
	for _, m := range demoMenus() {
		if _, err := w.AddMenu(m); err != nil {
			t.Fatalf("add %s: %v", m.Name(), err)
		}
	}
	if len(w.Menus()) != 2 {
		t.Fatalf("expected 2 menus, got %d", len(w.Menus()))
	}
}

package platform

import (
	"errors"
	"slices"
	"testing"

	"github.com/1broseidon/pixelwin/internal/mainthread"
)

func TestOpenDriver_Headless(t *testing.T) {
	d, err := OpenDriver("headless", nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if d.Name() != "headless" {
		t.Fatalf("expected headless, got %q", d.Name())
	}
	if !slices.Contains(Drivers(), "headless") {
		t.Fatalf("expected headless in %v", Drivers())
	}
}

func TestOpenDriver_Unknown(t *testing.T) {
	if _, err := OpenDriver("qt", nil); !errors.Is(err, ErrUnknownDriver) {
		t.Fatalf("expected ErrUnknownDriver, got %v", err)
	}
}

func TestOnThread_ForwardsCalls(t *testing.T) {
	hd := NewHeadlessDriver(320, 200)
	d := OnThread(hd, mainthread.Default())

	displays, err := d.Displays()
	if err != nil || len(displays) != 1 || displays[0].Bounds.Width != 320 {
		t.Fatalf("unexpected displays %+v, %v", displays, err)
	}
	b, err := d.Open(Config{Title: "wrapped", Width: 8, Height: 8})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	b.SetTitle("renamed")
	if hd.Last().Title() != "renamed" {
		t.Fatalf("expected title to reach the wrapped backend")
	}
	if w, h := b.ClientSize(); w != 8 || h != 8 {
		t.Fatalf("expected 8x8, got %dx%d", w, h)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := b.Poll(); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed through the wrapper, got %v", err)
	}

	hd.FailOpen(errors.New("boom"))
	if _, err := d.Open(Config{Width: 1, Height: 1}); err == nil {
		t.Fatalf("expected open failure through the wrapper")
	}
}

func TestCheckMainThread(t *testing.T) {
	cases := []struct {
		goos    string
		serving bool
		wantErr bool
	}{
		{"darwin", false, true},
		{"darwin", true, false},
		{"linux", false, false},
		{"windows", false, false},
	}
	for _, c := range cases {
		err := checkMainThread(c.goos, c.serving)
		if c.wantErr != errors.Is(err, ErrMainThreadRequired) {
			t.Fatalf("%s serving=%v: unexpected error %v", c.goos, c.serving, err)
		}
	}
}

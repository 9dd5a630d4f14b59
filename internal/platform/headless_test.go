package platform

import (
	"errors"
	"testing"

	"github.com/1broseidon/pixelwin/internal/buffer"
	"github.com/1broseidon/pixelwin/internal/scaler"
	"github.com/1broseidon/pixelwin/key"
)

func TestHeadless_OpenQueuesFocus(t *testing.T) {
	d := NewHeadlessDriver(800, 600)
	b, err := d.Open(Config{Title: "t", Width: 10, Height: 10})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	events, err := b.Poll()
	if err != nil {
		t.Fatalf("poll: %v", err)
	}
	if len(events) != 1 || events[0].Type != EventFocus || !events[0].Focused {
		t.Fatalf("expected initial focus, got %+v", events)
	}

	nf, _ := d.Open(Config{Width: 10, Height: 10, NoFocus: true})
	if events, _ := nf.Poll(); len(events) != 0 {
		t.Fatalf("expected no focus event, got %+v", events)
	}
}

func TestHeadless_OpenRejectsBadSizeAndInjectedFailure(t *testing.T) {
	d := NewHeadlessDriver(800, 600)
	if _, err := d.Open(Config{Width: 0, Height: 10}); err == nil {
		t.Fatalf("expected invalid size error")
	}
	want := errors.New("no display")
	d.FailOpen(want)
	if _, err := d.Open(Config{Width: 1, Height: 1}); !errors.Is(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}
}

func TestHeadless_PresentAndReadBack(t *testing.T) {
	d := NewHeadlessDriver(800, 600)
	bk, _ := d.Open(Config{Width: 4, Height: 2})
	b := bk.(*HeadlessBackend)

	src := buffer.New(2, 1)
	src.Set(0, 0, 0x00112233)
	src.Set(1, 0, 0x00445566)
	place := scaler.Place(scaler.UpperLeft, 2, 1, 2, 4, 2)
	if err := b.Present(&Frame{Source: src, Place: place}); err != nil {
		t.Fatalf("present: %v", err)
	}
	if b.Pixel(1, 1) != 0x00112233 || b.Pixel(2, 0) != 0x00445566 {
		t.Fatalf("unexpected surface %v", b.Surface().Pix)
	}
	if b.Presents() != 1 {
		t.Fatalf("expected 1 present, got %d", b.Presents())
	}
}

func TestHeadless_ClosedBackendFails(t *testing.T) {
	d := NewHeadlessDriver(800, 600)
	b, _ := d.Open(Config{Width: 4, Height: 4})
	if err := b.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := b.Poll(); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed from poll, got %v", err)
	}
	if err := b.Present(&Frame{}); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed from present, got %v", err)
	}
}

func TestHeadless_InjectAndResize(t *testing.T) {
	d := NewHeadlessDriver(800, 600)
	bk, _ := d.Open(Config{Width: 4, Height: 4, NoFocus: true})
	b := d.Last()
	if b != bk {
		t.Fatalf("expected Last to return the opened backend")
	}

	b.InjectKey(key.Q, true)
	b.Resize(9, 7)
	events, _ := b.Poll()
	if len(events) != 2 || events[0].Key != key.Q || events[1].Type != EventResize {
		t.Fatalf("unexpected events %+v", events)
	}
	if w, h := b.ClientSize(); w != 9 || h != 7 {
		t.Fatalf("expected 9x7, got %dx%d", w, h)
	}
}

func TestPrimary(t *testing.T) {
	displays := []Display{{ID: 0, Name: "a"}, {ID: 1, Name: "b", Primary: true}}
	if p, ok := Primary(displays); !ok || p.Name != "b" {
		t.Fatalf("expected primary b, got %+v", p)
	}
	if p, ok := Primary(displays[:1]); !ok || p.Name != "a" {
		t.Fatalf("expected fallback to first display, got %+v", p)
	}
	if _, ok := Primary(nil); ok {
		t.Fatalf("expected no display")
	}
}

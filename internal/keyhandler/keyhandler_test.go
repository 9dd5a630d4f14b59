package keyhandler

import (
	"testing"
	"time"

	"github.com/1broseidon/pixelwin/key"
)

func frame(h *Handler, now time.Time, events func()) {
	h.BeginFrame()
	if events != nil {
		events()
	}
	h.EndFrame(now)
}

func TestRepeatTiming(t *testing.T) {
	h := New()
	start := time.Unix(0, 0)

	var fired []time.Duration
	for ms := 0; ms <= 400; ms += 10 {
		now := start.Add(time.Duration(ms) * time.Millisecond)
		frame(h, now, func() {
			if ms == 0 {
				h.SetKeyState(key.A, true, now)
			}
		})
		if h.IsKeyPressed(key.A, true) {
			fired = append(fired, now.Sub(start))
		}
	}

	want := []time.Duration{0, 250, 300, 350, 400}
	if len(fired) != len(want) {
		t.Fatalf("expected %d reports, got %d: %v", len(want), len(fired), fired)
	}
	for i, ms := range want {
		if fired[i] != ms*time.Millisecond {
			t.Fatalf("report %d: expected %dms, got %v", i, ms, fired[i])
		}
	}
}

func TestNoRepeatReportsEdgeOnly(t *testing.T) {
	h := New()
	start := time.Unix(0, 0)
	count := 0
	for ms := 0; ms <= 500; ms += 10 {
		now := start.Add(time.Duration(ms) * time.Millisecond)
		frame(h, now, func() {
			if ms == 0 {
				h.SetKeyState(key.Space, true, now)
			}
		})
		if h.IsKeyPressed(key.Space, false) {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected one report without repeat, got %d", count)
	}
}

func TestEdgesAreFrameScoped(t *testing.T) {
	h := New()
	now := time.Unix(0, 0)

	frame(h, now, func() { h.SetKeyState(key.Escape, true, now) })
	if !h.IsKeyDown(key.Escape) || !h.IsKeyPressed(key.Escape, false) {
		t.Fatalf("expected Escape down and pressed after first frame")
	}

	frame(h, now.Add(time.Millisecond), nil)
	if h.IsKeyPressed(key.Escape, false) {
		t.Fatalf("expected pressed edge cleared on next frame")
	}
	if !h.IsKeyDown(key.Escape) {
		t.Fatalf("expected Escape still down")
	}

	frame(h, now.Add(2*time.Millisecond), func() { h.SetKeyState(key.Escape, false, now) })
	if h.IsKeyDown(key.Escape) || !h.IsKeyReleased(key.Escape) {
		t.Fatalf("expected Escape released")
	}
	if got := h.KeysReleased(); len(got) != 1 || got[0] != key.Escape {
		t.Fatalf("expected [Escape] released, got %v", got)
	}
}

func TestDuplicateDownIsNotANewEdge(t *testing.T) {
	h := New()
	now := time.Unix(0, 0)
	frame(h, now, func() { h.SetKeyState(key.B, true, now) })
	frame(h, now.Add(10*time.Millisecond), func() {
		// Native auto-repeat delivers extra down events while held.
		h.SetKeyState(key.B, true, now.Add(10*time.Millisecond))
	})
	if h.IsKeyPressed(key.B, false) {
		t.Fatalf("expected no second edge for a held key")
	}
}

func TestCallbackPanicIsRecovered(t *testing.T) {
	h := New()
	var got []rune
	var recovered any
	h.SetCallback(func(r rune) {
		if r == 'x' {
			panic("boom")
		}
		got = append(got, r)
	}, func(p any) { recovered = p })

	h.Char('a')
	h.Char('x')
	h.Char('b')

	if string(got) != "ab" {
		t.Fatalf("expected \"ab\", got %q", string(got))
	}
	if recovered != "boom" {
		t.Fatalf("expected recovered panic value, got %v", recovered)
	}
}

func TestReleaseAll(t *testing.T) {
	h := New()
	now := time.Unix(0, 0)
	frame(h, now, func() {
		h.SetKeyState(key.LeftCtrl, true, now)
		h.SetKeyState(key.RightShift, true, now)
	})
	if len(h.Keys()) != 2 {
		t.Fatalf("expected two held keys, got %v", h.Keys())
	}
	h.BeginFrame()
	h.ReleaseAll()
	if len(h.Keys()) != 0 {
		t.Fatalf("expected no keys held, got %v", h.Keys())
	}
	if len(h.KeysReleased()) != 2 {
		t.Fatalf("expected two release edges, got %v", h.KeysReleased())
	}
}

package platform

import (
	"testing"

	"github.com/1broseidon/pixelwin/internal/buffer"
	"github.com/1broseidon/pixelwin/internal/menu"
	"github.com/1broseidon/pixelwin/internal/scaler"
	"github.com/1broseidon/pixelwin/key"
)

func fileMenu() *menu.Menu {
	m := menu.New("File")
	m.Add(menu.Item{Label: "Save", ID: 7, Enabled: true, Key: key.S, Mods: key.ModCtrl})
	return m
}

func TestFilter_PassesEventsWithoutMenus(t *testing.T) {
	s := newSoftSurface(MenuTheme{})
	in := []Event{KeyEvent(key.A, true), ButtonEvent(ButtonLeft, true, 3, 4), CharEvent('a')}

	out := s.filter(in)
	if len(out) != len(in) {
		t.Fatalf("expected %d events, got %d", len(in), len(out))
	}
}

func TestFilter_StripConsumesClicks(t *testing.T) {
	s := newSoftSurface(MenuTheme{})
	s.setMenus([]*menu.Menu{fileMenu()})

	out := s.filter([]Event{
		ButtonEvent(ButtonLeft, true, 10, 5),
		ButtonEvent(ButtonLeft, false, 10, 5),
		ButtonEvent(ButtonLeft, true, 10, 25),
		ButtonEvent(ButtonLeft, false, 10, 25),
	})
	if len(out) != 1 || out[0].Type != EventMenu || out[0].MenuID != 7 {
		t.Fatalf("expected a single menu event for 7, got %+v", out)
	}
}

func TestFilter_AcceleratorTracksModifiers(t *testing.T) {
	s := newSoftSurface(MenuTheme{})
	s.setMenus([]*menu.Menu{fileMenu()})

	out := s.filter([]Event{KeyEvent(key.S, true)})
	for _, ev := range out {
		if ev.Type == EventMenu {
			t.Fatalf("expected no activation without Ctrl")
		}
	}

	out = s.filter([]Event{KeyEvent(key.RightCtrl, true), KeyEvent(key.S, true)})
	if len(out) != 3 || out[2].Type != EventKey || out[1].Type != EventMenu {
		t.Fatalf("expected ctrl, menu, key events, got %+v", out)
	}

	// Focus loss forgets held modifiers.
	s.filter([]Event{FocusEvent(false)})
	out = s.filter([]Event{KeyEvent(key.S, true)})
	if len(out) != 1 {
		t.Fatalf("expected plain key after focus loss, got %+v", out)
	}
}

func TestRender_ReusesSurfaceAndDrawsStrip(t *testing.T) {
	s := newSoftSurface(MenuTheme{})
	src := buffer.New(4, 4)
	src.Fill(0x00AABBCC)
	f := &Frame{Source: src, Place: scaler.Place(scaler.UpperLeft, 4, 4, 8, 32, 32), Background: 0}

	first := s.render(f, 32, 32)
	second := s.render(f, 32, 32)
	if &first.Pix[0] != &second.Pix[0] {
		t.Fatalf("expected surface reuse at equal size")
	}
	if second.At(31, 31) != 0x00AABBCC {
		t.Fatalf("expected scaled image, got %06x", second.At(31, 31))
	}

	s.setMenus([]*menu.Menu{fileMenu()})
	out := s.render(f, 32, 32)
	if out.At(31, 1) == 0x00AABBCC {
		t.Fatalf("expected the strip over the top rows")
	}
}

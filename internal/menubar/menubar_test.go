package menubar

import (
	"testing"

	"github.com/1broseidon/pixelwin/internal/buffer"
	"github.com/1broseidon/pixelwin/internal/menu"
	"github.com/1broseidon/pixelwin/key"
)

func testMenus() []*menu.Menu {
	recent := menu.New("Recent")
	recent.Add(menu.Item{Label: "one.bin", ID: 30, Enabled: true})

	file := menu.New("File")
	file.Add(menu.Item{Label: "Open", ID: 10, Enabled: true, Key: key.O, Mods: key.ModCtrl})
	file.AddSeparator()
	file.Add(menu.Item{Label: "Locked", ID: 11, Enabled: false})
	file.AddSubMenu("Recent", recent)

	view := menu.New("View")
	view.Add(menu.Item{Label: "Zoom", ID: 20, Enabled: true})
	return []*menu.Menu{file, view}
}

func TestPress_OpensAndActivates(t *testing.T) {
	b := New(DefaultTheme())
	b.SetMenus(testMenus())

	if h := b.Height(); h != 19 {
		t.Fatalf("expected strip height 19, got %d", h)
	}

	r := b.Press(10, 5)
	if !r.Consumed || r.Activated || !b.IsOpen() {
		t.Fatalf("expected strip press to open File, got %+v open=%v", r, b.IsOpen())
	}
	if !b.Release().Consumed {
		t.Fatalf("expected release after a strip press to be consumed")
	}

	r = b.Press(10, 25)
	if !r.Activated || r.ID != 10 {
		t.Fatalf("expected activation of Open (10), got %+v", r)
	}
	if b.IsOpen() {
		t.Fatalf("expected popup closed after activation")
	}
}

func TestPress_DisabledAndOutside(t *testing.T) {
	b := New(DefaultTheme())
	b.SetMenus(testMenus())
	b.Press(10, 5)

	// Row layout: Open 20..37, separator 37..44, Locked 44..61.
	if r := b.Press(10, 50); r.Activated || !r.Consumed {
		t.Fatalf("expected disabled item to swallow the click, got %+v", r)
	}
	if !b.IsOpen() {
		t.Fatalf("disabled click should keep the popup open")
	}

	if r := b.Press(300, 300); !r.Consumed || b.IsOpen() {
		t.Fatalf("expected outside click to dismiss, got %+v", r)
	}
	b.Release()
	if r := b.Press(300, 300); r.Consumed {
		t.Fatalf("expected clicks to reach the application when closed")
	}
}

func TestMove_OpensSubmenuAndSwitchesTitles(t *testing.T) {
	b := New(DefaultTheme())
	b.SetMenus(testMenus())
	b.Press(10, 5)

	// Recent row: 61..78.
	b.Move(10, 65)
	if len(b.popups) != 2 {
		t.Fatalf("expected submenu popup, got %d popups", len(b.popups))
	}
	sub := b.popups[1].rect
	r := b.Press(sub.Min.X+5, sub.Min.Y+5)
	if !r.Activated || r.ID != 30 {
		t.Fatalf("expected activation of one.bin (30), got %+v", r)
	}

	b.Press(10, 5)
	view := b.titleRects()[1]
	b.Move(view.Min.X+2, 5)
	if b.open != 1 {
		t.Fatalf("expected hover along the strip to switch to View, open=%d", b.open)
	}
}

func TestKey_AcceleratorsAndEscape(t *testing.T) {
	b := New(DefaultTheme())
	b.SetMenus(testMenus())

	r := b.Key(key.O, key.ModCtrl)
	if !r.Activated || r.ID != 10 || r.Consumed {
		t.Fatalf("expected accelerator activation without consuming the key, got %+v", r)
	}

	b.Press(10, 5)
	if r := b.Key(key.Escape, key.ModNone); !r.Consumed || b.IsOpen() {
		t.Fatalf("expected Escape to close the popup, got %+v", r)
	}
}

func TestDraw_OnlyTouchesStripWhenClosed(t *testing.T) {
	b := New(DefaultTheme())
	b.SetMenus(testMenus())

	dst := buffer.New(200, 100)
	dst.Fill(0x00123456)
	b.Draw(dst)

	if dst.At(199, 0) != DefaultTheme().Background {
		t.Fatalf("expected strip background at top right")
	}
	if dst.At(0, 18) != DefaultTheme().Border {
		t.Fatalf("expected border on the last strip row")
	}
	for y := 19; y < 100; y++ {
		for x := 0; x < 200; x++ {
			if dst.At(x, y) != 0x00123456 {
				t.Fatalf("pixel (%d,%d) below the strip was modified", x, y)
			}
		}
	}

	ink := 0
	for x := 0; x < 44; x++ {
		for y := 0; y < 18; y++ {
			if dst.At(x, y) != DefaultTheme().Background {
				ink++
			}
		}
	}
	if ink == 0 {
		t.Fatalf("expected title text pixels in the strip")
	}
}

func TestNoMenus_NoStrip(t *testing.T) {
	b := New(DefaultTheme())
	if b.Height() != 0 || b.Press(1, 1).Consumed {
		t.Fatalf("expected an invisible bar without menus")
	}
}

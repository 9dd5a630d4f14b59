package pixelwin

import (
	"errors"
	"io"
	"log/slog"
	"slices"
	"testing"
	"time"

	"github.com/1broseidon/pixelwin/internal/buffer"
	"github.com/1broseidon/pixelwin/internal/config"
	"github.com/1broseidon/pixelwin/internal/platform"
	"github.com/1broseidon/pixelwin/key"
)

func newTestWindow(t *testing.T, width, height int, opts WindowOptions) (*Window, *platform.HeadlessBackend) {
	t.Helper()
	d := platform.NewHeadlessDriver(1920, 1080)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	w, err := newWithDriver(d, config.DefaultConfig(), logger, "test", width, height, opts)
	if err != nil {
		t.Fatalf("new window: %v", err)
	}
	w.LimitUpdateRate(nil)
	t.Cleanup(func() { _ = w.Close() })
	return w, d.Last()
}

func filled(width, height int, c uint32) []uint32 {
	buf := make([]uint32, width*height)
	for i := range buf {
		buf[i] = c
	}
	return buf
}

func TestSolidFillReadsBackAtScale(t *testing.T) {
	opts := DefaultWindowOptions()
	opts.Scale = ScaleX2
	w, b := newTestWindow(t, 320, 180, opts)

	if cw, ch := w.Size(); cw != 640 || ch != 360 {
		t.Fatalf("expected client 640x360, got %dx%d", cw, ch)
	}
	if err := w.UpdateWithBuffer(filled(320, 180, 0x00FF8800), 320, 180); err != nil {
		t.Fatalf("update: %v", err)
	}
	r, g, bl := buffer.Split(b.Pixel(100, 100))
	if r != 0xFF || g != 0x88 || bl != 0x00 {
		t.Fatalf("expected (ff,88,00) at (100,100), got (%02x,%02x,%02x)", r, g, bl)
	}
}

func TestEscapeAndCloseRequest(t *testing.T) {
	w, b := newTestWindow(t, 64, 64, DefaultWindowOptions())

	b.InjectKey(key.Escape, true)
	if err := w.Update(); err != nil {
		t.Fatalf("update: %v", err)
	}
	if !w.IsKeyDown(key.Escape) {
		t.Fatalf("expected Escape down after update")
	}

	b.Inject(platform.CloseEvent())
	if err := w.Update(); err != nil {
		t.Fatalf("update: %v", err)
	}
	if w.IsOpen() {
		t.Fatalf("expected window closed after close request")
	}

	b.InjectKey(key.Space, true)
	if err := w.Update(); err != nil {
		t.Fatalf("expected update after close to be a no-op, got %v", err)
	}
	if w.IsKeyDown(key.Space) {
		t.Fatalf("expected no events drained after close")
	}
	if err := w.UpdateWithBuffer(filled(64, 64, 0), 64, 64); err != nil {
		t.Fatalf("expected buffer update after close to be a no-op, got %v", err)
	}
	if b.Presents() != 0 {
		t.Fatalf("expected nothing presented after close, got %d", b.Presents())
	}
}

func TestCloseRequestStillPresentsCurrentFrame(t *testing.T) {
	w, b := newTestWindow(t, 8, 8, DefaultWindowOptions())

	b.Inject(platform.CloseEvent())
	if err := w.UpdateWithBuffer(filled(8, 8, 0x123456), 8, 8); err != nil {
		t.Fatalf("update: %v", err)
	}
	if w.IsOpen() {
		t.Fatalf("expected window closed")
	}
	if b.Presents() != 1 || b.Pixel(0, 0) != 0x123456 {
		t.Fatalf("expected the closing frame to be presented")
	}
}

func TestSetShouldClose(t *testing.T) {
	w, _ := newTestWindow(t, 8, 8, DefaultWindowOptions())

	w.SetShouldClose(true)
	if !w.IsOpen() {
		t.Fatalf("expected close to be observed only at the next update")
	}
	_ = w.Update()
	if w.IsOpen() {
		t.Fatalf("expected window closed after update")
	}
}

func TestMouseClamp(t *testing.T) {
	w, b := newTestWindow(t, 100, 100, DefaultWindowOptions())

	b.Inject(platform.MoveEvent(-5, 200))
	_ = w.Update()

	x, y, ok := w.MousePos(MouseClamp)
	if !ok || x != 0 || y != 99 {
		t.Fatalf("expected (0, 99), got (%v, %v, %v)", x, y, ok)
	}
	if _, _, ok := w.MousePos(MouseDiscard); ok {
		t.Fatalf("expected discard outside the buffer")
	}
	if x, y, ok := w.MousePos(MousePass); !ok || x != -5 || y != 200 {
		t.Fatalf("expected pass-through (-5, 200), got (%v, %v, %v)", x, y, ok)
	}
}

func TestMousePosFollowsScaleAndResize(t *testing.T) {
	opts := DefaultWindowOptions()
	opts.Scale = ScaleX4
	opts.Resize = true
	opts.ScaleMode = ScaleModeCenter
	w, b := newTestWindow(t, 10, 10, opts)

	b.Resize(60, 50)
	b.Inject(platform.MoveEvent(13, 9))
	_ = w.Update()

	if cw, ch := w.Size(); cw != 60 || ch != 50 {
		t.Fatalf("expected client 60x50, got %dx%d", cw, ch)
	}
	// 40x40 image centered at (10, 5).
	x, y, ok := w.MousePos(MousePass)
	if !ok || x != 0.75 || y != 1 {
		t.Fatalf("expected (0.75, 1), got (%v, %v, %v)", x, y, ok)
	}
	if ux, uy, _ := w.UnscaledMousePos(MousePass); ux != 13 || uy != 9 {
		t.Fatalf("expected unscaled (13, 9), got (%v, %v)", ux, uy)
	}
}

func TestRepeatTiming(t *testing.T) {
	w, b := newTestWindow(t, 8, 8, DefaultWindowOptions())
	w.SetKeyRepeatDelay(250 * time.Millisecond)
	w.SetKeyRepeatRate(50 * time.Millisecond)

	start := time.Unix(1000, 0)
	now := start
	w.now = func() time.Time { return now }

	b.InjectKey(key.A, true)
	var hits []time.Duration
	for ms := 0; ms <= 400; ms += 10 {
		now = start.Add(time.Duration(ms) * time.Millisecond)
		_ = w.Update()
		if w.IsKeyPressed(key.A, KeyRepeatYes) {
			hits = append(hits, now.Sub(start))
		}
	}

	want := []time.Duration{0, 250 * time.Millisecond, 300 * time.Millisecond, 350 * time.Millisecond, 400 * time.Millisecond}
	if !slices.Equal(hits, want) {
		t.Fatalf("expected presses at %v, got %v", want, hits)
	}
}

func TestMenuRemovalNeverReusesHandles(t *testing.T) {
	w, b := newTestWindow(t, 64, 64, DefaultWindowOptions())

	h1, err := w.AddMenu(NewMenu("M1"))
	if err != nil {
		t.Fatalf("add M1: %v", err)
	}
	h2, err := w.AddMenu(NewMenu("M2"))
	if err != nil {
		t.Fatalf("add M2: %v", err)
	}
	w.RemoveMenu(h1)
	if got := w.Menus(); !slices.Equal(got, []MenuHandle{h2}) {
		t.Fatalf("expected only %v, got %v", h2, got)
	}
	h3, err := w.AddMenu(NewMenu("M3"))
	if err != nil {
		t.Fatalf("add M3: %v", err)
	}
	if h3 == h1 || h3 == h2 {
		t.Fatalf("expected a fresh handle, got %v", h3)
	}

	w.RemoveMenu(h1)
	if len(w.Menus()) != 2 {
		t.Fatalf("expected removing an unknown handle to be silent")
	}
	if b.MenuStripHeight() == 0 {
		t.Fatalf("expected the menu strip to be shown")
	}
}

func TestAddMenuDuplicateName(t *testing.T) {
	w, _ := newTestWindow(t, 64, 64, DefaultWindowOptions())

	if _, err := w.AddMenu(NewMenu("File")); err != nil {
		t.Fatalf("add: %v", err)
	}
	_, err := w.AddMenu(NewMenu("File"))
	if !errors.Is(err, ErrMenuExists) {
		t.Fatalf("expected ErrMenuExists, got %v", err)
	}
}

func TestMenuActivationByClickAndAccelerator(t *testing.T) {
	w, b := newTestWindow(t, 200, 100, DefaultWindowOptions())

	m := NewMenu("File")
	m.AddItem("Open", 10).Shortcut(key.O, key.ModCtrl).Build()
	m.AddSeparator()
	m.AddItem("Quit", 11).Build()
	if _, err := w.AddMenu(m); err != nil {
		t.Fatalf("add menu: %v", err)
	}

	b.Inject(
		platform.ButtonEvent(platform.ButtonLeft, true, 10, 5),
		platform.ButtonEvent(platform.ButtonLeft, false, 10, 5),
		platform.ButtonEvent(platform.ButtonLeft, true, 10, 25),
		platform.ButtonEvent(platform.ButtonLeft, false, 10, 25),
	)
	_ = w.Update()
	if id, ok := w.IsMenuPressed(); !ok || id != 10 {
		t.Fatalf("expected click activation of 10, got %d %v", id, ok)
	}
	if _, ok := w.IsMenuPressed(); ok {
		t.Fatalf("expected each activation to be reported once")
	}
	if w.MouseDown(MouseLeft) {
		t.Fatalf("expected clicks on the menus not to reach the buffer")
	}

	b.Inject(platform.KeyEvent(key.LeftCtrl, true), platform.KeyEvent(key.O, true))
	_ = w.Update()
	if id, ok := w.IsMenuPressed(); !ok || id != 10 {
		t.Fatalf("expected accelerator activation of 10, got %d %v", id, ok)
	}
}

func TestAddMenuCopiesTree(t *testing.T) {
	w, b := newTestWindow(t, 200, 100, DefaultWindowOptions())

	m := NewMenu("File")
	h := m.AddItem("Open", 10).Build()
	if _, err := w.AddMenu(m); err != nil {
		t.Fatalf("add menu: %v", err)
	}
	m.RemoveItem(h)

	b.Inject(
		platform.ButtonEvent(platform.ButtonLeft, true, 10, 5),
		platform.ButtonEvent(platform.ButtonLeft, false, 10, 5),
		platform.ButtonEvent(platform.ButtonLeft, true, 10, 25),
	)
	_ = w.Update()
	if id, ok := w.IsMenuPressed(); !ok || id != 10 {
		t.Fatalf("expected the attached copy to keep Open, got %d %v", id, ok)
	}
}

func TestStrideSlack(t *testing.T) {
	w, b := newTestWindow(t, 100, 50, DefaultWindowOptions())

	buf := make([]uint32, 128*50)
	for i := range buf {
		buf[i] = uint32(i)
	}
	if err := w.UpdateWithBufferStride(buf, 100, 50, 128); err != nil {
		t.Fatalf("update: %v", err)
	}
	for y := 0; y < 50; y++ {
		if got, want := b.Pixel(99, y), buf[128*y+99]; got != want {
			t.Fatalf("row %d: expected %d, got %d", y, want, got)
		}
	}
}

func TestUpdateRejectsBadBuffers(t *testing.T) {
	w, b := newTestWindow(t, 100, 50, DefaultWindowOptions())

	tests := []struct {
		name   string
		buf    []uint32
		w, h   int
		stride int
		cause  error
	}{
		{"half size", make([]uint32, 50*25), 50, 25, 50, buffer.ErrSizeChange},
		{"short", make([]uint32, 100*49), 100, 50, 100, buffer.ErrTooSmall},
		{"stride below width", make([]uint32, 100*50), 100, 50, 99, buffer.ErrBadStride},
	}
	for _, tt := range tests {
		err := w.UpdateWithBufferStride(tt.buf, tt.w, tt.h, tt.stride)
		if !errors.Is(err, ErrUpdateFailed) || !errors.Is(err, tt.cause) {
			t.Fatalf("%s: expected ErrUpdateFailed wrapping %v, got %v", tt.name, tt.cause, err)
		}
	}
	if b.Presents() != 0 {
		t.Fatalf("expected nothing presented, got %d", b.Presents())
	}
}

func TestFocusAndNoFocus(t *testing.T) {
	w, b := newTestWindow(t, 8, 8, DefaultWindowOptions())
	if w.IsActive() {
		t.Fatalf("expected inactive before the first update")
	}
	_ = w.Update()
	if !w.IsActive() {
		t.Fatalf("expected active after focus")
	}

	b.InjectKey(key.A, true)
	b.Inject(platform.ButtonEvent(platform.ButtonRight, true, 1, 1))
	_ = w.Update()
	b.Inject(platform.FocusEvent(false))
	_ = w.Update()
	if w.IsActive() || w.IsKeyDown(key.A) || w.MouseDown(MouseRight) {
		t.Fatalf("expected focus loss to release input")
	}
	if !w.IsKeyReleased(key.A) {
		t.Fatalf("expected release edge for A on focus loss")
	}

	opts := DefaultWindowOptions()
	opts.None = true
	w2, _ := newTestWindow(t, 8, 8, opts)
	_ = w2.Update()
	if w2.IsActive() {
		t.Fatalf("expected no focus with None")
	}
}

func TestInputCallbackPanicIsRecovered(t *testing.T) {
	w, b := newTestWindow(t, 8, 8, DefaultWindowOptions())

	var got []rune
	w.SetInputCallback(func(r rune) {
		got = append(got, r)
		if r == 'x' {
			panic("boom")
		}
	})
	b.Inject(platform.CharEvent('a'), platform.CharEvent('x'), platform.CharEvent('b'))
	if err := w.Update(); err != nil {
		t.Fatalf("update: %v", err)
	}
	if string(got) != "axb" {
		t.Fatalf("expected axb, got %q", string(got))
	}
}

func TestPumpFailureClosesWindow(t *testing.T) {
	w, b := newTestWindow(t, 8, 8, DefaultWindowOptions())

	b.FailPoll(errors.New("connection lost"))
	_ = w.Update()
	if w.IsOpen() {
		t.Fatalf("expected pump failure to close the window")
	}
}

func TestScrollWheel(t *testing.T) {
	w, b := newTestWindow(t, 8, 8, DefaultWindowOptions())

	b.Inject(platform.ScrollEvent(0, 1), platform.ScrollEvent(0.5, 1))
	_ = w.Update()
	dx, dy, ok := w.ScrollWheel()
	if !ok || dx != 0.5 || dy != 2 {
		t.Fatalf("expected (0.5, 2), got (%v, %v, %v)", dx, dy, ok)
	}
	if _, _, ok := w.ScrollWheel(); ok {
		t.Fatalf("expected scroll to reset after query")
	}
}

func TestScrollWheelDoesNotCarryIntoNextFrame(t *testing.T) {
	w, b := newTestWindow(t, 8, 8, DefaultWindowOptions())

	b.Inject(platform.ScrollEvent(0, 3))
	_ = w.Update()
	_ = w.Update()
	if dx, dy, ok := w.ScrollWheel(); ok {
		t.Fatalf("expected no scroll in a frame without wheel events, got (%v, %v)", dx, dy)
	}
}

func TestFitScreenScale(t *testing.T) {
	opts := DefaultWindowOptions()
	opts.Scale = ScaleFitScreen
	w, _ := newTestWindow(t, 320, 180, opts)

	// 75% of 1920x1080 is 1440x810: x4 fits, x8 does not.
	if cw, ch := w.Size(); cw != 1280 || ch != 720 {
		t.Fatalf("expected 1280x720, got %dx%d", cw, ch)
	}
}

func TestBackgroundFillAndBestEffortSetters(t *testing.T) {
	opts := DefaultWindowOptions()
	opts.Resize = true
	opts.ScaleMode = ScaleModeCenter
	w, b := newTestWindow(t, 4, 4, opts)
	b.Resize(8, 8)

	w.SetBackgroundColor(0x10, 0x20, 0x30)
	w.SetTitle("renamed")
	w.SetCursorStyle(CursorCrosshair)
	w.Topmost(true)
	w.SetPosition(12, 34)
	if err := w.UpdateWithBuffer(filled(4, 4, 0xFFFFFF), 4, 4); err != nil {
		t.Fatalf("update: %v", err)
	}
	if b.Pixel(0, 0) != 0x102030 || b.Pixel(4, 4) != 0xFFFFFF {
		t.Fatalf("expected background around a centered image, got %06x / %06x", b.Pixel(0, 0), b.Pixel(4, 4))
	}
	if b.Title() != "renamed" || b.CursorStyle() != CursorCrosshair || !b.Topmost() {
		t.Fatalf("expected setters to reach the backend")
	}
	if x, y := w.Position(); x != 12 || y != 34 {
		t.Fatalf("expected position (12, 34), got (%d, %d)", x, y)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	w, b := newTestWindow(t, 8, 8, DefaultWindowOptions())

	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if !b.Closed() {
		t.Fatalf("expected backend closed")
	}
	if err := w.Update(); !errors.Is(err, ErrUpdateFailed) {
		t.Fatalf("expected ErrUpdateFailed after close, got %v", err)
	}
}

func TestNewFailsWithWindowCreate(t *testing.T) {
	d := platform.NewHeadlessDriver(640, 480)
	d.FailOpen(errors.New("no display"))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := newWithDriver(d, config.DefaultConfig(), logger, "x", 10, 10, DefaultWindowOptions())
	if !errors.Is(err, ErrWindowCreate) {
		t.Fatalf("expected ErrWindowCreate, got %v", err)
	}
	if _, err := newWithDriver(platform.NewHeadlessDriver(640, 480), config.DefaultConfig(), logger, "x", 0, 10, DefaultWindowOptions()); !errors.Is(err, ErrWindowCreate) {
		t.Fatalf("expected ErrWindowCreate for empty buffer, got %v", err)
	}
}

func TestNewWithHeadlessConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Backend = config.BackendHeadless
	cfg.Headless.Width, cfg.Headless.Height = 800, 600
	opts := DefaultWindowOptions()
	opts.Config = cfg
	opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

	w, err := New("headless", 32, 32, opts)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer w.Close()
	if w.Handle() != 0 {
		t.Fatalf("expected no native handle")
	}
	if err := w.UpdateWithBuffer(filled(32, 32, 0), 32, 32); err != nil {
		t.Fatalf("update: %v", err)
	}
}

func TestHeadlessScreenSizeFollowsConfig(t *testing.T) {
	open := func(width, height int) *Window {
		cfg := config.DefaultConfig()
		cfg.Backend = config.BackendHeadless
		cfg.Headless.Width, cfg.Headless.Height = width, height
		opts := DefaultWindowOptions()
		opts.Scale = ScaleFitScreen
		opts.Config = cfg
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		w, err := New("fit", 100, 100, opts)
		if err != nil {
			t.Fatalf("new: %v", err)
		}
		t.Cleanup(func() { _ = w.Close() })
		return w
	}

	if cw, ch := open(800, 600).Size(); cw != 400 || ch != 400 {
		t.Fatalf("expected 400x400 on an 800x600 screen, got %dx%d", cw, ch)
	}
	if cw, ch := open(1920, 1080).Size(); cw != 800 || ch != 800 {
		t.Fatalf("expected 800x800 on a 1920x1080 screen, got %dx%d", cw, ch)
	}
}

func TestIconFromPixels(t *testing.T) {
	icon, err := IconFromPixels(2, 1, []uint32{0x00FF0000, 0x8000FF00})
	if err != nil {
		t.Fatalf("icon: %v", err)
	}
	if icon.Pix[0] != 0xFFFF0000 || icon.Pix[1] != 0x8000FF00 {
		t.Fatalf("unexpected icon pixels %08x", icon.Pix)
	}
	if _, err := IconFromPixels(2, 2, []uint32{0}); err == nil {
		t.Fatalf("expected short icon buffer to fail")
	}
}

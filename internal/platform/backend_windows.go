//go:build windows

package platform

import (
	"fmt"
	"log/slog"

	"github.com/1broseidon/pixelwin/internal/mainthread"
	"github.com/1broseidon/pixelwin/internal/menu"
	"github.com/1broseidon/pixelwin/internal/win32"
	"github.com/1broseidon/pixelwin/key"
)

func init() {
	Register("win32", openWin32)
}

// Win32 windows belong to the thread that created them, so the driver and
// every backend it opens run on one locked thread.
func openWin32(logger *slog.Logger) (Driver, error) {
	if err := win32.Load(); err != nil {
		return nil, err
	}
	return OnThread(&win32Driver{logger: logger}, mainthread.Default()), nil
}

type win32Driver struct {
	logger *slog.Logger
}

func (d *win32Driver) Name() string { return "win32" }

func (d *win32Driver) Displays() ([]Display, error) {
	monitors, err := win32.Monitors()
	if err != nil {
		return nil, err
	}
	displays := make([]Display, 0, len(monitors))
	for i, m := range monitors {
		displays = append(displays, Display{
			ID:      i,
			Name:    m.Name,
			Primary: m.Primary,
			Bounds:  Rect(m.Bounds),
			Usable:  Rect(m.Work),
		})
	}
	return displays, nil
}

func (d *win32Driver) Open(cfg Config) (Backend, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = d.logger
	}
	b := &win32Backend{logger: logger}
	win, err := win32.Create(win32.Options{
		Title:        cfg.Title,
		Width:        cfg.Width,
		Height:       cfg.Height,
		Borderless:   cfg.Borderless,
		TitleBar:     cfg.TitleBar,
		Resize:       cfg.Resize,
		Topmost:      cfg.Topmost,
		Transparency: cfg.Transparency,
		NoFocus:      cfg.NoFocus,
	}, b)
	if err != nil {
		return nil, err
	}
	b.win = win
	logger.Debug("win32 window created", "hwnd", win.Handle(), "width", cfg.Width, "height", cfg.Height)
	return b, nil
}

// win32Backend presents through StretchDIBits and mirrors menus into a
// native menu bar. It receives decoded input as the window's Sink.
type win32Backend struct {
	win    *win32.Window
	logger *slog.Logger

	pending []Event
	menus   []*menu.Menu
	closed  bool
}

var (
	_ Backend    = (*win32Backend)(nil)
	_ win32.Sink = (*win32Backend)(nil)
)

func (b *win32Backend) Key(k key.Key, down bool) {
	b.pending = append(b.pending, KeyEvent(k, down))
	if !down || k.IsModifier() {
		return
	}
	mods := win32.Mods()
	for _, m := range b.menus {
		if id, ok := m.Accelerator(k, mods); ok {
			b.pending = append(b.pending, MenuEvent(id))
			return
		}
	}
}

func (b *win32Backend) Char(r rune) { b.pending = append(b.pending, CharEvent(r)) }

func (b *win32Backend) Move(x, y int) { b.pending = append(b.pending, MoveEvent(x, y)) }

func (b *win32Backend) Button(button int, down bool, x, y int) {
	var mb MouseButton
	switch button {
	case win32.ButtonLeft:
		mb = ButtonLeft
	case win32.ButtonMiddle:
		mb = ButtonMiddle
	case win32.ButtonRight:
		mb = ButtonRight
	default:
		return
	}
	b.pending = append(b.pending, ButtonEvent(mb, down, x, y))
}

func (b *win32Backend) Scroll(dx, dy float32) { b.pending = append(b.pending, ScrollEvent(dx, dy)) }

func (b *win32Backend) Focus(focused bool) { b.pending = append(b.pending, FocusEvent(focused)) }

func (b *win32Backend) Resize(width, height int) {
	b.pending = append(b.pending, ResizeEvent(width, height))
}

func (b *win32Backend) CloseRequested() { b.pending = append(b.pending, CloseEvent()) }

func (b *win32Backend) Command(id int) { b.pending = append(b.pending, MenuEvent(id)) }

func (b *win32Backend) Poll() ([]Event, error) {
	if b.closed {
		return nil, ErrClosed
	}
	win32.Pump()
	events := b.pending
	b.pending = nil
	if b.win.Destroyed() {
		events = append(events, CloseEvent())
	}
	return events, nil
}

func (b *win32Backend) Present(f *Frame) error {
	if b.closed || b.win.Destroyed() {
		return ErrClosed
	}
	if err := b.win.Present(f.Source, f.Place, f.Background); err != nil {
		return fmt.Errorf("failed to present frame: %w", err)
	}
	return nil
}

func (b *win32Backend) ClientSize() (int, int) { return b.win.ClientSize() }

func (b *win32Backend) SetTitle(title string) { b.win.SetTitle(title) }

func (b *win32Backend) SetPosition(x, y int) { b.win.Move(x, y) }

func (b *win32Backend) Position() (int, int) { return b.win.Position() }

var win32Cursors = map[CursorStyle]uintptr{
	CursorArrow:           win32.CursorArrow,
	CursorIbeam:           win32.CursorIbeam,
	CursorCrosshair:       win32.CursorCrosshair,
	CursorClosedHand:      win32.CursorHand,
	CursorOpenHand:        win32.CursorHand,
	CursorResizeLeftRight: win32.CursorSizeWE,
	CursorResizeUpDown:    win32.CursorSizeNS,
	CursorResizeAll:       win32.CursorSizeAll,
}

func (b *win32Backend) SetCursorStyle(style CursorStyle) {
	id, ok := win32Cursors[style]
	if !ok {
		id = win32.CursorArrow
	}
	b.win.SetCursor(id)
}

func (b *win32Backend) SetCursorVisible(visible bool) { b.win.ShowCursor(visible) }

func (b *win32Backend) SetTopmost(topmost bool) { b.win.SetTopmost(topmost) }

func (b *win32Backend) SetIcon(icon *Icon) {
	if icon == nil {
		return
	}
	if err := b.win.SetIcon(icon.Width, icon.Height, icon.Pix); err != nil {
		b.logger.Debug("failed to set icon", "error", err)
	}
}

func (b *win32Backend) SetOpacity(opacity uint8) { b.win.SetOpacity(opacity) }

func (b *win32Backend) SetMenus(menus []*menu.Menu) error {
	b.menus = menus
	return b.win.SetMenus(menus)
}

func (b *win32Backend) Handle() uintptr { return b.win.Handle() }

func (b *win32Backend) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	b.win.Destroy()
	b.logger.Debug("win32 window destroyed")
	return nil
}

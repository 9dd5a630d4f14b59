//go:build linux || freebsd || netbsd || openbsd || dragonfly

package platform

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xcursor"
	"github.com/BurntSushi/xgbutil/xevent"

	"github.com/1broseidon/pixelwin/internal/menu"
	"github.com/1broseidon/pixelwin/internal/x11"
)

func init() {
	Register("x11", openX11)
}

// x11Driver shares one X connection between its windows. Events are read
// from the connection once and handed to the window they belong to.
type x11Driver struct {
	conn   *x11.Connection
	logger *slog.Logger

	mu      sync.Mutex
	windows map[xproto.Window]*x11Backend

	read func()
	ping func() error
}

func openX11(logger *slog.Logger) (Driver, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, err
	}
	d := &x11Driver{conn: conn, logger: logger, windows: make(map[xproto.Window]*x11Backend)}
	d.read = d.readEvents
	d.ping = conn.Ping
	return d, nil
}

func (d *x11Driver) Name() string { return "x11" }

func (d *x11Driver) Displays() ([]Display, error) {
	monitors, err := d.conn.GetMonitors()
	if err != nil {
		return nil, err
	}
	displays := make([]Display, 0, len(monitors))
	for _, m := range monitors {
		usable := d.conn.UsableArea(m)
		displays = append(displays, Display{
			ID:      m.ID,
			Name:    m.Name,
			Primary: m.Primary,
			Bounds:  Rect{X: m.X, Y: m.Y, Width: m.Width, Height: m.Height},
			Usable:  Rect{X: usable.X, Y: usable.Y, Width: usable.Width, Height: usable.Height},
		})
	}
	return displays, nil
}

func (d *x11Driver) Open(cfg Config) (Backend, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = d.logger
	}

	x, y := 0, 0
	if primary, err := d.conn.PrimaryMonitor(); err == nil {
		u := d.conn.UsableArea(*primary)
		x = u.X + max(0, (u.Width-cfg.Width)/2)
		y = u.Y + max(0, (u.Height-cfg.Height)/2)
	} else {
		logger.Debug("failed to find primary monitor", "error", err)
	}

	win, err := d.conn.CreateWindow(x11.WindowOptions{
		Title:      cfg.Title,
		X:          x,
		Y:          y,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Borderless: cfg.Borderless || !cfg.TitleBar,
		Resize:     cfg.Resize,
		Topmost:    cfg.Topmost,
		NoFocus:    cfg.NoFocus,
	})
	if err != nil {
		return nil, err
	}

	b := &x11Backend{
		d:             d,
		win:           win,
		logger:        logger,
		width:         cfg.Width,
		height:        cfg.Height,
		cursorVisible: true,
		soft:          newSoftSurface(cfg.MenuTheme),
	}
	d.mu.Lock()
	d.windows[win.ID()] = b
	d.mu.Unlock()

	logger.Debug("x11 window created", "window", win.ID(), "width", cfg.Width, "height", cfg.Height)
	return b, nil
}

// pump reads every queued X event and distributes it, then checks that the
// server is still there.
func (d *x11Driver) pump() error {
	d.read()
	if err := d.ping(); err != nil {
		return fmt.Errorf("%w: %w", ErrConnectionLost, err)
	}
	return nil
}

func (d *x11Driver) readEvents() {
	xu := d.conn.XUtil
	xevent.Read(xu, false)
	for !xevent.Empty(xu) {
		ev, xerr := xevent.Dequeue(xu)
		if xerr != nil {
			d.logger.Debug("x11 protocol error", "error", xerr)
			continue
		}
		if ev != nil {
			d.dispatch(ev)
		}
	}
}

func (d *x11Driver) lookup(win xproto.Window) *x11Backend {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.windows[win]
}

func (d *x11Driver) dispatch(ev xgb.Event) {
	xu := d.conn.XUtil
	switch e := ev.(type) {
	case xproto.KeyPressEvent:
		if b := d.lookup(e.Event); b != nil {
			b.push(KeyEvent(x11.KeyFromKeycode(xu, e.Detail), true))
			if r := x11.TextFromKeycode(xu, e.State, e.Detail); r != 0 {
				b.push(CharEvent(r))
			}
		}
	case xproto.KeyReleaseEvent:
		if b := d.lookup(e.Event); b != nil && !d.isAutoRepeat(e) {
			b.push(KeyEvent(x11.KeyFromKeycode(xu, e.Detail), false))
		}
	case xproto.ButtonPressEvent:
		if b := d.lookup(e.Event); b != nil {
			b.button(e.Detail, true, int(e.EventX), int(e.EventY))
		}
	case xproto.ButtonReleaseEvent:
		if b := d.lookup(e.Event); b != nil {
			b.button(e.Detail, false, int(e.EventX), int(e.EventY))
		}
	case xproto.MotionNotifyEvent:
		if b := d.lookup(e.Event); b != nil {
			b.push(MoveEvent(int(e.EventX), int(e.EventY)))
		}
	case xproto.FocusInEvent:
		if b := d.lookup(e.Event); b != nil && e.Mode == xproto.NotifyModeNormal {
			b.push(FocusEvent(true))
		}
	case xproto.FocusOutEvent:
		if b := d.lookup(e.Event); b != nil && e.Mode == xproto.NotifyModeNormal {
			b.push(FocusEvent(false))
		}
	case xproto.ConfigureNotifyEvent:
		if b := d.lookup(e.Window); b != nil {
			b.configure(int(e.Width), int(e.Height))
		}
	case xproto.ClientMessageEvent:
		if b := d.lookup(e.Window); b != nil && icccm.IsDeleteProtocol(xu, xevent.ClientMessageEvent{ClientMessageEvent: &e}) {
			b.push(CloseEvent())
		}
	case xproto.DestroyNotifyEvent:
		if b := d.lookup(e.Window); b != nil {
			b.push(CloseEvent())
		}
	}
}

// isAutoRepeat reports whether a key release is immediately followed by a
// press of the same key at the same time, which is how X reports held keys.
func (d *x11Driver) isAutoRepeat(release xproto.KeyReleaseEvent) bool {
	xevent.Read(d.conn.XUtil, false)
	queued := xevent.Peek(d.conn.XUtil)
	if len(queued) == 0 {
		return false
	}
	next, ok := queued[0].Event.(xproto.KeyPressEvent)
	return ok && next.Detail == release.Detail && next.Time == release.Time
}

func (d *x11Driver) forget(win xproto.Window) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.windows, win)
}

// x11Backend is one X window presented through the software surface.
type x11Backend struct {
	d      *x11Driver
	win    *x11.Window
	logger *slog.Logger

	width, height int
	pending       []Event
	closed        bool

	cursor        CursorStyle
	cursorVisible bool

	soft *softSurface
}

var _ Backend = (*x11Backend)(nil)

func (b *x11Backend) push(ev Event) {
	b.pending = append(b.pending, ev)
}

func (b *x11Backend) button(detail xproto.Button, down bool, x, y int) {
	switch detail {
	case xproto.ButtonIndex1:
		b.push(ButtonEvent(ButtonLeft, down, x, y))
	case xproto.ButtonIndex2:
		b.push(ButtonEvent(ButtonMiddle, down, x, y))
	case xproto.ButtonIndex3:
		b.push(ButtonEvent(ButtonRight, down, x, y))
	case xproto.ButtonIndex4, xproto.ButtonIndex5, 6, 7:
		// Wheel notches arrive as press/release pairs; the press is enough.
		if !down {
			return
		}
		switch detail {
		case xproto.ButtonIndex4:
			b.push(ScrollEvent(0, 1))
		case xproto.ButtonIndex5:
			b.push(ScrollEvent(0, -1))
		case 6:
			b.push(ScrollEvent(-1, 0))
		case 7:
			b.push(ScrollEvent(1, 0))
		}
	}
}

func (b *x11Backend) configure(width, height int) {
	if width == b.width && height == b.height {
		return
	}
	b.width, b.height = width, height
	b.push(ResizeEvent(width, height))
}

func (b *x11Backend) Poll() ([]Event, error) {
	if b.closed {
		return nil, ErrClosed
	}
	if err := b.d.pump(); err != nil {
		return nil, err
	}
	events := b.pending
	b.pending = nil
	return b.soft.filter(events), nil
}

func (b *x11Backend) Present(f *Frame) error {
	if b.closed {
		return ErrClosed
	}
	surf := b.soft.render(f, b.width, b.height)
	if err := b.win.Paint(surf.Pix, surf.Width, surf.Height, surf.Stride); err != nil {
		return fmt.Errorf("failed to present frame: %w", err)
	}
	return nil
}

func (b *x11Backend) ClientSize() (int, int) { return b.width, b.height }

func (b *x11Backend) SetTitle(title string) { b.win.SetTitle(title) }

func (b *x11Backend) SetPosition(x, y int) { b.win.Move(x, y) }

func (b *x11Backend) Position() (int, int) {
	x, y, err := b.win.Position()
	if err != nil {
		b.logger.Debug("failed to query window position", "error", err)
	}
	return x, y
}

var cursorGlyphs = map[CursorStyle]uint16{
	CursorArrow:           xcursor.LeftPtr,
	CursorIbeam:           xcursor.XTerm,
	CursorCrosshair:       xcursor.Crosshair,
	CursorClosedHand:      xcursor.Hand1,
	CursorOpenHand:        xcursor.Hand2,
	CursorResizeLeftRight: xcursor.SBHDoubleArrow,
	CursorResizeUpDown:    xcursor.SBVDoubleArrow,
	CursorResizeAll:       xcursor.Fleur,
}

func (b *x11Backend) SetCursorStyle(style CursorStyle) {
	b.cursor = style
	if b.cursorVisible {
		b.applyCursor()
	}
}

func (b *x11Backend) SetCursorVisible(visible bool) {
	b.cursorVisible = visible
	if !visible {
		if err := b.win.HideCursor(); err != nil {
			b.logger.Debug("failed to hide cursor", "error", err)
		}
		return
	}
	b.applyCursor()
}

func (b *x11Backend) applyCursor() {
	glyph, ok := cursorGlyphs[b.cursor]
	if !ok {
		glyph = xcursor.LeftPtr
	}
	if err := b.win.SetCursor(glyph); err != nil {
		b.logger.Debug("failed to set cursor", "style", b.cursor, "error", err)
	}
}

func (b *x11Backend) SetTopmost(topmost bool) {
	if err := b.win.SetAbove(topmost); err != nil {
		b.logger.Debug("failed to change stacking state", "error", err)
	}
}

func (b *x11Backend) SetIcon(icon *Icon) {
	if icon == nil {
		return
	}
	if err := b.win.SetIcon(icon.Width, icon.Height, icon.Pix); err != nil {
		b.logger.Debug("failed to set icon", "error", err)
	}
}

func (b *x11Backend) SetOpacity(opacity uint8) {
	if err := b.win.SetOpacity(float64(opacity) / 255); err != nil {
		b.logger.Debug("failed to set opacity", "error", err)
	}
}

func (b *x11Backend) SetMenus(menus []*menu.Menu) error {
	b.soft.setMenus(menus)
	return nil
}

func (b *x11Backend) Handle() uintptr { return uintptr(b.win.ID()) }

func (b *x11Backend) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	b.d.forget(b.win.ID())
	b.win.Destroy()
	b.logger.Debug("x11 window destroyed", "window", b.win.ID())
	return nil
}

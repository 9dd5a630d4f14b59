package x11

import (
	"encoding/binary"
	"fmt"
	"image"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/motif"
	"github.com/BurntSushi/xgbutil/xcursor"
	"github.com/BurntSushi/xgbutil/xgraphics"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// WindowOptions describes a top-level client window.
type WindowOptions struct {
	Title      string
	X, Y       int
	Width      int
	Height     int
	Borderless bool
	Resize     bool
	Topmost    bool
	NoFocus    bool
}

// Window is a top-level window painted from a client-side pixel surface.
type Window struct {
	conn *Connection
	win  *xwindow.Window
	img  *xgraphics.Image

	cursors map[uint16]xproto.Cursor
	blank   xproto.Cursor
}

// eventMask covers everything the backend translates.
var eventMask = []int{
	xproto.EventMaskKeyPress,
	xproto.EventMaskKeyRelease,
	xproto.EventMaskButtonPress,
	xproto.EventMaskButtonRelease,
	xproto.EventMaskPointerMotion,
	xproto.EventMaskFocusChange,
	xproto.EventMaskStructureNotify,
	xproto.EventMaskExposure,
}

// CreateWindow creates, decorates and maps a window.
func (c *Connection) CreateWindow(opts WindowOptions) (*Window, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid window size %dx%d", opts.Width, opts.Height)
	}
	win, err := xwindow.Generate(c.XUtil)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate window id: %w", err)
	}
	err = win.CreateChecked(c.Root, opts.X, opts.Y, opts.Width, opts.Height,
		xproto.CwBackPixel, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	if err := win.Listen(eventMask...); err != nil {
		win.Destroy()
		return nil, fmt.Errorf("failed to select window events: %w", err)
	}

	w := &Window{conn: c, win: win, cursors: make(map[uint16]xproto.Cursor)}
	w.SetTitle(opts.Title)

	if err := icccm.WmProtocolsSet(c.XUtil, win.Id, []string{"WM_DELETE_WINDOW"}); err != nil {
		win.Destroy()
		return nil, fmt.Errorf("failed to register WM_DELETE_WINDOW: %w", err)
	}

	if !opts.Resize {
		hints := &icccm.NormalHints{
			Flags:     icccm.SizeHintPMinSize | icccm.SizeHintPMaxSize,
			MinWidth:  uint(opts.Width),
			MinHeight: uint(opts.Height),
			MaxWidth:  uint(opts.Width),
			MaxHeight: uint(opts.Height),
		}
		// Window managers are free to ignore size hints.
		_ = icccm.WmNormalHintsSet(c.XUtil, win.Id, hints)
	}

	if opts.NoFocus {
		_ = icccm.WmHintsSet(c.XUtil, win.Id, &icccm.Hints{Flags: icccm.HintInput, Input: 0})
	}

	if opts.Borderless {
		_ = motif.WmHintsSet(c.XUtil, win.Id, &motif.Hints{
			Flags:      motif.HintDecorations,
			Decoration: motif.DecorationNone,
		})
	}

	// Before mapping, state is set directly; afterwards it has to be
	// requested from the window manager.
	if opts.Topmost {
		_ = ewmh.WmStateSet(c.XUtil, win.Id, []string{"_NET_WM_STATE_ABOVE"})
	}

	win.Map()
	return w, nil
}

// ID returns the X window id.
func (w *Window) ID() xproto.Window { return w.win.Id }

func (w *Window) SetTitle(title string) {
	_ = icccm.WmNameSet(w.conn.XUtil, w.win.Id, title)
	_ = ewmh.WmNameSet(w.conn.XUtil, w.win.Id, title)
}

// Move places the window's outer frame at x, y on the root window.
func (w *Window) Move(x, y int) {
	w.win.Move(x, y)
}

// Position returns the outer frame's top-left corner on the root window.
func (w *Window) Position() (int, int, error) {
	reply, err := xproto.TranslateCoordinates(w.conn.XUtil.Conn(), w.win.Id, w.conn.Root, 0, 0).Reply()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to translate window origin: %w", err)
	}
	left, _, top, _ := w.FrameExtents()
	return int(reply.DstX) - left, int(reply.DstY) - top, nil
}

// FrameExtents returns the window decoration sizes, zero when the window
// manager does not publish them.
func (w *Window) FrameExtents() (left, right, top, bottom int) {
	extents, err := ewmh.FrameExtentsGet(w.conn.XUtil, w.win.Id)
	if err != nil {
		return 0, 0, 0, 0
	}
	return int(extents.Left), int(extents.Right), int(extents.Top), int(extents.Bottom)
}

// SetAbove asks the window manager to keep the window above others.
func (w *Window) SetAbove(above bool) error {
	action := ewmh.StateRemove
	if above {
		action = ewmh.StateAdd
	}
	return ewmh.WmStateReq(w.conn.XUtil, w.win.Id, action, "_NET_WM_STATE_ABOVE")
}

// SetIcon publishes an ARGB icon through _NET_WM_ICON.
func (w *Window) SetIcon(width, height int, argb []uint32) error {
	data := make([]uint, len(argb))
	for i, p := range argb {
		data[i] = uint(p)
	}
	return ewmh.WmIconSet(w.conn.XUtil, w.win.Id, []ewmh.WmIcon{{
		Width:  uint(width),
		Height: uint(height),
		Data:   data,
	}})
}

// SetOpacity sets the compositor opacity hint, 0 transparent to 1 opaque.
func (w *Window) SetOpacity(opacity float64) error {
	return ewmh.WmWindowOpacitySet(w.conn.XUtil, w.win.Id, opacity)
}

// SetCursor shows the named cursor font glyph over the window.
func (w *Window) SetCursor(glyph uint16) error {
	cur, ok := w.cursors[glyph]
	if !ok {
		var err error
		cur, err = xcursor.CreateCursor(w.conn.XUtil, glyph)
		if err != nil {
			return fmt.Errorf("failed to create cursor %d: %w", glyph, err)
		}
		w.cursors[glyph] = cur
	}
	w.win.Change(xproto.CwCursor, uint32(cur))
	return nil
}

// HideCursor replaces the pointer with an empty one-pixel cursor.
func (w *Window) HideCursor() error {
	if w.blank == 0 {
		cur, err := w.blankCursor()
		if err != nil {
			return err
		}
		w.blank = cur
	}
	w.win.Change(xproto.CwCursor, uint32(w.blank))
	return nil
}

func (w *Window) blankCursor() (xproto.Cursor, error) {
	conn := w.conn.XUtil.Conn()
	pix, err := xproto.NewPixmapId(conn)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate pixmap id: %w", err)
	}
	if err := xproto.CreatePixmapChecked(conn, 1, pix, xproto.Drawable(w.conn.Root), 1, 1).Check(); err != nil {
		return 0, fmt.Errorf("failed to create cursor pixmap: %w", err)
	}
	defer xproto.FreePixmap(conn, pix)

	cur, err := xproto.NewCursorId(conn)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate cursor id: %w", err)
	}
	err = xproto.CreateCursorChecked(conn, cur, pix, pix, 0, 0, 0, 0, 0, 0, 0, 0).Check()
	if err != nil {
		return 0, fmt.Errorf("failed to create blank cursor: %w", err)
	}
	return cur, nil
}

// Paint uploads a width x height surface of 0x00RRGGBB pixels with the
// given row stride and shows it.
func (w *Window) Paint(pix []uint32, width, height, stride int) error {
	if w.img == nil || w.img.Rect.Dx() != width || w.img.Rect.Dy() != height {
		if w.img != nil {
			w.img.Destroy()
		}
		w.img = xgraphics.New(w.conn.XUtil, image.Rect(0, 0, width, height))
	}
	img := w.img
	for y := 0; y < height; y++ {
		row := pix[y*stride : y*stride+width]
		out := img.Pix[y*img.Stride : y*img.Stride+4*width]
		for x, p := range row {
			// Little-endian 0xAARRGGBB is B, G, R, A in memory.
			binary.LittleEndian.PutUint32(out[4*x:], p|0xFF000000)
		}
	}
	if err := img.XSurfaceSet(w.win.Id); err != nil {
		return fmt.Errorf("failed to attach window surface: %w", err)
	}
	img.XDraw()
	img.XPaint(w.win.Id)
	return nil
}

// Destroy releases the window and its server-side resources.
func (w *Window) Destroy() {
	conn := w.conn.XUtil.Conn()
	if w.img != nil {
		w.img.Destroy()
		w.img = nil
	}
	for _, cur := range w.cursors {
		xproto.FreeCursor(conn, cur)
	}
	if w.blank != 0 {
		xproto.FreeCursor(conn, w.blank)
	}
	w.win.Destroy()
}

package platform

import (
	"image"
	"log/slog"

	"github.com/1broseidon/pixelwin/internal/buffer"
	"github.com/1broseidon/pixelwin/internal/menu"
	"github.com/1broseidon/pixelwin/internal/scaler"
)

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Display describes a physical display and its usable work area.
type Display struct {
	ID      int
	Name    string
	Primary bool
	Bounds  Rect
	Usable  Rect
}

// Primary picks the primary display, falling back to the first one.
func Primary(displays []Display) (Display, bool) {
	for _, d := range displays {
		if d.Primary {
			return d, true
		}
	}
	if len(displays) == 0 {
		return Display{}, false
	}
	return displays[0], true
}

// CursorStyle selects the pointer shape shown over the client area.
type CursorStyle int

const (
	CursorArrow CursorStyle = iota
	CursorIbeam
	CursorCrosshair
	CursorClosedHand
	CursorOpenHand
	CursorResizeLeftRight
	CursorResizeUpDown
	CursorResizeAll
)

// Icon is a window icon in 0x00RRGGBB or 0xAARRGGBB pixels.
type Icon struct {
	Width  int
	Height int
	Pix    []uint32
}

// IconFromImage converts any image to an ARGB icon.
func IconFromImage(img image.Image) *Icon {
	b := img.Bounds()
	icon := &Icon{Width: b.Dx(), Height: b.Dy(), Pix: make([]uint32, b.Dx()*b.Dy())}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			icon.Pix[(y-b.Min.Y)*icon.Width+(x-b.Min.X)] = (a>>8)<<24 | (r>>8)<<16 | (g>>8)<<8 | bl>>8
		}
	}
	return icon
}

// Config carries the window creation parameters shared by every backend.
type Config struct {
	Title string
	// Width and Height are the client size in native pixels, already scaled.
	Width  int
	Height int

	Borderless   bool
	TitleBar     bool
	Resize       bool
	Topmost      bool
	Transparency bool
	NoFocus      bool

	MenuTheme MenuTheme
	Logger    *slog.Logger
}

// Frame is one presented image: the caller's buffer and where it goes in
// the client area.
type Frame struct {
	Source     buffer.View
	Place      scaler.Rect
	Background uint32
}

// Backend owns one native window.
type Backend interface {
	// Poll drains every pending native event without blocking.
	Poll() ([]Event, error)
	// Present uploads a frame. The source buffer is not retained.
	Present(f *Frame) error
	ClientSize() (width, height int)

	SetTitle(title string)
	SetPosition(x, y int)
	Position() (x, y int)
	SetCursorStyle(style CursorStyle)
	SetCursorVisible(visible bool)
	SetTopmost(topmost bool)
	SetIcon(icon *Icon)
	SetOpacity(opacity uint8)
	// SetMenus mirrors the attached menu trees.
	SetMenus(menus []*menu.Menu) error

	// Handle returns the native window handle, or 0.
	Handle() uintptr
	Close() error
}

// Driver connects to a window system and opens backends on it.
type Driver interface {
	Name() string
	Displays() ([]Display, error)
	Open(cfg Config) (Backend, error)
}

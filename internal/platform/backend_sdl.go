//go:build sdl || darwin

package platform

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/1broseidon/pixelwin/internal/mainthread"
	"github.com/1broseidon/pixelwin/internal/menu"
)

func init() {
	Register("sdl", openSDL)
}

// SDL must be driven from one thread, the process main thread on macOS.
func openSDL(logger *slog.Logger) (Driver, error) {
	if err := checkMainThread(runtime.GOOS, mainthread.Serving()); err != nil {
		return nil, err
	}
	d := &sdlDriver{logger: logger, windows: make(map[uint32]*sdlBackend)}
	th := mainthread.Default()
	if err := th.CallErr(d.init); err != nil {
		return nil, err
	}
	return OnThread(d, th), nil
}

type sdlDriver struct {
	logger *slog.Logger

	mu      sync.Mutex
	windows map[uint32]*sdlBackend
}

func (d *sdlDriver) init() error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("failed to initialize SDL2: %w", err)
	}
	sdl.StartTextInput()
	return nil
}

func (d *sdlDriver) Name() string { return "sdl" }

func (d *sdlDriver) Displays() ([]Display, error) {
	n, err := sdl.GetNumVideoDisplays()
	if err != nil {
		return nil, fmt.Errorf("failed to count displays: %w", err)
	}
	displays := make([]Display, 0, n)
	for i := 0; i < n; i++ {
		bounds, err := sdl.GetDisplayBounds(i)
		if err != nil {
			return nil, fmt.Errorf("failed to query display %d: %w", i, err)
		}
		usable, err := sdl.GetDisplayUsableBounds(i)
		if err != nil {
			usable = bounds
		}
		name, _ := sdl.GetDisplayName(i)
		displays = append(displays, Display{
			ID:      i,
			Name:    name,
			Primary: i == 0,
			Bounds:  sdlRect(bounds),
			Usable:  sdlRect(usable),
		})
	}
	return displays, nil
}

func sdlRect(r sdl.Rect) Rect {
	return Rect{X: int(r.X), Y: int(r.Y), Width: int(r.W), Height: int(r.H)}
}

func (d *sdlDriver) Open(cfg Config) (Backend, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = d.logger
	}

	flags := uint32(sdl.WINDOW_SHOWN)
	if cfg.Resize {
		flags |= sdl.WINDOW_RESIZABLE
	}
	if cfg.Borderless || !cfg.TitleBar {
		flags |= sdl.WINDOW_BORDERLESS
	}
	if cfg.Topmost {
		flags |= sdl.WINDOW_ALWAYS_ON_TOP
	}

	window, err := sdl.CreateWindow(cfg.Title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width), int32(cfg.Height), flags)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		renderer, err = sdl.CreateRenderer(window, -1, sdl.RENDERER_SOFTWARE)
	}
	if err != nil {
		_ = window.Destroy()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	id, err := window.GetID()
	if err != nil {
		_ = renderer.Destroy()
		_ = window.Destroy()
		return nil, fmt.Errorf("failed to read window id: %w", err)
	}

	b := &sdlBackend{
		d:        d,
		id:       id,
		window:   window,
		renderer: renderer,
		logger:   logger,
		width:    cfg.Width,
		height:   cfg.Height,
		cursors:  make(map[CursorStyle]*sdl.Cursor),
		soft:     newSoftSurface(cfg.MenuTheme),
	}
	d.mu.Lock()
	d.windows[id] = b
	d.mu.Unlock()

	logger.Debug("sdl window created", "window", id, "width", cfg.Width, "height", cfg.Height)
	return b, nil
}

// pump drains the SDL queue, which is shared by every window.
func (d *sdlDriver) pump() {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		d.dispatch(event)
	}
}

func (d *sdlDriver) lookup(id uint32) *sdlBackend {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.windows[id]
}

func (d *sdlDriver) dispatch(event sdl.Event) {
	switch ev := event.(type) {
	case *sdl.KeyboardEvent:
		if b := d.lookup(ev.WindowID); b != nil {
			k := KeyFromHIDUsage(uint32(ev.Keysym.Scancode))
			b.push(KeyEvent(k, ev.Type == sdl.KEYDOWN))
		}
	case *sdl.TextInputEvent:
		if b := d.lookup(ev.WindowID); b != nil {
			text := ev.Text[:]
			if i := bytes.IndexByte(text, 0); i >= 0 {
				text = text[:i]
			}
			for _, r := range string(text) {
				b.push(CharEvent(r))
			}
		}
	case *sdl.MouseMotionEvent:
		if b := d.lookup(ev.WindowID); b != nil {
			b.push(MoveEvent(int(ev.X), int(ev.Y)))
		}
	case *sdl.MouseButtonEvent:
		if b := d.lookup(ev.WindowID); b != nil {
			var button MouseButton
			switch ev.Button {
			case sdl.BUTTON_LEFT:
				button = ButtonLeft
			case sdl.BUTTON_MIDDLE:
				button = ButtonMiddle
			case sdl.BUTTON_RIGHT:
				button = ButtonRight
			default:
				return
			}
			b.push(ButtonEvent(button, ev.State == sdl.PRESSED, int(ev.X), int(ev.Y)))
		}
	case *sdl.MouseWheelEvent:
		if b := d.lookup(ev.WindowID); b != nil {
			b.push(ScrollEvent(float32(ev.X), float32(ev.Y)))
		}
	case *sdl.WindowEvent:
		b := d.lookup(ev.WindowID)
		if b == nil {
			return
		}
		switch ev.Event {
		case sdl.WINDOWEVENT_SIZE_CHANGED:
			b.width, b.height = int(ev.Data1), int(ev.Data2)
			b.push(ResizeEvent(b.width, b.height))
		case sdl.WINDOWEVENT_FOCUS_GAINED:
			b.push(FocusEvent(true))
		case sdl.WINDOWEVENT_FOCUS_LOST:
			b.push(FocusEvent(false))
		case sdl.WINDOWEVENT_CLOSE:
			b.push(CloseEvent())
		}
	case *sdl.QuitEvent:
		d.mu.Lock()
		defer d.mu.Unlock()
		for _, b := range d.windows {
			b.push(CloseEvent())
		}
	}
}

func (d *sdlDriver) forget(id uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.windows, id)
}

// sdlBackend streams the software surface into a texture each frame.
type sdlBackend struct {
	d        *sdlDriver
	id       uint32
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	texW     int
	texH     int
	logger   *slog.Logger

	width, height int
	pending       []Event
	closed        bool

	cursors map[CursorStyle]*sdl.Cursor

	soft *softSurface
}

var _ Backend = (*sdlBackend)(nil)

func (b *sdlBackend) push(ev Event) {
	b.pending = append(b.pending, ev)
}

func (b *sdlBackend) Poll() ([]Event, error) {
	if b.closed {
		return nil, ErrClosed
	}
	b.d.pump()
	events := b.pending
	b.pending = nil
	return b.soft.filter(events), nil
}

func (b *sdlBackend) Present(f *Frame) error {
	if b.closed {
		return ErrClosed
	}
	surf := b.soft.render(f, b.width, b.height)

	if b.texture == nil || b.texW != surf.Width || b.texH != surf.Height {
		if b.texture != nil {
			_ = b.texture.Destroy()
		}
		tex, err := b.renderer.CreateTexture(sdl.PIXELFORMAT_ARGB8888, sdl.TEXTUREACCESS_STREAMING,
			int32(surf.Width), int32(surf.Height))
		if err != nil {
			b.texture = nil
			return fmt.Errorf("failed to create texture: %w", err)
		}
		b.texture, b.texW, b.texH = tex, surf.Width, surf.Height
	}

	pixels, pitch, err := b.texture.Lock(nil)
	if err != nil {
		return fmt.Errorf("failed to lock texture: %w", err)
	}
	for y := 0; y < surf.Height; y++ {
		row := surf.Row(y)
		out := pixels[y*pitch : y*pitch+4*surf.Width]
		for x, p := range row {
			binary.LittleEndian.PutUint32(out[4*x:], p|0xFF000000)
		}
	}
	b.texture.Unlock()

	if err := b.renderer.Copy(b.texture, nil, nil); err != nil {
		return fmt.Errorf("failed to copy texture: %w", err)
	}
	b.renderer.Present()
	return nil
}

func (b *sdlBackend) ClientSize() (int, int) { return b.width, b.height }

func (b *sdlBackend) SetTitle(title string) { b.window.SetTitle(title) }

func (b *sdlBackend) SetPosition(x, y int) { b.window.SetPosition(int32(x), int32(y)) }

func (b *sdlBackend) Position() (int, int) {
	x, y := b.window.GetPosition()
	return int(x), int(y)
}

var sdlCursors = map[CursorStyle]sdl.SystemCursor{
	CursorArrow:           sdl.SYSTEM_CURSOR_ARROW,
	CursorIbeam:           sdl.SYSTEM_CURSOR_IBEAM,
	CursorCrosshair:       sdl.SYSTEM_CURSOR_CROSSHAIR,
	CursorClosedHand:      sdl.SYSTEM_CURSOR_HAND,
	CursorOpenHand:        sdl.SYSTEM_CURSOR_HAND,
	CursorResizeLeftRight: sdl.SYSTEM_CURSOR_SIZEWE,
	CursorResizeUpDown:    sdl.SYSTEM_CURSOR_SIZENS,
	CursorResizeAll:       sdl.SYSTEM_CURSOR_SIZEALL,
}

func (b *sdlBackend) SetCursorStyle(style CursorStyle) {
	cur, ok := b.cursors[style]
	if !ok {
		id, known := sdlCursors[style]
		if !known {
			id = sdl.SYSTEM_CURSOR_ARROW
		}
		cur = sdl.CreateSystemCursor(id)
		b.cursors[style] = cur
	}
	sdl.SetCursor(cur)
}

func (b *sdlBackend) SetCursorVisible(visible bool) {
	toggle := sdl.DISABLE
	if visible {
		toggle = sdl.ENABLE
	}
	if _, err := sdl.ShowCursor(toggle); err != nil {
		b.logger.Debug("failed to change cursor visibility", "error", err)
	}
}

// SetTopmost is only honoured at creation; SDL 2.0 before 2.0.16 has no
// call to change it afterwards.
func (b *sdlBackend) SetTopmost(topmost bool) {
	b.logger.Debug("topmost can only be set at window creation on sdl", "topmost", topmost)
}

func (b *sdlBackend) SetIcon(icon *Icon) {
	if icon == nil || len(icon.Pix) == 0 {
		return
	}
	surface, err := sdl.CreateRGBSurfaceFrom(unsafe.Pointer(&icon.Pix[0]),
		int32(icon.Width), int32(icon.Height), 32, icon.Width*4,
		0x00FF0000, 0x0000FF00, 0x000000FF, 0xFF000000)
	if err != nil {
		b.logger.Debug("failed to build icon surface", "error", err)
		return
	}
	defer surface.Free()
	b.window.SetIcon(surface)
}

func (b *sdlBackend) SetOpacity(opacity uint8) {
	if err := b.window.SetWindowOpacity(float32(opacity) / 255); err != nil {
		b.logger.Debug("failed to set opacity", "error", err)
	}
}

func (b *sdlBackend) SetMenus(menus []*menu.Menu) error {
	b.soft.setMenus(menus)
	return nil
}

// Handle returns the SDL_Window pointer.
func (b *sdlBackend) Handle() uintptr { return uintptr(unsafe.Pointer(b.window)) }

func (b *sdlBackend) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	b.d.forget(b.id)
	for _, cur := range b.cursors {
		sdl.FreeCursor(cur)
	}
	if b.texture != nil {
		_ = b.texture.Destroy()
	}
	_ = b.renderer.Destroy()
	if err := b.window.Destroy(); err != nil {
		return fmt.Errorf("failed to destroy window: %w", err)
	}
	b.logger.Debug("sdl window destroyed", "window", b.id)
	return nil
}

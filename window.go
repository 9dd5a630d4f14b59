// Package pixelwin shows a software-rendered 0x00RRGGBB pixel buffer in a
// native window and reports the keyboard and mouse input it receives.
//
// A program creates a Window, then loops: draw into a buffer, call
// UpdateWithBuffer, query input. Each update drains the window system's
// events, scales the buffer into the client area and paces the loop.
package pixelwin

import (
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/1broseidon/pixelwin/internal/buffer"
	"github.com/1broseidon/pixelwin/internal/config"
	"github.com/1broseidon/pixelwin/internal/keyhandler"
	"github.com/1broseidon/pixelwin/internal/menu"
	"github.com/1broseidon/pixelwin/internal/menubar"
	"github.com/1broseidon/pixelwin/internal/mouse"
	"github.com/1broseidon/pixelwin/internal/platform"
	"github.com/1broseidon/pixelwin/internal/rate"
	"github.com/1broseidon/pixelwin/internal/scaler"
	"github.com/1broseidon/pixelwin/key"
)

// Icon is a window icon in 0x00RRGGBB or 0xAARRGGBB pixels, row major.
type Icon = platform.Icon

// IconFromImage converts an image into an icon.
func IconFromImage(img image.Image) *Icon {
	return platform.IconFromImage(img)
}

// IconFromPixels wraps a width x height pixel slice. Pixels with a zero
// alpha byte are treated as opaque.
func IconFromPixels(width, height int, pix []uint32) (*Icon, error) {
	view, err := buffer.Check(pix, width, height, width)
	if err != nil {
		return nil, fmt.Errorf("invalid icon: %w", err)
	}
	out := make([]uint32, len(view.Pix))
	for i, p := range view.Pix {
		if p>>24 == 0 {
			p |= 0xFF000000
		}
		out[i] = p
	}
	return &Icon{Width: width, Height: height, Pix: out}, nil
}

// Window is one native window. All methods must be called from the
// goroutine that created it.
type Window struct {
	logger  *slog.Logger
	backend platform.Backend

	width, height    int
	scale            int
	scaleMode        ScaleMode
	clientW, clientH int
	background       uint32

	open        bool
	active      bool
	shouldClose bool
	destroyed   bool

	keys    *keyhandler.Handler
	mouse   mouse.Handler
	limiter *rate.Limiter

	menus       menu.List
	menuPressed []int

	now func() time.Time
}

// New opens a window for a width x height buffer.
func New(title string, width, height int, opts WindowOptions) (*Window, error) {
	if width <= 0 || height <= 0 {
		return nil, newError(ErrWindowCreate, "new", fmt.Errorf("invalid buffer size %dx%d", width, height))
	}
	cfg, err := loadConfig(opts.Config)
	if err != nil {
		return nil, newError(ErrWindowCreate, "new", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = newLogger(cfg)
	}
	name := cfg.Backend
	if opts.Backend != "" {
		name = opts.Backend
	}
	d, err := openDriver(name, cfg, logger)
	if err != nil {
		return nil, newError(ErrWindowCreate, "new", err)
	}
	return newWithDriver(d, cfg, logger, title, width, height, opts)
}

func newWithDriver(d platform.Driver, cfg *config.Config, logger *slog.Logger, title string, width, height int, opts WindowOptions) (*Window, error) {
	if width <= 0 || height <= 0 {
		return nil, newError(ErrWindowCreate, "new", fmt.Errorf("invalid buffer size %dx%d", width, height))
	}

	scale := opts.Scale.factor()
	if opts.Scale == ScaleFitScreen {
		scale = fitScale(d, logger, width, height, cfg.FitScreenRatio)
	}

	b, err := d.Open(platform.Config{
		Title:        title,
		Width:        width * scale,
		Height:       height * scale,
		Borderless:   opts.Borderless,
		TitleBar:     opts.Title,
		Resize:       opts.Resize,
		Topmost:      opts.Topmost,
		Transparency: opts.Transparency,
		NoFocus:      opts.None,
		MenuTheme:    menuTheme(cfg.Menu),
		Logger:       logger,
	})
	if err != nil {
		return nil, newError(ErrWindowCreate, "new", fmt.Errorf("%s: %w", d.Name(), err))
	}

	keys := keyhandler.New()
	keys.SetRepeatDelay(time.Duration(cfg.KeyRepeat.Delay))
	keys.SetRepeatRate(time.Duration(cfg.KeyRepeat.Rate))

	limiter := rate.New(0)
	limiter.SetPeriod(cfg.UpdatePeriod())

	w := &Window{
		logger:    logger,
		backend:   b,
		width:     width,
		height:    height,
		scale:     scale,
		scaleMode: opts.ScaleMode,
		open:      true,
		keys:      keys,
		limiter:   limiter,
		now:       time.Now,
	}
	w.clientW, w.clientH = b.ClientSize()
	logger.Debug("window opened",
		"backend", d.Name(),
		"buffer", fmt.Sprintf("%dx%d", width, height),
		"scale", scale,
		"client", fmt.Sprintf("%dx%d", w.clientW, w.clientH),
	)
	return w, nil
}

func fitScale(d platform.Driver, logger *slog.Logger, width, height int, ratio float64) int {
	displays, err := d.Displays()
	if err != nil {
		logger.Warn("failed to query displays, using scale 1", "error", err)
		return 1
	}
	primary, ok := platform.Primary(displays)
	if !ok {
		return 1
	}
	u := primary.Usable
	if u.Width <= 0 || u.Height <= 0 {
		u = primary.Bounds
	}
	return scaler.FitScale(width, height, u.Width, u.Height, ratio)
}

func menuTheme(c config.MenuColors) menubar.Theme {
	return menubar.Theme{
		Background:    uint32(c.Background),
		Foreground:    uint32(c.Foreground),
		Highlight:     uint32(c.Highlight),
		HighlightText: uint32(c.HighlightText),
		Disabled:      uint32(c.Disabled),
		Border:        uint32(c.Border),
	}
}

// IsOpen reports false once the window was closed by the user or a
// requested close was observed by an update.
func (w *Window) IsOpen() bool { return w.open }

// IsActive reports whether the window has keyboard focus.
func (w *Window) IsActive() bool { return w.active }

// UpdateWithBuffer presents a buffer whose rows are width pixels apart.
func (w *Window) UpdateWithBuffer(buf []uint32, width, height int) error {
	return w.UpdateWithBufferStride(buf, width, height, width)
}

// UpdateWithBufferStride drains events, presents buf and waits out the
// rest of the frame period. width and height must match the size the
// window was created with. Nothing is drawn when buf is rejected. Once the
// window is no longer open, updates do nothing.
func (w *Window) UpdateWithBufferStride(buf []uint32, width, height, stride int) error {
	if w.destroyed {
		return newError(ErrUpdateFailed, "update", platform.ErrClosed)
	}
	src, err := buffer.CheckFor(buf, width, height, stride, w.width, w.height)
	if err != nil {
		return newError(ErrUpdateFailed, "update", err)
	}
	if !w.open {
		return nil
	}

	w.pump()

	err = w.backend.Present(&platform.Frame{
		Source:     src,
		Place:      w.placement(),
		Background: w.background,
	})
	if err != nil {
		return newError(ErrUpdateFailed, "update", err)
	}
	w.limiter.Wait()
	return nil
}

// Update drains events and paces without presenting anything.
func (w *Window) Update() error {
	if w.destroyed {
		return newError(ErrUpdateFailed, "update", platform.ErrClosed)
	}
	if !w.open {
		return nil
	}
	w.pump()
	w.limiter.Wait()
	return nil
}

func (w *Window) pump() {
	w.keys.BeginFrame()
	w.mouse.BeginFrame()

	events, err := w.backend.Poll()
	if err != nil {
		w.logger.Error("event pump failed, closing window", "error", err)
		w.open = false
	}

	now := w.now()
	for _, ev := range events {
		w.handle(ev, now)
	}
	w.keys.EndFrame(now)

	if w.shouldClose {
		w.open = false
	}
}

func (w *Window) handle(ev platform.Event, now time.Time) {
	switch ev.Type {
	case platform.EventKey:
		w.keys.SetKeyState(ev.Key, ev.Down, now)
	case platform.EventChar:
		w.keys.Char(ev.Rune)
	case platform.EventMouseMove:
		w.mouse.Move(ev.X, ev.Y)
	case platform.EventMouseButton:
		w.mouse.Move(ev.X, ev.Y)
		w.mouse.SetButton(mouse.Button(ev.Button), ev.Down)
	case platform.EventScroll:
		w.mouse.Scroll(ev.DX, ev.DY)
	case platform.EventFocus:
		w.active = ev.Focused
		if !ev.Focused {
			w.keys.ReleaseAll()
			w.mouse.ReleaseAll()
		}
	case platform.EventResize:
		w.clientW, w.clientH = ev.Width, ev.Height
	case platform.EventClose:
		w.open = false
	case platform.EventMenu:
		w.menuPressed = append(w.menuPressed, ev.MenuID)
	}
}

func (w *Window) placement() scaler.Rect {
	return scaler.Place(w.scaleMode, w.width, w.height, w.scale, w.clientW, w.clientH)
}

// Size returns the client area in native pixels.
func (w *Window) Size() (int, int) { return w.clientW, w.clientH }

func (w *Window) SetPosition(x, y int) {
	if !w.destroyed {
		w.backend.SetPosition(x, y)
	}
}

// Position returns the top-left corner of the window on the screen.
func (w *Window) Position() (int, int) {
	if w.destroyed {
		return 0, 0
	}
	return w.backend.Position()
}

func (w *Window) SetTitle(title string) {
	if !w.destroyed {
		w.backend.SetTitle(title)
	}
}

// SetBackgroundColor sets the color of client pixels the buffer does not
// cover.
func (w *Window) SetBackgroundColor(r, g, b uint8) {
	w.background = buffer.RGB(r, g, b)
}

func (w *Window) SetCursorStyle(style CursorStyle) {
	if !w.destroyed {
		w.backend.SetCursorStyle(style)
	}
}

func (w *Window) SetCursorVisibility(visible bool) {
	if !w.destroyed {
		w.backend.SetCursorVisible(visible)
	}
}

// Topmost keeps the window above others.
func (w *Window) Topmost(topmost bool) {
	if !w.destroyed {
		w.backend.SetTopmost(topmost)
	}
}

func (w *Window) SetIcon(icon *Icon) {
	if !w.destroyed && icon != nil {
		w.backend.SetIcon(icon)
	}
}

// SetTransparency sets the window opacity, 255 being opaque.
func (w *Window) SetTransparency(opacity uint8) {
	if !w.destroyed {
		w.backend.SetOpacity(opacity)
	}
}

// Keys returns the keys currently held.
func (w *Window) Keys() []key.Key { return w.keys.Keys() }

// KeysPressed returns the keys pressed during the last update.
func (w *Window) KeysPressed(repeat KeyRepeat) []key.Key {
	return w.keys.KeysPressed(bool(repeat))
}

// KeysReleased returns the keys released during the last update.
func (w *Window) KeysReleased() []key.Key { return w.keys.KeysReleased() }

func (w *Window) IsKeyDown(k key.Key) bool { return w.keys.IsKeyDown(k) }

func (w *Window) IsKeyPressed(k key.Key, repeat KeyRepeat) bool {
	return w.keys.IsKeyPressed(k, bool(repeat))
}

func (w *Window) IsKeyReleased(k key.Key) bool { return w.keys.IsKeyReleased(k) }

func (w *Window) SetKeyRepeatDelay(d time.Duration) { w.keys.SetRepeatDelay(d) }

func (w *Window) SetKeyRepeatRate(d time.Duration) { w.keys.SetRepeatRate(d) }

// SetInputCallback installs the receiver of typed characters. It runs
// inside the update that drains them. A nil cb removes it.
func (w *Window) SetInputCallback(cb InputCallback) {
	if cb == nil {
		w.keys.SetCallback(nil, nil)
		return
	}
	w.keys.SetCallback(cb, func(p any) {
		w.logger.Error("input callback panicked", "panic", p)
	})
}

// MousePos returns the cursor position in buffer pixels.
func (w *Window) MousePos(mode MouseMode) (x, y float32, ok bool) {
	return w.mouse.Pos(mode, w.placement(), w.width, w.height)
}

// UnscaledMousePos returns the cursor position in client pixels.
func (w *Window) UnscaledMousePos(mode MouseMode) (x, y float32, ok bool) {
	return w.mouse.Unscaled(mode, w.clientW, w.clientH)
}

func (w *Window) MouseDown(b MouseButton) bool { return w.mouse.Down(b) }

// ScrollWheel returns the wheel movement since the previous call.
func (w *Window) ScrollWheel() (dx, dy float32, ok bool) {
	return w.mouse.TakeScroll()
}

// LimitUpdateRate sets the minimum time between updates. Nil disables
// pacing.
func (w *Window) LimitUpdateRate(period *time.Duration) {
	w.limiter.SetPeriod(period)
}

// SetShouldClose requests IsOpen to turn false at the next update.
func (w *Window) SetShouldClose(should bool) {
	w.shouldClose = should
}

// Handle returns the native window handle, or 0 without one.
func (w *Window) Handle() uintptr {
	if w.destroyed {
		return 0
	}
	return w.backend.Handle()
}

// AddMenu attaches a copy of m and returns its handle.
func (w *Window) AddMenu(m *Menu) (MenuHandle, error) {
	if m == nil {
		return 0, fmt.Errorf("add menu: nil menu")
	}
	if w.menus.HasName(m.m.Name) {
		return 0, newError(ErrMenuExists, "add menu", fmt.Errorf("%q", m.m.Name))
	}
	h, _ := w.menus.Attach(m.m)
	w.syncMenus()
	return h, nil
}

// RemoveMenu detaches a menu. Unknown handles are ignored.
func (w *Window) RemoveMenu(h MenuHandle) {
	if w.menus.Detach(h) {
		w.syncMenus()
	}
}

// Menus returns the attached menu handles in attach order.
func (w *Window) Menus() []MenuHandle { return w.menus.Handles() }

// IsMenuPressed returns the id of the next unreported menu activation.
func (w *Window) IsMenuPressed() (int, bool) {
	if len(w.menuPressed) == 0 {
		return 0, false
	}
	id := w.menuPressed[0]
	w.menuPressed = w.menuPressed[1:]
	return id, true
}

func (w *Window) syncMenus() {
	if w.destroyed {
		return
	}
	if err := w.backend.SetMenus(w.menus.Menus()); err != nil {
		w.logger.Warn("failed to update menus", "error", err)
	}
}

// Close destroys the native window. It is safe to call more than once.
func (w *Window) Close() error {
	if w.destroyed {
		return nil
	}
	w.destroyed = true
	w.open = false
	if err := w.backend.Close(); err != nil {
		return fmt.Errorf("failed to close window: %w", err)
	}
	return nil
}

package platform

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/1broseidon/pixelwin/internal/buffer"
	"github.com/1broseidon/pixelwin/internal/menu"
	"github.com/1broseidon/pixelwin/key"
)

func init() {
	Register("headless", func(*slog.Logger) (Driver, error) {
		return NewHeadlessDriver(1920, 1080), nil
	})
}

// HeadlessDriver opens in-memory windows on a virtual screen. Events are
// injected by the owner and presented frames can be read back.
type HeadlessDriver struct {
	Screen Rect
	Usable Rect

	mu      sync.Mutex
	opened  []*HeadlessBackend
	failErr error
}

var _ Driver = (*HeadlessDriver)(nil)

// NewHeadlessDriver creates a driver with a width x height virtual screen.
func NewHeadlessDriver(width, height int) *HeadlessDriver {
	screen := Rect{Width: width, Height: height}
	return &HeadlessDriver{Screen: screen, Usable: screen}
}

func (d *HeadlessDriver) Name() string { return "headless" }

func (d *HeadlessDriver) Displays() ([]Display, error) {
	return []Display{{ID: 0, Name: "virtual", Primary: true, Bounds: d.Screen, Usable: d.Usable}}, nil
}

// FailOpen makes the next Open calls fail with err.
func (d *HeadlessDriver) FailOpen(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failErr = err
}

func (d *HeadlessDriver) Open(cfg Config) (Backend, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failErr != nil {
		return nil, d.failErr
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	b := &HeadlessBackend{
		cfg:           cfg,
		logger:        logger,
		width:         cfg.Width,
		height:        cfg.Height,
		title:         cfg.Title,
		topmost:       cfg.Topmost,
		cursorVisible: true,
		opacity:       0xFF,
		soft:          newSoftSurface(cfg.MenuTheme),
	}
	if !cfg.NoFocus {
		b.pending = append(b.pending, FocusEvent(true))
	}
	d.opened = append(d.opened, b)
	return b, nil
}

// Last returns the most recently opened backend.
func (d *HeadlessDriver) Last() *HeadlessBackend {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.opened) == 0 {
		return nil
	}
	return d.opened[len(d.opened)-1]
}

// HeadlessBackend is an in-memory window.
type HeadlessBackend struct {
	cfg    Config
	logger *slog.Logger

	mu            sync.Mutex
	width, height int
	x, y          int
	title         string
	cursor        CursorStyle
	cursorVisible bool
	topmost       bool
	icon          *Icon
	opacity       uint8
	menus         []*menu.Menu
	pending       []Event
	pollErr       error
	closed        bool
	presents      int

	soft *softSurface
}

var _ Backend = (*HeadlessBackend)(nil)

// Inject queues native events for the next Poll.
func (b *HeadlessBackend) Inject(events ...Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = append(b.pending, events...)
}

func (b *HeadlessBackend) InjectKey(k key.Key, down bool) {
	b.Inject(KeyEvent(k, down))
}

// Resize changes the client size as a user drag would.
func (b *HeadlessBackend) Resize(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.width, b.height = width, height
	b.pending = append(b.pending, ResizeEvent(width, height))
}

// FailPoll makes the next Poll return err, as a broken connection would.
func (b *HeadlessBackend) FailPoll(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pollErr = err
}

func (b *HeadlessBackend) Poll() ([]Event, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, ErrClosed
	}
	if err := b.pollErr; err != nil {
		b.pollErr = nil
		return nil, err
	}
	events := b.pending
	b.pending = nil
	return b.soft.filter(events), nil
}

func (b *HeadlessBackend) Present(f *Frame) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}
	b.soft.render(f, b.width, b.height)
	b.presents++
	return nil
}

// Pixel reads back the last presented client pixel at (x, y).
func (b *HeadlessBackend) Pixel(x, y int) uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.soft.surf.At(x, y)
}

// Surface returns a copy of the last presented client surface.
func (b *HeadlessBackend) Surface() buffer.View {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := b.soft.surf
	cp := buffer.View{Pix: append([]uint32(nil), s.Pix...), Width: s.Width, Height: s.Height, Stride: s.Stride}
	return cp
}

// Presents counts successful Present calls.
func (b *HeadlessBackend) Presents() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.presents
}

func (b *HeadlessBackend) ClientSize() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

func (b *HeadlessBackend) SetTitle(title string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.title = title
}

func (b *HeadlessBackend) Title() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.title
}

func (b *HeadlessBackend) SetPosition(x, y int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.x, b.y = x, y
}

func (b *HeadlessBackend) Position() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.x, b.y
}

func (b *HeadlessBackend) SetCursorStyle(style CursorStyle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursor = style
}

func (b *HeadlessBackend) CursorStyle() CursorStyle {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursor
}

func (b *HeadlessBackend) SetCursorVisible(visible bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorVisible = visible
}

func (b *HeadlessBackend) SetTopmost(topmost bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.topmost = topmost
}

func (b *HeadlessBackend) Topmost() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.topmost
}

func (b *HeadlessBackend) SetIcon(icon *Icon) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.icon = icon
}

func (b *HeadlessBackend) SetOpacity(opacity uint8) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.opacity = opacity
}

func (b *HeadlessBackend) SetMenus(menus []*menu.Menu) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.menus = menus
	b.soft.setMenus(menus)
	return nil
}

// MenuStripHeight is the height of the drawn menu strip, zero without menus.
func (b *HeadlessBackend) MenuStripHeight() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.soft.bar.Height()
}

func (b *HeadlessBackend) Handle() uintptr { return 0 }

func (b *HeadlessBackend) Closed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

func (b *HeadlessBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	b.logger.Debug("headless window closed", "title", b.title)
	return nil
}

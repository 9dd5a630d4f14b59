package platform

import (
	"errors"

	"github.com/1broseidon/pixelwin/internal/mainthread"
	"github.com/1broseidon/pixelwin/internal/menu"
)

// ErrMainThreadRequired is returned on macOS when the program did not hand
// its main thread over with pixelwin.Run.
var ErrMainThreadRequired = errors.New("windows on macOS must be created inside pixelwin.Run")

// checkMainThread fails on darwin unless the process main thread is serving
// calls. Cocoa refuses windows created on any other thread.
func checkMainThread(goos string, serving bool) error {
	if goos == "darwin" && !serving {
		return ErrMainThreadRequired
	}
	return nil
}

// OnThread wraps d so that it and every backend it opens run on th.
func OnThread(d Driver, th *mainthread.Thread) Driver {
	return &threadDriver{d: d, th: th}
}

type threadDriver struct {
	d  Driver
	th *mainthread.Thread
}

func (t *threadDriver) Name() string { return t.d.Name() }

func (t *threadDriver) Displays() ([]Display, error) {
	var displays []Display
	err := t.th.CallErr(func() error {
		var err error
		displays, err = t.d.Displays()
		return err
	})
	return displays, err
}

func (t *threadDriver) Open(cfg Config) (Backend, error) {
	var b Backend
	err := t.th.CallErr(func() error {
		var err error
		b, err = t.d.Open(cfg)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &threadBackend{b: b, th: t.th}, nil
}

type threadBackend struct {
	b  Backend
	th *mainthread.Thread
}

func (t *threadBackend) Poll() ([]Event, error) {
	var events []Event
	err := t.th.CallErr(func() error {
		var err error
		events, err = t.b.Poll()
		return err
	})
	return events, err
}

func (t *threadBackend) Present(f *Frame) error {
	return t.th.CallErr(func() error { return t.b.Present(f) })
}

func (t *threadBackend) ClientSize() (w, h int) {
	t.th.Call(func() { w, h = t.b.ClientSize() })
	return w, h
}

func (t *threadBackend) SetTitle(title string) {
	t.th.Call(func() { t.b.SetTitle(title) })
}

func (t *threadBackend) SetPosition(x, y int) {
	t.th.Call(func() { t.b.SetPosition(x, y) })
}

func (t *threadBackend) Position() (x, y int) {
	t.th.Call(func() { x, y = t.b.Position() })
	return x, y
}

func (t *threadBackend) SetCursorStyle(style CursorStyle) {
	t.th.Call(func() { t.b.SetCursorStyle(style) })
}

func (t *threadBackend) SetCursorVisible(visible bool) {
	t.th.Call(func() { t.b.SetCursorVisible(visible) })
}

func (t *threadBackend) SetTopmost(topmost bool) {
	t.th.Call(func() { t.b.SetTopmost(topmost) })
}

func (t *threadBackend) SetIcon(icon *Icon) {
	t.th.Call(func() { t.b.SetIcon(icon) })
}

func (t *threadBackend) SetOpacity(opacity uint8) {
	t.th.Call(func() { t.b.SetOpacity(opacity) })
}

func (t *threadBackend) SetMenus(menus []*menu.Menu) error {
	return t.th.CallErr(func() error { return t.b.SetMenus(menus) })
}

func (t *threadBackend) Handle() (h uintptr) {
	t.th.Call(func() { h = t.b.Handle() })
	return h
}

func (t *threadBackend) Close() error {
	return t.th.CallErr(func() error { return t.b.Close() })
}

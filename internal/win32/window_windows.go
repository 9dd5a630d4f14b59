//go:build windows

package win32

import (
	"fmt"
	"os"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/1broseidon/pixelwin/internal/buffer"
	"github.com/1broseidon/pixelwin/internal/menu"
	"github.com/1broseidon/pixelwin/internal/scaler"
	"github.com/1broseidon/pixelwin/key"
)

// Mouse buttons reported to a Sink.
const (
	ButtonLeft = iota
	ButtonMiddle
	ButtonRight
)

// Sink receives the input a window's procedure decodes.
type Sink interface {
	Key(k key.Key, down bool)
	Char(r rune)
	Move(x, y int)
	Button(button int, down bool, x, y int)
	Scroll(dx, dy float32)
	Focus(focused bool)
	Resize(width, height int)
	CloseRequested()
	Command(id int)
}

// Options describes a top-level window. Width and Height are the client
// size.
type Options struct {
	Title        string
	Width        int
	Height       int
	Borderless   bool
	TitleBar     bool
	Resize       bool
	Topmost      bool
	Transparency bool
	NoFocus      bool
}

const (
	cwUseDefault = 0x80000000
	wmSetIcon    = 0x0080
	iconSmall    = 0
	iconBig      = 1
	gwlExStyle   = ^uintptr(19) // -20
)

var (
	classOnce sync.Once
	classErr  error
	className *uint16

	// Window procedures run on the thread that owns every window, so this
	// map is only touched from that thread.
	byHandle = map[windows.HWND]*Window{}
)

func registerClass() error {
	classOnce.Do(func() {
		className, classErr = windows.UTF16PtrFromString(fmt.Sprintf("pixelwin_%d", os.Getpid()))
		if classErr != nil {
			return
		}
		wc := wndClassEx{
			cbSize:        uint32(unsafe.Sizeof(wndClassEx{})),
			style:         csOwnDC | csHRedraw | csVRedraw,
			lpfnWndProc:   windows.NewCallback(wndProc),
			hInstance:     moduleHandle(),
			hCursor:       loadCursor(idcArrow),
			lpszClassName: className,
		}
		if ret, _, err := procRegisterClassEx.Call(uintptr(unsafe.Pointer(&wc))); ret == 0 {
			classErr = callErr("RegisterClassExW", err)
		}
	})
	return classErr
}

// Window is a native window presenting 0x00RRGGBB frames with StretchDIBits.
type Window struct {
	hwnd    windows.HWND
	hdc     uintptr
	sink    Sink
	exStyle uint32

	cursor       windows.Handle
	cursorHidden bool
	icon         windows.Handle

	menuBar  uintptr
	commands map[uint16]int

	highSurrogate uint16
	destroyed     bool
}

// Create opens and shows a window whose input goes to sink.
func Create(opts Options, sink Sink) (*Window, error) {
	if err := registerClass(); err != nil {
		return nil, err
	}

	var style uint32
	switch {
	case opts.Borderless:
		style = wsPopup
	case !opts.TitleBar:
		style = wsPopup | wsBorder
	default:
		style = wsCaption | wsSysMenu | wsMinimizeBox
	}
	if opts.Resize {
		style |= wsThickFrame | wsMaximizeBox
	}
	var exStyle uint32
	if opts.Topmost {
		exStyle |= wsExTopmost
	}
	if opts.Transparency {
		exStyle |= wsExLayered
	}
	if opts.NoFocus {
		exStyle |= wsExNoActivate
	}

	r := rect{right: int32(opts.Width), bottom: int32(opts.Height)}
	procAdjustWindowRectEx.Call(uintptr(unsafe.Pointer(&r)), uintptr(style), 0, uintptr(exStyle))

	title, err := windows.UTF16PtrFromString(opts.Title)
	if err != nil {
		return nil, fmt.Errorf("invalid title: %w", err)
	}
	ret, _, callErrno := procCreateWindowEx.Call(
		uintptr(exStyle),
		uintptr(unsafe.Pointer(className)),
		uintptr(unsafe.Pointer(title)),
		uintptr(style),
		cwUseDefault,
		cwUseDefault,
		uintptr(r.right-r.left),
		uintptr(r.bottom-r.top),
		0,
		0,
		uintptr(moduleHandle()),
		0,
	)
	if ret == 0 {
		return nil, callErr("CreateWindowExW", callErrno)
	}

	w := &Window{
		hwnd:     windows.HWND(ret),
		sink:     sink,
		exStyle:  exStyle,
		cursor:   loadCursor(idcArrow),
		commands: make(map[uint16]int),
	}
	byHandle[w.hwnd] = w

	dc, _, _ := procGetDC.Call(uintptr(w.hwnd))
	if dc == 0 {
		w.Destroy()
		return nil, fmt.Errorf("GetDC failed")
	}
	w.hdc = dc

	if opts.Transparency {
		procSetLayeredWindowAttributes.Call(uintptr(w.hwnd), 0, 255, lwaAlpha)
	}

	show := uintptr(swShow)
	if opts.NoFocus {
		show = swShowNoActivate
	}
	procShowWindow.Call(uintptr(w.hwnd), show)
	return w, nil
}

// Pump dispatches every queued message of the calling thread.
func Pump() {
	var m msg
	for {
		ret, _, _ := procPeekMessage.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0, pmRemove)
		if ret == 0 {
			return
		}
		procTranslateMessage.Call(uintptr(unsafe.Pointer(&m)))
		procDispatchMessage.Call(uintptr(unsafe.Pointer(&m)))
	}
}

func wndProc(hwnd, message, wParam, lParam uintptr) uintptr {
	w := byHandle[windows.HWND(hwnd)]
	if w == nil {
		ret, _, _ := procDefWindowProc.Call(hwnd, message, wParam, lParam)
		return ret
	}

	switch message {
	case wmClose:
		w.sink.CloseRequested()
		return 0
	case wmDestroy:
		w.destroyed = true
		delete(byHandle, w.hwnd)
		return 0
	case wmSize:
		w.sink.Resize(int(loword(lParam)), int(hiword(lParam)))
		return 0
	case wmSetFocus:
		w.sink.Focus(true)
		return 0
	case wmKillFocus:
		w.sink.Focus(false)
		return 0
	case wmPaint:
		procValidateRect.Call(hwnd, 0)
		return 0
	case wmEraseBkgnd:
		return 1
	case wmSetCursor:
		if loword(lParam) == htClient {
			if w.cursorHidden {
				procSetCursor.Call(0)
			} else {
				procSetCursor.Call(uintptr(w.cursor))
			}
			return 1
		}
	case wmKeyDown, wmKeyUp:
		w.sink.Key(KeyFromMessage(wParam, lParam, mapVirtualKey), message == wmKeyDown)
		return 0
	case wmSysKeyDown, wmSysKeyUp:
		// Alt combinations still reach DefWindowProc for Alt+F4 and menu
		// activation.
		w.sink.Key(KeyFromMessage(wParam, lParam, mapVirtualKey), message == wmSysKeyDown)
	case wmChar:
		w.char(uint16(wParam))
		return 0
	case wmMouseMove:
		w.sink.Move(getX(lParam), getY(lParam))
		return 0
	case wmLButtonDown, wmLButtonUp:
		w.sink.Button(ButtonLeft, message == wmLButtonDown, getX(lParam), getY(lParam))
		return 0
	case wmMButtonDown, wmMButtonUp:
		w.sink.Button(ButtonMiddle, message == wmMButtonDown, getX(lParam), getY(lParam))
		return 0
	case wmRButtonDown, wmRButtonUp:
		w.sink.Button(ButtonRight, message == wmRButtonDown, getX(lParam), getY(lParam))
		return 0
	case wmMouseWheel:
		w.sink.Scroll(0, float32(int16(hiword(wParam)))/wheelDelta)
		return 0
	case wmMouseHWheel:
		w.sink.Scroll(float32(int16(hiword(wParam)))/wheelDelta, 0)
		return 0
	case wmCommand:
		if hiword(wParam) == 0 && lParam == 0 {
			if id, ok := w.commands[loword(wParam)]; ok {
				w.sink.Command(id)
			}
			return 0
		}
	}
	ret, _, _ := procDefWindowProc.Call(hwnd, message, wParam, lParam)
	return ret
}

// char joins UTF-16 surrogate pairs and drops control characters.
func (w *Window) char(unit uint16) {
	var r rune
	switch {
	case unit >= 0xD800 && unit < 0xDC00:
		w.highSurrogate = unit
		return
	case unit >= 0xDC00 && unit < 0xE000:
		if w.highSurrogate == 0 {
			return
		}
		r = (rune(w.highSurrogate)-0xD800)<<10 + (rune(unit) - 0xDC00) + 0x10000
		w.highSurrogate = 0
	default:
		r = rune(unit)
	}
	if r < 0x20 || r == 0x7F {
		return
	}
	w.sink.Char(r)
}

// Destroyed reports whether the system destroyed the window.
func (w *Window) Destroyed() bool { return w.destroyed }

func (w *Window) Handle() uintptr { return uintptr(w.hwnd) }

func (w *Window) ClientSize() (int, int) {
	var r rect
	procGetClientRect.Call(uintptr(w.hwnd), uintptr(unsafe.Pointer(&r)))
	return int(r.right - r.left), int(r.bottom - r.top)
}

// Present stretches src into place and paints bg over the rest of the
// client area.
func (w *Window) Present(src buffer.View, place scaler.Rect, bg uint32) error {
	cw, ch := w.ClientSize()
	w.fillOutside(place, cw, ch, bg)
	if place.Empty() || src.Width == 0 || src.Height == 0 {
		return nil
	}

	bmi := bitmapInfo{
		header: bitmapInfoHeader{
			width:       int32(src.Stride),
			height:      -int32(src.Height),
			planes:      1,
			bitCount:    32,
			compression: biBitfields,
		},
		masks: [3]uint32{0xFF0000, 0x00FF00, 0x0000FF},
	}
	bmi.header.size = uint32(unsafe.Sizeof(bmi.header))

	ret, _, err := procStretchDIBits.Call(
		w.hdc,
		uintptr(place.X), uintptr(place.Y), uintptr(place.Width), uintptr(place.Height),
		0, 0, uintptr(src.Width), uintptr(src.Height),
		uintptr(unsafe.Pointer(&src.Pix[0])),
		uintptr(unsafe.Pointer(&bmi)),
		dibRGBColors,
		srcCopy,
	)
	if ret == 0 {
		return callErr("StretchDIBits", err)
	}
	return nil
}

func (w *Window) fillOutside(place scaler.Rect, cw, ch int, bg uint32) {
	colorRef := (bg&0xFF)<<16 | bg&0xFF00 | (bg>>16)&0xFF
	brush, _, _ := procCreateSolidBrush.Call(uintptr(colorRef))
	if brush == 0 {
		return
	}
	defer procDeleteObject.Call(brush)

	x0, y0 := max(place.X, 0), max(place.Y, 0)
	x1, y1 := min(place.X+place.Width, cw), min(place.Y+place.Height, ch)
	bands := []rect{
		{0, 0, int32(cw), int32(y0)},
		{0, int32(y1), int32(cw), int32(ch)},
		{0, int32(y0), int32(x0), int32(y1)},
		{int32(x1), int32(y0), int32(cw), int32(y1)},
	}
	for _, r := range bands {
		if r.right > r.left && r.bottom > r.top {
			procFillRect.Call(w.hdc, uintptr(unsafe.Pointer(&r)), brush)
		}
	}
}

func (w *Window) SetTitle(title string) {
	p, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return
	}
	procSetWindowText.Call(uintptr(w.hwnd), uintptr(unsafe.Pointer(p)))
}

// Move places the outer frame's top-left corner.
func (w *Window) Move(x, y int) {
	procSetWindowPos.Call(uintptr(w.hwnd), 0, uintptr(x), uintptr(y), 0, 0,
		swpNoSize|swpNoZOrder|swpNoActivate)
}

func (w *Window) Position() (int, int) {
	var r rect
	procGetWindowRect.Call(uintptr(w.hwnd), uintptr(unsafe.Pointer(&r)))
	return int(r.left), int(r.top)
}

func (w *Window) SetTopmost(topmost bool) {
	after := hwndNoTopmost
	if topmost {
		after = hwndTopmost
	}
	procSetWindowPos.Call(uintptr(w.hwnd), after, 0, 0, 0, 0, swpNoMove|swpNoSize|swpNoActivate)
}

// Cursor ids accepted by SetCursor.
const (
	CursorArrow     = idcArrow
	CursorIbeam     = idcIbeam
	CursorCrosshair = idcCross
	CursorHand      = idcHand
	CursorSizeWE    = idcSizeWE
	CursorSizeNS    = idcSizeNS
	CursorSizeAll   = idcSizeAll
)

// SetCursor loads a system cursor for the client area.
func (w *Window) SetCursor(id uintptr) {
	w.cursor = loadCursor(id)
	if !w.cursorHidden {
		procSetCursor.Call(uintptr(w.cursor))
	}
}

func (w *Window) ShowCursor(visible bool) {
	w.cursorHidden = !visible
	if visible {
		procSetCursor.Call(uintptr(w.cursor))
	} else {
		procSetCursor.Call(0)
	}
}

// SetIcon replaces the title bar and taskbar icon with an ARGB image.
func (w *Window) SetIcon(width, height int, argb []uint32) error {
	if width <= 0 || height <= 0 || len(argb) < width*height {
		return fmt.Errorf("invalid icon size %dx%d", width, height)
	}
	color, _, _ := procCreateBitmap.Call(uintptr(width), uintptr(height), 1, 32, uintptr(unsafe.Pointer(&argb[0])))
	if color == 0 {
		return fmt.Errorf("CreateBitmap failed for icon color")
	}
	defer procDeleteObject.Call(color)
	mask, _, _ := procCreateBitmap.Call(uintptr(width), uintptr(height), 1, 1, 0)
	if mask == 0 {
		return fmt.Errorf("CreateBitmap failed for icon mask")
	}
	defer procDeleteObject.Call(mask)

	info := iconInfo{fIcon: 1, hbmMask: windows.Handle(mask), hbmColor: windows.Handle(color)}
	icon, _, err := procCreateIconIndirect.Call(uintptr(unsafe.Pointer(&info)))
	if icon == 0 {
		return callErr("CreateIconIndirect", err)
	}
	procSendMessage.Call(uintptr(w.hwnd), wmSetIcon, iconSmall, icon)
	procSendMessage.Call(uintptr(w.hwnd), wmSetIcon, iconBig, icon)
	if w.icon != 0 {
		procDestroyIcon.Call(uintptr(w.icon))
	}
	w.icon = windows.Handle(icon)
	return nil
}

// SetOpacity makes the window layered if needed and sets its alpha.
func (w *Window) SetOpacity(alpha uint8) {
	if w.exStyle&wsExLayered == 0 {
		w.exStyle |= wsExLayered
		procSetWindowLongPtr.Call(uintptr(w.hwnd), gwlExStyle, uintptr(w.exStyle))
	}
	procSetLayeredWindowAttributes.Call(uintptr(w.hwnd), 0, uintptr(alpha), lwaAlpha)
}

// SetMenus rebuilds the native menu bar from menus. Item ids are mapped to
// 16-bit command ids.
func (w *Window) SetMenus(menus []*menu.Menu) error {
	old := w.menuBar
	w.menuBar = 0
	clear(w.commands)

	if len(menus) > 0 {
		bar, _, err := procCreateMenu.Call()
		if bar == 0 {
			return callErr("CreateMenu", err)
		}
		var next uint16
		for _, m := range menus {
			popup, err := w.buildPopup(m, &next)
			if err != nil {
				procDestroyMenu.Call(bar)
				return err
			}
			if err := appendMenu(bar, mfPopup, popup, m.Name); err != nil {
				procDestroyMenu.Call(bar)
				return err
			}
		}
		w.menuBar = bar
	}

	procSetMenu.Call(uintptr(w.hwnd), w.menuBar)
	procDrawMenuBar.Call(uintptr(w.hwnd))
	if old != 0 {
		procDestroyMenu.Call(old)
	}
	return nil
}

func (w *Window) buildPopup(m *menu.Menu, next *uint16) (uintptr, error) {
	popup, _, err := procCreatePopupMenu.Call()
	if popup == 0 {
		return 0, callErr("CreatePopupMenu", err)
	}
	for i := range m.Items {
		it := &m.Items[i]
		switch {
		case it.Separator:
			procAppendMenu.Call(popup, mfSeparator, 0, 0)
		case it.Sub != nil:
			sub, err := w.buildPopup(it.Sub, next)
			if err != nil {
				procDestroyMenu.Call(popup)
				return 0, err
			}
			if err := appendMenu(popup, mfPopup, sub, it.Label); err != nil {
				procDestroyMenu.Call(popup)
				return 0, err
			}
		default:
			*next++
			w.commands[*next] = it.ID
			flags := uintptr(mfString)
			if !it.Enabled {
				flags |= mfGrayed
			}
			label := it.Label
			if it.Key.Valid() {
				label += "\t" + key.Accelerator(it.Key, it.Mods)
			}
			if err := appendMenu(popup, flags, uintptr(*next), label); err != nil {
				procDestroyMenu.Call(popup)
				return 0, err
			}
		}
	}
	return popup, nil
}

func appendMenu(parent, flags, id uintptr, label string) error {
	p, err := windows.UTF16PtrFromString(label)
	if err != nil {
		return fmt.Errorf("invalid menu label %q: %w", label, err)
	}
	ret, _, callErrno := procAppendMenu.Call(parent, flags, id, uintptr(unsafe.Pointer(p)))
	if ret == 0 {
		return callErr("AppendMenuW", callErrno)
	}
	return nil
}

// Mods reads the live modifier state.
func Mods() key.Mods {
	down := func(vk uintptr) bool {
		s, _, _ := procGetAsyncKeyState.Call(vk)
		return s&keyDownMask != 0
	}
	var m key.Mods
	if down(vkShift) {
		m |= key.ModShift
	}
	if down(vkControl) {
		m |= key.ModCtrl
	}
	if down(vkMenu) {
		m |= key.ModAlt
	}
	if down(vkLWin) || down(vkRWin) {
		m |= key.ModSuper
	}
	return m
}

// Destroy releases the window and everything it owns.
func (w *Window) Destroy() {
	if w.menuBar != 0 {
		procSetMenu.Call(uintptr(w.hwnd), 0)
		procDestroyMenu.Call(w.menuBar)
		w.menuBar = 0
	}
	if w.icon != 0 {
		procDestroyIcon.Call(uintptr(w.icon))
		w.icon = 0
	}
	if w.hdc != 0 {
		procReleaseDC.Call(uintptr(w.hwnd), w.hdc)
		w.hdc = 0
	}
	if !w.destroyed {
		procDestroyWindow.Call(uintptr(w.hwnd))
	}
	delete(byHandle, w.hwnd)
	w.destroyed = true
}

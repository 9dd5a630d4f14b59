//go:build windows

package win32

import (
	"fmt"

	"golang.org/x/sys/windows"
)

const (
	csHRedraw = 0x0002
	csVRedraw = 0x0001
	csOwnDC   = 0x0020

	wsPopup       = 0x80000000
	wsCaption     = 0x00C00000
	wsSysMenu     = 0x00080000
	wsThickFrame  = 0x00040000
	wsMinimizeBox = 0x00020000
	wsMaximizeBox = 0x00010000
	wsBorder      = 0x00800000

	wsExTopmost    = 0x00000008
	wsExLayered    = 0x00080000
	wsExNoActivate = 0x08000000

	swShow           = 5
	swShowNoActivate = 4

	wmDestroy     = 0x0002
	wmSize        = 0x0005
	wmSetFocus    = 0x0007
	wmKillFocus   = 0x0008
	wmPaint       = 0x000F
	wmClose       = 0x0010
	wmEraseBkgnd  = 0x0014
	wmSetCursor   = 0x0020
	wmKeyDown     = 0x0100
	wmKeyUp       = 0x0101
	wmChar        = 0x0102
	wmSysKeyDown  = 0x0104
	wmSysKeyUp    = 0x0105
	wmCommand     = 0x0111
	wmMouseMove   = 0x0200
	wmLButtonDown = 0x0201
	wmLButtonUp   = 0x0202
	wmRButtonDown = 0x0204
	wmRButtonUp   = 0x0205
	wmMButtonDown = 0x0207
	wmMButtonUp   = 0x0208
	wmMouseWheel  = 0x020A
	wmMouseHWheel = 0x020E

	pmRemove = 0x0001

	htClient = 1

	wheelDelta = 120

	swpNoSize       = 0x0001
	swpNoMove       = 0x0002
	swpNoZOrder     = 0x0004
	swpNoActivate   = 0x0010

	hwndTopmost   = ^uintptr(0)     // -1
	hwndNoTopmost = ^uintptr(0) - 1 // -2

	lwaAlpha = 0x2

	biBitfields  = 3
	dibRGBColors = 0
	srcCopy      = 0x00CC0020

	mfString    = 0x0000
	mfGrayed    = 0x0001
	mfPopup     = 0x0010
	mfSeparator = 0x0800

	vkShift   = 0x10
	vkControl = 0x11
	vkMenu    = 0x12
	vkLWin    = 0x5B
	vkRWin    = 0x5C

	keyDownMask = 0x8000

	idcArrow    = 32512
	idcIbeam    = 32513
	idcCross    = 32515
	idcSizeAll  = 32646
	idcSizeWE   = 32644
	idcSizeNS   = 32645
	idcHand     = 32649
)

type wndClassEx struct {
	cbSize        uint32
	style         uint32
	lpfnWndProc   uintptr
	cbClsExtra    int32
	cbWndExtra    int32
	hInstance     windows.Handle
	hIcon         windows.Handle
	hCursor       windows.Handle
	hbrBackground windows.Handle
	lpszMenuName  *uint16
	lpszClassName *uint16
	hIconSm       windows.Handle
}

type msg struct {
	hwnd     windows.HWND
	message  uint32
	wParam   uintptr
	lParam   uintptr
	time     uint32
	pt       point
	lPrivate uint32
}

type point struct {
	x int32
	y int32
}

type rect struct {
	left   int32
	top    int32
	right  int32
	bottom int32
}

type bitmapInfoHeader struct {
	size          uint32
	width         int32
	height        int32
	planes        uint16
	bitCount      uint16
	compression   uint32
	sizeImage     uint32
	xPelsPerMeter int32
	yPelsPerMeter int32
	clrUsed       uint32
	clrImportant  uint32
}

// bitmapInfo carries the three BI_BITFIELDS channel masks after the header.
type bitmapInfo struct {
	header bitmapInfoHeader
	masks  [3]uint32
}

type iconInfo struct {
	fIcon    int32
	xHotspot uint32
	yHotspot uint32
	hbmMask  windows.Handle
	hbmColor windows.Handle
}

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	gdi32    = windows.NewLazySystemDLL("gdi32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procRegisterClassEx            = user32.NewProc("RegisterClassExW")
	procCreateWindowEx             = user32.NewProc("CreateWindowExW")
	procDefWindowProc              = user32.NewProc("DefWindowProcW")
	procDestroyWindow              = user32.NewProc("DestroyWindow")
	procShowWindow                 = user32.NewProc("ShowWindow")
	procGetClientRect              = user32.NewProc("GetClientRect")
	procGetWindowRect              = user32.NewProc("GetWindowRect")
	procAdjustWindowRectEx         = user32.NewProc("AdjustWindowRectEx")
	procSetWindowPos               = user32.NewProc("SetWindowPos")
	procSetWindowText              = user32.NewProc("SetWindowTextW")
	procPeekMessage                = user32.NewProc("PeekMessageW")
	procTranslateMessage           = user32.NewProc("TranslateMessage")
	procDispatchMessage            = user32.NewProc("DispatchMessageW")
	procGetDC                      = user32.NewProc("GetDC")
	procReleaseDC                  = user32.NewProc("ReleaseDC")
	procValidateRect               = user32.NewProc("ValidateRect")
	procFillRect                   = user32.NewProc("FillRect")
	procLoadCursor                 = user32.NewProc("LoadCursorW")
	procSetCursor                  = user32.NewProc("SetCursor")
	procGetAsyncKeyState           = user32.NewProc("GetAsyncKeyState")
	procMapVirtualKey              = user32.NewProc("MapVirtualKeyW")
	procSetLayeredWindowAttributes = user32.NewProc("SetLayeredWindowAttributes")
	procSetWindowLongPtr           = user32.NewProc("SetWindowLongPtrW")
	procCreateIconIndirect         = user32.NewProc("CreateIconIndirect")
	procDestroyIcon                = user32.NewProc("DestroyIcon")
	procSendMessage                = user32.NewProc("SendMessageW")
	procCreateMenu                 = user32.NewProc("CreateMenu")
	procCreatePopupMenu            = user32.NewProc("CreatePopupMenu")
	procAppendMenu                 = user32.NewProc("AppendMenuW")
	procSetMenu                    = user32.NewProc("SetMenu")
	procDestroyMenu                = user32.NewProc("DestroyMenu")
	procDrawMenuBar                = user32.NewProc("DrawMenuBar")
	procEnumDisplayMonitors        = user32.NewProc("EnumDisplayMonitors")
	procGetMonitorInfo             = user32.NewProc("GetMonitorInfoW")

	procStretchDIBits    = gdi32.NewProc("StretchDIBits")
	procCreateSolidBrush = gdi32.NewProc("CreateSolidBrush")
	procCreateBitmap     = gdi32.NewProc("CreateBitmap")
	procDeleteObject     = gdi32.NewProc("DeleteObject")

	procGetModuleHandle = kernel32.NewProc("GetModuleHandleW")
)

// Load resolves the entry points every window needs so a missing one fails
// at open time instead of on first use.
func Load() error {
	for _, p := range []*windows.LazyProc{
		procRegisterClassEx,
		procCreateWindowEx,
		procPeekMessage,
		procStretchDIBits,
		procGetDC,
	} {
		if err := p.Find(); err != nil {
			return fmt.Errorf("missing procedure %q: %w", p.Name, err)
		}
	}
	return nil
}

// callErr wraps the last error of a failed call.
func callErr(op string, err error) error {
	if errno, ok := err.(windows.Errno); ok && errno != 0 {
		return fmt.Errorf("%s failed: %w", op, errno)
	}
	return fmt.Errorf("%s failed", op)
}

func moduleHandle() windows.Handle {
	h, _, _ := procGetModuleHandle.Call(0)
	return windows.Handle(h)
}

func loadCursor(id uintptr) windows.Handle {
	h, _, _ := procLoadCursor.Call(0, id)
	return windows.Handle(h)
}

const mapvkVKToVSCEx = 4

func mapVirtualKey(vk uint32) uint32 {
	r, _, _ := procMapVirtualKey.Call(uintptr(vk), mapvkVKToVSCEx)
	return uint32(r)
}

func loword(v uintptr) uint16 { return uint16(v & 0xFFFF) }
func hiword(v uintptr) uint16 { return uint16((v >> 16) & 0xFFFF) }

// signed coordinate halves of an lParam
func getX(lParam uintptr) int { return int(int16(loword(lParam))) }
func getY(lParam uintptr) int { return int(int16(hiword(lParam))) }

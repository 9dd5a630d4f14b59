//go:build windows

package win32

import (
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

const monitorInfoPrimary = 0x1

type monitorInfoEx struct {
	cbSize    uint32
	rcMonitor rect
	rcWork    rect
	dwFlags   uint32
	szDevice  [32]uint16
}

// Monitor is one attached display in virtual-screen coordinates.
type Monitor struct {
	Name    string
	Primary bool
	Bounds  Rect
	Work    Rect
}

type Rect struct {
	X, Y          int
	Width, Height int
}

var (
	enumMu       sync.Mutex
	enumFound    []Monitor
	enumCallback = windows.NewCallback(func(hmon, hdc, clip, data uintptr) uintptr {
		info := monitorInfoEx{cbSize: uint32(unsafe.Sizeof(monitorInfoEx{}))}
		if ret, _, _ := procGetMonitorInfo.Call(hmon, uintptr(unsafe.Pointer(&info))); ret == 0 {
			return 1
		}
		enumFound = append(enumFound, Monitor{
			Name:    windows.UTF16ToString(info.szDevice[:]),
			Primary: info.dwFlags&monitorInfoPrimary != 0,
			Bounds:  rectDims(info.rcMonitor),
			Work:    rectDims(info.rcWork),
		})
		return 1
	})
)

func rectDims(r rect) Rect {
	return Rect{X: int(r.left), Y: int(r.top), Width: int(r.right - r.left), Height: int(r.bottom - r.top)}
}

// Monitors lists the attached displays.
func Monitors() ([]Monitor, error) {
	enumMu.Lock()
	defer enumMu.Unlock()
	enumFound = nil
	ret, _, err := procEnumDisplayMonitors.Call(0, 0, enumCallback, 0)
	if ret == 0 {
		return nil, callErr("EnumDisplayMonitors", err)
	}
	return enumFound, nil
}

package win32

import (
	"testing"

	"github.com/1broseidon/pixelwin/key"
)

func lparam(scancode uint32, ext bool) uintptr {
	l := uintptr(scancode) << 16
	if ext {
		l |= 1 << 24
	}
	return l | 1
}

func TestKeyFromLParam(t *testing.T) {
	tests := []struct {
		name string
		code uint32
		ext  bool
		want key.Key
	}{
		{"escape", 0x01, false, key.Escape},
		{"letter", 0x1E, false, key.A},
		{"left ctrl", 0x1D, false, key.LeftCtrl},
		{"right ctrl", 0x1D, true, key.RightCtrl},
		{"keypad enter", 0x1C, true, key.NumPadEnter},
		{"enter", 0x1C, false, key.Enter},
		{"arrow", 0x48, true, key.Up},
		{"keypad 8", 0x48, false, key.NumPad8},
		{"unmapped", 0x7F, false, key.Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KeyFromLParam(lparam(tt.code, tt.ext)); got != tt.want {
				t.Errorf("KeyFromLParam(%#x, ext=%v) = %v, want %v", tt.code, tt.ext, got, tt.want)
			}
		})
	}
}

func TestKeyFromMessage_FallsBackToVirtualKey(t *testing.T) {
	vkToScan := func(vk uint32) uint32 {
		switch vk {
		case 0x41: // 'A'
			return 0x1E
		case 0x26: // VK_UP
			return 0xE048
		}
		return 0
	}
	tests := []struct {
		name   string
		wParam uintptr
		lParam uintptr
		want   key.Key
	}{
		{"scancode wins", 0x26, lparam(0x01, false), key.Escape},
		{"no scancode", 0x41, 1, key.A},
		{"extended from vk", 0x26, 1, key.Up},
		{"unmapped vk", 0xFF, 1, key.Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KeyFromMessage(tt.wParam, tt.lParam, vkToScan); got != tt.want {
				t.Errorf("KeyFromMessage(%#x, %#x) = %v, want %v", tt.wParam, tt.lParam, got, tt.want)
			}
		})
	}
	if got := KeyFromMessage(0x41, 1, nil); got != key.Unknown {
		t.Errorf("expected Unknown without a mapper, got %v", got)
	}
}

func TestScancodesCoverLetters(t *testing.T) {
	seen := map[key.Key]bool{}
	for _, k := range scancodes {
		seen[k] = true
	}
	for k := key.A; k <= key.Z; k++ {
		if !seen[k] {
			t.Errorf("no scancode maps to %v", k)
		}
	}
}

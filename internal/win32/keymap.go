// Package win32 drives a native Windows window: creation, the message pump,
// DIB presentation and HMENU menus.
package win32

import "github.com/1broseidon/pixelwin/key"

// extended marks scancodes sent with the E0 prefix.
const extended = 0x100

var scancodes = map[uint32]key.Key{
	0x001: key.Escape,
	0x002: key.Key1,
	0x003: key.Key2,
	0x004: key.Key3,
	0x005: key.Key4,
	0x006: key.Key5,
	0x007: key.Key6,
	0x008: key.Key7,
	0x009: key.Key8,
	0x00A: key.Key9,
	0x00B: key.Key0,
	0x00C: key.Minus,
	0x00D: key.Equal,
	0x00E: key.Backspace,
	0x00F: key.Tab,
	0x010: key.Q,
	0x011: key.W,
	0x012: key.E,
	0x013: key.R,
	0x014: key.T,
	0x015: key.Y,
	0x016: key.U,
	0x017: key.I,
	0x018: key.O,
	0x019: key.P,
	0x01A: key.LeftBracket,
	0x01B: key.RightBracket,
	0x01C: key.Enter,
	0x01D: key.LeftCtrl,
	0x01E: key.A,
	0x01F: key.S,
	0x020: key.D,
	0x021: key.F,
	0x022: key.G,
	0x023: key.H,
	0x024: key.J,
	0x025: key.K,
	0x026: key.L,
	0x027: key.Semicolon,
	0x028: key.Apostrophe,
	0x029: key.Backquote,
	0x02A: key.LeftShift,
	0x02B: key.Backslash,
	0x02C: key.Z,
	0x02D: key.X,
	0x02E: key.C,
	0x02F: key.V,
	0x030: key.B,
	0x031: key.N,
	0x032: key.M,
	0x033: key.Comma,
	0x034: key.Period,
	0x035: key.Slash,
	0x036: key.RightShift,
	0x037: key.NumPadAsterisk,
	0x038: key.LeftAlt,
	0x039: key.Space,
	0x03A: key.CapsLock,
	0x03B: key.F1,
	0x03C: key.F2,
	0x03D: key.F3,
	0x03E: key.F4,
	0x03F: key.F5,
	0x040: key.F6,
	0x041: key.F7,
	0x042: key.F8,
	0x043: key.F9,
	0x044: key.F10,
	0x045: key.Pause,
	0x046: key.ScrollLock,
	0x047: key.NumPad7,
	0x048: key.NumPad8,
	0x049: key.NumPad9,
	0x04A: key.NumPadMinus,
	0x04B: key.NumPad4,
	0x04C: key.NumPad5,
	0x04D: key.NumPad6,
	0x04E: key.NumPadPlus,
	0x04F: key.NumPad1,
	0x050: key.NumPad2,
	0x051: key.NumPad3,
	0x052: key.NumPad0,
	0x053: key.NumPadDot,
	0x057: key.F11,
	0x058: key.F12,

	extended | 0x01C: key.NumPadEnter,
	extended | 0x01D: key.RightCtrl,
	extended | 0x035: key.NumPadSlash,
	extended | 0x037: key.PrintScreen,
	extended | 0x038: key.RightAlt,
	extended | 0x045: key.NumLock,
	extended | 0x046: key.Pause,
	extended | 0x047: key.Home,
	extended | 0x048: key.Up,
	extended | 0x049: key.PageUp,
	extended | 0x04B: key.Left,
	extended | 0x04D: key.Right,
	extended | 0x04F: key.End,
	extended | 0x050: key.Down,
	extended | 0x051: key.PageDown,
	extended | 0x052: key.Insert,
	extended | 0x053: key.Delete,
	extended | 0x05B: key.LeftSuper,
	extended | 0x05C: key.RightSuper,
	extended | 0x05D: key.Menu,
}

// KeyFromLParam translates the scancode carried in a WM_KEYDOWN or WM_KEYUP
// lParam. Scancodes identify physical keys, so the result does not depend
// on the active keyboard layout.
func KeyFromLParam(lParam uintptr) key.Key {
	code := uint32(lParam>>16) & 0x1FF
	if k, ok := scancodes[code]; ok {
		return k
	}
	return key.Unknown
}

// KeyFromMessage translates a key message. When the lParam scancode is
// missing or unknown, as with input synthesized from a virtual key, the
// virtual key in wParam is turned into a scancode by vkToScan, which
// returns MapVirtualKeyW(vk, MAPVK_VK_TO_VSC_EX) results.
func KeyFromMessage(wParam, lParam uintptr, vkToScan func(vk uint32) uint32) key.Key {
	if k := KeyFromLParam(lParam); k != key.Unknown || vkToScan == nil {
		return k
	}
	sc := vkToScan(uint32(wParam & 0xFF))
	code := sc & 0xFF
	if sc&0xFF00 == 0xE000 || sc&0xFF00 == 0xE100 {
		code |= extended
	}
	if k, ok := scancodes[code]; ok {
		return k
	}
	return key.Unknown
}

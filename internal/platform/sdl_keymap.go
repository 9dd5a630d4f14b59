package platform

import "github.com/1broseidon/pixelwin/key"

// KeyFromHIDUsage translates a USB HID keyboard usage id, which is what SDL
// reports as a scancode.
func KeyFromHIDUsage(code uint32) key.Key {
	switch {
	case code >= 4 && code <= 29:
		return key.A + key.Key(code-4)
	case code >= 30 && code <= 38:
		return key.Key1 + key.Key(code-30)
	case code >= 58 && code <= 69:
		return key.F1 + key.Key(code-58)
	case code >= 89 && code <= 97:
		return key.NumPad1 + key.Key(code-89)
	}
	if k, ok := hidUsages[code]; ok {
		return k
	}
	return key.Unknown
}

var hidUsages = map[uint32]key.Key{
	39:  key.Key0,
	40:  key.Enter,
	41:  key.Escape,
	42:  key.Backspace,
	43:  key.Tab,
	44:  key.Space,
	45:  key.Minus,
	46:  key.Equal,
	47:  key.LeftBracket,
	48:  key.RightBracket,
	49:  key.Backslash,
	51:  key.Semicolon,
	52:  key.Apostrophe,
	53:  key.Backquote,
	54:  key.Comma,
	55:  key.Period,
	56:  key.Slash,
	57:  key.CapsLock,
	70:  key.PrintScreen,
	71:  key.ScrollLock,
	72:  key.Pause,
	73:  key.Insert,
	74:  key.Home,
	75:  key.PageUp,
	76:  key.Delete,
	77:  key.End,
	78:  key.PageDown,
	79:  key.Right,
	80:  key.Left,
	81:  key.Down,
	82:  key.Up,
	83:  key.NumLock,
	84:  key.NumPadSlash,
	85:  key.NumPadAsterisk,
	86:  key.NumPadMinus,
	87:  key.NumPadPlus,
	88:  key.NumPadEnter,
	98:  key.NumPad0,
	99:  key.NumPadDot,
	101: key.Menu,
	224: key.LeftCtrl,
	225: key.LeftShift,
	226: key.LeftAlt,
	227: key.LeftSuper,
	228: key.RightCtrl,
	229: key.RightShift,
	230: key.RightAlt,
	231: key.RightSuper,
}

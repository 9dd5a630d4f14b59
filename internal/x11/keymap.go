package x11

import (
	"unicode"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"

	"github.com/1broseidon/pixelwin/key"
)

// Keysym values from X11/keysymdef.h.
const (
	xkBackSpace    = 0xff08
	xkTab          = 0xff09
	xkReturn       = 0xff0d
	xkPause        = 0xff13
	xkScrollLock   = 0xff14
	xkEscape       = 0xff1b
	xkHome         = 0xff50
	xkLeft         = 0xff51
	xkUp           = 0xff52
	xkRight        = 0xff53
	xkDown         = 0xff54
	xkPrior        = 0xff55
	xkNext         = 0xff56
	xkEnd          = 0xff57
	xkPrint        = 0xff61
	xkInsert       = 0xff63
	xkMenu         = 0xff67
	xkNumLock      = 0xff7f
	xkKPEnter      = 0xff8d
	xkKPHome       = 0xff95
	xkKPLeft       = 0xff96
	xkKPUp         = 0xff97
	xkKPRight      = 0xff98
	xkKPDown       = 0xff99
	xkKPPrior      = 0xff9a
	xkKPNext       = 0xff9b
	xkKPEnd        = 0xff9c
	xkKPBegin      = 0xff9d
	xkKPInsert     = 0xff9e
	xkKPDelete     = 0xff9f
	xkKPMultiply   = 0xffaa
	xkKPAdd        = 0xffab
	xkKPSubtract   = 0xffad
	xkKPDecimal    = 0xffae
	xkKPDivide     = 0xffaf
	xkKP0          = 0xffb0
	xkKP9          = 0xffb9
	xkF1           = 0xffbe
	xkF12          = 0xffc9
	xkShiftL       = 0xffe1
	xkShiftR       = 0xffe2
	xkControlL     = 0xffe3
	xkControlR     = 0xffe4
	xkCapsLock     = 0xffe5
	xkMetaL        = 0xffe7
	xkMetaR        = 0xffe8
	xkAltL         = 0xffe9
	xkAltR         = 0xffea
	xkSuperL       = 0xffeb
	xkSuperR       = 0xffec
	xkDelete       = 0xffff
	xkISOLeftTab   = 0xfe20
	xkISOLevel3    = 0xfe03
	xkSpace        = 0x20
	xkApostrophe   = 0x27
	xkComma        = 0x2c
	xkMinus        = 0x2d
	xkPeriod       = 0x2e
	xkSlash        = 0x2f
	xkSemicolon    = 0x3b
	xkEqual        = 0x3d
	xkBracketLeft  = 0x5b
	xkBackslash    = 0x5c
	xkBracketRight = 0x5d
	xkGrave        = 0x60
)

var keysymTable = map[xproto.Keysym]key.Key{
	xkBackSpace:    key.Backspace,
	xkTab:          key.Tab,
	xkISOLeftTab:   key.Tab,
	xkReturn:       key.Enter,
	xkPause:        key.Pause,
	xkScrollLock:   key.ScrollLock,
	xkEscape:       key.Escape,
	xkHome:         key.Home,
	xkLeft:         key.Left,
	xkUp:           key.Up,
	xkRight:        key.Right,
	xkDown:         key.Down,
	xkPrior:        key.PageUp,
	xkNext:         key.PageDown,
	xkEnd:          key.End,
	xkPrint:        key.PrintScreen,
	xkInsert:       key.Insert,
	xkMenu:         key.Menu,
	xkNumLock:      key.NumLock,
	xkCapsLock:     key.CapsLock,
	xkDelete:       key.Delete,
	xkShiftL:       key.LeftShift,
	xkShiftR:       key.RightShift,
	xkControlL:     key.LeftCtrl,
	xkControlR:     key.RightCtrl,
	xkAltL:         key.LeftAlt,
	xkAltR:         key.RightAlt,
	xkMetaL:        key.LeftAlt,
	xkMetaR:        key.RightAlt,
	xkISOLevel3:    key.RightAlt,
	xkSuperL:       key.LeftSuper,
	xkSuperR:       key.RightSuper,
	xkSpace:        key.Space,
	xkApostrophe:   key.Apostrophe,
	xkComma:        key.Comma,
	xkMinus:        key.Minus,
	xkPeriod:       key.Period,
	xkSlash:        key.Slash,
	xkSemicolon:    key.Semicolon,
	xkEqual:        key.Equal,
	xkBracketLeft:  key.LeftBracket,
	xkBackslash:    key.Backslash,
	xkBracketRight: key.RightBracket,
	xkGrave:        key.Backquote,

	xkKPEnter:    key.NumPadEnter,
	xkKPMultiply: key.NumPadAsterisk,
	xkKPAdd:      key.NumPadPlus,
	xkKPSubtract: key.NumPadMinus,
	xkKPDecimal:  key.NumPadDot,
	xkKPDelete:   key.NumPadDot,
	xkKPDivide:   key.NumPadSlash,
	xkKPInsert:   key.NumPad0,
	xkKPEnd:      key.NumPad1,
	xkKPDown:     key.NumPad2,
	xkKPNext:     key.NumPad3,
	xkKPLeft:     key.NumPad4,
	xkKPBegin:    key.NumPad5,
	xkKPRight:    key.NumPad6,
	xkKPHome:     key.NumPad7,
	xkKPUp:       key.NumPad8,
	xkKPPrior:    key.NumPad9,
}

// KeyFromKeysym translates a keysym to a key. Upper and lower case letters
// and the keypad's navigation and digit symbols share a key.
func KeyFromKeysym(sym xproto.Keysym) key.Key {
	switch {
	case sym >= 'a' && sym <= 'z':
		return key.A + key.Key(sym-'a')
	case sym >= 'A' && sym <= 'Z':
		return key.A + key.Key(sym-'A')
	case sym >= '0' && sym <= '9':
		return key.Key0 + key.Key(sym-'0')
	case sym >= xkF1 && sym <= xkF12:
		return key.F1 + key.Key(sym-xkF1)
	case sym >= xkKP0 && sym <= xkKP9:
		return key.NumPad0 + key.Key(sym-xkKP0)
	}
	if k, ok := keysymTable[sym]; ok {
		return k
	}
	return key.Unknown
}

func isKeypad(sym xproto.Keysym) bool {
	return sym >= 0xff80 && sym <= 0xffbd
}

// KeyFromKeycode looks up the keysym of a hardware keycode and translates
// it. Keypad keys are resolved from their num-lock column so the digit and
// navigation meanings land on the same key.
func KeyFromKeycode(xu *xgbutil.XUtil, code xproto.Keycode) key.Key {
	if sym := keybind.KeysymGet(xu, code, 1); isKeypad(sym) {
		return KeyFromKeysym(sym)
	}
	return KeyFromKeysym(keybind.KeysymGet(xu, code, 0))
}

// TextFromKeycode returns the character a key press produces under the
// given modifier state, or 0 when it produces none.
func TextFromKeycode(xu *xgbutil.XUtil, state uint16, code xproto.Keycode) rune {
	if state&(xproto.ModMaskControl|xproto.ModMask1|xproto.ModMask4) != 0 {
		return 0
	}
	sym0 := keybind.KeysymGet(xu, code, 0)
	sym1 := keybind.KeysymGet(xu, code, 1)
	if sym1 == 0 {
		sym1 = sym0
	}
	shift := state&xproto.ModMaskShift != 0
	lock := state&xproto.ModMaskLock != 0
	numLock := state&xproto.ModMask2 != 0

	sym := sym0
	switch {
	case isKeypad(sym1):
		if numLock != shift {
			sym = sym1
		}
	case shift:
		sym = sym1
	}

	r := keysymRune(sym)
	if unicode.IsLetter(r) {
		if lock != shift {
			r = unicode.ToUpper(r)
		} else {
			r = unicode.ToLower(r)
		}
	}
	return r
}

// keysymRune converts a keysym to the character it denotes, or 0.
func keysymRune(sym xproto.Keysym) rune {
	switch {
	case sym >= 0x20 && sym <= 0x7e, sym >= 0xa0 && sym <= 0xff:
		return rune(sym)
	case sym >= 0x01000100 && sym <= 0x0110ffff:
		return rune(sym - 0x01000000)
	case sym >= xkKP0 && sym <= xkKP9:
		return '0' + rune(sym-xkKP0)
	}
	switch sym {
	case 0xff80:
		return ' '
	case xkKPMultiply:
		return '*'
	case xkKPAdd:
		return '+'
	case xkKPSubtract:
		return '-'
	case xkKPDecimal:
		return '.'
	case xkKPDivide:
		return '/'
	case 0xffbd:
		return '='
	}
	return 0
}

// Package key defines the platform independent key identities reported by
// pixelwin windows and the modifier bitset used by menu accelerators.
package key

import (
	"fmt"
	"strings"
)

// Key identifies a physical key independent of the native scancode space.
type Key uint8

const (
	Unknown Key = iota

	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

	A
	B
	C
	D
	E
	F
	G
	H
	I
	J
	K
	L
	M
	N
	O
	P
	Q
	R
	S
	T
	U
	V
	W
	X
	Y
	Z

	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12

	Down
	Left
	Right
	Up

	Apostrophe
	Backquote
	Backslash
	Comma
	Equal
	LeftBracket
	Minus
	Period
	RightBracket
	Semicolon
	Slash

	Backspace
	Delete
	End
	Enter
	Escape
	Home
	Insert
	Menu
	PageDown
	PageUp
	Pause
	PrintScreen
	Space
	Tab

	NumLock
	CapsLock
	ScrollLock

	LeftShift
	RightShift
	LeftCtrl
	RightCtrl
	LeftAlt
	RightAlt
	LeftSuper
	RightSuper

	NumPad0
	NumPad1
	NumPad2
	NumPad3
	NumPad4
	NumPad5
	NumPad6
	NumPad7
	NumPad8
	NumPad9
	NumPadDot
	NumPadSlash
	NumPadAsterisk
	NumPadMinus
	NumPadPlus
	NumPadEnter

	// Count is the number of defined keys, Unknown included.
	Count
)

var names = [Count]string{
	Unknown: "Unknown",
	Key0:    "0", Key1: "1", Key2: "2", Key3: "3", Key4: "4",
	Key5: "5", Key6: "6", Key7: "7", Key8: "8", Key9: "9",
	A: "A", B: "B", C: "C", D: "D", E: "E", F: "F", G: "G", H: "H", I: "I",
	J: "J", K: "K", L: "L", M: "M", N: "N", O: "O", P: "P", Q: "Q", R: "R",
	S: "S", T: "T", U: "U", V: "V", W: "W", X: "X", Y: "Y", Z: "Z",
	F1: "F1", F2: "F2", F3: "F3", F4: "F4", F5: "F5", F6: "F6",
	F7: "F7", F8: "F8", F9: "F9", F10: "F10", F11: "F11", F12: "F12",
	Down:           "Down",
	Left:           "Left",
	Right:          "Right",
	Up:             "Up",
	Apostrophe:     "Apostrophe",
	Backquote:      "Backquote",
	Backslash:      "Backslash",
	Comma:          "Comma",
	Equal:          "Equal",
	LeftBracket:    "LeftBracket",
	Minus:          "Minus",
	Period:         "Period",
	RightBracket:   "RightBracket",
	Semicolon:      "Semicolon",
	Slash:          "Slash",
	Backspace:      "Backspace",
	Delete:         "Delete",
	End:            "End",
	Enter:          "Enter",
	Escape:         "Escape",
	Home:           "Home",
	Insert:         "Insert",
	Menu:           "Menu",
	PageDown:       "PageDown",
	PageUp:         "PageUp",
	Pause:          "Pause",
	PrintScreen:    "PrintScreen",
	Space:          "Space",
	Tab:            "Tab",
	NumLock:        "NumLock",
	CapsLock:       "CapsLock",
	ScrollLock:     "ScrollLock",
	LeftShift:      "LeftShift",
	RightShift:     "RightShift",
	LeftCtrl:       "LeftCtrl",
	RightCtrl:      "RightCtrl",
	LeftAlt:        "LeftAlt",
	RightAlt:       "RightAlt",
	LeftSuper:      "LeftSuper",
	RightSuper:     "RightSuper",
	NumPad0:        "NumPad0",
	NumPad1:        "NumPad1",
	NumPad2:        "NumPad2",
	NumPad3:        "NumPad3",
	NumPad4:        "NumPad4",
	NumPad5:        "NumPad5",
	NumPad6:        "NumPad6",
	NumPad7:        "NumPad7",
	NumPad8:        "NumPad8",
	NumPad9:        "NumPad9",
	NumPadDot:      "NumPadDot",
	NumPadSlash:    "NumPadSlash",
	NumPadAsterisk: "NumPadAsterisk",
	NumPadMinus:    "NumPadMinus",
	NumPadPlus:     "NumPadPlus",
	NumPadEnter:    "NumPadEnter",
}

var byName = func() map[string]Key {
	m := make(map[string]Key, Count)
	for k, name := range names {
		m[strings.ToLower(name)] = Key(k)
	}
	// Aliases accepted in config files and accelerator strings.
	m["esc"] = Escape
	m["return"] = Enter
	m["del"] = Delete
	m["pgup"] = PageUp
	m["pgdn"] = PageDown
	return m
}()

func (k Key) String() string {
	if k >= Count {
		return fmt.Sprintf("Key(%d)", uint8(k))
	}
	return names[k]
}

// Valid reports whether k is a defined key other than Unknown.
func (k Key) Valid() bool {
	return k > Unknown && k < Count
}

// IsModifier reports whether k is one of the shift, ctrl, alt or super keys.
func (k Key) IsModifier() bool {
	return k >= LeftShift && k <= RightSuper
}

// Parse returns the key with the given name. Matching is case-insensitive.
func Parse(name string) (Key, error) {
	k, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Unknown, fmt.Errorf("unknown key %q", name)
	}
	return k, nil
}

// All returns every defined key except Unknown, in enumeration order.
func All() []Key {
	keys := make([]Key, 0, Count-1)
	for k := Unknown + 1; k < Count; k++ {
		keys = append(keys, k)
	}
	return keys
}

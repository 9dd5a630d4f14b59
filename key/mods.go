package key

import (
	"fmt"
	"strings"
)

// Mods is the modifier bitset attached to menu accelerators.
type Mods uint8

const (
	ModShift Mods = 1 << iota
	ModCtrl
	ModAlt
	ModSuper
)

// ModNone is the empty modifier set.
const ModNone Mods = 0

// Has reports whether every bit of other is set in m.
func (m Mods) Has(other Mods) bool {
	return m&other == other
}

func (m Mods) String() string {
	if m == ModNone {
		return ""
	}
	var parts []string
	if m.Has(ModCtrl) {
		parts = append(parts, "Ctrl")
	}
	if m.Has(ModAlt) {
		parts = append(parts, "Alt")
	}
	if m.Has(ModShift) {
		parts = append(parts, "Shift")
	}
	if m.Has(ModSuper) {
		parts = append(parts, "Super")
	}
	return strings.Join(parts, "+")
}

// ModsFromKeys folds a set of held keys into a modifier bitset.
func ModsFromKeys(held []Key) Mods {
	var m Mods
	for _, k := range held {
		switch k {
		case LeftShift, RightShift:
			m |= ModShift
		case LeftCtrl, RightCtrl:
			m |= ModCtrl
		case LeftAlt, RightAlt:
			m |= ModAlt
		case LeftSuper, RightSuper:
			m |= ModSuper
		}
	}
	return m
}

// Accelerator formats a key and modifiers the way menus display them,
// for example "Ctrl+Shift+S".
func Accelerator(k Key, m Mods) string {
	if !k.Valid() {
		return ""
	}
	if m == ModNone {
		return k.String()
	}
	return m.String() + "+" + k.String()
}

// ParseAccelerator is the inverse of Accelerator.
func ParseAccelerator(s string) (Key, Mods, error) {
	parts := strings.Split(s, "+")
	var m Mods
	for _, p := range parts[:len(parts)-1] {
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "ctrl", "control":
			m |= ModCtrl
		case "alt":
			m |= ModAlt
		case "shift":
			m |= ModShift
		case "super", "cmd", "win":
			m |= ModSuper
		default:
			return Unknown, ModNone, fmt.Errorf("unknown modifier %q in %q", p, s)
		}
	}
	k, err := Parse(parts[len(parts)-1])
	if err != nil {
		return Unknown, ModNone, fmt.Errorf("accelerator %q: %w", s, err)
	}
	return k, m, nil
}

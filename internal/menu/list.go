package menu

import "github.com/1broseidon/pixelwin/key"

// List is the ordered set of menus attached to one window.
type List struct {
	menus []*Menu
	next  Handle
}

// Attach stores a deep copy of m stamped with a fresh handle. The caller's
// menu is left untouched.
func (l *List) Attach(m *Menu) (Handle, *Menu) {
	l.next++
	c := m.Clone()
	c.Handle = l.next
	l.menus = append(l.menus, c)
	return c.Handle, c
}

// Detach removes the menu with handle h and reports whether it existed.
func (l *List) Detach(h Handle) bool {
	for i, m := range l.menus {
		if m.Handle == h {
			l.menus = append(l.menus[:i], l.menus[i+1:]...)
			return true
		}
	}
	return false
}

// HasName reports whether an attached menu is titled name.
func (l *List) HasName(name string) bool {
	for _, m := range l.menus {
		if m.Name == name {
			return true
		}
	}
	return false
}

// Handles returns the attached handles in attach order.
func (l *List) Handles() []Handle {
	hs := make([]Handle, len(l.menus))
	for i, m := range l.menus {
		hs[i] = m.Handle
	}
	return hs
}

// Menus returns the attached trees in attach order. The slice is shared.
func (l *List) Menus() []*Menu {
	return l.menus
}

func (l *List) Accelerator(k key.Key, mods key.Mods) (int, bool) {
	for _, m := range l.menus {
		if id, ok := m.Accelerator(k, mods); ok {
			return id, true
		}
	}
	return 0, false
}

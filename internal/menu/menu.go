// Package menu holds the logical menu trees attached to a window. Backends
// with a native menu bar mirror these trees; the others render them with
// package menubar.
package menu

import "github.com/1broseidon/pixelwin/key"

// ItemHandle identifies an entry within one menu.
type ItemHandle uint64

// Handle identifies a menu attached to a window.
type Handle uint64

// Item is one menu entry. A separator ignores every other field; an entry
// with Sub set opens a submenu instead of reporting ID.
type Item struct {
	Label     string
	ID        int
	Enabled   bool
	Key       key.Key
	Mods      key.Mods
	Separator bool
	Sub       *Menu

	Handle ItemHandle
}

// Menu is a named list of items.
type Menu struct {
	Name   string
	Items  []Item
	Handle Handle

	next ItemHandle
}

func New(name string) *Menu {
	return &Menu{Name: name}
}

// Add appends item with a fresh handle and returns that handle.
func (m *Menu) Add(item Item) ItemHandle {
	m.next++
	item.Handle = m.next
	if item.Sub != nil {
		item.Sub = item.Sub.Clone()
	}
	m.Items = append(m.Items, item)
	return item.Handle
}

// AddSeparator appends a divider line.
func (m *Menu) AddSeparator() ItemHandle {
	return m.Add(Item{Separator: true})
}

// AddSubMenu appends a copy of sub under label. The returned handle names
// the parent entry.
func (m *Menu) AddSubMenu(label string, sub *Menu) ItemHandle {
	return m.Add(Item{Label: label, Enabled: true, Sub: sub})
}

// Remove deletes the entry with handle h. Unknown handles are ignored.
func (m *Menu) Remove(h ItemHandle) {
	for i := range m.Items {
		if m.Items[i].Handle == h {
			m.Items = append(m.Items[:i], m.Items[i+1:]...)
			return
		}
	}
}

// Clone returns a deep copy of the tree. Handles are preserved.
func (m *Menu) Clone() *Menu {
	if m == nil {
		return nil
	}
	c := &Menu{Name: m.Name, Handle: m.Handle, next: m.next}
	if m.Items != nil {
		c.Items = make([]Item, len(m.Items))
		for i, it := range m.Items {
			it.Sub = it.Sub.Clone()
			c.Items[i] = it
		}
	}
	return c
}

// Accelerator finds the enabled item bound to k with exactly mods.
func (m *Menu) Accelerator(k key.Key, mods key.Mods) (int, bool) {
	for _, it := range m.Items {
		if it.Separator || !it.Enabled {
			continue
		}
		if it.Sub != nil {
			if id, ok := it.Sub.Accelerator(k, mods); ok {
				return id, true
			}
			continue
		}
		if it.Key == k && it.Key.Valid() && it.Mods == mods {
			return it.ID, true
		}
	}
	return 0, false
}


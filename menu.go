package pixelwin

import (
	"github.com/1broseidon/pixelwin/internal/menu"
	"github.com/1broseidon/pixelwin/key"
)

// MenuHandle names a menu attached to a window. Handles are never reused.
type MenuHandle = menu.Handle

// MenuItemHandle names an entry within one menu.
type MenuItemHandle = menu.ItemHandle

// MenuItem is a raw menu entry for AddMenuItem.
type MenuItem = menu.Item

// Menu is a menu tree under construction. Window.AddMenu attaches a copy,
// so a Menu can be changed or attached again afterwards.
type Menu struct {
	m *menu.Menu
}

func NewMenu(name string) *Menu {
	return &Menu{m: menu.New(name)}
}

func (m *Menu) Name() string { return m.m.Name }

// AddItem starts an enabled entry reporting id when activated.
func (m *Menu) AddItem(label string, id int) *MenuItemBuilder {
	return &MenuItemBuilder{menu: m, item: menu.Item{Label: label, ID: id, Enabled: true}}
}

func (m *Menu) AddMenuItem(item MenuItem) MenuItemHandle {
	return m.m.Add(item)
}

// AddSubMenu nests a copy of sub under name.
func (m *Menu) AddSubMenu(name string, sub *Menu) MenuItemHandle {
	return m.m.AddSubMenu(name, sub.m)
}

func (m *Menu) AddSeparator() MenuItemHandle {
	return m.m.AddSeparator()
}

// RemoveItem deletes an entry. Unknown handles are ignored.
func (m *Menu) RemoveItem(h MenuItemHandle) {
	m.m.Remove(h)
}

// MenuItemBuilder collects the optional attributes of one entry.
type MenuItemBuilder struct {
	menu *Menu
	item menu.Item
}

// Shortcut binds an accelerator key with the given modifiers.
func (b *MenuItemBuilder) Shortcut(k key.Key, mods key.Mods) *MenuItemBuilder {
	b.item.Key = k
	b.item.Mods = mods
	return b
}

func (b *MenuItemBuilder) Enabled(enabled bool) *MenuItemBuilder {
	b.item.Enabled = enabled
	return b
}

// Separator turns the entry into a divider.
func (b *MenuItemBuilder) Separator() *MenuItemBuilder {
	b.item.Separator = true
	return b
}

// Build appends the entry to its menu.
func (b *MenuItemBuilder) Build() MenuItemHandle {
	return b.menu.m.Add(b.item)
}

package platform

import (
	"errors"

	"github.com/1broseidon/pixelwin/internal/buffer"
	"github.com/1broseidon/pixelwin/internal/menu"
	"github.com/1broseidon/pixelwin/internal/menubar"
	"github.com/1broseidon/pixelwin/internal/scaler"
	"github.com/1broseidon/pixelwin/key"
)

var (
	// ErrClosed is returned by backends whose native window has been destroyed.
	ErrClosed = errors.New("native window destroyed")
	// ErrConnectionLost is returned by Poll once the window system went away.
	ErrConnectionLost = errors.New("window system connection lost")
)

// MenuTheme colors the software menu strip.
type MenuTheme = menubar.Theme

// softSurface is the presentation path of backends without a native stretch
// blit or menu bar: frames are scaled into a client-sized surface and the
// menu strip is drawn over its top rows.
type softSurface struct {
	surf buffer.View
	bar  *menubar.Bar
	held map[key.Key]bool
}

func newSoftSurface(theme MenuTheme) *softSurface {
	if theme == (MenuTheme{}) {
		theme = menubar.DefaultTheme()
	}
	return &softSurface{bar: menubar.New(theme), held: make(map[key.Key]bool)}
}

// render scales f into a width x height surface, reusing the previous
// allocation when the size is unchanged.
func (s *softSurface) render(f *Frame, width, height int) buffer.View {
	if s.surf.Width != width || s.surf.Height != height {
		s.surf = buffer.New(width, height)
	}
	scaler.Render(s.surf, f.Source, f.Place, f.Background)
	s.bar.Draw(s.surf)
	return s.surf
}

func (s *softSurface) setMenus(menus []*menu.Menu) {
	s.bar.SetMenus(menus)
}

func (s *softSurface) mods() key.Mods {
	held := make([]key.Key, 0, len(s.held))
	for k, down := range s.held {
		if down {
			held = append(held, k)
		}
	}
	return key.ModsFromKeys(held)
}

// filter routes pointer and key events through the menu strip. Events the
// strip consumes are dropped and activations become EventMenu.
func (s *softSurface) filter(events []Event) []Event {
	if len(events) == 0 {
		return events
	}
	out := make([]Event, 0, len(events))
	for _, ev := range events {
		var r menubar.Result
		switch ev.Type {
		case EventKey:
			if ev.Key.IsModifier() {
				s.held[ev.Key] = ev.Down
			} else if ev.Down {
				r = s.bar.Key(ev.Key, s.mods())
			}
		case EventMouseMove:
			s.bar.Move(ev.X, ev.Y)
		case EventMouseButton:
			if ev.Down {
				r = s.bar.Press(ev.X, ev.Y)
			} else {
				r = s.bar.Release()
			}
		case EventFocus:
			if !ev.Focused {
				clear(s.held)
			}
		}
		if r.Activated {
			out = append(out, MenuEvent(r.ID))
		}
		if r.Consumed {
			continue
		}
		out = append(out, ev)
	}
	return out
}

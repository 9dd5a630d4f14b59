package x11

import (
	"fmt"
	"image"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// Monitor is one RandR output in root window coordinates.
type Monitor struct {
	ID      int
	Name    string
	Primary bool
	X       int
	Y       int
	Width   int
	Height  int
}

func (m Monitor) rect() image.Rectangle {
	return image.Rect(m.X, m.Y, m.X+m.Width, m.Y+m.Height)
}

func (m Monitor) withRect(r image.Rectangle) Monitor {
	m.X, m.Y = r.Min.X, r.Min.Y
	m.Width, m.Height = max(r.Dx(), 1), max(r.Dy(), 1)
	return m
}

// GetMonitors lists the active CRTCs. Servers without RandR outputs report
// the root window as a single primary monitor.
func (c *Connection) GetMonitors() ([]Monitor, error) {
	conn := c.XUtil.Conn()
	if err := randr.Init(conn); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}
	resources, err := randr.GetScreenResources(conn, c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var primary randr.Output
	if reply, err := randr.GetOutputPrimary(conn, c.Root).Reply(); err == nil {
		primary = reply.Output
	}

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(conn, crtc, resources.ConfigTimestamp).Reply()
		if err != nil || info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}
		m := Monitor{
			ID:     i,
			Name:   fmt.Sprintf("Monitor%d", i),
			X:      int(info.X),
			Y:      int(info.Y),
			Width:  int(info.Width),
			Height: int(info.Height),
		}
		if out, err := randr.GetOutputInfo(conn, info.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			m.Name = string(out.Name)
		}
		for _, out := range info.Outputs {
			if primary != 0 && out == primary {
				m.Primary = true
			}
		}
		monitors = append(monitors, m)
	}

	if len(monitors) == 0 {
		root := c.XUtil.Screen()
		monitors = append(monitors, Monitor{
			Name:    "screen",
			Primary: true,
			Width:   int(root.WidthInPixels),
			Height:  int(root.HeightInPixels),
		})
	}
	return monitors, nil
}

// PrimaryMonitor returns the RandR primary output, falling back to the
// monitor under the pointer and then the first monitor.
func (c *Connection) PrimaryMonitor() (*Monitor, error) {
	monitors, err := c.GetMonitors()
	if err != nil {
		return nil, err
	}
	for i := range monitors {
		if monitors[i].Primary {
			return &monitors[i], nil
		}
	}
	if pointer, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply(); err == nil {
		if m := monitorAt(monitors, int(pointer.RootX), int(pointer.RootY)); m != nil {
			return m, nil
		}
	}
	return &monitors[0], nil
}

func monitorAt(monitors []Monitor, x, y int) *Monitor {
	p := image.Pt(x, y)
	for i := range monitors {
		if p.In(monitors[i].rect()) {
			return &monitors[i]
		}
	}
	return nil
}

// UsableArea returns the part of monitor not covered by docks. Dock struts
// are preferred; without any, the current desktop's _NET_WORKAREA is
// intersected with the monitor.
func (c *Connection) UsableArea(monitor Monitor) Monitor {
	if struts := c.dockStruts(); len(struts) > 0 {
		if r, ok := subtractStruts(monitor.rect(), c.rootRect(), struts); ok {
			return monitor.withRect(r)
		}
	}

	workArea, err := ewmh.WorkareaGet(c.XUtil)
	if err != nil || len(workArea) == 0 {
		return monitor
	}
	desktop := 0
	if cur, err := ewmh.CurrentDesktopGet(c.XUtil); err == nil && int(cur) < len(workArea) {
		desktop = int(cur)
	}
	wa := workArea[desktop]
	r := monitor.rect().Intersect(image.Rect(wa.X, wa.Y, wa.X+int(wa.Width), wa.Y+int(wa.Height)))
	if r.Empty() {
		return monitor
	}
	return monitor.withRect(r)
}

func (c *Connection) rootRect() image.Rectangle {
	s := c.XUtil.Screen()
	return image.Rect(0, 0, int(s.WidthInPixels), int(s.HeightInPixels))
}

// dockStruts collects the partial struts of every dock window. Docks that
// only set _NET_WM_STRUT span the whole root edge.
func (c *Connection) dockStruts() []ewmh.WmStrutPartial {
	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return nil
	}
	root := c.rootRect()
	var out []ewmh.WmStrutPartial
	for _, win := range clients {
		if !c.isDock(win) {
			continue
		}
		if sp, err := ewmh.WmStrutPartialGet(c.XUtil, win); err == nil {
			out = append(out, *sp)
			continue
		}
		if s, err := ewmh.WmStrutGet(c.XUtil, win); err == nil {
			w, h := uint(root.Dx()-1), uint(root.Dy()-1)
			out = append(out, ewmh.WmStrutPartial{
				Left: s.Left, Right: s.Right, Top: s.Top, Bottom: s.Bottom,
				LeftEndY: h, RightEndY: h, TopEndX: w, BottomEndX: w,
			})
		}
	}
	return out
}

func (c *Connection) isDock(win xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, win)
	if err != nil {
		return false
	}
	for _, t := range types {
		if t == "_NET_WM_WINDOW_TYPE_DOCK" {
			return true
		}
	}
	return false
}

// subtractStruts shrinks mon by the widest strut reserved on each edge
// that overlaps it. ok is false when no strut touches mon.
func subtractStruts(mon, root image.Rectangle, struts []ewmh.WmStrutPartial) (image.Rectangle, bool) {
	var left, right, top, bottom int
	for _, sp := range struts {
		if sp.Top > 0 {
			r := mon.Intersect(image.Rect(int(sp.TopStartX), 0, int(sp.TopEndX)+1, int(sp.Top)))
			top = max(top, r.Dy())
		}
		if sp.Bottom > 0 {
			r := mon.Intersect(image.Rect(int(sp.BottomStartX), root.Max.Y-int(sp.Bottom), int(sp.BottomEndX)+1, root.Max.Y))
			bottom = max(bottom, r.Dy())
		}
		if sp.Left > 0 {
			r := mon.Intersect(image.Rect(0, int(sp.LeftStartY), int(sp.Left), int(sp.LeftEndY)+1))
			left = max(left, r.Dx())
		}
		if sp.Right > 0 {
			r := mon.Intersect(image.Rect(root.Max.X-int(sp.Right), int(sp.RightStartY), root.Max.X, int(sp.RightEndY)+1))
			right = max(right, r.Dx())
		}
	}
	if left == 0 && right == 0 && top == 0 && bottom == 0 {
		return mon, false
	}
	return image.Rect(mon.Min.X+left, mon.Min.Y+top, mon.Max.X-right, mon.Max.Y-bottom), true
}

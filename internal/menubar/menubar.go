// Package menubar renders attached menus into the top rows of a presented
// surface and turns pointer and key input into menu activations. It serves
// backends whose platform has no native menu bar.
package menubar

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/1broseidon/pixelwin/internal/buffer"
	"github.com/1broseidon/pixelwin/internal/menu"
	"github.com/1broseidon/pixelwin/key"
)

const (
	padX       = 8
	padY       = 3
	itemPadY   = 2
	sepHeight  = 7
	accelGap   = 24
	arrowWidth = 10
)

// Theme holds the 0x00RRGGBB colors used by the strip and popups.
type Theme struct {
	Background    uint32
	Foreground    uint32
	Highlight     uint32
	HighlightText uint32
	Disabled      uint32
	Border        uint32
}

func DefaultTheme() Theme {
	return Theme{
		Background:    0x00E8E8E8,
		Foreground:    0x00202020,
		Highlight:     0x003070C0,
		HighlightText: 0x00FFFFFF,
		Disabled:      0x00909090,
		Border:        0x00707070,
	}
}

// Result reports what a pointer or key event did to the menus.
type Result struct {
	// Consumed is set when the event belongs to the menus and must not
	// reach the application.
	Consumed bool
	// Activated is set with ID when an item was chosen.
	Activated bool
	ID        int
}

type popup struct {
	menu  *menu.Menu
	rect  image.Rectangle
	hover int
}

// Bar is the software menu strip of one window.
type Bar struct {
	menus  []*menu.Menu
	theme  Theme
	face   font.Face
	open   int
	popups []popup

	captured bool
}

func New(theme Theme) *Bar {
	return &Bar{theme: theme, face: basicfont.Face7x13, open: -1}
}

// SetMenus replaces the displayed menus and closes any open popup.
func (b *Bar) SetMenus(menus []*menu.Menu) {
	b.menus = menus
	b.close()
}

// Visible reports whether the strip is drawn at all.
func (b *Bar) Visible() bool { return len(b.menus) > 0 }

// IsOpen reports whether a popup is showing.
func (b *Bar) IsOpen() bool { return b.open >= 0 }

// Height is the strip height in pixels, zero when no menus are attached.
func (b *Bar) Height() int {
	if !b.Visible() {
		return 0
	}
	return b.lineHeight() + 2*padY
}

func (b *Bar) lineHeight() int {
	return b.face.Metrics().Height.Ceil()
}

func (b *Bar) textWidth(s string) int {
	return font.MeasureString(b.face, s).Ceil()
}

func (b *Bar) titleRects() []image.Rectangle {
	rects := make([]image.Rectangle, len(b.menus))
	x := 0
	for i, m := range b.menus {
		w := b.textWidth(m.Name) + 2*padX
		rects[i] = image.Rect(x, 0, x+w, b.Height())
		x += w
	}
	return rects
}

func (b *Bar) itemHeight(it *menu.Item) int {
	if it.Separator {
		return sepHeight
	}
	return b.lineHeight() + 2*itemPadY
}

func (b *Bar) layoutPopup(m *menu.Menu, x, y int) image.Rectangle {
	labelW, accelW := 0, 0
	h := 2
	for i := range m.Items {
		it := &m.Items[i]
		h += b.itemHeight(it)
		labelW = max(labelW, b.textWidth(it.Label))
		accelW = max(accelW, b.textWidth(key.Accelerator(it.Key, it.Mods)))
	}
	w := labelW + 2*padX + arrowWidth
	if accelW > 0 {
		w += accelGap + accelW
	}
	return image.Rect(x, y, x+w, y+h)
}

func (b *Bar) openMenu(i int) {
	b.close()
	if i < 0 || i >= len(b.menus) {
		return
	}
	r := b.titleRects()[i]
	b.open = i
	b.popups = []popup{{menu: b.menus[i], rect: b.layoutPopup(b.menus[i], r.Min.X, r.Max.Y), hover: -1}}
}

func (b *Bar) close() {
	b.open = -1
	b.popups = b.popups[:0]
}

// itemAt returns the index of the item under (x, y) in popup p and its row
// rectangle.
func (b *Bar) itemAt(p *popup, x, y int) (int, image.Rectangle) {
	pt := image.Pt(x, y)
	if !pt.In(p.rect) {
		return -1, image.Rectangle{}
	}
	top := p.rect.Min.Y + 1
	for i := range p.menu.Items {
		h := b.itemHeight(&p.menu.Items[i])
		row := image.Rect(p.rect.Min.X, top, p.rect.Max.X, top+h)
		if pt.In(row) {
			return i, row
		}
		top += h
	}
	return -1, image.Rectangle{}
}

// Move tracks hover highlighting and switches between open menus while the
// pointer slides along the strip.
func (b *Bar) Move(x, y int) Result {
	if !b.IsOpen() {
		return Result{}
	}
	if y < b.Height() {
		for i, r := range b.titleRects() {
			if image.Pt(x, y).In(r) && i != b.open {
				b.openMenu(i)
				break
			}
		}
		return Result{Consumed: true}
	}
	for depth := len(b.popups) - 1; depth >= 0; depth-- {
		p := &b.popups[depth]
		i, row := b.itemAt(p, x, y)
		if i < 0 {
			continue
		}
		p.hover = i
		b.popups = b.popups[:depth+1]
		it := &p.menu.Items[i]
		if it.Sub != nil && it.Enabled {
			b.popups = append(b.popups, popup{
				menu:  it.Sub,
				rect:  b.layoutPopup(it.Sub, p.rect.Max.X-2, row.Min.Y-1),
				hover: -1,
			})
		}
		return Result{Consumed: true}
	}
	return Result{Consumed: true}
}

// Press handles a button going down at (x, y).
func (b *Bar) Press(x, y int) Result {
	if !b.Visible() {
		return Result{}
	}
	if y >= 0 && y < b.Height() {
		b.captured = true
		for i, r := range b.titleRects() {
			if image.Pt(x, y).In(r) {
				if b.open == i {
					b.close()
				} else {
					b.openMenu(i)
				}
				return Result{Consumed: true}
			}
		}
		b.close()
		return Result{Consumed: true}
	}
	if !b.IsOpen() {
		return Result{}
	}
	b.captured = true
	for depth := len(b.popups) - 1; depth >= 0; depth-- {
		p := &b.popups[depth]
		i, _ := b.itemAt(p, x, y)
		if i < 0 {
			if image.Pt(x, y).In(p.rect) {
				return Result{Consumed: true}
			}
			continue
		}
		it := &p.menu.Items[i]
		switch {
		case it.Separator || !it.Enabled:
			return Result{Consumed: true}
		case it.Sub != nil:
			b.Move(x, y)
			return Result{Consumed: true}
		default:
			b.close()
			return Result{Consumed: true, Activated: true, ID: it.ID}
		}
	}
	// Click outside every popup dismisses the menus.
	b.close()
	return Result{Consumed: true}
}

// Release swallows the button-up matching a consumed press.
func (b *Bar) Release() Result {
	if b.captured {
		b.captured = false
		return Result{Consumed: true}
	}
	return Result{}
}

// Key closes popups on Escape and resolves accelerators.
func (b *Bar) Key(k key.Key, mods key.Mods) Result {
	if b.IsOpen() && k == key.Escape {
		b.close()
		return Result{Consumed: true}
	}
	for _, m := range b.menus {
		if id, ok := m.Accelerator(k, mods); ok {
			b.close()
			return Result{Activated: true, ID: id}
		}
	}
	return Result{}
}

// Draw paints the strip and any open popups over dst.
func (b *Bar) Draw(dst buffer.View) {
	if !b.Visible() {
		return
	}
	t := b.theme
	h := b.Height()
	dst.FillRect(0, 0, dst.Width, h, t.Background)
	dst.FillRect(0, h-1, dst.Width, 1, t.Border)

	ascent := b.face.Metrics().Ascent.Ceil()
	for i, r := range b.titleRects() {
		fg := t.Foreground
		if i == b.open {
			dst.FillRect(r.Min.X, r.Min.Y, r.Dx(), r.Dy()-1, t.Highlight)
			fg = t.HighlightText
		}
		b.text(dst, b.menus[i].Name, r.Min.X+padX, padY+ascent, fg)
	}

	for _, p := range b.popups {
		b.drawPopup(dst, &p, ascent)
	}
}

func (b *Bar) drawPopup(dst buffer.View, p *popup, ascent int) {
	t := b.theme
	r := p.rect
	dst.FillRect(r.Min.X, r.Min.Y, r.Dx(), r.Dy(), t.Background)
	dst.StrokeRect(r.Min.X, r.Min.Y, r.Dx(), r.Dy(), t.Border)

	top := r.Min.Y + 1
	for i := range p.menu.Items {
		it := &p.menu.Items[i]
		ih := b.itemHeight(it)
		if it.Separator {
			dst.FillRect(r.Min.X+4, top+ih/2, r.Dx()-8, 1, t.Border)
			top += ih
			continue
		}
		fg := t.Foreground
		switch {
		case !it.Enabled:
			fg = t.Disabled
		case i == p.hover:
			dst.FillRect(r.Min.X+1, top, r.Dx()-2, ih, t.Highlight)
			fg = t.HighlightText
		}
		baseline := top + itemPadY + ascent
		b.text(dst, it.Label, r.Min.X+padX, baseline, fg)
		if accel := key.Accelerator(it.Key, it.Mods); accel != "" {
			b.text(dst, accel, r.Max.X-padX-arrowWidth-b.textWidth(accel), baseline, fg)
		}
		if it.Sub != nil {
			b.text(dst, ">", r.Max.X-padX-b.textWidth(">"), baseline, fg)
		}
		top += ih
	}
}

func (b *Bar) text(dst buffer.View, s string, x, baseline int, c uint32) {
	d := font.Drawer{
		Dst:  surface{v: dst},
		Src:  image.NewUniform(rgba(c)),
		Face: b.face,
		Dot:  fixed.P(x, baseline),
	}
	d.DrawString(s)
}

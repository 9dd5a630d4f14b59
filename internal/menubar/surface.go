package menubar

import (
	"image"
	"image/color"

	"github.com/1broseidon/pixelwin/internal/buffer"
)

// surface adapts a pixel view to draw.Image so font.Drawer can render into
// it directly.
type surface struct {
	v buffer.View
}

func (s surface) ColorModel() color.Model { return color.RGBAModel }

func (s surface) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.v.Width, s.v.Height)
}

func (s surface) At(x, y int) color.Color {
	r, g, b := buffer.Split(s.v.At(x, y))
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}

func (s surface) Set(x, y int, c color.Color) {
	r, g, b, _ := c.RGBA()
	s.v.Set(x, y, buffer.RGB(uint8(r>>8), uint8(g>>8), uint8(b>>8)))
}

func rgba(c uint32) color.RGBA {
	r, g, b := buffer.Split(c)
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}

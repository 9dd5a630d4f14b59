// Package scaler expands a source pixel buffer into a client-sized surface
// with nearest-neighbour sampling.
package scaler

import "github.com/1broseidon/pixelwin/internal/buffer"

// Mode selects where the scaled image sits inside the client area.
type Mode int

const (
	Stretch Mode = iota
	AspectRatioStretch
	Center
	UpperLeft
)

func (m Mode) String() string {
	switch m {
	case Stretch:
		return "stretch"
	case AspectRatioStretch:
		return "aspect"
	case Center:
		return "center"
	case UpperLeft:
		return "upper-left"
	default:
		return "unknown"
	}
}

// Factors lists the supported integer scale factors in ascending order.
var Factors = []int{1, 2, 4, 8, 16}

// Rect is a placement rectangle in client pixels. X and Y may be negative
// when the client area is smaller than the scaled image.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Place computes the destination rectangle of a srcW x srcH image scaled by
// scale inside a clientW x clientH area.
func Place(mode Mode, srcW, srcH, scale, clientW, clientH int) Rect {
	if scale < 1 {
		scale = 1
	}
	sw, sh := srcW*scale, srcH*scale
	switch mode {
	case Stretch:
		return Rect{Width: clientW, Height: clientH}
	case AspectRatioStretch:
		if srcW <= 0 || srcH <= 0 {
			return Rect{}
		}
		w, h := clientW, clientW*srcH/srcW
		if h > clientH {
			w, h = clientH*srcW/srcH, clientH
		}
		return Rect{X: (clientW - w) / 2, Y: (clientH - h) / 2, Width: w, Height: h}
	case Center:
		return Rect{X: (clientW - sw) / 2, Y: (clientH - sh) / 2, Width: sw, Height: sh}
	default:
		return Rect{Width: sw, Height: sh}
	}
}

// FitScale returns the largest supported factor whose scaled size fits
// within ratio of the usable area. It never returns less than 1.
func FitScale(srcW, srcH, usableW, usableH int, ratio float64) int {
	if ratio <= 0 {
		ratio = 0.75
	}
	maxW := int(float64(usableW) * ratio)
	maxH := int(float64(usableH) * ratio)
	for i := len(Factors) - 1; i > 0; i-- {
		s := Factors[i]
		if srcW*s <= maxW && srcH*s <= maxH {
			return s
		}
	}
	return 1
}

// Render draws src into dst at place and fills the rest of dst with bg.
func Render(dst, src buffer.View, place Rect, bg uint32) {
	if place.Empty() || src.Width <= 0 || src.Height <= 0 {
		dst.Fill(bg)
		return
	}
	fillOutside(dst, place, bg)

	if s := place.Width / src.Width; s >= 1 &&
		place.Width == src.Width*s && place.Height == src.Height*s &&
		place.X >= 0 && place.Y >= 0 &&
		place.X+place.Width <= dst.Width && place.Y+place.Height <= dst.Height {
		expand(dst, src, place.X, place.Y, s)
		return
	}
	resample(dst, src, place)
}

// expand is the exact integer path: each source pixel becomes an s-wide run,
// and each expanded row is copied s-1 times.
func expand(dst, src buffer.View, ox, oy, s int) {
	w := src.Width * s
	for sy := 0; sy < src.Height; sy++ {
		dy := oy + sy*s
		first := dst.Pix[dy*dst.Stride+ox : dy*dst.Stride+ox+w]
		srcRow := src.Row(sy)
		if s == 1 {
			copy(first, srcRow)
		} else {
			for sx, c := range srcRow {
				run := first[sx*s : sx*s+s]
				for i := range run {
					run[i] = c
				}
			}
		}
		for r := 1; r < s; r++ {
			off := (dy+r)*dst.Stride + ox
			copy(dst.Pix[off:off+w], first)
		}
	}
}

// resample handles stretch placement and clipping with a precomputed
// column table. Columns and rows map to floor(d*src/place) exactly.
func resample(dst, src buffer.View, place Rect) {
	x0, y0 := max(place.X, 0), max(place.Y, 0)
	x1 := min(place.X+place.Width, dst.Width)
	y1 := min(place.Y+place.Height, dst.Height)
	if x0 >= x1 || y0 >= y1 {
		return
	}

	cols := make([]int, x1-x0)
	for i := range cols {
		cols[i] = (x0 + i - place.X) * src.Width / place.Width
	}

	prevSy := -1
	var prev []uint32
	for dy := y0; dy < y1; dy++ {
		sy := (dy - place.Y) * src.Height / place.Height
		row := dst.Pix[dy*dst.Stride+x0 : dy*dst.Stride+x1]
		if sy == prevSy {
			copy(row, prev)
			continue
		}
		srcRow := src.Row(sy)
		for i, sx := range cols {
			row[i] = srcRow[sx]
		}
		prevSy, prev = sy, row
	}
}

func fillOutside(dst buffer.View, place Rect, bg uint32) {
	top := max(place.Y, 0)
	bottom := min(place.Y+place.Height, dst.Height)
	if top >= bottom {
		dst.Fill(bg)
		return
	}
	dst.FillRect(0, 0, dst.Width, top, bg)
	dst.FillRect(0, bottom, dst.Width, dst.Height-bottom, bg)
	dst.FillRect(0, top, place.X, bottom-top, bg)
	dst.FillRect(place.X+place.Width, top, dst.Width-place.X-place.Width, bottom-top, bg)
}

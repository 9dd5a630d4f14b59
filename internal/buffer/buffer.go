// Package buffer validates caller supplied 0x00RRGGBB pixel buffers.
package buffer

import (
	"errors"
	"fmt"
)

var (
	ErrTooSmall   = errors.New("buffer too small")
	ErrBadStride  = errors.New("stride smaller than width")
	ErrBadSize    = errors.New("invalid dimensions")
	ErrSizeChange = errors.New("dimensions differ from window buffer size")
)

// View is a bounds-checked window onto a pixel slice. Row y starts at
// Pix[y*Stride].
type View struct {
	Pix    []uint32
	Width  int
	Height int
	Stride int
}

// Check validates buf against width, height and stride and returns a view
// trimmed to exactly stride*height pixels.
func Check(buf []uint32, width, height, stride int) (View, error) {
	if width <= 0 || height <= 0 {
		return View{}, fmt.Errorf("%w: %dx%d", ErrBadSize, width, height)
	}
	if stride < width {
		return View{}, fmt.Errorf("%w: stride %d, width %d", ErrBadStride, stride, width)
	}
	need := stride * height
	if len(buf) < need {
		return View{}, fmt.Errorf("%w: have %d pixels, need %d (%d*%d)", ErrTooSmall, len(buf), need, stride, height)
	}
	return View{Pix: buf[:need], Width: width, Height: height, Stride: stride}, nil
}

// CheckFor is Check plus a comparison against the declared window buffer
// size.
func CheckFor(buf []uint32, width, height, stride, wantWidth, wantHeight int) (View, error) {
	if width != wantWidth || height != wantHeight {
		return View{}, fmt.Errorf("%w: got %dx%d, window buffer is %dx%d", ErrSizeChange, width, height, wantWidth, wantHeight)
	}
	return Check(buf, width, height, stride)
}

// New allocates a zeroed view with stride equal to width.
func New(width, height int) View {
	return View{Pix: make([]uint32, width*height), Width: width, Height: height, Stride: width}
}

// At returns the pixel at (x, y), or 0 outside the view.
func (v View) At(x, y int) uint32 {
	if x < 0 || y < 0 || x >= v.Width || y >= v.Height {
		return 0
	}
	return v.Pix[y*v.Stride+x]
}

// Set writes the pixel at (x, y); writes outside the view are dropped.
func (v View) Set(x, y int, c uint32) {
	if x < 0 || y < 0 || x >= v.Width || y >= v.Height {
		return
	}
	v.Pix[y*v.Stride+x] = c
}

// Row returns the Width pixels of row y.
func (v View) Row(y int) []uint32 {
	off := y * v.Stride
	return v.Pix[off : off+v.Width]
}

// Fill sets every pixel of the view to c.
func (v View) Fill(c uint32) {
	for y := 0; y < v.Height; y++ {
		row := v.Row(y)
		for i := range row {
			row[i] = c
		}
	}
}

// FillRect fills the intersection of the rectangle with the view.
func (v View) FillRect(x, y, w, h int, c uint32) {
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, v.Width), min(y+h, v.Height)
	if x0 >= x1 {
		return
	}
	for yy := y0; yy < y1; yy++ {
		row := v.Pix[yy*v.Stride+x0 : yy*v.Stride+x1]
		for i := range row {
			row[i] = c
		}
	}
}

// StrokeRect draws a one pixel outline.
func (v View) StrokeRect(x, y, w, h int, c uint32) {
	if w <= 0 || h <= 0 {
		return
	}
	v.FillRect(x, y, w, 1, c)
	v.FillRect(x, y+h-1, w, 1, c)
	v.FillRect(x, y, 1, h, c)
	v.FillRect(x+w-1, y, 1, h, c)
}

// RGB packs 8-bit channels into the 0x00RRGGBB pixel format.
func RGB(r, g, b uint8) uint32 {
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// Split unpacks a 0x00RRGGBB pixel.
func Split(c uint32) (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

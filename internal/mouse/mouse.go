// Package mouse tracks cursor, button and wheel state and maps native
// cursor positions into buffer pixels.
package mouse

import "github.com/1broseidon/pixelwin/internal/scaler"

// Mode filters coordinates that fall outside the target area.
type Mode int

const (
	Pass Mode = iota
	Clamp
	Discard
)

// Button indexes the tracked buttons.
type Button int

const (
	Left Button = iota
	Middle
	Right

	buttonCount
)

// Handler holds the raw, window-local mouse state of one window.
type Handler struct {
	x, y    int
	down    [buttonCount]bool
	scrollX float32
	scrollY float32
}

func (h *Handler) Move(x, y int) {
	h.x, h.y = x, y
}

func (h *Handler) SetButton(b Button, down bool) {
	if b >= 0 && b < buttonCount {
		h.down[b] = down
	}
}

// ReleaseAll clears every button, used when focus is lost.
func (h *Handler) ReleaseAll() {
	h.down = [buttonCount]bool{}
}

// BeginFrame drops wheel movement left over from the previous frame.
func (h *Handler) BeginFrame() {
	h.scrollX, h.scrollY = 0, 0
}

func (h *Handler) Scroll(dx, dy float32) {
	h.scrollX += dx
	h.scrollY += dy
}

// TakeScroll returns the wheel deltas of the current frame and resets them.
// ok is false when nothing was scrolled since the frame began or the last
// call.
func (h *Handler) TakeScroll() (dx, dy float32, ok bool) {
	dx, dy = h.scrollX, h.scrollY
	h.scrollX, h.scrollY = 0, 0
	return dx, dy, dx != 0 || dy != 0
}

func (h *Handler) Down(b Button) bool {
	return b >= 0 && b < buttonCount && h.down[b]
}

// Pos maps the cursor into a srcW x srcH buffer drawn at place.
func (h *Handler) Pos(mode Mode, place scaler.Rect, srcW, srcH int) (float32, float32, bool) {
	if place.Empty() || srcW <= 0 || srcH <= 0 {
		return 0, 0, false
	}
	sx := float32(place.Width) / float32(srcW)
	sy := float32(place.Height) / float32(srcH)
	bx := float32(h.x-place.X) / sx
	by := float32(h.y-place.Y) / sy
	return filter(mode, bx, by, srcW, srcH)
}

// Unscaled filters the native cursor position against the client area.
func (h *Handler) Unscaled(mode Mode, clientW, clientH int) (float32, float32, bool) {
	return filter(mode, float32(h.x), float32(h.y), clientW, clientH)
}

func filter(mode Mode, x, y float32, w, h int) (float32, float32, bool) {
	inside := x >= 0 && y >= 0 && x < float32(w) && y < float32(h)
	switch mode {
	case Clamp:
		return clamp(x, float32(w-1)), clamp(y, float32(h-1)), true
	case Discard:
		if !inside {
			return 0, 0, false
		}
	}
	return x, y, true
}

func clamp(v, hi float32) float32 {
	if hi < 0 {
		hi = 0
	}
	return min(max(v, 0), hi)
}

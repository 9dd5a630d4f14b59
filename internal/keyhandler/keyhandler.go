// Package keyhandler tracks per-key down state, frame edges and repeat
// timing for one window.
package keyhandler

import (
	"time"

	"github.com/1broseidon/pixelwin/key"
)

const (
	DefaultDelay = 250 * time.Millisecond
	DefaultRate  = 50 * time.Millisecond
)

// Handler is driven once per frame: BeginFrame, then the drained key and
// text events, then EndFrame. Queries between frames observe that frame.
type Handler struct {
	delay time.Duration
	rate  time.Duration

	down         [key.Count]bool
	justPressed  [key.Count]bool
	justReleased [key.Count]bool
	repeated     [key.Count]bool
	pressedAt    [key.Count]time.Time
	lastReport   [key.Count]time.Time

	callback func(rune)
	onPanic  func(any)
}

// New returns a handler with the default repeat delay and rate.
func New() *Handler {
	return &Handler{delay: DefaultDelay, rate: DefaultRate}
}

func (h *Handler) SetRepeatDelay(d time.Duration) {
	if d >= 0 {
		h.delay = d
	}
}

func (h *Handler) SetRepeatRate(d time.Duration) {
	if d >= 0 {
		h.rate = d
	}
}

// SetCallback installs the text input callback. onPanic, when non-nil,
// receives the recovered value if the callback panics.
func (h *Handler) SetCallback(cb func(rune), onPanic func(any)) {
	h.callback = cb
	h.onPanic = onPanic
}

// BeginFrame clears the edges recorded by the previous frame.
func (h *Handler) BeginFrame() {
	h.justPressed = [key.Count]bool{}
	h.justReleased = [key.Count]bool{}
	h.repeated = [key.Count]bool{}
}

// SetKeyState records a down or up transition observed at now.
func (h *Handler) SetKeyState(k key.Key, down bool, now time.Time) {
	if k >= key.Count {
		return
	}
	if down {
		if !h.down[k] {
			h.justPressed[k] = true
			h.pressedAt[k] = now
			h.lastReport[k] = now
		}
		h.down[k] = true
		return
	}
	if h.down[k] {
		h.justReleased[k] = true
	}
	h.down[k] = false
}

// Char delivers one rune from the platform text input layer.
func (h *Handler) Char(r rune) {
	if h.callback == nil {
		return
	}
	defer func() {
		if p := recover(); p != nil && h.onPanic != nil {
			h.onPanic(p)
		}
	}()
	h.callback(r)
}

// EndFrame evaluates repeat timers for held keys at now.
func (h *Handler) EndFrame(now time.Time) {
	for k := range h.down {
		if !h.down[k] || h.justPressed[k] {
			continue
		}
		if now.Sub(h.pressedAt[k]) < h.delay || now.Sub(h.lastReport[k]) < h.rate {
			continue
		}
		h.repeated[k] = true
		h.lastReport[k] = now
	}
}

// ReleaseAll drops every held key, used when focus is lost so keys held
// while the window was inactive are not stuck down.
func (h *Handler) ReleaseAll() {
	for k := range h.down {
		if h.down[k] {
			h.justReleased[k] = true
		}
		h.down[k] = false
	}
}

func (h *Handler) IsKeyDown(k key.Key) bool {
	return k < key.Count && h.down[k]
}

func (h *Handler) IsKeyPressed(k key.Key, repeat bool) bool {
	if k >= key.Count {
		return false
	}
	if h.justPressed[k] {
		return true
	}
	return repeat && h.repeated[k]
}

func (h *Handler) IsKeyReleased(k key.Key) bool {
	return k < key.Count && h.justReleased[k]
}

// Keys returns the keys currently held.
func (h *Handler) Keys() []key.Key {
	return collect(&h.down)
}

// KeysPressed returns keys that went down this frame, plus repeats when
// repeat is set.
func (h *Handler) KeysPressed(repeat bool) []key.Key {
	var keys []key.Key
	for k := range h.justPressed {
		if h.justPressed[k] || (repeat && h.repeated[k]) {
			keys = append(keys, key.Key(k))
		}
	}
	return keys
}

// KeysReleased returns keys that went up this frame.
func (h *Handler) KeysReleased() []key.Key {
	return collect(&h.justReleased)
}

// Mods folds the held modifier keys into a bitset.
func collect(set *[key.Count]bool) []key.Key {
	var keys []key.Key
	for k, on := range set {
		if on {
			keys = append(keys, key.Key(k))
		}
	}
	return keys
}

package platform

import "github.com/1broseidon/pixelwin/key"

// EventType identifies the kind of a translated native event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventChar
	EventMouseMove
	EventMouseButton
	EventScroll
	EventFocus
	EventResize
	EventClose
	EventMenu
)

// MouseButton mirrors the façade's button set.
type MouseButton int

const (
	ButtonLeft MouseButton = iota
	ButtonMiddle
	ButtonRight
)

// Event is a native event translated into the common model. Only the fields
// relevant to Type are set.
type Event struct {
	Type EventType

	Key  key.Key
	Down bool

	Rune rune

	X, Y   int
	Button MouseButton

	DX, DY float32

	Focused bool

	Width, Height int

	MenuID int
}

func KeyEvent(k key.Key, down bool) Event {
	return Event{Type: EventKey, Key: k, Down: down}
}

func CharEvent(r rune) Event {
	return Event{Type: EventChar, Rune: r}
}

func MoveEvent(x, y int) Event {
	return Event{Type: EventMouseMove, X: x, Y: y}
}

func ButtonEvent(b MouseButton, down bool, x, y int) Event {
	return Event{Type: EventMouseButton, Button: b, Down: down, X: x, Y: y}
}

func ScrollEvent(dx, dy float32) Event {
	return Event{Type: EventScroll, DX: dx, DY: dy}
}

func FocusEvent(focused bool) Event {
	return Event{Type: EventFocus, Focused: focused}
}

func ResizeEvent(w, h int) Event {
	return Event{Type: EventResize, Width: w, Height: h}
}

func CloseEvent() Event {
	return Event{Type: EventClose}
}

func MenuEvent(id int) Event {
	return Event{Type: EventMenu, MenuID: id}
}

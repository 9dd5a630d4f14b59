package pixelwin

import (
	"log/slog"

	"github.com/1broseidon/pixelwin/internal/config"
	"github.com/1broseidon/pixelwin/internal/mouse"
	"github.com/1broseidon/pixelwin/internal/platform"
	"github.com/1broseidon/pixelwin/internal/scaler"
)

// Scale is the integer factor the buffer is magnified by.
type Scale int

const (
	ScaleX1 Scale = iota
	ScaleX2
	ScaleX4
	ScaleX8
	ScaleX16
	// ScaleFitScreen picks the largest factor that keeps the window within
	// a share of the primary display's usable area.
	ScaleFitScreen
)

func (s Scale) factor() int {
	switch s {
	case ScaleX2:
		return 2
	case ScaleX4:
		return 4
	case ScaleX8:
		return 8
	case ScaleX16:
		return 16
	default:
		return 1
	}
}

// ScaleMode places the scaled buffer inside a client area of another size.
type ScaleMode = scaler.Mode

const (
	ScaleModeStretch            = scaler.Stretch
	ScaleModeAspectRatioStretch = scaler.AspectRatioStretch
	ScaleModeCenter             = scaler.Center
	ScaleModeUpperLeft          = scaler.UpperLeft
)

// KeyRepeat selects whether held keys report again after the repeat delay.
type KeyRepeat bool

const (
	KeyRepeatYes KeyRepeat = true
	KeyRepeatNo  KeyRepeat = false
)

type MouseButton = mouse.Button

const (
	MouseLeft   = mouse.Left
	MouseMiddle = mouse.Middle
	MouseRight  = mouse.Right
)

// MouseMode filters positions outside the buffer or client area.
type MouseMode = mouse.Mode

const (
	MousePass    = mouse.Pass
	MouseClamp   = mouse.Clamp
	MouseDiscard = mouse.Discard
)

type CursorStyle = platform.CursorStyle

const (
	CursorArrow           = platform.CursorArrow
	CursorIbeam           = platform.CursorIbeam
	CursorCrosshair       = platform.CursorCrosshair
	CursorClosedHand      = platform.CursorClosedHand
	CursorOpenHand        = platform.CursorOpenHand
	CursorResizeLeftRight = platform.CursorResizeLeftRight
	CursorResizeUpDown    = platform.CursorResizeUpDown
	CursorResizeAll       = platform.CursorResizeAll
)

// InputCallback receives the characters typed into a window.
type InputCallback func(r rune)

// WindowOptions controls how New creates a window.
type WindowOptions struct {
	Borderless   bool
	Title        bool
	Resize       bool
	Scale        Scale
	ScaleMode    ScaleMode
	Topmost      bool
	Transparency bool
	// None leaves input focus where it is.
	None bool

	// Backend overrides the configured backend when set.
	Backend string
	// Config replaces the configuration file. Nil loads it from the
	// default location.
	Config *config.Config
	// Logger receives diagnostics. Nil builds a stderr text logger at the
	// configured level.
	Logger *slog.Logger
}

func DefaultWindowOptions() WindowOptions {
	return WindowOptions{
		Title:     true,
		Scale:     ScaleX1,
		ScaleMode: ScaleModeUpperLeft,
	}
}

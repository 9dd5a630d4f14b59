package pixelwin

import "github.com/1broseidon/pixelwin/internal/mainthread"

// Run hands the process main thread to the window system and calls fn on
// another goroutine, returning when fn does. Call it from main on systems
// whose toolkit only accepts calls from the main thread (macOS). Elsewhere
// it is optional.
func Run(fn func()) {
	mainthread.Run(fn)
}

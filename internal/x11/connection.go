package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
)

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window
}

// NewConnection connects to the display named by $DISPLAY and loads the
// keyboard mapping used for keysym lookups.
func NewConnection() (*Connection, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}

	keybind.Initialize(xu)

	return &Connection{
		XUtil: xu,
		Root:  xu.RootWin(),
	}, nil
}

// Ping makes a round trip to the server. It fails once the connection is
// gone, which event reads alone never report.
func (c *Connection) Ping() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("x11 connection closed: %v", r)
		}
	}()
	if _, err := xproto.GetInputFocus(c.XUtil.Conn()).Reply(); err != nil {
		return fmt.Errorf("x11 round trip failed: %w", err)
	}
	return nil
}

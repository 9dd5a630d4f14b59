package pixelwin

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/1broseidon/pixelwin/internal/config"
	"github.com/1broseidon/pixelwin/internal/platform"
)

// Display describes a monitor and its usable work area.
type Display = platform.Display

// Drivers hold the window system connection, so every window of a process
// shares the one opened for its backend name. Headless drivers are keyed by
// their virtual screen size as well.
var (
	driversMu sync.Mutex
	drivers   = map[string]platform.Driver{}
)

func openDriver(name string, cfg *config.Config, logger *slog.Logger) (platform.Driver, error) {
	if name == "" {
		name = config.BackendAuto
	}
	cacheKey := name
	if name == config.BackendHeadless {
		cacheKey = fmt.Sprintf("%s:%dx%d", name, cfg.Headless.Width, cfg.Headless.Height)
	}
	driversMu.Lock()
	defer driversMu.Unlock()
	if d, ok := drivers[cacheKey]; ok {
		return d, nil
	}

	var d platform.Driver
	if name == config.BackendHeadless {
		d = platform.NewHeadlessDriver(cfg.Headless.Width, cfg.Headless.Height)
	} else {
		var err error
		d, err = platform.OpenDriver(name, logger)
		if err != nil {
			return nil, err
		}
	}
	drivers[cacheKey] = d
	return d, nil
}

func loadConfig(cfg *config.Config) (*config.Config, error) {
	if cfg != nil {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return config.Load()
}

func newLogger(cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
}

// Displays lists the monitors of the configured backend.
func Displays() ([]Display, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	d, err := openDriver(cfg.Backend, cfg, newLogger(cfg))
	if err != nil {
		return nil, err
	}
	return d.Displays()
}

// BackendName reports which window system the configured backend resolves
// to.
func BackendName() (string, error) {
	cfg, err := config.Load()
	if err != nil {
		return "", err
	}
	d, err := openDriver(cfg.Backend, cfg, newLogger(cfg))
	if err != nil {
		return "", err
	}
	return d.Name(), nil
}

package platform

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// Auto selects the first driver that connects, in preference order.
const Auto = "auto"

// Opener connects to a window system.
type Opener func(logger *slog.Logger) (Driver, error)

var (
	registryMu sync.Mutex
	registry   = map[string]Opener{}
	preference = []string{"win32", "x11", "sdl"}
)

// ErrUnknownDriver is returned for a driver name nothing registered.
var ErrUnknownDriver = errors.New("unknown backend")

// Register makes a driver available under name. Build-tagged backend files
// call it from init.
func Register(name string, open Opener) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = open
}

// Drivers lists the registered driver names.
func Drivers() []string {
	registryMu.Lock()
	defer registryMu.Unlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OpenDriver connects the named driver. With Auto, every registered driver
// is tried in preference order and the failures are joined.
func OpenDriver(name string, logger *slog.Logger) (Driver, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if name == "" {
		name = Auto
	}

	registryMu.Lock()
	open, ok := registry[name]
	var candidates []string
	if name == Auto {
		for _, n := range preference {
			if _, ok := registry[n]; ok {
				candidates = append(candidates, n)
			}
		}
	}
	registryMu.Unlock()

	if name != Auto {
		if !ok {
			return nil, fmt.Errorf("%w %q (available: %v)", ErrUnknownDriver, name, Drivers())
		}
		return open(logger)
	}

	if len(candidates) == 0 {
		return nil, fmt.Errorf("no window system backend compiled in for this platform")
	}
	var errs []error
	for _, n := range candidates {
		registryMu.Lock()
		open := registry[n]
		registryMu.Unlock()
		d, err := open(logger)
		if err == nil {
			logger.Debug("selected backend", "backend", n)
			return d, nil
		}
		logger.Debug("backend unavailable", "backend", n, "error", err)
		errs = append(errs, fmt.Errorf("%s: %w", n, err))
	}
	return nil, errors.Join(errs...)
}

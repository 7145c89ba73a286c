package tiledraw

import (
	"fmt"
	"sort"
	"sync"
)

// Backend names.
const (
	BackendNull   = "null"
	BackendImage  = "image"
	BackendSDL    = "sdl"
	BackendKMSDRM = "kmsdrm"
)

// Factory creates a backend for the given options.
type Factory func(opts Options) (Backend, error)

var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
	// First registered name in this list wins in CreateDefault.
	backendPriority = []string{BackendSDL, BackendKMSDRM, BackendImage, BackendNull}
)

func init() {
	Register(BackendNull, func(opts Options) (Backend, error) {
		backend, err := NewNullBackend(opts)
		if err != nil {
			return nil, err
		}
		return backend, nil
	})
	Register(BackendImage, func(opts Options) (Backend, error) {
		backend, err := NewImageBackend(opts)
		if err != nil {
			return nil, err
		}
		return backend, nil
	})
}

// Register registers a backend factory under name, replacing any previous
// one. Backend packages call it from init.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[name] = factory
}

// Unregister removes a backend from the registry.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// Available returns the registered backend names, sorted.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}

// Create builds the backend registered under name.
func Create(name string, opts Options) (Backend, error) {
	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
	}
	return factory(opts)
}

// CreateDefault builds the first backend in priority order that constructs
// successfully. Options errors are returned immediately since every backend
// would reject them.
func CreateDefault(opts Options) (Backend, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	var lastErr error
	for _, name := range backendPriority {
		if !IsRegistered(name) {
			continue
		}
		backend, err := Create(name, opts)
		if err == nil {
			return backend, nil
		}
		Logger().WithError(err).WithField("backend", name).Warn("Backend unavailable, trying next")
		lastErr = err
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, ErrBackendNotAvailable
}

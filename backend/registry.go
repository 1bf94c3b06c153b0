package backend

import (
	"sync"

	unirender "github.com/SlawekNowy/UniRender-sub000"
	"github.com/SlawekNowy/UniRender-sub000/scene"
)

// registry holds the in-process backend factories (the stub backend and
// any other Go-native backend registered via init()). Shared-library
// backends resolved by Loader are cached separately (loader.go) since
// they aren't constructed through this map.
var (
	registryMu sync.RWMutex
	backends   = make(map[string]CreateRendererFunc)
	// backendPriority orders Default()'s search when more than one
	// backend is registered; real deployments register exactly one
	// native plug-in via Loader and reach it by id directly, so this
	// only matters for the in-process test/stub backends.
	backendPriority = []string{BackendStub}
)

// Register registers a backend factory under name. Typically called from
// an init() function. Replaces any existing registration for the name.
func Register(name string, factory CreateRendererFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = factory
}

// Unregister removes a backend registration. Useful in tests.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// Available returns the names of all registered in-process backends.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	return names
}

// IsRegistered reports whether name has a registered factory.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// Get constructs a backend instance by name. Returns ErrBackendNotAvailable
// if name has no registered factory.
func Get(name string, s *scene.Scene, flags Flags) (RenderBackend, error) {
	registryMu.RLock()
	factory, ok := backends[name]
	registryMu.RUnlock()
	if !ok {
		unirender.Logger().Warn("backend not available", "id", name)
		return nil, ErrBackendNotAvailable
	}
	unirender.Logger().Info("backend loaded", "id", name)
	return factory(s, flags)
}

// Default constructs the best available in-process backend per
// backendPriority, falling back to any other registered backend.
func Default(s *scene.Scene, flags Flags) (RenderBackend, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range backendPriority {
		if factory, ok := backends[name]; ok {
			return factory(s, flags)
		}
	}
	for _, factory := range backends {
		return factory(s, flags)
	}
	return nil, ErrBackendNotAvailable
}

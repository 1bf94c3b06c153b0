// Package backend defines the renderer plug-in surface a Scene is
// ultimately rendered through (§4.7, §6).
//
// A backend is either registered in-process (the stub backend used by
// tests, self-registered on import) or resolved dynamically from a
// shared library by Loader.
//
// # In-process registration
//
// Backends self-register from an init():
//
//	import _ "github.com/SlawekNowy/UniRender-sub000/backend" // registers "stub"
//
// # Dynamic plug-in loading
//
// Loader resolves a shared library under the configured modules root and
// caches the loaded RenderBackend by identifier:
//
//	loader := backend.NewLoader("modules", "cpu")
//	rb, err := loader.Create("cycles", scene, backend.FlagNone)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer loader.Close()
//
// UnloadRendererLibrary drops a single cache entry; the shared library
// itself may remain mapped while handles exist, matching spec.md §4.7.
//
// # Backend selection by name
//
// Get/Default reach the in-process registry; Loader.Create reaches the
// dynamic one. Both return the same RenderBackend interface, so callers
// that only need the lifecycle surface don't need to know which loaded
// the handle.
package backend

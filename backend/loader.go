package backend

import (
	"fmt"
	"path/filepath"
	"runtime"
	"sync"

	unirender "github.com/SlawekNowy/UniRender-sub000"
	"github.com/SlawekNowy/UniRender-sub000/scene"
	"github.com/ebitengine/purego"
)

// Loader dynamically resolves renderer plug-ins from shared libraries
// (§4.7, §6). Loaded libraries are cached by identifier; UnloadRendererLibrary
// drops the cache entry without necessarily unmapping the library, matching
// spec.md §4.7 ("library may remain mapped while handles exist").
type Loader struct {
	modulesRoot    string
	lookupLocation string

	mu        sync.Mutex
	libraries map[string]uintptr
	creators  map[string]func(sceneHandle uintptr, flags uint32, outHandle *uintptr, outErr *uintptr) bool
}

// NewLoader returns a Loader that searches
// <modulesRoot>/<lookupLocation>/<id>/ for UniRender_<id>.dll on Windows
// and libUniRender_<id>.so / libUniRender_<id>.dylib elsewhere, for
// each backend id, per spec.md §6's search order
// "<program>/modules/<lookup_location>/<id>/".
func NewLoader(modulesRoot, lookupLocation string) *Loader {
	return &Loader{
		modulesRoot:    modulesRoot,
		lookupLocation: lookupLocation,
		libraries:      make(map[string]uintptr),
		creators:       make(map[string]func(uintptr, uint32, *uintptr, *uintptr) bool),
	}
}

func libraryFileName(id string) string {
	switch runtime.GOOS {
	case "windows":
		return "UniRender_" + id + ".dll"
	case "darwin":
		return "libUniRender_" + id + ".dylib"
	default:
		return "libUniRender_" + id + ".so"
	}
}

// Create loads (if not already cached) the shared library for id and
// invokes its create_renderer entry point, returning the resulting
// RenderBackend. s may be nil for backends that only need Flags.
func (l *Loader) Create(id string, s *scene.Scene, flags Flags) (RenderBackend, error) {
	create, err := l.resolve(id)
	if err != nil {
		return nil, err
	}

	var outHandle, outErr uintptr
	if ok := create(sceneHandleOf(s), uint32(flags), &outHandle, &outErr); !ok {
		msg := stringFromCStringPtr(outErr)
		return nil, unirender.NewError(unirender.BackendFailure, "Loader.Create", msg)
	}

	rb := newLibraryBackend(id, outHandle)
	l.mu.Lock()
	lib := l.libraries[id]
	l.mu.Unlock()
	rb.Bind(lib)
	return rb, nil
}

// resolve dlopen's the backend's shared library (if not already cached)
// and registers its create_renderer symbol as a typed Go func.
func (l *Loader) resolve(id string) (func(uintptr, uint32, *uintptr, *uintptr) bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if create, ok := l.creators[id]; ok {
		return create, nil
	}

	path := filepath.Join(l.modulesRoot, l.lookupLocation, id, libraryFileName(id))
	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, unirender.WrapError(unirender.NotFound, "Loader.resolve",
			fmt.Sprintf("backend library not found: %s", path), err)
	}

	var create func(sceneHandle uintptr, flags uint32, outHandle *uintptr, outErr *uintptr) bool
	purego.RegisterLibFunc(&create, handle, "create_renderer")

	l.libraries[id] = handle
	l.creators[id] = create
	unirender.Logger().Info("backend library loaded", "id", id, "path", path)
	return create, nil
}

// UnloadRendererLibrary drops the cached handle for id. The backend
// remains usable for any RenderBackend instances already created from it;
// a subsequent Create re-resolves the symbol from disk.
func (l *Loader) UnloadRendererLibrary(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.libraries, id)
	delete(l.creators, id)
	unirender.Logger().Info("backend library unloaded", "id", id)
}

// Close clears every cached library, matching spec.md §4.7's close().
func (l *Loader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.libraries = make(map[string]uintptr)
	l.creators = make(map[string]func(uintptr, uint32, *uintptr, *uintptr) bool)
}

// sceneHandleOf is the marshaling boundary between a live *scene.Scene and
// the opaque scene handle a C ABI backend expects. The concrete
// representation is backend-defined (an index into a handle table, a
// pinned pointer, ...); this layer only needs a stable non-zero value to
// pass through, since interpreting it is entirely the backend's concern.
func sceneHandleOf(s *scene.Scene) uintptr {
	if s == nil {
		return 0
	}
	return pinnedSceneHandle(s)
}

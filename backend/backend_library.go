package backend

import (
	"context"
	"sync"
	"time"
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/google/uuid"
)

// sceneHandles pins the *scene.Scene values handed across the plug-in ABI
// boundary behind stable integer ids, instead of converting a Go pointer
// to a uintptr directly (unsafe against the garbage collector once the
// call returns). The backend treats the id as opaque.
var (
	sceneHandleMu   sync.Mutex
	sceneHandles    = make(map[uintptr]any)
	sceneHandleNext uintptr = 1
)

func pinnedSceneHandle(s any) uintptr {
	sceneHandleMu.Lock()
	defer sceneHandleMu.Unlock()
	id := sceneHandleNext
	sceneHandleNext++
	sceneHandles[id] = s
	return id
}

func cString(s string) *byte {
	b := append([]byte(s), 0)
	return &b[0]
}

// stringFromCStringPtr reads a NUL-terminated C string at ptr. Used only
// for the short, backend-owned error messages returned by create_renderer
// and the lifecycle calls below.
func stringFromCStringPtr(ptr uintptr) string {
	if ptr == 0 {
		return ""
	}
	length := 0
	for {
		b := *(*byte)(unsafe.Pointer(ptr + uintptr(length)))
		if b == 0 {
			break
		}
		length++
	}
	return string(unsafe.Slice((*byte)(unsafe.Pointer(ptr)), length))
}

// libraryBackend adapts a shared library's C-linkable lifecycle functions
// (§4.7's virtual surface) to the RenderBackend interface. Every method
// resolved here is optional: a backend that doesn't export a given symbol
// simply treats that operation as a no-op, since §4.7 only mandates
// create_renderer itself.
type libraryBackend struct {
	id           string
	nativeHandle uintptr

	wait              func(handle uintptr) int32
	start             func(handle uintptr) int32
	startRender       func(handle uintptr) int32
	getProgress       func(handle uintptr, outProgress *float32, outDone *int32) int32
	reset             func(handle uintptr) int32
	restart           func(handle uintptr) int32
	stop              func(handle uintptr) int32
	pause             func(handle uintptr) int32
	resume            func(handle uintptr) int32
	suspend           func(handle uintptr) int32
	beginSceneEdit    func(handle uintptr) int32
	endSceneEdit      func(handle uintptr) int32
	syncEditedActor   func(handle uintptr, uuidBytes *byte) int32
	export            func(handle uintptr, path *byte) int32
	saveRenderPreview func(handle uintptr) int32
	closeFn           func(handle uintptr)
}

// newLibraryBackend records the backend id and the handle create_renderer
// returned; the optional lifecycle symbols are resolved separately by Bind.
func newLibraryBackend(id string, nativeHandle uintptr) *libraryBackend {
	return &libraryBackend{id: id, nativeHandle: nativeHandle}
}

// bindOptional registers name against lib into *fn if the symbol exists,
// silently leaving *fn nil otherwise (purego.Dlsym's error is the only
// portable way to detect an absent optional export).
func bindOptional[F any](lib uintptr, name string, fn *F) {
	if _, err := purego.Dlsym(lib, name); err != nil {
		return
	}
	purego.RegisterLibFunc(fn, lib, name)
}

// Bind resolves this backend's optional lifecycle symbols from lib. Called
// by Loader immediately after create_renderer succeeds.
func (b *libraryBackend) Bind(lib uintptr) {
	bindOptional(lib, "wait", &b.wait)
	bindOptional(lib, "start", &b.start)
	bindOptional(lib, "start_render", &b.startRender)
	bindOptional(lib, "get_progress", &b.getProgress)
	bindOptional(lib, "reset", &b.reset)
	bindOptional(lib, "restart", &b.restart)
	bindOptional(lib, "stop", &b.stop)
	bindOptional(lib, "pause", &b.pause)
	bindOptional(lib, "resume", &b.resume)
	bindOptional(lib, "suspend", &b.suspend)
	bindOptional(lib, "begin_scene_edit", &b.beginSceneEdit)
	bindOptional(lib, "end_scene_edit", &b.endSceneEdit)
	bindOptional(lib, "sync_edited_actor", &b.syncEditedActor)
	bindOptional(lib, "export", &b.export)
	bindOptional(lib, "save_render_preview", &b.saveRenderPreview)
	bindOptional(lib, "close", &b.closeFn)
}

func (b *libraryBackend) Name() string { return b.id }

func (b *libraryBackend) Wait(ctx context.Context) error {
	if b.wait != nil {
		done := make(chan struct{})
		go func() { b.wait(b.nativeHandle); close(done) }()
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if b.getProgress == nil {
		return nil
	}

	// No wait export: fall back to polling get_progress at the
	// cancellation-check cadence spec.md §5 documents.
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		if _, done := b.GetProgress(); done {
			return nil
		}
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (b *libraryBackend) Start() error { return callOrNil(b.start, b.nativeHandle) }

func (b *libraryBackend) StartRender() error { return callOrNil(b.startRender, b.nativeHandle) }

func (b *libraryBackend) GetProgress() (float32, bool) {
	if b.getProgress == nil {
		return 0, false
	}
	var progress float32
	var done int32
	b.getProgress(b.nativeHandle, &progress, &done)
	return progress, done != 0
}

func (b *libraryBackend) Reset() error   { return callOrNil(b.reset, b.nativeHandle) }
func (b *libraryBackend) Restart() error { return callOrNil(b.restart, b.nativeHandle) }
func (b *libraryBackend) Stop() error    { return callOrNil(b.stop, b.nativeHandle) }
func (b *libraryBackend) Pause() error   { return callOrNil(b.pause, b.nativeHandle) }
func (b *libraryBackend) Resume() error  { return callOrNil(b.resume, b.nativeHandle) }
func (b *libraryBackend) Suspend() error { return callOrNil(b.suspend, b.nativeHandle) }

func (b *libraryBackend) BeginSceneEdit() error {
	return callOrNil(b.beginSceneEdit, b.nativeHandle)
}

func (b *libraryBackend) EndSceneEdit() error {
	return callOrNil(b.endSceneEdit, b.nativeHandle)
}

func (b *libraryBackend) SyncEditedActor(id uuid.UUID) error {
	if b.syncEditedActor == nil {
		return nil
	}
	idCopy := id
	if b.syncEditedActor(b.nativeHandle, &idCopy[0]) == 0 {
		return ErrNotInitialized
	}
	return nil
}

func (b *libraryBackend) Export(path string) error {
	if b.export == nil {
		return nil
	}
	if b.export(b.nativeHandle, cString(path)) == 0 {
		return ErrNotInitialized
	}
	return nil
}

func (b *libraryBackend) SaveRenderPreview() error {
	return callOrNil(b.saveRenderPreview, b.nativeHandle)
}

func (b *libraryBackend) Close() {
	if b.closeFn != nil {
		b.closeFn(b.nativeHandle)
	}
}

func callOrNil(fn func(uintptr) int32, handle uintptr) error {
	if fn == nil {
		return nil
	}
	if fn(handle) == 0 {
		return ErrNotInitialized
	}
	return nil
}

// pollInterval is the cooperative-cancellation poll cadence spec.md §5
// documents backends as honoring ("typical poll cadence: 1s"); kept here
// so libraryBackend.Wait's fallback busy-loop (when a backend exports no
// wait symbol) doesn't spin.
const pollInterval = time.Second

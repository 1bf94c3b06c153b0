package denoise

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
)

// libraryFileName mirrors backend.Loader's convention, substituting the
// module id "denoise" for a renderer backend id (§4.9, §6's naming scheme
// generalized to the denoiser plug-in).
func libraryFileName() string {
	switch runtime.GOOS {
	case "windows":
		return "UniRender_denoise.dll"
	case "darwin":
		return "libUniRender_denoise.dylib"
	default:
		return "libUniRender_denoise.so"
	}
}

// Loader dynamically resolves a denoiser implementation from a shared
// library, the same plug-in mechanism package backend uses for renderer
// backends (§4.9 treats the concrete denoiser as an external collaborator;
// only the call shape is specified here).
type Loader struct {
	modulesRoot    string
	lookupLocation string

	mu      sync.Mutex
	handle  uintptr
	resolved bool
	denoiseFn func(widthHeight, flags uint32, beauty, albedo, normal, out uintptr, beautyLen, albedoLen, normalLen, outLen uint32) bool
}

// NewLoader returns a Loader searching
// <modulesRoot>/<lookupLocation>/denoise/ for UniRender_denoise.dll on
// Windows and libUniRender_denoise.so / libUniRender_denoise.dylib elsewhere.
func NewLoader(modulesRoot, lookupLocation string) *Loader {
	return &Loader{modulesRoot: modulesRoot, lookupLocation: lookupLocation}
}

// Load resolves the shared library (if not already resolved) and returns a
// Device bound to its exported `denoise` C entry point.
func (l *Loader) Load() (Device, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.resolved {
		path := filepath.Join(l.modulesRoot, l.lookupLocation, "denoise", libraryFileName())
		handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err != nil {
			return nil, fmt.Errorf("denoise: library not found: %s: %w", path, err)
		}
		var fn func(uint32, uint32, uintptr, uintptr, uintptr, uintptr, uint32, uint32, uint32, uint32) bool
		purego.RegisterLibFunc(&fn, handle, "denoise")
		l.handle = handle
		l.denoiseFn = fn
		l.resolved = true
	}

	return &libraryDevice{loader: l}, nil
}

// Close releases the cached library handle.
func (l *Loader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.handle = 0
	l.denoiseFn = nil
	l.resolved = false
}

// libraryDevice adapts a Loader's resolved C entry point to the Device
// interface. The plug-in's `denoise` symbol has no native progress/cancel
// hook in this simplified ABI, so progress is reported as a single 100%
// completion after the call returns, matching PassthroughDevice's
// contract for callers that don't need fine-grained progress.
type libraryDevice struct {
	loader *Loader
}

func (d *libraryDevice) Denoise(ctx context.Context, info Info, inputs ImageInputs, output ImageData, progress ProgressFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	d.loader.mu.Lock()
	fn := d.loader.denoiseFn
	d.loader.mu.Unlock()
	if fn == nil {
		return fmt.Errorf("denoise: library not loaded")
	}

	var albedoPtr, normalPtr uintptr
	var albedoLen, normalLen uint32
	if inputs.Albedo != nil && len(inputs.Albedo.Data) > 0 {
		albedoPtr = uintptr(unsafe.Pointer(&inputs.Albedo.Data[0]))
		albedoLen = uint32(len(inputs.Albedo.Data))
	}
	if inputs.Normal != nil && len(inputs.Normal.Data) > 0 {
		normalPtr = uintptr(unsafe.Pointer(&inputs.Normal.Data[0]))
		normalLen = uint32(len(inputs.Normal.Data))
	}

	var beautyPtr, outPtr uintptr
	if len(inputs.Beauty.Data) > 0 {
		beautyPtr = uintptr(unsafe.Pointer(&inputs.Beauty.Data[0]))
	}
	if len(output.Data) > 0 {
		outPtr = uintptr(unsafe.Pointer(&output.Data[0]))
	}

	flags := uint32(0)
	if info.HDR {
		flags |= 1
	}
	if info.Lightmap {
		flags |= 2
	}
	widthHeight := info.Width<<16 | (info.Height & 0xFFFF)

	ok := fn(widthHeight, flags, beautyPtr, albedoPtr, normalPtr, outPtr,
		uint32(len(inputs.Beauty.Data)), albedoLen, normalLen, uint32(len(output.Data)))
	if !ok {
		return fmt.Errorf("denoise: plug-in reported failure")
	}
	if progress != nil && !progress(1) {
		return ErrCancelled
	}
	return nil
}

func (d *libraryDevice) Close() {}

package backend

import (
	"context"
	"errors"

	"github.com/SlawekNowy/UniRender-sub000/scene"
	"github.com/google/uuid"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend id has
	// no registered factory and no loadable shared library.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned by StubBackend.SyncEditedActor when no
	// BeginSceneEdit/EndSceneEdit bracket is open, and by a library-backed
	// RenderBackend when one of its lifecycle exports reports failure.
	ErrNotInitialized = errors.New("backend: not initialized")
)

// Flags configures renderer creation. The wire values are an assumption —
// original_source's Flags type is opaque from the headers retrieved for
// this package. Nothing in this module examines the bits; they are passed
// through to the backend unchanged.
type Flags uint32

const (
	FlagNone Flags = 0
	// FlagEnableLiveEditing asks the backend to keep the scene mutable after
	// creation via BeginSceneEdit/EndSceneEdit/SyncEditedActor. StubBackend
	// accepts scene edits whether or not it is set.
	FlagEnableLiveEditing Flags = 1 << 0
	// FlagDisableColorManagement asks the backend to skip its OCIO color
	// transform. FinalizeImage in package render does not read it.
	FlagDisableColorManagement Flags = 1 << 1
)

// CreateRendererFunc matches the plug-in ABI entry point (§6):
// `bool create_renderer(const Scene&, Flags, out Handle, out error_string)`.
// A Go-native in-process backend registers one of these as a
// BackendFactory wrapper; a shared-library backend is adapted to this
// signature by Loader from the raw C symbol.
type CreateRendererFunc func(s *scene.Scene, flags Flags) (RenderBackend, error)

// RenderBackend is the virtual surface every backend plug-in implements
// (§4.7). The render-stage state machine in package render drives a
// render job entirely through this interface; nothing in this module
// computes a pixel itself.
type RenderBackend interface {
	// Name returns the backend identifier the loader registered it under.
	Name() string

	// Wait blocks until the render job reaches a terminal state (Complete,
	// Failed, or Cancelled) or ctx is done.
	Wait(ctx context.Context) error

	// Start begins the render-stage state machine from InitializeScene.
	Start() error
	// StartRender kicks off the backend's own render loop once the state
	// machine has reached a render-eligible stage.
	StartRender() error

	// GetProgress reports fractional completion in [0,1] and whether the
	// job has reached a terminal state.
	GetProgress() (progress float32, done bool)

	Reset() error
	Restart() error
	Stop() error
	Pause() error
	Resume() error
	Suspend() error

	// BeginSceneEdit/EndSceneEdit bracket a live mutation of the scene
	// this backend was created with; whether they require
	// FlagEnableLiveEditing is up to the backend.
	BeginSceneEdit() error
	EndSceneEdit() error
	// SyncEditedActor re-uploads the WorldObject identified by id after an
	// edit made between BeginSceneEdit/EndSceneEdit.
	SyncEditedActor(id uuid.UUID) error

	// Export writes the current render output to path in a backend-chosen
	// format.
	Export(path string) error
	// SaveRenderPreview writes a low-cost interim preview image.
	SaveRenderPreview() error

	// Close releases all backend resources. The handle must not be used
	// afterward.
	Close()
}

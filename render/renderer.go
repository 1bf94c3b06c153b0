package render

import (
	"context"
	"sync"

	unirender "github.com/SlawekNowy/UniRender-sub000"
	"github.com/SlawekNowy/UniRender-sub000/backend"
	"github.com/SlawekNowy/UniRender-sub000/denoise"
	"github.com/SlawekNowy/UniRender-sub000/modelcache"
	"github.com/SlawekNowy/UniRender-sub000/scene"
	"github.com/SlawekNowy/UniRender-sub000/tile"
	"github.com/google/uuid"
)

// Renderer is the abstract lifecycle object (§4.7): it borrows a Scene for
// the duration of a render job, holds its own merged ModelCache copy
// (§5's shared-resource discipline), and drives the given backend through
// the render-stage state machine via a RenderWorker.
type Renderer struct {
	scene    *scene.Scene
	backend  backend.RenderBackend
	cache    *modelcache.ModelCache
	denoiser *denoise.Denoiser

	worker *RenderWorker
	tiles  *tile.Manager

	mu     sync.Mutex
	passes map[PassType]*passOutput
}

// Create implements spec.md §4.7's `Renderer::create(scene,
// backend_identifier, flags)`: it asks the registry for an in-process
// backend by id and wraps it with NewRenderer; nothing runs until Start.
// Dynamically loaded plug-ins go through backend.Loader.Create instead
// and are wrapped with NewRenderer directly.
func Create(s *scene.Scene, backendIdentifier string, flags backend.Flags, opts ...Option) (*Renderer, error) {
	rb, err := backend.Get(backendIdentifier, s, flags)
	if err != nil {
		return nil, unirender.WrapError(unirender.NotFound, "render.Create",
			"backend not available: "+backendIdentifier, err)
	}
	return NewRenderer(s, rb, opts...), nil
}

// NewRenderer wraps an already-constructed backend (e.g. one resolved by
// backend.Loader.Create) with the render-stage state machine. opts
// configures the denoiser and stereo eye loop via RendererOptions.
func NewRenderer(s *scene.Scene, rb backend.RenderBackend, opts ...Option) *Renderer {
	cfg := RendererOptions{denoiser: denoise.NewDefault()}
	for _, opt := range opts {
		opt(&cfg)
	}

	r := &Renderer{
		scene:    s,
		backend:  rb,
		cache:    s.MergedModelCache(),
		denoiser: cfg.denoiser,
		passes:   make(map[PassType]*passOutput),
	}
	r.worker = newRenderWorker(r)
	if cfg.stereo {
		r.worker.eye = EyeLeft
	}
	return r
}

// EnableProgressive attaches a TileManager sized to the scene's camera
// resolution and tileW×tileH tiles, for a CreateInfo.Progressive job that
// refines indefinitely until Stop is called (spec.md §4.7/§4.8; §5's
// "m_progressive_condition" simulated convergence). Must be called before
// Start. The backend is expected to feed tiles via ProgressiveTiles().
func (r *Renderer) EnableProgressive(tileW, tileH int) {
	var tileOpts []tile.Option
	if r.scene.DeviceType == scene.DeviceCPU {
		tileOpts = append(tileOpts, tile.WithCPUDevice())
	}
	r.tiles = tile.New(int(r.scene.Camera.Width), int(r.scene.Camera.Height), tileW, tileH, tileOpts...)
}

// ProgressiveTiles returns the attached TileManager, or nil if
// EnableProgressive was never called.
func (r *Renderer) ProgressiveTiles() *tile.Manager { return r.tiles }

// ProgressiveImage blits every completed tile into a flat RGBA image and
// returns it as an ImageBuffer (§4.8's UpdateFinalImage). Returns the zero
// ImageBuffer if progressive mode isn't enabled.
func (r *Renderer) ProgressiveImage() ImageBuffer {
	if r.tiles == nil {
		return ImageBuffer{}
	}
	flat := r.tiles.UpdateFinalImage()
	return FromFlatRGBA(int(r.scene.Camera.Width), int(r.scene.Camera.Height), flat)
}

// ModelCache returns the Renderer's own merged copy of the Scene's model
// caches (§5: "once handed to a Renderer, the Renderer owns the merged
// model cache").
func (r *Renderer) ModelCache() *modelcache.ModelCache { return r.cache }

// Start begins the state machine at InitializeScene.
func (r *Renderer) Start() error {
	if err := r.backend.Start(); err != nil {
		return err
	}
	return r.worker.run()
}

// Wait blocks until the job reaches a terminal JobStatus or ctx is done.
func (r *Renderer) Wait(ctx context.Context) error { return r.backend.Wait(ctx) }

// GetProgress reports the worker's current stage and the backend's
// fractional completion.
func (r *Renderer) GetProgress() (Stage, float32, JobStatus) {
	progress, done := r.backend.GetProgress()
	status := r.worker.status()
	if done && status == JobRunning {
		status = JobComplete
	}
	return r.worker.currentStage(), progress, status
}

func (r *Renderer) Reset() error   { return r.backend.Reset() }
func (r *Renderer) Restart() error { return r.backend.Restart() }
func (r *Renderer) Stop() error    { return r.backend.Stop() }
func (r *Renderer) Pause() error   { return r.backend.Pause() }
func (r *Renderer) Resume() error  { return r.backend.Resume() }
func (r *Renderer) Suspend() error { return r.backend.Suspend() }

// BeginSceneEdit/EndSceneEdit/SyncEditedActor bracket a live edit of the
// borrowed Scene; they forward to the backend, which decides whether
// backend.FlagEnableLiveEditing is required.
func (r *Renderer) BeginSceneEdit() error { return r.backend.BeginSceneEdit() }
func (r *Renderer) EndSceneEdit() error   { return r.backend.EndSceneEdit() }
func (r *Renderer) SyncEditedActor(id uuid.UUID) error {
	return r.backend.SyncEditedActor(id)
}

func (r *Renderer) Export(path string) error { return r.backend.Export(path) }
func (r *Renderer) SaveRenderPreview() error  { return r.backend.SaveRenderPreview() }

// Pass returns the accumulated buffer for the given pass/eye, or the zero
// ImageBuffer if the pass hasn't been written yet.
func (r *Renderer) Pass(pass PassType, eye StereoEye) ImageBuffer {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.passes[pass]
	if !ok {
		return ImageBuffer{}
	}
	return p.Buffers[eye]
}

// setPass is called by RenderWorker stage handlers to publish a computed
// buffer into the Pass map (§3).
func (r *Renderer) setPass(pass PassType, eye StereoEye, outputIndex uint32, buf ImageBuffer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.passes[pass]
	if !ok {
		p = &passOutput{OutputIndex: outputIndex}
		r.passes[pass] = p
	}
	p.Buffers[eye] = buf
}

// Close releases the backend and, if progressive mode was enabled, stops
// and joins the TileManager's worker pool.
func (r *Renderer) Close() {
	if r.tiles != nil {
		r.tiles.StopAndWait()
	}
	r.backend.Close()
}

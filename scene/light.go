package scene

import unirender "github.com/SlawekNowy/UniRender-sub000"

// LightType enumerates the supported light shapes (§3), grounded on
// original_source/include/util_raytracing/light.hpp's Light::Type.
type LightType uint8

const (
	LightPoint LightType = iota
	LightSpot
	LightDirectional
	LightArea
	LightBackground
	LightTriangle
)

// Light is a WorldObject placed in scene space that also carries
// BaseObject bookkeeping (a light can be referenced by hash from a baked
// ModelCacheChunk the way a mesh or object is).
type Light struct {
	unirender.WorldObject
	unirender.BaseObject

	Type LightType

	// Size is the light's radius in scene units; the source defaults this
	// to roughly one metre for point/spot lights.
	Size float32

	Color     unirender.Vector3
	Intensity float32 // Lumen

	BlendFraction  float32
	SpotOuterAngle float32 // radians, Type == LightSpot only

	AxisU, AxisV unirender.Vector3
	SizeU, SizeV float32 // Type == LightArea only

	Round bool
}

// NewLight returns a Light at the identity pose with the source's default
// color (white) and intensity (1600 lumen).
func NewLight(t LightType) *Light {
	return &Light{
		WorldObject: unirender.NewWorldObject(),
		Type:        t,
		Size:        1,
		Color:       unirender.Vector3{X: 1, Y: 1, Z: 1},
		Intensity:   1600,
	}
}

// SetSpotAngles sets the outer cone angle of a LightSpot light.
func (l *Light) SetSpotAngles(outerAngle float32) { l.SpotOuterAngle = outerAngle }

// SetAreaSize sets the U/V axes and extents of a LightArea light.
func (l *Light) SetAreaSize(axisU, axisV unirender.Vector3, sizeU, sizeV float32) {
	l.AxisU, l.AxisV = axisU, axisV
	l.SizeU, l.SizeV = sizeU, sizeV
}

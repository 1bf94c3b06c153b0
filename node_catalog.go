package unirender

// Node type name constants for the built-in catalog (§4.2). Exported so
// backends and tests can reference them without typos; NodeManager lookup
// itself is case-insensitive.
const (
	NodeTypeMath               = "math"
	NodeTypeVectorMath         = "vector_math"
	NodeTypeMix                = "mix"
	NodeTypeInvert             = "invert"
	NodeTypeRGBToBW            = "rgb_to_bw"
	NodeTypeCombineRGB         = "combine_rgb"
	NodeTypeSeparateRGB        = "separate_rgb"
	NodeTypeCombineXYZ         = "combine_xyz"
	NodeTypeSeparateXYZ        = "separate_xyz"
	NodeTypeGeometry           = "geometry"
	NodeTypeCameraInfo         = "camera_info"
	NodeTypeImageTexture       = "image_texture"
	NodeTypeEnvironmentTexture = "environment_texture"
	NodeTypeNoiseTexture       = "noise_texture"
	NodeTypeMapping            = "mapping"
	NodeTypeTextureCoordinate  = "texture_coordinate"
	NodeTypeUVMap              = "uvmap"
	NodeTypeBackground         = "background"
	NodeTypeEmission           = "emission"
	NodeTypeScatterVolume      = "scatter_volume"
	NodeTypePrincipledVolume   = "principled_volume"
	NodeTypeMixClosure         = "mix_closure"
	NodeTypeAddClosure         = "add_closure"
	NodeTypeTransparentBSDF    = "transparent_bsdf"
	NodeTypeTranslucentBSDF   = "translucent_bsdf"
	NodeTypeDiffuseBSDF        = "diffuse_bsdf"
	NodeTypeToonBSDF           = "toon_bsdf"
	NodeTypeGlossyBSDF         = "glossy_bsdf"
	NodeTypeGlassBSDF          = "glass_bsdf"
	NodeTypePrincipledBSDF     = "principled_bsdf"
	NodeTypeNormalMap          = "normal_map"
	NodeTypeLightPath          = "light_path"
	NodeTypeAmbientOcclusion   = "ambient_occlusion"
	NodeTypeColor              = "color"
	NodeTypeAttribute          = "attribute"
	NodeTypeVectorTransform    = "vector_transform"
	NodeTypeRGBRamp            = "rgb_ramp"
	NodeTypeLayerWeight        = "layer_weight"
	NodeTypeOutput             = "output"
	NodeTypeLessThan           = "less_than"
	NodeTypeGreaterThan        = "greater_than"
	NodeTypeConstantFloat      = "constant_float"
	NodeTypeConstantVector     = "constant_vector"
)

// Math node operation kinds (NodeTypeMath's "type" property).
const (
	MathAdd      = "add"
	MathSubtract = "subtract"
	MathMultiply = "multiply"
	MathDivide   = "divide"
	MathModulo   = "modulo"
	MathPower    = "power"
)

// VectorMath node operation kinds (NodeTypeVectorMath's "type" property).
const (
	VectorMathAdd      = "add"
	VectorMathSubtract = "subtract"
	VectorMathMultiply = "multiply"
	VectorMathDivide   = "divide"
)

func init() {
	m := defaultNodeManager

	m.Register(NodeTypeMath, func() *NodeDesc {
		n := NewNodeDesc(NodeTypeMath, NodeTypeMath)
		n.AddProperty("type", NewDataValue(String, MathAdd))
		n.AddProperty("use_clamp", NewDataValue(Bool, false))
		n.AddInput("value1", NewDataValue(Float, float32(0)))
		n.AddInput("value2", NewDataValue(Float, float32(0)))
		n.AddOutput("value", Float)
		return n.WithPrimaryOutput("value")
	})

	m.Register(NodeTypeVectorMath, func() *NodeDesc {
		n := NewNodeDesc(NodeTypeVectorMath, NodeTypeVectorMath)
		n.AddProperty("type", NewDataValue(String, VectorMathAdd))
		n.AddInput("vector1", NewDataValue(Vector, Vector3{}))
		n.AddInput("vector2", NewDataValue(Vector, Vector3{}))
		n.AddInput("scale", NewDataValue(Float, float32(1)))
		n.AddOutput("vector", Vector)
		n.AddOutput("value", Float)
		return n.WithPrimaryOutput("vector")
	})

	m.Register(NodeTypeMix, func() *NodeDesc {
		n := NewNodeDesc(NodeTypeMix, NodeTypeMix)
		n.AddProperty("mix_type", NewDataValue(String, "blend"))
		n.AddInput("fac", NewDataValue(Float, float32(0.5)))
		n.AddInput("color1", NewDataValue(Color, Vector3{}))
		n.AddInput("color2", NewDataValue(Color, Vector3{}))
		n.AddOutput("color", Color)
		return n.WithPrimaryOutput("color")
	})

	m.Register(NodeTypeInvert, func() *NodeDesc {
		n := NewNodeDesc(NodeTypeInvert, NodeTypeInvert)
		n.AddInput("fac", NewDataValue(Float, float32(1)))
		n.AddInput("color", NewDataValue(Color, Vector3{}))
		n.AddOutput("color", Color)
		return n.WithPrimaryOutput("color")
	})

	m.Register(NodeTypeRGBToBW, func() *NodeDesc {
		n := NewNodeDesc(NodeTypeRGBToBW, NodeTypeRGBToBW)
		n.AddInput("color", NewDataValue(Color, Vector3{}))
		n.AddOutput("val", Float)
		return n.WithPrimaryOutput("val")
	})

	m.Register(NodeTypeCombineRGB, func() *NodeDesc {
		n := NewNodeDesc(NodeTypeCombineRGB, NodeTypeCombineRGB)
		n.AddInput("r", NewDataValue(Float, float32(0)))
		n.AddInput("g", NewDataValue(Float, float32(0)))
		n.AddInput("b", NewDataValue(Float, float32(0)))
		n.AddOutput("image", Color)
		return n.WithPrimaryOutput("image")
	})

	m.Register(NodeTypeSeparateRGB, func() *NodeDesc {
		n := NewNodeDesc(NodeTypeSeparateRGB, NodeTypeSeparateRGB)
		n.AddInput("image", NewDataValue(Color, Vector3{}))
		n.AddOutput("r", Float)
		n.AddOutput("g", Float)
		n.AddOutput("b", Float)
		return n
	})

	m.Register(NodeTypeCombineXYZ, func() *NodeDesc {
		n := NewNodeDesc(NodeTypeCombineXYZ, NodeTypeCombineXYZ)
		n.AddInput("x", NewDataValue(Float, float32(0)))
		n.AddInput("y", NewDataValue(Float, float32(0)))
		n.AddInput("z", NewDataValue(Float, float32(0)))
		n.AddOutput("vector", Vector)
		return n.WithPrimaryOutput("vector")
	})

	m.Register(NodeTypeSeparateXYZ, func() *NodeDesc {
		n := NewNodeDesc(NodeTypeSeparateXYZ, NodeTypeSeparateXYZ)
		n.AddInput("vector", NewDataValue(Vector, Vector3{}))
		n.AddOutput("x", Float)
		n.AddOutput("y", Float)
		n.AddOutput("z", Float)
		return n
	})

	m.Register(NodeTypeGeometry, func() *NodeDesc {
		n := NewNodeDesc(NodeTypeGeometry, NodeTypeGeometry)
		n.AddOutput("position", Point)
		n.AddOutput("normal", Normal)
		n.AddOutput("tangent", Normal)
		n.AddOutput("incoming", Vector)
		n.AddOutput("true_normal", Normal)
		return n
	})

	m.Register(NodeTypeCameraInfo, func() *NodeDesc {
		n := NewNodeDesc(NodeTypeCameraInfo, NodeTypeCameraInfo)
		n.AddOutput("view_vector", Vector)
		n.AddOutput("view_z_depth", Float)
		n.AddOutput("view_distance", Float)
		return n
	})

	m.Register(NodeTypeImageTexture, func() *NodeDesc {
		n := NewNodeDesc(NodeTypeImageTexture, NodeTypeImageTexture)
		n.AddProperty("filename", NewDataValue(String, ""))
		n.AddInput("vector", NewDataValue(Point, Vector3{}))
		n.AddOutput("color", Color)
		n.AddOutput("alpha", Float)
		return n.WithPrimaryOutput("color")
	})

	m.Register(NodeTypeEnvironmentTexture, func() *NodeDesc {
		n := NewNodeDesc(NodeTypeEnvironmentTexture, NodeTypeEnvironmentTexture)
		n.AddProperty("filename", NewDataValue(String, ""))
		n.AddInput("vector", NewDataValue(Vector, Vector3{}))
		n.AddOutput("color", Color)
		return n.WithPrimaryOutput("color")
	})

	m.Register(NodeTypeNoiseTexture, func() *NodeDesc {
		n := NewNodeDesc(NodeTypeNoiseTexture, NodeTypeNoiseTexture)
		n.AddInput("vector", NewDataValue(Point, Vector3{}))
		n.AddInput("scale", NewDataValue(Float, float32(1)))
		n.AddOutput("color", Color)
		n.AddOutput("fac", Float)
		return n.WithPrimaryOutput("fac")
	})

	m.Register(NodeTypeMapping, func() *NodeDesc {
		n := NewNodeDesc(NodeTypeMapping, NodeTypeMapping)
		n.AddInput("vector", NewDataValue(Point, Vector3{}))
		n.AddInput("location", NewDataValue(Vector, Vector3{}))
		n.AddInput("rotation", NewDataValue(Vector, Vector3{}))
		n.AddInput("scale", NewDataValue(Vector, Vector3{X: 1, Y: 1, Z: 1}))
		n.AddOutput("vector", Point)
		return n.WithPrimaryOutput("vector")
	})

	m.Register(NodeTypeTextureCoordinate, func() *NodeDesc {
		n := NewNodeDesc(NodeTypeTextureCoordinate, NodeTypeTextureCoordinate)
		n.AddOutput("generated", Point)
		n.AddOutput("uv", Point)
		n.AddOutput("object", Point)
		n.AddOutput("normal", Normal)
		return n
	})

	m.Register(NodeTypeUVMap, func() *NodeDesc {
		n := NewNodeDesc(NodeTypeUVMap, NodeTypeUVMap)
		n.AddProperty("attribute", NewDataValue(String, ""))
		n.AddOutput("uv", Point2)
		return n.WithPrimaryOutput("uv")
	})

	m.Register(NodeTypeBackground, func() *NodeDesc {
		n := NewNodeDesc(NodeTypeBackground, NodeTypeBackground)
		n.AddInput("color", NewDataValue(Color, Vector3{X: 0.8, Y: 0.8, Z: 0.8}))
		n.AddInput("strength", NewDataValue(Float, float32(1)))
		n.AddOutput("background", Closure)
		return n.WithPrimaryOutput("background")
	})

	m.Register(NodeTypeEmission, func() *NodeDesc {
		n := NewNodeDesc(NodeTypeEmission, NodeTypeEmission)
		n.AddInput("color", NewDataValue(Color, Vector3{X: 1, Y: 1, Z: 1}))
		n.AddInput("strength", NewDataValue(Float, float32(1)))
		n.AddOutput("emission", Closure)
		return n.WithPrimaryOutput("emission")
	})

	m.Register(NodeTypeScatterVolume, func() *NodeDesc {
		n := NewNodeDesc(NodeTypeScatterVolume, NodeTypeScatterVolume)
		n.AddInput("color", NewDataValue(Color, Vector3{X: 1, Y: 1, Z: 1}))
		n.AddInput("density", NewDataValue(Float, float32(1)))
		n.AddOutput("volume", Closure)
		return n.WithPrimaryOutput("volume")
	})

	m.Register(NodeTypePrincipledVolume, func() *NodeDesc {
		n := NewNodeDesc(NodeTypePrincipledVolume, NodeTypePrincipledVolume)
		n.AddInput("color", NewDataValue(Color, Vector3{X: 1, Y: 1, Z: 1}))
		n.AddInput("density", NewDataValue(Float, float32(1)))
		n.AddOutput("volume", Closure)
		return n.WithPrimaryOutput("volume")
	})

	m.Register(NodeTypeMixClosure, func() *NodeDesc {
		n := NewNodeDesc(NodeTypeMixClosure, NodeTypeMixClosure)
		n.AddInput("fac", NewDataValue(Float, float32(0.5)))
		n.AddInput("closure1", DataValue{Type: Closure})
		n.AddInput("closure2", DataValue{Type: Closure})
		n.AddOutput("closure", Closure)
		return n.WithPrimaryOutput("closure")
	})

	m.Register(NodeTypeAddClosure, func() *NodeDesc {
		n := NewNodeDesc(NodeTypeAddClosure, NodeTypeAddClosure)
		n.AddInput("closure1", DataValue{Type: Closure})
		n.AddInput("closure2", DataValue{Type: Closure})
		n.AddOutput("closure", Closure)
		return n.WithPrimaryOutput("closure")
	})

	bsdf := func(typeName string) NodeFactory {
		return func() *NodeDesc {
			n := NewNodeDesc(typeName, typeName)
			n.AddInput("color", NewDataValue(Color, Vector3{X: 0.8, Y: 0.8, Z: 0.8}))
			n.AddInput("roughness", NewDataValue(Float, float32(0)))
			n.AddInput("normal", NewDataValue(Normal, Vector3{}))
			n.AddOutput("bsdf", Closure)
			return n.WithPrimaryOutput("bsdf")
		}
	}
	m.Register(NodeTypeTransparentBSDF, bsdf(NodeTypeTransparentBSDF))
	m.Register(NodeTypeTranslucentBSDF, bsdf(NodeTypeTranslucentBSDF))
	m.Register(NodeTypeDiffuseBSDF, bsdf(NodeTypeDiffuseBSDF))
	m.Register(NodeTypeToonBSDF, bsdf(NodeTypeToonBSDF))
	m.Register(NodeTypeGlossyBSDF, bsdf(NodeTypeGlossyBSDF))
	m.Register(NodeTypeGlassBSDF, bsdf(NodeTypeGlassBSDF))

	m.Register(NodeTypePrincipledBSDF, func() *NodeDesc {
		n := NewNodeDesc(NodeTypePrincipledBSDF, NodeTypePrincipledBSDF)
		n.AddInput("base_color", NewDataValue(Color, Vector3{X: 0.8, Y: 0.8, Z: 0.8}))
		n.AddInput("metallic", NewDataValue(Float, float32(0)))
		n.AddInput("roughness", NewDataValue(Float, float32(0.5)))
		n.AddInput("ior", NewDataValue(Float, float32(1.45)))
		n.AddInput("alpha", NewDataValue(Float, float32(1)))
		n.AddInput("normal", NewDataValue(Normal, Vector3{}))
		n.AddOutput("bsdf", Closure)
		return n.WithPrimaryOutput("bsdf")
	})

	m.Register(NodeTypeNormalMap, func() *NodeDesc {
		n := NewNodeDesc(NodeTypeNormalMap, NodeTypeNormalMap)
		n.AddProperty("space", NewDataValue(String, "tangent"))
		n.AddInput("strength", NewDataValue(Float, float32(1)))
		n.AddInput("color", NewDataValue(Color, Vector3{X: 0.5, Y: 0.5, Z: 1}))
		n.AddOutput("normal", Normal)
		return n.WithPrimaryOutput("normal")
	})

	m.Register(NodeTypeLightPath, func() *NodeDesc {
		n := NewNodeDesc(NodeTypeLightPath, NodeTypeLightPath)
		n.AddOutput("is_camera_ray", Float)
		n.AddOutput("is_shadow_ray", Float)
		n.AddOutput("ray_length", Float)
		n.AddOutput("ray_depth", Float)
		return n
	})

	m.Register(NodeTypeAmbientOcclusion, func() *NodeDesc {
		n := NewNodeDesc(NodeTypeAmbientOcclusion, NodeTypeAmbientOcclusion)
		n.AddProperty("samples", NewDataValue(Int, int32(16)))
		n.AddInput("color", NewDataValue(Color, Vector3{X: 1, Y: 1, Z: 1}))
		n.AddInput("distance", NewDataValue(Float, float32(1)))
		n.AddOutput("ao", Float)
		return n.WithPrimaryOutput("ao")
	})

	m.Register(NodeTypeColor, func() *NodeDesc {
		n := NewNodeDesc(NodeTypeColor, NodeTypeColor)
		n.AddProperty("value", NewDataValue(Color, Vector3{}))
		n.AddOutput("color", Color)
		return n.WithPrimaryOutput("color")
	})

	m.Register(NodeTypeAttribute, func() *NodeDesc {
		n := NewNodeDesc(NodeTypeAttribute, NodeTypeAttribute)
		n.AddProperty("attribute", NewDataValue(String, ""))
		n.AddOutput("color", Color)
		n.AddOutput("vector", Vector)
		n.AddOutput("fac", Float)
		return n
	})

	m.Register(NodeTypeVectorTransform, func() *NodeDesc {
		n := NewNodeDesc(NodeTypeVectorTransform, NodeTypeVectorTransform)
		n.AddProperty("convert_from", NewDataValue(String, "world"))
		n.AddProperty("convert_to", NewDataValue(String, "object"))
		n.AddInput("vector", NewDataValue(Vector, Vector3{}))
		n.AddOutput("vector", Vector)
		return n.WithPrimaryOutput("vector")
	})

	m.Register(NodeTypeRGBRamp, func() *NodeDesc {
		n := NewNodeDesc(NodeTypeRGBRamp, NodeTypeRGBRamp)
		n.AddInput("fac", NewDataValue(Float, float32(0)))
		n.AddOutput("color", Color)
		n.AddOutput("alpha", Float)
		return n.WithPrimaryOutput("color")
	})

	m.Register(NodeTypeLayerWeight, func() *NodeDesc {
		n := NewNodeDesc(NodeTypeLayerWeight, NodeTypeLayerWeight)
		n.AddInput("blend", NewDataValue(Float, float32(0.5)))
		n.AddInput("normal", NewDataValue(Normal, Vector3{}))
		n.AddOutput("fresnel", Float)
		n.AddOutput("facing", Float)
		return n
	})

	m.Register(NodeTypeOutput, func() *NodeDesc {
		n := NewNodeDesc(NodeTypeOutput, NodeTypeOutput)
		n.AddInput("surface", DataValue{Type: Closure})
		n.AddInput("volume", DataValue{Type: Closure})
		n.AddInput("displacement", NewDataValue(Vector, Vector3{}))
		n.AddInput("normal", NewDataValue(Normal, Vector3{}))
		return n
	})

	m.Register(NodeTypeLessThan, func() *NodeDesc {
		n := NewNodeDesc(NodeTypeLessThan, NodeTypeLessThan)
		n.AddInput("value1", NewDataValue(Float, float32(0)))
		n.AddInput("value2", NewDataValue(Float, float32(0)))
		n.AddOutput("value", Float)
		return n.WithPrimaryOutput("value")
	})

	m.Register(NodeTypeGreaterThan, func() *NodeDesc {
		n := NewNodeDesc(NodeTypeGreaterThan, NodeTypeGreaterThan)
		n.AddInput("value1", NewDataValue(Float, float32(0)))
		n.AddInput("value2", NewDataValue(Float, float32(0)))
		n.AddOutput("value", Float)
		return n.WithPrimaryOutput("value")
	})

	m.Register(NodeTypeConstantFloat, func() *NodeDesc {
		n := NewNodeDesc(NodeTypeConstantFloat, NodeTypeConstantFloat)
		n.AddProperty("value", NewDataValue(Float, float32(0)))
		n.AddOutput("value", Float)
		return n.WithPrimaryOutput("value")
	})

	m.Register(NodeTypeConstantVector, func() *NodeDesc {
		n := NewNodeDesc(NodeTypeConstantVector, NodeTypeConstantVector)
		n.AddProperty("value", NewDataValue(Vector, Vector3{}))
		n.AddOutput("vector", Vector)
		return n.WithPrimaryOutput("vector")
	})
}

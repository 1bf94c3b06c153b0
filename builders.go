package unirender

// TextureType selects how AddImageTextureNode interprets its file/socket
// argument (§4.4).
type TextureType uint8

const (
	TextureTypeColor TextureType = iota
	TextureTypeNormalMap
	TextureTypeEquirectEnvironment
)

// AddMathNode appends a NodeTypeMath node, wires value1/value2 and returns
// it so the caller can Link its primary output elsewhere.
func (g *GroupNodeDesc) AddMathNode(op string, value1, value2 Socket) (*NodeDesc, error) {
	n, err := g.AddNode(NodeTypeMath)
	if err != nil {
		return nil, err
	}
	n.Properties["type"].Value = NewDataValue(String, op)
	if err := g.Link(value1, n.Input("value1")); err != nil {
		return nil, err
	}
	if err := g.Link(value2, n.Input("value2")); err != nil {
		return nil, err
	}
	return n, nil
}

// AddVectorMathNode appends a NodeTypeVectorMath node and wires its two
// vector inputs.
func (g *GroupNodeDesc) AddVectorMathNode(op string, v1, v2 Socket) (*NodeDesc, error) {
	n, err := g.AddNode(NodeTypeVectorMath)
	if err != nil {
		return nil, err
	}
	n.Properties["type"].Value = NewDataValue(String, op)
	if err := g.Link(v1, n.Input("vector1")); err != nil {
		return nil, err
	}
	if err := g.Link(v2, n.Input("vector2")); err != nil {
		return nil, err
	}
	return n, nil
}

// AddImageTextureNode appends a NodeTypeImageTexture (or environment
// variant) node. fileOrSocket selects the UV/vector input socket if
// it's a node-referencing Socket, otherwise (a Concrete String socket) it
// sets the filename property.
func (g *GroupNodeDesc) AddImageTextureNode(fileOrSocket Socket, tt TextureType) (*NodeDesc, error) {
	typeName := NodeTypeImageTexture
	if tt == TextureTypeEquirectEnvironment {
		typeName = NodeTypeEnvironmentTexture
	}
	n, err := g.AddNode(typeName)
	if err != nil {
		return nil, err
	}
	if fileOrSocket.IsConcrete() {
		if v, ok := fileOrSocket.DataValueLiteral(); ok && v.Type == String {
			n.Properties["filename"].Value = v
		}
	} else if err := g.Link(fileOrSocket, n.Input("vector")); err != nil {
		return nil, err
	}
	return n, nil
}

// AddNormalMapNode appends a NodeTypeNormalMap node wired to colorSocket.
func (g *GroupNodeDesc) AddNormalMapNode(colorSocket Socket) (*NodeDesc, error) {
	n, err := g.AddNode(NodeTypeNormalMap)
	if err != nil {
		return nil, err
	}
	if err := g.Link(colorSocket, n.Input("color")); err != nil {
		return nil, err
	}
	return n, nil
}

// CombineRGB appends a NodeTypeCombineRGB node wired from r/g/b.
func (g *GroupNodeDesc) CombineRGB(r, gc, b Socket) (*NodeDesc, error) {
	n, err := g.AddNode(NodeTypeCombineRGB)
	if err != nil {
		return nil, err
	}
	for name, s := range map[string]Socket{"r": r, "g": gc, "b": b} {
		if err := g.Link(s, n.Input(name)); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// SeparateRGB appends a NodeTypeSeparateRGB node wired from image.
func (g *GroupNodeDesc) SeparateRGB(image Socket) (*NodeDesc, error) {
	n, err := g.AddNode(NodeTypeSeparateRGB)
	if err != nil {
		return nil, err
	}
	if err := g.Link(image, n.Input("image")); err != nil {
		return nil, err
	}
	return n, nil
}

// Mix appends a NodeTypeMix node. mode defaults to "blend" when empty.
func (g *GroupNodeDesc) Mix(a, b, fac Socket, mode string) (*NodeDesc, error) {
	n, err := g.AddNode(NodeTypeMix)
	if err != nil {
		return nil, err
	}
	if mode == "" {
		mode = "blend"
	}
	n.Properties["mix_type"].Value = NewDataValue(String, mode)
	if err := g.Link(a, n.Input("color1")); err != nil {
		return nil, err
	}
	if err := g.Link(b, n.Input("color2")); err != nil {
		return nil, err
	}
	if err := g.Link(fac, n.Input("fac")); err != nil {
		return nil, err
	}
	return n, nil
}

// Invert appends a NodeTypeInvert node wired from color.
func (g *GroupNodeDesc) Invert(color Socket) (*NodeDesc, error) {
	n, err := g.AddNode(NodeTypeInvert)
	if err != nil {
		return nil, err
	}
	if err := g.Link(color, n.Input("color")); err != nil {
		return nil, err
	}
	return n, nil
}

// ToGrayScale appends a NodeTypeRGBToBW node wired from color.
func (g *GroupNodeDesc) ToGrayScale(color Socket) (*NodeDesc, error) {
	n, err := g.AddNode(NodeTypeRGBToBW)
	if err != nil {
		return nil, err
	}
	if err := g.Link(color, n.Input("color")); err != nil {
		return nil, err
	}
	return n, nil
}

// AddConstantNode appends a scalar or vector constant node depending on
// value's concrete type.
func (g *GroupNodeDesc) AddConstantNode(value Socket) (*NodeDesc, error) {
	v, ok := value.DataValueLiteral()
	if !ok {
		return nil, NewError(InvalidInput, "AddConstantNode", "value must be a concrete socket")
	}
	if v.Type == Float {
		n, err := g.AddNode(NodeTypeConstantFloat)
		if err != nil {
			return nil, err
		}
		n.Properties["value"].Value = v
		return n, nil
	}
	n, err := g.AddNode(NodeTypeConstantVector)
	if err != nil {
		return nil, err
	}
	converted, ok := Convert(v, Vector)
	if !ok {
		return nil, NewError(InvalidInput, "AddConstantNode", "value is neither Float nor vector-convertible")
	}
	n.Properties["value"].Value = converted
	return n, nil
}

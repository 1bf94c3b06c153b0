package unirender

import "github.com/SlawekNowy/UniRender-sub000/udm"

// Shader-graph binary layout, grounded on original_source/src/implementation/
// shader.cpp's GroupNodeDesc::Serialize/Deserialize: node structure is
// written depth-first (a group writes its own NodeDesc fields, then its
// child count, then recurses into each child), matching this package's
// recursive Children walk rather than the original's separate flat
// SerializeNodes pass — the two are equivalent since the original's
// "flat" pass is itself a depth-first recursion through virtual dispatch.
// Links are written in a second depth-first pass (encodeLinks/decodeLinks),
// against a shared pre-order node index table built once over the whole
// subgraph (root group plus every descendant) so a link's node endpoints
// can be written as a table index rather than a pointer.

// Encode serializes g and every descendant node and link into enc.
func (g *GroupNodeDesc) Encode(enc *udm.Encoder) {
	g.encodeNodes(enc)
	g.encodeLinks(enc)
}

// DecodeGroupNodeDesc reconstructs a GroupNodeDesc tree previously written
// by Encode.
func DecodeGroupNodeDesc(dec *udm.Decoder) *GroupNodeDesc {
	g := decodeGroupNodeDesc(dec)
	table := buildNodeIndexTable(g)
	g.decodeLinks(dec, table)
	return g
}

func encodeSocketMap(enc *udm.Encoder, m map[string]*NodeSocketDesc) {
	enc.WriteUint32(uint32(len(m)))
	for name, desc := range m {
		enc.WriteString(name)
		enc.WriteUint32(uint32(desc.IO))
		EncodeDataValue(enc, desc.Value)
	}
}

func decodeSocketMap(dec *udm.Decoder) map[string]*NodeSocketDesc {
	n := dec.ReadUint32()
	m := make(map[string]*NodeSocketDesc, n)
	for i := uint32(0); i < n; i++ {
		name := dec.ReadString()
		io := IOFlag(dec.ReadUint32())
		m[name] = &NodeSocketDesc{IO: io, Value: DecodeDataValue(dec)}
	}
	return m
}

func encodeNodeDescFields(enc *udm.Encoder, n *NodeDesc) {
	enc.WriteString(n.TypeName)
	enc.WriteString(n.Name)
	encodeSocketMap(enc, n.Inputs)
	encodeSocketMap(enc, n.Properties)
	encodeSocketMap(enc, n.Outputs)
	enc.WriteBool(n.PrimaryOutputSocket != "")
	if n.PrimaryOutputSocket != "" {
		enc.WriteString(n.PrimaryOutputSocket)
	}
}

func decodeNodeDescFields(dec *udm.Decoder) *NodeDesc {
	n := &NodeDesc{
		TypeName:   dec.ReadString(),
		Name:       dec.ReadString(),
		Inputs:     decodeSocketMap(dec),
		Properties: decodeSocketMap(dec),
		Outputs:    decodeSocketMap(dec),
	}
	if dec.ReadBool() {
		n.PrimaryOutputSocket = dec.ReadString()
	}
	return n
}

func (g *GroupNodeDesc) encodeNodes(enc *udm.Encoder) {
	encodeNodeDescFields(enc, &g.NodeDesc)
	enc.WriteUint32(uint32(len(g.Children)))
	for _, child := range g.Children {
		if childGroup, ok := child.(*GroupNodeDesc); ok {
			enc.WriteBool(true)
			childGroup.encodeNodes(enc)
			continue
		}
		enc.WriteBool(false)
		encodeNodeDescFields(enc, child.NodeDescriptor())
	}
}

func decodeGroupNodeDesc(dec *udm.Decoder) *GroupNodeDesc {
	g := &GroupNodeDesc{NodeDesc: *decodeNodeDescFields(dec)}
	n := dec.ReadUint32()
	g.Children = make([]Node, n)
	for i := uint32(0); i < n; i++ {
		isGroup := dec.ReadBool()
		var child Node
		if isGroup {
			child = decodeGroupNodeDesc(dec)
		} else {
			child = decodeNodeDescFields(dec)
		}
		desc := child.NodeDescriptor()
		desc.Parent = g
		desc.IndexInParent = int(i)
		g.Children[i] = child
	}
	return g
}

// buildNodeIndexTable assigns a stable index to g and every descendant, in
// the same pre-order the original's link-serialization pass walks, so
// encodeLinks/decodeLinks can reference node endpoints by index.
func buildNodeIndexTable(g *GroupNodeDesc) []Node {
	var table []Node
	var assign func(n Node)
	assign = func(n Node) {
		table = append(table, n)
		if gg, ok := n.(*GroupNodeDesc); ok {
			for _, c := range gg.Children {
				assign(c)
			}
		}
	}
	assign(Node(g))
	return table
}

func nodeIndexOf(index map[Node]uint32, n Node) uint32 {
	idx, ok := index[n]
	if !ok {
		panic("unirender: link endpoint references a node outside its own subgraph")
	}
	return idx
}

func (g *GroupNodeDesc) encodeLinks(enc *udm.Encoder) {
	table := buildNodeIndexTable(g)
	index := make(map[Node]uint32, len(table))
	for i, n := range table {
		index[n] = uint32(i)
	}

	var walk func(gg *GroupNodeDesc)
	walk = func(gg *GroupNodeDesc) {
		enc.WriteUint32(uint32(len(gg.Links)))
		for _, l := range gg.Links {
			encodeSocket(enc, l.From, index)
			encodeSocket(enc, l.To, index)
		}
		for _, c := range gg.Children {
			if cg, ok := c.(*GroupNodeDesc); ok {
				walk(cg)
			}
		}
	}
	walk(g)
}

func (g *GroupNodeDesc) decodeLinks(dec *udm.Decoder, table []Node) {
	var walk func(gg *GroupNodeDesc)
	walk = func(gg *GroupNodeDesc) {
		n := dec.ReadUint32()
		gg.Links = make([]*NodeDescLink, n)
		for i := uint32(0); i < n; i++ {
			from := decodeSocket(dec, table)
			to := decodeSocket(dec, table)
			gg.Links[i] = &NodeDescLink{From: from, To: to}
		}
		for _, c := range gg.Children {
			if cg, ok := c.(*GroupNodeDesc); ok {
				walk(cg)
			}
		}
	}
	walk(g)
}

// Socket tag byte, grounded on shader_nodes.cpp's Socket::Serialize: 0 is an
// invalid/unset socket, 1 a concrete literal, 2 a node reference encoded as
// (table index, socket name, is-output).
const (
	socketTagInvalid  byte = 0
	socketTagConcrete byte = 1
	socketTagNodeRef  byte = 2
)

func encodeSocket(enc *udm.Encoder, s Socket, index map[Node]uint32) {
	if s.concrete {
		enc.WriteByte(socketTagConcrete)
		EncodeDataValue(enc, s.value)
		return
	}
	if s.node == nil {
		enc.WriteByte(socketTagInvalid)
		return
	}
	enc.WriteByte(socketTagNodeRef)
	enc.WriteUint32(nodeIndexOf(index, s.node))
	enc.WriteString(s.socket)
	enc.WriteBool(s.isOutput)
}

func decodeSocket(dec *udm.Decoder, table []Node) Socket {
	switch dec.ReadByte() {
	case socketTagConcrete:
		return Socket{concrete: true, value: DecodeDataValue(dec)}
	case socketTagNodeRef:
		idx := dec.ReadUint32()
		name := dec.ReadString()
		isOutput := dec.ReadBool()
		var node Node
		if int(idx) < len(table) {
			node = table[idx]
		}
		return Socket{node: node, socket: name, isOutput: isOutput}
	default:
		return Socket{}
	}
}

// Shader serialization, grounded on shader.cpp's Shader::Serialize: the
// four pass graphs are each optional (a freshly-deserialized Shader from an
// older chunk may only have populated the passes that were ever authored),
// followed by the optional HairConfig/SubdivisionSettings blocks.
func (s *Shader) Encode(enc *udm.Encoder) {
	enc.WriteString(s.Name)
	enc.WriteUint32(uint32(s.activePass))

	for _, pass := range [...]*GroupNodeDesc{s.CombinedPass, s.AlbedoPass, s.NormalPass, s.DepthPass} {
		enc.WriteBool(pass != nil)
		if pass != nil {
			pass.Encode(enc)
		}
	}

	enc.WriteBool(s.HairConfig != nil)
	if s.HairConfig != nil {
		h := s.HairConfig
		enc.WriteBool(h.Enabled)
		enc.WriteUint32(h.ShaderIndex)
		enc.WriteFloat32(h.RootRadius)
		enc.WriteFloat32(h.TipRadius)
		enc.WriteFloat32(h.Randomness)
	}

	enc.WriteBool(s.SubdivisionSettings != nil)
	if s.SubdivisionSettings != nil {
		sub := s.SubdivisionSettings
		enc.WriteUint32(uint32(sub.MaxLevel))
		enc.WriteUint32(uint32(sub.Boundary))
	}
}

// DecodeShader reconstructs a Shader previously written by Shader.Encode.
func DecodeShader(dec *udm.Decoder) *Shader {
	s := &Shader{BaseObject: BaseObject{Name: dec.ReadString()}}
	s.activePass = Pass(dec.ReadUint32())

	passes := [4]**GroupNodeDesc{&s.CombinedPass, &s.AlbedoPass, &s.NormalPass, &s.DepthPass}
	for _, slot := range passes {
		if dec.ReadBool() {
			*slot = DecodeGroupNodeDesc(dec)
		}
	}

	if dec.ReadBool() {
		s.HairConfig = &HairConfig{
			Enabled:     dec.ReadBool(),
			ShaderIndex: dec.ReadUint32(),
			RootRadius:  dec.ReadFloat32(),
			TipRadius:   dec.ReadFloat32(),
			Randomness:  dec.ReadFloat32(),
		}
	}

	if dec.ReadBool() {
		s.SubdivisionSettings = &SubdivisionSettings{
			MaxLevel: int(dec.ReadUint32()),
			Boundary: SubdivisionBoundary(dec.ReadUint32()),
		}
	}

	return s
}

package unirender

// IOFlag classifies a NodeSocketDesc slot: In/Out sockets participate in
// links, properties (IOFlagNone) are compile-time parameters that may only
// ever be set from a literal (§4.2).
type IOFlag uint8

const (
	IOFlagNone IOFlag = iota
	IOFlagIn
	IOFlagOut
)

// NodeSocketDesc is one keyed slot of a NodeDesc's inputs/outputs/
// properties maps: an IO classification plus its current (default or
// literal-overridden) DataValue.
type NodeSocketDesc struct {
	IO    IOFlag
	Value DataValue
}

// Node is implemented by both *NodeDesc (a leaf shader-graph node) and
// *GroupNodeDesc (a node that also owns a subgraph), so Socket endpoints
// and NodeDescLink endpoints can reference either uniformly — including a
// GroupNodeDesc referencing itself as a pseudo-node for its own ports
// (§4.3).
type Node interface {
	NodeDescriptor() *NodeDesc
}

// NodeDesc is a node in the shader DAG, identified by its position
// (Parent, IndexInParent) within the owning GroupNodeDesc. The root group
// has a nil Parent. Go's garbage collector reclaims cycles on its own, so
// unlike the C++ source this back-reference is a plain pointer rather than
// a weak_ptr — there is nothing to leak.
type NodeDesc struct {
	Parent        *GroupNodeDesc
	IndexInParent int

	TypeName string
	Name     string

	Inputs     map[string]*NodeSocketDesc
	Outputs    map[string]*NodeSocketDesc
	Properties map[string]*NodeSocketDesc

	// PrimaryOutputSocket names the output returned by operator-driven
	// node synthesis (§4.1) and by builder helpers like AddMathNode. Empty
	// means the node declares none (InvalidInput when something needs it,
	// §7).
	PrimaryOutputSocket string
}

// NewNodeDesc allocates an empty NodeDesc of the given type/instance name.
// NodeManager factories use this to build their templates.
func NewNodeDesc(typeName, name string) *NodeDesc {
	return &NodeDesc{
		TypeName:   typeName,
		Name:       name,
		Inputs:     map[string]*NodeSocketDesc{},
		Outputs:    map[string]*NodeSocketDesc{},
		Properties: map[string]*NodeSocketDesc{},
	}
}

func (n *NodeDesc) NodeDescriptor() *NodeDesc { return n }

// AddInput registers an input socket with its default value.
func (n *NodeDesc) AddInput(name string, def DataValue) *NodeDesc {
	n.Inputs[name] = &NodeSocketDesc{IO: IOFlagIn, Value: def}
	return n
}

// AddOutput registers an output socket. Outputs don't carry a meaningful
// default but keep a zero DataValue of the declared type so callers can
// inspect its SocketType.
func (n *NodeDesc) AddOutput(name string, t SocketType) *NodeDesc {
	n.Outputs[name] = &NodeSocketDesc{IO: IOFlagOut, Value: Default(t)}
	return n
}

// AddProperty registers a compile-time property with its default value.
// Properties may be set from literals but are never link targets for
// runtime values (§4.2).
func (n *NodeDesc) AddProperty(name string, def DataValue) *NodeDesc {
	n.Properties[name] = &NodeSocketDesc{IO: IOFlagNone, Value: def}
	return n
}

// WithPrimaryOutput sets the node's primary output socket name.
func (n *NodeDesc) WithPrimaryOutput(name string) *NodeDesc {
	n.PrimaryOutputSocket = name
	return n
}

// socketDesc resolves the NodeSocketDesc for a name, searching inputs then
// properties then outputs. Names can repeat across the maps (invert has
// both a "color" input and a "color" output); the first match in that
// order is returned.
func (n *NodeDesc) socketDesc(name string) (*NodeSocketDesc, bool) {
	if d, ok := n.Inputs[name]; ok {
		return d, true
	}
	if d, ok := n.Properties[name]; ok {
		return d, true
	}
	if d, ok := n.Outputs[name]; ok {
		return d, true
	}
	return nil, false
}

// Output returns the Socket referencing this node's named output (or its
// PrimaryOutputSocket if name is empty).
func (n *NodeDesc) Output(name string) Socket {
	if name == "" {
		name = n.PrimaryOutputSocket
	}
	return Socket{node: n, socket: name, isOutput: true}
}

// Input returns the Socket referencing this node's named input.
func (n *NodeDesc) Input(name string) Socket {
	return Socket{node: n, socket: name, isOutput: false}
}

// Property returns the Socket referencing this node's named property.
func (n *NodeDesc) Property(name string) Socket {
	return Socket{node: n, socket: name, isOutput: false}
}

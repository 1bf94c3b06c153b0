package unirender

// Socket is either a literal (Concrete) or a reference to a node's input,
// output, or property port (§3). A Concrete socket is implicitly usable as
// an output for linking purposes (§3).
type Socket struct {
	concrete bool
	value    DataValue

	node     Node
	socket   string
	isOutput bool
}

// ConcreteSocket wraps a literal DataValue as a Socket.
func ConcreteSocket(v DataValue) Socket { return Socket{concrete: true, value: v} }

// Float32Socket is a convenience constructor for a Concrete Float socket.
func Float32Socket(f float32) Socket { return ConcreteSocket(NewDataValue(Float, f)) }

// Vector3Socket is a convenience constructor for a Concrete Vector socket.
func Vector3Socket(v Vector3) Socket { return ConcreteSocket(NewDataValue(Vector, v)) }

// IsConcrete reports whether s carries a literal rather than a node
// reference.
func (s Socket) IsConcrete() bool { return s.concrete }

// IsOutput reports whether a non-concrete socket references an output
// port. Concrete sockets are always usable as outputs (§3).
func (s Socket) IsOutput() bool { return s.concrete || s.isOutput }

// Node returns the referenced node and true, or (nil, false) if s is
// Concrete.
func (s Socket) Node() (Node, bool) {
	if s.concrete {
		return nil, false
	}
	return s.node, s.node != nil
}

// SocketName returns the referenced port name, or "" if s is Concrete.
func (s Socket) SocketName() string {
	if s.concrete {
		return ""
	}
	return s.socket
}

// Valid reports whether s is Concrete or its node reference resolves
// (§3). Go's GC means a non-nil Node reference always "resolves" in the
// sense the source's weak_ptr::lock would; Valid mirrors the source API
// for callers building against the spec.
func (s Socket) Valid() bool {
	if s.concrete {
		return true
	}
	return s.node != nil
}

// DataValueLiteral returns the socket's literal value. Only meaningful for
// Concrete sockets; returns the zero DataValue and false otherwise.
func (s Socket) DataValueLiteral() (DataValue, bool) {
	if !s.concrete {
		return DataValue{}, false
	}
	return s.value, true
}

// resolvedValue returns the DataValue a Concrete or node-referencing
// Socket currently carries, used by the concrete/concrete operator fast
// path and by default-value propagation. Returns false if the socket is a
// dangling or unresolved node reference.
func (s Socket) resolvedValue() (DataValue, bool) {
	if s.concrete {
		return s.value, true
	}
	if s.node == nil {
		return DataValue{}, false
	}
	desc, ok := s.node.NodeDescriptor().socketDesc(s.socket)
	if !ok {
		return DataValue{}, false
	}
	return desc.Value, true
}

// owningGroup implements §4.1's group-selection rule for operator-driven
// node synthesis:
//  1. If exactly one operand is a non-output node socket belonging to a
//     group, that group owns the result.
//  2. Otherwise the parent of either node operand owns it.
func owningGroup(a, b Socket) *GroupNodeDesc {
	aIsInput := !a.concrete && !a.isOutput && a.node != nil
	bIsInput := !b.concrete && !b.isOutput && b.node != nil

	if aIsInput && !bIsInput {
		if g, ok := a.node.(*GroupNodeDesc); ok {
			return g
		}
	}
	if bIsInput && !aIsInput {
		if g, ok := b.node.(*GroupNodeDesc); ok {
			return g
		}
	}
	for _, s := range []Socket{a, b} {
		if s.concrete || s.node == nil {
			continue
		}
		if desc := s.node.NodeDescriptor(); desc.Parent != nil {
			return desc.Parent
		}
	}
	return nil
}

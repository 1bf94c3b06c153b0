package unirender

// NodeDescLink is a directed connection between two sockets within a
// GroupNodeDesc's subgraph (§3). Endpoints reference either the group
// itself (its own ports, acting as a pseudo-node) or a direct child of the
// group.
type NodeDescLink struct {
	From Socket
	To   Socket
}

// GroupNodeDesc is a NodeDesc that also owns an ordered list of child
// nodes and the links between them (§3). A Shader's four pass-graphs are
// each the root GroupNodeDesc of their own subgraph.
type GroupNodeDesc struct {
	NodeDesc

	Children []Node
	Links    []*NodeDescLink
}

// NewGroupNodeDesc allocates an empty, unattached group.
func NewGroupNodeDesc(typeName, name string) *GroupNodeDesc {
	return &GroupNodeDesc{NodeDesc: *NewNodeDesc(typeName, name)}
}

func (g *GroupNodeDesc) NodeDescriptor() *NodeDesc { return &g.NodeDesc }

// AddNode instantiates typeName via NodeManager and appends it as a child
// of g. Returns a NotFound error if typeName isn't registered (§7).
func (g *GroupNodeDesc) AddNode(typeName string) (*NodeDesc, error) {
	return g.AddNodeVia(DefaultNodeManager(), typeName)
}

// AddNodeVia is AddNode against an explicit NodeManager (used by tests with
// an isolated registry).
func (g *GroupNodeDesc) AddNodeVia(m *NodeManager, typeName string) (*NodeDesc, error) {
	n, err := m.Create(typeName)
	if err != nil {
		return nil, err
	}
	n.Parent = g
	n.IndexInParent = len(g.Children)
	g.Children = append(g.Children, n)
	return n, nil
}

// AddGroupNode creates a nested, initially-empty GroupNodeDesc and appends
// it as a child of g — the shape that AddMathNode et al. do not cover:
// authoring code builds the subgraph, then calls ResolveGroupNodes to
// inline it.
func (g *GroupNodeDesc) AddGroupNode(name string) *GroupNodeDesc {
	child := NewGroupNodeDesc("group", name)
	child.Parent = g
	child.IndexInParent = len(g.Children)
	g.Children = append(g.Children, child)
	return child
}

// findLinkTo returns the existing link whose To endpoint matches to, if
// any (§3: at most one link per `to` socket).
func (g *GroupNodeDesc) findLinkTo(to Socket) (int, bool) {
	for i, l := range g.Links {
		if socketsEqual(l.To, to) {
			return i, true
		}
	}
	return -1, false
}

func socketsEqual(a, b Socket) bool {
	if a.concrete || b.concrete {
		return false
	}
	return a.node == b.node && a.socket == b.socket && a.isOutput == b.isOutput
}

// Link connects from -> to within g (§4.4). Validates: to must not be
// Concrete; to's node (or g itself) must own the named socket. If from is
// Concrete, its value is converted into to's socket slot directly (never
// linked, stored, per §4.4) rather than recorded as a NodeDescLink. Any
// existing link targeting `to` is replaced (§3).
func (g *GroupNodeDesc) Link(from, to Socket) error {
	if to.concrete {
		return NewError(InvalidInput, "Link", "link target must not be a concrete socket")
	}
	toNode, ok := to.Node()
	if !ok || toNode == nil {
		return NewError(InvalidInput, "Link", "link target references no node")
	}
	toDesc, ok := toNode.NodeDescriptor().socketDesc(to.socket)
	if !ok {
		return NewError(NotFound, "Link", "unknown target socket \""+to.socket+"\" on node \""+toNode.NodeDescriptor().Name+"\"")
	}

	if from.concrete {
		converted, ok := Convert(from.value, toDesc.Value.Type)
		if !ok {
			return NewError(InvalidInput, "Link", "cannot convert literal of type "+from.value.Type.String()+" into target socket of type "+toDesc.Value.Type.String())
		}
		toDesc.Value = converted
		if i, found := g.findLinkTo(to); found {
			g.Links = append(g.Links[:i], g.Links[i+1:]...)
		}
		return nil
	}

	fromNode, ok := from.Node()
	if !ok || fromNode == nil {
		return NewError(InvalidInput, "Link", "link source references no node")
	}
	if from.socket == "" {
		return NewError(InvalidInput, "Link", "source node \""+fromNode.NodeDescriptor().Name+"\" declares no primary output socket")
	}
	if _, ok := fromNode.NodeDescriptor().socketDesc(from.socket); !ok {
		return NewError(NotFound, "Link", "unknown source socket \""+from.socket+"\" on node \""+fromNode.NodeDescriptor().Name+"\"")
	}

	if i, found := g.findLinkTo(to); found {
		g.Links[i] = &NodeDescLink{From: from, To: to}
		return nil
	}
	g.Links = append(g.Links, &NodeDescLink{From: from, To: to})
	return nil
}

// SelfInput and SelfOutput return the Socket referencing this group's own named port,
// treating the group as a pseudo-node — used when authoring code inside a
// group wires a child's input to the group's own input (§4.3).
func (g *GroupNodeDesc) SelfInput(name string) Socket  { return Socket{node: g, socket: name, isOutput: false} }
func (g *GroupNodeDesc) SelfOutput(name string) Socket { return Socket{node: g, socket: name, isOutput: true} }

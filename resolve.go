package unirender

// isSelfSocket reports whether s is a non-concrete reference to one of g's
// own ports, i.e. g acting as its own pseudo-node the way a group's inputs,
// outputs and properties are addressed from outside and from within its own
// subgraph (§4.3).
func isSelfSocket(s Socket, g *GroupNodeDesc) bool {
	if s.concrete {
		return false
	}
	node, ok := s.Node()
	return ok && node == Node(g)
}

// socketDescOf resolves the NodeSocketDesc a node-referencing socket
// currently points at.
func socketDescOf(s Socket) (*NodeSocketDesc, bool) {
	node, ok := s.Node()
	if !ok || node == nil {
		return nil, false
	}
	return node.NodeDescriptor().socketDesc(s.socket)
}

// removeLinksWhere compacts links in place, dropping every entry match
// reports true for.
func removeLinksWhere(links []*NodeDescLink, match func(*NodeDescLink) bool) []*NodeDescLink {
	out := links[:0]
	for _, l := range links {
		if !match(l) {
			out = append(out, l)
		}
	}
	return out
}

// ResolveGroupNodes inlines every nested GroupNodeDesc within g into a
// single flat subgraph (§4.3). Run it once on a pass's root group after
// authoring is complete — a NodeManager-backed renderer only understands
// leaf nodes, never groups.
//
// This is the one genuinely hard piece of the IR: a group's own ports
// (inputs, outputs, properties) are addressed as if the group were itself a
// node, both from links in its parent and from links inside its own
// subgraph. Flattening has to walk both sets of links and rewire them
// directly between the real nodes on either side, because once the group is
// gone neither set of links has anywhere else to point.
func (g *GroupNodeDesc) ResolveGroupNodes() {
	g.flattenChildren()
	if g.Parent == nil {
		return
	}
	parent := g.Parent
	idx := -1
	for i, c := range parent.Children {
		if c == Node(g) {
			idx = i
			break
		}
	}
	if idx >= 0 {
		g.spliceInto(parent, idx)
	}
}

// flattenChildren resolves every nested group among g's direct children,
// post-order: a child group's own children are flattened first, then the
// child itself is spliced into g and replaced by its (now all-leaf)
// children in g.Children.
func (g *GroupNodeDesc) flattenChildren() {
	i := 0
	for i < len(g.Children) {
		child, ok := g.Children[i].(*GroupNodeDesc)
		if !ok {
			i++
			continue
		}
		child.flattenChildren()
		i = child.spliceInto(g, i)
	}
}

// spliceInto inlines g — already fully flattened — into parent at index
// idx, redirecting every link incident to g's pseudo-node and dropping the
// links internal to g that reference its own ports. Returns the index in
// parent.Children immediately following the spliced-in children, so the
// caller's iteration can resume there.
func (g *GroupNodeDesc) spliceInto(parent *GroupNodeDesc, idx int) int {
	links := g.Links
	parentLinks := parent.Links

	// Parent-level links incident to g's pseudo-node: incoming (g is the
	// target) and outgoing (g is the source).
	incomingLinks := map[Socket]*NodeDescLink{}
	outgoingLinks := map[Socket][]*NodeDescLink{}
	for _, link := range parentLinks {
		if isSelfSocket(link.To, g) {
			incomingLinks[link.To] = link
		} else if isSelfSocket(link.From, g) {
			outgoingLinks[link.From] = append(outgoingLinks[link.From], link)
		}
	}

	// Inner links incident to g's own ports: those fed FROM an input or
	// property (forwarding into the subgraph), and those feeding an output
	// (TO is the group's own output port).
	internalFromInputs := map[Socket][]*NodeDescLink{}
	internalToOutputs := map[Socket]*NodeDescLink{}
	for _, link := range links {
		if isSelfSocket(link.From, g) {
			internalFromInputs[link.From] = append(internalFromInputs[link.From], link)
		}
		if isSelfSocket(link.To, g) {
			internalToOutputs[link.To] = link
		}
	}

	var clearParentLinks []Socket
	var newParentLinks []*NodeDescLink

	// resolveInput handles one property or input socket of g.
	resolveInput := func(name string) {
		socket := g.SelfInput(name)
		selfDesc, _ := g.socketDesc(name)

		incoming, hasIncoming := incomingLinks[socket]
		innerLinks, hasInner := internalFromInputs[socket]

		if !hasIncoming {
			// No external value feeds this socket: whatever it forwards to
			// inside the subgraph just gets the socket's default instead.
			if !hasInner {
				return
			}
			for _, inner := range innerLinks {
				if toDesc, ok := socketDescOf(inner.To); ok {
					toDesc.Value = selfDesc.Value
				}
				if inner.To.IsOutput() {
					delete(internalToOutputs, inner.To)
				}
			}
			return
		}

		if !hasInner {
			// Linked from outside, but not forwarded anywhere internally:
			// the external link has nothing left to feed, so drop it.
			clearParentLinks = append(clearParentLinks, incoming.To)
			return
		}
		// Linked both from outside and to an internal consumer: redirect
		// the external source straight to the consumer, skipping g.
		clearParentLinks = append(clearParentLinks, incoming.To)
		for _, inner := range innerLinks {
			newParentLinks = append(newParentLinks, &NodeDescLink{From: incoming.From, To: inner.To})
			if inner.To.IsOutput() {
				if outLink, ok := internalToOutputs[inner.To]; ok {
					outLink.From = incoming.From
				}
			}
		}
	}

	for name := range g.Properties {
		resolveInput(name)
	}
	for name := range g.Inputs {
		resolveInput(name)
	}

	// Resolve outputs: an output only matters if something outside g
	// consumes it.
	for name := range g.Outputs {
		socket := g.SelfOutput(name)
		outs, hasOuts := outgoingLinks[socket]
		if !hasOuts {
			continue
		}
		inner, hasInner := internalToOutputs[socket]
		if !hasInner {
			// No internal producer: bake the output's default value into
			// every consumer and drop the now-sourceless parent link.
			outDesc, _ := g.socketDesc(name)
			for _, link := range outs {
				if toDesc, ok := socketDescOf(link.To); ok {
					toDesc.Value = outDesc.Value
				}
			}
			parentLinks = removeLinksWhere(parentLinks, func(l *NodeDescLink) bool { return l.From == socket })
			continue
		}
		// Internal producer: redirect every consumer straight to it.
		for _, link := range outs {
			link.From = inner.From
		}
	}

	for _, sock := range clearParentLinks {
		s := sock
		parentLinks = removeLinksWhere(parentLinks, func(l *NodeDescLink) bool { return l.To == s })
	}
	parentLinks = append(parentLinks, newParentLinks...)

	// Move g's children into parent at idx, replacing g itself, and
	// reparent them.
	newChildren := make([]Node, 0, len(parent.Children)-1+len(g.Children))
	newChildren = append(newChildren, parent.Children[:idx]...)
	newChildren = append(newChildren, g.Children...)
	newChildren = append(newChildren, parent.Children[idx+1:]...)
	for offset, child := range g.Children {
		desc := child.NodeDescriptor()
		desc.Parent = parent
		desc.IndexInParent = idx + offset
	}
	for i := idx + len(g.Children); i < len(newChildren); i++ {
		newChildren[i].NodeDescriptor().IndexInParent = i
	}
	parent.Children = newChildren

	// Move g's remaining internal links (the ones not touching g's own
	// ports, already handled above) into parent.
	for _, link := range links {
		if isSelfSocket(link.From, g) || isSelfSocket(link.To, g) {
			continue
		}
		parentLinks = append(parentLinks, link)
	}
	parent.Links = parentLinks

	return idx + len(g.Children)
}

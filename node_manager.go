package unirender

import (
	"strings"
	"sync"
)

// NodeFactory produces a freshly populated NodeDesc template (inputs,
// outputs, properties, primary output) for one node type (§4.2). The
// returned NodeDesc is unattached (Parent == nil); GroupNodeDesc.AddNode
// attaches it.
type NodeFactory func() *NodeDesc

// NodeManager is the registry mapping a node type name to its factory.
// Registration is case-insensitive (§4.2); lookups normalize to lower
// case.
type NodeManager struct {
	mu        sync.RWMutex
	factories map[string]NodeFactory
}

var defaultNodeManager = NewNodeManager()

// DefaultNodeManager returns the process-wide NodeManager pre-populated
// with the built-in node catalog (§4.2).
func DefaultNodeManager() *NodeManager { return defaultNodeManager }

// NewNodeManager builds an empty registry. Most callers want
// DefaultNodeManager; NewNodeManager exists for tests that need an
// isolated catalog.
func NewNodeManager() *NodeManager {
	return &NodeManager{factories: map[string]NodeFactory{}}
}

// Register adds or replaces the factory for a node type name.
func (m *NodeManager) Register(typeName string, factory NodeFactory) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.factories[strings.ToLower(typeName)] = factory
}

// Create instantiates a new NodeDesc for typeName, or returns a NotFound
// error if no factory is registered (§7).
func (m *NodeManager) Create(typeName string) (*NodeDesc, error) {
	m.mu.RLock()
	f, ok := m.factories[strings.ToLower(typeName)]
	m.mu.RUnlock()
	if !ok {
		return nil, NewError(NotFound, "NodeManager.Create", "unregistered node type: "+typeName)
	}
	return f(), nil
}

// IsRegistered reports whether typeName has a factory.
func (m *NodeManager) IsRegistered(typeName string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.factories[strings.ToLower(typeName)]
	return ok
}

// TypeNames returns every registered node type name.
func (m *NodeManager) TypeNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.factories))
	for name := range m.factories {
		names = append(names, name)
	}
	return names
}

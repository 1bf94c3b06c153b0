package unirender

// Object places a Mesh in scene space (§3): a shared reference to the
// mesh it instances, plus the WorldObject pose/uuid state and the
// BaseObject name/hash/id bookkeeping every scene-graph object carries.
type Object struct {
	BaseObject
	WorldObject

	Mesh *Mesh
}

// NewObject wraps mesh in an Object at the identity pose with a fresh
// uuid.
func NewObject(mesh *Mesh) *Object {
	return &Object{
		BaseObject:  BaseObject{Name: mesh.Name},
		WorldObject: NewWorldObject(),
		Mesh:        mesh,
	}
}

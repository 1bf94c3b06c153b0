package unirender

import "github.com/google/uuid"

// BaseObject carries the bookkeeping fields every scene-graph object
// (Mesh, Object, Shader) is finalized with: a display name, a content
// hash stamped by whoever serializes it (ModelCacheChunk.Bake, primarily),
// a scene-local id, and a finalized flag guarding DoFinalize against
// running twice.
type BaseObject struct {
	Name       string
	Hash       uint64
	ID         uint32
	finalized  bool
}

// Finalize runs DoFinalize once per object unless force is set, matching
// the source's re-entrancy guard.
func (b *BaseObject) Finalize(force bool, doFinalize func()) {
	if b.finalized && !force {
		return
	}
	b.finalized = true
	doFinalize()
}

// Finalized reports whether Finalize has already run.
func (b *BaseObject) Finalized() bool { return b.finalized }

// WorldObject carries the placement state shared by every object that
// exists in scene space: a pose, and a stable identity uuid used to target
// live-edit operations (Renderer.SyncEditedActor, §6).
type WorldObject struct {
	Pose       ScaledTransform
	MotionPose ScaledTransform
	UUID       uuid.UUID
}

// NewWorldObject returns a WorldObject at the identity pose with a fresh
// random uuid.
func NewWorldObject() WorldObject {
	return WorldObject{Pose: IdentityScaled(), MotionPose: IdentityScaled(), UUID: uuid.New()}
}

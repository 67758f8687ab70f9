package lattice

import "fmt"

// EntityID is an opaque, process-local identifier for an entity. It is a
// generational index: Index selects a slot in the store's entity table,
// Recycled counts how many times that slot has been reused. A stale
// EntityID (one whose Recycled no longer matches the slot's current
// generation) behaves as unknown to every Store operation — this is what
// makes repeated DestroyEntity calls, and calls through a handle captured
// before a destroy, safe no-ops instead of silently operating on the
// wrong entity after the slot is recycled.
//
// EntityID carries no intrinsic data of its own; Valid reports only
// whether it was ever issued, not whether it still names a live entity —
// use Store.HasComponent or a successful Store lookup for that.
type EntityID struct {
	index    uint32
	recycled uint32
}

// Index returns the entity's slot index.
func (e EntityID) Index() uint32 {
	return e.index
}

// Recycled returns the entity's generation count.
func (e EntityID) Recycled() uint32 {
	return e.recycled
}

// Valid reports whether this EntityID was ever issued by a Store.
func (e EntityID) Valid() bool {
	return e.recycled != 0 || e.index != 0
}

func (e EntityID) String() string {
	return fmt.Sprintf("Entity(%d:%d)", e.index, e.recycled)
}

// ArchetypeID identifies an archetype within one Store's TypeGraph. It is
// process-local and has no meaning outside the TypeGraph that issued it.
type ArchetypeID uint32

func (a ArchetypeID) String() string {
	return fmt.Sprintf("Archetype(%d)", uint32(a))
}

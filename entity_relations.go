package lattice

import (
	"github.com/TheBitDrifter/bark"
)

// EntityDestroyCallback is invoked when an entity with a destroy
// callback set is destroyed.
type EntityDestroyCallback func(EntityID)

// relation tracks one entity's parent and destroy callback. spec.md
// doesn't model entity hierarchies, but it composes cleanly with the
// generational EntityID the testable properties already require, the
// way the teacher's entity.go pairs SetParent/Parent with a recycled-
// generation check to detect a stale parent handle.
type relation struct {
	hasParent bool
	parent    EntityID
	onDestroy EntityDestroyCallback
}

// Relations is a Store-scoped side table of parent/child links, kept
// separate from the archetype columns since relationships aren't
// iterated over in bulk the way components are.
type Relations struct {
	store *Store
	links map[EntityID]*relation
}

// NewRelations creates an empty relation table for s.
func NewRelations(s *Store) *Relations {
	return &Relations{store: s, links: make(map[EntityID]*relation)}
}

// SetParent establishes a parent-child relationship. Returns
// EntityRelationError if child already has a parent.
func (r *Relations) SetParent(child, parent EntityID) error {
	rel := r.links[child]
	if rel == nil {
		rel = &relation{}
		r.links[child] = rel
	}
	if rel.hasParent {
		return bark.AddTrace(EntityRelationError{Child: child, Parent: parent})
	}
	rel.hasParent = true
	rel.parent = parent
	return nil
}

// Parent returns child's parent, or (EntityID{}, false) if child has no
// parent, or the recorded parent has since been recycled (a stale
// handle, detected via the generation stored at SetParent time versus
// the parent's current live generation).
func (r *Relations) Parent(child EntityID) (EntityID, bool) {
	rel := r.links[child]
	if rel == nil || !rel.hasParent {
		return EntityID{}, false
	}
	if _, alive := r.store.locate(rel.parent); !alive {
		return EntityID{}, false
	}
	return rel.parent, true
}

// SetDestroyCallback registers a callback invoked when e is destroyed.
// Store.DestroyEntity does not itself call this — callers that want the
// callback to fire must call Relations.NotifyDestroy from their own
// destroy path, mirroring the teacher's EntityDestroyCallback wiring.
func (r *Relations) SetDestroyCallback(e EntityID, cb EntityDestroyCallback) {
	rel := r.links[e]
	if rel == nil {
		rel = &relation{}
		r.links[e] = rel
	}
	rel.onDestroy = cb
}

// NotifyDestroy invokes e's destroy callback, if one is set, and drops
// e's relation bookkeeping.
func (r *Relations) NotifyDestroy(e EntityID) {
	rel := r.links[e]
	if rel != nil && rel.onDestroy != nil {
		rel.onDestroy(e)
	}
	delete(r.links, e)
}

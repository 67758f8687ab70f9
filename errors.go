package lattice

import "fmt"

// LockedStoreError describes a store held locked by an active Cursor. No
// Store operation returns it: Attach, Detach and DestroyEntity called
// while the store is locked are queued and applied once the last lock is
// released.
type LockedStoreError struct{}

func (e LockedStoreError) Error() string {
	return "store is currently locked by an active cursor"
}

// EntityRelationError reports that a child entity already has a parent.
type EntityRelationError struct {
	Child, Parent EntityID
}

func (e EntityRelationError) Error() string {
	return fmt.Sprintf("entity %v already has parent %v", e.Child, e.Parent)
}

// RegistryFullError reports that the component-type registry has reached
// its configured capacity (bounded by the width of mask.Mask).
type RegistryFullError struct {
	Capacity int
}

func (e RegistryFullError) Error() string {
	return fmt.Sprintf("component-type registry at capacity (%d)", e.Capacity)
}

// The following are invariant violations: programming errors per spec §7,
// never returned as error values. They are panicked, wrapped with
// bark.AddTrace at the call site, the same way the teacher wraps its own
// panics in entity.go and query.go.

// ColumnTypeMismatchError indicates a Column was accessed with a Go type
// other than the one it was created for.
type ColumnTypeMismatchError struct {
	Column   string
	Accessed string
}

func (e ColumnTypeMismatchError) Error() string {
	return fmt.Sprintf("column holds %s, accessed as %s", e.Column, e.Accessed)
}

// FrozenArchetypeError indicates an attempt to add or remove a column type
// on an archetype that already has rows.
type FrozenArchetypeError struct {
	RowCount int
}

func (e FrozenArchetypeError) Error() string {
	return fmt.Sprintf("archetype type-set is frozen: %d row(s) already present", e.RowCount)
}

// DuplicateArchetypeIDError indicates TypeGraph.GetMany was called with a
// repeated ArchetypeID, which cannot yield disjoint mutable borrows.
type DuplicateArchetypeIDError struct {
	ID ArchetypeID
}

func (e DuplicateArchetypeIDError) Error() string {
	return fmt.Sprintf("archetype id %v requested more than once in the same borrow set", e.ID)
}

// DuplicateComponentTypeError indicates a mutable-iteration request named
// the same ComponentType more than once.
type DuplicateComponentTypeError struct {
	Type ComponentType
}

func (e DuplicateComponentTypeError) Error() string {
	return fmt.Sprintf("component type %s requested more than once in the same borrow set", e.Type.name)
}

// InvalidMigrationError indicates a cross-archetype move was requested
// between archetypes that do not differ by exactly one type in the
// expected direction. This can only happen from a bug inside the store
// itself (TypeGraph/Archetype misuse), never from caller input.
type InvalidMigrationError struct {
	Reason string
}

func (e InvalidMigrationError) Error() string {
	return fmt.Sprintf("invalid archetype migration: %s", e.Reason)
}

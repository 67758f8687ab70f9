package lattice

// ComponentTypeFor, Attach, Detach, Get, and Has are the typed entry
// points callers use instead of touching ComponentType/reflect directly
// — mirrors delaneyj-arche's ecs/generic.go (ComponentID[T], Add[T],
// Remove[T], Map[T]) generalized to this store's archetype model.

// Attach assigns value to e's T-component, moving e to the +T neighbor
// archetype if it doesn't already carry T, or overwriting in place if it
// does (spec.md §9 open question). A no-op if e is unknown. If a Cursor
// currently holds the store locked, the attach is deferred until the
// last lock releases.
func Attach[T any](s *Store, e EntityID, value T) {
	ct := ComponentTypeFor[T](s)
	if s.Locked() {
		s.opQueue.Enqueue(attachOp{entity: e, recycled: e.recycled, ctype: ct, value: value})
		return
	}
	s.attachValue(e, ct, value)
}

// Detach removes e's T-component, moving e to the -T neighbor
// archetype. A no-op if e is unknown or doesn't carry T. Deferred like
// Attach if the store is currently locked.
func Detach[T any](s *Store, e EntityID) {
	ct := ComponentTypeFor[T](s)
	if s.Locked() {
		s.opQueue.Enqueue(detachOp{entity: e, recycled: e.recycled, ctype: ct})
		return
	}
	s.detach(e, ct)
}

// Get returns a pointer to e's T-component, aliasing the column's
// backing array directly, and true. Returns (nil, false) if e is
// unknown or doesn't carry T (spec.md §4.4 get_component).
func Get[T any](s *Store, e EntityID) (*T, bool) {
	ct := ComponentTypeFor[T](s)
	col, row, ok := s.column(e, ct)
	if !ok {
		return nil, false
	}
	return At[T](col, row), true
}

// Has reports whether e currently carries a T-component.
func Has[T any](s *Store, e EntityID) bool {
	ct := ComponentTypeFor[T](s)
	return s.HasComponent(e, ct)
}

// Attach2 attaches two components to e in one call.
func Attach2[A, B any](s *Store, e EntityID, a A, b B) {
	Attach(s, e, a)
	Attach(s, e, b)
}

// Attach3 attaches three components to e in one call.
func Attach3[A, B, C any](s *Store, e EntityID, a A, b B, c C) {
	Attach(s, e, a)
	Attach(s, e, b)
	Attach(s, e, c)
}

// Attach4 attaches four components to e in one call.
func Attach4[A, B, C, D any](s *Store, e EntityID, a A, b B, c C, d D) {
	Attach(s, e, a)
	Attach(s, e, b)
	Attach(s, e, c)
	Attach(s, e, d)
}

// Detach2 detaches two component types from e in one call.
func Detach2[A, B any](s *Store, e EntityID) {
	Detach[A](s, e)
	Detach[B](s, e)
}

// Detach3 detaches three component types from e in one call.
func Detach3[A, B, C any](s *Store, e EntityID) {
	Detach[A](s, e)
	Detach[B](s, e)
	Detach[C](s, e)
}

// TypesOf1 registers and returns the ComponentType for A as a one-element
// list, the typed helper for building a Query:
// q.And(lattice.TypesOf2[A, B](s)). TypesOf2 and TypesOf3 are the two-
// and three-type forms.
func TypesOf1[A any](s *Store) []ComponentType {
	return []ComponentType{ComponentTypeFor[A](s)}
}

// TypesOf2 is the two-type form of TypesOf1.
func TypesOf2[A, B any](s *Store) []ComponentType {
	return []ComponentType{ComponentTypeFor[A](s), ComponentTypeFor[B](s)}
}

// TypesOf3 is the three-type form of TypesOf1.
func TypesOf3[A, B, C any](s *Store) []ComponentType {
	return []ComponentType{ComponentTypeFor[A](s), ComponentTypeFor[B](s), ComponentTypeFor[C](s)}
}

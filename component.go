package lattice

import "reflect"

// ComponentType is the runtime identity witness for a component value
// type T (spec.md §3). It is equatable and hashable (a plain comparable
// struct), and doubles as the bit position T occupies in every
// Archetype's mask.Mask. ComponentType values are created by a Store's
// internal component registry (see registry.go) the first time a type is
// seen; callers never construct one directly — see ComponentTypeFor.
type ComponentType struct {
	typ  reflect.Type
	bit  uint32
	name string
}

// Type returns the reflect.Type this ComponentType witnesses.
func (c ComponentType) Type() reflect.Type {
	return c.typ
}

// Bit returns the mask bit position assigned to this component type.
func (c ComponentType) Bit() uint32 {
	return c.bit
}

func (c ComponentType) String() string {
	return c.name
}

// ComponentTypeFor returns the ComponentType for T, registering it with
// the store the first time T is requested. This is the typed entry point
// callers use instead of touching reflect.Type directly — mirrors the
// teacher's FactoryNewComponent[T] and delaneyj-arche's ComponentID[T].
func ComponentTypeFor[T any](s *Store) ComponentType {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return s.registry.register(t)
}

/*
Package lattice provides an archetype-based storage core for Entity-
Component-System (ECS) designs.

Lattice keeps entities that share the same set of component types packed
together in one archetype, column-per-type, so iterating over a subset
of components touches only matching entities rather than scanning every
entity in the store. Attaching or detaching a component moves an entity
to a neighboring archetype along an edge in a lazily-built type lattice,
an O(1) amortized operation once the edge has been touched once.

Core Concepts:

  - EntityID: an opaque, process-local, generational identifier.
  - Component: a value of arbitrary user type attached to at most one entity at a time.
  - Archetype: the set of entities sharing the same component types, stored column-per-type.
  - TypeGraph: the lattice of archetypes, linked by single-component-type edges.
  - Query: a composable filter (And/Or/Not) over archetypes.

Basic Usage:

	store := lattice.NewStore()

	e1 := store.CreateEntity()
	lattice.Attach(store, e1, Position{X: 0, Y: 0})
	lattice.Attach(store, e1, Velocity{X: 1, Y: 0})

	posT := lattice.ComponentTypeFor[Position](store)
	velT := lattice.ComponentTypeFor[Velocity](store)

	q := lattice.NewQuery()
	node := q.And(posT, velT)
	cursor := lattice.NewCursor(node, store)

	for cursor.Next() {
		pos, _ := lattice.CursorGet[Position](store, cursor)
		vel, _ := lattice.CursorGet[Velocity](store, cursor)
		pos.X += vel.X
		pos.Y += vel.Y
	}
*/
package lattice

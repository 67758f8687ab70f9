package lattice_test

import (
	"fmt"

	"github.com/latticeframe/lattice"
)

// Position is a simple component for 2D coordinates.
type Position struct {
	X float64
	Y float64
}

// Velocity is a simple component for 2D movement.
type Velocity struct {
	X float64
	Y float64
}

// Name identifies an entity.
type Name struct {
	Value string
}

// Example_basic shows basic entity creation, attachment, and querying.
func Example_basic() {
	store := lattice.Factory.NewStore()

	for i := 0; i < 5; i++ {
		e := store.CreateEntity()
		lattice.Attach(store, e, Position{})
	}
	for i := 0; i < 3; i++ {
		e := store.CreateEntity()
		lattice.Attach2(store, e, Position{}, Velocity{})
	}

	player := store.CreateEntity()
	lattice.Attach2(store, player, Position{}, Velocity{})
	lattice.Attach(store, player, Name{Value: "Player"})

	pos, _ := lattice.Get[Position](store, player)
	vel, _ := lattice.Get[Velocity](store, player)
	pos.X, pos.Y = 10.0, 20.0
	vel.X, vel.Y = 1.0, 2.0

	posT := lattice.ComponentTypeFor[Position](store)
	velT := lattice.ComponentTypeFor[Velocity](store)

	q := lattice.Factory.NewQuery()
	node := q.And(posT, velT)
	cursor := lattice.Factory.NewCursor(node, store)

	matchCount := 0
	for cursor.Next() {
		matchCount++
	}
	fmt.Printf("Found %d entities with position and velocity\n", matchCount)

	nameT := lattice.ComponentTypeFor[Name](store)
	node = lattice.Factory.NewQuery().And(nameT)
	cursor = lattice.Factory.NewCursor(node, store)
	for cursor.Next() {
		p, _ := lattice.CursorGet[Position](store, cursor)
		v, _ := lattice.CursorGet[Velocity](store, cursor)
		n, _ := lattice.CursorGet[Name](store, cursor)

		p.X += v.X
		p.Y += v.Y

		fmt.Printf("Updated %s to position (%.1f, %.1f)\n", n.Value, p.X, p.Y)
	}

	// Output:
	// Found 4 entities with position and velocity
	// Updated Player to position (11.0, 22.0)
}

// Example_queries shows And/Or/Not composed over several archetypes.
func Example_queries() {
	store := lattice.Factory.NewStore()

	for i := 0; i < 3; i++ {
		e := store.CreateEntity()
		lattice.Attach(store, e, Position{})
	}
	for i := 0; i < 3; i++ {
		e := store.CreateEntity()
		lattice.Attach2(store, e, Position{}, Velocity{})
	}
	for i := 0; i < 3; i++ {
		e := store.CreateEntity()
		lattice.Attach2(store, e, Position{}, Name{})
	}
	for i := 0; i < 3; i++ {
		e := store.CreateEntity()
		lattice.Attach3(store, e, Position{}, Velocity{}, Name{})
	}

	posT := lattice.ComponentTypeFor[Position](store)
	velT := lattice.ComponentTypeFor[Velocity](store)
	nameT := lattice.ComponentTypeFor[Name](store)

	andQuery := lattice.Factory.NewQuery().And(posT, velT)
	cursor := lattice.Factory.NewCursor(andQuery, store)
	fmt.Printf("AND query matched %d entities\n", cursor.TotalMatched())

	orQuery := lattice.Factory.NewQuery().Or(velT, nameT)
	cursor = lattice.Factory.NewCursor(orQuery, store)
	fmt.Printf("OR query matched %d entities\n", cursor.TotalMatched())

	notQuery := lattice.Factory.NewQuery().And(posT, lattice.Factory.NewQuery().Not(velT))
	cursor = lattice.Factory.NewCursor(notQuery, store)
	fmt.Printf("NOT query matched %d entities\n", cursor.TotalMatched())

	// Output:
	// AND query matched 6 entities
	// OR query matched 9 entities
	// NOT query matched 6 entities
}

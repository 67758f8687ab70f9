package lattice

import "testing"

func newTestGraph(reg *componentRegistry) (*TypeGraph, ComponentType) {
	entityT := ComponentType{typ: reflectTypeOf(EntityID{}), name: "lattice.EntityID"}
	return NewTypeGraph(entityT), entityT
}

// TestArchetypeCreationConvergence mirrors the teacher's
// TestArchetypeCreation: the same type-set always resolves to the same
// archetype, regardless of the order components were attached in.
func TestArchetypeCreationConvergence(t *testing.T) {
	reg := newTestRegistry()
	posT := reg.register(reflectTypeOf(testPosition{}))
	velT := reg.register(reflectTypeOf(testVelocity{}))

	tests := []struct {
		name          string
		build         func(g *TypeGraph, root ArchetypeID) ArchetypeID
		other         func(g *TypeGraph, root ArchetypeID) ArchetypeID
		expectSameArc bool
	}{
		{
			name: "same types different order converge",
			build: func(g *TypeGraph, root ArchetypeID) ArchetypeID {
				return g.CreateNeighborPlus(g.CreateNeighborPlus(root, posT), velT)
			},
			other: func(g *TypeGraph, root ArchetypeID) ArchetypeID {
				return g.CreateNeighborPlus(g.CreateNeighborPlus(root, velT), posT)
			},
			expectSameArc: true,
		},
		{
			name: "different type sets diverge",
			build: func(g *TypeGraph, root ArchetypeID) ArchetypeID {
				return g.CreateNeighborPlus(root, posT)
			},
			other: func(g *TypeGraph, root ArchetypeID) ArchetypeID {
				return g.CreateNeighborPlus(root, velT)
			},
			expectSameArc: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := newTestGraph(reg)
			a := tt.build(g, g.Root())
			b := tt.other(g, g.Root())
			same := a == b
			if same != tt.expectSameArc {
				t.Errorf("same archetype = %v, want %v", same, tt.expectSameArc)
			}
		})
	}
}

func TestConnectNeighborsBidirectional(t *testing.T) {
	reg := newTestRegistry()
	posT := reg.register(reflectTypeOf(testPosition{}))
	g, _ := newTestGraph(reg)

	withPos := g.CreateNeighborPlus(g.Root(), posT)

	id, ok := g.NeighborMinus(withPos, posT)
	if !ok || id != g.Root() {
		t.Fatalf("expected +T edge to be mirrored as -T back to root, got id=%v ok=%v", id, ok)
	}
}

func TestCreateNeighborPlusIsIdempotent(t *testing.T) {
	reg := newTestRegistry()
	posT := reg.register(reflectTypeOf(testPosition{}))
	g, _ := newTestGraph(reg)

	first := g.CreateNeighborPlus(g.Root(), posT)
	second := g.CreateNeighborPlus(g.Root(), posT)
	if first != second {
		t.Fatalf("CreateNeighborPlus called twice for the same edge returned different archetypes: %v vs %v", first, second)
	}
}

func TestGetManyPanicsOnDuplicateID(t *testing.T) {
	reg := newTestRegistry()
	posT := reg.register(reflectTypeOf(testPosition{}))
	g, _ := newTestGraph(reg)
	a := g.CreateNeighborPlus(g.Root(), posT)

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic on duplicate ArchetypeID in GetMany")
		}
	}()
	g.GetMany([]ArchetypeID{a, a})
}

package lattice

import (
	"fmt"
	"reflect"
	"strings"
)

// StoreStats is read-only introspection over a Store — the surface
// spec.md §6 asks for under "Introspection: type_index lookup ...
// exposed at least read-only", generalized from delaneyj-arche's
// ecs/stats.WorldStats to this store's archetype/column shape.
type StoreStats struct {
	Entities       EntityStats
	ComponentCount int
	ComponentTypes []reflect.Type
	Locked         bool
	Archetypes     []ArchetypeStats
}

// EntityStats describes the entity slot table.
type EntityStats struct {
	Used     int
	Capacity int
	Recycled int
}

// ArchetypeStats describes one archetype.
type ArchetypeStats struct {
	ID             ArchetypeID
	Size           int
	ComponentCount int
	ComponentTypes []reflect.Type
}

// Stats snapshots s's current state.
func (s *Store) Stats() StoreStats {
	used := 0
	for _, slot := range s.slots {
		if slot.alive {
			used++
		}
	}

	types := make([]reflect.Type, 0, len(s.typeIndex))
	for ct := range s.typeIndex {
		types = append(types, ct.typ)
	}

	archetypes := s.Archetypes()
	archStats := make([]ArchetypeStats, len(archetypes))
	for i, a := range archetypes {
		cts := a.Types()
		typs := make([]reflect.Type, len(cts))
		for j, ct := range cts {
			typs[j] = ct.typ
		}
		archStats[i] = ArchetypeStats{
			ID:             a.ID(),
			Size:           a.Len(),
			ComponentCount: len(cts),
			ComponentTypes: typs,
		}
	}

	return StoreStats{
		Entities: EntityStats{
			Used:     used,
			Capacity: len(s.slots),
			Recycled: len(s.freeList),
		},
		ComponentCount: len(s.typeIndex),
		ComponentTypes: types,
		Locked:         s.Locked(),
		Archetypes:     archStats,
	}
}

func (s StoreStats) String() string {
	b := strings.Builder{}
	fmt.Fprintf(&b, "Store -- Components: %d, Archetypes: %d, Locked: %t\n", s.ComponentCount, len(s.Archetypes), s.Locked)
	fmt.Fprint(&b, s.Entities.String())
	for _, a := range s.Archetypes {
		fmt.Fprint(&b, a.String())
	}
	return b.String()
}

func (s EntityStats) String() string {
	return fmt.Sprintf("Entities -- Used: %d, Recycled: %d, Capacity: %d\n", s.Used, s.Recycled, s.Capacity)
}

func (s ArchetypeStats) String() string {
	names := make([]string, len(s.ComponentTypes))
	for i, t := range s.ComponentTypes {
		names[i] = t.Name()
	}
	return fmt.Sprintf(
		"Archetype %s -- Components: %d, Entities: %d\n  Components: %s\n",
		s.ID, s.ComponentCount, s.Size, strings.Join(names, ", "),
	)
}

package lattice

import (
	"reflect"
	"sort"

	"github.com/TheBitDrifter/bark"
	"github.com/TheBitDrifter/mask"
)

// entitySlot locates one live (or formerly-live) entity within the
// archetype graph, plus its generation counter (spec.md §3 EntityId
// lifecycle, §4.4 entity_index).
type entitySlot struct {
	archetype ArchetypeID
	row       int
	recycled  uint32
	alive     bool
}

// Store is the top-level public API: entity create/destroy, attach/
// detach, typed component access, and iteration (spec.md §4.4). It owns
// the TypeGraph, the entity index, and the type index, and is the single
// point where swap-remove fixups are applied back into the entity index.
type Store struct {
	graph    *TypeGraph
	registry *componentRegistry
	entityT  ComponentType

	slots    []entitySlot
	freeList []uint32

	maskIndex map[mask.Mask]ArchetypeID
	typeIndex map[ComponentType]map[ArchetypeID]struct{}

	locks    mask.Mask256
	nextLock uint32
	opQueue  *operationQueue
}

// NewStore creates an empty store: a TypeGraph with only the root
// archetype, and empty entity/type indices.
func NewStore(opts ...StoreOption) *Store {
	cfg := defaultStoreConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	entityT := ComponentType{
		typ:  reflect.TypeOf(EntityID{}),
		name: "lattice.EntityID",
	}

	s := &Store{
		registry:  newComponentRegistry(cfg.componentCapacity),
		entityT:   entityT,
		maskIndex: make(map[mask.Mask]ArchetypeID),
		typeIndex: make(map[ComponentType]map[ArchetypeID]struct{}),
		opQueue:   newOperationQueue(),
	}
	s.graph = NewTypeGraph(entityT)
	s.maskIndex[mask.Mask{}] = s.graph.Root()
	return s
}

// Locked reports whether any cursor currently holds this store locked.
func (s *Store) Locked() bool {
	return !s.locks.IsEmpty()
}

// acquireLock allocates a fresh lock bit and marks it, returning the bit
// so the caller can release it later via releaseLock.
func (s *Store) acquireLock() uint32 {
	bit := s.nextLock
	s.nextLock++
	s.locks.Mark(bit)
	return bit
}

// releaseLock clears bit and, if no locks remain, drains the deferred
// operation queue (teacher's RemoveLock → operationQueue.ProcessAll
// pattern in storage.go).
func (s *Store) releaseLock(bit uint32) {
	s.locks.Unmark(bit)
	if s.locks.IsEmpty() {
		s.opQueue.ProcessAll(s)
	}
}

// registerType returns the ComponentType for t, registering it on first
// use.
func (s *Store) registerType(t reflect.Type) ComponentType {
	return s.registry.register(t)
}

func (s *Store) recordTypeIndex(ct ComponentType, id ArchetypeID) {
	set, ok := s.typeIndex[ct]
	if !ok {
		set = make(map[ArchetypeID]struct{})
		s.typeIndex[ct] = set
	}
	set[id] = struct{}{}
}

// findOrCreateArchetype returns the archetype whose type-set is exactly
// types, walking the TypeGraph from the root and creating any missing
// intermediate nodes along the way (spec.md §4.3 create_neighbor_plus).
// Walk order is the types' bit order, which is deterministic but
// otherwise immaterial: connectNeighbors guarantees the same final
// type-set always resolves to the same archetype regardless of the path
// used to reach it.
func (s *Store) findOrCreateArchetype(types []ComponentType) ArchetypeID {
	var m mask.Mask
	sorted := make([]ComponentType, len(types))
	copy(sorted, types)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].bit < sorted[j].bit })
	for _, ct := range sorted {
		m.Mark(ct.bit)
	}

	if id, ok := s.maskIndex[m]; ok {
		return id
	}

	cur := s.graph.Root()
	for _, ct := range sorted {
		cur = s.graph.CreateNeighborPlus(cur, ct)
	}
	s.maskIndex[m] = cur
	for ct := range s.graph.Get(cur).columns {
		s.recordTypeIndex(ct, cur)
	}
	return cur
}

// CreateEntity allocates a fresh EntityID and places it, with no
// components, in the root archetype.
func (s *Store) CreateEntity() EntityID {
	return s.newEntityIn(s.graph.Root(), nil)
}

// NewEntityWith allocates a fresh EntityID carrying one component per
// value, placing it directly into the matching archetype instead of
// migrating through N single-type edges — the batch-creation path
// mirroring the teacher's NewEntities(n, components...).
func (s *Store) NewEntityWith(values ...any) EntityID {
	if len(values) == 0 {
		return s.CreateEntity()
	}
	types := make([]ComponentType, len(values))
	byType := make(map[ComponentType]any, len(values))
	for i, v := range values {
		ct := s.registerType(reflect.TypeOf(v))
		types[i] = ct
		byType[ct] = v
	}
	archID := s.findOrCreateArchetype(types)
	return s.newEntityIn(archID, byType)
}

func (s *Store) newEntityIn(archID ArchetypeID, values map[ComponentType]any) EntityID {
	arch := s.graph.Get(archID)

	var index uint32
	var recycled uint32
	if n := len(s.freeList); n > 0 {
		index = s.freeList[n-1]
		s.freeList = s.freeList[:n-1]
		recycled = s.slots[index].recycled + 1
	} else {
		index = uint32(len(s.slots))
		s.slots = append(s.slots, entitySlot{})
		recycled = 1
	}

	id := EntityID{index: index, recycled: recycled}
	row := arch.pushRow(id, values)
	s.slots[index] = entitySlot{archetype: archID, row: row, recycled: recycled, alive: true}
	return id
}

// locate resolves e to its slot, returning ok=false if e is unknown or
// stale (spec.md §7: unknown entity is a silent absent, never a panic).
func (s *Store) locate(e EntityID) (*entitySlot, bool) {
	if int(e.index) >= len(s.slots) {
		return nil, false
	}
	slot := &s.slots[e.index]
	if !slot.alive || slot.recycled != e.recycled {
		return nil, false
	}
	return slot, true
}

// DestroyEntity removes e from the store. Repeated calls after the
// first are no-ops (spec.md §8 invariant 7).
func (s *Store) DestroyEntity(e EntityID) {
	if s.Locked() {
		s.opQueue.Enqueue(destroyEntityOp{entity: e, recycled: e.recycled})
		return
	}
	s.destroyEntity(e)
}

func (s *Store) destroyEntity(e EntityID) {
	slot, ok := s.locate(e)
	if !ok {
		return
	}
	arch := s.graph.Get(slot.archetype)
	swapped, hadSwap := arch.removeRow(slot.row)
	if hadSwap {
		s.slots[swapped.index].row = slot.row
	}
	slot.alive = false
	s.freeList = append(s.freeList, e.index)
}

// attachValue moves e into the +ct neighbor archetype, writing value
// into the new column. Per spec.md §9's open question, re-attaching a
// type the entity already carries overwrites the existing value in
// place rather than migrating archetypes.
func (s *Store) attachValue(e EntityID, ct ComponentType, value any) {
	slot, ok := s.locate(e)
	if !ok {
		return
	}
	arch := s.graph.Get(slot.archetype)
	if col := arch.column(ct); col != nil {
		col.Set(slot.row, value)
		return
	}

	destID, existed := s.graph.NeighborPlus(slot.archetype, ct)
	if !existed {
		destID = s.graph.CreateNeighborPlus(slot.archetype, ct)
	}
	dest := s.graph.Get(destID)

	var destMask mask.Mask
	for t := range dest.columns {
		destMask.Mark(t.bit)
		s.recordTypeIndex(t, destID)
	}
	s.maskIndex[destMask] = destID

	newRow, swapped, hadSwap := arch.upgradeRowTo(dest, slot.row, ct, value)
	if hadSwap {
		s.slots[swapped.index].row = slot.row
	}
	slot.archetype = destID
	slot.row = newRow
}

// detach moves e into the -ct neighbor archetype, dropping ct's value.
// A no-op if e doesn't currently carry ct.
func (s *Store) detach(e EntityID, ct ComponentType) {
	slot, ok := s.locate(e)
	if !ok {
		return
	}
	arch := s.graph.Get(slot.archetype)
	if arch.column(ct) == nil {
		return
	}

	destID, existed := s.graph.NeighborMinus(slot.archetype, ct)
	if !existed {
		destID = s.graph.CreateNeighborMinus(slot.archetype, ct)
	}
	dest := s.graph.Get(destID)

	var destMask mask.Mask
	for t := range dest.columns {
		destMask.Mark(t.bit)
		s.recordTypeIndex(t, destID)
	}
	s.maskIndex[destMask] = destID

	newRow, swapped, hadSwap := arch.downgradeRowTo(dest, slot.row, ct)
	if hadSwap {
		s.slots[swapped.index].row = slot.row
	}
	slot.archetype = destID
	slot.row = newRow
}

// HasComponent reports whether e currently carries ct.
func (s *Store) HasComponent(e EntityID, ct ComponentType) bool {
	slot, ok := s.locate(e)
	if !ok {
		return false
	}
	return s.graph.Get(slot.archetype).HasType(ct)
}

// column returns the live column and row for (e, ct), or ok=false if e
// is unknown or lacks ct.
func (s *Store) column(e EntityID, ct ComponentType) (col *Column, row int, ok bool) {
	slot, found := s.locate(e)
	if !found {
		return nil, 0, false
	}
	arch := s.graph.Get(slot.archetype)
	c := arch.column(ct)
	if c == nil {
		return nil, 0, false
	}
	return c, slot.row, true
}

// Columns resolves the live columns for (e, types) in one call, for
// callers that need to borrow several components at once without
// going through the typed Get[T] one at a time. Panics with
// DuplicateComponentTypeError if types repeats a type — spec.md §5's
// disjoint-mutable-borrow invariant, enforced here and in CursorColumns
// since those are the two paths where a caller-supplied type list (as
// opposed to distinct generic type parameters) could name the same
// column twice. Returns
// ok=false if e is unknown or doesn't carry every type in types.
func (s *Store) Columns(e EntityID, types []ComponentType) (cols []*Column, row int, ok bool) {
	checkDisjoint(types)
	slot, found := s.locate(e)
	if !found {
		return nil, 0, false
	}
	arch := s.graph.Get(slot.archetype)
	cols = make([]*Column, len(types))
	for i, ct := range types {
		col := arch.column(ct)
		if col == nil {
			return nil, 0, false
		}
		cols[i] = col
	}
	return cols, slot.row, true
}

// Archetypes returns every archetype ever created by this store.
func (s *Store) Archetypes() []*Archetype {
	return s.graph.Archetypes()
}

// matchArchetypes returns the archetypes that contain every type in
// types, using the type_index intersection spec.md §4.4 mandates rather
// than a linear scan of every archetype.
func (s *Store) matchArchetypes(types []ComponentType) []*Archetype {
	if len(types) == 0 {
		return s.Archetypes()
	}
	smallest := s.typeIndex[types[0]]
	for _, ct := range types[1:] {
		if set := s.typeIndex[ct]; len(set) < len(smallest) {
			smallest = set
		}
	}
	out := make([]*Archetype, 0, len(smallest))
	for id := range smallest {
		arch := s.graph.Get(id)
		if arch.Mask().ContainsAll(maskOf(types)) {
			out = append(out, arch)
		}
	}
	return out
}

func maskOf(types []ComponentType) mask.Mask {
	var m mask.Mask
	for _, ct := range types {
		m.Mark(ct.bit)
	}
	return m
}

// checkDisjoint panics with DuplicateComponentTypeError if types
// contains a repeat — spec.md §5: "requesting the same type twice in a
// mutable-iteration query is a detected programming error".
func checkDisjoint(types []ComponentType) {
	seen := make(map[ComponentType]struct{}, len(types))
	for _, ct := range types {
		if _, dup := seen[ct]; dup {
			panic(bark.AddTrace(DuplicateComponentTypeError{Type: ct}))
		}
		seen[ct] = struct{}{}
	}
}

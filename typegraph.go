package lattice

import (
	"github.com/TheBitDrifter/bark"
)

// node wraps one Archetype with its +T/-T edges to neighboring
// archetypes, mirroring original_source's type_graph.rs Node (subsets =
// "remove this type to get here", supsets = "add this type to get
// here"). Edges are filled in lazily: a node is created with the edge
// back to the node it was derived from plus every edge connectNeighbors
// finds to existing nodes, and gains further edges only when a later
// neighbor is created next to it. Looking a neighbor up adds no edge.
type node struct {
	archetype *Archetype
	types     map[ComponentType]struct{}
	subsets   map[ComponentType]ArchetypeID // -T edges: this type removed
	supsets   map[ComponentType]ArchetypeID // +T edges: this type added
}

// TypeGraph is the lattice of every archetype a Store has ever created,
// connected by +T/-T edges (spec.md §4.2/§9). Traversal from the root
// (the archetype with no components, holding only the implicit EntityID
// column) to any other archetype is a sequence of component
// attach/detach steps.
type TypeGraph struct {
	root    ArchetypeID
	nodes   map[ArchetypeID]*node
	nextID  uint32
	entityT ComponentType
}

// NewTypeGraph creates a graph containing only the empty root archetype.
// entityT is the ComponentType used to tag the implicit EntityID column
// every archetype carries.
func NewTypeGraph(entityT ComponentType) *TypeGraph {
	g := &TypeGraph{
		nodes:   make(map[ArchetypeID]*node),
		entityT: entityT,
	}
	root := g.allocID()
	g.nodes[root] = &node{
		archetype: newArchetype(root, entityT),
		types:     make(map[ComponentType]struct{}),
		subsets:   make(map[ComponentType]ArchetypeID),
		supsets:   make(map[ComponentType]ArchetypeID),
	}
	g.root = root
	return g
}

func (g *TypeGraph) allocID() ArchetypeID {
	id := ArchetypeID(g.nextID)
	g.nextID++
	return id
}

// Root returns the empty archetype's ID.
func (g *TypeGraph) Root() ArchetypeID {
	return g.root
}

// Get returns the archetype for id, or nil if id is unknown to this
// graph.
func (g *TypeGraph) Get(id ArchetypeID) *Archetype {
	n, ok := g.nodes[id]
	if !ok {
		return nil
	}
	return n.archetype
}

// GetMany returns the archetypes for a set of distinct ids, in the same
// order as ids. It panics with DuplicateArchetypeIDError if any id
// repeats — two entries aliasing the same archetype would violate the
// disjoint-mutable-borrow invariant a caller requesting several
// archetypes at once relies on (spec.md §5).
func (g *TypeGraph) GetMany(ids []ArchetypeID) []*Archetype {
	seen := make(map[ArchetypeID]struct{}, len(ids))
	out := make([]*Archetype, len(ids))
	for i, id := range ids {
		if _, dup := seen[id]; dup {
			panic(bark.AddTrace(DuplicateArchetypeIDError{ID: id}))
		}
		seen[id] = struct{}{}
		out[i] = g.Get(id)
	}
	return out
}

// NeighborPlus returns the archetype reachable from src by adding ct, if
// that edge has already been discovered.
func (g *TypeGraph) NeighborPlus(src ArchetypeID, ct ComponentType) (ArchetypeID, bool) {
	n := g.nodes[src]
	id, ok := n.supsets[ct]
	return id, ok
}

// NeighborMinus returns the archetype reachable from src by removing ct,
// if that edge has already been discovered.
func (g *TypeGraph) NeighborMinus(src ArchetypeID, ct ComponentType) (ArchetypeID, bool) {
	n := g.nodes[src]
	id, ok := n.subsets[ct]
	return id, ok
}

// CreateNeighborPlus creates (or returns, if it already exists) the
// archetype reachable from src by adding ct.
func (g *TypeGraph) CreateNeighborPlus(src ArchetypeID, ct ComponentType) ArchetypeID {
	if id, ok := g.NeighborPlus(src, ct); ok {
		return id
	}
	srcNode := g.nodes[src]

	newID := g.allocID()
	newArch := srcNode.archetype.imitate(newID)
	newArch.addComponentType(ct)

	types := make(map[ComponentType]struct{}, len(srcNode.types)+1)
	for t := range srcNode.types {
		types[t] = struct{}{}
	}
	types[ct] = struct{}{}

	n := &node{
		archetype: newArch,
		types:     types,
		subsets:   map[ComponentType]ArchetypeID{ct: src},
		supsets:   make(map[ComponentType]ArchetypeID),
	}
	g.connectNeighbors(newID, n)
	g.nodes[newID] = n
	srcNode.supsets[ct] = newID
	return newID
}

// CreateNeighborMinus creates (or returns, if it already exists) the
// archetype reachable from src by removing ct.
func (g *TypeGraph) CreateNeighborMinus(src ArchetypeID, ct ComponentType) ArchetypeID {
	if id, ok := g.NeighborMinus(src, ct); ok {
		return id
	}
	srcNode := g.nodes[src]

	newID := g.allocID()
	newArch := srcNode.archetype.imitate(newID)
	newArch.removeComponentType(ct)

	types := make(map[ComponentType]struct{}, len(srcNode.types))
	for t := range srcNode.types {
		if t != ct {
			types[t] = struct{}{}
		}
	}

	n := &node{
		archetype: newArch,
		types:     types,
		subsets:   make(map[ComponentType]ArchetypeID),
		supsets:   map[ComponentType]ArchetypeID{ct: src},
	}
	g.connectNeighbors(newID, n)
	g.nodes[newID] = n
	srcNode.subsets[ct] = newID
	return newID
}

// connectNeighbors scans every existing node once and wires a bidirectional
// edge wherever it finds a type-set differing from target's by exactly
// one component — the same linear scan original_source's type_graph.rs
// runs on every node insertion. It amortizes to O(1) expected lookups
// over the graph's lifetime because each edge, once found, is cached in
// both directions and never recomputed.
func (g *TypeGraph) connectNeighbors(newID ArchetypeID, target *node) {
	for id, n := range g.nodes {
		if id == newID {
			continue
		}
		diff := len(target.types) - len(n.types)
		switch diff {
		case 1:
			// n is a subset of target iff n.types ⊆ target.types
			if isSubset(n.types, target.types) {
				extra := soleDifference(target.types, n.types)
				n.supsets[extra] = newID
				target.subsets[extra] = id
			}
		case -1:
			if isSubset(target.types, n.types) {
				extra := soleDifference(n.types, target.types)
				n.subsets[extra] = newID
				target.supsets[extra] = id
			}
		}
	}
}

func isSubset(a, b map[ComponentType]struct{}) bool {
	for t := range a {
		if _, ok := b[t]; !ok {
			return false
		}
	}
	return true
}

// soleDifference returns the single element of a that is not in b. It is
// only called after a size/subset check has established that exactly one
// such element exists.
func soleDifference(a, b map[ComponentType]struct{}) ComponentType {
	for t := range a {
		if _, ok := b[t]; !ok {
			return t
		}
	}
	panic(bark.AddTrace(InvalidMigrationError{Reason: "connectNeighbors: expected exactly one differing type"}))
}

// Archetypes returns every archetype currently in the graph, in no
// particular order.
func (g *TypeGraph) Archetypes() []*Archetype {
	out := make([]*Archetype, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, n.archetype)
	}
	return out
}

// Package lattice provides query mechanisms for component-based entity systems
package lattice

import (
	"fmt"

	"github.com/TheBitDrifter/bark"
	"github.com/TheBitDrifter/mask"
)

// Query is a composable, programmatic filter over archetypes — not a
// string query language (spec.md §1 excludes a "query-language parser"
// as a Non-goal; this builds an expression tree directly, the way the
// teacher's query.go does).
type Query interface {
	QueryNode
	And(items ...any) QueryNode
	Or(items ...any) QueryNode
	Not(items ...any) QueryNode
}

// QueryNode represents a node in the query tree that can be evaluated
// against one archetype's mask.
type QueryNode interface {
	Evaluate(a *Archetype) bool
}

// QueryOperation defines the logical operations for query nodes
type QueryOperation int

const (
	OpAnd QueryOperation = iota // Logical AND operation
	OpOr                        // Logical OR operation
	OpNot                       // Logical NOT operation
)

// compositeNode implements a compound query with child nodes
type compositeNode struct {
	op       QueryOperation
	children []QueryNode
	types    []ComponentType
}

// leafNode implements a simple query with no child nodes
type leafNode struct {
	types []ComponentType
}

// query implements the Query interface
type query struct {
	root QueryNode
}

// NewQuery creates a new empty, composable query.
func NewQuery() Query {
	return &query{}
}

// newCompositeNode creates a new composite query node with the specified operation
func newCompositeNode(op QueryOperation, types []ComponentType) *compositeNode {
	return &compositeNode{
		op:       op,
		children: make([]QueryNode, 0),
		types:    types,
	}
}

// newLeafNode creates a new leaf query node with the specified types
func newLeafNode(types []ComponentType) *leafNode {
	return &leafNode{types: types}
}

func maskFor(types []ComponentType) mask.Mask {
	var m mask.Mask
	for _, t := range types {
		m.Mark(t.bit)
	}
	return m
}

// Evaluate implements the QueryNode interface for composite nodes
func (n *compositeNode) Evaluate(a *Archetype) bool {
	nodeMask := maskFor(n.types)
	archMask := a.Mask()

	switch n.op {
	case OpAnd:
		if !archMask.ContainsAll(nodeMask) {
			return false
		}
		for _, child := range n.children {
			if !child.Evaluate(a) {
				return false
			}
		}
		return true
	case OpOr:
		if archMask.ContainsAny(nodeMask) {
			return true
		}
		for _, child := range n.children {
			if child.Evaluate(a) {
				return true
			}
		}
		return false
	case OpNot:
		if len(n.children) == 0 {
			return archMask.ContainsNone(nodeMask)
		}
		if len(n.types) > 0 && !archMask.ContainsNone(nodeMask) {
			return false
		}
		for _, child := range n.children {
			if child.Evaluate(a) {
				return false
			}
		}
		return true
	}
	return false
}

// Evaluate implements the QueryNode interface for leaf nodes
func (n *leafNode) Evaluate(a *Archetype) bool {
	return a.Mask().ContainsAll(maskFor(n.types))
}

// And creates a new AND operation node with the provided items
func (q *query) And(items ...any) QueryNode {
	types, children := q.processItems(items...)
	node := newCompositeNode(OpAnd, types)
	node.children = children
	if q.root == nil {
		q.root = node
	}
	return node
}

// Or creates a new OR operation node with the provided items
func (q *query) Or(items ...any) QueryNode {
	types, children := q.processItems(items...)
	node := newCompositeNode(OpOr, types)
	node.children = children
	if q.root == nil {
		q.root = node
	}
	return node
}

// Not creates a new NOT operation node with the provided items
func (q *query) Not(items ...any) QueryNode {
	types, children := q.processItems(items...)
	node := newCompositeNode(OpNot, types)
	node.children = children
	if q.root == nil {
		q.root = node
	}
	return node
}

// validateQueryItems checks if all items are of valid types for queries
func (q *query) validateQueryItems(items ...any) error {
	for _, item := range items {
		switch item.(type) {
		case ComponentType, []ComponentType, QueryNode, Query:
			continue
		default:
			return fmt.Errorf("invalid query item type: %T. Only ComponentType, []ComponentType, or QueryNode are allowed", item)
		}
	}
	return nil
}

// processItems converts the input items into component types and query nodes
func (q *query) processItems(items ...any) ([]ComponentType, []QueryNode) {
	if err := q.validateQueryItems(items...); err != nil {
		panic(bark.AddTrace(err))
	}
	types := make([]ComponentType, 0)
	children := make([]QueryNode, 0)
	for _, item := range items {
		switch v := item.(type) {
		case ComponentType:
			types = append(types, v)
		case []ComponentType:
			types = append(types, v...)
		case QueryNode:
			children = append(children, v)
		}
	}
	return types, children
}

// Evaluate implements the QueryNode interface for the query type
func (q *query) Evaluate(a *Archetype) bool {
	if q.root == nil {
		return false
	}
	return q.root.Evaluate(a)
}

// Match returns every archetype in s that satisfies node, pre-filtered
// by the type_index intersection of node's top-level types when node is
// a plain conjunction of types — the mechanism spec.md §4.4 mandates for
// iteration — falling back to a scan of every archetype for Or/Not
// trees whose matching set type_index can't narrow.
func Match(s *Store, node QueryNode) []*Archetype {
	var types []ComponentType
	switch n := node.(type) {
	case *leafNode:
		types = n.types
	case *compositeNode:
		if n.op == OpAnd && len(n.children) == 0 {
			types = n.types
		}
	}
	if types != nil {
		candidates := s.matchArchetypes(types)
		out := make([]*Archetype, 0, len(candidates))
		for _, a := range candidates {
			if node.Evaluate(a) {
				out = append(out, a)
			}
		}
		return out
	}

	out := make([]*Archetype, 0)
	for _, a := range s.Archetypes() {
		if node.Evaluate(a) {
			out = append(out, a)
		}
	}
	return out
}

package lattice

import (
	"fmt"
	"reflect"

	"github.com/TheBitDrifter/bark"
)

// Cache is a capacity-bounded, key-indexed registry. It is the teacher's
// cache.go generalized from a standalone asset cache into the
// ComponentType registry every Store owns: every distinct component type
// a caller registers consumes one bit of the archetype mask.Mask, so the
// registry must refuse registration once that capacity is exhausted
// rather than silently corrupting mask membership.
type Cache[T any] interface {
	GetIndex(key string) (int, bool)
	GetItem(index int) *T
	GetItem32(index uint32) *T
	Register(key string, item T) (int, error)
	Clear()
}

var _ Cache[ComponentType] = &SimpleCache[ComponentType]{}

// SimpleCache is the default Cache implementation: an append-only slice
// plus a key index, capped at maxCapacity entries.
type SimpleCache[T any] struct {
	items       []T
	itemIndices map[string]int
	maxCapacity int
}

// FactoryNewCache creates a new Cache with the given capacity.
func FactoryNewCache[T any](capacity int) Cache[T] {
	return &SimpleCache[T]{
		itemIndices: make(map[string]int, capacity),
		maxCapacity: capacity,
	}
}

func (c *SimpleCache[T]) GetIndex(key string) (int, bool) {
	index, ok := c.itemIndices[key]
	return index, ok
}

func (c *SimpleCache[T]) GetItem(index int) *T {
	return &c.items[index]
}

func (c *SimpleCache[T]) GetItem32(index uint32) *T {
	return &c.items[index]
}

func (c *SimpleCache[T]) Register(key string, item T) (int, error) {
	if len(c.itemIndices) >= c.maxCapacity {
		return -1, RegistryFullError{Capacity: c.maxCapacity}
	}
	idx := len(c.items)
	c.itemIndices[key] = idx
	c.items = append(c.items, item)
	return idx, nil
}

func (c *SimpleCache[T]) Clear() {
	c.items = make([]T, 0, c.maxCapacity)
	c.itemIndices = make(map[string]int, c.maxCapacity)
}

// componentRegistry assigns a stable ComponentType (and therefore a
// stable mask bit) to each distinct Go type registered with a Store, per
// spec.md §9: "a monotonically assigned integer per distinct component
// type registered with the store". The registry is Store-scoped, not
// global, because the store itself is single-owner and never shared
// (spec.md §1 Non-goals).
//
// Identity is keyed by reflect.Type itself, not by t.String(): Type's
// String method is documented as not guaranteed unique across packages
// (it prints an unqualified, possibly shortened package name), so two
// distinct types could otherwise collide into the same ComponentType.
// The byType index below is the source of truth for identity; the
// underlying Cache still stores items by the display name, used only
// for String().
type componentRegistry struct {
	cache  Cache[ComponentType]
	byType map[reflect.Type]int
}

func newComponentRegistry(capacity int) *componentRegistry {
	return &componentRegistry{
		cache:  FactoryNewCache[ComponentType](capacity),
		byType: make(map[reflect.Type]int, capacity),
	}
}

// register returns the ComponentType for t, assigning a fresh one (and a
// fresh mask bit) the first time t is seen.
func (r *componentRegistry) register(t reflect.Type) ComponentType {
	if idx, ok := r.byType[t]; ok {
		return *r.cache.GetItem(idx)
	}
	idx, err := r.cache.Register(t.String(), ComponentType{})
	if err != nil {
		panic(bark.AddTrace(fmt.Errorf("registering component type %s: %w", t, err)))
	}
	ct := ComponentType{typ: t, bit: uint32(idx), name: t.String()}
	*r.cache.GetItem(idx) = ct
	r.byType[t] = idx
	return ct
}

// lookup returns the ComponentType already assigned to t, if any, without
// registering it.
func (r *componentRegistry) lookup(t reflect.Type) (ComponentType, bool) {
	idx, ok := r.byType[t]
	if !ok {
		return ComponentType{}, false
	}
	return *r.cache.GetItem(idx), true
}

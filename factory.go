package lattice

// factory implements the factory pattern for lattice's top-level types.
type factory struct{}

// Factory is the global factory instance for creating lattice
// components, mirroring the teacher's package-level Factory.
var Factory factory

// NewStore creates a new Store with the given options.
func (f factory) NewStore(opts ...StoreOption) *Store {
	return NewStore(opts...)
}

// NewQuery creates a new Query instance.
func (f factory) NewQuery() Query {
	return NewQuery()
}

// NewCursor creates a new Cursor with the specified query and store.
func (f factory) NewCursor(query QueryNode, s *Store) *Cursor {
	return NewCursor(query, s)
}

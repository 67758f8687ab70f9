package lattice

// Cursor iterates over every row of every archetype matching a Query,
// holding the store locked for the duration so mutations made mid-
// iteration are deferred (see operation_queue.go) rather than
// perturbing the archetype currently being walked.
type Cursor struct {
	query QueryNode
	store *Store

	currentArchetype *Archetype
	archetypeIndex   int
	row              int
	remaining        int

	initialized bool
	lockBit     uint32
	matched     []*Archetype
}

// NewCursor creates a new cursor for the given query over s.
func NewCursor(query QueryNode, s *Store) *Cursor {
	return &Cursor{query: query, store: s}
}

// Next advances to the next matching row and returns whether one
// exists.
func (c *Cursor) Next() bool {
	if c.row < c.remaining-1 {
		c.row++
		return true
	}
	return c.advance()
}

// advance moves to the next archetype with at least one row.
func (c *Cursor) advance() bool {
	if !c.initialized {
		c.Initialize()
	}

	for c.archetypeIndex < len(c.matched) {
		c.currentArchetype = c.matched[c.archetypeIndex]
		c.remaining = c.currentArchetype.Len()
		if c.row < c.remaining-1 {
			c.row++
			return true
		}
		c.archetypeIndex++
		c.row = -1
	}

	c.Reset()
	return false
}

// Initialize locks the store and resolves every archetype the query
// matches. Safe to call more than once; later calls are no-ops until
// Reset.
func (c *Cursor) Initialize() {
	if c.initialized {
		return
	}
	c.lockBit = c.store.acquireLock()
	c.matched = Match(c.store, c.query)
	c.archetypeIndex = 0
	c.row = -1
	if len(c.matched) > 0 {
		c.currentArchetype = c.matched[0]
		c.remaining = c.currentArchetype.Len()
	}
	c.initialized = true
}

// Reset clears cursor state and releases the store lock, draining any
// operations that were deferred while this cursor (and any other
// concurrent cursor) held the store locked.
func (c *Cursor) Reset() {
	if !c.initialized {
		return
	}
	c.archetypeIndex = 0
	c.row = -1
	c.remaining = 0
	c.matched = nil
	c.initialized = false
	c.store.releaseLock(c.lockBit)
}

// CurrentEntity returns the EntityID at the cursor's current position.
func (c *Cursor) CurrentEntity() EntityID {
	return *At[EntityID](c.currentArchetype.entities, c.row)
}

// EntityAtOffset returns the EntityID offset rows from the current
// position, within the current archetype only.
func (c *Cursor) EntityAtOffset(offset int) (EntityID, bool) {
	idx := c.row + offset
	if idx < 0 || idx >= c.currentArchetype.Len() {
		return EntityID{}, false
	}
	return *At[EntityID](c.currentArchetype.entities, idx), true
}

// CurrentArchetype returns the archetype the cursor is currently
// positioned within.
func (c *Cursor) CurrentArchetype() *Archetype {
	return c.currentArchetype
}

// Row returns the cursor's row within the current archetype.
func (c *Cursor) Row() int {
	return c.row
}

// TotalMatched returns the total number of rows matching the query
// across every archetype.
func (c *Cursor) TotalMatched() int {
	wasInitialized := c.initialized
	if !wasInitialized {
		c.Initialize()
	}
	total := 0
	for _, a := range c.matched {
		total += a.Len()
	}
	if !wasInitialized {
		c.Reset()
	}
	return total
}

// CursorGet returns a pointer to e's T-component for the entity at the
// cursor's current row, inside the active iteration's locked store.
func CursorGet[T any](s *Store, c *Cursor) (*T, bool) {
	ct := ComponentTypeFor[T](s)
	col := c.currentArchetype.column(ct)
	if col == nil {
		return nil, false
	}
	return At[T](col, c.row), true
}

// CursorColumns resolves the live columns for types at the cursor's
// current row, for systems that iterate a fixed set of components
// built at runtime (e.g. via TypesOf2) rather than named one at a
// time with CursorGet. Panics with DuplicateComponentTypeError if
// types repeats a type (spec.md §5). Returns ok=false if the current
// archetype doesn't carry every type in types.
func CursorColumns(c *Cursor, types []ComponentType) (cols []*Column, ok bool) {
	checkDisjoint(types)
	cols = make([]*Column, len(types))
	for i, ct := range types {
		col := c.currentArchetype.column(ct)
		if col == nil {
			return nil, false
		}
		cols[i] = col
	}
	return cols, true
}

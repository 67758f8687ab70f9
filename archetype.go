package lattice

import (
	"fmt"

	"github.com/TheBitDrifter/bark"
	"github.com/TheBitDrifter/mask"
)

// Archetype is a fixed set of component types, one Column per type plus
// the implicit EntityID column, all kept at equal length (the
// parallel-column invariant, spec.md §3). The type-set is mutable only
// while the archetype holds no rows; once a row exists it is frozen.
type Archetype struct {
	id       ArchetypeID
	entities *Column
	columns  map[ComponentType]*Column
	m        mask.Mask
	rowCount int
}

// newArchetype creates an empty archetype (no user component columns,
// row count 0) carrying only the implicit EntityID column.
func newArchetype(id ArchetypeID, entityIDType ComponentType) *Archetype {
	return &Archetype{
		id:       id,
		entities: newColumnFor(entityIDType),
		columns:  make(map[ComponentType]*Column),
	}
}

// ID returns the archetype's identity within its TypeGraph.
func (a *Archetype) ID() ArchetypeID {
	return a.id
}

// Len returns the archetype's row count.
func (a *Archetype) Len() int {
	return a.rowCount
}

// Mask returns the bitmask of user component types this archetype holds.
// The implicit EntityID column does not participate in the mask: every
// archetype carries it, so it would never distinguish anything.
func (a *Archetype) Mask() mask.Mask {
	return a.m
}

// HasType reports whether ct is one of this archetype's columns.
func (a *Archetype) HasType(ct ComponentType) bool {
	_, ok := a.columns[ct]
	return ok
}

// Types returns the archetype's user component types in no particular
// order.
func (a *Archetype) Types() []ComponentType {
	out := make([]ComponentType, 0, len(a.columns))
	for ct := range a.columns {
		out = append(out, ct)
	}
	return out
}

// imitate produces a sibling archetype with the same column tags
// (including the implicit EntityID column) but no rows. Used by the
// TypeGraph when lazily creating a +T/-T neighbor.
func (a *Archetype) imitate(id ArchetypeID) *Archetype {
	n := &Archetype{
		id:       id,
		entities: a.entities.imitate(),
		columns:  make(map[ComponentType]*Column, len(a.columns)),
		m:        a.m,
	}
	for ct, col := range a.columns {
		n.columns[ct] = col.imitate()
	}
	return n
}

func (a *Archetype) assertEmpty() {
	if a.rowCount != 0 {
		panic(bark.AddTrace(FrozenArchetypeError{RowCount: a.rowCount}))
	}
}

// addComponentType adds ct as a new column. Precondition: rowCount == 0.
func (a *Archetype) addComponentType(ct ComponentType) {
	a.assertEmpty()
	a.columns[ct] = newColumnFor(ct)
	a.m.Mark(ct.Bit())
}

// removeComponentType drops ct's column. Precondition: rowCount == 0.
func (a *Archetype) removeComponentType(ct ComponentType) {
	a.assertEmpty()
	delete(a.columns, ct)
	a.m.Unmark(ct.Bit())
}

// column returns the Column for ct, or nil if ct is not one of this
// archetype's column types.
func (a *Archetype) column(ct ComponentType) *Column {
	return a.columns[ct]
}

// pushRow appends one value per column (missing entries get the zero
// value of their column's type) plus the row's EntityID, returning the
// new row index.
func (a *Archetype) pushRow(id EntityID, values map[ComponentType]any) int {
	row := a.rowCount
	a.entities.Push(id)
	for ct, col := range a.columns {
		if v, ok := values[ct]; ok {
			col.Push(v)
		} else {
			col.pushValue(reflectZero(ct.typ))
		}
	}
	a.rowCount++
	return row
}

// removeRow swap-removes row from every column (including the implicit
// EntityID column) and decrements rowCount. If row was not the tail, the
// entity that was previously last now occupies row; removeRow returns
// that entity and true so the Store can fix up its entity index.
func (a *Archetype) removeRow(row int) (swapped EntityID, hadSwap bool) {
	last := a.rowCount - 1
	hadSwap = row != last
	for _, col := range a.columns {
		col.SwapRemoveDrop(row)
	}
	a.entities.SwapRemoveDrop(row)
	a.rowCount--
	if hadSwap {
		swapped = *At[EntityID](a.entities, row)
	}
	return swapped, hadSwap
}

// upgradeRowTo moves the entity at row from a (N columns) to dst (N+1
// columns, whose type-set is a's plus extraType), pushing extraValue
// into dst's new column. It returns the row's new index in dst, plus the
// entity that now occupies the vacated row in a (if any).
func (a *Archetype) upgradeRowTo(dst *Archetype, row int, extraType ComponentType, extraValue any) (newRow int, swapped EntityID, hadSwap bool) {
	if len(dst.columns) != len(a.columns)+1 {
		panic(bark.AddTrace(InvalidMigrationError{Reason: "destination does not have exactly one extra column"}))
	}
	for ct, srcCol := range a.columns {
		dstCol := dst.columns[ct]
		if dstCol == nil {
			panic(bark.AddTrace(InvalidMigrationError{Reason: fmt.Sprintf("destination missing shared column %s", ct)}))
		}
		srcCol.SwapToTail(row)
		srcCol.MoveTailTo(dstCol)
	}
	a.entities.SwapToTail(row)
	a.entities.MoveTailTo(dst.entities)

	extraCol := dst.columns[extraType]
	if extraCol == nil {
		panic(bark.AddTrace(InvalidMigrationError{Reason: fmt.Sprintf("destination missing new column %s", extraType)}))
	}
	extraCol.Push(extraValue)

	a.rowCount--
	dst.rowCount++
	newRow = dst.rowCount - 1

	// a.rowCount has already been decremented, so it now equals the old
	// tail index: row != a.rowCount iff row wasn't already the tail.
	hadSwap = row != a.rowCount
	if hadSwap {
		swapped = *At[EntityID](a.entities, row)
	}
	return newRow, swapped, hadSwap
}

// downgradeRowTo moves the entity at row from a (N columns) to dst (N-1
// columns, dst's full set), dropping the one column present only in a.
// It returns the row's new index in dst, plus the entity that now
// occupies the vacated row in a (if any).
func (a *Archetype) downgradeRowTo(dst *Archetype, row int, droppedType ComponentType) (newRow int, swapped EntityID, hadSwap bool) {
	if len(a.columns) != len(dst.columns)+1 {
		panic(bark.AddTrace(InvalidMigrationError{Reason: "source does not have exactly one extra column over destination"}))
	}
	for ct, srcCol := range a.columns {
		if ct == droppedType {
			// swap-to-tail then drop the (now-tail) value directly —
			// equivalent to swap_remove_drop(row), but expressed via the
			// same two primitives used for the shared columns so every
			// column in this archetype ends the call with the same
			// entity occupying `row`.
			srcCol.SwapToTail(row)
			srcCol.SwapRemoveDrop(a.rowCount - 1)
			continue
		}
		dstCol := dst.columns[ct]
		if dstCol == nil {
			panic(bark.AddTrace(InvalidMigrationError{Reason: fmt.Sprintf("destination missing shared column %s", ct)}))
		}
		srcCol.SwapToTail(row)
		srcCol.MoveTailTo(dstCol)
	}
	a.entities.SwapToTail(row)
	a.entities.MoveTailTo(dst.entities)

	a.rowCount--
	dst.rowCount++
	newRow = dst.rowCount - 1

	hadSwap = row != a.rowCount
	if hadSwap {
		swapped = *At[EntityID](a.entities, row)
	}
	return newRow, swapped, hadSwap
}

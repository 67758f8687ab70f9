package lattice

import (
	"fmt"
	"reflect"

	"github.com/TheBitDrifter/bark"
)

// Column is a type-erased, contiguous buffer of values of one component
// type, growing geometrically (spec.md §3/§4.1). Rather than a raw
// malloc'd byte buffer with a captured drop function pointer (one design
// sketched in spec.md §9), Column is backed by a reflect.Value wrapping a
// Go slice of the concrete type: Go has no user-defined destructors, so
// "drop" here means clearing a slot to its zero value so the garbage
// collector can reclaim whatever it points to — the GC-era equivalent of
// the spec's destructor loop. This is also the representation the
// teacher's own table.Table hints at: entity.go's AddComponentWithValue
// walks destArchetype.Table().Rows() and does
// reflect.Value(row).Index(e.Index()).Set(reflect.ValueOf(value)).
//
// Capacity is tracked separately from length: buf always holds exactly
// cap allocated elements; only buf[0:len] is considered live. Growth is
// implemented explicitly (not via reflect.Append, whose growth schedule
// Go does not guarantee) to honor the spec's literal 0→1→2→4… doubling.
type Column struct {
	ctype ComponentType
	typ   reflect.Type
	buf   reflect.Value // reflect.Value of kind Slice, len(buf)==cap always
	ln    int
	cap   int
}

// newColumnFor creates an empty Column tagged with ctype, capacity 0.
func newColumnFor(ctype ComponentType) *Column {
	return &Column{
		ctype: ctype,
		typ:   ctype.typ,
		buf:   reflect.MakeSlice(reflect.SliceOf(ctype.typ), 0, 0),
	}
}

// imitate produces an empty sibling column with the same tag and
// capacity 0 — used when the TypeGraph lazily clones an archetype's
// column set for a new neighbor.
func (c *Column) imitate() *Column {
	return newColumnFor(c.ctype)
}

// Len returns the number of live elements.
func (c *Column) Len() int {
	return c.ln
}

// Type returns the ComponentType this column is tagged with.
func (c *Column) Type() ComponentType {
	return c.ctype
}

func (c *Column) checkTag(t reflect.Type) {
	if t != c.typ {
		panic(bark.AddTrace(ColumnTypeMismatchError{
			Column:   c.typ.String(),
			Accessed: t.String(),
		}))
	}
}

// grow doubles capacity (or sets it to 1 if currently 0), preserving the
// bytewise contents of [0, len).
func (c *Column) grow() {
	newCap := 1
	if c.cap > 0 {
		newCap = c.cap * 2
	}
	newBuf := reflect.MakeSlice(reflect.SliceOf(c.typ), newCap, newCap)
	reflect.Copy(newBuf, c.buf.Slice(0, c.ln))
	c.buf = newBuf
	c.cap = newCap
}

// pushValue appends v (already validated as the column's type) to the
// column, growing if at capacity.
func (c *Column) pushValue(v reflect.Value) {
	if c.ln == c.cap {
		c.grow()
	}
	c.buf.Index(c.ln).Set(v)
	c.ln++
}

// Push appends value, which must be of the column's component type.
func (c *Column) Push(value any) {
	v := reflect.ValueOf(value)
	c.checkTag(v.Type())
	c.pushValue(v)
}

// Set overwrites the live element at index with value, which must be of
// the column's component type. Used for the store's overwrite-in-place
// policy when a caller attaches a type the entity already carries
// (spec.md §9 open question).
func (c *Column) Set(index int, value any) {
	v := reflect.ValueOf(value)
	c.checkTag(v.Type())
	c.buf.Index(index).Set(v)
}

// SwapRemoveDrop releases the value at index, then fills the hole by
// moving the last live element's contents into that slot (if it wasn't
// already the last), then shrinks len by one. It never shrinks capacity.
func (c *Column) SwapRemoveDrop(index int) {
	last := c.ln - 1
	if index != last {
		c.buf.Index(index).Set(c.buf.Index(last))
	}
	c.buf.Index(last).Set(reflect.Zero(c.typ))
	c.ln--
}

// SwapToTail exchanges the element at index with the element at len-1.
// It is the first half of a cross-archetype row move (see
// Archetype.upgradeRowTo / downgradeRowTo).
func (c *Column) SwapToTail(index int) {
	last := c.ln - 1
	if index == last {
		return
	}
	tmp := reflect.New(c.typ).Elem()
	tmp.Set(c.buf.Index(index))
	c.buf.Index(index).Set(c.buf.Index(last))
	c.buf.Index(last).Set(tmp)
}

// MoveTailTo byte-moves the last live element of c into a fresh slot at
// the end of dst (growing dst if needed), decrementing c's length and
// incrementing dst's. dst must share c's component type. The value is
// neither destroyed nor duplicated — ownership transfers from c to dst.
func (c *Column) MoveTailTo(dst *Column) {
	if dst.typ != c.typ {
		panic(bark.AddTrace(ColumnTypeMismatchError{
			Column:   c.typ.String(),
			Accessed: dst.typ.String(),
		}))
	}
	if c.ln == 0 {
		panic(bark.AddTrace(fmt.Errorf("MoveTailTo: source column is empty")))
	}
	last := c.ln - 1
	val := reflect.New(c.typ).Elem()
	val.Set(c.buf.Index(last))
	c.buf.Index(last).Set(reflect.Zero(c.typ))
	c.ln--
	dst.pushValue(val)
}

// At returns a pointer to the live element at index, aliasing the
// column's backing array directly (no copy) so mutation through it is
// visible to every other holder of the same column. Two different
// Columns never alias the same backing array, which is what makes
// simultaneous mutable access to distinct component types within one
// archetype safe.
func At[T any](c *Column, index int) *T {
	c.checkTag(reflect.TypeOf((*T)(nil)).Elem())
	return c.buf.Index(index).Addr().Interface().(*T)
}

// Slice returns the live region [0, len) as a typed slice sharing the
// column's backing array. The slice is invalidated by any subsequent
// growth of the column.
func Slice[T any](c *Column) []T {
	c.checkTag(reflect.TypeOf((*T)(nil)).Elem())
	return c.buf.Slice(0, c.ln).Interface().([]T)
}

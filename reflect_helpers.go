package lattice

import "reflect"

// reflectZero returns the zero value of t as a reflect.Value, suitable
// for Column.pushValue. Used to backfill a column when a row is pushed
// without an explicit value for that column's type (spec.md §4.1: every
// column in an archetype stays the same length as every other).
func reflectZero(t reflect.Type) reflect.Value {
	return reflect.Zero(t)
}

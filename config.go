package lattice

// defaultComponentCapacity is the component-type registry size a Store
// starts with when no WithComponentCapacity option is given: enough bits
// for a mask.Mask256-backed lock set and a generous archetype schema
// without the caller having to think about it up front.
const defaultComponentCapacity = 256

// StoreOption configures a Store at construction time. This is the
// idiomatic-Go functional-option analogue of the teacher's package-level
// Config (config.go), scoped to the Store value instead of a package
// global, since spec.md's store is a value the caller owns, not global
// state.
type StoreOption func(*storeConfig)

type storeConfig struct {
	componentCapacity int
}

func defaultStoreConfig() storeConfig {
	return storeConfig{componentCapacity: defaultComponentCapacity}
}

// WithComponentCapacity sets the maximum number of distinct component
// types the store's registry (and therefore its archetype mask.Mask)
// can hold.
func WithComponentCapacity(n int) StoreOption {
	return func(c *storeConfig) { c.componentCapacity = n }
}

package text

// optState is the tri-state of an Opt.
type optState uint8

const (
	unset optState = iota
	cleared
	valued
)

// Opt is an optional style field with three states: unset (inherit from the
// enclosing style), cleared (explicitly none), or set to a value.
type Opt[T any] struct {
	state optState
	v     T
}

// Set returns an Opt holding v.
func Set[T any](v T) Opt[T] { return Opt[T]{state: valued, v: v} }

// Clear returns an Opt that explicitly removes the field.
func Clear[T any]() Opt[T] { return Opt[T]{state: cleared} }

// IsSet reports whether o holds a value.
func (o Opt[T]) IsSet() bool { return o.state == valued }

// IsCleared reports whether o was explicitly cleared.
func (o Opt[T]) IsCleared() bool { return o.state == cleared }

// IsUnset reports whether o inherits.
func (o Opt[T]) IsUnset() bool { return o.state == unset }

// Get returns the value and whether one is set.
func (o Opt[T]) Get() (T, bool) { return o.v, o.state == valued }

// Or returns the value, or def when o is unset or cleared.
func (o Opt[T]) Or(def T) T {
	if o.state == valued {
		return o.v
	}
	return def
}

// inherit returns o unless it is unset, in which case parent.
func (o Opt[T]) inherit(parent Opt[T]) Opt[T] {
	if o.state == unset {
		return parent
	}
	return o
}

package model

// Optional marks a field as explicitly provided or not. The zero value is unset.
type Optional[T any] struct {
	value T
	set   bool
}

// Some returns an Optional holding v
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// Get returns the value and whether it was provided
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet reports whether a value was provided
func (o Optional[T]) IsSet() bool {
	return o.set
}

package param

// Object is a parameter selecting among a fixed set of owned instances by
// pointer identity (e.g. "which owned Clip object is armed"). It is a thin
// specialization of Enum over pointer types — pointers are comparable, so
// selection-by-identity is exactly Enum's selection-by-value.
type Object[T any] struct {
	Enum[*T]
}

// NewObject creates an object parameter over the given owned instances.
func NewObject[T any](instances []*T) *Object[T] {
	return &Object[T]{Enum: *NewEnum(instances)}
}

package typeutil

// Ptr returns a pointer to a copy of value.
func Ptr[T any](value T) *T {
	return &value
}

// Deref returns the value behind ptr, or the zero value when ptr is nil.
func Deref[T any](ptr *T) (value T) {
	if ptr != nil {
		value = *ptr
	}
	return value
}

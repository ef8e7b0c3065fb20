package utils

// RefPointer returns a pointer to a copy of v.
func RefPointer[T any](v T) *T {
	return &v
}

// DerefPointer returns the pointed-to value, or the zero value for nil.
func DerefPointer[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

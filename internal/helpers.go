package internal

// ContextValue reads a typed value stored with Context.Set.
// Returns the zero value if the key is missing or holds another type.
func ContextValue[T any](c Context, key any) T {
	v, _ := c.Get(key).(T)
	return v
}

package ioc

import "fmt"

// Resolve resolves key and asserts the result to T.
//
// Example:
//
//	srv, err := ioc.Resolve[*server.Server](c, ioc.Src.Server)
//	if err != nil {
//	    return fmt.Errorf("http start: %w", err)
//	}
func Resolve[T any](c *Container, key string) (T, error) {
	var zero T
	instance, err := c.Resolve(key)
	if err != nil {
		return zero, err
	}
	result, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("ioc: %s is %T, expected %T", key, instance, zero)
	}
	return result, nil
}

// MustResolve resolves key with type safety and panics on error.
func MustResolve[T any](c *Container, key string) T {
	result, err := Resolve[T](c, key)
	if err != nil {
		panic(err)
	}
	return result
}

// TryResolve resolves key, returning false when it is unbound or of a
// different type.
func TryResolve[T any](c *Container, key string) (T, bool) {
	result, err := Resolve[T](c, key)
	if err != nil {
		var zero T
		return zero, false
	}
	return result, true
}

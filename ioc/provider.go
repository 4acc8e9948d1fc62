package ioc

import "context"

// ServiceProvider binds services into the container. Register must only
// bind; work that depends on other providers' bindings belongs in Boot.
type ServiceProvider interface {
	Register(c *Container) error
}

// Booter is implemented by providers with a boot step. Boot runs after
// every provider of the same fire operation has been registered.
type Booter interface {
	Boot(ctx context.Context, c *Container) error
}

// ProviderFunc adapts a plain function into a ServiceProvider.
type ProviderFunc func(c *Container) error

// Register calls f(c).
func (f ProviderFunc) Register(c *Container) error { return f(c) }

package component

import "context"

// Component is a part of the application the start action runs: it is
// started after boot and stopped on shutdown.
type Component interface {
	Name() string

	// Start must return once the component runs; long-running work
	// belongs in a goroutine.
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Health(ctx context.Context) Health
}

// Description is what a component reports about itself when it starts.
type Description struct {
	Name    string // defaults to the component's Name()
	Type    string // "server", "worker", ...
	Details string // e.g. "0.0.0.0:3333"
	Port    int
}

// Describable is implemented by components that describe themselves.
type Describable interface {
	Describe() Description
}

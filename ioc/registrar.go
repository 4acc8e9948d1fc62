package ioc

import (
	"context"
	"sync"

	"github.com/kbukum/ignitor/errors"
	"github.com/kbukum/ignitor/logger"
)

// Entry pairs a provider with the identifier it was declared under.
type Entry struct {
	ID       string
	Provider ServiceProvider
}

type registrarEntry struct {
	Entry
	booted bool
}

// Registrar registers and boots service providers against a container.
// Providers are registered in declaration order and booted in the same
// order, one at a time.
type Registrar struct {
	container *Container
	entries   []*registrarEntry
	mu        sync.Mutex
	log       *logger.Logger
}

// NewRegistrar creates a registrar bound to c.
func NewRegistrar(c *Container) *Registrar {
	return &Registrar{container: c, log: logger.WithComponent("registrar")}
}

// Register calls Register on each provider in order. The first failure
// stops the loop; providers before it stay registered.
func (r *Registrar) Register(ctx context.Context, entries []Entry) error {
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.Provider.Register(r.container); err != nil {
			return errors.ProviderFailed(e.ID, "register", err)
		}

		r.mu.Lock()
		r.entries = append(r.entries, &registrarEntry{Entry: e})
		r.mu.Unlock()

		r.log.Debug("Provider registered", map[string]interface{}{
			logger.FieldProvider: e.ID,
		})
	}
	return nil
}

// Boot boots every registered provider that has not booted yet. Providers
// without a Boot method are marked booted without a call. Each Boot call
// returns before the next one starts.
func (r *Registrar) Boot(ctx context.Context) error {
	r.mu.Lock()
	pending := make([]*registrarEntry, 0, len(r.entries))
	for _, e := range r.entries {
		if !e.booted {
			pending = append(pending, e)
		}
	}
	r.mu.Unlock()

	for _, e := range pending {
		if err := ctx.Err(); err != nil {
			return err
		}
		if booter, ok := e.Provider.(Booter); ok {
			if err := booter.Boot(ctx, r.container); err != nil {
				return errors.ProviderFailed(e.ID, "boot", err)
			}
		}

		r.mu.Lock()
		e.booted = true
		r.mu.Unlock()

		r.log.Debug("Provider booted", map[string]interface{}{
			logger.FieldProvider: e.ID,
		})
	}
	return nil
}

// Providers returns the registered entries in registration order.
func (r *Registrar) Providers() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		result = append(result, e.Entry)
	}
	return result
}

// Booted reports whether the provider registered under id has booted.
func (r *Registrar) Booted(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.entries {
		if e.ID == id {
			return e.booted
		}
	}
	return false
}

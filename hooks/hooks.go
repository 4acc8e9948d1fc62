package hooks

import (
	"context"
	"sync"

	"github.com/kbukum/ignitor/errors"
)

// Hook is a lifecycle callback fired around a boot phase.
type Hook func(ctx context.Context) error

// Phase names a boot phase hooks can attach to.
type Phase string

const (
	ProvidersRegistered Phase = "providersRegistered"
	ProvidersBooted     Phase = "providersBooted"
	Preloading          Phase = "preloading"
)

// Phases lists every phase in pipeline order.
var Phases = []Phase{ProvidersRegistered, ProvidersBooted, Preloading}

// List holds the hooks of one side (before or after) for every phase.
// Registration methods return the receiver so calls can be chained:
//
//	hooks.Before.ProvidersRegistered(a).ProvidersBooted(b)
type List struct {
	side  string
	mu    sync.Mutex
	hooks map[Phase][]Hook
}

func newList(side string) *List {
	return &List{side: side, hooks: make(map[Phase][]Hook)}
}

// Side returns "before" or "after".
func (l *List) Side() string { return l.side }

// On appends fn to the phase list.
func (l *List) On(phase Phase, fn Hook) *List {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.hooks[phase] = append(l.hooks[phase], fn)
	return l
}

// ProvidersRegistered appends fn to the providersRegistered list.
func (l *List) ProvidersRegistered(fn Hook) *List { return l.On(ProvidersRegistered, fn) }

// ProvidersBooted appends fn to the providersBooted list.
func (l *List) ProvidersBooted(fn Hook) *List { return l.On(ProvidersBooted, fn) }

// Preloading appends fn to the preloading list.
func (l *List) Preloading(fn Hook) *List { return l.On(Preloading, fn) }

// Len returns the number of hooks registered for phase.
func (l *List) Len(phase Phase) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.hooks[phase])
}

// Fire runs the hooks of phase in registration order. The first error
// stops the loop and is returned wrapped with the side, phase and index.
// Hooks registered while firing are not run by this call.
func (l *List) Fire(ctx context.Context, phase Phase) error {
	l.mu.Lock()
	pending := append([]Hook(nil), l.hooks[phase]...)
	l.mu.Unlock()

	for i, h := range pending {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := h(ctx); err != nil {
			return errors.HookFailed(l.side, string(phase), i, err)
		}
	}
	return nil
}

// Clear removes every hook of this side.
func (l *List) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.hooks = make(map[Phase][]Hook)
}

// Registry groups the before and after lists.
type Registry struct {
	Before *List
	After  *List
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{Before: newList("before"), After: newList("after")}
}

// Clear empties both lists.
func (r *Registry) Clear() {
	r.Before.Clear()
	r.After.Clear()
}

// Around fires the before list of phase, then fn, then the after list.
// Nothing after the first failure runs.
func (r *Registry) Around(ctx context.Context, phase Phase, fn func(ctx context.Context) error) error {
	if err := r.Before.Fire(ctx, phase); err != nil {
		return err
	}
	if err := fn(ctx); err != nil {
		return err
	}
	return r.After.Fire(ctx, phase)
}

// Default is the process-wide registry. It accumulates hooks until Clear.
var Default = New()

var (
	// Before is the process-wide before list.
	Before = Default.Before
	// After is the process-wide after list.
	After = Default.After
)

// Clear empties the process-wide registry.
func Clear() { Default.Clear() }

package ioc

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/kbukum/ignitor/errors"
)

// BindingMode determines how a binding is resolved.
type BindingMode int

const (
	Transient BindingMode = iota // New instance on every resolve
	Shared                       // Constructed on first resolve, then cached
	Instance                     // Pre-created value
)

func (m BindingMode) String() string {
	switch m {
	case Transient:
		return "transient"
	case Shared:
		return "singleton"
	case Instance:
		return "instance"
	default:
		return "unknown"
	}
}

// BindingInfo describes a binding for introspection.
type BindingInfo struct {
	Key         string
	Mode        BindingMode
	Initialized bool
}

// Container is a string-keyed IoC container. Keys are namespaced
// identifiers such as "Ignitor/Src/Server"; aliases map short names onto
// them. The container also carries the autoload namespace map and the
// resolver directories configured during boot.
type Container struct {
	mu        sync.RWMutex
	bindings  map[string]*binding
	aliases   map[string]string
	autoloads map[string]string
	resolver  *Resolver
}

type binding struct {
	key         string
	constructor interface{}
	mode        BindingMode
	mu          sync.Mutex
	instance    interface{}
	initialized bool
}

// NewContainer creates an empty container.
func NewContainer() *Container {
	c := &Container{
		bindings:  make(map[string]*binding),
		aliases:   make(map[string]string),
		autoloads: make(map[string]string),
		resolver:  NewResolver(),
	}
	c.resolver.setNamespace(c.AppNamespace)
	return c
}

// Bind registers a constructor invoked on every resolve.
func (c *Container) Bind(key string, constructor interface{}) error {
	if err := checkConstructor(constructor); err != nil {
		return fmt.Errorf("bind %s: %w", key, err)
	}
	c.put(&binding{key: key, constructor: constructor, mode: Transient})
	return nil
}

// Singleton registers a constructor invoked once, on first resolve.
func (c *Container) Singleton(key string, constructor interface{}) error {
	if err := checkConstructor(constructor); err != nil {
		return fmt.Errorf("singleton %s: %w", key, err)
	}
	c.put(&binding{key: key, constructor: constructor, mode: Shared})
	return nil
}

// Instance registers a pre-created value.
func (c *Container) Instance(key string, value interface{}) {
	c.put(&binding{key: key, mode: Instance, instance: value, initialized: true})
}

func (c *Container) put(b *binding) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bindings[b.key] = b
}

// Has reports whether key (or the alias target of key) is bound.
func (c *Container) Has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.bindings[c.target(key)]
	return ok
}

// Resolve returns the value bound to key, following aliases.
func (c *Container) Resolve(key string) (interface{}, error) {
	c.mu.RLock()
	b, ok := c.bindings[c.target(key)]
	c.mu.RUnlock()
	if !ok {
		return nil, errors.NotBound(key)
	}

	switch b.mode {
	case Instance:
		return b.instance, nil
	case Transient:
		return c.callConstructor(b.constructor)
	default:
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.initialized {
			return b.instance, nil
		}
		instance, err := c.callConstructor(b.constructor)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", b.key, err)
		}
		b.instance = instance
		b.initialized = true
		return instance, nil
	}
}

// target follows the alias table once. Callers hold c.mu.
func (c *Container) target(key string) string {
	if t, ok := c.aliases[key]; ok {
		return t
	}
	return key
}

// Alias maps name onto an existing key.
func (c *Container) Alias(name, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aliases[name] = key
}

// SetAliases registers every name -> key pair in aliases.
func (c *Container) SetAliases(aliases map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for name, key := range aliases {
		c.aliases[name] = key
	}
}

// Aliases returns a copy of the alias table.
func (c *Container) Aliases() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return copyMap(c.aliases)
}

// SetAutoloads replaces the namespace -> directory autoload map.
func (c *Container) SetAutoloads(autoloads map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.autoloads = copyMap(autoloads)
}

// Autoloads returns a copy of the autoload map.
func (c *Container) Autoloads() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return copyMap(c.autoloads)
}

// AppNamespace returns the first autoload namespace in sorted order, or "App".
func (c *Container) AppNamespace() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.autoloads) == 0 {
		return DefaultNamespace
	}
	names := make([]string, 0, len(c.autoloads))
	for name := range c.autoloads {
		names = append(names, name)
	}
	sort.Strings(names)
	return names[0]
}

// Resolver returns the directory resolver attached to the container.
func (c *Container) Resolver() *Resolver {
	return c.resolver
}

// Bindings returns info about all bindings, sorted by key.
func (c *Container) Bindings() []BindingInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]BindingInfo, 0, len(c.bindings))
	for key, b := range c.bindings {
		b.mu.Lock()
		result = append(result, BindingInfo{Key: key, Mode: b.mode, Initialized: b.initialized})
		b.mu.Unlock()
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Key < result[j].Key })
	return result
}

// Close closes every constructed value that implements io.Closer and
// returns the first close error.
func (c *Container) Close() error {
	c.mu.RLock()
	bindings := make([]*binding, 0, len(c.bindings))
	for _, b := range c.bindings {
		bindings = append(bindings, b)
	}
	c.mu.RUnlock()

	var firstErr error
	for _, b := range bindings {
		b.mu.Lock()
		if b.initialized && b.instance != nil {
			if closer, ok := b.instance.(interface{ Close() error }); ok {
				if err := closer.Close(); err != nil && firstErr == nil {
					firstErr = fmt.Errorf("close %s: %w", b.key, err)
				}
			}
		}
		b.mu.Unlock()
	}
	return firstErr
}

var (
	contextType   = reflect.TypeOf((*context.Context)(nil)).Elem()
	containerType = reflect.TypeOf((*Container)(nil))
	errorType     = reflect.TypeOf((*error)(nil)).Elem()
)

func checkConstructor(constructor interface{}) error {
	fnType := reflect.TypeOf(constructor)
	if fnType == nil || fnType.Kind() != reflect.Func {
		return fmt.Errorf("constructor must be a function")
	}
	if fnType.NumIn() > 1 {
		return fmt.Errorf("constructor takes at most one argument (got %d)", fnType.NumIn())
	}
	if fnType.NumIn() == 1 && fnType.In(0) != contextType && fnType.In(0) != containerType {
		return fmt.Errorf("constructor argument must be context.Context or *ioc.Container (got %s)", fnType.In(0))
	}
	switch fnType.NumOut() {
	case 1:
	case 2:
		if !fnType.Out(1).Implements(errorType) {
			return fmt.Errorf("constructor second result must be error")
		}
	default:
		return fmt.Errorf("constructor must return either (instance) or (instance, error)")
	}
	return nil
}

func (c *Container) callConstructor(constructor interface{}) (interface{}, error) {
	fn := reflect.ValueOf(constructor)
	fnType := fn.Type()

	var args []reflect.Value
	if fnType.NumIn() == 1 {
		if fnType.In(0) == contextType {
			args = []reflect.Value{reflect.ValueOf(context.Background())}
		} else {
			args = []reflect.Value{reflect.ValueOf(c)}
		}
	}

	results := fn.Call(args)
	if len(results) == 2 && !results[1].IsNil() {
		return nil, results[1].Interface().(error)
	}
	return results[0].Interface(), nil
}

func copyMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

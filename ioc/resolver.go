package ioc

import (
	"sort"
	"strings"
	"sync"
)

// DefaultNamespace is the autoload namespace used when the package
// descriptor declares none.
const DefaultNamespace = "App"

// Resolver maps conventional directory names (httpControllers, models, ...)
// to paths below the app namespace and translates short binding names into
// fully namespaced ones.
type Resolver struct {
	mu          sync.RWMutex
	directories map[string]string
	namespace   func() string
}

// NewResolver creates an empty resolver using DefaultNamespace.
func NewResolver() *Resolver {
	return &Resolver{directories: make(map[string]string)}
}

// AddDirectory registers a directory under name.
func (r *Resolver) AddDirectory(name, path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.directories[name] = strings.Trim(path, "/")
}

// Directories returns a copy of the registered directories.
func (r *Resolver) Directories() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return copyMap(r.directories)
}

// DirectoryNames returns the registered directory names, sorted.
func (r *Resolver) DirectoryNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.directories))
	for name := range r.directories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Directory returns the path registered under name.
func (r *Resolver) Directory(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	dir, ok := r.directories[name]
	return dir, ok
}

func (r *Resolver) setNamespace(fn func() string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.namespace = fn
}

func (r *Resolver) appNamespace() string {
	r.mu.RLock()
	fn := r.namespace
	r.mu.RUnlock()
	if fn == nil {
		return DefaultNamespace
	}
	return fn()
}

// ForDir returns a translator scoped to the named directory.
func (r *Resolver) ForDir(name string) *DirResolver {
	return &DirResolver{resolver: r, dir: name}
}

// DirResolver translates short names inside one resolver directory.
type DirResolver struct {
	resolver *Resolver
	dir      string
}

// Translate turns "UserController" into "App/Controllers/Http/UserController"
// for the httpControllers directory. A ".method" suffix is carried over and
// names already under the app namespace are returned unchanged.
func (d *DirResolver) Translate(binding string) string {
	name, method, hasMethod := strings.Cut(binding, ".")
	ns := d.resolver.appNamespace()

	var full string
	switch {
	case strings.HasPrefix(name, ns+"/"):
		full = name
	default:
		dir, ok := d.resolver.Directory(d.dir)
		if !ok || dir == "" {
			full = ns + "/" + strings.TrimPrefix(name, "/")
		} else {
			full = ns + "/" + dir + "/" + strings.TrimPrefix(name, "/")
		}
	}

	if hasMethod {
		return full + "." + method
	}
	return full
}

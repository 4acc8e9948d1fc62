package loader

import (
	"context"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/kbukum/ignitor/errors"
	"github.com/kbukum/ignitor/ioc"
)

// SourceExt is the conventional extension of preload and app files. It is
// optional in every identifier.
const SourceExt = ".go"

// ProviderFactory builds a fresh service provider.
type ProviderFactory func() ioc.ServiceProvider

// ScriptFunc is a preload script. It runs once per fire.
type ScriptFunc func(ctx context.Context, c *ioc.Container) error

// ManifestFunc returns the app manifest. It is called on every fire.
type ManifestFunc func() *Manifest

// Registry maps identifiers to providers, preload scripts and manifests.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]ProviderFactory
	scripts   map[string]ScriptFunc
	manifests map[string]ManifestFunc
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]ProviderFactory),
		scripts:   make(map[string]ScriptFunc),
		manifests: make(map[string]ManifestFunc),
	}
}

// Normalize converts an identifier to its registry key: forward slashes,
// no leading "./" and no trailing source extension.
func Normalize(id string) string {
	id = filepath.ToSlash(strings.TrimSpace(id))
	if id != "" && id != "." {
		id = path.Clean(id)
	}
	id = strings.TrimPrefix(id, "./")
	return strings.TrimSuffix(id, SourceExt)
}

// RegisterProvider registers a provider factory under id.
func (r *Registry) RegisterProvider(id string, factory ProviderFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[Normalize(id)] = factory
}

// RegisterScript registers a preload script under its app-relative path.
func (r *Registry) RegisterScript(p string, fn ScriptFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scripts[Normalize(p)] = fn
}

// RegisterManifest registers a manifest func under its app-relative path.
func (r *Registry) RegisterManifest(p string, fn ManifestFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.manifests[Normalize(p)] = fn
}

// Provider builds the provider registered under id.
func (r *Registry) Provider(id string) (ioc.ServiceProvider, error) {
	r.mu.RLock()
	factory, ok := r.providers[Normalize(id)]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.ModuleNotFound(id)
	}
	p := factory()
	if p == nil {
		return nil, errors.ModuleNotFound(id)
	}
	return p, nil
}

// Script returns the preload script registered under p.
func (r *Registry) Script(p string) (ScriptFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.scripts[Normalize(p)]
	return fn, ok
}

// Manifest returns the manifest func registered under p.
func (r *Registry) Manifest(p string) (ManifestFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.manifests[Normalize(p)]
	return fn, ok
}

// ProviderIDs lists the registered provider identifiers, sorted.
func (r *Registry) ProviderIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.providers))
	for id := range r.providers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Reset removes every registration.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers = make(map[string]ProviderFactory)
	r.scripts = make(map[string]ScriptFunc)
	r.manifests = make(map[string]ManifestFunc)
}

// Default is the process-wide registry used by init-time registration.
var Default = NewRegistry()

// RegisterProvider registers a provider factory on the default registry.
func RegisterProvider(id string, factory ProviderFactory) { Default.RegisterProvider(id, factory) }

// RegisterScript registers a preload script on the default registry.
func RegisterScript(p string, fn ScriptFunc) { Default.RegisterScript(p, fn) }

// RegisterManifest registers a manifest func on the default registry.
func RegisterManifest(p string, fn ManifestFunc) { Default.RegisterManifest(p, fn) }

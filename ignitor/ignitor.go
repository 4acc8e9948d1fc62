package ignitor

import (
	"io"
	"path/filepath"
	"sync"

	"github.com/kbukum/ignitor/ace"
	"github.com/kbukum/ignitor/hooks"
	"github.com/kbukum/ignitor/ioc"
	"github.com/kbukum/ignitor/loader"
	"github.com/kbukum/ignitor/logger"
	"github.com/kbukum/ignitor/observability"
	"github.com/kbukum/ignitor/server"
)

// Ignitor holds the boot configuration of one application and drives its
// boot pipeline. Configuration methods return the receiver so they can be
// chained. One Ignitor runs one pipeline at a time.
type Ignitor struct {
	mu       sync.Mutex
	appRoot  string
	appFile  string
	preloads []PreloadFile
	summary  *Summary

	packageFile string
	summaryOut  io.Writer

	container *ioc.Container
	registrar *ioc.Registrar
	hooks     *hooks.Registry
	registry  *loader.Registry
	log       *logger.Logger
	metrics   *observability.Metrics

	httpStart HTTPStarter
	aceStart  AceStarter
}

// New creates an Ignitor with the default app file and preload list.
func New(opts ...Option) *Ignitor {
	o := resolveOptions(opts)

	ig := &Ignitor{
		appFile:     loader.DefaultAppFile,
		preloads:    defaultPreloads(),
		packageFile: loader.DefaultPackageFile,
		container:   o.container,
		hooks:       o.hooks,
		registry:    o.registry,
		log:         o.logger,
		httpStart:   o.httpStart,
		aceStart:    o.aceStart,
		summaryOut:  o.summaryOut,
	}
	if o.packageFile != "" {
		ig.packageFile = o.packageFile
	}
	if ig.container == nil {
		ig.container = ioc.NewContainer()
	}
	if ig.hooks == nil {
		ig.hooks = hooks.Default
	}
	if ig.registry == nil {
		ig.registry = loader.Default
	}
	if ig.log == nil {
		ig.log = logger.WithComponent("ignitor")
	}
	if ig.httpStart == nil {
		ig.httpStart = server.Run
	}
	if ig.aceStart == nil {
		ig.aceStart = ace.Run
	}
	ig.registrar = ioc.NewRegistrar(ig.container)

	// A nil Metrics records nothing.
	if m, err := observability.NewMetrics(observability.Meter()); err == nil {
		ig.metrics = m
	}
	return ig
}

// SetAppRoot sets the application root. It must be set before any fire
// operation.
func (ig *Ignitor) SetAppRoot(path string) *Ignitor {
	ig.mu.Lock()
	defer ig.mu.Unlock()
	if path != "" {
		path = filepath.Clean(path)
	}
	ig.appRoot = path
	return ig
}

// AppRoot returns the application root, or "" when unset.
func (ig *Ignitor) AppRoot() string {
	ig.mu.Lock()
	defer ig.mu.Unlock()
	return ig.appRoot
}

// SetAppFile overrides the app manifest path, relative to the app root.
func (ig *Ignitor) SetAppFile(path string) *Ignitor {
	ig.mu.Lock()
	defer ig.mu.Unlock()
	ig.appFile = path
	return ig
}

// AppFile returns the app manifest path.
func (ig *Ignitor) AppFile() string {
	ig.mu.Lock()
	defer ig.mu.Unlock()
	return ig.appFile
}

// Container returns the container providers are registered on.
func (ig *Ignitor) Container() *ioc.Container { return ig.container }

// Providers returns the identifiers of the registered providers in
// registration order. Each fire starts a fresh list.
func (ig *Ignitor) Providers() []string {
	ig.mu.Lock()
	registrar := ig.registrar
	ig.mu.Unlock()

	entries := registrar.Providers()
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	return ids
}

// Summary returns the summary of the last fire operation, or nil before
// the first one.
func (ig *Ignitor) Summary() *Summary {
	ig.mu.Lock()
	defer ig.mu.Unlock()
	return ig.summary
}

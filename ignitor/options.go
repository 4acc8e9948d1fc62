package ignitor

import (
	"context"
	"io"

	"github.com/kbukum/ignitor/hooks"
	"github.com/kbukum/ignitor/ioc"
	"github.com/kbukum/ignitor/loader"
	"github.com/kbukum/ignitor/logger"
)

// HTTPStarter is the start action invoked by FireHTTPServer.
type HTTPStarter func(ctx context.Context, c *ioc.Container) error

// AceStarter is the start action invoked by FireAce. commands are the
// command binding keys declared by the manifest.
type AceStarter func(ctx context.Context, c *ioc.Container, commands []string, args []string) error

// Option configures the Ignitor during creation.
type Option func(*options)

type options struct {
	container   *ioc.Container
	hooks       *hooks.Registry
	registry    *loader.Registry
	logger      *logger.Logger
	httpStart   HTTPStarter
	aceStart    AceStarter
	packageFile string
	summaryOut  io.Writer
}

func resolveOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithContainer sets the container providers are registered on.
// Defaults to a new empty container.
func WithContainer(c *ioc.Container) Option {
	return func(o *options) {
		o.container = c
	}
}

// WithHooks sets the hook registry. Defaults to hooks.Default.
func WithHooks(r *hooks.Registry) Option {
	return func(o *options) {
		o.hooks = r
	}
}

// WithRegistry sets the module registry providers, scripts and manifests
// are looked up in. Defaults to loader.Default.
func WithRegistry(r *loader.Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithLogger sets the logger used for progress messages.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithHTTPStarter replaces the HTTP start action. Defaults to server.Run.
func WithHTTPStarter(fn HTTPStarter) Option {
	return func(o *options) {
		o.httpStart = fn
	}
}

// WithAceStarter replaces the ace start action. Defaults to ace.Run.
func WithAceStarter(fn AceStarter) Option {
	return func(o *options) {
		o.aceStart = fn
	}
}

// WithPackageFile sets the package descriptor read for autoloads,
// relative to the app root. Defaults to loader.DefaultPackageFile.
func WithPackageFile(name string) Option {
	return func(o *options) {
		o.packageFile = name
	}
}

// WithSummary writes the boot summary to w after every successful boot.
func WithSummary(w io.Writer) Option {
	return func(o *options) {
		o.summaryOut = w
	}
}

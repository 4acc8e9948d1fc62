package ignitor

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/ignitor/errors"
	"github.com/kbukum/ignitor/helpers"
	"github.com/kbukum/ignitor/hooks"
	"github.com/kbukum/ignitor/ioc"
	"github.com/kbukum/ignitor/loader"
	"github.com/kbukum/ignitor/logger"
	"github.com/kbukum/ignitor/observability"
)

// Fire actions, as named in precondition errors and telemetry.
const (
	ActionHTTPServer = "http server"
	ActionAce        = "ace"
	ActionApp        = "app"
)

// Pipeline phases besides the hook phases.
const (
	PhaseSetup    = "setup"
	PhaseManifest = "manifest"
)

// run carries the per-fire state through the pipeline.
type run struct {
	action    string
	id        string
	log       *logger.Logger
	summary   *Summary
	registrar *ioc.Registrar
}

// FireHTTPServer boots the application and hands off to the HTTP start
// action. The start action's error is returned as-is.
func (ig *Ignitor) FireHTTPServer(ctx context.Context) error {
	if ig.AppRoot() == "" {
		return errors.AppRootMissing(ActionHTTPServer, "server.go")
	}
	if _, err := ig.boot(ctx, ActionHTTPServer, false); err != nil {
		return err
	}
	ig.log.Info("Starting HTTP server")
	return ig.httpStart(ctx, ig.container)
}

// FireAce boots the application with the manifest's providers followed by
// its ace providers, then hands args to the ace start action.
func (ig *Ignitor) FireAce(ctx context.Context, args []string) error {
	if ig.AppRoot() == "" {
		return errors.AppRootMissing(ActionAce, "ace.go")
	}
	m, err := ig.boot(ctx, ActionAce, true)
	if err != nil {
		return err
	}
	return ig.aceStart(ctx, ig.container, m.Commands, args)
}

// Fire boots the application without starting anything. The container,
// resolver and autoloads are left initialised for inspection.
func (ig *Ignitor) Fire(ctx context.Context) error {
	if ig.AppRoot() == "" {
		return errors.AppRootMissing(ActionApp, "app.go")
	}
	_, err := ig.boot(ctx, ActionApp, false)
	return err
}

func (ig *Ignitor) boot(ctx context.Context, action string, withAce bool) (*loader.Manifest, error) {
	ig.mu.Lock()
	root, appFile := ig.appRoot, ig.appFile
	files := append([]PreloadFile(nil), ig.preloads...)
	r := &run{
		action:    action,
		id:        uuid.NewString(),
		summary:   newSummary(action),
		registrar: ioc.NewRegistrar(ig.container),
	}
	ig.summary = r.summary
	ig.registrar = r.registrar
	ig.mu.Unlock()

	r.log = ig.log.WithFields(logger.Fields(
		logger.FieldAction, action,
		logger.FieldRunID, r.id,
	))

	ctx, span := observability.StartSpan(ctx, observability.SpanFire,
		attribute.String(observability.AttrAction, action),
		attribute.String(observability.AttrRunID, r.id),
	)
	start := time.Now()

	m, err := ig.pipeline(ctx, r, root, appFile, files, withAce)

	elapsed := time.Since(start)
	r.summary.finish(elapsed, err)
	ig.metrics.RecordFire(ctx, action, err)
	observability.EndSpan(span, err)
	if err != nil {
		return nil, err
	}

	r.log.Info("Application booted", logger.Fields(
		logger.FieldCount, len(r.summary.Providers()),
		logger.FieldDuration, elapsed.Milliseconds(),
	))
	if ig.summaryOut != nil {
		r.summary.Write(ig.summaryOut)
	}
	return m, nil
}

func (ig *Ignitor) pipeline(ctx context.Context, r *run, root, appFile string, files []PreloadFile, withAce bool) (*loader.Manifest, error) {
	if err := ig.phase(ctx, r, PhaseSetup, func(context.Context) error {
		return ig.setup(root)
	}); err != nil {
		return nil, err
	}

	var m *loader.Manifest
	if err := ig.phase(ctx, r, PhaseManifest, func(context.Context) error {
		var err error
		m, err = loader.LoadManifest(root, appFile, ig.registry)
		return err
	}); err != nil {
		return nil, err
	}

	ids := append([]string(nil), m.Providers...)
	if withAce {
		ids = append(ids, m.AceProviders...)
	}

	if err := ig.phase(ctx, r, string(hooks.ProvidersRegistered), func(ctx context.Context) error {
		return ig.hooks.Around(ctx, hooks.ProvidersRegistered, func(ctx context.Context) error {
			return ig.register(ctx, r, ids, m.Aliases)
		})
	}); err != nil {
		return nil, err
	}

	if err := ig.phase(ctx, r, string(hooks.ProvidersBooted), func(ctx context.Context) error {
		return ig.hooks.Around(ctx, hooks.ProvidersBooted, r.registrar.Boot)
	}); err != nil {
		return nil, err
	}

	if err := ig.phase(ctx, r, string(hooks.Preloading), func(ctx context.Context) error {
		return ig.hooks.Around(ctx, hooks.Preloading, func(ctx context.Context) error {
			return ig.preload(ctx, r, files)
		})
	}); err != nil {
		return nil, err
	}

	return m, nil
}

// phase runs fn as one traced and timed pipeline step.
func (ig *Ignitor) phase(ctx context.Context, r *run, name string, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ctx, span := observability.StartSpan(ctx, observability.SpanPhase,
		attribute.String(observability.AttrPhase, name),
	)
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)

	ig.metrics.RecordPhase(ctx, r.action, name, elapsed, err)
	observability.EndSpan(span, err)
	r.summary.trackPhase(name, elapsed, err)
	if err == nil {
		r.log.Debug("Phase complete", logger.PhaseFields(name, elapsed))
	}
	return err
}

// setup binds the helpers, registers the conventional resolver
// directories and sets the autoloads from the package descriptor.
func (ig *Ignitor) setup(root string) error {
	ig.container.Instance(ioc.Src.Helpers, helpers.New(root))

	resolver := ig.container.Resolver()
	for name, dir := range ioc.ConventionalDirectories {
		resolver.AddDirectory(name, dir)
	}

	pkg, err := loader.LoadPackage(root, ig.packageFile)
	if err != nil {
		return err
	}
	ig.container.SetAutoloads(pkg.Autoloads())
	return nil
}

// register resolves every identifier before registering any provider, so
// an unknown identifier fails the phase with nothing registered.
func (ig *Ignitor) register(ctx context.Context, r *run, ids []string, aliases map[string]string) error {
	entries := make([]ioc.Entry, 0, len(ids))
	for _, id := range ids {
		p, err := ig.registry.Provider(id)
		if err != nil {
			return err
		}
		entries = append(entries, ioc.Entry{ID: id, Provider: p})
	}

	if err := r.registrar.Register(ctx, entries); err != nil {
		return err
	}
	ig.container.SetAliases(aliases)
	r.summary.trackProviders(ids)
	return nil
}

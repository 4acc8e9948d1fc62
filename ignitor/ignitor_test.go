package ignitor

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/kbukum/ignitor/errors"
	"github.com/kbukum/ignitor/helpers"
	"github.com/kbukum/ignitor/hooks"
	"github.com/kbukum/ignitor/ioc"
	"github.com/kbukum/ignitor/loader"
	"github.com/kbukum/ignitor/logger"
)

// recorder collects events in the order they happen.
type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) add(e string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func (r *recorder) hook(e string) hooks.Hook {
	return func(context.Context) error {
		r.add(e)
		return nil
	}
}

// fakeProvider records its Register and Boot calls.
type fakeProvider struct {
	name    string
	rec     *recorder
	delay   time.Duration
	bootErr error
}

func (p *fakeProvider) Register(c *ioc.Container) error {
	p.rec.add("register " + p.name)
	return nil
}

func (p *fakeProvider) Boot(ctx context.Context, c *ioc.Container) error {
	if p.delay > 0 {
		time.Sleep(p.delay)
	}
	p.rec.add("boot " + p.name)
	return p.bootErr
}

type fixture struct {
	ig       *Ignitor
	root     string
	registry *loader.Registry
	hooks    *hooks.Registry
	rec      *recorder
	manifest *loader.Manifest
	loads    int
}

// newFixture builds an Ignitor over a private registry and hook registry.
// The manifest declares the given providers, each registered as a
// fakeProvider, and start/routes is registered as a no-op script.
func newFixture(t *testing.T, providers ...string) *fixture {
	t.Helper()
	f := &fixture{
		root:     t.TempDir(),
		registry: loader.NewRegistry(),
		hooks:    hooks.New(),
		rec:      &recorder{},
		manifest: &loader.Manifest{Providers: providers},
	}
	for _, id := range providers {
		f.addProvider(id, &fakeProvider{name: id})
	}
	f.registry.RegisterManifest(loader.DefaultAppFile, func() *loader.Manifest {
		f.loads++
		m := *f.manifest
		m.Providers = append([]string(nil), f.manifest.Providers...)
		m.AceProviders = append([]string(nil), f.manifest.AceProviders...)
		m.Commands = append([]string(nil), f.manifest.Commands...)
		m.Aliases = make(map[string]string, len(f.manifest.Aliases))
		for k, v := range f.manifest.Aliases {
			m.Aliases[k] = v
		}
		return &m
	})
	f.registry.RegisterScript("start/routes", func(context.Context, *ioc.Container) error {
		f.rec.add("preload routes")
		return nil
	})

	f.ig = New(
		WithRegistry(f.registry),
		WithHooks(f.hooks),
		WithLogger(logger.Nop()),
		WithHTTPStarter(func(context.Context, *ioc.Container) error {
			f.rec.add("http start")
			return nil
		}),
		WithAceStarter(func(_ context.Context, _ *ioc.Container, commands, args []string) error {
			f.rec.add("ace start " + strings.Join(commands, ",") + " " + strings.Join(args, ","))
			return nil
		}),
	).SetAppRoot(f.root)
	return f
}

func (f *fixture) addProvider(id string, p *fakeProvider) {
	if p.rec == nil {
		p.rec = f.rec
	}
	f.registry.RegisterProvider(id, func() ioc.ServiceProvider { return p })
}

func TestNew_Defaults(t *testing.T) {
	ig := New()
	if ig.Container() == nil {
		t.Fatal("expected non-nil container")
	}
	if ig.hooks != hooks.Default {
		t.Error("expected the process-wide hook registry by default")
	}
	if ig.registry != loader.Default {
		t.Error("expected the process-wide module registry by default")
	}
	if ig.AppRoot() != "" {
		t.Errorf("expected no app root, got %q", ig.AppRoot())
	}
	if ig.AppFile() != "start/app" {
		t.Errorf("expected default app file start/app, got %q", ig.AppFile())
	}
	if ig.Summary() != nil {
		t.Error("expected no summary before the first fire")
	}
}

func TestSetAppRootAndAppFile(t *testing.T) {
	root := t.TempDir()
	ig := New().SetAppRoot(root).SetAppFile("start/custom")
	if ig.AppRoot() != root {
		t.Errorf("expected app root %q, got %q", root, ig.AppRoot())
	}
	if ig.AppFile() != "start/custom" {
		t.Errorf("expected app file start/custom, got %q", ig.AppFile())
	}
}

func TestFire_WithoutAppRoot(t *testing.T) {
	tests := []struct {
		name string
		fire func(*Ignitor) error
		want string
	}{
		{
			name: "http server",
			fire: func(ig *Ignitor) error { return ig.FireHTTPServer(context.Background()) },
			want: "Cannot start http server, make sure to register the app root inside server.go file",
		},
		{
			name: "ace",
			fire: func(ig *Ignitor) error { return ig.FireAce(context.Background(), nil) },
			want: "Cannot start ace, make sure to register the app root inside ace.go file",
		},
		{
			name: "app",
			fire: func(ig *Ignitor) error { return ig.Fire(context.Background()) },
			want: "Cannot start app, make sure to register the app root inside app.go file",
		},
	}

	for _, tt := range tests {
		for _, setEmpty := range []bool{false, true} {
			name := tt.name
			if setEmpty {
				name += " with empty root"
			}
			t.Run(name, func(t *testing.T) {
				rec := &recorder{}
				hk := hooks.New()
				hk.Before.ProvidersRegistered(rec.hook("before"))
				ig := New(WithHooks(hk), WithRegistry(loader.NewRegistry()), WithLogger(logger.Nop()))
				if setEmpty {
					ig.SetAppRoot("")
				}
				if ig.AppRoot() != "" {
					t.Fatalf("expected an empty app root, got %q", ig.AppRoot())
				}

				err := tt.fire(ig)
				if err == nil {
					t.Fatal("expected an error")
				}
				if err.Error() != tt.want {
					t.Errorf("expected %q, got %q", tt.want, err.Error())
				}
				if !errors.HasCode(err, errors.ErrCodeAppRootMissing) {
					t.Errorf("expected APP_ROOT_MISSING, got %v", err)
				}
				if len(rec.list()) != 0 {
					t.Errorf("expected no hooks fired, got %v", rec.list())
				}
				if len(ig.Container().Bindings()) != 0 {
					t.Errorf("expected no bindings, got %v", ig.Container().Bindings())
				}
				if ig.Summary() != nil {
					t.Error("expected no summary")
				}
			})
		}
	}
}

func TestFire_RegistersAndBootsInOrder(t *testing.T) {
	f := newFixture(t)
	f.manifest.Providers = []string{"providers/slow", "providers/fast"}
	f.addProvider("providers/slow", &fakeProvider{name: "slow", delay: 30 * time.Millisecond})
	f.addProvider("providers/fast", &fakeProvider{name: "fast"})
	f.hooks.After.ProvidersBooted(f.rec.hook("after booted"))

	if err := f.ig.Fire(context.Background()); err != nil {
		t.Fatalf("Fire failed: %v", err)
	}

	want := []string{
		"register slow",
		"register fast",
		"boot slow",
		"boot fast",
		"after booted",
		"preload routes",
	}
	if got := f.rec.list(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if got := f.ig.Providers(); !reflect.DeepEqual(got, []string{"providers/slow", "providers/fast"}) {
		t.Errorf("unexpected providers %v", got)
	}
}

func TestFire_HookOrderWithinPhase(t *testing.T) {
	f := newFixture(t)
	f.hooks.Before.ProvidersRegistered(f.rec.hook("before"))
	f.hooks.After.ProvidersRegistered(f.rec.hook("after"))
	f.hooks.Before.ProvidersRegistered(f.rec.hook("before 1"))
	f.hooks.After.ProvidersRegistered(f.rec.hook("after 1"))
	f.registry.RegisterScript("start/routes", func(context.Context, *ioc.Container) error { return nil })

	if err := f.ig.Fire(context.Background()); err != nil {
		t.Fatalf("Fire failed: %v", err)
	}

	want := []string{"before", "before 1", "after", "after 1"}
	if got := f.rec.list(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestFire_HookOrderAcrossPhases(t *testing.T) {
	f := newFixture(t)
	f.hooks.Before.ProvidersBooted(f.rec.hook("before booted"))
	f.hooks.After.ProvidersRegistered(f.rec.hook("after registered"))
	f.hooks.After.ProvidersBooted(f.rec.hook("after booted"))
	f.hooks.Before.ProvidersRegistered(f.rec.hook("before registered"))
	f.registry.RegisterScript("start/routes", func(context.Context, *ioc.Container) error { return nil })

	if err := f.ig.Fire(context.Background()); err != nil {
		t.Fatalf("Fire failed: %v", err)
	}

	want := []string{"before registered", "after registered", "before booted", "after booted"}
	if got := f.rec.list(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestFireHTTPServer_FullPipelineOrder(t *testing.T) {
	f := newFixture(t, "providers/app")
	f.hooks.Before.ProvidersRegistered(f.rec.hook("before registered"))
	f.hooks.After.ProvidersRegistered(f.rec.hook("after registered"))
	f.hooks.Before.ProvidersBooted(f.rec.hook("before booted"))
	f.hooks.After.ProvidersBooted(f.rec.hook("after booted"))
	f.hooks.Before.Preloading(f.rec.hook("before preloading"))
	f.hooks.After.Preloading(f.rec.hook("after preloading"))

	if err := f.ig.FireHTTPServer(context.Background()); err != nil {
		t.Fatalf("FireHTTPServer failed: %v", err)
	}

	want := []string{
		"before registered",
		"register providers/app",
		"after registered",
		"before booted",
		"boot providers/app",
		"after booted",
		"before preloading",
		"preload routes",
		"after preloading",
		"http start",
	}
	if got := f.rec.list(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestFireHTTPServer_StartErrorReturnedAsIs(t *testing.T) {
	f := newFixture(t)
	startErr := stderrors.New("address in use")
	f.ig.httpStart = func(context.Context, *ioc.Container) error { return startErr }

	if err := f.ig.FireHTTPServer(context.Background()); err != startErr {
		t.Errorf("expected the start error, got %v", err)
	}
}

func TestFire_SetsAliases(t *testing.T) {
	f := newFixture(t)
	f.manifest.Aliases = map[string]string{
		"Route":  "Adonis/Src/Route",
		"Config": "Ignitor/Src/Config",
	}

	if err := f.ig.Fire(context.Background()); err != nil {
		t.Fatalf("Fire failed: %v", err)
	}
	if got := f.ig.Container().Aliases(); !reflect.DeepEqual(got, f.manifest.Aliases) {
		t.Errorf("expected aliases %v, got %v", f.manifest.Aliases, got)
	}
}

func TestFire_ResolverAndAutoloads(t *testing.T) {
	tests := []struct {
		name    string
		pkg     string
		want    map[string]string
		wantApp string
	}{
		{name: "no package file", want: map[string]string{"App": "./app"}, wantApp: "App"},
		{name: "no autoload field", pkg: `{"name": "demo"}`, want: map[string]string{"App": "./app"}, wantApp: "App"},
		{name: "empty autoload", pkg: `{"autoload": {}}`, want: map[string]string{"App": "./app"}, wantApp: "App"},
		{name: "custom autoload", pkg: `{"autoload": {"MyApp": "./app"}}`, want: map[string]string{"MyApp": "./app"}, wantApp: "MyApp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.pkg != "" {
				if err := os.WriteFile(filepath.Join(f.root, "package.json"), []byte(tt.pkg), 0o644); err != nil {
					t.Fatalf("write package.json: %v", err)
				}
			}

			if err := f.ig.Fire(context.Background()); err != nil {
				t.Fatalf("Fire failed: %v", err)
			}

			c := f.ig.Container()
			if got := c.Autoloads(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected autoloads %v, got %v", tt.want, got)
			}
			if got := c.AppNamespace(); got != tt.wantApp {
				t.Errorf("expected namespace %q, got %q", tt.wantApp, got)
			}
			for _, dir := range []string{"httpControllers", "models"} {
				if _, ok := c.Resolver().Directory(dir); !ok {
					t.Errorf("expected resolver directory %q", dir)
				}
			}
		})
	}
}

func TestFire_BindsHelpers(t *testing.T) {
	f := newFixture(t)
	if err := f.ig.Fire(context.Background()); err != nil {
		t.Fatalf("Fire failed: %v", err)
	}

	h, err := ioc.Resolve[*helpers.Helpers](f.ig.Container(), ioc.Src.Helpers)
	if err != nil {
		t.Fatalf("resolve helpers: %v", err)
	}
	if h.AppRoot() != f.root {
		t.Errorf("expected helpers rooted at %q, got %q", f.root, h.AppRoot())
	}
}

func TestFire_ReloadsManifestEachTime(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 2; i++ {
		if err := f.ig.Fire(context.Background()); err != nil {
			t.Fatalf("Fire %d failed: %v", i, err)
		}
	}
	if f.loads != 2 {
		t.Errorf("expected the manifest to be loaded twice, got %d", f.loads)
	}
}

func TestFire_ManifestFromDisk(t *testing.T) {
	f := newFixture(t, "providers/app")
	f.registry.Reset()
	f.addProvider("providers/app", &fakeProvider{name: "disk"})
	f.registry.RegisterScript("start/routes", func(context.Context, *ioc.Container) error { return nil })

	dir := filepath.Join(f.root, "start")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	manifest := "providers:\n  - providers/app\naliases:\n  Route: Adonis/Src/Route\n"
	if err := os.WriteFile(filepath.Join(dir, "app.yaml"), []byte(manifest), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	if err := f.ig.Fire(context.Background()); err != nil {
		t.Fatalf("Fire failed: %v", err)
	}
	if got := f.rec.list(); !reflect.DeepEqual(got, []string{"register disk", "boot disk"}) {
		t.Errorf("unexpected events %v", got)
	}
	if got := f.ig.Container().Aliases()["Route"]; got != "Adonis/Src/Route" {
		t.Errorf("expected Route alias, got %q", got)
	}
}

func TestFire_MissingManifest(t *testing.T) {
	f := newFixture(t)
	f.ig.SetAppFile("start/missing")

	err := f.ig.Fire(context.Background())
	if err == nil {
		t.Fatal("expected an error")
	}
	if err.Error() != "Cannot find module 'start/missing'" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestFire_UnknownProviderRegistersNothing(t *testing.T) {
	f := newFixture(t, "providers/known")
	f.manifest.Providers = append(f.manifest.Providers, "providers/unknown")
	f.hooks.After.ProvidersRegistered(f.rec.hook("after registered"))

	err := f.ig.Fire(context.Background())
	if !errors.HasCode(err, errors.ErrCodeModuleNotFound) {
		t.Fatalf("expected MODULE_NOT_FOUND, got %v", err)
	}
	if err.Error() != "Cannot find module 'providers/unknown'" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if len(f.rec.list()) != 0 {
		t.Errorf("expected nothing registered or fired, got %v", f.rec.list())
	}
}

func TestFireAce_UnknownAceProvider(t *testing.T) {
	f := newFixture(t, "providers/app")
	f.manifest.AceProviders = []string{"Adonis/Src/Command"}

	err := f.ig.FireAce(context.Background(), []string{"list"})
	if err == nil {
		t.Fatal("expected an error")
	}
	if err.Error() != "Cannot find module 'Adonis/Src/Command'" {
		t.Errorf("unexpected message %q", err.Error())
	}
	for _, e := range f.rec.list() {
		if strings.HasPrefix(e, "ace start") {
			t.Error("ace start action must not run")
		}
	}
}

func TestFireAce_RegistersAceProvidersAndStarts(t *testing.T) {
	f := newFixture(t, "providers/app")
	f.manifest.AceProviders = []string{"providers/commands"}
	f.manifest.Commands = []string{"App/Commands/Greet"}
	f.addProvider("providers/commands", &fakeProvider{name: "commands"})

	if err := f.ig.FireAce(context.Background(), []string{"greet", "--loud"}); err != nil {
		t.Fatalf("FireAce failed: %v", err)
	}

	want := []string{
		"register providers/app",
		"register commands",
		"boot providers/app",
		"boot commands",
		"preload routes",
		"ace start App/Commands/Greet greet,--loud",
	}
	if got := f.rec.list(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestFire_IgnoresAceProviders(t *testing.T) {
	f := newFixture(t, "providers/app")
	f.manifest.AceProviders = []string{"providers/commands"}

	if err := f.ig.Fire(context.Background()); err != nil {
		t.Fatalf("Fire failed: %v", err)
	}
	if got := f.ig.Providers(); !reflect.DeepEqual(got, []string{"providers/app"}) {
		t.Errorf("expected only app providers, got %v", got)
	}
}

func TestFire_HookFailureStopsPipeline(t *testing.T) {
	f := newFixture(t, "providers/app")
	hookErr := stderrors.New("not ready")
	f.hooks.Before.ProvidersBooted(func(context.Context) error { return hookErr })
	f.hooks.Before.ProvidersBooted(f.rec.hook("second before booted"))
	f.hooks.After.ProvidersBooted(f.rec.hook("after booted"))

	err := f.ig.Fire(context.Background())
	if !errors.HasCode(err, errors.ErrCodeHookFailed) {
		t.Fatalf("expected HOOK_FAILED, got %v", err)
	}
	if !stderrors.Is(err, hookErr) {
		t.Errorf("expected the hook error as cause, got %v", err)
	}
	if got := f.rec.list(); !reflect.DeepEqual(got, []string{"register providers/app"}) {
		t.Errorf("expected only registration to run, got %v", got)
	}
	if got := f.ig.Providers(); len(got) != 1 {
		t.Errorf("expected the provider to stay registered, got %v", got)
	}
}

func TestFire_BootFailureKeepsEarlierProvidersBooted(t *testing.T) {
	f := newFixture(t)
	bootErr := stderrors.New("no database")
	f.manifest.Providers = []string{"providers/a", "providers/b", "providers/c"}
	f.addProvider("providers/a", &fakeProvider{name: "a"})
	f.addProvider("providers/b", &fakeProvider{name: "b", bootErr: bootErr})
	f.addProvider("providers/c", &fakeProvider{name: "c"})

	err := f.ig.Fire(context.Background())
	if !errors.HasCode(err, errors.ErrCodeProviderFailed) {
		t.Fatalf("expected PROVIDER_FAILED, got %v", err)
	}
	if !stderrors.Is(err, bootErr) {
		t.Errorf("expected the boot error as cause, got %v", err)
	}
	want := []string{"register a", "register b", "register c", "boot a", "boot b"}
	if got := f.rec.list(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if !f.ig.registrar.Booted("providers/a") {
		t.Error("expected providers/a to stay booted")
	}
	if f.ig.registrar.Booted("providers/c") {
		t.Error("expected providers/c not to boot")
	}
}

func TestFire_CancelledContext(t *testing.T) {
	f := newFixture(t, "providers/app")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := f.ig.Fire(ctx)
	if !stderrors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(f.rec.list()) != 0 {
		t.Errorf("expected nothing to run, got %v", f.rec.list())
	}
}

func TestFire_DefaultHookRegistry(t *testing.T) {
	hooks.Clear()
	defer hooks.Clear()

	f := newFixture(t)
	f.ig.hooks = hooks.Default
	hooks.Before.Preloading(f.rec.hook("before preloading"))
	hooks.After.Preloading(f.rec.hook("after preloading"))

	if err := f.ig.Fire(context.Background()); err != nil {
		t.Fatalf("Fire failed: %v", err)
	}
	want := []string{"before preloading", "preload routes", "after preloading"}
	if got := f.rec.list(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestFire_WritesSummary(t *testing.T) {
	f := newFixture(t, "providers/app")
	var buf bytes.Buffer
	f.ig.summaryOut = &buf

	if err := f.ig.Fire(context.Background()); err != nil {
		t.Fatalf("Fire failed: %v", err)
	}

	s := f.ig.Summary()
	if s == nil {
		t.Fatal("expected a summary")
	}
	if s.Action() != ActionApp || s.Err() != nil {
		t.Errorf("unexpected summary action=%q err=%v", s.Action(), s.Err())
	}
	var names []string
	for _, p := range s.Phases() {
		names = append(names, p.Name)
	}
	wantPhases := []string{PhaseSetup, PhaseManifest, "providersRegistered", "providersBooted", "preloading"}
	if !reflect.DeepEqual(names, wantPhases) {
		t.Errorf("expected phases %v, got %v", wantPhases, names)
	}
	if got := s.Providers(); !reflect.DeepEqual(got, []string{"providers/app"}) {
		t.Errorf("unexpected summary providers %v", got)
	}

	out := buf.String()
	for _, want := range []string{"app booted", "providers/app", "start/routes", "start/events"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected summary output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestFire_TwiceKeepsOneProviderList(t *testing.T) {
	f := newFixture(t, "providers/a", "providers/b")

	for i := 0; i < 2; i++ {
		if err := f.ig.Fire(context.Background()); err != nil {
			t.Fatalf("fire %d failed: %v", i+1, err)
		}
	}
	want := []string{"providers/a", "providers/b"}
	if got := f.ig.Providers(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if !f.ig.registrar.Booted("providers/b") {
		t.Error("expected providers/b to be booted after the second fire")
	}
}

package observability

import (
	"context"
	stderrors "errors"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/ignitor/config"
	"github.com/kbukum/ignitor/ioc"
)

// ShutdownTimeout bounds the flush of pending telemetry on Close.
const ShutdownTimeout = 5 * time.Second

// Telemetry owns the trace and meter providers installed by Provider.
type Telemetry struct {
	cfg Config
	tp  *sdktrace.TracerProvider
	mp  *sdkmetric.MeterProvider
}

// Config returns the effective telemetry configuration.
func (t *Telemetry) Config() Config { return t.cfg }

// Enabled reports whether exporters were installed.
func (t *Telemetry) Enabled() bool { return t.tp != nil || t.mp != nil }

// Start installs the exporters when telemetry is enabled.
func (t *Telemetry) Start(ctx context.Context) error {
	if !t.cfg.Enabled || t.Enabled() {
		return nil
	}
	if err := t.cfg.Validate(); err != nil {
		return err
	}
	tp, err := InitTracer(ctx, t.cfg)
	if err != nil {
		return err
	}
	mp, err := InitMeter(ctx, t.cfg)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return err
	}
	t.tp, t.mp = tp, mp
	return nil
}

// Close flushes and shuts down the providers. The container calls it on
// Close.
func (t *Telemetry) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	var errs []error
	if t.tp != nil {
		errs = append(errs, t.tp.Shutdown(ctx))
	}
	if t.mp != nil {
		errs = append(errs, t.mp.Shutdown(ctx))
	}
	t.tp, t.mp = nil, nil
	return stderrors.Join(errs...)
}

// Provider binds Telemetry under ioc.Src.Telemetry and starts it on boot.
// It reads the telemetry section of the config repository when one is
// bound.
type Provider struct{}

// NewProvider creates a telemetry provider.
func NewProvider() ioc.ServiceProvider { return &Provider{} }

func (p *Provider) Register(c *ioc.Container) error {
	return c.Singleton(ioc.Src.Telemetry, func(c *ioc.Container) (*Telemetry, error) {
		cfg := DefaultConfig(config.DefaultName)
		if repo, ok := ioc.TryResolve[*config.Repository](c, ioc.Src.Config); ok {
			svc := repo.Service()
			cfg.ServiceName = svc.Name
			cfg.Environment = svc.Environment
			if svc.Version != "" {
				cfg.ServiceVersion = svc.Version
			}
			if err := repo.UnmarshalKey(ConfigKey, &cfg); err != nil {
				return nil, err
			}
		}
		return &Telemetry{cfg: cfg}, nil
	})
}

func (p *Provider) Boot(ctx context.Context, c *ioc.Container) error {
	t, err := ioc.Resolve[*Telemetry](c, ioc.Src.Telemetry)
	if err != nil {
		return err
	}
	return t.Start(ctx)
}

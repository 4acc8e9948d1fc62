package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/ignitor/logger"
)

// InitMeter installs a periodic OTLP HTTP meter provider as the global
// provider. The caller shuts it down on exit.
func InitMeter(ctx context.Context, cfg Config) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if cfg.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"endpoint", cfg.Endpoint,
		"interval", cfg.Interval.String(),
	))
	return mp, nil
}

// Meter returns the package meter from the global provider.
func Meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// Metrics holds the boot pipeline instruments.
type Metrics struct {
	fireTotal     metric.Int64Counter
	phaseDuration metric.Float64Histogram
	phaseFailures metric.Int64Counter
}

// NewMetrics creates the pipeline instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	fireTotal, err := meter.Int64Counter("ignitor.fire.total",
		metric.WithDescription("Fire operations by action and status"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating ignitor.fire.total counter: %w", err)
	}

	phaseDuration, err := meter.Float64Histogram("ignitor.phase.duration",
		metric.WithDescription("Duration of boot phases in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating ignitor.phase.duration histogram: %w", err)
	}

	phaseFailures, err := meter.Int64Counter("ignitor.phase.failures",
		metric.WithDescription("Boot phases that returned an error"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating ignitor.phase.failures counter: %w", err)
	}

	return &Metrics{
		fireTotal:     fireTotal,
		phaseDuration: phaseDuration,
		phaseFailures: phaseFailures,
	}, nil
}

// RecordPhase records the duration of phase, and a failure when err is set.
// A nil receiver records nothing.
func (m *Metrics) RecordPhase(ctx context.Context, action, phase string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("action", action),
		attribute.String("phase", phase),
	)
	m.phaseDuration.Record(ctx, duration.Seconds(), attrs)
	if err != nil {
		m.phaseFailures.Add(ctx, 1, attrs)
	}
}

// RecordFire counts a finished fire operation.
func (m *Metrics) RecordFire(ctx context.Context, action string, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.fireTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("action", action),
		attribute.String("status", status),
	))
}

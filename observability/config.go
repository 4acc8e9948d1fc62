package observability

import (
	"time"

	"github.com/kbukum/ignitor/validation"
)

// ConfigKey is the config section read by Provider.
const ConfigKey = "telemetry"

// Config configures the OpenTelemetry trace and meter providers.
type Config struct {
	Enabled bool `mapstructure:"enabled"`
	// ServiceName defaults to the application name.
	ServiceName    string `mapstructure:"service_name"`
	ServiceVersion string `mapstructure:"service_version"`
	Environment    string `mapstructure:"environment"`
	// Endpoint is the OTLP HTTP endpoint host:port.
	Endpoint string `mapstructure:"endpoint"`
	Insecure bool   `mapstructure:"insecure"`
	// SampleRate is the trace sampling ratio in [0, 1].
	SampleRate float64 `mapstructure:"sample_rate"`
	// Interval is the metric export interval.
	Interval time.Duration `mapstructure:"interval"`
}

// DefaultConfig returns defaults for local development. Telemetry stays
// disabled until Enabled is set.
func DefaultConfig(serviceName string) Config {
	return Config{
		ServiceName:    serviceName,
		ServiceVersion: "0.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		SampleRate:     1.0,
		Interval:       15 * time.Second,
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	sampleRateOK := c.SampleRate >= 0 && c.SampleRate <= 1
	return validation.Section(ConfigKey).
		Required("service_name", c.ServiceName).
		Required("endpoint", c.Endpoint).
		Check(sampleRateOK, "sample_rate", "must be between 0 and 1").
		Check(c.Interval >= 0, "interval", "must not be negative").
		Err()
}

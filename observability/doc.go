// Package observability traces and measures the boot pipeline with
// OpenTelemetry.
//
// Every fire operation and phase runs inside a span started with
// StartSpan. Phase durations and failures are recorded on Metrics. Both
// use the global providers, which are no-ops until Provider installs OTLP
// HTTP exporters from the telemetry config section:
//
//	telemetry:
//	  enabled: true
//	  endpoint: localhost:4318
//	  insecure: true
//	  sample_rate: 1.0
package observability

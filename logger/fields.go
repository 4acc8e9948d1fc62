package logger

import (
	"time"
)

// Standard field key constants for structured logging.
const (
	FieldService   = "service"
	FieldComponent = "component"
	FieldRunID     = "run_id"
	FieldAction    = "action"
	FieldPhase     = "phase"
	FieldSide      = "side"
	FieldProvider  = "provider"
	FieldPath      = "path"
	FieldCount     = "count"
	FieldError     = "error"
	FieldDuration  = "duration_ms"
)

// Fields builds a map[string]interface{} from alternating key-value pairs.
//
//	logger.Info("preloaded", logger.Fields("path", "start/routes", "optional", false))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// PhaseFields creates fields for a timed pipeline phase.
func PhaseFields(phase string, d time.Duration) map[string]interface{} {
	return map[string]interface{}{
		FieldPhase:    phase,
		FieldDuration: d.Milliseconds(),
	}
}

// Package errors provides the coded error type used across the ignitor
// boot pipeline.
//
// Every failure the orchestrator can surface carries a machine-readable
// ErrorCode and a fixed, human-readable message that names the offending
// identifier (module id, preload path, hook phase). Callers branch on the
// code with HasCode and print the message as-is.
package errors

package errors

import (
	stderrors "errors"
	"fmt"
)

// Error is the unified boot pipeline error type.
type Error struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is the fixed human-readable message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the message, followed by the cause when one is set.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause of the error.
func (e *Error) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// Fatal reports whether the error aborts a boot pipeline.
func (e *Error) Fatal() bool { return IsFatalCode(e.Code) }

// New creates a new Error.
func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// HasCode reports whether any *Error in err's chain carries code.
func HasCode(err error, code ErrorCode) bool {
	for err != nil {
		var e *Error
		if !stderrors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// --- Constructors ---

// AppRootMissing is returned by a fire operation called before the app root
// was registered. action names what could not start ("http server", "ace"),
// entry names the file expected to register the root.
func AppRootMissing(action, entry string) *Error {
	return &Error{
		Code:    ErrCodeAppRootMissing,
		Message: fmt.Sprintf("Cannot start %s, make sure to register the app root inside %s file", action, entry),
		Details: map[string]any{"action": action},
	}
}

// ModuleNotFound is returned when an identifier cannot be located.
func ModuleNotFound(id string) *Error {
	return &Error{
		Code:    ErrCodeModuleNotFound,
		Message: fmt.Sprintf("Cannot find module '%s'", id),
		Details: map[string]any{"module": id},
	}
}

// PreloadMissing is returned when a required preload script is missing.
func PreloadMissing(path string) *Error {
	return &Error{
		Code:    ErrCodePreloadMissing,
		Message: fmt.Sprintf("Cannot find module '%s'", path),
		Details: map[string]any{"path": path},
	}
}

// PreloadFailed wraps an error returned by a preload script.
func PreloadFailed(path string, cause error) *Error {
	return &Error{
		Code:    ErrCodePreloadFailed,
		Message: fmt.Sprintf("Preload file '%s' failed", path),
		Details: map[string]any{"path": path},
		Cause:   cause,
	}
}

// HookFailed wraps an error returned by the index-th hook of a phase list.
func HookFailed(side, phase string, index int, cause error) *Error {
	return &Error{
		Code:    ErrCodeHookFailed,
		Message: fmt.Sprintf("%s.%s hook %d failed", side, phase, index),
		Details: map[string]any{"side": side, "phase": phase, "index": index},
		Cause:   cause,
	}
}

// ProviderFailed wraps an error returned by a provider during stage
// ("register" or "boot").
func ProviderFailed(id, stage string, cause error) *Error {
	return &Error{
		Code:    ErrCodeProviderFailed,
		Message: fmt.Sprintf("Provider '%s' failed to %s", id, stage),
		Details: map[string]any{"provider": id, "stage": stage},
		Cause:   cause,
	}
}

// InvalidManifest is returned when the app file cannot be parsed or validated.
func InvalidManifest(path string, cause error) *Error {
	return &Error{
		Code:    ErrCodeInvalidManifest,
		Message: fmt.Sprintf("Invalid app file '%s'", path),
		Details: map[string]any{"path": path},
		Cause:   cause,
	}
}

// NotBound is returned when a container key has no binding.
func NotBound(key string) *Error {
	return &Error{
		Code:    ErrCodeNotBound,
		Message: fmt.Sprintf("Cannot resolve '%s', no binding registered", key),
		Details: map[string]any{"key": key},
	}
}

// Validation creates an Error for failed struct validation.
func Validation(message string) *Error {
	return &Error{Code: ErrCodeInvalidInput, Message: message}
}

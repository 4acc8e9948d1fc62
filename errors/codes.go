package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Precondition errors
const (
	// ErrCodeAppRootMissing indicates a fire operation ran before the app root was set.
	ErrCodeAppRootMissing ErrorCode = "APP_ROOT_MISSING"
)

// Resolution errors
const (
	// ErrCodeModuleNotFound indicates a provider, manifest or script identifier could not be located.
	ErrCodeModuleNotFound ErrorCode = "MODULE_NOT_FOUND"
	// ErrCodePreloadMissing indicates a required preload script could not be located.
	ErrCodePreloadMissing ErrorCode = "PRELOAD_MISSING"
	// ErrCodeNotBound indicates a container key has no binding.
	ErrCodeNotBound ErrorCode = "NOT_BOUND"
)

// Execution errors
const (
	// ErrCodeHookFailed indicates a lifecycle hook returned an error.
	ErrCodeHookFailed ErrorCode = "HOOK_FAILED"
	// ErrCodeProviderFailed indicates a provider failed to register or boot.
	ErrCodeProviderFailed ErrorCode = "PROVIDER_FAILED"
	// ErrCodePreloadFailed indicates a preload script returned an error.
	ErrCodePreloadFailed ErrorCode = "PRELOAD_FAILED"
)

// Input errors
const (
	// ErrCodeInvalidManifest indicates the app manifest could not be parsed or validated.
	ErrCodeInvalidManifest ErrorCode = "INVALID_MANIFEST"
	// ErrCodeInvalidInput indicates struct validation failed.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

var fatalCodes = map[ErrorCode]bool{
	ErrCodeAppRootMissing:  true,
	ErrCodeModuleNotFound:  true,
	ErrCodePreloadMissing:  true,
	ErrCodeHookFailed:      true,
	ErrCodeProviderFailed:  true,
	ErrCodePreloadFailed:   true,
	ErrCodeInvalidManifest: true,
	ErrCodeNotBound:        false,
	ErrCodeInvalidInput:    false,
}

// IsFatalCode reports whether the code aborts a boot pipeline when surfaced from it.
func IsFatalCode(code ErrorCode) bool {
	return fatalCodes[code]
}

// Package validation checks manifests and configuration structs.
//
// Struct tag validation uses go-playground/validator. Field names in error
// messages are taken from the yaml, mapstructure or json tag, in that order:
//
//	type Manifest struct {
//	    Providers []string `yaml:"providers" validate:"dive,required"`
//	}
//	err := validation.Validate(m)
//
// Programmatic checks collect failures per config section:
//
//	err := validation.Section("http").
//	    Required("host", cfg.Host).
//	    Between("port", cfg.Port, 0, 65535).
//	    Err()
package validation

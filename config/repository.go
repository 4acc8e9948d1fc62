package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Repository is the loaded configuration.
type Repository struct {
	v       *viper.Viper
	files   ResolvedFiles
	service ServiceConfig
}

func (r *Repository) loadService() error {
	var svc ServiceConfig
	if err := r.v.Unmarshal(&svc); err != nil {
		return fmt.Errorf("config: unmarshal: %w", err)
	}
	svc.ApplyDefaults()
	if err := svc.Validate(); err != nil {
		return err
	}
	r.service = svc
	return nil
}

// Get returns the raw value at a dotted key.
func (r *Repository) Get(key string) interface{} { return r.v.Get(key) }

// GetString returns the value at key as a string.
func (r *Repository) GetString(key string) string { return r.v.GetString(key) }

// GetInt returns the value at key as an int.
func (r *Repository) GetInt(key string) int { return r.v.GetInt(key) }

// GetBool returns the value at key as a bool.
func (r *Repository) GetBool(key string) bool { return r.v.GetBool(key) }

// IsSet reports whether key has a value from any source.
func (r *Repository) IsSet(key string) bool { return r.v.IsSet(key) }

// Set overrides the value at key for the lifetime of the repository.
func (r *Repository) Set(key string, value interface{}) { r.v.Set(key, value) }

// UnmarshalKey decodes the section at key into out.
func (r *Repository) UnmarshalKey(key string, out interface{}) error {
	if err := r.v.UnmarshalKey(key, out); err != nil {
		return fmt.Errorf("config: unmarshal %s: %w", key, err)
	}
	return nil
}

// Unmarshal decodes the whole configuration into out.
func (r *Repository) Unmarshal(out interface{}) error {
	if err := r.v.Unmarshal(out); err != nil {
		return fmt.Errorf("config: unmarshal: %w", err)
	}
	return nil
}

// Service returns the validated service section.
func (r *Repository) Service() ServiceConfig { return r.service }

// Files returns the config and env files that were read.
func (r *Repository) Files() ResolvedFiles { return r.files }

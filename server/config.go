package server

import (
	"os"
	"strconv"

	"github.com/kbukum/ignitor/server/middleware"
	"github.com/kbukum/ignitor/validation"
)

// ConfigKey is the config section read by Provider.
const ConfigKey = "http"

// Config holds HTTP server configuration.
type Config struct {
	Host         string                `yaml:"host" mapstructure:"host"`
	Port         int                   `yaml:"port" mapstructure:"port"`
	ReadTimeout  int                   `yaml:"read_timeout" mapstructure:"read_timeout"`   // seconds
	WriteTimeout int                   `yaml:"write_timeout" mapstructure:"write_timeout"` // seconds
	IdleTimeout  int                   `yaml:"idle_timeout" mapstructure:"idle_timeout"`   // seconds
	CORS         middleware.CORSConfig `yaml:"cors" mapstructure:"cors"`
}

// ApplyDefaults sets default values for unset fields. An unset port becomes
// 3333; PORT=0 applied afterwards by ApplyEnv asks for an ephemeral port.
func (c *Config) ApplyDefaults() {
	if c.Host == "" {
		c.Host = "0.0.0.0"
	}
	if c.Port == 0 {
		c.Port = 3333
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 15
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 15
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = 60
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"*"}
	}
	if len(c.CORS.AllowedMethods) == 0 {
		c.CORS.AllowedMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	if len(c.CORS.AllowedHeaders) == 0 {
		c.CORS.AllowedHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	}
}

// ApplyEnv overrides host and port from the HOST and PORT variables.
func (c *Config) ApplyEnv() error {
	if host := os.Getenv("HOST"); host != "" {
		c.Host = host
	}
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return validation.Section("").Fail("PORT", "must be a number").Err()
		}
		c.Port = p
	}
	return nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	return validation.Section(ConfigKey).
		Required("host", c.Host).
		Between("port", c.Port, 0, 65535).
		NonNegative("read_timeout", c.ReadTimeout).
		NonNegative("write_timeout", c.WriteTimeout).
		NonNegative("idle_timeout", c.IdleTimeout).
		Err()
}

package config

import (
	"fmt"

	"github.com/kbukum/ignitor/logger"
	"github.com/kbukum/ignitor/validation"
)

// ServiceConfig contains the fields every application reads at boot.
type ServiceConfig struct {
	Name        string        `yaml:"name" mapstructure:"name"`
	Environment string        `yaml:"environment" mapstructure:"environment"`
	Version     string        `yaml:"version" mapstructure:"version"`
	Debug       bool          `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config `yaml:"logging" mapstructure:"logging"`
}

// DefaultName names the application when the config does not.
const DefaultName = "ignitor"

// ApplyDefaults applies default values to the configuration.
func (c *ServiceConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = DefaultName
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	if c.Logging.ServiceName == "" {
		c.Logging.ServiceName = c.Name
	}
	c.Logging.ApplyDefaults()
}

// Validate validates the configuration.
func (c *ServiceConfig) Validate() error {
	err := validation.Section("").
		Required("name", c.Name).
		OneOf("environment", c.Environment, "development", "test", "staging", "production").
		Err()
	if err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	return nil
}

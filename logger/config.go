package logger

import "github.com/kbukum/ignitor/validation"

// Levels accepted in Config.Level.
var Levels = []string{"trace", "debug", "info", "warn", "error", "fatal"}

// Formats accepted in Config.Format. "text" is an alias for console.
var Formats = []string{FormatJSON, FormatConsole, FormatPretty, "text"}

// Config is the logging config section.
type Config struct {
	Level       string `yaml:"level" mapstructure:"level"`
	Format      string `yaml:"format" mapstructure:"format"`
	Output      string `yaml:"output" mapstructure:"output"` // stdout, stderr or discard
	NoColor     bool   `yaml:"no_color" mapstructure:"no_color"`
	Timestamp   bool   `yaml:"timestamp" mapstructure:"timestamp"`
	Caller      bool   `yaml:"caller" mapstructure:"caller"`
	ServiceName string `yaml:"service_name" mapstructure:"service_name"`
}

// ApplyDefaults fills unset fields: info level, console format on stdout,
// timestamps on.
func (c *Config) ApplyDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = FormatConsole
	}
	if c.Output == "" {
		c.Output = "stdout"
	}
	c.Timestamp = true
}

// Validate rejects unknown levels and formats.
func (c *Config) Validate() error {
	return validation.Section("logging").
		OneOf("level", c.Level, Levels...).
		OneOf("format", c.Format, Formats...).
		Err()
}

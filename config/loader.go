package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// FileSystem abstracts the file operations of the loader for tests.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem implements FileSystem using actual file operations.
type RealFileSystem struct{}

func (rfs *RealFileSystem) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// LoadEnv loads path into the process environment without overriding
// variables that are already set.
func (rfs *RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// ConfigFiles are searched under the app root in order.
var ConfigFiles = []string{
	filepath.Join("config", "app.yml"),
	filepath.Join("config", "app.yaml"),
	filepath.Join("config", "config.yml"),
	"config.yml",
}

// EnvFiles are searched under the app root in order.
var EnvFiles = []string{".env"}

// ResolvedFiles contains the resolved config and env file paths. Either may
// be empty.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

// Resolver finds the config and env files under an app root.
type Resolver struct {
	FileSystem FileSystem
}

// ResolveFiles returns explicit paths when given, otherwise the first
// existing candidate under root.
func (r *Resolver) ResolveFiles(root string, opts LoaderConfig) ResolvedFiles {
	resolved := ResolvedFiles{
		ConfigFile: rooted(root, opts.ConfigFile),
		EnvFile:    rooted(root, opts.EnvFile),
	}
	if resolved.ConfigFile == "" {
		resolved.ConfigFile = r.first(root, ConfigFiles)
	}
	if resolved.EnvFile == "" {
		resolved.EnvFile = r.first(root, EnvFiles)
	}
	return resolved
}

func (r *Resolver) first(root string, candidates []string) string {
	for _, c := range candidates {
		p := filepath.Join(root, c)
		if r.FileSystem.Exists(p) {
			return p
		}
	}
	return ""
}

func rooted(root, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

// LoaderConfig holds dependencies and optional file overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string // explicit config file, relative to the root
	EnvFile    string // explicit .env file, relative to the root
	Defaults   map[string]interface{}
}

// LoaderOption is a functional option for Load.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// WithDefaults sets default values for dotted keys. Defaults also make the
// keys visible to environment overrides during Unmarshal.
func WithDefaults(defaults map[string]interface{}) LoaderOption {
	return func(lc *LoaderConfig) { lc.Defaults = defaults }
}

// Load reads the configuration rooted at root.
func Load(root string, opts ...LoaderOption) (*Repository, error) {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.FileSystem == nil {
		lc.FileSystem = &RealFileSystem{}
	}

	resolver := &Resolver{FileSystem: lc.FileSystem}
	files := resolver.ResolveFiles(root, lc)

	v := viper.New()
	for key, value := range defaultValues {
		v.SetDefault(key, value)
	}
	for key, value := range lc.Defaults {
		v.SetDefault(key, value)
	}

	if files.ConfigFile != "" && lc.FileSystem.Exists(files.ConfigFile) {
		v.SetConfigFile(files.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", files.ConfigFile, err)
		}
	}

	if files.EnvFile != "" && lc.FileSystem.Exists(files.EnvFile) {
		if err := lc.FileSystem.LoadEnv(files.EnvFile); err != nil {
			return nil, fmt.Errorf("config: loading %s: %w", files.EnvFile, err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	repo := &Repository{v: v, files: files}
	if err := repo.loadService(); err != nil {
		return nil, err
	}
	return repo, nil
}

// defaultValues registers the keys of ServiceConfig so their environment
// variables apply even when no config file mentions them.
var defaultValues = map[string]interface{}{
	"name":                 "",
	"environment":          "",
	"version":              "",
	"debug":                false,
	"logging.level":        "",
	"logging.format":       "",
	"logging.output":       "",
	"logging.no_color":     false,
	"logging.caller":       false,
	"logging.service_name": "",
}

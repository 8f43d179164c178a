package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// FileName is the base name of the project configuration file
const FileName = "modulegen"

// EnvPrefix prefixes environment variable overrides (MODULEGEN_NAMESPACE)
const EnvPrefix = "MODULEGEN"

// Config represents the modulegen configuration
type Config struct {
	Sources           []string    `mapstructure:"sources" yaml:"sources"`
	References        []string    `mapstructure:"references" yaml:"references,omitempty"`
	Output            string      `mapstructure:"output" yaml:"output"`
	Namespace         string      `mapstructure:"namespace" yaml:"namespace"`
	Jobs              int         `mapstructure:"jobs" yaml:"jobs,omitempty"`
	AllowErrors       bool        `mapstructure:"allow_errors" yaml:"allow_errors"`
	BuiltinReferences bool        `mapstructure:"builtin_references" yaml:"builtin_references"`
	Watch             WatchConfig `mapstructure:"watch" yaml:"watch,omitempty"`
}

// WatchConfig represents watch mode configuration
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce" yaml:"debounce,omitempty"`
}

// Default returns the configuration used when no file or override is present
func Default() *Config {
	return &Config{
		Sources:           []string{},
		References:        []string{},
		Output:            "ReactPackageProvider.g.cs",
		Jobs:              runtime.NumCPU(),
		BuiltinReferences: true,
		Watch:             WatchConfig{Debounce: 300 * time.Millisecond},
	}
}

// Load loads the configuration from modulegen.yml or modulegen.yaml in dir
func Load(dir string) (*Config, error) {
	v := newViper()
	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}
	return decode(v)
}

// LoadFile loads the configuration from an explicit path, which must exist
func LoadFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()

	// Every key needs a default so environment overrides reach Unmarshal
	d := Default()
	v.SetDefault("sources", d.Sources)
	v.SetDefault("references", d.References)
	v.SetDefault("output", d.Output)
	v.SetDefault("namespace", d.Namespace)
	v.SetDefault("jobs", d.Jobs)
	v.SetDefault("allow_errors", d.AllowErrors)
	v.SetDefault("builtin_references", d.BuiltinReferences)
	v.SetDefault("watch.debounce", d.Watch.Debounce)

	// Enable environment variable support
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := Validate(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// Save writes cfg as YAML to path
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// FindFile returns the modulegen.yml or modulegen.yaml in dir, or "" when neither
// exists
func FindFile(dir string) string {
	for _, ext := range []string{".yml", ".yaml"} {
		path := filepath.Join(dir, FileName+ext)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// GetProjectRoot tries to find the project root by looking for modulegen.yml
func GetProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if FindFile(dir) != "" {
			return dir, nil
		}

		// Move up one directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return "", fmt.Errorf("not in a modulegen project (no %s.yml found)", FileName)
		}
		dir = parent
	}
}

var namespacePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

// ValidNamespace reports whether ns is a dotted C# namespace name
func ValidNamespace(ns string) bool {
	return namespacePattern.MatchString(ns)
}

// Validate validates the configuration. An empty namespace is accepted here and
// rejected when generation starts, so init and flags can still supply it.
func Validate(cfg *Config) error {
	if cfg.Namespace != "" && !ValidNamespace(cfg.Namespace) {
		return fmt.Errorf("namespace must be a dotted identifier, got: %s", cfg.Namespace)
	}
	if cfg.Output == "" {
		return fmt.Errorf("output must not be empty")
	}
	if cfg.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative, got: %d", cfg.Jobs)
	}
	if cfg.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got: %s", cfg.Watch.Debounce)
	}
	return nil
}

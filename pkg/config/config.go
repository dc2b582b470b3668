// Package config loads server and CLI settings. Sources are layered: built-in
// defaults, an optional YAML file, an optional .env file, then FORMBUILDER_*
// environment variables. The merged result is validated before use.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	theme "github.com/goliatone/go-theme"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix namespaces every environment override.
const EnvPrefix = "FORMBUILDER_"

// Config is the full settings tree.
type Config struct {
	Server  Server  `yaml:"server"`
	Log     Log     `yaml:"log"`
	Builder Builder `yaml:"builder"`
	Theme   Theme   `yaml:"theme"`
}

// Server configures the HTTP component.
type Server struct {
	Addr       string        `yaml:"addr" validate:"required"`
	BasePath   string        `yaml:"base_path" validate:"omitempty,startswith=/"`
	CookieName string        `yaml:"cookie_name" validate:"required,alphanum"`
	SessionTTL time.Duration `yaml:"session_ttl" validate:"gte=0"`
}

// Log configures the zerolog output.
type Log struct {
	Level   string `yaml:"level" validate:"oneof=trace debug info warn error"`
	Path    string `yaml:"path"`
	Console bool   `yaml:"console"`
}

// Builder configures new workspaces.
type Builder struct {
	DefaultName string `yaml:"default_name" validate:"required"`
	Device      string `yaml:"device" validate:"oneof=web mobile"`
	// SeedSchema is a JSON schema file loaded into every new workspace.
	SeedSchema string `yaml:"seed_schema"`
}

// Theme carries preview design tokens.
type Theme struct {
	Name     string                       `yaml:"name"`
	Variant  string                       `yaml:"variant"`
	Tokens   map[string]string            `yaml:"tokens"`
	Variants map[string]map[string]string `yaml:"variants"`
}

// Manifest converts the theme section into a go-theme manifest. It returns nil
// when no tokens are configured.
func (t Theme) Manifest() *theme.Manifest {
	if len(t.Tokens) == 0 && len(t.Variants) == 0 {
		return nil
	}
	manifest := &theme.Manifest{
		Name:   t.Name,
		Tokens: cloneTokens(t.Tokens),
	}
	if len(t.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(t.Variants))
		for name, tokens := range t.Variants {
			manifest.Variants[name] = theme.Variant{Tokens: cloneTokens(tokens)}
		}
	}
	return manifest
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Server: Server{
			Addr:       ":8080",
			CookieName: "formbuilder",
			SessionTTL: 12 * time.Hour,
		},
		Log: Log{
			Level: "info",
		},
		Builder: Builder{
			DefaultName: "Untitled Form",
			Device:      "web",
		},
	}
}

// Option configures Load.
type Option func(*loadConfig)

type loadConfig struct {
	file    string
	envFile string
	lookup  func(string) (string, bool)
}

// WithFile reads a YAML file on top of the defaults. A missing file is an
// error.
func WithFile(path string) Option {
	return func(cfg *loadConfig) {
		cfg.file = strings.TrimSpace(path)
	}
}

// WithEnvFile loads a .env file into the process environment before
// overrides are read. A missing file is ignored.
func WithEnvFile(path string) Option {
	return func(cfg *loadConfig) {
		cfg.envFile = strings.TrimSpace(path)
	}
}

// WithLookup replaces os.LookupEnv, mainly for tests.
func WithLookup(lookup func(string) (string, bool)) Option {
	return func(cfg *loadConfig) {
		if lookup != nil {
			cfg.lookup = lookup
		}
	}
}

// Load merges every source and validates the result.
func Load(options ...Option) (Config, error) {
	opts := loadConfig{lookup: os.LookupEnv}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&opts)
	}

	cfg := Defaults()
	if opts.file != "" {
		data, err := os.ReadFile(opts.file)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", opts.file, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", opts.file, err)
		}
	}

	if opts.envFile != "" {
		if err := godotenv.Load(opts.envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load %s: %w", opts.envFile, err)
		}
	}

	if err := applyEnv(&cfg, opts.lookup); err != nil {
		return Config{}, err
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks struct tag constraints.
func Validate(cfg Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config: invalid: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(key string, target *string) {
		if value, ok := lookup(EnvPrefix + key); ok {
			*target = strings.TrimSpace(value)
		}
	}

	str("ADDR", &cfg.Server.Addr)
	str("BASE_PATH", &cfg.Server.BasePath)
	str("COOKIE_NAME", &cfg.Server.CookieName)
	str("LOG_LEVEL", &cfg.Log.Level)
	str("LOG_PATH", &cfg.Log.Path)
	str("DEFAULT_NAME", &cfg.Builder.DefaultName)
	str("DEVICE", &cfg.Builder.Device)
	str("SEED_SCHEMA", &cfg.Builder.SeedSchema)
	str("THEME_VARIANT", &cfg.Theme.Variant)

	if value, ok := lookup(EnvPrefix + "SESSION_TTL"); ok {
		ttl, err := time.ParseDuration(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("config: %sSESSION_TTL: %w", EnvPrefix, err)
		}
		cfg.Server.SessionTTL = ttl
	}
	if value, ok := lookup(EnvPrefix + "LOG_CONSOLE"); ok {
		enabled, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("config: %sLOG_CONSOLE: %w", EnvPrefix, err)
		}
		cfg.Log.Console = enabled
	}
	return nil
}

func cloneTokens(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for key, value := range src {
		out[key] = value
	}
	return out
}

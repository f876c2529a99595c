package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is stripped from every environment variable the config reads
const EnvPrefix = "MADOKA_"

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Log      LogConfig      `koanf:"log"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string        `koanf:"port" validate:"required,numeric"`
	Env             string        `koanf:"env" validate:"oneof=development production test"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gt=0"`
	IdleTimeout     time.Duration `koanf:"idle_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
	AllowedOrigins  []string      `koanf:"allowed_origins" validate:"min=1,dive,required"`
}

// DatabaseConfig holds SurrealDB connection settings
type DatabaseConfig struct {
	Host           string        `koanf:"host" validate:"required"`
	Port           string        `koanf:"port" validate:"required,numeric"`
	User           string        `koanf:"user"`
	Password       string        `koanf:"password"`
	Namespace      string        `koanf:"namespace" validate:"required"`
	Database       string        `koanf:"database" validate:"required"`
	ConnectTimeout time.Duration `koanf:"connect_timeout" validate:"gt=0"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level string `koanf:"level" validate:"oneof=trace debug info warn error"`
}

// Default returns the configuration used when no environment overrides it
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "3000",
			Env:             "development",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			AllowedOrigins:  []string{"*"},
		},
		Database: DatabaseConfig{
			Host:           "localhost",
			Port:           "8000",
			User:           "root",
			Password:       "root",
			Namespace:      "madoka",
			Database:       "madokadb",
			ConnectTimeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from MADOKA_* environment variables (and a .env
// file, if present) over the defaults. The first underscore after the
// prefix separates the section: MADOKA_SERVER_READ_TIMEOUT is server.read_timeout.
func Load() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil)
	if err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}
	return cfg, nil
}

// listKeys are read from comma separated values
var listKeys = map[string]bool{
	"server.allowed_origins": true,
}

func envValue(name, value string) (string, interface{}) {
	key := envKey(name)
	if listKeys[key] {
		parts := strings.Split(value, ",")
		items := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				items = append(items, p)
			}
		}
		return key, items
	}
	return key, value
}

func envKey(s string) string {
	return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Validate checks that all required configuration values are present and valid.
// It returns an error describing all validation failures, or nil if valid.
// Each failure names the environment variable that sets the field.
func (c *Config) Validate() error {
	err := newValidator().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		errs = append(errs, fieldError(fe))
	}
	return errors.Join(errs...)
}

// newValidator reports fields by their koanf path (server.port) instead of Go names
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		return name
	})
	return v
}

func fieldError(fe validator.FieldError) error {
	// Namespace is "Config.server.port"; drop the root type
	_, path, _ := strings.Cut(fe.Namespace(), ".")
	if i := strings.Index(path, "["); i >= 0 {
		path = path[:i]
	}
	name := EnvPrefix + strings.ToUpper(strings.ReplaceAll(path, ".", "_"))

	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", name)
	case "numeric":
		return fmt.Errorf("%s must be numeric, got '%v'", name, fe.Value())
	case "oneof":
		return fmt.Errorf("%s must be one of [%s], got '%v'", name, fe.Param(), fe.Value())
	case "gt":
		return fmt.Errorf("%s must be positive", name)
	case "min":
		return fmt.Errorf("%s must have at least %s value(s)", name, fe.Param())
	}
	return fmt.Errorf("%s failed %s validation", name, fe.Tag())
}

// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string `envconfig:"PORT" default:"8080" validate:"required,numeric"`

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string `envconfig:"DATABASE_URL" validate:"required"`

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to the Vite dev server. CORS_ORIGINS is comma-separated.
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:5173"`

	// MaxBodyBytes caps request bodies.
	MaxBodyBytes int64 `envconfig:"MAX_BODY_BYTES" default:"1048576" validate:"gt=0"`

	// MigrateOnStart applies pending goose migrations before serving.
	MigrateOnStart bool `envconfig:"MIGRATE_ON_START" default:"false"`

	Client
}

// Client is the part of Config that needs no database: logging, the place
// provider and search session tuning. The CLI loads only this.
type Client struct {
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=trace debug info warn error"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json" validate:"oneof=json console"`

	PlacesBaseURL     string        `envconfig:"PLACES_BASE_URL" default:"https://places.googleapis.com" validate:"url"`
	PlacesAPIKey      string        `envconfig:"PLACES_API_KEY"`
	PlacesTimeout     time.Duration `envconfig:"PLACES_TIMEOUT" default:"10s" validate:"gt=0"`
	PlacesMaxAttempts int           `envconfig:"PLACES_MAX_ATTEMPTS" default:"1" validate:"gte=1,lte=5"`

	SearchDebounce time.Duration `envconfig:"SEARCH_DEBOUNCE" default:"300ms" validate:"gt=0"`
	SearchMinInput int           `envconfig:"SEARCH_MIN_INPUT" default:"2" validate:"gte=1"`
}

var configValidator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their variable name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("envconfig"); name != "" {
			return name
		}
		return f.Name
	})
	return v
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error naming every variable that is missing or out of range.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg.CORSOrigins = splitCSV(strings.Join(cfg.CORSOrigins, ","))

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadClient is Load for the database-free subset of the configuration.
func LoadClient() (Client, error) {
	var c Client
	if err := envconfig.Process("", &c); err != nil {
		return Client{}, fmt.Errorf("config: %w", err)
	}
	if err := validate(c); err != nil {
		return Client{}, err
	}
	return c, nil
}

func validate(cfg any) error {
	err := configValidator.Struct(cfg)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return fmt.Errorf("config: %w", err)
	}

	var missing, invalid []string
	for _, fe := range ve {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
			continue
		}
		invalid = append(invalid, fmt.Sprintf("%s=%v (%s)", fe.Field(), fe.Value(), fe.ActualTag()))
	}

	var msgs []string
	if len(missing) > 0 {
		msgs = append(msgs, "required environment variables not set: "+strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		msgs = append(msgs, "invalid environment variables: "+strings.Join(invalid, ", "))
	}
	return errors.New(strings.Join(msgs, "; "))
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

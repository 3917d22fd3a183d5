package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envPrefix namespaces the environment variables read by Load, e.g.
// STREAMKIT_BUFFER_SIZE overrides buffer_size.
const envPrefix = "STREAMKIT"

// loaderConfig holds optional file overrides.
type loaderConfig struct {
	configFile string
	envFile    string
}

// Option configures Load.
type Option func(*loaderConfig)

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) Option {
	return func(lc *loaderConfig) { lc.configFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) Option {
	return func(lc *loaderConfig) { lc.envFile = path }
}

// Load builds Settings from defaults, an optional YAML config file,
// an optional .env file, and environment variable overrides, then
// validates the result. Precedence, lowest to highest: defaults,
// config file, environment.
func Load(opts ...Option) (Settings, error) {
	var lc loaderConfig
	for _, opt := range opts {
		opt(&lc)
	}

	if lc.envFile != "" {
		if err := godotenv.Load(lc.envFile); err != nil {
			return Settings{}, fmt.Errorf("loading env file %s: %w", lc.envFile, err)
		}
	}

	v := viper.New()
	defaults := DefaultSettings()
	v.SetDefault("addr", defaults.Addr)
	v.SetDefault("buffer_size", defaults.BufferSize)
	v.SetDefault("heartbeat", defaults.Heartbeat)
	v.SetDefault("log_level", defaults.LogLevel)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if lc.configFile != "" {
		v.SetConfigFile(lc.configFile)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("reading config file %s: %w", lc.configFile, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("unmarshaling settings: %w", err)
	}
	if err := validateSettings(s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateSettings checks struct tags and flattens validator output
// into one readable error.
func validateSettings(s Settings) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("validating settings: %w", err)
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, toSnakeCase(e.Field())+": "+formatValidationError(e))
	}
	return fmt.Errorf("invalid settings: %s", strings.Join(messages, "; "))
}

// formatValidationError creates a human-readable error message.
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "hostname_port":
		return "must be a host:port address"
	case "gte":
		return "must be at least " + e.Param()
	case "gt":
		return "must be greater than " + e.Param()
	case "oneof":
		return "must be one of: " + e.Param()
	default:
		return "is invalid"
	}
}

// toSnakeCase converts a field name to snake_case.
func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune('_')
		}
		if r >= 'A' && r <= 'Z' {
			result.WriteRune(r + 32)
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

package config

import "time"

// Settings configures the SSE bridge and its logging.
type Settings struct {
	// Addr is the host:port the bridge listens on.
	Addr string `mapstructure:"addr" validate:"required,hostname_port"`
	// BufferSize is the per-client frame buffer.
	BufferSize int `mapstructure:"buffer_size" validate:"gte=1"`
	// Heartbeat is the keep-alive comment interval.
	Heartbeat time.Duration `mapstructure:"heartbeat" validate:"gt=0"`
	// LogLevel is the zerolog level name.
	LogLevel string `mapstructure:"log_level" validate:"oneof=trace debug info warn error"`
}

// DefaultSettings returns sensible defaults for development.
func DefaultSettings() Settings {
	return Settings{
		Addr:       ":8080",
		BufferSize: 256,
		Heartbeat:  30 * time.Second,
		LogLevel:   "info",
	}
}

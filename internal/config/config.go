package config

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrParsingConfig is returned when environment variables cannot be parsed
// into the config struct.
var ErrParsingConfig = errors.New("failed to parse environment variables into config")

var dotenvOnce sync.Once

// Config holds all service settings. Values are read once at startup; there
// is no hot reload.
type Config struct {
	Host string `env:"HOST" envDefault:"0.0.0.0"`
	Port int    `env:"PORT" envDefault:"8080"`

	// JWT signing configuration. The secret key has no default: the process
	// must not start without one.
	SecretKey string        `env:"SECRET_KEY,required,notEmpty"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"1800s"`

	// AuthUsers is a JSON object mapping username to password (plaintext or
	// bcrypt hash). When empty, the single AuthUsername/AuthPassword pair is
	// used instead.
	AuthUsers    string `env:"AUTH_USERS"`
	AuthUsername string `env:"AUTH_USERNAME" envDefault:"admin"`
	AuthPassword string `env:"AUTH_PASSWORD" envDefault:"secure_password_123"`

	MaxDataLength int `env:"MAX_DATA_LENGTH" envDefault:"2000"`

	// RenderWorkers bounds concurrent QR renders. Zero means one worker per
	// available CPU.
	RenderWorkers int `env:"RENDER_WORKERS" envDefault:"0"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// OtelEndpoint is the OTLP collector address. Telemetry export is
	// disabled when empty.
	OtelEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// Load reads the configuration from the environment, loading a .env file
// first if one exists.
func Load() (*Config, error) {
	dotenvOnce.Do(func() {
		// Ignore errors - the .env file might not exist and that's ok
		_ = godotenv.Load()
	})

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, errors.Join(ErrParsingConfig, err)
	}
	return &cfg, nil
}

// Addr returns the host:port the HTTP server should listen on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

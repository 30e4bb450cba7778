// internal/config/config.go
package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Worker   WorkerConfig   `koanf:"worker"`
	Database DatabaseConfig `koanf:"database"`
	Log      LogConfig      `koanf:"log"`
	AMQP     AMQPConfig     `koanf:"amqp"`
}

type ServerConfig struct {
	Port string `koanf:"port" validate:"required,numeric"`
}

// WorkerConfig points at the downstream recommendation worker.
type WorkerConfig struct {
	URL string `koanf:"url" validate:"required,url"`
}

type DatabaseConfig struct {
	URL      string `koanf:"url"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Host     string `koanf:"host"`
	Port     string `koanf:"port"`
	Name     string `koanf:"name"`
	SSLMode  string `koanf:"sslmode" validate:"oneof=disable require verify-ca verify-full"`
}

type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error fatal disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
	File   string `koanf:"file"`
}

// AMQPConfig configures recommendation event publishing. An empty URL disables it.
type AMQPConfig struct {
	URL   string `koanf:"url" validate:"omitempty,url"`
	Queue string `koanf:"queue" validate:"required"`
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{Port: "5100"},
		Worker: WorkerConfig{URL: "http://localhost:5000"},
		Database: DatabaseConfig{
			User:    "gateway",
			Host:    "localhost",
			Port:    "5432",
			Name:    "gateway",
			SSLMode: "disable",
		},
		Log:  LogConfig{Level: "info", Format: "json"},
		AMQP: AMQPConfig{Queue: "recommend_events"},
	}
}

// envMappings maps environment variable names to koanf paths.
var envMappings = map[string]string{
	"APP_PORT":     "server.port",
	"WORKER_URL":   "worker.url",
	"DATABASE_URL": "database.url",
	"DB_USER":      "database.user",
	"DB_PASSWORD":  "database.password",
	"DB_HOST":      "database.host",
	"DB_PORT":      "database.port",
	"DB_NAME":      "database.name",
	"DB_SSLMODE":   "database.sslmode",
	"LOG_LEVEL":    "log.level",
	"LOG_FORMAT":   "log.format",
	"LOG_CALLER":   "log.caller",
	"LOG_FILE":     "log.file",
	"AMQP_URL":     "amqp.url",
	"AMQP_QUEUE":   "amqp.queue",
}

// envTransformFunc drops every variable that is not in envMappings.
func envTransformFunc(key string) string {
	return envMappings[key]
}

// Load reads defaults, then environment variables, and validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")

	defaults := defaultConfig()
	if err := k.Load(structs.Provider(&defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	cfg.Worker.URL = strings.TrimRight(cfg.Worker.URL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	return validator.New(validator.WithRequiredStructEnabled()).Struct(c)
}

// DSN returns DATABASE_URL when set, otherwise a postgres URL built from the
// parts with user and password escaped.
func (d DatabaseConfig) DSN() string {
	if strings.TrimSpace(d.URL) != "" {
		return d.URL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}
	return u.String()
}

// Enabled reports whether events should be published.
func (a AMQPConfig) Enabled() bool {
	return strings.TrimSpace(a.URL) != ""
}

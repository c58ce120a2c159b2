// Package config provides environment-based configuration with startup
// validation for the server, database, and auth subsystems.
package config

import (
	"errors"
	"strings"
	"time"
)

// Config holds the complete application configuration. It is built once at
// startup from environment variables (optionally seeded from a .env file)
// and validated before any subsystem is constructed.
type Config struct {
	Application ApplicationConfig
	Logging     LoggingConfig
	Server      ServerConfig
	Postgres    PostgresConfig
	Auth        AuthConfig
}

// ApplicationConfig contains general application settings.
type ApplicationConfig struct {
	Env  string
	Name string
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level string
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int
	AllowedOrigins  string        // comma-separated CORS origin list; empty disables CORS
	ShutdownTimeout time.Duration // grace period for in-flight requests on shutdown
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
}

// PostgresConfig contains PostgreSQL settings.
type PostgresConfig struct {
	URL             string // connection string; always sourced from the environment
	MaxConns        int32
	MinConns        int32
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	MigrationsPath  string
}

// AuthConfig contains token-signing settings.
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// validate checks all configuration values and reports every violation at
// once so a misconfigured deployment fails fast with a complete picture.
func (c *Config) validate() error {
	var problems []string

	if c.Server.Port <= 0 {
		problems = append(problems, "SERVER_PORT must be greater than 0")
	}
	if c.Server.ShutdownTimeout <= 0 {
		problems = append(problems, "SERVER_SHUTDOWN_TIMEOUT must be greater than 0")
	}
	if c.Server.ReadTimeout <= 0 {
		problems = append(problems, "SERVER_READ_TIMEOUT must be greater than 0")
	}
	if c.Server.WriteTimeout <= 0 {
		problems = append(problems, "SERVER_WRITE_TIMEOUT must be greater than 0")
	}
	if c.Server.IdleTimeout <= 0 {
		problems = append(problems, "SERVER_IDLE_TIMEOUT must be greater than 0")
	}

	if c.Postgres.URL == "" {
		problems = append(problems, "DATABASE_URL is required")
	}
	if c.Postgres.MaxConns <= 0 {
		problems = append(problems, "POSTGRES_MAX_CONNS must be greater than 0")
	}
	if c.Postgres.MinConns < 0 {
		problems = append(problems, "POSTGRES_MIN_CONNS must not be negative")
	}
	if c.Postgres.ConnMaxLifetime <= 0 {
		problems = append(problems, "POSTGRES_MAX_CONN_LIFETIME must be greater than 0")
	}
	if c.Postgres.ConnMaxIdleTime <= 0 {
		problems = append(problems, "POSTGRES_MAX_CONN_IDLE_TIME must be greater than 0")
	}

	if len(c.Auth.JWTSecret) < 32 {
		problems = append(problems, "JWT_SECRET is required and must be at least 32 characters")
	}
	if c.Auth.TokenTTL <= 0 {
		problems = append(problems, "AUTH_TOKEN_TTL must be greater than 0")
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, ", "))
	}
	return nil
}

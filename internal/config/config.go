// Package config reads process configuration from the environment,
// optionally seeded from a .env file during development.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	// SessionBackendMemory keeps sessions in an in-process cache.
	SessionBackendMemory = "memory"
	// SessionBackendRedis keeps sessions in a shared redis instance.
	SessionBackendRedis = "redis"
)

type Config struct {
	Bind    string // address the HTTP server binds to
	DataDir string // directory holding the sqlite database

	SessionBackend string        // memory or redis
	RedisAddr      string        // only used by the redis backend
	SessionTTL     time.Duration // how long a login survives without logout

	AuroraBaseURL string // auroras.live endpoint, overridable for tests

	Debug bool
}

// Load reads the environment. A .env file in the working directory is
// loaded first when present; real environment variables win over it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Bind:           getEnv("BOREALIS_BIND", "localhost:3000"),
		DataDir:        getEnv("BOREALIS_DATA", "./data"),
		SessionBackend: getEnv("BOREALIS_SESSION_BACKEND", SessionBackendMemory),
		RedisAddr:      getEnv("BOREALIS_REDIS_ADDR", "localhost:6379"),
		AuroraBaseURL:  getEnv("BOREALIS_AURORA_URL", "http://api.auroras.live/v1"),
		Debug:          getEnv("BOREALIS_DEBUG", "") != "",
	}

	ttl := getEnv("BOREALIS_SESSION_TTL", "12h")
	d, err := time.ParseDuration(ttl)
	if err != nil {
		return nil, fmt.Errorf("config: invalid BOREALIS_SESSION_TTL %q, cause %w", ttl, err)
	}
	cfg.SessionTTL = d

	switch cfg.SessionBackend {
	case SessionBackendMemory, SessionBackendRedis:
	default:
		return nil, fmt.Errorf("config: unknown session backend %q", cfg.SessionBackend)
	}
	return cfg, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

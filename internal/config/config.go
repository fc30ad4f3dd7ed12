// Package config provides runtime configuration values for the service.
package config

import (
	"os"
	"strconv"
	"time"
)

// Store drivers accepted by Config.Store.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config holds configuration knobs for the HTTP server and backing store.
type Config struct {
	HTTPAddr        string
	Mode            string
	ShutdownTimeout time.Duration
	Store           string
	PostgresDSN     string
	FixturesPath    string
	JWT             JWTConfig
}

// JWTConfig holds token signing parameters.
type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func durenvs(key string, defSec int) time.Duration {
	sec := atoienv(key, defSec)
	return time.Duration(sec) * time.Second
}

// Load collects configuration from environment with defaults.
func Load() Config {
	return Config{
		HTTPAddr:        getenv("HTTP_ADDR", ":8080"),
		Mode:            getenv("GIN_MODE", "release"),
		ShutdownTimeout: durenvs("SHUTDOWN_TIMEOUT", 15),
		Store:           getenv("STORE", StoreMemory),
		PostgresDSN:     getenv("POSTGRES_DSN", ""),
		FixturesPath:    getenv("FIXTURES_PATH", "fixtures/catalog.yaml"),
		JWT: JWTConfig{
			Secret: getenv("JWT_SECRET", ""),
			Expiry: time.Duration(atoienv("JWT_EXPIRY_HOURS", 24)) * time.Hour,
		},
	}
}

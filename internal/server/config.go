package server

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all rosterd settings. Every field is loaded from environment
// variables with sensible defaults.
type Config struct {
	// ListenAddr is the address the HTTP server binds to.
	// Env: ROSTERD_LISTEN_ADDR (default ":8321")
	ListenAddr string

	// LogLevel controls zerolog verbosity.
	// Env: ROSTERD_LOG_LEVEL (default "info")
	LogLevel string

	// DevMode enables human-friendly console log output.
	// Env: ROSTERD_DEV_MODE (default false)
	DevMode bool

	// CORSOrigins lists the browser origins allowed to call the API,
	// comma-separated. Env: ROSTERD_CORS_ORIGINS
	// (default "http://localhost:5173")
	CORSOrigins []string
}

// LoadConfig reads configuration from environment variables, applying
// defaults where values are not set.
func LoadConfig() Config {
	return Config{
		ListenAddr:  envOrDefault("ROSTERD_LISTEN_ADDR", ":8321"),
		LogLevel:    strings.ToLower(envOrDefault("ROSTERD_LOG_LEVEL", "info")),
		DevMode:     envBool("ROSTERD_DEV_MODE", false),
		CORSOrigins: splitOrigins(envOrDefault("ROSTERD_CORS_ORIGINS", "http://localhost:5173")),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

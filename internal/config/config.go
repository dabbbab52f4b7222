// Package config loads the shared client configuration for the roster
// front ends. Both clients read the same TOML file; each overrides it with
// its own environment variable so the two can point at different backends.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings the roster clients need.
type Config struct {
	// APIURL is the base address of the rosterd users API. A bare
	// host:port is accepted; the client normalizes it.
	APIURL string
}

const (
	defaultConfigPath = "~/.config/roster/config.toml"
	defaultAPIURL     = "127.0.0.1:8321"

	// EnvTUI and EnvCtl are the per-client override variables. They are
	// semantically identical; only the name differs per front end.
	EnvTUI = "ROSTER_TUI_API_URL"
	EnvCtl = "ROSTERCTL_API_URL"
)

// Load locates and parses the client config, falling back to defaults when
// the file is missing. envVar names the per-client environment variable
// that, when set, takes precedence over the file value.
func Load(path, envVar string) (Config, error) {
	cfg := Config{APIURL: defaultAPIURL}

	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("open config: %w", err)
		}
	} else {
		defer func() { _ = file.Close() }()

		bytes, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}

		var raw struct {
			APIURL string `toml:"api_url"`
		}
		if err := toml.Unmarshal(bytes, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
		if trimmed := strings.TrimSpace(raw.APIURL); trimmed != "" {
			cfg.APIURL = trimmed
		}
	}

	if envVar != "" {
		if fromEnv := strings.TrimSpace(os.Getenv(envVar)); fromEnv != "" {
			cfg.APIURL = fromEnv
		}
	}

	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

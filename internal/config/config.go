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

// Config carries the connection settings for the player.
type Config struct {
	Host      string
	Port      int
	AuthCode  int
	Reconnect bool
}

const (
	defaultConfigPath = "~/.config/clemctl/config.toml"
	defaultHost       = "127.0.0.1"
	defaultPort       = 5500
)

// Default returns the built-in settings used when no config file exists: a
// local player on the standard port, no auth code, no reconnection.
func Default() Config {
	return Config{Host: defaultHost, Port: defaultPort}
}

// Load locates and parses the config file, falling back to defaults when it
// is missing. An empty path means the default location.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Host      string `toml:"host"`
		Port      int    `toml:"port"`
		AuthCode  int    `toml:"auth_code"`
		Reconnect bool   `toml:"reconnect"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()
	if host := strings.TrimSpace(raw.Host); host != "" {
		cfg.Host = host
	}
	if raw.Port != 0 {
		if raw.Port < 1 || raw.Port > 65535 {
			return Config{}, fmt.Errorf("port %d out of range", raw.Port)
		}
		cfg.Port = raw.Port
	}
	cfg.AuthCode = raw.AuthCode
	cfg.Reconnect = raw.Reconnect

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

// Package config loads client configuration for the deploy tool.
// Precedence: command-line flags > environment > config file > defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variable overrides.
const (
	EnvServer       = "FLOWDEPLOY_SERVER"
	EnvAPIKey       = "FLOWDEPLOY_API_KEY"
	EnvDownloadsDir = "FLOWDEPLOY_DOWNLOADS_DIR"
	EnvTimeout      = "FLOWDEPLOY_TIMEOUT"
)

// DefaultServer is the base URL all request paths resolve against.
// Keeping the /api/v1/ prefix here means the rest of the code only ever
// uses paths like "flows/{id}/deploy".
const DefaultServer = "http://localhost:7860/api/v1/"

// DefaultTimeoutSeconds bounds a single deploy request. Containerize can
// take a while on the server side, so this is generous.
const DefaultTimeoutSeconds = 300

// Config holds everything the client needs to talk to the deployment API.
type Config struct {
	Server         string `yaml:"server"`
	APIKey         string `yaml:"api_key"`
	DownloadsDir   string `yaml:"downloads_dir"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout returns the request timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Default returns a config with all defaults applied.
func Default() Config {
	return Config{
		Server:         DefaultServer,
		TimeoutSeconds: DefaultTimeoutSeconds,
	}
}

// DefaultPath returns the default config file location
// (~/.flowdeploy/config.yaml).
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".flowdeploy", "config.yaml"), nil
}

// Load reads the config file at path (missing file is not an error), then
// applies environment overrides and normalizes the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// fall through to env and defaults
		default:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	normalize(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvServer); v != "" {
		cfg.Server = v
	}
	if v := os.Getenv(EnvAPIKey); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv(EnvDownloadsDir); v != "" {
		cfg.DownloadsDir = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		if secs, err := parseTimeoutSeconds(v); err == nil {
			cfg.TimeoutSeconds = secs
		}
	}
}

func normalize(cfg *Config) {
	cfg.Server = strings.TrimSpace(cfg.Server)
	if cfg.Server == "" {
		cfg.Server = DefaultServer
	}
	// Relative request paths only resolve correctly against a base that
	// ends in a slash.
	if !strings.HasSuffix(cfg.Server, "/") {
		cfg.Server += "/"
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = DefaultTimeoutSeconds
	}
}

// parseTimeoutSeconds accepts a Go duration ("90s") or a bare number of
// seconds.
func parseTimeoutSeconds(v string) (int, error) {
	if d, err := time.ParseDuration(v); err == nil {
		return int(d / time.Second), nil
	}
	secs, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q", v)
	}
	return secs, nil
}

// Package config handles configuration loading and validation.
// Values are layered: defaults < TOML file < environment (including .env
// files) < CLI flags. The result is built once at startup and passed to
// the components that need it.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"biliredirect/internal/httputil"
)

// EnvPrefix prefixes every environment variable the service reads.
const EnvPrefix = "BILIREDIRECT_"

// Config holds all application configuration.
type Config struct {
	ServiceName string   `toml:"service_name" env:"SERVICE_NAME"`
	Environment string   `toml:"environment" env:"ENVIRONMENT"`
	Port        int      `toml:"port" env:"PORT"`
	BaseURL     string   `toml:"base_url" env:"BASE_URL"`
	LogLevel    string   `toml:"log_level" env:"LOG_LEVEL"`
	Debug       bool     `toml:"debug" env:"DEBUG"`
	Upstream    Upstream `toml:"upstream" envPrefix:"UPSTREAM_"`
}

// Upstream configures the calls made to the video platform's API.
type Upstream struct {
	APIBase        string        `toml:"api_base" env:"API_BASE"`
	SiteBase       string        `toml:"site_base" env:"SITE_BASE"`
	Quality        int           `toml:"quality" env:"QUALITY"`
	Timeout        time.Duration `toml:"timeout" env:"TIMEOUT"`
	UserAgent      string        `toml:"user_agent" env:"USER_AGENT"`
	AcceptLanguage string        `toml:"accept_language" env:"ACCEPT_LANGUAGE"`
}

// Quality tiers understood by the playurl endpoint.
var validQualities = map[int]bool{
	6: true, 16: true, 32: true, 64: true, 74: true, 80: true,
	112: true, 116: true, 120: true, 125: true, 126: true, 127: true,
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		ServiceName: "biliredirect",
		Environment: "development",
		Port:        30000,
		BaseURL:     "http://localhost",
		LogLevel:    "info",
		Upstream: Upstream{
			APIBase:        "https://api.bilibili.com",
			SiteBase:       "https://www.bilibili.com",
			Quality:        116,
			Timeout:        httputil.DefaultTimeout,
			UserAgent:      httputil.DefaultUserAgent,
			AcceptLanguage: httputil.DefaultAcceptLanguage,
		},
	}
}

// configDir returns the XDG-compliant config directory.
func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "biliredirect"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "biliredirect"), nil
}

// ConfigPath returns the path to the default config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LoadEnvFiles loads .env files into the process environment without
// overriding variables that are already set. Missing files are skipped.
func LoadEnvFiles(paths ...string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("loading %s: %w", path, err)
		}
	}
	return nil
}

// Load builds the configuration from defaults, the TOML file at path and
// the environment. An empty path means the default location, where a
// missing file is not an error; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		if p, err := ConfigPath(); err == nil {
			path = p
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		case os.IsNotExist(err) && !explicit:
		default:
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	cfg.Upstream.APIBase = strings.TrimRight(strings.TrimSpace(cfg.Upstream.APIBase), "/")
	cfg.Upstream.SiteBase = strings.TrimRight(strings.TrimSpace(cfg.Upstream.SiteBase), "/")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks config values are within acceptable bounds.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range (1-65535)", c.Port)
	}
	if err := httputil.ValidateURL(c.BaseURL, "http", "https"); err != nil {
		return fmt.Errorf("base_url: %w", err)
	}
	if err := httputil.ValidateURL(c.Upstream.APIBase, "http", "https"); err != nil {
		return fmt.Errorf("upstream.api_base: %w", err)
	}
	if err := httputil.ValidateURL(c.Upstream.SiteBase, "http", "https"); err != nil {
		return fmt.Errorf("upstream.site_base: %w", err)
	}
	if !validQualities[c.Upstream.Quality] {
		return fmt.Errorf("unsupported quality %d", c.Upstream.Quality)
	}
	if c.Upstream.Timeout <= 0 {
		return fmt.Errorf("upstream.timeout must be positive, got %s", c.Upstream.Timeout)
	}
	return nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

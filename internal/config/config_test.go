package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Port != 30000 {
		t.Errorf("default port = %d, want 30000", cfg.Port)
	}
	if cfg.Upstream.Quality != 116 {
		t.Errorf("default quality = %d, want 116", cfg.Upstream.Quality)
	}
	if cfg.Upstream.APIBase != "https://api.bilibili.com" {
		t.Errorf("default api base = %q", cfg.Upstream.APIBase)
	}
	if cfg.Upstream.Timeout <= 0 {
		t.Error("default upstream timeout should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"port zero", func(c *Config) { c.Port = 0 }, true},
		{"port too large", func(c *Config) { c.Port = 70000 }, true},
		{"empty base url", func(c *Config) { c.BaseURL = "" }, true},
		{"base url without scheme", func(c *Config) { c.BaseURL = "localhost:30000" }, true},
		{"https base url", func(c *Config) { c.BaseURL = "https://redirect.example.com" }, false},
		{"ftp api base", func(c *Config) { c.Upstream.APIBase = "ftp://api.bilibili.com" }, true},
		{"empty site base", func(c *Config) { c.Upstream.SiteBase = "" }, true},
		{"invalid quality", func(c *Config) { c.Upstream.Quality = 4 }, true},
		{"valid 80", func(c *Config) { c.Upstream.Quality = 80 }, false},
		{"zero timeout", func(c *Config) { c.Upstream.Timeout = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromTOML(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	dir := filepath.Join(tmpDir, "biliredirect")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	content := `
port = 8080
base_url = "https://bili.example.com/"
log_level = "debug"

[upstream]
quality = 80
timeout = "4s"
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Port)
	}
	if cfg.BaseURL != "https://bili.example.com" {
		t.Errorf("base_url = %q, want trailing slash trimmed", cfg.BaseURL)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log_level = %q, want debug", cfg.LogLevel)
	}
	if cfg.Upstream.Quality != 80 {
		t.Errorf("quality = %d, want 80", cfg.Upstream.Quality)
	}
	if cfg.Upstream.Timeout != 4*time.Second {
		t.Errorf("timeout = %v, want 4s", cfg.Upstream.Timeout)
	}
	if cfg.Upstream.APIBase != "https://api.bilibili.com" {
		t.Errorf("unset api_base should keep default, got %q", cfg.Upstream.APIBase)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() should not error on missing file: %v", err)
	}
	if cfg.Port != 30000 {
		t.Errorf("missing file should return defaults, got port = %d", cfg.Port)
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("Load() should fail when an explicit config file is missing")
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("port = \"not a number\""), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load() should fail on a malformed file")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("port = 8080\n[upstream]\nquality = 80\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("BILIREDIRECT_PORT", "9090")
	t.Setenv("BILIREDIRECT_UPSTREAM_QUALITY", "64")
	t.Setenv("BILIREDIRECT_UPSTREAM_TIMEOUT", "2s")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Port != 9090 {
		t.Errorf("port = %d, want env value 9090", cfg.Port)
	}
	if cfg.Upstream.Quality != 64 {
		t.Errorf("quality = %d, want env value 64", cfg.Upstream.Quality)
	}
	if cfg.Upstream.Timeout != 2*time.Second {
		t.Errorf("timeout = %v, want 2s", cfg.Upstream.Timeout)
	}
}

func TestEnvInvalidValue(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("BILIREDIRECT_UPSTREAM_QUALITY", "3")

	if _, err := Load(""); err == nil {
		t.Fatal("Load() should reject an unsupported quality from the environment")
	}
}

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("BILIREDIRECT_LOG_LEVEL=warn\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("BILIREDIRECT_LOG_LEVEL", "")
	os.Unsetenv("BILIREDIRECT_LOG_LEVEL")
	t.Setenv("XDG_CONFIG_HOME", dir)

	if err := LoadEnvFiles(filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatalf("LoadEnvFiles() error: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("log_level = %q, want value from .env", cfg.LogLevel)
	}
}

func TestAddr(t *testing.T) {
	cfg := Default()
	cfg.Port = 30000
	if cfg.Addr() != ":30000" {
		t.Errorf("Addr() = %q, want :30000", cfg.Addr())
	}
}

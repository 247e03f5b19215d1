package config

import (
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.Port != "8000" {
		t.Errorf("Expected default port 8000, got %s", cfg.Server.Port)
	}
	if cfg.Worker.PythonBin != "python3" {
		t.Errorf("Expected python3, got %s", cfg.Worker.PythonBin)
	}
	if cfg.Worker.DefaultTimeout != 180*time.Second {
		t.Errorf("Expected 180s default timeout, got %s", cfg.Worker.DefaultTimeout)
	}
	if cfg.RateLimit.Enabled {
		t.Error("Rate limiting should be disabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("WORKER_PYTHON", "python3.12")
	t.Setenv("WORKER_DEFAULT_TIMEOUT", "90s")
	t.Setenv("WORKER_SANDBOX_DEPS", "crawl4ai,httpx")
	t.Setenv("SEARXNG_URL", "http://localhost:8888")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != "9000" {
		t.Errorf("Expected port 9000, got %s", cfg.Server.Port)
	}
	if cfg.Worker.PythonBin != "python3.12" {
		t.Errorf("Expected python3.12, got %s", cfg.Worker.PythonBin)
	}
	if cfg.Worker.DefaultTimeout != 90*time.Second {
		t.Errorf("Expected 90s, got %s", cfg.Worker.DefaultTimeout)
	}
	if len(cfg.Worker.SandboxDeps) != 2 || cfg.Worker.SandboxDeps[1] != "httpx" {
		t.Errorf("Expected [crawl4ai httpx], got %v", cfg.Worker.SandboxDeps)
	}
	if cfg.Search.SearxURL != "http://localhost:8888" {
		t.Errorf("Expected searx URL passthrough, got %s", cfg.Search.SearxURL)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"zero probe timeout", func(c *Config) { c.Worker.ProbeTimeout = 0 }, true},
		{"max below default", func(c *Config) { c.Worker.MaxTimeout = time.Second }, true},
		{"empty python", func(c *Config) { c.Worker.PythonBin = "" }, true},
		{"bad searx url", func(c *Config) { c.Search.SearxURL = "not-a-url" }, true},
		{"good searx url", func(c *Config) { c.Search.SearxURL = "https://searx.internal:8080" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"webbridge/internal/shared/utils"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Worker    WorkerConfig
	Search    SearchConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// WorkerConfig holds Python worker configuration.
//
// ScriptPath overrides the embedded worker script; when empty the embedded
// copy is materialized under ScriptDir (or the OS temp dir) on startup.
type WorkerConfig struct {
	ScriptPath     string        `envconfig:"WORKER_SCRIPT"`
	ScriptDir      string        `envconfig:"WORKER_SCRIPT_DIR"`
	PythonBin      string        `envconfig:"WORKER_PYTHON" default:"python3"`
	UVBin          string        `envconfig:"WORKER_UV" default:"uv"`
	SandboxDeps    []string      `envconfig:"WORKER_SANDBOX_DEPS" default:"crawl4ai,ddgs,httpx"`
	ProbeTimeout   time.Duration `envconfig:"WORKER_PROBE_TIMEOUT" default:"5s"`
	DefaultTimeout time.Duration `envconfig:"WORKER_DEFAULT_TIMEOUT" default:"180s"`
	MaxTimeout     time.Duration `envconfig:"WORKER_MAX_TIMEOUT" default:"600s"`
	TimeoutGrace   time.Duration `envconfig:"WORKER_TIMEOUT_GRACE" default:"30s"`
}

// SearchConfig holds aggregated-search backend configuration.
type SearchConfig struct {
	SearxURL     string        `envconfig:"SEARXNG_URL"`
	CheckTimeout time.Duration `envconfig:"SEARX_CHECK_TIMEOUT" default:"5s"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
// Disabled by default: worker invocations are already process-per-call.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		Worker: WorkerConfig{
			PythonBin:      "python3",
			UVBin:          "uv",
			SandboxDeps:    []string{"crawl4ai", "ddgs", "httpx"},
			ProbeTimeout:   5 * time.Second,
			DefaultTimeout: 180 * time.Second,
			MaxTimeout:     600 * time.Second,
			TimeoutGrace:   30 * time.Second,
		},
		Search: SearchConfig{
			CheckTimeout: 5 * time.Second,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           false,
		},
	}
}

// Validate checks cross-field constraints that envconfig tags cannot express.
func (c *Config) Validate() error {
	if c.Worker.ProbeTimeout <= 0 {
		return fmt.Errorf("worker probe timeout must be positive, got %s", c.Worker.ProbeTimeout)
	}
	if c.Worker.DefaultTimeout <= 0 {
		return fmt.Errorf("worker default timeout must be positive, got %s", c.Worker.DefaultTimeout)
	}
	if c.Worker.MaxTimeout < c.Worker.DefaultTimeout {
		return fmt.Errorf("worker max timeout %s is below default timeout %s", c.Worker.MaxTimeout, c.Worker.DefaultTimeout)
	}
	if c.Worker.PythonBin == "" {
		return fmt.Errorf("worker python binary must not be empty")
	}
	if err := utils.ValidateURL(c.Search.SearxURL, "SEARXNG_URL", false); err != nil {
		return err
	}
	return nil
}

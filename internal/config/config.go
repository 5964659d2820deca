package config

import (
	"flag"
	"log"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/virattt/openbb-financialdatasets-backend/internal/auth"
)

// Config holds the application configuration.
type Config struct {
	Listen   string `yaml:"listen"`
	DBPath   string `yaml:"database"`
	BasePath string `yaml:"base_path"`
	PidFile  string `yaml:"pid_file"`
	LogFile  string `yaml:"log_file"`

	UpstreamURL    string   `yaml:"upstream_url"`
	APIKey         string   `yaml:"api_key"`
	HTTPTimeoutSec int      `yaml:"http_timeout_seconds"`
	WSRefreshSec   int      `yaml:"ws_refresh_seconds"`
	RetentionHours int      `yaml:"retention_hours"`
	CORSOrigins    []string `yaml:"cors_origins"`

	// Parsed from command line (not YAML)
	ConfigPath string `yaml:"-"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:         "127.0.0.1:7780",
		DBPath:         "fdbackend.db",
		BasePath:       "/",
		PidFile:        "fdbackend.pid",
		LogFile:        "fdbackend.log",
		UpstreamURL:    "https://api.financialdatasets.ai",
		HTTPTimeoutSec: 30,
		WSRefreshSec:   1,
		RetentionHours: 168,
		CORSOrigins: []string{
			"https://pro.openbb.co",
			"http://localhost:1420",
		},
		ConfigPath: "config.yaml",
	}
}

// Load reads configuration with priority: defaults < config.yaml < env vars < flags.
// It expects os.Args to already have the subcommand stripped (if any).
func Load() *Config {
	cfg := DefaultConfig()

	// 1) Pre-scan for -config flag before parsing (so we know which file to read)
	configPath := configPathFromArgs(os.Args[1:], cfg.ConfigPath)

	// 2) Load YAML config file
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			log.Printf("[config] warning: failed to parse %s: %v", configPath, err)
		} else {
			log.Printf("[config] loaded %s", configPath)
		}
	}
	cfg.ConfigPath = configPath

	// 3) Environment variables override YAML
	if v := os.Getenv("FDBACKEND_LISTEN"); v != "" {
		cfg.Listen = v
	}
	if v := os.Getenv("FDBACKEND_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("FDBACKEND_BASE_PATH"); v != "" {
		cfg.BasePath = v
	}
	if v := os.Getenv("FDBACKEND_UPSTREAM_URL"); v != "" {
		cfg.UpstreamURL = v
	}
	if v := os.Getenv(auth.EnvKey); v != "" {
		cfg.APIKey = v
	}

	// 4) Flags override everything
	flag.StringVar(&cfg.ConfigPath, "config", cfg.ConfigPath, "Path to config.yaml")
	flag.StringVar(&cfg.Listen, "listen", cfg.Listen, "HTTP listen address (host:port)")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path")
	flag.StringVar(&cfg.BasePath, "base-path", cfg.BasePath, "Base URL path for reverse proxy")
	flag.StringVar(&cfg.PidFile, "pid-file", cfg.PidFile, "PID file path")
	flag.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Log file path")
	flag.StringVar(&cfg.UpstreamURL, "upstream", cfg.UpstreamURL, "Financial Datasets API base URL")
	flag.Parse()

	// Normalize base_path
	cfg.BasePath = normalizeBasePath(cfg.BasePath)

	return cfg
}

// configPathFromArgs finds the -config value without a full flag parse, so
// Load knows which file to read before the other flags apply.
func configPathFromArgs(args []string, fallback string) string {
	path := fallback
	for i, arg := range args {
		if arg == "-config" || arg == "--config" {
			if i+1 < len(args) {
				path = args[i+1]
			}
		} else if strings.HasPrefix(arg, "-config=") || strings.HasPrefix(arg, "--config=") {
			path = strings.SplitN(arg, "=", 2)[1]
		}
	}
	return path
}

// normalizeBasePath ensures the base path starts with "/" and has no trailing "/".
// Returns "/" for empty or root paths.
func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" || p == "/" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	p = strings.TrimRight(p, "/")
	return p
}

// Package common provides shared utilities for yfin
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Transport names accepted for the MCP server.
const (
	TransportStdio          = "stdio"
	TransportSSE            = "sse"
	TransportStreamableHTTP = "streamable-http"
)

// Config holds all configuration for yfin
type Config struct {
	Environment string        `toml:"environment"`
	Transport   string        `toml:"transport"` // stdio, sse, or streamable-http
	Server      ServerConfig  `toml:"server"`
	Clients     ClientsConfig `toml:"clients"`
	Logging     LoggingConfig `toml:"logging"`
}

// ServerConfig holds listener configuration for the HTTP transports
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	Yahoo YahooConfig `toml:"yahoo"`
}

// YahooConfig holds Yahoo Finance API configuration
type YahooConfig struct {
	BaseURL   string `toml:"base_url"`
	Timeout   string `toml:"timeout"`
	UserAgent string `toml:"user_agent"`
}

// GetTimeout parses and returns the timeout duration
func (c *YahooConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `toml:"level"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Transport:   TransportStdio,
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 4270,
		},
		Clients: ClientsConfig{
			Yahoo: YahooConfig{
				BaseURL: "https://query2.finance.yahoo.com",
				Timeout: "30s",
			},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides.
// Later files override earlier ones; missing files are skipped.
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)
	config.Transport = normalizeTransport(config.Transport)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("YFIN_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("YFIN_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("YFIN_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("YFIN_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if transport := os.Getenv("MCP_TRANSPORT"); transport != "" {
		config.Transport = transport
	}

	if baseURL := os.Getenv("YFIN_YAHOO_BASE_URL"); baseURL != "" {
		config.Clients.Yahoo.BaseURL = baseURL
	}
}

// normalizeTransport maps a transport name to one of the supported values,
// falling back to stdio for anything unrecognized.
func normalizeTransport(transport string) string {
	switch strings.ToLower(strings.TrimSpace(transport)) {
	case TransportSSE:
		return TransportSSE
	case TransportStreamableHTTP:
		return TransportStreamableHTTP
	default:
		return TransportStdio
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}

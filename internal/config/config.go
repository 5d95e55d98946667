// Package config provides YAML-based configuration management for the
// escape service. A missing config file is not an error; defaults apply.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AppConfig represents the root configuration structure
type AppConfig struct {
	// Server configuration
	Server ServerConfig `yaml:"server"`

	// Engine configuration
	Engine EngineConfig `yaml:"engine"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port                 int    `yaml:"port"`
	BindAddress          string `yaml:"bind_address"`
	EnableCORS           bool   `yaml:"enable_cors"`
	AllowOrigins         string `yaml:"allow_origins"`
	ReadTimeout          int    `yaml:"read_timeout_seconds"`
	WriteTimeout         int    `yaml:"write_timeout_seconds"`
	IdleTimeout          int    `yaml:"idle_timeout_seconds"`
	BodyLimit            string `yaml:"body_limit"`
	EnableRequestLogging bool   `yaml:"enable_request_logging"`
}

// EngineConfig contains service-level engine defaults and limits
type EngineConfig struct {
	// Defaults applied when the request omits the field.
	DefaultProfile       string `yaml:"default_profile"`
	DefaultResponseLevel string `yaml:"default_response_level"`

	// Hard cap on parsed rows, applied at the transport boundary. 0 = off.
	MaxRowsCap int `yaml:"max_rows_cap"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:                 8090,
			BindAddress:          "0.0.0.0",
			EnableCORS:           true,
			AllowOrigins:         "*",
			ReadTimeout:          30,
			WriteTimeout:         30,
			IdleTimeout:          120,
			BodyLimit:            "32M",
			EnableRequestLogging: true,
		},
		Engine: EngineConfig{
			DefaultProfile:       "excel",
			DefaultResponseLevel: "simple",
			MaxRowsCap:           0,
		},
	}
}

// LoadConfig reads configuration from a YAML file. A nonexistent file yields
// the defaults; a malformed file is an error.
func LoadConfig(path string) (*AppConfig, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// normalize backfills empty values with defaults after unmarshalling.
func (c *AppConfig) normalize() {
	def := DefaultConfig()
	if c.Server.Port == 0 {
		c.Server.Port = def.Server.Port
	}
	if c.Server.BindAddress == "" {
		c.Server.BindAddress = def.Server.BindAddress
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = def.Server.ReadTimeout
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = def.Server.WriteTimeout
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = def.Server.IdleTimeout
	}
	if c.Server.BodyLimit == "" {
		c.Server.BodyLimit = def.Server.BodyLimit
	}
	if c.Engine.DefaultProfile == "" {
		c.Engine.DefaultProfile = def.Engine.DefaultProfile
	}
	if c.Engine.DefaultResponseLevel == "" {
		c.Engine.DefaultResponseLevel = def.Engine.DefaultResponseLevel
	}
}

func (c *AppConfig) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Engine.MaxRowsCap < 0 {
		return fmt.Errorf("max_rows_cap must be >= 0, got %d", c.Engine.MaxRowsCap)
	}
	return nil
}

// GetServerAddr returns the host:port the server listens on
func (c *AppConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.BindAddress, c.Server.Port)
}

// Package config provides YAML-based configuration for the document Q&A server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// AppConfig represents the root configuration structure
type AppConfig struct {
	Server    ServerConfig    `yaml:"server"`
	Documents DocumentsConfig `yaml:"documents"`
	Answerer  AnswererConfig  `yaml:"answerer"`
	Advanced  AdvancedConfig  `yaml:"advanced"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port         int    `yaml:"port"`
	BindAddress  string `yaml:"bind_address"`
	EnableCORS   bool   `yaml:"enable_cors"`
	AllowOrigins string `yaml:"allow_origins"`
	ReadTimeout  int    `yaml:"read_timeout_seconds"`
	WriteTimeout int    `yaml:"write_timeout_seconds"`
	IdleTimeout  int    `yaml:"idle_timeout_seconds"`
	BodyLimit    string `yaml:"body_limit"`
}

// DocumentsConfig bounds the in-memory document store
type DocumentsConfig struct {
	CacheSize  int `yaml:"cache_size"`
	TTLMinutes int `yaml:"ttl_minutes"`
}

// AnswererConfig selects the collaborator behind /api/chat
type AnswererConfig struct {
	Provider       string `yaml:"provider"` // excerpt, gemini or remote
	Model          string `yaml:"model"`
	APIKey         string `yaml:"api_key"`
	Endpoint       string `yaml:"endpoint"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// AdvancedConfig contains advanced/tuning options
type AdvancedConfig struct {
	EnableRequestLogging bool `yaml:"enable_request_logging"`
	EnableCompression    bool `yaml:"enable_compression"`
	CompressionLevel     int  `yaml:"compression_level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:         8089,
			BindAddress:  "0.0.0.0",
			EnableCORS:   true,
			AllowOrigins: "*",
			ReadTimeout:  30,
			WriteTimeout: 90,
			IdleTimeout:  120,
			BodyLimit:    "25M",
		},
		Documents: DocumentsConfig{
			CacheSize:  256,
			TTLMinutes: 60,
		},
		Answerer: AnswererConfig{
			Provider:       "excerpt",
			Model:          "gemini-2.0-flash",
			TimeoutSeconds: 60,
		},
		Advanced: AdvancedConfig{
			EnableRequestLogging: true,
			EnableCompression:    true,
			CompressionLevel:     5,
		},
	}
}

// LoadConfig loads configuration from a YAML file, creating it with defaults
// when missing. Values from .env and the process environment win over the file.
func LoadConfig(configPath string) (*AppConfig, error) {
	_ = godotenv.Load()

	config := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := config.Save(configPath); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	} else {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	config.applyEnvironmentOverrides()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Save writes the configuration as YAML
func (c *AppConfig) Save(configPath string) error {
	output, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if dir := filepath.Dir(configPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	header := []byte("# docqa server configuration\n# This file is auto-generated on first run\n\n")
	if err := os.WriteFile(configPath, append(header, output...), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks values that would otherwise fail later at startup
func (c *AppConfig) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	switch strings.ToLower(c.Answerer.Provider) {
	case "", "excerpt":
	case "gemini":
		if c.Answerer.APIKey == "" {
			return fmt.Errorf("answerer provider gemini requires an api key (GEMINI_API_KEY)")
		}
	case "remote":
		if c.Answerer.Endpoint == "" {
			return fmt.Errorf("answerer provider remote requires an endpoint (DOCQA_ANSWER_URL)")
		}
	default:
		return fmt.Errorf("unknown answerer provider: %s", c.Answerer.Provider)
	}
	return nil
}

// applyEnvironmentOverrides allows environment variables to override config values
func (c *AppConfig) applyEnvironmentOverrides() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	if provider := os.Getenv("DOCQA_ANSWERER"); provider != "" {
		c.Answerer.Provider = provider
	}

	if endpoint := os.Getenv("DOCQA_ANSWER_URL"); endpoint != "" {
		c.Answerer.Endpoint = endpoint
	}

	if model := os.Getenv("DOCQA_MODEL"); model != "" {
		c.Answerer.Model = model
	}

	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.Answerer.APIKey = key
	}
}

// GetServerAddr returns the server bind address
func (c *AppConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.BindAddress, c.Server.Port)
}

// GetAllowOrigins splits the comma separated origin list, defaulting to "*"
func (c *AppConfig) GetAllowOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.Server.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// GetDocumentTTL returns how long an extracted document stays addressable
func (c *AppConfig) GetDocumentTTL() time.Duration {
	return time.Duration(c.Documents.TTLMinutes) * time.Minute
}

// GetAnswerTimeout returns the per-question deadline for the answerer
func (c *AppConfig) GetAnswerTimeout() time.Duration {
	return time.Duration(c.Answerer.TimeoutSeconds) * time.Second
}

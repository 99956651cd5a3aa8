package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
	Render    RenderConfig    `yaml:"render"`
	MCP       MCPConfig       `yaml:"mcp"`
	Import    ImportConfig    `yaml:"import"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// RenderConfig controls how pages are assembled.
type RenderConfig struct {
	// SectionTimeout bounds how long a page waits for a similar-exercises
	// section before sending it as a loader that fetches the fragment later.
	SectionTimeout time.Duration `yaml:"section_timeout"`
	SimilarLimit   int           `yaml:"similar_limit"`
	PageSize       int           `yaml:"page_size"`
}

type MCPConfig struct {
	Enabled bool `yaml:"enabled"`
}

type ImportConfig struct {
	StateDir string `yaml:"state_dir"`
}

const (
	DefaultSectionTimeout = 750 * time.Millisecond
	DefaultSimilarLimit   = 12
	DefaultPageSize       = 9
	DefaultImportStateDir = ".fitclub"
)

// DSN returns a PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode)
}

// Load reads config from a YAML file, then applies environment variable overrides.
// Env vars use the prefix FITCLUB_ and underscore-separated paths:
//
//	FITCLUB_SERVER_HOST, FITCLUB_SERVER_PORT,
//	FITCLUB_DB_HOST, FITCLUB_DB_PORT, FITCLUB_DB_NAME,
//	FITCLUB_DB_USER, FITCLUB_DB_PASSWORD, FITCLUB_DB_SSLMODE,
//	FITCLUB_AUTH_API_KEY, FITCLUB_TAILSCALE_ENABLED,
//	FITCLUB_RENDER_SECTION_TIMEOUT, FITCLUB_MCP_ENABLED
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FITCLUB_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("FITCLUB_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("FITCLUB_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("FITCLUB_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("FITCLUB_DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("FITCLUB_DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("FITCLUB_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("FITCLUB_DB_SSLMODE"); v != "" {
		cfg.Database.SSLMode = v
	}
	if v := os.Getenv("FITCLUB_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
	if v := os.Getenv("FITCLUB_TAILSCALE_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Tailscale.Enabled = enabled
		}
	}
	if v := os.Getenv("FITCLUB_RENDER_SECTION_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Render.SectionTimeout = d
		}
	}
	if v := os.Getenv("FITCLUB_MCP_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.MCP.Enabled = enabled
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Render.SectionTimeout == 0 {
		cfg.Render.SectionTimeout = DefaultSectionTimeout
	}
	if cfg.Render.SimilarLimit == 0 {
		cfg.Render.SimilarLimit = DefaultSimilarLimit
	}
	if cfg.Render.PageSize == 0 {
		cfg.Render.PageSize = DefaultPageSize
	}
	if cfg.Import.StateDir == "" {
		cfg.Import.StateDir = DefaultImportStateDir
	}
	if cfg.Tailscale.Enabled && cfg.Tailscale.Hostname == "" {
		cfg.Tailscale.Hostname = "fitclub"
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 && !c.Tailscale.Enabled {
		return fmt.Errorf("server.port is required")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.Port == 0 {
		return fmt.Errorf("database.port is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database.name is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database.user is required")
	}
	if c.Auth.APIKey == "" {
		return fmt.Errorf("auth.api_key is required")
	}
	if c.Render.SectionTimeout < 0 {
		return fmt.Errorf("render.section_timeout must not be negative")
	}
	if c.Render.SimilarLimit < 0 {
		return fmt.Errorf("render.similar_limit must not be negative")
	}
	if c.Render.PageSize < 0 || c.Render.PageSize > 100 {
		return fmt.Errorf("render.page_size must be between 1 and 100")
	}
	return nil
}

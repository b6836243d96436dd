package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Storage   StorageConfig   `yaml:"storage"`
	Log       LogConfig       `yaml:"log"`
	Auth      AuthConfig      `yaml:"auth"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// StorageConfig selects and configures the persistence gateway backend
type StorageConfig struct {
	Type string `yaml:"type"` // "memory", "file", "sqlite" or "postgres"
	Dir  string `yaml:"dir"`  // For file storage
	Path string `yaml:"path"` // For sqlite storage

	// Postgres connection settings
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// AuthConfig contains mock login and session token settings
type AuthConfig struct {
	TestEmail           string `yaml:"test_email"`
	TestCode            string `yaml:"test_code"`
	JWTSecret           string `yaml:"jwt_secret"`
	SessionExpiryMinute int    `yaml:"session_expiry_minutes"`
}

// CatalogConfig controls mock catalog generation
type CatalogConfig struct {
	Seed int64 `yaml:"seed"`
}

// SchedulerConfig contains cron schedule settings for storage maintenance
type SchedulerConfig struct {
	PruneEmptyScopes   string `yaml:"prune_empty_scopes"`
	ReportStorageStats string `yaml:"report_storage_stats"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Storage
	if val := os.Getenv("STORAGE_TYPE"); val != "" {
		c.Storage.Type = val
	}
	if val := os.Getenv("STORAGE_DIR"); val != "" {
		c.Storage.Dir = val
	}
	if val := os.Getenv("STORAGE_PATH"); val != "" {
		c.Storage.Path = val
	}
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Storage.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Storage.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Storage.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Storage.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Storage.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Storage.SSLMode = val
	}

	// Auth
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.Auth.JWTSecret = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}
}

// Validate checks the configuration and fills in defaults
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case "", "file":
		c.Storage.Type = "file"
		if c.Storage.Dir == "" {
			c.Storage.Dir = "./data"
		}
	case "memory":
	case "sqlite":
		if c.Storage.Path == "" {
			return fmt.Errorf("sqlite storage requires a path")
		}
	case "postgres":
		if c.Storage.Host == "" {
			return fmt.Errorf("postgres storage requires a host")
		}
		if c.Storage.User == "" {
			return fmt.Errorf("postgres storage requires a user")
		}
		if c.Storage.Database == "" {
			return fmt.Errorf("postgres storage requires a database name")
		}
		if c.Storage.Port <= 0 || c.Storage.Port > 65535 {
			return fmt.Errorf("invalid postgres port: %d", c.Storage.Port)
		}
		if c.Storage.SSLMode == "" {
			c.Storage.SSLMode = "disable"
		}
	default:
		return fmt.Errorf("unsupported storage type: %s", c.Storage.Type)
	}

	// Log defaults
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	// Mock login defaults mirror the demo account
	if c.Auth.TestEmail == "" {
		c.Auth.TestEmail = "test@example.com"
	}
	if c.Auth.TestCode == "" {
		c.Auth.TestCode = "123456"
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}
	if c.Auth.SessionExpiryMinute <= 0 {
		c.Auth.SessionExpiryMinute = 60
	}

	// Scheduler defaults
	if c.Scheduler.PruneEmptyScopes == "" {
		c.Scheduler.PruneEmptyScopes = "0 0 3 * * *" // 3 AM UTC
	}
	if c.Scheduler.ReportStorageStats == "" {
		c.Scheduler.ReportStorageStats = "0 0 * * * *" // Hourly
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Storage.User,
		c.Storage.Password,
		c.Storage.Host,
		c.Storage.Port,
		c.Storage.Database,
		c.Storage.SSLMode,
	)
}

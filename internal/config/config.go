package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Store drivers
const (
	StoreMemory   = "memory"
	StoreFile     = "file"
	StorePostgres = "postgres"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port            string   `yaml:"port" env:"SERVER_PORT"`
		Mode            string   `yaml:"mode" env:"SERVER_MODE"`
		AllowedOrigins  []string `yaml:"allowed_origins" env:"SERVER_ALLOWED_ORIGINS"`
		ShutdownTimeout string   `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
	} `yaml:"server"`

	Store struct {
		Driver        string `yaml:"driver" env:"STORE_DRIVER"`
		Path          string `yaml:"path" env:"STORE_PATH"`
		NotifyChannel string `yaml:"notify_channel" env:"STORE_NOTIFY_CHANNEL"`
	} `yaml:"store"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	Session struct {
		Secret string `yaml:"secret" env:"SESSION_SECRET"`
		TTL    string `yaml:"ttl" env:"SESSION_TTL"`
		Issuer string `yaml:"issuer" env:"SESSION_ISSUER"`
	} `yaml:"session"`

	GenAI struct {
		APIKey  string `yaml:"api_key" env:"GEMINI_API_KEY"`
		Model   string `yaml:"model" env:"GEMINI_MODEL"`
		Timeout string `yaml:"timeout" env:"GEMINI_TIMEOUT"`
	} `yaml:"genai"`

	School struct {
		Name    string   `yaml:"name" env:"SCHOOL_NAME"`
		Address string   `yaml:"address" env:"SCHOOL_ADDRESS"`
		Town    string   `yaml:"town" env:"SCHOOL_TOWN"`
		Phone   string   `yaml:"phone" env:"SCHOOL_PHONE"`
		Values  []string `yaml:"values" env:"SCHOOL_VALUES"`
	} `yaml:"school"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from .env files, a YAML file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// A missing .env is normal outside development
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	// Server defaults
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.ShutdownTimeout = "5s"

	// Store defaults
	config.Store.Driver = StoreMemory
	config.Store.Path = "data"
	config.Store.NotifyChannel = "qmc_documents"

	// Database defaults
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "qmc"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 2
	config.Database.MaxOpenConns = 10
	config.Database.ConnMaxLifetime = "1h"

	// Session defaults
	config.Session.TTL = "0s"
	config.Session.Issuer = "qmc-portal"

	// GenAI defaults
	config.GenAI.Model = "gemini-2.0-flash"
	config.GenAI.Timeout = "15s"

	// School defaults
	config.School.Name = "Queen Marvellous College"
	config.School.Address = "Pastor Tihunnu Street, Ikoga Zebbe, Ikoga Badagry"
	config.School.Town = "Ikoga Badagry"
	config.School.Phone = "07015002169"
	config.School.Values = []string{"Excellence", "Integrity", "Innovation"}

	// Logging defaults
	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	switch config.Store.Driver {
	case StoreMemory:
	case StoreFile:
		if config.Store.Path == "" {
			return fmt.Errorf("store path is required for the file driver")
		}
	case StorePostgres:
		if config.Database.Host == "" {
			return fmt.Errorf("database host is required for the postgres driver")
		}
		if _, err := time.ParseDuration(config.Database.ConnMaxLifetime); err != nil {
			return fmt.Errorf("invalid database connection max lifetime: %w", err)
		}
	default:
		return fmt.Errorf("unknown store driver %q", config.Store.Driver)
	}

	if config.Session.Secret == "" {
		return fmt.Errorf("session secret is required")
	}

	durations := map[string]string{
		"session ttl":      config.Session.TTL,
		"genai timeout":    config.GenAI.Timeout,
		"shutdown timeout": config.Server.ShutdownTimeout,
	}
	for name, value := range durations {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s format: %w", name, err)
		}
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// IsProduction reports whether the server runs in release mode
func (c *Config) IsProduction() bool {
	mode := strings.ToLower(c.Server.Mode)
	return mode == "production" || mode == "release"
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"mediaUserApp/models"
)

// Config holds all application configuration.
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	GRPC      GRPCConfig      `yaml:"grpc"`
	Auth      AuthConfig      `yaml:"auth"`
	Bootstrap BootstrapConfig `yaml:"bootstrap"`
	Log       LogConfig       `yaml:"log"`
}

// DatabaseConfig contains database-related settings.
type DatabaseConfig struct {
	Path string `yaml:"path"` // SQLite database file path
}

// GRPCConfig contains gRPC server settings.
type GRPCConfig struct {
	Address string `yaml:"address"` // listen address, loopback by default
}

// AuthConfig contains session token settings.
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
}

// BootstrapConfig names the administrator created on first run.
type BootstrapConfig struct {
	AdminUsername string `yaml:"admin_username"`
	AdminPassword string `yaml:"admin_password"`
}

// LogConfig controls the logger. File enables rotating file output.
type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"` // "text" or "json"
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

const configFileEnv = "MEDIA_CONFIG_FILE"

func defaults() *Config {
	return &Config{
		Database: DatabaseConfig{Path: "MediaUserApp.db"},
		GRPC:     GRPCConfig{Address: "127.0.0.1:50051"},
		Auth:     AuthConfig{TokenTTL: 12 * time.Hour},
		Bootstrap: BootstrapConfig{
			AdminUsername: models.DefaultAdminUsername,
			AdminPassword: models.DefaultAdminPassword,
		},
		Log: LogConfig{Level: "info", Format: "text", MaxSizeMB: 10, MaxBackups: 3},
	}
}

// Load reads the optional YAML file named by MEDIA_CONFIG_FILE, then applies
// environment overrides. JWT_SECRET (or auth.jwt_secret) is required.
func Load() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set; required for production")
	}
	return cfg, nil
}

// LoadWithDefaults is like Load but uses a fixed development JWT secret when none is set.
// WARNING: Only use in development! Use Load() in production.
func LoadWithDefaults() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = "dev-secret-change-me"
	}
	return cfg, nil
}

func load() (*Config, error) {
	cfg := defaults()
	if path, ok := os.LookupEnv(configFileEnv); ok && path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	// Login trims its input, so untrimmed bootstrap credentials could never match.
	cfg.Bootstrap.AdminUsername = strings.TrimSpace(cfg.Bootstrap.AdminUsername)
	cfg.Bootstrap.AdminPassword = strings.TrimSpace(cfg.Bootstrap.AdminPassword)
	if cfg.Bootstrap.AdminUsername == "" || cfg.Bootstrap.AdminPassword == "" {
		return nil, fmt.Errorf("bootstrap administrator username and password must not be empty")
	}
	return cfg, nil
}

// loadFile decodes YAML on top of cfg; keys absent from the file keep their defaults.
func loadFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.Database.Path = getEnv("DB_PATH", cfg.Database.Path)
	cfg.GRPC.Address = getEnv("GRPC_ADDRESS", cfg.GRPC.Address)
	cfg.Auth.JWTSecret = getEnv("JWT_SECRET", cfg.Auth.JWTSecret)
	cfg.Bootstrap.AdminUsername = getEnv("ADMIN_USERNAME", cfg.Bootstrap.AdminUsername)
	cfg.Bootstrap.AdminPassword = getEnv("ADMIN_PASSWORD", cfg.Bootstrap.AdminPassword)
	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnv("LOG_FORMAT", cfg.Log.Format)
	cfg.Log.File = getEnv("LOG_FILE", cfg.Log.File)

	if v, ok := os.LookupEnv("TOKEN_TTL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid duration for TOKEN_TTL: %w", err)
		}
		cfg.Auth.TokenTTL = d
	}
	var err error
	if cfg.Log.MaxSizeMB, err = getEnvInt("LOG_MAX_SIZE_MB", cfg.Log.MaxSizeMB); err != nil {
		return err
	}
	if cfg.Log.MaxBackups, err = getEnvInt("LOG_MAX_BACKUPS", cfg.Log.MaxBackups); err != nil {
		return err
	}
	return nil
}

// getEnv retrieves an environment variable with a default fallback.
func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

// getEnvInt retrieves an environment variable as an integer with a default fallback.
func getEnvInt(key string, defaultVal int) (int, error) {
	if value, exists := os.LookupEnv(key); exists {
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid integer for %s: %w", key, err)
		}
		return intVal, nil
	}
	return defaultVal, nil
}

// String returns a string representation of the config (sensitive values are masked).
func (c *Config) String() string {
	return fmt.Sprintf("Config{DB: %s, gRPC: %s, Admin: %s, Log: %s, Auth: *** (masked) ***}",
		c.Database.Path, c.GRPC.Address, c.Bootstrap.AdminUsername, c.Log.Level)
}

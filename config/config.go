package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Catalog sources understood by the API and the CLI.
const (
	CatalogEmbedded = "embedded"
	CatalogFile     = "file"
	CatalogS3       = "s3"
	CatalogDatabase = "database"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort     string
	ServerHost     string
	AllowedOrigins []string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBPath     string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Operator tokens for the admin routes
	JWTSecret string

	// Food catalog
	CatalogSource string
	CatalogPath   string
	S3Bucket      string
	S3Key         string
	AWSRegion     string

	// Rule thresholds file, see LoadRulesConfig
	RulesFile string

	RateLimit       int
	RateLimitWindow time.Duration
	CacheTTL        time.Duration
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := defaults()

	switch env {
	case CI:
		loadCIConfig(cfg)
	case Development, Test:
		if err := LoadDotEnv(); err != nil {
			return nil, fmt.Errorf("failed to load development configuration: %w", err)
		}
		loadDevConfig(cfg)
	case Production:
		loadProdConfig(cfg)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		ServerPort:      "8080",
		ServerHost:      "0.0.0.0",
		AllowedOrigins:  []string{"http://localhost:5173"},
		DBDriver:        "sqlite",
		DBPort:          "5432",
		DBSSLMode:       "disable",
		DBPath:          "nutriplan.db",
		RedisPort:       "6379",
		CatalogSource:   CatalogEmbedded,
		RateLimit:       60,
		RateLimitWindow: time.Minute,
		CacheTTL:        time.Hour,
	}
}

// loadCIConfig reads everything from environment variables; CI has no secrets directory.
func loadCIConfig(cfg *Config) {
	apply(cfg, func(name string) string {
		return os.Getenv(strings.ToUpper(name))
	})
}

// loadDevConfig prefers environment variables and falls back to Docker secrets.
func loadDevConfig(cfg *Config) {
	apply(cfg, func(name string) string {
		if v := os.Getenv(strings.ToUpper(name)); v != "" {
			return v
		}
		return readSecret(name)
	})
}

// loadProdConfig prefers Docker secrets and falls back to environment variables.
func loadProdConfig(cfg *Config) {
	apply(cfg, func(name string) string {
		if v := readSecret(name); v != "" {
			return v
		}
		return os.Getenv(strings.ToUpper(name))
	})
}

// apply copies every value the lookup knows about onto cfg, leaving defaults in place otherwise.
func apply(cfg *Config, lookup func(name string) string) {
	set := func(dst *string, name string) {
		if v := lookup(name); v != "" {
			*dst = v
		}
	}

	set(&cfg.ServerPort, "server_port")
	set(&cfg.ServerHost, "server_host")
	set(&cfg.DBDriver, "db_driver")
	set(&cfg.DBHost, "db_host")
	set(&cfg.DBPort, "db_port")
	set(&cfg.DBUser, "db_user")
	set(&cfg.DBPassword, "db_password")
	set(&cfg.DBName, "db_name")
	set(&cfg.DBSSLMode, "db_ssl_mode")
	set(&cfg.DBPath, "db_path")
	set(&cfg.RedisHost, "redis_host")
	set(&cfg.RedisPort, "redis_port")
	set(&cfg.RedisPassword, "redis_password")
	set(&cfg.RedisURL, "redis_url")
	set(&cfg.JWTSecret, "jwt_secret")
	set(&cfg.CatalogSource, "catalog_source")
	set(&cfg.CatalogPath, "catalog_path")
	set(&cfg.S3Bucket, "s3_bucket_name")
	set(&cfg.S3Key, "s3_catalog_key")
	set(&cfg.AWSRegion, "aws_region")
	set(&cfg.RulesFile, "rules_file")

	if v := lookup("allowed_origins"); v != "" {
		cfg.AllowedOrigins = splitList(v)
	}
	if v := lookup("redis_db"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RedisDB = n
		}
	}
	if v := lookup("rate_limit"); v != "" {
		// ValidateConfig reports a non-positive limit
		n, err := strconv.Atoi(v)
		if err != nil {
			n = -1
		}
		cfg.RateLimit = n
	}
	if v := lookup("rate_limit_window"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RateLimitWindow = d
		}
	}
	if v := lookup("cache_ttl"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.CacheTTL = d
		}
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

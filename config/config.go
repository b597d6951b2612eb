package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Database drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// devShareSecret signs share links outside production when no secret is configured.
const devShareSecret = "mealwise-dev-share-secret"

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerHost  string
	ServerPort  string
	CORSOrigins []string

	// Database configuration
	DBDriver   string
	DBPath     string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Share links
	JWTSecret string
	ShareTTL  time.Duration

	// Recipe image storage
	S3BucketName string
	AWSRegion    string
	S3PublicRead bool

	LogLevel  string
	LogFormat string

	RateLimitPerHour   int
	PlannerRecentWeeks int
}

// LoadConfig reads the environment (and a local .env in development), falls
// back to Docker secrets for sensitive values, and validates the result.
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	if env == Development {
		// a missing .env is fine
		_ = godotenv.Load()
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		Environment:        env,
		ServerHost:         v.GetString("server_host"),
		ServerPort:         v.GetString("server_port"),
		CORSOrigins:        splitList(v.GetString("cors_origins")),
		DBDriver:           strings.ToLower(v.GetString("db_driver")),
		DBPath:             v.GetString("db_path"),
		DBHost:             v.GetString("db_host"),
		DBPort:             v.GetString("db_port"),
		DBUser:             secretOr(v, "db_user"),
		DBPassword:         secretOr(v, "db_password"),
		DBName:             v.GetString("db_name"),
		DBSSLMode:          v.GetString("db_ssl_mode"),
		RedisURL:           secretOr(v, "redis_url"),
		RedisHost:          v.GetString("redis_host"),
		RedisPort:          v.GetString("redis_port"),
		RedisPassword:      secretOr(v, "redis_password"),
		RedisDB:            v.GetInt("redis_db"),
		JWTSecret:          secretOr(v, "jwt_secret"),
		ShareTTL:           v.GetDuration("share_ttl"),
		S3BucketName:       v.GetString("s3_bucket_name"),
		AWSRegion:          v.GetString("aws_region"),
		S3PublicRead:       v.GetBool("s3_public_read"),
		LogLevel:           v.GetString("log_level"),
		LogFormat:          v.GetString("log_format"),
		RateLimitPerHour:   v.GetInt("rate_limit_per_hour"),
		PlannerRecentWeeks: v.GetInt("planner_recent_weeks"),
	}

	// CI hands sensitive values over as TEST_* variables
	if env == CI {
		if cfg.DBPassword == "" {
			cfg.DBPassword = os.Getenv("TEST_DB_PASSWORD")
		}
		if cfg.JWTSecret == "" {
			cfg.JWTSecret = os.Getenv("TEST_JWT_SECRET")
		}
		if cfg.RedisPassword == "" {
			cfg.RedisPassword = os.Getenv("TEST_REDIS_PASSWORD")
		}
	}
	if cfg.JWTSecret == "" && !env.IsProduction() {
		cfg.JWTSecret = devShareSecret
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server_host", "0.0.0.0")
	v.SetDefault("server_port", "8080")
	v.SetDefault("cors_origins", "*")

	v.SetDefault("db_driver", DriverSQLite)
	v.SetDefault("db_path", "mealwise.db")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_name", "mealwise")
	v.SetDefault("db_ssl_mode", "disable")

	v.SetDefault("redis_port", "6379")
	v.SetDefault("redis_db", 0)

	v.SetDefault("share_ttl", "168h")
	v.SetDefault("aws_region", "us-east-1")
	v.SetDefault("s3_public_read", false)

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	v.SetDefault("rate_limit_per_hour", 20)
	v.SetDefault("planner_recent_weeks", 2)
}

// secretOr prefers the environment and falls back to a Docker secret file
func secretOr(v *viper.Viper, key string) string {
	if value := v.GetString(key); value != "" {
		return value
	}
	return readSecret(key)
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

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Addr is the host:port the HTTP server listens on
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.ServerHost, c.ServerPort)
}

// PostgresDSN returns the lib/pq connection string
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// RedisConfigured reports whether any Redis endpoint was supplied
func (c *Config) RedisConfigured() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

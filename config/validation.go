package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in one pass
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = e.Error()
	}
	return strings.Join(lines, "\n")
}

// ConfigRequirements defines required configuration for each environment
type ConfigRequirements struct {
	// Postgres rejects the SQLite driver
	Postgres bool
	// Secret requires an explicit share-link signing secret
	Secret bool
	// Redis requires a Redis endpoint
	Redis bool
}

var requirements = map[Environment]ConfigRequirements{
	Development: {},
	Test:        {},
	CI:          {Secret: true},
	Production:  {Postgres: true, Secret: true, Redis: true},
}

// ValidateConfig checks the configuration against the requirements of its environment
func ValidateConfig(cfg *Config) error {
	reqs := requirements[cfg.Environment]
	var errs ValidationErrors
	add := func(field, format string, args ...interface{}) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port < 1 || port > 65535 {
		add("SERVER_PORT", "must be a port number, got %q", cfg.ServerPort)
	}

	switch cfg.DBDriver {
	case DriverSQLite:
		if reqs.Postgres {
			add("DB_DRIVER", "sqlite is not allowed in %s", cfg.Environment)
		}
		if cfg.DBPath == "" {
			add("DB_PATH", "is required for sqlite")
		}
	case DriverPostgres:
		for field, value := range map[string]string{
			"DB_HOST": cfg.DBHost,
			"DB_PORT": cfg.DBPort,
			"DB_USER": cfg.DBUser,
			"DB_NAME": cfg.DBName,
		} {
			if value == "" {
				add(field, "is required for postgres")
			}
		}
		if reqs.Secret && cfg.DBPassword == "" {
			add("DB_PASSWORD", "is required in %s", cfg.Environment)
		}
	default:
		add("DB_DRIVER", "must be sqlite or postgres, got %q", cfg.DBDriver)
	}

	if reqs.Secret && (cfg.JWTSecret == "" || cfg.JWTSecret == devShareSecret) {
		add("JWT_SECRET", "is required in %s", cfg.Environment)
	}
	if reqs.Redis && !cfg.RedisConfigured() {
		add("REDIS_URL", "REDIS_URL or REDIS_HOST is required in %s", cfg.Environment)
	}
	if cfg.ShareTTL <= 0 {
		add("SHARE_TTL", "must be positive")
	}
	if cfg.RateLimitPerHour <= 0 {
		add("RATE_LIMIT_PER_HOUR", "must be positive")
	}
	if cfg.PlannerRecentWeeks < 0 {
		add("PLANNER_RECENT_WEEKS", "must not be negative")
	}
	switch cfg.LogFormat {
	case "json", "console":
	default:
		add("LOG_FORMAT", "must be json or console, got %q", cfg.LogFormat)
	}

	if len(errs) > 0 {
		// map iteration above is unordered
		sort.SliceStable(errs, func(i, j int) bool { return errs[i].Field < errs[j].Field })
		return errs
	}
	return nil
}

package config

import (
	"fmt"
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

// ValidateConfig checks every setting and reports all problems at once.
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()
	var errs []ValidationError

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port <= 0 || port > 65535 {
		errs = append(errs, ValidationError{"SERVER_PORT", "must be a port number"})
	}

	switch cfg.DBDriver {
	case "sqlite":
		if cfg.DBPath == "" {
			errs = append(errs, ValidationError{"DB_PATH", "is required for the sqlite driver"})
		}
	case "postgres":
		for _, req := range []struct{ field, value string }{
			{"DB_HOST", cfg.DBHost},
			{"DB_NAME", cfg.DBName},
			{"DB_USER", cfg.DBUser},
		} {
			if req.value == "" {
				errs = append(errs, ValidationError{req.field, "is required for the postgres driver"})
			}
		}
		if cfg.DBPassword == "" && env != Test {
			errs = append(errs, ValidationError{"DB_PASSWORD", "db_password secret is required"})
		}
	default:
		errs = append(errs, ValidationError{"DB_DRIVER", fmt.Sprintf("unsupported driver %q", cfg.DBDriver)})
	}

	switch cfg.CatalogSource {
	case CatalogEmbedded, CatalogDatabase:
	case CatalogFile:
		if cfg.CatalogPath == "" {
			errs = append(errs, ValidationError{"CATALOG_PATH", "is required when CATALOG_SOURCE=file"})
		}
	case CatalogS3:
		if cfg.S3Bucket == "" {
			errs = append(errs, ValidationError{"S3_BUCKET_NAME", "is required when CATALOG_SOURCE=s3"})
		}
		if cfg.S3Key == "" {
			errs = append(errs, ValidationError{"S3_CATALOG_KEY", "is required when CATALOG_SOURCE=s3"})
		}
	default:
		errs = append(errs, ValidationError{"CATALOG_SOURCE", fmt.Sprintf("unknown source %q", cfg.CatalogSource)})
	}

	if cfg.RateLimit <= 0 {
		errs = append(errs, ValidationError{"RATE_LIMIT", "must be a positive integer"})
	}
	if cfg.RateLimitWindow <= 0 {
		errs = append(errs, ValidationError{"RATE_LIMIT_WINDOW", "must be a positive duration"})
	}

	if env == Production && cfg.JWTSecret == "" {
		errs = append(errs, ValidationError{"JWT_SECRET", "jwt_secret secret is required"})
	}

	if len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(msgs, "\n"))
	}

	return nil
}

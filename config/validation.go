package config

import (
	"fmt"
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

// ValidationErrors collects every failed check.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, ve := range e {
		msgs = append(msgs, ve.Error())
	}
	return strings.Join(msgs, "\n")
}

type field struct {
	name  string
	value func(*Config) string
}

var (
	dbFields = []field{
		{"DB_HOST", func(c *Config) string { return c.DBHost }},
		{"DB_PORT", func(c *Config) string { return c.DBPort }},
		{"DB_USER", func(c *Config) string { return c.DBUser }},
		{"DB_PASSWORD", func(c *Config) string { return c.DBPassword }},
		{"DB_NAME", func(c *Config) string { return c.DBName }},
	}
	authFields = []field{
		{"JWT_SECRET", func(c *Config) string { return c.JWTSecret }},
	}
	scorerFields = []field{
		{"ML_BASE_URL", func(c *Config) string { return c.MLBaseURL }},
		{"ML_INTERNAL_TOKEN", func(c *Config) string { return c.MLInternalToken }},
	}

	// requirements lists the fields each environment must provide
	requirements = map[Environment][]field{
		Development: concat(dbFields, authFields),
		Test:        authFields,
		CI:          concat(dbFields, authFields),
		Production:  concat(dbFields, authFields, scorerFields),
	}
)

// ValidateConfig checks if the configuration meets the requirements for env
func ValidateConfig(cfg *Config, env Environment) error {
	var errs ValidationErrors

	for _, f := range requirements[env] {
		if strings.TrimSpace(f.value(cfg)) == "" {
			errs = append(errs, ValidationError{Field: f.name, Message: "is required in " + string(env)})
		}
	}

	if cfg.MLTimeout <= 0 {
		errs = append(errs, ValidationError{Field: "ML_TIMEOUT_MS", Message: "must be positive"})
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		errs = append(errs, ValidationError{Field: "CORS_ALLOWED_ORIGINS", Message: "must list at least one origin"})
	}
	if cfg.RateLimitPerMinute <= 0 {
		errs = append(errs, ValidationError{Field: "RATE_LIMIT_PER_MINUTE", Message: "must be positive"})
	}
	if env == Production && len(cfg.JWTSecret) < 32 {
		errs = append(errs, ValidationError{Field: "JWT_SECRET", Message: "must be at least 32 characters in production"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func concat(groups ...[]field) []field {
	var out []field
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

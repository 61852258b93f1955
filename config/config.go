package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// Risk scorer
	MLBaseURL       string
	MLInternalToken string
	MLTimeout       time.Duration

	CORSAllowedOrigins []string
	LogLevel           string
	RateLimitPerMinute int
	MigrationsDir      string
}

// secretKeys are read from SECRETS_DIR when a file with that name exists.
// A secret file overrides the environment variable of the same key.
var secretKeys = []string{
	"db_user",
	"db_password",
	"jwt_secret",
	"redis_password",
	"redis_url",
	"ml_internal_token",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server_host", "0.0.0.0")
	v.SetDefault("server_port", "8080")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_name", "chronicpal")
	v.SetDefault("db_ssl_mode", "disable")
	v.SetDefault("redis_host", "localhost")
	v.SetDefault("redis_port", "6379")
	v.SetDefault("redis_db", 0)
	v.SetDefault("ml_timeout_ms", 3000)
	v.SetDefault("cors_allowed_origins", "http://localhost:5173")
	v.SetDefault("log_level", "info")
	v.SetDefault("rate_limit_per_minute", 30)
	v.SetDefault("migrations_dir", "migrations")
	v.SetDefault("secrets_dir", "/run/secrets")
}

// LoadConfig reads configuration from environment variables, overlays Docker
// secrets and validates the result for the current environment.
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	// CI receives everything through the environment
	if env != CI {
		if err := overlaySecrets(v, v.GetString("secrets_dir")); err != nil {
			return nil, fmt.Errorf("failed to load secrets: %w", err)
		}
	}

	cfg := fromViper(v)

	if err := ValidateConfig(cfg, env); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		ServerPort:         v.GetString("server_port"),
		ServerHost:         v.GetString("server_host"),
		DBHost:             v.GetString("db_host"),
		DBPort:             v.GetString("db_port"),
		DBUser:             v.GetString("db_user"),
		DBPassword:         v.GetString("db_password"),
		DBName:             v.GetString("db_name"),
		DBSSLMode:          v.GetString("db_ssl_mode"),
		RedisHost:          v.GetString("redis_host"),
		RedisPort:          v.GetString("redis_port"),
		RedisPassword:      v.GetString("redis_password"),
		RedisDB:            v.GetInt("redis_db"),
		RedisURL:           v.GetString("redis_url"),
		JWTSecret:          v.GetString("jwt_secret"),
		MLBaseURL:          strings.TrimRight(v.GetString("ml_base_url"), "/"),
		MLInternalToken:    v.GetString("ml_internal_token"),
		MLTimeout:          time.Duration(v.GetInt("ml_timeout_ms")) * time.Millisecond,
		CORSAllowedOrigins: splitList(v.GetString("cors_allowed_origins")),
		LogLevel:           v.GetString("log_level"),
		RateLimitPerMinute: v.GetInt("rate_limit_per_minute"),
		MigrationsDir:      v.GetString("migrations_dir"),
	}
}

// overlaySecrets copies Docker secrets into v. Missing files are ignored;
// validation reports whatever is still absent.
func overlaySecrets(v *viper.Viper, secretsDir string) error {
	for _, name := range secretKeys {
		content, err := os.ReadFile(filepath.Join(secretsDir, name))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read secret %s: %w", name, err)
		}
		if value := strings.TrimSpace(string(content)); value != "" {
			v.Set(name, value)
		}
	}
	return nil
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

// Addr returns the listen address.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

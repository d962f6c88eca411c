// Package config loads the server configuration from the environment.
// An optional .env file in the working directory is read first; real
// environment variables always win.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// DefaultJWTSecret is used when neither JWT_SECRET nor JWT_SECRET_KEY is set.
// It is only suitable for local development.
const DefaultJWTSecret = "dev-jwt-change-me"

// Config holds runtime settings for the notes server.
type Config struct {
	Port      string
	APIPrefix string

	JWTSecret  string
	JWTTTL     time.Duration
	BcryptCost int

	DB DBConfig

	RedisHost     string
	RedisPort     string
	RedisPassword string
	NotesCacheTTL time.Duration

	CORSAllowedOrigins []string

	LogLevel  string
	LogFormat string

	// parseErrs holds variables that were set but could not be parsed.
	parseErrs []error
}

// DBConfig selects and addresses the relational store.
// When DSN is empty it is built from the individual parts by the db package.
type DBConfig struct {
	Driver         string
	DSN            string
	Host           string
	Port           string
	User           string
	Password       string
	Name           string
	SSLMode        string
	ConnectTimeout time.Duration
}

// RedisEnabled reports whether a redis address was configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

// UsesDefaultSecret reports whether the development signing key is in use.
func (c *Config) UsesDefaultSecret() bool {
	return c.JWTSecret == DefaultJWTSecret
}

// Load reads .env (if present) and builds a Config from the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		slog.Debug(".env not found; using system environment variables")
	}
	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv builds a Config from environment variables, applying defaults.
func FromEnv() *Config {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = getEnv("JWT_SECRET_KEY", DefaultJWTSecret)
	}

	var p envParser
	cfg := &Config{
		Port:      getEnv("PORT", "5000"),
		APIPrefix: getEnv("API_PREFIX", "/api"),

		JWTSecret:  secret,
		JWTTTL:     p.getEnvAsDuration("JWT_TTL", 6*time.Hour),
		BcryptCost: p.getEnvAsInt("BCRYPT_COST", bcrypt.DefaultCost),

		DB: DBConfig{
			Driver:         strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
			DSN:            os.Getenv("DATABASE_URL"),
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           os.Getenv("DB_PORT"),
			User:           os.Getenv("DB_USER"),
			Password:       os.Getenv("DB_PASSWORD"),
			Name:           getEnv("DB_NAME", "notes"),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			ConnectTimeout: p.getEnvAsDuration("DB_CONNECT_TIMEOUT", 60*time.Second),
		},

		RedisHost:     os.Getenv("REDIS_HOST"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		NotesCacheTTL: p.getEnvAsDuration("NOTES_CACHE_TTL", 5*time.Minute),

		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://127.0.0.1:3000",
			"http://127.0.0.1:5173",
		}),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}
	cfg.parseErrs = p.errs
	return cfg
}

// Validate checks the configuration for values the server cannot run with.
func (c *Config) Validate() error {
	errs := append([]error(nil), c.parseErrs...)
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("jwt secret must not be empty"))
	}
	if c.JWTTTL <= 0 {
		errs = append(errs, fmt.Errorf("jwt ttl must be positive, got %s", c.JWTTTL))
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("bcrypt cost must be within [%d, %d], got %d", bcrypt.MinCost, bcrypt.MaxCost, c.BcryptCost))
	}
	switch c.DB.Driver {
	case "sqlite", "postgres", "mysql":
	default:
		errs = append(errs, fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver))
	}
	if c.APIPrefix != "" && !strings.HasPrefix(c.APIPrefix, "/") {
		errs = append(errs, fmt.Errorf("API_PREFIX must start with '/', got %q", c.APIPrefix))
	}
	if len(c.CORSAllowedOrigins) > 1 {
		for _, o := range c.CORSAllowedOrigins {
			if o == "*" {
				errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS: '*' cannot be combined with explicit origins"))
				break
			}
		}
	}
	for _, o := range c.CORSAllowedOrigins {
		if o != "*" && !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			errs = append(errs, fmt.Errorf("CORS_ALLOWED_ORIGINS: origin %q must start with http:// or https://", o))
		}
	}
	return errors.Join(errs...)
}

func getEnv(key, defaultVal string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return defaultVal
}

// envParser records variables that are set to something unparsable
// instead of silently replacing them with the default.
type envParser struct {
	errs []error
}

func (p *envParser) getEnvAsInt(key string, defaultVal int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: invalid integer %q", key, v))
		return defaultVal
	}
	return n
}

func (p *envParser) getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: invalid duration %q (want e.g. 30m or 6h)", key, v))
		return defaultVal
	}
	return d
}

// getEnvAsList splits a comma separated variable, dropping empty items.
func getEnvAsList(key string, defaultVal []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return defaultVal
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

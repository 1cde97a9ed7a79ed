// Package config loads the server configuration from environment variables.
//
// A .env file in the working directory, if present, is loaded first. Real
// environment variables win over .env entries, so a deployment can override
// any value without editing the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting. Each field maps to one environment
// variable; see Load for names and defaults.
type Config struct {
	Port            int
	DBPath          string
	LogLevel        string
	LogFormat       string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration

	BcryptCost int
}

// Default returns the configuration used when no variable is set.
func Default() Config {
	return Config{
		Port:              8080,
		DBPath:            "data/store.db",
		LogLevel:          "info",
		LogFormat:         "text",
		RequestTimeout:    15 * time.Second,
		ShutdownTimeout:   30 * time.Second,
		DBMaxOpenConns:    10,
		DBMaxIdleConns:    10,
		DBConnMaxLifetime: 30 * time.Minute,
		BcryptCost:        12,
	}
}

// Load reads .env (if any) and the environment on top of Default.
//
// A malformed value is an error naming the variable. Falling back to the
// default would hide a typo in a deployment manifest.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: loading .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (Config, error) {
	cfg := Default()
	var errs []error

	intVar(&errs, &cfg.Port, "PORT")
	stringVar(&cfg.DBPath, "DB_PATH")
	stringVar(&cfg.LogLevel, "LOG_LEVEL")
	stringVar(&cfg.LogFormat, "LOG_FORMAT")
	durationVar(&errs, &cfg.RequestTimeout, "REQUEST_TIMEOUT")
	durationVar(&errs, &cfg.ShutdownTimeout, "SHUTDOWN_TIMEOUT")
	intVar(&errs, &cfg.DBMaxOpenConns, "DB_MAX_OPEN_CONNS")
	intVar(&errs, &cfg.DBMaxIdleConns, "DB_MAX_IDLE_CONNS")
	durationVar(&errs, &cfg.DBConnMaxLifetime, "DB_CONN_MAX_LIFETIME")
	intVar(&errs, &cfg.BcryptCost, "BCRYPT_COST")

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges that parsing alone cannot catch.
func (c Config) Validate() error {
	var errs []error
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("config: PORT %d out of range 1-65535", c.Port))
	}
	if strings.TrimSpace(c.DBPath) == "" {
		errs = append(errs, errors.New("config: DB_PATH must not be empty"))
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("config: LOG_FORMAT %q must be text or json", c.LogFormat))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("config: REQUEST_TIMEOUT must be positive"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("config: SHUTDOWN_TIMEOUT must be positive"))
	}
	if c.DBMaxOpenConns < 1 {
		errs = append(errs, errors.New("config: DB_MAX_OPEN_CONNS must be at least 1"))
	}
	if c.DBMaxIdleConns < 0 {
		errs = append(errs, errors.New("config: DB_MAX_IDLE_CONNS must not be negative"))
	}
	return errors.Join(errs...)
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func stringVar(dst *string, key string) {
	if v, ok := lookup(key); ok {
		*dst = v
	}
}

func intVar(errs *[]error, dst *int, key string) {
	v, ok := lookup(key)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("config: invalid int for %s: %q", key, v))
		return
	}
	*dst = n
}

func durationVar(errs *[]error, dst *time.Duration, key string) {
	v, ok := lookup(key)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("config: invalid duration for %s: %q", key, v))
		return
	}
	*dst = d
}

// lookup treats a variable set to "" (or only spaces) as unset.
func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

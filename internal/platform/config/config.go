// Package config provides environment-driven configuration helpers shared by adapters.
package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var validate = validator.New()

// LoadDotEnv loads variables from the given .env files (".env" when none given).
// A missing file is not an error; variables already set in the process win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				slog.Debug(".env file not found, using process environment", "path", p)
				continue
			}
			return err
		}
	}
	return nil
}

// Validate checks struct fields against their `validate` tags.
func Validate(cfg any) error {
	return validate.Struct(cfg)
}

// String returns the trimmed value of key, or def when unset or blank.
func String(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// Int returns the integer value of key, or def when unset or unparsable.
func Int(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid integer in environment, using default", "key", key, "default", def)
		return def
	}
	return n
}

// Duration returns the duration value of key, or def when unset or unparsable.
// A bare integer is read as seconds.
func Duration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("invalid duration in environment, using default", "key", key, "default", def)
		return def
	}
	return d
}

// List splits a comma-separated value into trimmed, non-empty items in order.
func List(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            string        `validate:"required,numeric"`
	GinMode         string        `validate:"omitempty,oneof=debug release test"`
	ShutdownTimeout time.Duration `validate:"gt=0"`
}

// LoadServerConfig reads PORT and GIN_MODE.
func LoadServerConfig() ServerConfig {
	return ServerConfig{
		Port:            String("PORT", "8001"),
		GinMode:         String("GIN_MODE", ""),
		ShutdownTimeout: Duration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

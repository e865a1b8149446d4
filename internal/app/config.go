package app

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/saadjs/nutri-cli/internal/api"
)

// Config is the environment-derived configuration. Command-line flags are
// applied on top of it by the CLI.
type Config struct {
	APIURL    string
	Timeout   time.Duration
	StatePath string
	LogLevel  slog.Level
	Theme     string
}

// LoadConfig reads NUTRI_* variables, first loading envFile when it exists.
// An empty envFile means ".env" in the working directory.
func LoadConfig(envFile string) (Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := Config{
		APIURL:    api.DefaultBaseURL,
		Timeout:   api.DefaultTimeout,
		StatePath: strings.TrimSpace(os.Getenv("NUTRI_STATE")),
		LogLevel:  slog.LevelWarn,
		Theme:     strings.TrimSpace(os.Getenv("NUTRI_THEME")),
	}
	if v := strings.TrimSpace(os.Getenv("NUTRI_API_URL")); v != "" {
		cfg.APIURL = strings.TrimRight(v, "/")
	}
	if v := strings.TrimSpace(os.Getenv("NUTRI_TIMEOUT")); v != "" {
		d, err := ParseTimeout(v)
		if err != nil {
			return Config{}, fmt.Errorf("NUTRI_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}
	if v := strings.TrimSpace(os.Getenv("NUTRI_LOG_LEVEL")); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return Config{}, fmt.Errorf("invalid NUTRI_LOG_LEVEL %q", v)
		}
	}
	return cfg, nil
}

// ParseTimeout accepts Go durations ("45s") or plain seconds ("45").
// Zero disables the timeout.
func ParseTimeout(v string) (time.Duration, error) {
	if secs, err := strconv.Atoi(v); err == nil {
		if secs < 0 {
			return 0, fmt.Errorf("timeout must be >= 0")
		}
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q", v)
	}
	if d < 0 {
		return 0, fmt.Errorf("timeout must be >= 0")
	}
	return d, nil
}

package runtimeconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load builds a Config from DefaultConfig, an optional YAML file and the
// process environment (after reading envFiles with godotenv). Missing files
// are skipped; malformed ones are errors.
func Load(path string, envFiles ...string) (Config, error) {
	cfg := DefaultConfig()

	if trimmed := strings.TrimSpace(path); trimmed != "" {
		data, err := os.ReadFile(trimmed)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("site config: parse %s: %w", trimmed, err)
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("site config: read %s: %w", trimmed, err)
		}
	}

	if err := loadEnvFiles(envFiles); err != nil {
		return Config{}, err
	}
	ApplyEnv(&cfg, os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with well-known environment variables.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) {
	if cfg == nil || lookup == nil {
		return
	}
	get := func(key string) (string, bool) {
		value, ok := lookup(key)
		if !ok {
			return "", false
		}
		value = strings.TrimSpace(value)
		return value, value != ""
	}

	if value, ok := get("SITE_URL"); ok {
		cfg.SiteURL = value
	}
	if value, ok := get("CONTENT_DIR"); ok {
		cfg.Content.Dir = value
	}
	if value, ok := get("RESEND_API_KEY"); ok {
		cfg.Email.APIKey = value
		cfg.Email.Enabled = true
	}
	if value, ok := get("EMAIL_FROM"); ok {
		cfg.Email.From = value
	}
	if value, ok := get("CONTACT_EMAIL"); ok {
		cfg.Email.NotifyTo = splitList(value)
	}
	if value, ok := get("EMAIL_REPLY_TO"); ok {
		cfg.Email.ReplyTo = value
	}
	if value, ok := get("UNSUBSCRIBE_SECRET"); ok {
		cfg.Subscribers.UnsubscribeSecret = value
	}
	if value, ok := get("DATABASE_DSN"); ok {
		cfg.Storage.Provider = "bun"
		cfg.Storage.DSN = value
	}
	if value, ok := get("PORT"); ok {
		cfg.Server.Addr = ":" + strings.TrimPrefix(value, ":")
	}
	if value, ok := get("LOG_LEVEL"); ok {
		cfg.Logging.Level = value
	}
	if value, ok := get("LOG_FORMAT"); ok {
		cfg.Logging.Format = value
	}
}

func loadEnvFiles(files []string) error {
	for _, file := range files {
		trimmed := strings.TrimSpace(file)
		if trimmed == "" {
			continue
		}
		if _, err := os.Stat(trimmed); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(trimmed); err != nil {
			return fmt.Errorf("site config: load env file %s: %w", trimmed, err)
		}
	}
	return nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

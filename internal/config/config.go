package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	NegotiationOrdered  = "ordered"
	NegotiationWeighted = "weighted"
)

type Config struct {
	Port            string
	Env             string
	BaseURL         string
	DatabaseURL     string
	MigrationsDir   string
	RedisURL        string
	LogFile         string
	LogMaxSizeMB    int
	LogMaxBackups   int
	TrustedProxies  []string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	Locales         LocaleConfig
	Email           EmailConfig
	ContactNotifyTo string
}

type LocaleConfig struct {
	Supported      []string
	Default        string
	Dir            string
	Negotiation    string
	CookieName     string
	BundleCacheTTL time.Duration
}

type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Secure   bool
}

func (e EmailConfig) Enabled() bool {
	return e.Host != "" && e.Port != 0 && e.From != ""
}

// Local reports whether the app runs in a developer environment.
func (c Config) Local() bool {
	return c.Env == "local"
}

func Load() (Config, error) {
	clean := func(val string) string {
		return strings.Trim(val, "\"' \t\r\n")
	}

	rawPort := strings.Trim(getenvDefault("EMAIL_SERVER_PORT", "587"), "\"' ")
	emailPort, err := strconv.Atoi(rawPort)
	if err != nil {
		emailPort = 587
	}

	cfg := Config{
		Port:            getenvDefault("PORT", "8080"),
		Env:             strings.ToLower(getenvDefault("APP_ENV", "production")),
		BaseURL:         getenvDefault("BASE_URL", "http://localhost:8080"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		MigrationsDir:   os.Getenv("MIGRATIONS_DIR"),
		RedisURL:        os.Getenv("REDIS_URL"),
		LogFile:         getenvDefault("LOG_FILE", "logs/server.log"),
		LogMaxSizeMB:    getInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups:   getInt("LOG_MAX_BACKUPS", 3),
		TrustedProxies:  parseList(os.Getenv("TRUSTED_PROXIES")),
		ReadTimeout:     getDuration("READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getDuration("WRITE_TIMEOUT", 15*time.Second),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		ContactNotifyTo: clean(os.Getenv("CONTACT_NOTIFY_TO")),
	}

	cfg.Locales = LocaleConfig{
		Supported:      parseList(strings.ToLower(getenvDefault("SUPPORTED_LOCALES", "en,ar,fr"))),
		Default:        strings.ToLower(strings.TrimSpace(getenvDefault("DEFAULT_LOCALE", "en"))),
		Dir:            os.Getenv("LOCALES_DIR"),
		Negotiation:    strings.ToLower(getenvDefault("LOCALE_NEGOTIATION", NegotiationOrdered)),
		CookieName:     getenvDefault("LOCALE_COOKIE", "locale"),
		BundleCacheTTL: getDuration("BUNDLE_CACHE_TTL", 10*time.Minute),
	}

	cfg.Email = EmailConfig{
		Host:     clean(os.Getenv("EMAIL_SERVER_HOST")),
		Port:     emailPort,
		Username: clean(os.Getenv("EMAIL_SERVER_USER")),
		Password: clean(os.Getenv("EMAIL_SERVER_PASSWORD")),
		From:     clean(os.Getenv("EMAIL_FROM")),
		Secure:   parseBool(os.Getenv("EMAIL_SERVER_SECURE")),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	if cfg.Locales.Dir != "" {
		if abs, err := filepath.Abs(cfg.Locales.Dir); err == nil {
			cfg.Locales.Dir = abs
		}
	}

	return cfg, nil
}

func (c Config) validate() error {
	if len(c.Locales.Supported) == 0 {
		return fmt.Errorf("SUPPORTED_LOCALES must list at least one locale")
	}
	found := false
	for _, code := range c.Locales.Supported {
		if code == c.Locales.Default {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("DEFAULT_LOCALE %q must be one of SUPPORTED_LOCALES %v", c.Locales.Default, c.Locales.Supported)
	}
	switch c.Locales.Negotiation {
	case NegotiationOrdered, NegotiationWeighted:
	default:
		return fmt.Errorf("LOCALE_NEGOTIATION must be %q or %q, got %q", NegotiationOrdered, NegotiationWeighted, c.Locales.Negotiation)
	}
	if strings.TrimSpace(c.Locales.CookieName) == "" {
		return fmt.Errorf("LOCALE_COOKIE must not be empty")
	}
	if c.BaseURL != "" {
		if _, err := url.Parse(c.BaseURL); err != nil {
			return fmt.Errorf("BASE_URL: %w", err)
		}
	}
	return nil
}

func getenvDefault(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return i
		}
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil {
			return d
		}
	}
	return def
}

func parseBool(val string) bool {
	if val == "" {
		return false
	}
	val = strings.ToLower(strings.Trim(val, "\"' "))
	return val == "1" || val == "true" || val == "yes"
}

func parseList(val string) []string {
	parts := strings.Split(val, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

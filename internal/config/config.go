package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration required by the gateway process.
// All values come from env (or an env-file loaded by the process runner).
// No business logic should depend on raw environment variables.
type Config struct {
	App      AppConfig
	Upstream UpstreamConfig
	Auth     AuthConfig
	AuditDB  AuditDBConfig
	Redis    RedisConfig
}

type AppConfig struct {
	Env  string
	Port int
}

// UpstreamConfig names the two backend origins the gateway mediates.
// Fallbacks match local development; production must override.
type UpstreamConfig struct {
	APIBaseURL    string
	IngestBaseURL string
	Timeout       time.Duration
}

type AuthConfig struct {
	// JWTSecret is optional. When set, the access gate verifies token
	// signatures; when empty the gate runs decode-only and the backend
	// re-validates on every proxied call.
	JWTSecret    string
	CookieSecure bool
}

// AuditDBConfig is optional; the audit trail is disabled when Host is empty.
type AuditDBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string

	// SSLMode accepts: disable, require, verify-ca, verify-full
	SSLMode string
}

// RedisConfig is optional; the login rate limiter is disabled when Host
// is empty.
type RedisConfig struct {
	Host string
	Port int

	LoginRateLimit  int
	LoginRateWindow time.Duration
}

const (
	defaultAPIBaseURL    = "http://localhost:8080"
	defaultIngestBaseURL = "http://localhost:8081"
)

func Load() (Config, error) {
	c := Config{}
	var parseErrs []error

	c.App.Env = strings.TrimSpace(os.Getenv("APP_ENV"))
	{
		n, err := mustInt("APP_PORT")
		n, parseErrs = appendParseErr(parseErrs, n, err)
		c.App.Port = n
	}

	c.Upstream.APIBaseURL = strings.TrimSpace(os.Getenv("API_BASE_URL"))
	c.Upstream.IngestBaseURL = strings.TrimSpace(os.Getenv("INGEST_BASE_URL"))
	c.Upstream.Timeout = optDuration("UPSTREAM_TIMEOUT")

	c.Auth.JWTSecret = os.Getenv("AUTH_JWT_SECRET")
	c.Auth.CookieSecure = optBool("AUTH_COOKIE_SECURE")

	c.AuditDB.Host = strings.TrimSpace(os.Getenv("AUDIT_DB_HOST"))
	if c.AuditDB.Host != "" {
		n, err := mustInt("AUDIT_DB_PORT")
		n, parseErrs = appendParseErr(parseErrs, n, err)
		c.AuditDB.Port = n
		c.AuditDB.User = strings.TrimSpace(os.Getenv("AUDIT_DB_USER"))
		c.AuditDB.Password = os.Getenv("AUDIT_DB_PASSWORD")
		c.AuditDB.Name = strings.TrimSpace(os.Getenv("AUDIT_DB_NAME"))
		c.AuditDB.SSLMode = strings.TrimSpace(os.Getenv("AUDIT_DB_SSLMODE"))
	}

	c.Redis.Host = strings.TrimSpace(os.Getenv("REDIS_HOST"))
	if c.Redis.Host != "" {
		n, err := mustInt("REDIS_PORT")
		n, parseErrs = appendParseErr(parseErrs, n, err)
		c.Redis.Port = n
	}
	c.Redis.LoginRateLimit = optInt("LOGIN_RATE_LIMIT")
	c.Redis.LoginRateWindow = optDuration("LOGIN_RATE_WINDOW")

	if err := joinErrors(parseErrs); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	var errs []error

	if c.App.Env == "" {
		errs = append(errs, errors.New("APP_ENV is required"))
	} else if !isValidEnv(c.App.Env) {
		errs = append(errs, fmt.Errorf("APP_ENV must be one of local, dev, staging, production, got %q", c.App.Env))
	}
	if c.App.Port <= 0 || c.App.Port > 65535 {
		errs = append(errs, fmt.Errorf("APP_PORT must be a valid port, got %d", c.App.Port))
	}

	if c.Upstream.APIBaseURL == "" {
		if c.IsProduction() {
			errs = append(errs, errors.New("API_BASE_URL is required in production"))
		} else {
			c.Upstream.APIBaseURL = defaultAPIBaseURL
		}
	}
	if c.Upstream.IngestBaseURL == "" {
		if c.IsProduction() {
			errs = append(errs, errors.New("INGEST_BASE_URL is required in production"))
		} else {
			c.Upstream.IngestBaseURL = defaultIngestBaseURL
		}
	}
	for _, pair := range []struct{ key, val string }{
		{"API_BASE_URL", c.Upstream.APIBaseURL},
		{"INGEST_BASE_URL", c.Upstream.IngestBaseURL},
	} {
		if pair.val == "" {
			continue
		}
		if err := validateBaseURL(pair.val); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", pair.key, err))
		}
	}
	if c.Upstream.Timeout <= 0 {
		c.Upstream.Timeout = 30 * time.Second
	}

	if c.IsProduction() {
		// Session cookies must not travel in the clear in production.
		c.Auth.CookieSecure = true
	}

	if c.AuditDB.Host != "" {
		if c.AuditDB.Port <= 0 || c.AuditDB.Port > 65535 {
			errs = append(errs, fmt.Errorf("AUDIT_DB_PORT must be a valid port, got %d", c.AuditDB.Port))
		}
		if c.AuditDB.User == "" {
			errs = append(errs, errors.New("AUDIT_DB_USER is required when AUDIT_DB_HOST is set"))
		}
		if c.AuditDB.Name == "" {
			errs = append(errs, errors.New("AUDIT_DB_NAME is required when AUDIT_DB_HOST is set"))
		}
		if c.AuditDB.SSLMode == "" {
			if c.IsProduction() {
				errs = append(errs, errors.New("AUDIT_DB_SSLMODE is required in production"))
			} else {
				c.AuditDB.SSLMode = "disable"
			}
		}
		if c.AuditDB.SSLMode != "" && !isValidSSLMode(c.AuditDB.SSLMode) {
			errs = append(errs, fmt.Errorf("AUDIT_DB_SSLMODE must be one of disable, require, verify-ca, verify-full, got %q", c.AuditDB.SSLMode))
		}
	}

	if c.Redis.Host != "" {
		if c.Redis.Port <= 0 || c.Redis.Port > 65535 {
			errs = append(errs, fmt.Errorf("REDIS_PORT must be a valid port, got %d", c.Redis.Port))
		}
		if c.Redis.LoginRateLimit <= 0 {
			c.Redis.LoginRateLimit = 10
		}
		if c.Redis.LoginRateWindow <= 0 {
			c.Redis.LoginRateWindow = time.Minute
		}
	}

	return joinErrors(errs)
}

func (c Config) IsProduction() bool {
	return c.App.Env == "production"
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}

func (c Config) AuditEnabled() bool { return c.AuditDB.Host != "" }

func (c Config) RateLimitEnabled() bool { return c.Redis.Host != "" }

func (c Config) AuditPostgresDSN() string {
	// Avoid logging this string; it contains secrets.
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.AuditDB.Host,
		c.AuditDB.Port,
		c.AuditDB.User,
		c.AuditDB.Password,
		c.AuditDB.Name,
		c.AuditDB.SSLMode,
	)
}

func (c Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("must be a valid URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("must be an absolute http(s) URL, got %q", raw)
	}
	return nil
}

func mustInt(key string) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return n, nil
}

func optInt(key string) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func optDuration(key string) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0
	}
	return d
}

func optBool(key string) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false
	}
	return b
}

func appendParseErr(errs []error, n int, err error) (int, []error) {
	if err != nil {
		errs = append(errs, err)
	}
	return n, errs
}

func isValidEnv(v string) bool {
	switch v {
	case "local", "dev", "staging", "production":
		return true
	default:
		return false
	}
}

func isValidSSLMode(v string) bool {
	switch v {
	case "disable", "require", "verify-ca", "verify-full":
		return true
	default:
		return false
	}
}

func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}
	var b strings.Builder
	b.WriteString("config errors:\n")
	for _, e := range errs {
		b.WriteString("- ")
		b.WriteString(e.Error())
		b.WriteString("\n")
	}
	return errors.New(strings.TrimSpace(b.String()))
}

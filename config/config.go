// Package config loads the fincalc configuration: built-in defaults, then
// an optional YAML file, then FINCALC_* environment variables. Command line
// flags are applied last by the caller.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Site      SiteConfig      `yaml:"site"`
	Storage   StorageConfig   `yaml:"storage"`
	Cache     CacheConfig     `yaml:"cache"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Session   SessionConfig   `yaml:"session"`
	Content   ContentConfig   `yaml:"content"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type SiteConfig struct {
	Name        string `yaml:"name"`
	BaseURL     string `yaml:"base_url"`
	Description string `yaml:"description"`
	Locale      string `yaml:"locale"`
	Currency    string `yaml:"currency"`
	Logo        string `yaml:"logo"`
	Twitter     string `yaml:"twitter"`
}

type StorageConfig struct {
	Driver string `yaml:"driver"` // memory | sqlite
	DSN    string `yaml:"dsn"`
}

type CacheConfig struct {
	Driver        string        `yaml:"driver"` // memory | redis
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
	Prefix        string        `yaml:"prefix"`
	TTL           time.Duration `yaml:"ttl"`
}

// RateLimitConfig sizes the token bucket kept per client on mutating API routes.
type RateLimitConfig struct {
	Capacity int           `yaml:"capacity"`
	Refill   time.Duration `yaml:"refill"`
}

type SessionConfig struct {
	CookieName string        `yaml:"cookie_name"`
	Lifetime   time.Duration `yaml:"lifetime"`
	Secure     bool          `yaml:"secure"`
}

type ContentConfig struct {
	Dir   string `yaml:"dir"` // empty serves the embedded content
	Watch bool   `yaml:"watch"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Site: SiteConfig{
			Name:        "FinCalc",
			BaseURL:     "http://localhost:8080",
			Description: "Free financial calculators for loans, mortgages, debt payoff, savings and retirement.",
			Locale:      "en-US",
			Currency:    "USD",
			Logo:        "/static/img/logo.svg",
		},
		Storage: StorageConfig{Driver: DriverMemory},
		Cache: CacheConfig{
			Driver:    DriverMemory,
			RedisAddr: "localhost:6379",
			Prefix:    "fincalc:",
			TTL:       24 * time.Hour,
		},
		RateLimit: RateLimitConfig{Capacity: 30, Refill: time.Minute},
		Session: SessionConfig{
			CookieName: "fincalc_session",
			Lifetime:   7 * 24 * time.Hour,
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads path over the defaults and applies the environment. An empty
// path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := Decode(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.ApplyEnv(os.LookupEnv)
	return cfg, nil
}

// Decode overlays YAML onto cfg. Unknown keys are rejected.
func Decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ApplyEnv overrides settings from FINCALC_* variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup("FINCALC_ADDR"); ok && v != "" {
		c.Server.Addr = v
	}
	if v, ok := lookup("FINCALC_BASE_URL"); ok && v != "" {
		c.Site.BaseURL = v
	}
	if v, ok := lookup("FINCALC_DB"); ok && v != "" {
		c.Storage.Driver = DriverSQLite
		c.Storage.DSN = v
	}
	if v, ok := lookup("FINCALC_REDIS_ADDR"); ok && v != "" {
		c.Cache.Driver = DriverRedis
		c.Cache.RedisAddr = v
	}
	if v, ok := lookup("FINCALC_REDIS_PASSWORD"); ok {
		c.Cache.RedisPassword = v
	}
	if v, ok := lookup("FINCALC_CONTENT_DIR"); ok && v != "" {
		c.Content.Dir = v
	}
	if v, ok := lookup("FINCALC_LOG_LEVEL"); ok && v != "" {
		c.Log.Level = v
	}
}

func (c Config) Validate() error {
	var errs []error

	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr must not be empty"))
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 || c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("server timeouts must be positive"))
	}
	if u, err := url.Parse(c.Site.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("site.base_url %q must be an absolute URL", c.Site.BaseURL))
	}

	switch c.Storage.Driver {
	case DriverMemory:
	case DriverSQLite:
		if c.Storage.DSN == "" {
			errs = append(errs, errors.New("storage.dsn is required for sqlite"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage.driver %q", c.Storage.Driver))
	}

	switch c.Cache.Driver {
	case DriverMemory:
	case DriverRedis:
		if c.Cache.RedisAddr == "" {
			errs = append(errs, errors.New("cache.redis_addr is required for redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown cache.driver %q", c.Cache.Driver))
	}
	if c.Cache.TTL <= 0 {
		errs = append(errs, errors.New("cache.ttl must be positive"))
	}

	if c.RateLimit.Capacity <= 0 || c.RateLimit.Refill <= 0 {
		errs = append(errs, errors.New("rate_limit capacity and refill must be positive"))
	}
	if c.Session.CookieName == "" || c.Session.Lifetime <= 0 {
		errs = append(errs, errors.New("session cookie_name and lifetime are required"))
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log.level %q", c.Log.Level))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log.format %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

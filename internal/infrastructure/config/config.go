package config

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Session drivers.
const (
	DriverRedis  = "redis"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

type Config struct {
	Port     string `env:"PORT,      default=3000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Backend BackendConfig
	Session SessionConfig
	Pages   PagesConfig
	Redis   RedisConfig
	SQLite  SQLiteConfig
}

type BackendConfig struct {
	URL     string        `env:"BACKEND_URL,     default=http://localhost:3001"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT, default=10s"`
}

type SessionConfig struct {
	Driver       string        `env:"SESSION_DRIVER,        default=redis"`
	CookieName   string        `env:"SESSION_COOKIE,        default=matchme_client"`
	CookieSecure bool          `env:"SESSION_COOKIE_SECURE, default=false"`
	TTL          time.Duration `env:"SESSION_TTL,           default=0"`
}

type PagesConfig struct {
	StateTTL  time.Duration `env:"PAGE_STATE_TTL,        default=30m"`
	CacheSize int           `env:"PAGE_STATE_CACHE_SIZE, default=4096"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type SQLiteConfig struct {
	Path string `env:"SQLITE_PATH, default=matchme-web.db"`
}

// IsProduction reports whether the service runs with production defaults.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	switch c.Session.Driver {
	case DriverRedis, DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("config: unknown SESSION_DRIVER %q (want redis, sqlite or memory)", c.Session.Driver)
	}
	u, err := url.Parse(c.Backend.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config: BACKEND_URL %q is not an http(s) URL", c.Backend.URL)
	}
	if c.Session.TTL < 0 || c.Pages.StateTTL <= 0 || c.Pages.CacheSize <= 0 {
		return fmt.Errorf("config: session and page state limits must be positive")
	}
	return nil
}

// LoadWith reads configuration through lookuper and validates it.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(err.Error())
	}
	return cfg
}

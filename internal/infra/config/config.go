package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Cache backends accepted by cache.backend.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendValkey   = "valkey"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendS3       = "s3"
)

// Config aggregates runtime configuration used across the application.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	PokeAPI PokeAPIConfig `yaml:"pokeapi"`
	Roster  RosterConfig  `yaml:"roster"`
	Cache   CacheConfig   `yaml:"cache"`
	Session SessionConfig `yaml:"session"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
	Retry          RetryConfig     `yaml:"retry"`
}

// RateLimitConfig drives the limiter in front of the routes that reach PokeAPI.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// RetryConfig configures retries of idempotent requests that failed upstream.
type RetryConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseBackoff time.Duration `yaml:"baseBackoff"`
	Exclude     []string      `yaml:"exclude"`
}

// PokeAPIConfig points at the remote species service.
type PokeAPIConfig struct {
	BaseURL string        `yaml:"baseUrl"`
	Timeout time.Duration `yaml:"timeout"`
}

// RosterConfig controls the roster loader.
type RosterConfig struct {
	InitialLimit int `yaml:"initialLimit"`
}

// CacheConfig selects and configures the roster cache backend.
type CacheConfig struct {
	Backend  string         `yaml:"backend"`
	Key      string         `yaml:"key"`
	File     FileConfig     `yaml:"file"`
	Valkey   ValkeyConfig   `yaml:"valkey"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	Postgres PostgresConfig `yaml:"postgres"`
	S3       S3Config       `yaml:"s3"`
}

// FileConfig locates the file backend.
type FileConfig struct {
	Dir string `yaml:"dir"`
}

// ValkeyConfig contains connection information for the valkey backend.
type ValkeyConfig struct {
	Addr string `yaml:"addr"`
}

// SQLiteConfig locates the sqlite database.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
}

// S3Config addresses an S3-compatible bucket.
type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
}

// SessionConfig seeds the state container.
type SessionConfig struct {
	DefaultLevel int `yaml:"defaultLevel"`
}

// Load reads configuration from .env, a YAML file and environment variables, in that order.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_ENABLED"); v != "" {
		cfg.HTTP.Retry.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RETRY_MAX_ATTEMPTS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.Retry.MaxAttempts = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_BASE_BACKOFF"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.Retry.BaseBackoff = parsed
		}
	}
	if v := os.Getenv("POKEAPI_BASE_URL"); v != "" {
		cfg.PokeAPI.BaseURL = v
	}
	if v := os.Getenv("POKEAPI_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.PokeAPI.Timeout = parsed
		}
	}
	if v := os.Getenv("ROSTER_INITIAL_LIMIT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Roster.InitialLimit = parsed
		}
	}
	if v := os.Getenv("CACHE_BACKEND"); v != "" {
		cfg.Cache.Backend = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("CACHE_KEY"); v != "" {
		cfg.Cache.Key = v
	}
	if v := os.Getenv("CACHE_FILE_DIR"); v != "" {
		cfg.Cache.File.Dir = v
	}
	if v := os.Getenv("CACHE_VALKEY_ADDR"); v != "" {
		cfg.Cache.Valkey.Addr = v
	}
	if v := os.Getenv("CACHE_SQLITE_PATH"); v != "" {
		cfg.Cache.SQLite.Path = v
	}
	if v := os.Getenv("CACHE_POSTGRES_DSN"); v != "" {
		cfg.Cache.Postgres.DSN = v
	}
	if v := os.Getenv("CACHE_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Cache.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("CACHE_S3_ENDPOINT"); v != "" {
		cfg.Cache.S3.Endpoint = v
	}
	if v := os.Getenv("CACHE_S3_ACCESS_KEY"); v != "" {
		cfg.Cache.S3.AccessKey = v
	}
	if v := os.Getenv("CACHE_S3_SECRET_KEY"); v != "" {
		cfg.Cache.S3.SecretKey = v
	}
	if v := os.Getenv("CACHE_S3_BUCKET"); v != "" {
		cfg.Cache.S3.Bucket = v
	}
	if v := os.Getenv("CACHE_S3_REGION"); v != "" {
		cfg.Cache.S3.Region = v
	}
	if v := os.Getenv("SESSION_DEFAULT_LEVEL"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Session.DefaultLevel = parsed
		}
	}
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:     "127.0.0.1:8080",
			ReadTimeout: 5 * time.Second,
			// Streams stay open for the whole background load.
			WriteTimeout: 0,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 120,
				Burst:             30,
			},
			Retry: RetryConfig{
				Enabled:     true,
				MaxAttempts: 2,
				BaseBackoff: 250 * time.Millisecond,
				Exclude: []string{
					"/api/v1/pokemon/remaining/stream",
					"/api/v1/pokemon/remaining/ws",
				},
			},
		},
		PokeAPI: PokeAPIConfig{
			BaseURL: "https://pokeapi.co/api/v2",
			Timeout: 15 * time.Second,
		},
		Roster: RosterConfig{
			InitialLimit: 150,
		},
		Cache: CacheConfig{
			Backend: BackendFile,
			Key:     "pikacalc_pokemon_cache",
			SQLite:  SQLiteConfig{Path: "pikacalc.db"},
			Postgres: PostgresConfig{
				MaxConns: 4,
			},
			S3: S3Config{Bucket: "pikacalc", Region: "us-east-1"},
		},
		Session: SessionConfig{
			DefaultLevel: 50,
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.HTTP.Address) == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.ReadTimeout < 0 || c.HTTP.WriteTimeout < 0 {
		return errors.New("http timeouts cannot be negative")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.HTTP.Retry.Enabled {
		if c.HTTP.Retry.MaxAttempts <= 0 {
			return errors.New("http.retry.maxAttempts must be positive")
		}
		if c.HTTP.Retry.BaseBackoff <= 0 {
			return errors.New("http.retry.baseBackoff must be positive")
		}
	}
	if strings.TrimSpace(c.PokeAPI.BaseURL) == "" {
		return errors.New("pokeapi.baseUrl cannot be empty")
	}
	if c.PokeAPI.Timeout <= 0 {
		return errors.New("pokeapi.timeout must be positive")
	}
	if c.Roster.InitialLimit < 1 || c.Roster.InitialLimit > 1025 {
		return errors.New("roster.initialLimit must be between 1 and 1025")
	}
	if strings.TrimSpace(c.Cache.Key) == "" {
		return errors.New("cache.key cannot be empty")
	}
	switch c.Cache.Backend {
	case BackendMemory, BackendFile:
	case BackendValkey:
		if strings.TrimSpace(c.Cache.Valkey.Addr) == "" {
			return errors.New("cache.valkey.addr cannot be empty when the valkey backend is selected")
		}
	case BackendSQLite:
		if strings.TrimSpace(c.Cache.SQLite.Path) == "" {
			return errors.New("cache.sqlite.path cannot be empty when the sqlite backend is selected")
		}
	case BackendPostgres:
		if strings.TrimSpace(c.Cache.Postgres.DSN) == "" {
			return errors.New("cache.postgres.dsn cannot be empty when the postgres backend is selected")
		}
	case BackendS3:
		if strings.TrimSpace(c.Cache.S3.Endpoint) == "" || strings.TrimSpace(c.Cache.S3.Bucket) == "" {
			return errors.New("cache.s3.endpoint and cache.s3.bucket are required when the s3 backend is selected")
		}
	default:
		return fmt.Errorf("unknown cache.backend %q", c.Cache.Backend)
	}
	if c.Session.DefaultLevel < 1 || c.Session.DefaultLevel > 100 {
		return errors.New("session.defaultLevel must be between 1 and 100")
	}
	return nil
}

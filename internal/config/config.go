package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	BrowserModeChromedp = "chromedp"
	BrowserModeStatic   = "static"
)

type Config struct {
	App      AppConfig
	Browser  BrowserConfig
	Redis    RedisConfig
	Database DatabaseConfig
}

type AppConfig struct {
	AppName     string `validate:"required"`
	Environment string `validate:"required"`
	HTTPPort    string `validate:"required,numeric"`
	SnapshotDir string
}

type BrowserConfig struct {
	Mode      string        `validate:"oneof=chromedp static"`
	Timeout   time.Duration `validate:"gt=0"`
	Headless  bool
	UserAgent string
}

// RedisConfig is disabled when Host is empty.
type RedisConfig struct {
	Host     string
	Port     string `validate:"required,numeric"`
	Password string
	TTL      time.Duration `validate:"gt=0"`
}

func (r RedisConfig) Enabled() bool { return r.Host != "" }

func (r RedisConfig) Addr() string { return fmt.Sprintf("%s:%s", r.Host, r.Port) }

// DatabaseConfig is disabled when DBHost is empty.
type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string
}

func (d DatabaseConfig) Enabled() bool { return d.DBHost != "" }

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first when present; real environment
// variables win over it.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads the configuration from the process environment only.
func FromEnv() (Config, error) {
	cfg := Config{}

	var missing, invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, def string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		return v
	}
	seconds := func(key string, def int) time.Duration {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return time.Duration(def) * time.Second
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			invalid = append(invalid, key)
			return 0
		}
		return time.Duration(n) * time.Second
	}
	flag := func(key string, def bool) bool {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return def
		}
		b, err := strconv.ParseBool(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return b
	}

	cfg.App = AppConfig{
		AppName:     opt("APP_NAME", "upwork-job-api"),
		Environment: opt("APP_ENV", "development"),
		HTTPPort:    opt("HTTP_PORT", "5000"),
		SnapshotDir: opt("SNAPSHOT_DIR", ""),
	}

	cfg.Browser = BrowserConfig{
		Mode:      strings.ToLower(opt("BROWSER_MODE", BrowserModeChromedp)),
		Timeout:   seconds("BROWSER_TIMEOUT", 60),
		Headless:  flag("BROWSER_HEADLESS", true),
		UserAgent: opt("BROWSER_USER_AGENT", ""),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST", ""),
		Port:     opt("REDIS_PORT", "6379"),
		Password: opt("REDIS_PASSWORD", ""),
		TTL:      seconds("REDIS_TTL", 600),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST", ""),
		DBPort:     opt("DB_PORT", "5432"),
		DBPassword: opt("DB_PASSWORD", ""),
		DBSSLMode:  opt("DB_SSL_MODE", "disable"),
	}
	if cfg.Database.Enabled() {
		cfg.Database.DBName = req("DB_NAME")
		cfg.Database.DBUser = req("DB_USER")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", errInvalidEnv, err)
	}

	return cfg, nil
}

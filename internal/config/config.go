package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Auth     AuthConfig
	Upload   UploadConfig
	Scraper  ScraperConfig
	Log      LogConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	Timezone    string
	CORSOrigins []string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration

	AutoMigrate bool
	AutoSeed    bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

type AuthConfig struct {
	PasswordHash string
}

func (a AuthConfig) Enabled() bool {
	return strings.TrimSpace(a.PasswordHash) != ""
}

type UploadConfig struct {
	Dir      string
	MaxBytes int64
}

type ScraperConfig struct {
	UserAgent   string
	Timeout     time.Duration
	Headless    bool
	Workers     int
	RatePerSec  int
	MaxBatchLen int
}

type LogConfig struct {
	Level  string
	Format string
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

// Load reads an optional .env file and then the process environment.
// Variables already present in the environment win over the .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}
	return fromKoanf(k)
}

func fromKoanf(k *koanf.Koanf) (Config, error) {
	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(k.String(strings.ToLower(key)))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, def string) string {
		v := strings.TrimSpace(k.String(strings.ToLower(key)))
		if v == "" {
			return def
		}
		return v
	}
	optDur := func(key string, def time.Duration) time.Duration {
		raw := opt(key, "")
		if raw == "" {
			return def
		}
		d, err := parseDuration(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return d
	}
	optInt := func(key string, def int) int {
		raw := opt(key, "")
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optBool := func(key string, def bool) bool {
		raw := opt(key, "")
		if raw == "" {
			return def
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
		Timezone:    opt("APP_TIMEZONE", "UTC"),
		CORSOrigins: splitList(opt("CORS_ALLOW_ORIGINS", "*")),
	}
	if _, err := time.LoadLocation(cfg.App.Timezone); err != nil {
		invalid = append(invalid, "APP_TIMEZONE")
	}

	cfg.Database = DatabaseConfig{
		DBHost:                opt("DB_HOST", "localhost"),
		DBPort:                opt("DB_PORT", "5432"),
		DBName:                opt("DB_NAME", "jobtrack"),
		DBUser:                opt("DB_USER", "postgres"),
		DBPassword:            opt("DB_PASSWORD", ""),
		DBSSLMode:             opt("DB_SSL_MODE", "disable"),
		ConnectTimeout:        optDur("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          int32(optInt("DB_POOL_MAX_CONNS", 0)),
		PoolMinConns:          int32(optInt("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   optDur("DB_POOL_MAX_CONN_LIFETIME", 0),
		PoolMaxConnIdleTime:   optDur("DB_POOL_MAX_CONN_IDLE_TIME", 0),
		PoolHealthCheckPeriod: optDur("DB_POOL_HEALTH_CHECK_PERIOD", 0),
		AutoMigrate:           optBool("DB_AUTO_MIGRATE", true),
		AutoSeed:              optBool("DB_AUTO_SEED", false),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST", "localhost"),
		Port:     opt("REDIS_PORT", "6379"),
		Password: opt("REDIS_PASSWORD", ""),
		DB:       optInt("REDIS_DB", 0),
		TTL:      optDur("REDIS_TTL", 600*time.Second),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     opt("JWT_ACCESS_SECRET", ""),
		RefreshSecret:    opt("JWT_REFRESH_SECRET", ""),
		AccessExpiresIn:  optDur("JWT_ACCESS_EXPIRES_IN", 15*time.Minute),
		RefreshExpiresIn: optDur("JWT_REFRESH_EXPIRES_IN", 7*24*time.Hour),
	}

	cfg.Auth = AuthConfig{PasswordHash: opt("AUTH_PASSWORD_HASH", "")}
	if cfg.Auth.Enabled() {
		if cfg.JWT.AccessSecret == "" {
			missing = append(missing, "JWT_ACCESS_SECRET")
		}
		if cfg.JWT.RefreshSecret == "" {
			missing = append(missing, "JWT_REFRESH_SECRET")
		}
	}

	cfg.Upload = UploadConfig{
		Dir:      opt("UPLOAD_DIR", "uploads"),
		MaxBytes: int64(optInt("UPLOAD_MAX_BYTES", 10<<20)),
	}

	cfg.Scraper = ScraperConfig{
		UserAgent:   opt("SCRAPER_USER_AGENT", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"),
		Timeout:     optDur("SCRAPER_TIMEOUT", 20*time.Second),
		Headless:    optBool("SCRAPER_HEADLESS", false),
		Workers:     optInt("SCRAPER_WORKERS", 4),
		RatePerSec:  optInt("SCRAPER_RATE_PER_SEC", 2),
		MaxBatchLen: optInt("SCRAPER_MAX_BATCH", 20),
	}

	cfg.Log = LogConfig{
		Level:  opt("LOG_LEVEL", "info"),
		Format: opt("LOG_FORMAT", defaultLogFormat(cfg.App.Environment)),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.App.Environment, "production")
}

// parseDuration accepts Go duration syntax or a bare number of seconds.
func parseDuration(raw string) (time.Duration, error) {
	if v, err := strconv.Atoi(raw); err == nil {
		if v < 0 {
			return 0, fmt.Errorf("negative duration %q", raw)
		}
		return time.Duration(v) * time.Second, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %q", raw)
	}
	return d, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func defaultLogFormat(environment string) string {
	switch strings.ToLower(strings.TrimSpace(environment)) {
	case "development", "dev", "local":
		return "console"
	default:
		return "json"
	}
}

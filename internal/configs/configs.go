package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	model "todaygenda.com/todaygenda/internal/models"
)

type Config struct {
	AppURL                 string
	DatabaseDSN            string
	RateLimit              int
	RedisAddr              string
	RedisKeyPrefix         string
	ShutdownTimeoutSeconds int
	SecretKey              string
	GuestUserKey           string
	AllowedOrigins         []string
	DefaultCutoff          model.Cutoff
	LogLevel               string
	CLIUser                string
}

// Load reads the configuration from the environment. Callers that want a
// .env file honoured load it first.
func Load() (Config, error) {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")

	var redisAddr string
	if redisHost := os.Getenv("REDIS_HOST"); redisHost != "" {
		redisAddr = fmt.Sprintf("%s:%s", redisHost, getEnv("REDIS_PORT", "6379"))
	}

	rateLimit, err := getEnvAsInt("RATE_LIMIT_PER_MINUTE", 60)
	if err != nil {
		return Config{}, err
	}
	shutdownTimeout, err := getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 20)
	if err != nil {
		return Config{}, err
	}

	loc, err := loadLocation(getEnv("DEFAULT_TIMEZONE", "UTC"))
	if err != nil {
		return Config{}, err
	}
	cutoff, err := model.ParseClock(getEnv("DEFAULT_CUTOFF", "00:00"), loc)
	if err != nil {
		return Config{}, fmt.Errorf("DEFAULT_CUTOFF: %w", err)
	}

	cfg := Config{
		AppURL:                 fmt.Sprintf("%s:%s", appHost, appPort),
		DatabaseDSN:            getEnv("DATABASE_DSN", "todaygenda.db"),
		RateLimit:              rateLimit,
		RedisAddr:              redisAddr,
		RedisKeyPrefix:         getEnv("REDIS_KEY_PREFIX", "todaygenda:ratelimit:"),
		ShutdownTimeoutSeconds: shutdownTimeout,
		SecretKey:              os.Getenv("SECRET_KEY"),
		GuestUserKey:           os.Getenv("GUEST_USER_KEY"),
		AllowedOrigins:         splitList(os.Getenv("ALLOWED_ORIGINS")),
		DefaultCutoff:          cutoff,
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		CLIUser:                getEnv("CLI_USER", "cli@localhost"),
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ValidateServer checks the settings only the HTTP API needs.
func (c Config) ValidateServer() error {
	if c.SecretKey == "" {
		return fmt.Errorf("SECRET_KEY must not be empty")
	}
	return nil
}

func validate(cfg Config) error {
	if cfg.DatabaseDSN == "" {
		return fmt.Errorf("DATABASE_DSN must not be empty")
	}
	if cfg.RateLimit <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if cfg.ShutdownTimeoutSeconds <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT_SECONDS must be greater than 0")
	}
	if strings.TrimSpace(cfg.CLIUser) == "" {
		return fmt.Errorf("CLI_USER must not be empty")
	}
	return nil
}

func loadLocation(name string) (*time.Location, error) {
	if strings.EqualFold(name, "system") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("DEFAULT_TIMEZONE: %w", err)
	}
	return loc, nil
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) (int, error) {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid integer value for %s", key)
		}
		return i, nil
	}
	return defaultVal, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

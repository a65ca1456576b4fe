package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Server  ServerConfig
	Redis   RedisConfig
	Store   StoreConfig
	Holiday HolidayConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CORSOrigins  []string
}

// RedisConfig holds Redis connection settings. An empty Addr selects
// the in-process persistence slot: tasks then survive only for the
// lifetime of this process and no cross-instance sync happens.
type RedisConfig struct {
	Addr     string
	Password string //nolint:gosec // G117: Redis connection config
	DB       int
}

// StoreConfig holds snapshot persistence settings.
type StoreConfig struct {
	Key string // the single key the serialized snapshot lives under
}

// HolidayConfig holds public-holiday lookup settings.
type HolidayConfig struct {
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// Load reads configuration from environment variables. Defaults are
// safe for local development.
func Load() (*Config, error) {
	redisDB, err := getEnvInt("DAYGRID_REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	readTimeout, err := getEnvDuration("DAYGRID_SERVER_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	writeTimeout, err := getEnvDuration("DAYGRID_SERVER_WRITE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	holidayTimeout, err := getEnvDuration("DAYGRID_HOLIDAY_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	holidayTTL, err := getEnvDuration("DAYGRID_HOLIDAY_CACHE_TTL", 12*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	corsOrigins := getEnvList("DAYGRID_CORS_ORIGINS", []string{"http://localhost:5173"})

	cfg := &Config{
		Server: ServerConfig{
			Addr:         getEnv("DAYGRID_SERVER_ADDR", ":8080"),
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			CORSOrigins:  corsOrigins,
		},
		Redis: RedisConfig{
			Addr:     getEnv("DAYGRID_REDIS_ADDR", ""),
			Password: getEnv("DAYGRID_REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Store: StoreConfig{
			Key: getEnv("DAYGRID_STORE_KEY", "daygrid:tasks"),
		},
		Holiday: HolidayConfig{
			BaseURL:  getEnv("DAYGRID_HOLIDAY_BASE_URL", ""),
			Timeout:  holidayTimeout,
			CacheTTL: holidayTTL,
		},
	}

	err = cfg.validate()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	return cfg, nil
}

// validate checks required fields and value bounds.
func (c *Config) validate() error {
	if c.Store.Key == "" {
		return errors.New("DAYGRID_STORE_KEY must not be empty")
	}

	if c.Redis.Addr == "" {
		log.Warn().Msg("DAYGRID_REDIS_ADDR is unset; tasks persist only in this process and cross-instance sync is off")
	}

	// Bounds checks.
	if c.Redis.DB < 0 {
		return fmt.Errorf("DAYGRID_REDIS_DB must be >= 0, got %d", c.Redis.DB)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("DAYGRID_SERVER_READ_TIMEOUT must be positive, got %s", c.Server.ReadTimeout)
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("DAYGRID_SERVER_WRITE_TIMEOUT must be positive, got %s", c.Server.WriteTimeout)
	}
	if c.Holiday.Timeout <= 0 {
		return fmt.Errorf("DAYGRID_HOLIDAY_TIMEOUT must be positive, got %s", c.Holiday.Timeout)
	}
	if c.Holiday.CacheTTL <= 0 {
		return fmt.Errorf("DAYGRID_HOLIDAY_CACHE_TTL must be positive, got %s", c.Holiday.CacheTTL)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as int: %w", key, v, err)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q as duration: %w", key, v, err)
	}
	return d, nil
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

package config

import (
	"fmt"
	"sync"
	"time"

	"space-booking-api/core/constants"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Host     string
	Port     int
	LogLevel string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type QueueConfig struct {
	Concurrency      int
	BackoffBase      time.Duration
	RetentionMinutes int
}

// Retention is how long terminal task records stay visible in the queue.
func (q QueueConfig) Retention() time.Duration {
	return time.Duration(q.RetentionMinutes) * time.Minute
}

type LockConfig struct {
	Lease          time.Duration
	AcquireTimeout time.Duration
	RetryInterval  time.Duration
}

type BookingConfig struct {
	SubmitTimeout time.Duration
	RulesCacheTTL time.Duration
}

type AuthConfig struct {
	JWTSecret string
}

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Queue    QueueConfig
	Lock     LockConfig
	Booking  BookingConfig
	Auth     AuthConfig
}

var (
	instance    *Config
	mu          sync.RWMutex
	initialized bool
)

// Load reads configuration from the environment (and .env when present)
// and stores the singleton returned by Get/GetSafe.
func Load() (*Config, error) {
	// .env is optional; real deployments inject env vars directly.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 7070)
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "space_booking")
	v.SetDefault("DB_SSLMODE", constants.DatabaseSSLMode)

	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("QUEUE_CONCURRENCY", 10)
	v.SetDefault("QUEUE_BACKOFF_BASE_MS", constants.AdmissionBackoffBaseMS)
	v.SetDefault("QUEUE_RETENTION_MINUTES", constants.AdmissionRetentionMinutes)

	v.SetDefault("LOCK_LEASE_MS", constants.LockLeaseMS)
	v.SetDefault("LOCK_ACQUIRE_TIMEOUT_MS", constants.LockAcquireTimeoutMS)
	v.SetDefault("LOCK_RETRY_INTERVAL_MS", constants.LockRetryIntervalMS)

	v.SetDefault("BOOKING_SUBMIT_TIMEOUT_MS", constants.SubmitWaitTimeoutMS)
	v.SetDefault("RULES_CACHE_TTL_SECONDS", constants.RulesCacheTTLSeconds)

	v.SetDefault("JWT_SECRET", "")

	cfg := &Config{
		Server: ServerConfig{
			Host:     v.GetString("SERVER_HOST"),
			Port:     v.GetInt("SERVER_PORT"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Queue: QueueConfig{
			Concurrency:      v.GetInt("QUEUE_CONCURRENCY"),
			BackoffBase:      time.Duration(v.GetInt("QUEUE_BACKOFF_BASE_MS")) * time.Millisecond,
			RetentionMinutes: v.GetInt("QUEUE_RETENTION_MINUTES"),
		},
		Lock: LockConfig{
			Lease:          time.Duration(v.GetInt("LOCK_LEASE_MS")) * time.Millisecond,
			AcquireTimeout: time.Duration(v.GetInt("LOCK_ACQUIRE_TIMEOUT_MS")) * time.Millisecond,
			RetryInterval:  time.Duration(v.GetInt("LOCK_RETRY_INTERVAL_MS")) * time.Millisecond,
		},
		Booking: BookingConfig{
			SubmitTimeout: time.Duration(v.GetInt("BOOKING_SUBMIT_TIMEOUT_MS")) * time.Millisecond,
			RulesCacheTTL: time.Duration(v.GetInt("RULES_CACHE_TTL_SECONDS")) * time.Second,
		},
		Auth: AuthConfig{
			JWTSecret: v.GetString("JWT_SECRET"),
		},
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	mu.Lock()
	instance = cfg
	initialized = true
	mu.Unlock()

	return cfg, nil
}

// Get returns the loaded configuration, panicking when Load was never called.
func Get() *Config {
	cfg, ok := GetSafe()
	if !ok {
		panic("config: Get called before Load")
	}
	return cfg
}

// GetSafe returns the loaded configuration and whether it is initialized.
func GetSafe() (*Config, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return instance, initialized
}

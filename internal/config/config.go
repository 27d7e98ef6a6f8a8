package config

import (
	"os"
	"strconv"
	"time"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for the published snapshot bucket.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// RedisConfig configures the distributed publish lock.
// An empty URL selects the in-process lock.
type RedisConfig struct {
	URL string
	// LockTTLSec is the lease length. The holder renews it every third of the
	// TTL, so it only bounds how long a crashed replica blocks a tenant.
	LockTTLSec int
}

// CareerConfig groups the tunables of the careers page pipeline.
type CareerConfig struct {
	// MaxPayloadMB is the serialized body size above which the payload guard sanitizes and rejects.
	MaxPayloadMB int
	// BodyLimitMB is the raw body ceiling enforced by the HTTP server itself.
	BodyLimitMB int
	// ReconcileSchedule is a robfig/cron spec; empty disables the reconciler.
	ReconcileSchedule string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost     string
	Port        string
	Env         string
	DebugErrors bool
	LogLevel    string
	Location    *time.Location
	Database    DatabaseConfig
	MinIO       MinIOConfig
	Redis       RedisConfig
	Career      CareerConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:     getEnv("APP_HOST", "localhost:8080"),
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("APP_ENV", "development"),
		DebugErrors: getEnvBool("DEBUG_ERRORS", false),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Location:    getEnvLocation("TZ_LOCATION", time.UTC),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", "career-pages"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Redis: RedisConfig{
			URL:        getEnv("REDIS_URL", ""),
			LockTTLSec: getEnvInt("LOCK_TTL_SEC", 30),
		},
		Career: CareerConfig{
			MaxPayloadMB:      getEnvInt("CAREER_MAX_PAYLOAD_MB", 10),
			BodyLimitMB:       getEnvInt("CAREER_BODY_LIMIT_MB", 50),
			ReconcileSchedule: getEnvRaw("CAREER_RECONCILE_SCHEDULE", "@every 15m"),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvRaw distinguishes an explicitly empty variable from an unset one.
func getEnvRaw(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvLocation(key string, def *time.Location) *time.Location {
	if v := os.Getenv(key); v != "" {
		loc, err := time.LoadLocation(v)
		if err == nil {
			return loc
		}
	}
	return def
}

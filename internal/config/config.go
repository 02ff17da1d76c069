/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Database backend selection.
type DatabaseBackend string

const (
	DatabasePostgres DatabaseBackend = "postgres"
	DatabaseMySQL    DatabaseBackend = "mysql"
	DatabaseSQLite   DatabaseBackend = "sqlite"
)

// Event bridge selection for multi-instance deployments.
type EventBridge string

const (
	BridgeNone  EventBridge = "none"
	BridgeNATS  EventBridge = "nats"
	BridgeRedis EventBridge = "redis"
)

// Config covers process level configuration read from environment variables.
type Config struct {
	Environment   string
	HTTPBind      string
	HTTPPort      int
	DBBackend     DatabaseBackend
	DBDSN         string
	JWTSigningKey string
	MetricsBind   string
	CatalogPath   string // Product catalog seed file (YAML)

	// Seed operator account, created on first migration if absent
	AdminEmail    string
	AdminPassword string

	// Event bridge configuration
	EventBridge   EventBridge
	NATSURL       string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	InstanceID    string

	// Tracing configuration
	TracingEnabled    bool
	OTLPEndpoint      string
	TracingSampleRate float64

	// S3 object storage for schedule exports
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3Region          string
	S3Bucket          string
	S3Endpoint        string // For S3-compatible services (MinIO, Spaces, etc.)
	S3UsePathStyle    bool   // Required for MinIO
}

// Load reads environment variables, applies defaults, and validates the result.
// A .env file in the working directory is honoured when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Environment:   getEnv("SKULD_ENV", "development"),
		HTTPBind:      getEnv("SKULD_HTTP_BIND", "0.0.0.0"),
		HTTPPort:      getEnvInt("SKULD_HTTP_PORT", 8080),
		DBBackend:     DatabaseBackend(getEnv("SKULD_DB_BACKEND", string(DatabaseSQLite))),
		DBDSN:         getEnv("SKULD_DB_DSN", ""),
		JWTSigningKey: getEnv("SKULD_JWT_SIGNING_KEY", ""),
		MetricsBind:   getEnv("SKULD_METRICS_BIND", "127.0.0.1:9000"),
		CatalogPath:   getEnv("SKULD_CATALOG_PATH", ""),

		AdminEmail:    getEnv("SKULD_ADMIN_EMAIL", ""),
		AdminPassword: getEnv("SKULD_ADMIN_PASSWORD", ""),

		EventBridge:   EventBridge(getEnv("SKULD_EVENT_BRIDGE", string(BridgeNone))),
		NATSURL:       getEnv("SKULD_NATS_URL", "nats://localhost:4222"),
		RedisAddr:     getEnv("SKULD_REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("SKULD_REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("SKULD_REDIS_DB", 0),
		InstanceID:    getEnv("SKULD_INSTANCE_ID", ""),

		TracingEnabled:    getEnvBool("SKULD_TRACING_ENABLED", false),
		OTLPEndpoint:      getEnv("SKULD_OTLP_ENDPOINT", "localhost:4317"),
		TracingSampleRate: getEnvFloat("SKULD_TRACING_SAMPLE_RATE", 1.0),

		S3AccessKeyID:     getEnv("SKULD_S3_ACCESS_KEY_ID", os.Getenv("AWS_ACCESS_KEY_ID")),
		S3SecretAccessKey: getEnv("SKULD_S3_SECRET_ACCESS_KEY", os.Getenv("AWS_SECRET_ACCESS_KEY")),
		S3Region:          getEnv("SKULD_S3_REGION", "us-east-1"),
		S3Bucket:          getEnv("SKULD_S3_BUCKET", ""),
		S3Endpoint:        getEnv("SKULD_S3_ENDPOINT", ""),
		S3UsePathStyle:    getEnvBool("SKULD_S3_USE_PATH_STYLE", false),
	}

	if cfg.DBBackend != DatabasePostgres && cfg.DBBackend != DatabaseMySQL && cfg.DBBackend != DatabaseSQLite {
		return nil, fmt.Errorf("unsupported database backend %q", cfg.DBBackend)
	}

	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("SKULD_DB_DSN must be provided")
	}

	if cfg.JWTSigningKey == "" {
		return nil, fmt.Errorf("SKULD_JWT_SIGNING_KEY must be provided")
	}

	if cfg.EventBridge != BridgeNone && cfg.EventBridge != BridgeNATS && cfg.EventBridge != BridgeRedis {
		return nil, fmt.Errorf("unsupported event bridge %q", cfg.EventBridge)
	}

	if strings.EqualFold(cfg.Environment, "production") && cfg.AdminPassword != "" && len(cfg.AdminPassword) < 8 {
		return nil, fmt.Errorf("SKULD_ADMIN_PASSWORD must be at least 8 characters in production")
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if val := os.Getenv(key); val != "" {
		val = strings.ToLower(strings.TrimSpace(val))
		if val == "true" || val == "1" || val == "yes" {
			return true
		}
		if val == "false" || val == "0" || val == "no" {
			return false
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return def
}

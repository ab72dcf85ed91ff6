// Package config provides configuration management for the shipment schedule service.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the complete application configuration.
type Config struct {
	Logging   LoggingConfig
	Database  DatabaseConfig
	Scheduler SchedulerConfig
}

// LoggingConfig holds logger configuration.
type LoggingConfig struct {
	Level  string
	Pretty bool
}

// DatabaseConfig holds MongoDB configuration.
type DatabaseConfig struct {
	URI          string
	DatabaseName string
	MaxPoolSize  uint64
	MinPoolSize  uint64

	ConnectTimeout         time.Duration
	ServerSelectionTimeout time.Duration
	SocketTimeout          time.Duration
}

// SchedulerConfig holds deferred-task configuration.
type SchedulerConfig struct {
	// CatchUomUpdateDelay is the default delay before a catch UOM mass
	// update runs. Negative values suppress scheduling entirely.
	CatchUomUpdateDelay time.Duration
}

// Load creates a Config from environment variables.
func Load() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: getEnvBool("LOG_PRETTY", false),
		},
		Database: DatabaseConfig{
			URI:                    getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			DatabaseName:           getEnv("MONGODB_DATABASE", "shipment_schedules"),
			MaxPoolSize:            getEnvUint64("MONGODB_MAX_POOL_SIZE", 50),
			MinPoolSize:            getEnvUint64("MONGODB_MIN_POOL_SIZE", 10),
			ConnectTimeout:         getEnvDuration("MONGODB_CONNECT_TIMEOUT", 10*time.Second),
			ServerSelectionTimeout: getEnvDuration("MONGODB_SERVER_SELECTION_TIMEOUT", 5*time.Second),
			SocketTimeout:          getEnvDuration("MONGODB_SOCKET_TIMEOUT", 30*time.Second),
		},
		Scheduler: SchedulerConfig{
			CatchUomUpdateDelay: getEnvDuration("CATCH_UOM_UPDATE_DELAY", 5*time.Second),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvUint64(key string, defaultValue uint64) uint64 {
	if v := os.Getenv(key); v != "" {
		if u, err := strconv.ParseUint(v, 10, 64); err == nil {
			return u
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

// Package config provides configuration structures and validation for the ledger service.
// It handles environment-based configuration for the HTTP server, the selected ledger
// storage backend, event publishing, the dashboard worker pool and the cycle scheduler.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Storage backends supported by the ledger store
const (
	BackendJSONFile = "jsonfile"
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
)

// Config holds the complete application configuration with settings for all components.
// Backend-specific sections are only validated when that backend is selected.
type Config struct {
	Application ApplicationConfig
	Logging     LoggingConfig
	Server      ServerConfig
	Storage     StorageConfig
	Kafka       KafkaConfig
	Postgres    PostgresConfig
	MongoDB     MongoDBConfig
	WorkerPool  WorkerPoolConfig
	Scheduler   SchedulerConfig
}

// ApplicationConfig contains general application configuration
type ApplicationConfig struct {
	Env  string
	Name string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string
}

// ServerConfig contains HTTP server configuration settings
type ServerConfig struct {
	Port            int           // Port to listen on
	ShutdownTimeout time.Duration // Grace period for server shutdown
	ReadTimeout     time.Duration // Maximum duration for reading entire request
	WriteTimeout    time.Duration // Maximum duration for writing response
	IdleTimeout     time.Duration // Maximum duration to wait for next request
}

// StorageConfig selects the ledger backend and the local file locations
type StorageConfig struct {
	Backend          string
	LedgerFilePath   string // JSON ledger, used by the jsonfile backend
	SettingsFilePath string // YAML categories/budgets/goals, used by every backend
}

// KafkaConfig contains Kafka configuration for ledger events
type KafkaConfig struct {
	Enabled           bool
	Brokers           string
	LedgerTopic       string
	NumPartitions     int
	ReplicationFactor int
	WriteTimeout      time.Duration
}

// PostgresConfig contains PostgreSQL configuration
type PostgresConfig struct {
	URL             string        // Database connection string
	MaxConns        int32         // Maximum number of open connections
	MinConns        int32         // Maximum number of idle connections
	ConnMaxLifetime time.Duration // Maximum lifetime of a connection
	ConnMaxIdleTime time.Duration // Maximum idle time of a connection
	MigrationsPath  string        // Path to migration files
}

// MongoDBConfig contains MongoDB configuration
type MongoDBConfig struct {
	URI             string
	Database        string
	Timeout         time.Duration
	MaxPoolSize     uint64
	MinPoolSize     uint64
	MaxConnIdleTime time.Duration
}

// WorkerPoolConfig contains worker pool configuration
type WorkerPoolConfig struct {
	Size int // Maximum number of concurrent aggregation workers
}

// SchedulerConfig controls the cycle-close cron job
type SchedulerConfig struct {
	Enabled bool
	Spec    string // Standard 5-field cron expression
}

// validate performs validation of all configuration values,
// ensuring they meet minimum requirements and logical constraints
func (c *Config) validate() error {
	var validationErrors []string

	// Validate Server config
	if c.Server.Port <= 0 {
		validationErrors = append(validationErrors, "SERVER_PORT must be greater than 0")
	}
	if c.Server.ShutdownTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_SHUTDOWN_TIMEOUT must be greater than 0")
	}
	if c.Server.ReadTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_READ_TIMEOUT must be greater than 0")
	}
	if c.Server.WriteTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_WRITE_TIMEOUT must be greater than 0")
	}
	if c.Server.IdleTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_IDLE_TIMEOUT must be greater than 0")
	}

	// Validate Storage config
	switch c.Storage.Backend {
	case BackendJSONFile:
		if c.Storage.LedgerFilePath == "" {
			validationErrors = append(validationErrors, "LEDGER_FILE_PATH is required for the jsonfile backend")
		}
	case BackendMongo:
		validationErrors = append(validationErrors, c.MongoDB.validate()...)
	case BackendPostgres:
		validationErrors = append(validationErrors, c.Postgres.validate()...)
	default:
		validationErrors = append(validationErrors, fmt.Sprintf("STORAGE_BACKEND must be one of %s, %s, %s", BackendJSONFile, BackendMongo, BackendPostgres))
	}
	if c.Storage.SettingsFilePath == "" {
		validationErrors = append(validationErrors, "SETTINGS_FILE_PATH is required")
	}

	// Validate Kafka config
	if c.Kafka.Enabled {
		if c.Kafka.Brokers == "" {
			validationErrors = append(validationErrors, "KAFKA_BROKERS is required")
		}
		if c.Kafka.LedgerTopic == "" {
			validationErrors = append(validationErrors, "KAFKA_LEDGER_TOPIC is required")
		}
		if c.Kafka.WriteTimeout <= 0 {
			validationErrors = append(validationErrors, "KAFKA_WRITE_TIMEOUT must be greater than 0")
		}
	}

	// Validate WorkerPool config
	if c.WorkerPool.Size <= 0 {
		validationErrors = append(validationErrors, "WORKER_POOL_SIZE must be greater than 0")
	}

	if c.Scheduler.Enabled && c.Scheduler.Spec == "" {
		validationErrors = append(validationErrors, "SCHEDULER_SPEC is required when the scheduler is enabled")
	}

	if len(validationErrors) > 0 {
		return errors.New(strings.Join(validationErrors, ", "))
	}

	return nil
}

func (c PostgresConfig) validate() []string {
	var validationErrors []string
	if c.URL == "" {
		validationErrors = append(validationErrors, "POSTGRES_URL is required")
	}
	if c.MaxConns <= 0 {
		validationErrors = append(validationErrors, "POSTGRES_MAX_CONNS must be greater than 0")
	}
	if c.MinConns <= 0 {
		validationErrors = append(validationErrors, "POSTGRES_MIN_CONNS must be greater than 0")
	}
	if c.ConnMaxLifetime <= 0 {
		validationErrors = append(validationErrors, "POSTGRES_MAX_CONN_LIFETIME must be greater than 0")
	}
	if c.ConnMaxIdleTime <= 0 {
		validationErrors = append(validationErrors, "POSTGRES_MAX_CONN_IDLE_TIME must be greater than 0")
	}
	return validationErrors
}

func (c MongoDBConfig) validate() []string {
	var validationErrors []string
	if c.URI == "" {
		validationErrors = append(validationErrors, "MONGO_URI is required")
	}
	if c.Database == "" {
		validationErrors = append(validationErrors, "MONGO_DATABASE is required")
	}
	if c.Timeout <= 0 {
		validationErrors = append(validationErrors, "MONGO_TIMEOUT must be greater than 0")
	}
	if c.MaxPoolSize <= 0 {
		validationErrors = append(validationErrors, "MONGO_MAX_POOL_SIZE must be greater than 0")
	}
	return validationErrors
}

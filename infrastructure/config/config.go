package config

import (
	"fmt"
	"os"
	"strconv"

	domainconfig "sketchddd/domain/config"
	"sketchddd/pkg/utils"
)

// Storage backends
const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageDynamoDB = "dynamodb"
)

// Metrics backends
const (
	MetricsNone       = "none"
	MetricsPrometheus = "prometheus"
	MetricsCloudWatch = "cloudwatch"
)

// Config holds all application configuration
type Config struct {
	Environment string `validate:"required,oneof=development staging production test"`

	// Storage
	StorageBackend string `validate:"required,oneof=memory sqlite postgres dynamodb"`
	SQLitePath     string `validate:"required_if=StorageBackend sqlite"`
	PostgresDSN    string `validate:"required_if=StorageBackend postgres"`

	// AWS configuration
	AWSRegion       string `validate:"required_if=StorageBackend dynamodb"`
	DynamoDBTable   string `validate:"required_if=StorageBackend dynamodb"`
	EventBusName    string
	MetricNamespace string

	// Logging
	LogLevel string `validate:"oneof=debug info warn error"`

	// Feature flags
	EnableEvents   bool
	MetricsBackend string `validate:"oneof=none prometheus cloudwatch"`
	EnableTracing  bool

	// Validation
	ParallelValidation bool
	MaxParallelism     int `validate:"gte=1"`

	// Query cache
	QueryCacheSize int `validate:"gte=1"`
	QueryCacheTTL  int `validate:"gte=0"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),

		StorageBackend: getEnv("STORAGE_BACKEND", StorageMemory),
		SQLitePath:     getEnv("SQLITE_PATH", "sketchddd.db"),
		PostgresDSN:    getEnv("POSTGRES_DSN", ""),

		AWSRegion:       getEnv("AWS_REGION", "us-west-2"),
		DynamoDBTable:   getEnv("DYNAMODB_TABLE", "sketchddd-models"),
		EventBusName:    getEnv("EVENT_BUS_NAME", "sketchddd-events"),
		MetricNamespace: getEnv("METRIC_NAMESPACE", "SketchDDD"),

		LogLevel: getEnv("LOG_LEVEL", "info"),

		EnableEvents:   getEnvBool("ENABLE_EVENTS", false),
		MetricsBackend: getEnv("METRICS_BACKEND", MetricsNone),
		EnableTracing:  getEnvBool("ENABLE_TRACING", false),

		ParallelValidation: getEnvBool("PARALLEL_VALIDATION", false),
		MaxParallelism:     getEnvInt("MAX_PARALLELISM", 4),

		QueryCacheSize: getEnvInt("QUERY_CACHE_SIZE", 256),
		QueryCacheTTL:  getEnvInt("QUERY_CACHE_TTL", 30),
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if err := utils.ValidateStruct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.EnableEvents && c.EventBusName == "" {
		return fmt.Errorf("EVENT_BUS_NAME is required when ENABLE_EVENTS is set")
	}
	return nil
}

// DomainConfig derives the validation thresholds for the environment
func (c *Config) DomainConfig() *domainconfig.DomainConfig {
	dc := domainconfig.LoadDomainConfig(c.Environment)
	if c.ParallelValidation {
		dc.ParallelValidation = true
	}
	if c.MaxParallelism > 0 {
		dc.MaxParallelism = c.MaxParallelism
	}
	return dc
}

// UsesAWS reports whether any configured backend talks to AWS
func (c *Config) UsesAWS() bool {
	return c.StorageBackend == StorageDynamoDB || c.EnableEvents || c.MetricsBackend == MetricsCloudWatch
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers for the budget list.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds application configuration
type Config struct {
	// Server
	Env             string
	Port            string
	ShutdownTimeout time.Duration

	// Budget store
	StoreDriver string
	SQLitePath  string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string

	// Budget alerts; an empty URL sends alerts to the log
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Data exports; a blob service URL switches from the local directory to
	// the blob container
	ExportDir           string
	AzureBlobServiceURL string
	AzureBlobContainer  string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "8080"),

		StoreDriver: getEnv("STORE_DRIVER", DriverSQLite),
		SQLitePath:  getEnv("SQLITE_PATH", "./data/ledgerly.db"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "ledgerly"),
		DBPassword:  getEnv("DB_PASSWORD", "ledgerly"),
		DBName:      getEnv("DB_NAME", "ledgerly"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "ledgerly"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "budget_alerts"),

		ExportDir:           getEnv("EXPORT_DIR", "./exports"),
		AzureBlobServiceURL: getEnv("AZURE_BLOB_SERVICE_URL", ""),
		AzureBlobContainer:  getEnv("AZURE_BLOB_CONTAINER", "exports"),
	}

	timeoutStr := getEnv("SHUTDOWN_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		log.Printf("Warning: invalid SHUTDOWN_TIMEOUT value '%s', falling back to 10s\n", timeoutStr)
		timeout = 10 * time.Second
	}
	config.ShutdownTimeout = timeout

	if err := config.Validate(); err != nil {
		return nil, err
	}

	appConfig = config
	return config, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid PORT %q", c.Port)
	}
	switch c.StoreDriver {
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite store")
		}
	case DriverPostgres:
		if c.DBHost == "" || c.DBName == "" {
			return fmt.Errorf("DB_HOST and DB_NAME are required for the postgres store")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q (use sqlite or postgres)", c.StoreDriver)
	}
	if c.AzureBlobServiceURL != "" && c.AzureBlobContainer == "" {
		return fmt.Errorf("AZURE_BLOB_CONTAINER is required when AZURE_BLOB_SERVICE_URL is set")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

// IsProduction reports whether the app runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

package database

import (
	"fmt"

	"ledgerly/internal/config"
)

// Config holds database configuration
type Config struct {
	Driver     string
	SQLitePath string
	Host       string
	Port       string
	User       string
	Password   string
	DBName     string
	SSLMode    string

	// MigrationsURL is the golang-migrate source for postgres schemas.
	MigrationsURL string
}

// NewConfig derives the database configuration from the application config.
func NewConfig(cfg *config.Config) *Config {
	return &Config{
		Driver:        cfg.StoreDriver,
		SQLitePath:    cfg.SQLitePath,
		Host:          cfg.DBHost,
		Port:          cfg.DBPort,
		User:          cfg.DBUser,
		Password:      cfg.DBPassword,
		DBName:        cfg.DBName,
		SSLMode:       cfg.DBSSLMode,
		MigrationsURL: "file://migrations",
	}
}

// DSN returns the PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// MigrateURL returns the postgres URL understood by golang-migrate.
func (c *Config) MigrateURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

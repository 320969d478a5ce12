package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Supported database drivers
const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	AppMode  string
	Port     string
	Database DatabaseConfig
	JWT      JWTConfig
	Seed     SeedConfig
	Accrual  AccrualConfig
}

// DatabaseConfig holds database configuration. Driver selects one of the
// interchangeable persistence backends; the rest of the application never
// depends on which one is active.
type DatabaseConfig struct {
	Driver   string
	Path     string // sqlite file path
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string // postgres only
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret          string
	AccessTokenMins int
}

// SeedConfig holds seed data configuration
type SeedConfig struct {
	AccountantEmail    string
	AccountantName     string
	AccountantPassword string
	SampleData         bool
}

// AccrualConfig holds the monthly dues accrual job configuration
type AccrualConfig struct {
	Enabled bool
	Spec    string // cron spec, default: first day of month at midnight
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Get APP_MODE (default to "dev") - trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	config := &Config{
		AppMode:  appMode,
		Port:     getEnv("PORT", "3000"),
		Database: loadDatabaseConfig(appMode),
		JWT:      loadJWTConfig(appMode),
		Seed:     loadSeedConfig(),
		Accrual:  loadAccrualConfig(),
	}

	if err := validateDatabaseConfig(config.Database); err != nil {
		return nil, err
	}

	// Set global config
	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s, DB: %s]", appMode, config.Database.Driver)
	return config, nil
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	return DatabaseConfig{
		Driver:   strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
		Path:     getEnv(prefix+"DB_PATH", "fundtrack.db"),
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", ""),
		User:     getEnv(prefix+"DB_USER", ""),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "fundtrack"),
		SSLMode:  getEnv(prefix+"DB_SSLMODE", "disable"),
	}
}

func validateDatabaseConfig(d DatabaseConfig) error {
	switch d.Driver {
	case DriverSQLite, DriverMySQL, DriverPostgres:
		return nil
	}
	return fmt.Errorf("invalid DB_DRIVER: '%s' (must be sqlite, mysql or postgres)", d.Driver)
}

// loadJWTConfig loads JWT config based on mode
func loadJWTConfig(mode string) JWTConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	accessMins, _ := strconv.Atoi(getEnv("ACCESS_TOKEN_MINUTES", "60"))

	return JWTConfig{
		Secret:          getEnv(prefix+"JWT_SECRET", "default_secret"),
		AccessTokenMins: accessMins,
	}
}

// loadSeedConfig loads seed data config
func loadSeedConfig() SeedConfig {
	sample, _ := strconv.ParseBool(getEnv("SEED_SAMPLE_DATA", "false"))

	return SeedConfig{
		AccountantEmail:    getEnv("SEED_ACCOUNTANT_EMAIL", "accountant@fds.com"),
		AccountantName:     getEnv("SEED_ACCOUNTANT_NAME", "Accountant"),
		AccountantPassword: getEnv("SEED_ACCOUNTANT_PASSWORD", "password123"),
		SampleData:         sample,
	}
}

// loadAccrualConfig loads the dues accrual job config
func loadAccrualConfig() AccrualConfig {
	enabled, _ := strconv.ParseBool(getEnv("ACCRUAL_ENABLED", "false"))

	return AccrualConfig{
		Enabled: enabled,
		Spec:    getEnv("ACCRUAL_CRON", "0 0 1 * *"),
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" && c.IsDev() {
		return "*"
	}
	return origins
}

// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage driver names accepted by StorageConfig.Driver.
const (
	StorageDriverMemory   = "memory"
	StorageDriverSQLite   = "sqlite"
	StorageDriverPostgres = "postgres"
	StorageDriverRedis    = "redis"
)

// Config holds all configuration for our application
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Storage  StorageConfig
	Catalog  CatalogConfig
	Checkout CheckoutConfig
	JWT      JWTConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string
	Version     string
	Environment string
	Debug       bool
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// RequestTimeout bounds a single request end to end, middleware included.
	RequestTimeout time.Duration
}

// StorageConfig contains durable key-value store configuration.
// The application state (cart, orders, users) is serialized whole per key,
// so any of the supported backends can hold it.
type StorageConfig struct {
	Driver     string
	SQLitePath string

	// Postgres settings, used when Driver is "postgres".
	PostgresHost     string
	PostgresPort     string
	PostgresName     string
	PostgresUser     string
	PostgresPassword string
	PostgresSSLMode  string

	// Redis settings, used when Driver is "redis".
	RedisHost         string
	RedisPort         string
	RedisPassword     string
	RedisDB           int
	RedisPoolSize     int
	RedisMinIdleConns int

	// WriteTimeout bounds a single persistence call; a timeout is treated
	// as a storage failure by the owning aggregate.
	WriteTimeout time.Duration
}

// CatalogConfig contains menu catalog configuration
type CatalogConfig struct {
	// MenuFile optionally points at a JSON file overriding the built-in menu.
	MenuFile string
}

// CheckoutConfig contains pricing rules applied at checkout
type CheckoutConfig struct {
	DeliveryFee       float64
	TaxRate           float64
	EstimatedDelivery time.Duration
}

// JWTConfig contains JWT token configuration
type JWTConfig struct {
	Secret            string
	AccessTokenExpiry time.Duration
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	BcryptCost         int
	RateLimitPerMinute int
	RateLimitBurst     int
	CORSAllowedOrigins []string
	CORSAllowedMethods []string
	CORSAllowedHeaders []string
	TrustedProxies     []string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	config := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Food Ordering Backend"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
			Debug:       getEnvAsBool("APP_DEBUG", true),
		},
		Server: ServerConfig{
			Port:         getEnv("APP_PORT", "8080"),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),

			RequestTimeout: getEnvAsDuration("SERVER_REQUEST_TIMEOUT", 30*time.Second),
		},
		Storage: StorageConfig{
			Driver:            getEnv("STORAGE_DRIVER", StorageDriverSQLite),
			SQLitePath:        getEnv("STORAGE_SQLITE_PATH", "data/foodorder.db"),
			PostgresHost:      getEnv("DB_HOST", "localhost"),
			PostgresPort:      getEnv("DB_PORT", "5432"),
			PostgresName:      getEnv("DB_NAME", "foodorder_db"),
			PostgresUser:      getEnv("DB_USER", "foodorder_user"),
			PostgresPassword:  getEnv("DB_PASSWORD", "foodorder_password"),
			PostgresSSLMode:   getEnv("DB_SSL_MODE", "disable"),
			RedisHost:         getEnv("REDIS_HOST", "localhost"),
			RedisPort:         getEnv("REDIS_PORT", "6379"),
			RedisPassword:     getEnv("REDIS_PASSWORD", ""),
			RedisDB:           getEnvAsInt("REDIS_DB", 0),
			RedisPoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			RedisMinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 5),
			WriteTimeout:      getEnvAsDuration("STORAGE_WRITE_TIMEOUT", 5*time.Second),
		},
		Catalog: CatalogConfig{
			MenuFile: getEnv("CATALOG_MENU_FILE", ""),
		},
		Checkout: CheckoutConfig{
			DeliveryFee:       getEnvAsFloat("CHECKOUT_DELIVERY_FEE", 5.0),
			TaxRate:           getEnvAsFloat("CHECKOUT_TAX_RATE", 0.10),
			EstimatedDelivery: getEnvAsDuration("CHECKOUT_ESTIMATED_DELIVERY", 45*time.Minute),
		},
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", "your-super-secret-jwt-key-change-in-production"),
			AccessTokenExpiry: getEnvAsDuration("JWT_ACCESS_EXPIRE", 24*time.Hour),
		},
		Security: SecurityConfig{
			BcryptCost:         getEnvAsInt("BCRYPT_COST", 12),
			RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 100),
			RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 50),
			CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:19006"}),
			CORSAllowedMethods: getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			CORSAllowedHeaders: getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Accept", "Authorization"}),
			TrustedProxies:     getEnvAsSlice("TRUSTED_PROXIES", []string{}),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "debug"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	// Validate JWT secret
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters long")
	}

	switch c.Storage.Driver {
	case StorageDriverMemory:
	case StorageDriverSQLite:
		if c.Storage.SQLitePath == "" {
			return fmt.Errorf("STORAGE_SQLITE_PATH is required for the sqlite driver")
		}
	case StorageDriverPostgres:
		if c.Storage.PostgresHost == "" {
			return fmt.Errorf("DB_HOST is required for the postgres driver")
		}
		if c.Storage.PostgresName == "" {
			return fmt.Errorf("DB_NAME is required for the postgres driver")
		}
		if c.Storage.PostgresUser == "" {
			return fmt.Errorf("DB_USER is required for the postgres driver")
		}
	case StorageDriverRedis:
		if c.Storage.RedisHost == "" {
			return fmt.Errorf("REDIS_HOST is required for the redis driver")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}

	if c.Checkout.DeliveryFee < 0 {
		return fmt.Errorf("CHECKOUT_DELIVERY_FEE cannot be negative")
	}
	if c.Checkout.TaxRate < 0 || c.Checkout.TaxRate > 1 {
		return fmt.Errorf("CHECKOUT_TAX_RATE must be between 0 and 1")
	}

	// Validate server port
	if c.Server.Port == "" {
		return fmt.Errorf("APP_PORT is required")
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetPostgresDSN returns the postgres connection string
func (c *Config) GetPostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Storage.PostgresHost,
		c.Storage.PostgresPort,
		c.Storage.PostgresUser,
		c.Storage.PostgresPassword,
		c.Storage.PostgresName,
		c.Storage.PostgresSSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Storage.RedisHost, c.Storage.RedisPort)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/tropicaldog17/oraclewatch/internal/db"
)

const (
	defaultEnv            = "development"
	defaultServerPort     = 8080
	defaultPriceOracle    = "priceoracle.near"
	defaultWeb4Gateway    = "https://rpc.web4.near.page"
	defaultRateLimitRPS   = 20
	defaultRateLimitBurst = 40
)

// Config keeps the runtime configuration for the service.
type Config struct {
	Env      string
	LogLevel string
	Server   ServerConfig
	Database db.Config
	Oracle   OracleConfig
	Registry RegistryConfig
	Limits   RateLimitConfig
}

// ServerConfig holds HTTP server related settings.
type ServerConfig struct {
	Port int
}

// Addr renders the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// OracleConfig names the upstream oracle contract whose views are preloaded, and the web4
// gateway that serves them to the preview tool.
type OracleConfig struct {
	AccountID  string
	GatewayURL string
}

// RegistryConfig controls privileged registry writes and bootstrap.
type RegistryConfig struct {
	AdminSecret string
	SeedFile    string
}

type RateLimitConfig struct {
	RequestsPerSecond int
	Burst             int
}

// IsProduction reports whether the service runs with production defaults.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load builds Config from an optional .env file and environment variables.
func Load() (*Config, error) {
	// a missing .env is fine, variables may come from the environment
	_ = godotenv.Load()

	env := getString("APP_ENV", defaultEnv)

	port, err := getInt("SERVER_PORT", defaultServerPort)
	if err != nil {
		return nil, err
	}
	rps, err := getInt("RATE_LIMIT_RPS", defaultRateLimitRPS)
	if err != nil {
		return nil, err
	}
	burst, err := getInt("RATE_LIMIT_BURST", defaultRateLimitBurst)
	if err != nil {
		return nil, err
	}

	dbCfg, err := loadDatabase()
	if err != nil {
		return nil, err
	}

	logLevel := "debug"
	if env == "production" {
		logLevel = "info"
	}

	return &Config{
		Env:      env,
		LogLevel: getString("LOG_LEVEL", logLevel),
		Server:   ServerConfig{Port: port},
		Database: *dbCfg,
		Oracle: OracleConfig{
			AccountID:  getString("PRICE_ORACLE_ACCOUNT", defaultPriceOracle),
			GatewayURL: getString("WEB4_GATEWAY_URL", defaultWeb4Gateway),
		},
		Registry: RegistryConfig{
			AdminSecret: os.Getenv("ADMIN_SECRET"),
			SeedFile:    os.Getenv("REGISTRY_SEED_FILE"),
		},
		Limits: RateLimitConfig{
			RequestsPerSecond: rps,
			Burst:             burst,
		},
	}, nil
}

func loadDatabase() (*db.Config, error) {
	driver := strings.ToLower(getString("DB_DRIVER", db.DriverPostgres))
	if driver != db.DriverPostgres && driver != db.DriverSQLite {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
	return &db.Config{
		Driver:     driver,
		Host:       getString("DB_HOST", "localhost"),
		Port:       getString("DB_PORT", "5433"),
		User:       getString("DB_USER", "oraclewatch"),
		Password:   getString("DB_PASSWORD", "oraclewatch"),
		Name:       getString("DB_NAME", "oraclewatch"),
		SSLMode:    getString("DB_SSL_MODE", "disable"),
		SQLitePath: getString("SQLITE_PATH", "oraclewatch.db"),
	}, nil
}

func getString(key, fallback string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	return value
}

func getInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("convert %s value %q to int: %w", key, value, err)
	}
	return parsed, nil
}

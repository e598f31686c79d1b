package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Payroll  PayrollConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int
	MinConns int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
	// Timezone is the server-local calendar used to bucket attendance days.
	Timezone string
	// AllowedOrigins feeds the CORS middleware.
	AllowedOrigins []string
}

// PayrollConfig holds the environment-level payout defaults, all overridable
// per project where the project configures its own value.
type PayrollConfig struct {
	DefaultTeamShare      float64 // profit-share fraction, default 0.3
	DefaultExpectedDays   int     // expected working days per month, default 22
	ManagerMultiplier     float64 // project-manager payout multiplier, default 1.2
	DefaultGeofenceRadius float64 // meters, when a project sets a center but no radius
}

func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	dbMaxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	dbMinConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "workhive-crm"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: dbMaxConns,
		MinConns: dbMinConns,
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Timezone:       getEnv("APP_TIMEZONE", "Local"),
		AllowedOrigins: strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"), ","),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Payroll configuration
	teamShare, err := strconv.ParseFloat(getEnv("PAYROLL_DEFAULT_TEAM_SHARE", "0.3"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_DEFAULT_TEAM_SHARE: %w", err)
	}
	expectedDays, err := strconv.Atoi(getEnv("PAYROLL_DEFAULT_EXPECTED_DAYS", "22"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_DEFAULT_EXPECTED_DAYS: %w", err)
	}
	multiplier, err := strconv.ParseFloat(getEnv("PAYROLL_MANAGER_MULTIPLIER", "1.2"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_MANAGER_MULTIPLIER: %w", err)
	}
	geofenceRadius, err := strconv.ParseFloat(getEnv("GEOFENCE_DEFAULT_RADIUS_M", "100"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid GEOFENCE_DEFAULT_RADIUS_M: %w", err)
	}

	config.Payroll = PayrollConfig{
		DefaultTeamShare:      teamShare,
		DefaultExpectedDays:   expectedDays,
		ManagerMultiplier:     multiplier,
		DefaultGeofenceRadius: geofenceRadius,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Payroll.DefaultTeamShare <= 0 || c.Payroll.DefaultTeamShare > 1 {
		return fmt.Errorf("PAYROLL_DEFAULT_TEAM_SHARE must be within (0, 1]")
	}
	if c.Payroll.DefaultExpectedDays <= 0 {
		return fmt.Errorf("PAYROLL_DEFAULT_EXPECTED_DAYS must be positive")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	return nil
}

// Location resolves the configured server-local timezone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.App.Timezone)
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

package config

import (
	"os"
	"strconv"
)

// Config holds application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Auth     AuthConfig
	Mail     MailConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string
	Port string
}

// AuthConfig holds JWT and account bootstrap configuration
type AuthConfig struct {
	JWTSecret        string
	TokenTTLHours    int
	DefaultAdminPass string // password for the seeded admin account; change after first login
}

// MailConfig holds outbound email configuration.
// When SendGridAPIKey is empty the service runs with a log-only channel
// (development mode); logged deliveries count as accepted.
type MailConfig struct {
	SendGridAPIKey string
	FromEmail      string
	FromName       string
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "3306"),
			User:     getEnv("DB_USER", "root"),
			Password: os.Getenv("DB_PASSWORD"),
			DBName:   getEnv("DB_NAME", "campus_ccms"),
		},
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("PORT", getEnv("SERVER_PORT", "8080")),
		},
		Auth: AuthConfig{
			JWTSecret:        getEnv("JWT_SECRET", "ccms-secret-change-in-production"),
			TokenTTLHours:    getEnvInt("TOKEN_TTL_HOURS", 24),
			DefaultAdminPass: getEnv("DEFAULT_ADMIN_PASSWORD", "admin123"),
		},
		Mail: MailConfig{
			SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
			FromEmail:      getEnv("MAIL_FROM_EMAIL", "ccms@campus.edu"),
			FromName:       getEnv("MAIL_FROM_NAME", "Campus CCMS"),
		},
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Defaults applied when neither flags nor environment provide a value.
const (
	DefaultPort               = 8080
	DefaultDBDriver           = "mysql"
	DefaultDBPort             = "3306"
	DefaultSQLitePath         = "./car4me.db"
	DefaultAuditRetentionDays = 90
)

// Config holds all process configuration, resolved from the environment.
// CLI flags may override individual fields after Load.
type Config struct {
	Port        int
	Bind        string
	AllowSubnet string

	DBDriver   string // "mysql" or "sqlite"
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPath     string // sqlite database file

	// LegacyCompat reproduces two observed quirks of the original API:
	// unexpected handler failures answer 405 instead of 500, and the
	// vehicle list accepts filters without applying them.
	LegacyCompat bool

	AuditRetentionDays int
	LogFile            string
}

// Load resolves configuration from a .env file (if present) and the
// environment.
func Load() *Config {
	// Missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	return &Config{
		Port:               envInt("PORT", DefaultPort),
		Bind:               os.Getenv("BIND"),
		AllowSubnet:        os.Getenv("ALLOW_SUBNET"),
		DBDriver:           envOr("DB_DRIVER", DefaultDBDriver),
		DBHost:             os.Getenv("DB_HOST"),
		DBPort:             envOr("DB_PORT", DefaultDBPort),
		DBUser:             os.Getenv("DB_USER"),
		DBPassword:         os.Getenv("DB_PASSWORD"),
		DBName:             os.Getenv("DB_NAME"),
		DBPath:             envOr("DB_PATH", DefaultSQLitePath),
		LegacyCompat:       envBool("CAR4ME_LEGACY_COMPAT"),
		AuditRetentionDays: envInt("CAR4ME_AUDIT_RETENTION_DAYS", DefaultAuditRetentionDays),
		LogFile:            os.Getenv("LOG_FILE"),
	}
}

func envOr(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if v, err := strconv.Atoi(val); err == nil {
			return v
		}
	}
	return defaultVal
}

func envBool(key string) bool {
	val := os.Getenv(key)
	return val == "true" || val == "1"
}

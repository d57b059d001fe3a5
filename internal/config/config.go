package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Data backends
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// DefaultCheckInSchedule fires at 09:00 on the first day of every month
const DefaultCheckInSchedule = "0 0 9 1 * *"

type Config struct {
	// gRPC server
	GRPCPort string
	APIToken string

	// Persistence
	DataBackend   string
	DataFile      string
	EncryptionKey string
	SQLiteDBPath  string
	DBConnStr     string

	// Display-state publishing
	AMQPURL         string
	AMQPExchange    string
	WidgetStatePath string

	// Check-in reminder
	CheckInSchedule string
	CheckInTimezone string

	// Reports
	ProjectionMonths int

	// Logging
	LogLevel  string
	LogFormat string
}

// Load reads the configuration from the environment, applying defaults
func Load() *Config {
	return &Config{
		GRPCPort: getEnv("GRPC_PORT", "8080"),
		APIToken: getEnv("API_TOKEN", "dev-token"),

		DataBackend:   getEnv("DATA_BACKEND", BackendFile),
		DataFile:      getEnv("DATA_FILE", "./data/networth.enc"),
		EncryptionKey: getEnv("ENCRYPTION_KEY", ""),
		SQLiteDBPath:  getEnv("SQLITE_DB_PATH", "./data/networth.db"),
		DBConnStr:     postgresConnString(),

		AMQPURL:         getEnv("AMQP_URL", ""),
		AMQPExchange:    getEnv("AMQP_EXCHANGE", "networth"),
		WidgetStatePath: getEnv("WIDGET_STATE_PATH", ""),

		CheckInSchedule: getEnv("CHECKIN_SCHEDULE", DefaultCheckInSchedule),
		CheckInTimezone: getEnv("CHECKIN_TIMEZONE", "Local"),

		ProjectionMonths: getEnvInt("PROJECTION_MONTHS", 12),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}
}

// postgresConnString prefers DB_CONN_STR and otherwise builds one from the individual DB_* variables
func postgresConnString() string {
	if conn := os.Getenv("DB_CONN_STR"); conn != "" {
		return conn
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", "postgres"),
		getEnv("DB_NAME", "networth"),
	)
}

// Validate validates the configuration and returns an error listing every problem
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.GRPCPort); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.GRPCPort))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.APIToken == "" {
		errors = append(errors, "API token cannot be empty")
	}

	validBackends := []string{BackendMemory, BackendFile, BackendSQLite, BackendPostgres}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	switch c.DataBackend {
	case BackendFile:
		if c.DataFile == "" {
			errors = append(errors, "data file path cannot be empty when using file backend")
		}
		if c.EncryptionKey == "" {
			errors = append(errors, "ENCRYPTION_KEY is required when using file backend")
		}
	case BackendSQLite:
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		}
	case BackendPostgres:
		if c.DBConnStr == "" {
			errors = append(errors, "database connection string cannot be empty when using postgres backend")
		}
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
	}

	if _, err := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor).Parse(c.CheckInSchedule); err != nil {
		errors = append(errors, fmt.Sprintf("invalid check-in schedule '%s': %v", c.CheckInSchedule, err))
	}
	if _, err := time.LoadLocation(c.CheckInTimezone); err != nil {
		errors = append(errors, fmt.Sprintf("invalid check-in timezone '%s': %v", c.CheckInTimezone, err))
	}

	if c.ProjectionMonths < 1 || c.ProjectionMonths > 600 {
		errors = append(errors, fmt.Sprintf("invalid projection months %d: must be between 1 and 600", c.ProjectionMonths))
	}

	if c.LogFormat != "text" && c.LogFormat != "json" {
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be 'text' or 'json'", c.LogFormat))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// Location resolves the check-in timezone, falling back to time.Local
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.CheckInTimezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

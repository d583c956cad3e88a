package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Logging  LoggingConfig
	Market   MarketConfig
	Report   ReportConfig
	Leads    LeadsConfig
	Schedule ScheduleConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// LoggingConfig controls the slog handler and the optional Fluent Bit sink.
type LoggingConfig struct {
	Level     string // debug, info, warn, error
	JSON      bool
	Color     bool
	AddSource bool

	FluentEnabled bool
	FluentHost    string
	FluentPort    int
	FluentTag     string
}

// MarketConfig holds the market estimate cache settings.
type MarketConfig struct {
	RentTTL      time.Duration
	ShortTermTTL time.Duration
	MaxEntries   int
}

// ReportConfig holds report token settings.
// An empty FernetKey makes the server generate a key at start-up,
// which invalidates issued tokens on restart.
type ReportConfig struct {
	FernetKey string
	TokenTTL  time.Duration
}

// LeadsConfig holds lead hand-off settings. Without a RabbitMQURL leads are only logged.
type LeadsConfig struct {
	RabbitMQURL    string
	Exchange       string
	RoutingKey     string
	PublishTimeout time.Duration
}

// ScheduleConfig holds cron specs for background jobs.
type ScheduleConfig struct {
	CacheSweep      string
	ReferenceReload string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/simulator.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{
				"http://localhost:3000",
				"http://localhost",
			}),
		},
		Logging: LoggingConfig{
			Level:         strings.ToLower(getEnv("LOG_LEVEL", "info")),
			JSON:          getEnvBool("LOG_JSON", false),
			Color:         getEnvBool("LOG_COLOR", true),
			AddSource:     getEnvBool("LOG_ADD_SOURCE", false),
			FluentEnabled: getEnvBool("FLUENTBIT_ENABLED", false),
			FluentHost:    getEnv("FLUENTBIT_HOST", "localhost"),
			FluentTag:     getEnv("FLUENTBIT_TAG", "simulator"),
		},
		Market: MarketConfig{},
		Report: ReportConfig{
			FernetKey: getEnv("REPORT_FERNET_KEY", ""),
		},
		Leads: LeadsConfig{
			RabbitMQURL: getEnv("RABBITMQ_URL", ""),
			Exchange:    getEnv("LEADS_EXCHANGE", "leads"),
			RoutingKey:  getEnv("LEADS_ROUTING_KEY", "lead.created"),
		},
		Schedule: ScheduleConfig{
			CacheSweep:      getEnv("SCHEDULE_CACHE_SWEEP", "@every 1m"),
			ReferenceReload: getEnv("SCHEDULE_REFERENCE_RELOAD", "@every 1h"),
		},
	}

	var err error
	if config.Logging.FluentPort, err = getEnvInt("FLUENTBIT_PORT", 24224); err != nil {
		return nil, err
	}
	if config.Market.MaxEntries, err = getEnvInt("MARKET_CACHE_MAX_ENTRIES", 1000); err != nil {
		return nil, err
	}
	if config.Market.RentTTL, err = getEnvDuration("MARKET_RENT_TTL", 10*time.Minute); err != nil {
		return nil, err
	}
	if config.Market.ShortTermTTL, err = getEnvDuration("MARKET_SHORT_TERM_TTL", 15*time.Minute); err != nil {
		return nil, err
	}
	if config.Report.TokenTTL, err = getEnvDuration("REPORT_TOKEN_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if config.Leads.PublishTimeout, err = getEnvDuration("LEADS_PUBLISH_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

// getEnvList splits a comma-separated variable, dropping empty items.
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	Server     ServerConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Widget     WidgetConfig
	Payouts    PayoutConfig
	DataSource string
	DataKey    string
	LogLevel   string
	Env        string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type ServerConfig struct {
	Port          string
	PublicBaseURL string
}

type RedisConfig struct {
	URL string
}

type JWTConfig struct {
	Secret string
}

type WidgetConfig struct {
	CacheTTL        time.Duration
	RateLimitPerMin int
}

type PayoutConfig struct {
	MinimumCents int64
}

const (
	DataSourceDemo  = "demo"
	DataSourceMySQL = "mysql"
)

func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	cacheTTL, err := time.ParseDuration(getEnv("WIDGET_CACHE_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid WIDGET_CACHE_TTL: %w", err)
	}
	rateLimit, err := strconv.Atoi(getEnv("WIDGET_RATE_LIMIT", "120"))
	if err != nil {
		return nil, fmt.Errorf("invalid WIDGET_RATE_LIMIT: %w", err)
	}
	minPayout, err := strconv.ParseInt(getEnv("MIN_PAYOUT_CENTS", "1000"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid MIN_PAYOUT_CENTS: %w", err)
	}

	config := &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "3306"),
			User:     getEnv("DB_USER", ""),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "organizer_portal"),
		},
		Server: ServerConfig{
			Port:          getEnv("SERVER_PORT", "8080"),
			PublicBaseURL: strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-default-secret-key"),
		},
		Widget: WidgetConfig{
			CacheTTL:        cacheTTL,
			RateLimitPerMin: rateLimit,
		},
		Payouts: PayoutConfig{
			MinimumCents: minPayout,
		},
		DataSource: strings.ToLower(getEnv("DATA_SOURCE", DataSourceDemo)),
		DataKey:    getEnv("DATA_KEY", ""),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		Env:        getEnv("ENVIRONMENT", "development"),
	}

	switch config.DataSource {
	case DataSourceDemo, DataSourceMySQL:
	default:
		return nil, fmt.Errorf("unknown DATA_SOURCE %q", config.DataSource)
	}
	if config.DataSource == DataSourceMySQL && len(config.DataKey) != 32 {
		return nil, fmt.Errorf("DATA_KEY must be 32 bytes when DATA_SOURCE=mysql")
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"

	PresenceScopeGlobal  = "global"
	PresenceScopeRelated = "related"
)

type Config struct {
	// Application
	AppEnv   string
	AppPort  string
	LogLevel string

	// Storage
	StoreDriver string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	SeedFile    string // optional .xlsx of users and skills loaded at startup

	// Presence mirror (optional)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Security
	JWTSecret   string
	JWTTTLHours int

	// Telegram notifier (optional)
	BotToken string

	// Rate Limiting
	RateLimitPerUser       int
	RateLimitPerIP         int
	RateLimitWindowSeconds int

	// Real-time gateway
	WSMaxMessageBytes    int64
	WSEventsPerSecond    float64
	WSEventBurst         int
	WSSendBuffer         int
	PresenceScope        string
	MaxMessageLength     int
	MaxRequestNoteLength int
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:   getEnv("APP_ENV", "development"),
		AppPort:  getEnv("APP_PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		StoreDriver: getEnv("STORE_DRIVER", StoreDriverPostgres),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "skillswap"),
		DBPassword:  getEnv("DB_PASSWORD", ""),
		DBName:      getEnv("DB_NAME", "skillswap_db"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),
		SeedFile:    getEnv("SEED_FILE", ""),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		JWTSecret:   getEnv("JWT_SECRET_KEY", ""),
		JWTTTLHours: getEnvInt("JWT_TTL_HOURS", 168),

		BotToken: getEnv("BOT_TOKEN", ""),

		RateLimitPerUser:       getEnvInt("RATE_LIMIT_PER_USER", 60),
		RateLimitPerIP:         getEnvInt("RATE_LIMIT_PER_IP", 300),
		RateLimitWindowSeconds: getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),

		WSMaxMessageBytes:    getEnvInt64("WS_MAX_MESSAGE_BYTES", 4096),
		WSEventsPerSecond:    getEnvFloat("WS_EVENTS_PER_SECOND", 10),
		WSEventBurst:         getEnvInt("WS_EVENT_BURST", 20),
		WSSendBuffer:         getEnvInt("WS_SEND_BUFFER", 256),
		PresenceScope:        getEnv("PRESENCE_SCOPE", PresenceScopeGlobal),
		MaxMessageLength:     getEnvInt("MAX_MESSAGE_LENGTH", 2000),
		MaxRequestNoteLength: getEnvInt("MAX_REQUEST_NOTE_LENGTH", 500),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.StoreDriver != StoreDriverPostgres && c.StoreDriver != StoreDriverMemory {
		return fmt.Errorf("STORE_DRIVER must be %q or %q", StoreDriverPostgres, StoreDriverMemory)
	}
	if c.StoreDriver == StoreDriverPostgres && c.DBPassword == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET_KEY must be at least 32 characters")
	}
	if c.PresenceScope != PresenceScopeGlobal && c.PresenceScope != PresenceScopeRelated {
		return fmt.Errorf("PRESENCE_SCOPE must be %q or %q", PresenceScopeGlobal, PresenceScopeRelated)
	}
	if c.WSSendBuffer <= 0 {
		return fmt.Errorf("WS_SEND_BUFFER must be positive")
	}
	if c.MaxMessageLength <= 0 {
		return fmt.Errorf("MAX_MESSAGE_LENGTH must be positive")
	}
	return nil
}

func (c *Config) ValidateProductionSecurity() error {
	if c.AppEnv != "production" {
		return nil
	}

	if c.StoreDriver != StoreDriverPostgres {
		return fmt.Errorf("STORE_DRIVER must be 'postgres' in production")
	}
	if c.DBSSLMode != "require" {
		return fmt.Errorf("DB_SSLMODE must be 'require' in production")
	}
	if c.JWTSecret == "your_jwt_secret_minimum_32_chars_here_change_this" {
		return fmt.Errorf("JWT_SECRET_KEY must be changed from default in production")
	}

	return nil
}

func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

func (c *Config) GetJWTTTL() time.Duration {
	return time.Duration(c.JWTTTLHours) * time.Hour
}

func (c *Config) GetRateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowSeconds) * time.Second
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Telegram
	BotToken   string
	AdminTgID  int64
	WorkerPool int

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Application
	AppEnv   string
	LogLevel string

	// Rate limiting
	RateLimitPerUser int

	// Economy
	WelcomeCoins  int64
	FastMatchCost int64
	TicketCost    int64
	LotteryPayout int64

	// Matchmaking
	QueueStaleSeconds int
	MaxAgeGap         int

	// Scheduler
	LotteryDrawSpec         string
	EvictionIntervalSeconds int
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		BotToken:   getEnv("BOT_TOKEN", ""),
		WorkerPool: getEnvInt("WORKER_POOL", 10),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "chatbot"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "chatbot_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		RateLimitPerUser: getEnvInt("RATE_LIMIT_PER_USER", 20),

		WelcomeCoins:  getEnvInt64("WELCOME_COINS", 10),
		FastMatchCost: getEnvInt64("FAST_MATCH_COST", 5),
		TicketCost:    getEnvInt64("TICKET_COST", 5),
		LotteryPayout: getEnvInt64("LOTTERY_PAYOUT", 100),

		QueueStaleSeconds: getEnvInt("QUEUE_STALE_SECONDS", 600),
		MaxAgeGap:         getEnvInt("MAX_AGE_GAP", 5),

		LotteryDrawSpec:         getEnv("LOTTERY_DRAW_SPEC", "@daily"),
		EvictionIntervalSeconds: getEnvInt("EVICTION_INTERVAL_SECONDS", 60),
	}

	// Parse admin telegram ID
	adminStr := getEnv("ADMIN_TELEGRAM_ID", "")
	if adminStr != "" {
		id, err := strconv.ParseInt(adminStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ADMIN_TELEGRAM_ID: %w", err)
		}
		cfg.AdminTgID = id
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.BotToken == "" {
		return fmt.Errorf("BOT_TOKEN is required")
	}
	if c.DBPassword == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.FastMatchCost <= 0 {
		return fmt.Errorf("FAST_MATCH_COST must be positive")
	}
	if c.TicketCost <= 0 {
		return fmt.Errorf("TICKET_COST must be positive")
	}
	if c.LotteryPayout <= 0 {
		return fmt.Errorf("LOTTERY_PAYOUT must be positive")
	}
	if c.QueueStaleSeconds <= 0 {
		return fmt.Errorf("QUEUE_STALE_SECONDS must be positive")
	}
	if c.EvictionIntervalSeconds <= 0 {
		return fmt.Errorf("EVICTION_INTERVAL_SECONDS must be positive")
	}
	return nil
}

func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

func (c *Config) QueueStaleWindow() time.Duration {
	return time.Duration(c.QueueStaleSeconds) * time.Second
}

func (c *Config) EvictionInterval() time.Duration {
	return time.Duration(c.EvictionIntervalSeconds) * time.Second
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

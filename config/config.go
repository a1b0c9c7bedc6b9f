package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort  string `mapstructure:"APP_PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Mongo connection for the booking store.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr        string `mapstructure:"REDIS_ADDR"`
	RedisPassword    string `mapstructure:"REDIS_PASSWORD"`
	RedisHoldDB      int    `mapstructure:"REDIS_HOLD_DB"`
	RedisReminderDB  int    `mapstructure:"REDIS_REMINDER_DB"`
	TableHoldMinutes int    `mapstructure:"TABLE_HOLD_MINUTES"`

	// Conversation tokens.
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	ConversationHours int    `mapstructure:"CONVERSATION_TOKEN_HOURS"`

	// When set, the agent talks to a remote booking API instead of the
	// in-process booking service.
	BookingAPIURL string `mapstructure:"BOOKING_API_URL"`

	// Timeout for collaborator calls (catalog, availability, reservation).
	BookingTimeoutSeconds int `mapstructure:"BOOKING_TIMEOUT_SECONDS"`

	MaxRequestsPerMin int `mapstructure:"MAX_REQUESTS_PER_MIN"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "dineflow")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_HOLD_DB", 0)
	viper.SetDefault("REDIS_REMINDER_DB", 1)
	viper.SetDefault("TABLE_HOLD_MINUTES", 5)
	viper.SetDefault("JWT_SECRET", "dineflow-dev-secret")
	viper.SetDefault("CONVERSATION_TOKEN_HOURS", 12)
	viper.SetDefault("BOOKING_API_URL", "")
	viper.SetDefault("BOOKING_TIMEOUT_SECONDS", 10)
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

// BookingTimeout returns the collaborator call timeout as a duration.
func BookingTimeout() time.Duration {
	secs := AppConfig.BookingTimeoutSeconds
	if secs <= 0 {
		secs = 10
	}
	return time.Duration(secs) * time.Second
}

// TableHoldTTL returns how long a suggested table stays held for a conversation.
func TableHoldTTL() time.Duration {
	mins := AppConfig.TableHoldMinutes
	if mins <= 0 {
		mins = 5
	}
	return time.Duration(mins) * time.Minute
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

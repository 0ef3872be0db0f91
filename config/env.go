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
	Server ServerConfig
	DB     DBConfig
	Redis  RedisConfig
	Auth   AuthConfig
	Alerts AlertsConfig
	Kafka  KafkaConfig
}

type ServerConfig struct {
	Port      string
	Timezone  string
	RateLimit string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type AlertsConfig struct {
	CronSchedule string
	WebhookURL   string
	Threshold    int64
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	tokenTTLHours, _ := strconv.Atoi(getEnv("AUTH_TOKEN_TTL_HOURS", "12"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	lowStockThreshold, _ := strconv.ParseInt(getEnv("LOW_STOCK_THRESHOLD", "10"), 10, 64)

	var brokers []string
	if raw := getEnv("KAFKA_BROKERS", ""); raw != "" {
		brokers = strings.Split(raw, ",")
	}

	return Config{
		Server: ServerConfig{
			Port:      getEnv("APP_PORT", "8080"),
			Timezone:  getEnv("APP_TIMEZONE", "Asia/Dhaka"),
			RateLimit: getEnv("RATE_LIMIT", "10-M"),
		},
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Name:     getEnv("DB_NAME", "inventra"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", "152fe54a-ac31-4d3c-b94b-6135cc25c55a"),
			TokenTTL:  time.Duration(tokenTTLHours) * time.Hour,
		},
		Alerts: AlertsConfig{
			CronSchedule: getEnv("LOW_STOCK_CRON", "0 8 * * *"),
			WebhookURL:   getEnv("LOW_STOCK_WEBHOOK_URL", ""),
			Threshold:    lowStockThreshold,
		},
		Kafka: KafkaConfig{
			Brokers: brokers,
			Topic:   getEnv("KAFKA_MOVEMENTS_TOPIC", "inventory.movements"),
		},
	}
}

// DSN builds the postgres connection string from the DB section.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

var ErrMissingDBHost = errors.New("environment variables not loaded properly: DB_HOST is empty")

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	AppPort    string
	AppEnv     string

	// BaseURL overrides the request-derived origin used for payment redirects.
	BaseURL         string
	StripeSecretKey string
	PaymentCurrency string

	AdminPassword     string
	AdminPasswordHash string
	JWTSecret         string
	CORSOrigin        string

	KafkaBrokers []string
	KafkaTopic   string
}

func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:            os.Getenv("DB_HOST"),
		DBUser:            os.Getenv("DB_USER"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            os.Getenv("DB_NAME"),
		DBPort:            os.Getenv("DB_PORT"),
		AppPort:           getEnv("APP_PORT", "8080"),
		AppEnv:            os.Getenv("APP_ENV"),
		BaseURL:           strings.TrimRight(os.Getenv("BASE_URL"), "/"),
		StripeSecretKey:   os.Getenv("STRIPE_SECRET_KEY"),
		PaymentCurrency:   getEnv("PAYMENT_CURRENCY", "usd"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		CORSOrigin:        getEnv("CORS_ORIGIN", "http://localhost:3000"),
		KafkaBrokers:      splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:        getEnv("KAFKA_TOPIC", "shop.orders"),
	}

	if cfg.DBHost == "" {
		return nil, ErrMissingDBHost
	}

	return cfg, nil
}

// PaymentsEnabled reports whether checkout should hand off to the payment processor.
func (c *Config) PaymentsEnabled() bool {
	return c.StripeSecretKey != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

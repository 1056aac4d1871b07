package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort  string
	AppEnv   string
	LogLevel string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables

	// Push gateway.
	PushRatePerSecond float64
	PushBurst         int

	// Sweep schedules (robfig/cron specs).
	CronUpcoming     string
	CronStarting     string
	CronEnding       string
	CronAutoComplete string

	// Mutation trigger stream poller.
	StreamPollInterval int // seconds
	StreamEnabled      bool

	JWTPrivateKeyPath string
	JWTPublicKeyPath  string
	JWTExpiryDays     int

	DefaultLanguage string
	AllowedOrigins  []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each collection.
type DynamoTables struct {
	Users         string
	Devices       string
	Notifications string
	Memberships   string
	Bookings      string
	Rooms         string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort:  getEnv("APP_PORT", "3000"),
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Users:         getEnv("DYNAMO_TABLE_USERS", "users"),
			Devices:       getEnv("DYNAMO_TABLE_DEVICES", "fcm_tokens"),
			Notifications: getEnv("DYNAMO_TABLE_NOTIFICATIONS", "notifications"),
			Memberships:   getEnv("DYNAMO_TABLE_MEMBERSHIPS", "memberships"),
			Bookings:      getEnv("DYNAMO_TABLE_BOOKINGS", "bookings"),
			Rooms:         getEnv("DYNAMO_TABLE_ROOMS", "rooms"),
		},

		PushRatePerSecond: getEnvFloat("PUSH_RATE_PER_SECOND", 50),
		PushBurst:         getEnvInt("PUSH_BURST", 100),

		CronUpcoming:     getEnv("CRON_UPCOMING", "@every 10m"),
		CronStarting:     getEnv("CRON_STARTING", "@every 5m"),
		CronEnding:       getEnv("CRON_ENDING", "@every 5m"),
		CronAutoComplete: getEnv("CRON_AUTO_COMPLETE", "@every 5m"),

		StreamPollInterval: getEnvInt("STREAM_POLL_INTERVAL_SECONDS", 2),
		StreamEnabled:      getEnv("STREAM_ENABLED", "true") == "true",

		JWTPrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", "./private_key.pem"),
		JWTPublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", "./public_key.pem"),
		JWTExpiryDays:     getEnvInt("JWT_EXPIRY_DAYS", 7),

		DefaultLanguage: getEnv("DEFAULT_LANGUAGE", "en"),
		AllowedOrigins:  strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

package config

import (
	"errors"
	"os"
	"strings"
	"time"
)

type AppConfig struct {
	Port     string
	GinMode  string
	LogLevel string

	MongoURI          string
	MongoDB           string
	MongoTransactions bool

	PostgresURI string
	RedisURL    string

	ListingsCacheTTL     time.Duration
	ListingsRequireAdmin bool
	CORSOrigins          []string

	JWT JWTConfig

	Mail MailConfig

	GCSBucket string

	OtelEnabled     bool
	OtelServiceName string
}

type JWTConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

type MailConfig struct {
	Transport       string // log | gmail
	User            string // inbox that receives contact/subscribe mail and sends the rest
	CredentialsFile string
	TokenFile       string
	Queue           bool
	Workers         int
}

// Load reads the process environment. Call godotenv.Load first when a .env
// file should be honored.
func Load() (AppConfig, error) {
	cfg := AppConfig{
		Port:     envStr("PORT", "8080"),
		GinMode:  envStr("GIN_MODE", ""),
		LogLevel: envStr("LOG_LEVEL", "info"),

		MongoURI:          envStr("MONGO_URI", ""),
		MongoDB:           envStr("MONGO_DB", "internhubs"),
		MongoTransactions: envBool("MONGO_TRANSACTIONS", false),

		PostgresURI: envStr("POSTGRES_URI", ""),
		RedisURL:    firstEnv("REDIS_ADDR", "REDIS_URI", "REDIS_URL"),

		ListingsCacheTTL:     envDuration("LISTINGS_CACHE_TTL", 60*time.Second),
		ListingsRequireAdmin: envBool("LISTINGS_REQUIRE_ADMIN", false),
		CORSOrigins:          envList("CORS_ORIGINS"),

		JWT: JWTConfig{
			Secret: envStr("JWT_SECRET", ""),
			Issuer: envStr("JWT_ISSUER", ""),
			TTL:    envDuration("JWT_TTL", 72*time.Hour),
		},

		Mail: MailConfig{
			Transport:       strings.ToLower(envStr("MAIL_TRANSPORT", "log")),
			User:            envStr("MAIL_USER", ""),
			CredentialsFile: envStr("GMAIL_CREDENTIALS_FILE", "credentials.json"),
			TokenFile:       envStr("GMAIL_TOKEN_FILE", "token.json"),
			Queue:           envBool("MAIL_QUEUE", false),
			Workers:         envInt("MAIL_WORKERS", 3),
		},

		GCSBucket: envStr("GCS_BUCKET", ""),

		OtelEnabled:     envBool("OTEL_ENABLED", false),
		OtelServiceName: envStr("OTEL_SERVICE_NAME", "internhubs"),
	}

	if cfg.MongoURI == "" {
		return cfg, errors.New("MONGO_URI environment variable is not set")
	}
	if cfg.JWT.Secret == "" {
		return cfg, errors.New("JWT_SECRET environment variable is not set")
	}
	switch cfg.Mail.Transport {
	case "log", "gmail":
	default:
		return cfg, errors.New("MAIL_TRANSPORT must be one of: log, gmail")
	}
	if cfg.Mail.User == "" && (cfg.Mail.Transport == "gmail" || cfg.Mail.Queue) {
		return cfg, errors.New("MAIL_USER environment variable is not set")
	}
	return cfg, nil
}

func firstEnv(names ...string) string {
	for _, n := range names {
		if v := strings.TrimSpace(os.Getenv(n)); v != "" {
			return v
		}
	}
	return ""
}

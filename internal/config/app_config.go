package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	AppPort               string
	AppEnv                string
	AppURL                string
	AppCorsAllowedOrigins []string

	MongoURI            string
	MongoDatabase       string
	MongoConnectRetries int

	RedisEnabled  bool
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	RealtimeEnabled   bool
	RealtimeChannel   string
	RealtimeQueueSize int

	JWTSecret     string
	JWTExp        int
	JWTCookieName string

	S3Bucket       string
	S3Region       string
	S3AccessKey    string
	S3SecretKey    string
	S3Endpoint     string
	S3PublicDomain string

	MediaMaxUploadMB int

	KafkaBrokers []string
	KafkaTopic   string

	MessageRateLimit         int
	MessageRateWindowSeconds int
	WSConnectRateSeconds     float64
	TrustedProxyCIDRs        []string

	OrphanMessageCleanupCron string
}

func LoadAppConfig() *AppConfig {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, reading from system environment variables")
	}

	return &AppConfig{
		AppPort:               mustGetEnv("APP_PORT"),
		AppEnv:                getEnv("APP_ENV", "development"),
		AppURL:                getEnv("APP_URL", "http://localhost:8080"),
		AppCorsAllowedOrigins: splitList(getEnv("APP_CORS_ALLOWED_ORIGINS", "*")),

		MongoURI:            mustGetEnv("MONGO_URI"),
		MongoDatabase:       getEnv("MONGO_DATABASE", "donatalk"),
		MongoConnectRetries: getEnvAsInt("MONGO_CONNECT_RETRIES", 5),

		RedisEnabled:  getEnvAsBool("REDIS_ENABLED", false),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		RealtimeEnabled:   getEnvAsBool("REALTIME_ENABLED", true),
		RealtimeChannel:   getEnv("REALTIME_CHANNEL", "donatalk:events"),
		RealtimeQueueSize: getEnvAsInt("REALTIME_QUEUE_SIZE", 1024),

		JWTSecret:     mustGetEnv("JWT_SECRET"),
		JWTExp:        getEnvAsInt("JWT_EXP", 72),
		JWTCookieName: getEnv("JWT_COOKIE_NAME", "jwt"),

		S3Bucket:       getEnv("S3_BUCKET", ""),
		S3Region:       getEnv("S3_REGION", ""),
		S3AccessKey:    getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:    getEnv("S3_SECRET_KEY", ""),
		S3Endpoint:     getEnv("S3_ENDPOINT", ""),
		S3PublicDomain: getEnv("S3_PUBLIC_DOMAIN", ""),

		MediaMaxUploadMB: getEnvAsInt("MEDIA_MAX_UPLOAD_MB", 25),

		KafkaBrokers: splitList(getEnv("KAFKA_BROKERS", "")),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "donatalk.chat-events"),

		MessageRateLimit:         getEnvAsInt("MESSAGE_RATE_LIMIT", 30),
		MessageRateWindowSeconds: getEnvAsInt("MESSAGE_RATE_WINDOW_SECONDS", 10),
		WSConnectRateSeconds:     getEnvAsFloat("WS_CONNECT_RATE_SECONDS", 1.0),
		TrustedProxyCIDRs:        splitList(getEnv("TRUSTED_PROXY_CIDRS", "")),

		OrphanMessageCleanupCron: getEnv("ORPHAN_MESSAGE_CLEANUP_CRON", "0 3 * * *"),
	}
}

func (c *AppConfig) StorageEnabled() bool {
	return c.S3Bucket != ""
}

func (c *AppConfig) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0 && c.KafkaTopic != ""
}

func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func mustGetEnv(key string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		slog.Error("Environment variable is required but not set", "key", key)
		os.Exit(1)
	}
	return value
}

func getEnvAsFloat(key string, fallback float64) float64 {
	valStr, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	val, err := strconv.ParseFloat(valStr, 64)
	if err != nil {
		slog.Warn("Environment variable must be a float, using fallback", "key", key, "value", valStr, "fallback", fallback)
		return fallback
	}
	return val
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valStr, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		slog.Warn("Environment variable must be an integer, using fallback", "key", key, "value", valStr, "fallback", fallback)
		return fallback
	}
	return val
}

func getEnvAsBool(key string, fallback bool) bool {
	valStr, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		slog.Warn("Environment variable must be a boolean, using fallback", "key", key, "value", valStr, "fallback", fallback)
		return fallback
	}
	return val
}

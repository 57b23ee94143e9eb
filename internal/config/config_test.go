package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_PORT", "8080")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoadAppConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		setRequiredEnv(t)

		cfg := LoadAppConfig()
		assert.Equal(t, "8080", cfg.AppPort)
		assert.Equal(t, "donatalk", cfg.MongoDatabase)
		assert.Equal(t, []string{"*"}, cfg.AppCorsAllowedOrigins)
		assert.True(t, cfg.RealtimeEnabled)
		assert.False(t, cfg.RedisEnabled)
		assert.Equal(t, 72, cfg.JWTExp)
		assert.Equal(t, "jwt", cfg.JWTCookieName)
		assert.Equal(t, 25, cfg.MediaMaxUploadMB)
		assert.Equal(t, 1.0, cfg.WSConnectRateSeconds)
		assert.Equal(t, "0 3 * * *", cfg.OrphanMessageCleanupCron)
		assert.False(t, cfg.StorageEnabled())
		assert.False(t, cfg.KafkaEnabled())
	})

	t.Run("Overrides", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("APP_CORS_ALLOWED_ORIGINS", "https://donatalk.app, https://admin.donatalk.app,")
		t.Setenv("REDIS_ENABLED", "true")
		t.Setenv("JWT_EXP", "12")
		t.Setenv("S3_BUCKET", "media")
		t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
		t.Setenv("WS_CONNECT_RATE_SECONDS", "0.5")
		t.Setenv("TRUSTED_PROXY_CIDRS", "10.0.0.0/8")

		cfg := LoadAppConfig()
		assert.Equal(t, []string{"https://donatalk.app", "https://admin.donatalk.app"}, cfg.AppCorsAllowedOrigins)
		assert.True(t, cfg.RedisEnabled)
		assert.Equal(t, 12, cfg.JWTExp)
		assert.True(t, cfg.StorageEnabled())
		assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
		assert.True(t, cfg.KafkaEnabled())
		assert.Equal(t, 0.5, cfg.WSConnectRateSeconds)
		assert.Equal(t, []string{"10.0.0.0/8"}, cfg.TrustedProxyCIDRs)
	})

	t.Run("Malformed Values Fall Back", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("JWT_EXP", "forever")
		t.Setenv("REDIS_ENABLED", "maybe")
		t.Setenv("WS_CONNECT_RATE_SECONDS", "fast")

		cfg := LoadAppConfig()
		assert.Equal(t, 72, cfg.JWTExp)
		assert.False(t, cfg.RedisEnabled)
		assert.Equal(t, 1.0, cfg.WSConnectRateSeconds)
	})
}

func TestValidator(t *testing.T) {
	v := NewValidator()

	type request struct {
		ChatID      string `json:"chatId" validate:"required,objectid"`
		MessageType string `json:"messageType" validate:"omitempty,message_type"`
	}

	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, v.Struct(request{ChatID: primitive.NewObjectID().Hex(), MessageType: "image"}))
		assert.NoError(t, v.Struct(request{ChatID: primitive.NewObjectID().Hex()}))
	})

	t.Run("Reports JSON Field Names", func(t *testing.T) {
		err := v.Struct(request{ChatID: "not-an-id"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "chatId")
		assert.Contains(t, err.Error(), "objectid")
	})

	t.Run("Unknown Message Type", func(t *testing.T) {
		err := v.Struct(request{ChatID: primitive.NewObjectID().Hex(), MessageType: "sticker"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "messageType")
	})
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(&AppConfig{WSConnectRateSeconds: 60})
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		allowed, delay := rl.Allow("198.51.100.1")
		require.True(t, allowed, "burst request %d", i)
		assert.Zero(t, delay)
	}

	allowed, delay := rl.Allow("198.51.100.1")
	assert.False(t, allowed)
	assert.Greater(t, delay, 50*time.Second)

	allowed, _ = rl.Allow("198.51.100.2")
	assert.True(t, allowed)

	t.Run("Non Positive Interval Uses One Second", func(t *testing.T) {
		fallback := NewRateLimiter(&AppConfig{})
		defer fallback.Stop()
		assert.Equal(t, 8*time.Second, fallback.ttl)
	})
}

func TestNewS3Client(t *testing.T) {
	assert.Nil(t, NewS3Client(&AppConfig{}))

	client := NewS3Client(&AppConfig{
		S3Bucket:    "media",
		S3Region:    "us-east-1",
		S3AccessKey: "test",
		S3SecretKey: "test",
		S3Endpoint:  "http://localhost:9090",
	})
	require.NotNil(t, client)
	assert.Equal(t, "us-east-1", client.Options().Region)
	assert.True(t, client.Options().UsePathStyle)
}

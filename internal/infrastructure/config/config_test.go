package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "test",
			Password: "test",
			Database: "test_db",
		},
		Redis: RedisConfig{
			Host: "localhost",
			Port: 6379,
		},
		Broker: BrokerConfig{
			ConsumerGroup:    "payment-service",
			BatchSize:        10,
			BlockDuration:    time.Second,
			RetryAttempts:    3,
			RetryBackoff:     time.Second,
			DeadLetterStream: "CREATE_ORDER.DLT",
		},
		Decision: DecisionConfig{
			BaseURL:          "http://localhost:8080",
			RequestTimeout:   10 * time.Second,
			BreakerThreshold: 5,
			BreakerTimeout:   30 * time.Second,
		},
	}
}

func TestConfig_Validate_Success(t *testing.T) {
	err := validConfig().Validate()
	assert.NoError(t, err)
}

func TestConfig_Validate_InvalidServerPort(t *testing.T) {
	tests := []struct {
		name string
		port int
	}{
		{"port too low", 0},
		{"port negative", -1},
		{"port too high", 99999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Server.Port = tt.port

			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "server.port")
		})
	}
}

func TestConfig_Validate_MissingBrokerGroup(t *testing.T) {
	cfg := validConfig()
	cfg.Broker.ConsumerGroup = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "broker.consumer_group")
}

func TestConfig_Validate_MissingDeadLetterStream(t *testing.T) {
	cfg := validConfig()
	cfg.Broker.DeadLetterStream = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "broker.dead_letter_stream")
}

func TestConfig_Validate_MissingDecisionBaseURL(t *testing.T) {
	cfg := validConfig()
	cfg.Decision.BaseURL = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "decision.base_url")
}

func TestConfig_Validate_ShortJWTSecret(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.JWTSecret = "too-short"

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "jwt_secret")
}

func TestConfig_Validate_CollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 0
	cfg.Database.Host = ""
	cfg.Broker.BatchSize = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port")
	assert.Contains(t, err.Error(), "database.host")
	assert.Contains(t, err.Error(), "broker.batch_size")
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "payments",
		Password: "secret",
		Database: "payments",
		SSLMode:  "require",
	}

	dsn := cfg.DatabaseDSN()
	assert.Equal(t, "host=db.internal port=5433 user=payments password=secret dbname=payments sslmode=require", dsn)
}

func TestRedisAddr(t *testing.T) {
	cfg := RedisConfig{Host: "cache.internal", Port: 6380}
	assert.Equal(t, "cache.internal:6380", cfg.RedisAddr())
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "payment-service", cfg.Broker.ConsumerGroup)
	assert.Equal(t, uint(3), cfg.Broker.RetryAttempts)
	assert.Equal(t, time.Second, cfg.Broker.RetryBackoff)
	assert.Equal(t, "CREATE_ORDER.DLT", cfg.Broker.DeadLetterStream)
	assert.Equal(t, "http://localhost:8080", cfg.Decision.BaseURL)
}

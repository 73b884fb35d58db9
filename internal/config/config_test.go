package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 12*time.Hour, cfg.AccessTokenTTL)
	assert.Equal(t, 5*time.Second, cfg.OrderTimeout)
	assert.Equal(t, time.Second, cfg.EventPublishTimeout)
	assert.Equal(t, int64(1), cfg.DefaultStatusID)
	assert.Equal(t, TransitionsOpen, cfg.StatusTransitions)
	assert.False(t, cfg.ConsumeOnOrder)
	assert.Empty(t, cfg.KafkaBrokers)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("CONSUME_ON_ORDER", "true")
	t.Setenv("STATUS_TRANSITIONS", "strict")
	t.Setenv("ORDER_TIMEOUT", "2s")
	t.Setenv("EVENT_PUBLISH_TIMEOUT", "300ms")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.ConsumeOnOrder)
	assert.Equal(t, TransitionsStrict, cfg.StatusTransitions)
	assert.Equal(t, 2*time.Second, cfg.OrderTimeout)
	assert.Equal(t, 300*time.Millisecond, cfg.EventPublishTimeout)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
}

func TestLoad_EmptySecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := Config{
		JWTSecret:         "s",
		AccessTokenTTL:    time.Hour,
		OrderTimeout:      time.Second,
		DefaultStatusID:   1,
		StatusTransitions: TransitionsOpen,
		MaxUploadBytes:    1024,
	}
	require.NoError(t, base.Validate())

	bad := base
	bad.StatusTransitions = "loose"
	assert.Error(t, bad.Validate())

	bad = base
	bad.OrderTimeout = 0
	assert.Error(t, bad.Validate())

	bad = base
	bad.DefaultStatusID = 0
	assert.Error(t, bad.Validate())

	bad = base
	bad.EventPublishTimeout = -time.Second
	assert.Error(t, bad.Validate())
}

func TestDSN(t *testing.T) {
	cfg := Config{
		PostgresHost:     "db",
		PostgresPort:     5433,
		PostgresUser:     "app",
		PostgresPassword: "p@ss",
		PostgresDB:       "shop",
		PostgresSSLMode:  "disable",
	}
	assert.Equal(t, "postgres://app:p%40ss@db:5433/shop?sslmode=disable", cfg.DSN())

	cfg.DatabaseURL = "postgres://other"
	assert.Equal(t, "postgres://other", cfg.DSN())
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("CACHE_PRODUCT_TTL", "")
	t.Setenv("PRODUCT_LIST_ORDER", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 60*time.Second, cfg.Cache.ProductTTL)
	assert.Equal(t, "newest", cfg.Cache.ListOrder)
	assert.Equal(t, 10<<20, cfg.Orders.MaxScreenshotBytes)
	assert.False(t, cfg.Kafka.Enabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("CACHE_PRODUCT_TTL", "90")
	t.Setenv("PRODUCT_LIST_ORDER", "oldest")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Database.Driver)
	assert.Equal(t, 90*time.Second, cfg.Cache.ProductTTL)
	assert.Equal(t, "oldest", cfg.Cache.ListOrder)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.Enabled())
}

func TestValidateRejectsUnknownListOrder(t *testing.T) {
	t.Setenv("PRODUCT_LIST_ORDER", "alphabetical")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidateRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mongo")

	_, err := Load()
	assert.Error(t, err)
}

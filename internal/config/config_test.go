package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, uint16(8080), cfg.HTTP.Port)
	assert.True(t, cfg.Pricing.VATRate.Equal(decimal.RequireFromString("0.15")))
	assert.True(t, cfg.Pricing.PlatformFeePercent.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, 168*time.Hour, cfg.Pricing.OfferTTL)
	assert.Equal(t, 5*time.Second, cfg.Psql.PingTimeout)
	assert.False(t, cfg.Storage.UseMemory())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PRICING_VAT_RATE", "0.2")
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("LOG_FORMAT", "JSON")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Pricing.VATRate.Equal(decimal.RequireFromString("0.2")))
	assert.True(t, cfg.Storage.UseMemory())
	assert.Equal(t, "json", cfg.Log.SlogFormat())
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "https://joaoguilherme.stays.com.br", cfg.StaysBaseURL)
	assert.Equal(t, "CK01H", cfg.DefaultListingID)
	assert.Equal(t, "BRL", cfg.PriceCurrency)
	assert.Equal(t, 5, cfg.StaysRPS)
	assert.Equal(t, 3, cfg.StaysMaxRetries)
	assert.Equal(t, 1800, cfg.ListingCacheTTLSeconds)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DEFAULT_LISTING_ID", "AP22B")
	t.Setenv("STAYS_RPS", "10")

	cfg := Load()
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, "AP22B", cfg.DefaultListingID)
	assert.Equal(t, 10, cfg.StaysRPS)
}

func TestLoadMalformedIntFallsBack(t *testing.T) {
	t.Setenv("HTTP_PORT", "not-a-port")
	cfg := Load()
	assert.Equal(t, 8080, cfg.HTTPPort)
}

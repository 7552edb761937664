package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, SessionStoreMemory, cfg.Sessions.Store)
	assert.Equal(t, 8*time.Hour, cfg.Sessions.TTL)
	assert.Equal(t, "Asia/Bangkok", cfg.Facility.Timezone)
	assert.Equal(t, 5*time.Minute, cfg.Cache.PatientTTL)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SESSION_STORE", "REDIS")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("CACHE_RECORDS_TTL", "not-a-duration")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, SessionStoreRedis, cfg.Sessions.Store)
	assert.Equal(t, 30*time.Minute, cfg.Sessions.TTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, time.Minute, cfg.Cache.RecordTTL)
}

func TestFacilityLocationFallback(t *testing.T) {
	assert.Equal(t, time.UTC, FacilityConfig{Timezone: "Mars/Olympus"}.Location())
	assert.Equal(t, time.UTC, FacilityConfig{}.Location())
}

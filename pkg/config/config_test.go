package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "FCFA", cfg.Currency)
	assert.Equal(t, 8, cfg.ReportDays)
	assert.True(t, cfg.SeedDemo)
	assert.Equal(t, "Africa/Dakar", cfg.TimeLocation().String())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("POS_REPORT_DAYS", "0")
	t.Setenv("POS_LOCATION", "Not/AZone")
	t.Setenv("POS_SEED_DEMO", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.ReportDays)
	assert.False(t, cfg.SeedDemo)
	assert.Equal(t, time.Local, cfg.TimeLocation())
}

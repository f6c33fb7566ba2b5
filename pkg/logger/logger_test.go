package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cloud-wave-best-zizon/till-service/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewConsoleOnly(t *testing.T) {
	log, err := New(&config.Config{LogMode: "production", LogLevel: "warn"})
	require.NoError(t, err)

	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))
}

func TestNewWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "till.log")

	log, err := New(&config.Config{LogLevel: "bogus", LogFile: path})
	require.NoError(t, err)

	log.Info("session opened")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "session opened")
}

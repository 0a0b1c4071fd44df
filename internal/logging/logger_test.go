package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "nile-cgpa.log")

	logger, err := New(path, "info", false)
	require.NoError(t, err)
	logger.Debug("hidden")
	logger.Info("service started")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"service started"`)
	assert.Contains(t, string(data), `"time":`)
	assert.NotContains(t, string(data), "hidden")
}

func TestNewVerboseEnablesDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")

	logger, err := New(path, "warn", true)
	require.NoError(t, err)
	logger.Debug("details")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "details")
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "x.log"), "loud", false)
	assert.ErrorContains(t, err, `invalid log level "loud"`)
}

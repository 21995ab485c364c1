package logger_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/tdd-builder/internal/logger"
)

func TestSetup_InvalidLevel(t *testing.T) {
	cfg := logger.DefaultConfig()
	cfg.Level = "loud"
	require.Error(t, logger.Setup(cfg))
}

func TestSetup_FileOutput(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	path := filepath.Join(t.TempDir(), "tdd.log")
	cfg := logger.LogConfig{Level: "debug", Format: "json", Output: path}
	require.NoError(t, logger.Setup(cfg))

	l := logger.WithComponent("test")
	l.Info().Msg("hello")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"component":"test"`)
	assert.Contains(t, string(data), `"message":"hello"`)

	require.NoError(t, logger.Setup(logger.DefaultConfig()))
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(&buf)
	l.Warn().Str("field", "ID").Msg("missing")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "ID", entry["field"])
}

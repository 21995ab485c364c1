package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/tdd-builder/internal/config"
	"github.com/rezonia/tdd-builder/internal/tdd"
	"github.com/rezonia/tdd-builder/internal/uuid5"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "D", cfg.Reporter.DocumentScope)
	assert.Equal(t, "01", cfg.Reporter.ReporterRole)
	assert.Equal(t, "S", cfg.Document.TypeCode)
	assert.Equal(t, tdd.DefaultCustomizationID, cfg.Document.CustomizationID)
	assert.Equal(t, tdd.DefaultProfileID, cfg.Document.ProfileID)
	assert.Equal(t, uuid5.PeppolViDANamespace, cfg.Namespace())
	assert.False(t, cfg.Document.DeriveUUID)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 5*time.Minute, cfg.Server.WriteTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tdd.yaml")
	content := `
reporter:
  reporting_party: "0235:1234567890"
  receiving_party: "0242:000001"
  representative: "0242:000002"
  tax_authority_id: AE-FTA
document:
  type_code: R
  derive_uuid: true
server:
  address: ":9090"
  read_timeout: 10s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0235:1234567890", cfg.Reporter.ReportingParty)
	assert.Equal(t, "0242:000001", cfg.Reporter.ReceivingParty)
	assert.Equal(t, "AE-FTA", cfg.Reporter.TaxAuthorityID)
	assert.Equal(t, "R", cfg.Document.TypeCode)
	assert.True(t, cfg.Document.DeriveUUID)
	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	// untouched keys keep their defaults
	assert.Equal(t, "D", cfg.Reporter.DocumentScope)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tdd.yaml")
	require.NoError(t, os.WriteFile(path, []byte("reporter:\n  reporter_role: \"01\"\n"), 0o600))
	t.Setenv("TDD_REPORTER_REPORTER_ROLE", "02")
	t.Setenv("TDD_LOG_LEVEL", "debug")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "02", cfg.Reporter.ReporterRole)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "debug", cfg.LoggerConfig().Level)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*config.Config)
		errKey string
	}{
		{"scope", func(c *config.Config) { c.Reporter.DocumentScope = "X" }, "reporter.document_scope"},
		{"role", func(c *config.Config) { c.Reporter.ReporterRole = "03" }, "reporter.reporter_role"},
		{"type code", func(c *config.Config) { c.Document.TypeCode = "Q" }, "document.type_code"},
		{"namespace", func(c *config.Config) { c.Document.UUIDNamespace = "not-a-uuid" }, "document.uuid_namespace"},
		{"receiving party", func(c *config.Config) { c.Reporter.ReceivingParty = "000001" }, "reporter.receiving_party"},
		{"log level", func(c *config.Config) { c.Log.Level = "loud" }, "log.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.modify(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errKey)
		})
	}
}

func TestWriteExample_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, config.WriteExample(&buf, config.Default()))
	assert.Contains(t, buf.String(), "customization_id:")
	assert.Contains(t, buf.String(), "read_timeout: 30s")

	path := filepath.Join(t.TempDir(), "example.yaml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

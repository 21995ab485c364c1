// Package config loads tdd-builder settings from defaults, an optional YAML
// file and TDD_ prefixed environment variables.
package config

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/rezonia/tdd-builder/internal/codelist"
	"github.com/rezonia/tdd-builder/internal/logger"
	"github.com/rezonia/tdd-builder/internal/peppolid"
	"github.com/rezonia/tdd-builder/internal/tdd"
	"github.com/rezonia/tdd-builder/internal/uuid5"
)

// EnvPrefix is prepended to every environment variable name
const EnvPrefix = "TDD"

// Config holds all application configuration.
type Config struct {
	Reporter ReporterConfig `mapstructure:"reporter" yaml:"reporter"`
	Document DocumentConfig `mapstructure:"document" yaml:"document"`
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
}

// ReporterConfig identifies who reports to whom.
// Party identifiers are written as "icd:value", e.g. "0242:000001".
type ReporterConfig struct {
	ReportingParty   string `mapstructure:"reporting_party" yaml:"reporting_party"`
	ReceivingParty   string `mapstructure:"receiving_party" yaml:"receiving_party"`
	Representative   string `mapstructure:"representative" yaml:"representative"`
	TaxAuthorityID   string `mapstructure:"tax_authority_id" yaml:"tax_authority_id"`
	TaxAuthorityName string `mapstructure:"tax_authority_name" yaml:"tax_authority_name"`
	DocumentScope    string `mapstructure:"document_scope" yaml:"document_scope"`
	ReporterRole     string `mapstructure:"reporter_role" yaml:"reporter_role"`
}

// DocumentConfig holds document level defaults.
type DocumentConfig struct {
	TypeCode        string `mapstructure:"type_code" yaml:"type_code"`
	CustomizationID string `mapstructure:"customization_id" yaml:"customization_id"`
	ProfileID       string `mapstructure:"profile_id" yaml:"profile_id"`
	UUIDNamespace   string `mapstructure:"uuid_namespace" yaml:"uuid_namespace"`

	// DeriveUUID derives the TDD UUID from the source document instead of
	// generating a random one
	DeriveUUID bool `mapstructure:"derive_uuid" yaml:"derive_uuid"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Address      string        `mapstructure:"address" yaml:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	Debug        bool          `mapstructure:"debug" yaml:"debug"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	Output string `mapstructure:"output" yaml:"output"`
}

var defaults = map[string]any{
	"reporter.reporting_party":    "",
	"reporter.receiving_party":    "",
	"reporter.representative":     "",
	"reporter.tax_authority_id":   "",
	"reporter.tax_authority_name": "",
	"reporter.document_scope":     string(codelist.DocumentScopeDomestic),
	"reporter.reporter_role":      string(codelist.ReporterRoleSender),

	"document.type_code":        string(codelist.DocumentTypeSubmit),
	"document.customization_id": tdd.DefaultCustomizationID,
	"document.profile_id":       tdd.DefaultProfileID,
	"document.uuid_namespace":   uuid5.PeppolViDANamespace.String(),
	"document.derive_uuid":      false,

	"server.address":       ":8080",
	"server.read_timeout":  "30s",
	"server.write_timeout": "5m",
	"server.debug":         false,

	"log.level":  "info",
	"log.format": "console",
	"log.output": "stderr",
}

// Load reads configuration from the YAML file at path (optional) and
// environment variables with the TDD_ prefix. Environment wins over the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
		// Bind explicitly so nested keys resolve during Unmarshal
		_ = v.BindEnv(key)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Default returns the configuration without file or environment overrides
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		// Defaults are static and always decode
		panic(err)
	}
	return cfg
}

// Validate checks enumerated values, identifiers and the namespace syntax
func (c *Config) Validate() error {
	if _, err := codelist.ParseDocumentScope(c.Reporter.DocumentScope); err != nil {
		return fmt.Errorf("reporter.document_scope: %w", err)
	}
	if _, err := codelist.ParseReporterRole(c.Reporter.ReporterRole); err != nil {
		return fmt.Errorf("reporter.reporter_role: %w", err)
	}
	if _, err := codelist.ParseDocumentTypeCode(c.Document.TypeCode); err != nil {
		return fmt.Errorf("document.type_code: %w", err)
	}
	if _, err := uuid5.ParseNamespace(c.Document.UUIDNamespace); err != nil {
		return fmt.Errorf("document.uuid_namespace: %w", err)
	}

	validator := peppolid.NewPeppolValidator()
	parties := []struct {
		key   string
		value string
	}{
		{"reporter.reporting_party", c.Reporter.ReportingParty},
		{"reporter.receiving_party", c.Reporter.ReceivingParty},
		{"reporter.representative", c.Reporter.Representative},
	}
	for _, p := range parties {
		if p.value != "" && !validator.IsValueValid(peppolid.DefaultScheme, p.value) {
			return fmt.Errorf("%s: '%s' is not a valid participant identifier", p.key, p.value)
		}
	}

	if _, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level)); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// Namespace returns the configured UUID namespace
func (c *Config) Namespace() uuid.UUID {
	ns, err := uuid5.ParseNamespace(c.Document.UUIDNamespace)
	if err != nil || ns == nil {
		return uuid5.PeppolViDANamespace
	}
	return *ns
}

// LoggerConfig converts the log section for logger.Setup
func (c *Config) LoggerConfig() logger.LogConfig {
	lc := logger.DefaultConfig()
	lc.Level = c.Log.Level
	lc.Format = c.Log.Format
	lc.Output = c.Log.Output
	return lc
}

// WriteExample renders cfg as YAML, suitable as a starting config file
func WriteExample(w io.Writer, cfg *Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return enc.Close()
}

// Package service converts UBL business documents into tax data documents.
// It is shared by the CLI and the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/rezonia/tdd-builder/internal/codelist"
	"github.com/rezonia/tdd-builder/internal/config"
	"github.com/rezonia/tdd-builder/internal/conformance"
	"github.com/rezonia/tdd-builder/internal/logger"
	"github.com/rezonia/tdd-builder/internal/model"
	"github.com/rezonia/tdd-builder/internal/peppolid"
	"github.com/rezonia/tdd-builder/internal/tdd"
	"github.com/rezonia/tdd-builder/internal/ubl"
)

// Options control a single conversion
type Options struct {
	// TypeCode overrides the configured document type code when set
	TypeCode codelist.DocumentTypeCode

	// DeriveUUID overrides the configured UUID derivation when set
	DeriveUUID *bool

	// Validate runs the conformance check on the serialized output
	Validate bool
}

// Result is the outcome of a conversion
type Result struct {
	Source      ubl.Source
	TaxData     *model.TaxData
	XML         []byte
	Validation  *model.ValidationReport
	Conformance *conformance.Report
	Omitted     bool
	Duration    time.Duration
}

// Converter turns source documents into TDDs using one configuration
type Converter struct {
	cfg       *config.Config
	registry  *ubl.Registry
	validator conformance.Validator
	log       zerolog.Logger
	now       func() time.Time
}

// Option configures a Converter
type Option func(*Converter)

// WithLogger sets the logger used by the converter and its builders
func WithLogger(log zerolog.Logger) Option {
	return func(c *Converter) {
		c.log = log
	}
}

// WithValidator replaces the conformance validator
func WithValidator(v conformance.Validator) Option {
	return func(c *Converter) {
		c.validator = v
	}
}

// WithClock sets the time source for issue dates
func WithClock(now func() time.Time) Option {
	return func(c *Converter) {
		c.now = now
	}
}

// NewConverter creates a converter. A nil cfg uses config.Default().
func NewConverter(cfg *config.Config, opts ...Option) *Converter {
	if cfg == nil {
		cfg = config.Default()
	}
	c := &Converter{
		cfg:      cfg,
		registry: ubl.NewRegistry(),
		log:      logger.WithComponent("service"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.validator == nil {
		c.validator = conformance.NewStructuralValidatorWithLogger(c.log)
	}
	return c
}

// Config returns the configuration the converter was created with
func (c *Converter) Config() *config.Config {
	return c.cfg
}

// Convert parses content as a UBL invoice or credit note and builds the TDD.
// When the builder rejects the document, the returned Result carries the
// validation report and the error is that report.
func (c *Converter) Convert(ctx context.Context, content []byte, opts Options) (*Result, error) {
	start := time.Now()

	src, err := c.registry.Parse(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source document: %w", err)
	}

	typeCode := opts.TypeCode
	if typeCode == "" {
		typeCode, err = codelist.ParseDocumentTypeCode(c.cfg.Document.TypeCode)
		if err != nil {
			return nil, fmt.Errorf("document.type_code: %w", err)
		}
	}
	derive := c.cfg.Document.DeriveUUID
	if opts.DeriveUUID != nil {
		derive = *opts.DeriveUUID
	}

	b := c.newBuilder(typeCode)
	if derive {
		b.UUIDFromTokens(DerivationTokens(src)...)
	}
	b.ReportedTransaction(func(rt *tdd.ReportedTransactionBuilder) {
		rt.InitFromSource(src)
	})

	result := &Result{Source: src}
	result.Validation = b.Validate(false)

	td, err := b.Build()
	if err != nil {
		var report *model.ValidationReport
		if errors.As(err, &report) {
			result.Validation = report
		}
		result.Duration = time.Since(start)
		return result, err
	}
	result.TaxData = td
	result.Omitted = td.ReportedTransactions[0].ReportedDocument == nil

	result.XML, err = model.Marshal(td)
	if err != nil {
		return nil, err
	}

	if opts.Validate {
		result.Conformance, err = c.validator.Validate(ctx, result.XML)
		if err != nil {
			return nil, fmt.Errorf("conformance check failed: %w", err)
		}
	}

	result.Duration = time.Since(start)
	c.log.Info().
		Str("kind", string(src.Kind())).
		Str("id", src.Header().ID).
		Str("type", typeCode.ID()).
		Bool("omitted", result.Omitted).
		Dur("duration", result.Duration).
		Msg("TDD created")
	return result, nil
}

// Validate runs the conformance check on a serialized TDD
func (c *Converter) Validate(ctx context.Context, data []byte) (*conformance.Report, error) {
	return c.validator.Validate(ctx, data)
}

// newBuilder creates a top-level builder with every reporter setting applied.
// Invalid or missing reporter values are left for the builder to report.
func (c *Converter) newBuilder(typeCode codelist.DocumentTypeCode) *tdd.Builder {
	r := c.cfg.Reporter
	b := tdd.NewBuilder(
		tdd.WithLogger(c.log),
		tdd.WithNamespace(c.cfg.Namespace()),
		tdd.WithClock(c.now),
	).
		CustomizationID(c.cfg.Document.CustomizationID).
		ProfileID(c.cfg.Document.ProfileID).
		DocumentTypeCode(typeCode).
		DocumentScope(codelist.DocumentScope(r.DocumentScope)).
		ReporterRole(codelist.ReporterRole(r.ReporterRole)).
		TaxAuthorityID(r.TaxAuthorityID).
		TaxAuthorityName(r.TaxAuthorityName)

	if id := participant(r.ReportingParty); id != nil {
		b.ReportingParty(id)
	}
	if id := participant(r.ReceivingParty); id != nil {
		b.ReceivingParty(id)
	}
	if id := participant(r.Representative); id != nil {
		b.ReportersRepresentative(id)
	}
	return b
}

// participant accepts both "icd:value" and "scheme::icd:value".
// Malformed values are kept so that the builder reports them.
func participant(s string) *peppolid.Identifier {
	if s == "" {
		return nil
	}
	id, err := peppolid.Parse(s)
	if err != nil {
		return peppolid.WithDefaultScheme(s)
	}
	return id
}

// DerivationTokens returns the values a deterministic TDD UUID is derived
// from: seller endpoint scheme and value, type code, document ID and issue date
func DerivationTokens(src ubl.Source) []string {
	h := src.Header()
	endpoint := h.AccountingSupplierParty.Party.EndpointID
	return []string{endpoint.SchemeID, endpoint.Value, src.TypeCode(), h.ID, h.IssueDate}
}

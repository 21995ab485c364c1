package tdd

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rezonia/tdd-builder/internal/codelist"
	"github.com/rezonia/tdd-builder/internal/model"
	"github.com/rezonia/tdd-builder/internal/peppolid"
	"github.com/rezonia/tdd-builder/internal/uuid5"
)

// Document level defaults
const (
	DefaultCustomizationID = "urn:peppol:schema:taxdata:1.0::TaxData##urn:peppol:taxdata:ViDA-1::1.0"
	DefaultProfileID       = "urn:peppol:taxreporting"
)

// ICDServiceProvider is the ICD that receiving parties and reporter's
// representatives must use
const ICDServiceProvider = "0242"

// Option configures a Builder
type Option func(*Builder)

// WithLogger sets the logger used for diagnostics of the builder and all
// builders it creates
func WithLogger(log zerolog.Logger) Option {
	return func(b *Builder) {
		b.log = log
	}
}

// WithIdentifierValidator replaces the participant identifier validator
func WithIdentifierValidator(v peppolid.Validator) Option {
	return func(b *Builder) {
		b.validator = v
	}
}

// WithNamespace sets the namespace used by UUIDFromTokens
func WithNamespace(ns uuid.UUID) Option {
	return func(b *Builder) {
		b.namespace = ns
	}
}

// WithClock sets the time source for the issue date and time defaults
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		b.now = now
	}
}

// Builder builds a complete tax data document
type Builder struct {
	base
	validator peppolid.Validator
	namespace uuid.UUID
	now       func() time.Time

	customizationID         string
	profileID               string
	uuid                    string
	issueDate               *time.Time
	issueTime               *time.Time
	documentTypeCode        codelist.DocumentTypeCode
	documentScope           codelist.DocumentScope
	reporterRole            codelist.ReporterRole
	taxAuthorityID          string
	taxAuthorityName        string
	reportingParty          *peppolid.Identifier
	receivingParty          *peppolid.Identifier
	reportersRepresentative *peppolid.Identifier
	reportedTransaction     *ReportedTransactionBuilder
}

// NewBuilder creates a builder with the default customization and profile
// IDs, a random UUID and the current issue date and time
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		base:      newBase(nil),
		validator: peppolid.NewPeppolValidator(),
		namespace: uuid5.PeppolViDANamespace,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b.CustomizationID(DefaultCustomizationID).
		ProfileID(DefaultProfileID).
		RandomUUID().
		IssueDateTimeNow()
}

func (b *Builder) CustomizationID(id string) *Builder {
	b.customizationID = id
	return b
}

func (b *Builder) ProfileID(id string) *Builder {
	b.profileID = id
	return b
}

func (b *Builder) UUID(id string) *Builder {
	b.uuid = id
	return b
}

// RandomUUID sets a random (version 4) UUID
func (b *Builder) RandomUUID() *Builder {
	return b.UUID(uuid.NewString())
}

// UUIDFromTokens sets a name-based UUID derived from the tokens joined by a
// single space, using the builder's namespace
func (b *Builder) UUIDFromTokens(tokens ...string) *Builder {
	ns := b.namespace
	return b.UUID(uuid5.FromTokens(&ns, tokens...).String())
}

func (b *Builder) IssueDate(d time.Time) *Builder {
	b.issueDate = &d
	return b
}

// IssueTime sets the issue time; sub-millisecond precision is dropped
func (b *Builder) IssueTime(t time.Time) *Builder {
	t = t.Truncate(time.Millisecond)
	b.issueTime = &t
	return b
}

// IssueDateTimeNow sets issue date and time from the builder's clock
func (b *Builder) IssueDateTimeNow() *Builder {
	now := b.now()
	return b.IssueDate(now).IssueTime(now)
}

func (b *Builder) DocumentTypeCode(c codelist.DocumentTypeCode) *Builder {
	b.documentTypeCode = c
	return b
}

func (b *Builder) DocumentScope(s codelist.DocumentScope) *Builder {
	b.documentScope = s
	return b
}

func (b *Builder) ReporterRole(r codelist.ReporterRole) *Builder {
	b.reporterRole = r
	return b
}

func (b *Builder) TaxAuthorityID(id string) *Builder {
	b.taxAuthorityID = id
	return b
}

func (b *Builder) TaxAuthorityName(name string) *Builder {
	b.taxAuthorityName = name
	return b
}

func (b *Builder) ReportingParty(id *peppolid.Identifier) *Builder {
	b.reportingParty = id
	return b
}

func (b *Builder) ReceivingParty(id *peppolid.Identifier) *Builder {
	b.receivingParty = id
	return b
}

func (b *Builder) ReportersRepresentative(id *peppolid.Identifier) *Builder {
	b.reportersRepresentative = id
	return b
}

// ReportedTransaction configures the reported transaction. The document type
// code must be set first, since it decides whether the reported document may
// be omitted.
func (b *Builder) ReportedTransaction(fn func(*ReportedTransactionBuilder)) *Builder {
	if b.documentTypeCode == "" {
		usagePanic(builderTaxData, "the ReportedTransaction can only be built after the DocumentTypeCode is set")
	}
	rt := newReportedTransactionBuilder(&b.log, b.documentTypeCode)
	fn(rt)
	b.reportedTransaction = rt
	return b
}

func (b *Builder) evaluate(logErrors bool) (r *model.ValidationReport, emitDocument bool) {
	c := newChecker(builderTaxData, b.log, logErrors)
	c.requireString("CustomizationID", b.customizationID)
	c.requireString("ProfileID", b.profileID)
	c.requireString("UUID", b.uuid)
	c.requireSet("IssueDate", b.issueDate != nil)
	c.requireSet("IssueTime", b.issueTime != nil)
	checkCode(c, "DocumentTypeCode", string(b.documentTypeCode), b.documentTypeCode.IsValid())
	checkCode(c, "DocumentScope", string(b.documentScope), b.documentScope.IsValid())
	checkCode(c, "ReporterRole", string(b.reporterRole), b.reporterRole.IsValid())
	c.requireString("TaxAuthorityID", b.taxAuthorityID)
	// TaxAuthorityName is optional
	b.checkParty(c, "ReportingParty", b.reportingParty, false)
	b.checkParty(c, "ReceivingParty", b.receivingParty, true)
	b.checkParty(c, "ReportersRepresentative", b.reportersRepresentative, true)

	if b.reportedTransaction == nil {
		c.requireSet("ReportedTransaction", false)
		return c.result(), false
	}
	rr, emit := b.reportedTransaction.evaluate(logErrors)
	c.child(rr)
	return c.result(), emit
}

func (b *Builder) checkParty(c *checker, field string, id *peppolid.Identifier, serviceProvider bool) {
	switch {
	case id == nil:
		c.requireSet(field, false)
	case !b.validator.IsSchemeValid(id.Scheme):
		c.fail(field, model.RuleScheme, fmt.Sprintf("%s identifier scheme '%s' is invalid", field, id.Scheme))
	case !b.validator.IsValueValid(id.Scheme, id.Value):
		c.fail(field, model.RuleValue, fmt.Sprintf("%s identifier value '%s' is invalid for scheme '%s'", field, id.Value, id.Scheme))
	case serviceProvider && !id.HasICD(ICDServiceProvider):
		c.fail(field, model.RulePrefix, fmt.Sprintf("%s identifier value '%s' must use the %s identifier scheme", field, id.Value, ICDServiceProvider))
	}
}

func checkCode(c *checker, field, value string, valid bool) {
	switch {
	case value == "":
		c.requireString(field, value)
	case !valid:
		c.fail(field, model.RuleValue, fmt.Sprintf("%s '%s' is not a valid code", field, value))
	}
}

// Validate checks the document and the reported transaction
func (b *Builder) Validate(logErrors bool) *model.ValidationReport {
	r, _ := b.evaluate(logErrors)
	return r
}

// IsEveryRequiredFieldSet reports whether Validate finds no error
func (b *Builder) IsEveryRequiredFieldSet(logErrors bool) bool {
	return b.Validate(logErrors).OK()
}

// Build returns the tax data document or the validation report as error
func (b *Builder) Build() (*model.TaxData, error) {
	r, emit := b.evaluate(true)
	if r.HasErrors() {
		logFailure(b.log, builderTaxData, r)
		return nil, r
	}

	td := &model.TaxData{
		CustomizationID:  b.customizationID,
		ProfileID:        b.profileID,
		UUID:             b.uuid,
		IssueDate:        *model.NewDate(*b.issueDate),
		IssueTime:        *model.NewTime(*b.issueTime),
		DocumentTypeCode: b.documentTypeCode.ID(),
		DocumentScope:    b.documentScope.ID(),
		ReporterRole:     b.reporterRole.ID(),
		TaxAuthority: model.TaxAuthority{
			ID:   b.taxAuthorityID,
			Name: b.taxAuthorityName,
		},
		ReportingParty:          endpointParty(b.reportingParty),
		ReceivingParty:          endpointParty(b.receivingParty),
		ReportersRepresentative: model.RepresentativeParty{PartyIdentification: model.PartyIdentification{ID: participantID(b.reportersRepresentative)}},
	}
	td.SetNamespaces()

	rt := b.reportedTransaction.assemble(emit)
	if rt.ReportedDocument != nil {
		td.DocumentCurrencyCode = rt.ReportedDocument.DocumentCurrencyCode
	}
	td.ReportedTransactions = []*model.ReportedTransaction{rt}

	b.log.Debug().
		Str("uuid", td.UUID).
		Str("type", td.DocumentTypeCode).
		Bool("reported_document", rt.ReportedDocument != nil).
		Msg("TDD built")
	return td, nil
}

// participantID writes "icd:endpoint" as the endpoint with the ICD as scheme
func participantID(id *peppolid.Identifier) model.Identifier {
	icd, endpoint := id.Split()
	return model.Identifier{SchemeID: icd, Value: endpoint}
}

func endpointParty(id *peppolid.Identifier) model.EndpointParty {
	return model.EndpointParty{EndpointID: participantID(id)}
}

package tdd

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/rezonia/tdd-builder/internal/model"
	"github.com/rezonia/tdd-builder/internal/ubl"
)

// BillingReferenceBuilder builds a reference to a previously reported document
type BillingReferenceBuilder struct {
	base
	id        string
	idScheme  string
	issueDate *time.Time
}

// NewBillingReferenceBuilder creates a new billing reference builder
func NewBillingReferenceBuilder() *BillingReferenceBuilder {
	return &BillingReferenceBuilder{base: newBase(nil)}
}

func newBillingReferenceBuilder(log zerolog.Logger) *BillingReferenceBuilder {
	return &BillingReferenceBuilder{base: newBase(&log)}
}

func (b *BillingReferenceBuilder) ID(id string) *BillingReferenceBuilder {
	b.id = id
	return b
}

func (b *BillingReferenceBuilder) IDScheme(scheme string) *BillingReferenceBuilder {
	b.idScheme = scheme
	return b
}

func (b *BillingReferenceBuilder) IssueDate(d time.Time) *BillingReferenceBuilder {
	b.issueDate = &d
	return b
}

// InitFromUBL copies a UBL invoice document reference
func (b *BillingReferenceBuilder) InitFromUBL(ref *ubl.DocumentReference) *BillingReferenceBuilder {
	b.id = ref.ID.Value
	b.idScheme = ref.ID.SchemeID
	b.issueDate = b.parseDate(builderBillingReference, "IssueDate", ref.IssueDate)
	return b
}

// Validate checks the mandatory fields
func (b *BillingReferenceBuilder) Validate(logErrors bool) *model.ValidationReport {
	c := newChecker(builderBillingReference, b.log, logErrors)
	c.initErrors(&b.base)
	c.requireString("ID", b.id)
	return c.result()
}

// IsEveryRequiredFieldSet reports whether Validate finds no error
func (b *BillingReferenceBuilder) IsEveryRequiredFieldSet(logErrors bool) bool {
	return b.Validate(logErrors).OK()
}

// Build returns the billing reference or the validation report as error
func (b *BillingReferenceBuilder) Build() (*model.BillingReference, error) {
	if r := b.Validate(true); r.HasErrors() {
		logFailure(b.log, builderBillingReference, r)
		return nil, r
	}
	return b.assemble(), nil
}

func (b *BillingReferenceBuilder) assemble() *model.BillingReference {
	return &model.BillingReference{
		InvoiceDocumentReference: model.DocumentReference{
			ID:        model.Identifier{SchemeID: b.idScheme, Value: b.id},
			IssueDate: datePtr(b.issueDate),
		},
	}
}

package tdd

import (
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/rezonia/tdd-builder/internal/model"
	"github.com/rezonia/tdd-builder/internal/ubl"
)

// TaxSubtotalBuilder builds the tax of one category
type TaxSubtotalBuilder struct {
	base
	currency            string
	taxableAmount       *decimal.Decimal
	taxAmount           *decimal.Decimal
	categoryID          string
	categoryIDScheme    string
	percent             *decimal.Decimal
	exemptionReasonCode string
	exemptionReason     string
	taxSchemeID         string
}

// NewTaxSubtotalBuilder creates a builder for amounts in currency
func NewTaxSubtotalBuilder(currency string) *TaxSubtotalBuilder {
	return &TaxSubtotalBuilder{base: newBase(nil), currency: currency}
}

func newTaxSubtotalBuilder(log zerolog.Logger, currency string) *TaxSubtotalBuilder {
	return &TaxSubtotalBuilder{base: newBase(&log), currency: currency}
}

func (b *TaxSubtotalBuilder) TaxableAmount(a decimal.Decimal) *TaxSubtotalBuilder {
	b.taxableAmount = &a
	return b
}

func (b *TaxSubtotalBuilder) TaxAmount(a decimal.Decimal) *TaxSubtotalBuilder {
	b.taxAmount = &a
	return b
}

func (b *TaxSubtotalBuilder) TaxCategoryID(id string) *TaxSubtotalBuilder {
	b.categoryID = id
	return b
}

func (b *TaxSubtotalBuilder) TaxCategoryIDScheme(scheme string) *TaxSubtotalBuilder {
	b.categoryIDScheme = scheme
	return b
}

func (b *TaxSubtotalBuilder) Percent(p decimal.Decimal) *TaxSubtotalBuilder {
	b.percent = &p
	return b
}

func (b *TaxSubtotalBuilder) TaxExemptionReasonCode(code string) *TaxSubtotalBuilder {
	b.exemptionReasonCode = code
	return b
}

func (b *TaxSubtotalBuilder) TaxExemptionReason(reason string) *TaxSubtotalBuilder {
	b.exemptionReason = reason
	return b
}

func (b *TaxSubtotalBuilder) TaxSchemeID(id string) *TaxSubtotalBuilder {
	b.taxSchemeID = id
	return b
}

// InitFromUBL copies a UBL tax subtotal
func (b *TaxSubtotalBuilder) InitFromUBL(st *ubl.TaxSubtotal) *TaxSubtotalBuilder {
	b.taxableAmount = b.parseAmount(builderTaxSubtotal, "TaxableAmount", st.TaxableAmount.Value)
	b.taxAmount = b.parseAmount(builderTaxSubtotal, "TaxAmount", st.TaxAmount.Value)
	b.categoryID = st.TaxCategory.ID.Value
	b.categoryIDScheme = st.TaxCategory.ID.SchemeID
	b.percent = b.parseAmount(builderTaxSubtotal, "Percent", st.TaxCategory.Percent)
	b.exemptionReasonCode = st.TaxCategory.TaxExemptionReasonCode
	b.exemptionReason = st.TaxCategory.TaxExemptionReason
	b.taxSchemeID = st.TaxCategory.TaxScheme.ID
	return b
}

// Validate checks the mandatory fields
func (b *TaxSubtotalBuilder) Validate(logErrors bool) *model.ValidationReport {
	c := newChecker(builderTaxSubtotal, b.log, logErrors)
	c.initErrors(&b.base)
	c.requireSet("TaxableAmount", b.taxableAmount != nil)
	c.requireSet("TaxAmount", b.taxAmount != nil)
	c.requireString("TaxCategoryID", b.categoryID)
	c.requireString("TaxSchemeID", b.taxSchemeID)
	return c.result()
}

// IsEveryRequiredFieldSet reports whether Validate finds no error
func (b *TaxSubtotalBuilder) IsEveryRequiredFieldSet(logErrors bool) bool {
	return b.Validate(logErrors).OK()
}

// Build returns the tax subtotal or the validation report as error
func (b *TaxSubtotalBuilder) Build() (*model.TaxSubtotal, error) {
	if r := b.Validate(true); r.HasErrors() {
		logFailure(b.log, builderTaxSubtotal, r)
		return nil, r
	}
	return b.assemble(), nil
}

func (b *TaxSubtotalBuilder) assemble() *model.TaxSubtotal {
	return &model.TaxSubtotal{
		TaxableAmount: model.NewAmount(*b.taxableAmount, b.currency),
		TaxAmount:     model.NewAmount(*b.taxAmount, b.currency),
		TaxCategory: model.TaxCategory{
			ID:                     model.Identifier{SchemeID: b.categoryIDScheme, Value: b.categoryID},
			Percent:                b.percent,
			TaxExemptionReasonCode: b.exemptionReasonCode,
			TaxExemptionReason:     b.exemptionReason,
			TaxScheme:              model.TaxScheme{ID: b.taxSchemeID},
		},
	}
}

// TaxTotalBuilder builds the total tax in one currency
type TaxTotalBuilder struct {
	base
	currency  string
	taxAmount *decimal.Decimal
	subtotals []*TaxSubtotalBuilder
}

// NewTaxTotalBuilder creates a builder for amounts in currency
func NewTaxTotalBuilder(currency string) *TaxTotalBuilder {
	return &TaxTotalBuilder{base: newBase(nil), currency: currency}
}

func newTaxTotalBuilder(log zerolog.Logger, currency string) *TaxTotalBuilder {
	return &TaxTotalBuilder{base: newBase(&log), currency: currency}
}

// Currency returns the currency the amounts are tagged with
func (b *TaxTotalBuilder) Currency() string {
	return b.currency
}

func (b *TaxTotalBuilder) TaxAmount(a decimal.Decimal) *TaxTotalBuilder {
	b.taxAmount = &a
	return b
}

// AddTaxSubtotal appends a subtotal configured by fn
func (b *TaxTotalBuilder) AddTaxSubtotal(fn func(*TaxSubtotalBuilder)) *TaxTotalBuilder {
	st := newTaxSubtotalBuilder(b.log, b.currency)
	fn(st)
	b.subtotals = append(b.subtotals, st)
	return b
}

// InitFromUBL copies a UBL tax total with its subtotals
func (b *TaxTotalBuilder) InitFromUBL(tt *ubl.TaxTotal) *TaxTotalBuilder {
	b.taxAmount = b.parseAmount(builderTaxTotal, "TaxAmount", tt.TaxAmount.Value)
	for i := range tt.TaxSubtotals {
		st := &tt.TaxSubtotals[i]
		b.AddTaxSubtotal(func(s *TaxSubtotalBuilder) { s.InitFromUBL(st) })
	}
	return b
}

// Validate checks the tax amount and every subtotal
func (b *TaxTotalBuilder) Validate(logErrors bool) *model.ValidationReport {
	c := newChecker(builderTaxTotal, b.log, logErrors)
	c.initErrors(&b.base)
	c.requireSet("TaxAmount", b.taxAmount != nil)
	for _, st := range b.subtotals {
		c.child(st.Validate(logErrors))
	}
	return c.result()
}

// IsEveryRequiredFieldSet reports whether Validate finds no error
func (b *TaxTotalBuilder) IsEveryRequiredFieldSet(logErrors bool) bool {
	return b.Validate(logErrors).OK()
}

// Build returns the tax total or the validation report as error
func (b *TaxTotalBuilder) Build() (*model.TaxTotal, error) {
	if r := b.Validate(true); r.HasErrors() {
		logFailure(b.log, builderTaxTotal, r)
		return nil, r
	}
	return b.assemble(), nil
}

func (b *TaxTotalBuilder) assemble() *model.TaxTotal {
	ret := &model.TaxTotal{
		TaxAmount: model.NewAmount(*b.taxAmount, b.currency),
	}
	for _, st := range b.subtotals {
		ret.TaxSubtotals = append(ret.TaxSubtotals, st.assemble())
	}
	return ret
}

package tdd

import (
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/rezonia/tdd-builder/internal/model"
	"github.com/rezonia/tdd-builder/internal/ubl"
)

// TaxCategoryBuilder builds a tax category. It is also used for the
// classified tax category of an item.
type TaxCategoryBuilder struct {
	base
	id          string
	percent     *decimal.Decimal
	taxSchemeID string
}

// NewTaxCategoryBuilder creates a new tax category builder
func NewTaxCategoryBuilder() *TaxCategoryBuilder {
	return &TaxCategoryBuilder{base: newBase(nil)}
}

func newTaxCategoryBuilder(log zerolog.Logger) *TaxCategoryBuilder {
	return &TaxCategoryBuilder{base: newBase(&log)}
}

func (b *TaxCategoryBuilder) ID(id string) *TaxCategoryBuilder {
	b.id = id
	return b
}

func (b *TaxCategoryBuilder) Percent(p decimal.Decimal) *TaxCategoryBuilder {
	b.percent = &p
	return b
}

func (b *TaxCategoryBuilder) TaxSchemeID(id string) *TaxCategoryBuilder {
	b.taxSchemeID = id
	return b
}

// InitFromUBL copies the category of a UBL tax category
func (b *TaxCategoryBuilder) InitFromUBL(tc *ubl.TaxCategory) *TaxCategoryBuilder {
	b.id = tc.ID.Value
	b.percent = b.parseAmount(builderTaxCategory, "Percent", tc.Percent)
	b.taxSchemeID = tc.TaxScheme.ID
	return b
}

// Validate checks the mandatory fields
func (b *TaxCategoryBuilder) Validate(logErrors bool) *model.ValidationReport {
	c := newChecker(builderTaxCategory, b.log, logErrors)
	c.initErrors(&b.base)
	c.requireString("ID", b.id)
	// Percent is optional
	c.requireString("TaxSchemeID", b.taxSchemeID)
	return c.result()
}

// IsEveryRequiredFieldSet reports whether Validate finds no error
func (b *TaxCategoryBuilder) IsEveryRequiredFieldSet(logErrors bool) bool {
	return b.Validate(logErrors).OK()
}

// Build returns the tax category or the validation report as error
func (b *TaxCategoryBuilder) Build() (*model.TaxCategory, error) {
	if r := b.Validate(true); r.HasErrors() {
		logFailure(b.log, builderTaxCategory, r)
		return nil, r
	}
	return b.assemble(), nil
}

func (b *TaxCategoryBuilder) assemble() *model.TaxCategory {
	return &model.TaxCategory{
		ID:        model.Identifier{Value: b.id},
		Percent:   b.percent,
		TaxScheme: model.TaxScheme{ID: b.taxSchemeID},
	}
}

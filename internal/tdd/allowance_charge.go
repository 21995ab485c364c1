package tdd

import (
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/rezonia/tdd-builder/internal/model"
	"github.com/rezonia/tdd-builder/internal/ubl"
)

// AllowanceChargeBuilder builds a document or line level allowance or
// charge. Amounts are tagged with the currency given at creation.
type AllowanceChargeBuilder struct {
	base
	currency    string
	charge      bool
	reasonCode  string
	reason      string
	multiplier  *decimal.Decimal
	amount      *decimal.Decimal
	baseAmount  *decimal.Decimal
	taxCategory *TaxCategoryBuilder
}

// NewAllowanceChargeBuilder creates a builder for amounts in currency
func NewAllowanceChargeBuilder(currency string) *AllowanceChargeBuilder {
	return &AllowanceChargeBuilder{base: newBase(nil), currency: currency}
}

func newAllowanceChargeBuilder(log zerolog.Logger, currency string) *AllowanceChargeBuilder {
	return &AllowanceChargeBuilder{base: newBase(&log), currency: currency}
}

// Charge marks the entry as charge (true) or allowance (false)
func (b *AllowanceChargeBuilder) Charge(charge bool) *AllowanceChargeBuilder {
	b.charge = charge
	return b
}

func (b *AllowanceChargeBuilder) ReasonCode(code string) *AllowanceChargeBuilder {
	b.reasonCode = code
	return b
}

func (b *AllowanceChargeBuilder) Reason(reason string) *AllowanceChargeBuilder {
	b.reason = reason
	return b
}

func (b *AllowanceChargeBuilder) MultiplierFactor(f decimal.Decimal) *AllowanceChargeBuilder {
	b.multiplier = &f
	return b
}

func (b *AllowanceChargeBuilder) Amount(a decimal.Decimal) *AllowanceChargeBuilder {
	b.amount = &a
	return b
}

func (b *AllowanceChargeBuilder) BaseAmount(a decimal.Decimal) *AllowanceChargeBuilder {
	b.baseAmount = &a
	return b
}

// TaxCategory configures the optional tax category
func (b *AllowanceChargeBuilder) TaxCategory(fn func(*TaxCategoryBuilder)) *AllowanceChargeBuilder {
	tc := newTaxCategoryBuilder(b.log)
	fn(tc)
	b.taxCategory = tc
	return b
}

// InitFromUBL copies a UBL allowance or charge. Only the first tax
// category is used.
func (b *AllowanceChargeBuilder) InitFromUBL(ac *ubl.AllowanceCharge) *AllowanceChargeBuilder {
	b.charge = ac.IsCharge()
	b.reasonCode = ac.AllowanceChargeReasonCode
	b.reason = ac.AllowanceChargeReason
	b.multiplier = b.parseAmount(builderAllowanceCharge, "MultiplierFactor", ac.MultiplierFactorNumeric)
	b.amount = b.parseAmount(builderAllowanceCharge, "Amount", ac.Amount.Value)
	if ac.BaseAmount != nil {
		b.baseAmount = b.parseAmount(builderAllowanceCharge, "BaseAmount", ac.BaseAmount.Value)
	}
	if len(ac.TaxCategories) > 0 {
		tc := &ac.TaxCategories[0]
		b.TaxCategory(func(t *TaxCategoryBuilder) { t.InitFromUBL(tc) })
	}
	return b
}

// Validate checks the mandatory fields and the tax category
func (b *AllowanceChargeBuilder) Validate(logErrors bool) *model.ValidationReport {
	c := newChecker(builderAllowanceCharge, b.log, logErrors)
	c.initErrors(&b.base)
	// charge indicator defaults to allowance
	// reason code, reason and multiplier are optional
	c.requireSet("Amount", b.amount != nil)
	// base amount is optional
	if b.taxCategory != nil {
		c.child(b.taxCategory.Validate(logErrors))
	}
	return c.result()
}

// IsEveryRequiredFieldSet reports whether Validate finds no error
func (b *AllowanceChargeBuilder) IsEveryRequiredFieldSet(logErrors bool) bool {
	return b.Validate(logErrors).OK()
}

// Build returns the allowance or charge or the validation report as error
func (b *AllowanceChargeBuilder) Build() (*model.AllowanceCharge, error) {
	if r := b.Validate(true); r.HasErrors() {
		logFailure(b.log, builderAllowanceCharge, r)
		return nil, r
	}
	return b.assemble(), nil
}

func (b *AllowanceChargeBuilder) assemble() *model.AllowanceCharge {
	ret := &model.AllowanceCharge{
		ChargeIndicator:           b.charge,
		AllowanceChargeReasonCode: b.reasonCode,
		AllowanceChargeReason:     b.reason,
		MultiplierFactorNumeric:   b.multiplier,
		Amount:                    model.NewAmount(*b.amount, b.currency),
		BaseAmount:                model.NewOptionalAmount(b.baseAmount, b.currency),
	}
	if b.taxCategory != nil {
		ret.TaxCategory = b.taxCategory.assemble()
	}
	return ret
}

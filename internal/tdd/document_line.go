package tdd

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/rezonia/tdd-builder/internal/model"
	"github.com/rezonia/tdd-builder/internal/ubl"
)

// DocumentLineBuilder builds a reported document line. Amounts are tagged
// with the document currency.
type DocumentLineBuilder struct {
	base
	currency              string
	id                    string
	note                  string
	quantity              *decimal.Decimal
	unitCode              string
	lineExtension         *decimal.Decimal
	periodStart           *time.Time
	periodEnd             *time.Time
	periodDescriptionCode string
	allowanceCharges      []*AllowanceChargeBuilder
	item                  *ItemBuilder
	price                 *decimal.Decimal
}

// NewDocumentLineBuilder creates a builder for amounts in currency
func NewDocumentLineBuilder(currency string) *DocumentLineBuilder {
	return &DocumentLineBuilder{base: newBase(nil), currency: currency}
}

func newDocumentLineBuilder(log zerolog.Logger, currency string) *DocumentLineBuilder {
	return &DocumentLineBuilder{base: newBase(&log), currency: currency}
}

func (b *DocumentLineBuilder) ID(id string) *DocumentLineBuilder {
	b.id = id
	return b
}

func (b *DocumentLineBuilder) Note(note string) *DocumentLineBuilder {
	b.note = note
	return b
}

// Quantity sets the invoiced quantity and its UN/ECE rec 20 unit code
func (b *DocumentLineBuilder) Quantity(q decimal.Decimal, unitCode string) *DocumentLineBuilder {
	b.quantity = &q
	b.unitCode = unitCode
	return b
}

func (b *DocumentLineBuilder) LineExtensionAmount(a decimal.Decimal) *DocumentLineBuilder {
	b.lineExtension = &a
	return b
}

func (b *DocumentLineBuilder) InvoicePeriodStart(d time.Time) *DocumentLineBuilder {
	b.periodStart = &d
	return b
}

func (b *DocumentLineBuilder) InvoicePeriodEnd(d time.Time) *DocumentLineBuilder {
	b.periodEnd = &d
	return b
}

func (b *DocumentLineBuilder) InvoicePeriodDescriptionCode(code string) *DocumentLineBuilder {
	b.periodDescriptionCode = code
	return b
}

// AddAllowanceCharge appends a line level allowance or charge
func (b *DocumentLineBuilder) AddAllowanceCharge(fn func(*AllowanceChargeBuilder)) *DocumentLineBuilder {
	ac := newAllowanceChargeBuilder(b.log, b.currency)
	fn(ac)
	b.allowanceCharges = append(b.allowanceCharges, ac)
	return b
}

// Item configures the traded item
func (b *DocumentLineBuilder) Item(fn func(*ItemBuilder)) *DocumentLineBuilder {
	it := newItemBuilder(b.log)
	fn(it)
	b.item = it
	return b
}

func (b *DocumentLineBuilder) PriceAmount(a decimal.Decimal) *DocumentLineBuilder {
	b.price = &a
	return b
}

// InitFromUBL copies an invoice line or credit note line
func (b *DocumentLineBuilder) InitFromUBL(l *ubl.Line) *DocumentLineBuilder {
	b.id = l.ID
	b.note = first(l.Notes)
	if q := l.Quantity(); q != nil {
		b.quantity = b.parseAmount(builderDocumentLine, "InvoicedQuantity", q.Value)
		b.unitCode = q.UnitCode
	}
	b.lineExtension = b.parseAmount(builderDocumentLine, "LineExtensionAmount", l.LineExtensionAmount.Value)
	if len(l.InvoicePeriods) > 0 {
		p := l.InvoicePeriods[0]
		b.periodStart = b.parseDate(builderDocumentLine, "InvoicePeriodStart", p.StartDate)
		b.periodEnd = b.parseDate(builderDocumentLine, "InvoicePeriodEnd", p.EndDate)
		b.periodDescriptionCode = p.DescriptionCode
	}
	for i := range l.AllowanceCharges {
		ac := &l.AllowanceCharges[i]
		b.AddAllowanceCharge(func(a *AllowanceChargeBuilder) { a.InitFromUBL(ac) })
	}
	b.Item(func(it *ItemBuilder) { it.InitFromUBL(&l.Item) })
	b.price = b.parseAmount(builderDocumentLine, "PriceAmount", l.Price.PriceAmount.Value)
	return b
}

// Validate checks the mandatory fields and all composed builders
func (b *DocumentLineBuilder) Validate(logErrors bool) *model.ValidationReport {
	c := newChecker(builderDocumentLine, b.log, logErrors)
	c.initErrors(&b.base)
	c.requireString("ID", b.id)
	// note is optional
	c.requireSet("InvoicedQuantity", b.quantity != nil)
	c.requireString("UnitCode", b.unitCode)
	c.requireSet("LineExtensionAmount", b.lineExtension != nil)
	// invoice period is optional
	for _, ac := range b.allowanceCharges {
		c.child(ac.Validate(logErrors))
	}
	if b.item == nil {
		c.requireSet("Item", false)
	} else {
		c.child(b.item.Validate(logErrors))
	}
	c.requireSet("PriceAmount", b.price != nil)
	return c.result()
}

// IsEveryRequiredFieldSet reports whether Validate finds no error
func (b *DocumentLineBuilder) IsEveryRequiredFieldSet(logErrors bool) bool {
	return b.Validate(logErrors).OK()
}

// Build returns the document line or the validation report as error
func (b *DocumentLineBuilder) Build() (*model.DocumentLine, error) {
	if r := b.Validate(true); r.HasErrors() {
		logFailure(b.log, builderDocumentLine, r)
		return nil, r
	}
	return b.assemble(), nil
}

func (b *DocumentLineBuilder) assemble() *model.DocumentLine {
	ret := &model.DocumentLine{
		ID:                  b.id,
		Note:                b.note,
		InvoicedQuantity:    model.Quantity{UnitCode: b.unitCode, Value: *b.quantity},
		LineExtensionAmount: model.NewAmount(*b.lineExtension, b.currency),
		InvoicePeriod:       period(b.periodStart, b.periodEnd, b.periodDescriptionCode),
		Item:                *b.item.assemble(),
		Price:               model.Price{PriceAmount: model.NewAmount(*b.price, b.currency)},
	}
	for _, ac := range b.allowanceCharges {
		ret.AllowanceCharges = append(ret.AllowanceCharges, ac.assemble())
	}
	return ret
}

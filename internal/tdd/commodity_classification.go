package tdd

import (
	"github.com/rs/zerolog"

	"github.com/rezonia/tdd-builder/internal/model"
	"github.com/rezonia/tdd-builder/internal/ubl"
)

// CommodityClassificationBuilder builds an item classification code
type CommodityClassificationBuilder struct {
	base
	code          string
	listID        string
	listVersionID string
}

// NewCommodityClassificationBuilder creates a new classification builder
func NewCommodityClassificationBuilder() *CommodityClassificationBuilder {
	return &CommodityClassificationBuilder{base: newBase(nil)}
}

func newCommodityClassificationBuilder(log zerolog.Logger) *CommodityClassificationBuilder {
	return &CommodityClassificationBuilder{base: newBase(&log)}
}

func (b *CommodityClassificationBuilder) Code(code string) *CommodityClassificationBuilder {
	b.code = code
	return b
}

func (b *CommodityClassificationBuilder) ListID(id string) *CommodityClassificationBuilder {
	b.listID = id
	return b
}

func (b *CommodityClassificationBuilder) ListVersionID(id string) *CommodityClassificationBuilder {
	b.listVersionID = id
	return b
}

// InitFromUBL copies a UBL commodity classification
func (b *CommodityClassificationBuilder) InitFromUBL(cc *ubl.CommodityClassification) *CommodityClassificationBuilder {
	b.code = cc.ItemClassificationCode.Value
	b.listID = cc.ItemClassificationCode.ListID
	b.listVersionID = cc.ItemClassificationCode.ListVersionID
	return b
}

// Validate checks the mandatory fields
func (b *CommodityClassificationBuilder) Validate(logErrors bool) *model.ValidationReport {
	c := newChecker(builderCommodityClassification, b.log, logErrors)
	c.requireString("ItemClassificationCode", b.code)
	c.requireString("ListID", b.listID)
	return c.result()
}

// IsEveryRequiredFieldSet reports whether Validate finds no error
func (b *CommodityClassificationBuilder) IsEveryRequiredFieldSet(logErrors bool) bool {
	return b.Validate(logErrors).OK()
}

// Build returns the classification or the validation report as error
func (b *CommodityClassificationBuilder) Build() (*model.CommodityClassification, error) {
	if r := b.Validate(true); r.HasErrors() {
		logFailure(b.log, builderCommodityClassification, r)
		return nil, r
	}
	return b.assemble(), nil
}

func (b *CommodityClassificationBuilder) assemble() *model.CommodityClassification {
	return &model.CommodityClassification{
		ItemClassificationCode: model.Code{
			ListID:        b.listID,
			ListVersionID: b.listVersionID,
			Value:         b.code,
		},
	}
}

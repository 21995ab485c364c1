package tdd

import (
	"github.com/rs/zerolog"

	"github.com/rezonia/tdd-builder/internal/model"
	"github.com/rezonia/tdd-builder/internal/ubl"
)

// ItemBuilder builds the item of a document line
type ItemBuilder struct {
	base
	description     string
	name            string
	classifications []*CommodityClassificationBuilder
	taxCategory     *TaxCategoryBuilder
}

// NewItemBuilder creates a new item builder
func NewItemBuilder() *ItemBuilder {
	return &ItemBuilder{base: newBase(nil)}
}

func newItemBuilder(log zerolog.Logger) *ItemBuilder {
	return &ItemBuilder{base: newBase(&log)}
}

func (b *ItemBuilder) Description(d string) *ItemBuilder {
	b.description = d
	return b
}

func (b *ItemBuilder) Name(name string) *ItemBuilder {
	b.name = name
	return b
}

// AddCommodityClassification appends a classification configured by fn
func (b *ItemBuilder) AddCommodityClassification(fn func(*CommodityClassificationBuilder)) *ItemBuilder {
	cc := newCommodityClassificationBuilder(b.log)
	fn(cc)
	b.classifications = append(b.classifications, cc)
	return b
}

// ClassifiedTaxCategory configures the tax category of the item
func (b *ItemBuilder) ClassifiedTaxCategory(fn func(*TaxCategoryBuilder)) *ItemBuilder {
	tc := newTaxCategoryBuilder(b.log)
	fn(tc)
	b.taxCategory = tc
	return b
}

// InitFromUBL copies a UBL item. Only the first description and the first
// classified tax category are used.
func (b *ItemBuilder) InitFromUBL(it *ubl.Item) *ItemBuilder {
	b.description = first(it.Descriptions)
	b.name = it.Name
	for i := range it.CommodityClassifications {
		cc := &it.CommodityClassifications[i]
		b.AddCommodityClassification(func(c *CommodityClassificationBuilder) { c.InitFromUBL(cc) })
	}
	if len(it.ClassifiedTaxCategories) > 0 {
		tc := &it.ClassifiedTaxCategories[0]
		b.ClassifiedTaxCategory(func(t *TaxCategoryBuilder) { t.InitFromUBL(tc) })
	}
	return b
}

// Validate checks the mandatory fields and all composed builders
func (b *ItemBuilder) Validate(logErrors bool) *model.ValidationReport {
	c := newChecker(builderItem, b.log, logErrors)
	c.requireString("Name", b.name)
	for _, cc := range b.classifications {
		c.child(cc.Validate(logErrors))
	}
	if b.taxCategory == nil {
		c.requireSet("ClassifiedTaxCategory", false)
	} else {
		c.child(b.taxCategory.Validate(logErrors))
	}
	return c.result()
}

// IsEveryRequiredFieldSet reports whether Validate finds no error
func (b *ItemBuilder) IsEveryRequiredFieldSet(logErrors bool) bool {
	return b.Validate(logErrors).OK()
}

// Build returns the item or the validation report as error
func (b *ItemBuilder) Build() (*model.Item, error) {
	if r := b.Validate(true); r.HasErrors() {
		logFailure(b.log, builderItem, r)
		return nil, r
	}
	return b.assemble(), nil
}

func (b *ItemBuilder) assemble() *model.Item {
	ret := &model.Item{
		Description:           b.description,
		Name:                  b.name,
		ClassifiedTaxCategory: *b.taxCategory.assemble(),
	}
	for _, cc := range b.classifications {
		ret.CommodityClassifications = append(ret.CommodityClassifications, cc.assemble())
	}
	return ret
}

package tdd_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/tdd-builder/internal/amount"
	"github.com/rezonia/tdd-builder/internal/tdd"
)

func TestTaxCategoryBuilder_Validate(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*tdd.TaxCategoryBuilder)
		want  []string
	}{
		{
			name:  "complete",
			setup: func(b *tdd.TaxCategoryBuilder) { b.ID("S").Percent(amount.MustFromString("20")).TaxSchemeID("VAT") },
		},
		{
			name:  "percent is optional",
			setup: func(b *tdd.TaxCategoryBuilder) { b.ID("E").TaxSchemeID("VAT") },
		},
		{
			name:  "missing id",
			setup: func(b *tdd.TaxCategoryBuilder) { b.TaxSchemeID("VAT") },
			want:  []string{"TaxCategory.ID"},
		},
		{
			name:  "empty",
			setup: func(b *tdd.TaxCategoryBuilder) {},
			want:  []string{"TaxCategory.ID", "TaxCategory.TaxSchemeID"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tdd.NewTaxCategoryBuilder()
			tt.setup(b)
			r := b.Validate(false)
			assert.Equal(t, tt.want, errorFields(r))
			assert.Equal(t, tt.want == nil, b.IsEveryRequiredFieldSet(false))
		})
	}
}

func TestTaxCategoryBuilder_Build(t *testing.T) {
	tc, err := tdd.NewTaxCategoryBuilder().ID("S").Percent(amount.MustFromString("20")).TaxSchemeID("VAT").Build()
	require.NoError(t, err)
	assert.Equal(t, "S", tc.ID.Value)
	assert.Equal(t, "20", tc.Percent.String())
	assert.Equal(t, "VAT", tc.TaxScheme.ID)

	tc, err = tdd.NewTaxCategoryBuilder().ID("S").Build()
	assert.Nil(t, tc)
	r := requireReport(t, err)
	assert.Equal(t, []string{"TaxCategory.TaxSchemeID"}, errorFields(r))
}

func TestAllowanceChargeBuilder(t *testing.T) {
	ac, err := tdd.NewAllowanceChargeBuilder("AED").
		Charge(true).
		ReasonCode("FC").
		Reason("Freight").
		MultiplierFactor(amount.MustFromString("10")).
		Amount(amount.MustFromString("50")).
		BaseAmount(amount.MustFromString("500")).
		TaxCategory(func(tc *tdd.TaxCategoryBuilder) { tc.ID("S").TaxSchemeID("VAT") }).
		Build()
	require.NoError(t, err)

	assert.True(t, ac.ChargeIndicator)
	assert.Equal(t, "FC", ac.AllowanceChargeReasonCode)
	assert.Equal(t, "AED", ac.Amount.CurrencyID)
	assert.Equal(t, "50", ac.Amount.Value.String())
	require.NotNil(t, ac.BaseAmount)
	assert.Equal(t, "AED", ac.BaseAmount.CurrencyID)
	require.NotNil(t, ac.TaxCategory)
	assert.Equal(t, "S", ac.TaxCategory.ID.Value)
}

func TestAllowanceChargeBuilder_MissingAmount(t *testing.T) {
	b := tdd.NewAllowanceChargeBuilder("AED").Reason("Discount")
	assert.Equal(t, []string{"AllowanceCharge.Amount"}, errorFields(b.Validate(false)))

	ac, err := b.Build()
	assert.Nil(t, ac)
	assert.Error(t, err)
}

func TestAllowanceChargeBuilder_ChildFailureFolds(t *testing.T) {
	b := tdd.NewAllowanceChargeBuilder("AED").
		Amount(amount.MustFromString("1")).
		TaxCategory(func(tc *tdd.TaxCategoryBuilder) { tc.ID("S") })

	assert.Equal(t, []string{"TaxCategory.TaxSchemeID"}, errorFields(b.Validate(false)))
}

func TestBillingReferenceBuilder(t *testing.T) {
	br, err := tdd.NewBillingReferenceBuilder().ID("INV-0").IDScheme("PREV").IssueDate(issueDate).Build()
	require.NoError(t, err)
	assert.Equal(t, "INV-0", br.InvoiceDocumentReference.ID.Value)
	assert.Equal(t, "PREV", br.InvoiceDocumentReference.ID.SchemeID)
	require.NotNil(t, br.InvoiceDocumentReference.IssueDate)
	assert.Equal(t, "2026-01-13", br.InvoiceDocumentReference.IssueDate.String())

	_, err = tdd.NewBillingReferenceBuilder().IDScheme("PREV").Build()
	assert.Equal(t, []string{"BillingReference.ID"}, errorFields(requireReport(t, err)))
}

func TestCommodityClassificationBuilder(t *testing.T) {
	cc, err := tdd.NewCommodityClassificationBuilder().Code("65434568").ListID("STI").ListVersionID("19.05.01").Build()
	require.NoError(t, err)
	assert.Equal(t, "65434568", cc.ItemClassificationCode.Value)
	assert.Equal(t, "STI", cc.ItemClassificationCode.ListID)
	assert.Equal(t, "19.05.01", cc.ItemClassificationCode.ListVersionID)

	r := tdd.NewCommodityClassificationBuilder().Code("1").Validate(false)
	assert.Equal(t, []string{"CommodityClassification.ListID"}, errorFields(r))
}

func TestTaxTotalBuilder(t *testing.T) {
	tt, err := tdd.NewTaxTotalBuilder("AED").
		TaxAmount(amount.MustFromString("240")).
		AddTaxSubtotal(func(st *tdd.TaxSubtotalBuilder) {
			st.TaxableAmount(amount.MustFromString("1200")).
				TaxAmount(amount.MustFromString("240")).
				TaxCategoryID("S").
				Percent(amount.MustFromString("20")).
				TaxSchemeID("VAT")
		}).
		AddTaxSubtotal(func(st *tdd.TaxSubtotalBuilder) {
			st.TaxableAmount(amount.MustFromString("100")).
				TaxAmount(amount.MustFromString("0")).
				TaxCategoryID("E").
				TaxExemptionReasonCode("VATEX-EU-132").
				TaxExemptionReason("Exempt").
				TaxSchemeID("VAT")
		}).
		Build()
	require.NoError(t, err)

	assert.Equal(t, "AED", tt.TaxAmount.CurrencyID)
	require.Len(t, tt.TaxSubtotals, 2)
	assert.Equal(t, "AED", tt.TaxSubtotals[0].TaxableAmount.CurrencyID)
	assert.Equal(t, "20", tt.TaxSubtotals[0].TaxCategory.Percent.String())
	assert.Nil(t, tt.TaxSubtotals[1].TaxCategory.Percent)
	assert.Equal(t, "VATEX-EU-132", tt.TaxSubtotals[1].TaxCategory.TaxExemptionReasonCode)
}

func TestTaxTotalBuilder_SubtotalErrorsFold(t *testing.T) {
	b := tdd.NewTaxTotalBuilder("AED").
		AddTaxSubtotal(func(st *tdd.TaxSubtotalBuilder) { st.TaxCategoryID("S") })

	assert.Equal(t, []string{
		"TaxTotal.TaxAmount",
		"TaxSubtotal.TaxableAmount",
		"TaxSubtotal.TaxAmount",
		"TaxSubtotal.TaxSchemeID",
	}, errorFields(b.Validate(false)))
	assert.Equal(t, "AED", b.Currency())
}

func TestPaymentMeansBuilder(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(*tdd.PaymentMeansBuilder)
		wantCard  bool
		wantPayee bool
	}{
		{
			name:  "code only",
			setup: func(b *tdd.PaymentMeansBuilder) { b.Code("30") },
		},
		{
			name:     "card with PAN",
			setup:    func(b *tdd.PaymentMeansBuilder) { b.Code("48").Card("1234", "VISA", "J Doe") },
			wantCard: true,
		},
		{
			name:  "card without PAN",
			setup: func(b *tdd.PaymentMeansBuilder) { b.Code("48").Card("", "VISA", "J Doe") },
		},
		{
			name:      "payee account",
			setup:     func(b *tdd.PaymentMeansBuilder) { b.Code("30").PayeeAccount("AE07", "IBAN") },
			wantPayee: true,
		},
		{
			name:  "branch without account",
			setup: func(b *tdd.PaymentMeansBuilder) { b.Code("30").PayeeBranch("EBILAEAD", "") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tdd.NewPaymentMeansBuilder()
			tt.setup(b)
			pm, err := b.Build()
			require.NoError(t, err)
			assert.Equal(t, tt.wantCard, pm.CardAccount != nil)
			assert.Equal(t, tt.wantPayee, pm.PayeeFinancialAccount != nil)
		})
	}
}

func TestPaymentMeansBuilder_MissingCode(t *testing.T) {
	_, err := tdd.NewPaymentMeansBuilder().PaymentID("P-1").Build()
	assert.Equal(t, []string{"PaymentMeans.PaymentMeansCode"}, errorFields(requireReport(t, err)))
}

func TestItemBuilder(t *testing.T) {
	it, err := tdd.NewItemBuilder().
		Name("What").
		Description("Consulting").
		AddCommodityClassification(func(cc *tdd.CommodityClassificationBuilder) { cc.Code("1").ListID("STI") }).
		ClassifiedTaxCategory(func(tc *tdd.TaxCategoryBuilder) { tc.ID("S").TaxSchemeID("VAT") }).
		Build()
	require.NoError(t, err)
	assert.Equal(t, "What", it.Name)
	assert.Len(t, it.CommodityClassifications, 1)
	assert.Equal(t, "S", it.ClassifiedTaxCategory.ID.Value)
}

func TestItemBuilder_Validate(t *testing.T) {
	r := tdd.NewItemBuilder().Validate(false)
	assert.Equal(t, []string{"Item.Name", "Item.ClassifiedTaxCategory"}, errorFields(r))

	r = tdd.NewItemBuilder().
		Name("What").
		AddCommodityClassification(func(cc *tdd.CommodityClassificationBuilder) { cc.Code("1") }).
		ClassifiedTaxCategory(func(tc *tdd.TaxCategoryBuilder) { tc.TaxSchemeID("VAT") }).
		Validate(false)
	assert.Equal(t, []string{"CommodityClassification.ListID", "TaxCategory.ID"}, errorFields(r))
}

func TestDocumentLineBuilder(t *testing.T) {
	b := tdd.NewDocumentLineBuilder("AED")
	completeLine(b)
	b.Note("Line note").
		InvoicePeriodStart(issueDate).
		AddAllowanceCharge(func(ac *tdd.AllowanceChargeBuilder) { ac.Amount(amount.MustFromString("5")) })

	dl, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, "1", dl.ID)
	assert.Equal(t, "STK", dl.InvoicedQuantity.UnitCode)
	assert.Equal(t, "10", dl.InvoicedQuantity.Value.String())
	assert.Equal(t, "AED", dl.LineExtensionAmount.CurrencyID)
	assert.Equal(t, "AED", dl.Price.PriceAmount.CurrencyID)
	require.NotNil(t, dl.InvoicePeriod)
	assert.Nil(t, dl.InvoicePeriod.EndDate)
	require.Len(t, dl.AllowanceCharges, 1)
	assert.Equal(t, "AED", dl.AllowanceCharges[0].Amount.CurrencyID)
	assert.Equal(t, "What", dl.Item.Name)
}

func TestDocumentLineBuilder_NoPeriodWhenUnset(t *testing.T) {
	b := tdd.NewDocumentLineBuilder("AED")
	completeLine(b)
	dl, err := b.Build()
	require.NoError(t, err)
	assert.Nil(t, dl.InvoicePeriod)
}

func TestDocumentLineBuilder_Validate(t *testing.T) {
	r := tdd.NewDocumentLineBuilder("AED").Validate(false)
	assert.Equal(t, []string{
		"DocumentLine.ID",
		"DocumentLine.InvoicedQuantity",
		"DocumentLine.UnitCode",
		"DocumentLine.LineExtensionAmount",
		"DocumentLine.Item",
		"DocumentLine.PriceAmount",
	}, errorFields(r))
}

func TestDocumentLineBuilder_NullPropagation(t *testing.T) {
	b := tdd.NewDocumentLineBuilder("AED")
	completeLine(b)
	b.Item(func(it *tdd.ItemBuilder) {
		it.ClassifiedTaxCategory(func(tc *tdd.TaxCategoryBuilder) { tc.ID("S") })
	})

	dl, err := b.Build()
	assert.Nil(t, dl)
	r := requireReport(t, err)
	assert.Equal(t, "DocumentLine", r.Builder)
	assert.Equal(t, []string{"Item.Name", "TaxCategory.TaxSchemeID"}, errorFields(r))
}

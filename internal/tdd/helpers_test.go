package tdd_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rezonia/tdd-builder/internal/amount"
	"github.com/rezonia/tdd-builder/internal/model"
	"github.com/rezonia/tdd-builder/internal/tdd"
)

const minimalInvoice = `<?xml version="1.0" encoding="UTF-8"?>
<Invoice xmlns="urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
         xmlns:cbc="urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2">
  <cbc:ID>INV-1</cbc:ID>
</Invoice>`

var issueDate = time.Date(2026, 1, 13, 0, 0, 0, 0, time.UTC)

// errorFields lists "Builder.Field" of all error findings in order
func errorFields(r *model.ValidationReport) []string {
	var out []string
	for _, e := range r.Errors() {
		out = append(out, e.Builder+"."+e.Field)
	}
	return out
}

func requireReport(t *testing.T, err error) *model.ValidationReport {
	t.Helper()
	var r *model.ValidationReport
	require.True(t, errors.As(err, &r), "expected *model.ValidationReport, got %T", err)
	return r
}

// completeTransaction sets every mandatory reported document and
// transaction field
func completeTransaction(rt *tdd.ReportedTransactionBuilder) {
	rt.CustomizationID("urn:peppol:pint:billing-1@ae-1").
		ProfileID("urn:peppol:bis:billing").
		ID("INV-1").
		UUID("6f2b7a4e-1c1b-4b8e-9a55-0d6f2f8b2c11").
		IssueDate(issueDate).
		DocumentTypeCode("380").
		DocumentCurrencyCode("AED").
		SellerTaxID("100000000000003").
		TaxTotalAmountDocumentCurrency(amount.MustFromString("240")).
		TaxExclusiveAmount(amount.MustFromString("1200")).
		SourceDocumentBytes([]byte(minimalInvoice))
}

func completeLine(dl *tdd.DocumentLineBuilder) {
	dl.ID("1").
		Quantity(amount.MustFromString("10"), "STK").
		LineExtensionAmount(amount.MustFromString("1200")).
		PriceAmount(amount.MustFromString("120")).
		Item(func(it *tdd.ItemBuilder) {
			it.Name("What").
				ClassifiedTaxCategory(func(tc *tdd.TaxCategoryBuilder) {
					tc.ID("S").Percent(amount.MustFromString("20")).TaxSchemeID("VAT")
				})
		})
}

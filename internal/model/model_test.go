package model_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/tdd-builder/internal/model"
)

func TestValidationReport_Counts(t *testing.T) {
	r := model.NewValidationReport("DocumentLine")
	r.Add(model.NewValidationError("DocumentLine", "ID", model.RuleRequired, "ID is missing"))
	r.Add(model.NewValidationWarning("DocumentLine", "Note", model.RuleRequired, "Note is empty"))

	assert.Equal(t, 1, r.ErrorCount())
	assert.Len(t, r.Warnings(), 1)
	assert.True(t, r.HasErrors())
	assert.False(t, r.OK())
}

func TestValidationReport_Merge(t *testing.T) {
	child := model.NewValidationReport("Item")
	child.Add(model.NewValidationError("Item", "Name", model.RuleRequired, "Name is missing"))

	parent := model.NewValidationReport("DocumentLine")
	parent.Add(model.NewValidationError("DocumentLine", "ID", model.RuleRequired, "ID is missing"))
	parent.Merge(child)
	parent.Merge(nil)

	assert.Equal(t, 2, parent.ErrorCount())
	assert.GreaterOrEqual(t, parent.ErrorCount(), child.ErrorCount())
}

func TestValidationReport_AsError(t *testing.T) {
	r := model.NewValidationReport("ReportedTransaction")
	r.Add(model.NewValidationError("ReportedTransaction", "ID", model.RuleRequired, "ID is missing"))

	var err error = r
	wrapped := fmt.Errorf("build failed: %w", err)

	var report *model.ValidationReport
	require.True(t, errors.As(wrapped, &report))
	assert.Equal(t, 1, report.ErrorCount())
	assert.Contains(t, err.Error(), "ReportedTransaction.ID: ID is missing")
}

func TestValidationReport_NilSafe(t *testing.T) {
	var r *model.ValidationReport
	assert.Equal(t, 0, r.ErrorCount())
	assert.Nil(t, r.Warnings())
}

func TestParseError(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := model.NewParseError(model.KindInvoice, "xml", "failed to parse XML", cause)

	assert.Equal(t, "[Invoice] xml: failed to parse XML (unexpected EOF)", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestUsageError(t *testing.T) {
	err := model.NewUsageError("ReportedTransaction", "document currency code must be set first")
	assert.Equal(t, "invalid use of ReportedTransaction builder: document currency code must be set first", err.Error())
}

func TestDocumentKind_IsSource(t *testing.T) {
	assert.True(t, model.KindInvoice.IsSource())
	assert.True(t, model.KindCreditNote.IsSource())
	assert.False(t, model.KindTaxData.IsSource())
	assert.False(t, model.KindUnknown.IsSource())
}

func TestDateAndTime_Text(t *testing.T) {
	ts := time.Date(2026, 1, 13, 10, 15, 30, 123456789, time.UTC)

	d, err := model.NewDate(ts).MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "2026-01-13", string(d))

	tm, err := model.NewTime(ts).MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "10:15:30.123Z", string(tm))

	parsed, err := model.ParseDate("2026-02-01")
	require.NoError(t, err)
	assert.Equal(t, time.February, parsed.Month())

	_, err = model.ParseDate("01.02.2026")
	require.Error(t, err)
}

func TestMarshal(t *testing.T) {
	td := &model.TaxData{
		CustomizationID:  "urn:test",
		ProfileID:        "urn:profile",
		UUID:             "8aeba72d-2253-57fe-86f0-7c35648eb808",
		IssueDate:        *model.NewDate(time.Date(2026, 1, 13, 0, 0, 0, 0, time.UTC)),
		IssueTime:        *model.NewTime(time.Date(2026, 1, 13, 9, 0, 0, 0, time.UTC)),
		DocumentTypeCode: "S",
		DocumentScope:    "D",
		ReporterRole:     "01",
		TaxAuthority:     model.TaxAuthority{ID: "XX"},
		ReportingParty:   model.EndpointParty{EndpointID: model.Identifier{SchemeID: "9915", Value: "c1id"}},
		ReportedTransactions: []*model.ReportedTransaction{{
			CustomContents: []*model.CustomContent{{ID: "ID1", Value: "val1"}},
			SourceDocument: &model.SourceDocument{
				ExtensionContent: model.ExtensionContent{XML: `<Invoice xmlns="urn:x"><ID>1</ID></Invoice>`},
			},
		}},
	}
	td.ReportedTransactions[0].ReportedDocument = &model.ReportedDocument{
		ID:                   "INV-1",
		DocumentCurrencyCode: "AED",
		MonetaryTotal: model.MonetaryTotal{
			TaxExclusiveAmount: model.NewAmount(decimal.NewFromInt(1200), "AED"),
		},
	}

	out, err := model.Marshal(td)
	require.NoError(t, err)

	s := string(out)
	assert.True(t, strings.HasPrefix(s, "<?xml"))
	assert.Contains(t, s, `<pxs:TaxData xmlns:pxs="urn:peppol:schema:taxdata:1.0"`)
	assert.Contains(t, s, `<cbc:EndpointID schemeID="9915">c1id</cbc:EndpointID>`)
	assert.Contains(t, s, `<cbc:IssueDate>2026-01-13</cbc:IssueDate>`)
	assert.Contains(t, s, `<cbc:TaxExclusiveAmount currencyID="AED">1200</cbc:TaxExclusiveAmount>`)
	assert.Contains(t, s, `<Invoice xmlns="urn:x"><ID>1</ID></Invoice>`)
	assert.NotContains(t, s, "cbc:TaxCurrencyCode")

	_, err = model.Marshal(nil)
	require.Error(t, err)
}

package conformance_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/tdd-builder/internal/amount"
	"github.com/rezonia/tdd-builder/internal/codelist"
	"github.com/rezonia/tdd-builder/internal/conformance"
	"github.com/rezonia/tdd-builder/internal/model"
	"github.com/rezonia/tdd-builder/internal/peppolid"
	"github.com/rezonia/tdd-builder/internal/tdd"
)

const sourceInvoice = `<?xml version="1.0" encoding="UTF-8"?>
<Invoice xmlns="urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
         xmlns:cbc="urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2">
  <cbc:ID>INV-1</cbc:ID>
</Invoice>`

func buildTDD(t *testing.T, typeCode codelist.DocumentTypeCode, complete bool) []byte {
	t.Helper()
	b := tdd.NewBuilder(
		tdd.WithLogger(zerolog.Nop()),
		tdd.WithClock(func() time.Time { return time.Date(2026, 1, 14, 9, 30, 0, 0, time.UTC) }),
	)
	td, err := b.DocumentTypeCode(typeCode).
		DocumentScope(codelist.DocumentScopeDomestic).
		ReporterRole(codelist.ReporterRoleSender).
		TaxAuthorityID("AE-FTA").
		ReportingParty(peppolid.WithDefaultScheme("0235:1234567890")).
		ReceivingParty(peppolid.WithDefaultScheme("0242:000001")).
		ReportersRepresentative(peppolid.WithDefaultScheme("0242:000002")).
		ReportedTransaction(func(rt *tdd.ReportedTransactionBuilder) {
			rt.CustomizationID("urn:peppol:pint:billing-1@ae-1").
				ProfileID("urn:peppol:bis:billing").
				UUID("6f2b7a4e-1c1b-4b8e-9a55-0d6f2f8b2c11").
				IssueDate(time.Date(2026, 1, 13, 0, 0, 0, 0, time.UTC)).
				DocumentTypeCode("380").
				DocumentCurrencyCode("AED").
				SellerTaxID("100000000000003").
				TaxTotalAmountDocumentCurrency(amount.MustFromString("240")).
				TaxExclusiveAmount(amount.MustFromString("1200")).
				PayableAmount(amount.MustFromString("1440")).
				AddCustomContent("CHANNEL", "api").
				SourceDocumentBytes([]byte(sourceInvoice))
			if complete {
				rt.ID("INV-1")
			}
		}).
		Build()
	require.NoError(t, err)

	data, err := model.Marshal(td)
	require.NoError(t, err)
	return data
}

func newValidator() *conformance.StructuralValidator {
	return conformance.NewStructuralValidatorWithLogger(zerolog.Nop())
}

// mutate parses data, applies fn to the root and serializes the result
func mutate(t *testing.T, data []byte, fn func(root *etree.Element)) []byte {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(data))
	fn(doc.Root())
	out, err := doc.WriteToBytes()
	require.NoError(t, err)
	return out
}

func mustFind(t *testing.T, e *etree.Element, path string) *etree.Element {
	t.Helper()
	found := e.FindElement(path)
	require.NotNil(t, found, path)
	return found
}

func TestValidate_BuiltDocumentConforms(t *testing.T) {
	v := newValidator()
	report, err := v.Validate(context.Background(), buildTDD(t, codelist.DocumentTypeSubmit, true))
	require.NoError(t, err)

	assert.True(t, report.OK(), "failures: %+v", report.Failed)
	assert.Equal(t, v.Rules(), report.Passed)
	assert.Equal(t, conformance.SchemaVersion, report.SchemaVersion)
	assert.Equal(t, conformance.RulesetVersion, report.RulesetVersion)
}

func TestValidate_OmittedReportedDocument(t *testing.T) {
	data := buildTDD(t, codelist.DocumentTypeDisregard, false)
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(data))
	require.Nil(t, doc.Root().FindElement("./pxs:ReportedTransaction/pxs:ReportedDocument"))

	report, err := newValidator().Validate(context.Background(), data)
	require.NoError(t, err)
	assert.True(t, report.OK(), "failures: %+v", report.Failed)
}

func TestValidate_RuleViolations(t *testing.T) {
	valid := buildTDD(t, codelist.DocumentTypeSubmit, true)

	tests := []struct {
		name   string
		mutate func(t *testing.T, root *etree.Element)
		rule   string
	}{
		{
			name: "root namespace",
			mutate: func(t *testing.T, root *etree.Element) {
				root.CreateAttr("xmlns:pxs", "urn:example:other")
			},
			rule: "TDD-01",
		},
		{
			name: "missing uuid",
			mutate: func(t *testing.T, root *etree.Element) {
				root.RemoveChild(mustFind(t, root, "./cbc:UUID"))
			},
			rule: "TDD-02",
		},
		{
			name: "unknown scope",
			mutate: func(t *testing.T, root *etree.Element) {
				mustFind(t, root, "./pxs:DocumentScope").SetText("X")
			},
			rule: "TDD-03",
		},
		{
			name: "receiving party scheme",
			mutate: func(t *testing.T, root *etree.Element) {
				mustFind(t, root, "./pxs:ReceivingParty/cbc:EndpointID").CreateAttr("schemeID", "0235")
			},
			rule: "TDD-04",
		},
		{
			name: "representative scheme",
			mutate: func(t *testing.T, root *etree.Element) {
				mustFind(t, root, "./pxs:ReportersRepresentative/cac:PartyIdentification/cbc:ID").CreateAttr("schemeID", "0088")
			},
			rule: "TDD-05",
		},
		{
			name: "two transactions",
			mutate: func(t *testing.T, root *etree.Element) {
				root.AddChild(mustFind(t, root, "./pxs:ReportedTransaction").Copy())
			},
			rule: "TDD-06",
		},
		{
			name: "reported document removed for submit",
			mutate: func(t *testing.T, root *etree.Element) {
				rt := mustFind(t, root, "./pxs:ReportedTransaction")
				rt.RemoveChild(mustFind(t, rt, "./pxs:ReportedDocument"))
			},
			rule: "TDD-07",
		},
		{
			name: "tax currency without tax total",
			mutate: func(t *testing.T, root *etree.Element) {
				rd := mustFind(t, root, "./pxs:ReportedTransaction/pxs:ReportedDocument")
				rd.CreateElement("cbc:TaxCurrencyCode").SetText("USD")
			},
			rule: "TDD-08",
		},
		{
			name: "foreign currency amount",
			mutate: func(t *testing.T, root *etree.Element) {
				mustFind(t, root, "./pxs:ReportedTransaction/pxs:ReportedDocument/cac:TaxTotal/cbc:TaxAmount").CreateAttr("currencyID", "EUR")
			},
			rule: "TDD-09",
		},
		{
			name: "lowercase custom content",
			mutate: func(t *testing.T, root *etree.Element) {
				mustFind(t, root, "./pxs:ReportedTransaction/pxs:CustomContent/cbc:ID").SetText("channel")
			},
			rule: "TDD-10",
		},
		{
			name: "source is not UBL",
			mutate: func(t *testing.T, root *etree.Element) {
				ec := mustFind(t, root, "./pxs:ReportedTransaction/pxs:SourceDocument/ext:ExtensionContent")
				for _, c := range ec.ChildElements() {
					ec.RemoveChild(c)
				}
				ec.CreateElement("Order")
			},
			rule: "TDD-11",
		},
		{
			name: "document currency mismatch",
			mutate: func(t *testing.T, root *etree.Element) {
				mustFind(t, root, "./cbc:DocumentCurrencyCode").SetText("EUR")
			},
			rule: "TDD-12",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := mutate(t, valid, func(root *etree.Element) { tt.mutate(t, root) })

			report, err := newValidator().Validate(context.Background(), data)
			require.NoError(t, err)
			assert.False(t, report.OK())
			assert.Contains(t, report.FailedIDs(), tt.rule)
			assert.NotContains(t, report.Passed, tt.rule)
			for _, a := range report.Failed {
				assert.NotEmpty(t, a.Location)
				assert.NotEmpty(t, a.Text)
			}
		})
	}
}

func TestValidate_NotXML(t *testing.T) {
	_, err := newValidator().Validate(context.Background(), []byte("not xml <"))
	require.Error(t, err)

	var ce *conformance.ConformanceError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, conformance.ErrCodeNotXML, ce.Code)
}

func TestValidate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newValidator().Validate(ctx, buildTDD(t, codelist.DocumentTypeSubmit, true))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReport_FailedIDs(t *testing.T) {
	r := conformance.NewReport()
	assert.True(t, r.OK())
	assert.Empty(t, r.FailedIDs())
	assert.Len(t, conformance.SchemaResources, 3)
}

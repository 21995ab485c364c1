package ubl_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/tdd-builder/internal/model"
	"github.com/rezonia/tdd-builder/internal/ubl"
)

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "testdata", name))
	require.NoError(t, err)
	return data
}

func TestDetectKind(t *testing.T) {
	tests := []struct {
		name     string
		content  []byte
		expected model.DocumentKind
	}{
		{"invoice", readFixture(t, "invoice.xml"), model.KindInvoice},
		{"credit note", readFixture(t, "creditnote.xml"), model.KindCreditNote},
		{"tax data", []byte(`<pxs:TaxData xmlns:pxs="urn:peppol:schema:taxdata:1.0"/>`), model.KindTaxData},
		{"invoice without namespace", []byte(`<Invoice><ID>1</ID></Invoice>`), model.KindUnknown},
		{"not xml", []byte(`%PDF-1.4`), model.KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ubl.DetectKind(tt.content))
		})
	}
}

func TestRegistry_ParseInvoice(t *testing.T) {
	data := readFixture(t, "invoice.xml")

	src, err := ubl.NewRegistry().Parse(context.Background(), data)
	require.NoError(t, err)
	require.Equal(t, model.KindInvoice, src.Kind())

	inv, ok := src.(*ubl.Invoice)
	require.True(t, ok)
	assert.Equal(t, "INV-33445566", inv.ID)
	assert.Equal(t, "380", inv.TypeCode())
	assert.Equal(t, "AED", inv.DocumentCurrencyCode)
	assert.Equal(t, "EUR", inv.TaxCurrencyCode)
	assert.Equal(t, []string{"First note", "Second note"}, inv.Notes)
	require.Len(t, inv.TaxTotals, 2)
	assert.Equal(t, "EUR", inv.TaxTotals[0].TaxAmount.CurrencyID)
	assert.Equal(t, "240", inv.TaxTotals[1].TaxAmount.Value)

	customer := inv.AccountingCustomerParty.Party
	require.Len(t, customer.PartyIdentifications, 1)
	assert.Equal(t, "AE:TIN", customer.PartyIdentifications[0].ID.SchemeID)

	require.Len(t, inv.DocumentLines(), 1)
	line := inv.DocumentLines()[0]
	assert.Equal(t, "STK", line.Quantity().UnitCode)
	assert.Equal(t, "What", line.Item.Name)
	assert.Equal(t, "19.05.01", line.Item.CommodityClassifications[0].ItemClassificationCode.ListVersionID)

	assert.False(t, inv.AllowanceCharges[0].IsCharge())
	assert.Equal(t, data, inv.Raw())
}

func TestRegistry_ParseCreditNote(t *testing.T) {
	src, err := ubl.NewRegistry().Parse(context.Background(), readFixture(t, "creditnote.xml"))
	require.NoError(t, err)

	cn, ok := src.(*ubl.CreditNote)
	require.True(t, ok)
	assert.Equal(t, "CN-0001", cn.ID)
	assert.Equal(t, "381", cn.TypeCode())
	require.Len(t, cn.DocumentLines(), 1)
	assert.Equal(t, "1", cn.DocumentLines()[0].Quantity().Value)
}

func TestRegistry_UnknownFormat(t *testing.T) {
	_, err := ubl.NewRegistry().Parse(context.Background(), []byte(`<Order/>`))
	require.Error(t, err)

	var perr *model.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, model.KindUnknown, perr.Kind)
}

func TestRegistry_GetAdapter(t *testing.T) {
	r := ubl.NewRegistry()
	assert.NotNil(t, r.GetAdapter(model.KindInvoice))
	assert.NotNil(t, r.GetAdapter(model.KindCreditNote))
	assert.Nil(t, r.GetAdapter(model.KindTaxData))
}

func TestStripEmbeddedBinaryObjects(t *testing.T) {
	data := readFixture(t, "invoice.xml")
	original := append([]byte(nil), data...)

	root, removed, err := ubl.StripEmbeddedBinaryObjects(data)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.True(t, ubl.IsSourceRoot(root))

	out, err := ubl.SerializeElement(root)
	require.NoError(t, err)
	assert.NotContains(t, out, "EmbeddedDocumentBinaryObject")
	assert.NotContains(t, out, "JVBERi0x")
	assert.Contains(t, out, "<cbc:ID>ATT-1</cbc:ID>")
	assert.Contains(t, out, "<cbc:ID>INV-33445566</cbc:ID>")
	assert.NotContains(t, out, "<?xml")

	assert.True(t, bytes.Equal(original, data), "input must not be modified")
}

func TestStripEmbeddedBinaryObjects_InvalidXML(t *testing.T) {
	_, _, err := ubl.StripEmbeddedBinaryObjects([]byte("<Invoice"))
	require.Error(t, err)
}

func TestIsSourceRoot(t *testing.T) {
	root, _, err := ubl.StripEmbeddedBinaryObjects([]byte(`<Order xmlns="urn:x"/>`))
	require.NoError(t, err)
	assert.False(t, ubl.IsSourceRoot(root))
	assert.False(t, ubl.IsSourceRoot(nil))

	wrongNS, _, err := ubl.StripEmbeddedBinaryObjects([]byte(`<Invoice xmlns="urn:x"/>`))
	require.NoError(t, err)
	assert.False(t, ubl.IsSourceRoot(wrongNS))

	prefixed, _, err := ubl.StripEmbeddedBinaryObjects([]byte(`<cn:CreditNote xmlns:cn="` + ubl.CreditNoteNamespace + `"/>`))
	require.NoError(t, err)
	assert.True(t, ubl.IsSourceRoot(prefixed))
}

package model

// DocumentKind identifies the root element of an XML document
type DocumentKind string

const (
	KindInvoice    DocumentKind = "Invoice"
	KindCreditNote DocumentKind = "CreditNote"
	KindTaxData    DocumentKind = "TaxData"
	KindUnknown    DocumentKind = "Unknown"
)

// IsSource reports whether documents of this kind can be reported in a TDD
func (k DocumentKind) IsSource() bool {
	return k == KindInvoice || k == KindCreditNote
}

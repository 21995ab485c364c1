package tdd

import (
	"github.com/shopspring/decimal"

	"github.com/rezonia/tdd-builder/internal/ubl"
)

// InitFromInvoice sets all fields except the transport header ID from a UBL
// invoice. The invoice is not modified.
func (b *ReportedTransactionBuilder) InitFromInvoice(inv *ubl.Invoice) *ReportedTransactionBuilder {
	return b.InitFromSource(inv)
}

// InitFromCreditNote sets all fields except the transport header ID from a
// UBL credit note. The credit note is not modified.
func (b *ReportedTransactionBuilder) InitFromCreditNote(cn *ubl.CreditNote) *ReportedTransactionBuilder {
	return b.InitFromSource(cn)
}

// InitFromSource sets all fields except the transport header ID from a parsed
// business document.
//
// Only the first note, invoice period, delivery and party tax scheme are
// used. Tax totals are picked by currency: the first one in document
// currency and the first one in tax currency. Source values that cannot be
// parsed are reported by Validate. Calling it again replaces the lists and
// tax totals read by the previous call.
func (b *ReportedTransactionBuilder) InitFromSource(src ubl.Source) *ReportedTransactionBuilder {
	h := src.Header()
	const name = builderReportedTransaction
	b.resetSourceValues()

	b.customizationID = h.CustomizationID
	b.profileID = h.ProfileID
	b.id = h.ID
	b.uuid = h.UUID
	b.issueDate = b.parseDate(name, "IssueDate", h.IssueDate)
	b.issueTime = b.parseTime(name, "IssueTime", h.IssueTime)
	b.documentTypeCode = src.TypeCode()
	b.note = first(h.Notes)
	b.taxPointDate = b.parseDate(name, "TaxPointDate", h.TaxPointDate)
	b.documentCurrency = h.DocumentCurrencyCode
	b.taxCurrency = h.TaxCurrencyCode

	if len(h.InvoicePeriods) > 0 {
		p := h.InvoicePeriods[0]
		b.periodStart = b.parseDate(name, "InvoicePeriodStart", p.StartDate)
		b.periodEnd = b.parseDate(name, "InvoicePeriodEnd", p.EndDate)
		b.periodDescriptionCode = p.DescriptionCode
	}
	for i := range h.BillingReferences {
		ref := h.BillingReferences[i].InvoiceDocumentReference
		if ref == nil {
			ref = h.BillingReferences[i].CreditNoteDocumentReference
		}
		if ref == nil {
			continue
		}
		b.AddBillingReference(func(br *BillingReferenceBuilder) { br.InitFromUBL(ref) })
	}

	b.initSeller(&h.AccountingSupplierParty.Party)
	b.initBuyer(&h.AccountingCustomerParty.Party)
	if rep := h.TaxRepresentativeParty; rep != nil {
		if len(rep.PartyTaxSchemes) > 0 {
			b.taxRepID = rep.PartyTaxSchemes[0].CompanyID
		}
		if rep.PostalAddress != nil {
			b.taxRepCountryCode = rep.PostalAddress.Country.IdentificationCode
		}
	}
	if len(h.Deliveries) > 0 {
		b.deliveryDate = b.parseDate(name, "DeliveryDate", h.Deliveries[0].ActualDeliveryDate)
	}

	for i := range h.PaymentMeans {
		pm := &h.PaymentMeans[i]
		b.AddPaymentMeans(func(p *PaymentMeansBuilder) { p.InitFromUBL(pm) })
	}

	// everything below is tagged with the document currency
	if b.documentCurrency != "" {
		for i := range h.AllowanceCharges {
			ac := &h.AllowanceCharges[i]
			b.AddAllowanceCharge(func(a *AllowanceChargeBuilder) { a.InitFromUBL(ac) })
		}
		if tt := taxTotalIn(h.TaxTotals, b.documentCurrency); tt != nil {
			b.TaxTotalDocumentCurrency(func(t *TaxTotalBuilder) { t.InitFromUBL(tt) })
		}
	}
	if b.taxCurrency != "" {
		if tt := taxTotalIn(h.TaxTotals, b.taxCurrency); tt != nil {
			b.TaxTotalTaxCurrency(func(t *TaxTotalBuilder) { t.InitFromUBL(tt) })
		}
	}

	mt := &h.LegalMonetaryTotal
	b.lineExtension = b.optionalAmount("LineExtensionAmount", mt.LineExtensionAmount)
	b.taxExclusive = b.optionalAmount("TaxExclusiveAmount", mt.TaxExclusiveAmount)
	b.taxInclusive = b.optionalAmount("TaxInclusiveAmount", mt.TaxInclusiveAmount)
	b.allowanceTotal = b.optionalAmount("AllowanceTotalAmount", mt.AllowanceTotalAmount)
	b.chargeTotal = b.optionalAmount("ChargeTotalAmount", mt.ChargeTotalAmount)
	b.prepaid = b.optionalAmount("PrepaidAmount", mt.PrepaidAmount)
	b.payableRounding = b.optionalAmount("PayableRoundingAmount", mt.PayableRoundingAmount)
	b.payable = b.optionalAmount("PayableAmount", mt.PayableAmount)

	if b.documentCurrency != "" {
		lines := src.DocumentLines()
		for i := range lines {
			l := &lines[i]
			b.AddDocumentLine(func(dl *DocumentLineBuilder) { dl.InitFromUBL(l) })
		}
	}

	return b.SourceDocumentBytes(src.Raw())
}

func (b *ReportedTransactionBuilder) resetSourceValues() {
	b.initErrs = nil
	b.billingReferences = nil
	b.paymentMeans = nil
	b.allowanceCharges = nil
	b.documentLines = nil
	b.taxAmountDocCurrency = nil
	b.taxTotalDocCurrency = nil
	b.taxAmountTaxCurrency = nil
	b.taxTotalTaxCurrency = nil
}

func (b *ReportedTransactionBuilder) initSeller(p *ubl.Party) {
	if len(p.PartyTaxSchemes) > 0 {
		b.sellerTaxID = p.PartyTaxSchemes[0].CompanyID
		if id := p.PartyTaxSchemes[0].TaxScheme.ID; id != "" {
			b.sellerTaxSchemeID = id
		}
	}
	if p.PostalAddress != nil {
		b.sellerCountryCode = p.PostalAddress.Country.IdentificationCode
	}
}

func (b *ReportedTransactionBuilder) initBuyer(p *ubl.Party) {
	if len(p.PartyIdentifications) > 0 {
		b.buyerID = p.PartyIdentifications[0].ID.Value
		b.buyerIDSchemeID = p.PartyIdentifications[0].ID.SchemeID
	}
	if len(p.PartyTaxSchemes) > 0 {
		b.buyerTaxID = p.PartyTaxSchemes[0].CompanyID
	}
	if p.PostalAddress != nil {
		b.buyerCountryCode = p.PostalAddress.Country.IdentificationCode
	}
}

func (b *ReportedTransactionBuilder) optionalAmount(field string, a *ubl.Amount) *decimal.Decimal {
	if a == nil {
		return nil
	}
	return b.parseAmount(builderReportedTransaction, field, a.Value)
}

func taxTotalIn(totals []ubl.TaxTotal, currency string) *ubl.TaxTotal {
	for i := range totals {
		if totals[i].TaxAmount.CurrencyID == currency {
			return &totals[i]
		}
	}
	return nil
}

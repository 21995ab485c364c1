package tdd

import (
	"fmt"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/rezonia/tdd-builder/internal/codelist"
	"github.com/rezonia/tdd-builder/internal/model"
	"github.com/rezonia/tdd-builder/internal/ubl"
)

// DefaultTaxSchemeID is used for party tax registrations unless set otherwise
const DefaultTaxSchemeID = "VAT"

// CustomContent is a key/value extension entry of a reported transaction
type CustomContent struct {
	ID    string
	Value string
}

// ReportedTransactionBuilder builds the reported transaction together with
// its reported document.
//
// Findings on the reported document fields are kept apart from the findings
// on the transaction itself. For omittable document types (see
// codelist.DocumentTypeCode.IsOmittable) the reported document findings do
// not fail the build; they only decide whether the reported document is
// written.
type ReportedTransactionBuilder struct {
	base
	tddType codelist.DocumentTypeCode

	transportHeaderID string

	customizationID  string
	profileID        string
	id               string
	uuid             string
	issueDate        *time.Time
	issueTime        *time.Time
	documentTypeCode string
	note             string
	taxPointDate     *time.Time
	documentCurrency string
	taxCurrency      string

	periodStart           *time.Time
	periodEnd             *time.Time
	periodDescriptionCode string
	billingReferences     []*BillingReferenceBuilder

	sellerTaxID       string
	sellerTaxSchemeID string
	sellerCountryCode string
	buyerID           string
	buyerIDSchemeID   string
	buyerTaxID        string
	buyerCountryCode  string
	taxRepID          string
	taxRepCountryCode string
	deliveryDate      *time.Time
	paymentMeans      []*PaymentMeansBuilder
	allowanceCharges  []*AllowanceChargeBuilder

	// tax totals are either a bare amount tagged at assembly or a full builder
	taxAmountDocCurrency *decimal.Decimal
	taxTotalDocCurrency  *TaxTotalBuilder
	taxAmountTaxCurrency *decimal.Decimal
	taxTotalTaxCurrency  *TaxTotalBuilder

	lineExtension   *decimal.Decimal
	taxExclusive    *decimal.Decimal
	taxInclusive    *decimal.Decimal
	allowanceTotal  *decimal.Decimal
	chargeTotal     *decimal.Decimal
	prepaid         *decimal.Decimal
	payableRounding *decimal.Decimal
	payable         *decimal.Decimal

	documentLines  []*DocumentLineBuilder
	customContents []CustomContent

	sourceRoot *etree.Element
	sourceXML  string
	sourceErr  string
}

// NewReportedTransactionBuilder creates a builder for a TDD of the given type.
// It panics with a *model.UsageError if the type is not a known code.
func NewReportedTransactionBuilder(tddType codelist.DocumentTypeCode) *ReportedTransactionBuilder {
	return newReportedTransactionBuilder(nil, tddType)
}

func newReportedTransactionBuilder(log *zerolog.Logger, tddType codelist.DocumentTypeCode) *ReportedTransactionBuilder {
	if !tddType.IsValid() {
		usagePanic(builderReportedTransaction, fmt.Sprintf("document type code '%s' is not valid", tddType))
	}
	return &ReportedTransactionBuilder{
		base:              newBase(log),
		tddType:           tddType,
		sellerTaxSchemeID: DefaultTaxSchemeID,
	}
}

// TDDType returns the TDD document type the builder was created for
func (b *ReportedTransactionBuilder) TDDType() codelist.DocumentTypeCode {
	return b.tddType
}

func (b *ReportedTransactionBuilder) TransportHeaderID(id string) *ReportedTransactionBuilder {
	b.transportHeaderID = id
	return b
}

func (b *ReportedTransactionBuilder) CustomizationID(id string) *ReportedTransactionBuilder {
	b.customizationID = id
	return b
}

func (b *ReportedTransactionBuilder) ProfileID(id string) *ReportedTransactionBuilder {
	b.profileID = id
	return b
}

func (b *ReportedTransactionBuilder) ID(id string) *ReportedTransactionBuilder {
	b.id = id
	return b
}

func (b *ReportedTransactionBuilder) UUID(uuid string) *ReportedTransactionBuilder {
	b.uuid = uuid
	return b
}

func (b *ReportedTransactionBuilder) IssueDate(d time.Time) *ReportedTransactionBuilder {
	b.issueDate = &d
	return b
}

func (b *ReportedTransactionBuilder) IssueTime(t time.Time) *ReportedTransactionBuilder {
	b.issueTime = &t
	return b
}

// DocumentTypeCode sets the UNCL1001 type code of the reported business
// document, e.g. "380" for a commercial invoice.
func (b *ReportedTransactionBuilder) DocumentTypeCode(code string) *ReportedTransactionBuilder {
	b.documentTypeCode = code
	return b
}

func (b *ReportedTransactionBuilder) Note(note string) *ReportedTransactionBuilder {
	b.note = note
	return b
}

func (b *ReportedTransactionBuilder) TaxPointDate(d time.Time) *ReportedTransactionBuilder {
	b.taxPointDate = &d
	return b
}

// DocumentCurrencyCode sets the currency of all document level amounts.
// It must be set before lines, allowances, charges or tax totals are added.
func (b *ReportedTransactionBuilder) DocumentCurrencyCode(code string) *ReportedTransactionBuilder {
	b.documentCurrency = code
	return b
}

// DocumentCurrency returns the document currency code set so far
func (b *ReportedTransactionBuilder) DocumentCurrency() string {
	return b.documentCurrency
}

func (b *ReportedTransactionBuilder) TaxCurrencyCode(code string) *ReportedTransactionBuilder {
	b.taxCurrency = code
	return b
}

func (b *ReportedTransactionBuilder) InvoicePeriodStart(d time.Time) *ReportedTransactionBuilder {
	b.periodStart = &d
	return b
}

func (b *ReportedTransactionBuilder) InvoicePeriodEnd(d time.Time) *ReportedTransactionBuilder {
	b.periodEnd = &d
	return b
}

func (b *ReportedTransactionBuilder) InvoicePeriodDescriptionCode(code string) *ReportedTransactionBuilder {
	b.periodDescriptionCode = code
	return b
}

// AddBillingReference appends a reference to a previously reported document
func (b *ReportedTransactionBuilder) AddBillingReference(fn func(*BillingReferenceBuilder)) *ReportedTransactionBuilder {
	br := newBillingReferenceBuilder(b.log)
	fn(br)
	b.billingReferences = append(b.billingReferences, br)
	return b
}

func (b *ReportedTransactionBuilder) SellerTaxID(id string) *ReportedTransactionBuilder {
	b.sellerTaxID = id
	return b
}

func (b *ReportedTransactionBuilder) SellerTaxSchemeID(id string) *ReportedTransactionBuilder {
	b.sellerTaxSchemeID = id
	return b
}

func (b *ReportedTransactionBuilder) SellerCountryCode(code string) *ReportedTransactionBuilder {
	b.sellerCountryCode = code
	return b
}

func (b *ReportedTransactionBuilder) BuyerID(id string) *ReportedTransactionBuilder {
	b.buyerID = id
	return b
}

func (b *ReportedTransactionBuilder) BuyerIDSchemeID(scheme string) *ReportedTransactionBuilder {
	b.buyerIDSchemeID = scheme
	return b
}

func (b *ReportedTransactionBuilder) BuyerTaxID(id string) *ReportedTransactionBuilder {
	b.buyerTaxID = id
	return b
}

func (b *ReportedTransactionBuilder) BuyerCountryCode(code string) *ReportedTransactionBuilder {
	b.buyerCountryCode = code
	return b
}

func (b *ReportedTransactionBuilder) TaxRepresentativeID(id string) *ReportedTransactionBuilder {
	b.taxRepID = id
	return b
}

func (b *ReportedTransactionBuilder) TaxRepresentativeCountryCode(code string) *ReportedTransactionBuilder {
	b.taxRepCountryCode = code
	return b
}

func (b *ReportedTransactionBuilder) DeliveryDate(d time.Time) *ReportedTransactionBuilder {
	b.deliveryDate = &d
	return b
}

// AddPaymentMeans appends a payment means entry
func (b *ReportedTransactionBuilder) AddPaymentMeans(fn func(*PaymentMeansBuilder)) *ReportedTransactionBuilder {
	pm := newPaymentMeansBuilder(b.log)
	fn(pm)
	b.paymentMeans = append(b.paymentMeans, pm)
	return b
}

// AddAllowanceCharge appends a document level allowance or charge. The
// document currency code must be set first.
func (b *ReportedTransactionBuilder) AddAllowanceCharge(fn func(*AllowanceChargeBuilder)) *ReportedTransactionBuilder {
	b.requireDocumentCurrency("an allowance or charge")
	ac := newAllowanceChargeBuilder(b.log, b.documentCurrency)
	fn(ac)
	b.allowanceCharges = append(b.allowanceCharges, ac)
	return b
}

// TaxTotalAmountDocumentCurrency sets the total tax in document currency.
// It replaces a tax total configured with TaxTotalDocumentCurrency.
func (b *ReportedTransactionBuilder) TaxTotalAmountDocumentCurrency(a decimal.Decimal) *ReportedTransactionBuilder {
	b.taxAmountDocCurrency = &a
	b.taxTotalDocCurrency = nil
	return b
}

// TaxTotalDocumentCurrency configures the full tax total in document
// currency, including subtotals. The document currency code must be set first.
func (b *ReportedTransactionBuilder) TaxTotalDocumentCurrency(fn func(*TaxTotalBuilder)) *ReportedTransactionBuilder {
	b.requireDocumentCurrency("a tax total")
	tt := newTaxTotalBuilder(b.log, b.documentCurrency)
	fn(tt)
	b.taxTotalDocCurrency = tt
	b.taxAmountDocCurrency = nil
	return b
}

// TaxTotalAmountTaxCurrency sets the total tax in tax currency. It requires
// TaxCurrencyCode and vice versa.
func (b *ReportedTransactionBuilder) TaxTotalAmountTaxCurrency(a decimal.Decimal) *ReportedTransactionBuilder {
	b.taxAmountTaxCurrency = &a
	b.taxTotalTaxCurrency = nil
	return b
}

// TaxTotalTaxCurrency configures the full tax total in tax currency. The tax
// currency code must be set first.
func (b *ReportedTransactionBuilder) TaxTotalTaxCurrency(fn func(*TaxTotalBuilder)) *ReportedTransactionBuilder {
	if b.taxCurrency == "" {
		usagePanic(builderReportedTransaction, "the tax currency code must be set before a tax total in tax currency")
	}
	tt := newTaxTotalBuilder(b.log, b.taxCurrency)
	fn(tt)
	b.taxTotalTaxCurrency = tt
	b.taxAmountTaxCurrency = nil
	return b
}

func (b *ReportedTransactionBuilder) LineExtensionAmount(a decimal.Decimal) *ReportedTransactionBuilder {
	b.lineExtension = &a
	return b
}

func (b *ReportedTransactionBuilder) TaxExclusiveAmount(a decimal.Decimal) *ReportedTransactionBuilder {
	b.taxExclusive = &a
	return b
}

func (b *ReportedTransactionBuilder) TaxInclusiveAmount(a decimal.Decimal) *ReportedTransactionBuilder {
	b.taxInclusive = &a
	return b
}

func (b *ReportedTransactionBuilder) AllowanceTotalAmount(a decimal.Decimal) *ReportedTransactionBuilder {
	b.allowanceTotal = &a
	return b
}

func (b *ReportedTransactionBuilder) ChargeTotalAmount(a decimal.Decimal) *ReportedTransactionBuilder {
	b.chargeTotal = &a
	return b
}

func (b *ReportedTransactionBuilder) PrepaidAmount(a decimal.Decimal) *ReportedTransactionBuilder {
	b.prepaid = &a
	return b
}

func (b *ReportedTransactionBuilder) PayableRoundingAmount(a decimal.Decimal) *ReportedTransactionBuilder {
	b.payableRounding = &a
	return b
}

func (b *ReportedTransactionBuilder) PayableAmount(a decimal.Decimal) *ReportedTransactionBuilder {
	b.payable = &a
	return b
}

// AddDocumentLine appends a document line. The document currency code must
// be set first.
func (b *ReportedTransactionBuilder) AddDocumentLine(fn func(*DocumentLineBuilder)) *ReportedTransactionBuilder {
	b.requireDocumentCurrency("a document line")
	dl := newDocumentLineBuilder(b.log, b.documentCurrency)
	fn(dl)
	b.documentLines = append(b.documentLines, dl)
	return b
}

// AddCustomContent appends a key/value extension entry. The key must be
// upper case.
func (b *ReportedTransactionBuilder) AddCustomContent(id, value string) *ReportedTransactionBuilder {
	b.customContents = append(b.customContents, CustomContent{ID: id, Value: value})
	return b
}

// SourceDocument sets the business document embedded into the transaction.
// The element is serialized immediately; later changes to it are not seen.
func (b *ReportedTransactionBuilder) SourceDocument(e *etree.Element) *ReportedTransactionBuilder {
	b.sourceRoot = e
	b.sourceXML = ""
	b.sourceErr = ""
	if e == nil {
		return b
	}
	s, err := ubl.SerializeElement(e)
	if err != nil {
		b.sourceErr = fmt.Sprintf("SourceDocument cannot be serialized: %v", err)
		return b
	}
	b.sourceXML = s
	return b
}

// SourceDocumentBytes embeds raw with all embedded binary attachments removed
func (b *ReportedTransactionBuilder) SourceDocumentBytes(raw []byte) *ReportedTransactionBuilder {
	root, removed, err := ubl.StripEmbeddedBinaryObjects(raw)
	if err != nil {
		b.SourceDocument(nil)
		b.sourceErr = fmt.Sprintf("SourceDocument cannot be read: %v", err)
		return b
	}
	if removed > 0 {
		b.log.Debug().Int("removed", removed).Msg("Removed embedded binary objects from source document")
	}
	return b.SourceDocument(root)
}

func (b *ReportedTransactionBuilder) requireDocumentCurrency(what string) {
	if b.documentCurrency == "" {
		usagePanic(builderReportedTransaction, "the document currency code must be set before adding "+what)
	}
}

func (b *ReportedTransactionBuilder) hasTaxCurrencyTotal() bool {
	return b.taxAmountTaxCurrency != nil || b.taxTotalTaxCurrency != nil
}

// validate returns the findings on the reported document and the findings
// on the transaction separately
func (b *ReportedTransactionBuilder) validate(logErrors bool) (doc, tx *model.ValidationReport) {
	dc := newChecker(builderReportedTransaction, b.log, logErrors)
	dc.initErrors(&b.base)
	// TransportHeaderID is optional
	dc.requireString("CustomizationID", b.customizationID)
	dc.requireString("ProfileID", b.profileID)
	dc.requireString("ID", b.id)
	dc.requireString("UUID", b.uuid)
	dc.requireSet("IssueDate", b.issueDate != nil)
	// IssueTime is optional
	dc.requireString("DocumentTypeCode", b.documentTypeCode)
	// Note and TaxPointDate are optional
	dc.requireString("DocumentCurrencyCode", b.documentCurrency)
	for _, br := range b.billingReferences {
		dc.child(br.Validate(logErrors))
	}
	dc.requireString("SellerTaxID", b.sellerTaxID)
	dc.requireString("SellerTaxSchemeID", b.sellerTaxSchemeID)
	if b.buyerIDSchemeID != "" && b.buyerID == "" {
		dc.warn("BuyerIDSchemeID", model.RulePair, "BuyerIDSchemeID can only be used if BuyerID is also present")
	}
	for _, pm := range b.paymentMeans {
		dc.child(pm.Validate(logErrors))
	}
	for _, ac := range b.allowanceCharges {
		dc.child(ac.Validate(logErrors))
	}
	switch {
	case b.taxTotalDocCurrency != nil:
		dc.child(b.taxTotalDocCurrency.Validate(logErrors))
	case b.taxAmountDocCurrency == nil:
		dc.fail("TaxTotalAmountDocumentCurrency", model.RuleRequired, "TaxTotalAmountDocumentCurrency is missing")
	}
	if b.hasTaxCurrencyTotal() {
		if b.taxCurrency == "" {
			dc.fail("TaxCurrencyCode", model.RulePair, "If TaxTotalAmountTaxCurrency is provided, TaxCurrencyCode must also be provided")
		}
		if b.taxTotalTaxCurrency != nil {
			dc.child(b.taxTotalTaxCurrency.Validate(logErrors))
		}
	} else if b.taxCurrency != "" {
		dc.fail("TaxTotalAmountTaxCurrency", model.RulePair, "If TaxCurrencyCode is provided, TaxTotalAmountTaxCurrency must also be provided")
	}
	dc.requireSet("TaxExclusiveAmount", b.taxExclusive != nil)
	for _, dl := range b.documentLines {
		dc.child(dl.Validate(logErrors))
	}

	tc := newChecker(builderReportedTransaction, b.log, logErrors)
	for i, cc := range b.customContents {
		field := fmt.Sprintf("CustomContent[%d]", i)
		switch {
		case cc.ID == "":
			tc.fail(field+".ID", model.RuleRequired, field+" ID is missing")
		case cc.ID != strings.ToUpper(cc.ID):
			tc.fail(field+".ID", model.RuleUppercase, fmt.Sprintf("%s ID '%s' must be all uppercase", field, cc.ID))
		}
		if cc.Value == "" {
			tc.fail(field+".Value", model.RuleRequired, field+" Value is missing")
		}
	}
	switch {
	case b.sourceErr != "":
		tc.fail("SourceDocument", model.RuleValue, b.sourceErr)
	case b.sourceRoot == nil:
		tc.fail("SourceDocument", model.RuleRequired, "SourceDocument is missing")
	case !ubl.IsSourceRoot(b.sourceRoot):
		tc.fail("SourceDocument", model.RuleRoot, "SourceDocument must be a UBL 2.1 Invoice or CreditNote")
	}
	return dc.result(), tc.result()
}

// evaluate combines both reports. emitDocument tells whether the reported
// document is written.
func (b *ReportedTransactionBuilder) evaluate(logErrors bool) (r *model.ValidationReport, emitDocument bool) {
	doc, tx := b.validate(logErrors)
	r = model.NewValidationReport(builderReportedTransaction)
	if b.tddType.IsOmittable() {
		for _, v := range doc.Violations {
			r.Add(model.NewValidationWarning(v.Builder, v.Field, v.Rule, v.Message))
		}
		if logErrors && doc.HasErrors() {
			b.log.Info().
				Str("type", string(b.tddType)).
				Int("errors", doc.ErrorCount()).
				Msg("ReportedDocument is omitted")
		}
	} else {
		r.Merge(doc)
	}
	r.Merge(tx)
	return r, !b.tddType.IsOmittable() || doc.ErrorCount() == 0
}

// Validate checks the reported document and the transaction
func (b *ReportedTransactionBuilder) Validate(logErrors bool) *model.ValidationReport {
	r, _ := b.evaluate(logErrors)
	return r
}

// IsEveryRequiredFieldSet reports whether Validate finds no error
func (b *ReportedTransactionBuilder) IsEveryRequiredFieldSet(logErrors bool) bool {
	return b.Validate(logErrors).OK()
}

// Build returns the reported transaction or the validation report as error.
// For omittable document types a reported document with errors is left out
// of the result instead of failing the build.
func (b *ReportedTransactionBuilder) Build() (*model.ReportedTransaction, error) {
	r, emit := b.evaluate(true)
	if r.HasErrors() {
		logFailure(b.log, builderReportedTransaction, r)
		return nil, r
	}
	return b.assemble(emit), nil
}

func (b *ReportedTransactionBuilder) assemble(emitDocument bool) *model.ReportedTransaction {
	ret := &model.ReportedTransaction{
		TransportHeaderID: b.transportHeaderID,
		SourceDocument: &model.SourceDocument{
			ExtensionContent: model.ExtensionContent{XML: b.sourceXML},
		},
	}
	if emitDocument {
		ret.ReportedDocument = b.assembleDocument()
	}
	for _, cc := range b.customContents {
		ret.CustomContents = append(ret.CustomContents, &model.CustomContent{ID: cc.ID, Value: cc.Value})
	}
	return ret
}

func (b *ReportedTransactionBuilder) assembleDocument() *model.ReportedDocument {
	cur := b.documentCurrency
	doc := &model.ReportedDocument{
		CustomizationID:      b.customizationID,
		ProfileID:            b.profileID,
		ID:                   b.id,
		UUID:                 b.uuid,
		IssueDate:            datePtr(b.issueDate),
		IssueTime:            timePtr(b.issueTime),
		DocumentTypeCode:     b.documentTypeCode,
		Note:                 b.note,
		TaxPointDate:         datePtr(b.taxPointDate),
		DocumentCurrencyCode: cur,
		TaxCurrencyCode:      b.taxCurrency,
		InvoicePeriod:        period(b.periodStart, b.periodEnd, b.periodDescriptionCode),
		AccountingSupplierParty: model.SupplierParty{
			Party: party(nil, b.sellerCountryCode, b.sellerTaxID, b.sellerTaxSchemeID),
		},
		AccountingCustomerParty: model.CustomerParty{
			Party: party(buyerIdentification(b.buyerID, b.buyerIDSchemeID), b.buyerCountryCode, b.buyerTaxID, DefaultTaxSchemeID),
		},
		MonetaryTotal: model.MonetaryTotal{
			LineExtensionAmount:   model.NewOptionalAmount(b.lineExtension, cur),
			TaxExclusiveAmount:    model.NewAmount(*b.taxExclusive, cur),
			TaxInclusiveAmount:    model.NewOptionalAmount(b.taxInclusive, cur),
			AllowanceTotalAmount:  model.NewOptionalAmount(b.allowanceTotal, cur),
			ChargeTotalAmount:     model.NewOptionalAmount(b.chargeTotal, cur),
			PrepaidAmount:         model.NewOptionalAmount(b.prepaid, cur),
			PayableRoundingAmount: model.NewOptionalAmount(b.payableRounding, cur),
			PayableAmount:         model.NewOptionalAmount(b.payable, cur),
		},
	}
	for _, br := range b.billingReferences {
		doc.BillingReferences = append(doc.BillingReferences, br.assemble())
	}
	if b.taxRepID != "" || b.taxRepCountryCode != "" {
		p := party(nil, b.taxRepCountryCode, b.taxRepID, DefaultTaxSchemeID)
		doc.TaxRepresentativeParty = &p
	}
	if b.deliveryDate != nil {
		doc.Delivery = &model.Delivery{ActualDeliveryDate: datePtr(b.deliveryDate)}
	}
	for _, pm := range b.paymentMeans {
		doc.PaymentMeans = append(doc.PaymentMeans, pm.assemble())
	}
	for _, ac := range b.allowanceCharges {
		doc.AllowanceCharges = append(doc.AllowanceCharges, ac.assemble())
	}

	if b.taxTotalDocCurrency != nil {
		doc.TaxTotals = append(doc.TaxTotals, b.taxTotalDocCurrency.assemble())
	} else {
		doc.TaxTotals = append(doc.TaxTotals, &model.TaxTotal{TaxAmount: model.NewAmount(*b.taxAmountDocCurrency, cur)})
	}
	switch {
	case b.taxTotalTaxCurrency != nil:
		doc.TaxTotals = append(doc.TaxTotals, b.taxTotalTaxCurrency.assemble())
	case b.taxAmountTaxCurrency != nil:
		doc.TaxTotals = append(doc.TaxTotals, &model.TaxTotal{TaxAmount: model.NewAmount(*b.taxAmountTaxCurrency, b.taxCurrency)})
	}

	for _, dl := range b.documentLines {
		doc.DocumentLines = append(doc.DocumentLines, dl.assemble())
	}
	return doc
}

func buyerIdentification(id, scheme string) []model.PartyIdentification {
	if id == "" {
		return nil
	}
	return []model.PartyIdentification{{ID: model.Identifier{SchemeID: scheme, Value: id}}}
}

func party(ids []model.PartyIdentification, countryCode, taxID, taxSchemeID string) model.Party {
	p := model.Party{PartyIdentifications: ids}
	if countryCode != "" {
		p.PostalAddress = &model.PostalAddress{Country: model.Country{IdentificationCode: countryCode}}
	}
	if taxID != "" {
		p.PartyTaxScheme = &model.PartyTaxScheme{
			CompanyID: taxID,
			TaxScheme: model.TaxScheme{ID: taxSchemeID},
		}
	}
	return p
}

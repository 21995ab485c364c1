package model

import (
	"encoding/xml"

	"github.com/shopspring/decimal"
)

// XML namespaces of the tax data document
const (
	NamespaceTaxData = "urn:peppol:schema:taxdata:1.0"
	NamespaceCBC     = "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"
	NamespaceCAC     = "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
	NamespaceEXT     = "urn:oasis:names:specification:ubl:schema:xsd:CommonExtensionComponents-2"
)

// TaxData is the root of a Tax Data Document
type TaxData struct {
	XMLName  xml.Name `xml:"pxs:TaxData"`
	XmlnsPxs string   `xml:"xmlns:pxs,attr"`
	XmlnsCbc string   `xml:"xmlns:cbc,attr"`
	XmlnsCac string   `xml:"xmlns:cac,attr"`
	XmlnsExt string   `xml:"xmlns:ext,attr"`

	CustomizationID         string                 `xml:"cbc:CustomizationID"`
	ProfileID               string                 `xml:"cbc:ProfileID"`
	UUID                    string                 `xml:"cbc:UUID"`
	IssueDate               Date                   `xml:"cbc:IssueDate"`
	IssueTime               Time                   `xml:"cbc:IssueTime"`
	DocumentTypeCode        string                 `xml:"cbc:DocumentTypeCode"`
	DocumentCurrencyCode    string                 `xml:"cbc:DocumentCurrencyCode,omitempty"`
	DocumentScope           string                 `xml:"pxs:DocumentScope"`
	ReporterRole            string                 `xml:"pxs:ReporterRole"`
	TaxAuthority            TaxAuthority           `xml:"pxs:TaxAuthority"`
	ReportingParty          EndpointParty          `xml:"pxs:ReportingParty"`
	ReceivingParty          EndpointParty          `xml:"pxs:ReceivingParty"`
	ReportersRepresentative RepresentativeParty    `xml:"pxs:ReportersRepresentative"`
	ReportedTransactions    []*ReportedTransaction `xml:"pxs:ReportedTransaction"`
}

// SetNamespaces fills the namespace declarations of the root element
func (t *TaxData) SetNamespaces() {
	t.XmlnsPxs = NamespaceTaxData
	t.XmlnsCbc = NamespaceCBC
	t.XmlnsCac = NamespaceCAC
	t.XmlnsExt = NamespaceEXT
}

// TaxAuthority identifies the authority the document is reported to
type TaxAuthority struct {
	ID   string `xml:"cbc:ID"`
	Name string `xml:"cbc:Name,omitempty"`
}

// EndpointParty is a participant addressed by its endpoint identifier
type EndpointParty struct {
	EndpointID Identifier `xml:"cbc:EndpointID"`
}

// RepresentativeParty is the reporter's representative
type RepresentativeParty struct {
	PartyIdentification PartyIdentification `xml:"cac:PartyIdentification"`
}

// ReportedTransaction wraps one reported business transaction
type ReportedTransaction struct {
	TransportHeaderID string            `xml:"pxs:TransportHeaderID,omitempty"`
	ReportedDocument  *ReportedDocument `xml:"pxs:ReportedDocument,omitempty"`
	CustomContents    []*CustomContent  `xml:"pxs:CustomContent"`
	SourceDocument    *SourceDocument   `xml:"pxs:SourceDocument,omitempty"`
}

// CustomContent is a free key/value extension entry
type CustomContent struct {
	ID    string `xml:"cbc:ID"`
	Value string `xml:"cbc:Value"`
}

// SourceDocument embeds the original business document
type SourceDocument struct {
	ExtensionContent ExtensionContent `xml:"ext:ExtensionContent"`
}

// ExtensionContent holds serialized XML written verbatim
type ExtensionContent struct {
	XML string `xml:",innerxml"`
}

// ReportedDocument is the document level view of the reported transaction
type ReportedDocument struct {
	CustomizationID         string              `xml:"cbc:CustomizationID,omitempty"`
	ProfileID               string              `xml:"cbc:ProfileID,omitempty"`
	ID                      string              `xml:"cbc:ID"`
	UUID                    string              `xml:"cbc:UUID,omitempty"`
	IssueDate               *Date               `xml:"cbc:IssueDate,omitempty"`
	IssueTime               *Time               `xml:"cbc:IssueTime,omitempty"`
	DocumentTypeCode        string              `xml:"cbc:DocumentTypeCode,omitempty"`
	Note                    string              `xml:"cbc:Note,omitempty"`
	TaxPointDate            *Date               `xml:"cbc:TaxPointDate,omitempty"`
	DocumentCurrencyCode    string              `xml:"cbc:DocumentCurrencyCode"`
	TaxCurrencyCode         string              `xml:"cbc:TaxCurrencyCode,omitempty"`
	InvoicePeriod           *Period             `xml:"cac:InvoicePeriod,omitempty"`
	BillingReferences       []*BillingReference `xml:"cac:BillingReference"`
	AccountingSupplierParty SupplierParty       `xml:"cac:AccountingSupplierParty"`
	AccountingCustomerParty CustomerParty       `xml:"cac:AccountingCustomerParty"`
	TaxRepresentativeParty  *Party              `xml:"cac:TaxRepresentativeParty,omitempty"`
	Delivery                *Delivery           `xml:"cac:Delivery,omitempty"`
	PaymentMeans            []*PaymentMeans     `xml:"cac:PaymentMeans"`
	AllowanceCharges        []*AllowanceCharge  `xml:"cac:AllowanceCharge"`
	TaxTotals               []*TaxTotal         `xml:"cac:TaxTotal"`
	MonetaryTotal           MonetaryTotal       `xml:"cac:MonetaryTotal"`
	DocumentLines           []*DocumentLine     `xml:"pxs:DocumentLine"`
}

// Period is an invoicing period
type Period struct {
	StartDate       *Date  `xml:"cbc:StartDate,omitempty"`
	EndDate         *Date  `xml:"cbc:EndDate,omitempty"`
	DescriptionCode string `xml:"cbc:DescriptionCode,omitempty"`
}

// BillingReference points to a previously reported document
type BillingReference struct {
	InvoiceDocumentReference DocumentReference `xml:"cac:InvoiceDocumentReference"`
}

// DocumentReference identifies a referenced document
type DocumentReference struct {
	ID        Identifier `xml:"cbc:ID"`
	IssueDate *Date      `xml:"cbc:IssueDate,omitempty"`
}

// SupplierParty wraps the seller
type SupplierParty struct {
	Party Party `xml:"cac:Party"`
}

// CustomerParty wraps the buyer
type CustomerParty struct {
	Party Party `xml:"cac:Party"`
}

// Party carries the identification, country and tax registration of a party
type Party struct {
	PartyIdentifications []PartyIdentification `xml:"cac:PartyIdentification"`
	PostalAddress        *PostalAddress        `xml:"cac:PostalAddress,omitempty"`
	PartyTaxScheme       *PartyTaxScheme       `xml:"cac:PartyTaxScheme,omitempty"`
}

// PartyIdentification holds a party identifier
type PartyIdentification struct {
	ID Identifier `xml:"cbc:ID"`
}

// PostalAddress is reduced to the country
type PostalAddress struct {
	Country Country `xml:"cac:Country"`
}

// Country holds an ISO 3166-1 alpha-2 code
type Country struct {
	IdentificationCode string `xml:"cbc:IdentificationCode"`
}

// PartyTaxScheme holds a tax registration
type PartyTaxScheme struct {
	CompanyID string    `xml:"cbc:CompanyID"`
	TaxScheme TaxScheme `xml:"cac:TaxScheme"`
}

// TaxScheme identifies a tax, e.g. "VAT"
type TaxScheme struct {
	ID string `xml:"cbc:ID,omitempty"`
}

// Delivery holds the actual delivery date
type Delivery struct {
	ActualDeliveryDate *Date `xml:"cbc:ActualDeliveryDate,omitempty"`
}

// PaymentMeans describes how the document is paid
type PaymentMeans struct {
	PaymentMeansCode      Code              `xml:"cbc:PaymentMeansCode"`
	PaymentID             string            `xml:"cbc:PaymentID,omitempty"`
	CardAccount           *CardAccount      `xml:"cac:CardAccount,omitempty"`
	PayeeFinancialAccount *FinancialAccount `xml:"cac:PayeeFinancialAccount,omitempty"`
}

// CardAccount describes a payment card
type CardAccount struct {
	PrimaryAccountNumberID string `xml:"cbc:PrimaryAccountNumberID"`
	NetworkID              string `xml:"cbc:NetworkID,omitempty"`
	HolderName             string `xml:"cbc:HolderName,omitempty"`
}

// FinancialAccount describes the payee account
type FinancialAccount struct {
	ID                         Identifier                  `xml:"cbc:ID"`
	FinancialInstitutionBranch *FinancialInstitutionBranch `xml:"cac:FinancialInstitutionBranch,omitempty"`
}

// FinancialInstitutionBranch identifies a bank branch
type FinancialInstitutionBranch struct {
	ID Identifier `xml:"cbc:ID"`
}

// AllowanceCharge is a document or line level allowance or charge
type AllowanceCharge struct {
	ChargeIndicator           bool             `xml:"cbc:ChargeIndicator"`
	AllowanceChargeReasonCode string           `xml:"cbc:AllowanceChargeReasonCode,omitempty"`
	AllowanceChargeReason     string           `xml:"cbc:AllowanceChargeReason,omitempty"`
	MultiplierFactorNumeric   *decimal.Decimal `xml:"cbc:MultiplierFactorNumeric,omitempty"`
	Amount                    Amount           `xml:"cbc:Amount"`
	BaseAmount                *Amount          `xml:"cbc:BaseAmount,omitempty"`
	TaxCategory               *TaxCategory     `xml:"cac:TaxCategory,omitempty"`
}

// TaxCategory is a tax category, used as classified tax category of items too
type TaxCategory struct {
	ID                     Identifier       `xml:"cbc:ID"`
	Percent                *decimal.Decimal `xml:"cbc:Percent,omitempty"`
	TaxExemptionReasonCode string           `xml:"cbc:TaxExemptionReasonCode,omitempty"`
	TaxExemptionReason     string           `xml:"cbc:TaxExemptionReason,omitempty"`
	TaxScheme              TaxScheme        `xml:"cac:TaxScheme"`
}

// TaxTotal is the total tax in one currency
type TaxTotal struct {
	TaxAmount    Amount         `xml:"cbc:TaxAmount"`
	TaxSubtotals []*TaxSubtotal `xml:"cac:TaxSubtotal"`
}

// TaxSubtotal is the tax of one category
type TaxSubtotal struct {
	TaxableAmount Amount      `xml:"cbc:TaxableAmount"`
	TaxAmount     Amount      `xml:"cbc:TaxAmount"`
	TaxCategory   TaxCategory `xml:"cac:TaxCategory"`
}

// MonetaryTotal holds the document totals
type MonetaryTotal struct {
	LineExtensionAmount   *Amount `xml:"cbc:LineExtensionAmount,omitempty"`
	TaxExclusiveAmount    Amount  `xml:"cbc:TaxExclusiveAmount"`
	TaxInclusiveAmount    *Amount `xml:"cbc:TaxInclusiveAmount,omitempty"`
	AllowanceTotalAmount  *Amount `xml:"cbc:AllowanceTotalAmount,omitempty"`
	ChargeTotalAmount     *Amount `xml:"cbc:ChargeTotalAmount,omitempty"`
	PrepaidAmount         *Amount `xml:"cbc:PrepaidAmount,omitempty"`
	PayableRoundingAmount *Amount `xml:"cbc:PayableRoundingAmount,omitempty"`
	PayableAmount         *Amount `xml:"cbc:PayableAmount,omitempty"`
}

// DocumentLine is a reported line
type DocumentLine struct {
	ID                  string             `xml:"cbc:ID"`
	Note                string             `xml:"cbc:Note,omitempty"`
	InvoicedQuantity    Quantity           `xml:"cbc:InvoicedQuantity"`
	LineExtensionAmount Amount             `xml:"cbc:LineExtensionAmount"`
	InvoicePeriod       *Period            `xml:"cac:InvoicePeriod,omitempty"`
	AllowanceCharges    []*AllowanceCharge `xml:"cac:AllowanceCharge"`
	Item                Item               `xml:"cac:Item"`
	Price               Price              `xml:"cac:Price"`
}

// Item describes the traded good or service
type Item struct {
	Description              string                     `xml:"cbc:Description,omitempty"`
	Name                     string                     `xml:"cbc:Name"`
	CommodityClassifications []*CommodityClassification `xml:"cac:CommodityClassification"`
	ClassifiedTaxCategory    TaxCategory                `xml:"cac:ClassifiedTaxCategory"`
}

// CommodityClassification classifies an item
type CommodityClassification struct {
	ItemClassificationCode Code `xml:"cbc:ItemClassificationCode"`
}

// Price holds the net unit price
type Price struct {
	PriceAmount Amount `xml:"cbc:PriceAmount"`
}

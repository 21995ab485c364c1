// Package ubl reads UBL 2.1 invoices and credit notes, the business
// documents reported in a TDD. Documents are read only; the raw bytes are
// retained so the original can be embedded.
package ubl

import (
	"encoding/xml"

	"github.com/rezonia/tdd-builder/internal/model"
)

// UBL document namespaces
const (
	InvoiceNamespace    = "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
	CreditNoteNamespace = "urn:oasis:names:specification:ubl:schema:xsd:CreditNote-2"
)

// Source is a parsed business document
type Source interface {
	Kind() model.DocumentKind
	Raw() []byte
	Header() *Common
	DocumentLines() []Line
	TypeCode() string
}

// Common holds the elements shared by invoices and credit notes
type Common struct {
	CustomizationID              string              `xml:"CustomizationID"`
	ProfileID                    string              `xml:"ProfileID"`
	ID                           string              `xml:"ID"`
	UUID                         string              `xml:"UUID"`
	IssueDate                    string              `xml:"IssueDate"`
	IssueTime                    string              `xml:"IssueTime"`
	DueDate                      string              `xml:"DueDate"`
	Notes                        []string            `xml:"Note"`
	TaxPointDate                 string              `xml:"TaxPointDate"`
	DocumentCurrencyCode         string              `xml:"DocumentCurrencyCode"`
	TaxCurrencyCode              string              `xml:"TaxCurrencyCode"`
	BuyerReference               string              `xml:"BuyerReference"`
	InvoicePeriods               []Period            `xml:"InvoicePeriod"`
	BillingReferences            []BillingReference  `xml:"BillingReference"`
	AdditionalDocumentReferences []DocumentReference `xml:"AdditionalDocumentReference"`
	AccountingSupplierParty      PartyWrapper        `xml:"AccountingSupplierParty"`
	AccountingCustomerParty      PartyWrapper        `xml:"AccountingCustomerParty"`
	TaxRepresentativeParty       *Party              `xml:"TaxRepresentativeParty"`
	Deliveries                   []Delivery          `xml:"Delivery"`
	PaymentMeans                 []PaymentMeans      `xml:"PaymentMeans"`
	AllowanceCharges             []AllowanceCharge   `xml:"AllowanceCharge"`
	TaxTotals                    []TaxTotal          `xml:"TaxTotal"`
	LegalMonetaryTotal           MonetaryTotal       `xml:"LegalMonetaryTotal"`
}

// Invoice is a UBL Invoice
type Invoice struct {
	XMLName xml.Name `xml:"Invoice"`
	Common
	InvoiceTypeCode string `xml:"InvoiceTypeCode"`
	InvoiceLines    []Line `xml:"InvoiceLine"`

	raw []byte
}

func (i *Invoice) Kind() model.DocumentKind { return model.KindInvoice }
func (i *Invoice) Raw() []byte               { return i.raw }
func (i *Invoice) Header() *Common           { return &i.Common }
func (i *Invoice) DocumentLines() []Line     { return i.InvoiceLines }
func (i *Invoice) TypeCode() string          { return i.InvoiceTypeCode }

// CreditNote is a UBL CreditNote
type CreditNote struct {
	XMLName xml.Name `xml:"CreditNote"`
	Common
	CreditNoteTypeCode string `xml:"CreditNoteTypeCode"`
	CreditNoteLines    []Line `xml:"CreditNoteLine"`

	raw []byte
}

func (c *CreditNote) Kind() model.DocumentKind { return model.KindCreditNote }
func (c *CreditNote) Raw() []byte               { return c.raw }
func (c *CreditNote) Header() *Common           { return &c.Common }
func (c *CreditNote) DocumentLines() []Line     { return c.CreditNoteLines }
func (c *CreditNote) TypeCode() string          { return c.CreditNoteTypeCode }

// Identifier is an identifier with optional scheme
type Identifier struct {
	SchemeID string `xml:"schemeID,attr"`
	Value    string `xml:",chardata"`
}

// Code is a code list value
type Code struct {
	ListID        string `xml:"listID,attr"`
	ListVersionID string `xml:"listVersionID,attr"`
	Name          string `xml:"name,attr"`
	Value         string `xml:",chardata"`
}

// Amount keeps the lexical amount; conversion happens during extraction
type Amount struct {
	CurrencyID string `xml:"currencyID,attr"`
	Value      string `xml:",chardata"`
}

// Quantity keeps the lexical quantity
type Quantity struct {
	UnitCode string `xml:"unitCode,attr"`
	Value    string `xml:",chardata"`
}

type Period struct {
	StartDate       string `xml:"StartDate"`
	EndDate         string `xml:"EndDate"`
	DescriptionCode string `xml:"DescriptionCode"`
}

type BillingReference struct {
	InvoiceDocumentReference    *DocumentReference `xml:"InvoiceDocumentReference"`
	CreditNoteDocumentReference *DocumentReference `xml:"CreditNoteDocumentReference"`
}

type DocumentReference struct {
	ID               Identifier `xml:"ID"`
	IssueDate        string     `xml:"IssueDate"`
	DocumentTypeCode string     `xml:"DocumentTypeCode"`
}

type PartyWrapper struct {
	Party Party `xml:"Party"`
}

type Party struct {
	EndpointID           Identifier            `xml:"EndpointID"`
	PartyIdentifications []PartyIdentification `xml:"PartyIdentification"`
	PartyNames           []PartyName           `xml:"PartyName"`
	PostalAddress        *PostalAddress        `xml:"PostalAddress"`
	PartyTaxSchemes      []PartyTaxScheme      `xml:"PartyTaxScheme"`
}

type PartyIdentification struct {
	ID Identifier `xml:"ID"`
}

type PartyName struct {
	Name string `xml:"Name"`
}

type PostalAddress struct {
	Country Country `xml:"Country"`
}

type Country struct {
	IdentificationCode string `xml:"IdentificationCode"`
}

type PartyTaxScheme struct {
	CompanyID string    `xml:"CompanyID"`
	TaxScheme TaxScheme `xml:"TaxScheme"`
}

type TaxScheme struct {
	ID string `xml:"ID"`
}

type Delivery struct {
	ActualDeliveryDate string `xml:"ActualDeliveryDate"`
}

type PaymentMeans struct {
	PaymentMeansCode      Code              `xml:"PaymentMeansCode"`
	PaymentIDs            []string          `xml:"PaymentID"`
	CardAccount           *CardAccount      `xml:"CardAccount"`
	PayeeFinancialAccount *FinancialAccount `xml:"PayeeFinancialAccount"`
}

type CardAccount struct {
	PrimaryAccountNumberID string `xml:"PrimaryAccountNumberID"`
	NetworkID              string `xml:"NetworkID"`
	HolderName             string `xml:"HolderName"`
}

type FinancialAccount struct {
	ID                         Identifier                  `xml:"ID"`
	FinancialInstitutionBranch *FinancialInstitutionBranch `xml:"FinancialInstitutionBranch"`
}

type FinancialInstitutionBranch struct {
	ID Identifier `xml:"ID"`
}

type AllowanceCharge struct {
	ChargeIndicator           string        `xml:"ChargeIndicator"`
	AllowanceChargeReasonCode string        `xml:"AllowanceChargeReasonCode"`
	AllowanceChargeReason     string        `xml:"AllowanceChargeReason"`
	MultiplierFactorNumeric   string        `xml:"MultiplierFactorNumeric"`
	Amount                    Amount        `xml:"Amount"`
	BaseAmount                *Amount       `xml:"BaseAmount"`
	TaxCategories             []TaxCategory `xml:"TaxCategory"`
}

// IsCharge reads the xsd:boolean charge indicator
func (a *AllowanceCharge) IsCharge() bool {
	return a.ChargeIndicator == "true" || a.ChargeIndicator == "1"
}

type TaxCategory struct {
	ID                     Identifier `xml:"ID"`
	Percent                string     `xml:"Percent"`
	TaxExemptionReasonCode string     `xml:"TaxExemptionReasonCode"`
	TaxExemptionReason     string     `xml:"TaxExemptionReason"`
	TaxScheme              TaxScheme  `xml:"TaxScheme"`
}

type TaxTotal struct {
	TaxAmount    Amount        `xml:"TaxAmount"`
	TaxSubtotals []TaxSubtotal `xml:"TaxSubtotal"`
}

type TaxSubtotal struct {
	TaxableAmount Amount      `xml:"TaxableAmount"`
	TaxAmount     Amount      `xml:"TaxAmount"`
	TaxCategory   TaxCategory `xml:"TaxCategory"`
}

type MonetaryTotal struct {
	LineExtensionAmount   *Amount `xml:"LineExtensionAmount"`
	TaxExclusiveAmount    *Amount `xml:"TaxExclusiveAmount"`
	TaxInclusiveAmount    *Amount `xml:"TaxInclusiveAmount"`
	AllowanceTotalAmount  *Amount `xml:"AllowanceTotalAmount"`
	ChargeTotalAmount     *Amount `xml:"ChargeTotalAmount"`
	PrepaidAmount         *Amount `xml:"PrepaidAmount"`
	PayableRoundingAmount *Amount `xml:"PayableRoundingAmount"`
	PayableAmount         *Amount `xml:"PayableAmount"`
}

// Line is an invoice line or a credit note line
type Line struct {
	ID                  string            `xml:"ID"`
	Notes               []string          `xml:"Note"`
	InvoicedQuantity    *Quantity         `xml:"InvoicedQuantity"`
	CreditedQuantity    *Quantity         `xml:"CreditedQuantity"`
	LineExtensionAmount Amount            `xml:"LineExtensionAmount"`
	InvoicePeriods      []Period          `xml:"InvoicePeriod"`
	AllowanceCharges    []AllowanceCharge `xml:"AllowanceCharge"`
	Item                Item              `xml:"Item"`
	Price               Price             `xml:"Price"`
}

// Quantity returns the invoiced or credited quantity, whichever is present
func (l *Line) Quantity() *Quantity {
	if l.InvoicedQuantity != nil {
		return l.InvoicedQuantity
	}
	return l.CreditedQuantity
}

type Item struct {
	Descriptions             []string                  `xml:"Description"`
	Name                     string                    `xml:"Name"`
	CommodityClassifications []CommodityClassification `xml:"CommodityClassification"`
	ClassifiedTaxCategories  []TaxCategory             `xml:"ClassifiedTaxCategory"`
}

type CommodityClassification struct {
	ItemClassificationCode Code `xml:"ItemClassificationCode"`
}

type Price struct {
	PriceAmount Amount `xml:"PriceAmount"`
}

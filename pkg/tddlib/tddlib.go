// Package tddlib provides a public API for building Peppol Tax Data
// Documents from UBL 2.1 invoices and credit notes.
//
// Example usage:
//
//	src, err := tddlib.ParseSource(ctx, content)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	td, err := tddlib.NewBuilder().
//	    DocumentTypeCode(tddlib.DocumentTypeSubmit).
//	    DocumentScope(tddlib.DocumentScopeDomestic).
//	    ReporterRole(tddlib.ReporterRoleSender).
//	    TaxAuthorityID("AE-FTA").
//	    ReportingParty(tddlib.Participant("0235:1234567890")).
//	    ReceivingParty(tddlib.Participant("0242:000001")).
//	    ReportersRepresentative(tddlib.Participant("0242:000002")).
//	    ReportedTransaction(func(rt *tddlib.ReportedTransactionBuilder) {
//	        rt.InitFromSource(src)
//	    }).
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out, err := tddlib.Marshal(td)
package tddlib

import (
	"github.com/rezonia/tdd-builder/internal/codelist"
	"github.com/rezonia/tdd-builder/internal/conformance"
	"github.com/rezonia/tdd-builder/internal/model"
	"github.com/rezonia/tdd-builder/internal/peppolid"
	"github.com/rezonia/tdd-builder/internal/tdd"
	"github.com/rezonia/tdd-builder/internal/ubl"
)

// Re-export core types for public API
type (
	TaxData             = model.TaxData
	ReportedTransaction = model.ReportedTransaction
	ReportedDocument    = model.ReportedDocument
	DocumentLine        = model.DocumentLine
	Source              = ubl.Source
	Identifier          = peppolid.Identifier
	DocumentTypeCode    = codelist.DocumentTypeCode
	DocumentScope       = codelist.DocumentScope
	ReporterRole        = codelist.ReporterRole
	ConformanceReport   = conformance.Report
)

// Re-export builders
type (
	Builder                    = tdd.Builder
	Option                     = tdd.Option
	ReportedTransactionBuilder = tdd.ReportedTransactionBuilder
	DocumentLineBuilder        = tdd.DocumentLineBuilder
	TaxTotalBuilder            = tdd.TaxTotalBuilder
	TaxSubtotalBuilder         = tdd.TaxSubtotalBuilder
	TaxCategoryBuilder         = tdd.TaxCategoryBuilder
	AllowanceChargeBuilder     = tdd.AllowanceChargeBuilder
	BillingReferenceBuilder    = tdd.BillingReferenceBuilder
	PaymentMeansBuilder        = tdd.PaymentMeansBuilder
	ItemBuilder                = tdd.ItemBuilder
)

// Re-export document type codes
const (
	DocumentTypeSubmit    = codelist.DocumentTypeSubmit
	DocumentTypeResubmit  = codelist.DocumentTypeResubmit
	DocumentTypeWithdraw  = codelist.DocumentTypeWithdraw
	DocumentTypeDisregard = codelist.DocumentTypeDisregard
	DocumentTypeFailed    = codelist.DocumentTypeFailed
)

// Re-export scopes and roles
const (
	DocumentScopeDomestic      = codelist.DocumentScopeDomestic
	DocumentScopeInternational = codelist.DocumentScopeInternational
	ReporterRoleSender         = codelist.ReporterRoleSender
	ReporterRoleReceiver       = codelist.ReporterRoleReceiver
)

// Re-export error types
type (
	ParseError       = model.ParseError
	ValidationError  = model.ValidationError
	ValidationReport = model.ValidationReport
	UsageError       = model.UsageError
)

// Re-export builder options
var (
	WithLogger              = tdd.WithLogger
	WithIdentifierValidator = tdd.WithIdentifierValidator
	WithNamespace           = tdd.WithNamespace
	WithClock               = tdd.WithClock
)

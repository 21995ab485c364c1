// Package codelist holds the closed code lists used in tax data documents.
package codelist

import "fmt"

// DocumentTypeCode classifies the reporting event of a tax data document
type DocumentTypeCode string

const (
	DocumentTypeSubmit    DocumentTypeCode = "S"
	DocumentTypeResubmit  DocumentTypeCode = "R"
	DocumentTypeWithdraw  DocumentTypeCode = "W"
	DocumentTypeDisregard DocumentTypeCode = "D"
	DocumentTypeFailed    DocumentTypeCode = "F"
)

var documentTypeNames = map[DocumentTypeCode]string{
	DocumentTypeSubmit:    "submit",
	DocumentTypeResubmit:  "resubmit",
	DocumentTypeWithdraw:  "withdraw",
	DocumentTypeDisregard: "disregard",
	DocumentTypeFailed:    "failed",
}

// omittableTypes lists the document types whose ReportedDocument may be left
// out when it does not validate. Changing this set changes which TDDs are
// accepted without a reported document.
var omittableTypes = map[DocumentTypeCode]bool{
	DocumentTypeDisregard: true,
	DocumentTypeFailed:    true,
}

// ID returns the wire value
func (c DocumentTypeCode) ID() string { return string(c) }

// Name returns a human readable name
func (c DocumentTypeCode) Name() string {
	if n, ok := documentTypeNames[c]; ok {
		return n
	}
	return "unknown"
}

// IsValid reports whether c is a known document type code
func (c DocumentTypeCode) IsValid() bool {
	_, ok := documentTypeNames[c]
	return ok
}

// IsOmittable reports whether the reported document may be absent for this type
func (c DocumentTypeCode) IsOmittable() bool {
	return omittableTypes[c]
}

// ParseDocumentTypeCode accepts either the wire value ("S") or the name ("submit")
func ParseDocumentTypeCode(s string) (DocumentTypeCode, error) {
	for code, name := range documentTypeNames {
		if s == string(code) || s == name {
			return code, nil
		}
	}
	return "", fmt.Errorf("unknown document type code: %q", s)
}

// DocumentScope distinguishes domestic from cross-border transactions
type DocumentScope string

const (
	DocumentScopeDomestic      DocumentScope = "D"
	DocumentScopeInternational DocumentScope = "I"
)

// ID returns the wire value
func (s DocumentScope) ID() string { return string(s) }

// IsValid reports whether s is a known scope
func (s DocumentScope) IsValid() bool {
	return s == DocumentScopeDomestic || s == DocumentScopeInternational
}

// ParseDocumentScope accepts the wire value or "domestic"/"international"
func ParseDocumentScope(s string) (DocumentScope, error) {
	switch s {
	case "D", "domestic":
		return DocumentScopeDomestic, nil
	case "I", "international":
		return DocumentScopeInternational, nil
	}
	return "", fmt.Errorf("unknown document scope: %q", s)
}

// ReporterRole tells whether the reporter sent or received the business document
type ReporterRole string

const (
	ReporterRoleSender   ReporterRole = "01"
	ReporterRoleReceiver ReporterRole = "02"
)

// ID returns the wire value
func (r ReporterRole) ID() string { return string(r) }

// IsValid reports whether r is a known role
func (r ReporterRole) IsValid() bool {
	return r == ReporterRoleSender || r == ReporterRoleReceiver
}

// ParseReporterRole accepts the wire value or "sender"/"receiver"
func ParseReporterRole(s string) (ReporterRole, error) {
	switch s {
	case "01", "sender":
		return ReporterRoleSender, nil
	case "02", "receiver":
		return ReporterRoleReceiver, nil
	}
	return "", fmt.Errorf("unknown reporter role: %q", s)
}

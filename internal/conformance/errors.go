package conformance

import "fmt"

// Error codes for documents that cannot be checked at all
const (
	ErrCodeNotXML        = "NOT_XML"
	ErrCodeEmptyDocument = "EMPTY_DOCUMENT"
)

// ConformanceError is returned when the input is not a checkable XML document.
// Rule violations are never errors; they are reported as failed assertions.
type ConformanceError struct {
	Code    string
	Message string
	Cause   error
}

func (e *ConformanceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s (%v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *ConformanceError) Unwrap() error {
	return e.Cause
}

// ErrNotXML returns the error for input that does not parse as XML
func ErrNotXML(cause error) *ConformanceError {
	return &ConformanceError{Code: ErrCodeNotXML, Message: "input is not well-formed XML", Cause: cause}
}

// ErrEmptyDocument returns the error for XML without a root element
func ErrEmptyDocument() *ConformanceError {
	return &ConformanceError{Code: ErrCodeEmptyDocument, Message: "document has no root element"}
}

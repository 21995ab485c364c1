package model

import (
	"fmt"
	"strings"
)

// ParseError represents source document read failures
type ParseError struct {
	Kind    DocumentKind
	Field   string
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s (%v)", e.Kind, e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Kind, e.Field, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// NewParseError creates a new parse error
func NewParseError(kind DocumentKind, field, message string, cause error) *ParseError {
	return &ParseError{
		Kind:    kind,
		Field:   field,
		Message: message,
		Cause:   cause,
	}
}

// Severity of a validation finding
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Validation rule identifiers
const (
	RuleRequired  = "required"
	RulePair      = "pair"
	RuleScheme    = "scheme"
	RuleValue     = "value"
	RulePrefix    = "prefix"
	RuleUppercase = "uppercase"
	RuleRoot      = "root"
	RuleChild     = "child"
)

// ValidationError represents a single violated builder rule
type ValidationError struct {
	Builder  string   `json:"builder"`
	Field    string   `json:"field"`
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s.%s: %s (rule=%s)", e.Builder, e.Field, e.Message, e.Rule)
}

// NewValidationError creates a new error-severity validation finding
func NewValidationError(builder, field, rule, message string) *ValidationError {
	return &ValidationError{
		Builder:  builder,
		Field:    field,
		Rule:     rule,
		Severity: SeverityError,
		Message:  message,
	}
}

// NewValidationWarning creates a new warning-severity validation finding
func NewValidationWarning(builder, field, rule, message string) *ValidationError {
	return &ValidationError{
		Builder:  builder,
		Field:    field,
		Rule:     rule,
		Severity: SeverityWarning,
		Message:  message,
	}
}

// ValidationReport collects the findings of one builder, including the
// findings folded in from its children. It is returned as the error of a
// failed Build.
type ValidationReport struct {
	Builder    string             `json:"builder"`
	Violations []*ValidationError `json:"violations"`
}

// NewValidationReport creates an empty report for builder
func NewValidationReport(builder string) *ValidationReport {
	return &ValidationReport{Builder: builder}
}

// Add appends a finding
func (r *ValidationReport) Add(v *ValidationError) {
	r.Violations = append(r.Violations, v)
}

// Merge folds all findings of child into r. A nil child is ignored.
func (r *ValidationReport) Merge(child *ValidationReport) {
	if child == nil {
		return
	}
	r.Violations = append(r.Violations, child.Violations...)
}

// ErrorCount returns the number of error-severity findings
func (r *ValidationReport) ErrorCount() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, v := range r.Violations {
		if v.Severity == SeverityError {
			n++
		}
	}
	return n
}

// Errors returns the error-severity findings
func (r *ValidationReport) Errors() []*ValidationError {
	return r.filter(SeverityError)
}

// Warnings returns the warning-severity findings
func (r *ValidationReport) Warnings() []*ValidationError {
	return r.filter(SeverityWarning)
}

// HasErrors reports whether any error-severity finding exists
func (r *ValidationReport) HasErrors() bool {
	return r.ErrorCount() > 0
}

// OK is the inverse of HasErrors
func (r *ValidationReport) OK() bool {
	return !r.HasErrors()
}

func (r *ValidationReport) filter(s Severity) []*ValidationError {
	if r == nil {
		return nil
	}
	var out []*ValidationError
	for _, v := range r.Violations {
		if v.Severity == s {
			out = append(out, v)
		}
	}
	return out
}

func (r *ValidationReport) Error() string {
	errs := r.Errors()
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Builder+"."+e.Field+": "+e.Message)
	}
	return fmt.Sprintf("TDD %s cannot be built, %d error(s): %s", r.Builder, len(errs), strings.Join(msgs, "; "))
}

// UsageError signals a builder called in an invalid order. Builders raise
// it with panic; it is never returned as an error value.
type UsageError struct {
	Builder string
	Message string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("invalid use of %s builder: %s", e.Builder, e.Message)
}

// NewUsageError creates a new usage error
func NewUsageError(builder, message string) *UsageError {
	return &UsageError{Builder: builder, Message: message}
}

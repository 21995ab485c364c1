// Package tdd assembles Tax Data Documents.
//
// Every builder follows the same two-phase protocol. Setters accumulate
// values and return the builder. Validate checks the builder's rule table
// and the rules of every composed child builder and returns a report; it
// never fails for business-rule violations. Build validates, and on success
// returns the immutable document tree. On failure it returns a nil tree and
// the *model.ValidationReport as error.
//
// Calling a builder out of order (for example adding a document line before
// the document currency is known) panics with a *model.UsageError.
//
// Builders are not safe for concurrent use.
package tdd

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/rezonia/tdd-builder/internal/amount"
	"github.com/rezonia/tdd-builder/internal/logger"
	"github.com/rezonia/tdd-builder/internal/model"
)

// Builder names used in logs and validation reports
const (
	builderTaxData                 = "TaxData"
	builderReportedTransaction     = "ReportedTransaction"
	builderAllowanceCharge         = "AllowanceCharge"
	builderBillingReference        = "BillingReference"
	builderCommodityClassification = "CommodityClassification"
	builderTaxCategory             = "TaxCategory"
	builderTaxSubtotal             = "TaxSubtotal"
	builderTaxTotal                = "TaxTotal"
	builderPaymentMeans            = "PaymentMeans"
	builderItem                    = "Item"
	builderDocumentLine            = "DocumentLine"
)

const dateLayout = "2006-01-02"

// base carries state shared by all builders
type base struct {
	log zerolog.Logger

	// findings recorded while reading a source document, reported on Validate
	initErrs []*model.ValidationError
}

func newBase(log *zerolog.Logger) base {
	if log != nil {
		return base{log: *log}
	}
	return base{log: logger.WithComponent("tdd")}
}

func (b *base) recordInitError(builder, field, message string) {
	b.initErrs = append(b.initErrs, model.NewValidationError(builder, field, model.RuleValue, message))
}

// parseAmount converts UBL amount text. Surrounding whitespace is ignored.
// Empty text yields nil; invalid text is recorded and yields nil.
func (b *base) parseAmount(builder, field, text string) *decimal.Decimal {
	d, err := amount.ParseOptional(text)
	if err != nil {
		b.recordInitError(builder, field, fmt.Sprintf("%s '%s' is not a valid number", field, strings.TrimSpace(text)))
		return nil
	}
	return d
}

// parseDate converts an xsd:date. Surrounding whitespace is ignored.
// Empty text yields nil; invalid text is recorded and yields nil.
func (b *base) parseDate(builder, field, text string) *time.Time {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, text)
	if err != nil {
		b.recordInitError(builder, field, fmt.Sprintf("%s '%s' is not a valid date", field, text))
		return nil
	}
	return &t
}

// parseTime converts an xsd:time with optional fraction and offset
func (b *base) parseTime(builder, field, text string) *time.Time {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	for _, layout := range []string{"15:04:05.999999999Z07:00", "15:04:05.999999999"} {
		if t, err := time.Parse(layout, text); err == nil {
			return &t
		}
	}
	b.recordInitError(builder, field, fmt.Sprintf("%s '%s' is not a valid time", field, text))
	return nil
}

// checker accumulates the findings of one validation pass
type checker struct {
	builder string
	log     zerolog.Logger
	report  *model.ValidationReport

	// fields with an unreadable source value; not reported again as missing
	unreadable map[string]bool
}

func newChecker(builder string, log zerolog.Logger, logErrors bool) *checker {
	if !logErrors {
		log = zerolog.Nop()
	}
	return &checker{
		builder: builder,
		log:     log,
		report:  model.NewValidationReport(builder),
	}
}

func (c *checker) fail(field, rule, message string) {
	c.report.Add(model.NewValidationError(c.builder, field, rule, message))
	c.log.Error().
		Str("builder", c.builder).
		Str("field", field).
		Str("rule", rule).
		Msgf("Error in TDD %s builder: %s", c.builder, message)
}

func (c *checker) warn(field, rule, message string) {
	c.report.Add(model.NewValidationWarning(c.builder, field, rule, message))
	c.log.Warn().
		Str("builder", c.builder).
		Str("field", field).
		Str("rule", rule).
		Msgf("Warning in TDD %s builder: %s", c.builder, message)
}

func (c *checker) requireString(field, value string) {
	if value == "" && !c.unreadable[field] {
		c.fail(field, model.RuleRequired, field+" is missing")
	}
}

func (c *checker) requireSet(field string, set bool) {
	if !set && !c.unreadable[field] {
		c.fail(field, model.RuleRequired, field+" is missing")
	}
}

// initErrors reports the findings recorded while reading a source document
func (c *checker) initErrors(b *base) {
	for _, e := range b.initErrs {
		if c.unreadable == nil {
			c.unreadable = make(map[string]bool)
		}
		c.unreadable[e.Field] = true
		c.fail(e.Field, e.Rule, e.Message)
	}
}

// child folds the report of a composed builder; the child logged its own findings
func (c *checker) child(r *model.ValidationReport) {
	c.report.Merge(r)
}

func (c *checker) result() *model.ValidationReport {
	return c.report
}

func logFailure(log zerolog.Logger, builder string, r *model.ValidationReport) {
	log.Error().
		Str("builder", builder).
		Int("errors", r.ErrorCount()).
		Msgf("At least one mandatory field is not set and therefore the TDD %s cannot be built", builder)
}

func usagePanic(builder, message string) {
	panic(model.NewUsageError(builder, message))
}

func datePtr(t *time.Time) *model.Date {
	if t == nil {
		return nil
	}
	return model.NewDate(*t)
}

func timePtr(t *time.Time) *model.Time {
	if t == nil {
		return nil
	}
	return model.NewTime(*t)
}

func period(start, end *time.Time, descriptionCode string) *model.Period {
	if start == nil && end == nil && descriptionCode == "" {
		return nil
	}
	return &model.Period{
		StartDate:       datePtr(start),
		EndDate:         datePtr(end),
		DescriptionCode: descriptionCode,
	}
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

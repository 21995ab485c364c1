// Package conformance checks serialized tax data documents against the
// structural rules of the TDD schema set and ruleset.
package conformance

import (
	"context"

	"github.com/beevik/etree"
	"github.com/rs/zerolog"

	"github.com/rezonia/tdd-builder/internal/codelist"
	"github.com/rezonia/tdd-builder/internal/logger"
)

// Validator defines the interface for TDD conformance checks
type Validator interface {
	// Validate checks the serialized document in data.
	// Rule violations are returned in the report, not as an error.
	Validate(ctx context.Context, data []byte) (*Report, error)
}

// StructuralValidator runs the built-in rule table over the XML tree
type StructuralValidator struct {
	log   zerolog.Logger
	rules []rule
}

// NewStructuralValidator creates a validator with the default rule table
func NewStructuralValidator() *StructuralValidator {
	return NewStructuralValidatorWithLogger(logger.WithComponent("conformance"))
}

// NewStructuralValidatorWithLogger creates a validator logging to log
func NewStructuralValidatorWithLogger(log zerolog.Logger) *StructuralValidator {
	return &StructuralValidator{
		log:   log,
		rules: defaultRules(),
	}
}

// Rules returns the ids of the rules the validator runs
func (v *StructuralValidator) Rules() []string {
	ids := make([]string, 0, len(v.rules))
	for _, r := range v.rules {
		ids = append(ids, r.id)
	}
	return ids
}

// Validate parses data and runs every rule against it
func (v *StructuralValidator) Validate(ctx context.Context, data []byte) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, ErrNotXML(err)
	}
	root := doc.Root()
	if root == nil {
		return nil, ErrEmptyDocument()
	}

	t := newTree(root)
	report := NewReport()
	for _, r := range v.rules {
		before := len(report.Failed)
		r.check(t, func(location, text string) {
			report.addFailure(r.id, location, text)
		})
		if len(report.Failed) == before {
			report.addPass(r.id)
			continue
		}
		for _, a := range report.Failed[before:] {
			v.log.Debug().
				Str("rule", a.ID).
				Str("location", a.Location).
				Msg(a.Text)
		}
	}

	v.log.Debug().
		Int("passed", len(report.Passed)).
		Int("failed", len(report.Failed)).
		Msg("Conformance check finished")
	return report, nil
}

// tree is the parsed document with the elements most rules look at
type tree struct {
	root         *etree.Element
	typeCode     codelist.DocumentTypeCode
	transactions []*etree.Element
}

func newTree(root *etree.Element) *tree {
	return &tree{
		root:         root,
		typeCode:     codelist.DocumentTypeCode(text(child(root, "DocumentTypeCode"))),
		transactions: children(root, "ReportedTransaction"),
	}
}

// reportedDocuments returns the ReportedDocument of every transaction that carries one
func (t *tree) reportedDocuments() []*etree.Element {
	var out []*etree.Element
	for _, rt := range t.transactions {
		if rd := child(rt, "ReportedDocument"); rd != nil {
			out = append(out, rd)
		}
	}
	return out
}

// child returns the first child element of e with the given local name.
// Prefixes are ignored so that any namespace prefix binding is accepted.
func child(e *etree.Element, tag string) *etree.Element {
	if e == nil {
		return nil
	}
	for _, c := range e.ChildElements() {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

func children(e *etree.Element, tag string) []*etree.Element {
	if e == nil {
		return nil
	}
	var out []*etree.Element
	for _, c := range e.ChildElements() {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// find follows tags from e one child level at a time
func find(e *etree.Element, tags ...string) *etree.Element {
	for _, tag := range tags {
		e = child(e, tag)
		if e == nil {
			return nil
		}
	}
	return e
}

func text(e *etree.Element) string {
	if e == nil {
		return ""
	}
	return trimText(e.Text())
}

func location(e *etree.Element) string {
	return e.GetPath()
}

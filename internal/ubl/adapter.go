package ubl

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"io"

	"github.com/rezonia/tdd-builder/internal/model"
)

// Adapter parses one kind of business document
type Adapter interface {
	// Parse parses XML content into a Source
	Parse(ctx context.Context, r io.Reader) (Source, error)

	// CanParse returns true if adapter can handle this content
	CanParse(content []byte) bool

	// Kind returns the document kind
	Kind() model.DocumentKind
}

// Registry holds all registered adapters
type Registry struct {
	adapters []Adapter
}

// NewRegistry creates registry with all adapters
func NewRegistry() *Registry {
	return &Registry{
		adapters: []Adapter{
			NewInvoiceAdapter(),
			NewCreditNoteAdapter(),
		},
	}
}

// Detect identifies the adapter for content
func (r *Registry) Detect(content []byte) (Adapter, error) {
	for _, a := range r.adapters {
		if a.CanParse(content) {
			return a, nil
		}
	}
	return nil, model.NewParseError(model.KindUnknown, "root", "unknown XML format, no matching adapter found", nil)
}

// Parse parses XML using appropriate adapter
func (r *Registry) Parse(ctx context.Context, content []byte) (Source, error) {
	adapter, err := r.Detect(content)
	if err != nil {
		return nil, err
	}
	return adapter.Parse(ctx, bytes.NewReader(content))
}

// RegisterAdapter adds a custom adapter to the registry
func (r *Registry) RegisterAdapter(a Adapter) {
	// Add at the beginning so custom adapters take priority
	r.adapters = append([]Adapter{a}, r.adapters...)
}

// GetAdapter returns adapter for a specific kind
func (r *Registry) GetAdapter(kind model.DocumentKind) Adapter {
	for _, a := range r.adapters {
		if a.Kind() == kind {
			return a
		}
	}
	return nil
}

// RootElement returns the name of the first element in content
func RootElement(content []byte) (xml.Name, error) {
	dec := xml.NewDecoder(bytes.NewReader(content))
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return xml.Name{}, errors.New("no root element")
			}
			return xml.Name{}, err
		}
		if se, ok := tok.(xml.StartElement); ok {
			return se.Name, nil
		}
	}
}

// DetectKind classifies content by its root element
func DetectKind(content []byte) model.DocumentKind {
	name, err := RootElement(content)
	if err != nil {
		return model.KindUnknown
	}
	switch {
	case name.Local == "Invoice" && name.Space == InvoiceNamespace:
		return model.KindInvoice
	case name.Local == "CreditNote" && name.Space == CreditNoteNamespace:
		return model.KindCreditNote
	case name.Local == "TaxData":
		return model.KindTaxData
	}
	return model.KindUnknown
}

// InvoiceAdapter parses UBL invoices
type InvoiceAdapter struct{}

// NewInvoiceAdapter creates a new invoice adapter
func NewInvoiceAdapter() *InvoiceAdapter {
	return &InvoiceAdapter{}
}

// Kind returns the document kind
func (a *InvoiceAdapter) Kind() model.DocumentKind {
	return model.KindInvoice
}

// CanParse checks for a UBL Invoice root element
func (a *InvoiceAdapter) CanParse(content []byte) bool {
	return DetectKind(content) == model.KindInvoice
}

// Parse parses a UBL invoice
func (a *InvoiceAdapter) Parse(ctx context.Context, r io.Reader) (Source, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, model.NewParseError(model.KindInvoice, "content", "failed to read content", err)
	}

	var inv Invoice
	if err := xml.Unmarshal(content, &inv); err != nil {
		return nil, model.NewParseError(model.KindInvoice, "xml", "failed to parse XML", err)
	}
	inv.raw = content
	return &inv, nil
}

// CreditNoteAdapter parses UBL credit notes
type CreditNoteAdapter struct{}

// NewCreditNoteAdapter creates a new credit note adapter
func NewCreditNoteAdapter() *CreditNoteAdapter {
	return &CreditNoteAdapter{}
}

// Kind returns the document kind
func (a *CreditNoteAdapter) Kind() model.DocumentKind {
	return model.KindCreditNote
}

// CanParse checks for a UBL CreditNote root element
func (a *CreditNoteAdapter) CanParse(content []byte) bool {
	return DetectKind(content) == model.KindCreditNote
}

// Parse parses a UBL credit note
func (a *CreditNoteAdapter) Parse(ctx context.Context, r io.Reader) (Source, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, model.NewParseError(model.KindCreditNote, "content", "failed to read content", err)
	}

	var cn CreditNote
	if err := xml.Unmarshal(content, &cn); err != nil {
		return nil, model.NewParseError(model.KindCreditNote, "xml", "failed to parse XML", err)
	}
	cn.raw = content
	return &cn, nil
}

// ParseInvoice parses content as a UBL invoice
func ParseInvoice(content []byte) (*Invoice, error) {
	src, err := NewInvoiceAdapter().Parse(context.Background(), bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	return src.(*Invoice), nil
}

// ParseCreditNote parses content as a UBL credit note
func ParseCreditNote(content []byte) (*CreditNote, error) {
	src, err := NewCreditNoteAdapter().Parse(context.Background(), bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	return src.(*CreditNote), nil
}

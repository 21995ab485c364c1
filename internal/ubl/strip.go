package ubl

import (
	"fmt"

	"github.com/beevik/etree"
)

const (
	tagAdditionalDocumentReference = "AdditionalDocumentReference"
	tagAttachment                  = "Attachment"
	tagEmbeddedBinaryObject        = "EmbeddedDocumentBinaryObject"
)

// StripEmbeddedBinaryObjects parses a fresh copy of raw and removes every
// AdditionalDocumentReference/Attachment/EmbeddedDocumentBinaryObject.
// It returns the root element of the copy and the number of removed
// elements. raw is never modified.
func StripEmbeddedBinaryObjects(raw []byte) (*etree.Element, int, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, 0, fmt.Errorf("failed to parse XML: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, 0, fmt.Errorf("empty XML document")
	}

	removed := 0
	for _, ref := range findAll(root, tagAdditionalDocumentReference) {
		for _, att := range ref.ChildElements() {
			if att.Tag != tagAttachment {
				continue
			}
			for _, bin := range att.ChildElements() {
				if bin.Tag == tagEmbeddedBinaryObject {
					att.RemoveChild(bin)
					removed++
				}
			}
		}
	}
	return root, removed, nil
}

// SerializeElement writes e as a standalone XML fragment without declaration
func SerializeElement(e *etree.Element) (string, error) {
	doc := etree.NewDocument()
	doc.SetRoot(e.Copy())
	return doc.WriteToString()
}

// IsSourceRoot reports whether e is a UBL Invoice or CreditNote root element
func IsSourceRoot(e *etree.Element) bool {
	if e == nil {
		return false
	}
	switch e.Tag {
	case "Invoice":
		return NamespaceOf(e) == InvoiceNamespace
	case "CreditNote":
		return NamespaceOf(e) == CreditNoteNamespace
	}
	return false
}

// NamespaceOf resolves the namespace of e from the xmlns declarations on e
// and its ancestors
func NamespaceOf(e *etree.Element) string {
	for cur := e; cur != nil; cur = cur.Parent() {
		for _, a := range cur.Attr {
			if e.Space == "" && a.Space == "" && a.Key == "xmlns" {
				return a.Value
			}
			if e.Space != "" && a.Space == "xmlns" && a.Key == e.Space {
				return a.Value
			}
		}
	}
	return ""
}

func findAll(e *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	for _, c := range e.ChildElements() {
		if c.Tag == tag {
			out = append(out, c)
		}
		out = append(out, findAll(c, tag)...)
	}
	return out
}

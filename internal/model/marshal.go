package model

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// Marshal serializes a TDD with XML header and two-space indentation.
// The embedded source document is written verbatim.
func Marshal(td *TaxData) ([]byte, error) {
	if td == nil {
		return nil, fmt.Errorf("nil tax data document")
	}
	td.SetNamespaces()

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(td); err != nil {
		return nil, fmt.Errorf("failed to marshal tax data document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

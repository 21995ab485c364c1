// Package peppolid handles participant identifiers of the form "scheme::icd:value".
package peppolid

import (
	"fmt"
	"strings"
)

// DefaultScheme is the identifier scheme for ISO 6523 participant identifiers
const DefaultScheme = "iso6523-actorid-upis"

// Identifier is a participant identifier. Value carries the ICD prefix,
// e.g. "0242:987654".
type Identifier struct {
	Scheme string `json:"scheme"`
	Value  string `json:"value"`
}

// New creates an identifier
func New(scheme, value string) *Identifier {
	return &Identifier{Scheme: scheme, Value: value}
}

// WithDefaultScheme creates an identifier in the ISO 6523 scheme
func WithDefaultScheme(value string) *Identifier {
	return New(DefaultScheme, value)
}

// Parse reads the URI form "scheme::value". A string without "::" is
// treated as a value in the default scheme.
func Parse(s string) (*Identifier, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty participant identifier")
	}
	scheme, value, found := strings.Cut(s, "::")
	if !found {
		return WithDefaultScheme(s), nil
	}
	if scheme == "" || value == "" {
		return nil, fmt.Errorf("malformed participant identifier: %q", s)
	}
	return New(scheme, value), nil
}

// String returns the URI form
func (id *Identifier) String() string {
	return id.Scheme + "::" + id.Value
}

// Split separates the value at its first colon into ICD and endpoint.
// The endpoint is empty when the value has no colon.
func (id *Identifier) Split() (icd, endpoint string) {
	icd, endpoint, _ = strings.Cut(id.Value, ":")
	return icd, endpoint
}

// HasICD reports whether the value's prefix before the first colon equals icd
func (id *Identifier) HasICD(icd string) bool {
	prefix, _ := id.Split()
	return prefix == icd
}

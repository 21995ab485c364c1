// Package uuid5 derives name-based (version 5) UUIDs for tax data documents.
package uuid5

import (
	"strings"

	"github.com/google/uuid"
)

// PeppolViDANamespace is the default namespace for document identifiers.
var PeppolViDANamespace = uuid.MustParse("e0bc4ac8-b025-46e5-a76d-0c893fc3027e")

// FromBytes hashes the namespace followed by name with SHA-1 and stamps
// version 5 and the RFC 4122 variant. A nil namespace hashes as 16 zero bytes.
func FromBytes(namespace *uuid.UUID, name []byte) uuid.UUID {
	ns := uuid.Nil
	if namespace != nil {
		ns = *namespace
	}
	return uuid.NewSHA1(ns, name)
}

// FromString derives a UUID from the UTF-8 bytes of name
func FromString(namespace *uuid.UUID, name string) uuid.UUID {
	return FromBytes(namespace, []byte(name))
}

// FromTokens joins tokens with a single space and derives a UUID from the result.
// Token order is significant.
func FromTokens(namespace *uuid.UUID, tokens ...string) uuid.UUID {
	return FromString(namespace, strings.Join(tokens, " "))
}

// ParseNamespace parses a namespace UUID, returning nil for an empty string
func ParseNamespace(s string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	ns, err := uuid.Parse(s)
	if err != nil {
		return nil, err
	}
	return &ns, nil
}

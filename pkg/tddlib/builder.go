package tddlib

import (
	"context"

	"github.com/google/uuid"

	"github.com/rezonia/tdd-builder/internal/conformance"
	"github.com/rezonia/tdd-builder/internal/model"
	"github.com/rezonia/tdd-builder/internal/peppolid"
	"github.com/rezonia/tdd-builder/internal/tdd"
	"github.com/rezonia/tdd-builder/internal/ubl"
	"github.com/rezonia/tdd-builder/internal/uuid5"
)

// PeppolViDANamespace is the default namespace of derived UUIDs
var PeppolViDANamespace = uuid5.PeppolViDANamespace

// NewBuilder creates a TDD builder with the default customization and
// profile IDs, a random UUID and the current issue date and time
func NewBuilder(opts ...Option) *Builder {
	return tdd.NewBuilder(opts...)
}

// ParseSource parses a UBL 2.1 invoice or credit note
func ParseSource(ctx context.Context, content []byte) (Source, error) {
	return ubl.NewRegistry().Parse(ctx, content)
}

// Participant returns an identifier in the iso6523-actorid-upis scheme,
// e.g. Participant("0242:000001")
func Participant(value string) *Identifier {
	return peppolid.WithDefaultScheme(value)
}

// Marshal serializes a TDD with XML header
func Marshal(td *TaxData) ([]byte, error) {
	return model.Marshal(td)
}

// DeriveUUID derives a version 5 UUID from tokens joined by single spaces.
// A nil namespace uses PeppolViDANamespace.
func DeriveUUID(namespace *uuid.UUID, tokens ...string) uuid.UUID {
	if namespace == nil {
		namespace = &PeppolViDANamespace
	}
	return uuid5.FromTokens(namespace, tokens...)
}

// Validate runs the structural conformance check on a serialized TDD
func Validate(ctx context.Context, data []byte) (*ConformanceReport, error) {
	return conformance.NewStructuralValidator().Validate(ctx, data)
}

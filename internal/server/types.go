package server

import (
	"github.com/rezonia/tdd-builder/internal/conformance"
	"github.com/rezonia/tdd-builder/internal/model"
)

// Response headers of the XML build response
const (
	HeaderUUID    = "X-TDD-UUID"
	HeaderOmitted = "X-TDD-Omitted"
)

// BuildResponse is the JSON response of the build endpoint
type BuildResponse struct {
	UUID        string                   `json:"uuid"`
	Omitted     bool                     `json:"omitted"`
	Warnings    []*model.ValidationError `json:"warnings,omitempty"`
	Conformance *conformance.Report      `json:"conformance,omitempty"`
	XML         string                   `json:"xml"`
}

// ViolationsResponse is returned when the builder rejects the document
type ViolationsResponse struct {
	Error      string                   `json:"error"`
	Violations []*model.ValidationError `json:"violations"`
}

// ValidationResponse is the response for validate endpoint
type ValidationResponse struct {
	Valid  bool                `json:"valid"`
	Report *conformance.Report `json:"report"`
}

// UUID5Request derives a name based UUID. Tokens, when present, are joined
// with single spaces and take precedence over Name.
type UUID5Request struct {
	Namespace string   `json:"namespace"`
	Name      string   `json:"name"`
	Tokens    []string `json:"tokens"`
}

// UUID5Response is the response for the uuid5 endpoint
type UUID5Response struct {
	Namespace string `json:"namespace"`
	UUID      string `json:"uuid"`
}

// InfoResponse is the response for info endpoint
type InfoResponse struct {
	Kind      string `json:"kind"`
	Root      string `json:"root,omitempty"`
	Namespace string `json:"namespace,omitempty"`
	Size      int    `json:"size"`
}

// ErrorResponse is the standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

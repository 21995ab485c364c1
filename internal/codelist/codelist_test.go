package codelist_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/tdd-builder/internal/codelist"
)

func TestParseDocumentTypeCode(t *testing.T) {
	tests := []struct {
		input    string
		expected codelist.DocumentTypeCode
	}{
		{"S", codelist.DocumentTypeSubmit},
		{"submit", codelist.DocumentTypeSubmit},
		{"R", codelist.DocumentTypeResubmit},
		{"W", codelist.DocumentTypeWithdraw},
		{"disregard", codelist.DocumentTypeDisregard},
		{"F", codelist.DocumentTypeFailed},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := codelist.ParseDocumentTypeCode(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	_, err := codelist.ParseDocumentTypeCode("X")
	assert.Error(t, err)
}

func TestDocumentTypeCode_IsOmittable(t *testing.T) {
	assert.True(t, codelist.DocumentTypeFailed.IsOmittable())
	assert.True(t, codelist.DocumentTypeDisregard.IsOmittable())
	assert.False(t, codelist.DocumentTypeSubmit.IsOmittable())
	assert.False(t, codelist.DocumentTypeResubmit.IsOmittable())
	assert.False(t, codelist.DocumentTypeWithdraw.IsOmittable())
}

func TestDocumentTypeCode_Name(t *testing.T) {
	assert.Equal(t, "submit", codelist.DocumentTypeSubmit.Name())
	assert.Equal(t, "unknown", codelist.DocumentTypeCode("Z").Name())
	assert.False(t, codelist.DocumentTypeCode("Z").IsValid())
}

func TestParseDocumentScope(t *testing.T) {
	s, err := codelist.ParseDocumentScope("international")
	require.NoError(t, err)
	assert.Equal(t, "I", s.ID())

	s, err = codelist.ParseDocumentScope("D")
	require.NoError(t, err)
	assert.Equal(t, codelist.DocumentScopeDomestic, s)

	_, err = codelist.ParseDocumentScope("global")
	assert.Error(t, err)
}

func TestParseReporterRole(t *testing.T) {
	r, err := codelist.ParseReporterRole("sender")
	require.NoError(t, err)
	assert.Equal(t, "01", r.ID())

	r, err = codelist.ParseReporterRole("02")
	require.NoError(t, err)
	assert.Equal(t, codelist.ReporterRoleReceiver, r)

	_, err = codelist.ParseReporterRole("03")
	assert.Error(t, err)
}

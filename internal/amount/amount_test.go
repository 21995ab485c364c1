package amount_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/tdd-builder/internal/amount"
)

func TestFromString(t *testing.T) {
	d, err := amount.FromString(" 1440.50 ")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("1440.5")))

	_, err = amount.FromString("not-a-number")
	require.Error(t, err)
}

func TestMustFromString(t *testing.T) {
	d := amount.MustFromString("240")
	assert.True(t, d.Equal(decimal.NewFromInt(240)))

	assert.Panics(t, func() {
		amount.MustFromString("invalid")
	})
}

func TestParseOptional(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "empty", input: ""},
		{name: "blank", input: "\n      "},
		{name: "plain", input: "1200.00", want: "1200"},
		{name: "padded", input: "\n      1200\n    ", want: "1200"},
		{name: "negative", input: "-12.5", want: "-12.5"},
		{name: "comma", input: "12,00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := amount.ParseOptional(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.want == "" {
				assert.Nil(t, d)
				return
			}
			require.NotNil(t, d)
			assert.True(t, d.Equal(decimal.RequireFromString(tt.want)), "got %s", d)
		})
	}
}

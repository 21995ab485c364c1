// Package amount reads UBL amount, quantity and percentage text.
package amount

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FromString parses decimal from string. Surrounding whitespace is ignored,
// as in xsd:decimal.
func FromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(s))
}

// MustFromString parses decimal from string, panics on error
func MustFromString(s string) decimal.Decimal {
	d, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ParseOptional parses UBL amount text. Blank text yields nil.
func ParseOptional(s string) (*decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := FromString(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

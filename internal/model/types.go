package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05.999Z07:00"
)

// Date is a calendar date written as xsd:date
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar day
func NewDate(t time.Time) *Date {
	y, m, d := t.Date()
	return &Date{Time: time.Date(y, m, d, 0, 0, 0, 0, t.Location())}
}

// ParseDate reads a yyyy-mm-dd date
func ParseDate(s string) (*Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	return &Date{Time: t}, nil
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.Format(dateLayout)), nil
}

func (d *Date) UnmarshalText(text []byte) error {
	t, err := time.Parse(dateLayout, string(text))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

// Time is a time of day with offset, written as xsd:time with at most
// millisecond precision
type Time struct {
	time.Time
}

// NewTime truncates t to milliseconds
func NewTime(t time.Time) *Time {
	return &Time{Time: t.Truncate(time.Millisecond)}
}

func (t Time) MarshalText() ([]byte, error) {
	return []byte(t.Format(timeLayout)), nil
}

func (t *Time) UnmarshalText(text []byte) error {
	for _, layout := range []string{timeLayout, "15:04:05.999", "15:04:05"} {
		parsed, err := time.Parse(layout, string(text))
		if err == nil {
			t.Time = parsed
			return nil
		}
	}
	_, err := time.Parse(timeLayout, string(text))
	return err
}

func (t Time) String() string {
	return t.Format(timeLayout)
}

// Amount is a monetary amount tagged with its currency
type Amount struct {
	CurrencyID string          `xml:"currencyID,attr"`
	Value      decimal.Decimal `xml:",chardata"`
}

// NewAmount creates an amount
func NewAmount(value decimal.Decimal, currency string) Amount {
	return Amount{CurrencyID: currency, Value: value}
}

// NewOptionalAmount returns nil for a nil value
func NewOptionalAmount(value *decimal.Decimal, currency string) *Amount {
	if value == nil {
		return nil
	}
	a := NewAmount(*value, currency)
	return &a
}

// Quantity is a numeric quantity with a unit code
type Quantity struct {
	UnitCode string          `xml:"unitCode,attr"`
	Value    decimal.Decimal `xml:",chardata"`
}

// Identifier is an identifier with an optional scheme
type Identifier struct {
	SchemeID string `xml:"schemeID,attr,omitempty"`
	Value    string `xml:",chardata"`
}

// Code is a code value from a code list
type Code struct {
	ListID        string `xml:"listID,attr,omitempty"`
	ListVersionID string `xml:"listVersionID,attr,omitempty"`
	Name          string `xml:"name,attr,omitempty"`
	Value         string `xml:",chardata"`
}

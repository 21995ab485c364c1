package tdd

import (
	"github.com/rs/zerolog"

	"github.com/rezonia/tdd-builder/internal/model"
	"github.com/rezonia/tdd-builder/internal/ubl"
)

// PaymentMeansBuilder builds a payment means entry
type PaymentMeansBuilder struct {
	base
	code           string
	codeName       string
	paymentID      string
	cardPAN        string
	cardNetworkID  string
	cardHolderName string
	payeeAccountID string
	payeeScheme    string
	branchID       string
	branchScheme   string
}

// NewPaymentMeansBuilder creates a new payment means builder
func NewPaymentMeansBuilder() *PaymentMeansBuilder {
	return &PaymentMeansBuilder{base: newBase(nil)}
}

func newPaymentMeansBuilder(log zerolog.Logger) *PaymentMeansBuilder {
	return &PaymentMeansBuilder{base: newBase(&log)}
}

// Code sets the UNCL4461 payment means code
func (b *PaymentMeansBuilder) Code(code string) *PaymentMeansBuilder {
	b.code = code
	return b
}

func (b *PaymentMeansBuilder) CodeName(name string) *PaymentMeansBuilder {
	b.codeName = name
	return b
}

func (b *PaymentMeansBuilder) PaymentID(id string) *PaymentMeansBuilder {
	b.paymentID = id
	return b
}

// Card sets the payment card; the card block is only written with a PAN
func (b *PaymentMeansBuilder) Card(pan, networkID, holderName string) *PaymentMeansBuilder {
	b.cardPAN = pan
	b.cardNetworkID = networkID
	b.cardHolderName = holderName
	return b
}

func (b *PaymentMeansBuilder) PayeeAccount(id, scheme string) *PaymentMeansBuilder {
	b.payeeAccountID = id
	b.payeeScheme = scheme
	return b
}

func (b *PaymentMeansBuilder) PayeeBranch(id, scheme string) *PaymentMeansBuilder {
	b.branchID = id
	b.branchScheme = scheme
	return b
}

// InitFromUBL copies a UBL payment means. Only the first payment ID is used.
func (b *PaymentMeansBuilder) InitFromUBL(pm *ubl.PaymentMeans) *PaymentMeansBuilder {
	b.code = pm.PaymentMeansCode.Value
	b.codeName = pm.PaymentMeansCode.Name
	b.paymentID = first(pm.PaymentIDs)
	if pm.CardAccount != nil {
		b.Card(pm.CardAccount.PrimaryAccountNumberID, pm.CardAccount.NetworkID, pm.CardAccount.HolderName)
	}
	if fa := pm.PayeeFinancialAccount; fa != nil {
		b.PayeeAccount(fa.ID.Value, fa.ID.SchemeID)
		if fa.FinancialInstitutionBranch != nil {
			b.PayeeBranch(fa.FinancialInstitutionBranch.ID.Value, fa.FinancialInstitutionBranch.ID.SchemeID)
		}
	}
	return b
}

// Validate checks the mandatory fields
func (b *PaymentMeansBuilder) Validate(logErrors bool) *model.ValidationReport {
	c := newChecker(builderPaymentMeans, b.log, logErrors)
	c.requireString("PaymentMeansCode", b.code)
	return c.result()
}

// IsEveryRequiredFieldSet reports whether Validate finds no error
func (b *PaymentMeansBuilder) IsEveryRequiredFieldSet(logErrors bool) bool {
	return b.Validate(logErrors).OK()
}

// Build returns the payment means or the validation report as error
func (b *PaymentMeansBuilder) Build() (*model.PaymentMeans, error) {
	if r := b.Validate(true); r.HasErrors() {
		logFailure(b.log, builderPaymentMeans, r)
		return nil, r
	}
	return b.assemble(), nil
}

func (b *PaymentMeansBuilder) assemble() *model.PaymentMeans {
	ret := &model.PaymentMeans{
		PaymentMeansCode: model.Code{Name: b.codeName, Value: b.code},
		PaymentID:        b.paymentID,
	}
	if b.cardPAN != "" {
		ret.CardAccount = &model.CardAccount{
			PrimaryAccountNumberID: b.cardPAN,
			NetworkID:              b.cardNetworkID,
			HolderName:             b.cardHolderName,
		}
	}
	if b.payeeAccountID != "" {
		ret.PayeeFinancialAccount = &model.FinancialAccount{
			ID: model.Identifier{SchemeID: b.payeeScheme, Value: b.payeeAccountID},
		}
		if b.branchID != "" {
			ret.PayeeFinancialAccount.FinancialInstitutionBranch = &model.FinancialInstitutionBranch{
				ID: model.Identifier{SchemeID: b.branchScheme, Value: b.branchID},
			}
		}
	}
	return ret
}

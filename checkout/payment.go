package checkout

import (
	"fmt"
	"strings"
)

// PaymentType discriminates the PaymentMethod variants.
type PaymentType string

const (
	PaymentCreditCard   PaymentType = "credit_card"
	PaymentPayPal       PaymentType = "paypal"
	PaymentBankTransfer PaymentType = "bank_transfer"
)

func ParsePaymentType(s string) (PaymentType, error) {
	switch t := PaymentType(s); t {
	case PaymentCreditCard, PaymentPayPal, PaymentBankTransfer:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPaymentType, s)
	}
}

// PaymentMethod is one of CreditCard, PayPal or BankTransfer.
type PaymentMethod interface {
	Type() PaymentType
	// Summary is the human readable description used on the review step.
	Summary() string
	paymentMethod()
}

// CreditCard carries card details. Only credit cards have fields.
type CreditCard struct {
	CardNumber string `json:"card_number" validate:"required_trim,card16"`
	NameOnCard string `json:"name_on_card" validate:"required_trim"`
	ExpiryDate string `json:"expiry_date" validate:"required_trim,expiry_format,expiry_month,expiry_current"`
	CVV        string `json:"cvv" validate:"required_trim,cvv"`
}

type PayPal struct{}

type BankTransfer struct{}

func (CreditCard) Type() PaymentType   { return PaymentCreditCard }
func (PayPal) Type() PaymentType       { return PaymentPayPal }
func (BankTransfer) Type() PaymentType { return PaymentBankTransfer }

func (c CreditCard) Summary() string {
	return "Credit Card ending in " + c.LastFour()
}

func (PayPal) Summary() string       { return "PayPal" }
func (BankTransfer) Summary() string { return "Bank Transfer" }

func (CreditCard) paymentMethod()   {}
func (PayPal) paymentMethod()       {}
func (BankTransfer) paymentMethod() {}

// LastFour returns the last four digits of the card number.
func (c CreditCard) LastFour() string {
	digits := digitsOnly(c.CardNumber)
	if len(digits) <= 4 {
		return digits
	}
	return digits[len(digits)-4:]
}

// PaymentDetails is the flat form of a PaymentMethod used by the payment
// draft form, the wire format and session snapshots.
type PaymentDetails struct {
	Type       PaymentType `json:"type"`
	CardNumber string      `json:"card_number,omitempty"`
	NameOnCard string      `json:"name_on_card,omitempty"`
	ExpiryDate string      `json:"expiry_date,omitempty"`
	CVV        string      `json:"cvv,omitempty"`
}

// Method converts the flat details into the variant named by Type.
func (d PaymentDetails) Method() (PaymentMethod, error) {
	switch d.Type {
	case PaymentCreditCard:
		return CreditCard{
			CardNumber: d.CardNumber,
			NameOnCard: d.NameOnCard,
			ExpiryDate: d.ExpiryDate,
			CVV:        d.CVV,
		}, nil
	case PaymentPayPal:
		return PayPal{}, nil
	case PaymentBankTransfer:
		return BankTransfer{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPaymentType, d.Type)
	}
}

// DetailsOf flattens pm. A nil method yields zero details.
func DetailsOf(pm PaymentMethod) PaymentDetails {
	switch m := pm.(type) {
	case CreditCard:
		return PaymentDetails{
			Type:       PaymentCreditCard,
			CardNumber: m.CardNumber,
			NameOnCard: m.NameOnCard,
			ExpiryDate: m.ExpiryDate,
			CVV:        m.CVV,
		}
	case PayPal:
		return PaymentDetails{Type: PaymentPayPal}
	case BankTransfer:
		return PaymentDetails{Type: PaymentBankTransfer}
	default:
		return PaymentDetails{}
	}
}

// Masked hides everything but the last four card digits and drops the CVV.
func (d PaymentDetails) Masked() PaymentDetails {
	if d.Type != PaymentCreditCard {
		return PaymentDetails{Type: d.Type}
	}
	card := CreditCard{CardNumber: d.CardNumber}
	masked := d
	masked.CVV = ""
	if last := card.LastFour(); last != "" {
		masked.CardNumber = strings.Repeat("*", 4) + " " + last
	}
	return masked
}

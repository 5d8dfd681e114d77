package checkout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func card(expiry string) CreditCard {
	return CreditCard{
		CardNumber: "4242 4242 4242 4242",
		NameOnCard: "Ada Lovelace",
		ExpiryDate: expiry,
		CVV:        "123",
	}
}

func TestValidator_Expiry(t *testing.T) {
	v := NewValidator(fixedClock(2024, time.June))

	tests := []struct {
		expiry string
		want   string
	}{
		{"01/20", "Card has expired"},
		{"05/24", "Card has expired"},
		{"06/24", ""},
		{"12/99", ""},
		{"", "Expiry date is required"},
		{"1299", "Invalid format (MM/YY)"},
		{"1/25", "Invalid format (MM/YY)"},
		{"13/30", "Invalid month"},
		{"00/30", "Invalid month"},
		{"13/20", "Invalid month"},
	}

	for _, tt := range tests {
		t.Run(tt.expiry, func(t *testing.T) {
			errs := v.Payment(card(tt.expiry))
			assert.Equal(t, tt.want, errs["expiry_date"])
		})
	}
}

func TestValidator_ExpiryUsesClock(t *testing.T) {
	c := card("01/20")

	assert.Empty(t, NewValidator(fixedClock(2019, time.December)).Payment(c))
	assert.NotEmpty(t, NewValidator(fixedClock(2021, time.January)).Payment(c))
}

func TestValidator_CardNumberAndCVV(t *testing.T) {
	v := NewValidator(fixedClock(2024, time.June))

	c := card("12/30")
	c.CardNumber = ""
	c.CVV = ""
	errs := v.Payment(c)
	assert.Equal(t, "Card number is required", errs["card_number"])
	assert.Equal(t, "CVV is required", errs["cvv"])

	c.CardNumber = "4242 4242 4242 424"
	c.CVV = "12345"
	errs = v.Payment(c)
	assert.Equal(t, "Card number must be 16 digits", errs["card_number"])
	assert.Equal(t, "CVV must be 3-4 digits", errs["cvv"])

	c.CardNumber = "4242424242424242"
	c.CVV = "1234"
	assert.Empty(t, v.Payment(c))
}

func TestValidator_NonCardMethodsAlwaysValid(t *testing.T) {
	v := NewValidator(nil)

	assert.Empty(t, v.Payment(PayPal{}))
	assert.Empty(t, v.Payment(BankTransfer{}))
	assert.NotEmpty(t, v.Payment(nil))
}

func TestValidator_Phone(t *testing.T) {
	v := NewValidator(nil)

	for _, phone := range []string{"5551234567", "+1 (555) 123-4567", "555.123.4567", "+441234567890123"} {
		addr := validAddress()
		addr.Phone = phone
		assert.Empty(t, v.Shipping(addr), phone)
	}

	for _, phone := range []string{"555-1234", "abc1234567", "+1234567890123456", "++15551234567"} {
		addr := validAddress()
		addr.Phone = phone
		assert.Equal(t, "Please enter a valid phone number", v.Shipping(addr)["phone"], phone)
	}
}

func TestFormatters(t *testing.T) {
	assert.Equal(t, "4242 4242 4242 4242", FormatCardNumber("4242 4242-4242 4242"))
	assert.Equal(t, "4242 42", FormatCardNumber("424242"))
	assert.Equal(t, "", FormatCardNumber("abcd"))

	assert.Equal(t, "1", FormatExpiry("1"))
	assert.Equal(t, "12", FormatExpiry("12"))
	assert.Equal(t, "12/2", FormatExpiry("122"))
	assert.Equal(t, "12/25", FormatExpiry("12/2599"))

	assert.Equal(t, "123", FormatCVV("1 2 3"))
	assert.Equal(t, "1234", FormatCVV("123456"))
}

func TestPaymentDetails(t *testing.T) {
	d := DetailsOf(card("12/30"))
	assert.Equal(t, PaymentCreditCard, d.Type)

	masked := d.Masked()
	assert.Equal(t, "**** 4242", masked.CardNumber)
	assert.Empty(t, masked.CVV)
	assert.Equal(t, "Ada Lovelace", masked.NameOnCard)

	_, err := PaymentDetails{Type: "cash"}.Method()
	assert.ErrorIs(t, err, ErrUnknownPaymentType)

	pm, err := PaymentDetails{Type: PaymentPayPal, CardNumber: "ignored"}.Method()
	assert.NoError(t, err)
	assert.Equal(t, PayPal{}, pm)
	assert.Equal(t, PaymentDetails{}, DetailsOf(nil))
}

package checkout

import "fmt"

// ShippingForm is the editable draft of step one.
type ShippingForm struct {
	Values ShippingAddress `json:"values"`
	Errors FieldErrors     `json:"errors,omitempty"`
}

// PaymentForm is the editable draft of step two.
type PaymentForm struct {
	Values PaymentDetails `json:"values"`
	Errors FieldErrors    `json:"errors,omitempty"`
}

func newShippingForm() ShippingForm {
	return ShippingForm{Values: ShippingAddress{Country: DefaultCountry}}
}

func newPaymentForm() PaymentForm {
	return PaymentForm{Values: PaymentDetails{Type: PaymentCreditCard}}
}

func (f *ShippingForm) set(field, value string) error {
	if err := f.Values.set(field, value); err != nil {
		return err
	}
	delete(f.Errors, field)
	return nil
}

// set stores value for field, applying the input formatting card fields get
// while they are typed.
func (f *PaymentForm) set(field, value string) error {
	switch field {
	case "card_number":
		f.Values.CardNumber = FormatCardNumber(value)
	case "name_on_card":
		f.Values.NameOnCard = value
	case "expiry_date":
		f.Values.ExpiryDate = FormatExpiry(value)
	case "cvv":
		f.Values.CVV = FormatCVV(value)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	delete(f.Errors, field)
	return nil
}

func (f *PaymentForm) fill(d PaymentDetails) {
	f.Values = PaymentDetails{
		Type:       d.Type,
		CardNumber: FormatCardNumber(d.CardNumber),
		NameOnCard: d.NameOnCard,
		ExpiryDate: FormatExpiry(d.ExpiryDate),
		CVV:        FormatCVV(d.CVV),
	}
	f.Errors = nil
}

func (f ShippingForm) clone() ShippingForm {
	f.Errors = f.Errors.clone()
	return f
}

func (f PaymentForm) clone() PaymentForm {
	f.Errors = f.Errors.clone()
	return f
}

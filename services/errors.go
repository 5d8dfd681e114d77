package services

import "errors"

var (
	ErrCartEmpty          = errors.New("cart is empty")
	ErrProductNotFound    = errors.New("product not found")
	ErrNoConfirmation     = errors.New("no order has been placed")
	ErrSessionUnavailable = errors.New("session store unavailable")
	ErrInvalidBilling     = errors.New("invalid billing cycle")
)

// FormError is returned by the contact and booking services when a
// submission has failing fields.
type FormError struct {
	Message string
	Fields  map[string]string
}

func (e *FormError) Error() string {
	return e.Message
}

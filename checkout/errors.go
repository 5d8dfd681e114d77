package checkout

import (
	"errors"
	"sort"
	"strings"
)

// FormErrorMessage is the banner shown whenever a form fails validation.
const FormErrorMessage = "Please correct the errors in the form"

var (
	ErrTransitionNotAllowed = errors.New("checkout transition not allowed")
	ErrOrderAlreadyPlaced   = errors.New("order already placed")
	ErrMissingShipping      = errors.New("shipping address has not been submitted")
	ErrMissingPayment       = errors.New("payment method has not been submitted")
	ErrUnknownPaymentType   = errors.New("unknown payment type")
	ErrUnknownField         = errors.New("unknown form field")
	ErrFormNotActive        = errors.New("form is not editable at the current step")
)

// FieldErrors maps a form field name to its message.
type FieldErrors map[string]string

func (fe FieldErrors) clone() FieldErrors {
	if len(fe) == 0 {
		return nil
	}
	out := make(FieldErrors, len(fe))
	for k, v := range fe {
		out[k] = v
	}
	return out
}

// ValidationError is returned when a submitted form has failing fields.
type ValidationError struct {
	Message string
	Fields  FieldErrors
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return e.Message + ": " + strings.Join(names, ", ")
}

func newValidationError(fields FieldErrors) *ValidationError {
	return &ValidationError{Message: FormErrorMessage, Fields: fields.clone()}
}

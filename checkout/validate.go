package checkout

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"storefront-service/validation"

	"github.com/go-playground/validator/v10"
)

var (
	phonePattern  = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
	expiryPattern = regexp.MustCompile(`^[0-9]{2}/[0-9]{2}$`)
	cvvPattern    = regexp.MustCompile(`^[0-9]{3,4}$`)
)

// fieldMessages maps field name and failing tag to the message shown next to
// the field.
var fieldMessages = validation.Messages{
	"full_name":     {"required_trim": "Full name is required"},
	"address_line1": {"required_trim": "Address is required"},
	"city":          {"required_trim": "City is required"},
	"state":         {"required_trim": "State is required"},
	"postal_code":   {"required_trim": "Postal code is required"},
	"country":       {"required_trim": "Country is required"},
	"phone": {
		"required_trim": "Phone number is required",
		"phone":         "Please enter a valid phone number",
	},
	"card_number": {
		"required_trim": "Card number is required",
		"card16":        "Card number must be 16 digits",
	},
	"name_on_card": {"required_trim": "Name is required"},
	"expiry_date": {
		"required_trim":  "Expiry date is required",
		"expiry_format":  "Invalid format (MM/YY)",
		"expiry_month":   "Invalid month",
		"expiry_current": "Card has expired",
	},
	"cvv": {
		"required_trim": "CVV is required",
		"cvv":           "CVV must be 3-4 digits",
	},
}

// Validator checks shipping and payment forms. It reports every failing field
// at once, one message per field.
type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

// NewValidator builds a Validator. now is used to decide whether a card has
// expired; nil means time.Now.
func NewValidator(now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	v := &Validator{validate: validation.New(), now: now}

	validation.MustRegister(v.validate, "phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(normalizePhone(fl.Field().String()))
	})
	validation.MustRegister(v.validate, "card16", func(fl validator.FieldLevel) bool {
		s := strings.Join(strings.Fields(fl.Field().String()), "")
		return len(s) == cardDigits && digitsOnly(s) == s
	})
	validation.MustRegister(v.validate, "expiry_format", func(fl validator.FieldLevel) bool {
		return expiryPattern.MatchString(strings.TrimSpace(fl.Field().String()))
	})
	validation.MustRegister(v.validate, "expiry_month", func(fl validator.FieldLevel) bool {
		month, _, ok := parseExpiry(fl.Field().String())
		return ok && month >= 1 && month <= 12
	})
	validation.MustRegister(v.validate, "expiry_current", v.notExpired)
	validation.MustRegister(v.validate, "cvv", func(fl validator.FieldLevel) bool {
		return cvvPattern.MatchString(strings.TrimSpace(fl.Field().String()))
	})

	return v
}

// parseExpiry splits MM/YY. Two digit years are taken as 20YY.
func parseExpiry(s string) (month, year int, ok bool) {
	parts := strings.SplitN(strings.TrimSpace(s), "/", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	yy, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return month, 2000 + yy, true
}

func (v *Validator) notExpired(fl validator.FieldLevel) bool {
	month, year, ok := parseExpiry(fl.Field().String())
	if !ok {
		return false
	}
	now := v.now()
	if year != now.Year() {
		return year > now.Year()
	}
	return month >= int(now.Month())
}

// Shipping validates a shipping address. A nil result means it is valid.
func (v *Validator) Shipping(addr ShippingAddress) FieldErrors {
	return v.fieldErrors(v.validate.Struct(addr))
}

// Payment validates a payment method. PayPal and bank transfer carry no
// fields and are always valid.
func (v *Validator) Payment(pm PaymentMethod) FieldErrors {
	switch m := pm.(type) {
	case CreditCard:
		return v.fieldErrors(v.validate.Struct(m))
	case PayPal, BankTransfer:
		return nil
	default:
		return FieldErrors{"type": "Please select a payment method"}
	}
}

func (v *Validator) fieldErrors(err error) FieldErrors {
	errs := validation.FieldErrors(err, fieldMessages)
	if len(errs) == 0 {
		return nil
	}
	return FieldErrors(errs)
}

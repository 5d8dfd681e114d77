package contact

import (
	"regexp"
	"strings"

	"storefront-service/validation"

	"github.com/go-playground/validator/v10"
)

// FormErrorMessage is the banner shown when a contact submission is rejected.
const FormErrorMessage = "Please correct the errors in the form"

// Subjects offered by the contact form.
var Subjects = []string{
	"General Inquiry",
	"Sales Question",
	"Technical Support",
	"Partnership",
}

var phonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

var messages = validation.Messages{
	"name": {
		"required_trim": "Name is required",
		"min_trim":      "Name must be at least 2 characters",
	},
	"email": {
		"required_trim": "Email is required",
		"email_simple":  "Please enter a valid email address",
	},
	"phone": {"phone_optional": "Please enter a valid phone number"},
	"subject": {
		"required_trim": "Subject is required",
		"subject":       "Please select a valid subject",
	},
	"message": {
		"required_trim": "Message is required",
		"min_trim":      "Message must be at least 10 characters",
	},
	"plan": {"plan": "Please select a valid plan"},
}

// Submission is one message sent through the contact form. Phone and plan are
// optional.
type Submission struct {
	Name    string `json:"name" validate:"required_trim,min_trim=2"`
	Email   string `json:"email" validate:"required_trim,email_simple"`
	Phone   string `json:"phone,omitempty" validate:"phone_optional"`
	Subject string `json:"subject" validate:"required_trim,subject"`
	Message string `json:"message" validate:"required_trim,min_trim=10"`
	Plan    string `json:"plan,omitempty" validate:"plan"`
}

// Normalize trims the free text fields.
func (s Submission) Normalize() Submission {
	s.Name = strings.TrimSpace(s.Name)
	s.Email = strings.TrimSpace(s.Email)
	s.Phone = strings.TrimSpace(s.Phone)
	s.Subject = strings.TrimSpace(s.Subject)
	s.Message = strings.TrimSpace(s.Message)
	s.Plan = strings.TrimSpace(s.Plan)
	return s
}

// Validator checks contact submissions.
type Validator struct {
	validate *validator.Validate
}

// NewValidator builds a Validator. hasPlan decides which plan names are
// accepted; nil accepts any.
func NewValidator(hasPlan func(string) bool) *Validator {
	v := validation.New()

	validation.MustRegister(v, "phone_optional", func(fl validator.FieldLevel) bool {
		phone := fl.Field().String()
		if strings.TrimSpace(phone) == "" {
			return true
		}
		return phonePattern.MatchString(strings.Join(strings.Fields(phone), ""))
	})
	validation.MustRegister(v, "subject", func(fl validator.FieldLevel) bool {
		subject := strings.TrimSpace(fl.Field().String())
		for _, s := range Subjects {
			if strings.EqualFold(s, subject) {
				return true
			}
		}
		return false
	})
	validation.MustRegister(v, "plan", func(fl validator.FieldLevel) bool {
		plan := strings.TrimSpace(fl.Field().String())
		if plan == "" || hasPlan == nil {
			return true
		}
		return hasPlan(plan)
	})

	return &Validator{validate: v}
}

// Validate returns one message per failing field, or nil.
func (v *Validator) Validate(s Submission) map[string]string {
	return validation.FieldErrors(v.validate.Struct(s), messages)
}

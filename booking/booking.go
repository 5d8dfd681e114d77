package booking

import (
	"strings"
	"time"

	"storefront-service/validation"

	"github.com/go-playground/validator/v10"
)

// FormErrorMessage is the banner shown when a booking is rejected.
const FormErrorMessage = "Please correct the errors in the form"

// TimeSlots are the bookable start times of every day.
var TimeSlots = []string{"9:00 AM", "10:00 AM", "11:00 AM", "1:00 PM", "2:00 PM", "3:00 PM", "4:00 PM", "5:00 PM"}

// Service is a bookable session type.
type Service struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

const DefaultService = "consultation"

var Services = []Service{
	{ID: "consultation", Label: "Marketing Consultation"},
	{ID: "strategy", Label: "Marketing Strategy"},
	{ID: "content", Label: "Content Creation"},
	{ID: "analytics", Label: "Analytics Review"},
}

// ServiceLabel returns the display name of id.
func ServiceLabel(id string) (string, bool) {
	for _, s := range Services {
		if s.ID == id {
			return s.Label, true
		}
	}
	return "", false
}

var messages = validation.Messages{
	"name": {"required_trim": "Name is required"},
	"email": {
		"required_trim": "Email is required",
		"email_simple":  "Please enter a valid email address",
	},
	"date": {
		"required_trim": "Please select a date",
		"booking_date":  "Please select a date",
	},
	"time": {
		"required_trim": "Please select a time slot",
		"time_slot":     "Please select a time slot",
	},
	"service": {"service": "Please select a valid service"},
}

// Request is a booking as entered by the visitor. Date uses DateLayout.
type Request struct {
	Name    string `json:"name" validate:"required_trim"`
	Email   string `json:"email" validate:"required_trim,email_simple"`
	Service string `json:"service" validate:"service"`
	Date    string `json:"date" validate:"required_trim,booking_date"`
	Time    string `json:"time" validate:"required_trim,time_slot"`
}

// WithDefaults fills in the default service and trims text fields.
func (r Request) WithDefaults() Request {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Service = strings.TrimSpace(r.Service)
	if r.Service == "" {
		r.Service = DefaultService
	}
	return r
}

// Validator checks booking requests against the calendar rules.
type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

// NewValidator builds a Validator; now decides which dates are in the past.
func NewValidator(now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	v := &Validator{validate: validation.New(), now: now}

	validation.MustRegister(v.validate, "booking_date", func(fl validator.FieldLevel) bool {
		today := v.now()
		d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(fl.Field().String()), today.Location())
		if err != nil {
			return false
		}
		return !d.Before(startOfDay(today))
	})
	validation.MustRegister(v.validate, "time_slot", func(fl validator.FieldLevel) bool {
		slot := strings.TrimSpace(fl.Field().String())
		for _, s := range TimeSlots {
			if s == slot {
				return true
			}
		}
		return false
	})
	validation.MustRegister(v.validate, "service", func(fl validator.FieldLevel) bool {
		id := strings.TrimSpace(fl.Field().String())
		if id == "" {
			return true
		}
		_, ok := ServiceLabel(id)
		return ok
	})

	return v
}

// Validate returns one message per failing field, or nil.
func (v *Validator) Validate(r Request) map[string]string {
	return validation.FieldErrors(v.validate.Struct(r), messages)
}

// Today is the validator's notion of the current day.
func (v *Validator) Today() time.Time {
	return v.now()
}

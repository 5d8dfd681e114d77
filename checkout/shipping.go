package checkout

import "fmt"

// DefaultCountry pre-fills the country of a fresh shipping form.
const DefaultCountry = "United States"

// ShippingAddress is where the order is delivered. AddressLine2 is optional.
type ShippingAddress struct {
	FullName     string `json:"full_name" validate:"required_trim"`
	AddressLine1 string `json:"address_line1" validate:"required_trim"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city" validate:"required_trim"`
	State        string `json:"state" validate:"required_trim"`
	PostalCode   string `json:"postal_code" validate:"required_trim"`
	Country      string `json:"country" validate:"required_trim"`
	Phone        string `json:"phone" validate:"required_trim,phone"`
}

// Lines renders the address the way it is printed on the review step and the
// receipt.
func (a ShippingAddress) Lines() []string {
	lines := []string{a.FullName, a.AddressLine1}
	if a.AddressLine2 != "" {
		lines = append(lines, a.AddressLine2)
	}
	lines = append(lines,
		fmt.Sprintf("%s, %s %s", a.City, a.State, a.PostalCode),
		a.Country,
		a.Phone,
	)
	return lines
}

// set assigns one field by its wire name.
func (a *ShippingAddress) set(field, value string) error {
	switch field {
	case "full_name":
		a.FullName = value
	case "address_line1":
		a.AddressLine1 = value
	case "address_line2":
		a.AddressLine2 = value
	case "city":
		a.City = value
	case "state":
		a.State = value
	case "postal_code":
		a.PostalCode = value
	case "country":
		a.Country = value
	case "phone":
		a.Phone = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

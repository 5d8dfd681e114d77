package models

import (
	"storefront-service/booking"
	"storefront-service/cart"
	"storefront-service/checkout"
	"storefront-service/order"
	"storefront-service/pricing"
)

// CartView is the rendered cart of one session.
type CartView struct {
	Items          []cart.Item       `json:"items"`
	TotalItems     int               `json:"total_items"`
	Costs          pricing.Breakdown `json:"costs"`
	FreeShipping   bool              `json:"free_shipping"`
	IsCartOpen     bool              `json:"is_cart_open"`
	IsCheckoutOpen bool              `json:"is_checkout_open"`
}

// CheckoutView is the rendered state of the checkout flow. Review is only
// present on the review step; Confirmation only once the order is placed.
type CheckoutView struct {
	Step           int                   `json:"step"`
	StepName       string                `json:"step_name"`
	Allowed        []checkout.Action     `json:"allowed_actions"`
	IsCheckoutOpen bool                  `json:"is_checkout_open"`
	ShippingForm   checkout.ShippingForm `json:"shipping_form"`
	PaymentForm    PaymentFormView       `json:"payment_form"`
	Review         *ReviewView           `json:"review,omitempty"`
	OrderPlaced    bool                  `json:"order_placed"`
	OrderID        string                `json:"order_id,omitempty"`
	Confirmation   *order.Confirmation   `json:"confirmation,omitempty"`
}

// PaymentFormView never echoes the CVV back to the client.
type PaymentFormView struct {
	Values checkout.PaymentDetails `json:"values"`
	Errors checkout.FieldErrors    `json:"errors,omitempty"`
}

// ReviewView summarises what will be ordered.
type ReviewView struct {
	Items          []cart.Item              `json:"items"`
	TotalItems     int                      `json:"total_items"`
	Costs          pricing.Breakdown        `json:"costs"`
	Shipping       checkout.ShippingAddress `json:"shipping"`
	ShippingLines  []string                 `json:"shipping_lines"`
	PaymentSummary string                   `json:"payment_summary"`
}

// CalendarView is one month of the booking calendar plus the bookable
// options.
type CalendarView struct {
	Month     booking.Month     `json:"month"`
	TimeSlots []string          `json:"time_slots"`
	Services  []booking.Service `json:"services"`
}

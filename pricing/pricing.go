package pricing

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

var (
	// TaxRate is applied to the cart subtotal.
	TaxRate = decimal.RequireFromString("0.08")
	// FreeShippingThreshold is the subtotal above which shipping is free.
	FreeShippingThreshold = decimal.NewFromInt(100)
	// FlatShipping is charged when the subtotal does not exceed the threshold.
	FlatShipping = decimal.RequireFromString("9.99")
)

// Breakdown is the cost summary shown on the cart, the review step and the
// confirmation. Every amount is rounded to cents.
type Breakdown struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
}

// Compute derives tax, shipping and total from a subtotal.
func Compute(subtotal decimal.Decimal) Breakdown {
	subtotal = subtotal.Round(2)
	tax := subtotal.Mul(TaxRate).Round(2)

	shipping := FlatShipping
	if subtotal.GreaterThan(FreeShippingThreshold) {
		shipping = decimal.Zero
	}

	return Breakdown{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Total:    subtotal.Add(tax).Add(shipping).Round(2),
	}
}

// FreeShipping reports whether the breakdown qualifies for free shipping.
func (b Breakdown) FreeShipping() bool {
	return b.Shipping.IsZero()
}

// Format renders an amount with exactly two decimals.
func Format(d decimal.Decimal) string {
	return d.StringFixed(2)
}

type breakdownJSON struct {
	Subtotal string `json:"subtotal"`
	Tax      string `json:"tax"`
	Shipping string `json:"shipping"`
	Total    string `json:"total"`
}

// MarshalJSON renders every amount as a fixed two-decimal string.
func (b Breakdown) MarshalJSON() ([]byte, error) {
	return json.Marshal(breakdownJSON{
		Subtotal: Format(b.Subtotal),
		Tax:      Format(b.Tax),
		Shipping: Format(b.Shipping),
		Total:    Format(b.Total),
	})
}

func (b *Breakdown) UnmarshalJSON(data []byte) error {
	var raw breakdownJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	fields := []struct {
		src string
		dst *decimal.Decimal
	}{
		{raw.Subtotal, &b.Subtotal},
		{raw.Tax, &b.Tax},
		{raw.Shipping, &b.Shipping},
		{raw.Total, &b.Total},
	}
	for _, f := range fields {
		if f.src == "" {
			*f.dst = decimal.Zero
			continue
		}
		d, err := decimal.NewFromString(f.src)
		if err != nil {
			return err
		}
		*f.dst = d
	}
	return nil
}

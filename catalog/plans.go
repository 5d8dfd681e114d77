package catalog

import (
	"fmt"
	"strings"
)

// Billing is the billing cycle a plan price is quoted for.
type Billing string

const (
	BillingMonthly Billing = "monthly"
	BillingYearly  Billing = "yearly"
)

func ParseBilling(s string) (Billing, error) {
	switch Billing(strings.ToLower(s)) {
	case "", BillingMonthly:
		return BillingMonthly, nil
	case BillingYearly:
		return BillingYearly, nil
	default:
		return "", fmt.Errorf("unknown billing cycle %q", s)
	}
}

// PlanView is a plan priced for one billing cycle.
type PlanView struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       string   `json:"price"`
	Period      string   `json:"period"`
	Discount    string   `json:"discount,omitempty"`
	CTA         string   `json:"cta"`
	Popular     bool     `json:"popular"`
	Features    []string `json:"features"`
}

// Plans prices every plan for b. Yearly prices carry the saving against
// twelve monthly payments.
func (c *Catalog) Plans(b Billing) []PlanView {
	out := make([]PlanView, 0, len(c.plans))
	for _, p := range c.plans {
		v := PlanView{
			Name:        p.Name,
			Description: p.Description,
			Price:       fmt.Sprintf("$%d", p.MonthlyPrice),
			Period:      "per month",
			CTA:         p.CTA,
			Popular:     p.Popular,
			Features:    append([]string(nil), p.Features...),
		}
		if b == BillingYearly {
			v.Price = fmt.Sprintf("$%d", p.YearlyPrice)
			v.Period = "per year"
			if saving := p.MonthlyPrice*12 - p.YearlyPrice; saving > 0 {
				v.Discount = fmt.Sprintf("Save $%d", saving)
			}
		}
		out = append(out, v)
	}
	return out
}

// HasPlan reports whether name matches a plan, ignoring case.
func (c *Catalog) HasPlan(name string) bool {
	for _, p := range c.plans {
		if strings.EqualFold(p.Name, name) {
			return true
		}
	}
	return false
}

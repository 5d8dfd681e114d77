package order

import (
	"fmt"
	"strings"

	"storefront-service/pricing"
)

const receiptWidth = 48

// RenderReceipt formats a confirmation as a plain text receipt for printing.
func RenderReceipt(c Confirmation) string {
	var b strings.Builder
	rule := strings.Repeat("-", receiptWidth)

	b.WriteString("ORDER CONFIRMATION\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Order ID: %s\n", c.OrderID)
	fmt.Fprintf(&b, "Date:     %s\n", c.PlacedAt.Format("January 2, 2006 15:04 MST"))
	b.WriteString(rule + "\n")

	for _, it := range c.Items {
		line := fmt.Sprintf("%s x%d", it.Name, it.Quantity)
		writeAmountLine(&b, line, pricing.Format(it.LineTotal()))
	}
	b.WriteString(rule + "\n")

	writeAmountLine(&b, "Subtotal", pricing.Format(c.Costs.Subtotal))
	writeAmountLine(&b, "Tax (8%)", pricing.Format(c.Costs.Tax))
	if c.Costs.FreeShipping() {
		writeAmountLine(&b, "Shipping", "Free")
	} else {
		writeAmountLine(&b, "Shipping", pricing.Format(c.Costs.Shipping))
	}
	writeAmountLine(&b, "Total", pricing.Format(c.Costs.Total))
	b.WriteString(rule + "\n")

	b.WriteString("Ship to:\n")
	for _, l := range c.Shipping.Lines() {
		b.WriteString("  " + l + "\n")
	}
	fmt.Fprintf(&b, "Payment: %s\n", c.PaymentSummary)

	return b.String()
}

func writeAmountLine(b *strings.Builder, label, amount string) {
	if amount != "Free" {
		amount = "$" + amount
	}
	pad := receiptWidth - len(label) - len(amount)
	if pad < 1 {
		pad = 1
	}
	b.WriteString(label + strings.Repeat(" ", pad) + amount + "\n")
}

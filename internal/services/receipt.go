package services

import (
	"fmt"
	"strings"
)

// BuildReceiptBody renders the plain-text order summary that accompanies the
// receipt notification: one line per cart entry with its extended price,
// then the discount, tax and total breakdown.
func BuildReceiptBody(orderID int64, cart []CartLine, catalog *Catalog, pricing *PricingEngine, quote Quote) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order #%d\n\n", orderID)

	for _, line := range cart {
		name := fmt.Sprintf("Item %d", line.MenuID)
		if item, ok := catalog.MenuItem(line.MenuID); ok {
			name = item.Name
		}
		fmt.Fprintf(&b, "%s x%d", name, line.Quantity)
		if extras := describeCustomizations(line); extras != "" {
			fmt.Fprintf(&b, " (%s)", extras)
		}
		fmt.Fprintf(&b, "  $%s\n", pricing.LineTotal(line, catalog).StringFixed(2))
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "Subtotal: $%s\n", quote.RawSubtotal.StringFixed(2))
	if quote.Discount.IsPositive() {
		fmt.Fprintf(&b, "Loyalty discount: -$%s\n", quote.Discount.StringFixed(2))
	}
	fmt.Fprintf(&b, "Tax: $%s\n", quote.Tax.StringFixed(2))
	fmt.Fprintf(&b, "Total: $%s\n", quote.Total.StringFixed(2))
	return b.String()
}

func describeCustomizations(line CartLine) string {
	var parts []string
	for category, sel := range line.Customizations {
		switch categoryKinds[category] {
		case kindSingle:
			if !skipChoice(sel.Choice) {
				parts = append(parts, sel.Choice)
			}
		case kindMulti:
			for _, name := range sel.Choices {
				if !skipChoice(name) {
					parts = append(parts, name)
				}
			}
		case kindScalar:
			if sel.Percent != nil {
				parts = append(parts, fmt.Sprintf("%s %d%%", category, *sel.Percent))
			}
		}
	}
	return strings.Join(parts, ", ")
}

package handoff

import (
	"fmt"
	"net/url"
	"strings"
)

// Item is one summary line of the hand-off message.
type Item struct {
	Title    string
	Price    float64
	Quantity int
}

// Summary renders the order text sent to the support WhatsApp. The exact
// wording and number formatting are part of the contract with the receiving
// support workflow, so changes here break that workflow.
func Summary(items []Item, total float64, name, email string) string {
	var b strings.Builder
	b.WriteString("Hello! I would like to place an order:\n\n")

	for i, it := range items {
		fmt.Fprintf(&b, "%d. %s (Qty: %d) - $%.2f\n", i+1, it.Title, it.Quantity, it.Price*float64(it.Quantity))
	}

	fmt.Fprintf(&b, "\nTotal: $%.2f\n", total)

	if name == "" {
		name = "Not provided"
	}
	if email == "" {
		email = "Not provided"
	}
	fmt.Fprintf(&b, "\nMy details:\nName: %s\nEmail: %s", name, email)

	return b.String()
}

// URL builds the wa.me deep link carrying the summary. Opening it is
// fire-and-forget on the client; there is no delivery confirmation.
func URL(phone, summary string) string {
	// match encodeURIComponent: spaces become %20, not +
	encoded := strings.ReplaceAll(url.QueryEscape(summary), "+", "%20")
	return fmt.Sprintf("https://wa.me/%s?text=%s", phone, encoded)
}

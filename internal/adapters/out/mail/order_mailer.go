// internal/adapters/out/mail/order_mailer.go
package mail

import (
	"context"
	"fmt"
	"strings"

	orderdom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/order"
)

// OrderMailer sends the order-confirmation mail after a successful
// checkout. It satisfies usecase.OrderMailer; callers treat failures as
// non-fatal, so this type only formats and delegates.
type OrderMailer struct {
	client      EmailClient
	fromAddress string
}

func NewOrderMailer(client EmailClient, fromAddress string) *OrderMailer {
	return &OrderMailer{
		client:      client,
		fromAddress: strings.TrimSpace(fromAddress),
	}
}

func (m *OrderMailer) SendOrderConfirmation(ctx context.Context, toEmail string, o orderdom.Order) error {
	if m == nil || m.client == nil {
		return fmt.Errorf("order_mailer: email client is nil")
	}

	to := strings.TrimSpace(toEmail)
	if to == "" {
		return fmt.Errorf("order_mailer: recipient address is empty")
	}

	subject := fmt.Sprintf("Your NOMs order %s is confirmed", o.ID)
	body := buildOrderBody(o)

	return m.client.Send(ctx, m.fromAddress, to, subject, body)
}

func buildOrderBody(o orderdom.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Thanks for your order!\n\n")
	fmt.Fprintf(&b, "Order ID: %s\n", o.ID)
	fmt.Fprintf(&b, "Placed:   %s\n\n", o.CreatedAt.Format("02 Jan 2006 15:04 MST"))

	for _, it := range o.Items {
		fmt.Fprintf(&b, "  %dx %-24s %s\n", it.Qty, it.Name, formatSGD(it.UnitPrice*int64(it.Qty)))
	}

	fmt.Fprintf(&b, "\nSubtotal: %s\n", formatSGD(o.Subtotal))
	if o.Discount > 0 {
		fmt.Fprintf(&b, "Go-Green discount: -%s\n", formatSGD(o.Discount))
	}
	fmt.Fprintf(&b, "Total paid: %s\n\n", formatSGD(o.TotalPaid))
	fmt.Fprintf(&b, "Show this mail at the counter when collecting your order.\n")

	return b.String()
}

// formatSGD renders minor units as "S$12.34".
func formatSGD(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%sS$%d.%02d", sign, cents/100, cents%100)
}

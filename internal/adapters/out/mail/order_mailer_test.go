package mail

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderdom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/order"
)

type captureClient struct {
	from, to, subject, body string
}

func (c *captureClient) Send(_ context.Context, from, to, subject, body string) error {
	c.from, c.to, c.subject, c.body = from, to, subject, body
	return nil
}

func TestOrderMailer_SendOrderConfirmation(t *testing.T) {
	client := &captureClient{}
	m := NewOrderMailer(client, "orders@noms.example.com")

	o := orderdom.Order{
		ID:         "pi_123",
		CustomerID: "cust-1",
		StoreID:    "store-1",
		VendorID:   "vendor-1",
		Items: []orderdom.ItemSnapshot{
			{ListingID: "l1", Name: "Chicken Rice", UnitPrice: 450, Qty: 2},
		},
		Subtotal:  900,
		Discount:  100,
		TotalPaid: 800,
		Status:    orderdom.StatusInProgress,
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	err := m.SendOrderConfirmation(context.Background(), "cust@example.com", o)
	require.NoError(t, err)

	assert.Equal(t, "orders@noms.example.com", client.from)
	assert.Equal(t, "cust@example.com", client.to)
	assert.Contains(t, client.subject, "pi_123")
	assert.Contains(t, client.body, "2x Chicken Rice")
	assert.Contains(t, client.body, "S$9.00")
	assert.Contains(t, client.body, "Go-Green discount: -S$1.00")
	assert.Contains(t, client.body, "Total paid: S$8.00")
}

func TestOrderMailer_EmptyRecipient(t *testing.T) {
	m := NewOrderMailer(&captureClient{}, "orders@noms.example.com")
	err := m.SendOrderConfirmation(context.Background(), "  ", orderdom.Order{ID: "pi_1"})
	require.Error(t, err)
}

func TestHTMLBodyEscapesMarkup(t *testing.T) {
	got := htmlBody(`2x <img src=x onerror="steal()">`)
	assert.NotContains(t, got, "<img")
	assert.Contains(t, got, "&lt;img src=x onerror=&#34;steal()&#34;&gt;")
	assert.Contains(t, got, "<pre>")
}

func TestFormatSGD(t *testing.T) {
	assert.Equal(t, "S$0.00", formatSGD(0))
	assert.Equal(t, "S$0.05", formatSGD(5))
	assert.Equal(t, "S$12.34", formatSGD(1234))
	assert.Equal(t, "-S$1.00", formatSGD(-100))
}

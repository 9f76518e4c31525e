// internal/adapters/out/stripe/webhook.go
package stripe

import (
	"encoding/json"
	"errors"
	"strings"

	stripesdk "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

const EventPaymentSucceeded = "payment_intent.succeeded"

var (
	ErrBadSignature   = errors.New("stripe: webhook signature verification failed")
	ErrIgnoredEvent   = errors.New("stripe: event type not handled")
	ErrMalformedEvent = errors.New("stripe: malformed event payload")
)

// PaymentSucceeded is the slice of a payment_intent.succeeded event the
// order finalizer needs. Metadata keys are set at intent creation.
type PaymentSucceeded struct {
	PaymentIntentID string
	Amount          int64
	CustomerID      string
	StoreID         string
}

// WebhookParser verifies webhook payloads against the endpoint signing
// secret and extracts payment events.
type WebhookParser struct {
	signingSecret string
}

func NewWebhookParser(signingSecret string) *WebhookParser {
	return &WebhookParser{signingSecret: strings.TrimSpace(signingSecret)}
}

// ParsePaymentSucceeded verifies the signature and decodes the event.
// Event types other than payment_intent.succeeded return
// ErrIgnoredEvent; callers ack those with 2xx so Stripe stops
// redelivering.
func (p *WebhookParser) ParsePaymentSucceeded(payload []byte, sigHeader string) (PaymentSucceeded, error) {
	if p == nil || p.signingSecret == "" {
		return PaymentSucceeded{}, errors.New("stripe: webhook signing secret is empty")
	}

	event, err := webhook.ConstructEvent(payload, sigHeader, p.signingSecret)
	if err != nil {
		return PaymentSucceeded{}, ErrBadSignature
	}

	if string(event.Type) != EventPaymentSucceeded {
		return PaymentSucceeded{}, ErrIgnoredEvent
	}

	var pi stripesdk.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return PaymentSucceeded{}, ErrMalformedEvent
	}
	if strings.TrimSpace(pi.ID) == "" {
		return PaymentSucceeded{}, ErrMalformedEvent
	}

	return PaymentSucceeded{
		PaymentIntentID: pi.ID,
		Amount:          pi.Amount,
		CustomerID:      strings.TrimSpace(pi.Metadata["customerId"]),
		StoreID:         strings.TrimSpace(pi.Metadata["storeId"]),
	}, nil
}

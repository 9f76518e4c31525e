// internal/adapters/out/stripe/payment_intents.go
package stripe

import (
	"context"
	"errors"
	"log"
	"strings"

	stripesdk "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"

	"github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/application/usecase"
)

// PaymentIntentsClient implements usecase.PaymentIntents on the Stripe
// PaymentIntents API. Amounts are minor units, matching what Stripe
// expects.
type PaymentIntentsClient struct {
	api *client.API
}

func NewPaymentIntentsClient(secretKey string) (*PaymentIntentsClient, error) {
	key := strings.TrimSpace(secretKey)
	if key == "" {
		return nil, errors.New("stripe: secret key is empty")
	}
	api := &client.API{}
	api.Init(key, nil)
	return &PaymentIntentsClient{api: api}, nil
}

func (c *PaymentIntentsClient) CreateIntent(ctx context.Context, in usecase.CreateIntentInput) (usecase.PaymentIntent, error) {
	if c == nil || c.api == nil {
		return usecase.PaymentIntent{}, errors.New("stripe: client is not initialized")
	}
	if in.Amount <= 0 {
		return usecase.PaymentIntent{}, errors.New("stripe: amount must be positive")
	}

	params := &stripesdk.PaymentIntentParams{
		Params: stripesdk.Params{Context: ctx},
		Amount: stripesdk.Int64(in.Amount),
		Currency: stripesdk.String(strings.ToLower(
			strings.TrimSpace(in.Currency),
		)),
		AutomaticPaymentMethods: &stripesdk.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripesdk.Bool(true),
		},
	}
	if k := strings.TrimSpace(in.IdempotencyKey); k != "" {
		params.SetIdempotencyKey(k)
	}
	for k, v := range in.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := c.api.PaymentIntents.New(params)
	if err != nil {
		return usecase.PaymentIntent{}, err
	}

	log.Printf("[stripe] payment intent created id=%s amount=%d", pi.ID, in.Amount)
	return usecase.PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
	}, nil
}

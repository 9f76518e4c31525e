// internal/application/usecase/ports.go
package usecase

import (
	"context"

	orderdom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/order"
)

// PaymentIntents is the outbound port to the payment provider.
// The production adapter wraps Stripe PaymentIntents; tests inject a
// fake.
type PaymentIntents interface {
	CreateIntent(ctx context.Context, in CreateIntentInput) (PaymentIntent, error)
}

// CreateIntentInput carries everything the provider needs to open a
// payment. Amount is in minor units.
type CreateIntentInput struct {
	Amount         int64
	Currency       string
	IdempotencyKey string
	Metadata       map[string]string
}

// PaymentIntent is the provider's handle for one payment attempt.
// ClientSecret is passed to the on-device payment sheet.
type PaymentIntent struct {
	ID           string
	ClientSecret string
}

// FinalizeStore runs the atomic order finalize:
// order create + listing stock decrement + cart consume in one storage
// transaction. It returns the stored order and whether this call
// created it (false means the order already existed and the call was an
// idempotent replay).
type FinalizeStore interface {
	Finalize(ctx context.Context, o orderdom.Order, cartID string) (orderdom.Order, bool, error)
}

// OrderMailer sends the order-confirmation mail. Best-effort: callers
// log failures and move on.
type OrderMailer interface {
	SendOrderConfirmation(ctx context.Context, toEmail string, o orderdom.Order) error
}

// ListingImageStore persists a listing image and returns its public URL.
type ListingImageStore interface {
	UploadListingImage(ctx context.Context, listingID, contentType string, data []byte) (string, error)
}

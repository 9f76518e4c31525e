// internal/application/usecase/checkout_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	cartdom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/cart"
	listingdom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/listing"
	"github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/pricing"
	storedom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/store"
)

var (
	ErrCheckoutNotConfigured = errors.New("checkout: usecase is not configured")
	ErrCartEmpty             = errors.New("checkout: cart is empty")
	ErrInsufficientStock     = errors.New("checkout: insufficient stock")
	ErrNothingToCharge       = errors.New("checkout: total is zero")
)

// CheckoutCurrency is what the product charges in.
const CheckoutCurrency = "sgd"

// CheckoutUsecase prices the cart against the current listings and opens
// a PaymentIntent for the total. Stock is only reserved at finalize;
// here it is just validated so obviously-doomed checkouts fail early.
type CheckoutUsecase struct {
	carts    cartdom.Repository
	listings listingdom.Repository
	stores   storedom.Repository
	payments PaymentIntents
	now      func() time.Time
}

func NewCheckoutUsecase(carts cartdom.Repository, listings listingdom.Repository, stores storedom.Repository, payments PaymentIntents) *CheckoutUsecase {
	return &CheckoutUsecase{
		carts:    carts,
		listings: listings,
		stores:   stores,
		payments: payments,
		now:      time.Now,
	}
}

// StartCheckoutResult is handed back to the client; ClientSecret drives
// the on-device payment sheet.
type StartCheckoutResult struct {
	PaymentIntentID string        `json:"paymentIntentId"`
	ClientSecret    string        `json:"clientSecret"`
	Quote           pricing.Quote `json:"quote"`
}

// Start revalidates the cart, computes the quote and creates the
// PaymentIntent. The intent's metadata carries the cart scope so the
// webhook can finalize without trusting the client.
func (u *CheckoutUsecase) Start(ctx context.Context, customerID, storeID string) (StartCheckoutResult, error) {
	if u == nil || u.carts == nil || u.listings == nil || u.stores == nil || u.payments == nil {
		return StartCheckoutResult{}, ErrCheckoutNotConfigured
	}
	cid, sid, err := cartScope(customerID, storeID)
	if err != nil {
		return StartCheckoutResult{}, err
	}

	c, err := u.carts.Get(ctx, cid, sid)
	if err != nil {
		return StartCheckoutResult{}, err
	}
	if c.IsEmpty() {
		return StartCheckoutResult{}, ErrCartEmpty
	}

	st, err := u.stores.GetByID(ctx, sid)
	if err != nil {
		return StartCheckoutResult{}, err
	}

	lines, err := u.priceLines(ctx, c)
	if err != nil {
		return StartCheckoutResult{}, err
	}

	quote, err := pricing.Compute(lines, c.BringOwnContainer)
	if err != nil {
		return StartCheckoutResult{}, err
	}
	if quote.Total <= 0 {
		return StartCheckoutResult{}, ErrNothingToCharge
	}

	intent, err := u.payments.CreateIntent(ctx, CreateIntentInput{
		Amount:   quote.Total,
		Currency: CheckoutCurrency,
		// One intent per cart revision: a retry of the same unchanged
		// cart reuses the provider-side intent instead of double charging.
		IdempotencyKey: checkoutIdempotencyKey(c),
		Metadata: map[string]string{
			"customerId":        cid,
			"storeId":           sid,
			"vendorId":          st.VendorID,
			"bringOwnContainer": strconv.FormatBool(c.BringOwnContainer),
		},
	})
	if err != nil {
		return StartCheckoutResult{}, fmt.Errorf("checkout: create intent failed: %w", err)
	}

	log.Printf("[checkout_uc] intent OK cart=%s intent=%s total=%d discount=%d",
		c.ID, intent.ID, quote.Total, quote.Discount,
	)

	return StartCheckoutResult{
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		Quote:           quote,
	}, nil
}

// priceLines rebuilds the cart lines from the listings so the charge
// uses the vendor's current price, not the add-time snapshot.
func (u *CheckoutUsecase) priceLines(ctx context.Context, c *cartdom.Cart) ([]pricing.Line, error) {
	lines := make([]pricing.Line, 0, len(c.Items))
	for _, it := range c.Items {
		l, err := u.listings.GetByID(ctx, it.ListingID)
		if err != nil {
			return nil, err
		}
		if l.Quantity < it.Qty {
			return nil, fmt.Errorf("%w: listing %s has %d left, cart wants %d",
				ErrInsufficientStock, l.ID, l.Quantity, it.Qty)
		}
		lines = append(lines, pricing.Line{
			ListingID: l.ID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Qty:       it.Qty,
		})
	}
	return lines, nil
}

func checkoutIdempotencyKey(c *cartdom.Cart) string {
	return "checkout-" + strings.ReplaceAll(c.ID, " ", "") + "-" + strconv.FormatInt(c.UpdatedAt.UnixNano(), 10)
}

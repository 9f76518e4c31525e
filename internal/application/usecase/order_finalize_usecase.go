// internal/application/usecase/order_finalize_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	cartdom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/cart"
	listingdom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/listing"
	orderdom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/order"
	"github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/pricing"
	storedom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/store"
	userdom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/user"
)

var (
	ErrFinalizeNotConfigured = errors.New("order_finalize: usecase is not configured")
	ErrFinalizeIntentEmpty   = errors.New("order_finalize: paymentIntentId is empty")
	ErrFinalizeCartGone      = errors.New("order_finalize: cart is missing and no order exists for intent")
)

// OrderFinalizeUsecase turns a confirmed payment into an order.
//
// The whole write set (order create, listing stock decrement, cart
// consume) goes through FinalizeStore in one storage transaction, so a
// concurrent purchase of the last unit loses cleanly and a webhook
// redelivery finds the order already written.
type OrderFinalizeUsecase struct {
	carts    cartdom.Repository
	listings listingdom.Repository
	stores   storedom.Repository
	orders   orderdom.Repository
	users    userdom.Repository
	finalize FinalizeStore
	mailer   OrderMailer // optional
	now      func() time.Time
}

func NewOrderFinalizeUsecase(
	carts cartdom.Repository,
	listings listingdom.Repository,
	stores storedom.Repository,
	orders orderdom.Repository,
	users userdom.Repository,
	finalize FinalizeStore,
	mailer OrderMailer,
) *OrderFinalizeUsecase {
	return &OrderFinalizeUsecase{
		carts:    carts,
		listings: listings,
		stores:   stores,
		orders:   orders,
		users:    users,
		finalize: finalize,
		mailer:   mailer, // nil disables confirmation mail
		now:      time.Now,
	}
}

// PaymentSucceededInput is extracted from the provider event. Amount is
// what was actually charged, in minor units.
type PaymentSucceededInput struct {
	PaymentIntentID string
	CustomerID      string
	StoreID         string
	Amount          int64
}

// HandlePaymentSucceeded finalizes the order for a paid intent.
// Replays (webhook redelivery, client confirm retry) return the already
// recorded order.
func (u *OrderFinalizeUsecase) HandlePaymentSucceeded(ctx context.Context, in PaymentSucceededInput) (orderdom.Order, error) {
	if u == nil || u.carts == nil || u.listings == nil || u.stores == nil || u.orders == nil || u.finalize == nil {
		return orderdom.Order{}, ErrFinalizeNotConfigured
	}

	intentID := strings.TrimSpace(in.PaymentIntentID)
	if intentID == "" {
		return orderdom.Order{}, ErrFinalizeIntentEmpty
	}
	cid, sid, err := cartScope(in.CustomerID, in.StoreID)
	if err != nil {
		return orderdom.Order{}, err
	}

	c, err := u.carts.Get(ctx, cid, sid)
	if err != nil {
		return orderdom.Order{}, err
	}
	if c.IsEmpty() {
		// The cart was consumed already; if an order exists for this
		// intent this is a replay, otherwise something is genuinely off.
		existing, gErr := u.orders.GetByID(ctx, intentID)
		if gErr == nil {
			log.Printf("[order_finalize_uc] replay intent=%s -> existing order", intentID)
			return existing, nil
		}
		if errors.Is(gErr, orderdom.ErrNotFound) {
			return orderdom.Order{}, ErrFinalizeCartGone
		}
		return orderdom.Order{}, gErr
	}

	st, err := u.stores.GetByID(ctx, sid)
	if err != nil {
		return orderdom.Order{}, err
	}

	// Reprice from listings. The transactional decrement re-checks stock
	// under the transaction; this pass builds the snapshot.
	lines := make([]pricing.Line, 0, len(c.Items))
	items := make([]orderdom.ItemSnapshot, 0, len(c.Items))
	for _, it := range c.Items {
		l, err := u.listings.GetByID(ctx, it.ListingID)
		if err != nil {
			return orderdom.Order{}, err
		}
		lines = append(lines, pricing.Line{ListingID: l.ID, Name: l.Name, UnitPrice: l.UnitPrice, Qty: it.Qty})
		items = append(items, orderdom.ItemSnapshot{ListingID: l.ID, Name: l.Name, UnitPrice: l.UnitPrice, Qty: it.Qty})
	}

	quote, err := pricing.Compute(lines, c.BringOwnContainer)
	if err != nil {
		return orderdom.Order{}, err
	}
	if in.Amount != quote.Total {
		// The charge went through for a different figure (e.g. the vendor
		// repriced between checkout and confirmation). Keep the recomputed
		// quote as the order of record and flag it.
		log.Printf("[order_finalize_uc] WARN amount mismatch intent=%s charged=%d quoted=%d",
			intentID, in.Amount, quote.Total,
		)
	}

	o, err := orderdom.New(intentID, cid, sid, st.VendorID, items, quote.Subtotal, quote.Discount, quote.Total, u.now().UTC())
	if err != nil {
		return orderdom.Order{}, err
	}

	stored, created, err := u.finalize.Finalize(ctx, o, c.ID)
	if err != nil {
		return orderdom.Order{}, fmt.Errorf("order_finalize: %w", err)
	}
	if !created {
		log.Printf("[order_finalize_uc] replay intent=%s -> existing order", intentID)
		return stored, nil
	}

	log.Printf("[order_finalize_uc] OK order=%s store=%s items=%d total=%d",
		stored.ID, stored.StoreID, len(stored.Items), stored.TotalPaid,
	)

	u.sendConfirmation(ctx, stored)
	return stored, nil
}

// sendConfirmation mails the customer, best-effort.
func (u *OrderFinalizeUsecase) sendConfirmation(ctx context.Context, o orderdom.Order) {
	if u.mailer == nil || u.users == nil {
		return
	}
	cust, err := u.users.GetByID(ctx, o.CustomerID)
	if err != nil {
		log.Printf("[order_finalize_uc] WARN confirmation skipped, user lookup failed order=%s err=%v", o.ID, err)
		return
	}
	if err := u.mailer.SendOrderConfirmation(ctx, cust.Email, o); err != nil {
		log.Printf("[order_finalize_uc] WARN confirmation mail failed order=%s err=%v", o.ID, err)
	}
}

// internal/application/usecase/checkout_usecase_test.go
package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	listingdom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/listing"
	storedom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/store"
)

var testClock = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

func seedStore(t *testing.T) storedom.Store {
	t.Helper()
	st, err := storedom.New("store-1", "vendor-1", "NOMs Bowl", "", storedom.CategoryHawker, "09:00", "21:00", true, testClock)
	require.NoError(t, err)
	return st
}

func seedListing(t *testing.T, id string, price int64, qty int) listingdom.Listing {
	t.Helper()
	l, err := listingdom.New(id, "store-1", "vendor-1", "Item "+id, "", price, qty, testClock)
	require.NoError(t, err)
	return l
}

func TestCheckoutStart(t *testing.T) {
	ctx := context.Background()

	carts := newFakeCartRepo()
	listings := newFakeListingRepo(seedListing(t, "l1", 300, 5))
	stores := newFakeStoreRepo(seedStore(t))
	payments := &fakePayments{}

	cartUC := NewCartUsecase(carts, listings)
	cartUC.now = func() time.Time { return testClock }
	_, err := cartUC.AddItem(ctx, "cust-1", "store-1", "l1")
	require.NoError(t, err)
	_, err = cartUC.Increase(ctx, "cust-1", "store-1", "l1")
	require.NoError(t, err)
	_, err = cartUC.SetBringOwnContainer(ctx, "cust-1", "store-1", true)
	require.NoError(t, err)

	uc := NewCheckoutUsecase(carts, listings, stores, payments)
	res, err := uc.Start(ctx, "cust-1", "store-1")
	require.NoError(t, err)

	assert.Equal(t, int64(600), res.Quote.Subtotal)
	assert.Equal(t, int64(100), res.Quote.Discount)
	assert.Equal(t, int64(500), res.Quote.Total)
	assert.NotEmpty(t, res.ClientSecret)

	require.Len(t, payments.intents, 1)
	in := payments.intents[0]
	assert.Equal(t, int64(500), in.Amount)
	assert.Equal(t, CheckoutCurrency, in.Currency)
	assert.Equal(t, "cust-1", in.Metadata["customerId"])
	assert.Equal(t, "store-1", in.Metadata["storeId"])
	assert.Equal(t, "vendor-1", in.Metadata["vendorId"])
	assert.Equal(t, "true", in.Metadata["bringOwnContainer"])
	assert.NotEmpty(t, in.IdempotencyKey)
}

func TestCheckoutStartEmptyCart(t *testing.T) {
	uc := NewCheckoutUsecase(newFakeCartRepo(), newFakeListingRepo(), newFakeStoreRepo(seedStore(t)), &fakePayments{})
	_, err := uc.Start(context.Background(), "cust-1", "store-1")
	assert.ErrorIs(t, err, ErrCartEmpty)
}

func TestCheckoutStartInsufficientStock(t *testing.T) {
	ctx := context.Background()

	carts := newFakeCartRepo()
	listings := newFakeListingRepo(seedListing(t, "l1", 300, 2))
	stores := newFakeStoreRepo(seedStore(t))

	cartUC := NewCartUsecase(carts, listings)
	_, err := cartUC.AddItem(ctx, "cust-1", "store-1", "l1")
	require.NoError(t, err)
	_, err = cartUC.Increase(ctx, "cust-1", "store-1", "l1")
	require.NoError(t, err)

	// stock shrinks after the cart was filled
	l, err := listings.GetByID(ctx, "l1")
	require.NoError(t, err)
	qty := 1
	require.NoError(t, l.Apply(listingdom.Patch{Quantity: &qty}, testClock))
	_, err = listings.Save(ctx, l)
	require.NoError(t, err)

	uc := NewCheckoutUsecase(carts, listings, stores, &fakePayments{})
	_, err = uc.Start(ctx, "cust-1", "store-1")
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestCheckoutStartZeroTotal(t *testing.T) {
	ctx := context.Background()

	carts := newFakeCartRepo()
	listings := newFakeListingRepo(seedListing(t, "l1", 50, 5))
	stores := newFakeStoreRepo(seedStore(t))

	cartUC := NewCartUsecase(carts, listings)
	_, err := cartUC.AddItem(ctx, "cust-1", "store-1", "l1")
	require.NoError(t, err)
	_, err = cartUC.SetBringOwnContainer(ctx, "cust-1", "store-1", true)
	require.NoError(t, err)

	uc := NewCheckoutUsecase(carts, listings, stores, &fakePayments{})
	_, err = uc.Start(ctx, "cust-1", "store-1")
	assert.ErrorIs(t, err, ErrNothingToCharge)
}

// internal/application/usecase/order_finalize_usecase_test.go
package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderdom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/order"
	userdom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/user"
)

type finalizeFixture struct {
	carts    *fakeCartRepo
	listings *fakeListingRepo
	stores   *fakeStoreRepo
	orders   *fakeOrderRepo
	users    *fakeUserRepo
	mailer   *fakeMailer
	uc       *OrderFinalizeUsecase
}

func newFinalizeFixture(t *testing.T, stock int) *finalizeFixture {
	t.Helper()

	cust, err := userdom.New("cust-1", "cust@example.com", "Shannon", "", userdom.RoleCustomer, testClock)
	require.NoError(t, err)

	f := &finalizeFixture{
		carts:    newFakeCartRepo(),
		listings: newFakeListingRepo(seedListing(t, "l1", 300, stock)),
		stores:   newFakeStoreRepo(seedStore(t)),
		orders:   newFakeOrderRepo(),
		users:    newFakeUserRepo(cust),
		mailer:   &fakeMailer{},
	}
	f.uc = NewOrderFinalizeUsecase(
		f.carts, f.listings, f.stores, f.orders, f.users,
		&fakeFinalizeStore{orders: f.orders, listings: f.listings, carts: f.carts},
		f.mailer,
	)
	return f
}

func (f *finalizeFixture) fillCart(t *testing.T, customerID string, qty int) {
	t.Helper()
	cartUC := NewCartUsecase(f.carts, f.listings)
	for i := 0; i < qty; i++ {
		var err error
		if i == 0 {
			_, err = cartUC.AddItem(context.Background(), customerID, "store-1", "l1")
		} else {
			_, err = cartUC.Increase(context.Background(), customerID, "store-1", "l1")
		}
		require.NoError(t, err)
	}
}

func TestFinalizeHappyPath(t *testing.T) {
	ctx := context.Background()
	f := newFinalizeFixture(t, 5)
	f.fillCart(t, "cust-1", 2)

	o, err := f.uc.HandlePaymentSucceeded(ctx, PaymentSucceededInput{
		PaymentIntentID: "pi_1", CustomerID: "cust-1", StoreID: "store-1", Amount: 600,
	})
	require.NoError(t, err)

	assert.Equal(t, "pi_1", o.ID)
	assert.Equal(t, orderdom.StatusInProgress, o.Status)
	assert.Equal(t, int64(600), o.TotalPaid)

	// stock decremented
	l, err := f.listings.GetByID(ctx, "l1")
	require.NoError(t, err)
	assert.Equal(t, 3, l.Quantity)

	// cart consumed
	c, err := f.carts.Get(ctx, "cust-1", "store-1")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())

	// confirmation mail went out
	assert.Equal(t, []string{"cust@example.com"}, f.mailer.sent)
}

func TestFinalizeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFinalizeFixture(t, 5)
	f.fillCart(t, "cust-1", 1)

	in := PaymentSucceededInput{PaymentIntentID: "pi_1", CustomerID: "cust-1", StoreID: "store-1", Amount: 300}

	first, err := f.uc.HandlePaymentSucceeded(ctx, in)
	require.NoError(t, err)

	// webhook redelivery after the cart was consumed
	second, err := f.uc.HandlePaymentSucceeded(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	// exactly one decrement
	l, err := f.listings.GetByID(ctx, "l1")
	require.NoError(t, err)
	assert.Equal(t, 4, l.Quantity)

	// exactly one mail
	assert.Len(t, f.mailer.sent, 1)
}

func TestFinalizeLastUnitRace(t *testing.T) {
	ctx := context.Background()
	f := newFinalizeFixture(t, 1)

	cust2, err := userdom.New("cust-2", "cust2@example.com", "Tyx", "", userdom.RoleCustomer, testClock)
	require.NoError(t, err)
	_, err = f.users.Upsert(ctx, cust2)
	require.NoError(t, err)

	f.fillCart(t, "cust-1", 1)
	f.fillCart(t, "cust-2", 1)

	_, err1 := f.uc.HandlePaymentSucceeded(ctx, PaymentSucceededInput{
		PaymentIntentID: "pi_a", CustomerID: "cust-1", StoreID: "store-1", Amount: 300,
	})
	_, err2 := f.uc.HandlePaymentSucceeded(ctx, PaymentSucceededInput{
		PaymentIntentID: "pi_b", CustomerID: "cust-2", StoreID: "store-1", Amount: 300,
	})

	// at most one purchase of the last unit succeeds
	require.NoError(t, err1)
	assert.ErrorIs(t, err2, ErrInsufficientStock)

	l, err := f.listings.GetByID(ctx, "l1")
	require.NoError(t, err)
	assert.Equal(t, 0, l.Quantity)
}

func TestFinalizeCartGoneWithoutOrder(t *testing.T) {
	f := newFinalizeFixture(t, 5)
	_, err := f.uc.HandlePaymentSucceeded(context.Background(), PaymentSucceededInput{
		PaymentIntentID: "pi_x", CustomerID: "cust-1", StoreID: "store-1", Amount: 300,
	})
	assert.ErrorIs(t, err, ErrFinalizeCartGone)
}

func TestFinalizeMailFailureDoesNotFailOrder(t *testing.T) {
	ctx := context.Background()
	f := newFinalizeFixture(t, 5)
	f.mailer.err = assert.AnError
	f.fillCart(t, "cust-1", 1)

	_, err := f.uc.HandlePaymentSucceeded(ctx, PaymentSucceededInput{
		PaymentIntentID: "pi_1", CustomerID: "cust-1", StoreID: "store-1", Amount: 300,
	})
	require.NoError(t, err)
}

func TestOrderCompleteFlow(t *testing.T) {
	ctx := context.Background()
	f := newFinalizeFixture(t, 5)
	f.fillCart(t, "cust-1", 1)

	o, err := f.uc.HandlePaymentSucceeded(ctx, PaymentSucceededInput{
		PaymentIntentID: "pi_1", CustomerID: "cust-1", StoreID: "store-1", Amount: 300,
	})
	require.NoError(t, err)

	orderUC := NewOrderUsecase(f.orders)

	_, err = orderUC.Complete(ctx, "someone-else", o.ID)
	assert.ErrorIs(t, err, orderdom.ErrNotParticipant)

	done, err := orderUC.Complete(ctx, "vendor-1", o.ID)
	require.NoError(t, err)
	assert.Equal(t, orderdom.StatusCompleted, done.Status)

	_, err = orderUC.Complete(ctx, "cust-1", o.ID)
	assert.ErrorIs(t, err, orderdom.ErrAlreadyCompleted)
}

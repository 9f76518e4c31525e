// internal/domain/order/entity_test.go
package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 8, 31, 18, 0, 0, 0, time.UTC)

func newTestOrder(t *testing.T) Order {
	t.Helper()
	o, err := New(
		"pi_123", "cust-1", "store-1", "vendor-1",
		[]ItemSnapshot{{ListingID: "l1", Name: "DIY Bowl", UnitPrice: 300, Qty: 2}},
		600, 100, 500, t0,
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	o := newTestOrder(t)
	assert.Equal(t, StatusInProgress, o.Status)
	assert.Nil(t, o.CompletedAt)

	_, err := New("pi_123", "cust-1", "store-1", "vendor-1", nil, 0, 0, 0, t0)
	assert.ErrorIs(t, err, ErrInvalidItems)

	_, err = New("pi_123", "cust-1", "store-1", "vendor-1",
		[]ItemSnapshot{{ListingID: "l1", UnitPrice: 300, Qty: 1}},
		300, 0, 400, t0)
	assert.ErrorIs(t, err, ErrInvalidAmounts)
}

func TestCompleteByCustomer(t *testing.T) {
	o := newTestOrder(t)
	now := t0.Add(time.Hour)

	require.NoError(t, o.Complete("cust-1", now))
	assert.Equal(t, StatusCompleted, o.Status)
	require.NotNil(t, o.CompletedAt)
	assert.Equal(t, now.UTC(), *o.CompletedAt)
}

func TestCompleteByVendor(t *testing.T) {
	o := newTestOrder(t)
	require.NoError(t, o.Complete("vendor-1", t0.Add(time.Hour)))
	assert.Equal(t, StatusCompleted, o.Status)
}

func TestCompleteRejectsStranger(t *testing.T) {
	o := newTestOrder(t)
	assert.ErrorIs(t, o.Complete("somebody-else", t0), ErrNotParticipant)
	assert.Equal(t, StatusInProgress, o.Status)
}

func TestCompleteIsTerminal(t *testing.T) {
	o := newTestOrder(t)
	require.NoError(t, o.Complete("cust-1", t0))
	assert.ErrorIs(t, o.Complete("cust-1", t0), ErrAlreadyCompleted)
	assert.ErrorIs(t, o.Complete("vendor-1", t0), ErrAlreadyCompleted)
}

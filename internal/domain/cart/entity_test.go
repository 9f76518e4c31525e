// internal/domain/cart/entity_test.go
package cart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

func newTestCart(t *testing.T) *Cart {
	t.Helper()
	c, err := NewCart("cust-1", "store-1", t0)
	require.NoError(t, err)
	return c
}

func TestNewCartRequiresScope(t *testing.T) {
	_, err := NewCart("", "store-1", t0)
	assert.ErrorIs(t, err, ErrInvalidCart)

	_, err = NewCart("cust-1", " ", t0)
	assert.ErrorIs(t, err, ErrInvalidCart)

	c := newTestCart(t)
	assert.Equal(t, "cust-1__store-1", c.ID)
	assert.True(t, c.IsEmpty())
}

func TestAddMergesSameListing(t *testing.T) {
	c := newTestCart(t)

	require.NoError(t, c.Add("l1", "DIY Bowl", 300, 5, t0))
	require.NoError(t, c.Add("l1", "DIY Bowl", 300, 5, t0.Add(time.Second)))

	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Qty)
}

func TestAddCapsAtAvailable(t *testing.T) {
	c := newTestCart(t)

	require.NoError(t, c.Add("l1", "DIY Bowl", 300, 2, t0))
	require.NoError(t, c.Add("l1", "DIY Bowl", 300, 2, t0))
	err := c.Add("l1", "DIY Bowl", 300, 2, t0)

	assert.ErrorIs(t, err, ErrQuantityCapped)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Qty)
}

func TestAddSoldOutListing(t *testing.T) {
	c := newTestCart(t)
	err := c.Add("l1", "DIY Bowl", 300, 0, t0)
	assert.ErrorIs(t, err, ErrQuantityCapped)
	assert.True(t, c.IsEmpty())
}

func TestIncreaseDecrease(t *testing.T) {
	c := newTestCart(t)
	require.NoError(t, c.Add("l1", "DIY Bowl", 300, 3, t0))

	require.NoError(t, c.Increase("l1", t0))
	assert.Equal(t, 2, c.Items[0].Qty)

	require.NoError(t, c.Decrease("l1", t0))
	assert.Equal(t, 1, c.Items[0].Qty)

	// decreasing past zero removes the line
	require.NoError(t, c.Decrease("l1", t0))
	assert.True(t, c.IsEmpty())

	assert.ErrorIs(t, c.Increase("l1", t0), ErrItemNotFound)
	assert.ErrorIs(t, c.Decrease("l1", t0), ErrItemNotFound)
}

func TestIncreaseCapsAtAvailable(t *testing.T) {
	c := newTestCart(t)
	require.NoError(t, c.Add("l1", "DIY Bowl", 300, 1, t0))
	assert.ErrorIs(t, c.Increase("l1", t0), ErrQuantityCapped)
}

func TestConsumeAll(t *testing.T) {
	c := newTestCart(t)
	require.NoError(t, c.Add("l1", "DIY Bowl", 300, 5, t0))
	require.NoError(t, c.Add("l2", "Iced Tea", 150, 5, t0))

	later := t0.Add(time.Minute)
	snap, err := c.ConsumeAll(later)
	require.NoError(t, err)

	assert.Len(t, snap, 2)
	assert.True(t, c.IsEmpty())
	assert.Equal(t, later, c.UpdatedAt)
	assert.Equal(t, later.Add(DefaultCartTTL), c.ExpiresAt)
}

func TestTouchRefreshesTTL(t *testing.T) {
	c := newTestCart(t)
	later := t0.Add(time.Hour)
	require.NoError(t, c.Add("l1", "DIY Bowl", 300, 5, later))
	assert.Equal(t, later.Add(DefaultCartTTL), c.ExpiresAt)
}

// internal/domain/pricing/pricing_test.go
package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name              string
		lines             []Line
		bringOwnContainer bool
		want              Quote
	}{
		{
			name:  "empty cart",
			lines: nil,
			want:  Quote{Subtotal: 0, Discount: 0, Total: 0},
		},
		{
			name: "single line no discount",
			lines: []Line{
				{ListingID: "l1", UnitPrice: 300, Qty: 2},
			},
			want: Quote{Subtotal: 600, Discount: 0, Total: 600},
		},
		{
			name: "go green discount applied",
			lines: []Line{
				{ListingID: "l1", UnitPrice: 300, Qty: 2},
			},
			bringOwnContainer: true,
			want:              Quote{Subtotal: 600, Discount: 100, Total: 500},
		},
		{
			name: "discount clamped at zero",
			lines: []Line{
				{ListingID: "l1", UnitPrice: 50, Qty: 1},
			},
			bringOwnContainer: true,
			want:              Quote{Subtotal: 50, Discount: 50, Total: 0},
		},
		{
			name:              "discount on empty cart stays zero",
			lines:             []Line{},
			bringOwnContainer: true,
			want:              Quote{Subtotal: 0, Discount: 0, Total: 0},
		},
		{
			name: "multiple lines",
			lines: []Line{
				{ListingID: "l1", UnitPrice: 250, Qty: 1},
				{ListingID: "l2", UnitPrice: 120, Qty: 3},
			},
			bringOwnContainer: true,
			want:              Quote{Subtotal: 610, Discount: 100, Total: 510},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compute(tt.lines, tt.bringOwnContainer)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeRejectsInvalidLines(t *testing.T) {
	_, err := Compute([]Line{{ListingID: "l1", UnitPrice: -1, Qty: 1}}, false)
	assert.ErrorIs(t, err, ErrNegativeUnitPrice)

	_, err = Compute([]Line{{ListingID: "l1", UnitPrice: 100, Qty: 0}}, false)
	assert.ErrorIs(t, err, ErrNonPositiveQty)
}

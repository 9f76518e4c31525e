// internal/domain/pricing/pricing.go
package pricing

import "errors"

// GoGreenDiscount is the flat deduction (minor units) applied when the
// customer opts to bring their own container.
const GoGreenDiscount int64 = 100

var (
	ErrNegativeUnitPrice = errors.New("pricing: negative unit price")
	ErrNonPositiveQty    = errors.New("pricing: non-positive quantity")
)

// Line is one priced cart line. UnitPrice is in minor units (cents).
type Line struct {
	ListingID string
	Name      string
	UnitPrice int64
	Qty       int
}

// Quote is the derived checkout total. It is never persisted; the order
// snapshot records the final figures at finalize time.
type Quote struct {
	Subtotal int64 `json:"subtotal"`
	Discount int64 `json:"discount"`
	Total    int64 `json:"total"`
}

// Compute derives subtotal and total from lines.
// The Go-Green discount never pushes the total below zero; Discount
// reports the amount actually deducted.
func Compute(lines []Line, bringOwnContainer bool) (Quote, error) {
	var subtotal int64
	for _, l := range lines {
		if l.UnitPrice < 0 {
			return Quote{}, ErrNegativeUnitPrice
		}
		if l.Qty <= 0 {
			return Quote{}, ErrNonPositiveQty
		}
		subtotal += l.UnitPrice * int64(l.Qty)
	}

	var discount int64
	if bringOwnContainer {
		discount = GoGreenDiscount
		if discount > subtotal {
			discount = subtotal
		}
	}

	return Quote{
		Subtotal: subtotal,
		Discount: discount,
		Total:    subtotal - discount,
	}, nil
}

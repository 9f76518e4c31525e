// internal/adapters/in/http/router.go
package http

import (
	"log"
	"net/http"
)

const StripeWebhookPath = "/webhooks/stripe"

// Deps is the full handler set. DI constructs these and wraps the
// authenticated ones with the user-auth middleware before Register.
type Deps struct {
	Store        http.Handler // /stores, /stores/{id}, /stores/{id}/reviews
	Cart         http.Handler // /me/cart...
	Checkout     http.Handler // /me/checkout
	MeOrders     http.Handler // /me/orders...
	VendorOrders http.Handler // /vendor/orders...
	Listing      http.Handler // /vendor/listings...
	Profile      http.Handler // /me/profile

	StripeWebhook http.Handler // /webhooks/stripe (no user auth)
}

// handleSafe registers pattern with h. A nil handler logs a WARN and
// registers NotFoundHandler so a partially wired container still serves.
func handleSafe(mux *http.ServeMux, pattern string, h http.Handler, name string) {
	if h == nil {
		log.Printf("[router] WARN: nil handler: %s pattern=%s (registering NotFoundHandler)", name, pattern)
		h = http.NotFoundHandler()
	}
	mux.Handle(pattern, h)
}

// Register registers all routes onto mux.
func Register(mux *http.ServeMux, deps Deps) {
	if mux == nil {
		return
	}

	// storefront + vendor store management + reviews
	handleSafe(mux, "/stores", deps.Store, "Store")
	handleSafe(mux, "/stores/", deps.Store, "Store")

	// cart
	handleSafe(mux, "/me/cart", deps.Cart, "Cart")
	handleSafe(mux, "/me/cart/", deps.Cart, "Cart")

	// checkout
	handleSafe(mux, "/me/checkout", deps.Checkout, "Checkout")

	// orders
	handleSafe(mux, "/me/orders", deps.MeOrders, "Orders(me)")
	handleSafe(mux, "/me/orders/", deps.MeOrders, "Orders(me)")
	handleSafe(mux, "/vendor/orders", deps.VendorOrders, "Orders(vendor)")
	handleSafe(mux, "/vendor/orders/", deps.VendorOrders, "Orders(vendor)")

	// listings
	handleSafe(mux, "/vendor/listings", deps.Listing, "Listing")
	handleSafe(mux, "/vendor/listings/", deps.Listing, "Listing")

	// profile
	handleSafe(mux, "/me/profile", deps.Profile, "Profile")

	// webhook (no user auth; Stripe signs the payload instead)
	handleSafe(mux, StripeWebhookPath, deps.StripeWebhook, "StripeWebhook")
}

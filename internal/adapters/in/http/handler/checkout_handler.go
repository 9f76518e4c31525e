// internal/adapters/in/http/handler/checkout_handler.go
package handler

import (
	"log"
	"net/http"
	"strings"

	"github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/adapters/in/http/middleware"
	"github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/application/usecase"
)

// CheckoutHandler serves POST /me/checkout. The cart is revalidated
// against current listings, priced, and a PaymentIntent is opened; the
// client drives the payment sheet with the returned clientSecret. The
// order itself is only written when the webhook reports success.
type CheckoutHandler struct {
	uc *usecase.CheckoutUsecase
}

func NewCheckoutHandler(uc *usecase.CheckoutUsecase) http.Handler {
	return &CheckoutHandler{uc: uc}
}

type checkoutInput struct {
	StoreID string `json:"storeId"`
}

type checkoutResponse struct {
	PaymentIntentID string `json:"paymentIntentId"`
	ClientSecret    string `json:"clientSecret"`
	Subtotal        int64  `json:"subtotal"`
	Discount        int64  `json:"discount"`
	Total           int64  `json:"total"`
	Currency        string `json:"currency"`
}

func (h *CheckoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "checkout handler is not configured")
		return
	}
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	uid, ok := middleware.CurrentUID(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "sign in required")
		return
	}

	var in checkoutInput
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if strings.TrimSpace(in.StoreID) == "" {
		writeErr(w, http.StatusBadRequest, "storeId is required")
		return
	}

	res, err := h.uc.Start(r.Context(), uid, in.StoreID)
	if err != nil {
		log.Printf("[checkout_handler] start failed store=%s err=%v", in.StoreID, err)
		writeDomainErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, checkoutResponse{
		PaymentIntentID: res.PaymentIntentID,
		ClientSecret:    res.ClientSecret,
		Subtotal:        res.Quote.Subtotal,
		Discount:        res.Quote.Discount,
		Total:           res.Quote.Total,
		Currency:        usecase.CheckoutCurrency,
	})
}

// internal/adapters/in/http/handler/cart_handler.go
package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/adapters/in/http/middleware"
	"github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/application/usecase"
	cartdom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/cart"
)

// CartHandler serves the authenticated cart endpoints. The customer id
// always comes from the verified token, never the body.
//
//	GET    /me/cart?storeId=            current cart (empty cart if none)
//	DELETE /me/cart?storeId=            clear
//	POST   /me/cart/items               add one unit {storeId, listingId}
//	POST   /me/cart/items/increase      +1 {storeId, listingId}
//	POST   /me/cart/items/decrease      -1, removes line at zero
//	POST   /me/cart/container           {storeId, bringOwnContainer}
type CartHandler struct {
	uc *usecase.CartUsecase
}

func NewCartHandler(uc *usecase.CartUsecase) http.Handler {
	return &CartHandler{uc: uc}
}

func (h *CartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "cart handler is not configured")
		return
	}

	uid, ok := middleware.CurrentUID(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "sign in required")
		return
	}

	path := strings.TrimRight(r.URL.Path, "/")

	switch {
	case path == "/me/cart" && r.Method == http.MethodGet:
		h.handleGet(w, r, uid)
	case path == "/me/cart" && r.Method == http.MethodDelete:
		h.handleClear(w, r, uid)
	case path == "/me/cart/items" && r.Method == http.MethodPost:
		h.handleItem(w, r, uid, h.uc.AddItem)
	case path == "/me/cart/items/increase" && r.Method == http.MethodPost:
		h.handleItem(w, r, uid, h.uc.Increase)
	case path == "/me/cart/items/decrease" && r.Method == http.MethodPost:
		h.handleItem(w, r, uid, h.uc.Decrease)
	case path == "/me/cart/container" && r.Method == http.MethodPost:
		h.handleContainer(w, r, uid)
	default:
		writeErr(w, http.StatusNotFound, "not found")
	}
}

func (h *CartHandler) handleGet(w http.ResponseWriter, r *http.Request, uid string) {
	storeID := strings.TrimSpace(r.URL.Query().Get("storeId"))
	if storeID == "" {
		writeErr(w, http.StatusBadRequest, "storeId is required")
		return
	}

	c, err := h.uc.Get(r.Context(), uid, storeID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CartHandler) handleClear(w http.ResponseWriter, r *http.Request, uid string) {
	storeID := strings.TrimSpace(r.URL.Query().Get("storeId"))
	if storeID == "" {
		writeErr(w, http.StatusBadRequest, "storeId is required")
		return
	}

	if err := h.uc.Clear(r.Context(), uid, storeID); err != nil {
		writeDomainErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type cartItemInput struct {
	StoreID   string `json:"storeId"`
	ListingID string `json:"listingId"`
}

func (h *CartHandler) handleItem(
	w http.ResponseWriter,
	r *http.Request,
	uid string,
	op func(ctx context.Context, customerID, storeID, listingID string) (*cartdom.Cart, error),
) {
	var in cartItemInput
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if strings.TrimSpace(in.StoreID) == "" || strings.TrimSpace(in.ListingID) == "" {
		writeErr(w, http.StatusBadRequest, "storeId and listingId are required")
		return
	}

	c, err := op(r.Context(), uid, in.StoreID, in.ListingID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

type containerInput struct {
	StoreID           string `json:"storeId"`
	BringOwnContainer bool   `json:"bringOwnContainer"`
}

func (h *CartHandler) handleContainer(w http.ResponseWriter, r *http.Request, uid string) {
	var in containerInput
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if strings.TrimSpace(in.StoreID) == "" {
		writeErr(w, http.StatusBadRequest, "storeId is required")
		return
	}

	c, err := h.uc.SetBringOwnContainer(r.Context(), uid, in.StoreID, in.BringOwnContainer)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

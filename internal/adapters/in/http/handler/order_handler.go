// internal/adapters/in/http/handler/order_handler.go
package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/adapters/in/http/middleware"
	"github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/application/usecase"
	orderdom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/order"
)

// OrderHandler serves both order views:
//
//	GET  /me/orders?status=                  customer's orders
//	POST /me/orders/{id}/complete            customer marks collected
//	GET  /vendor/orders?status=              vendor's incoming orders
//	POST /vendor/orders/{id}/complete        vendor marks fulfilled
//
// Either participant may complete; the domain enforces who qualifies.
type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) http.Handler {
	return &OrderHandler{uc: uc}
}

func (h *OrderHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "order handler is not configured")
		return
	}

	uid, ok := middleware.CurrentUID(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "sign in required")
		return
	}

	path := strings.TrimRight(r.URL.Path, "/")

	switch {
	case path == "/me/orders" && r.Method == http.MethodGet:
		h.handleList(w, r, uid, false)
	case path == "/vendor/orders" && r.Method == http.MethodGet:
		h.handleList(w, r, uid, true)
	case r.Method == http.MethodPost && pathSegment(path, "/me/orders/", 1) == "complete":
		h.handleComplete(w, r, uid, pathSegment(path, "/me/orders/", 0))
	case r.Method == http.MethodPost && pathSegment(path, "/vendor/orders/", 1) == "complete":
		h.handleComplete(w, r, uid, pathSegment(path, "/vendor/orders/", 0))
	default:
		writeErr(w, http.StatusNotFound, "not found")
	}
}

func (h *OrderHandler) handleList(w http.ResponseWriter, r *http.Request, uid string, vendorView bool) {
	statuses, ok := parseStatuses(r.URL.Query().Get("status"))
	if !ok {
		writeErr(w, http.StatusBadRequest, "unknown status filter")
		return
	}

	page := orderdom.Page{Number: 1}
	if raw := strings.TrimSpace(r.URL.Query().Get("page")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			page.Number = n
		}
	}

	var (
		res orderdom.PageResult
		err error
	)
	if vendorView {
		res, err = h.uc.ListForVendor(r.Context(), uid, statuses, page)
	} else {
		res, err = h.uc.ListForCustomer(r.Context(), uid, statuses, page)
	}
	if err != nil {
		writeDomainErr(w, err)
		return
	}

	items := make([]orderJSON, 0, len(res.Items))
	for _, o := range res.Items {
		items = append(items, toOrderJSON(o))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"orders":     items,
		"totalCount": res.TotalCount,
		"totalPages": res.TotalPages,
		"page":       res.Page,
	})
}

func (h *OrderHandler) handleComplete(w http.ResponseWriter, r *http.Request, uid, orderID string) {
	if strings.TrimSpace(orderID) == "" {
		writeErr(w, http.StatusBadRequest, "order id is required")
		return
	}

	o, err := h.uc.Complete(r.Context(), uid, orderID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderJSON(o))
}

// internal/adapters/in/http/handler/helpers.go
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/application/usecase"
	cartdom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/cart"
	listingdom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/listing"
	orderdom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/order"
	reviewdom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/review"
	storedom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/store"
	userdom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/user"
)

const maxBodyBytes = 1 << 20 // 1MB

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}

func decodeJSON(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return err
	}
	_ = r.Body.Close()
	return json.Unmarshal(body, dst)
}

// writeDomainErr maps domain sentinels onto HTTP statuses; everything
// unmatched is a 500 with a generic message.
func writeDomainErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storedom.ErrNotFound),
		errors.Is(err, listingdom.ErrNotFound),
		errors.Is(err, orderdom.ErrNotFound),
		errors.Is(err, userdom.ErrNotFound),
		errors.Is(err, reviewdom.ErrNotFound):
		writeErr(w, http.StatusNotFound, err.Error())

	case errors.Is(err, usecase.ErrStoreNotOwner),
		errors.Is(err, usecase.ErrListingNotOwner),
		errors.Is(err, usecase.ErrStoreNotVendor),
		errors.Is(err, orderdom.ErrNotParticipant):
		writeErr(w, http.StatusForbidden, err.Error())

	case errors.Is(err, orderdom.ErrAlreadyCompleted),
		errors.Is(err, storedom.ErrConflict),
		errors.Is(err, listingdom.ErrConflict),
		errors.Is(err, cartdom.ErrQuantityCapped),
		errors.Is(err, usecase.ErrInsufficientStock):
		writeErr(w, http.StatusConflict, err.Error())

	case errors.Is(err, usecase.ErrCartEmpty),
		errors.Is(err, usecase.ErrNothingToCharge),
		errors.Is(err, usecase.ErrCartListingWrongStore),
		errors.Is(err, usecase.ErrCartScopeEmpty),
		errors.Is(err, cartdom.ErrInvalidCart),
		errors.Is(err, cartdom.ErrItemNotFound),
		errors.Is(err, storedom.ErrInvalidHours),
		errors.Is(err, storedom.ErrInvalidName),
		errors.Is(err, storedom.ErrInvalidCategory),
		errors.Is(err, listingdom.ErrInvalidName),
		errors.Is(err, listingdom.ErrInvalidUnitPrice),
		errors.Is(err, listingdom.ErrInvalidQuantity),
		errors.Is(err, reviewdom.ErrInvalidRating),
		errors.Is(err, userdom.ErrInvalidEmail),
		errors.Is(err, userdom.ErrInvalidRole):
		writeErr(w, http.StatusBadRequest, err.Error())

	default:
		writeErr(w, http.StatusInternalServerError, "internal error")
	}
}

// pathSegment returns the i-th segment of the path after trimming
// prefix, "" when absent. pathSegment("/stores/s1/reviews", "/stores/", 0)
// returns "s1".
func pathSegment(path, prefix string, i int) string {
	rest := strings.TrimPrefix(strings.TrimRight(path, "/"), prefix)
	if rest == path {
		return ""
	}
	parts := strings.Split(rest, "/")
	if i < 0 || i >= len(parts) {
		return ""
	}
	return strings.TrimSpace(parts[i])
}

// parseStatuses parses ?status=. Empty means no filter.
func parseStatuses(raw string) ([]orderdom.Status, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, true
	}
	switch strings.ToLower(raw) {
	case strings.ToLower(string(orderdom.StatusInProgress)), "in-progress":
		return []orderdom.Status{orderdom.StatusInProgress}, true
	case strings.ToLower(string(orderdom.StatusCompleted)), "completed":
		return []orderdom.Status{orderdom.StatusCompleted}, true
	}
	return nil, false
}

// -------------------------
// response shapes
// -------------------------

type orderItemJSON struct {
	ListingID string `json:"listingId"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unitPrice"`
	Qty       int    `json:"qty"`
}

type orderJSON struct {
	ID          string          `json:"id"`
	CustomerID  string          `json:"customerId"`
	StoreID     string          `json:"storeId"`
	VendorID    string          `json:"vendorId"`
	Items       []orderItemJSON `json:"items"`
	Subtotal    int64           `json:"subtotal"`
	Discount    int64           `json:"discount"`
	TotalPaid   int64           `json:"totalPaid"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	CompletedAt *time.Time      `json:"completedAt,omitempty"`
}

func toOrderJSON(o orderdom.Order) orderJSON {
	items := make([]orderItemJSON, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemJSON{
			ListingID: it.ListingID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Qty:       it.Qty,
		})
	}
	return orderJSON{
		ID:          o.ID,
		CustomerID:  o.CustomerID,
		StoreID:     o.StoreID,
		VendorID:    o.VendorID,
		Items:       items,
		Subtotal:    o.Subtotal,
		Discount:    o.Discount,
		TotalPaid:   o.TotalPaid,
		Status:      string(o.Status),
		CreatedAt:   o.CreatedAt,
		CompletedAt: o.CompletedAt,
	}
}

type storeJSON struct {
	ID                 string    `json:"id"`
	VendorID           string    `json:"vendorId"`
	Name               string    `json:"name"`
	Description        string    `json:"description"`
	Category           string    `json:"category"`
	Opening            string    `json:"opening"`
	Closing            string    `json:"closing"`
	IsGreenParticipant bool      `json:"isGreenParticipant"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

func toStoreJSON(s storedom.Store) storeJSON {
	return storeJSON{
		ID:                 s.ID,
		VendorID:           s.VendorID,
		Name:               s.Name,
		Description:        s.Description,
		Category:           s.Category,
		Opening:            s.Opening,
		Closing:            s.Closing,
		IsGreenParticipant: s.IsGreenParticipant,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

type listingJSON struct {
	ID          string    `json:"id"`
	StoreID     string    `json:"storeId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	UnitPrice   int64     `json:"unitPrice"`
	Quantity    int       `json:"quantity"`
	InStock     bool      `json:"inStock"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toListingJSON(l listingdom.Listing) listingJSON {
	return listingJSON{
		ID:          l.ID,
		StoreID:     l.StoreID,
		Name:        l.Name,
		Description: l.Description,
		UnitPrice:   l.UnitPrice,
		Quantity:    l.Quantity,
		InStock:     l.InStock(),
		ImageURL:    l.ImageURL,
		UpdatedAt:   l.UpdatedAt,
	}
}

type reviewJSON struct {
	ID        string    `json:"id"`
	StoreID   string    `json:"storeId"`
	UserName  string    `json:"userName"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func toReviewJSON(rv reviewdom.Review) reviewJSON {
	return reviewJSON{
		ID:        rv.ID,
		StoreID:   rv.StoreID,
		UserName:  rv.UserName,
		Rating:    rv.Rating,
		Comment:   rv.Comment,
		CreatedAt: rv.CreatedAt,
	}
}

type userJSON struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role"`
}

func toUserJSON(u userdom.User) userJSON {
	return userJSON{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Phone: u.Phone,
		Role:  string(u.Role),
	}
}

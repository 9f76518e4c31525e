// internal/adapters/in/http/handler/listing_handler.go
package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/adapters/in/http/middleware"
	"github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/application/usecase"
	listingdom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/listing"
)

const maxImageBytes = 5 << 20 // 5MB

// ListingHandler serves the vendor listing endpoints:
//
//	GET    /vendor/listings?inStock=true|false
//	POST   /vendor/listings
//	PUT    /vendor/listings/{id}
//	DELETE /vendor/listings/{id}
//	POST   /vendor/listings/{id}/image   raw image body, Content-Type set
type ListingHandler struct {
	uc *usecase.ListingUsecase
}

func NewListingHandler(uc *usecase.ListingUsecase) http.Handler {
	return &ListingHandler{uc: uc}
}

func (h *ListingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "listing handler is not configured")
		return
	}

	uid, ok := middleware.CurrentUID(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "sign in required")
		return
	}

	path := strings.TrimRight(r.URL.Path, "/")
	listingID := pathSegment(path, "/vendor/listings/", 0)
	isImage := pathSegment(path, "/vendor/listings/", 1) == "image"

	switch {
	case path == "/vendor/listings" && r.Method == http.MethodGet:
		h.handleList(w, r, uid)
	case path == "/vendor/listings" && r.Method == http.MethodPost:
		h.handleCreate(w, r, uid)
	case listingID != "" && isImage && r.Method == http.MethodPost:
		h.handleImage(w, r, uid, listingID)
	case listingID != "" && !isImage && r.Method == http.MethodPut:
		h.handleUpdate(w, r, uid, listingID)
	case listingID != "" && !isImage && r.Method == http.MethodDelete:
		h.handleDelete(w, r, uid, listingID)
	default:
		writeErr(w, http.StatusNotFound, "not found")
	}
}

func (h *ListingHandler) handleList(w http.ResponseWriter, r *http.Request, uid string) {
	var inStock *bool
	switch strings.ToLower(strings.TrimSpace(r.URL.Query().Get("inStock"))) {
	case "true", "1":
		v := true
		inStock = &v
	case "false", "0":
		v := false
		inStock = &v
	}

	ls, err := h.uc.ListForVendor(r.Context(), uid, inStock)
	if err != nil {
		writeDomainErr(w, err)
		return
	}

	out := make([]listingJSON, 0, len(ls))
	for _, l := range ls {
		out = append(out, toListingJSON(l))
	}
	writeJSON(w, http.StatusOK, map[string]any{"listings": out})
}

func (h *ListingHandler) handleCreate(w http.ResponseWriter, r *http.Request, uid string) {
	var in usecase.CreateListingInput
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	l, err := h.uc.Create(r.Context(), uid, in)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toListingJSON(l))
}

type updateListingInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	UnitPrice   *int64  `json:"unitPrice"`
	Quantity    *int    `json:"quantity"`
}

func (h *ListingHandler) handleUpdate(w http.ResponseWriter, r *http.Request, uid, listingID string) {
	var in updateListingInput
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	l, err := h.uc.Update(r.Context(), uid, listingID, listingdom.Patch{
		Name:        in.Name,
		Description: in.Description,
		UnitPrice:   in.UnitPrice,
		Quantity:    in.Quantity,
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toListingJSON(l))
}

func (h *ListingHandler) handleDelete(w http.ResponseWriter, r *http.Request, uid, listingID string) {
	if err := h.uc.Delete(r.Context(), uid, listingID); err != nil {
		writeDomainErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ListingHandler) handleImage(w http.ResponseWriter, r *http.Request, uid, listingID string) {
	contentType := strings.TrimSpace(r.Header.Get("Content-Type"))
	if !strings.HasPrefix(contentType, "image/") {
		writeErr(w, http.StatusBadRequest, "Content-Type must be an image type")
		return
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxImageBytes+1))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "failed to read image body")
		return
	}
	_ = r.Body.Close()
	if len(data) == 0 {
		writeErr(w, http.StatusBadRequest, "image body is empty")
		return
	}
	if len(data) > maxImageBytes {
		writeErr(w, http.StatusRequestEntityTooLarge, "image exceeds 5MB")
		return
	}

	l, err := h.uc.AttachImage(r.Context(), uid, listingID, contentType, data)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toListingJSON(l))
}

// internal/adapters/in/http/handler/store_handler.go
package handler

import (
	"log"
	"net/http"
	"strings"

	"github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/adapters/in/http/middleware"
	"github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/application/query/storefront"
	"github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/application/usecase"
	storedom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/store"
)

// StoreHandler serves /stores and /stores/{id}[...]:
//
//	GET  /stores                   browse (public, ?category= ?openNow=1)
//	POST /stores                   create (vendor)
//	GET  /stores/{id}              detail + listings (public)
//	PUT  /stores/{id}              update (owning vendor)
//	GET  /stores/{id}/reviews      list reviews + average (public)
//	POST /stores/{id}/reviews      create review (authenticated)
type StoreHandler struct {
	stores  *usecase.StoreUsecase
	reviews *usecase.ReviewUsecase
	catalog *storefront.CatalogQuery
}

func NewStoreHandler(stores *usecase.StoreUsecase, reviews *usecase.ReviewUsecase, catalog *storefront.CatalogQuery) http.Handler {
	return &StoreHandler{stores: stores, reviews: reviews, catalog: catalog}
}

func (h *StoreHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.stores == nil || h.catalog == nil {
		writeErr(w, http.StatusInternalServerError, "store handler is not configured")
		return
	}

	path := strings.TrimRight(r.URL.Path, "/")
	storeID := pathSegment(path, "/stores/", 0)
	// exactly /stores/{id} or /stores/{id}/reviews; deeper paths 404
	isStoreOnly := storeID != "" && pathSegment(path, "/stores/", 1) == ""
	isReviews := storeID != "" &&
		pathSegment(path, "/stores/", 1) == "reviews" &&
		pathSegment(path, "/stores/", 2) == ""

	switch {
	case path == "/stores" && r.Method == http.MethodGet:
		h.handleBrowse(w, r)
	case path == "/stores" && r.Method == http.MethodPost:
		h.handleCreate(w, r)
	case isReviews && r.Method == http.MethodGet:
		h.handleListReviews(w, r, storeID)
	case isReviews && r.Method == http.MethodPost:
		h.handleCreateReview(w, r, storeID)
	case isStoreOnly && r.Method == http.MethodGet:
		h.handleDetail(w, r, storeID)
	case isStoreOnly && r.Method == http.MethodPut:
		h.handleUpdate(w, r, storeID)
	default:
		writeErr(w, http.StatusNotFound, "not found")
	}
}

func (h *StoreHandler) handleBrowse(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	openNow := q.Get("openNow") == "1" || strings.EqualFold(q.Get("openNow"), "true")

	cards, err := h.catalog.ListStores(r.Context(), q.Get("category"), openNow)
	if err != nil {
		log.Printf("[store_handler] browse failed err=%v", err)
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"stores": cards})
}

func (h *StoreHandler) handleDetail(w http.ResponseWriter, r *http.Request, storeID string) {
	detail, err := h.catalog.StoreDetail(r.Context(), storeID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *StoreHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.CurrentUID(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "sign in required")
		return
	}

	var in usecase.CreateStoreInput
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	s, err := h.stores.Create(r.Context(), uid, in)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toStoreJSON(s))
}

type updateStoreInput struct {
	Name               *string `json:"name"`
	Description        *string `json:"description"`
	Category           *string `json:"category"`
	Opening            *string `json:"opening"`
	Closing            *string `json:"closing"`
	IsGreenParticipant *bool   `json:"isGreenParticipant"`
}

func (h *StoreHandler) handleUpdate(w http.ResponseWriter, r *http.Request, storeID string) {
	uid, ok := middleware.CurrentUID(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "sign in required")
		return
	}

	var in updateStoreInput
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	s, err := h.stores.Update(r.Context(), uid, storeID, storedom.Patch{
		Name:               in.Name,
		Description:        in.Description,
		Category:           in.Category,
		Opening:            in.Opening,
		Closing:            in.Closing,
		IsGreenParticipant: in.IsGreenParticipant,
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toStoreJSON(s))
}

func (h *StoreHandler) handleListReviews(w http.ResponseWriter, r *http.Request, storeID string) {
	if h.reviews == nil {
		writeErr(w, http.StatusInternalServerError, "review usecase is not configured")
		return
	}

	rs, avg, err := h.reviews.ListForStore(r.Context(), storeID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}

	out := make([]reviewJSON, 0, len(rs))
	for _, rv := range rs {
		out = append(out, toReviewJSON(rv))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"reviews":       out,
		"averageRating": avg,
	})
}

type createReviewInput struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (h *StoreHandler) handleCreateReview(w http.ResponseWriter, r *http.Request, storeID string) {
	if h.reviews == nil {
		writeErr(w, http.StatusInternalServerError, "review usecase is not configured")
		return
	}

	uid, ok := middleware.CurrentUID(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "sign in required")
		return
	}

	var in createReviewInput
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	rv, err := h.reviews.Create(r.Context(), uid, storeID, in.Rating, in.Comment)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toReviewJSON(rv))
}

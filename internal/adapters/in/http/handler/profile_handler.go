// internal/adapters/in/http/handler/profile_handler.go
package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/adapters/in/http/middleware"
	"github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/application/usecase"
	userdom "github.com/shannontyx/DTSA-CODEEXP-NOMs/internal/domain/user"
)

// ProfileHandler serves /me/profile:
//
//	GET   /me/profile    current profile (404 until registered)
//	POST  /me/profile    register, or re-register to update name/phone
//	PATCH /me/profile    partial update
//
// The email defaults to the token claim when the body omits it.
type ProfileHandler struct {
	uc *usecase.UserUsecase
}

func NewProfileHandler(uc *usecase.UserUsecase) http.Handler {
	return &ProfileHandler{uc: uc}
}

func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "profile handler is not configured")
		return
	}

	uid, ok := middleware.CurrentUID(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "sign in required")
		return
	}

	if strings.TrimRight(r.URL.Path, "/") != "/me/profile" {
		writeErr(w, http.StatusNotFound, "not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r, uid)
	case http.MethodPost:
		h.handleRegister(w, r, uid)
	case http.MethodPatch:
		h.handlePatch(w, r, uid)
	default:
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *ProfileHandler) handleGet(w http.ResponseWriter, r *http.Request, uid string) {
	u, err := h.uc.GetProfile(r.Context(), uid)
	if err != nil {
		if errors.Is(err, userdom.ErrNotFound) {
			writeErr(w, http.StatusNotFound, "profile not registered")
			return
		}
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserJSON(u))
}

type registerInput struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

func (h *ProfileHandler) handleRegister(w http.ResponseWriter, r *http.Request, uid string) {
	var in registerInput
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	email := strings.TrimSpace(in.Email)
	if email == "" {
		email, _ = middleware.CurrentEmail(r)
	}

	u, err := h.uc.Register(r.Context(), uid, usecase.RegisterProfileInput{
		Email: email,
		Name:  in.Name,
		Phone: in.Phone,
		Role:  userdom.Role(strings.TrimSpace(in.Role)),
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserJSON(u))
}

type patchProfileInput struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

func (h *ProfileHandler) handlePatch(w http.ResponseWriter, r *http.Request, uid string) {
	var in patchProfileInput
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	u, err := h.uc.UpdateProfile(r.Context(), uid, userdom.Patch{
		Name:  in.Name,
		Phone: in.Phone,
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserJSON(u))
}

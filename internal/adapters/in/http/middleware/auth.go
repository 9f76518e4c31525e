// internal/adapters/in/http/middleware/auth.go
package middleware

import (
	"context"
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
)

// FirebaseAuthClient is an alias so DI code can pass the client around
// without importing the firebase package everywhere.
type FirebaseAuthClient = fbauth.Client

// context keys use a private type to avoid collisions (SA1029).
type ctxKey struct{ name string }

var (
	ctxKeyUID   = ctxKey{name: "uid"}
	ctxKeyEmail = ctxKey{name: "email"}
)

// UserAuthMiddleware verifies the Firebase ID token from
// "Authorization: Bearer <token>" and stores uid/email in the request
// context.
type UserAuthMiddleware struct {
	FirebaseAuth *FirebaseAuthClient
}

func (m *UserAuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m == nil || m.FirebaseAuth == nil {
			http.Error(w, "auth middleware not initialized", http.StatusServiceUnavailable)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			http.Error(w, "unauthorized: missing bearer token", http.StatusUnauthorized)
			return
		}

		idToken := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if idToken == "" {
			http.Error(w, "unauthorized: empty bearer token", http.StatusUnauthorized)
			return
		}

		token, err := m.FirebaseAuth.VerifyIDToken(r.Context(), idToken)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		uid := strings.TrimSpace(token.UID)
		if uid == "" {
			http.Error(w, "invalid uid in token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyUID, uid)

		if emailRaw, ok := token.Claims["email"]; ok {
			if e, ok2 := emailRaw.(string); ok2 {
				if e = strings.TrimSpace(e); e != "" {
					ctx = context.WithValue(ctx, ctxKeyEmail, e)
				}
			}
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalHandler verifies the bearer token when one is present and
// passes the request through untouched when it is not. Routes that mix
// public reads and authenticated writes use this; the handler checks
// CurrentUID on the write paths.
func (m *UserAuthMiddleware) OptionalHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m == nil || m.FirebaseAuth == nil {
			next.ServeHTTP(w, r)
			return
		}
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			next.ServeHTTP(w, r)
			return
		}
		m.Handler(next).ServeHTTP(w, r)
	})
}

// CurrentUID returns the authenticated Firebase uid.
func CurrentUID(r *http.Request) (string, bool) {
	u, ok := r.Context().Value(ctxKeyUID).(string)
	if !ok || strings.TrimSpace(u) == "" {
		return "", false
	}
	return strings.TrimSpace(u), true
}

// CurrentEmail returns the token's email claim if present.
func CurrentEmail(r *http.Request) (string, bool) {
	e, ok := r.Context().Value(ctxKeyEmail).(string)
	if !ok || strings.TrimSpace(e) == "" {
		return "", false
	}
	return strings.TrimSpace(e), true
}

// WithTestUID injects a uid into the context. Handler tests use this in
// place of a verified token.
func WithTestUID(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, ctxKeyUID, uid)
}

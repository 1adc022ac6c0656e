// internal/adapters/in/http/middleware/auth.go
package middleware

import (
	"context"
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
)

// FirebaseAuthClient is an alias so callers can take *middleware.FirebaseAuthClient.
type FirebaseAuthClient = fbauth.Client

// context keys use a private type to avoid collisions (SA1029)
type ctxKey struct{ name string }

var ctxKeyAuthUser = ctxKey{name: "authUser"}

// AuthUser is the identity-provider view of the caller, resolved from the
// verified Firebase ID token. The engines only ever receive UID from here.
type AuthUser struct {
	UID         string
	Email       string
	DisplayName string
}

// AuthMiddleware verifies
//
//   - Authorization: Bearer <ID_TOKEN>
//
// and stores the AuthUser in the request context for the next handler.
type AuthMiddleware struct {
	FirebaseAuth *FirebaseAuthClient
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.FirebaseAuth == nil {
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

		user := AuthUser{UID: uid}
		if v, ok := token.Claims["email"].(string); ok {
			user.Email = strings.TrimSpace(v)
		}
		if v, ok := token.Claims["name"].(string); ok {
			user.DisplayName = strings.TrimSpace(v)
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// WithUser stores the caller identity in ctx (used by the middleware and by
// handler tests).
func WithUser(ctx context.Context, u AuthUser) context.Context {
	return context.WithValue(ctx, ctxKeyAuthUser, u)
}

// OptionalHandler verifies the bearer token when one is present but lets
// anonymous requests through. Mixed subtrees (public reads, authed writes)
// use this and gate per-operation via CurrentUser.
func (m *AuthMiddleware) OptionalHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.FirebaseAuth == nil || !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			next.ServeHTTP(w, r)
			return
		}
		m.Handler(next).ServeHTTP(w, r)
	})
}

// CurrentUser returns the authenticated caller, if any.
func CurrentUser(ctx context.Context) (AuthUser, bool) {
	u, ok := ctx.Value(ctxKeyAuthUser).(AuthUser)
	if !ok || u.UID == "" {
		return AuthUser{}, false
	}
	return u, true
}

package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/Tomlord1122/todo-auth-backend/internal/domain"
)

type identityContextKey struct{}

// Guard is the single entry point for protected routes: it turns an
// Authorization header into the caller's username or rejects the request.
type Guard struct {
	tokens *TokenService
}

func NewGuard(tokens *TokenService) *Guard {
	return &Guard{tokens: tokens}
}

// Authenticate extracts the bearer token from header and verifies it.
func (g *Guard) Authenticate(header string) (string, error) {
	token, ok := bearerToken(header)
	if !ok {
		return "", domain.ErrInvalidToken
	}
	return g.tokens.Verify(token)
}

// Middleware rejects unauthenticated requests with 401 before they reach the
// handler and stores the username in the request context otherwise.
func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, err := g.Authenticate(r.Header.Get("Authorization"))
		if err != nil {
			w.Header().Set("WWW-Authenticate", "Bearer")
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"Unauthorized"}`))
			return
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), username)))
	})
}

// WithIdentity returns a copy of ctx carrying username.
func WithIdentity(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, identityContextKey{}, username)
}

// IdentityFromContext returns the username stored by Middleware.
func IdentityFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(identityContextKey{}).(string)
	return username, ok && username != ""
}

func bearerToken(value string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(value), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}

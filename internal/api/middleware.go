package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/inkwellapp/inkwell-server/internal/domain"
	"github.com/inkwellapp/inkwell-server/internal/http/response"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// contextKeyUser carries the authenticated *domain.User, if any.
const contextKeyUser contextKey = "user"

// withAuth attaches the authenticated user to the request context when a
// valid Bearer token is sent. Requests without (or with invalid) tokens
// continue anonymously; each handler decides whether that is acceptable.
func (s *Server) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			next.ServeHTTP(w, r)
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		user, err := s.authService.VerifyAccessToken(r.Context(), token)
		if err != nil {
			// A token was sent but is unusable; reject rather than
			// silently downgrading to anonymous.
			response.Detail(w, http.StatusUnauthorized, response.MsgInvalidToken, s.logger.Logger)
			return
		}

		ctx := context.WithValue(r.Context(), contextKeyUser, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// currentUser extracts the authenticated user from the request context.
// Returns nil for anonymous requests.
func currentUser(ctx context.Context) *domain.User {
	if user, ok := ctx.Value(contextKeyUser).(*domain.User); ok {
		return user
	}
	return nil
}

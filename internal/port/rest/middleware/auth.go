package middleware

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ahsanauddry027/safetails-sub000/internal/auth"
	"github.com/ahsanauddry027/safetails-sub000/internal/entity"
	"github.com/ahsanauddry027/safetails-sub000/internal/port/rest/response"
)

// Authenticator resolves a session token to the caller.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.Session, error)
}

// Authenticate attaches the caller's session when the request carries a
// valid token. Requests without one continue anonymously. A blocked account
// is rejected outright and its cookie cleared.
func Authenticate(a Authenticator, cookies auth.CookieIssuer, logger *zap.Logger) func(http.Handler) http.Handler {
	logger = logger.Named("AuthMiddleware")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := auth.TokenFromRequest(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			s, err := a.Authenticate(r.Context(), token)
			switch {
			case err == nil:
				next.ServeHTTP(w, r.WithContext(auth.WithSession(r.Context(), s)))
			case errors.Is(err, entity.ErrAccountBlocked):
				cookies.Clear(w)
				response.Error(w, r, logger, err)
			case errors.Is(err, entity.ErrUnauthenticated), errors.Is(err, entity.ErrForbidden):
				logger.Debug("Ignoring unusable session token", zap.Error(err))
				next.ServeHTTP(w, r)
			default:
				response.Error(w, r, logger, err)
			}
		})
	}
}

// RequireAuth rejects anonymous requests with 401.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth.SessionFrom(r.Context()) == nil {
			response.Fail(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole admits only sessions holding one of roles.
func RequireRole(roles ...entity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := auth.SessionFrom(r.Context())
			if s == nil {
				response.Fail(w, http.StatusUnauthorized, "Authentication required")
				return
			}
			if err := auth.Authorize(s, auth.HasRole(roles...)); err != nil {
				response.Fail(w, http.StatusForbidden, "Access denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/nhattm/gameshelf/internal/api/apierr"
	"github.com/nhattm/gameshelf/internal/api/response"
	"github.com/nhattm/gameshelf/internal/model"
	"github.com/nhattm/gameshelf/internal/services/auth"
)

type contextKey string

const identityContextKey contextKey = "identity"

// Auth creates authentication middleware for the token-pair cookie scheme.
// A request with a live access token passes through unchanged. A request
// whose access token is expired or absent but whose refresh token is still
// live passes through with a freshly issued pair attached as cookies.
func Auth(authService *auth.Service, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := authService.Resolve(extractTokens(r))
			if err != nil {
				apierr.WriteError(w, logger, err)
				return
			}

			if session.Reissue {
				pair, err := authService.IssuePair(session.Identity)
				if err != nil {
					apierr.WriteError(w, logger, err)
					return
				}
				response.SetTokenCookies(w, pair)
			}

			ctx := context.WithValue(r.Context(), identityContextKey, &session.Identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractTokens reads the token-pair cookies; missing cookies yield
// empty strings
func extractTokens(r *http.Request) auth.RawTokens {
	var raw auth.RawTokens
	if cookie, err := r.Cookie(response.AccessTokenCookie); err == nil {
		raw.AccessToken = cookie.Value
	}
	if cookie, err := r.Cookie(response.RefreshTokenCookie); err == nil {
		raw.RefreshToken = cookie.Value
	}
	return raw
}

// GetIdentity returns the authenticated identity from the request context
func GetIdentity(ctx context.Context) *model.Identity {
	identity, _ := ctx.Value(identityContextKey).(*model.Identity)
	return identity
}

// MustGetIdentity returns the authenticated identity or panics
func MustGetIdentity(ctx context.Context) *model.Identity {
	identity := GetIdentity(ctx)
	if identity == nil {
		panic("no identity in context - auth middleware not applied?")
	}
	return identity
}

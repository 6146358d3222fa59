package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Dosada05/fencing-tournament/models"
	"github.com/Dosada05/fencing-tournament/services"
)

// TokenAuthenticator resolves a bearer token to the user it was issued for.
type TokenAuthenticator interface {
	AuthenticateToken(ctx context.Context, token string) (*models.User, error)
}

// Authenticate requires a valid bearer token. Browsers cannot set headers on
// WebSocket upgrades, so a "token" query parameter is accepted for those.
func Authenticate(auth TokenAuthenticator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				writeError(w, http.StatusUnauthorized, "missing or malformed authorization token")
				return
			}

			user, err := auth.AuthenticateToken(r.Context(), token)
			if err != nil {
				if !errors.Is(err, services.ErrAuthenticationFailed) {
					logger.ErrorContext(r.Context(), "token authentication error", slog.Any("error", err))
				}
				writeError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// RequireRole lets through only users whose role matches one of roles.
func RequireRole(roles ...models.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeError(w, http.StatusForbidden, "insufficient permissions")
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") {
			return "", false
		}
		token = strings.TrimSpace(token)
		return token, token != ""
	}
	if websocketUpgrade(r) {
		token := r.URL.Query().Get("token")
		return token, token != ""
	}
	return "", false
}

func websocketUpgrade(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Upgrade"), "websocket")
}

package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/stayhub/wallet-service/internal/application/errs"
	"github.com/stayhub/wallet-service/internal/domain/entities/user"
	"github.com/stayhub/wallet-service/internal/jwt"
	"github.com/stayhub/wallet-service/pkg/logger"
)

// Auth verifies the externally issued token and puts the caller
// identity into the request context. Tokens arrive either as an
// Authorization cookie or a bearer header.
func Auth(signingKey string, logger logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		f := func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token == "" {
				unauthorized(w, "authorization token not provided")
				return
			}

			claims, err := jwt.Parse(token, signingKey)
			if err != nil {
				logger.Debugf("reject token: %s", err)
				unauthorized(w, "invalid authorization token")
				return
			}

			u := &user.User{ID: claims.UserID, Role: claims.Role}

			next.ServeHTTP(w, r.WithContext(user.NewContext(r.Context(), u)))
		}
		return http.HandlerFunc(f)
	}
}

// RequireRole guards the admin review surface.
func RequireRole(role user.Role) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		f := func(w http.ResponseWriter, r *http.Request) {
			u, found := user.FromContext(r.Context())
			if !found {
				unauthorized(w, "authorization required")
				return
			}
			if u.Role != role {
				w.WriteHeader(http.StatusForbidden)
				_ = json.NewEncoder(w).Encode(errs.JSON{Error: "insufficient permissions"})
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(f)
	}
}

func tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie("Authorization"); err == nil {
		return cookie.Value
	}

	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	return ""
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(errs.JSON{Error: msg})
}

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/dcode-github/imobiliaria/backend/controllers"
	"github.com/dcode-github/imobiliaria/backend/store"
	"github.com/dcode-github/imobiliaria/backend/utils"
)

// AdminAuth requires a valid bearer token and an open admin session. Logging
// out closes the session, so tokens issued before it stop working.
func AdminAuth(issuer *utils.TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenHeader := r.Header.Get("Authorization")
			if tokenHeader == "" {
				utils.RespondError(w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Missing Authorization header")
				return
			}

			tokenParts := strings.Split(tokenHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				utils.RespondError(w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid Authorization header format")
				return
			}

			claims, err := issuer.ValidateJWT(tokenParts[1])
			if err != nil {
				utils.RespondError(w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid or expired token", err)
				return
			}

			s, err := store.FromContext(r.Context())
			if err != nil {
				utils.RespondError(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Internal server error", err)
				return
			}
			if !s.Authenticated() {
				utils.RespondError(w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Session closed, please log in again")
				return
			}

			ctx := context.WithValue(r.Context(), controllers.AdminEmailKey, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

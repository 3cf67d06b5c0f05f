package middleware

import (
	"net/http"

	"github.com/dcode-github/imobiliaria/backend/store"
)

// WithStore puts the application store in scope for every request.
func WithStore(s *store.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(store.WithStore(r.Context(), s)))
		})
	}
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/tably/tably/internal/tenant"
)

// TenantAccess rejects authenticated requests whose token was issued for a
// different restaurant than the one the request resolved to. It must be
// chained after both the tenant middleware and Auth.
//
// Paths under the given skip prefixes (public content, auth endpoints) pass
// through untouched.
func TenantAccess(skipPrefixes ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, p := range skipPrefixes {
				if strings.HasPrefix(r.URL.Path, p) {
					next.ServeHTTP(w, r)
					return
				}
			}

			resolvedID, ok := tenant.IDFromContext(r.Context())
			if !ok {
				http.Error(w, `{"title":"Bad Request","status":400,"detail":"restaurant context missing"}`, http.StatusBadRequest)
				return
			}

			tokenID, ok := TokenRestaurantIDFromContext(r.Context())
			if !ok {
				http.Error(w, `{"title":"Unauthorized","status":401,"detail":"authentication required"}`, http.StatusUnauthorized)
				return
			}

			if tokenID != resolvedID {
				http.Error(w, `{"title":"Forbidden","status":403,"detail":"token does not belong to this restaurant"}`, http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

package tenant

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Middleware resolves the owning restaurant for every request and injects it
// into the request context. Resolution failures are terminal: not-found maps
// to 404, an invalid or unknown restaurant-id header and a missing context
// map to 400.
func Middleware(rs *Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rest, err := rs.Resolve(r)
			if err != nil {
				writeResolveError(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithRestaurant(r.Context(), rest)))
		})
	}
}

func writeResolveError(w http.ResponseWriter, err error) {
	var nf *NotFoundError
	var bad *InvalidIDError

	switch {
	case errors.As(err, &nf):
		writeJSONError(w, http.StatusNotFound, "Not Found", nf.Error())
	case errors.As(err, &bad):
		writeJSONError(w, http.StatusBadRequest, "Bad Request", bad.Error())
	case errors.Is(err, ErrMissingContext):
		writeJSONError(w, http.StatusBadRequest, "Bad Request", ErrMissingContext.Error())
	default:
		log.Error().Err(err).Msg("tenant resolution failed")
		writeJSONError(w, http.StatusInternalServerError, "Internal Server Error", "tenant resolution failed")
	}
}

func writeJSONError(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"title":  title,
		"status": status,
		"detail": detail,
	})
}

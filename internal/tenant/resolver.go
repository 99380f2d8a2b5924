package tenant

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tably/tably/internal/domain"
)

// Request inputs consumed by the resolution chain.
const (
	HeaderCustomDomain  = "X-Custom-Domain"
	HeaderForwardedHost = "X-Forwarded-Host"
	HeaderSlug          = "X-Restaurant-Slug"
	HeaderID            = "X-Restaurant-ID"
	ParamRestaurant     = "restaurant"
)

// DefaultSlug is the slug of the restaurant used when a request carries no
// tenant identifier at all.
const DefaultSlug = "default"

// reservedLabels are host labels that never resolve to a tenant slug.
var reservedLabels = map[string]struct{}{
	"www":       {},
	"api":       {},
	"localhost": {},
}

// Directory is the restaurant lookup surface the resolver needs. All lookups
// must filter on is_active; inactive restaurants are treated as nonexistent.
// *postgres.RestaurantRepo satisfies this interface.
type Directory interface {
	FindActiveBySlug(ctx context.Context, slug string) (*domain.Restaurant, error)
	// FindActiveByDomain matches either the custom domain or the slug.
	FindActiveByDomain(ctx context.Context, host string) (*domain.Restaurant, error)
	FindActiveByID(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error)
}

// Resolver determines the owning restaurant for an incoming request.
//
// Resolution order, first supplied input wins, no fallthrough once a method
// is attempted and its lookup fails:
//
//  1. X-Custom-Domain / X-Forwarded-Host header, matched on domain or slug
//  2. subdomain extracted from the Host header
//  3. path or query parameter "restaurant"
//  4. X-Restaurant-Slug header
//  5. X-Restaurant-ID header (failure is a 400, never falls back)
//  6. the restaurant whose slug is "default"
type Resolver struct {
	dir Directory
}

func NewResolver(dir Directory) *Resolver {
	return &Resolver{dir: dir}
}

// Resolve produces exactly one of: a resolved restaurant, a *NotFoundError /
// *InvalidIDError naming the attempted value, or ErrMissingContext.
func (rs *Resolver) Resolve(r *http.Request) (*domain.Restaurant, error) {
	ctx := r.Context()

	if host := customDomain(r); host != "" {
		return rs.lookup(ctx, "domain", host, func() (*domain.Restaurant, error) {
			return rs.dir.FindActiveByDomain(ctx, host)
		})
	}

	if sub := Subdomain(r.Host); sub != "" {
		return rs.lookup(ctx, "subdomain", sub, func() (*domain.Restaurant, error) {
			return rs.dir.FindActiveBySlug(ctx, sub)
		})
	}

	if slug := paramSlug(r); slug != "" {
		return rs.lookup(ctx, "slug", slug, func() (*domain.Restaurant, error) {
			return rs.dir.FindActiveBySlug(ctx, slug)
		})
	}

	if slug := r.Header.Get(HeaderSlug); slug != "" {
		return rs.lookup(ctx, "slug", slug, func() (*domain.Restaurant, error) {
			return rs.dir.FindActiveBySlug(ctx, slug)
		})
	}

	if raw := r.Header.Get(HeaderID); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, &InvalidIDError{Value: raw}
		}
		rest, err := rs.dir.FindActiveByID(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &InvalidIDError{Value: raw}
		}
		if err != nil {
			return nil, err
		}
		return rest, nil
	}

	rest, err := rs.dir.FindActiveBySlug(ctx, DefaultSlug)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrMissingContext
	}
	if err != nil {
		return nil, err
	}
	return rest, nil
}

func (rs *Resolver) lookup(_ context.Context, method, value string, find func() (*domain.Restaurant, error)) (*domain.Restaurant, error) {
	rest, err := find()
	if errors.Is(err, domain.ErrNotFound) {
		return nil, &NotFoundError{Method: method, Value: value}
	}
	if err != nil {
		return nil, err
	}
	return rest, nil
}

// customDomain returns the custom-domain header value with any port stripped,
// preferring X-Custom-Domain over X-Forwarded-Host.
func customDomain(r *http.Request) string {
	host := r.Header.Get(HeaderCustomDomain)
	if host == "" {
		host = r.Header.Get(HeaderForwardedHost)
	}
	return stripPort(host)
}

// paramSlug reads the "restaurant" path parameter, falling back to the query
// parameter of the same name.
func paramSlug(r *http.Request) string {
	if v := chi.URLParam(r, ParamRestaurant); v != "" {
		return v
	}
	return r.URL.Query().Get(ParamRestaurant)
}

// Subdomain extracts the tenant slug candidate from a Host header value.
// The port is stripped and the first label is taken when the host has at
// least three labels (sub.domain.tld), or two when the parent is localhost.
// Reserved labels never resolve.
func Subdomain(host string) string {
	host = stripPort(host)
	if host == "" {
		return ""
	}

	parts := strings.Split(host, ".")
	if len(parts) < 2 {
		return ""
	}
	if len(parts) == 2 && parts[1] != "localhost" {
		return ""
	}

	label := strings.ToLower(parts[0])
	if _, reserved := reservedLabels[label]; reserved {
		return ""
	}
	return label
}

// stripPort removes a trailing :port. Hosts without one, including portless
// IPv6 literals, pass through untouched.
func stripPort(host string) string {
	h, _, err := net.SplitHostPort(host)
	if err != nil {
		return host
	}
	return h
}

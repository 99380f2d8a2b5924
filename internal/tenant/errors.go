package tenant

import (
	"errors"
	"fmt"
)

// ErrMissingContext is returned when no tenant identifier was supplied on the
// request and no restaurant with the default slug exists.
var ErrMissingContext = errors.New("tenant: no restaurant context supplied and no default restaurant exists")

// NotFoundError is returned when a resolution method was attempted with an
// explicit value and no active restaurant matched. There is no fallthrough to
// later methods once a lookup has been attempted and failed.
type NotFoundError struct {
	Method string // "domain", "subdomain", "slug"
	Value  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("tenant: no active restaurant for %s %q", e.Method, e.Value)
}

// InvalidIDError is returned when the restaurant-id header was supplied but
// is unparseable or names no active restaurant. It maps to a 400 response and
// never falls back to the default restaurant.
type InvalidIDError struct {
	Value string
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("tenant: no active restaurant with id %q", e.Value)
}

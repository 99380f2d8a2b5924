package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tably/tably/internal/domain"
	"github.com/tably/tably/internal/tenant"
)

type PublicRestaurantOutput struct {
	Body struct {
		Restaurant *domain.Restaurant         `json:"restaurant"`
		Branding   *domain.RestaurantBranding `json:"branding,omitempty"`
		Settings   *PublicSettings            `json:"settings,omitempty"`
	}
}

// PublicSettings is the customer-visible slice of the tenant settings.
type PublicSettings struct {
	Currency            string `json:"currency"`
	OrderingEnabled     bool   `json:"ordering_enabled"`
	ReservationsEnabled bool   `json:"reservations_enabled"`
}

type UpdateRestaurantInput struct {
	Body struct {
		Name        string `json:"name,omitempty" maxLength:"255" doc:"Restaurant name"`
		Description string `json:"description,omitempty" maxLength:"2000" doc:"Description"`
		OpenTime    string `json:"open_time,omitempty" pattern:"^[0-2][0-9]:[0-5][0-9]$" doc:"Opening time HH:MM"`
		CloseTime   string `json:"close_time,omitempty" pattern:"^[0-2][0-9]:[0-5][0-9]$" doc:"Closing time HH:MM"`
		Timezone    string `json:"timezone,omitempty" maxLength:"64" doc:"IANA timezone"`
	}
}

type UpdateRestaurantOutput struct {
	Body *domain.Restaurant
}

// RegisterPublicRestaurantRoutes registers the unauthenticated storefront
// content endpoint. Branding and settings are optional; a restaurant that
// never saved them still serves its profile.
func RegisterPublicRestaurantRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "get-public-restaurant",
		Method:      http.MethodGet,
		Path:        "/public/restaurant",
		Summary:     "Get the resolved restaurant's public profile",
		Tags:        []string{"Public"},
	}, func(ctx context.Context, _ *struct{}) (*PublicRestaurantOutput, error) {
		rest, ok := tenant.FromContext(ctx)
		if !ok {
			return nil, huma.Error400BadRequest("restaurant context missing")
		}

		out := &PublicRestaurantOutput{}
		out.Body.Restaurant = rest

		branding, err := store.Settings().GetBranding(ctx, rest.ID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, huma.Error500InternalServerError("failed to load branding", err)
		}
		out.Body.Branding = branding

		settings, err := store.Settings().Get(ctx, rest.ID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, huma.Error500InternalServerError("failed to load settings", err)
		}
		if settings != nil {
			out.Body.Settings = &PublicSettings{
				Currency:            settings.Currency,
				OrderingEnabled:     settings.OrderingEnabled,
				ReservationsEnabled: settings.ReservationsEnabled,
			}
		}

		return out, nil
	})
}

// RegisterRestaurantRoutes registers the staff-facing profile endpoints.
func RegisterRestaurantRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "update-restaurant",
		Method:      http.MethodPut,
		Path:        "/restaurant",
		Summary:     "Update the restaurant profile",
		Tags:        []string{"Restaurant"},
	}, func(ctx context.Context, input *UpdateRestaurantInput) (*UpdateRestaurantOutput, error) {
		restaurantID, ok := tenant.IDFromContext(ctx)
		if !ok {
			return nil, huma.Error400BadRequest("restaurant context missing")
		}

		existing, err := store.Restaurants().GetByID(ctx, restaurantID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("restaurant not found")
			}
			return nil, huma.Error500InternalServerError("failed to load restaurant", err)
		}

		if input.Body.Name != "" {
			existing.Name = input.Body.Name
		}
		if input.Body.Description != "" {
			existing.Description = input.Body.Description
		}
		if input.Body.OpenTime != "" {
			existing.OpenTime = input.Body.OpenTime
		}
		if input.Body.CloseTime != "" {
			existing.CloseTime = input.Body.CloseTime
		}
		if input.Body.Timezone != "" {
			existing.Timezone = input.Body.Timezone
		}

		if err := store.Restaurants().Update(ctx, existing); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return nil, huma.Error409Conflict("slug or domain already in use")
			}
			return nil, huma.Error500InternalServerError("failed to update restaurant", err)
		}

		return &UpdateRestaurantOutput{Body: existing}, nil
	})
}

package v1

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tably/tably/internal/domain"
	"github.com/tably/tably/internal/tenant"
)

type SettingsOutput struct {
	Body *domain.RestaurantSettings
}

type SaveSettingsInput struct {
	Body struct {
		Currency            string  `json:"currency" minLength:"3" maxLength:"3" doc:"ISO 4217 currency code"`
		TaxRate             float64 `json:"tax_rate" minimum:"0" maximum:"1" doc:"Tax rate as a fraction"`
		OrderingEnabled     bool    `json:"ordering_enabled" doc:"Whether online ordering is accepted"`
		ReservationsEnabled bool    `json:"reservations_enabled" doc:"Whether reservations are accepted"`
	}
}

type BrandingOutput struct {
	Body *domain.RestaurantBranding
}

type SaveBrandingInput struct {
	Body struct {
		LogoURL        string `json:"logo_url,omitempty" maxLength:"2048" doc:"Logo URL"`
		PrimaryColor   string `json:"primary_color,omitempty" pattern:"^#[0-9a-fA-F]{6}$" doc:"Primary color hex"`
		SecondaryColor string `json:"secondary_color,omitempty" pattern:"^#[0-9a-fA-F]{6}$" doc:"Secondary color hex"`
		Tagline        string `json:"tagline,omitempty" maxLength:"255" doc:"Tagline"`
	}
}

// RegisterSettingsRoutes registers the staff settings and branding endpoints.
// Both are full replacements rather than patches; reads return defaults when
// nothing has been saved yet.
func RegisterSettingsRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "get-settings",
		Method:      http.MethodGet,
		Path:        "/settings",
		Summary:     "Get restaurant settings",
		Tags:        []string{"Settings"},
	}, func(ctx context.Context, _ *struct{}) (*SettingsOutput, error) {
		restaurantID, ok := tenant.IDFromContext(ctx)
		if !ok {
			return nil, huma.Error400BadRequest("restaurant context missing")
		}

		settings, err := store.Settings().Get(ctx, restaurantID)
		if errors.Is(err, domain.ErrNotFound) {
			settings = &domain.RestaurantSettings{
				RestaurantID:        restaurantID,
				Currency:            "USD",
				OrderingEnabled:     true,
				ReservationsEnabled: true,
			}
			err = nil
		}
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to load settings", err)
		}

		return &SettingsOutput{Body: settings}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "save-settings",
		Method:      http.MethodPut,
		Path:        "/settings",
		Summary:     "Save restaurant settings",
		Tags:        []string{"Settings"},
	}, func(ctx context.Context, input *SaveSettingsInput) (*SettingsOutput, error) {
		restaurantID, ok := tenant.IDFromContext(ctx)
		if !ok {
			return nil, huma.Error400BadRequest("restaurant context missing")
		}

		settings := &domain.RestaurantSettings{
			RestaurantID:        restaurantID,
			Currency:            input.Body.Currency,
			TaxRate:             input.Body.TaxRate,
			OrderingEnabled:     input.Body.OrderingEnabled,
			ReservationsEnabled: input.Body.ReservationsEnabled,
			UpdatedAt:           time.Now(),
		}

		if err := store.Settings().Save(ctx, settings); err != nil {
			return nil, huma.Error500InternalServerError("failed to save settings", err)
		}

		return &SettingsOutput{Body: settings}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-branding",
		Method:      http.MethodGet,
		Path:        "/settings/branding",
		Summary:     "Get restaurant branding",
		Tags:        []string{"Settings"},
	}, func(ctx context.Context, _ *struct{}) (*BrandingOutput, error) {
		restaurantID, ok := tenant.IDFromContext(ctx)
		if !ok {
			return nil, huma.Error400BadRequest("restaurant context missing")
		}

		branding, err := store.Settings().GetBranding(ctx, restaurantID)
		if errors.Is(err, domain.ErrNotFound) {
			branding = &domain.RestaurantBranding{RestaurantID: restaurantID}
			err = nil
		}
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to load branding", err)
		}

		return &BrandingOutput{Body: branding}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "save-branding",
		Method:      http.MethodPut,
		Path:        "/settings/branding",
		Summary:     "Save restaurant branding",
		Tags:        []string{"Settings"},
	}, func(ctx context.Context, input *SaveBrandingInput) (*BrandingOutput, error) {
		restaurantID, ok := tenant.IDFromContext(ctx)
		if !ok {
			return nil, huma.Error400BadRequest("restaurant context missing")
		}

		branding := &domain.RestaurantBranding{
			RestaurantID:   restaurantID,
			LogoURL:        input.Body.LogoURL,
			PrimaryColor:   input.Body.PrimaryColor,
			SecondaryColor: input.Body.SecondaryColor,
			Tagline:        input.Body.Tagline,
			UpdatedAt:      time.Now(),
		}

		if err := store.Settings().SaveBranding(ctx, branding); err != nil {
			return nil, huma.Error500InternalServerError("failed to save branding", err)
		}

		return &BrandingOutput{Body: branding}, nil
	})
}

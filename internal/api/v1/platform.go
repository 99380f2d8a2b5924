package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/tably/tably/internal/domain"
	"github.com/tably/tably/internal/mailer"
)

type CreateRestaurantInput struct {
	Body struct {
		Slug          string `json:"slug" minLength:"2" maxLength:"63" pattern:"^[a-z0-9]([a-z0-9-]*[a-z0-9])?$" doc:"URL-safe restaurant slug"`
		Name          string `json:"name" minLength:"1" maxLength:"255" doc:"Restaurant name"`
		Description   string `json:"description,omitempty" maxLength:"2000" doc:"Description"`
		Domain        string `json:"domain,omitempty" maxLength:"255" doc:"Optional custom domain"`
		Timezone      string `json:"timezone,omitempty" maxLength:"64" doc:"IANA timezone, defaults to UTC"`
		OwnerEmail    string `json:"owner_email" minLength:"3" maxLength:"255" doc:"Owner account email"`
		OwnerPassword string `json:"owner_password" minLength:"8" maxLength:"128" doc:"Owner account password"` //nolint:gosec // G117: onboarding credential DTO
		OwnerName     string `json:"owner_name" minLength:"1" maxLength:"255" doc:"Owner display name"`
	}
}

type CreateRestaurantOutput struct {
	Body struct {
		Restaurant *domain.Restaurant `json:"restaurant"`
		Owner      *domain.User       `json:"owner"`
		Subdomain  string             `json:"subdomain,omitempty" doc:"DNS record created for the restaurant, empty when DNS is not configured"`
	}
}

type DeactivateRestaurantInput struct {
	ID uuid.UUID `path:"id" doc:"Restaurant ID"`
}

// RegisterPlatformRoutes registers the restaurant onboarding surface. It is
// mounted behind the platform API key and bypasses tenant resolution, since
// the tenant does not exist yet. DNS record creation and the welcome email
// are best-effort: the restaurant is live either way.
func RegisterPlatformRoutes(api huma.API, store DataStore, authSvc AuthService, dns DNSProvider, mail Mailer) {
	huma.Register(api, huma.Operation{
		OperationID: "create-restaurant",
		Method:      http.MethodPost,
		Path:        "/platform/restaurants",
		Summary:     "Onboard a restaurant with its owner account",
		Tags:        []string{"Platform"},
	}, func(ctx context.Context, input *CreateRestaurantInput) (*CreateRestaurantOutput, error) {
		timezone := input.Body.Timezone
		if timezone == "" {
			timezone = "UTC"
		}

		now := time.Now()
		rest := &domain.Restaurant{
			ID:          uuid.New(),
			Slug:        input.Body.Slug,
			Domain:      input.Body.Domain,
			Name:        input.Body.Name,
			Description: input.Body.Description,
			OpenTime:    "09:00",
			CloseTime:   "22:00",
			Timezone:    timezone,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		hash, err := authSvc.HashPassword(input.Body.OwnerPassword)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to hash password", err)
		}

		owner := &domain.User{
			ID:           uuid.New(),
			RestaurantID: rest.ID,
			Email:        input.Body.OwnerEmail,
			PasswordHash: hash,
			Name:         input.Body.OwnerName,
			Role:         domain.RoleOwner,
			Status:       domain.UserStatusActive,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		settings := &domain.RestaurantSettings{
			RestaurantID:        rest.ID,
			Currency:            "USD",
			OrderingEnabled:     true,
			ReservationsEnabled: true,
			UpdatedAt:           now,
		}

		// One transaction: a failed onboarding leaves no restaurant behind,
		// so the slug stays free for a retry.
		if err := store.Bootstrap(ctx, rest, owner, settings); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return nil, huma.Error409Conflict("slug, domain, or owner email already in use")
			}
			return nil, huma.Error500InternalServerError("failed to create restaurant", err)
		}

		out := &CreateRestaurantOutput{}
		out.Body.Restaurant = rest
		out.Body.Owner = owner

		if dns != nil {
			name, err := dns.CreateSubdomain(ctx, rest.Slug)
			if err != nil {
				log.Warn().Err(err).Str("slug", rest.Slug).Msg("platform: subdomain record creation failed")
			} else {
				out.Body.Subdomain = name
			}
		}

		if mail != nil {
			msg := mailer.Message{
				To:      owner.Email,
				Subject: fmt.Sprintf("Welcome to Tably, %s", rest.Name),
				TextBody: fmt.Sprintf(
					"Hi %s,\n\nYour restaurant %q is live. Sign in with this email address to set up your menu.\n",
					owner.Name, rest.Name),
				Tag: "welcome",
			}
			if err := mail.Send(ctx, msg); err != nil {
				log.Warn().Err(err).Str("to", owner.Email).Msg("platform: welcome email failed")
			}
		}

		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "deactivate-restaurant",
		Method:      http.MethodDelete,
		Path:        "/platform/restaurants/{id}",
		Summary:     "Deactivate a restaurant",
		Tags:        []string{"Platform"},
	}, func(ctx context.Context, input *DeactivateRestaurantInput) (*struct{}, error) {
		if err := store.Restaurants().Deactivate(ctx, input.ID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("restaurant not found")
			}
			return nil, huma.Error500InternalServerError("failed to deactivate restaurant", err)
		}

		return nil, nil
	})
}

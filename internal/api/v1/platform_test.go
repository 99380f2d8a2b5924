package v1_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/tably/tably/internal/api/v1"
	"github.com/tably/tably/internal/domain"
)

// ---------------------------------------------------------------------------
// POST /platform/restaurants
// ---------------------------------------------------------------------------

func TestCreateRestaurant(t *testing.T) {
	t.Parallel()

	onboardBody := func() map[string]any {
		return map[string]any{
			"slug":           "trattoria",
			"name":           "Trattoria Da Mario",
			"owner_email":    "mario@example.com",
			"owner_password": "long-enough-pass",
			"owner_name":     "Mario",
		}
	}

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		var createdRest *domain.Restaurant
		var createdOwner *domain.User
		var savedSettings *domain.RestaurantSettings

		_, api := humatest.New(t)
		store := &mockDataStore{
			bootstrapFunc: func(_ context.Context, rest *domain.Restaurant, owner *domain.User, settings *domain.RestaurantSettings) error {
				createdRest = rest
				createdOwner = owner
				savedSettings = settings
				return nil
			},
		}
		dns := &mockDNSProvider{
			createFunc: func(_ context.Context, slug string) (string, error) {
				assert.Equal(t, "trattoria", slug)
				return "trattoria.tably.app", nil
			},
		}
		mail := &mockMailer{}
		v1.RegisterPlatformRoutes(api, store, &mockAuthService{}, dns, mail)

		resp := api.PostCtx(context.Background(), "/platform/restaurants", onboardBody())

		require.Equal(t, http.StatusOK, resp.Code)

		require.NotNil(t, createdRest)
		assert.Equal(t, "trattoria", createdRest.Slug)
		assert.True(t, createdRest.IsActive)
		assert.Equal(t, "UTC", createdRest.Timezone)

		require.NotNil(t, createdOwner)
		assert.Equal(t, createdRest.ID, createdOwner.RestaurantID)
		assert.Equal(t, domain.RoleOwner, createdOwner.Role)
		assert.Equal(t, domain.UserStatusActive, createdOwner.Status)
		assert.Equal(t, "hashed:long-enough-pass", createdOwner.PasswordHash)

		require.NotNil(t, savedSettings)
		assert.Equal(t, createdRest.ID, savedSettings.RestaurantID)
		assert.True(t, savedSettings.OrderingEnabled)
		assert.True(t, savedSettings.ReservationsEnabled)

		require.Len(t, mail.sent, 1)
		assert.Equal(t, "mario@example.com", mail.sent[0].To)
		assert.Equal(t, "welcome", mail.sent[0].Tag)

		var out struct {
			Subdomain string `json:"subdomain"`
		}
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
		assert.Equal(t, "trattoria.tably.app", out.Subdomain)
	})

	t.Run("slug_or_email_conflict", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		store := &mockDataStore{
			bootstrapFunc: func(_ context.Context, _ *domain.Restaurant, _ *domain.User, _ *domain.RestaurantSettings) error {
				return domain.ErrConflict
			},
		}
		v1.RegisterPlatformRoutes(api, store, &mockAuthService{}, nil, nil)

		resp := api.PostCtx(context.Background(), "/platform/restaurants", onboardBody())

		assert.Equal(t, http.StatusConflict, resp.Code)
	})

	t.Run("bootstrap_failure_skips_side_effects", func(t *testing.T) {
		t.Parallel()

		var dnsCalled bool
		_, api := humatest.New(t)
		store := &mockDataStore{
			bootstrapFunc: func(_ context.Context, _ *domain.Restaurant, _ *domain.User, _ *domain.RestaurantSettings) error {
				return errors.New("pq: connection reset")
			},
		}
		dns := &mockDNSProvider{
			createFunc: func(_ context.Context, _ string) (string, error) {
				dnsCalled = true
				return "trattoria.tably.app", nil
			},
		}
		mail := &mockMailer{}
		v1.RegisterPlatformRoutes(api, store, &mockAuthService{}, dns, mail)

		resp := api.PostCtx(context.Background(), "/platform/restaurants", onboardBody())

		assert.Equal(t, http.StatusInternalServerError, resp.Code)
		assert.False(t, dnsCalled)
		assert.Empty(t, mail.sent)
	})

	t.Run("invalid_slug_rejected", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		store := &mockDataStore{}
		v1.RegisterPlatformRoutes(api, store, &mockAuthService{}, nil, nil)

		body := onboardBody()
		body["slug"] = "Not A Slug!"
		resp := api.PostCtx(context.Background(), "/platform/restaurants", body)

		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	})

	t.Run("dns_failure_is_not_fatal", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		store := &mockDataStore{
			bootstrapFunc: func(_ context.Context, _ *domain.Restaurant, _ *domain.User, _ *domain.RestaurantSettings) error {
				return nil
			},
		}
		dns := &mockDNSProvider{
			createFunc: func(_ context.Context, _ string) (string, error) {
				return "", errors.New("cloudflare: zone not found")
			},
		}
		v1.RegisterPlatformRoutes(api, store, &mockAuthService{}, dns, nil)

		resp := api.PostCtx(context.Background(), "/platform/restaurants", onboardBody())

		require.Equal(t, http.StatusOK, resp.Code)

		var out struct {
			Subdomain string `json:"subdomain"`
		}
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
		assert.Empty(t, out.Subdomain)
	})

	t.Run("mail_failure_is_not_fatal", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		store := &mockDataStore{
			bootstrapFunc: func(_ context.Context, _ *domain.Restaurant, _ *domain.User, _ *domain.RestaurantSettings) error {
				return nil
			},
		}
		mail := &mockMailer{err: errors.New("postmark: inactive server")}
		v1.RegisterPlatformRoutes(api, store, &mockAuthService{}, nil, mail)

		resp := api.PostCtx(context.Background(), "/platform/restaurants", onboardBody())

		assert.Equal(t, http.StatusOK, resp.Code)
	})
}

// ---------------------------------------------------------------------------
// DELETE /platform/restaurants/{id}
// ---------------------------------------------------------------------------

func TestDeactivateRestaurant(t *testing.T) {
	t.Parallel()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		restID := uuid.New()

		var deactivated bool
		_, api := humatest.New(t)
		store := &mockDataStore{
			restaurants: &mockRestaurantRepo{
				deactivateFunc: func(_ context.Context, id uuid.UUID) error {
					assert.Equal(t, restID, id)
					deactivated = true
					return nil
				},
			},
		}
		v1.RegisterPlatformRoutes(api, store, &mockAuthService{}, nil, nil)

		resp := api.DeleteCtx(context.Background(), "/platform/restaurants/"+restID.String())

		require.Equal(t, http.StatusNoContent, resp.Code)
		assert.True(t, deactivated)
	})

	t.Run("not_found", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		store := &mockDataStore{
			restaurants: &mockRestaurantRepo{
				deactivateFunc: func(_ context.Context, _ uuid.UUID) error {
					return domain.ErrNotFound
				},
			},
		}
		v1.RegisterPlatformRoutes(api, store, &mockAuthService{}, nil, nil)

		resp := api.DeleteCtx(context.Background(), "/platform/restaurants/"+uuid.New().String())

		assert.Equal(t, http.StatusNotFound, resp.Code)
	})
}

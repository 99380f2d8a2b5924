package v1_test

import (
	"context"
	"encoding/json"
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
// POST /users
// ---------------------------------------------------------------------------

func TestCreateUser(t *testing.T) {
	t.Parallel()

	t.Run("happy_path_hashes_password", func(t *testing.T) {
		t.Parallel()

		rest := &domain.Restaurant{ID: uuid.New(), Slug: "demo", IsActive: true}

		var created *domain.User
		_, api := humatest.New(t)
		store := &mockDataStore{
			users: &mockUserRepo{
				createFunc: func(_ context.Context, u *domain.User) error {
					created = u
					return nil
				},
			},
		}
		v1.RegisterUserRoutes(api, store, &mockAuthService{})

		resp := api.PostCtx(staffCtx(rest, uuid.New(), domain.RoleOwner), "/users", map[string]any{
			"email":    "waiter@demo.test",
			"password": "long-enough-pass",
			"name":     "Sam",
			"role":     domain.RoleStaff,
		})

		require.Equal(t, http.StatusOK, resp.Code)
		require.NotNil(t, created)
		assert.Equal(t, rest.ID, created.RestaurantID)
		assert.Equal(t, "hashed:long-enough-pass", created.PasswordHash)
		assert.Equal(t, domain.RoleStaff, created.Role)
		assert.Equal(t, domain.UserStatusActive, created.Status)
		assert.NotContains(t, resp.Body.String(), "hashed:")
	})

	t.Run("email_conflict", func(t *testing.T) {
		t.Parallel()

		rest := &domain.Restaurant{ID: uuid.New(), Slug: "demo", IsActive: true}

		_, api := humatest.New(t)
		store := &mockDataStore{
			users: &mockUserRepo{
				createFunc: func(_ context.Context, _ *domain.User) error {
					return domain.ErrConflict
				},
			},
		}
		v1.RegisterUserRoutes(api, store, &mockAuthService{})

		resp := api.PostCtx(staffCtx(rest, uuid.New(), domain.RoleOwner), "/users", map[string]any{
			"email":    "waiter@demo.test",
			"password": "long-enough-pass",
			"name":     "Sam",
			"role":     domain.RoleStaff,
		})

		assert.Equal(t, http.StatusConflict, resp.Code)
	})

	t.Run("unknown_role_rejected", func(t *testing.T) {
		t.Parallel()

		rest := &domain.Restaurant{ID: uuid.New(), Slug: "demo", IsActive: true}

		var storeCalled bool
		_, api := humatest.New(t)
		store := &mockDataStore{
			users: &mockUserRepo{
				createFunc: func(_ context.Context, _ *domain.User) error {
					storeCalled = true
					return nil
				},
			},
		}
		v1.RegisterUserRoutes(api, store, &mockAuthService{})

		resp := api.PostCtx(staffCtx(rest, uuid.New(), domain.RoleOwner), "/users", map[string]any{
			"email":    "waiter@demo.test",
			"password": "long-enough-pass",
			"name":     "Sam",
			"role":     "sommelier",
		})

		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
		assert.False(t, storeCalled)
	})
}

// ---------------------------------------------------------------------------
// GET /users, GET /users/{id}
// ---------------------------------------------------------------------------

func TestListUsers(t *testing.T) {
	t.Parallel()

	rest := &domain.Restaurant{ID: uuid.New(), Slug: "demo", IsActive: true}

	_, api := humatest.New(t)
	store := &mockDataStore{
		users: &mockUserRepo{
			listFunc: func(_ context.Context, restaurantID uuid.UUID) ([]*domain.User, error) {
				assert.Equal(t, rest.ID, restaurantID)
				return []*domain.User{
					{ID: uuid.New(), RestaurantID: restaurantID, Email: "a@demo.test", Role: domain.RoleOwner},
					{ID: uuid.New(), RestaurantID: restaurantID, Email: "b@demo.test", Role: domain.RoleStaff},
				}, nil
			},
		},
	}
	v1.RegisterUserRoutes(api, store, &mockAuthService{})

	resp := api.GetCtx(staffCtx(rest, uuid.New(), domain.RoleOwner), "/users")

	require.Equal(t, http.StatusOK, resp.Code)

	var got []struct {
		Email string `json:"Email"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "a@demo.test", got[0].Email)
}

func TestGetUser(t *testing.T) {
	t.Parallel()

	rest := &domain.Restaurant{ID: uuid.New(), Slug: "demo", IsActive: true}

	_, api := humatest.New(t)
	store := &mockDataStore{
		users: &mockUserRepo{
			getByIDFunc: func(_ context.Context, restaurantID, _ uuid.UUID) (*domain.User, error) {
				assert.Equal(t, rest.ID, restaurantID)
				return nil, domain.ErrNotFound
			},
		},
	}
	v1.RegisterUserRoutes(api, store, &mockAuthService{})

	resp := api.GetCtx(staffCtx(rest, uuid.New(), domain.RoleOwner), "/users/"+uuid.New().String())

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

// ---------------------------------------------------------------------------
// PUT /users/{id}
// ---------------------------------------------------------------------------

func TestUpdateUser(t *testing.T) {
	t.Parallel()

	t.Run("partial_update_preserves_fields", func(t *testing.T) {
		t.Parallel()

		rest := &domain.Restaurant{ID: uuid.New(), Slug: "demo", IsActive: true}
		userID := uuid.New()

		var updated *domain.User
		_, api := humatest.New(t)
		store := &mockDataStore{
			users: &mockUserRepo{
				getByIDFunc: func(_ context.Context, _, id uuid.UUID) (*domain.User, error) {
					return &domain.User{
						ID:           id,
						RestaurantID: rest.ID,
						Email:        "waiter@demo.test",
						Name:         "Sam",
						Phone:        "+1-555-0100",
						Role:         domain.RoleStaff,
						Status:       domain.UserStatusActive,
					}, nil
				},
				updateFunc: func(_ context.Context, u *domain.User) error {
					updated = u
					return nil
				},
			},
		}
		v1.RegisterUserRoutes(api, store, &mockAuthService{})

		resp := api.PutCtx(staffCtx(rest, uuid.New(), domain.RoleOwner), "/users/"+userID.String(), map[string]any{
			"role": domain.RoleManager,
		})

		require.Equal(t, http.StatusOK, resp.Code)
		require.NotNil(t, updated)
		assert.Equal(t, domain.RoleManager, updated.Role)
		assert.Equal(t, "Sam", updated.Name)
		assert.Equal(t, "+1-555-0100", updated.Phone)
		assert.Equal(t, domain.UserStatusActive, updated.Status)
	})

	t.Run("disable_account", func(t *testing.T) {
		t.Parallel()

		rest := &domain.Restaurant{ID: uuid.New(), Slug: "demo", IsActive: true}

		var updated *domain.User
		_, api := humatest.New(t)
		store := &mockDataStore{
			users: &mockUserRepo{
				getByIDFunc: func(_ context.Context, _, id uuid.UUID) (*domain.User, error) {
					return &domain.User{ID: id, RestaurantID: rest.ID, Status: domain.UserStatusActive, Role: domain.RoleStaff}, nil
				},
				updateFunc: func(_ context.Context, u *domain.User) error {
					updated = u
					return nil
				},
			},
		}
		v1.RegisterUserRoutes(api, store, &mockAuthService{})

		resp := api.PutCtx(staffCtx(rest, uuid.New(), domain.RoleOwner), "/users/"+uuid.New().String(), map[string]any{
			"status": domain.UserStatusDisabled,
		})

		require.Equal(t, http.StatusOK, resp.Code)
		require.NotNil(t, updated)
		assert.Equal(t, domain.UserStatusDisabled, updated.Status)
	})
}

// ---------------------------------------------------------------------------
// DELETE /users/{id}
// ---------------------------------------------------------------------------

func TestDeleteUser(t *testing.T) {
	t.Parallel()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		rest := &domain.Restaurant{ID: uuid.New(), Slug: "demo", IsActive: true}
		targetID := uuid.New()

		var deleted bool
		_, api := humatest.New(t)
		store := &mockDataStore{
			users: &mockUserRepo{
				deleteFunc: func(_ context.Context, restaurantID, id uuid.UUID) error {
					assert.Equal(t, rest.ID, restaurantID)
					assert.Equal(t, targetID, id)
					deleted = true
					return nil
				},
			},
		}
		v1.RegisterUserRoutes(api, store, &mockAuthService{})

		resp := api.DeleteCtx(staffCtx(rest, uuid.New(), domain.RoleOwner), "/users/"+targetID.String())

		require.Equal(t, http.StatusNoContent, resp.Code)
		assert.True(t, deleted)
	})

	t.Run("cannot_delete_own_account", func(t *testing.T) {
		t.Parallel()

		rest := &domain.Restaurant{ID: uuid.New(), Slug: "demo", IsActive: true}
		callerID := uuid.New()

		var storeCalled bool
		_, api := humatest.New(t)
		store := &mockDataStore{
			users: &mockUserRepo{
				deleteFunc: func(_ context.Context, _, _ uuid.UUID) error {
					storeCalled = true
					return nil
				},
			},
		}
		v1.RegisterUserRoutes(api, store, &mockAuthService{})

		resp := api.DeleteCtx(staffCtx(rest, callerID, domain.RoleOwner), "/users/"+callerID.String())

		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
		assert.False(t, storeCalled)
	})
}

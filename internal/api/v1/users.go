package v1

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/tably/tably/internal/domain"
	"github.com/tably/tably/internal/server/middleware"
	"github.com/tably/tably/internal/tenant"
)

type CreateUserInput struct {
	Body struct {
		Email    string `json:"email" minLength:"3" maxLength:"255" doc:"User email"`
		Password string `json:"password" minLength:"8" maxLength:"128" doc:"Initial password"` //nolint:gosec // G117: account creation DTO
		Name     string `json:"name" minLength:"1" maxLength:"255" doc:"Display name"`
		Phone    string `json:"phone,omitempty" maxLength:"32" doc:"Phone number"`
		Role     string `json:"role" enum:"customer,staff,manager,owner,admin" doc:"Account role"`
	}
}

type UserOutput struct {
	Body *domain.User
}

type ListUsersOutput struct {
	Body []*domain.User
}

type GetUserInput struct {
	ID uuid.UUID `path:"id" doc:"User ID"`
}

type UpdateUserInput struct {
	ID   uuid.UUID `path:"id" doc:"User ID"`
	Body struct {
		Name   *string `json:"name,omitempty" minLength:"1" maxLength:"255" doc:"Display name"`
		Phone  *string `json:"phone,omitempty" maxLength:"32" doc:"Phone number"`
		Role   *string `json:"role,omitempty" enum:"customer,staff,manager,owner,admin" doc:"Account role"`
		Status *string `json:"status,omitempty" enum:"active,disabled" doc:"Account status"`
	}
}

type DeleteUserInput struct {
	ID uuid.UUID `path:"id" doc:"User ID"`
}

// RegisterUserRoutes registers the staff account management endpoints. All
// operations act on the resolved restaurant's own account pool.
func RegisterUserRoutes(api huma.API, store DataStore, authSvc AuthService) {
	huma.Register(api, huma.Operation{
		OperationID: "list-users",
		Method:      http.MethodGet,
		Path:        "/users",
		Summary:     "List restaurant accounts",
		Tags:        []string{"Users"},
	}, func(ctx context.Context, _ *struct{}) (*ListUsersOutput, error) {
		restaurantID, ok := tenant.IDFromContext(ctx)
		if !ok {
			return nil, huma.Error400BadRequest("restaurant context missing")
		}

		users, err := store.Users().List(ctx, restaurantID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list users", err)
		}

		return &ListUsersOutput{Body: users}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "create-user",
		Method:      http.MethodPost,
		Path:        "/users",
		Summary:     "Create a restaurant account",
		Tags:        []string{"Users"},
	}, func(ctx context.Context, input *CreateUserInput) (*UserOutput, error) {
		restaurantID, ok := tenant.IDFromContext(ctx)
		if !ok {
			return nil, huma.Error400BadRequest("restaurant context missing")
		}

		hash, err := authSvc.HashPassword(input.Body.Password)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to hash password", err)
		}

		now := time.Now()
		user := &domain.User{
			ID:           uuid.New(),
			RestaurantID: restaurantID,
			Email:        input.Body.Email,
			PasswordHash: hash,
			Name:         input.Body.Name,
			Phone:        input.Body.Phone,
			Role:         input.Body.Role,
			Status:       domain.UserStatusActive,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if err := store.Users().Create(ctx, user); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return nil, huma.Error409Conflict("email already in use")
			}
			return nil, huma.Error500InternalServerError("failed to create user", err)
		}

		return &UserOutput{Body: user}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-user",
		Method:      http.MethodGet,
		Path:        "/users/{id}",
		Summary:     "Get a restaurant account",
		Tags:        []string{"Users"},
	}, func(ctx context.Context, input *GetUserInput) (*UserOutput, error) {
		restaurantID, ok := tenant.IDFromContext(ctx)
		if !ok {
			return nil, huma.Error400BadRequest("restaurant context missing")
		}

		user, err := store.Users().GetByID(ctx, restaurantID, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("user not found")
			}
			return nil, huma.Error500InternalServerError("failed to load user", err)
		}

		return &UserOutput{Body: user}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-user",
		Method:      http.MethodPut,
		Path:        "/users/{id}",
		Summary:     "Update a restaurant account",
		Tags:        []string{"Users"},
	}, func(ctx context.Context, input *UpdateUserInput) (*UserOutput, error) {
		restaurantID, ok := tenant.IDFromContext(ctx)
		if !ok {
			return nil, huma.Error400BadRequest("restaurant context missing")
		}

		user, err := store.Users().GetByID(ctx, restaurantID, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("user not found")
			}
			return nil, huma.Error500InternalServerError("failed to load user", err)
		}

		if input.Body.Name != nil {
			user.Name = *input.Body.Name
		}
		if input.Body.Phone != nil {
			user.Phone = *input.Body.Phone
		}
		if input.Body.Role != nil {
			user.Role = *input.Body.Role
		}
		if input.Body.Status != nil {
			user.Status = *input.Body.Status
		}
		user.UpdatedAt = time.Now()

		if err := store.Users().Update(ctx, user); err != nil {
			return nil, huma.Error500InternalServerError("failed to update user", err)
		}

		return &UserOutput{Body: user}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-user",
		Method:      http.MethodDelete,
		Path:        "/users/{id}",
		Summary:     "Delete a restaurant account",
		Tags:        []string{"Users"},
	}, func(ctx context.Context, input *DeleteUserInput) (*struct{}, error) {
		restaurantID, ok := tenant.IDFromContext(ctx)
		if !ok {
			return nil, huma.Error400BadRequest("restaurant context missing")
		}

		if callerID, ok := middleware.UserIDFromContext(ctx); ok && callerID == input.ID {
			return nil, huma.Error422UnprocessableEntity("cannot delete your own account")
		}

		if err := store.Users().Delete(ctx, restaurantID, input.ID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("user not found")
			}
			return nil, huma.Error500InternalServerError("failed to delete user", err)
		}

		return nil, nil
	})
}

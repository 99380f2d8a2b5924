package v1

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/tably/tably/internal/domain"
	"github.com/tably/tably/internal/tenant"
)

type CreateFeedbackInput struct {
	Body struct {
		OrderID     *uuid.UUID `json:"order_id,omitempty" doc:"Optional order this feedback refers to"`
		Rating      int        `json:"rating" minimum:"1" maximum:"5" doc:"Rating 1-5"`
		Comment     string     `json:"comment,omitempty" maxLength:"4000" doc:"Free-form comment"`
		AuthorName  string     `json:"author_name,omitempty" maxLength:"255" doc:"Author name"`
		AuthorEmail string     `json:"author_email,omitempty" maxLength:"255" doc:"Author email"`
	}
}

type FeedbackOutput struct {
	Body *domain.Feedback
}

type ListFeedbackInput struct {
	Limit  int `query:"limit" minimum:"1" maximum:"200" default:"50" doc:"Page size"`
	Offset int `query:"offset" minimum:"0" default:"0" doc:"Page offset"`
}

type ListFeedbackOutput struct {
	Body []*domain.Feedback
}

type DeleteFeedbackInput struct {
	ID uuid.UUID `path:"id" doc:"Feedback ID"`
}

// RegisterPublicFeedbackRoutes registers the unauthenticated feedback
// submission endpoint. When an order id is supplied it must belong to the
// resolved restaurant.
func RegisterPublicFeedbackRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "create-feedback",
		Method:      http.MethodPost,
		Path:        "/public/feedback",
		Summary:     "Submit feedback",
		Tags:        []string{"Public"},
	}, func(ctx context.Context, input *CreateFeedbackInput) (*FeedbackOutput, error) {
		restaurantID, ok := tenant.IDFromContext(ctx)
		if !ok {
			return nil, huma.Error400BadRequest("restaurant context missing")
		}

		if input.Body.OrderID != nil {
			if _, err := store.Orders().GetByID(ctx, restaurantID, *input.Body.OrderID); err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return nil, huma.Error404NotFound("order not found")
				}
				return nil, huma.Error500InternalServerError("failed to validate order", err)
			}
		}

		f := &domain.Feedback{
			ID:           uuid.New(),
			RestaurantID: restaurantID,
			OrderID:      input.Body.OrderID,
			Rating:       input.Body.Rating,
			Comment:      input.Body.Comment,
			AuthorName:   input.Body.AuthorName,
			AuthorEmail:  input.Body.AuthorEmail,
			CreatedAt:    time.Now(),
		}

		if err := store.Feedback().Create(ctx, f); err != nil {
			return nil, huma.Error500InternalServerError("failed to create feedback", err)
		}

		return &FeedbackOutput{Body: f}, nil
	})
}

// RegisterFeedbackRoutes registers the staff feedback endpoints.
func RegisterFeedbackRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "list-feedback",
		Method:      http.MethodGet,
		Path:        "/feedback",
		Summary:     "List feedback, newest first",
		Tags:        []string{"Feedback"},
	}, func(ctx context.Context, input *ListFeedbackInput) (*ListFeedbackOutput, error) {
		restaurantID, ok := tenant.IDFromContext(ctx)
		if !ok {
			return nil, huma.Error400BadRequest("restaurant context missing")
		}

		entries, err := store.Feedback().List(ctx, restaurantID, input.Limit, input.Offset)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list feedback", err)
		}

		return &ListFeedbackOutput{Body: entries}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-feedback",
		Method:      http.MethodDelete,
		Path:        "/feedback/{id}",
		Summary:     "Delete a feedback entry",
		Tags:        []string{"Feedback"},
	}, func(ctx context.Context, input *DeleteFeedbackInput) (*struct{}, error) {
		restaurantID, ok := tenant.IDFromContext(ctx)
		if !ok {
			return nil, huma.Error400BadRequest("restaurant context missing")
		}

		if err := store.Feedback().Delete(ctx, restaurantID, input.ID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("feedback not found")
			}
			return nil, huma.Error500InternalServerError("failed to delete feedback", err)
		}

		return nil, nil
	})
}

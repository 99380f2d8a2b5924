package v1

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/tably/tably/internal/domain"
	"github.com/tably/tably/internal/server/middleware"
	redisstore "github.com/tably/tably/internal/store/redis"
	"github.com/tably/tably/internal/tenant"
)

type CreateReservationInput struct {
	Body struct {
		Name       string    `json:"name" minLength:"1" maxLength:"255" doc:"Guest name"`
		Phone      string    `json:"phone,omitempty" maxLength:"32" doc:"Contact phone"`
		Email      string    `json:"email,omitempty" maxLength:"255" doc:"Contact email"`
		PartySize  int       `json:"party_size" minimum:"1" maximum:"100" doc:"Party size"`
		ReservedAt time.Time `json:"reserved_at" doc:"Requested time"`
		Notes      string    `json:"notes,omitempty" maxLength:"2000" doc:"Notes"`
	}
}

type ReservationOutput struct {
	Body *domain.Reservation
}

type ListReservationsInput struct {
	Limit  int `query:"limit" minimum:"1" maximum:"200" default:"50" doc:"Page size"`
	Offset int `query:"offset" minimum:"0" default:"0" doc:"Page offset"`
}

type ListReservationsOutput struct {
	Body []*domain.Reservation
}

type UpdateReservationStatusInput struct {
	ID   uuid.UUID `path:"id" doc:"Reservation ID"`
	Body struct {
		Status string `json:"status" minLength:"1" doc:"Target status"`
	}
}

type DeleteReservationInput struct {
	ID uuid.UUID `path:"id" doc:"Reservation ID"`
}

// ReservationEvent is the payload published to the reservations channel.
type ReservationEvent struct {
	Type        string              `json:"type"`
	Reservation *domain.Reservation `json:"reservation"`
}

const (
	eventReservationCreated       = "reservation.created"
	eventReservationStatusChanged = "reservation.status_changed"
)

func publishReservationEvent(pub Publisher, eventType string, res *domain.Reservation) {
	if pub == nil {
		return
	}

	payload, err := json.Marshal(ReservationEvent{Type: eventType, Reservation: res})
	if err != nil {
		log.Error().Err(err).Msg("reservations: marshal event")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := pub.Publish(ctx, redisstore.ReservationsChannel(res.RestaurantID), payload); err != nil {
		log.Warn().Err(err).Str("reservation_id", res.ID.String()).Msg("reservations: publish event")
	}
}

func createReservation(ctx context.Context, store DataStore, pub Publisher, input *CreateReservationInput, userID *uuid.UUID) (*ReservationOutput, error) {
	restaurantID, ok := tenant.IDFromContext(ctx)
	if !ok {
		return nil, huma.Error400BadRequest("restaurant context missing")
	}

	settings, err := store.Settings().Get(ctx, restaurantID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, huma.Error500InternalServerError("failed to load settings", err)
	}
	if settings != nil && !settings.ReservationsEnabled {
		return nil, huma.Error403Forbidden("reservations are disabled for this restaurant")
	}

	now := time.Now()
	res := &domain.Reservation{
		ID:           uuid.New(),
		RestaurantID: restaurantID,
		UserID:       userID,
		Name:         input.Body.Name,
		Phone:        input.Body.Phone,
		Email:        input.Body.Email,
		PartySize:    input.Body.PartySize,
		ReservedAt:   input.Body.ReservedAt,
		Status:       domain.ReservationStatusPending,
		Notes:        input.Body.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := store.Reservations().Create(ctx, res); err != nil {
		return nil, huma.Error500InternalServerError("failed to create reservation", err)
	}

	publishReservationEvent(pub, eventReservationCreated, res)

	return &ReservationOutput{Body: res}, nil
}

// RegisterPublicReservationRoutes registers the unauthenticated reservation
// request endpoint.
func RegisterPublicReservationRoutes(api huma.API, store DataStore, pub Publisher) {
	huma.Register(api, huma.Operation{
		OperationID: "create-public-reservation",
		Method:      http.MethodPost,
		Path:        "/public/reservations",
		Summary:     "Request a reservation as a guest",
		Tags:        []string{"Public"},
	}, func(ctx context.Context, input *CreateReservationInput) (*ReservationOutput, error) {
		return createReservation(ctx, store, pub, input, nil)
	})
}

// RegisterReservationRoutes registers the customer-facing reservation
// endpoint.
func RegisterReservationRoutes(api huma.API, store DataStore, pub Publisher) {
	huma.Register(api, huma.Operation{
		OperationID: "create-reservation",
		Method:      http.MethodPost,
		Path:        "/reservations",
		Summary:     "Request a reservation as an authenticated customer",
		Tags:        []string{"Reservations"},
	}, func(ctx context.Context, input *CreateReservationInput) (*ReservationOutput, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("authentication required")
		}
		return createReservation(ctx, store, pub, input, &userID)
	})
}

// RegisterReservationManagementRoutes registers the staff reservation book
// endpoints.
func RegisterReservationManagementRoutes(api huma.API, store DataStore, pub Publisher) {
	huma.Register(api, huma.Operation{
		OperationID: "list-reservations",
		Method:      http.MethodGet,
		Path:        "/reservations",
		Summary:     "List reservations, soonest first",
		Tags:        []string{"Reservations"},
	}, func(ctx context.Context, input *ListReservationsInput) (*ListReservationsOutput, error) {
		restaurantID, ok := tenant.IDFromContext(ctx)
		if !ok {
			return nil, huma.Error400BadRequest("restaurant context missing")
		}

		reservations, err := store.Reservations().List(ctx, restaurantID, input.Limit, input.Offset)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list reservations", err)
		}

		return &ListReservationsOutput{Body: reservations}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-reservation-status",
		Method:      http.MethodPatch,
		Path:        "/reservations/{id}/status",
		Summary:     "Update a reservation's status",
		Tags:        []string{"Reservations"},
	}, func(ctx context.Context, input *UpdateReservationStatusInput) (*ReservationOutput, error) {
		restaurantID, ok := tenant.IDFromContext(ctx)
		if !ok {
			return nil, huma.Error400BadRequest("restaurant context missing")
		}

		status, ok := domain.NormalizeReservationStatus(input.Body.Status)
		if !ok {
			return nil, huma.Error422UnprocessableEntity("unknown reservation status: " + input.Body.Status)
		}

		if err := store.Reservations().UpdateStatus(ctx, restaurantID, input.ID, status); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("reservation not found")
			}
			return nil, huma.Error500InternalServerError("failed to update reservation status", err)
		}

		res, err := store.Reservations().GetByID(ctx, restaurantID, input.ID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to get reservation", err)
		}

		publishReservationEvent(pub, eventReservationStatusChanged, res)

		return &ReservationOutput{Body: res}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-reservation",
		Method:      http.MethodDelete,
		Path:        "/reservations/{id}",
		Summary:     "Delete a reservation",
		Tags:        []string{"Reservations"},
	}, func(ctx context.Context, input *DeleteReservationInput) (*struct{}, error) {
		restaurantID, ok := tenant.IDFromContext(ctx)
		if !ok {
			return nil, huma.Error400BadRequest("restaurant context missing")
		}

		if err := store.Reservations().Delete(ctx, restaurantID, input.ID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("reservation not found")
			}
			return nil, huma.Error500InternalServerError("failed to delete reservation", err)
		}

		return nil, nil
	})
}

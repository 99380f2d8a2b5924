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

type OrderLineInput struct {
	MenuItemID uuid.UUID `json:"menu_item_id" doc:"Menu item ID"`
	Quantity   int       `json:"quantity" minimum:"1" maximum:"99" doc:"Quantity"`
}

type OrderRequestBody struct {
	Items         []OrderLineInput `json:"items" minItems:"1" doc:"Order lines"`
	Type          string           `json:"type,omitempty" enum:"dine_in,takeaway,delivery" doc:"Order type, defaults to takeaway"`
	CustomerName  string           `json:"customer_name,omitempty" maxLength:"255" doc:"Customer name"`
	CustomerPhone string           `json:"customer_phone,omitempty" maxLength:"32" doc:"Customer phone"`
	TableNumber   string           `json:"table_number,omitempty" maxLength:"16" doc:"Table number for dine-in"`
	Notes         string           `json:"notes,omitempty" maxLength:"2000" doc:"Order notes"`
	TipCents      int64            `json:"tip_cents,omitempty" minimum:"0" doc:"Tip in cents"`
}

type CreateGuestOrderInput struct {
	Body struct {
		OrderRequestBody
		SessionID string `json:"session_id" minLength:"1" maxLength:"128" doc:"Client-generated guest session identifier"`
	}
}

type CreateOrderInput struct {
	Body OrderRequestBody
}

type OrderOutput struct {
	Body *OrderWithItems
}

type OrderWithItems struct {
	domain.Order
	Items []*domain.OrderItem `json:"items"`
}

type ListOrdersInput struct {
	Limit  int `query:"limit" minimum:"1" maximum:"200" default:"50" doc:"Page size"`
	Offset int `query:"offset" minimum:"0" default:"0" doc:"Page offset"`
}

type ListOrdersOutput struct {
	Body []*domain.Order
}

type ListGuestOrdersInput struct {
	SessionID string `query:"session_id" required:"true" minLength:"1" doc:"Guest session identifier"`
}

type GetOrderInput struct {
	ID uuid.UUID `path:"id" doc:"Order ID"`
}

type UpdateOrderStatusInput struct {
	ID   uuid.UUID `path:"id" doc:"Order ID"`
	Body struct {
		Status string `json:"status" minLength:"1" doc:"Target status"`
	}
}

type UpdateOrderStatusOutput struct {
	Body *domain.Order
}

// OrderEvent is the payload published to the realtime channels.
type OrderEvent struct {
	Type  string        `json:"type"`
	Order *domain.Order `json:"order"`
}

const (
	eventOrderCreated       = "order.created"
	eventOrderStatusChanged = "order.status_changed"
)

// buildOrder snapshots menu item names and unit prices at order time and
// computes the persisted total server-side. Client-supplied prices are never
// trusted.
func buildOrder(ctx context.Context, store DataStore, restaurantID uuid.UUID, body *OrderRequestBody) (*domain.Order, []*domain.OrderItem, error) {
	orderType := body.Type
	if orderType == "" {
		orderType = domain.OrderTypeTakeaway
	}

	orderID := uuid.New()
	items := make([]*domain.OrderItem, 0, len(body.Items))
	for _, line := range body.Items {
		mi, err := store.MenuItems().GetByID(ctx, restaurantID, line.MenuItemID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, nil, huma.Error404NotFound("menu item not found")
			}
			return nil, nil, huma.Error500InternalServerError("failed to load menu item", err)
		}
		if !mi.IsAvailable {
			return nil, nil, huma.Error422UnprocessableEntity("menu item is not available: " + mi.Name)
		}

		items = append(items, &domain.OrderItem{
			ID:             uuid.New(),
			OrderID:        orderID,
			MenuItemID:     mi.ID,
			Name:           mi.Name,
			UnitPriceCents: mi.PriceCents,
			Quantity:       line.Quantity,
		})
	}

	now := time.Now()
	o := &domain.Order{
		ID:            orderID,
		RestaurantID:  restaurantID,
		CustomerName:  body.CustomerName,
		CustomerPhone: body.CustomerPhone,
		Type:          orderType,
		Status:        domain.OrderStatusPending,
		TableNumber:   body.TableNumber,
		Notes:         body.Notes,
		TipCents:      body.TipCents,
		TotalCents:    domain.OrderTotal(items, body.TipCents),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	return o, items, nil
}

func checkOrderingEnabled(ctx context.Context, store DataStore, restaurantID uuid.UUID) error {
	settings, err := store.Settings().Get(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// No settings row yet means defaults, and ordering defaults on.
			return nil
		}
		return huma.Error500InternalServerError("failed to load settings", err)
	}
	if !settings.OrderingEnabled {
		return huma.Error403Forbidden("online ordering is disabled for this restaurant")
	}
	return nil
}

func publishOrderEvent(pub Publisher, eventType string, o *domain.Order) {
	if pub == nil {
		return
	}

	payload, err := json.Marshal(OrderEvent{Type: eventType, Order: o})
	if err != nil {
		log.Error().Err(err).Msg("orders: marshal event")
		return
	}

	// Publishing is decoupled from the request lifetime.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := pub.Publish(ctx, redisstore.OrdersChannel(o.RestaurantID), payload); err != nil {
		log.Warn().Err(err).Str("order_id", o.ID.String()).Msg("orders: publish restaurant event")
	}
	if err := pub.Publish(ctx, redisstore.OrderChannel(o.ID), payload); err != nil {
		log.Warn().Err(err).Str("order_id", o.ID.String()).Msg("orders: publish order event")
	}
}

// RegisterPublicOrderRoutes registers guest ordering. Guests are tracked by a
// client-generated session identifier instead of a user account.
func RegisterPublicOrderRoutes(api huma.API, store DataStore, pub Publisher) {
	huma.Register(api, huma.Operation{
		OperationID: "create-guest-order",
		Method:      http.MethodPost,
		Path:        "/public/orders",
		Summary:     "Place an order as a guest",
		Tags:        []string{"Public"},
	}, func(ctx context.Context, input *CreateGuestOrderInput) (*OrderOutput, error) {
		restaurantID, ok := tenant.IDFromContext(ctx)
		if !ok {
			return nil, huma.Error400BadRequest("restaurant context missing")
		}

		if err := checkOrderingEnabled(ctx, store, restaurantID); err != nil {
			return nil, err
		}

		o, items, err := buildOrder(ctx, store, restaurantID, &input.Body.OrderRequestBody)
		if err != nil {
			return nil, err
		}
		o.SessionID = input.Body.SessionID

		if err := store.Orders().Create(ctx, o, items); err != nil {
			return nil, huma.Error500InternalServerError("failed to create order", err)
		}

		publishOrderEvent(pub, eventOrderCreated, o)

		return &OrderOutput{Body: &OrderWithItems{Order: *o, Items: items}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-guest-orders",
		Method:      http.MethodGet,
		Path:        "/public/orders",
		Summary:     "List orders for a guest session",
		Tags:        []string{"Public"},
	}, func(ctx context.Context, input *ListGuestOrdersInput) (*ListOrdersOutput, error) {
		restaurantID, ok := tenant.IDFromContext(ctx)
		if !ok {
			return nil, huma.Error400BadRequest("restaurant context missing")
		}

		orders, err := store.Orders().ListBySession(ctx, restaurantID, input.SessionID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list orders", err)
		}

		return &ListOrdersOutput{Body: orders}, nil
	})
}

// RegisterOrderRoutes registers the customer-facing order endpoint. Orders
// are tied to the authenticated account.
func RegisterOrderRoutes(api huma.API, store DataStore, pub Publisher) {
	huma.Register(api, huma.Operation{
		OperationID: "create-order",
		Method:      http.MethodPost,
		Path:        "/orders",
		Summary:     "Place an order as an authenticated customer",
		Tags:        []string{"Orders"},
	}, func(ctx context.Context, input *CreateOrderInput) (*OrderOutput, error) {
		restaurantID, ok := tenant.IDFromContext(ctx)
		if !ok {
			return nil, huma.Error400BadRequest("restaurant context missing")
		}

		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("authentication required")
		}

		if err := checkOrderingEnabled(ctx, store, restaurantID); err != nil {
			return nil, err
		}

		o, items, err := buildOrder(ctx, store, restaurantID, &input.Body)
		if err != nil {
			return nil, err
		}
		o.UserID = &userID

		if err := store.Orders().Create(ctx, o, items); err != nil {
			return nil, huma.Error500InternalServerError("failed to create order", err)
		}

		publishOrderEvent(pub, eventOrderCreated, o)

		return &OrderOutput{Body: &OrderWithItems{Order: *o, Items: items}}, nil
	})
}

// RegisterOrderManagementRoutes registers the staff order queue endpoints.
func RegisterOrderManagementRoutes(api huma.API, store DataStore, pub Publisher) {
	huma.Register(api, huma.Operation{
		OperationID: "list-orders",
		Method:      http.MethodGet,
		Path:        "/orders",
		Summary:     "List orders, newest first",
		Tags:        []string{"Orders"},
	}, func(ctx context.Context, input *ListOrdersInput) (*ListOrdersOutput, error) {
		restaurantID, ok := tenant.IDFromContext(ctx)
		if !ok {
			return nil, huma.Error400BadRequest("restaurant context missing")
		}

		orders, err := store.Orders().List(ctx, restaurantID, input.Limit, input.Offset)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list orders", err)
		}

		return &ListOrdersOutput{Body: orders}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-active-orders",
		Method:      http.MethodGet,
		Path:        "/orders/active",
		Summary:     "List orders not yet delivered or cancelled",
		Tags:        []string{"Orders"},
	}, func(ctx context.Context, _ *struct{}) (*ListOrdersOutput, error) {
		restaurantID, ok := tenant.IDFromContext(ctx)
		if !ok {
			return nil, huma.Error400BadRequest("restaurant context missing")
		}

		orders, err := store.Orders().ListActive(ctx, restaurantID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list active orders", err)
		}

		return &ListOrdersOutput{Body: orders}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-order",
		Method:      http.MethodGet,
		Path:        "/orders/{id}",
		Summary:     "Get an order with its items",
		Tags:        []string{"Orders"},
	}, func(ctx context.Context, input *GetOrderInput) (*OrderOutput, error) {
		restaurantID, ok := tenant.IDFromContext(ctx)
		if !ok {
			return nil, huma.Error400BadRequest("restaurant context missing")
		}

		o, err := store.Orders().GetByID(ctx, restaurantID, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("order not found")
			}
			return nil, huma.Error500InternalServerError("failed to get order", err)
		}

		items, err := store.Orders().GetItems(ctx, restaurantID, input.ID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to get order items", err)
		}

		return &OrderOutput{Body: &OrderWithItems{Order: *o, Items: items}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-order-status",
		Method:      http.MethodPatch,
		Path:        "/orders/{id}/status",
		Summary:     "Update an order's status",
		Tags:        []string{"Orders"},
	}, func(ctx context.Context, input *UpdateOrderStatusInput) (*UpdateOrderStatusOutput, error) {
		restaurantID, ok := tenant.IDFromContext(ctx)
		if !ok {
			return nil, huma.Error400BadRequest("restaurant context missing")
		}

		status, ok := domain.NormalizeOrderStatus(input.Body.Status)
		if !ok {
			return nil, huma.Error422UnprocessableEntity("unknown order status: " + input.Body.Status)
		}

		if err := store.Orders().UpdateStatus(ctx, restaurantID, input.ID, status); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("order not found")
			}
			return nil, huma.Error500InternalServerError("failed to update order status", err)
		}

		o, err := store.Orders().GetByID(ctx, restaurantID, input.ID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to get order", err)
		}

		publishOrderEvent(pub, eventOrderStatusChanged, o)

		return &UpdateOrderStatusOutput{Body: o}, nil
	})
}

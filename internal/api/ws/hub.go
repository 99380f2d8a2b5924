package ws

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tably/tably/internal/domain"
	redisstore "github.com/tably/tably/internal/store/redis"
	"github.com/tably/tably/internal/tenant"
)

// Hub manages WebSocket connections backed by Redis pub/sub.
type Hub struct {
	pubsub *redisstore.PubSub
	orders domain.OrderRepository
}

// NewHub creates a new WebSocket hub. The order repository is used to verify
// that single-order streams stay within the resolved restaurant.
func NewHub(pubsub *redisstore.PubSub, orders domain.OrderRepository) *Hub {
	return &Hub{pubsub: pubsub, orders: orders}
}

// ServeOrders streams the restaurant's order events to staff clients.
// Subscribes to Redis channel "orders:<restaurantID>".
func (h *Hub) ServeOrders(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := tenant.IDFromContext(r.Context())
	if !ok {
		http.Error(w, "missing restaurant", http.StatusBadRequest)
		return
	}

	h.stream(w, r, redisstore.OrdersChannel(restaurantID))
}

// ServeOrder streams status updates for a single order. The order must belong
// to the resolved restaurant; guests use this to track their own order.
func (h *Hub) ServeOrder(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := tenant.IDFromContext(r.Context())
	if !ok {
		http.Error(w, "missing restaurant", http.StatusBadRequest)
		return
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return
	}

	if _, err := h.orders.GetByID(r.Context(), restaurantID, orderID); err != nil {
		http.Error(w, "order not found", http.StatusNotFound)
		return
	}

	h.stream(w, r, redisstore.OrderChannel(orderID))
}

// ServeReservations streams the restaurant's reservation events to staff
// clients. Subscribes to Redis channel "reservations:<restaurantID>".
func (h *Hub) ServeReservations(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := tenant.IDFromContext(r.Context())
	if !ok {
		http.Error(w, "missing restaurant", http.StatusBadRequest)
		return
	}

	h.stream(w, r, redisstore.ReservationsChannel(restaurantID))
}

func (h *Hub) stream(w http.ResponseWriter, r *http.Request, channel string) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket accept")
		return
	}
	defer conn.CloseNow()

	ctx := r.Context()

	messages, cleanup, err := h.pubsub.Subscribe(ctx, channel)
	if err != nil {
		log.Error().Err(err).Msg("websocket subscribe")
		_ = conn.Close(websocket.StatusInternalError, "subscribe failed")
		return
	}
	defer cleanup()

	for {
		select {
		case <-ctx.Done():
			_ = conn.Close(websocket.StatusNormalClosure, "connection closed")
			return
		case msg, msgOK := <-messages:
			if !msgOK {
				_ = conn.Close(websocket.StatusNormalClosure, "channel closed")
				return
			}
			if writeErr := conn.Write(ctx, websocket.MessageText, msg); writeErr != nil {
				log.Debug().Err(writeErr).Msg("websocket write")
				return
			}
		}
	}
}

// Publish sends an event payload to a Redis channel. This is a convenience
// wrapper for use by API handlers when mutating order or reservation state.
func (h *Hub) Publish(ctx context.Context, channel string, payload []byte) error {
	if err := h.pubsub.Publish(ctx, channel, payload); err != nil {
		return fmt.Errorf("ws.Hub.Publish: %w", err)
	}
	return nil
}

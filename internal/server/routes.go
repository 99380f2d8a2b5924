package server

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"

	v1 "github.com/tably/tably/internal/api/v1"
	"github.com/tably/tably/internal/api/ws"
	"github.com/tably/tably/internal/auth"
	"github.com/tably/tably/internal/store/postgres"
)

func registerPublicRoutes(api huma.API, store *postgres.Store, authSvc *auth.Service, hub *ws.Hub) {
	v1.RegisterAuthRoutes(api, authSvc)
	v1.RegisterPublicRestaurantRoutes(api, store)
	v1.RegisterPublicMenuRoutes(api, store)
	v1.RegisterPublicOrderRoutes(api, store, hub)
	v1.RegisterPublicReservationRoutes(api, store, hub)
	v1.RegisterPublicFeedbackRoutes(api, store)
}

func registerCustomerRoutes(api huma.API, store *postgres.Store, authSvc *auth.Service, hub *ws.Hub) {
	v1.RegisterMeRoute(api, authSvc)
	v1.RegisterOrderRoutes(api, store, hub)
	v1.RegisterReservationRoutes(api, store, hub)
}

func registerStaffRoutes(api huma.API, store *postgres.Store, authSvc *auth.Service, hub *ws.Hub, objectStorage v1.ObjectStorage) {
	v1.RegisterRestaurantRoutes(api, store)
	v1.RegisterUserRoutes(api, store, authSvc)
	v1.RegisterMenuRoutes(api, store, objectStorage)
	v1.RegisterOrderManagementRoutes(api, store, hub)
	v1.RegisterReservationManagementRoutes(api, store, hub)
	v1.RegisterFeedbackRoutes(api, store)
	v1.RegisterSettingsRoutes(api, store)
	v1.RegisterDashboardRoutes(api, store)
}

func registerWSRoutes(r chi.Router, hub *ws.Hub) {
	r.Get("/orders", hub.ServeOrders)
	r.Get("/reservations", hub.ServeReservations)
}

package server

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	v1 "github.com/tably/tably/internal/api/v1"
	"github.com/tably/tably/internal/api/ws"
	"github.com/tably/tably/internal/auth"
	"github.com/tably/tably/internal/config"
	"github.com/tably/tably/internal/server/middleware"
	"github.com/tably/tably/internal/store/postgres"
	redisstore "github.com/tably/tably/internal/store/redis"
	"github.com/tably/tably/internal/tenant"
)

// Server is the HTTP server that wires all application routes and middleware.
type Server struct {
	router     chi.Router
	httpServer *http.Server
	store      *postgres.Store
	auth       *auth.Service
	pubsub     *redisstore.PubSub
	wsHub      *ws.Hub
	cfg        *config.Config
}

// Deps carries the optional infrastructure the server runs with. Any field
// may be nil; the corresponding features degrade instead of failing.
type Deps struct {
	ObjectStorage v1.ObjectStorage
	DNS           v1.DNSProvider
	Mailer        v1.Mailer
}

// New creates a Server with all routes wired. ctx bounds the background
// cleanup goroutines owned by the rate limiters.
func New(ctx context.Context, cfg *config.Config, store *postgres.Store, pubsub *redisstore.PubSub, authSvc *auth.Service, deps Deps) *Server {
	router := chi.NewRouter()

	// Global middleware stack.
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(chimw.Logger)
	router.Use(chimw.Recoverer)
	router.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-API-Key", "X-Request-ID", tenant.HeaderCustomDomain, tenant.HeaderSlug, tenant.HeaderID},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler)

	hub := ws.NewHub(pubsub, store.Orders())
	resolveTenant := tenant.Middleware(tenant.NewResolver(store.Restaurants()))

	s := &Server{
		router: router,
		store:  store,
		auth:   authSvc,
		pubsub: pubsub,
		wsHub:  hub,
		cfg:    cfg,
		httpServer: &http.Server{
			Addr:         cfg.Server.Addr,
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}

	// Mount API routes on /api/v1 with three sub-groups:
	// 1. Tenant-resolved public group for storefront and auth endpoints.
	// 2. Tenant-resolved authenticated group, with a staff-only subset.
	// 3. Platform group behind the platform API key, no tenant resolution.
	router.Route("/api/v1", func(r chi.Router) {
		// Public storefront routes. Guests hit these without an account, so
		// abuse control is per source IP.
		r.Group(func(r chi.Router) {
			r.Use(resolveTenant)
			r.Use(middleware.RateLimitByIP(ctx, 20, 40))

			publicConfig := huma.DefaultConfig("Tably Public API", "1.0.0")
			publicConfig.Servers = []*huma.Server{{URL: "/api/v1"}}
			publicAPI := humachi.New(r, publicConfig)
			registerPublicRoutes(publicAPI, store, authSvc, hub)
		})

		// Authenticated routes. The token's restaurant must match the
		// resolved one; rate limiting is per restaurant.
		r.Group(func(r chi.Router) {
			r.Use(resolveTenant)
			r.Use(middleware.Auth(cfg.JWT.Secret))
			r.Use(middleware.TenantAccess())
			r.Use(middleware.RateLimit(ctx, 100, 200))

			apiConfig := huma.DefaultConfig("Tably API", "1.0.0")
			apiConfig.Servers = []*huma.Server{{URL: "/api/v1"}}
			api := humachi.New(r, apiConfig)
			registerCustomerRoutes(api, store, authSvc, hub)

			// Staff-only management surface.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireStaff())

				staffConfig := huma.DefaultConfig("Tably Management API", "1.0.0")
				staffConfig.Servers = []*huma.Server{{URL: "/api/v1"}}
				staffAPI := humachi.New(r, staffConfig)
				registerStaffRoutes(staffAPI, store, authSvc, hub, deps.ObjectStorage)

				r.Post("/menu/items/{id}/image", v1.MenuImageUploadHandler(store, deps.ObjectStorage))
			})
		})

		// Platform onboarding, operator-to-operator. No tenant resolution;
		// the restaurant being created does not exist yet.
		r.Group(func(r chi.Router) {
			r.Use(requirePlatformKey(cfg.Platform.APIKey))

			platformConfig := huma.DefaultConfig("Tably Platform API", "1.0.0")
			platformConfig.Servers = []*huma.Server{{URL: "/api/v1"}}
			platformAPI := humachi.New(r, platformConfig)
			v1.RegisterPlatformRoutes(platformAPI, store, authSvc, deps.DNS, deps.Mailer)
		})
	})

	// WebSocket routes. Order tracking is open to guests; the restaurant-wide
	// streams are staff only.
	router.Route("/ws", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(resolveTenant)
			r.Get("/order/{orderID}", hub.ServeOrder)
		})

		r.Group(func(r chi.Router) {
			r.Use(resolveTenant)
			r.Use(middleware.Auth(cfg.JWT.Secret))
			r.Use(middleware.TenantAccess())
			r.Use(middleware.RequireStaff())
			registerWSRoutes(r, hub)
		})
	})

	// Health check (unauthenticated).
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	return s
}

// requirePlatformKey gates the operator surface on a shared API key. When no
// key is configured the surface is disabled entirely.
func requirePlatformKey(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if apiKey == "" {
				http.Error(w, `{"title":"Not Implemented","status":501,"detail":"platform API is not configured"}`, http.StatusNotImplemented)
				return
			}
			supplied := r.Header.Get("X-API-Key")
			if subtle.ConstantTimeCompare([]byte(supplied), []byte(apiKey)) != 1 {
				http.Error(w, `{"title":"Unauthorized","status":401,"detail":"invalid API key"}`, http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Start begins listening for HTTP requests.
func (s *Server) Start(_ context.Context) error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.Start: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

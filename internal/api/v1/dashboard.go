package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tably/tably/internal/domain"
	"github.com/tably/tably/internal/tenant"
)

type DashboardOutput struct {
	Body *domain.DashboardStats
}

// RegisterDashboardRoutes registers the staff dashboard aggregate endpoint.
func RegisterDashboardRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "get-dashboard-stats",
		Method:      http.MethodGet,
		Path:        "/dashboard",
		Summary:     "Get tenant-wide dashboard statistics",
		Tags:        []string{"Dashboard"},
	}, func(ctx context.Context, _ *struct{}) (*DashboardOutput, error) {
		restaurantID, ok := tenant.IDFromContext(ctx)
		if !ok {
			return nil, huma.Error400BadRequest("restaurant context missing")
		}

		stats, err := store.Dashboard().Stats(ctx, restaurantID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to load dashboard stats", err)
		}

		return &DashboardOutput{Body: stats}, nil
	})
}

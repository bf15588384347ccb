package api

import (
	"context"

	"github.com/mhizterpaul/cartlink/internal/domain/report"
)

// DashboardAPI covers the merchant dashboard figures.
type DashboardAPI struct {
	doer Doer
}

func NewDashboardAPI(d Doer) *DashboardAPI {
	return &DashboardAPI{doer: d}
}

func (a *DashboardAPI) Stats(ctx context.Context) (report.DashboardStats, error) {
	return call[report.DashboardStats](ctx, a.doer, get("/merchant/dashboard/stats", "/merchant/dashboard/stats"))
}

func (a *DashboardAPI) Sales(ctx context.Context) (report.SalesData, error) {
	return call[report.SalesData](ctx, a.doer, get("/merchant/dashboard/sales-data", "/merchant/dashboard/sales-data"))
}

func (a *DashboardAPI) Traffic(ctx context.Context) (report.TrafficData, error) {
	return call[report.TrafficData](ctx, a.doer, get("/merchant/dashboard/traffic-data", "/merchant/dashboard/traffic-data"))
}

package api

import (
	"context"
	"net/url"

	"github.com/mhizterpaul/cartlink/internal/domain/catalog"
)

// ProductLinkAPI covers shareable product links and their analytics.
type ProductLinkAPI struct {
	doer Doer
}

func NewProductLinkAPI(d Doer) *ProductLinkAPI {
	return &ProductLinkAPI{doer: d}
}

func (a *ProductLinkAPI) Generate(ctx context.Context, productID int64) (catalog.ProductLink, error) {
	return call[catalog.ProductLink](ctx, a.doer, post("/merchants/products/"+id(productID)+"/generate-link", "/merchants/products/:id/generate-link", nil))
}

func (a *ProductLinkAPI) List(ctx context.Context) ([]catalog.ProductLink, error) {
	return call[[]catalog.ProductLink](ctx, a.doer, get("/merchants/products/links", "/merchants/products/links"))
}

// Analytics returns recorded visits, bounded by r when its dates are set.
func (a *ProductLinkAPI) Analytics(ctx context.Context, linkID int64, r catalog.AnalyticsRange) ([]catalog.LinkAnalytics, error) {
	q := url.Values{}
	if r.StartDate != "" {
		q.Set("startDate", r.StartDate)
	}
	if r.EndDate != "" {
		q.Set("endDate", r.EndDate)
	}
	req := withQuery(get("/merchants/products/links/"+id(linkID)+"/analytics", "/merchants/products/links/:id/analytics"), q)
	return call[[]catalog.LinkAnalytics](ctx, a.doer, req)
}

func (a *ProductLinkAPI) TrafficSources(ctx context.Context, linkID int64) ([]catalog.TrafficSource, error) {
	return call[[]catalog.TrafficSource](ctx, a.doer, get("/merchants/products/links/"+id(linkID)+"/traffic", "/merchants/products/links/:id/traffic"))
}

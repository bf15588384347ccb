package api

import (
	"context"
	"net/url"

	"github.com/mhizterpaul/cartlink/internal/domain/trade"
)

// OrderAPI covers the merchant's view of orders.
type OrderAPI struct {
	doer Doer
}

func NewOrderAPI(d Doer) *OrderAPI {
	return &OrderAPI{doer: d}
}

// List returns the merchant's orders, optionally filtered by status.
func (a *OrderAPI) List(ctx context.Context, filter trade.OrderFilter) ([]trade.Order, error) {
	q := url.Values{}
	if filter.Status != "" {
		q.Set("status", string(filter.Status))
	}
	return call[[]trade.Order](ctx, a.doer, withQuery(get("/merchants/orders", "/merchants/orders"), q))
}

func (a *OrderAPI) UpdateStatus(ctx context.Context, orderID int64, status trade.OrderStatus) (trade.Order, error) {
	req := put("/merchants/orders/"+id(orderID)+"/status", "/merchants/orders/:id/status", trade.StatusUpdate{Status: status})
	return call[trade.Order](ctx, a.doer, req)
}

func (a *OrderAPI) UpdateTracking(ctx context.Context, orderID int64, trackingID string) (trade.Order, error) {
	req := put("/merchants/orders/"+id(orderID)+"/tracking", "/merchants/orders/:id/tracking", trade.TrackingUpdate{TrackingID: trackingID})
	return call[trade.Order](ctx, a.doer, req)
}

// ByLink returns orders placed through one product link.
func (a *OrderAPI) ByLink(ctx context.Context, linkID int64) ([]trade.Order, error) {
	return call[[]trade.Order](ctx, a.doer, get("/merchants/orders/link/"+id(linkID), "/merchants/orders/link/:linkId"))
}

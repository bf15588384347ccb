package api

import (
	"context"

	"github.com/mhizterpaul/cartlink/internal/domain/trade"
)

// RefundAPI covers customer refund requests.
type RefundAPI struct {
	doer Doer
}

func NewRefundAPI(d Doer) *RefundAPI {
	return &RefundAPI{doer: d}
}

func (a *RefundAPI) Request(ctx context.Context, orderID int64, req trade.RefundRequest) (trade.Refund, error) {
	return call[trade.Refund](ctx, a.doer, post("/customers/orders/"+id(orderID)+"/refund", "/customers/orders/:id/refund", req))
}

func (a *RefundAPI) ForCustomer(ctx context.Context) ([]trade.Refund, error) {
	return call[[]trade.Refund](ctx, a.doer, get("/customers/orders/refunds", "/customers/orders/refunds"))
}

func (a *RefundAPI) ForOrder(ctx context.Context, orderID int64) ([]trade.Refund, error) {
	return call[[]trade.Refund](ctx, a.doer, get("/customers/orders/"+id(orderID)+"/refunds", "/customers/orders/:id/refunds"))
}

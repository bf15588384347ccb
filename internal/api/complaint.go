package api

import (
	"context"

	"github.com/mhizterpaul/cartlink/internal/domain/trade"
)

// ComplaintAPI covers customer complaints.
type ComplaintAPI struct {
	doer Doer
}

func NewComplaintAPI(d Doer) *ComplaintAPI {
	return &ComplaintAPI{doer: d}
}

func (a *ComplaintAPI) Submit(ctx context.Context, orderID int64, req trade.ComplaintRequest) (trade.Complaint, error) {
	return call[trade.Complaint](ctx, a.doer, post("/customers/orders/"+id(orderID)+"/complaint", "/customers/orders/:id/complaint", req))
}

func (a *ComplaintAPI) ForCustomer(ctx context.Context) ([]trade.Complaint, error) {
	return call[[]trade.Complaint](ctx, a.doer, get("/customers/orders/complaints", "/customers/orders/complaints"))
}

func (a *ComplaintAPI) ForOrder(ctx context.Context, orderID int64) ([]trade.Complaint, error) {
	return call[[]trade.Complaint](ctx, a.doer, get("/customers/orders/"+id(orderID)+"/complaints", "/customers/orders/:id/complaints"))
}

package api

import (
	"context"

	"github.com/mhizterpaul/cartlink/internal/domain/trade"
)

// ReviewAPI covers merchant reviews.
type ReviewAPI struct {
	doer Doer
}

func NewReviewAPI(d Doer) *ReviewAPI {
	return &ReviewAPI{doer: d}
}

func (a *ReviewAPI) Create(ctx context.Context, in trade.ReviewInput) (trade.Review, error) {
	return call[trade.Review](ctx, a.doer, post("/reviews", "/reviews", in))
}

func (a *ReviewAPI) List(ctx context.Context) ([]trade.Review, error) {
	return call[[]trade.Review](ctx, a.doer, get("/reviews", "/reviews"))
}

func (a *ReviewAPI) ForMerchant(ctx context.Context, merchantID int64) ([]trade.Review, error) {
	return call[[]trade.Review](ctx, a.doer, get("/reviews/merchant/"+id(merchantID), "/reviews/merchant/:id"))
}

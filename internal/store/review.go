package store

import (
	"context"

	"github.com/mhizterpaul/cartlink/internal/domain/trade"
)

type ReviewState struct {
	Reviews []trade.Review `json:"reviews"`
}

type ReviewSlice struct {
	*Slice[ReviewState]
	calls ReviewCalls
	inbox MerchantInbox
}

func NewReviewSlice(calls ReviewCalls, inbox MerchantInbox, opts ...Option) *ReviewSlice {
	return &ReviewSlice{Slice: NewSlice("review", ReviewState{}, opts...), calls: calls, inbox: inbox}
}

func setReviews(_ ReviewState, reviews []trade.Review) ReviewState {
	return ReviewState{Reviews: reviews}
}

func (r *ReviewSlice) Create(ctx context.Context, in trade.ReviewInput) *Result[trade.Review] {
	return Dispatch(ctx, r.Slice, Operation[ReviewState, trade.ReviewInput, trade.Review]{
		Type: "review/createReview",
		Call: validated(r.calls.Create),
	}, in)
}

func (r *ReviewSlice) Fetch(ctx context.Context) *Result[[]trade.Review] {
	return Dispatch(ctx, r.Slice, Operation[ReviewState, Empty, []trade.Review]{
		Type:      "review/getReviews",
		Call:      noArg(r.calls.List),
		Fulfilled: setReviews,
	}, Empty{})
}

func (r *ReviewSlice) FetchForMerchant(ctx context.Context, merchantID int64) *Result[[]trade.Review] {
	return Dispatch(ctx, r.Slice, Operation[ReviewState, int64, []trade.Review]{
		Type:      "review/getMerchantReviews",
		Call:      r.calls.ForMerchant,
		Fulfilled: setReviews,
	}, merchantID)
}

// FetchMine lists reviews of the signed-in merchant.
func (r *ReviewSlice) FetchMine(ctx context.Context) *Result[[]trade.Review] {
	return Dispatch(ctx, r.Slice, Operation[ReviewState, Empty, []trade.Review]{
		Type:      "review/getMyReviews",
		Call:      noArg(r.inbox.Reviews),
		Fulfilled: setReviews,
	}, Empty{})
}

package store

import (
	"context"

	"github.com/mhizterpaul/cartlink/internal/domain/trade"
)

type RefundState struct {
	Refunds []trade.Refund `json:"refunds"`
}

type refundFiling struct {
	orderID int64
	req     trade.RefundRequest
}

type RefundSlice struct {
	*Slice[RefundState]
	calls RefundCalls
}

func NewRefundSlice(calls RefundCalls, opts ...Option) *RefundSlice {
	return &RefundSlice{Slice: NewSlice("refund", RefundState{}, opts...), calls: calls}
}

func setRefunds(_ RefundState, refunds []trade.Refund) RefundState {
	return RefundState{Refunds: refunds}
}

func (r *RefundSlice) Request(ctx context.Context, orderID int64, req trade.RefundRequest) *Result[trade.Refund] {
	return Dispatch(ctx, r.Slice, Operation[RefundState, refundFiling, trade.Refund]{
		Type: "refund/requestRefund",
		Call: func(ctx context.Context, f refundFiling) (trade.Refund, error) {
			if err := validate.StructCtx(ctx, f.req); err != nil {
				return trade.Refund{}, err
			}
			return r.calls.Request(ctx, f.orderID, f.req)
		},
	}, refundFiling{orderID: orderID, req: req})
}

func (r *RefundSlice) FetchForCustomer(ctx context.Context) *Result[[]trade.Refund] {
	return Dispatch(ctx, r.Slice, Operation[RefundState, Empty, []trade.Refund]{
		Type:      "refund/getCustomerRefunds",
		Call:      noArg(r.calls.ForCustomer),
		Fulfilled: setRefunds,
	}, Empty{})
}

func (r *RefundSlice) FetchForOrder(ctx context.Context, orderID int64) *Result[[]trade.Refund] {
	return Dispatch(ctx, r.Slice, Operation[RefundState, int64, []trade.Refund]{
		Type:      "refund/getOrderRefunds",
		Call:      r.calls.ForOrder,
		Fulfilled: setRefunds,
	}, orderID)
}

package store

import (
	"context"

	"github.com/mhizterpaul/cartlink/internal/domain/trade"
)

type OrderState struct {
	Orders []trade.Order `json:"orders"`
}

type orderChange struct {
	orderID    int64
	status     trade.OrderStatus
	trackingID string
}

// OrderSlice holds the merchant's order list. Status and tracking changes
// do not rewrite the list.
type OrderSlice struct {
	*Slice[OrderState]
	calls OrderCalls
}

func NewOrderSlice(calls OrderCalls, opts ...Option) *OrderSlice {
	return &OrderSlice{Slice: NewSlice("order", OrderState{}, opts...), calls: calls}
}

func setOrders(_ OrderState, orders []trade.Order) OrderState {
	return OrderState{Orders: orders}
}

func (o *OrderSlice) Fetch(ctx context.Context, filter trade.OrderFilter) *Result[[]trade.Order] {
	return Dispatch(ctx, o.Slice, Operation[OrderState, trade.OrderFilter, []trade.Order]{
		Type:      "order/getOrders",
		Call:      o.calls.List,
		Fulfilled: setOrders,
	}, filter)
}

func (o *OrderSlice) FetchByLink(ctx context.Context, linkID int64) *Result[[]trade.Order] {
	return Dispatch(ctx, o.Slice, Operation[OrderState, int64, []trade.Order]{
		Type:      "order/getOrdersByLink",
		Call:      o.calls.ByLink,
		Fulfilled: setOrders,
	}, linkID)
}

func (o *OrderSlice) UpdateStatus(ctx context.Context, orderID int64, status trade.OrderStatus) *Result[trade.Order] {
	return Dispatch(ctx, o.Slice, Operation[OrderState, orderChange, trade.Order]{
		Type: "order/updateOrderStatus",
		Call: func(ctx context.Context, c orderChange) (trade.Order, error) {
			if err := validate.StructCtx(ctx, trade.StatusUpdate{Status: c.status}); err != nil {
				return trade.Order{}, err
			}
			return o.calls.UpdateStatus(ctx, c.orderID, c.status)
		},
	}, orderChange{orderID: orderID, status: status})
}

func (o *OrderSlice) UpdateTracking(ctx context.Context, orderID int64, trackingID string) *Result[trade.Order] {
	return Dispatch(ctx, o.Slice, Operation[OrderState, orderChange, trade.Order]{
		Type: "order/updateTrackingId",
		Call: func(ctx context.Context, c orderChange) (trade.Order, error) {
			if err := validate.StructCtx(ctx, trade.TrackingUpdate{TrackingID: c.trackingID}); err != nil {
				return trade.Order{}, err
			}
			return o.calls.UpdateTracking(ctx, c.orderID, c.trackingID)
		},
	}, orderChange{orderID: orderID, trackingID: trackingID})
}

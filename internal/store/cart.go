package store

import (
	"context"

	"github.com/mhizterpaul/cartlink/internal/domain/trade"
)

type CartState struct {
	Cart *trade.Cart `json:"cart"`
}

type quantityChange struct {
	itemID   int64
	quantity int
}

// CartSlice holds the customer's cart. Only Fetch replaces it; item
// mutations resolve without touching the stored cart.
type CartSlice struct {
	*Slice[CartState]
	calls CartCalls
}

func NewCartSlice(calls CartCalls, opts ...Option) *CartSlice {
	return &CartSlice{Slice: NewSlice("cart", CartState{}, opts...), calls: calls}
}

func (c *CartSlice) Fetch(ctx context.Context) *Result[trade.Cart] {
	return Dispatch(ctx, c.Slice, Operation[CartState, Empty, trade.Cart]{
		Type: "cart/getCart",
		Call: noArg(c.calls.Get),
		Fulfilled: func(_ CartState, cart trade.Cart) CartState {
			return CartState{Cart: &cart}
		},
	}, Empty{})
}

func (c *CartSlice) Add(ctx context.Context, item trade.AddCartItem) *Result[trade.Cart] {
	return Dispatch(ctx, c.Slice, Operation[CartState, trade.AddCartItem, trade.Cart]{
		Type: "cart/addToCart",
		Call: validated(c.calls.AddItem),
	}, item)
}

func (c *CartSlice) Remove(ctx context.Context, itemID int64) *Result[trade.Cart] {
	return Dispatch(ctx, c.Slice, Operation[CartState, int64, trade.Cart]{
		Type: "cart/removeFromCart",
		Call: c.calls.RemoveItem,
	}, itemID)
}

func (c *CartSlice) UpdateQuantity(ctx context.Context, itemID int64, quantity int) *Result[trade.Cart] {
	return Dispatch(ctx, c.Slice, Operation[CartState, quantityChange, trade.Cart]{
		Type: "cart/updateCartItemQuantity",
		Call: func(ctx context.Context, q quantityChange) (trade.Cart, error) {
			return c.calls.UpdateQuantity(ctx, q.itemID, q.quantity)
		},
	}, quantityChange{itemID: itemID, quantity: quantity})
}

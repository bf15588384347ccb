package api

import (
	"context"

	"github.com/mhizterpaul/cartlink/internal/domain/trade"
)

// CartAPI covers the signed-in customer's cart.
type CartAPI struct {
	doer Doer
}

func NewCartAPI(d Doer) *CartAPI {
	return &CartAPI{doer: d}
}

const cartItemRoute = "/customers/cart/items/:id"

func (a *CartAPI) Get(ctx context.Context) (trade.Cart, error) {
	return call[trade.Cart](ctx, a.doer, get("/customers/cart", "/customers/cart"))
}

func (a *CartAPI) AddItem(ctx context.Context, item trade.AddCartItem) (trade.Cart, error) {
	return call[trade.Cart](ctx, a.doer, post("/customers/cart/items", "/customers/cart/items", item))
}

func (a *CartAPI) RemoveItem(ctx context.Context, itemID int64) (trade.Cart, error) {
	return call[trade.Cart](ctx, a.doer, del("/customers/cart/items/"+id(itemID), cartItemRoute))
}

func (a *CartAPI) UpdateQuantity(ctx context.Context, itemID int64, quantity int) (trade.Cart, error) {
	return call[trade.Cart](ctx, a.doer, put("/customers/cart/items/"+id(itemID), cartItemRoute, trade.QuantityUpdate{Quantity: quantity}))
}

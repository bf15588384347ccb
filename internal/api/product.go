package api

import (
	"context"
	"net/url"

	"github.com/mhizterpaul/cartlink/internal/domain/catalog"
)

// ProductAPI covers the merchant catalog and per-product coupons.
type ProductAPI struct {
	doer Doer
}

func NewProductAPI(d Doer) *ProductAPI {
	return &ProductAPI{doer: d}
}

const productRoute = "/merchants/products/:id"

func (a *ProductAPI) Add(ctx context.Context, in catalog.ProductInput) (catalog.Product, error) {
	return call[catalog.Product](ctx, a.doer, post("/merchants/products", "/merchants/products", in))
}

func (a *ProductAPI) Update(ctx context.Context, productID int64, in catalog.ProductInput) (catalog.Product, error) {
	return call[catalog.Product](ctx, a.doer, put("/merchants/products/"+id(productID), productRoute, in))
}

func (a *ProductAPI) Delete(ctx context.Context, productID int64) error {
	return exec(ctx, a.doer, del("/merchants/products/"+id(productID), productRoute))
}

func (a *ProductAPI) List(ctx context.Context) ([]catalog.Product, error) {
	return call[[]catalog.Product](ctx, a.doer, get("/merchants/products", "/merchants/products"))
}

func (a *ProductAPI) Get(ctx context.Context, productID int64) (catalog.Product, error) {
	return call[catalog.Product](ctx, a.doer, get("/merchants/products/"+id(productID), productRoute))
}

func (a *ProductAPI) Search(ctx context.Context, query string) ([]catalog.Product, error) {
	req := withQuery(get("/merchants/products/search", "/merchants/products/search"), url.Values{"query": {query}})
	return call[[]catalog.Product](ctx, a.doer, req)
}

func (a *ProductAPI) InStock(ctx context.Context) ([]catalog.Product, error) {
	return call[[]catalog.Product](ctx, a.doer, get("/merchants/products/in-stock", "/merchants/products/in-stock"))
}

const couponsRoute = "/v1/merchants/:merchantId/products/:productId/coupons"

func couponsPath(merchantID, productID int64) string {
	return "/v1/merchants/" + id(merchantID) + "/products/" + id(productID) + "/coupons"
}

func (a *ProductAPI) CreateCoupon(ctx context.Context, merchantID, productID int64, in catalog.CouponInput) (catalog.Coupon, error) {
	return call[catalog.Coupon](ctx, a.doer, post(couponsPath(merchantID, productID), couponsRoute, in))
}

func (a *ProductAPI) Coupons(ctx context.Context, merchantID, productID int64) ([]catalog.Coupon, error) {
	return call[[]catalog.Coupon](ctx, a.doer, get(couponsPath(merchantID, productID), couponsRoute))
}

func (a *ProductAPI) DeleteCoupon(ctx context.Context, merchantID, productID, couponID int64) error {
	return exec(ctx, a.doer, del(couponsPath(merchantID, productID)+"/"+id(couponID), couponsRoute+"/:couponId"))
}

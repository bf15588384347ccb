package store

import (
	"context"

	"github.com/mhizterpaul/cartlink/internal/domain/catalog"
)

// ProductState is the merchant catalog as last fetched.
type ProductState struct {
	Products        []catalog.Product `json:"products"`
	InStockProducts []catalog.Product `json:"inStockProducts"`
	Selected        *catalog.Product  `json:"selected"`
	Coupons         []catalog.Coupon  `json:"coupons"`
}

type productEdit struct {
	id    int64
	input catalog.ProductInput
}

type couponScope struct {
	merchantID, productID, couponID int64
	input                           catalog.CouponInput
}

// ProductSlice holds the catalog. Mutations leave the lists alone; callers
// refetch to observe them.
type ProductSlice struct {
	*Slice[ProductState]
	calls ProductCalls
}

func NewProductSlice(calls ProductCalls, opts ...Option) *ProductSlice {
	return &ProductSlice{Slice: NewSlice("product", ProductState{}, opts...), calls: calls}
}

func setProducts(st ProductState, products []catalog.Product) ProductState {
	st.Products = products
	return st
}

func (p *ProductSlice) Fetch(ctx context.Context) *Result[[]catalog.Product] {
	return Dispatch(ctx, p.Slice, Operation[ProductState, Empty, []catalog.Product]{
		Type:      "product/fetchProducts",
		Call:      noArg(p.calls.List),
		Fulfilled: setProducts,
	}, Empty{})
}

func (p *ProductSlice) Search(ctx context.Context, query string) *Result[[]catalog.Product] {
	return Dispatch(ctx, p.Slice, Operation[ProductState, string, []catalog.Product]{
		Type:      "product/searchProducts",
		Call:      p.calls.Search,
		Fulfilled: setProducts,
	}, query)
}

func (p *ProductSlice) FetchInStock(ctx context.Context) *Result[[]catalog.Product] {
	return Dispatch(ctx, p.Slice, Operation[ProductState, Empty, []catalog.Product]{
		Type: "product/fetchInStockProducts",
		Call: noArg(p.calls.InStock),
		Fulfilled: func(st ProductState, products []catalog.Product) ProductState {
			st.InStockProducts = products
			return st
		},
	}, Empty{})
}

func (p *ProductSlice) Get(ctx context.Context, productID int64) *Result[catalog.Product] {
	return Dispatch(ctx, p.Slice, Operation[ProductState, int64, catalog.Product]{
		Type: "product/fetchProduct",
		Call: p.calls.Get,
		Fulfilled: func(st ProductState, product catalog.Product) ProductState {
			st.Selected = &product
			return st
		},
	}, productID)
}

func (p *ProductSlice) Add(ctx context.Context, in catalog.ProductInput) *Result[catalog.Product] {
	return Dispatch(ctx, p.Slice, Operation[ProductState, catalog.ProductInput, catalog.Product]{
		Type: "product/addProduct",
		Call: validated(p.calls.Add),
	}, in)
}

func (p *ProductSlice) Update(ctx context.Context, productID int64, in catalog.ProductInput) *Result[catalog.Product] {
	return Dispatch(ctx, p.Slice, Operation[ProductState, productEdit, catalog.Product]{
		Type: "product/updateProduct",
		Call: func(ctx context.Context, e productEdit) (catalog.Product, error) {
			if err := validate.StructCtx(ctx, e.input); err != nil {
				return catalog.Product{}, err
			}
			return p.calls.Update(ctx, e.id, e.input)
		},
	}, productEdit{id: productID, input: in})
}

func (p *ProductSlice) Delete(ctx context.Context, productID int64) *Result[Empty] {
	return Dispatch(ctx, p.Slice, Operation[ProductState, int64, Empty]{
		Type: "product/deleteProduct",
		Call: noResult(p.calls.Delete),
	}, productID)
}

func (p *ProductSlice) FetchCoupons(ctx context.Context, merchantID, productID int64) *Result[[]catalog.Coupon] {
	return Dispatch(ctx, p.Slice, Operation[ProductState, couponScope, []catalog.Coupon]{
		Type: "product/fetchCoupons",
		Call: func(ctx context.Context, c couponScope) ([]catalog.Coupon, error) {
			return p.calls.Coupons(ctx, c.merchantID, c.productID)
		},
		Fulfilled: func(st ProductState, coupons []catalog.Coupon) ProductState {
			st.Coupons = coupons
			return st
		},
	}, couponScope{merchantID: merchantID, productID: productID})
}

func (p *ProductSlice) CreateCoupon(ctx context.Context, merchantID, productID int64, in catalog.CouponInput) *Result[catalog.Coupon] {
	return Dispatch(ctx, p.Slice, Operation[ProductState, couponScope, catalog.Coupon]{
		Type: "product/createCoupon",
		Call: func(ctx context.Context, c couponScope) (catalog.Coupon, error) {
			if err := validate.StructCtx(ctx, c.input); err != nil {
				return catalog.Coupon{}, err
			}
			return p.calls.CreateCoupon(ctx, c.merchantID, c.productID, c.input)
		},
	}, couponScope{merchantID: merchantID, productID: productID, input: in})
}

func (p *ProductSlice) DeleteCoupon(ctx context.Context, merchantID, productID, couponID int64) *Result[Empty] {
	return Dispatch(ctx, p.Slice, Operation[ProductState, couponScope, Empty]{
		Type: "product/deleteCoupon",
		Call: func(ctx context.Context, c couponScope) (Empty, error) {
			return Empty{}, p.calls.DeleteCoupon(ctx, c.merchantID, c.productID, c.couponID)
		},
	}, couponScope{merchantID: merchantID, productID: productID, couponID: couponID})
}

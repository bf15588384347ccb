package store

import (
	"context"

	"github.com/mhizterpaul/cartlink/internal/api"
)

// Store holds every slice, built over one set of call modules and one token store.
type Store struct {
	Auth         *AuthSlice
	Merchant     *MerchantSlice
	Customer     *CustomerSlice
	Products     *ProductSlice
	ProductLinks *ProductLinkSlice
	Orders       *OrderSlice
	Cart         *CartSlice
	Refunds      *RefundSlice
	Complaints   *ComplaintSlice
	Dashboard    *DashboardSlice
	Reviews      *ReviewSlice
}

// New builds the store. ctx bounds only the initial token read.
func New(ctx context.Context, a *api.API, tokens TokenPersister, opts ...Option) *Store {
	return &Store{
		Auth:         NewAuthSlice(ctx, a.Merchants, tokens, opts...),
		Merchant:     NewMerchantSlice(a.Merchants, opts...),
		Customer:     NewCustomerSlice(a.Customers, tokens, opts...),
		Products:     NewProductSlice(a.Products, opts...),
		ProductLinks: NewProductLinkSlice(a.ProductLinks, opts...),
		Orders:       NewOrderSlice(a.Orders, opts...),
		Cart:         NewCartSlice(a.Cart, opts...),
		Refunds:      NewRefundSlice(a.Refunds, opts...),
		Complaints:   NewComplaintSlice(a.Complaints, a.Merchants, opts...),
		Dashboard:    NewDashboardSlice(a.Dashboard, opts...),
		Reviews:      NewReviewSlice(a.Reviews, a.Merchants, opts...),
	}
}

// Snapshot is the whole store as one JSON-friendly value.
func (s *Store) Snapshot() map[string]any {
	return map[string]any{
		s.Auth.Name():         s.Auth.State(),
		s.Merchant.Name():     s.Merchant.State(),
		s.Customer.Name():     s.Customer.State(),
		s.Products.Name():     s.Products.State(),
		s.ProductLinks.Name(): s.ProductLinks.State(),
		s.Orders.Name():       s.Orders.State(),
		s.Cart.Name():         s.Cart.State(),
		s.Refunds.Name():      s.Refunds.State(),
		s.Complaints.Name():   s.Complaints.State(),
		s.Dashboard.Name():    s.Dashboard.State(),
		s.Reviews.Name():      s.Reviews.State(),
	}
}

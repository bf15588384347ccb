package store

import (
	"context"

	"github.com/mhizterpaul/cartlink/internal/domain/catalog"
	"github.com/mhizterpaul/cartlink/internal/domain/identity"
	"github.com/mhizterpaul/cartlink/internal/domain/report"
	"github.com/mhizterpaul/cartlink/internal/domain/trade"
)

// The interfaces below are the slices of the api call modules each state
// container depends on. The api package's types satisfy them.

type MerchantCalls interface {
	SignUp(ctx context.Context, req identity.SignUpRequest) (identity.AuthResult, error)
	Login(ctx context.Context, req identity.LoginRequest) (identity.AuthResult, error)
	RefreshToken(ctx context.Context, prior string) (identity.TokenResult, error)
	RequestPasswordReset(ctx context.Context, req identity.PasswordResetRequest) error
	ResetPassword(ctx context.Context, req identity.PasswordReset) error
	Profile(ctx context.Context) (identity.Merchant, error)
	UpdateProfile(ctx context.Context, req identity.ProfileUpdate) (identity.Merchant, error)
}

type CustomerCalls interface {
	SignUp(ctx context.Context, req identity.SignUpRequest) (identity.CustomerAuthResult, error)
	Login(ctx context.Context, req identity.LoginRequest) (identity.CustomerAuthResult, error)
}

type ProductCalls interface {
	Add(ctx context.Context, in catalog.ProductInput) (catalog.Product, error)
	Update(ctx context.Context, productID int64, in catalog.ProductInput) (catalog.Product, error)
	Delete(ctx context.Context, productID int64) error
	List(ctx context.Context) ([]catalog.Product, error)
	Get(ctx context.Context, productID int64) (catalog.Product, error)
	Search(ctx context.Context, query string) ([]catalog.Product, error)
	InStock(ctx context.Context) ([]catalog.Product, error)
	CreateCoupon(ctx context.Context, merchantID, productID int64, in catalog.CouponInput) (catalog.Coupon, error)
	Coupons(ctx context.Context, merchantID, productID int64) ([]catalog.Coupon, error)
	DeleteCoupon(ctx context.Context, merchantID, productID, couponID int64) error
}

type ProductLinkCalls interface {
	Generate(ctx context.Context, productID int64) (catalog.ProductLink, error)
	List(ctx context.Context) ([]catalog.ProductLink, error)
	Analytics(ctx context.Context, linkID int64, r catalog.AnalyticsRange) ([]catalog.LinkAnalytics, error)
	TrafficSources(ctx context.Context, linkID int64) ([]catalog.TrafficSource, error)
}

type OrderCalls interface {
	List(ctx context.Context, filter trade.OrderFilter) ([]trade.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status trade.OrderStatus) (trade.Order, error)
	UpdateTracking(ctx context.Context, orderID int64, trackingID string) (trade.Order, error)
	ByLink(ctx context.Context, linkID int64) ([]trade.Order, error)
}

type CartCalls interface {
	Get(ctx context.Context) (trade.Cart, error)
	AddItem(ctx context.Context, item trade.AddCartItem) (trade.Cart, error)
	RemoveItem(ctx context.Context, itemID int64) (trade.Cart, error)
	UpdateQuantity(ctx context.Context, itemID int64, quantity int) (trade.Cart, error)
}

type RefundCalls interface {
	Request(ctx context.Context, orderID int64, req trade.RefundRequest) (trade.Refund, error)
	ForCustomer(ctx context.Context) ([]trade.Refund, error)
	ForOrder(ctx context.Context, orderID int64) ([]trade.Refund, error)
}

type ComplaintCalls interface {
	Submit(ctx context.Context, orderID int64, req trade.ComplaintRequest) (trade.Complaint, error)
	ForCustomer(ctx context.Context) ([]trade.Complaint, error)
	ForOrder(ctx context.Context, orderID int64) ([]trade.Complaint, error)
}

// MerchantInbox lists what customers have filed against the signed-in merchant.
type MerchantInbox interface {
	Reviews(ctx context.Context) ([]trade.Review, error)
	Complaints(ctx context.Context) ([]trade.Complaint, error)
}

type DashboardCalls interface {
	Stats(ctx context.Context) (report.DashboardStats, error)
	Sales(ctx context.Context) (report.SalesData, error)
	Traffic(ctx context.Context) (report.TrafficData, error)
}

type ReviewCalls interface {
	Create(ctx context.Context, in trade.ReviewInput) (trade.Review, error)
	List(ctx context.Context) ([]trade.Review, error)
	ForMerchant(ctx context.Context, merchantID int64) ([]trade.Review, error)
}

// TokenPersister is where auth-bearing slices mirror their token.
// tokenstore.Tokens implements it.
type TokenPersister interface {
	Token(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// Empty is the argument or result of operations that have none.
type Empty = struct{}

func noArg[R any](fn func(context.Context) (R, error)) func(context.Context, Empty) (R, error) {
	return func(ctx context.Context, _ Empty) (R, error) {
		return fn(ctx)
	}
}

func noResult[A any](fn func(context.Context, A) error) func(context.Context, A) (Empty, error) {
	return func(ctx context.Context, arg A) (Empty, error) {
		return Empty{}, fn(ctx, arg)
	}
}

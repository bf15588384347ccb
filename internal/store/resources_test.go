package store

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mhizterpaul/cartlink/internal/domain/catalog"
	"github.com/mhizterpaul/cartlink/internal/domain/report"
	"github.com/mhizterpaul/cartlink/internal/domain/trade"
	"github.com/mhizterpaul/cartlink/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDashboardFetchAll(t *testing.T) {
	t.Run("all three land in one commit", func(t *testing.T) {
		calls := new(MockDashboardCalls)
		calls.On("Stats", mock.Anything).Return(report.DashboardStats{"totalOrders": float64(12)}, nil)
		calls.On("Sales", mock.Anything).Return(report.SalesData{Data: []report.SalesPoint{{TotalSales: decimal.NewFromInt(40)}}}, nil)
		calls.On("Traffic", mock.Anything).Return(report.TrafficData{Data: []report.TrafficPoint{{Source: "direct", Clicks: 3}}}, nil)
		dash := NewDashboardSlice(calls)
		ctx := waitCtx(t)

		_, err := dash.FetchAll(ctx).Wait(ctx)
		require.NoError(t, err)

		st := dash.State().Data
		assert.Equal(t, 12, st.Stats.TotalOrders())
		require.NotNil(t, st.SalesData)
		assert.Len(t, st.SalesData.Data, 1)
		require.NotNil(t, st.TrafficData)
		assert.Equal(t, "direct", st.TrafficData.Data[0].Source)
	})

	t.Run("first failure rejects with its fallback", func(t *testing.T) {
		calls := new(MockDashboardCalls)
		calls.On("Stats", mock.Anything).Return(report.DashboardStats{}, nil)
		calls.On("Sales", mock.Anything).Return(report.SalesData{}, errors.New("connection reset"))
		calls.On("Traffic", mock.Anything).Return(report.TrafficData{}, nil)
		dash := NewDashboardSlice(calls)
		ctx := waitCtx(t)

		_, err := dash.FetchAll(ctx).Wait(ctx)
		require.Error(t, err)
		assert.Equal(t, "Failed to fetch sales data", dash.State().Error.Message)
		assert.Nil(t, dash.State().Data.SalesData)
	})
}

func TestDashboardSingleFetchFallbacks(t *testing.T) {
	calls := new(MockDashboardCalls)
	calls.On("Stats", mock.Anything).Return(nil, errors.New("timeout"))
	calls.On("Traffic", mock.Anything).Return(report.TrafficData{}, errors.New("timeout"))
	dash := NewDashboardSlice(calls)
	ctx := waitCtx(t)

	_, err := dash.FetchStats(ctx).Wait(ctx)
	require.Error(t, err)
	assert.Equal(t, "Failed to fetch dashboard stats", dash.State().Error.Message)

	_, err = dash.FetchTraffic(ctx).Wait(ctx)
	require.Error(t, err)
	assert.Equal(t, "Failed to fetch traffic data", dash.State().Error.Message)
}

// The remaining slices are exercised end to end against the fake backend.

func TestProductSlice(t *testing.T) {
	fx := testutil.NewFixtures(7)
	products := fx.Products(3)
	h := newHarness(t, func(b *testutil.Backend) {
		b.Respond(http.MethodGet, "/merchants/products", http.StatusOK, products)
		b.Respond(http.MethodGet, "/merchants/products/in-stock", http.StatusOK, products[:1])
		b.Respond(http.MethodGet, "/merchants/products/search", http.StatusOK, products[1:2])
		b.Respond(http.MethodGet, "/merchants/products/:id", http.StatusOK, products[2])
		b.Respond(http.MethodPost, "/merchants/products", http.StatusCreated, products[0])
		b.Respond(http.MethodDelete, "/merchants/products/:id", http.StatusNoContent, nil)
		b.Respond(http.MethodGet, "/v1/merchants/:merchantId/products/:productId/coupons", http.StatusOK, []catalog.Coupon{{ID: 1}})
	})
	p := h.store.Products
	ctx := waitCtx(t)

	_, err := p.Fetch(ctx).Wait(ctx)
	require.NoError(t, err)
	require.Len(t, p.State().Data.Products, 3)
	assert.True(t, products[0].Price.Equal(p.State().Data.Products[0].Price))

	_, err = p.FetchInStock(ctx).Wait(ctx)
	require.NoError(t, err)
	assert.Len(t, p.State().Data.InStockProducts, 1)
	assert.Len(t, p.State().Data.Products, 3, "in-stock list is a separate field")

	_, err = p.Search(ctx, "lamp").Wait(ctx)
	require.NoError(t, err)
	assert.Len(t, p.State().Data.Products, 1)

	_, err = p.Get(ctx, products[2].ProductID).Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, products[2].Name, p.State().Data.Selected.Name)

	_, err = p.Add(ctx, catalog.ProductInput{Name: "Desk"}).Wait(ctx)
	require.NoError(t, err)
	assert.Len(t, p.State().Data.Products, 1, "add leaves the list alone")

	_, err = p.Add(ctx, catalog.ProductInput{}).Wait(ctx)
	require.Error(t, err, "name is required")

	_, err = p.Delete(ctx, 4).Wait(ctx)
	require.NoError(t, err)

	_, err = p.FetchCoupons(ctx, 1, 2).Wait(ctx)
	require.NoError(t, err)
	assert.Len(t, p.State().Data.Coupons, 1)
}

func TestOrderMutationsLeaveList(t *testing.T) {
	fx := testutil.NewFixtures(11)
	h := newHarness(t, func(b *testutil.Backend) {
		b.Respond(http.MethodGet, "/merchants/orders/link/:linkId", http.StatusOK, []trade.Order{fx.Order(trade.OrderPending)})
		b.Respond(http.MethodPut, "/merchants/orders/:id/status", http.StatusOK, fx.Order(trade.OrderShipped))
	})
	o := h.store.Orders
	ctx := waitCtx(t)

	_, err := o.FetchByLink(ctx, 3).Wait(ctx)
	require.NoError(t, err)
	require.Len(t, o.State().Data.Orders, 1)
	before := o.State().Data.Orders

	updated, err := o.UpdateStatus(ctx, before[0].OrderID, trade.OrderShipped).Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, trade.OrderShipped, updated.Status)
	assert.Equal(t, before, o.State().Data.Orders)

	_, err = o.UpdateTracking(ctx, before[0].OrderID, "").Wait(ctx)
	require.Error(t, err, "tracking id is required")
	assert.Len(t, h.backend.Requests(), 2)
}

func TestRefundAndComplaintSlices(t *testing.T) {
	fx := testutil.NewFixtures(5)
	h := newHarness(t, func(b *testutil.Backend) {
		b.Respond(http.MethodPost, "/customers/orders/:id/refund", http.StatusOK, fx.Refund())
		b.Respond(http.MethodGet, "/customers/orders/refunds", http.StatusOK, []trade.Refund{fx.Refund(), fx.Refund()})
		b.Respond(http.MethodGet, "/customers/orders/:id/refunds", http.StatusOK, []trade.Refund{fx.Refund()})
		b.Respond(http.MethodPost, "/customers/orders/:id/complaint", http.StatusBadRequest, gin.H{"error": "order not delivered"})
		b.Respond(http.MethodGet, "/customers/orders/complaints", http.StatusOK, []trade.Complaint{fx.Complaint()})
		b.Respond(http.MethodGet, "/merchant/complaints", http.StatusOK, []trade.Complaint{fx.Complaint(), fx.Complaint()})
	})
	ctx := waitCtx(t)

	_, err := h.store.Refunds.Request(ctx, 1, trade.RefundRequest{Reason: "broken"}).Wait(ctx)
	require.NoError(t, err)
	assert.Nil(t, h.store.Refunds.State().Data.Refunds)

	_, err = h.store.Refunds.FetchForCustomer(ctx).Wait(ctx)
	require.NoError(t, err)
	assert.Len(t, h.store.Refunds.State().Data.Refunds, 2)

	_, err = h.store.Refunds.FetchForOrder(ctx, 1).Wait(ctx)
	require.NoError(t, err)
	assert.Len(t, h.store.Refunds.State().Data.Refunds, 1)

	_, err = h.store.Complaints.Submit(ctx, 1, trade.ComplaintRequest{Title: "late", Description: "never arrived"}).Wait(ctx)
	require.Error(t, err)
	assert.Equal(t, "order not delivered", h.store.Complaints.State().Error.Message)

	_, err = h.store.Complaints.FetchForCustomer(ctx).Wait(ctx)
	require.NoError(t, err)
	assert.Len(t, h.store.Complaints.State().Data.Complaints, 1)
	assert.Nil(t, h.store.Complaints.State().Error)

	_, err = h.store.Complaints.FetchForMerchant(ctx).Wait(ctx)
	require.NoError(t, err)
	assert.Len(t, h.store.Complaints.State().Data.Complaints, 2)
}

func TestProductLinkSlice(t *testing.T) {
	fx := testutil.NewFixtures(3)
	h := newHarness(t, func(b *testutil.Backend) {
		b.Respond(http.MethodPost, "/merchants/products/:id/generate-link", http.StatusOK, fx.ProductLink())
		b.Respond(http.MethodGet, "/merchants/products/links", http.StatusOK, []catalog.ProductLink{fx.ProductLink()})
		b.Respond(http.MethodGet, "/merchants/products/links/:id/analytics", http.StatusOK, []catalog.LinkAnalytics{{AnalyticsID: 1, Source: "twitter"}})
		b.Respond(http.MethodGet, "/merchants/products/links/:id/traffic", http.StatusOK, []catalog.TrafficSource{{Source: "twitter", Count: 9}})
	})
	l := h.store.ProductLinks
	ctx := waitCtx(t)

	link, err := l.Generate(ctx, 2).Wait(ctx)
	require.NoError(t, err)
	assert.NotZero(t, link.LinkID)
	assert.Nil(t, l.State().Data.ProductLinks)

	_, err = l.Fetch(ctx).Wait(ctx)
	require.NoError(t, err)
	assert.Len(t, l.State().Data.ProductLinks, 1)

	_, err = l.FetchAnalytics(ctx, 1, catalog.AnalyticsRange{StartDate: "2024-01-01"}).Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, "twitter", l.State().Data.Analytics[0].Source)
	assert.Equal(t, "startDate=2024-01-01", h.backend.Last(t).RawQuery)

	_, err = l.FetchTrafficSources(ctx, 1).Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, 9, l.State().Data.TrafficSources[0].Count)
	assert.Len(t, l.State().Data.ProductLinks, 1, "fields are independent")
}

func TestReviewSlice(t *testing.T) {
	fx := testutil.NewFixtures(9)
	h := newHarness(t, func(b *testutil.Backend) {
		b.Respond(http.MethodPost, "/reviews", http.StatusCreated, fx.Review(1))
		b.Respond(http.MethodGet, "/reviews", http.StatusOK, []trade.Review{fx.Review(1), fx.Review(2)})
		b.Respond(http.MethodGet, "/reviews/merchant/:id", http.StatusOK, []trade.Review{fx.Review(1)})
		b.Respond(http.MethodGet, "/merchant/reviews", http.StatusOK, []trade.Review{})
	})
	r := h.store.Reviews
	ctx := waitCtx(t)

	_, err := r.Create(ctx, trade.ReviewInput{MerchantID: 1, Rating: 6}).Wait(ctx)
	require.Error(t, err)
	assert.Equal(t, map[string]string{"rating": "max"}, r.State().Error.Payload)

	_, err = r.Create(ctx, trade.ReviewInput{MerchantID: 1, Rating: 4}).Wait(ctx)
	require.NoError(t, err)

	_, err = r.Fetch(ctx).Wait(ctx)
	require.NoError(t, err)
	assert.Len(t, r.State().Data.Reviews, 2)

	_, err = r.FetchForMerchant(ctx, 1).Wait(ctx)
	require.NoError(t, err)
	assert.Len(t, r.State().Data.Reviews, 1)

	_, err = r.FetchMine(ctx).Wait(ctx)
	require.NoError(t, err)
	assert.Empty(t, r.State().Data.Reviews)
}

func TestCartQuantityAndRemove(t *testing.T) {
	h := newHarness(t, func(b *testutil.Backend) {
		b.Respond(http.MethodPut, "/customers/cart/items/:id", http.StatusOK, gin.H{"cartId": 1})
		b.Respond(http.MethodDelete, "/customers/cart/items/:id", http.StatusOK, gin.H{"cartId": 1})
	})
	ctx := context.Background()

	_, err := h.store.Cart.UpdateQuantity(ctx, 2, 5).Wait(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"quantity":5}`, string(h.backend.Last(t).Body))

	_, err = h.store.Cart.Remove(ctx, 2).Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/api/customers/cart/items/2", h.backend.Last(t).Path)
	assert.Nil(t, h.store.Cart.State().Data.Cart)
}

// Package api has one call module per backend resource. Every function makes
// exactly one request and returns the decoded payload. Failures are the
// client's *httpclient.Error, passed through unmodified.
package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mhizterpaul/cartlink/internal/infrastructure/httpclient"
	"go.uber.org/zap"
)

// Doer sends one request. *httpclient.Client implements it.
type Doer interface {
	Do(ctx context.Context, req httpclient.Request) (*httpclient.Response, error)
}

// API groups every call module over one Doer.
type API struct {
	Merchants    *MerchantAPI
	Customers    *CustomerAPI
	Products     *ProductAPI
	Orders       *OrderAPI
	Cart         *CartAPI
	Refunds      *RefundAPI
	Complaints   *ComplaintAPI
	ProductLinks *ProductLinkAPI
	Dashboard    *DashboardAPI
	Reviews      *ReviewAPI
	Tracker      *Tracker
}

// New builds every call module over d.
func New(d Doer, logger *zap.Logger) *API {
	return &API{
		Merchants:    NewMerchantAPI(d),
		Customers:    NewCustomerAPI(d),
		Products:     NewProductAPI(d),
		Orders:       NewOrderAPI(d),
		Cart:         NewCartAPI(d),
		Refunds:      NewRefundAPI(d),
		Complaints:   NewComplaintAPI(d),
		ProductLinks: NewProductLinkAPI(d),
		Dashboard:    NewDashboardAPI(d),
		Reviews:      NewReviewAPI(d),
		Tracker:      NewTracker(d, logger),
	}
}

// call sends req and decodes the body into T. An empty body yields the zero T.
func call[T any](ctx context.Context, d Doer, req httpclient.Request) (T, error) {
	var out T
	resp, err := d.Do(ctx, req)
	if err != nil {
		return out, err
	}
	if err := resp.JSON(&out); err != nil {
		return out, fmt.Errorf("decoding %s %s response: %w", req.Method, req.Route, err)
	}
	return out, nil
}

// exec sends req and discards the body.
func exec(ctx context.Context, d Doer, req httpclient.Request) error {
	_, err := d.Do(ctx, req)
	return err
}

func get(path, route string) httpclient.Request {
	return httpclient.Request{Method: http.MethodGet, Path: path, Route: route}
}

func post(path, route string, body any) httpclient.Request {
	return httpclient.Request{Method: http.MethodPost, Path: path, Route: route, Body: body}
}

func put(path, route string, body any) httpclient.Request {
	return httpclient.Request{Method: http.MethodPut, Path: path, Route: route, Body: body}
}

func del(path, route string) httpclient.Request {
	return httpclient.Request{Method: http.MethodDelete, Path: path, Route: route}
}

func withQuery(req httpclient.Request, q url.Values) httpclient.Request {
	if len(q) > 0 {
		req.Query = q
	}
	return req
}

func id(v int64) string {
	return url.PathEscape(strconv.FormatInt(v, 10))
}

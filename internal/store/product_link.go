package store

import (
	"context"

	"github.com/mhizterpaul/cartlink/internal/domain/catalog"
)

type ProductLinkState struct {
	ProductLinks   []catalog.ProductLink   `json:"productLinks"`
	Analytics      []catalog.LinkAnalytics `json:"analytics"`
	TrafficSources []catalog.TrafficSource `json:"trafficSources"`
}

type analyticsQuery struct {
	linkID int64
	rng    catalog.AnalyticsRange
}

type ProductLinkSlice struct {
	*Slice[ProductLinkState]
	calls ProductLinkCalls
}

func NewProductLinkSlice(calls ProductLinkCalls, opts ...Option) *ProductLinkSlice {
	return &ProductLinkSlice{Slice: NewSlice("productLink", ProductLinkState{}, opts...), calls: calls}
}

// Generate creates a link for productID. The link list is not touched.
func (l *ProductLinkSlice) Generate(ctx context.Context, productID int64) *Result[catalog.ProductLink] {
	return Dispatch(ctx, l.Slice, Operation[ProductLinkState, int64, catalog.ProductLink]{
		Type: "productLink/generateProductLink",
		Call: l.calls.Generate,
	}, productID)
}

func (l *ProductLinkSlice) Fetch(ctx context.Context) *Result[[]catalog.ProductLink] {
	return Dispatch(ctx, l.Slice, Operation[ProductLinkState, Empty, []catalog.ProductLink]{
		Type: "productLink/fetchProductLinks",
		Call: noArg(l.calls.List),
		Fulfilled: func(st ProductLinkState, links []catalog.ProductLink) ProductLinkState {
			st.ProductLinks = links
			return st
		},
	}, Empty{})
}

func (l *ProductLinkSlice) FetchAnalytics(ctx context.Context, linkID int64, r catalog.AnalyticsRange) *Result[[]catalog.LinkAnalytics] {
	return Dispatch(ctx, l.Slice, Operation[ProductLinkState, analyticsQuery, []catalog.LinkAnalytics]{
		Type: "productLink/fetchLinkAnalytics",
		Call: func(ctx context.Context, q analyticsQuery) ([]catalog.LinkAnalytics, error) {
			return l.calls.Analytics(ctx, q.linkID, q.rng)
		},
		Fulfilled: func(st ProductLinkState, rows []catalog.LinkAnalytics) ProductLinkState {
			st.Analytics = rows
			return st
		},
	}, analyticsQuery{linkID: linkID, rng: r})
}

func (l *ProductLinkSlice) FetchTrafficSources(ctx context.Context, linkID int64) *Result[[]catalog.TrafficSource] {
	return Dispatch(ctx, l.Slice, Operation[ProductLinkState, int64, []catalog.TrafficSource]{
		Type: "productLink/fetchTrafficSources",
		Call: l.calls.TrafficSources,
		Fulfilled: func(st ProductLinkState, sources []catalog.TrafficSource) ProductLinkState {
			st.TrafficSources = sources
			return st
		},
	}, linkID)
}

package store

import (
	"context"

	"github.com/mhizterpaul/cartlink/internal/domain/report"
	"golang.org/x/sync/errgroup"
)

type DashboardState struct {
	Stats       report.DashboardStats `json:"stats"`
	SalesData   *report.SalesData     `json:"salesData"`
	TrafficData *report.TrafficData   `json:"trafficData"`
}

type DashboardSlice struct {
	*Slice[DashboardState]
	calls DashboardCalls
}

func NewDashboardSlice(calls DashboardCalls, opts ...Option) *DashboardSlice {
	return &DashboardSlice{Slice: NewSlice("dashboard", DashboardState{}, opts...), calls: calls}
}

func (d *DashboardSlice) FetchStats(ctx context.Context) *Result[report.DashboardStats] {
	return Dispatch(ctx, d.Slice, Operation[DashboardState, Empty, report.DashboardStats]{
		Type:     "dashboard/fetchStats",
		Call:     noArg(d.calls.Stats),
		Fallback: "Failed to fetch dashboard stats",
		Fulfilled: func(st DashboardState, stats report.DashboardStats) DashboardState {
			st.Stats = stats
			return st
		},
	}, Empty{})
}

func (d *DashboardSlice) FetchSales(ctx context.Context) *Result[report.SalesData] {
	return Dispatch(ctx, d.Slice, Operation[DashboardState, Empty, report.SalesData]{
		Type:     "dashboard/fetchSalesData",
		Call:     noArg(d.calls.Sales),
		Fallback: "Failed to fetch sales data",
		Fulfilled: func(st DashboardState, sales report.SalesData) DashboardState {
			st.SalesData = &sales
			return st
		},
	}, Empty{})
}

func (d *DashboardSlice) FetchTraffic(ctx context.Context) *Result[report.TrafficData] {
	return Dispatch(ctx, d.Slice, Operation[DashboardState, Empty, report.TrafficData]{
		Type:     "dashboard/fetchTrafficData",
		Call:     noArg(d.calls.Traffic),
		Fallback: "Failed to fetch traffic data",
		Fulfilled: func(st DashboardState, traffic report.TrafficData) DashboardState {
			st.TrafficData = &traffic
			return st
		},
	}, Empty{})
}

// FetchAll loads stats, sales and traffic concurrently as one dispatch, so
// fencing treats the three as a single request. The first failure rejects it
// with that fetch's fallback message.
func (d *DashboardSlice) FetchAll(ctx context.Context) *Result[DashboardState] {
	return Dispatch(ctx, d.Slice, Operation[DashboardState, Empty, DashboardState]{
		Type: "dashboard/fetchAll",
		Call: d.fetchAll,
		Fulfilled: func(_ DashboardState, all DashboardState) DashboardState {
			return all
		},
	}, Empty{})
}

func (d *DashboardSlice) fetchAll(ctx context.Context, _ Empty) (DashboardState, error) {
	g, gctx := errgroup.WithContext(ctx)
	var (
		stats   report.DashboardStats
		sales   report.SalesData
		traffic report.TrafficData
	)
	g.Go(func() (err error) {
		stats, err = d.calls.Stats(gctx)
		return wrapFallback(err, "Failed to fetch dashboard stats")
	})
	g.Go(func() (err error) {
		sales, err = d.calls.Sales(gctx)
		return wrapFallback(err, "Failed to fetch sales data")
	})
	g.Go(func() (err error) {
		traffic, err = d.calls.Traffic(gctx)
		return wrapFallback(err, "Failed to fetch traffic data")
	})
	if err := g.Wait(); err != nil {
		return DashboardState{}, err
	}
	return DashboardState{Stats: stats, SalesData: &sales, TrafficData: &traffic}, nil
}

func wrapFallback(err error, fallback string) error {
	if err == nil {
		return nil
	}
	return normalize(err, fallback)
}

// Package report holds the merchant dashboard payloads.
package report

import (
	"github.com/shopspring/decimal"
)

// DashboardStats is kept as an open map because the stats endpoint grows
// fields faster than the client; the accessors cover the known ones.
type DashboardStats map[string]any

// TotalSales returns the "totalSales" figure.
func (s DashboardStats) TotalSales() float64 { return s.number("totalSales") }

// TodaySales returns the "todaySales" figure.
func (s DashboardStats) TodaySales() float64 { return s.number("todaySales") }

// TotalOrders returns the "totalOrders" count.
func (s DashboardStats) TotalOrders() int { return int(s.number("totalOrders")) }

// TotalCustomers returns the "totalCustomers" count.
func (s DashboardStats) TotalCustomers() int { return int(s.number("totalCustomers")) }

// Change returns a percentage from the nested "analytics" object, e.g. Change("totalSalesChange").
func (s DashboardStats) Change(key string) float64 {
	nested, ok := s["analytics"].(map[string]any)
	if !ok {
		return 0
	}
	return DashboardStats(nested).number(key)
}

func (s DashboardStats) number(key string) float64 {
	switch v := s[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}

// SalesPoint is total sales within one date bucket.
type SalesPoint struct {
	StartDate  string          `json:"startDate"`
	EndDate    string          `json:"endDate"`
	TotalSales decimal.Decimal `json:"totalSales"`
}

// SalesData is the sales chart series.
type SalesData struct {
	Data []SalesPoint `json:"data"`
}

// TrafficPoint is the click count for one traffic source.
type TrafficPoint struct {
	Source string `json:"source"`
	Clicks int    `json:"clicks"`
}

// TrafficData is the traffic chart series.
type TrafficData struct {
	Data []TrafficPoint `json:"data"`
}

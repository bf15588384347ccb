package report

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardStats_Accessors(t *testing.T) {
	var stats DashboardStats
	require.NoError(t, json.Unmarshal([]byte(`{
		"totalSales": 1520.5,
		"totalOrders": 42,
		"todaySales": 99.9,
		"totalCustomers": 17,
		"analytics": {"totalSalesChange": 12.5, "totalOrdersChange": -3}
	}`), &stats))

	assert.Equal(t, 1520.5, stats.TotalSales())
	assert.Equal(t, 42, stats.TotalOrders())
	assert.Equal(t, 99.9, stats.TodaySales())
	assert.Equal(t, 17, stats.TotalCustomers())
	assert.Equal(t, 12.5, stats.Change("totalSalesChange"))
	assert.Equal(t, -3.0, stats.Change("totalOrdersChange"))
	assert.Equal(t, 0.0, stats.Change("missing"))
}

func TestDashboardStats_MissingFields(t *testing.T) {
	stats := DashboardStats{"totalSales": "not a number"}

	assert.Equal(t, 0.0, stats.TotalSales())
	assert.Equal(t, 0, stats.TotalOrders())
	assert.Equal(t, 0.0, stats.Change("totalSalesChange"))
	assert.Equal(t, 0.0, DashboardStats(nil).TodaySales())
}

// Package dataset holds the in-memory mock data backing the merchant
// dashboard. All collections are keyed period -> merchant, with a mandatory
// "default" merchant per period that lookups fall back to.
package dataset

import (
	"github.com/sajian-platform/service-dashboard/internal/analytics"
)

// DefaultMerchant is the sentinel merchant key every period must define.
const DefaultMerchant = "default"

// Merchant is one entry of the merchant catalog.
type Merchant struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Cuisine string `json:"cuisine,omitempty"`
}

// Stats are the headline figures for one merchant and period. Previous-period
// totals are seeded alongside so stat-card change direction is a real
// comparison rather than a coin flip.
type Stats struct {
	TotalSales      float64 `json:"total_sales"`
	TotalOrders     int64   `json:"total_orders"`
	AvgOrderValue   float64 `json:"avg_order_value"`
	AvgPrepTime     float64 `json:"avg_prep_time"`
	PrevTotalSales  float64 `json:"prev_total_sales"`
	PrevTotalOrders int64   `json:"prev_total_orders"`
}

// HourlyPoint is sales attributed to one hour of the day (0..23).
type HourlyPoint struct {
	Hour  int     `json:"hour"`
	Value float64 `json:"value"`
}

// DailyPoint is sales attributed to one weekday label (Mon..Sun).
type DailyPoint struct {
	Day   string  `json:"day"`
	Value float64 `json:"value"`
}

// TopItem is one row of the top-selling menu items table.
type TopItem struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Orders   int64   `json:"orders"`
	Revenue  float64 `json:"revenue"`
	PrepTime float64 `json:"prep_time"`
}

// Data is the full mock dataset: one map per collection, each keyed
// period -> merchant. Periods use the capitalized PeriodKey casing.
type Data struct {
	Merchants []Merchant

	Stats      map[analytics.PeriodKey]map[string]Stats
	SalesTrend map[analytics.PeriodKey]map[string][]analytics.SeriesPoint
	Hourly     map[analytics.PeriodKey]map[string][]HourlyPoint
	Daily      map[analytics.PeriodKey]map[string][]DailyPoint
	TopItems   map[analytics.PeriodKey]map[string][]TopItem
	Insights   map[analytics.PeriodKey]map[string][]analytics.InsightRecord
}

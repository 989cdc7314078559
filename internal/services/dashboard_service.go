// Package services composes the analytics core, the mock dataset store and
// the cache into the view models the dashboard UI consumes.
package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sajian-platform/service-dashboard/internal/analytics"
	"github.com/sajian-platform/service-dashboard/internal/dataset"
)

// forecastHorizonDays is how far the sales trend is extended past the last
// observation.
const forecastHorizonDays = 7

// Trend direction tokens for stat cards.
const (
	DirectionUp   = "up"
	DirectionDown = "down"
	DirectionFlat = "flat"
)

// StatSummary is the stat-card block of the dashboard. Change percentages
// compare against the seeded previous-period totals.
type StatSummary struct {
	TotalSales      float64 `json:"total_sales"`
	TotalOrders     int64   `json:"total_orders"`
	AvgOrderValue   float64 `json:"avg_order_value"`
	AvgPrepTime     float64 `json:"avg_prep_time"`
	SalesChangePct  float64 `json:"sales_change_pct"`
	SalesDirection  string  `json:"sales_direction"`
	OrdersChangePct float64 `json:"orders_change_pct"`
	OrdersDirection string  `json:"orders_direction"`
}

// TrendChart is the sales trend chart payload: the raw daily series, the
// period-appropriate buckets (empty at day granularity) and the forecast
// extension.
type TrendChart struct {
	Granularity string                    `json:"granularity"` // day, week or month
	Raw         []analytics.SeriesPoint   `json:"raw"`
	Buckets     []analytics.BucketedPoint `json:"buckets,omitempty"`
	Forecast    []analytics.ForecastPoint `json:"forecast"`
}

// DashboardViewModel is everything the dashboard view renders.
type DashboardViewModel struct {
	MerchantID     string                    `json:"merchant_id"`
	Filter         analytics.TimeFilter      `json:"filter"`
	Range          analytics.DateRange       `json:"range"`
	FormattedRange string                    `json:"formatted_range"`
	ComparisonText string                    `json:"comparison_text"`
	Stats          StatSummary               `json:"stats"`
	SalesTrend     TrendChart                `json:"sales_trend"`
	HourlySales    []dataset.HourlyPoint     `json:"hourly_sales"`
	DailySales     []dataset.DailyPoint      `json:"daily_sales"`
	TopItems       []dataset.TopItem         `json:"top_items"`
	Insights       []analytics.InsightRecord `json:"insights"`
}

// DashboardCache is the view-model cache surface the dashboard service
// reads through. DashboardCacheService is the Redis implementation.
type DashboardCache interface {
	Get(ctx context.Context, merchantID string, filter analytics.TimeFilter, referenceDay string) (*DashboardViewModel, error)
	Set(ctx context.Context, merchantID string, filter analytics.TimeFilter, referenceDay string, vm *DashboardViewModel) error
}

// DashboardService assembles dashboard view models. The reference instant is
// fixed at construction so all range math is deterministic.
type DashboardService struct {
	store     *dataset.Store
	cache     DashboardCache
	settings  *SettingsService
	reference time.Time
	logger    *zap.Logger
}

// NewDashboardService creates the dashboard service. cache may be nil
// (disabled); settings may be nil, in which case the default prep-time
// target applies.
func NewDashboardService(
	store *dataset.Store,
	cache DashboardCache,
	settings *SettingsService,
	reference time.Time,
	logger *zap.Logger,
) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		store:     store,
		cache:     cache,
		settings:  settings,
		reference: reference,
		logger:    logger,
	}
}

// Reference returns the fixed reference instant.
func (s *DashboardService) Reference() time.Time { return s.reference }

// GetDashboard builds the full view model for a merchant and filter token.
// Unrecognized tokens are normalized to week with a warning rather than
// rejected. forceRefresh bypasses the cache read (the result is still
// written back).
func (s *DashboardService) GetDashboard(ctx context.Context, merchantID, filterToken string, forceRefresh bool) (*DashboardViewModel, error) {
	filter := analytics.TimeFilter(filterToken)
	if !filter.Valid() {
		s.logger.Warn("invalid time filter, falling back to week", zap.String("filter", filterToken))
		filter = analytics.FilterWeek
	}

	referenceDay := s.reference.Format("2006-01-02")
	if s.cache != nil && !forceRefresh {
		if cached, _ := s.cache.Get(ctx, merchantID, filter, referenceDay); cached != nil {
			return cached, nil
		}
	}

	period := analytics.PeriodKeyFor(filter)

	stats, err := s.store.Stats(ctx, period, merchantID)
	if err != nil {
		return nil, err
	}
	rawTrend, err := s.store.SalesTrend(ctx, period, merchantID)
	if err != nil {
		return nil, err
	}
	hourly, err := s.store.HourlySales(ctx, period, merchantID)
	if err != nil {
		return nil, err
	}
	daily, err := s.store.DailySales(ctx, period, merchantID)
	if err != nil {
		return nil, err
	}
	topItems, err := s.store.TopItems(ctx, period, merchantID)
	if err != nil {
		return nil, err
	}
	curated, err := s.store.Insights(ctx, period, merchantID)
	if err != nil {
		return nil, err
	}

	trendChart, err := s.buildTrendChart(rawTrend, filter)
	if err != nil {
		return nil, err
	}

	rng := analytics.ResolveRange(s.reference, filter, s.logger)

	vm := &DashboardViewModel{
		MerchantID:     merchantID,
		Filter:         filter,
		Range:          rng,
		FormattedRange: analytics.FormattedRange(rng, filter, s.reference.Year()),
		ComparisonText: analytics.ComparisonText(filter),
		Stats:          buildStatSummary(stats),
		SalesTrend:     trendChart,
		HourlySales:    hourly,
		DailySales:     daily,
		TopItems:       topItems,
		Insights:       s.combineInsights(curated, stats, filter, merchantID),
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, merchantID, filter, referenceDay, vm); err != nil {
			s.logger.Warn("failed to cache dashboard", zap.Error(err))
		}
	}

	return vm, nil
}

// buildTrendChart rolls the raw daily series into period-appropriate buckets
// and appends the linear forecast. Day-scale filters keep the raw series;
// month-scale filters bucket by week; the year filter buckets by month.
func (s *DashboardService) buildTrendChart(raw []analytics.SeriesPoint, filter analytics.TimeFilter) (TrendChart, error) {
	chart := TrendChart{Granularity: "day", Raw: raw}

	switch filter {
	case analytics.FilterMonth, analytics.FilterQuarter, analytics.FilterLast30Days:
		buckets, err := analytics.Aggregate(raw, analytics.GranularityWeek)
		if err != nil {
			return TrendChart{}, err
		}
		chart.Granularity = "week"
		chart.Buckets = buckets
	case analytics.FilterYear:
		buckets, err := analytics.Aggregate(raw, analytics.GranularityMonth)
		if err != nil {
			return TrendChart{}, err
		}
		chart.Granularity = "month"
		chart.Buckets = buckets
	}

	forecast, err := analytics.Forecast(raw, forecastHorizonDays)
	if err != nil {
		return TrendChart{}, err
	}
	chart.Forecast = forecast
	return chart, nil
}

func buildStatSummary(stats dataset.Stats) StatSummary {
	salesPct, salesDir := change(stats.TotalSales, stats.PrevTotalSales)
	ordersPct, ordersDir := change(float64(stats.TotalOrders), float64(stats.PrevTotalOrders))

	return StatSummary{
		TotalSales:      stats.TotalSales,
		TotalOrders:     stats.TotalOrders,
		AvgOrderValue:   stats.AvgOrderValue,
		AvgPrepTime:     stats.AvgPrepTime,
		SalesChangePct:  salesPct,
		SalesDirection:  salesDir,
		OrdersChangePct: ordersPct,
		OrdersDirection: ordersDir,
	}
}

// change computes the percent change against the previous period. A zero
// previous value yields a flat change rather than a division error.
func change(current, previous float64) (float64, string) {
	if previous == 0 {
		return 0, DirectionFlat
	}
	pct := (current - previous) / previous * 100
	switch {
	case pct > 0:
		return pct, DirectionUp
	case pct < 0:
		return pct, DirectionDown
	default:
		return 0, DirectionFlat
	}
}

// combineInsights appends dynamically generated insights after the curated
// ones from the dataset.
func (s *DashboardService) combineInsights(curated []analytics.InsightRecord, stats dataset.Stats, filter analytics.TimeFilter, merchantID string) []analytics.InsightRecord {
	prepTarget := analytics.DefaultPrepTimeTarget
	if s.settings != nil {
		prepTarget = s.settings.PrepTimeTarget(merchantID)
	}

	prep := stats.AvgPrepTime
	sales := stats.TotalSales
	dynamic := analytics.GenerateInsightsWithTarget(analytics.InsightStats{
		PrepTime:   &prep,
		TotalSales: &sales,
	}, filter, prepTarget)

	combined := make([]analytics.InsightRecord, 0, len(curated)+len(dynamic))
	combined = append(combined, curated...)
	combined = append(combined, dynamic...)
	return combined
}

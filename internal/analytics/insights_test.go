package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestGenerateInsightsPrepTimeAlert(t *testing.T) {
	out := GenerateInsights(InsightStats{PrepTime: floatPtr(15.0)}, FilterWeek)

	require.NotEmpty(t, out)
	alert := out[0]
	assert.Equal(t, "Preparation Time Alert", alert.Title)
	assert.Equal(t, SeverityHigh, alert.Severity)
	assert.Equal(t, InsightOperational, alert.Type)
	assert.Contains(t, alert.Description, "15.0")
}

func TestGenerateInsightsPrepTimeBelowTarget(t *testing.T) {
	out := GenerateInsights(InsightStats{PrepTime: floatPtr(12.3)}, FilterWeek)

	assert.Empty(t, out)
}

func TestGenerateInsightsPrepTimeTargetOverride(t *testing.T) {
	stats := InsightStats{PrepTime: floatPtr(12.0)}

	assert.Empty(t, GenerateInsightsWithTarget(stats, FilterWeek, DefaultPrepTimeTarget))
	assert.Len(t, GenerateInsightsWithTarget(stats, FilterWeek, 10.0), 1)
}

func TestGenerateInsightsOutstandingPerformance(t *testing.T) {
	// 9000 against the week benchmark of 8000 is 112.5%.
	out := GenerateInsights(InsightStats{TotalSales: floatPtr(9000)}, FilterWeek)

	require.Len(t, out, 1)
	assert.Equal(t, "Outstanding Performance", out[0].Title)
	assert.Equal(t, InsightBusiness, out[0].Type)
	assert.Equal(t, SeverityLow, out[0].Severity)
	assert.Contains(t, out[0].Description, "12.5")
}

func TestGenerateInsightsSalesOpportunity(t *testing.T) {
	// 5000 against the week benchmark of 8000 is 62.5%.
	out := GenerateInsights(InsightStats{TotalSales: floatPtr(5000)}, FilterWeek)

	require.Len(t, out, 1)
	assert.Equal(t, "Sales Opportunity", out[0].Title)
	assert.Equal(t, InsightBusiness, out[0].Type)
	assert.Equal(t, SeverityMedium, out[0].Severity)
	assert.Contains(t, out[0].Description, "37.5")
}

func TestGenerateInsightsWithinBenchmarkBand(t *testing.T) {
	// Between 90% and 110% no sales insight is produced.
	out := GenerateInsights(InsightStats{TotalSales: floatPtr(8000)}, FilterWeek)
	assert.Empty(t, out)

	out = GenerateInsights(InsightStats{TotalSales: floatPtr(8800)}, FilterWeek) // exactly 110%
	assert.Empty(t, out)

	out = GenerateInsights(InsightStats{TotalSales: floatPtr(7200)}, FilterWeek) // exactly 90%
	assert.Empty(t, out)
}

func TestGenerateInsightsOrdering(t *testing.T) {
	out := GenerateInsights(InsightStats{
		PrepTime:   floatPtr(18.2),
		TotalSales: floatPtr(5000),
	}, FilterWeek)

	require.Len(t, out, 2)
	assert.Equal(t, "Preparation Time Alert", out[0].Title)
	assert.Equal(t, "Sales Opportunity", out[1].Title)
}

func TestGenerateInsightsUnknownFilterUsesWeekBenchmark(t *testing.T) {
	assert.Equal(t, SalesBenchmark(FilterWeek), SalesBenchmark(TimeFilter("bogus")))
	assert.Equal(t, SalesBenchmark(FilterWeek), SalesBenchmark(FilterLast7Days))

	out := GenerateInsights(InsightStats{TotalSales: floatPtr(9000)}, TimeFilter("bogus"))
	require.Len(t, out, 1)
	assert.Equal(t, "Outstanding Performance", out[0].Title)
}

func TestGenerateInsightsDoesNotMutateStats(t *testing.T) {
	prep := 20.0
	sales := 9000.0
	stats := InsightStats{PrepTime: &prep, TotalSales: &sales}

	_ = GenerateInsights(stats, FilterWeek)

	assert.Equal(t, 20.0, prep)
	assert.Equal(t, 9000.0, sales)
}

func TestBenchmarkTable(t *testing.T) {
	assert.Equal(t, 1200.0, SalesBenchmark(FilterToday))
	assert.Equal(t, 8000.0, SalesBenchmark(FilterWeek))
	assert.Equal(t, 32000.0, SalesBenchmark(FilterMonth))
	assert.Equal(t, 380000.0, SalesBenchmark(FilterYear))
}

package analytics

import "fmt"

// InsightType categorizes an advisory record.
type InsightType string

const (
	InsightOperational InsightType = "operational"
	InsightMenu        InsightType = "menu"
	InsightInventory   InsightType = "inventory"
	InsightBusiness    InsightType = "business"
)

// InsightSeverity grades how urgently the merchant should act.
type InsightSeverity string

const (
	SeverityHigh   InsightSeverity = "high"
	SeverityMedium InsightSeverity = "medium"
	SeverityLow    InsightSeverity = "low"
)

// InsightRecord is a short advisory surfaced to the merchant. Records are
// never mutated after creation; the list is rebuilt whenever inputs change.
type InsightRecord struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Type        InsightType     `json:"type"`
	Severity    InsightSeverity `json:"severity"`
}

// InsightStats carries the computed figures the generator compares against
// thresholds. Nil fields are skipped.
type InsightStats struct {
	PrepTime   *float64
	TotalSales *float64
}

// DefaultPrepTimeTarget is the preparation-time threshold in minutes above
// which an operational alert is raised. Merchant settings may override it.
const DefaultPrepTimeTarget = 14.0

// salesBenchmarks are the fixed reference sales figures per time filter.
// Unrecognized filters use the week benchmark.
var salesBenchmarks = map[TimeFilter]float64{
	FilterToday: 1200,
	FilterWeek:  8000,
	FilterMonth: 32000,
	FilterYear:  380000,
}

// SalesBenchmark returns the benchmark sales figure for a filter.
func SalesBenchmark(filter TimeFilter) float64 {
	if b, ok := salesBenchmarks[filter]; ok {
		return b
	}
	return salesBenchmarks[FilterWeek]
}

// GenerateInsights synthesizes advisory records from computed stats using
// the default preparation-time target.
func GenerateInsights(stats InsightStats, filter TimeFilter) []InsightRecord {
	return GenerateInsightsWithTarget(stats, filter, DefaultPrepTimeTarget)
}

// GenerateInsightsWithTarget synthesizes advisory records from computed
// stats. A prep-time insight, if any, always precedes a sales insight.
// The function is pure and does not mutate stats.
func GenerateInsightsWithTarget(stats InsightStats, filter TimeFilter, prepTimeTarget float64) []InsightRecord {
	insights := make([]InsightRecord, 0, 2)

	if stats.PrepTime != nil && *stats.PrepTime > prepTimeTarget {
		insights = append(insights, InsightRecord{
			Title: "Preparation Time Alert",
			Description: fmt.Sprintf(
				"Average preparation time is %.1f minutes, above the %.1f minute target. Review kitchen workflows during peak hours.",
				*stats.PrepTime, prepTimeTarget),
			Type:     InsightOperational,
			Severity: SeverityHigh,
		})
	}

	if stats.TotalSales != nil {
		benchmark := SalesBenchmark(filter)
		performancePct := *stats.TotalSales / benchmark * 100

		switch {
		case performancePct > 110:
			insights = append(insights, InsightRecord{
				Title: "Outstanding Performance",
				Description: fmt.Sprintf(
					"Sales are %v%% above the benchmark for this period. Keep up the momentum.",
					performancePct-100),
				Type:     InsightBusiness,
				Severity: SeverityLow,
			})
		case performancePct < 90:
			insights = append(insights, InsightRecord{
				Title: "Sales Opportunity",
				Description: fmt.Sprintf(
					"Sales are %v%% below the benchmark for this period. Consider a promotion to boost orders.",
					100-performancePct),
				Type:     InsightBusiness,
				Severity: SeverityMedium,
			})
		}
	}

	return insights
}

package dataset

import (
	"time"

	"github.com/sajian-platform/service-dashboard/internal/analytics"
)

// weekdayPattern weighs sales by day of week: quiet Mondays, strong weekends.
var weekdayPattern = []float64{0.82, 0.78, 0.85, 0.95, 1.12, 1.35, 1.28}

// hourPattern weighs sales by hour of day with lunch and dinner peaks.
var hourPattern = []float64{
	0.02, 0.01, 0.00, 0.00, 0.00, 0.02, 0.05, 0.10,
	0.25, 0.40, 0.70, 1.30, 1.60, 1.25, 0.70, 0.45,
	0.50, 0.80, 1.40, 1.70, 1.30, 0.80, 0.40, 0.12,
}

var dayLabels = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Seed builds the full mock dataset anchored to the reference instant, so
// every series ends on the reference day and the data is reproducible for a
// fixed reference.
func Seed(ref time.Time) *Data {
	merchants := []Merchant{
		{ID: DefaultMerchant, Name: "Demo Restaurant", Cuisine: "Mixed"},
		{ID: "warung-nusantara", Name: "Warung Nusantara", Cuisine: "Indonesian"},
		{ID: "bakso-bahagia", Name: "Bakso Bahagia", Cuisine: "Street Food"},
		{ID: "sate-senayan", Name: "Sate Senayan", Cuisine: "Grill"},
	}

	data := &Data{
		Merchants:  merchants,
		Stats:      map[analytics.PeriodKey]map[string]Stats{},
		SalesTrend: map[analytics.PeriodKey]map[string][]analytics.SeriesPoint{},
		Hourly:     map[analytics.PeriodKey]map[string][]HourlyPoint{},
		Daily:      map[analytics.PeriodKey]map[string][]DailyPoint{},
		TopItems:   map[analytics.PeriodKey]map[string][]TopItem{},
		Insights:   map[analytics.PeriodKey]map[string][]analytics.InsightRecord{},
	}

	type periodShape struct {
		key       analytics.PeriodKey
		trendDays int
		dailyBase float64
	}

	shapes := []periodShape{
		{key: analytics.PeriodToday, trendDays: 1, dailyBase: 1150},
		{key: analytics.PeriodWeek, trendDays: 7, dailyBase: 1180},
		{key: analytics.PeriodMonth, trendDays: 30, dailyBase: 1100},
		{key: analytics.PeriodYear, trendDays: 364, dailyBase: 1050},
	}

	for _, shape := range shapes {
		trend := dailySales(ref, shape.trendDays, shape.dailyBase)

		total := 0.0
		for _, p := range trend {
			total += p.Value
		}
		orders := int64(total / 38.5)
		avgOrder := 0.0
		if orders > 0 {
			avgOrder = total / float64(orders)
		}

		stats := Stats{
			TotalSales:      round2(total),
			TotalOrders:     orders,
			AvgOrderValue:   round2(avgOrder),
			AvgPrepTime:     12.4,
			PrevTotalSales:  round2(total * 0.93),
			PrevTotalOrders: int64(float64(orders) * 0.95),
		}

		data.Stats[shape.key] = map[string]Stats{DefaultMerchant: stats}
		data.SalesTrend[shape.key] = map[string][]analytics.SeriesPoint{DefaultMerchant: trend}
		data.Hourly[shape.key] = map[string][]HourlyPoint{DefaultMerchant: hourlySales(shape.dailyBase)}
		data.Daily[shape.key] = map[string][]DailyPoint{DefaultMerchant: weekdaySales(shape.dailyBase)}
		data.TopItems[shape.key] = map[string][]TopItem{DefaultMerchant: defaultTopItems()}
		data.Insights[shape.key] = map[string][]analytics.InsightRecord{DefaultMerchant: curatedInsights(shape.key)}
	}

	// Merchant-specific overrides. Warung Nusantara runs hotter than the
	// default slice and carries a slow kitchen, so its dashboards exercise
	// both dynamic insight branches.
	weekTrend := dailySales(ref, 7, 1560)
	weekTotal := 0.0
	for _, p := range weekTrend {
		weekTotal += p.Value
	}
	weekOrders := int64(weekTotal / 41.0)
	data.Stats[analytics.PeriodWeek]["warung-nusantara"] = Stats{
		TotalSales:      round2(weekTotal),
		TotalOrders:     weekOrders,
		AvgOrderValue:   round2(weekTotal / float64(weekOrders)),
		AvgPrepTime:     16.8,
		PrevTotalSales:  round2(weekTotal * 1.05),
		PrevTotalOrders: int64(float64(weekOrders) * 1.02),
	}
	data.SalesTrend[analytics.PeriodWeek]["warung-nusantara"] = weekTrend
	data.TopItems[analytics.PeriodWeek]["warung-nusantara"] = []TopItem{
		{Name: "Nasi Goreng Spesial", Category: "Main Course", Orders: 212, Revenue: 2544.00, PrepTime: 14.5},
		{Name: "Rendang Daging", Category: "Main Course", Orders: 168, Revenue: 2688.00, PrepTime: 22.0},
		{Name: "Gado-Gado", Category: "Salad", Orders: 131, Revenue: 1179.00, PrepTime: 9.5},
		{Name: "Es Cendol", Category: "Drinks", Orders: 124, Revenue: 496.00, PrepTime: 4.0},
	}

	return data
}

// dailySales generates days daily observations ending on the reference day.
func dailySales(ref time.Time, days int, base float64) []analytics.SeriesPoint {
	series := make([]analytics.SeriesPoint, days)
	for i := 0; i < days; i++ {
		date := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location()).
			AddDate(0, 0, i-days+1)
		weight := weekdayPattern[mondayIndex(date.Weekday())]
		// Mild upward drift across the window keeps forecasts non-flat.
		drift := 1.0 + 0.003*float64(i)
		series[i] = analytics.SeriesPoint{Date: date, Value: round2(base * weight * drift)}
	}
	return series
}

func hourlySales(dailyBase float64) []HourlyPoint {
	points := make([]HourlyPoint, len(hourPattern))
	scale := dailyBase / 14.0
	for hour, weight := range hourPattern {
		points[hour] = HourlyPoint{Hour: hour, Value: round2(scale * weight)}
	}
	return points
}

func weekdaySales(dailyBase float64) []DailyPoint {
	points := make([]DailyPoint, len(dayLabels))
	for i, label := range dayLabels {
		points[i] = DailyPoint{Day: label, Value: round2(dailyBase * weekdayPattern[i])}
	}
	return points
}

func defaultTopItems() []TopItem {
	return []TopItem{
		{Name: "Ayam Geprek", Category: "Main Course", Orders: 186, Revenue: 1953.00, PrepTime: 11.0},
		{Name: "Mie Goreng", Category: "Main Course", Orders: 154, Revenue: 1386.00, PrepTime: 9.0},
		{Name: "Sate Ayam", Category: "Grill", Orders: 128, Revenue: 1536.00, PrepTime: 15.5},
		{Name: "Es Teh Manis", Category: "Drinks", Orders: 241, Revenue: 482.00, PrepTime: 2.0},
		{Name: "Pisang Goreng", Category: "Dessert", Orders: 97, Revenue: 388.00, PrepTime: 6.5},
	}
}

func curatedInsights(period analytics.PeriodKey) []analytics.InsightRecord {
	base := []analytics.InsightRecord{
		{
			Title:       "Dinner Rush Drives Revenue",
			Description: "Orders between 18:00 and 20:00 account for over a third of sales. Keep the full kitchen crew on through 20:30.",
			Type:        analytics.InsightOperational,
			Severity:    analytics.SeverityMedium,
		},
		{
			Title:       "Drinks Attach Rate Is Low",
			Description: "Only one in four food orders includes a drink. A bundled combo could lift average order value.",
			Type:        analytics.InsightMenu,
			Severity:    analytics.SeverityLow,
		},
	}

	if period == analytics.PeriodMonth || period == analytics.PeriodYear {
		base = append(base, analytics.InsightRecord{
			Title:       "Weekend Demand Outpaces Stock",
			Description: "Saturday sellouts of grilled items recur across the period. Consider raising weekend prep quantities by 15%.",
			Type:        analytics.InsightInventory,
			Severity:    analytics.SeverityMedium,
		})
	}
	return base
}

// mondayIndex maps time.Weekday to a Monday-based index 0..6.
func mondayIndex(d time.Weekday) int {
	if d == time.Sunday {
		return 6
	}
	return int(d) - 1
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}

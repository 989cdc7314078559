package analytics

import "time"

// trendWindow is the number of trailing observations used for the trend.
const trendWindow = 5

// ForecastPoint is a synthetic future observation produced by linear
// extrapolation from the last observed value.
type ForecastPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Trend returns the average first difference over the trailing window of up
// to five observations. Fewer than two observations yield a zero trend.
func Trend(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	window := values
	if len(window) > trendWindow {
		window = window[len(window)-trendWindow:]
	}

	sum := 0.0
	for i := 1; i < len(window); i++ {
		sum += window[i] - window[i-1]
	}
	return sum / float64(len(window)-1)
}

// ForecastNext projects the series forward by linear extrapolation:
// point i is lastValue + trend*i. An empty series or zero horizon yields an
// empty result. This is not a statistical regression; there is no seasonality
// and no confidence interval.
func ForecastNext(values []float64, horizonDays int) []float64 {
	if horizonDays <= 0 || len(values) == 0 {
		return []float64{}
	}

	trend := Trend(values)
	last := values[len(values)-1]

	out := make([]float64, horizonDays)
	for i := 1; i <= horizonDays; i++ {
		out[i-1] = last + trend*float64(i)
	}
	return out
}

// ForecastLabels returns MM/dd labels for the horizon days immediately
// following lastDate.
func ForecastLabels(lastDate time.Time, horizonDays int) []string {
	if horizonDays <= 0 {
		return []string{}
	}

	labels := make([]string, horizonDays)
	for i := 1; i <= horizonDays; i++ {
		labels[i-1] = lastDate.AddDate(0, 0, i).Format("01/02")
	}
	return labels
}

// Forecast extends a sorted daily series with labeled forecast points.
// Unsorted input returns ErrMalformedSeries; an empty series yields an empty
// forecast rather than an error.
func Forecast(series []SeriesPoint, horizonDays int) ([]ForecastPoint, error) {
	if len(series) == 0 || horizonDays <= 0 {
		return []ForecastPoint{}, nil
	}
	if err := checkSorted(series); err != nil {
		return nil, err
	}

	values := make([]float64, len(series))
	for i, p := range series {
		values[i] = p.Value
	}

	projected := ForecastNext(values, horizonDays)
	labels := ForecastLabels(series[len(series)-1].Date, horizonDays)

	points := make([]ForecastPoint, horizonDays)
	for i := range points {
		points[i] = ForecastPoint{Label: labels[i], Value: projected[i]}
	}
	return points, nil
}

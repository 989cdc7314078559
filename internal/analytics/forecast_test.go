package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrend(t *testing.T) {
	assert.Equal(t, 0.0, Trend(nil))
	assert.Equal(t, 0.0, Trend([]float64{42}))
	assert.Equal(t, 1.0, Trend([]float64{1, 2, 3, 4, 5}))
	assert.Equal(t, -2.0, Trend([]float64{10, 8, 6, 4, 2}))

	// Only the trailing five observations count.
	assert.Equal(t, 1.0, Trend([]float64{100, 100, 100, 1, 2, 3, 4, 5}))
}

func TestForecastNextFlatWhenTooFewObservations(t *testing.T) {
	// With fewer than two observations the trend is zero, so every forecast
	// value equals the last observed value.
	for _, values := range [][]float64{{250}, {}} {
		out := ForecastNext(values, 4)
		if len(values) == 0 {
			assert.Empty(t, out)
			continue
		}
		require.Len(t, out, 4)
		for _, v := range out {
			assert.Equal(t, values[len(values)-1], v)
		}
	}
}

func TestForecastNextLinearExtrapolation(t *testing.T) {
	out := ForecastNext([]float64{1, 2, 3, 4, 5}, 3)

	assert.Equal(t, []float64{6, 7, 8}, out)
}

func TestForecastNextZeroHorizon(t *testing.T) {
	assert.Empty(t, ForecastNext([]float64{1, 2, 3}, 0))
}

func TestForecastLabels(t *testing.T) {
	last := time.Date(2023, 12, 30, 0, 0, 0, 0, time.Local)

	labels := ForecastLabels(last, 3)
	assert.Equal(t, []string{"12/31", "01/01", "01/02"}, labels)

	assert.Empty(t, ForecastLabels(last, 0))
}

func TestForecastSeries(t *testing.T) {
	start := time.Date(2023, 12, 26, 0, 0, 0, 0, time.Local)
	series := dailySeries(start, 100, 110, 120, 130, 140)

	points, err := Forecast(series, 2)
	require.NoError(t, err)
	require.Len(t, points, 2)

	assert.Equal(t, ForecastPoint{Label: "12/31", Value: 150}, points[0])
	assert.Equal(t, ForecastPoint{Label: "01/01", Value: 160}, points[1])
}

func TestForecastRejectsUnsortedSeries(t *testing.T) {
	start := time.Date(2023, 12, 26, 0, 0, 0, 0, time.Local)
	series := dailySeries(start, 1, 2, 3)
	series[0], series[1] = series[1], series[0]

	_, err := Forecast(series, 2)
	assert.ErrorIs(t, err, ErrMalformedSeries)
}

func TestForecastEmptySeries(t *testing.T) {
	points, err := Forecast(nil, 5)
	require.NoError(t, err)
	assert.Empty(t, points)
}

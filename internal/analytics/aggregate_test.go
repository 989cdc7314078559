package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dailySeries(start time.Time, values ...float64) []SeriesPoint {
	series := make([]SeriesPoint, len(values))
	for i, v := range values {
		series[i] = SeriesPoint{Date: start.AddDate(0, 0, i), Value: v}
	}
	return series
}

func TestAggregateEmptySeries(t *testing.T) {
	for _, g := range []Granularity{GranularityWeek, GranularityMonth} {
		out, err := Aggregate(nil, g)
		require.NoError(t, err)
		assert.Empty(t, out)
	}
}

func TestAggregateWeeklyChunks(t *testing.T) {
	start := time.Date(2023, 12, 1, 0, 0, 0, 0, time.Local)
	series := dailySeries(start, 1, 2, 3, 4, 5, 6, 7, 10, 20, 30)

	out, err := Aggregate(series, GranularityWeek)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "Week 1", out[0].PeriodLabel)
	assert.Equal(t, 28.0, out[0].Value)
	assert.Equal(t, start, out[0].Date)

	// Trailing partial chunk is still its own bucket.
	assert.Equal(t, "Week 2", out[1].PeriodLabel)
	assert.Equal(t, 60.0, out[1].Value)
	assert.Equal(t, start.AddDate(0, 0, 7), out[1].Date)
}

func TestAggregateWeeklyChunksFollowInputOrderNotCalendar(t *testing.T) {
	// Start mid-week on a Thursday; chunk boundaries are positional.
	start := time.Date(2023, 12, 28, 0, 0, 0, 0, time.Local)
	series := dailySeries(start, 5, 5, 5, 5, 5, 5, 5, 1)

	out, err := Aggregate(series, GranularityWeek)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, 35.0, out[0].Value)
	assert.Equal(t, 1.0, out[1].Value)
}

func TestAggregateMonthlyGroupsAndPreservesSum(t *testing.T) {
	start := time.Date(2023, 11, 20, 0, 0, 0, 0, time.Local)
	series := dailySeries(start,
		100, 110, 120, 130, 140, 150, 160, 170, 180, 190, // Nov 20-29
		200, 210, 220, 230, 240) // Nov 30, Dec 1-4

	out, err := Aggregate(series, GranularityMonth)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "Nov 2023", out[0].PeriodLabel)
	assert.Equal(t, "Dec 2023", out[1].PeriodLabel)
	assert.Equal(t, start, out[0].Date)
	assert.Equal(t, time.Date(2023, 12, 1, 0, 0, 0, 0, time.Local), out[1].Date)

	inputSum, outputSum := 0.0, 0.0
	for _, p := range series {
		inputSum += p.Value
	}
	for _, b := range out {
		outputSum += b.Value
	}
	assert.InDelta(t, inputSum, outputSum, 1e-9, "aggregation must neither lose nor double count")
}

func TestAggregateWeeklyPreservesSum(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	series := dailySeries(start, 3, 1, 4, 1, 5, 9, 2, 6, 5, 3, 5, 8, 9, 7, 9, 3)

	out, err := Aggregate(series, GranularityWeek)
	require.NoError(t, err)

	inputSum, outputSum := 0.0, 0.0
	for _, p := range series {
		inputSum += p.Value
	}
	for _, b := range out {
		outputSum += b.Value
	}
	assert.InDelta(t, inputSum, outputSum, 1e-9)
}

func TestAggregateRejectsUnsortedSeries(t *testing.T) {
	start := time.Date(2023, 12, 1, 0, 0, 0, 0, time.Local)
	series := dailySeries(start, 1, 2, 3)
	series[1], series[2] = series[2], series[1]

	_, err := Aggregate(series, GranularityWeek)
	assert.ErrorIs(t, err, ErrMalformedSeries)
}

func TestAggregateRejectsDuplicateDates(t *testing.T) {
	day := time.Date(2023, 12, 1, 0, 0, 0, 0, time.Local)
	series := []SeriesPoint{{Date: day, Value: 1}, {Date: day, Value: 2}}

	_, err := Aggregate(series, GranularityMonth)
	assert.ErrorIs(t, err, ErrMalformedSeries)
}

func TestAggregateUnsupportedGranularity(t *testing.T) {
	series := dailySeries(time.Date(2023, 12, 1, 0, 0, 0, 0, time.Local), 1)

	_, err := Aggregate(series, Granularity("decade"))
	assert.Error(t, err)
}

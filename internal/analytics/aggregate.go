package analytics

import (
	"errors"
	"fmt"
	"time"
)

// ErrMalformedSeries indicates a series that violates the input contract of
// the aggregator or forecaster: observations must be sorted ascending by
// date with no duplicate days. An empty series is not malformed.
var ErrMalformedSeries = errors.New("series must be sorted ascending by date without duplicates")

// SeriesPoint is one raw daily observation of a metric.
type SeriesPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// BucketedPoint is the output of period aggregation. Value is the sum of all
// observations falling in the bucket; Date is the first observation's date.
type BucketedPoint struct {
	PeriodLabel string    `json:"period_label"`
	Date        time.Time `json:"date"`
	Value       float64   `json:"value"`
}

// Granularity is the target bucket size for aggregation.
type Granularity string

const (
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// Aggregate rolls a sorted daily series up into coarser buckets.
//
// Week granularity partitions the series into consecutive chunks of 7 points
// in input order (not calendar-aligned), labeled "Week {n}"; a trailing
// partial chunk is emitted as its own bucket. Month granularity groups by
// (year, month) in first-occurrence order with "MMM yyyy" labels.
//
// The series is not re-sorted; unsorted input returns ErrMalformedSeries.
// An empty series yields an empty result.
func Aggregate(series []SeriesPoint, granularity Granularity) ([]BucketedPoint, error) {
	if len(series) == 0 {
		return []BucketedPoint{}, nil
	}
	if err := checkSorted(series); err != nil {
		return nil, err
	}

	switch granularity {
	case GranularityWeek:
		return aggregateWeekly(series), nil
	case GranularityMonth:
		return aggregateMonthly(series), nil
	default:
		return nil, fmt.Errorf("unsupported granularity %q", granularity)
	}
}

func aggregateWeekly(series []SeriesPoint) []BucketedPoint {
	buckets := make([]BucketedPoint, 0, (len(series)+6)/7)
	for chunk := 0; chunk*7 < len(series); chunk++ {
		start := chunk * 7
		end := start + 7
		if end > len(series) {
			end = len(series)
		}

		sum := 0.0
		for _, p := range series[start:end] {
			sum += p.Value
		}
		buckets = append(buckets, BucketedPoint{
			PeriodLabel: fmt.Sprintf("Week %d", chunk+1),
			Date:        series[start].Date,
			Value:       sum,
		})
	}
	return buckets
}

func aggregateMonthly(series []SeriesPoint) []BucketedPoint {
	type monthKey struct {
		year  int
		month time.Month
	}

	buckets := make([]BucketedPoint, 0)
	index := make(map[monthKey]int)

	for _, p := range series {
		key := monthKey{year: p.Date.Year(), month: p.Date.Month()}
		i, seen := index[key]
		if !seen {
			index[key] = len(buckets)
			buckets = append(buckets, BucketedPoint{
				PeriodLabel: p.Date.Format("Jan 2006"),
				Date:        p.Date,
				Value:       p.Value,
			})
			continue
		}
		buckets[i].Value += p.Value
	}
	return buckets
}

// checkSorted enforces strictly increasing calendar days.
func checkSorted(series []SeriesPoint) error {
	for i := 1; i < len(series); i++ {
		prev, cur := series[i-1].Date, series[i].Date
		if !startOfDay(cur).After(startOfDay(prev)) {
			return fmt.Errorf("%w: index %d (%s) not after index %d (%s)",
				ErrMalformedSeries,
				i, cur.Format("2006-01-02"),
				i-1, prev.Format("2006-01-02"))
		}
	}
	return nil
}

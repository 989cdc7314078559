// Package analytics implements the time-filtered aggregation core of the
// merchant dashboard: date-range resolution, period bucketing, trend
// forecasting and insight generation. All functions are pure; the reference
// instant substituting for "now" is always caller-supplied.
package analytics

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// TimeFilter selects the reporting window for dashboard queries.
type TimeFilter string

// Supported time filter tokens.
const (
	FilterToday      TimeFilter = "today"
	FilterYesterday  TimeFilter = "yesterday"
	FilterWeek       TimeFilter = "week"
	FilterMonth      TimeFilter = "month"
	FilterQuarter    TimeFilter = "quarter"
	FilterYear       TimeFilter = "year"
	FilterLast7Days  TimeFilter = "last7days"
	FilterLast30Days TimeFilter = "last30days"
)

// PeriodKey is the canonical casing used by the dataset store. Time filter
// tokens are lowercase at the API boundary; dataset keys are capitalized.
// PeriodKeyFor is the single normalization point between the two.
type PeriodKey string

// Dataset period keys.
const (
	PeriodToday PeriodKey = "Today"
	PeriodWeek  PeriodKey = "Week"
	PeriodMonth PeriodKey = "Month"
	PeriodYear  PeriodKey = "Year"
)

// DateRange is an inclusive wall-clock range. Start is normalized to
// 00:00:00.000 and End to 23:59:59.999 of their calendar days.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Valid reports whether the token is a recognized time filter.
func (f TimeFilter) Valid() bool {
	switch f {
	case FilterToday, FilterYesterday, FilterWeek, FilterMonth,
		FilterQuarter, FilterYear, FilterLast7Days, FilterLast30Days:
		return true
	}
	return false
}

// PeriodKeyFor maps a time filter token to the dataset period key.
// Narrow windows map to Today, week-scale windows to Week, month-scale
// windows to Month and the year filter to Year. Unrecognized tokens map
// to Week, matching the range-resolution fallback.
func PeriodKeyFor(filter TimeFilter) PeriodKey {
	switch filter {
	case FilterToday, FilterYesterday:
		return PeriodToday
	case FilterWeek, FilterLast7Days:
		return PeriodWeek
	case FilterMonth, FilterQuarter, FilterLast30Days:
		return PeriodMonth
	case FilterYear:
		return PeriodYear
	default:
		return PeriodWeek
	}
}

// ResolveRange computes the inclusive [start, end] range for a filter
// relative to the reference instant. Weeks are Monday-aligned. Unknown
// tokens log a warning and resolve as week.
func ResolveRange(reference time.Time, filter TimeFilter, logger *zap.Logger) DateRange {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch filter {
	case FilterToday:
		return DateRange{Start: startOfDay(reference), End: endOfDay(reference)}

	case FilterYesterday:
		y := reference.AddDate(0, 0, -1)
		return DateRange{Start: startOfDay(y), End: endOfDay(y)}

	case FilterWeek:
		// Monday..Sunday containing the reference date.
		offset := weekStartOffset(reference.Weekday())
		start := startOfDay(reference.AddDate(0, 0, offset))
		return DateRange{Start: start, End: endOfDay(start.AddDate(0, 0, 6))}

	case FilterMonth:
		start := time.Date(reference.Year(), reference.Month(), 1, 0, 0, 0, 0, reference.Location())
		return DateRange{Start: start, End: endOfDay(start.AddDate(0, 1, -1))}

	case FilterQuarter:
		quarter := (int(reference.Month()) - 1) / 3
		start := time.Date(reference.Year(), time.Month(quarter*3+1), 1, 0, 0, 0, 0, reference.Location())
		return DateRange{Start: start, End: endOfDay(start.AddDate(0, 3, -1))}

	case FilterYear:
		start := time.Date(reference.Year(), time.January, 1, 0, 0, 0, 0, reference.Location())
		return DateRange{Start: start, End: endOfDay(time.Date(reference.Year(), time.December, 31, 0, 0, 0, 0, reference.Location()))}

	case FilterLast7Days:
		// Reference day counts as day 1 of the window.
		return DateRange{Start: startOfDay(reference.AddDate(0, 0, -6)), End: endOfDay(reference)}

	case FilterLast30Days:
		return DateRange{Start: startOfDay(reference.AddDate(0, 0, -29)), End: endOfDay(reference)}

	default:
		logger.Warn("unknown time filter, falling back to week", zap.String("filter", string(filter)))
		return ResolveRange(reference, FilterWeek, logger)
	}
}

// weekStartOffset returns the day offset from the given weekday back to the
// Monday of the same week.
func weekStartOffset(day time.Weekday) int {
	if day == time.Sunday {
		return -6
	}
	return 1 - int(day)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999_000_000, t.Location())
}

// ComparisonText returns the fixed "vs. previous period" phrase for a filter.
func ComparisonText(filter TimeFilter) string {
	switch filter {
	case FilterToday:
		return "vs. yesterday"
	case FilterWeek:
		return "vs. last week"
	case FilterMonth:
		return "vs. last month"
	case FilterQuarter:
		return "vs. last quarter"
	case FilterYear:
		return "vs. last year"
	case FilterLast7Days:
		return "vs. previous 7 days"
	case FilterLast30Days:
		return "vs. previous 30 days"
	default:
		return "vs. previous period"
	}
}

// FormattedRange renders a date range for display. Today and yesterday use
// literal labels; single-day ranges collapse to one date; otherwise both
// sides are rendered "MMM d", each including the year only when it differs
// from the reference year.
func FormattedRange(r DateRange, filter TimeFilter, referenceYear int) string {
	switch filter {
	case FilterToday:
		return "Today"
	case FilterYesterday:
		return "Yesterday"
	}

	if sameDay(r.Start, r.End) {
		return formatSide(r.Start, referenceYear)
	}
	return fmt.Sprintf("%s - %s", formatSide(r.Start, referenceYear), formatSide(r.End, referenceYear))
}

func formatSide(t time.Time, referenceYear int) string {
	if t.Year() != referenceYear {
		return t.Format("Jan 2, 2006")
	}
	return t.Format("Jan 2")
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

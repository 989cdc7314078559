package dataset

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sajian-platform/service-dashboard/internal/analytics"
)

// Store serves the mock dataset with simulated retrieval latency. It is
// read-only after construction, so concurrent use needs no locking.
type Store struct {
	data    *Data
	latency time.Duration
	logger  *zap.Logger
}

// NewStore validates the dataset and wraps it in a store. Validation fails
// if any defined period is missing its "default" merchant entry; this turns
// a silent lookup miss into an explicit load-time error.
func NewStore(data *Data, latency time.Duration, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := validate(data); err != nil {
		return nil, err
	}
	return &Store{data: data, latency: latency, logger: logger}, nil
}

func validate(data *Data) error {
	if data == nil {
		return fmt.Errorf("%w: nil dataset", ErrInvalidDataset)
	}

	check := func(name string, periods map[analytics.PeriodKey]bool, hasDefault map[analytics.PeriodKey]bool) error {
		for period := range periods {
			if !hasDefault[period] {
				return fmt.Errorf("%w: collection %s period %s has no %q merchant", ErrInvalidDataset, name, period, DefaultMerchant)
			}
		}
		return nil
	}

	if err := check("stats", periodSet(data.Stats), defaultSet(data.Stats)); err != nil {
		return err
	}
	if err := check("sales_trend", periodSet(data.SalesTrend), defaultSet(data.SalesTrend)); err != nil {
		return err
	}
	if err := check("hourly", periodSet(data.Hourly), defaultSet(data.Hourly)); err != nil {
		return err
	}
	if err := check("daily", periodSet(data.Daily), defaultSet(data.Daily)); err != nil {
		return err
	}
	if err := check("top_items", periodSet(data.TopItems), defaultSet(data.TopItems)); err != nil {
		return err
	}
	if err := check("insights", periodSet(data.Insights), defaultSet(data.Insights)); err != nil {
		return err
	}
	return nil
}

func periodSet[T any](m map[analytics.PeriodKey]map[string]T) map[analytics.PeriodKey]bool {
	set := make(map[analytics.PeriodKey]bool, len(m))
	for period := range m {
		set[period] = true
	}
	return set
}

func defaultSet[T any](m map[analytics.PeriodKey]map[string]T) map[analytics.PeriodKey]bool {
	set := make(map[analytics.PeriodKey]bool, len(m))
	for period, merchants := range m {
		if _, ok := merchants[DefaultMerchant]; ok {
			set[period] = true
		}
	}
	return set
}

// lookup resolves period -> merchant with the documented fallback chain:
// missing period falls back to Week, missing merchant falls back to the
// "default" entry. Both absent is a dataset defect surfaced as
// ErrDataNotFound.
func lookup[T any](m map[analytics.PeriodKey]map[string]T, period analytics.PeriodKey, merchantID string) (T, error) {
	var zero T

	merchants, ok := m[period]
	if !ok {
		merchants, ok = m[analytics.PeriodWeek]
		if !ok {
			return zero, fmt.Errorf("%w: period %s", ErrDataNotFound, period)
		}
	}

	if records, ok := merchants[merchantID]; ok {
		return records, nil
	}
	if records, ok := merchants[DefaultMerchant]; ok {
		return records, nil
	}
	return zero, fmt.Errorf("%w: period %s merchant %s", ErrDataNotFound, period, merchantID)
}

// wait simulates network latency for mock retrievals. It respects context
// cancellation but performs no retries or timeouts of its own.
func (s *Store) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.latency):
		return nil
	}
}

// Merchants returns the merchant catalog.
func (s *Store) Merchants(ctx context.Context) ([]Merchant, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return s.data.Merchants, nil
}

// Merchant returns one catalog entry by ID.
func (s *Store) Merchant(ctx context.Context, merchantID string) (*Merchant, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	for i := range s.data.Merchants {
		if s.data.Merchants[i].ID == merchantID {
			return &s.data.Merchants[i], nil
		}
	}
	return nil, fmt.Errorf("%w: merchant %s", ErrDataNotFound, merchantID)
}

// Stats returns headline stats for a merchant and period.
func (s *Store) Stats(ctx context.Context, period analytics.PeriodKey, merchantID string) (Stats, error) {
	if err := s.wait(ctx); err != nil {
		return Stats{}, err
	}
	return lookup(s.data.Stats, period, merchantID)
}

// SalesTrend returns the raw daily sales series.
func (s *Store) SalesTrend(ctx context.Context, period analytics.PeriodKey, merchantID string) ([]analytics.SeriesPoint, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return lookup(s.data.SalesTrend, period, merchantID)
}

// HourlySales returns per-hour sales for the period.
func (s *Store) HourlySales(ctx context.Context, period analytics.PeriodKey, merchantID string) ([]HourlyPoint, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return lookup(s.data.Hourly, period, merchantID)
}

// DailySales returns per-weekday sales for the period.
func (s *Store) DailySales(ctx context.Context, period analytics.PeriodKey, merchantID string) ([]DailyPoint, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return lookup(s.data.Daily, period, merchantID)
}

// TopItems returns the top-selling menu items.
func (s *Store) TopItems(ctx context.Context, period analytics.PeriodKey, merchantID string) ([]TopItem, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return lookup(s.data.TopItems, period, merchantID)
}

// Insights returns the curated insight records.
func (s *Store) Insights(ctx context.Context, period analytics.PeriodKey, merchantID string) ([]analytics.InsightRecord, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return lookup(s.data.Insights, period, merchantID)
}

package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sajian-platform/service-dashboard/internal/analytics"
	"github.com/sajian-platform/service-dashboard/internal/dataset"
)

// fakeDashboardCache records cache traffic so the read/bypass/write-back
// paths can be observed without a Redis instance.
type fakeDashboardCache struct {
	stored      map[string]*DashboardViewModel
	gets        int
	sets        int
	invalidated []string
}

func newFakeDashboardCache() *fakeDashboardCache {
	return &fakeDashboardCache{stored: make(map[string]*DashboardViewModel)}
}

func (f *fakeDashboardCache) key(merchantID string, filter analytics.TimeFilter, referenceDay string) string {
	return merchantID + ":" + string(filter) + ":" + referenceDay
}

func (f *fakeDashboardCache) Get(_ context.Context, merchantID string, filter analytics.TimeFilter, referenceDay string) (*DashboardViewModel, error) {
	f.gets++
	return f.stored[f.key(merchantID, filter, referenceDay)], nil
}

func (f *fakeDashboardCache) Set(_ context.Context, merchantID string, filter analytics.TimeFilter, referenceDay string, vm *DashboardViewModel) error {
	f.sets++
	f.stored[f.key(merchantID, filter, referenceDay)] = vm
	return nil
}

func (f *fakeDashboardCache) Invalidate(_ context.Context, merchantID string) error {
	f.invalidated = append(f.invalidated, merchantID)
	for key := range f.stored {
		if strings.HasPrefix(key, merchantID+":") {
			delete(f.stored, key)
		}
	}
	return nil
}

func newCachedDashboardService(t *testing.T, cache DashboardCache) *DashboardService {
	t.Helper()
	store, err := dataset.NewStore(dataset.Seed(testReference), 0, nil)
	require.NoError(t, err)
	return NewDashboardService(store, cache, NewSettingsService(nil, nil), testReference, nil)
}

func TestCacheServiceNilClientIsNoOp(t *testing.T) {
	svc := NewDashboardCacheService(nil, 0, nil)
	ctx := context.Background()

	vm, err := svc.Get(ctx, dataset.DefaultMerchant, analytics.FilterWeek, "2023-12-30")
	assert.NoError(t, err)
	assert.Nil(t, vm)

	assert.NoError(t, svc.Set(ctx, dataset.DefaultMerchant, analytics.FilterWeek, "2023-12-30", &DashboardViewModel{}))
	assert.NoError(t, svc.Invalidate(ctx, dataset.DefaultMerchant))
}

func TestCacheKeyIncludesMerchantFilterAndDay(t *testing.T) {
	svc := NewDashboardCacheService(nil, 0, nil)

	key := svc.cacheKey("warung-nusantara", analytics.FilterMonth, "2023-12-30")
	assert.Equal(t, "dashboard:vm:warung-nusantara:month:2023-12-30", key)
}

func TestGetDashboardServesCachedViewModel(t *testing.T) {
	cache := newFakeDashboardCache()
	svc := newCachedDashboardService(t, cache)
	ctx := context.Background()

	first, err := svc.GetDashboard(ctx, dataset.DefaultMerchant, "week", false)
	require.NoError(t, err)
	require.Equal(t, 1, cache.sets)

	second, err := svc.GetDashboard(ctx, dataset.DefaultMerchant, "week", false)
	require.NoError(t, err)
	assert.Same(t, first, second)
	// Served from cache, not reassembled.
	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, 2, cache.gets)
}

func TestGetDashboardForceRefreshBypassesCacheRead(t *testing.T) {
	cache := newFakeDashboardCache()
	svc := newCachedDashboardService(t, cache)
	ctx := context.Background()

	first, err := svc.GetDashboard(ctx, dataset.DefaultMerchant, "week", false)
	require.NoError(t, err)

	refreshed, err := svc.GetDashboard(ctx, dataset.DefaultMerchant, "week", true)
	require.NoError(t, err)

	// The cached entry is skipped, a fresh view model is assembled and
	// written back.
	assert.NotSame(t, first, refreshed)
	assert.Equal(t, first, refreshed)
	assert.Equal(t, 1, cache.gets)
	assert.Equal(t, 2, cache.sets)
}

func TestSettingsUpdateInvalidatesCachedDashboards(t *testing.T) {
	cache := newFakeDashboardCache()
	store, err := dataset.NewStore(dataset.Seed(testReference), 0, nil)
	require.NoError(t, err)
	settings := NewSettingsService(cache, nil)
	svc := NewDashboardService(store, cache, settings, testReference, nil)
	ctx := context.Background()

	before, err := svc.GetDashboard(ctx, dataset.DefaultMerchant, "week", false)
	require.NoError(t, err)
	var titles []string
	for _, ins := range before.Insights {
		titles = append(titles, ins.Title)
	}
	require.NotContains(t, titles, "Preparation Time Alert")

	// Lowering the target below the seeded 12.4 minute prep time must be
	// visible on the very next read, not after the cache TTL.
	settings.Update(ctx, dataset.DefaultMerchant, MerchantSettings{
		Language:              "en",
		NotificationsEnabled:  true,
		PrepTimeTargetMinutes: 10,
	})
	assert.Equal(t, []string{dataset.DefaultMerchant}, cache.invalidated)

	after, err := svc.GetDashboard(ctx, dataset.DefaultMerchant, "week", false)
	require.NoError(t, err)
	titles = titles[:0]
	for _, ins := range after.Insights {
		titles = append(titles, ins.Title)
	}
	assert.Contains(t, titles, "Preparation Time Alert")
}

package services

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/sajian-platform/service-dashboard/internal/analytics"
)

// MerchantSettings are the per-merchant preferences editable from the
// settings page.
type MerchantSettings struct {
	Language              string  `json:"language"`
	NotificationsEnabled  bool    `json:"notifications_enabled"`
	PrepTimeTargetMinutes float64 `json:"prep_time_target_minutes"`
}

// CacheInvalidator drops cached dashboard view models for a merchant.
// The prep-time target baked into cached insights changes with the
// merchant's settings, so every settings update must invalidate.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, merchantID string) error
}

// SettingsService holds merchant settings in memory. Merchants that never
// saved settings get the defaults.
type SettingsService struct {
	mu       sync.RWMutex
	settings map[string]MerchantSettings
	cache    CacheInvalidator
	logger   *zap.Logger
}

// NewSettingsService creates an empty settings service. cache may be nil
// when no dashboard cache is configured.
func NewSettingsService(cache CacheInvalidator, logger *zap.Logger) *SettingsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsService{
		settings: make(map[string]MerchantSettings),
		cache:    cache,
		logger:   logger,
	}
}

func defaultSettings() MerchantSettings {
	return MerchantSettings{
		Language:              "en",
		NotificationsEnabled:  true,
		PrepTimeTargetMinutes: analytics.DefaultPrepTimeTarget,
	}
}

// Get returns the merchant's settings, falling back to defaults.
func (s *SettingsService) Get(merchantID string) MerchantSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if settings, ok := s.settings[merchantID]; ok {
		return settings
	}
	return defaultSettings()
}

// Update replaces the merchant's settings and invalidates the merchant's
// cached dashboards, since the prep-time target feeds the generated
// insights. A non-positive prep-time target is reset to the default so the
// insight generator always has a sane threshold.
func (s *SettingsService) Update(ctx context.Context, merchantID string, settings MerchantSettings) MerchantSettings {
	if settings.PrepTimeTargetMinutes <= 0 {
		settings.PrepTimeTargetMinutes = analytics.DefaultPrepTimeTarget
	}
	if settings.Language == "" {
		settings.Language = "en"
	}

	s.mu.Lock()
	s.settings[merchantID] = settings
	s.mu.Unlock()

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, merchantID); err != nil {
			s.logger.Warn("failed to invalidate dashboard cache after settings update",
				zap.Error(err),
				zap.String("merchant_id", merchantID),
			)
		}
	}

	s.logger.Debug("merchant settings updated", zap.String("merchant_id", merchantID))
	return settings
}

// PrepTimeTarget returns the merchant's preparation-time threshold in
// minutes.
func (s *SettingsService) PrepTimeTarget(merchantID string) float64 {
	return s.Get(merchantID).PrepTimeTargetMinutes
}

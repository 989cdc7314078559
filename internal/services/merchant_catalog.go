package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/sajian-platform/service-dashboard/internal/dataset"
)

// MerchantCatalog exposes the merchant list to the UI shell. Retrieval goes
// through the dataset store, which simulates network latency.
type MerchantCatalog struct {
	store  *dataset.Store
	logger *zap.Logger
}

// NewMerchantCatalog creates a merchant catalog backed by the dataset store.
func NewMerchantCatalog(store *dataset.Store, logger *zap.Logger) *MerchantCatalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MerchantCatalog{store: store, logger: logger}
}

// GetMerchants returns all merchants.
func (c *MerchantCatalog) GetMerchants(ctx context.Context) ([]dataset.Merchant, error) {
	merchants, err := c.store.Merchants(ctx)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("fetched merchants", zap.Int("count", len(merchants)))
	return merchants, nil
}

// GetMerchant returns one merchant by ID.
func (c *MerchantCatalog) GetMerchant(ctx context.Context, merchantID string) (*dataset.Merchant, error) {
	return c.store.Merchant(ctx, merchantID)
}

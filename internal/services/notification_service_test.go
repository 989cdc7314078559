package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sajian-platform/service-dashboard/internal/events"
)

func TestNotificationSeedAndList(t *testing.T) {
	svc := NewNotificationService([]string{"default"}, testReference, nil)

	feed := svc.List("default")
	require.Len(t, feed, 2)
	// Newest first.
	assert.True(t, feed[0].CreatedAt.After(feed[1].CreatedAt))
	assert.Equal(t, 2, svc.UnreadCount("default"))
}

func TestNotificationAddAndMarkRead(t *testing.T) {
	svc := NewNotificationService(nil, testReference, nil)

	n := svc.Add("default", "New order", "Order #42 received.", "order")
	require.NotEmpty(t, n.ID)
	assert.Equal(t, 1, svc.UnreadCount("default"))

	require.NoError(t, svc.MarkRead("default", n.ID))
	assert.Equal(t, 0, svc.UnreadCount("default"))

	feed := svc.List("default")
	require.Len(t, feed, 1)
	assert.True(t, feed[0].Read)
}

func TestNotificationMarkReadUnknown(t *testing.T) {
	svc := NewNotificationService(nil, testReference, nil)

	err := svc.MarkRead("default", "missing")
	assert.ErrorIs(t, err, ErrNotificationNotFound)
}

func TestNotificationMarkAllRead(t *testing.T) {
	svc := NewNotificationService([]string{"default"}, testReference, nil)
	svc.Add("default", "New order", "Order #7 received.", "order")

	require.Equal(t, 3, svc.UnreadCount("default"))
	svc.MarkAllRead("default")
	assert.Equal(t, 0, svc.UnreadCount("default"))
}

func TestNotificationEventHandlers(t *testing.T) {
	svc := NewNotificationService(nil, testReference, nil)

	require.NoError(t, svc.HandleOrderCreated(&events.OrderCreatedEvent{
		OrderID:    "ord-1",
		MerchantID: "default",
		Total:      125000,
		ItemCount:  3,
	}))
	require.NoError(t, svc.HandleOrderCancelled(&events.OrderCancelledEvent{
		OrderID:    "ord-1",
		MerchantID: "default",
		Reason:     "customer request",
	}))
	require.NoError(t, svc.HandleReviewCreated(&events.ReviewCreatedEvent{
		ReviewID:   "rev-1",
		MerchantID: "default",
		Rating:     5,
	}))

	feed := svc.List("default")
	assert.Len(t, feed, 3)
	assert.Equal(t, 3, svc.UnreadCount("default"))
}

func TestSettingsDefaultsAndUpdate(t *testing.T) {
	svc := NewSettingsService(nil, nil)

	got := svc.Get("default")
	assert.Equal(t, "en", got.Language)
	assert.True(t, got.NotificationsEnabled)
	assert.InDelta(t, 14.0, got.PrepTimeTargetMinutes, 1e-9)

	updated := svc.Update(context.Background(), "default", MerchantSettings{
		Language:              "id",
		NotificationsEnabled:  false,
		PrepTimeTargetMinutes: 12,
	})
	assert.Equal(t, "id", updated.Language)
	assert.False(t, updated.NotificationsEnabled)
	assert.InDelta(t, 12.0, svc.PrepTimeTarget("default"), 1e-9)

	// Per-merchant isolation.
	other := svc.Get("warung-nusantara")
	assert.Equal(t, "en", other.Language)
}

func TestSettingsRejectsNonPositiveTarget(t *testing.T) {
	svc := NewSettingsService(nil, nil)

	updated := svc.Update(context.Background(), "default", MerchantSettings{
		Language:              "en",
		NotificationsEnabled:  true,
		PrepTimeTargetMinutes: -3,
	})
	assert.InDelta(t, 14.0, updated.PrepTimeTargetMinutes, 1e-9)
}

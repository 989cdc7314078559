package services

import (
	"fmt"

	"github.com/sajian-platform/service-dashboard/internal/events"
)

// NotificationService implements events.Handler so platform events land in
// the notification feed.

// HandleOrderCreated turns an order event into a notification.
func (s *NotificationService) HandleOrderCreated(event *events.OrderCreatedEvent) error {
	s.Add(event.MerchantID,
		"New order received",
		fmt.Sprintf("Order %s: %d items for %.2f.", event.OrderID, event.ItemCount, event.Total),
		"order",
	)
	return nil
}

// HandleOrderCancelled turns a cancellation into a notification.
func (s *NotificationService) HandleOrderCancelled(event *events.OrderCancelledEvent) error {
	body := fmt.Sprintf("Order %s was cancelled.", event.OrderID)
	if event.Reason != "" {
		body = fmt.Sprintf("Order %s was cancelled: %s.", event.OrderID, event.Reason)
	}
	s.Add(event.MerchantID, "Order cancelled", body, "order")
	return nil
}

// HandleReviewCreated turns a review into a notification.
func (s *NotificationService) HandleReviewCreated(event *events.ReviewCreatedEvent) error {
	s.Add(event.MerchantID,
		"New review received",
		fmt.Sprintf("A customer left a %d-star review on your store.", event.Rating),
		"review",
	)
	return nil
}

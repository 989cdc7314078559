package services

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notification is one entry of the merchant's notification feed.
type Notification struct {
	ID         string    `json:"id"`
	MerchantID string    `json:"merchant_id"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	Type       string    `json:"type"` // order, review or system
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"created_at"`
}

// ErrNotificationNotFound is returned when marking an unknown notification.
var ErrNotificationNotFound = errors.New("notification not found")

// NotificationService keeps the notification feed in memory, newest first.
// Entries arrive from the seed data and, when NATS is configured, from
// platform order and review events.
type NotificationService struct {
	mu     sync.RWMutex
	feed   map[string][]*Notification // merchant -> notifications
	logger *zap.Logger
}

// NewNotificationService creates a service with a small seeded feed per
// merchant so the UI has content before any event arrives.
func NewNotificationService(merchantIDs []string, reference time.Time, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &NotificationService{
		feed:   make(map[string][]*Notification),
		logger: logger,
	}

	for _, id := range merchantIDs {
		s.feed[id] = []*Notification{
			{
				ID:         uuid.NewString(),
				MerchantID: id,
				Title:      "Weekly report ready",
				Body:       "Your sales report for last week is ready to view.",
				Type:       "system",
				CreatedAt:  reference.Add(-2 * time.Hour),
			},
			{
				ID:         uuid.NewString(),
				MerchantID: id,
				Title:      "New review received",
				Body:       "A customer left a 5-star review on your store.",
				Type:       "review",
				CreatedAt:  reference.Add(-26 * time.Hour),
			},
		}
	}
	return s
}

// Add appends a notification to a merchant's feed and returns it.
func (s *NotificationService) Add(merchantID, title, body, kind string) *Notification {
	n := &Notification{
		ID:         uuid.NewString(),
		MerchantID: merchantID,
		Title:      title,
		Body:       body,
		Type:       kind,
		CreatedAt:  time.Now(),
	}

	s.mu.Lock()
	s.feed[merchantID] = append(s.feed[merchantID], n)
	s.mu.Unlock()

	s.logger.Debug("notification added",
		zap.String("merchant_id", merchantID),
		zap.String("type", kind),
	)
	return n
}

// List returns the merchant's notifications, newest first.
func (s *NotificationService) List(merchantID string) []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	feed := s.feed[merchantID]
	out := make([]Notification, len(feed))
	for i, n := range feed {
		out[i] = *n
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// UnreadCount returns how many notifications are unread.
func (s *NotificationService) UnreadCount(merchantID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, n := range s.feed[merchantID] {
		if !n.Read {
			count++
		}
	}
	return count
}

// MarkRead marks one notification as read.
func (s *NotificationService) MarkRead(merchantID, notificationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range s.feed[merchantID] {
		if n.ID == notificationID {
			n.Read = true
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNotificationNotFound, notificationID)
}

// MarkAllRead marks every notification for the merchant as read.
func (s *NotificationService) MarkAllRead(merchantID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range s.feed[merchantID] {
		n.Read = true
	}
}

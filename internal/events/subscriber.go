// Package events wires platform events into the notification feed over NATS.
// The subscriber is optional: the service runs fully without a broker.
package events

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Event subjects published by the ordering platform.
const (
	SubjectOrderCreated   = "order.created"
	SubjectOrderCancelled = "order.cancelled"
	SubjectReviewCreated  = "review.created"
)

// OrderCreatedEvent is emitted when a customer places an order.
type OrderCreatedEvent struct {
	OrderID    string    `json:"order_id"`
	MerchantID string    `json:"merchant_id"`
	Total      float64   `json:"total"`
	ItemCount  int       `json:"item_count"`
	Timestamp  time.Time `json:"timestamp"`
}

// OrderCancelledEvent is emitted when an order is cancelled.
type OrderCancelledEvent struct {
	OrderID    string    `json:"order_id"`
	MerchantID string    `json:"merchant_id"`
	Reason     string    `json:"reason"`
	Timestamp  time.Time `json:"timestamp"`
}

// ReviewCreatedEvent is emitted when a customer leaves a review.
type ReviewCreatedEvent struct {
	ReviewID   string    `json:"review_id"`
	MerchantID string    `json:"merchant_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	Timestamp  time.Time `json:"timestamp"`
}

// Handler receives decoded platform events.
type Handler interface {
	HandleOrderCreated(event *OrderCreatedEvent) error
	HandleOrderCancelled(event *OrderCancelledEvent) error
	HandleReviewCreated(event *ReviewCreatedEvent) error
}

// Subscriber handles NATS event subscriptions.
type Subscriber struct {
	nc      *nats.Conn
	logger  *zap.Logger
	handler Handler
	subs    []*nats.Subscription
}

// NewSubscriber creates a new NATS subscriber.
func NewSubscriber(nc *nats.Conn, handler Handler, logger *zap.Logger) *Subscriber {
	return &Subscriber{
		nc:      nc,
		logger:  logger,
		handler: handler,
		subs:    make([]*nats.Subscription, 0),
	}
}

// Start subscribes to all relevant events.
func (s *Subscriber) Start() error {
	sub, err := s.nc.Subscribe(SubjectOrderCreated, s.handleOrderCreated)
	if err != nil {
		return err
	}
	s.subs = append(s.subs, sub)
	s.logger.Info("Subscribed to event", zap.String("subject", SubjectOrderCreated))

	sub, err = s.nc.Subscribe(SubjectOrderCancelled, s.handleOrderCancelled)
	if err != nil {
		return err
	}
	s.subs = append(s.subs, sub)
	s.logger.Info("Subscribed to event", zap.String("subject", SubjectOrderCancelled))

	sub, err = s.nc.Subscribe(SubjectReviewCreated, s.handleReviewCreated)
	if err != nil {
		return err
	}
	s.subs = append(s.subs, sub)
	s.logger.Info("Subscribed to event", zap.String("subject", SubjectReviewCreated))

	s.logger.Info("NATS subscriber started with all subscriptions")
	return nil
}

// Stop unsubscribes from all events.
func (s *Subscriber) Stop() {
	for _, sub := range s.subs {
		sub.Unsubscribe()
	}
	s.logger.Info("NATS subscriber stopped")
}

func (s *Subscriber) handleOrderCreated(msg *nats.Msg) {
	var event OrderCreatedEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		s.logger.Error("Failed to unmarshal order created event", zap.Error(err))
		return
	}

	s.logger.Info("Received order created event",
		zap.String("order_id", event.OrderID),
		zap.String("merchant_id", event.MerchantID),
		zap.Float64("total", event.Total),
	)

	if err := s.handler.HandleOrderCreated(&event); err != nil {
		s.logger.Error("Failed to handle order created event", zap.Error(err))
	}
}

func (s *Subscriber) handleOrderCancelled(msg *nats.Msg) {
	var event OrderCancelledEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		s.logger.Error("Failed to unmarshal order cancelled event", zap.Error(err))
		return
	}

	s.logger.Info("Received order cancelled event",
		zap.String("order_id", event.OrderID),
		zap.String("merchant_id", event.MerchantID),
	)

	if err := s.handler.HandleOrderCancelled(&event); err != nil {
		s.logger.Error("Failed to handle order cancelled event", zap.Error(err))
	}
}

func (s *Subscriber) handleReviewCreated(msg *nats.Msg) {
	var event ReviewCreatedEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		s.logger.Error("Failed to unmarshal review created event", zap.Error(err))
		return
	}

	s.logger.Info("Received review created event",
		zap.String("review_id", event.ReviewID),
		zap.String("merchant_id", event.MerchantID),
		zap.Int("rating", event.Rating),
	)

	if err := s.handler.HandleReviewCreated(&event); err != nil {
		s.logger.Error("Failed to handle review created event", zap.Error(err))
	}
}

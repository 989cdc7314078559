package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sajian-platform/service-dashboard/internal/analytics"
	"github.com/sajian-platform/service-dashboard/internal/dataset"
	"github.com/sajian-platform/service-dashboard/internal/i18n"
)

// Chat message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatVisualization is a chart or table payload embedded in an assistant
// reply. Exactly one of the data fields is populated depending on Kind.
type ChatVisualization struct {
	Kind     string                    `json:"kind"` // line, bar or table
	Title    string                    `json:"title"`
	Points   []analytics.SeriesPoint   `json:"points,omitempty"`
	Hourly   []dataset.HourlyPoint     `json:"hourly,omitempty"`
	Forecast []analytics.ForecastPoint `json:"forecast,omitempty"`
	Items    []dataset.TopItem         `json:"items,omitempty"`
}

// ChatMessage is one entry of a chat transcript.
type ChatMessage struct {
	ID            string             `json:"id"`
	SessionID     string             `json:"session_id"`
	Role          string             `json:"role"`
	Text          string             `json:"text"`
	Visualization *ChatVisualization `json:"visualization,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

// ChatService is the canned AI assistant: replies are selected by keyword
// routing over the mock dataset, not by inference.
type ChatService struct {
	store      *dataset.Store
	translator *i18n.Translator
	reference  time.Time
	logger     *zap.Logger

	mu          sync.RWMutex
	transcripts map[string][]ChatMessage
}

// NewChatService creates the chat assistant.
func NewChatService(store *dataset.Store, translator *i18n.Translator, reference time.Time, logger *zap.Logger) *ChatService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatService{
		store:       store,
		translator:  translator,
		reference:   reference,
		logger:      logger,
		transcripts: make(map[string][]ChatMessage),
	}
}

// Suggestions returns the questions offered in the chat panel.
func (s *ChatService) Suggestions() []string {
	return []string{
		"How are my sales trending this week?",
		"What are my top selling items?",
		"When is my busiest hour?",
		"How is my preparation time?",
		"What does the sales forecast look like?",
	}
}

// Transcript returns the messages recorded for a session, oldest first.
func (s *ChatService) Transcript(sessionID string) []ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	transcript := s.transcripts[sessionID]
	out := make([]ChatMessage, len(transcript))
	copy(out, transcript)
	return out
}

// Ask records the user's message, selects a canned reply and records it too.
// The reply is returned. A first message opens the session with the
// assistant's localized greeting.
func (s *ChatService) Ask(ctx context.Context, sessionID, merchantID, text string) (*ChatMessage, error) {
	newSession := sessionID == ""
	if newSession {
		sessionID = uuid.NewString()
	}

	userMsg := ChatMessage{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Role:      RoleUser,
		Text:      text,
		CreatedAt: time.Now(),
	}

	reply, err := s.answer(ctx, merchantID, text)
	if err != nil {
		return nil, err
	}
	reply.ID = uuid.NewString()
	reply.SessionID = sessionID
	reply.Role = RoleAssistant
	reply.CreatedAt = time.Now()

	var greeting ChatMessage
	if newSession {
		greeting = s.greeting(ctx, sessionID, merchantID)
	}

	s.mu.Lock()
	if newSession {
		s.transcripts[sessionID] = append(s.transcripts[sessionID], greeting)
	}
	s.transcripts[sessionID] = append(s.transcripts[sessionID], userMsg, *reply)
	s.mu.Unlock()

	return reply, nil
}

// greeting builds the assistant message that opens a session, addressing
// the merchant by catalog name when it resolves.
func (s *ChatService) greeting(ctx context.Context, sessionID, merchantID string) ChatMessage {
	name := merchantID
	if merchant, err := s.store.Merchant(ctx, merchantID); err == nil {
		name = merchant.Name
	}

	return ChatMessage{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Role:      RoleAssistant,
		Text:      s.translator.T("chat.greeting", map[string]string{"name": name}),
		CreatedAt: time.Now(),
	}
}

// answer routes the question to a canned response over the mock dataset.
func (s *ChatService) answer(ctx context.Context, merchantID, text string) (*ChatMessage, error) {
	q := strings.ToLower(text)

	switch {
	case strings.Contains(q, "forecast"):
		return s.forecastReply(ctx, merchantID)
	case strings.Contains(q, "trend") || strings.Contains(q, "sales"):
		return s.trendReply(ctx, merchantID)
	case strings.Contains(q, "top") || strings.Contains(q, "best") || strings.Contains(q, "popular"):
		return s.topItemsReply(ctx, merchantID)
	case strings.Contains(q, "hour") || strings.Contains(q, "busiest") || strings.Contains(q, "busy"):
		return s.busiestHourReply(ctx, merchantID)
	case strings.Contains(q, "prep"):
		return s.prepTimeReply(ctx, merchantID)
	default:
		return &ChatMessage{Text: s.translator.T("chat.fallback", nil)}, nil
	}
}

func (s *ChatService) trendReply(ctx context.Context, merchantID string) (*ChatMessage, error) {
	series, err := s.store.SalesTrend(ctx, analytics.PeriodWeek, merchantID)
	if err != nil {
		return nil, err
	}
	stats, err := s.store.Stats(ctx, analytics.PeriodWeek, merchantID)
	if err != nil {
		return nil, err
	}

	pct, dir := change(stats.TotalSales, stats.PrevTotalSales)
	var phrase string
	switch dir {
	case DirectionUp:
		phrase = fmt.Sprintf("up %.1f%% on last week", pct)
	case DirectionDown:
		phrase = fmt.Sprintf("down %.1f%% on last week", -pct)
	default:
		phrase = "level with last week"
	}

	return &ChatMessage{
		Text: fmt.Sprintf("This week you made %.2f in sales across %d orders, %s. Here is the daily breakdown.",
			stats.TotalSales, stats.TotalOrders, phrase),
		Visualization: &ChatVisualization{
			Kind:   "line",
			Title:  "Sales This Week",
			Points: series,
		},
	}, nil
}

func (s *ChatService) forecastReply(ctx context.Context, merchantID string) (*ChatMessage, error) {
	series, err := s.store.SalesTrend(ctx, analytics.PeriodWeek, merchantID)
	if err != nil {
		return nil, err
	}

	forecast, err := analytics.Forecast(series, forecastHorizonDays)
	if err != nil {
		return nil, err
	}

	text := "There is not enough history yet to project sales."
	if len(forecast) > 0 {
		text = fmt.Sprintf("Projecting the recent trend forward, sales on %s land around %.2f.",
			forecast[len(forecast)-1].Label, forecast[len(forecast)-1].Value)
	}

	return &ChatMessage{
		Text: text,
		Visualization: &ChatVisualization{
			Kind:     "line",
			Title:    "7-Day Sales Forecast",
			Points:   series,
			Forecast: forecast,
		},
	}, nil
}

func (s *ChatService) topItemsReply(ctx context.Context, merchantID string) (*ChatMessage, error) {
	items, err := s.store.TopItems(ctx, analytics.PeriodWeek, merchantID)
	if err != nil {
		return nil, err
	}

	text := "No item sales recorded for this period yet."
	if len(items) > 0 {
		text = fmt.Sprintf("Your best seller this week is %s with %d orders.", items[0].Name, items[0].Orders)
	}

	return &ChatMessage{
		Text: text,
		Visualization: &ChatVisualization{
			Kind:  "table",
			Title: "Top Selling Items",
			Items: items,
		},
	}, nil
}

func (s *ChatService) busiestHourReply(ctx context.Context, merchantID string) (*ChatMessage, error) {
	hourly, err := s.store.HourlySales(ctx, analytics.PeriodWeek, merchantID)
	if err != nil {
		return nil, err
	}

	peak := dataset.HourlyPoint{}
	for _, p := range hourly {
		if p.Value > peak.Value {
			peak = p
		}
	}

	return &ChatMessage{
		Text: fmt.Sprintf("Your busiest hour is %02d:00 with about %.2f in sales.", peak.Hour, peak.Value),
		Visualization: &ChatVisualization{
			Kind:   "bar",
			Title:  "Sales by Hour",
			Hourly: hourly,
		},
	}, nil
}

func (s *ChatService) prepTimeReply(ctx context.Context, merchantID string) (*ChatMessage, error) {
	stats, err := s.store.Stats(ctx, analytics.PeriodWeek, merchantID)
	if err != nil {
		return nil, err
	}

	text := fmt.Sprintf("Your average preparation time is %.1f minutes, within the %.1f minute target.",
		stats.AvgPrepTime, analytics.DefaultPrepTimeTarget)
	if stats.AvgPrepTime > analytics.DefaultPrepTimeTarget {
		text = fmt.Sprintf("Your average preparation time is %.1f minutes, above the %.1f minute target. Reviewing peak-hour staffing could bring it down.",
			stats.AvgPrepTime, analytics.DefaultPrepTimeTarget)
	}

	return &ChatMessage{Text: text}, nil
}

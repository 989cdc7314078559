package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sajian-platform/service-dashboard/internal/dataset"
	"github.com/sajian-platform/service-dashboard/internal/handlers"
	"github.com/sajian-platform/service-dashboard/internal/i18n"
	"github.com/sajian-platform/service-dashboard/internal/routes"
	"github.com/sajian-platform/service-dashboard/internal/services"
)

var handlerReference = time.Date(2023, 12, 30, 12, 0, 0, 0, time.Local)

func newTestRouter(t *testing.T) (*gin.Engine, *services.NotificationService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := dataset.NewStore(dataset.Seed(handlerReference), 0, nil)
	require.NoError(t, err)

	settings := services.NewSettingsService(nil, nil)
	dashboards := services.NewDashboardService(store, nil, settings, handlerReference, nil)
	chat := services.NewChatService(store, i18n.New("en"), handlerReference, nil)
	notifications := services.NewNotificationService([]string{dataset.DefaultMerchant}, handlerReference, nil)
	catalog := services.NewMerchantCatalog(store, nil)

	router := gin.New()
	routes.SetupRoutes(router, &routes.RouteConfig{
		DashboardHandler:    handlers.NewDashboardHandler(dashboards, zap.NewNop()),
		ChatHandler:         handlers.NewChatHandler(chat, zap.NewNop()),
		MerchantHandler:     handlers.NewMerchantHandler(catalog, zap.NewNop()),
		NotificationHandler: handlers.NewNotificationHandler(notifications, zap.NewNop()),
		SettingsHandler:     handlers.NewSettingsHandler(settings, zap.NewNop()),
	})
	return router, notifications
}

func doRequest(t *testing.T, router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var decoded map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}

func TestGetDashboardEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w, body := doRequest(t, router, http.MethodGet, "/api/v1/merchants/default/dashboard?filter=week", "")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "week", body["filter"])
	assert.Equal(t, "Dec 25 - Dec 31", body["formatted_range"])
	assert.Contains(t, body, "stats")
	assert.Contains(t, body, "sales_trend")
	assert.Contains(t, body, "insights")
}

func TestGetDashboardEndpointNormalizesFilter(t *testing.T) {
	router, _ := newTestRouter(t)

	w, body := doRequest(t, router, http.MethodGet, "/api/v1/merchants/default/dashboard?filter=fortnight", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "week", body["filter"])
}

func TestGetDashboardSectionEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	for path, key := range map[string]string{
		"/api/v1/merchants/default/dashboard/sales-trend":  "sales_trend",
		"/api/v1/merchants/default/dashboard/hourly-sales": "hourly_sales",
		"/api/v1/merchants/default/dashboard/daily-sales":  "daily_sales",
		"/api/v1/merchants/default/dashboard/top-items":    "top_items",
		"/api/v1/merchants/default/dashboard/insights":     "insights",
	} {
		w, body := doRequest(t, router, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, body, key, path)
		assert.Contains(t, body, "formatted_range", path)
	}
}

func TestGetMerchantsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w, body := doRequest(t, router, http.MethodGet, "/api/v1/merchants", "")
	require.Equal(t, http.StatusOK, w.Code)

	merchants, ok := body["merchants"].([]any)
	require.True(t, ok)
	assert.NotEmpty(t, merchants)
}

func TestGetMerchantNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	w, body := doRequest(t, router, http.MethodGet, "/api/v1/merchants/no-such-merchant", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Merchant not found", body["error"])
}

func TestChatEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	w, body := doRequest(t, router, http.MethodGet, "/api/v1/chat/suggestions", "")
	require.Equal(t, http.StatusOK, w.Code)
	suggestions, ok := body["suggestions"].([]any)
	require.True(t, ok)
	assert.Len(t, suggestions, 5)

	w, body = doRequest(t, router, http.MethodPost, "/api/v1/chat/messages",
		`{"merchant_id":"default","text":"How are my sales trending?"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "assistant", body["role"])
	session, ok := body["session_id"].(string)
	require.True(t, ok)
	require.NotEmpty(t, session)

	// Greeting plus the user/assistant exchange.
	w, body = doRequest(t, router, http.MethodGet, "/api/v1/chat/sessions/"+session, "")
	require.Equal(t, http.StatusOK, w.Code)
	messages, ok := body["messages"].([]any)
	require.True(t, ok)
	assert.Len(t, messages, 3)
}

func TestChatPostMessageValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	w, body := doRequest(t, router, http.MethodPost, "/api/v1/chat/messages", `{"text":"hi"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "merchant_id and text are required", body["error"])
}

func TestNotificationEndpoints(t *testing.T) {
	router, svc := newTestRouter(t)

	w, body := doRequest(t, router, http.MethodGet, "/api/v1/merchants/default/notifications", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, body["unread_count"])

	first := svc.List(dataset.DefaultMerchant)[0]
	w, _ = doRequest(t, router, http.MethodPost, "/api/v1/merchants/default/notifications/"+first.ID+"/read", "")
	require.Equal(t, http.StatusOK, w.Code)

	_, body = doRequest(t, router, http.MethodGet, "/api/v1/merchants/default/notifications", "")
	assert.EqualValues(t, 1, body["unread_count"])

	w, _ = doRequest(t, router, http.MethodPost, "/api/v1/merchants/default/notifications/read-all", "")
	require.Equal(t, http.StatusOK, w.Code)

	_, body = doRequest(t, router, http.MethodGet, "/api/v1/merchants/default/notifications", "")
	assert.EqualValues(t, 0, body["unread_count"])
}

func TestNotificationMarkReadNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	w, body := doRequest(t, router, http.MethodPost, "/api/v1/merchants/default/notifications/missing/read", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Notification not found", body["error"])
}

func TestSettingsEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	w, body := doRequest(t, router, http.MethodGet, "/api/v1/merchants/default/settings", "")
	require.Equal(t, http.StatusOK, w.Code)
	settings, ok := body["settings"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "en", settings["language"])

	w, body = doRequest(t, router, http.MethodPut, "/api/v1/merchants/default/settings",
		`{"language":"id","notifications_enabled":false,"prep_time_target_minutes":12}`)
	require.Equal(t, http.StatusOK, w.Code)
	settings, ok = body["settings"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "id", settings["language"])
	assert.EqualValues(t, 12, settings["prep_time_target_minutes"])
}

func TestSettingsUpdateRejectsBadPayload(t *testing.T) {
	router, _ := newTestRouter(t)

	w, body := doRequest(t, router, http.MethodPut, "/api/v1/merchants/default/settings", `{"language":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid settings payload", body["error"])
}

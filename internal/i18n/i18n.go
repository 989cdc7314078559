// Package i18n renders translated label text. The analytics core owns the
// values substituted into each message; this package only owns the phrasing.
package i18n

import "strings"

// Translator resolves message keys for a fixed locale, interpolating
// {param} placeholders. Unknown keys fall back to English, then to the key
// itself so a missing catalog entry is visible rather than blank.
type Translator struct {
	locale string
}

// New returns a translator for the locale, defaulting to English when the
// locale has no catalog.
func New(locale string) *Translator {
	if _, ok := catalogs[locale]; !ok {
		locale = "en"
	}
	return &Translator{locale: locale}
}

// Locale returns the resolved locale code.
func (tr *Translator) Locale() string { return tr.locale }

// T resolves a message key and interpolates params.
func (tr *Translator) T(key string, params map[string]string) string {
	msg, ok := catalogs[tr.locale][key]
	if !ok {
		msg, ok = catalogs["en"][key]
	}
	if !ok {
		return key
	}

	for name, value := range params {
		msg = strings.ReplaceAll(msg, "{"+name+"}", value)
	}
	return msg
}

var catalogs = map[string]map[string]string{
	"en": {
		"dashboard.title":           "Dashboard",
		"dashboard.total_sales":     "Total Sales",
		"dashboard.total_orders":    "Total Orders",
		"dashboard.avg_order_value": "Avg. Order Value",
		"dashboard.avg_prep_time":   "Avg. Prep Time",
		"dashboard.top_items":       "Top Selling Items",
		"dashboard.ai_insights":     "AI Insights",
		"chat.greeting":             "Hi {name}! Ask me anything about your restaurant's performance.",
		"chat.fallback":             "I can help with sales trends, top items, preparation times and forecasts. Try one of the suggested questions.",
		"notifications.title":       "Notifications",
		"settings.title":            "Settings",
		"error.dashboard_load":      "Failed to load dashboard data",
	},
	"id": {
		"dashboard.title":           "Dasbor",
		"dashboard.total_sales":     "Total Penjualan",
		"dashboard.total_orders":    "Total Pesanan",
		"dashboard.avg_order_value": "Rata-rata Nilai Pesanan",
		"dashboard.avg_prep_time":   "Rata-rata Waktu Persiapan",
		"dashboard.top_items":       "Menu Terlaris",
		"dashboard.ai_insights":     "Wawasan AI",
		"chat.greeting":             "Hai {name}! Tanyakan apa saja tentang performa restoran Anda.",
		"chat.fallback":             "Saya dapat membantu dengan tren penjualan, menu terlaris, waktu persiapan dan prakiraan. Coba salah satu pertanyaan yang disarankan.",
		"notifications.title":       "Notifikasi",
		"settings.title":            "Pengaturan",
		"error.dashboard_load":      "Gagal memuat data dasbor",
	},
}

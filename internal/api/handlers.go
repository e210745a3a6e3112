package api

import (
	"net/http"
	"strconv"
	"time"

	"marketmood/internal/api/cache"
	"marketmood/internal/domain/forecast"
	"marketmood/internal/domain/signal"
	"marketmood/internal/domain/trend"
	"marketmood/internal/services/forecasting"
	"marketmood/internal/services/trends"
	"marketmood/pkg/logger"
)

// recent-data lookback bounds, in hours
const (
	minRecentHours = 1
	maxRecentHours = 168
)

// HandlerConfig carries the serving defaults applied when a request
// omits a query parameter
type HandlerConfig struct {
	DefaultWindowHours int
	DefaultThreshold   float64
	DefaultHorizonDays int
}

// Handlers serves the public JSON API
type Handlers struct {
	trends    *trends.Service
	forecasts *forecasting.Service
	store     signal.Store
	cache     *cache.Cache
	cfg       HandlerConfig
	log       *logger.Logger
}

// NewHandlers creates the API handler set
func NewHandlers(
	trendService *trends.Service,
	forecastService *forecasting.Service,
	store signal.Store,
	serveCache *cache.Cache,
	cfg HandlerConfig,
	log *logger.Logger,
) *Handlers {
	return &Handlers{
		trends:    trendService,
		forecasts: forecastService,
		store:     store,
		cache:     serveCache,
		cfg:       cfg,
		log:       log,
	}
}

// Register attaches all API routes to the mux
func (h *Handlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/trends/detect", h.HandleDetectTrends)
	mux.HandleFunc("GET /api/trends/warnings", h.HandleWarnings)
	mux.HandleFunc("GET /api/forecast/category/{category}", h.HandleForecastCategory)
	mux.HandleFunc("GET /api/forecast/all", h.HandleForecastAll)
	mux.HandleFunc("GET /api/data/stats", h.HandleDataStats)
	mux.HandleFunc("GET /api/data/recent", h.HandleDataRecent)
}

// HandleDetectTrends runs trend detection over the requested window
func (h *Handlers) HandleDetectTrends(w http.ResponseWriter, r *http.Request) {
	windowHours, err := queryInt(r, "window_hours", h.cfg.DefaultWindowHours)
	if err != nil {
		respondBadRequest(w, "window_hours must be an integer")
		return
	}

	key := cache.TrendsKey(windowHours)
	var cached []trend.Trend
	if h.cache.Get(r.Context(), key, &cached) {
		respondList(w, cached, len(cached))
		return
	}

	detected, err := h.trends.DetectTrends(r.Context(), windowHours)
	if err != nil {
		h.log.Errorw("Trend detection request failed", "window_hours", windowHours, "error", err)
		respondError(w, err)
		return
	}

	h.cache.Set(r.Context(), key, detected)
	respondList(w, detected, len(detected))
}

// HandleWarnings returns early warnings above the requested strength.
// Warnings are never served from cache: the alert level depends on the
// moment of evaluation.
func (h *Handlers) HandleWarnings(w http.ResponseWriter, r *http.Request) {
	threshold, err := queryFloat(r, "threshold", h.cfg.DefaultThreshold)
	if err != nil {
		respondBadRequest(w, "threshold must be a number")
		return
	}

	warnings, err := h.trends.GetEarlyWarnings(r.Context(), threshold)
	if err != nil {
		h.log.Errorw("Warnings request failed", "threshold", threshold, "error", err)
		respondError(w, err)
		return
	}

	respondList(w, warnings, len(warnings))
}

// HandleForecastCategory forecasts demand for a single category
func (h *Handlers) HandleForecastCategory(w http.ResponseWriter, r *http.Request) {
	category := r.PathValue("category")
	if !h.knownCategory(category) {
		respondBadRequest(w, "unknown category: "+category)
		return
	}

	daysAhead, err := queryInt(r, "days_ahead", h.cfg.DefaultHorizonDays)
	if err != nil {
		respondBadRequest(w, "days_ahead must be an integer")
		return
	}

	model := r.URL.Query().Get("model")
	if model == "" {
		model = forecast.ModelEnsemble
	}

	key := cache.ForecastKey(category, daysAhead, model)
	var cached forecast.Result
	if h.cache.Get(r.Context(), key, &cached) {
		respondData(w, cached)
		return
	}

	result, err := h.forecasts.ForecastCategory(r.Context(), category, daysAhead, model)
	if err != nil {
		h.log.Errorw("Forecast request failed",
			"category", category,
			"days_ahead", daysAhead,
			"model", model,
			"error", err,
		)
		respondError(w, err)
		return
	}

	h.cache.Set(r.Context(), key, result)
	respondData(w, result)
}

// HandleForecastAll forecasts demand for every configured category
func (h *Handlers) HandleForecastAll(w http.ResponseWriter, r *http.Request) {
	daysAhead, err := queryInt(r, "days_ahead", h.cfg.DefaultHorizonDays)
	if err != nil {
		respondBadRequest(w, "days_ahead must be an integer")
		return
	}

	results, err := h.forecasts.ForecastAllCategories(r.Context(), daysAhead)
	if err != nil {
		h.log.Errorw("Forecast-all request failed", "days_ahead", daysAhead, "error", err)
		respondError(w, err)
		return
	}

	respondData(w, results)
}

// HandleDataStats returns per-kind record counts across the whole store
func (h *Handlers) HandleDataStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.Stats(r.Context())
	if err != nil {
		h.log.Errorw("Stats request failed", "error", err)
		respondError(w, err)
		return
	}

	respondData(w, stats)
}

// recentData groups the windowed reads of every signal kind
type recentData struct {
	Articles        []signal.Article            `json:"articles"`
	SocialPosts     []signal.SocialPost         `json:"social_posts"`
	SearchVolumes   []signal.SearchVolumeSample `json:"search_volumes"`
	SalesRecords    []signal.SalesRecord        `json:"sales_records"`
	DiscussionPosts []signal.DiscussionPost     `json:"discussion_posts"`
}

// HandleDataRecent returns records collected within the last N hours from
// every signal source
func (h *Handlers) HandleDataRecent(w http.ResponseWriter, r *http.Request) {
	hours, err := queryInt(r, "hours", 24)
	if err != nil {
		respondBadRequest(w, "hours must be an integer")
		return
	}
	if hours < minRecentHours || hours > maxRecentHours {
		respondBadRequest(w, "hours must be between 1 and 168")
		return
	}

	ctx := r.Context()
	window := signal.WindowEndingNow(time.Duration(hours) * time.Hour)

	var data recentData
	if data.Articles, err = h.store.ArticlesInWindow(ctx, window); err != nil {
		respondError(w, err)
		return
	}
	if data.SocialPosts, err = h.store.SocialPostsInWindow(ctx, window); err != nil {
		respondError(w, err)
		return
	}
	if data.SearchVolumes, err = h.store.SearchVolumeInWindow(ctx, window); err != nil {
		respondError(w, err)
		return
	}
	if data.SalesRecords, err = h.store.SalesInWindow(ctx, window); err != nil {
		respondError(w, err)
		return
	}
	if data.DiscussionPosts, err = h.store.DiscussionPostsInWindow(ctx, window); err != nil {
		respondError(w, err)
		return
	}

	counts := map[string]int{
		"articles":         len(data.Articles),
		"social_posts":     len(data.SocialPosts),
		"search_volumes":   len(data.SearchVolumes),
		"sales_records":    len(data.SalesRecords),
		"discussion_posts": len(data.DiscussionPosts),
	}
	respondCounts(w, data, counts)
}

func (h *Handlers) knownCategory(category string) bool {
	for _, c := range h.forecasts.Categories() {
		if c == category {
			return true
		}
	}
	return false
}

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func queryFloat(r *http.Request, name string, fallback float64) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(raw, 64)
}

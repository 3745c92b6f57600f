// internal/server/handlers/dashboard.go

package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"sentimentdash/internal/adapter/events"
	"sentimentdash/internal/domain/dashboard"
	"sentimentdash/internal/domain/post"
	"sentimentdash/internal/logger"
	"sentimentdash/internal/metrics"
)

// Transports a rerun can be triggered from
const (
	TransportPage      = "page"
	TransportAPI       = "api"
	TransportWebSocket = "websocket"
)

// ViewRenderer renders dashboard views and the sidebar options
type ViewRenderer interface {
	dashboard.Renderer
	Options(table *post.Table) dashboard.FilterOptions
}

// DashboardHandler handles dashboard HTTP requests
type DashboardHandler struct {
	loader    post.Loader
	renderer  ViewRenderer
	publisher events.Publisher
	metrics   *metrics.Metrics
	log       logger.Logger
}

// NewDashboardHandler creates a new dashboard handler. publisher and m may be nil.
func NewDashboardHandler(
	loader post.Loader,
	renderer ViewRenderer,
	publisher events.Publisher,
	m *metrics.Metrics,
	log logger.Logger,
) *DashboardHandler {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &DashboardHandler{
		loader:    loader,
		renderer:  renderer,
		publisher: publisher,
		metrics:   m,
		log:       log,
	}
}

// Rerun loads the table and renders the views for criteria
func (h *DashboardHandler) Rerun(ctx context.Context, criteria post.Criteria, transport string) (dashboard.Views, error) {
	table, err := h.loader.Table(ctx)
	if err != nil {
		return dashboard.Views{}, err
	}

	start := time.Now()
	views := h.renderer.Render(table, criteria)
	elapsed := time.Since(start)

	h.record(views, transport, elapsed)

	if err := h.publisher.PublishRender(events.NewRenderEvent(views, transport, elapsed)); err != nil {
		logger.FromContextOr(ctx, h.log).Warn("Failed to publish render event",
			logger.String("render_id", views.RenderID),
			logger.Error(err),
		)
	}

	logger.FromContextOr(ctx, h.log).Debug("Dashboard rendered",
		logger.String("render_id", views.RenderID),
		logger.String("transport", transport),
		logger.Int("rows", views.RowCount),
		logger.Float64("duration_ms", float64(elapsed.Microseconds())/1000),
	)

	return views, nil
}

// requestLog returns the request-scoped logger set by the server middleware
func (h *DashboardHandler) requestLog(r *http.Request) logger.Logger {
	return logger.FromContextOr(r.Context(), h.log)
}

func (h *DashboardHandler) record(views dashboard.Views, transport string, elapsed time.Duration) {
	if h.metrics == nil {
		return
	}
	h.metrics.RendersTotal.WithLabelValues(transport).Inc()
	h.metrics.RenderSeconds.Observe(elapsed.Seconds())
	for _, p := range views.Panels {
		if !p.HasChart() {
			h.metrics.EmptyPanels.WithLabelValues(string(p.ID)).Inc()
		}
	}
}

// GetViews renders the dashboard as JSON
func (h *DashboardHandler) GetViews(w http.ResponseWriter, r *http.Request) {
	criteria, err := ParseCriteria(r.URL.Query())
	if err != nil {
		respondWithError(w, h.requestLog(r), http.StatusBadRequest, err.Error(), err)
		return
	}

	views, err := h.Rerun(r.Context(), criteria, TransportAPI)
	if err != nil {
		respondWithError(w, h.requestLog(r), http.StatusInternalServerError, "Failed to load data", err)
		return
	}

	respondWithJSON(w, http.StatusOK, views)
}

// GetOptions returns the sidebar filter options
func (h *DashboardHandler) GetOptions(w http.ResponseWriter, r *http.Request) {
	table, err := h.loader.Table(r.Context())
	if err != nil {
		respondWithError(w, h.requestLog(r), http.StatusInternalServerError, "Failed to load data", err)
		return
	}

	respondWithJSON(w, http.StatusOK, h.renderer.Options(table))
}

// GetPage renders the HTML dashboard
func (h *DashboardHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	criteria, err := ParseCriteria(r.URL.Query())
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, err)
		return
	}

	views, err := h.Rerun(r.Context(), criteria, TransportPage)
	if err != nil {
		h.requestLog(r).Error("Failed to render dashboard", logger.Error(err))
		h.renderError(w, r, http.StatusInternalServerError, err)
		return
	}

	renderPage(w, h.requestLog(r), http.StatusOK, newPageData(views))
}

func (h *DashboardHandler) renderError(w http.ResponseWriter, r *http.Request, code int, err error) {
	message := "Failed to load data"
	if errors.Is(err, ErrInvalidCriteria) {
		message = "Invalid filter selection"
	}
	renderPage(w, h.requestLog(r), code, pageData{
		Error:  message,
		Detail: err.Error(),
	})
}

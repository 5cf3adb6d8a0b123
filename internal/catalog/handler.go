package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/toolhub-ai/toolhub/internal/server"
	"github.com/toolhub-ai/toolhub/pkg/models"
)

// Provider supplies the current normalized catalog snapshot. The source
// layer implements it; tests use a fixed slice.
type Provider interface {
	Tools(ctx context.Context) []models.Tool
}

// ToolView is a Tool enriched with the presentation fields computed per
// request: the smart score and up to two why-reasons.
type ToolView struct {
	models.Tool
	SmartScore int      `json:"smart_score"`
	Why        []string `json:"why,omitempty"`
}

// ToolsResponse is the response for GET /api/v1/catalog/tools.
type ToolsResponse struct {
	Items      []ToolView `json:"items"`
	Total      int        `json:"total"`
	TotalPages int        `json:"total_pages"`
	Page       int        `json:"page"`
	PerPage    int        `json:"per_page"`
}

// Handler serves the catalog query API.
type Handler struct {
	provider Provider
	engine   *Engine
	logger   *zap.Logger
}

// NewHandler creates a new catalog API handler.
func NewHandler(provider Provider, engine *Engine, logger *zap.Logger) *Handler {
	return &Handler{provider: provider, engine: engine, logger: logger}
}

// RegisterRoutes implements server.RouteRegistrar.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/catalog/tools", h.handleListTools)
	mux.HandleFunc("GET /api/v1/catalog/tools/{id}", h.handleGetTool)
	mux.HandleFunc("GET /api/v1/catalog/categories", h.handleCategories)
	mux.HandleFunc("GET /api/v1/catalog/stats", h.handleStats)
}

// FilterFromQuery builds a Filter from URL query parameters, applying the
// documented defaults: query "", category "all", sort "smart", page 1.
// Non-numeric and non-positive page values coerce to 1, so the engine never
// sees an invalid page.
func FilterFromQuery(q url.Values) Filter {
	page := 1
	if s := q.Get("page"); s != "" {
		if p, err := strconv.Atoi(s); err == nil && p > 0 {
			page = p
		}
	}

	category := q.Get("category")
	if category == "" {
		category = "all"
	}

	return Filter{
		Query:    q.Get("query"),
		Category: category,
		Sort:     ParseSortMode(q.Get("sort")),
		Page:     page,
	}
}

// handleListTools returns one page of the filtered, sorted catalog.
//
//	@Summary		Query the tool catalog
//	@Description	Returns a filtered, sorted, paginated page of AI tools with per-listing smart scores and why-reasons.
//	@Tags			catalog
//	@Produce		json
//	@Param			query query string false "Space-separated search terms (AND semantics)"
//	@Param			category query string false "Category filter" default(all)
//	@Param			sort query string false "Sort mode (smart, rating, popular, newest)" default(smart)
//	@Param			page query int false "1-indexed page number" default(1)
//	@Success		200 {object} ToolsResponse
//	@Router			/catalog/tools [get]
func (h *Handler) handleListTools(w http.ResponseWriter, r *http.Request) {
	filter := FilterFromQuery(r.URL.Query())
	result := h.engine.Search(h.provider.Tools(r.Context()), filter)

	writeJSON(w, http.StatusOK, ToolsResponse{
		Items:      h.views(result.Items),
		Total:      result.Total,
		TotalPages: result.TotalPages,
		Page:       result.Page,
		PerPage:    result.PerPage,
	})
}

// handleGetTool returns a single tool by its numeric ID.
func (h *Handler) handleGetTool(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		server.BadRequest(w, "tool id must be an integer", r.URL.Path)
		return
	}

	for _, t := range h.provider.Tools(r.Context()) {
		if t.ID == id {
			writeJSON(w, http.StatusOK, h.view(t))
			return
		}
	}
	server.NotFound(w, "tool not found", r.URL.Path)
}

// handleCategories returns the categories present in the catalog with their
// Arabic labels and tool counts.
func (h *Handler) handleCategories(w http.ResponseWriter, r *http.Request) {
	stats := Summarize(h.provider.Tools(r.Context()))
	categories := stats.Categories
	if categories == nil {
		categories = []CategoryCount{}
	}
	writeJSON(w, http.StatusOK, categories)
}

// handleStats returns catalog-wide totals for the landing page hero.
func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Summarize(h.provider.Tools(r.Context())))
}

func (h *Handler) view(t models.Tool) ToolView {
	now := h.engine.now().UTC()
	return ToolView{
		Tool:       t,
		SmartScore: SmartScore(t, now),
		Why:        WhyReasons(t, now),
	}
}

func (h *Handler) views(tools []models.Tool) []ToolView {
	views := make([]ToolView, 0, len(tools))
	for _, t := range tools {
		views = append(views, h.view(t))
	}
	return views
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

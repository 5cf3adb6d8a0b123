// Package web renders the server-side Arabic listing page. All catalog
// semantics live in the catalog package; this layer only shapes view data
// and executes the template.
package web

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/toolhub-ai/toolhub/internal/catalog"
	"github.com/toolhub-ai/toolhub/internal/server"
	"github.com/toolhub-ai/toolhub/pkg/models"
)

//go:embed index.html.tmpl
var indexTemplate string

// Badge is one marker chip on a tool card.
type Badge struct {
	Text string
	Kind string
}

// Card is the view model for one tool card.
type Card struct {
	Tool          models.Tool
	CategoryLabel string
	PriceLabel    string
	SmartScore    int
	Why           []string
	Badges        []Badge
	Stars         []string // "full", "half", or "empty", always 5 entries
}

// PageLink is one entry in the pagination strip.
type PageLink struct {
	Num    int
	URL    string
	Active bool
}

// SortOption is one entry of the sort select.
type SortOption struct {
	Value    catalog.SortMode
	Label    string
	Selected bool
}

// Page is the full view model for the listing page.
type Page struct {
	Filter     catalog.Filter
	Result     catalog.PagedResult
	Cards      []Card
	Stats      catalog.Stats
	Sorts      []SortOption
	PageLinks  []PageLink
	PrevURL    string
	NextURL    string
	AllActive  bool
	CatalogURL func(models.Category) string
}

var sortLabels = []struct {
	mode  catalog.SortMode
	label string
}{
	{catalog.SortSmart, "الأذكى (مقترح)"},
	{catalog.SortRating, "الأعلى تقييمًا"},
	{catalog.SortPopular, "الأكثر شعبية"},
	{catalog.SortNewest, "الأحدث"},
}

// Handler renders the listing page.
type Handler struct {
	provider catalog.Provider
	engine   *catalog.Engine
	logger   *zap.Logger
	tmpl     *template.Template
	now      func() time.Time
}

// NewHandler creates the web handler. A nil now defaults to time.Now.
func NewHandler(provider catalog.Provider, engine *catalog.Engine, logger *zap.Logger, now func() time.Time) (*Handler, error) {
	if now == nil {
		now = time.Now
	}
	tmpl, err := template.New("index").Parse(indexTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse index template: %w", err)
	}
	return &Handler{
		provider: provider,
		engine:   engine,
		logger:   logger,
		tmpl:     tmpl,
		now:      now,
	}, nil
}

// RegisterRoutes implements server.RouteRegistrar.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.handleIndex)
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	filter := catalog.FilterFromQuery(r.URL.Query())
	tools := h.provider.Tools(r.Context())
	result := h.engine.Search(tools, filter)

	page := h.buildPage(filter, result, catalog.Summarize(tools))

	// Render to a buffer first so a template failure yields a clean 500
	// instead of a half-written body.
	var buf bytes.Buffer
	if err := h.tmpl.Execute(&buf, page); err != nil {
		h.logger.Error("render listing page", zap.Error(err))
		server.InternalError(w, "failed to render page", r.URL.Path)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (h *Handler) buildPage(filter catalog.Filter, result catalog.PagedResult, stats catalog.Stats) Page {
	now := h.now().UTC()

	cards := make([]Card, 0, len(result.Items))
	for _, t := range result.Items {
		cards = append(cards, h.buildCard(t, now))
	}

	sorts := make([]SortOption, 0, len(sortLabels))
	for _, s := range sortLabels {
		sorts = append(sorts, SortOption{
			Value:    s.mode,
			Label:    s.label,
			Selected: filter.Sort == s.mode,
		})
	}

	// Show at most the first five page numbers, like the original strip.
	var links []PageLink
	for n := 1; n <= result.TotalPages && n <= 5; n++ {
		links = append(links, PageLink{
			Num:    n,
			URL:    pageURL(filter, n),
			Active: n == filter.Page,
		})
	}

	page := Page{
		Filter:    filter,
		Result:    result,
		Cards:     cards,
		Stats:     stats,
		Sorts:     sorts,
		PageLinks: links,
		AllActive: filter.Category == "all",
		CatalogURL: func(c models.Category) string {
			f := filter
			f.Category = string(c)
			return pageURL(f, 1)
		},
	}
	if filter.Page > 1 {
		page.PrevURL = pageURL(filter, filter.Page-1)
	}
	if filter.Page < result.TotalPages {
		page.NextURL = pageURL(filter, filter.Page+1)
	}
	return page
}

func (h *Handler) buildCard(t models.Tool, now time.Time) Card {
	var badges []Badge
	if t.Featured {
		badges = append(badges, Badge{Text: "مميزة", Kind: "featured"})
	}
	if t.Free() {
		badges = append(badges, Badge{Text: "مجانية", Kind: "free"})
	}
	if t.Popular {
		badges = append(badges, Badge{Text: "رائجة", Kind: "popular"})
	}
	if now.Sub(t.CreatedAt).Hours()/24 < 30 {
		badges = append(badges, Badge{Text: "جديدة", Kind: "new"})
	}

	price := "مجاني"
	if !t.Free() {
		price = fmt.Sprintf("$%g/شهر", t.Price)
	}

	return Card{
		Tool:          t,
		CategoryLabel: t.Category.Label(),
		PriceLabel:    price,
		SmartScore:    catalog.SmartScore(t, now),
		Why:           catalog.WhyReasons(t, now),
		Badges:        badges,
		Stars:         starRating(t.Rating),
	}
}

// starRating maps a rating in [0,5] to five star glyph classes: full stars
// up to the floor, one half star for any fraction, empty for the rest.
func starRating(rating float64) []string {
	stars := make([]string, 0, 5)
	for i := 1; i <= 5; i++ {
		switch {
		case float64(i) <= math.Floor(rating):
			stars = append(stars, "full")
		case float64(i) == math.Ceil(rating) && rating != math.Floor(rating):
			stars = append(stars, "half")
		default:
			stars = append(stars, "empty")
		}
	}
	return stars
}

// pageURL rebuilds the listing URL for the given filter and page, emitting
// only non-default parameters.
func pageURL(f catalog.Filter, page int) string {
	q := url.Values{}
	if f.Query != "" {
		q.Set("query", f.Query)
	}
	if f.Category != "" && f.Category != "all" {
		q.Set("category", f.Category)
	}
	if f.Sort != catalog.SortSmart {
		q.Set("sort", string(f.Sort))
	}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	if len(q) == 0 {
		return "/"
	}
	return "/?" + q.Encode()
}

// Package catalog implements the tool directory core: normalization of raw
// backend records, the composite smart score, per-listing why-reasons, and
// the query engine that filters, sorts, and paginates the catalog.
package catalog

import (
	"sort"
	"strings"
	"time"

	"github.com/toolhub-ai/toolhub/pkg/models"
)

// PerPage is the fixed page size for catalog listings.
const PerPage = 20

// SortMode selects the ordering strategy for a catalog query.
type SortMode string

const (
	SortSmart   SortMode = "smart"
	SortRating  SortMode = "rating"
	SortPopular SortMode = "popular"
	SortNewest  SortMode = "newest"
)

// ParseSortMode maps a raw sort key to a SortMode. Unknown or empty values
// fall back to SortSmart.
func ParseSortMode(s string) SortMode {
	switch SortMode(s) {
	case SortRating, SortPopular, SortNewest, SortSmart:
		return SortMode(s)
	default:
		return SortSmart
	}
}

// Filter is one catalog query, constructed fresh from the request's query
// string and never persisted.
type Filter struct {
	Query    string
	Category string
	Sort     SortMode
	Page     int
}

// PagedResult is one visible page of the catalog plus pagination metadata.
type PagedResult struct {
	Items      []models.Tool `json:"items"`
	Total      int           `json:"total"`
	TotalPages int           `json:"total_pages"`
	Page       int           `json:"page"`
	PerPage    int           `json:"per_page"`
}

// Engine filters, sorts, and paginates a normalized tool collection.
// It is stateless and performs no I/O; every call recomputes its view from
// the snapshot it is given.
type Engine struct {
	now func() time.Time
}

// NewEngine creates an Engine. A nil now defaults to time.Now.
func NewEngine(now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{now: now}
}

// Search runs the full pipeline: text filter, category filter, sort,
// paginate.
func (e *Engine) Search(tools []models.Tool, f Filter) PagedResult {
	return Paginate(e.FilterTools(tools, f), f.Page)
}

// FilterTools returns the filtered and sorted collection, not yet paginated.
// Text matching is AND-of-substrings over the lower-cased name and
// description; category is exact equality unless "all". All sorts are
// stable, so ties keep their relative input order.
func (e *Engine) FilterTools(tools []models.Tool, f Filter) []models.Tool {
	results := make([]models.Tool, len(tools))
	copy(results, tools)

	if query := strings.TrimSpace(f.Query); query != "" {
		terms := strings.Fields(strings.ToLower(query))
		filtered := results[:0]
		for _, t := range results {
			if matchesAll(t, terms) {
				filtered = append(filtered, t)
			}
		}
		results = filtered
	}

	if f.Category != "" && f.Category != "all" {
		filtered := results[:0]
		for _, t := range results {
			if string(t.Category) == f.Category {
				filtered = append(filtered, t)
			}
		}
		results = filtered
	}

	now := e.now().UTC()
	switch f.Sort {
	case SortRating:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Rating > results[j].Rating
		})
	case SortPopular:
		sort.SliceStable(results, func(i, j int) bool {
			if results[i].Popular != results[j].Popular {
				return results[i].Popular
			}
			return results[i].Reviews > results[j].Reviews
		})
	case SortNewest:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].CreatedAt.After(results[j].CreatedAt)
		})
	default:
		// SortSmart, and the fallback for anything unrecognized.
		sort.SliceStable(results, func(i, j int) bool {
			return SmartScore(results[i], now) > SmartScore(results[j], now)
		})
	}

	return results
}

// matchesAll reports whether every term is a substring of the tool's
// lower-cased "name description" haystack.
func matchesAll(t models.Tool, terms []string) bool {
	haystack := strings.ToLower(t.Name) + " " + strings.ToLower(t.Description)
	for _, term := range terms {
		if !strings.Contains(haystack, term) {
			return false
		}
	}
	return true
}

// Paginate slices a sorted collection into one 1-indexed page of PerPage
// items. Pages outside [1, totalPages] yield an empty item list rather than
// an error. The range check happens before the offset multiplication so that
// arbitrarily large page values cannot overflow into a negative slice index.
func Paginate(sorted []models.Tool, page int) PagedResult {
	total := len(sorted)
	totalPages := (total + PerPage - 1) / PerPage

	items := []models.Tool{}
	if page >= 1 && page <= totalPages {
		start := (page - 1) * PerPage
		end := min(start+PerPage, total)
		items = append(items, sorted[start:end]...)
	}

	return PagedResult{
		Items:      items,
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
		PerPage:    PerPage,
	}
}

// CategoryCount is the number of tools in one category.
type CategoryCount struct {
	Category models.Category `json:"category"`
	Label    string          `json:"label"`
	Count    int             `json:"count"`
}

// Stats summarizes the full catalog for the landing page hero and the
// category browser.
type Stats struct {
	TotalTools      int             `json:"total_tools"`
	FreeTools       int             `json:"free_tools"`
	TotalCategories int             `json:"total_categories"`
	Categories      []CategoryCount `json:"categories"`
}

// Summarize computes catalog-wide stats. Categories appear in the fixed
// display order and only when at least one tool belongs to them.
func Summarize(tools []models.Tool) Stats {
	counts := make(map[models.Category]int)
	free := 0
	for _, t := range tools {
		counts[t.Category]++
		if t.Free() {
			free++
		}
	}

	var categories []CategoryCount
	for _, c := range models.Categories() {
		if counts[c] == 0 {
			continue
		}
		categories = append(categories, CategoryCount{
			Category: c,
			Label:    c.Label(),
			Count:    counts[c],
		})
	}

	return Stats{
		TotalTools:      len(tools),
		FreeTools:       free,
		TotalCategories: len(categories),
		Categories:      categories,
	}
}

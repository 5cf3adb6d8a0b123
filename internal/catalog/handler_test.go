package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/toolhub-ai/toolhub/internal/server"
	"github.com/toolhub-ai/toolhub/internal/testutil"
	"github.com/toolhub-ai/toolhub/pkg/models"
)

type staticProvider struct {
	tools []models.Tool
}

func (p *staticProvider) Tools(ctx context.Context) []models.Tool {
	return p.tools
}

func newTestHandler(tools []models.Tool) *Handler {
	return NewHandler(&staticProvider{tools: tools}, testEngine(), testutil.Logger())
}

func serve(h *Handler, target string) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestFilterFromQuery_Defaults(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Filter
	}{
		{
			name: "empty query string",
			raw:  "",
			want: Filter{Query: "", Category: "all", Sort: SortSmart, Page: 1},
		},
		{
			name: "all params set",
			raw:  "query=chat&category=code&sort=rating&page=3",
			want: Filter{Query: "chat", Category: "code", Sort: SortRating, Page: 3},
		},
		{
			name: "non-numeric page",
			raw:  "page=abc",
			want: Filter{Query: "", Category: "all", Sort: SortSmart, Page: 1},
		},
		{
			name: "zero page",
			raw:  "page=0",
			want: Filter{Query: "", Category: "all", Sort: SortSmart, Page: 1},
		},
		{
			name: "negative page",
			raw:  "page=-2",
			want: Filter{Query: "", Category: "all", Sort: SortSmart, Page: 1},
		},
		{
			name: "unknown sort falls back to smart",
			raw:  "sort=banana",
			want: Filter{Query: "", Category: "all", Sort: SortSmart, Page: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.raw)
			if err != nil {
				t.Fatalf("ParseQuery(%q): %v", tt.raw, err)
			}
			if got := FilterFromQuery(q); got != tt.want {
				t.Errorf("FilterFromQuery(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestHandleListTools(t *testing.T) {
	tools := []models.Tool{
		testutil.NewTool(testutil.WithID(1), testutil.WithName("CodeGen"), testutil.WithRating(4.0)),
		testutil.NewTool(testutil.WithID(2), testutil.WithName("Writer"), testutil.WithRating(4.8)),
	}
	h := newTestHandler(tools)

	rec := serve(h, "/api/v1/catalog/tools?sort=rating")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var resp ToolsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Total != 2 || resp.Page != 1 || resp.PerPage != PerPage || resp.TotalPages != 1 {
		t.Errorf("pagination = total %d page %d per_page %d pages %d",
			resp.Total, resp.Page, resp.PerPage, resp.TotalPages)
	}
	if len(resp.Items) != 2 || resp.Items[0].ID != 2 {
		t.Fatalf("items not sorted by rating: %+v", resp.Items)
	}
	if resp.Items[0].SmartScore == 0 {
		t.Error("SmartScore missing from tool view")
	}
}

func TestHandleListTools_EmptyCatalog(t *testing.T) {
	rec := serve(newTestHandler(nil), "/api/v1/catalog/tools")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp ToolsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Items == nil {
		t.Error("Items = null, want empty array")
	}
	if resp.Total != 0 || resp.TotalPages != 0 {
		t.Errorf("totals = %d/%d, want 0/0", resp.Total, resp.TotalPages)
	}
}

func TestHandleListTools_HugePageParam(t *testing.T) {
	tools := []models.Tool{
		testutil.NewTool(testutil.WithID(1)),
		testutil.NewTool(testutil.WithID(2)),
	}
	rec := serve(newTestHandler(tools), "/api/v1/catalog/tools?page=922337203685477581")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp ToolsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Items) != 0 {
		t.Errorf("len(Items) = %d, want 0 for a page far past the end", len(resp.Items))
	}
	if resp.Total != 2 {
		t.Errorf("Total = %d, want 2", resp.Total)
	}
}

func TestHandleGetTool(t *testing.T) {
	tools := []models.Tool{
		testutil.NewTool(testutil.WithID(7), testutil.WithName("Writer")),
	}
	h := newTestHandler(tools)

	t.Run("found", func(t *testing.T) {
		rec := serve(h, "/api/v1/catalog/tools/7")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var view ToolView
		if err := json.NewDecoder(rec.Body).Decode(&view); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if view.ID != 7 || view.Name != "Writer" {
			t.Errorf("tool = %d/%q, want 7/Writer", view.ID, view.Name)
		}
	})

	t.Run("not found", func(t *testing.T) {
		rec := serve(h, "/api/v1/catalog/tools/99")
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
			t.Errorf("Content-Type = %q, want application/problem+json", ct)
		}
		var p server.Problem
		if err := json.NewDecoder(rec.Body).Decode(&p); err != nil {
			t.Fatalf("decode problem: %v", err)
		}
		if p.Type != server.ProblemTypeNotFound {
			t.Errorf("problem type = %q, want %q", p.Type, server.ProblemTypeNotFound)
		}
		if p.Instance != "/api/v1/catalog/tools/99" {
			t.Errorf("problem instance = %q, want request path", p.Instance)
		}
	})

	t.Run("non-numeric id", func(t *testing.T) {
		rec := serve(h, "/api/v1/catalog/tools/abc")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
		var p server.Problem
		if err := json.NewDecoder(rec.Body).Decode(&p); err != nil {
			t.Fatalf("decode problem: %v", err)
		}
		if p.Type != server.ProblemTypeBadRequest {
			t.Errorf("problem type = %q, want %q", p.Type, server.ProblemTypeBadRequest)
		}
	})
}

func TestHandleCategories(t *testing.T) {
	tools := []models.Tool{
		testutil.NewTool(testutil.WithID(1), testutil.WithCategory(models.CategoryCode)),
		testutil.NewTool(testutil.WithID(2), testutil.WithCategory(models.CategoryCode)),
	}
	rec := serve(newTestHandler(tools), "/api/v1/catalog/categories")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var categories []CategoryCount
	if err := json.NewDecoder(rec.Body).Decode(&categories); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(categories) != 1 || categories[0].Category != models.CategoryCode || categories[0].Count != 2 {
		t.Errorf("categories = %+v, want single code/2 entry", categories)
	}
}

func TestHandleCategories_EmptyCatalog(t *testing.T) {
	rec := serve(newTestHandler(nil), "/api/v1/catalog/categories")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	// An empty catalog must produce [] rather than null.
	if body := rec.Body.String(); body != "[]\n" {
		t.Errorf("body = %q, want empty JSON array", body)
	}
}

func TestHandleStats(t *testing.T) {
	tools := []models.Tool{
		testutil.NewTool(testutil.WithID(1), testutil.WithPrice(0)),
		testutil.NewTool(testutil.WithID(2), testutil.WithPrice(10)),
	}
	rec := serve(newTestHandler(tools), "/api/v1/catalog/stats")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var stats Stats
	if err := json.NewDecoder(rec.Body).Decode(&stats); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if stats.TotalTools != 2 || stats.FreeTools != 1 {
		t.Errorf("stats = %+v, want 2 tools, 1 free", stats)
	}
}

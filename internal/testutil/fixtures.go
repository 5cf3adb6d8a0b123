package testutil

import (
	"time"

	"github.com/toolhub-ai/toolhub/pkg/models"
)

// NewTool returns a Tool with sensible defaults, suitable for test fixtures.
// Override individual fields via options or after creation as needed.
// Derived fields (reviews, featured, popular) are set directly rather than
// recomputed, so tests can exercise them independently.
func NewTool(opts ...func(*models.Tool)) models.Tool {
	t := models.Tool{
		ID:          1,
		Name:        "أداة تجريبية",
		Description: "وصف تجريبي لأداة ذكاء اصطناعي",
		Category:    models.CategoryWriting,
		Price:       9.99,
		Rating:      4.0,
		Reviews:     500,
		WebsiteURL:  "https://example.com",
		CreatedAt:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Tags:        []string{"ذكاء اصطناعي", "إنتاجية"},
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// WithID sets the tool ID.
func WithID(id int64) func(*models.Tool) {
	return func(t *models.Tool) { t.ID = id }
}

// WithName sets the tool name.
func WithName(name string) func(*models.Tool) {
	return func(t *models.Tool) { t.Name = name }
}

// WithDescription sets the tool description.
func WithDescription(desc string) func(*models.Tool) {
	return func(t *models.Tool) { t.Description = desc }
}

// WithCategory sets the tool category.
func WithCategory(c models.Category) func(*models.Tool) {
	return func(t *models.Tool) { t.Category = c }
}

// WithPrice sets the tool price.
func WithPrice(price float64) func(*models.Tool) {
	return func(t *models.Tool) { t.Price = price }
}

// WithRating sets the tool rating.
func WithRating(rating float64) func(*models.Tool) {
	return func(t *models.Tool) { t.Rating = rating }
}

// WithReviews sets the derived review count.
func WithReviews(n int) func(*models.Tool) {
	return func(t *models.Tool) { t.Reviews = n }
}

// WithFlags sets the featured and popular flags.
func WithFlags(featured, popular bool) func(*models.Tool) {
	return func(t *models.Tool) {
		t.Featured = featured
		t.Popular = popular
	}
}

// WithCreatedAt sets the creation timestamp.
func WithCreatedAt(ts time.Time) func(*models.Tool) {
	return func(t *models.Tool) { t.CreatedAt = ts }
}

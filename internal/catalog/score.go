package catalog

import (
	"math"
	"time"

	"github.com/toolhub-ai/toolhub/pkg/models"
)

// SmartScore computes the composite ranking score used by the default sort.
// It blends rating, a free-tier bonus, log-scaled review volume, the
// featured and popular flags, and a linear newness bonus that decays to zero
// over 30 days. The result is an unbounded heuristic used only for relative
// ordering.
func SmartScore(t models.Tool, now time.Time) int {
	score := t.Rating * 10

	if t.Price == 0 {
		score += 15
	}

	score += math.Min(math.Log10(float64(t.Reviews)+1)*5, 20)

	if t.Featured {
		score += 25
	}

	if !t.CreatedAt.IsZero() {
		days := now.Sub(t.CreatedAt).Hours() / 24
		if days < 30 {
			score += math.Max(20-days, 0)
		}
	}

	if t.Popular {
		score += 20
	}

	return int(math.Round(score))
}

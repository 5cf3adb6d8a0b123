package catalog

import (
	"strings"
	"time"

	"github.com/toolhub-ai/toolhub/pkg/models"
)

// Reason strings shown in the "why this tool" section of a listing.
const (
	ReasonHighRating  = "تقييم مرتفع"
	ReasonFree        = "مجانية بالكامل"
	ReasonAffordable  = "سعر معقول"
	ReasonVeryPopular = "شائعة جداً"
	ReasonWidelyUsed  = "مستخدمة من قبل العديد"
	ReasonCurated     = "مميزة من فريق ToolHub"
	ReasonEducational = "مناسبة للتعليم"
	ReasonNew         = "أداة جديدة"
)

// eduKeywords mark a description as education-related.
var eduKeywords = []string{"طلاب", "تعليم", "دراسة"}

// WhyReasons returns up to two justification strings for a listing.
// Rules fire in a fixed priority order and the first two that fire win;
// later rules are dropped even when earlier ones did not fire.
func WhyReasons(t models.Tool, now time.Time) []string {
	var reasons []string

	if t.Rating >= 4.5 {
		reasons = append(reasons, ReasonHighRating)
	}

	if t.Price == 0 {
		reasons = append(reasons, ReasonFree)
	} else if t.Price < 20 {
		reasons = append(reasons, ReasonAffordable)
	}

	if t.Reviews >= 1000 {
		reasons = append(reasons, ReasonVeryPopular)
	} else if t.Reviews >= 100 {
		reasons = append(reasons, ReasonWidelyUsed)
	}

	if t.Featured {
		reasons = append(reasons, ReasonCurated)
	}

	for _, kw := range eduKeywords {
		if strings.Contains(t.Description, kw) {
			reasons = append(reasons, ReasonEducational)
			break
		}
	}

	if !t.CreatedAt.IsZero() && now.Sub(t.CreatedAt).Hours()/24 < 30 {
		reasons = append(reasons, ReasonNew)
	}

	if len(reasons) > 2 {
		reasons = reasons[:2]
	}
	return reasons
}

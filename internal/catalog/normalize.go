package catalog

import (
	"math"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/toolhub-ai/toolhub/pkg/models"
)

// Defaults applied when the backend omits a field.
const (
	defaultName        = "أداة بدون اسم"
	defaultDescription = "لا يوجد وصف متاح"
	defaultWebsiteURL  = "#"
	defaultRating      = 3.5
)

// baselineTags are always present in a tool's tag list.
var baselineTags = []string{"ذكاء اصطناعي", "إنتاجية"}

// arabicStopWords are dropped during tag extraction.
var arabicStopWords = map[string]struct{}{
	"من": {}, "في": {}, "على": {}, "إلى": {}, "عن": {},
	"مع": {}, "هذا": {}, "هذه": {}, "ذلك": {},
}

// tagCleaner strips every character that is not an Arabic-script letter,
// a digit, or a Latin letter.
var tagCleaner = regexp.MustCompile(`[^\x{0600}-\x{06FF}\x{0750}-\x{077F}\x{08A0}-\x{08FF}0-9a-zA-Z]+`)

// createdAtLayouts are tried in order when parsing backend timestamps.
// Supabase emits RFC 3339 or a zone-less variant depending on column type.
var createdAtLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Normalizer converts raw backend records into fully populated Tools.
// It never fails: every missing or malformed field has a default.
type Normalizer struct {
	now func() time.Time
}

// NewNormalizer creates a Normalizer. A nil now defaults to time.Now;
// tests inject a fixed clock to make the derived fields deterministic.
func NewNormalizer(now func() time.Time) *Normalizer {
	if now == nil {
		now = time.Now
	}
	return &Normalizer{now: now}
}

// Normalize fills defaults and computes the derived fields (reviews,
// featured, popular, tags) for a single raw record.
func (n *Normalizer) Normalize(raw models.RawTool) models.Tool {
	now := n.now().UTC()

	// The backend stores rating as nullable; an explicit 0 is treated the
	// same as absent, matching the upstream data contract.
	rating := defaultRating
	if raw.Rating != nil && *raw.Rating != 0 {
		rating = *raw.Rating
	}

	name := stringOr(raw.Name, defaultName)
	description := stringOr(raw.Description, defaultDescription)

	price := 0.0
	if raw.Price != nil && *raw.Price > 0 {
		price = *raw.Price
	}

	created := n.parseCreatedAt(raw.CreatedAt, now)

	return models.Tool{
		ID:          raw.ID,
		Name:        name,
		Description: description,
		Category:    models.ParseCategory(stringOr(raw.Category, "")),
		Price:       price,
		Rating:      rating,
		Reviews:     deriveReviews(rating, created, now),
		Featured:    deriveFeatured(rating),
		Popular:     derivePopular(rating),
		WebsiteURL:  stringOr(raw.WebsiteURL, defaultWebsiteURL),
		ImageURL:    stringOr(raw.ImageURL, ""),
		CreatedAt:   created,
		Tags:        extractTags(description),
	}
}

// NormalizeAll normalizes a full raw collection, preserving input order.
func (n *Normalizer) NormalizeAll(raws []models.RawTool) []models.Tool {
	tools := make([]models.Tool, 0, len(raws))
	for _, raw := range raws {
		tools = append(tools, n.Normalize(raw))
	}
	return tools
}

// parseCreatedAt parses a backend timestamp. Absent or unparseable values
// resolve to now, i.e. the tool is treated as brand new (age 0).
func (n *Normalizer) parseCreatedAt(s *string, now time.Time) time.Time {
	if s == nil || strings.TrimSpace(*s) == "" {
		return now
	}
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, strings.TrimSpace(*s)); err == nil {
			return t.UTC()
		}
	}
	return now
}

// deriveFeatured reports whether a rating qualifies the tool as featured.
func deriveFeatured(rating float64) bool {
	return rating >= 4.5
}

// derivePopular reports whether a rating qualifies the tool as popular.
// The threshold is stricter than featured but the two flags stay
// independently derived, matching the backend contract.
func derivePopular(rating float64) bool {
	return rating >= 4.6
}

// deriveReviews synthesizes a review count from rating and tool age.
// Each rating tier has a base count plus a per-week bonus with a hard cap,
// so counts grow with age but saturate.
func deriveReviews(rating float64, created, now time.Time) int {
	days := now.Sub(created).Hours() / 24
	weeks := int(math.Floor(days / 7))
	if weeks < 0 {
		weeks = 0
	}

	switch {
	case rating >= 4.7:
		return 2000 + min(weeks*50, 5000)
	case rating >= 4.5:
		return 1000 + min(weeks*30, 3000)
	case rating >= 4.0:
		return 500 + min(weeks*20, 1500)
	case rating >= 3.5:
		return 100 + min(weeks*10, 500)
	default:
		return 50
	}
}

// extractTags derives up to 5 tags from a description. The two baseline
// tags always come first; the first 5 surviving description tokens (cleaned,
// longer than 2 runes, not a stop word) follow, then the combined list is
// de-duplicated in first-seen order and truncated to 5.
func extractTags(description string) []string {
	tags := append([]string(nil), baselineTags...)
	if strings.TrimSpace(description) == "" {
		return tags
	}

	kept := 0
	for _, word := range strings.Fields(description) {
		if kept == 5 {
			break
		}
		word = tagCleaner.ReplaceAllString(word, "")
		if utf8.RuneCountInString(word) <= 2 {
			continue
		}
		if _, stop := arabicStopWords[word]; stop {
			continue
		}
		tags = append(tags, word)
		kept++
	}

	seen := make(map[string]struct{}, len(tags))
	unique := tags[:0]
	for _, tag := range tags {
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		unique = append(unique, tag)
		if len(unique) == 5 {
			break
		}
	}
	return unique
}

func stringOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}

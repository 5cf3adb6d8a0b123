// Package models defines the core data types shared between the catalog
// engine, the upstream source layer, and the HTTP API.
package models

import "time"

// Category classifies an AI tool. Unknown values coerce to CategoryOther.
type Category string

const (
	CategoryWriting   Category = "writing"
	CategoryDesign    Category = "design"
	CategoryVideo     Category = "video"
	CategoryCode      Category = "code"
	CategoryMarketing Category = "marketing"
	CategoryBusiness  Category = "business"
	CategoryAudio     Category = "audio"
	CategoryData      Category = "data"
	CategoryOther     Category = "other"
)

// categoryLabels maps each category to its Arabic display name.
var categoryLabels = map[Category]string{
	CategoryWriting:   "الكتابة",
	CategoryDesign:    "التصميم",
	CategoryVideo:     "الفيديو",
	CategoryCode:      "البرمجة",
	CategoryMarketing: "التسويق",
	CategoryBusiness:  "الأعمال",
	CategoryAudio:     "الصوت",
	CategoryData:      "البيانات",
	CategoryOther:     "أخرى",
}

// Categories returns all known categories in display order.
func Categories() []Category {
	return []Category{
		CategoryWriting, CategoryDesign, CategoryVideo, CategoryCode,
		CategoryMarketing, CategoryBusiness, CategoryAudio, CategoryData,
		CategoryOther,
	}
}

// ParseCategory maps a raw category string to a known Category.
// Unknown or empty values coerce to CategoryOther.
func ParseCategory(s string) Category {
	c := Category(s)
	if _, ok := categoryLabels[c]; ok {
		return c
	}
	return CategoryOther
}

// Label returns the Arabic display name for the category.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return categoryLabels[CategoryOther]
}

// RawTool is one record as returned by the backend tools API. Any field may
// be absent or null; pointer fields preserve that distinction for the
// normalizer. The yaml tags let the embedded seed catalog reuse the type.
type RawTool struct {
	ID          int64    `json:"id" yaml:"id"`
	Name        *string  `json:"name" yaml:"name"`
	Description *string  `json:"description" yaml:"description"`
	Category    *string  `json:"category" yaml:"category"`
	Price       *float64 `json:"price" yaml:"price"`
	Rating      *float64 `json:"rating" yaml:"rating"`
	WebsiteURL  *string  `json:"website_url" yaml:"website_url"`
	ImageURL    *string  `json:"image_url" yaml:"image_url"`
	CreatedAt   *string  `json:"created_at" yaml:"created_at"`
}

// Tool is a fully normalized catalog entry. Reviews, Featured, Popular and
// Tags are derived from the other fields at normalization time and are never
// mutated afterwards.
type Tool struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	Price       float64   `json:"price"`
	Rating      float64   `json:"rating"`
	Reviews     int       `json:"reviews"`
	Featured    bool      `json:"featured"`
	Popular     bool      `json:"popular"`
	WebsiteURL  string    `json:"website_url"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	Tags        []string  `json:"tags"`
}

// Free reports whether the tool has no monthly price.
func (t Tool) Free() bool {
	return t.Price == 0
}

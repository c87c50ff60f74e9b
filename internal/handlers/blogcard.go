package handlers

import (
	"phuongcosmetics.vn/storefront-web/internal/catalog"
	"phuongcosmetics.vn/storefront-web/internal/format"
)

// CardVariant selects the blog card layout.
type CardVariant string

const (
	CardDefault  CardVariant = "default"
	CardFeatured CardVariant = "featured"
	CardSmall    CardVariant = "small"
)

const featuredTagLimit = 3

var categoryBadgeStyles = map[string]string{
	"Skincare":  "bg-blue-600 text-white",
	"Makeup":    "bg-cyan-500 text-white",
	"Haircare":  "bg-purple-500 text-white",
	"Bodycare":  "bg-pink-500 text-white",
	"Fragrance": "bg-amber-500 text-white",
	"Wellness":  "bg-green-500 text-white",
}

const fallbackBadgeStyle = "bg-sky-50 text-sky-600 ring-1 ring-sky-100"

// CategoryBadgeStyle returns the badge classes for a post category.
func CategoryBadgeStyle(category string) string {
	if s, ok := categoryBadgeStyles[category]; ok {
		return s
	}
	return fallbackBadgeStyle
}

// BlogCard is a post preview. Featured cards add the summary and up to three tags;
// small cards omit the date line.
type BlogCard struct {
	Variant    CardVariant
	ID         string
	Href       string
	Title      string
	Cover      string
	Category   string
	BadgeStyle string
	Date       string
	ReadTime   int
	Summary    string
	Tags       []string
}

func (c BlogCard) Featured() bool { return c.Variant == CardFeatured }
func (c BlogCard) Small() bool    { return c.Variant == CardSmall }

// NewBlogCard formats post for the given variant. Unknown variants render as default.
func NewBlogCard(p catalog.Post, variant CardVariant, lang string) BlogCard {
	switch variant {
	case CardFeatured, CardSmall:
	default:
		variant = CardDefault
	}
	card := BlogCard{
		Variant:    variant,
		ID:         p.ID,
		Href:       "/blog/" + p.ID,
		Title:      p.Title,
		Cover:      p.Cover,
		Category:   p.Category,
		BadgeStyle: CategoryBadgeStyle(p.Category),
		Date:       format.Date(p.Date, lang),
		ReadTime:   p.ReadTimeMin,
	}
	if variant == CardFeatured {
		card.Summary = p.Summary
		tags := p.Tags
		if len(tags) > featuredTagLimit {
			tags = tags[:featuredTagLimit]
		}
		card.Tags = append([]string(nil), tags...)
	}
	return card
}

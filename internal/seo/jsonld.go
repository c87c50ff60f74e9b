package seo

import (
	"encoding/json"
	"fmt"
)

const schemaContext = "https://schema.org"

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// Organization returns a minimal Organization schema.
func Organization(name, url, logoURL string) map[string]any {
	m := map[string]any{
		"@context": schemaContext,
		"@type":    "Organization",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if logoURL != "" {
		m["logo"] = logoURL
	}
	return m
}

// BreadcrumbItem maps name and absolute item URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

// BreadcrumbList builds schema.org BreadcrumbList.
func BreadcrumbList(items []BreadcrumbItem) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
			"item":     it.Item,
		})
	}
	return map[string]any{
		"@context":        schemaContext,
		"@type":           "BreadcrumbList",
		"itemListElement": el,
	}
}

// ProductOffer carries the offer part of a Product schema.
type ProductOffer struct {
	Price           int64
	Currency        string
	InStock         bool
	URL             string
	PriceValidUntil string
}

// ProductRating feeds AggregateRating.
type ProductRating struct {
	Value       float64
	ReviewCount int
}

// ProductProperty becomes an additionalProperty PropertyValue.
type ProductProperty struct {
	Name  string
	Value string
}

// ProductSchema is the input for Product.
type ProductSchema struct {
	Name        string
	Description string
	Image       string
	Brand       string
	Category    string
	SKU         string
	Offer       ProductOffer
	Rating      *ProductRating
	Properties  []ProductProperty
}

// Product returns a schema.org Product payload with brand, offer and rating.
func Product(in ProductSchema) map[string]any {
	m := map[string]any{
		"@context":    schemaContext,
		"@type":       "Product",
		"name":        in.Name,
		"description": in.Description,
	}
	if in.Image != "" {
		m["image"] = in.Image
	}
	if in.Brand != "" {
		m["brand"] = map[string]any{"@type": "Brand", "name": in.Brand}
	}
	if in.Category != "" {
		m["category"] = in.Category
	}
	if in.SKU != "" {
		m["sku"] = in.SKU
	}
	availability := "https://schema.org/OutOfStock"
	if in.Offer.InStock {
		availability = "https://schema.org/InStock"
	}
	offer := map[string]any{
		"@type":         "Offer",
		"price":         in.Offer.Price,
		"priceCurrency": in.Offer.Currency,
		"availability":  availability,
	}
	if in.Offer.URL != "" {
		offer["url"] = in.Offer.URL
	}
	if in.Offer.PriceValidUntil != "" {
		offer["priceValidUntil"] = in.Offer.PriceValidUntil
	}
	m["offers"] = offer
	if in.Rating != nil {
		m["aggregateRating"] = map[string]any{
			"@type":       "AggregateRating",
			"ratingValue": in.Rating.Value,
			"reviewCount": in.Rating.ReviewCount,
			"bestRating":  5,
			"worstRating": 1,
		}
	}
	if len(in.Properties) > 0 {
		props := make([]map[string]any, 0, len(in.Properties))
		for _, p := range in.Properties {
			props = append(props, map[string]any{
				"@type": "PropertyValue",
				"name":  p.Name,
				"value": p.Value,
			})
		}
		m["additionalProperty"] = props
	}
	return m
}

// FAQEntry is one question of an FAQPage.
type FAQEntry struct {
	Question string
	Answer   string
}

// FAQPage builds schema.org FAQPage. It returns nil when there are no entries.
func FAQPage(entries []FAQEntry) map[string]any {
	if len(entries) == 0 {
		return nil
	}
	main := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		main = append(main, map[string]any{
			"@type": "Question",
			"name":  e.Question,
			"acceptedAnswer": map[string]any{
				"@type": "Answer",
				"text":  e.Answer,
			},
		})
	}
	return map[string]any{
		"@context":   schemaContext,
		"@type":      "FAQPage",
		"mainEntity": main,
	}
}

// BlogPostingSchema is the input for BlogPosting.
type BlogPostingSchema struct {
	Headline      string
	Description   string
	Image         string
	Author        string
	DatePublished string
	DateModified  string
	Section       string
	Keywords      string
	WordCount     int
	ReadMinutes   int
}

// BlogPosting returns a schema.org BlogPosting payload.
func BlogPosting(in BlogPostingSchema) map[string]any {
	m := map[string]any{
		"@context":    schemaContext,
		"@type":       "BlogPosting",
		"headline":    in.Headline,
		"description": in.Description,
		"wordCount":   in.WordCount,
	}
	if in.Image != "" {
		m["image"] = in.Image
	}
	if in.Author != "" {
		m["author"] = map[string]any{"@type": "Person", "name": in.Author}
	}
	if in.DatePublished != "" {
		m["datePublished"] = in.DatePublished
	}
	if in.DateModified != "" {
		m["dateModified"] = in.DateModified
	}
	if in.Section != "" {
		m["articleSection"] = in.Section
	}
	if in.Keywords != "" {
		m["keywords"] = in.Keywords
	}
	if in.ReadMinutes > 0 {
		m["timeRequired"] = fmt.Sprintf("PT%dM", in.ReadMinutes)
	}
	return m
}

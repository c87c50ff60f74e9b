// Package related selects "related items" for a detail page: other records from the
// same collection that share the category or at least one tag with the viewed one.
package related

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"phuongcosmetics.vn/storefront-web/internal/catalog"
)

// Limit caps the number of related records shown on a detail page.
const Limit = 4

var tracer = otel.Tracer("phuongcosmetics.vn/storefront-web/internal/related")

// Facets exposes the attributes the selector compares.
type Facets struct {
	ID       string
	Category string
	Tags     []string
}

// Select returns up to limit records from items that share the category or any tag
// with target, excluding target itself (matched by ID). Category and tags compare
// verbatim. Results keep the order of items. A non-positive limit yields an empty
// result.
func Select[T any](target T, items []T, facets func(T) Facets, limit int) []T {
	if limit <= 0 || facets == nil || len(items) == 0 {
		return []T{}
	}
	out := make([]T, 0, min(limit, len(items)))
	want := facets(target)
	tagSet := make(map[string]struct{}, len(want.Tags))
	for _, tag := range want.Tags {
		tagSet[tag] = struct{}{}
	}
	for _, item := range items {
		f := facets(item)
		if f.ID == want.ID {
			continue
		}
		if matches(want, tagSet, f) {
			out = append(out, item)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

func matches(target Facets, tagSet map[string]struct{}, candidate Facets) bool {
	if candidate.Category == target.Category {
		return true
	}
	for _, tag := range candidate.Tags {
		if _, ok := tagSet[tag]; ok {
			return true
		}
	}
	return false
}

// ProductFacets maps a product to its comparable facets.
func ProductFacets(p catalog.Product) Facets {
	return Facets{ID: p.ID, Category: p.Category, Tags: p.Tags}
}

// PostFacets maps a post to its comparable facets.
func PostFacets(p catalog.Post) Facets {
	return Facets{ID: p.ID, Category: p.Category, Tags: p.Tags}
}

// Products returns the related products for target.
func Products(ctx context.Context, target catalog.Product, all []catalog.Product) []catalog.Product {
	_, span := tracer.Start(ctx, "related.Products")
	defer span.End()
	out := Select(target, all, ProductFacets, Limit)
	span.SetAttributes(
		attribute.String("catalog.product_id", target.ID),
		attribute.Int("related.count", len(out)),
	)
	return out
}

// Posts returns the related posts for target.
func Posts(ctx context.Context, target catalog.Post, all []catalog.Post) []catalog.Post {
	_, span := tracer.Start(ctx, "related.Posts")
	defer span.End()
	out := Select(target, all, PostFacets, Limit)
	span.SetAttributes(
		attribute.String("catalog.post_id", target.ID),
		attribute.Int("related.count", len(out)),
	)
	return out
}

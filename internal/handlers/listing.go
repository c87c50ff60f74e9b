package handlers

import (
	"phuongcosmetics.vn/storefront-web/internal/catalog"
	"phuongcosmetics.vn/storefront-web/internal/nav"
)

// CategoryLink is one entry in a listing's category filter.
type CategoryLink struct {
	Name   string
	Href   string
	Active bool
}

// ProductListing backs /products, optionally filtered by category.
type ProductListing struct {
	Category   string
	Categories []CategoryLink
	Cards      []ProductCard
}

// PostListing backs /blog, optionally filtered by category.
type PostListing struct {
	Category   string
	Categories []CategoryLink
	Cards      []BlogCard
}

func categoryLinks(section string, names []string, active string) []CategoryLink {
	links := make([]CategoryLink, 0, len(names))
	for _, n := range names {
		links = append(links, CategoryLink{Name: n, Href: nav.CategoryHref(section, n), Active: n == active})
	}
	return links
}

// BuildProductListing formats products in catalog order.
func BuildProductListing(products []catalog.Product, categories []string, category, lang string) *ProductListing {
	v := &ProductListing{
		Category:   category,
		Categories: categoryLinks("/products", categories, category),
		Cards:      make([]ProductCard, 0, len(products)),
	}
	for _, p := range products {
		v.Cards = append(v.Cards, NewProductCard(p, lang))
	}
	return v
}

// BuildPostListing formats posts in catalog order as default cards.
func BuildPostListing(posts []catalog.Post, categories []string, category, lang string) *PostListing {
	v := &PostListing{
		Category:   category,
		Categories: categoryLinks("/blog", categories, category),
		Cards:      make([]BlogCard, 0, len(posts)),
	}
	for _, p := range posts {
		v.Cards = append(v.Cards, NewBlogCard(p, CardDefault, lang))
	}
	return v
}

package handlers

import (
	"phuongcosmetics.vn/storefront-web/internal/catalog"
	"phuongcosmetics.vn/storefront-web/internal/seo"
)

const (
	homeProductLimit = 8
	homePostLimit    = 4
)

// HomeView is the landing page: a product grid, one featured post and a few
// recent posts.
type HomeView struct {
	Products     []ProductCard
	FeaturedPost *BlogCard
	Posts        []BlogCard
}

// BuildHomeView picks the first products and posts in catalog order.
func BuildHomeView(products []catalog.Product, posts []catalog.Post, lang string) *HomeView {
	v := &HomeView{}
	for i, p := range products {
		if i == homeProductLimit {
			break
		}
		v.Products = append(v.Products, NewProductCard(p, lang))
	}
	if len(posts) == 0 {
		return v
	}
	featured := NewBlogCard(posts[0], CardFeatured, lang)
	v.FeaturedPost = &featured
	for i, p := range posts[1:] {
		if i == homePostLimit {
			break
		}
		v.Posts = append(v.Posts, NewBlogCard(p, CardSmall, lang))
	}
	return v
}

// HomeMetadata describes the store itself. The layout keeps its default title and
// description.
func HomeMetadata(site Site) *seo.Metadata {
	return &seo.Metadata{
		Structured: []seo.StructuredData{
			{ID: "organization-schema", Data: seo.Organization(site.Name, site.URL("/"), "")},
		},
	}
}

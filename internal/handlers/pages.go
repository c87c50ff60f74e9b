package handlers

import (
	"strings"

	"phuongcosmetics.vn/storefront-web/internal/nav"
	"phuongcosmetics.vn/storefront-web/internal/seo"
)

// Site identifies the storefront in titles, meta tags and absolute URLs.
type Site struct {
	Name    string
	BaseURL string
}

// URL joins path onto the base URL. Absolute inputs are returned as-is.
func (s Site) URL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	base := strings.TrimRight(s.BaseURL, "/")
	if path == "" || path == "/" {
		return base
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}

// SEOData is the site-default head rendered by the layout. Detail pages overwrite
// it through seo.Sync after rendering.
type SEOData struct {
	Title       string
	Description string
	Canonical   string
	Robots      string
}

// PageData is the view model for pages using the shared layout.
type PageData struct {
	Title     string
	Lang      string
	SiteName  string
	SEO       SEOData
	Analytics Analytics
	CSRFToken string
	CartCount int

	Path        string
	Nav         []nav.RenderedItem
	Breadcrumbs []nav.Crumb

	// Meta is synchronised into the rendered head; nil leaves the defaults.
	Meta *seo.Metadata

	// Optional per-page view model payloads
	Home     *HomeView
	Product  *ProductView
	Post     *PostView
	Products *ProductListing
	Posts    *PostListing
	Status   *StatusView
}

// StatusView backs error pages such as 404.
type StatusView struct {
	Code    int
	Message string
}

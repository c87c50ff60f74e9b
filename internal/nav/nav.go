package nav

import (
	"net/url"
	"strings"
)

// Item represents a top-level navigation item.
type Item struct {
	Path     string // e.g. "/products"
	LabelKey string // i18n key, e.g. "nav.products"
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Href     string
	LabelKey string
	Active   bool
}

// Crumb represents a breadcrumb entry. If LabelKey is empty, use Label.
type Crumb struct {
	Href     string
	LabelKey string
	Label    string
	Active   bool
}

// Main is the primary navigation definition.
var Main = []Item{
	{Path: "/", LabelKey: "nav.home"},
	{Path: "/products", LabelKey: "nav.products"},
	{Path: "/blog", LabelKey: "nav.blog"},
}

// Build renders navigation items with active state given the current path.
func Build(currentPath string) []RenderedItem {
	if currentPath == "" {
		currentPath = "/"
	}
	items := make([]RenderedItem, 0, len(Main))
	for _, it := range Main {
		items = append(items, RenderedItem{
			Href:     it.Path,
			LabelKey: it.LabelKey,
			Active:   isActive(it.Path, currentPath),
		})
	}
	return items
}

func isActive(itemPath, currentPath string) bool {
	if itemPath == "/" {
		return currentPath == "/"
	}
	return currentPath == itemPath || strings.HasPrefix(currentPath, itemPath+"/")
}

// CategoryHref links a listing page filtered by category.
func CategoryHref(section, category string) string {
	if category == "" {
		return section
	}
	return section + "?category=" + url.QueryEscape(category)
}

// Section returns Home plus the section crumb, e.g. Trang chủ → Sản phẩm.
func Section(section, labelKey string, active bool) []Crumb {
	return []Crumb{
		{Href: "/", LabelKey: "nav.home"},
		{Href: section, LabelKey: labelKey, Active: active},
	}
}

// Detail builds Home → section → category → record. The category crumb links
// the filtered listing.
func Detail(section, labelKey, category, title, href string) []Crumb {
	crumbs := Section(section, labelKey, false)
	if category != "" {
		crumbs = append(crumbs, Crumb{Href: CategoryHref(section, category), Label: category})
	}
	return append(crumbs, Crumb{Href: href, Label: title, Active: true})
}

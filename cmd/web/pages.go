package main

import (
	"net/http"
	"strings"

	handlersPkg "phuongcosmetics.vn/storefront-web/internal/handlers"
	mw "phuongcosmetics.vn/storefront-web/internal/middleware"
	"phuongcosmetics.vn/storefront-web/internal/nav"
	"phuongcosmetics.vn/storefront-web/internal/platform/httpx"
)

// page fills the layout fields shared by every full page.
func (a *app) page(r *http.Request, title, description string) handlersPkg.PageData {
	lang := mw.Lang(r)
	count := 0
	if s := mw.GetSession(r); s.CartID != "" {
		count = a.carts.Count(s.CartID)
	}
	return handlersPkg.PageData{
		Title:     title,
		Lang:      lang,
		SiteName:  a.site.Name,
		Analytics: a.analytics,
		CSRFToken: mw.CSRFToken(r),
		CartCount: count,
		Path:      r.URL.Path,
		Nav:       nav.Build(r.URL.Path),
		SEO: handlersPkg.SEOData{
			Title:       title,
			Description: description,
			Canonical:   a.site.URL(r.URL.RequestURI()),
		},
	}
}

// HomeHandler renders the landing page.
func (a *app) HomeHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	vm := a.page(r, a.site.Name+" | "+a.bundle.T(lang, "home.title"), a.bundle.T(lang, "brand.tagline"))
	vm.Home = handlersPkg.BuildHomeView(a.catalog.Products(), a.catalog.Posts(), lang)
	a.renderPage(w, r, http.StatusOK, "home", vm, handlersPkg.HomeMetadata(a.site))
}

// ProductListHandler renders /products, optionally filtered by ?category=.
func (a *app) ProductListHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	categories := a.catalog.ProductCategories()
	category := canonicalCategory(categories, r.URL.Query().Get("category"))

	title := a.bundle.T(lang, "products.title")
	if category != "" {
		title = category
	}
	vm := a.page(r, title+" | "+a.site.Name, a.bundle.T(lang, "products.description"))
	vm.Products = handlersPkg.BuildProductListing(a.catalog.ProductsByCategory(category), categories, category, lang)
	vm.Breadcrumbs = nav.Section("/products", "nav.products", category == "")
	if category != "" {
		vm.Breadcrumbs = append(vm.Breadcrumbs, nav.Crumb{Href: nav.CategoryHref("/products", category), Label: category, Active: true})
	}
	a.renderPage(w, r, http.StatusOK, "products", vm, nil)
}

// BlogListHandler renders /blog, optionally filtered by ?category=.
func (a *app) BlogListHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	categories := a.catalog.PostCategories()
	category := canonicalCategory(categories, r.URL.Query().Get("category"))

	title := a.bundle.T(lang, "blog.title")
	if category != "" {
		title = category
	}
	vm := a.page(r, title+" | "+a.site.Name+" Blog", a.bundle.T(lang, "blog.description"))
	vm.Posts = handlersPkg.BuildPostListing(a.catalog.PostsByCategory(category), categories, category, lang)
	vm.Breadcrumbs = nav.Section("/blog", "nav.blog", category == "")
	if category != "" {
		vm.Breadcrumbs = append(vm.Breadcrumbs, nav.Crumb{Href: nav.CategoryHref("/blog", category), Label: category, Active: true})
	}
	a.renderPage(w, r, http.StatusOK, "blog", vm, nil)
}

// NotFoundHandler answers unknown routes.
func (a *app) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	a.notFound(w, r, http.StatusText(http.StatusNotFound))
}

// notFound renders the 404 page, or the JSON envelope for HTMX requests.
func (a *app) notFound(w http.ResponseWriter, r *http.Request, message string) {
	if r.Header.Get("HX-Request") == "true" {
		httpx.Respond(w, r, httpx.NotFound(message))
		return
	}
	vm := a.page(r, message+" | "+a.site.Name, message)
	vm.SEO.Robots = "noindex"
	vm.Status = &handlersPkg.StatusView{Code: http.StatusNotFound, Message: message}
	a.renderPage(w, r, http.StatusNotFound, "not_found", vm, nil)
}

// canonicalCategory maps a query value onto the catalog's spelling. Unknown
// values are kept so the listing renders empty rather than unfiltered.
func canonicalCategory(categories []string, q string) string {
	q = strings.TrimSpace(q)
	for _, c := range categories {
		if strings.EqualFold(c, q) {
			return c
		}
	}
	return q
}

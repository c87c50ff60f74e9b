package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"phuongcosmetics.vn/storefront-web/internal/catalog"
	handlersPkg "phuongcosmetics.vn/storefront-web/internal/handlers"
	mw "phuongcosmetics.vn/storefront-web/internal/middleware"
	"phuongcosmetics.vn/storefront-web/internal/nav"
	"phuongcosmetics.vn/storefront-web/internal/platform/httpx"
	"phuongcosmetics.vn/storefront-web/internal/platform/observability"
	"phuongcosmetics.vn/storefront-web/internal/related"
)

// PostHandler renders the blog detail page.
func (a *app) PostHandler(w http.ResponseWriter, r *http.Request) {
	logger := observability.FromContext(r.Context())
	lang := mw.Lang(r)

	p, err := a.catalog.Post(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			a.notFound(w, r, a.bundle.T(lang, "blog.not_found"))
			return
		}
		logger.Error("post lookup failed", zap.Error(err))
		httpx.Respond(w, r, httpx.NewError("catalog_unavailable", "catalog unavailable", http.StatusInternalServerError))
		return
	}

	rel := related.Posts(r.Context(), p, a.catalog.Posts())
	view, err := handlersPkg.BuildPostView(p, rel, a.markdown, lang)
	if err != nil {
		logger.Error("render post body", zap.String("post_id", p.ID), zap.Error(err))
		httpx.Respond(w, r, httpx.NewError("render_failed", "could not render post", http.StatusInternalServerError))
		return
	}
	meta := handlersPkg.PostMetadata(p, a.site)

	vm := a.page(r, meta.Title, p.Summary)
	vm.Post = view
	vm.Breadcrumbs = nav.Detail("/blog", "nav.blog", p.Category, p.Title, "/blog/"+p.ID)
	a.renderPage(w, r, http.StatusOK, "post", vm, meta)
}

package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"phuongcosmetics.vn/storefront-web/internal/cart"
	"phuongcosmetics.vn/storefront-web/internal/catalog"
	handlersPkg "phuongcosmetics.vn/storefront-web/internal/handlers"
	mw "phuongcosmetics.vn/storefront-web/internal/middleware"
	"phuongcosmetics.vn/storefront-web/internal/nav"
	"phuongcosmetics.vn/storefront-web/internal/platform/httpx"
	"phuongcosmetics.vn/storefront-web/internal/platform/observability"
	"phuongcosmetics.vn/storefront-web/internal/related"
)

// lookupProduct resolves {id} and answers 404 itself when it is unknown.
func (a *app) lookupProduct(w http.ResponseWriter, r *http.Request) (catalog.Product, bool) {
	p, err := a.catalog.Product(r.Context(), chi.URLParam(r, "id"))
	if err == nil {
		return p, true
	}
	if errors.Is(err, catalog.ErrNotFound) {
		a.notFound(w, r, a.bundle.T(mw.Lang(r), "product.not_found"))
		return catalog.Product{}, false
	}
	observability.FromContext(r.Context()).Error("product lookup failed", zap.Error(err))
	httpx.Respond(w, r, httpx.NewError("catalog_unavailable", "catalog unavailable", http.StatusInternalServerError))
	return catalog.Product{}, false
}

// ProductHandler renders the product detail page.
func (a *app) ProductHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := a.lookupProduct(w, r)
	if !ok {
		return
	}
	lang := mw.Lang(r)
	rel := related.Products(r.Context(), p, a.catalog.Products())
	meta := handlersPkg.ProductMetadata(p, a.site, a.now())

	vm := a.page(r, meta.Title, p.Description)
	vm.Product = handlersPkg.BuildProductView(p, rel, lang)
	vm.Breadcrumbs = nav.Detail("/products", "nav.products", p.Category, p.Name, "/products/"+p.ID)
	a.renderPage(w, r, http.StatusOK, "product", vm, meta)
}

// AddToCartHandler forwards the product to the cart sink and answers with the
// button in its "added" state. Non-HTMX form posts are redirected back.
func (a *app) AddToCartHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := a.lookupProduct(w, r)
	if !ok {
		return
	}
	logger := observability.FromContext(r.Context())
	session := mw.GetSession(r)
	cartID := session.EnsureCartID()

	if err := a.cartSink.Add(r.Context(), cartID, cart.ItemFromProduct(p)); err != nil {
		logger.Error("add to cart failed", zap.String("product_id", p.ID), zap.Error(err))
		httpx.Respond(w, r, httpx.NewError("cart_unavailable", "could not add product to cart", http.StatusBadGateway))
		return
	}
	count := a.carts.Count(cartID)
	logger.Info("product added to cart", zap.String("product_id", p.ID), zap.Int("cart_count", count))

	if !mw.IsHTMX(r.Context()) {
		http.Redirect(w, r, "/products/"+p.ID, http.StatusSeeOther)
		return
	}

	payload := map[string]any{
		"cart:added": map[string]any{
			"productId": p.ID,
			"name":      p.Name,
			"count":     count,
		},
	}
	if raw, err := json.Marshal(payload); err == nil {
		w.Header().Set("HX-Trigger", string(raw))
	}
	a.renderTemplate(w, r, "frag_cart_button", handlersPkg.NewCartButton(p, mw.Lang(r), true))
}

// CartButtonFrag renders the idle add-to-cart button; the added state swaps back
// to it after a short delay.
func (a *app) CartButtonFrag(w http.ResponseWriter, r *http.Request) {
	p, ok := a.lookupProduct(w, r)
	if !ok {
		return
	}
	a.renderTemplate(w, r, "frag_cart_button", handlersPkg.NewCartButton(p, mw.Lang(r), false))
}

package handlers

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"phuongcosmetics.vn/storefront-web/internal/catalog"
	"phuongcosmetics.vn/storefront-web/internal/format"
	"phuongcosmetics.vn/storefront-web/internal/nav"
	"phuongcosmetics.vn/storefront-web/internal/seo"
)

const (
	currencyVND = "VND"
	// offers stay valid for a year from the time the page is rendered
	priceValidity = 365 * 24 * time.Hour
)

// ProductCard is the compact product tile used in grids.
type ProductCard struct {
	ID            string
	Href          string
	Name          string
	Brand         string
	Category      string
	Image         string
	Price         string
	OriginalPrice string
	HasDiscount   bool
	Discount      int
	Rating        string
	InStock       bool
}

// CartButton is the add-to-cart control and its HTMX endpoints.
type CartButton struct {
	ProductID string
	Lang      string
	Added     bool
	InStock   bool
	PostURL   string
	ResetURL  string
}

// ProductView is everything the product detail template renders.
type ProductView struct {
	ProductCard
	Description   string
	Ingredients   string
	CategoryLower string
	CategoryHref  string
	Popularity    int
	Tags          []string

	DetailedIngredients []catalog.Ingredient
	UsageInstructions   []string
	History             string
	StorageInstructions []string
	Benefits            []string
	Warnings            []string
	FAQs                []catalog.FAQ

	Related []ProductCard
	Cart    CartButton
}

// HasDetails reports whether any optional section will render.
func (v *ProductView) HasDetails() bool {
	return len(v.DetailedIngredients) > 0 || len(v.UsageInstructions) > 0 || v.History != "" ||
		len(v.StorageInstructions) > 0 || len(v.Benefits) > 0 || len(v.Warnings) > 0 || len(v.FAQs) > 0
}

// NewProductCard formats a product for grids.
func NewProductCard(p catalog.Product, lang string) ProductCard {
	card := ProductCard{
		ID:          p.ID,
		Href:        "/products/" + p.ID,
		Name:        p.Name,
		Brand:       p.Brand,
		Category:    p.Category,
		Image:       p.Image,
		Price:       format.Currency(p.EffectivePrice(), currencyVND, lang),
		HasDiscount: p.HasDiscount(),
		Rating:      format.Rating(p.Rating),
		InStock:     p.InStock(),
	}
	if card.HasDiscount {
		card.OriginalPrice = format.Currency(p.Price, currencyVND, lang)
		card.Discount = p.DiscountPercent()
	}
	return card
}

// NewCartButton builds the button state for product id.
func NewCartButton(p catalog.Product, lang string, added bool) CartButton {
	return CartButton{
		ProductID: p.ID,
		Lang:      lang,
		Added:     added,
		InStock:   p.InStock(),
		PostURL:   "/products/" + p.ID + "/cart",
		ResetURL:  "/products/" + p.ID + "/cart-button",
	}
}

// BuildProductView renders every product field verbatim plus the formatted price,
// discount badge and related grid.
func BuildProductView(p catalog.Product, related []catalog.Product, lang string) *ProductView {
	v := &ProductView{
		ProductCard:         NewProductCard(p, lang),
		Description:         p.Description,
		Ingredients:         p.Ingredients,
		CategoryLower:       strings.ToLower(p.Category),
		CategoryHref:        nav.CategoryHref("/products", p.Category),
		Popularity:          p.Popularity,
		Tags:                p.Tags,
		DetailedIngredients: p.DetailedIngredients,
		UsageInstructions:   p.UsageInstructions,
		History:             p.History,
		StorageInstructions: p.StorageInstructions,
		Benefits:            p.Benefits,
		Warnings:            p.Warnings,
		FAQs:                p.FAQs,
		Cart:                NewCartButton(p, lang, false),
	}
	v.Related = make([]ProductCard, 0, len(related))
	for _, r := range related {
		v.Related = append(v.Related, NewProductCard(r, lang))
	}
	return v
}

// ProductMetadata is the head state for a product page: title, descriptive and
// social tags, and Product, BreadcrumbList and (when FAQs exist) FAQPage JSON-LD.
// og:* and product:* use property=, the rest name=.
func ProductMetadata(p catalog.Product, site Site, now time.Time) *seo.Metadata {
	pageURL := site.URL("/products/" + p.ID)
	image := site.URL(p.Image)
	price := p.EffectivePrice()
	heading := p.Name + " - " + p.Brand
	categoryLower := strings.ToLower(p.Category)
	nameLower := strings.ToLower(p.Name)

	availability := "out of stock"
	if p.InStock() {
		availability = "in stock"
	}

	var tags seo.TagSet
	tags.Add("description", fmt.Sprintf(
		"%s Mua %s chính hãng %s giá %s tại %s. %s chất lượng cao, giao hàng nhanh. Xem chi tiết thành phần, cách dùng và đánh giá từ khách hàng.",
		p.Description, p.Name, p.Brand, format.Currency(price, currencyVND, "vi"), site.Name, p.Category,
	), false)
	tags.Add("keywords", joinNonEmpty(", ",
		p.Name, "mua "+nameLower, p.Brand, p.Category, strings.Join(p.Tags, ", "),
		"mỹ phẩm "+categoryLower, "skincare routine", "makeup tutorial", "review "+nameLower,
	), false)
	tags.Add("og:title", heading, true)
	tags.Add("og:description", p.Description, true)
	tags.Add("og:image", image, true)
	tags.Add("og:url", pageURL, true)
	tags.Add("og:type", "product", true)
	tags.Add("product:price:amount", strconv.FormatInt(price, 10), true)
	tags.Add("product:price:currency", currencyVND, true)
	tags.Add("product:availability", availability, true)
	tags.Add("product:condition", "new", true)
	tags.Add("product:brand", p.Brand, true)
	tags.Add("product:category", p.Category, true)
	tags.Add("product:retailer", site.Name, true)
	tags.Add("product:retailer_item_id", p.ID, true)
	tags.Add("article:author", p.Brand, false)
	tags.Add("article:published_time", format.ISODate(p.CreatedAt), false)
	tags.Add("article:modified_time", now.UTC().Format(time.RFC3339), false)
	tags.Add("twitter:card", "summary_large_image", false)
	tags.Add("twitter:title", heading, false)
	tags.Add("twitter:description", p.Description, false)
	tags.Add("twitter:image", image, false)

	props := make([]seo.ProductProperty, 0, len(p.DetailedIngredients))
	for _, ing := range p.DetailedIngredients {
		props = append(props, seo.ProductProperty{Name: ing.Name, Value: ing.Concentration + " - " + ing.Function})
	}

	md := &seo.Metadata{
		Title: fmt.Sprintf("%s | %s", heading, site.Name),
		Tags:  tags.Tags(),
		Structured: []seo.StructuredData{
			{ID: "product-schema", Data: seo.Product(seo.ProductSchema{
				Name:        p.Name,
				Description: p.Description,
				Image:       image,
				Brand:       p.Brand,
				Category:    p.Category,
				SKU:         p.ID,
				Offer: seo.ProductOffer{
					Price:           price,
					Currency:        currencyVND,
					InStock:         p.InStock(),
					URL:             pageURL,
					PriceValidUntil: format.ISODate(now.Add(priceValidity)),
				},
				Rating: &seo.ProductRating{
					Value:       p.Rating,
					ReviewCount: int(math.Floor(float64(p.Popularity) * 10)),
				},
				Properties: props,
			})},
			{ID: "breadcrumb-schema", Data: seo.BreadcrumbList([]seo.BreadcrumbItem{
				{Name: "Trang chủ", Item: site.URL("/")},
				{Name: "Sản phẩm", Item: site.URL("/products")},
				{Name: p.Category, Item: site.URL(nav.CategoryHref("/products", p.Category))},
				{Name: p.Name, Item: pageURL},
			})},
		},
	}
	if len(p.FAQs) > 0 {
		entries := make([]seo.FAQEntry, 0, len(p.FAQs))
		for _, f := range p.FAQs {
			entries = append(entries, seo.FAQEntry{Question: f.Question, Answer: f.Answer})
		}
		md.Structured = append(md.Structured, seo.StructuredData{ID: "faq-schema", Data: seo.FAQPage(entries)})
	}
	return md
}

func joinNonEmpty(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}

package catalog

import "math"

// HasDiscount reports whether the product carries a sale price below its list price.
func (p Product) HasDiscount() bool {
	return p.SalePrice != nil && *p.SalePrice < p.Price
}

// EffectivePrice is the price a customer pays: the sale price when discounted,
// otherwise the list price.
func (p Product) EffectivePrice() int64 {
	if p.HasDiscount() {
		return *p.SalePrice
	}
	return p.Price
}

// DiscountPercent returns round((price-sale)/price*100), or 0 without a discount.
func (p Product) DiscountPercent() int {
	if !p.HasDiscount() || p.Price <= 0 {
		return 0
	}
	return DiscountPercent(p.Price, *p.SalePrice)
}

// InStock reports whether any units remain.
func (p Product) InStock() bool { return p.Stock > 0 }

// DiscountPercent computes the rounded discount between a list and a sale price.
func DiscountPercent(price, sale int64) int {
	if price <= 0 || sale >= price {
		return 0
	}
	return int(math.Round(float64(price-sale) / float64(price) * 100))
}

package catalog

import "testing"

func int64Ptr(v int64) *int64 { return &v }

func TestDiscount(t *testing.T) {
	tests := []struct {
		name      string
		product   Product
		discount  bool
		percent   int
		effective int64
	}{
		{
			name:      "sale below price",
			product:   Product{Price: 500000, SalePrice: int64Ptr(400000)},
			discount:  true,
			percent:   20,
			effective: 400000,
		},
		{
			name:      "rounds to nearest percent",
			product:   Product{Price: 259000, SalePrice: int64Ptr(199000)},
			discount:  true,
			percent:   23,
			effective: 199000,
		},
		{
			name:      "no sale price",
			product:   Product{Price: 520000},
			percent:   0,
			effective: 520000,
		},
		{
			name:      "sale equal to price shows no badge",
			product:   Product{Price: 395000, SalePrice: int64Ptr(395000)},
			percent:   0,
			effective: 395000,
		},
		{
			name:      "sale above price is ignored",
			product:   Product{Price: 100, SalePrice: int64Ptr(150)},
			percent:   0,
			effective: 100,
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.product.HasDiscount(); got != tc.discount {
				t.Fatalf("HasDiscount: expected %v, got %v", tc.discount, got)
			}
			if got := tc.product.DiscountPercent(); got != tc.percent {
				t.Fatalf("DiscountPercent: expected %d, got %d", tc.percent, got)
			}
			if got := tc.product.EffectivePrice(); got != tc.effective {
				t.Fatalf("EffectivePrice: expected %d, got %d", tc.effective, got)
			}
		})
	}
}

func TestEmbeddedProductDiscount(t *testing.T) {
	store, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	for _, p := range store.Products() {
		if p.ID == "p1" && p.DiscountPercent() != 20 {
			t.Fatalf("expected p1 discount 20, got %d", p.DiscountPercent())
		}
		if p.ID == "p4" && p.HasDiscount() {
			t.Fatalf("p4 sale equals price and must not be discounted")
		}
	}
}

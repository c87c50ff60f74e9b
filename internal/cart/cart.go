// Package cart forwards "add to cart" actions from the product page to a sink.
// The storefront does not own a cart service; sinks only record the intent.
package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"phuongcosmetics.vn/storefront-web/internal/catalog"
)

// ErrInvalidItem is returned when an item has no cart or product identifier.
var ErrInvalidItem = errors.New("cart: invalid item")

// Item is one product added to a cart.
type Item struct {
	ProductID string
	Name      string
	Brand     string
	Price     int64
	Currency  string
	Quantity  int
}

// ItemFromProduct captures the product at its effective price.
func ItemFromProduct(p catalog.Product) Item {
	return Item{
		ProductID: p.ID,
		Name:      p.Name,
		Brand:     p.Brand,
		Price:     p.EffectivePrice(),
		Currency:  "VND",
		Quantity:  1,
	}
}

// Sink receives add-to-cart actions.
type Sink interface {
	Add(ctx context.Context, cartID string, item Item) error
}

func validate(cartID string, item Item) (Item, error) {
	if strings.TrimSpace(cartID) == "" || strings.TrimSpace(item.ProductID) == "" {
		return Item{}, ErrInvalidItem
	}
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	if item.Currency == "" {
		item.Currency = "VND"
	}
	return item, nil
}

// Reverter is implemented by sinks that can undo an accepted Add.
type Reverter interface {
	Revert(ctx context.Context, cartID string, item Item) error
}

// Multi fans an action out to every sink in order, stopping at the first error.
// Sinks that already accepted the item are reverted, newest first, when they
// implement Reverter.
type Multi []Sink

// Add implements Sink.
func (m Multi) Add(ctx context.Context, cartID string, item Item) error {
	applied := make([]Sink, 0, len(m))
	for _, s := range m {
		if s == nil {
			continue
		}
		if err := s.Add(ctx, cartID, item); err != nil {
			return m.rollback(ctx, applied, cartID, item, err)
		}
		applied = append(applied, s)
	}
	return nil
}

func (Multi) rollback(ctx context.Context, applied []Sink, cartID string, item Item, cause error) error {
	errs := []error{cause}
	for i := len(applied) - 1; i >= 0; i-- {
		r, ok := applied[i].(Reverter)
		if !ok {
			continue
		}
		if err := r.Revert(ctx, cartID, item); err != nil {
			errs = append(errs, fmt.Errorf("revert cart item: %w", err))
		}
	}
	return errors.Join(errs...)
}

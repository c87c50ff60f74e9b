package cart

import (
	"context"
	"sync"
)

// Memory keeps carts in process memory, keyed by cart id.
type Memory struct {
	mu    sync.Mutex
	carts map[string][]Item
}

// NewMemory returns an empty in-memory sink.
func NewMemory() *Memory {
	return &Memory{carts: map[string][]Item{}}
}

// Add merges item into the cart, summing quantities per product. The latest
// price wins.
func (m *Memory) Add(_ context.Context, cartID string, item Item) error {
	item, err := validate(cartID, item)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	lines := m.carts[cartID]
	for i := range lines {
		if lines[i].ProductID == item.ProductID {
			lines[i].Quantity += item.Quantity
			lines[i].Price = item.Price
			return nil
		}
	}
	m.carts[cartID] = append(lines, item)
	return nil
}

// Revert takes item's quantity back out of the cart, dropping the line when it
// reaches zero. Unknown lines are ignored.
func (m *Memory) Revert(_ context.Context, cartID string, item Item) error {
	item, err := validate(cartID, item)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	lines := m.carts[cartID]
	for i := range lines {
		if lines[i].ProductID != item.ProductID {
			continue
		}
		lines[i].Quantity -= item.Quantity
		if lines[i].Quantity <= 0 {
			lines = append(lines[:i], lines[i+1:]...)
		}
		break
	}
	if len(lines) == 0 {
		delete(m.carts, cartID)
		return nil
	}
	m.carts[cartID] = lines
	return nil
}

// Lines returns a copy of the cart's lines in insertion order.
func (m *Memory) Lines(cartID string) []Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Item(nil), m.carts[cartID]...)
}

// Count is the total quantity in the cart.
func (m *Memory) Count(cartID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, l := range m.carts[cartID] {
		n += l.Quantity
	}
	return n
}

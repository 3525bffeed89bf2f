package cart

import (
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/lojinha/storefront/internal/domain"
)

// ViewModel holds the session's current cart line sequence. Replace is
// the only mutation: callers build the full next sequence and call
// SetAll, so readers always see one coherent snapshot.
type ViewModel struct {
	mu    sync.RWMutex
	items []domain.CartLineItem
}

// NewViewModel creates a view-model seeded with the given lines
func NewViewModel(items []domain.CartLineItem) *ViewModel {
	vm := &ViewModel{}
	vm.SetAll(items)
	return vm
}

// Items returns a copy of the current line sequence, in display order
func (v *ViewModel) Items() []domain.CartLineItem {
	v.mu.RLock()
	defer v.mu.RUnlock()

	items := make([]domain.CartLineItem, len(v.items))
	copy(items, v.items)
	return items
}

// SetAll replaces the whole sequence with the given one
func (v *ViewModel) SetAll(items []domain.CartLineItem) {
	next := make([]domain.CartLineItem, len(items))
	copy(next, items)

	v.mu.Lock()
	v.items = next
	v.mu.Unlock()
}

// Total returns the sum of quantity * unit price over all lines
func (v *ViewModel) Total() decimal.Decimal {
	v.mu.RLock()
	defer v.mu.RUnlock()

	total := decimal.Zero
	for _, item := range v.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// ClampQuantity parses a raw quantity edit and clamps it to
// [0, stock]. Non-numeric input coerces to 0, fractions floor.
func ClampQuantity(raw string, stock int) int {
	qty := 0
	if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
		qty = n
	} else if f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
		// Bound before converting; int(f) is undefined for values
		// outside the int range (and for NaN).
		switch {
		case f < 0 || math.IsNaN(f):
			f = 0
		case stock >= 0 && f > float64(stock):
			f = float64(stock)
		case f > math.MaxInt32:
			f = math.MaxInt32
		}
		qty = int(math.Floor(f))
	}

	if qty < 0 {
		return 0
	}
	if stock >= 0 && qty > stock {
		return stock
	}
	return qty
}

// Simplify reduces full lines to the {idProduct, quantity} push payload
func Simplify(items []domain.CartLineItem) []domain.CartUpdate {
	updates := make([]domain.CartUpdate, len(items))
	for i, item := range items {
		updates[i] = domain.CartUpdate{
			IDProduct: item.Product.ID,
			Quantity:  item.Quantity,
		}
	}
	return updates
}

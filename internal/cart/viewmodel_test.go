package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lojinha/storefront/internal/domain"
)

func line(id string, qty int, price string, stock int) domain.CartLineItem {
	return domain.CartLineItem{
		Quantity: qty,
		Product: domain.Product{
			ID:    id,
			Name:  "product " + id,
			Price: decimal.RequireFromString(price),
			Stock: stock,
		},
	}
}

func TestClampQuantity(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		stock int
		want  int
	}{
		{"within range", "3", 10, 3},
		{"at stock", "10", 10, 10},
		{"above stock clamps", "15", 10, 10},
		{"negative clamps to zero", "-4", 10, 0},
		{"zero is valid", "0", 10, 0},
		{"non-numeric coerces to zero", "abc", 10, 0},
		{"empty coerces to zero", "", 10, 0},
		{"fraction floors", "2.9", 10, 2},
		{"whitespace tolerated", " 5 ", 10, 5},
		{"zero stock", "3", 0, 0},
		{"huge float clamps to stock", "1e30", 10, 10},
		{"negative float clamps to zero", "-1e30", 10, 0},
		{"NaN coerces to zero", "NaN", 10, 0},
		{"infinity clamps to stock", "Inf", 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampQuantity(tt.raw, tt.stock))
		})
	}
}

func TestViewModelTotal(t *testing.T) {
	vm := NewViewModel([]domain.CartLineItem{
		line("P1", 2, "5.00", 10),
		line("P2", 1, "3.00", 10),
	})

	assert.Equal(t, "13.00", vm.Total().StringFixed(2))
}

func TestViewModelSetAllReplacesSnapshot(t *testing.T) {
	vm := NewViewModel([]domain.CartLineItem{line("P1", 1, "1.00", 5)})

	next := []domain.CartLineItem{
		line("P2", 2, "2.00", 5),
		line("P3", 3, "3.00", 5),
	}
	vm.SetAll(next)

	items := vm.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "P2", items[0].Product.ID)
	assert.Equal(t, "P3", items[1].Product.ID)

	// Mutating the returned copy must not touch the view-model
	items[0].Quantity = 99
	assert.Equal(t, 2, vm.Items()[0].Quantity)

	// Nor must mutating the caller's input slice after SetAll
	next[1].Quantity = 42
	assert.Equal(t, 3, vm.Items()[1].Quantity)
}

func TestSimplify(t *testing.T) {
	updates := Simplify([]domain.CartLineItem{
		line("P1", 2, "5.00", 10),
		line("P2", 0, "3.00", 10),
	})

	require.Len(t, updates, 2)
	assert.Equal(t, domain.CartUpdate{IDProduct: "P1", Quantity: 2}, updates[0])
	assert.Equal(t, domain.CartUpdate{IDProduct: "P2", Quantity: 0}, updates[1])
}

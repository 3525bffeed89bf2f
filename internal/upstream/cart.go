package upstream

import (
	"context"
	"net/http"

	"github.com/lojinha/storefront/internal/domain"
)

// Backend cart paths. The backend spells the resource "shopingCart".
const (
	cartPath        = "/shopingCart"
	cartReplacePath = "/shopingCart/multiple"
)

// FetchCart returns the authoritative remote cart, in backend order
func (c *Client) FetchCart(ctx context.Context, token string) ([]domain.CartLineItem, error) {
	resp, err := c.Do(ctx, http.MethodGet, cartPath, token, nil, nil)
	if err != nil {
		return nil, err
	}

	var items []domain.CartLineItem
	if err := c.decode(resp, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ReplaceCart replaces the whole remote cart with the given lines and
// returns the cart the backend now holds. The returned cart, not the
// pushed one, is the authoritative state.
func (c *Client) ReplaceCart(ctx context.Context, token string, updates []domain.CartUpdate) ([]domain.CartLineItem, error) {
	resp, err := c.Do(ctx, http.MethodPatch, cartReplacePath, token, nil, updates)
	if err != nil {
		return nil, err
	}

	var items []domain.CartLineItem
	if err := c.decode(resp, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AppendCartItem adds one product to the remote cart
func (c *Client) AppendCartItem(ctx context.Context, token string, update domain.CartUpdate) (*Response, error) {
	return c.Do(ctx, http.MethodPost, cartPath, token, nil, update)
}

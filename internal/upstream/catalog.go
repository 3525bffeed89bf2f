package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/lojinha/storefront/internal/domain"
)

const (
	productPath  = "/product"
	categoryPath = "/category"
)

// ListProducts fetches one catalog page. The backend answers either a
// paged envelope {content: [...], last: bool} or a flat array; both are
// accepted and a flat array counts as the last page.
func (c *Client) ListProducts(ctx context.Context, token string, page, size int, query, category string) ([]domain.Product, bool, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("size", strconv.Itoa(size))
	if query != "" {
		params.Set("query", query)
	}
	if category != "" {
		params.Set("category", category)
	}

	resp, err := c.Do(ctx, http.MethodGet, productPath, token, params, nil)
	if err != nil {
		return nil, false, err
	}
	if resp.Status < 200 || resp.Status > 299 {
		return nil, false, ParseError(resp.Status, resp.Body)
	}

	var paged struct {
		Content []domain.Product `json:"content"`
		Last    bool             `json:"last"`
	}
	if err := json.Unmarshal(resp.Body, &paged); err == nil && paged.Content != nil {
		return paged.Content, paged.Last, nil
	}

	var flat []domain.Product
	if err := json.Unmarshal(resp.Body, &flat); err != nil {
		return nil, false, err
	}
	return flat, true, nil
}

// GetProduct fetches a single product by id
func (c *Client) GetProduct(ctx context.Context, token, id string) (*domain.Product, error) {
	resp, err := c.Do(ctx, http.MethodGet, productPath+"/"+url.PathEscape(id), token, nil, nil)
	if err != nil {
		return nil, err
	}

	var product domain.Product
	if err := c.decode(resp, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// ListCategories fetches all product categories
func (c *Client) ListCategories(ctx context.Context, token string) ([]domain.Category, error) {
	resp, err := c.Do(ctx, http.MethodGet, categoryPath, token, nil, nil)
	if err != nil {
		return nil, err
	}

	var categories []domain.Category
	if err := c.decode(resp, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

package cache

import (
	"context"
	"errors"

	"github.com/lojinha/storefront/internal/domain"
)

// CartCache holds the last fetched cart snapshot per session. It is a
// read cache over the remote cart, never the source of truth.
type CartCache interface {
	Get(ctx context.Context, sessionID string) ([]domain.CartLineItem, error)
	Set(ctx context.Context, sessionID string, items []domain.CartLineItem) error
	Delete(ctx context.Context, sessionID string) error
}

var ErrCacheMiss = errors.New("cache miss")

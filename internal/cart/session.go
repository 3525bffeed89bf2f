package cart

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/lojinha/storefront/internal/cache"
	"github.com/lojinha/storefront/internal/domain"
)

// ErrLineIndexOutOfRange is returned for edits addressing a line that no
// longer exists. Line identity is positional: removals shift indices.
var ErrLineIndexOutOfRange = errors.New("cart line index out of range")

// CartAPI is the slice of the backend client the cart flow needs
type CartAPI interface {
	FetchCart(ctx context.Context, token string) ([]domain.CartLineItem, error)
	ReplaceCart(ctx context.Context, token string, updates []domain.CartUpdate) ([]domain.CartLineItem, error)
}

// Session binds one signed-in session's cart view-model to its sync
// controller and the remote cart. It lives in process memory for the
// session's lifetime; the remote cart is the only persistent state.
type Session struct {
	id     string
	token  string
	api    CartAPI
	cache  cache.CartCache
	vm     *ViewModel
	sync   *SyncController
	logger *zap.Logger
}

// NewSession creates an empty cart session. cartCache may be nil.
func NewSession(id, token string, api CartAPI, cartCache cache.CartCache, debounce time.Duration, logger *zap.Logger) *Session {
	s := &Session{
		id:     id,
		token:  token,
		api:    api,
		cache:  cartCache,
		vm:     NewViewModel(nil),
		logger: logger,
	}
	s.sync = NewSyncController(debounce, s.pushAndAdopt, logger)
	return s
}

// pushAndAdopt is the reconciliation point: the cart returned by the
// backend supersedes whatever optimistic state we pushed.
func (s *Session) pushAndAdopt(ctx context.Context, items []domain.CartLineItem) error {
	adopted, err := s.api.ReplaceCart(ctx, s.token, Simplify(items))
	if err != nil {
		// Local optimistic state stays; the next edit or flush retries
		// with the then-current state.
		return err
	}

	s.vm.SetAll(adopted)
	s.cacheSet(ctx, adopted)
	return nil
}

// Items returns the current view-model snapshot
func (s *Session) Items() []domain.CartLineItem {
	return s.vm.Items()
}

// Total returns the current cart total
func (s *Session) Total() decimal.Decimal {
	return s.vm.Total()
}

// Load returns the session cart, preferring the cached snapshot and
// falling back to a remote fetch.
func (s *Session) Load(ctx context.Context) ([]domain.CartLineItem, error) {
	if s.cache != nil {
		if items, err := s.cache.Get(ctx, s.id); err == nil {
			s.vm.SetAll(items)
			return items, nil
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("Cart cache read failed", zap.Error(err))
		}
	}
	return s.Refresh(ctx)
}

// Refresh fetches the remote cart and adopts it unconditionally
func (s *Session) Refresh(ctx context.Context) ([]domain.CartLineItem, error) {
	items, err := s.api.FetchCart(ctx, s.token)
	if err != nil {
		return nil, err
	}

	s.vm.SetAll(items)
	s.cacheSet(ctx, items)
	return s.vm.Items(), nil
}

// PushUpdates replaces the whole remote cart with the given simplified
// lines immediately and adopts the response.
func (s *Session) PushUpdates(ctx context.Context, updates []domain.CartUpdate) ([]domain.CartLineItem, error) {
	adopted, err := s.api.ReplaceCart(ctx, s.token, updates)
	if err != nil {
		return nil, err
	}

	s.sync.Cancel()
	s.vm.SetAll(adopted)
	s.cacheSet(ctx, adopted)
	return s.vm.Items(), nil
}

// UpdateQuantity applies a quantity edit to the line at index, clamped
// to [0, stock], and stages a debounced push. With immediate set the
// push happens synchronously instead.
func (s *Session) UpdateQuantity(ctx context.Context, index int, rawQty string, immediate bool) ([]domain.CartLineItem, error) {
	items := s.vm.Items()
	if index < 0 || index >= len(items) {
		return nil, ErrLineIndexOutOfRange
	}

	items[index].Quantity = ClampQuantity(rawQty, items[index].Product.Stock)
	s.vm.SetAll(items)

	if immediate {
		if err := s.sync.FlushNow(ctx, items); err != nil {
			return nil, err
		}
		return s.vm.Items(), nil
	}

	s.sync.SchedulePush(items)
	return items, nil
}

// RemoveItem drops the line at index and pushes immediately. Remaining
// lines keep their relative order.
func (s *Session) RemoveItem(ctx context.Context, index int) ([]domain.CartLineItem, error) {
	items := s.vm.Items()
	if index < 0 || index >= len(items) {
		return nil, ErrLineIndexOutOfRange
	}

	next := append(items[:index:index], items[index+1:]...)
	s.vm.SetAll(next)

	if err := s.sync.FlushNow(ctx, next); err != nil {
		return nil, err
	}
	return s.vm.Items(), nil
}

// Reset empties the cart, remote first
func (s *Session) Reset(ctx context.Context) error {
	return s.sync.FlushNow(ctx, nil)
}

// Invalidate drops the cached snapshot so the next Load refetches
func (s *Session) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, s.id); err != nil {
		s.logger.Warn("Cart cache invalidation failed", zap.Error(err))
	}
}

// Close abandons any pending debounce timer
func (s *Session) Close() {
	s.sync.Cancel()
}

// Token returns the bearer credential this session carries
func (s *Session) Token() string {
	return s.token
}

func (s *Session) cacheSet(ctx context.Context, items []domain.CartLineItem) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, s.id, items); err != nil {
		s.logger.Warn("Cart cache write failed", zap.Error(err))
	}
}

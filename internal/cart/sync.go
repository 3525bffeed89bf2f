package cart

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/lojinha/storefront/internal/domain"
)

// PushFunc sends the given full line sequence to the remote cart
type PushFunc func(ctx context.Context, items []domain.CartLineItem) error

// SyncController coalesces rapid quantity edits into one outbound push.
// It owns a single pending timer slot: scheduling while a push is
// pending re-arms the timer with the newer state, so the most recent
// scheduled push always wins.
type SyncController struct {
	mu     sync.Mutex
	delay  time.Duration
	push   PushFunc
	logger *zap.Logger

	timer  *time.Timer
	staged []domain.CartLineItem
	gen    uint64
}

// NewSyncController creates a controller pushing through push after delay
func NewSyncController(delay time.Duration, push PushFunc, logger *zap.Logger) *SyncController {
	return &SyncController{
		delay:  delay,
		push:   push,
		logger: logger,
	}
}

// SchedulePush stages items and (re)arms the debounce timer. items must
// already be the fully-reduced latest state; intermediate states are
// simply overwritten.
func (s *SyncController) SchedulePush(items []domain.CartLineItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.disarmLocked()
	s.staged = items
	s.gen++
	gen := s.gen
	s.timer = time.AfterFunc(s.delay, func() {
		s.fire(gen)
	})
}

// FlushNow cancels any pending timer and pushes items synchronously.
// Exactly one push happens even when the timer is about to fire.
func (s *SyncController) FlushNow(ctx context.Context, items []domain.CartLineItem) error {
	s.mu.Lock()
	s.disarmLocked()
	s.staged = nil
	s.gen++
	s.mu.Unlock()

	return s.push(ctx, items)
}

// Cancel disarms the pending timer without pushing. Used on session
// teardown; the staged edit is abandoned, matching navigation away.
func (s *SyncController) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.disarmLocked()
	s.staged = nil
	s.gen++
}

func (s *SyncController) fire(gen uint64) {
	s.mu.Lock()
	if gen != s.gen {
		// Superseded by a newer schedule, flush or cancel
		s.mu.Unlock()
		return
	}
	items := s.staged
	s.staged = nil
	s.timer = nil
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Debounced pushes have no caller to report to; the local optimistic
	// state stays as-is and the next edit or flush tries again.
	if err := s.push(ctx, items); err != nil {
		s.logger.Error("Debounced cart push failed", zap.Error(err))
	}
}

func (s *SyncController) disarmLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

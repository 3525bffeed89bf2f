package cart

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lojinha/storefront/internal/domain"
)

type pushRecorder struct {
	mu     sync.Mutex
	pushes [][]domain.CartLineItem
	err    error
}

func (r *pushRecorder) push(_ context.Context, items []domain.CartLineItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.pushes = append(r.pushes, items)
	return nil
}

func (r *pushRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pushes)
}

func (r *pushRecorder) last() []domain.CartLineItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.pushes) == 0 {
		return nil
	}
	return r.pushes[len(r.pushes)-1]
}

func waitForPushes(t *testing.T, r *pushRecorder, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if r.count() >= want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected %d pushes, got %d", want, r.count())
}

func TestSchedulePushCoalescesEdits(t *testing.T) {
	recorder := &pushRecorder{}
	ctrl := NewSyncController(30*time.Millisecond, recorder.push, zap.NewNop())

	first := []domain.CartLineItem{line("P1", 1, "5.00", 10)}
	second := []domain.CartLineItem{line("P1", 4, "5.00", 10)}

	ctrl.SchedulePush(first)
	ctrl.SchedulePush(second)

	waitForPushes(t, recorder, 1)

	// Settle past another debounce window: still exactly one push,
	// carrying the second edit's state.
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 1, recorder.count())
	require.Len(t, recorder.last(), 1)
	assert.Equal(t, 4, recorder.last()[0].Quantity)
}

func TestFlushNowCancelsPendingTimer(t *testing.T) {
	recorder := &pushRecorder{}
	ctrl := NewSyncController(30*time.Millisecond, recorder.push, zap.NewNop())

	staged := []domain.CartLineItem{line("P1", 2, "5.00", 10)}
	flushed := []domain.CartLineItem{line("P1", 3, "5.00", 10)}

	ctrl.SchedulePush(staged)
	require.NoError(t, ctrl.FlushNow(context.Background(), flushed))

	// The pending timer must not fire a second push
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 1, recorder.count())
	assert.Equal(t, 3, recorder.last()[0].Quantity)
}

func TestCancelAbandonsPendingPush(t *testing.T) {
	recorder := &pushRecorder{}
	ctrl := NewSyncController(20*time.Millisecond, recorder.push, zap.NewNop())

	ctrl.SchedulePush([]domain.CartLineItem{line("P1", 2, "5.00", 10)})
	ctrl.Cancel()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, recorder.count())
}

func TestFlushNowReturnsPushError(t *testing.T) {
	recorder := &pushRecorder{err: errors.New("backend down")}
	ctrl := NewSyncController(20*time.Millisecond, recorder.push, zap.NewNop())

	err := ctrl.FlushNow(context.Background(), []domain.CartLineItem{line("P1", 1, "5.00", 10)})
	assert.Error(t, err)
	assert.Equal(t, 0, recorder.count())
}

func TestDebouncedPushFiresAfterDelay(t *testing.T) {
	recorder := &pushRecorder{}
	ctrl := NewSyncController(20*time.Millisecond, recorder.push, zap.NewNop())

	ctrl.SchedulePush([]domain.CartLineItem{line("P1", 1, "5.00", 10)})
	assert.Equal(t, 0, recorder.count())

	waitForPushes(t, recorder, 1)
}

package cart

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/lojinha/storefront/internal/cache"
)

// Manager owns the live cart sessions, keyed by session ID. Sessions
// expire with their JWT; expired entries are swept so abandoned debounce
// timers stay bounded.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*managedSession

	api      CartAPI
	cache    cache.CartCache
	debounce time.Duration
	logger   *zap.Logger
}

type managedSession struct {
	session   *Session
	expiresAt time.Time
}

// NewManager creates a session manager. cartCache may be nil.
func NewManager(api CartAPI, cartCache cache.CartCache, debounce time.Duration, logger *zap.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*managedSession),
		api:      api,
		cache:    cartCache,
		debounce: debounce,
		logger:   logger,
	}
}

// Get returns the cart session for the given session ID, creating it on
// first use. A session that reappears with a different token (re-login)
// is rebuilt.
func (m *Manager) Get(sessionID, token string, expiresAt time.Time) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if entry, ok := m.sessions[sessionID]; ok {
		if entry.session.Token() == token {
			entry.expiresAt = expiresAt
			return entry.session
		}
		entry.session.Close()
	}

	session := NewSession(sessionID, token, m.api, m.cache, m.debounce, m.logger)
	m.sessions[sessionID] = &managedSession{
		session:   session,
		expiresAt: expiresAt,
	}
	return session
}

// Drop discards a session on logout, abandoning any pending push
func (m *Manager) Drop(ctx context.Context, sessionID string) {
	m.mu.Lock()
	entry, ok := m.sessions[sessionID]
	if ok {
		delete(m.sessions, sessionID)
	}
	m.mu.Unlock()

	if ok {
		entry.session.Close()
		entry.session.Invalidate(ctx)
	}
}

// Sweep removes sessions whose JWT already expired
func (m *Manager) Sweep(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, entry := range m.sessions {
		if now.After(entry.expiresAt) {
			entry.session.Close()
			delete(m.sessions, id)
		}
	}
}

// Run sweeps on the given interval until ctx is done
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			m.Sweep(now)
		}
	}
}

package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/checkout"
)

const cleanupInterval = time.Minute

// Session bundles the per-visitor aggregates: the cart and the checkout form.
// Both are concurrency-safe on their own; the manager only tracks liveness.
type Session struct {
	ID       string
	Cart     *cart.Store
	Checkout *checkout.Form

	createdAt time.Time
	lastSeen  time.Time
}

// Manager is an in-memory session registry with sliding TTL expiry.
// Sessions that stay idle past the TTL are evicted by a background sweep.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	logger   *zap.Logger
	now      func() time.Time

	stopCleanup chan struct{}
	closeOnce   sync.Once
}

// ManagerOption configures a Manager
type ManagerOption func(*Manager)

// WithManagerLogger sets the logger used for eviction reporting
func WithManagerLogger(logger *zap.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a session registry and starts its cleanup loop
func NewManager(ttl time.Duration, opts ...ManagerOption) *Manager {
	m := &Manager{
		sessions:    make(map[string]*Session),
		ttl:         ttl,
		logger:      zap.NewNop(),
		now:         time.Now,
		stopCleanup: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}

	go m.cleanupLoop()
	return m
}

// Create allocates a fresh session with a random ID
func (m *Manager) Create() *Session {
	now := m.now()
	sess := &Session{
		ID:        uuid.NewString(),
		Cart:      cart.NewStore(),
		Checkout:  checkout.NewForm(),
		createdAt: now,
		lastSeen:  now,
	}

	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()

	return sess
}

// Get returns the session for the given ID and refreshes its idle timer
func (m *Manager) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	sess.lastSeen = m.now()
	return sess, true
}

// Len reports the number of live sessions
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close stops the cleanup loop. Safe to call more than once.
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		close(m.stopCleanup)
	})
}

func (m *Manager) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.evictStale()
		case <-m.stopCleanup:
			return
		}
	}
}

func (m *Manager) evictStale() {
	cutoff := m.now().Add(-m.ttl)

	m.mu.Lock()
	defer m.mu.Unlock()

	for id, sess := range m.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(m.sessions, id)
			m.logger.Debug("evicted idle session",
				zap.String("session_id", id),
				zap.Duration("age", m.now().Sub(sess.createdAt)))
		}
	}
}

package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_CreateAndGet(t *testing.T) {
	m := NewManager(time.Hour)
	defer m.Close()

	sess := m.Create()
	require.NotEmpty(t, sess.ID)
	require.NotNil(t, sess.Cart)
	require.NotNil(t, sess.Checkout)

	got, ok := m.Get(sess.ID)
	require.True(t, ok)
	assert.Same(t, sess, got)

	_, ok = m.Get("")
	assert.False(t, ok)

	_, ok = m.Get("unknown")
	assert.False(t, ok)
}

func TestManager_EvictsIdleSessions(t *testing.T) {
	m := NewManager(time.Hour)
	defer m.Close()

	base := time.Now()
	m.now = func() time.Time { return base }

	idle := m.Create()
	active := m.Create()

	// The active session is touched halfway through the idle window.
	m.now = func() time.Time { return base.Add(45 * time.Minute) }
	_, ok := m.Get(active.ID)
	require.True(t, ok)

	m.now = func() time.Time { return base.Add(70 * time.Minute) }
	m.evictStale()

	_, ok = m.Get(idle.ID)
	assert.False(t, ok, "idle session should be evicted")
	_, ok = m.Get(active.ID)
	assert.True(t, ok, "recently seen session should survive")
	assert.Equal(t, 1, m.Len())
}

func TestManager_GetRefreshesIdleTimer(t *testing.T) {
	m := NewManager(time.Hour)
	defer m.Close()

	base := time.Now()
	m.now = func() time.Time { return base }
	sess := m.Create()

	// Touch just before expiry, then sweep just after the original deadline.
	m.now = func() time.Time { return base.Add(59 * time.Minute) }
	_, ok := m.Get(sess.ID)
	require.True(t, ok)

	m.now = func() time.Time { return base.Add(61 * time.Minute) }
	m.evictStale()

	_, ok = m.Get(sess.ID)
	assert.True(t, ok)
}

func TestManager_CloseIsIdempotent(t *testing.T) {
	m := NewManager(time.Hour)
	m.Close()
	m.Close()
}

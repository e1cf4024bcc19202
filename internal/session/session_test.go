package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIdentity() Identity {
	return Identity{UserID: 42, Username: "alice", FullName: "Alice A"}
}

func TestStore_CreateAndGet(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Hour)
	sess := store.Create(testIdentity())
	require.NotEmpty(t, sess.ID)
	assert.Equal(t, testIdentity(), sess.Identity)

	got, ok := store.Get(sess.ID)
	require.True(t, ok)
	assert.Equal(t, sess, got)

	_, ok = store.Get("no-such-session")
	assert.False(t, ok)
}

func TestStore_Destroy(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Hour)
	sess := store.Create(testIdentity())

	store.Destroy(sess.ID)
	_, ok := store.Get(sess.ID)
	assert.False(t, ok)
	assert.Zero(t, store.Len())

	// destroying twice is fine
	store.Destroy(sess.ID)
}

func TestStore_IdleExpiry(t *testing.T) {
	t.Parallel()

	now := time.Now()
	store := NewStore(time.Hour)
	store.now = func() time.Time { return now }

	sess := store.Create(testIdentity())

	// Just inside the window the session is alive.
	now = now.Add(59 * time.Minute)
	_, ok := store.Get(sess.ID)
	require.True(t, ok)

	// The lookup above refreshed the window.
	now = now.Add(59 * time.Minute)
	_, ok = store.Get(sess.ID)
	require.True(t, ok)

	// Idle past the window behaves like no session at all.
	now = now.Add(61 * time.Minute)
	_, ok = store.Get(sess.ID)
	assert.False(t, ok)
	assert.Zero(t, store.Len(), "expired entry should be dropped on lookup")
}

func TestStore_ConcurrentSessionsPerUser(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Hour)
	first := store.Create(testIdentity())
	second := store.Create(testIdentity())
	require.NotEqual(t, first.ID, second.ID)

	// A second login does not invalidate the first session.
	_, ok := store.Get(first.ID)
	assert.True(t, ok)
	_, ok = store.Get(second.ID)
	assert.True(t, ok)
}

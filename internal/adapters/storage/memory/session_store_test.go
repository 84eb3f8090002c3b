package memory

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NoaSegev3/travel-assistant-ai/internal/domain"
)

func TestGetOrCreateIsStablePerID(t *testing.T) {
	store := NewSessionStore(12, time.Hour)

	a, err := store.GetOrCreate("s1")
	require.NoError(t, err)
	b, err := store.GetOrCreate("s1")
	require.NoError(t, err)

	assert.Same(t, a, b)
	assert.Equal(t, domain.SessionID("s1"), a.SessionID)
}

func TestPeekUnknownSession(t *testing.T) {
	store := NewSessionStore(12, time.Hour)

	_, err := store.Peek("missing")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.Zero(t, store.Len(), "peek never creates sessions")
}

func TestAppendMessageTrimsHistoryToBound(t *testing.T) {
	store := NewSessionStore(4, time.Hour)

	for i := 0; i < 10; i++ {
		_, err := store.AppendMessage("s1", domain.RoleUser, fmt.Sprintf("msg %d", i))
		require.NoError(t, err)
	}

	st, err := store.Peek("s1")
	require.NoError(t, err)
	require.Len(t, st.History, 4)
	assert.Equal(t, "msg 6", st.History[0].Content)
	assert.Equal(t, "msg 9", st.History[3].Content)
}

func TestIncrementTurn(t *testing.T) {
	store := NewSessionStore(12, time.Hour)
	st, err := store.GetOrCreate("s1")
	require.NoError(t, err)

	store.IncrementTurn(st)
	store.IncrementTurn(st)
	assert.Equal(t, 2, st.TurnCount)
}

func TestSweepExpiredRemovesIdleSessions(t *testing.T) {
	base := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	clock := base
	store := NewSessionStore(12, time.Hour).WithNow(func() time.Time { return clock })

	_, err := store.GetOrCreate("old")
	require.NoError(t, err)

	clock = base.Add(50 * time.Minute)
	_, err = store.GetOrCreate("fresh")
	require.NoError(t, err)

	removed := store.SweepExpired(base.Add(70 * time.Minute))
	assert.Equal(t, 1, removed)

	_, err = store.Peek("old")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, err = store.Peek("fresh")
	assert.NoError(t, err)
}

func TestSweepRespectsTTLBoundary(t *testing.T) {
	base := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	store := NewSessionStore(12, time.Hour).WithNow(func() time.Time { return base })

	_, err := store.GetOrCreate("s1")
	require.NoError(t, err)

	assert.Zero(t, store.SweepExpired(base.Add(time.Hour)), "exactly at TTL is not expired")
	assert.Equal(t, 1, store.SweepExpired(base.Add(time.Hour+time.Second)))
}

func TestPeekReturnsIndependentCopy(t *testing.T) {
	store := NewSessionStore(12, time.Hour)

	live, err := store.GetOrCreate("s1")
	require.NoError(t, err)
	dest := "Rome"
	live.TripProfile.ApplyUpdates(domain.TripUpdates{Destination: &dest, Interests: []string{"food"}})
	_, err = store.AppendMessage("s1", domain.RoleUser, "hi")
	require.NoError(t, err)

	snap, err := store.Peek("s1")
	require.NoError(t, err)
	require.NotSame(t, live, snap)

	// Turns after the snapshot must not show through it.
	_, err = store.AppendMessage("s1", domain.RoleUser, "second")
	require.NoError(t, err)
	other := "Paris"
	live.TripProfile.ApplyUpdates(domain.TripUpdates{Destination: &other, Interests: []string{"museums"}})

	require.Len(t, snap.History, 1)
	assert.Equal(t, "Rome", snap.TripProfile.Destination)
	assert.Equal(t, []string{"food"}, snap.TripProfile.Interests)
}

func TestPeekSafeDuringConcurrentWrites(t *testing.T) {
	store := NewSessionStore(50, time.Hour)
	_, err := store.GetOrCreate("s1")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			release := store.Acquire("s1")
			defer release()
			_, err := store.AppendMessage("s1", domain.RoleUser, fmt.Sprintf("msg %d", i))
			assert.NoError(t, err)
		}(i)
		go func() {
			defer wg.Done()
			snap, err := store.Peek("s1")
			if assert.NoError(t, err) {
				_, err := json.Marshal(snap.TripProfile)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()
}

func TestAcquireSerializesPerSession(t *testing.T) {
	store := NewSessionStore(12, time.Hour)

	var counter int
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release := store.Acquire("s1")
			defer release()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}

func TestConcurrentAppendsAcrossSessions(t *testing.T) {
	store := NewSessionStore(100, time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		id := domain.SessionID(fmt.Sprintf("s%d", i%4))
		wg.Add(1)
		go func(id domain.SessionID) {
			defer wg.Done()
			_, err := store.AppendMessage(id, domain.RoleUser, "hello")
			assert.NoError(t, err)
		}(id)
	}
	wg.Wait()

	assert.Equal(t, 4, store.Len())
}

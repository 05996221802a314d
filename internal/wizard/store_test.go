package wizard_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/smarthealthquote/smarthealthquote/internal/testhelpers"
	"github.com/smarthealthquote/smarthealthquote/internal/wizard"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, ttl time.Duration) *wizard.Store {
	t.Helper()
	return wizard.NewStore(wizard.Config{
		Quoter: wizard.StaticQuoter{},
		Logger: testhelpers.NewLogger(io.Discard),
	}, ttl, testhelpers.NewLogger(io.Discard))
}

func TestStore_GetOrCreate(t *testing.T) {
	t.Parallel()
	store := newTestStore(t, time.Hour)

	first := store.GetOrCreate("abc")
	require.NotNil(t, first)
	require.Same(t, first, store.GetOrCreate("abc"))
	require.NotSame(t, first, store.GetOrCreate("def"))
	require.Equal(t, 2, store.Len())

	got, ok := store.Get("abc")
	require.True(t, ok)
	require.Same(t, first, got)

	_, ok = store.Get("missing")
	require.False(t, ok)
}

func TestStore_RemoveTearsDownSession(t *testing.T) {
	t.Parallel()
	store := newTestStore(t, time.Hour)

	session := store.GetOrCreate("abc")
	store.Remove("abc")
	require.Equal(t, 0, store.Len())

	// The removed session is closed: submissions are no-ops.
	_, _, ok := session.SubmitFreeText("hello")
	require.False(t, ok)
}

func TestStore_CleanupEvictsIdleSessions(t *testing.T) {
	t.Parallel()
	store := newTestStore(t, 20*time.Millisecond)

	session := store.GetOrCreate("abc")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go store.StartCleanup(ctx, 5*time.Millisecond)

	require.Eventually(t, func() bool {
		return store.Len() == 0
	}, 2*time.Second, 10*time.Millisecond)

	// Eviction closes the session.
	_, _, ok := session.SubmitFreeText("hello")
	require.False(t, ok)
}

package wishlist

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"shelf/internal/storage"
)

func newStore(t *testing.T) *SQLStore {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "shelf.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLStore(db)
}

func TestMembershipZeroValue(t *testing.T) {
	var m Membership
	require.False(t, m.Contains("x"))
	require.Zero(t, m.Len())
	require.Empty(t, m.IDs())

	m = NewMembership("b", "a", "b")
	require.True(t, m.Contains("a"))
	require.Equal(t, 2, m.Len())
	require.Equal(t, []string{"a", "b"}, m.IDs())
}

func TestToggleIsIdempotent(t *testing.T) {
	svc := NewService(newStore(t), 0, 0)
	ctx := context.Background()

	require.NoError(t, svc.Toggle(ctx, "alice", "101", true))
	require.NoError(t, svc.Toggle(ctx, "alice", "101", true))
	require.NoError(t, svc.Toggle(ctx, "alice", "102", true))
	require.NoError(t, svc.Toggle(ctx, "bob", "103", true))

	m, err := svc.Membership(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, []string{"101", "102"}, m.IDs())

	require.NoError(t, svc.Toggle(ctx, "alice", "101", false))
	require.NoError(t, svc.Toggle(ctx, "alice", "101", false))
	m, err = svc.Membership(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, []string{"102"}, m.IDs())

	m, err = svc.Membership(ctx, "")
	require.NoError(t, err)
	require.Zero(t, m.Len())
}

func TestToggleRateLimitedPerOwner(t *testing.T) {
	svc := NewService(newStore(t), 0.001, 2)
	ctx := context.Background()

	require.NoError(t, svc.Toggle(ctx, "alice", "1", true))
	require.NoError(t, svc.Toggle(ctx, "alice", "2", true))
	require.ErrorIs(t, svc.Toggle(ctx, "alice", "3", true), ErrRateLimited)
	require.NoError(t, svc.Toggle(ctx, "bob", "3", true))

	m, err := svc.Membership(ctx, "alice")
	require.NoError(t, err)
	require.False(t, m.Contains("3"))
}

func TestToggleKeyedSharesBucket(t *testing.T) {
	svc := NewService(newStore(t), 0.001, 1)
	ctx := context.Background()

	require.NoError(t, svc.ToggleKeyed(ctx, "fresh-1", "1", true, "addr:10.0.0.1"))
	require.ErrorIs(t, svc.ToggleKeyed(ctx, "fresh-2", "1", true, "addr:10.0.0.1"), ErrRateLimited)
	require.NoError(t, svc.ToggleKeyed(ctx, "fresh-3", "1", true, "addr:10.0.0.2"))
	require.ErrorIs(t, svc.Toggle(ctx, "fresh-1", "2", true), ErrRateLimited)
}

func TestIdleLimitersAreSwept(t *testing.T) {
	svc := NewService(newStore(t), 0.001, 1)
	ctx := context.Background()
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }

	for _, who := range []string{"a", "b", "c"} {
		require.NoError(t, svc.Toggle(ctx, who, "1", true))
	}
	require.Equal(t, 3, svc.Limiters())

	clock = clock.Add(limiterIdle / 2)
	require.ErrorIs(t, svc.Toggle(ctx, "a", "2", true), ErrRateLimited)

	clock = clock.Add(limiterIdle)
	require.NoError(t, svc.Toggle(ctx, "d", "1", true))
	require.Equal(t, 1, svc.Limiters())
}

type failingStore struct{ Store }

func (failingStore) Add(context.Context, string, string) error { return errors.New("disk full") }

func TestToggleSurfacesStoreErrors(t *testing.T) {
	svc := NewService(failingStore{}, 0, 0)
	require.EqualError(t, svc.Toggle(context.Background(), "alice", "1", true), "disk full")
}

package lockout

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcode-github/imobiliaria/backend/storage"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newAttempts(t *testing.T, kv storage.KV) (*Attempts, *clock) {
	t.Helper()
	c := &clock{t: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)}
	a := New(kv, Options{MaxAttempts: 3, Window: 10 * time.Minute, LockDuration: 5 * time.Minute})
	a.now = c.now
	return a, c
}

func exerciseLockout(t *testing.T, kv storage.KV) {
	ctx := context.Background()
	a, c := newAttempts(t, kv)

	for i := 0; i < 2; i++ {
		require.NoError(t, a.Increment(ctx, "Admin@Example.com"))
	}
	locked, _, err := a.IsLocked(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.False(t, locked)

	require.NoError(t, a.Increment(ctx, "admin@example.com"))
	locked, until, err := a.IsLocked(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.True(t, locked)
	assert.True(t, c.t.Add(5*time.Minute).Equal(until), until)

	other, _, err := a.IsLocked(ctx, "someone@example.com")
	require.NoError(t, err)
	assert.False(t, other)

	c.t = c.t.Add(5 * time.Minute)
	locked, _, err = a.IsLocked(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.False(t, locked)

	// a failure after the lock expired starts a fresh count
	require.NoError(t, a.Increment(ctx, "admin@example.com"))
	locked, _, err = a.IsLocked(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.False(t, locked)
}

func TestLockoutDir(t *testing.T) {
	d, err := storage.NewDir(t.TempDir())
	require.NoError(t, err)
	exerciseLockout(t, d)
}

func TestLockoutRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	exerciseLockout(t, storage.NewRedis(client, "imobiliaria:"))
}

func TestWindowExpiryResetsCount(t *testing.T) {
	d, err := storage.NewDir(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()
	a, c := newAttempts(t, d)

	require.NoError(t, a.Increment(ctx, "admin@example.com"))
	require.NoError(t, a.Increment(ctx, "admin@example.com"))
	c.t = c.t.Add(11 * time.Minute)
	require.NoError(t, a.Increment(ctx, "admin@example.com"))

	locked, _, err := a.IsLocked(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.False(t, locked)
}

func TestResetClearsCount(t *testing.T) {
	d, err := storage.NewDir(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()
	a, _ := newAttempts(t, d)

	require.NoError(t, a.Increment(ctx, "admin@example.com"))
	require.NoError(t, a.Increment(ctx, "admin@example.com"))
	require.NoError(t, a.Reset(ctx, "admin@example.com"))
	require.NoError(t, a.Increment(ctx, "admin@example.com"))

	locked, _, err := a.IsLocked(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.False(t, locked)
}

func TestNilAttemptsNeverLocks(t *testing.T) {
	var a *Attempts
	ctx := context.Background()
	assert.NoError(t, a.Increment(ctx, "x"))
	locked, _, err := a.IsLocked(ctx, "x")
	assert.NoError(t, err)
	assert.False(t, locked)
	assert.NoError(t, a.Reset(ctx, "x"))
}

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/avenaparisshop/avena-sav-app/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCache(t *testing.T) *MemoryCache {
	t.Helper()
	c := NewMemoryCache(zap.NewNop(), time.Hour)
	t.Cleanup(c.Stop)
	return c
}

func liveEntry(sender string) *core.ReviewEntry {
	return &core.ReviewEntry{
		SenderEmail: sender,
		IsSpam:      true,
		Score:       0.8,
		Reason:      "cold outreach",
		LastSeen:    time.Now(),
		ExpiresAt:   time.Now().Add(time.Hour),
	}
}

func TestMemoryCache_SetAndGet(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, liveEntry("a@gmail.com")))

	entry, err := c.Get(ctx, "a@gmail.com")
	require.NoError(t, err)
	assert.Equal(t, "a@gmail.com", entry.SenderEmail)
	assert.True(t, entry.IsSpam)
}

func TestMemoryCache_MissReturnsNotFound(t *testing.T) {
	c := newTestCache(t)

	_, err := c.Get(context.Background(), "unknown@gmail.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryCache_ExpiredEntryIsAMiss(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	expired := liveEntry("old@gmail.com")
	expired.ExpiresAt = time.Now().Add(-time.Minute)
	require.NoError(t, c.Set(ctx, expired))

	_, err := c.Get(ctx, "old@gmail.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryCache_Delete(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, liveEntry("a@gmail.com")))
	require.NoError(t, c.Delete(ctx, "a@gmail.com"))

	_, err := c.Get(ctx, "a@gmail.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryCache_CleanupRemovesOnlyExpired(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, liveEntry("fresh@gmail.com")))
	expired := liveEntry("stale@gmail.com")
	expired.ExpiresAt = time.Now().Add(-time.Minute)
	require.NoError(t, c.Set(ctx, expired))

	require.NoError(t, c.Cleanup(ctx))

	_, err := c.Get(ctx, "fresh@gmail.com")
	assert.NoError(t, err)
	_, err = c.Get(ctx, "stale@gmail.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"extui/api"
)

func newTestCache(t *testing.T) *SnapshotCache {
	t.Helper()

	cache, err := NewSnapshotCache(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestSnapshotCache_MissReturnsNil(t *testing.T) {
	cache := newTestCache(t)

	extensions, err := cache.LoadExtensions()
	require.NoError(t, err)
	assert.Nil(t, extensions)

	market, err := cache.LoadMarket()
	require.NoError(t, err)
	assert.Nil(t, market)
}

func TestSnapshotCache_RoundTrip(t *testing.T) {
	cache := newTestCache(t)

	saved := []api.Extension{
		{Name: "alpha", Desc: "first", Author: "a", Repo: "https://github.com/a/alpha", Activated: true},
		{Name: "beta", Repo: "https://github.com/b/beta", Reserved: true},
	}
	require.NoError(t, cache.SaveExtensions(saved))

	loaded, err := cache.LoadExtensions()
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestSnapshotCache_SaveReplacesWholesale(t *testing.T) {
	cache := newTestCache(t)

	require.NoError(t, cache.SaveMarket([]api.MarketEntry{
		{Name: "alpha", Repo: "https://github.com/a/alpha"},
		{Name: "beta", Repo: "https://github.com/b/beta"},
	}))
	require.NoError(t, cache.SaveMarket([]api.MarketEntry{
		{Name: "gamma", Repo: "https://github.com/c/gamma"},
	}))

	loaded, err := cache.LoadMarket()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "gamma", loaded[0].Name)
}

func TestSnapshotCache_InstalledFlagNotPersisted(t *testing.T) {
	cache := newTestCache(t)

	// Installed is derived by reconciliation; a stale true must not
	// survive a round trip.
	require.NoError(t, cache.SaveMarket([]api.MarketEntry{
		{Name: "alpha", Repo: "https://github.com/a/alpha", Installed: true},
	}))

	loaded, err := cache.LoadMarket()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.False(t, loaded[0].Installed)
}

func TestSnapshotCache_KindsAreIndependent(t *testing.T) {
	cache := newTestCache(t)

	require.NoError(t, cache.SaveExtensions([]api.Extension{{Name: "alpha"}}))
	require.NoError(t, cache.SaveMarket([]api.MarketEntry{{Name: "beta"}, {Name: "gamma"}}))

	extensions, err := cache.LoadExtensions()
	require.NoError(t, err)
	require.Len(t, extensions, 1)

	market, err := cache.LoadMarket()
	require.NoError(t, err)
	require.Len(t, market, 2)
}

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"extui/api"
)

func TestReconcile_MarksExactRepoMatches(t *testing.T) {
	extensions := []api.Extension{
		{Name: "alpha", Repo: "https://github.com/a/alpha"},
		{Name: "beta", Repo: "https://github.com/b/beta"},
	}
	market := []api.MarketEntry{
		{Name: "alpha", Repo: "https://github.com/a/alpha"},
		{Name: "gamma", Repo: "https://github.com/c/gamma"},
	}

	Reconcile(extensions, market)

	assert.True(t, market[0].Installed)
	assert.False(t, market[1].Installed)
}

func TestReconcile_ComparisonIsNotNormalized(t *testing.T) {
	// Equivalent but differently-formatted URLs must not match: the
	// comparison is raw string equality.
	extensions := []api.Extension{
		{Name: "alpha", Repo: "https://github.com/a/alpha/"},
		{Name: "beta", Repo: "https://GitHub.com/b/beta"},
		{Name: "gamma", Repo: "http://github.com/c/gamma"},
	}
	market := []api.MarketEntry{
		{Name: "alpha", Repo: "https://github.com/a/alpha"},
		{Name: "beta", Repo: "https://github.com/b/beta"},
		{Name: "gamma", Repo: "https://github.com/c/gamma"},
	}

	Reconcile(extensions, market)

	for _, entry := range market {
		assert.False(t, entry.Installed, "entry %s should not match a differently-formatted repo", entry.Name)
	}
}

func TestReconcile_ClearsStaleFlags(t *testing.T) {
	// An uninstalled extension's market entry must flip back to available
	// on the next reconciliation pass.
	market := []api.MarketEntry{
		{Name: "alpha", Repo: "https://github.com/a/alpha", Installed: true},
	}

	Reconcile(nil, market)

	assert.False(t, market[0].Installed)
}

func TestReconcile_Idempotent(t *testing.T) {
	extensions := []api.Extension{
		{Name: "alpha", Repo: "https://github.com/a/alpha"},
	}
	market := []api.MarketEntry{
		{Name: "alpha", Repo: "https://github.com/a/alpha"},
		{Name: "beta", Repo: "https://github.com/b/beta"},
	}

	Reconcile(extensions, market)
	first := []bool{market[0].Installed, market[1].Installed}

	Reconcile(extensions, market)
	second := []bool{market[0].Installed, market[1].Installed}

	assert.Equal(t, first, second)
}

func TestSetExtensionsAndSetMarketBothReconcile(t *testing.T) {
	app := NewApp(nil, nil)

	// Order of arrival is not fixed: the market may land first.
	app.SetMarket([]api.MarketEntry{
		{Name: "alpha", Repo: "https://github.com/a/alpha"},
	})
	assert.False(t, app.Market[0].Installed)

	app.SetExtensions([]api.Extension{
		{Name: "alpha", Repo: "https://github.com/a/alpha"},
	})
	assert.True(t, app.Market[0].Installed)

	// Uninstall path: the replacement list no longer carries the repo.
	app.SetExtensions(nil)
	assert.False(t, app.Market[0].Installed)
}

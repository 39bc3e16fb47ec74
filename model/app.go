package model

import (
	"extui/api"
	"extui/storage"
)

// App holds the panel's shared state. The installed list and the market
// catalog are always replaced wholesale from authoritative server
// responses, never merged; SetExtensions and SetMarket are the only
// mutation entry points and both re-run reconciliation.
type App struct {
	Client *api.Client
	Cache  *storage.SnapshotCache

	Extensions []api.Extension
	Market     []api.MarketEntry

	RestartRequired bool
}

func NewApp(client *api.Client, cache *storage.SnapshotCache) *App {
	return &App{
		Client: client,
		Cache:  cache,
	}
}

// SetExtensions replaces the installed list and re-reconciles the market.
func (a *App) SetExtensions(extensions []api.Extension) {
	a.Extensions = extensions
	Reconcile(a.Extensions, a.Market)
}

// SetMarket replaces the market catalog and re-reconciles it against the
// installed list.
func (a *App) SetMarket(entries []api.MarketEntry) {
	a.Market = entries
	Reconcile(a.Extensions, a.Market)
}

// ExtensionByName returns the installed extension with the given name, or
// nil if none exists.
func (a *App) ExtensionByName(name string) *api.Extension {
	for i := range a.Extensions {
		if a.Extensions[i].Name == name {
			return &a.Extensions[i]
		}
	}
	return nil
}

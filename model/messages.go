package model

import "extui/api"

// SnapshotLoadedMsg carries the cached registry/catalog read at startup.
// It renders immediately while the real fetches are still in flight.
type SnapshotLoadedMsg struct {
	Extensions []api.Extension
	Market     []api.MarketEntry
}

type ExtensionListMsg struct {
	Extensions []api.Extension
	Err        error
}

type MarketListMsg struct {
	Entries []api.MarketEntry
	Err     error
}

type InstallCompleteMsg struct {
	Extensions []api.Extension
	Message    string
	Err        error
}

type UpdateCompleteMsg struct {
	Name       string
	Extensions []api.Extension
	Message    string
	Err        error
}

type UninstallCompleteMsg struct {
	Name       string
	Extensions []api.Extension
	Message    string
	Err        error
}

type ToggleCompleteMsg struct {
	Name    string
	Enable  bool
	Message string
	Err     error
}

type ConfigLoadedMsg struct {
	Name   string
	Config *api.ExtensionConfig
	Err    error
}

type ConfigSavedMsg struct {
	Name    string
	Message string
	Err     error
}

type RestartStatusMsg struct {
	Required bool
	Err      error
}

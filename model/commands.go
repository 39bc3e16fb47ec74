package model

import (
	tea "github.com/charmbracelet/bubbletea"

	"extui/config"
)

// LoadSnapshots reads the cached registry and catalog from local storage.
// Stale data renders instantly at startup; the real fetches replace it
// when they land. Cache misses are not errors.
func (a *App) LoadSnapshots() tea.Cmd {
	if a.Cache == nil {
		return nil
	}
	cache := a.Cache

	return func() tea.Msg {
		extensions, err := cache.LoadExtensions()
		if err != nil && config.DebugLog != nil {
			config.DebugLog.Printf("[cache] loadSnapshots: extensions: %v", err)
		}
		market, err := cache.LoadMarket()
		if err != nil && config.DebugLog != nil {
			config.DebugLog.Printf("[cache] loadSnapshots: market: %v", err)
		}
		if extensions == nil && market == nil {
			return nil
		}
		return SnapshotLoadedMsg{Extensions: extensions, Market: market}
	}
}

// RefreshExtensions fetches the installed list from the host. On success
// the snapshot cache is written through.
func (a *App) RefreshExtensions() tea.Cmd {
	client := a.Client
	cache := a.Cache

	return func() tea.Msg {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[api] refreshExtensions: GET extension list")
		}

		extensions, err := client.ListExtensions()
		if err != nil {
			if config.DebugLog != nil {
				config.DebugLog.Printf("[api] refreshExtensions: failed: %v", err)
			}
			return ExtensionListMsg{Err: err}
		}

		if cache != nil {
			if cerr := cache.SaveExtensions(extensions); cerr != nil && config.DebugLog != nil {
				config.DebugLog.Printf("[cache] refreshExtensions: save: %v", cerr)
			}
		}

		return ExtensionListMsg{Extensions: extensions}
	}
}

// RefreshMarket fetches the remote catalog.
func (a *App) RefreshMarket() tea.Cmd {
	client := a.Client
	cache := a.Cache

	return func() tea.Msg {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[api] refreshMarket: GET market catalog")
		}

		entries, err := client.MarketList()
		if err != nil {
			if config.DebugLog != nil {
				config.DebugLog.Printf("[api] refreshMarket: failed: %v", err)
			}
			return MarketListMsg{Err: err}
		}

		if cache != nil {
			if cerr := cache.SaveMarket(entries); cerr != nil && config.DebugLog != nil {
				config.DebugLog.Printf("[cache] refreshMarket: save: %v", cerr)
			}
		}

		return MarketListMsg{Entries: entries}
	}
}

// Install validates the input and submits an install request. Exactly one
// of repoURL and archivePath must be set; a validation error is returned
// synchronously and no request is issued. There is no retry and no
// cancellation: once submitted, the result message always arrives.
func (a *App) Install(repoURL, archivePath string) (tea.Cmd, error) {
	if err := ValidateInstallInput(repoURL, archivePath); err != nil {
		return nil, err
	}
	client := a.Client

	if archivePath != "" {
		return func() tea.Msg {
			if config.DebugLog != nil {
				config.DebugLog.Printf("[api] install: uploading archive %s", archivePath)
			}
			extensions, message, err := client.InstallFromArchive(archivePath)
			return InstallCompleteMsg{Extensions: extensions, Message: message, Err: err}
		}, nil
	}

	return func() tea.Msg {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[api] install: from %s", repoURL)
		}
		extensions, message, err := client.InstallFromURL(repoURL)
		return InstallCompleteMsg{Extensions: extensions, Message: message, Err: err}
	}, nil
}

// UpdateExtension asks the host to pull the latest version of a named
// extension.
func (a *App) UpdateExtension(name string) tea.Cmd {
	client := a.Client

	return func() tea.Msg {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[api] update: %s", name)
		}
		extensions, message, err := client.Update(name)
		return UpdateCompleteMsg{Name: name, Extensions: extensions, Message: message, Err: err}
	}
}

// UninstallExtension removes a named extension from the host.
func (a *App) UninstallExtension(name string) tea.Cmd {
	client := a.Client

	return func() tea.Msg {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[api] uninstall: %s", name)
		}
		extensions, message, err := client.Uninstall(name)
		return UninstallCompleteMsg{Name: name, Extensions: extensions, Message: message, Err: err}
	}
}

// EnableExtension activates a named extension. The handler re-fetches the
// installed list on success rather than flipping the flag locally.
func (a *App) EnableExtension(name string) tea.Cmd {
	client := a.Client

	return func() tea.Msg {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[api] enable: %s", name)
		}
		message, err := client.Enable(name)
		return ToggleCompleteMsg{Name: name, Enable: true, Message: message, Err: err}
	}
}

// DisableExtension deactivates a named extension.
func (a *App) DisableExtension(name string) tea.Cmd {
	client := a.Client

	return func() tea.Msg {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[api] disable: %s", name)
		}
		message, err := client.Disable(name)
		return ToggleCompleteMsg{Name: name, Enable: false, Message: message, Err: err}
	}
}

// LoadExtensionConfig fetches the config document for the named extension.
func (a *App) LoadExtensionConfig(name string) tea.Cmd {
	client := a.Client

	return func() tea.Msg {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[api] loadConfig: %s", name)
		}
		cfg, err := client.GetExtensionConfig(name)
		return ConfigLoadedMsg{Name: name, Config: cfg, Err: err}
	}
}

// SaveExtensionConfig persists the edited config document for the named
// extension.
func (a *App) SaveExtensionConfig(name string, doc map[string]interface{}) tea.Cmd {
	client := a.Client

	return func() tea.Msg {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[api] saveConfig: %s", name)
		}
		message, err := client.SaveExtensionConfig(name, doc)
		return ConfigSavedMsg{Name: name, Message: message, Err: err}
	}
}

// CheckRestart asks the host whether a restart is pending. Invoked after
// every mutating success.
func (a *App) CheckRestart() tea.Cmd {
	client := a.Client

	return func() tea.Msg {
		required, err := client.RestartRequired()
		if err != nil && config.DebugLog != nil {
			config.DebugLog.Printf("[api] checkRestart: %v", err)
		}
		return RestartStatusMsg{Required: required, Err: err}
	}
}

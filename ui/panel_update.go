package ui

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// writeClipboard is swappable in tests; headless environments have no
// clipboard to write to.
var writeClipboard = clipboard.WriteAll

func (p PanelView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		return p, nil

	case spinner.TickMsg:
		if p.statusDialog.Visible && p.statusDialog.Code == StatusPending {
			var cmd tea.Cmd
			p.statusDialog.Spinner, cmd = p.statusDialog.Spinner.Update(msg)
			return p, cmd
		}
		return p, nil

	case statusDialogCloseMsg:
		p.statusDialog.HandleCloseTick(msg)
		return p, nil

	case toastExpireMsg:
		p.dropToast(msg.id)
		return p, nil

	case snapshotLoadedMsg:
		return p.handleSnapshotLoaded(msg)

	case extensionListMsg:
		return p.handleExtensionList(msg)

	case marketListMsg:
		return p.handleMarketList(msg)

	case installCompleteMsg:
		return p.handleInstallComplete(msg)

	case updateCompleteMsg:
		return p.handleUpdateComplete(msg)

	case uninstallCompleteMsg:
		return p.handleUninstallComplete(msg)

	case toggleCompleteMsg:
		return p.handleToggleComplete(msg)

	case configLoadedMsg:
		return p.handleConfigLoaded(msg)

	case configSavedMsg:
		return p.handleConfigSaved(msg)

	case restartStatusMsg:
		if msg.Err == nil {
			p.app.RestartRequired = msg.Required
		}
		return p, nil

	case tea.KeyMsg:
		return p.handleKey(msg)
	}

	return p, nil
}

// handleSnapshotLoaded applies cached data only where the live fetch has
// not already landed; the network result is always authoritative.
func (p PanelView) handleSnapshotLoaded(msg snapshotLoadedMsg) (PanelView, tea.Cmd) {
	if len(p.app.Extensions) == 0 && msg.Extensions != nil {
		p.app.SetExtensions(msg.Extensions)
	}
	if len(p.app.Market) == 0 && msg.Market != nil {
		p.app.SetMarket(msg.Market)
	}
	return p, nil
}

func (p PanelView) handleExtensionList(msg extensionListMsg) (PanelView, tea.Cmd) {
	if msg.Err != nil {
		// Degrades silently: the stale list stays, the failure only goes
		// to the console and debug log
		p.console.Append("GET /api/extension/list failed: %v", msg.Err)
		return p, nil
	}

	p.app.SetExtensions(msg.Extensions)
	p.console.Append("GET /api/extension/list: %d installed", len(msg.Extensions))
	return p, nil
}

func (p PanelView) handleMarketList(msg marketListMsg) (PanelView, tea.Cmd) {
	if msg.Err != nil {
		p.console.Append("GET /api/extension/market failed: %v", msg.Err)
		return p, p.pushToast("Failed to load extension market: "+msg.Err.Error(), ToastError)
	}

	p.app.SetMarket(msg.Entries)
	p.console.Append("GET /api/extension/market: %d entries", len(msg.Entries))
	return p, nil
}

func (p PanelView) handleInstallComplete(msg installCompleteMsg) (PanelView, tea.Cmd) {
	p.installModal.inFlight = false

	if msg.Err != nil {
		p.console.Append("install failed: %v", msg.Err)
		// Install failures often carry a multi-line diagnostic; keep the
		// dialog up until the user dismisses it
		return p, p.statusDialog.Fail(msg.Err.Error(), NoAutoClose)
	}

	// The registry is replaced before the dialog reports success, so
	// anything observing the success state sees consistent registry state
	p.app.SetExtensions(msg.Extensions)
	p.installModal.clear()

	closeCmd := p.statusDialog.Succeed(msg.Message, statusAutoClose)
	p.installModal.visible = false
	p.console.Append("install: ok (%d installed)", len(msg.Extensions))

	return p, tea.Batch(closeCmd, p.app.CheckRestart())
}

func (p PanelView) handleUpdateComplete(msg updateCompleteMsg) (PanelView, tea.Cmd) {
	if msg.Err != nil {
		p.console.Append("update %s failed: %v", msg.Name, msg.Err)
		return p, p.statusDialog.Fail(msg.Err.Error(), NoAutoClose)
	}

	p.app.SetExtensions(msg.Extensions)

	closeCmd := p.statusDialog.Succeed(msg.Message, statusAutoClose)
	p.detailsVisible = false
	p.console.Append("update %s: ok", msg.Name)

	return p, tea.Batch(closeCmd, p.app.CheckRestart())
}

func (p PanelView) handleUninstallComplete(msg uninstallCompleteMsg) (PanelView, tea.Cmd) {
	if msg.Err != nil {
		p.console.Append("uninstall %s failed: %v", msg.Name, msg.Err)
		return p, p.pushToast("Failed to uninstall "+msg.Name+": "+msg.Err.Error(), ToastError)
	}

	p.app.SetExtensions(msg.Extensions)
	p.console.Append("uninstall %s: ok", msg.Name)

	toastCmd := p.pushToast("Uninstalled "+msg.Name, ToastSuccess)
	// The response already carried the refreshed list; the extra fetch
	// guarantees eventual consistency even if that list were stale
	return p, tea.Batch(toastCmd, p.app.RefreshExtensions(), p.app.CheckRestart())
}

func (p PanelView) handleToggleComplete(msg toggleCompleteMsg) (PanelView, tea.Cmd) {
	verb := "Enabled"
	if !msg.Enable {
		verb = "Disabled"
	}

	if msg.Err != nil {
		p.console.Append("toggle %s failed: %v", msg.Name, msg.Err)
		return p, p.pushToast(msg.Err.Error(), ToastError)
	}

	p.console.Append("toggle %s: %s", msg.Name, verb)
	toastCmd := p.pushToast(verb+" "+msg.Name, ToastSuccess)

	// Never flip the activated flag locally: re-fetch so the flag and the
	// reconciliation state come from the host
	return p, tea.Batch(toastCmd, p.app.RefreshExtensions(), p.app.CheckRestart())
}

func (p PanelView) handleConfigLoaded(msg configLoadedMsg) (PanelView, tea.Cmd) {
	// The editor may have been closed or reopened for another extension
	// while this fetch was in flight
	if !p.configModal.visible || msg.Name != p.configModal.namespace {
		return p, nil
	}

	if msg.Err != nil {
		p.configModal.close()
		return p, p.pushToast("Failed to load config for "+msg.Name+": "+msg.Err.Error(), ToastError)
	}

	p.configModal.setConfig(msg.Config)
	return p, nil
}

func (p PanelView) handleConfigSaved(msg configSavedMsg) (PanelView, tea.Cmd) {
	if msg.Err != nil {
		return p, p.pushToast(msg.Err.Error(), ToastError)
	}

	message := msg.Message
	if message == "" {
		message = "Configuration saved"
	}

	// The editor stays open; the user closes it when done
	toastCmd := p.pushToast(message, ToastSuccess)
	return p, tea.Batch(toastCmd, p.app.CheckRestart())
}

func (p PanelView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return p, tea.Quit
	}

	if p.statusDialog.Visible {
		return p.handleStatusDialogKey(msg)
	}

	if p.confirmUninstall != "" {
		return p.handleConfirmUninstallKey(msg)
	}

	if p.installModal.visible {
		return p.handleInstallModalKey(msg)
	}

	if p.configModal.visible {
		return p.handleConfigModalKey(msg)
	}

	if p.detailsVisible {
		return p.handleDetailsKey(msg)
	}

	if p.filterMode {
		return p.handleFilterKey(msg)
	}

	return p.handlePanelKey(msg)
}

func (p PanelView) handleStatusDialogKey(msg tea.KeyMsg) (PanelView, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if p.statusDialog.Code == StatusPending {
			// Hiding the dialog does not cancel the request; its result
			// message still arrives and is applied
			p.statusDialog.Visible = false
			return p, nil
		}
		p.statusDialog.Close()
	case "enter":
		if p.statusDialog.Code != StatusPending {
			p.statusDialog.Close()
		}
	}
	return p, nil
}

func (p PanelView) handleConfirmUninstallKey(msg tea.KeyMsg) (PanelView, tea.Cmd) {
	switch msg.String() {
	case "y":
		name := p.confirmUninstall
		p.confirmUninstall = ""
		p.console.Append("POST /api/extension/uninstall %s", name)
		// No status dialog for uninstall; just a working toast up front
		toastCmd := p.pushToast("Uninstalling "+name+"...", ToastInfo)
		return p, tea.Batch(toastCmd, p.app.UninstallExtension(name))
	case "n", "esc":
		p.confirmUninstall = ""
	}
	return p, nil
}

func (p PanelView) handleDetailsKey(msg tea.KeyMsg) (PanelView, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		p.detailsVisible = false
		return p, nil
	}
	// Action keys work the same from the details view
	return p.handleActionKey(msg)
}

func (p PanelView) handleFilterKey(msg tea.KeyMsg) (PanelView, tea.Cmd) {
	switch msg.String() {
	case "esc":
		p.filterMode = false
		p.filterInput.Blur()
		p.filterInput.SetValue("")
		p.selectedIdx = 0
		p.scrollOffset = 0
		return p, nil

	case "up":
		if p.selectedIdx > 0 {
			p.selectedIdx--
		}
		return p, nil

	case "down":
		if p.selectedIdx < p.rowCount()-1 {
			p.selectedIdx++
		}
		return p, nil

	case "enter":
		if p.rowCount() > 0 {
			p.detailsVisible = true
		}
		return p, nil
	}

	var cmd tea.Cmd
	p.filterInput, cmd = p.filterInput.Update(msg)

	if p.selectedIdx >= p.rowCount() {
		p.selectedIdx = 0
		p.scrollOffset = 0
	}
	return p, cmd
}

func (p PanelView) handlePanelKey(msg tea.KeyMsg) (PanelView, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return p, tea.Quit

	case "tab", "left", "right", "h", "l":
		p.switchTab()
		return p, nil

	case "j", "down":
		if p.selectedIdx < p.rowCount()-1 {
			p.selectedIdx++
		}
		return p, nil

	case "k", "up":
		if p.selectedIdx > 0 {
			p.selectedIdx--
		}
		return p, nil

	case "/":
		p.filterMode = true
		p.filterInput.SetValue("")
		p.filterInput.Focus()
		return p, textinput.Blink

	case "r":
		p.console.Append("refresh: registry + market")
		toastCmd := p.pushToast("Refreshing...", ToastInfo)
		return p, tea.Batch(toastCmd, p.app.RefreshExtensions(), p.app.RefreshMarket())

	case "enter":
		if p.rowCount() > 0 {
			p.detailsVisible = true
		}
		return p, nil
	}

	return p.handleActionKey(msg)
}

// handleActionKey handles the lifecycle keys shared by the list and the
// details view.
func (p PanelView) handleActionKey(msg tea.KeyMsg) (PanelView, tea.Cmd) {
	switch msg.String() {
	case "i":
		prefill := ""
		if entry := p.selectedMarketEntry(); entry != nil && !entry.Installed {
			prefill = entry.Repo
		}
		p.detailsVisible = false
		p.installModal.open(prefill)
		return p, textinput.Blink

	case "e":
		if ext := p.selectedExtension(); ext != nil && !ext.Activated {
			p.console.Append("POST /api/extension/on %s", ext.Name)
			return p, p.app.EnableExtension(ext.Name)
		}

	case "d":
		if ext := p.selectedExtension(); ext != nil && ext.Activated {
			p.console.Append("POST /api/extension/off %s", ext.Name)
			return p, p.app.DisableExtension(ext.Name)
		}

	case "u":
		// Built-in extensions offer no update affordance; the host
		// enforces the rule regardless
		if ext := p.selectedExtension(); ext != nil && !ext.Reserved {
			p.statusDialog.Open("Updating " + ext.Name)
			p.console.Append("POST /api/extension/update %s", ext.Name)
			return p, tea.Batch(p.app.UpdateExtension(ext.Name), p.statusDialog.Spinner.Tick)
		}

	case "x":
		if ext := p.selectedExtension(); ext != nil && !ext.Reserved {
			p.detailsVisible = false
			p.confirmUninstall = ext.Name
		}

	case "c":
		if ext := p.selectedExtension(); ext != nil && !ext.Reserved {
			p.detailsVisible = false
			p.configModal.open(ext.Name)
			p.console.Append("GET /api/config/extension/get plugin_name=%s", ext.Name)
			return p, p.app.LoadExtensionConfig(ext.Name)
		}

	case "y":
		repo := ""
		if ext := p.selectedExtension(); ext != nil {
			repo = ext.Repo
		} else if entry := p.selectedMarketEntry(); entry != nil {
			repo = entry.Repo
		}
		if repo != "" {
			if err := writeClipboard(repo); err != nil {
				return p, p.pushToast("Clipboard copy failed: "+err.Error(), ToastError)
			}
			return p, p.pushToast("Repository URL copied", ToastInfo)
		}
	}

	return p, nil
}

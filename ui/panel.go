package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"extui/api"
	"extui/model"
)

const (
	tabInstalled = "installed"
	tabMarket    = "market"
)

// PanelView is the root bubbletea model: the extension manager panel with
// its modals, toasts, and the shared status dialog.
type PanelView struct {
	app     *model.App
	version string

	width  int
	height int

	tab          string
	selectedIdx  int
	scrollOffset int

	filterMode  bool
	filterInput textinput.Model

	statusDialog StatusDialog
	installModal InstallModalState
	configModal  ConfigModalState

	detailsVisible   bool
	confirmUninstall string

	toasts  []Toast
	console *Console
}

func NewPanelView(app *model.App, version string) PanelView {
	fi := textinput.New()
	fi.Placeholder = "Filter extensions..."
	fi.CharLimit = 50

	return PanelView{
		app:          app,
		version:      version,
		tab:          tabInstalled,
		filterInput:  fi,
		statusDialog: NewStatusDialog(),
		installModal: newInstallModal(),
		configModal:  newConfigModal(),
		console:      NewConsole(50),
	}
}

// Init kicks off the startup fetches. The registry and catalog loads are
// independent; they may complete in either order and each re-runs
// reconciliation when it lands. The cached snapshot renders first.
func (p PanelView) Init() tea.Cmd {
	return tea.Batch(
		p.app.LoadSnapshots(),
		p.app.RefreshExtensions(),
		p.app.RefreshMarket(),
		p.app.CheckRestart(),
	)
}

func (p PanelView) filterQuery() string {
	if !p.filterMode {
		return ""
	}
	return strings.TrimSpace(p.filterInput.Value())
}

// visibleExtensions returns the installed list, filtered when the filter
// bar is active.
func (p PanelView) visibleExtensions() []api.Extension {
	list := p.app.Extensions
	query := p.filterQuery()
	if query == "" {
		return list
	}

	targets := make([]string, len(list))
	for i, ext := range list {
		targets[i] = ext.Name + " " + ext.Desc
	}

	matches := fuzzy.Find(query, targets)
	filtered := make([]api.Extension, len(matches))
	for i, match := range matches {
		filtered[i] = list[match.Index]
	}
	return filtered
}

// visibleMarket returns the catalog, filtered when the filter bar is
// active.
func (p PanelView) visibleMarket() []api.MarketEntry {
	list := p.app.Market
	query := p.filterQuery()
	if query == "" {
		return list
	}

	targets := make([]string, len(list))
	for i, entry := range list {
		targets[i] = entry.Name + " " + entry.Desc
	}

	matches := fuzzy.Find(query, targets)
	filtered := make([]api.MarketEntry, len(matches))
	for i, match := range matches {
		filtered[i] = list[match.Index]
	}
	return filtered
}

func (p PanelView) rowCount() int {
	if p.tab == tabInstalled {
		return len(p.visibleExtensions())
	}
	return len(p.visibleMarket())
}

func (p PanelView) selectedExtension() *api.Extension {
	list := p.visibleExtensions()
	if p.tab != tabInstalled || p.selectedIdx >= len(list) {
		return nil
	}
	ext := list[p.selectedIdx]
	return &ext
}

func (p PanelView) selectedMarketEntry() *api.MarketEntry {
	list := p.visibleMarket()
	if p.tab != tabMarket || p.selectedIdx >= len(list) {
		return nil
	}
	entry := list[p.selectedIdx]
	return &entry
}

func (p *PanelView) pushToast(message string, severity ToastSeverity) tea.Cmd {
	toast, cmd := newToast(message, severity)
	p.toasts = append(p.toasts, toast)
	return cmd
}

func (p *PanelView) dropToast(id string) {
	for i, t := range p.toasts {
		if t.ID == id {
			p.toasts = append(p.toasts[:i], p.toasts[i+1:]...)
			return
		}
	}
}

func (p *PanelView) switchTab() {
	if p.tab == tabInstalled {
		p.tab = tabMarket
	} else {
		p.tab = tabInstalled
	}
	p.selectedIdx = 0
	p.scrollOffset = 0
}

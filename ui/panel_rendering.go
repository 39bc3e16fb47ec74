package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"extui/api"
)

func (p PanelView) View() string {
	if p.width == 0 || p.height == 0 {
		return "Loading..."
	}

	if p.statusDialog.Visible {
		return p.statusDialog.render(p.console, p.width, p.height)
	}

	if p.confirmUninstall != "" {
		message := fmt.Sprintf("Uninstall %s? Its files and configuration are removed from the host.", p.confirmUninstall)
		return RenderConfirmationModal("Uninstall Extension", message, p.width, p.height)
	}

	if p.installModal.visible {
		return p.renderInstallModal()
	}

	if p.configModal.visible {
		return p.renderConfigModal()
	}

	if p.detailsVisible {
		return p.renderDetails()
	}

	return p.renderPanel()
}

// listHeight is the number of rows available for the extension list after
// the header, tabs, filter bar, toasts, and footer.
func (p PanelView) listHeight() int {
	reserved := 7 + len(p.toasts)
	if p.app.RestartRequired {
		reserved++
	}
	h := p.height - reserved
	if h < 1 {
		h = 1
	}
	return h
}

func (p PanelView) renderPanel() string {
	var b strings.Builder

	title := TitleStyle.Render("Extension Manager")
	version := DimStyle.Render("v" + p.version)
	b.WriteString(title + "  " + version + "\n")

	if p.app.RestartRequired {
		banner := lipgloss.NewStyle().Foreground(warningColor).Bold(true).
			Render("⚠ Restart required for changes to take effect")
		b.WriteString(banner + "\n")
	}

	b.WriteString(p.renderTabs() + "\n")

	if p.filterMode {
		b.WriteString(HighlightStyle.Render("Filter:") + " " + p.filterInput.View() + "\n")
	} else {
		b.WriteString("\n")
	}

	b.WriteString(p.renderList())

	if toasts := renderToasts(p.toasts, p.width); toasts != "" {
		b.WriteString(toasts + "\n")
	}

	b.WriteString(p.renderFooter())

	return b.String()
}

func (p PanelView) renderTabs() string {
	installedLabel := fmt.Sprintf(" Installed (%d) ", len(p.app.Extensions))
	marketLabel := fmt.Sprintf(" Market (%d) ", len(p.app.Market))

	active := lipgloss.NewStyle().Bold(true).Foreground(accentColor).Underline(true)
	inactive := DimStyle

	if p.tab == tabInstalled {
		return active.Render(installedLabel) + inactive.Render(marketLabel)
	}
	return inactive.Render(installedLabel) + active.Render(marketLabel)
}

// renderList draws the scrolling rows for the active tab. The scroll
// offset follows the selection so it stays visible.
func (p PanelView) renderList() string {
	height := p.listHeight()
	count := p.rowCount()

	offset := p.scrollOffset
	if p.selectedIdx < offset {
		offset = p.selectedIdx
	}
	if p.selectedIdx >= offset+height {
		offset = p.selectedIdx - height + 1
	}
	if offset < 0 {
		offset = 0
	}

	var b strings.Builder

	if count == 0 {
		if p.filterQuery() != "" {
			b.WriteString(DimStyle.Render("  No extensions match the filter.") + "\n")
		} else if p.tab == tabInstalled {
			b.WriteString(DimStyle.Render("  No extensions installed. Press i to install one.") + "\n")
		} else {
			b.WriteString(DimStyle.Render("  Market catalog is empty or still loading.") + "\n")
		}
		for i := 1; i < height; i++ {
			b.WriteString("\n")
		}
		return b.String()
	}

	rows := 0
	if p.tab == tabInstalled {
		list := p.visibleExtensions()
		for i := offset; i < len(list) && rows < height; i++ {
			b.WriteString(p.renderExtensionRow(list[i], i == p.selectedIdx) + "\n")
			rows++
		}
	} else {
		list := p.visibleMarket()
		for i := offset; i < len(list) && rows < height; i++ {
			b.WriteString(p.renderMarketRow(list[i], i == p.selectedIdx) + "\n")
			rows++
		}
	}
	for ; rows < height; rows++ {
		b.WriteString("\n")
	}
	return b.String()
}

func (p PanelView) renderExtensionRow(ext api.Extension, selected bool) string {
	indicator := "  "
	if selected {
		indicator = "▶ "
	}

	var status string
	switch {
	case ext.Reserved:
		status = DimStyle.Render(padTo("built-in", 10))
	case ext.Activated:
		status = lipgloss.NewStyle().Foreground(successColor).Render(padTo("✓ Enabled", 10))
	default:
		status = DimStyle.Render(padTo("✗ Disabled", 10))
	}

	name := padTo(truncate(ext.Name, 28), 30)
	if selected {
		name = SelectedStyle.Render(name)
	}

	descWidth := p.width - 46
	if descWidth < 10 {
		descWidth = 10
	}
	desc := DimStyle.Render(truncate(ext.Desc, descWidth))

	return indicator + name + status + "  " + desc
}

func (p PanelView) renderMarketRow(entry api.MarketEntry, selected bool) string {
	indicator := "  "
	if selected {
		indicator = "▶ "
	}

	var status string
	if entry.Installed {
		status = lipgloss.NewStyle().Foreground(successColor).Render(padTo("✓ Installed", 12))
	} else {
		status = DimStyle.Render(padTo("Available", 12))
	}

	name := padTo(truncate(entry.Name, 28), 30)
	if selected {
		name = SelectedStyle.Render(name)
	}

	descWidth := p.width - 48
	if descWidth < 10 {
		descWidth = 10
	}
	desc := DimStyle.Render(truncate(entry.Desc, descWidth))

	return indicator + name + status + "  " + desc
}

func (p PanelView) renderFooter() string {
	if p.filterMode {
		return FormatFooter("Type", "Filter", "↑/↓", "Navigate", "Enter", "Details", "Esc", "Clear")
	}

	if p.tab == tabInstalled {
		return FormatFooter(
			"j/k", "Navigate", "Tab", "Market", "Enter", "Details",
			"i", "Install", "e/d", "On/Off", "u", "Update", "x", "Uninstall",
			"c", "Configure", "/", "Filter", "r", "Refresh", "q", "Quit",
		)
	}
	return FormatFooter(
		"j/k", "Navigate", "Tab", "Installed", "Enter", "Details",
		"i", "Install", "y", "Copy Repo", "/", "Filter", "r", "Refresh", "q", "Quit",
	)
}

package ui

import (
	"strings"

	markdown "github.com/MichaelMure/go-term-markdown"
	"github.com/charmbracelet/lipgloss"
)

// renderDetails shows the selected entry in full: metadata fields plus the
// markdown-rendered description.
func (p PanelView) renderDetails() string {
	modalWidth := 80
	if p.width < modalWidth+10 {
		modalWidth = p.width - 10
	}

	labelStyle := lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	leftStyle := lipgloss.NewStyle().Width(modalWidth).Align(lipgloss.Left)

	var title, desc string
	var details []struct{ label, value string }
	var footer string

	if p.tab == tabInstalled {
		ext := p.selectedExtension()
		if ext == nil {
			return ""
		}
		title = ext.Name

		status := "Disabled"
		if ext.Activated {
			status = "Enabled"
		}
		details = []struct{ label, value string }{
			{"Author", ext.Author},
			{"Repository", ext.Repo},
			{"Status", status},
		}
		if ext.Reserved {
			details = append(details, struct{ label, value string }{"Type", "built-in (cannot be updated, removed, or reconfigured)"})
		}
		desc = ext.Desc

		if ext.Reserved {
			footer = FormatFooter("e", "Enable", "d", "Disable", "Esc", "Close")
		} else {
			footer = FormatFooter("e/d", "Enable/Disable", "u", "Update", "x", "Uninstall", "c", "Configure", "y", "Copy Repo", "Esc", "Close")
		}
	} else {
		entry := p.selectedMarketEntry()
		if entry == nil {
			return ""
		}
		title = entry.Name

		status := "Available"
		if entry.Installed {
			status = "Installed"
		}
		details = []struct{ label, value string }{
			{"Author", entry.Author},
			{"Repository", entry.Repo},
			{"Status", status},
		}
		desc = entry.Desc

		if entry.Installed {
			footer = FormatFooter("y", "Copy Repo", "Esc", "Close")
		} else {
			footer = FormatFooter("i", "Install", "y", "Copy Repo", "Esc", "Close")
		}
	}

	var lines []string
	for _, d := range details {
		if d.value == "" {
			continue
		}
		line := labelStyle.Render(d.label) + ": " + d.value
		for _, wl := range strings.Split(wordWrap(line, modalWidth-4), "\n") {
			lines = append(lines, leftStyle.Render(wl))
		}
	}

	if desc != "" {
		lines = append(lines, strings.Repeat(" ", modalWidth))
		rendered := string(markdown.Render(desc, modalWidth-4, 2))
		for _, rl := range strings.Split(strings.TrimRight(rendered, "\n"), "\n") {
			lines = append(lines, leftStyle.Render(rl))
		}
	}

	return RenderThreeSectionModal(title, lines, footer, ModalTypeInfo, modalWidth, p.width, p.height)
}

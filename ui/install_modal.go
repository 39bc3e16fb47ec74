package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// InstallModalState manages the install entry dialog. An extension comes
// from exactly one source: a repository URL or a local archive that gets
// uploaded to the host.
type InstallModalState struct {
	visible   bool
	urlInput  textinput.Model
	pathInput textinput.Model
	focusIdx  int // 0=url, 1=archive path

	// inFlight blocks a second submission while one install is pending.
	// There is only one status dialog, so installs run one at a time.
	inFlight bool
}

func newInstallModal() InstallModalState {
	url := textinput.New()
	url.Placeholder = "https://github.com/user/extension"
	url.CharLimit = 200

	path := textinput.New()
	path.Placeholder = "/path/to/extension.zip"
	path.CharLimit = 300

	return InstallModalState{urlInput: url, pathInput: path}
}

func (m *InstallModalState) open(prefillURL string) {
	m.visible = true
	m.focusIdx = 0
	m.urlInput.SetValue(prefillURL)
	m.pathInput.SetValue("")
	m.urlInput.Focus()
	m.pathInput.Blur()
}

func (m *InstallModalState) toggleFocus() {
	if m.focusIdx == 0 {
		m.focusIdx = 1
		m.urlInput.Blur()
		m.pathInput.Focus()
	} else {
		m.focusIdx = 0
		m.pathInput.Blur()
		m.urlInput.Focus()
	}
}

func (m *InstallModalState) clear() {
	m.urlInput.SetValue("")
	m.pathInput.SetValue("")
}

// handleInstallModalKey handles all input for the install entry dialog.
func (p PanelView) handleInstallModalKey(msg tea.KeyMsg) (PanelView, tea.Cmd) {
	switch msg.String() {
	case "esc":
		p.installModal.visible = false
		p.installModal.urlInput.Blur()
		p.installModal.pathInput.Blur()
		return p, nil

	case "tab", "shift+tab", "up", "down":
		p.installModal.toggleFocus()
		return p, nil

	case "enter":
		return p.submitInstall()
	}

	var cmd tea.Cmd
	if p.installModal.focusIdx == 0 {
		p.installModal.urlInput, cmd = p.installModal.urlInput.Update(msg)
	} else {
		p.installModal.pathInput, cmd = p.installModal.pathInput.Update(msg)
	}
	return p, cmd
}

func (p PanelView) submitInstall() (PanelView, tea.Cmd) {
	if p.installModal.inFlight {
		return p, nil
	}

	repoURL := strings.TrimSpace(p.installModal.urlInput.Value())
	archivePath := strings.TrimSpace(p.installModal.pathInput.Value())

	installCmd, err := p.app.Install(repoURL, archivePath)
	if err != nil {
		// Validation failure: the host is never contacted
		toast, toastCmd := newToast(err.Error(), ToastError)
		p.toasts = append(p.toasts, toast)
		return p, toastCmd
	}

	p.installModal.inFlight = true
	p.statusDialog.Open("Installing Extension")
	if archivePath != "" {
		p.console.Append("POST /api/extension/install-upload %s", archivePath)
	} else {
		p.console.Append("POST /api/extension/install %s", repoURL)
	}

	toast, toastCmd := newToast("Installing extension...", ToastInfo)
	p.toasts = append(p.toasts, toast)

	return p, tea.Batch(installCmd, toastCmd, p.statusDialog.Spinner.Tick)
}

func (p PanelView) renderInstallModal() string {
	modalWidth := 64
	if p.width < modalWidth+10 {
		modalWidth = p.width - 10
	}

	leftStyle := lipgloss.NewStyle().Width(modalWidth).Align(lipgloss.Left)
	labelStyle := lipgloss.NewStyle().Bold(true).Foreground(accentColor)

	urlLabel := "Repository URL"
	pathLabel := "Archive file"
	if p.installModal.focusIdx == 0 {
		urlLabel = "▶ " + urlLabel
	} else {
		pathLabel = "▶ " + pathLabel
	}

	var lines []string
	lines = append(lines, leftStyle.Render(labelStyle.Render(urlLabel)))
	lines = append(lines, leftStyle.Render("  "+p.installModal.urlInput.View()))
	lines = append(lines, strings.Repeat(" ", modalWidth))
	lines = append(lines, leftStyle.Render(labelStyle.Render(pathLabel)))
	lines = append(lines, leftStyle.Render("  "+p.installModal.pathInput.View()))
	lines = append(lines, strings.Repeat(" ", modalWidth))
	lines = append(lines, lipgloss.NewStyle().
		Width(modalWidth).
		Foreground(dimColor).
		Align(lipgloss.Left).
		Render("Fill in exactly one source. The host downloads and registers the extension."))

	footer := FormatFooter("Tab", "Switch Field", "Enter", "Install", "Esc", "Cancel")
	return RenderThreeSectionModal("Install Extension", lines, footer, ModalTypeInfo, modalWidth, p.width, p.height)
}

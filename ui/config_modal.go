package ui

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"extui/api"
)

// ConfigModalState manages the per-extension configuration editor. The
// fetched document is edited in place; nothing is persisted until the
// user saves explicitly.
type ConfigModalState struct {
	visible   bool
	namespace string
	loading   bool

	cfg  *api.ExtensionConfig
	keys []string

	selectedIdx int
	editMode    bool
	editInput   textinput.Model
}

func newConfigModal() ConfigModalState {
	ti := textinput.New()
	ti.Placeholder = "Enter value..."
	ti.CharLimit = 500
	return ConfigModalState{editInput: ti}
}

func (m *ConfigModalState) open(namespace string) {
	m.visible = true
	m.namespace = namespace
	m.loading = true
	m.cfg = nil
	m.keys = nil
	m.selectedIdx = 0
	m.editMode = false
}

func (m *ConfigModalState) setConfig(cfg *api.ExtensionConfig) {
	m.loading = false
	m.cfg = cfg
	m.keys = nil
	if cfg == nil {
		return
	}
	for key := range cfg.Config {
		m.keys = append(m.keys, key)
	}
	sort.Strings(m.keys)
}

func (m *ConfigModalState) close() {
	m.visible = false
	m.namespace = ""
	m.cfg = nil
	m.keys = nil
	m.selectedIdx = 0
	m.editMode = false
	m.editInput.Blur()
}

// formatConfigValue renders a config value for display and editing.
func formatConfigValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(data)
	}
}

// parseConfigValue converts edited text back to the type of the existing
// value, so saving does not silently stringify booleans and numbers.
func parseConfigValue(existing interface{}, input string) interface{} {
	switch existing.(type) {
	case bool:
		if b, err := strconv.ParseBool(input); err == nil {
			return b
		}
	case float64:
		if f, err := strconv.ParseFloat(input, 64); err == nil {
			return f
		}
	case string, nil:
		return input
	default:
		var parsed interface{}
		if err := json.Unmarshal([]byte(input), &parsed); err == nil {
			return parsed
		}
	}
	return input
}

// handleConfigModalKey handles all input for the configuration editor.
func (p PanelView) handleConfigModalKey(msg tea.KeyMsg) (PanelView, tea.Cmd) {
	if p.configModal.editMode {
		switch msg.String() {
		case "esc":
			p.configModal.editMode = false
			p.configModal.editInput.Blur()
			p.configModal.editInput.SetValue("")
		case "enter":
			if p.configModal.selectedIdx < len(p.configModal.keys) {
				key := p.configModal.keys[p.configModal.selectedIdx]
				existing := p.configModal.cfg.Config[key]
				p.configModal.cfg.Config[key] = parseConfigValue(existing, p.configModal.editInput.Value())
			}
			p.configModal.editMode = false
			p.configModal.editInput.Blur()
			p.configModal.editInput.SetValue("")
		default:
			var cmd tea.Cmd
			p.configModal.editInput, cmd = p.configModal.editInput.Update(msg)
			return p, cmd
		}
		return p, nil
	}

	switch msg.String() {
	case "esc":
		// Discards unsaved edits; the document is re-fetched next open
		p.configModal.close()

	case "up", "k":
		if p.configModal.selectedIdx > 0 {
			p.configModal.selectedIdx--
		}

	case "down", "j":
		if p.configModal.selectedIdx < len(p.configModal.keys)-1 {
			p.configModal.selectedIdx++
		}

	case "enter":
		if p.configModal.cfg == nil || p.configModal.selectedIdx >= len(p.configModal.keys) {
			return p, nil
		}
		key := p.configModal.keys[p.configModal.selectedIdx]
		p.configModal.editMode = true
		p.configModal.editInput.SetValue(formatConfigValue(p.configModal.cfg.Config[key]))
		p.configModal.editInput.Focus()
		return p, textinput.Blink

	case "ctrl+s":
		if p.configModal.cfg == nil {
			return p, nil
		}
		p.console.Append("POST /api/config/extension/update plugin_name=%s", p.configModal.namespace)
		return p, p.app.SaveExtensionConfig(p.configModal.namespace, p.configModal.cfg.Config)
	}

	return p, nil
}

func (p PanelView) renderConfigModal() string {
	modalWidth := 70
	if p.width < modalWidth+10 {
		modalWidth = p.width - 10
	}

	leftStyle := lipgloss.NewStyle().Width(modalWidth).Align(lipgloss.Left)
	keyStyle := lipgloss.NewStyle().Bold(true).Foreground(accentColor)

	var lines []string

	if p.configModal.loading {
		lines = append(lines, leftStyle.Render("Loading configuration..."))
	} else if p.configModal.cfg == nil || len(p.configModal.keys) == 0 {
		lines = append(lines, leftStyle.Render("This extension has no configurable fields."))
	} else {
		for i, key := range p.configModal.keys {
			indicator := "  "
			if i == p.configModal.selectedIdx {
				indicator = "▶ "
			}

			value := formatConfigValue(p.configModal.cfg.Config[key])
			if i == p.configModal.selectedIdx && p.configModal.editMode {
				value = p.configModal.editInput.View()
			} else {
				value = truncate(value, modalWidth-runewidth.StringWidth(key)-8)
			}

			line := indicator + keyStyle.Render(key) + ": " + value
			lines = append(lines, leftStyle.Render(line))
		}
	}

	footer := FormatFooter("j/k", "Navigate", "Enter", "Edit", "Ctrl+S", "Save", "Esc", "Close")
	if p.configModal.editMode {
		footer = FormatFooter("Enter", "Apply", "Esc", "Cancel Edit")
	}

	title := "Configure " + p.configModal.namespace
	return RenderThreeSectionModal(title, lines, footer, ModalTypeInfo, modalWidth, p.width, p.height)
}

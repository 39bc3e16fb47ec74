package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

type ToastSeverity int

const (
	ToastInfo ToastSeverity = iota
	ToastSuccess
	ToastError
)

const toastLifetime = 4 * time.Second

// Toast is a transient notification line. Each toast carries its own ID
// so an expiry tick only dismisses the toast it was scheduled for.
type Toast struct {
	ID       string
	Message  string
	Severity ToastSeverity
}

type toastExpireMsg struct {
	id string
}

func newToast(message string, severity ToastSeverity) (Toast, tea.Cmd) {
	t := Toast{
		ID:       uuid.New().String(),
		Message:  message,
		Severity: severity,
	}
	id := t.ID
	cmd := tea.Tick(toastLifetime, func(time.Time) tea.Msg {
		return toastExpireMsg{id: id}
	})
	return t, cmd
}

func toastStyle(severity ToastSeverity) lipgloss.Style {
	switch severity {
	case ToastSuccess:
		return lipgloss.NewStyle().Foreground(successColor)
	case ToastError:
		return lipgloss.NewStyle().Foreground(dangerColor).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(accentColor)
	}
}

func renderToasts(toasts []Toast, width int) string {
	if len(toasts) == 0 {
		return ""
	}

	var lines []string
	for _, t := range toasts {
		lines = append(lines, toastStyle(t.Severity).Padding(0, 2).Render(truncate(t.Message, width-4)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

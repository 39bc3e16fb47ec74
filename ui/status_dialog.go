package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type StatusCode int

const (
	StatusPending StatusCode = iota
	StatusSuccess
	StatusError
)

// NoAutoClose keeps a finished status dialog open until the user
// dismisses it. Install and update failures use it so multi-line
// diagnostics stay readable.
const NoAutoClose time.Duration = -1

// statusAutoClose is the default delay before a success state dismisses
// itself.
const statusAutoClose = 2 * time.Second

type statusDialogCloseMsg struct {
	seq int
}

// StatusDialog is the shared pending/success/error presentation for
// long-running orchestrated operations. One instance is reused across
// operations; the UI serializes them one at a time.
type StatusDialog struct {
	Visible bool
	Title   string
	Code    StatusCode
	Result  string
	Spinner spinner.Model

	// seq guards auto-close ticks: a tick fired for an earlier state of
	// the dialog must not close a reused one.
	seq int
}

func NewStatusDialog() StatusDialog {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(accentColor)
	return StatusDialog{Spinner: sp}
}

// Open puts the dialog in pending state. Reopening while already visible
// is allowed; statusCode and result are fully reset first.
func (d *StatusDialog) Open(title string) {
	d.Visible = true
	d.Title = title
	d.Code = StatusPending
	d.Result = ""
	d.seq++
}

func (d *StatusDialog) finish(code StatusCode, result string, autoClose time.Duration) tea.Cmd {
	d.Code = code
	d.Result = result
	d.seq++

	if autoClose == NoAutoClose {
		return nil
	}

	seq := d.seq
	return tea.Tick(autoClose, func(time.Time) tea.Msg {
		return statusDialogCloseMsg{seq: seq}
	})
}

// Succeed transitions to success with the service-provided message.
func (d *StatusDialog) Succeed(result string, autoClose time.Duration) tea.Cmd {
	return d.finish(StatusSuccess, result, autoClose)
}

// Fail transitions to error. Callers pass NoAutoClose when the message
// needs manual dismissal.
func (d *StatusDialog) Fail(result string, autoClose time.Duration) tea.Cmd {
	return d.finish(StatusError, result, autoClose)
}

// Close hides the dialog and resets it for reuse.
func (d *StatusDialog) Close() {
	d.Visible = false
	d.Title = ""
	d.Code = StatusPending
	d.Result = ""
	d.seq++
}

// HandleCloseTick applies an auto-close tick, ignoring stale ticks that
// belong to an earlier use of the dialog.
func (d *StatusDialog) HandleCloseTick(msg statusDialogCloseMsg) {
	if msg.seq != d.seq {
		return
	}
	d.Close()
}

// render draws the dialog with the recent console lines underneath, so
// the network activity feeding the operation stays visible while the
// dialog is open.
func (d *StatusDialog) render(console *Console, width, height int) string {
	modalWidth := 60
	if width < modalWidth+10 {
		modalWidth = width - 10
	}

	leftStyle := lipgloss.NewStyle().Width(modalWidth).Align(lipgloss.Left)

	var messageLines []string
	modalType := ModalTypeInfo
	footer := ""

	switch d.Code {
	case StatusPending:
		messageLines = append(messageLines, leftStyle.Render(d.Spinner.View()+" Working..."))
	case StatusSuccess:
		for _, line := range strings.Split(wordWrap(d.Result, modalWidth-4), "\n") {
			messageLines = append(messageLines, leftStyle.Render(line))
		}
		footer = FormatFooter("Enter", "Close")
	case StatusError:
		modalType = ModalTypeError
		for _, line := range strings.Split(wordWrap(d.Result, modalWidth-4), "\n") {
			messageLines = append(messageLines, leftStyle.Render(line))
		}
		footer = FormatFooter("Enter", "Dismiss")
	}

	if lines := console.Tail(4); len(lines) > 0 {
		messageLines = append(messageLines, strings.Repeat(" ", modalWidth))
		dimStyle := lipgloss.NewStyle().Width(modalWidth).Foreground(dimColor).Align(lipgloss.Left)
		for _, line := range lines {
			messageLines = append(messageLines, dimStyle.Render(truncate(line, modalWidth-2)))
		}
	}

	return RenderThreeSectionModal(d.Title, messageLines, footer, modalType, modalWidth, width, height)
}

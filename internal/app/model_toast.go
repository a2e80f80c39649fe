package app

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

const toastDuration = 4 * time.Second

type toastLevel int

const (
	toastLevelInfo toastLevel = iota
	toastLevelWarning
	toastLevelError
)

type toast struct {
	level toastLevel
	text  string
	until time.Time
}

type toastExpiredMsg struct{}

// toastQueue holds the notice shown above the help bar. Immediate toasts
// replace the current one; pending toasts wait until it expires.
type toastQueue struct {
	now     func() time.Time
	current toast
	pending []toast
}

func newToastQueue() *toastQueue {
	return &toastQueue{now: time.Now}
}

func (q *toastQueue) show(level toastLevel, text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	q.current = toast{level: level, text: text, until: q.now().Add(toastDuration)}
	return true
}

// enqueue adds text behind the current toast. The returned toast is the one
// that became visible, if any.
func (q *toastQueue) enqueue(level toastLevel, text string) (toast, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return toast{}, false
	}
	q.pending = append(q.pending, toast{level: level, text: text})
	return q.advance()
}

// advance drops an expired toast and promotes the next pending one.
func (q *toastQueue) advance() (toast, bool) {
	if q.active() {
		return toast{}, false
	}
	q.current = toast{}
	if len(q.pending) == 0 {
		return toast{}, false
	}
	next := q.pending[0]
	q.pending = q.pending[1:]
	q.show(next.level, next.text)
	return q.current, true
}

func (q *toastQueue) active() bool {
	return q.current.text != "" && q.now().Before(q.current.until)
}

func (q *toastQueue) expiryCmd() tea.Cmd {
	if q.current.text == "" {
		return nil
	}
	return tea.Tick(q.current.until.Sub(q.now()), func(time.Time) tea.Msg {
		return toastExpiredMsg{}
	})
}

func (q *toastQueue) line(width int) string {
	if width <= 0 || !q.active() {
		return ""
	}
	style := toastInfoStyle
	switch q.current.level {
	case toastLevelWarning:
		style = toastWarningStyle
	case toastLevelError:
		style = toastErrorStyle
	}
	pill := style.Render(" " + truncateToWidth(q.current.text, max(1, width-4)) + " ")
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, pill)
}

func (m *Model) showInfoToast(text string)    { m.toasts.show(toastLevelInfo, text) }
func (m *Model) showWarningToast(text string) { m.toasts.show(toastLevelWarning, text) }
func (m *Model) showErrorToast(text string)   { m.toasts.show(toastLevelError, text) }

// enqueueStartupToast queues notices raised while the model was built so
// each gets its full display time.
func (m *Model) enqueueStartupToast(level toastLevel, text string) {
	if shown, ok := m.toasts.enqueue(level, text); ok {
		m.status = shown.text
	}
}

func (m *Model) handleToastExpired() tea.Cmd {
	if m.toasts.active() {
		return nil
	}
	if shown, ok := m.toasts.advance(); ok {
		m.status = shown.text
	}
	return m.toasts.expiryCmd()
}

// toastExpiryCmd wakes the program when the current toast runs out.
func (m *Model) toastExpiryCmd() tea.Cmd {
	return m.toasts.expiryCmd()
}

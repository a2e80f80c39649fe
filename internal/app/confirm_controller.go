package app

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	xansi "github.com/charmbracelet/x/ansi"
)

type confirmChoice int

const (
	confirmChoiceNone confirmChoice = iota
	confirmChoiceConfirm
	confirmChoiceCancel
)

type confirmButton int

const (
	confirmButtonAccept confirmButton = iota
	confirmButtonReject
)

const (
	confirmMinWidth = 24
	confirmMaxWidth = 60
)

type confirmPrompt struct {
	title   string
	message string
	accept  string
	reject  string
}

// confirmRect is a screen region in cells.
type confirmRect struct {
	x, y, w, h int
}

func (r confirmRect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// ConfirmController is a modal yes/no dialog drawn over the wizard. It opens
// on the reject button.
type ConfirmController struct {
	open   bool
	prompt confirmPrompt
	focus  confirmButton
}

func NewConfirmController() *ConfirmController {
	return &ConfirmController{}
}

func (c *ConfirmController) IsOpen() bool {
	return c != nil && c.open
}

func (c *ConfirmController) Open(title, message, acceptLabel, rejectLabel string) {
	if c == nil {
		return
	}
	c.prompt = confirmPrompt{
		title:   orDefault(strings.TrimSpace(title), "Confirm"),
		message: strings.TrimSpace(message),
		accept:  orDefault(acceptLabel, "Confirm"),
		reject:  orDefault(rejectLabel, "Cancel"),
	}
	c.focus = confirmButtonReject
	c.open = true
}

func (c *ConfirmController) Close() {
	if c == nil {
		return
	}
	*c = ConfirmController{}
}

func (c *ConfirmController) HandleKey(msg tea.KeyMsg) (bool, confirmChoice) {
	if !c.IsOpen() {
		return false, confirmChoiceNone
	}
	switch msg.String() {
	case "y":
		return true, confirmChoiceConfirm
	case "n", "esc":
		return true, confirmChoiceCancel
	case "enter":
		if c.focus == confirmButtonAccept {
			return true, confirmChoiceConfirm
		}
		return true, confirmChoiceCancel
	case "left", "h":
		c.focus = confirmButtonAccept
	case "right", "l":
		c.focus = confirmButtonReject
	case "tab", "shift+tab":
		c.focus = 1 - c.focus
	default:
		return false, confirmChoiceNone
	}
	return true, confirmChoiceNone
}

// HandleMouse resolves a left click on one of the buttons. Clicks elsewhere
// inside the dialog are swallowed.
func (c *ConfirmController) HandleMouse(msg tea.MouseMsg, maxWidth, maxHeight int) (bool, confirmChoice) {
	if !c.IsOpen() {
		return false, confirmChoiceNone
	}
	click, ok := msg.(tea.MouseClickMsg)
	if !ok || click.Button != tea.MouseLeft {
		return false, confirmChoiceNone
	}
	frame, accept, reject := c.regions(maxWidth, maxHeight)
	switch {
	case accept.contains(click.X, click.Y):
		c.focus = confirmButtonAccept
		return true, confirmChoiceConfirm
	case reject.contains(click.X, click.Y):
		c.focus = confirmButtonReject
		return true, confirmChoiceCancel
	case frame.contains(click.X, click.Y):
		return true, confirmChoiceNone
	}
	return false, confirmChoiceNone
}

// View renders the dialog indented to its column and returns the row it
// starts on.
func (c *ConfirmController) View(maxWidth, maxHeight int) (string, int) {
	if !c.IsOpen() {
		return "", 0
	}
	frame, _, _ := c.regions(maxWidth, maxHeight)
	return indentBlock(c.box(frame.w), frame.x), frame.y
}

func (c *ConfirmController) box(width int) string {
	inner := max(1, width-4)
	rows := []string{dialogTitleStyle.Render(padToWidth(truncateToWidth(c.prompt.title, inner), inner))}
	for _, line := range c.messageLines(inner) {
		rows = append(rows, dialogBodyStyle.Render(padToWidth(line, inner)))
	}
	rows = append(rows, c.buttons(inner))
	return dialogBorderStyle.Padding(0, 1).Render(strings.Join(rows, "\n"))
}

func (c *ConfirmController) messageLines(width int) []string {
	if c.prompt.message == "" {
		return nil
	}
	lines := strings.Split(xansi.Wrap(c.prompt.message, width, ""), "\n")
	for i, line := range lines {
		lines[i] = truncateToWidth(line, width)
	}
	return lines
}

func (c *ConfirmController) buttons(width int) string {
	half := width / 2
	accept := padToWidth(truncateToWidth("["+c.prompt.accept+"]", half), half)
	reject := padToWidth(truncateToWidth("["+c.prompt.reject+"]", width-half), width-half)
	if c.focus == confirmButtonAccept {
		return lipgloss.JoinHorizontal(lipgloss.Top, selectedStyle.Render(accept), dialogBodyStyle.Render(reject))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, dialogBodyStyle.Render(accept), selectedStyle.Render(reject))
}

// regions centers the dialog and returns its frame and both button areas.
func (c *ConfirmController) regions(maxWidth, maxHeight int) (frame, accept, reject confirmRect) {
	width := c.width()
	if maxWidth > 0 {
		width = min(width, maxWidth)
	}
	height := lipgloss.Height(c.box(width))
	frame = confirmRect{w: width, h: height}
	if maxWidth > 0 {
		frame.x = max(0, (maxWidth-width)/2)
	}
	if maxHeight > 0 {
		frame.y = max(1, (maxHeight-height)/2+1)
	}
	inner := max(1, width-4)
	row := frame.y + height - 2
	accept = confirmRect{x: frame.x + 2, y: row, w: inner / 2, h: 1}
	reject = confirmRect{x: accept.x + accept.w, y: row, w: inner - accept.w, h: 1}
	return frame, accept, reject
}

func (c *ConfirmController) width() int {
	content := max(
		xansi.StringWidth(c.prompt.title),
		xansi.StringWidth(c.prompt.message),
		xansi.StringWidth(c.prompt.accept)+xansi.StringWidth(c.prompt.reject)+6,
	)
	return max(confirmMinWidth, min(content+4, confirmMaxWidth))
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

package app

import (
	tea "charm.land/bubbletea/v2"

	"lifewheel/internal/app/sanitizer"
	"lifewheel/internal/report"
	"lifewheel/internal/wheel"
)

type focusTarget int

const (
	focusNone focusTarget = iota
	focusLabel
	focusScore
	focusOption
	focusReflection
	focusWhat
	focusWhen
	focusCheck
	focusSummary
)

const (
	microFocusWhat = iota
	microFocusWhen
	microFocusCheck1
	microFocusCheck2
	microFocusCount
)

// focusCount is the number of focusable fields on the active step.
func (m *Model) focusCount() int {
	n := len(m.labels)
	switch m.step {
	case wheel.StepSetup:
		return n
	case wheel.StepReality, wheel.StepVision, wheel.StepLeverage:
		return n + 1
	case wheel.StepMicroAction:
		return microFocusCount
	case wheel.StepSummary:
		return 1
	default:
		return 0
	}
}

// focusTargetAt resolves a focus position into the field kind and the index it
// addresses within that kind.
func (m *Model) focusTargetAt(pos int) (focusTarget, int) {
	n := len(m.labels)
	switch m.step {
	case wheel.StepSetup:
		if pos >= 0 && pos < n {
			return focusLabel, pos
		}
	case wheel.StepReality, wheel.StepVision:
		if pos >= 0 && pos < n {
			return focusScore, pos
		}
		if pos == n {
			return focusReflection, 0
		}
	case wheel.StepLeverage:
		if pos >= 0 && pos < n {
			return focusOption, pos
		}
		if pos == n {
			return focusReflection, 0
		}
	case wheel.StepMicroAction:
		switch pos {
		case microFocusWhat:
			return focusWhat, 0
		case microFocusWhen:
			return focusWhen, 0
		case microFocusCheck1:
			return focusCheck, 0
		case microFocusCheck2:
			return focusCheck, 1
		}
	case wheel.StepSummary:
		return focusSummary, 0
	}
	return focusNone, 0
}

// focusedDimension is the dimension index under focus, or -1.
func (m *Model) focusedDimension() int {
	target, index := m.focusTargetAt(m.focus)
	switch target {
	case focusLabel, focusScore, focusOption:
		return index
	default:
		return -1
	}
}

func clampFocus(pos, count int) int {
	if count <= 0 || pos < 0 {
		return 0
	}
	if pos >= count {
		return count - 1
	}
	return pos
}

func (m *Model) moveFocus(delta int) tea.Cmd {
	count := m.focusCount()
	if count == 0 {
		return nil
	}
	m.focus = ((m.focus+delta)%count + count) % count
	return m.applyFocus()
}

func (m *Model) setFocus(pos int) tea.Cmd {
	m.focus = clampFocus(pos, m.focusCount())
	return m.applyFocus()
}

// applyFocus blurs every text widget and focuses the one under focus, if any.
func (m *Model) applyFocus() tea.Cmd {
	for i := range m.labels {
		m.labels[i].Blur()
	}
	m.reflection.Blur()
	m.what.Blur()
	m.when.Blur()
	target, index := m.focusTargetAt(m.focus)
	switch target {
	case focusLabel:
		return m.labels[index].Focus()
	case focusReflection:
		return m.reflection.Focus()
	case focusWhat:
		return m.what.Focus()
	case focusWhen:
		return m.when.Focus()
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if m.confirm.IsOpen() {
		return m.handleConfirmKey(msg)
	}
	switch {
	case m.matchCommand(msg, KeyCommandQuit):
		return tea.Quit
	case m.matchCommand(msg, KeyCommandNext):
		return m.advance()
	case m.matchCommand(msg, KeyCommandBack):
		return m.retreat()
	case m.matchCommand(msg, KeyCommandFocusNext):
		return m.moveFocus(1)
	case m.matchCommand(msg, KeyCommandFocusPrev):
		return m.moveFocus(-1)
	}
	switch m.step {
	case wheel.StepSetup:
		switch {
		case m.matchCommand(msg, KeyCommandAddDimension):
			return m.addDimension()
		case m.matchCommand(msg, KeyCommandRemoveDimension):
			return m.removeDimension(m.focusedDimension())
		}
	case wheel.StepSummary:
		switch {
		case m.matchCommand(msg, KeyCommandExport):
			return m.startExport()
		case m.matchCommand(msg, KeyCommandCopySummary):
			return m.startCopy()
		case m.matchCommand(msg, KeyCommandRestart):
			m.confirm.Open("Start over?", "This clears every dimension, score, reflection and commitment.", "Restart", "Keep")
			return nil
		}
	}

	target, index := m.focusTargetAt(m.focus)
	switch target {
	case focusLabel, focusWhat, focusWhen:
		switch msg.String() {
		case "up":
			return m.moveFocus(-1)
		case "down", "enter":
			return m.moveFocus(1)
		}
	case focusScore:
		if cmd, handled := m.handleScoreKey(msg, index); handled {
			return cmd
		}
	case focusOption:
		if m.matchCommand(msg, KeyCommandToggle) || msg.String() == "enter" {
			return m.dispatch(wheel.SetLeveragePoint{Index: index})
		}
		if cmd, handled := m.handleListKey(msg); handled {
			return cmd
		}
	case focusCheck:
		if m.matchCommand(msg, KeyCommandToggle) || msg.String() == "enter" {
			return m.toggleCheck(index)
		}
		if cmd, handled := m.handleListKey(msg); handled {
			return cmd
		}
	case focusReflection:
		if msg.String() == "esc" {
			return m.setFocus(0)
		}
	}
	return m.updateFocusedInput(msg)
}

func (m *Model) handleListKey(msg tea.KeyPressMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "up", "k":
		return m.moveFocus(-1), true
	case "down", "j":
		return m.moveFocus(1), true
	}
	return nil, false
}

func (m *Model) handleScoreKey(msg tea.KeyPressMsg, index int) (tea.Cmd, bool) {
	if cmd, handled := m.handleListKey(msg); handled {
		return cmd, true
	}
	snap := m.ctrl.Snapshot()
	if index < 0 || index >= len(snap.Dimensions) {
		return nil, false
	}
	dim := snap.Dimensions[index]
	current := dim.Current
	if m.step == wheel.StepVision {
		current = dim.Vision
	}
	score, handled := scoreSlider{keys: m}.HandleKey(msg, current)
	if !handled {
		return nil, false
	}
	if score == current {
		return nil, true
	}
	if m.step == wheel.StepVision {
		return m.dispatch(wheel.SetVisionScore{Index: index, Score: score}), true
	}
	return m.dispatch(wheel.SetCurrentScore{Index: index, Score: score}), true
}

func (m *Model) toggleCheck(index int) tea.Cmd {
	action := m.ctrl.Snapshot().MicroAction
	field, checked := wheel.MicroActionCheck1, !action.Check1
	if index == 1 {
		field, checked = wheel.MicroActionCheck2, !action.Check2
	}
	return m.dispatch(wheel.SetMicroActionField{Field: field, Checked: checked})
}

// updateFocusedInput forwards msg to the focused text widget and pushes any
// edit into the controller.
func (m *Model) updateFocusedInput(msg tea.Msg) tea.Cmd {
	target, index := m.focusTargetAt(m.focus)
	var cmd tea.Cmd
	switch target {
	case focusLabel:
		before := m.labels[index].Value()
		m.labels[index], cmd = m.labels[index].Update(msg)
		if value := m.labels[index].Value(); value != before {
			return tea.Batch(cmd, m.dispatch(wheel.RenameDimension{Index: index, Label: value}))
		}
	case focusReflection:
		before := m.reflection.Value()
		m.reflection, cmd = m.reflection.Update(msg)
		if value := m.reflection.Value(); value != before {
			m.fitReflection()
			slot := wheel.Describe(m.ctrl.Snapshot(), m.ctrl.Policy()).Reflection
			return tea.Batch(cmd, m.dispatch(wheel.SetReflection{Slot: slot, Text: value}))
		}
	case focusWhat:
		before := m.what.Value()
		m.what, cmd = m.what.Update(msg)
		if value := m.what.Value(); value != before {
			return tea.Batch(cmd, m.dispatch(wheel.SetMicroActionField{Field: wheel.MicroActionWhat, Text: value}))
		}
	case focusWhen:
		before := m.when.Value()
		m.when, cmd = m.when.Update(msg)
		if value := m.when.Value(); value != before {
			return tea.Batch(cmd, m.dispatch(wheel.SetMicroActionField{Field: wheel.MicroActionWhen, Text: value}))
		}
	case focusSummary:
		m.summary, cmd = m.summary.Update(msg)
	}
	return cmd
}

// handlePaste cleans pasted text for the focused field before inserting it.
func (m *Model) handlePaste(msg tea.PasteMsg) tea.Cmd {
	target, _ := m.focusTargetAt(m.focus)
	switch target {
	case focusReflection:
		msg.Content = sanitizer.Clean(msg.Content, sanitizer.MultiLine, 0)
	case focusLabel:
		msg.Content = sanitizer.Clean(msg.Content, sanitizer.SingleLine, labelCharLimit)
	case focusWhat, focusWhen:
		msg.Content = sanitizer.Clean(msg.Content, sanitizer.SingleLine, microActionCharLimit)
	default:
		return nil
	}
	if msg.Content == "" {
		return nil
	}
	return m.updateFocusedInput(msg)
}

func (m *Model) advance() tea.Cmd {
	if m.step == wheel.StepSummary {
		return nil
	}
	from := m.step
	cmd := m.dispatch(wheel.Advance{})
	if m.step == wheel.StepVision && from == wheel.StepReality {
		m.showInfoToast("Vision scores start from your current scores.")
		return tea.Batch(cmd, m.toastExpiryCmd())
	}
	return cmd
}

func (m *Model) retreat() tea.Cmd {
	if m.step == wheel.StepSetup {
		return nil
	}
	return m.dispatch(wheel.Retreat{})
}

func (m *Model) addDimension() tea.Cmd {
	if !m.ctrl.View().CanAdd {
		m.showWarningToast("A wheel holds at most 10 dimensions.")
		return m.toastExpiryCmd()
	}
	cmd := m.dispatch(wheel.AddDimension{})
	return tea.Batch(cmd, m.setFocus(len(m.labels)-1))
}

func (m *Model) removeDimension(index int) tea.Cmd {
	if index < 0 {
		return nil
	}
	if !m.ctrl.View().CanRemove {
		m.showWarningToast("A wheel needs at least 6 dimensions.")
		return m.toastExpiryCmd()
	}
	return m.dispatch(wheel.RemoveDimension{Index: index})
}

func (m *Model) handleConfirmKey(msg tea.KeyPressMsg) tea.Cmd {
	handled, choice := m.confirm.HandleKey(msg)
	if !handled {
		if m.matchCommand(msg, KeyCommandQuit) {
			return tea.Quit
		}
		return nil
	}
	return m.resolveConfirm(choice)
}

func (m *Model) handleMouse(msg tea.MouseClickMsg) tea.Cmd {
	if !m.confirm.IsOpen() {
		return nil
	}
	_, choice := m.confirm.HandleMouse(msg, m.width, m.height)
	return m.resolveConfirm(choice)
}

func (m *Model) resolveConfirm(choice confirmChoice) tea.Cmd {
	switch choice {
	case confirmChoiceConfirm:
		m.confirm.Close()
		cmd := m.dispatch(wheel.Restart{})
		m.lastExport = report.Result{}
		m.showInfoToast("Started a fresh wheel.")
		return tea.Batch(cmd, m.toastExpiryCmd())
	case confirmChoiceCancel:
		m.confirm.Close()
	}
	return nil
}

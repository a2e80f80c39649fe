package app

import (
	"context"
	"strings"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/textinput"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"

	"lifewheel/internal/chart"
	"lifewheel/internal/logging"
	"lifewheel/internal/report"
	"lifewheel/internal/wheel"
)

const (
	defaultContentWidth        = 80
	defaultContentHeight       = 24
	minChartWidth              = 30
	minChartHeight             = 11
	maxChartHeight             = 21
	scoreLabelWidth            = 18
	labelCharLimit             = 40
	microActionCharLimit       = 160
	defaultReflectionMinHeight = 3
	defaultReflectionMaxHeight = 8
	chromeHeight               = 8
)

type Options struct {
	Controller  *wheel.Controller
	Exporter    report.Exporter
	Clipboard   report.Clipboard
	Keybindings *Keybindings
	Logger      logging.Logger

	ReflectionMinHeight int
	ReflectionMaxHeight int

	// StartupWarnings are shown as toasts, one after another, once the UI is up.
	StartupWarnings []string
}

type Model struct {
	ctx      context.Context
	ctrl     *wheel.Controller
	exporter report.Exporter
	copyText func(string) (report.ClipboardMethod, error)
	logger   logging.Logger

	keybindings *Keybindings
	help        *helpBar
	confirm     *ConfirmController
	chart       *chart.Terminal
	markdown    *summaryRenderer

	width  int
	height int

	// step is the wizard step the widgets were last synced to.
	step   wheel.Step
	focus  int
	resync bool

	labels      []textinput.Model
	reflection  textarea.Model
	what        textinput.Model
	when        textinput.Model
	summary     viewport.Model
	summaryText string

	reflectionMinHeight int
	reflectionMaxHeight int

	exporting  bool
	lastExport report.Result

	status string
	toasts *toastQueue
}

func NewModel(opts Options) *Model {
	ctrl := opts.Controller
	if ctrl == nil {
		ctrl = wheel.NewController(wheel.Options{})
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	minHeight, maxHeight := opts.ReflectionMinHeight, opts.ReflectionMaxHeight
	if minHeight <= 0 {
		minHeight = defaultReflectionMinHeight
	}
	if maxHeight < minHeight {
		maxHeight = max(minHeight, defaultReflectionMaxHeight)
	}
	m := &Model{
		ctx:                 context.Background(),
		ctrl:                ctrl,
		exporter:            opts.Exporter,
		copyText:            opts.Clipboard.Copy,
		logger:              logger,
		confirm:             NewConfirmController(),
		chart:               chart.NewTerminal(),
		markdown:            newSummaryRenderer(),
		toasts:              newToastQueue(),
		width:               defaultContentWidth,
		height:              defaultContentHeight,
		step:                ctrl.Step(),
		reflectionMinHeight: minHeight,
		reflectionMaxHeight: maxHeight,
	}
	m.reflection = newReflectionInput(minHeight, maxHeight)
	m.what = newTextInput("What will you do?", microActionCharLimit)
	m.when = newTextInput("When and where?", microActionCharLimit)
	m.summary = viewport.New(viewport.WithWidth(defaultContentWidth), viewport.WithHeight(defaultContentHeight-chromeHeight))
	m.applyKeybindings(opts.Keybindings)

	ctrl.Subscribe(wheel.ObserverFunc(m.stateChanged))
	ctrl.Subscribe(newLogObserver(logger))

	m.resize(m.width, m.height)
	m.syncWidgets(true)
	for _, warning := range opts.StartupWarnings {
		m.enqueueStartupToast(toastLevelWarning, warning)
	}
	m.enqueueKeybindingConflictToasts(DetectKeybindingConflicts(m.keybindings))
	return m
}

// Run drives the wizard until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options, programOpts ...tea.ProgramOption) error {
	model := NewModel(opts)
	model.ctx = ctx
	model.logger.Info("ui_started", logging.F("step", model.ctrl.Step()), logging.F("policy", model.ctrl.Policy()))
	programOpts = append([]tea.ProgramOption{tea.WithContext(ctx)}, programOpts...)
	p := tea.NewProgram(model, programOpts...)
	_, err := p.Run()
	model.chart.Release()
	model.logger.Info("ui_stopped", logging.F("step", model.ctrl.Step()))
	return err
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(tea.RequestBackgroundColor, m.applyFocus(), m.toastExpiryCmd())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.BackgroundColorMsg:
		if m.markdown.SetDark(msg.IsDark()) && m.step == wheel.StepSummary {
			m.refreshSummary()
		}
		return m, nil
	case tea.KeyPressMsg:
		return m, m.handleKey(msg)
	case tea.PasteMsg:
		return m, m.handlePaste(msg)
	case tea.MouseClickMsg:
		return m, m.handleMouse(msg)
	case exportResultMsg:
		return m, m.handleExportResult(msg)
	case clipboardResultMsg:
		return m, m.handleClipboardResult(msg)
	case toastExpiredMsg:
		return m, m.handleToastExpired()
	}
	return m, m.updateFocusedInput(msg)
}

func (m *Model) View() tea.View {
	view := tea.NewView(m.render())
	view.AltScreen = true
	view.MouseMode = tea.MouseModeCellMotion
	view.WindowTitle = wheel.SummaryTitle
	return view
}

func (m *Model) resize(width, height int) {
	if width <= 0 {
		width = defaultContentWidth
	}
	if height <= 0 {
		height = defaultContentHeight
	}
	m.width, m.height = width, height
	inputWidth := max(10, min(width-8, 60))
	for i := range m.labels {
		m.labels[i].SetWidth(inputWidth)
	}
	m.what.SetWidth(inputWidth)
	m.when.SetWidth(inputWidth)
	m.reflection.SetWidth(max(10, width-6))
	m.summary.SetWidth(width)
	m.summary.SetHeight(max(3, height-chromeHeight))
	if m.step == wheel.StepSummary {
		m.refreshSummary()
	}
}

// stateChanged records which widget state must be rebuilt after a command.
func (m *Model) stateChanged(cmd wheel.Command, before, after wheel.State) {
	if before.Step != after.Step || len(before.Dimensions) != len(after.Dimensions) {
		m.resync = true
	}
	switch cmd.(type) {
	case wheel.Restart, wheel.Patch:
		m.resync = true
	}
}

// dispatch sends cmd to the controller and resyncs the widgets when the
// change reaches beyond the focused field.
func (m *Model) dispatch(cmd wheel.Command) tea.Cmd {
	if err := m.ctrl.Dispatch(cmd); err != nil {
		m.logger.Debug("command_rejected", logging.F("command", cmd.Kind()), logging.F("error", err))
		m.showWarningToast(m.rejectionMessage(err))
		return m.toastExpiryCmd()
	}
	if !m.resync {
		return nil
	}
	m.resync = false
	return m.syncWidgets(m.step != m.ctrl.Step())
}

func (m *Model) rejectionMessage(err error) string {
	view := m.ctrl.View()
	switch {
	case view.Warning != "":
		return view.Warning
	case strings.TrimSpace(err.Error()) != "":
		return err.Error()
	default:
		return "That change is not allowed here."
	}
}

// syncWidgets rebuilds every input from the controller snapshot. Entering a
// new step drops the cached chart drawing and resets focus.
func (m *Model) syncWidgets(stepChanged bool) tea.Cmd {
	snap := m.ctrl.Snapshot()
	if stepChanged {
		m.chart.Release()
		m.focus = 0
		m.step = snap.Step
	}
	m.labels = m.labels[:0]
	for _, dim := range snap.Dimensions {
		input := newTextInput("Dimension name", labelCharLimit)
		input.SetWidth(max(10, min(m.width-8, 60)))
		input.SetValue(dim.Label)
		m.labels = append(m.labels, input)
	}
	view := wheel.Describe(snap, m.ctrl.Policy())
	m.reflection.SetValue(snap.Reflections.Get(view.Reflection))
	m.fitReflection()
	m.what.SetValue(snap.MicroAction.What)
	m.when.SetValue(snap.MicroAction.When)
	if snap.Step == wheel.StepSummary {
		m.refreshSummary()
		m.summary.GotoTop()
	}
	m.focus = clampFocus(m.focus, m.focusCount())
	return m.applyFocus()
}

func (m *Model) refreshSummary() {
	snap := m.ctrl.Snapshot()
	doc := report.Document{
		Title:   wheel.SummaryTitle,
		Quote:   wheel.SummaryQuote,
		Summary: wheel.Summarize(snap),
	}
	width := max(20, m.width-2)
	var b strings.Builder
	if plot := m.chart.Render(chart.ForState(snap, wheel.ChartComparison), min(width, 72), maxChartHeight); plot != "" {
		b.WriteString(plot)
		b.WriteString("\n\n")
	}
	b.WriteString(m.markdown.Render(report.Markdown(doc), width))
	m.summaryText = b.String()
	m.summary.SetContent(m.summaryText)
}

func newTextInput(placeholder string, limit int) textinput.Model {
	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = placeholder
	input.CharLimit = limit
	return input
}

func newReflectionInput(minHeight, maxHeight int) textarea.Model {
	input := textarea.New()
	input.Placeholder = "Write freely. This stays on your machine."
	input.ShowLineNumbers = false
	input.Prompt = ""
	input.MaxHeight = maxHeight
	input.SetHeight(minHeight)
	return input
}

// fitReflection grows the journaling area with its content.
func (m *Model) fitReflection() {
	lines := m.reflection.LineCount()
	m.reflection.SetHeight(max(m.reflectionMinHeight, min(lines, m.reflectionMaxHeight)))
}

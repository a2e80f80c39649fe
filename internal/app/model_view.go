package app

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"lifewheel/internal/chart"
	"lifewheel/internal/wheel"
)

var stepNames = [wheel.StepCount]string{"Setup", "Reality", "Vision", "Leverage", "Action", "Summary"}

func (m *Model) render() string {
	snap := m.ctrl.Snapshot()
	view := wheel.Describe(snap, m.ctrl.Policy())
	width := m.width

	lines := []string{m.renderHeader(view), ""}
	if view.Intro != "" {
		lines = append(lines, introStyle.Render(wrapText(view.Intro, width)), "")
	}
	lines = append(lines, m.renderBody(snap, view))
	if view.Warning != "" {
		lines = append(lines, "", warningStyle.Render(wrapText(view.Warning, width)))
	}
	lines = append(lines, "", m.renderNav(view))
	if toast := m.toasts.line(width); toast != "" {
		lines = append(lines, toast)
	}
	if help := m.help.Render(m, width); help != "" {
		lines = append(lines, helpStyle.Render(help))
	}
	out := padLines(strings.Split(strings.Join(lines, "\n"), "\n"), width)
	if m.confirm.IsOpen() {
		block, y := m.confirm.View(width, m.height)
		out = overlayBlock(out, block, y)
	}
	return out
}

func (m *Model) renderHeader(view wheel.StepView) string {
	parts := make([]string, 0, wheel.StepCount)
	for i, name := range stepNames {
		step := wheel.Step(i)
		switch {
		case step == view.Step:
			parts = append(parts, stepActiveStyle.Render(" "+name+" "))
		case step < view.Step:
			parts = append(parts, stepDoneStyle.Render("✓ "+name))
		default:
			parts = append(parts, stepPendingStyle.Render(name))
		}
	}
	title := headerStyle.Render(fmt.Sprintf("%s · %d/%d", view.Title, int(view.Step)+1, wheel.StepCount))
	return title + "\n" + truncateToWidth(strings.Join(parts, " › "), m.width)
}

func (m *Model) renderNav(view wheel.StepView) string {
	back := "← " + view.RetreatLabel
	next := view.AdvanceLabel + " →"
	if view.CanRetreat {
		back = buttonStyle.Render(back)
	} else {
		back = buttonDisabledStyle.Render(back)
	}
	if view.Step == wheel.StepSummary {
		actions := []string{buttonStyle.Render("Export"), buttonStyle.Render("Copy"), buttonStyle.Render("Restart")}
		nav := back + "   " + strings.Join(actions, "  ")
		if m.exporting {
			nav += "  " + statusStyle.Render("exporting…")
		} else if m.lastExport.DocumentPath != "" {
			nav += "  " + statusStyle.Render(truncateToWidth(m.status, max(10, m.width/2)))
		}
		return nav
	}
	if view.CanAdvance {
		next = buttonStyle.Render(next)
	} else {
		next = buttonDisabledStyle.Render(next)
	}
	return back + "   " + next
}

func (m *Model) renderBody(snap wheel.State, view wheel.StepView) string {
	switch view.Step {
	case wheel.StepSetup:
		return m.renderSetup(snap)
	case wheel.StepReality, wheel.StepVision:
		return m.withReflection(view, m.withChart(snap, view.Chart, m.renderScores(snap, view.Scores)))
	case wheel.StepLeverage:
		return m.withReflection(view, m.withChart(snap, view.Chart, m.renderLeverage(snap)))
	case wheel.StepMicroAction:
		return m.renderMicroAction(snap, view)
	case wheel.StepSummary:
		return m.summary.View()
	}
	return ""
}

func (m *Model) marker(pos int) string {
	if m.focus == pos {
		return focusMarkerStyle.Render("› ")
	}
	return "  "
}

func (m *Model) renderSetup(snap wheel.State) string {
	rows := make([]string, 0, len(m.labels)+2)
	for i := range m.labels {
		rows = append(rows, fmt.Sprintf("%s%2d. %s", m.marker(i), i+1, m.labels[i].View()))
	}
	rows = append(rows, "", statusStyle.Render(fmt.Sprintf("%d dimensions (%d to %d)", len(snap.Dimensions), wheel.MinDimensions, wheel.MaxDimensions)))
	return strings.Join(rows, "\n")
}

func (m *Model) renderScores(snap wheel.State, kind wheel.ScoreKind) string {
	rows := make([]string, 0, len(snap.Dimensions))
	for i, dim := range snap.Dimensions {
		score, style := dim.Current, scoreFilledStyle
		if kind == wheel.ScoresVision {
			score, style = dim.Vision, visionFilledStyle
		}
		row := m.marker(i) + padToWidth(truncateToWidth(dim.Label, scoreLabelWidth), scoreLabelWidth) + " " + scoreBar(score, style) + fmt.Sprintf(" %2d", score)
		if kind == wheel.ScoresVision {
			row += statusStyle.Render(fmt.Sprintf("  now %d", dim.Current))
		}
		rows = append(rows, row)
	}
	return strings.Join(rows, "\n")
}

func scoreBar(score int, filled lipgloss.Style) string {
	score = clampScore(score)
	return filled.Render(strings.Repeat("■", score)) + scoreEmptyStyle.Render(strings.Repeat("·", wheel.MaxScore-score))
}

func (m *Model) renderLeverage(snap wheel.State) string {
	chosen := snap.LeverageIndex()
	rows := make([]string, 0, len(snap.Dimensions))
	for i, dim := range snap.Dimensions {
		radio := "( )"
		if i == chosen {
			radio = "(•)"
		}
		gap := dim.Vision - dim.Current
		gapText := fmt.Sprintf("%+d", gap)
		switch {
		case gap > 0:
			gapText = gapPositiveStyle.Render(gapText)
		case gap < 0:
			gapText = gapNegativeStyle.Render(gapText)
		}
		row := fmt.Sprintf("%s%s %s %2d → %2d  %s", m.marker(i), radio, padToWidth(truncateToWidth(dim.Label, scoreLabelWidth), scoreLabelWidth), dim.Current, dim.Vision, gapText)
		if i == chosen {
			row = selectedStyle.Render(row)
		}
		rows = append(rows, row)
	}
	return strings.Join(rows, "\n")
}

// withChart places the radar chart to the right of body when the terminal is
// wide enough, and drops it otherwise.
func (m *Model) withChart(snap wheel.State, kind wheel.ChartKind, body string) string {
	if kind == wheel.ChartNone {
		return body
	}
	chartWidth := m.width - lipgloss.Width(body) - 4
	if chartWidth < minChartWidth {
		return body
	}
	chartHeight := max(minChartHeight, min(maxChartHeight, lipgloss.Height(body)+4))
	plot := m.chart.Render(chart.ForState(snap, kind), min(chartWidth, 64), chartHeight)
	if plot == "" {
		return body
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, body, "    ", plot)
}

func (m *Model) withReflection(view wheel.StepView, body string) string {
	parts := []string{body, ""}
	parts = append(parts, m.renderPrompts(view)...)
	title := "Reflection"
	if target, _ := m.focusTargetAt(m.focus); target == focusReflection {
		title = focusMarkerStyle.Render("› Reflection")
	}
	parts = append(parts, title, reflectionFrameStyle.Render(m.reflection.View()))
	return strings.Join(parts, "\n")
}

func (m *Model) renderPrompts(view wheel.StepView) []string {
	var out []string
	for _, prompt := range view.Prompts {
		out = append(out, promptStyle.Render(wrapText("• "+prompt, m.width)))
	}
	for _, example := range view.Examples {
		out = append(out, exampleStyle.Render(wrapText("e.g. "+example, m.width)))
	}
	return out
}

func (m *Model) renderMicroAction(snap wheel.State, view wheel.StepView) string {
	rows := []string{
		m.marker(microFocusWhat) + "What   " + m.what.View(),
		m.marker(microFocusWhen) + "When   " + m.when.View(),
		"",
		m.marker(microFocusCheck1) + checkboxView(snap.MicroAction.Check1) + " " + wheel.MicroActionChecks[0],
		m.marker(microFocusCheck2) + checkboxView(snap.MicroAction.Check2) + " " + wheel.MicroActionChecks[1],
	}
	if prompts := m.renderPrompts(view); len(prompts) > 0 {
		rows = append(rows, "")
		rows = append(rows, prompts...)
	}
	return strings.Join(rows, "\n")
}

func checkboxView(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}

// overlayBlock replaces the lines of base starting at row y with block.
func overlayBlock(base, block string, y int) string {
	baseLines := strings.Split(base, "\n")
	for i, line := range strings.Split(block, "\n") {
		row := y + i
		for row >= len(baseLines) {
			baseLines = append(baseLines, "")
		}
		baseLines[row] = line
	}
	return strings.Join(baseLines, "\n")
}

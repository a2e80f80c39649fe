package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"

	"lifewheel/internal/logging"
	"lifewheel/internal/report"
	"lifewheel/internal/wheel"
)

type exportResultMsg struct {
	result report.Result
	err    error
}

type clipboardResultMsg struct {
	method report.ClipboardMethod
	err    error
}

// exportCmd writes the report for a snapshot off the event loop.
func exportCmd(ctx context.Context, exporter report.Exporter, snap wheel.State, policy wheel.MicroActionPolicy) tea.Cmd {
	return func() tea.Msg {
		result, err := exporter.Export(ctx, snap, policy)
		return exportResultMsg{result: result, err: err}
	}
}

func copyCmd(copyText func(string) (report.ClipboardMethod, error), text string) tea.Cmd {
	return func() tea.Msg {
		method, err := copyText(text)
		return clipboardResultMsg{method: method, err: err}
	}
}

func (m *Model) startExport() tea.Cmd {
	if m.exporting {
		m.showInfoToast("Export already running.")
		return m.toastExpiryCmd()
	}
	if strings.TrimSpace(m.exporter.Dir) == "" {
		m.showErrorToast("No export directory configured.")
		return m.toastExpiryCmd()
	}
	m.exporting = true
	m.status = "exporting report"
	return exportCmd(m.ctx, m.exporter, m.ctrl.Snapshot(), m.ctrl.Policy())
}

func (m *Model) handleExportResult(msg exportResultMsg) tea.Cmd {
	m.exporting = false
	if msg.err != nil {
		m.status = "export failed"
		m.logger.Error("export_failed", logging.F("error", msg.err))
		m.showErrorToast("Export failed: " + msg.err.Error())
		return m.toastExpiryCmd()
	}
	m.lastExport = msg.result
	paths := msg.result.Paths()
	names := make([]string, 0, len(paths))
	for _, path := range paths {
		names = append(names, filepath.Base(path))
	}
	m.status = "saved to " + filepath.Dir(msg.result.DocumentPath)
	m.logger.Info("export_written", logging.F("id", msg.result.ID), logging.F("paths", paths))
	m.showInfoToast("Saved " + strings.Join(names, ", "))
	return m.toastExpiryCmd()
}

func (m *Model) startCopy() tea.Cmd {
	if m.copyText == nil {
		return nil
	}
	doc := report.NewDocument(m.ctrl.Snapshot(), m.ctrl.Policy())
	return copyCmd(m.copyText, report.Markdown(doc))
}

func (m *Model) handleClipboardResult(msg clipboardResultMsg) tea.Cmd {
	if msg.err != nil {
		m.logger.Warn("copy_failed", logging.F("error", msg.err))
		m.showErrorToast("Copy failed: " + msg.err.Error())
		return m.toastExpiryCmd()
	}
	m.logger.Info("summary_copied", logging.F("method", msg.method))
	text := "Summary copied to clipboard."
	if msg.method == report.ClipboardOSC52 {
		text = fmt.Sprintf("Summary copied to clipboard (%s).", msg.method)
	}
	m.showInfoToast(text)
	return m.toastExpiryCmd()
}

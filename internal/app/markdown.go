package app

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	glamouransi "github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	xansi "github.com/charmbracelet/x/ansi"
)

// summaryRenderer turns the markdown report into terminal text with glamour.
// One glamour renderer is built per width and background and reused.
type summaryRenderer struct {
	mu        sync.Mutex
	dark      bool
	renderers map[summaryRendererKey]*glamour.TermRenderer
}

type summaryRendererKey struct {
	width int
	dark  bool
}

func newSummaryRenderer() *summaryRenderer {
	return &summaryRenderer{dark: true, renderers: map[summaryRendererKey]*glamour.TermRenderer{}}
}

// SetDark switches the palette and reports whether it changed.
func (r *summaryRenderer) SetDark(dark bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.dark == dark {
		return false
	}
	r.dark = dark
	return true
}

func (r *summaryRenderer) Dark() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dark
}

// Render returns markdown laid out in width columns. The plain source is
// returned when glamour cannot render it.
func (r *summaryRenderer) Render(markdown string, width int) string {
	markdown = strings.TrimRight(markdown, "\n")
	if markdown == "" {
		return ""
	}
	if width <= 0 {
		width = defaultContentWidth
	}
	tr, err := r.renderer(width)
	if err != nil {
		return xansi.Hardwrap(markdown, width, true)
	}
	out, err := tr.Render(markdown)
	if err != nil {
		return xansi.Hardwrap(markdown, width, true)
	}
	return strings.TrimRight(xansi.Hardwrap(strings.TrimRight(out, "\n"), width, true), "\n")
}

func (r *summaryRenderer) renderer(width int) (*glamour.TermRenderer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := summaryRendererKey{width: width, dark: r.dark}
	if tr := r.renderers[key]; tr != nil {
		return tr, nil
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStyles(summaryStyle(r.dark)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	r.renderers[key] = tr
	return tr, nil
}

func summaryStyle(dark bool) glamouransi.StyleConfig {
	style := styles.LightStyleConfig
	if dark {
		style = styles.DarkStyleConfig
	}
	// The summary pane owns its spacing.
	style.Document.StylePrimitive.BlockPrefix = ""
	style.Document.StylePrimitive.BlockSuffix = ""
	margin := uint(0)
	style.Document.Margin = &margin
	faint := true
	quoteColor := "245"
	style.BlockQuote.StylePrimitive.Faint = &faint
	style.BlockQuote.StylePrimitive.Color = &quoteColor
	return style
}

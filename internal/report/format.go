package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"lifewheel/internal/wheel"
)

type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatTOML     Format = "toml"
	FormatYAML     Format = "yaml"
)

func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported report format %q", raw)
	}
}

func (f Format) Ext() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatTOML:
		return ".toml"
	case FormatYAML:
		return ".yaml"
	default:
		return ".md"
	}
}

func Encode(doc Document, format Format) ([]byte, error) {
	switch format {
	case FormatMarkdown, "":
		return []byte(Markdown(doc)), nil
	case FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return append(data, '\n'), nil
	case FormatTOML:
		data, err := toml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("encode toml: %w", err)
		}
		return data, nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported report format %q", format)
	}
}

// Markdown renders the document for reading, printing and the clipboard.
func Markdown(doc Document) string {
	s := doc.Summary
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", doc.Title)
	fmt.Fprintf(&b, "> %s\n\n", doc.Quote)
	if !doc.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "_Created %s_\n\n", doc.CreatedAt.Format("2006-01-02 15:04 MST"))
	}

	b.WriteString("## Scores\n\n")
	b.WriteString("| Dimension | Current | Vision | Gap |\n")
	b.WriteString("|---|---:|---:|---:|\n")
	for _, dim := range s.Dimensions {
		label := escapeCell(dim.Label)
		if dim.Leverage {
			label = "**" + label + "**"
		}
		fmt.Fprintf(&b, "| %s | %d | %d | %s |\n", label, dim.Current, dim.Vision, signed(dim.Gap))
	}
	if len(s.Dimensions) > 0 {
		fmt.Fprintf(&b, "| _Average_ | %.1f | %.1f | |\n", s.AverageCurrent, s.AverageVision)
	}
	b.WriteString("\n")

	b.WriteString("## Core leverage point\n\n")
	fmt.Fprintf(&b, "**%s**\n\n", s.LeveragePoint)

	b.WriteString("## Commitment plan\n\n")
	fmt.Fprintf(&b, "- **My action:** %s\n", s.Commitment.What)
	fmt.Fprintf(&b, "- **When and where:** %s\n", s.Commitment.When)
	fmt.Fprintf(&b, "- %s %s\n", checkbox(s.Commitment.Check1), wheel.MicroActionChecks[0])
	fmt.Fprintf(&b, "- %s %s\n\n", checkbox(s.Commitment.Check2), wheel.MicroActionChecks[1])

	b.WriteString("## Reflections\n\n")
	writeReflection(&b, "Reality", s.Reflections.Reality)
	writeReflection(&b, "Vision", s.Reflections.Vision)
	writeReflection(&b, "Leverage", s.Reflections.Leverage)
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func writeReflection(b *strings.Builder, title, text string) {
	fmt.Fprintf(b, "### %s\n\n", title)
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		fmt.Fprintf(b, "> %s\n", strings.TrimRight(line, " \t\r"))
	}
	b.WriteString("\n")
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

func signed(v int) string {
	if v > 0 {
		return fmt.Sprintf("+%d", v)
	}
	return fmt.Sprintf("%d", v)
}

func checkbox(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}

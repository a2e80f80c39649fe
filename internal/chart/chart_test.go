package chart

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/google/go-cmp/cmp"

	"lifewheel/internal/wheel"
)

func sampleChart() Chart {
	s := wheel.NewState(wheel.DefaultDimensionLabels)
	for i := range s.Dimensions {
		s.Dimensions[i].Current = i + 2
		s.Dimensions[i].Vision = 9
	}
	return ForState(s, wheel.ChartComparison)
}

func TestForStateKinds(t *testing.T) {
	s := wheel.NewState(wheel.DefaultDimensionLabels)
	if c := ForState(s, wheel.ChartNone); !c.Empty() {
		t.Fatalf("expected empty chart, got %+v", c)
	}
	current := ForState(s, wheel.ChartCurrent)
	if len(current.Datasets) != 1 || current.ShowLegend() {
		t.Fatalf("expected one dataset without legend, got %+v", current)
	}
	if current.Datasets[0].Color != CurrentColor || !current.Datasets[0].Fill {
		t.Fatalf("unexpected current dataset: %+v", current.Datasets[0])
	}

	comparison := sampleChart()
	if !comparison.ShowLegend() {
		t.Fatalf("expected legend for comparison chart")
	}
	vision := comparison.Datasets[1]
	if vision.Fill || !vision.Dashed() || vision.Color != VisionColor {
		t.Fatalf("unexpected vision dataset: %+v", vision)
	}
	if diff := cmp.Diff(wheel.DefaultDimensionLabels, comparison.Labels); diff != "" {
		t.Fatalf("unexpected labels (-want +got):\n%s", diff)
	}
}

func TestFingerprintTracksContent(t *testing.T) {
	a := sampleChart()
	b := sampleChart()
	if a.Fingerprint() != b.Fingerprint() {
		t.Fatalf("expected equal fingerprints for equal charts")
	}
	b.Datasets[0].Data[3] = 0
	if a.Fingerprint() == b.Fingerprint() {
		t.Fatalf("expected score change to change fingerprint")
	}
	c := sampleChart()
	c.Labels[0] = "Work"
	if a.Fingerprint() == c.Fingerprint() {
		t.Fatalf("expected label change to change fingerprint")
	}
}

func TestTerminalRenderCachesUntilChange(t *testing.T) {
	term := NewTerminal()
	c := sampleChart()
	first := term.Render(c, 60, 20)
	if first == "" {
		t.Fatalf("expected drawing")
	}
	if again := term.Render(sampleChart(), 60, 20); again != first || term.Draws() != 1 {
		t.Fatalf("expected cached drawing, draws=%d", term.Draws())
	}

	c.Datasets[0].Data[0] = 10
	if term.Render(c, 60, 20) == first || term.Draws() != 2 {
		t.Fatalf("expected redraw after data change, draws=%d", term.Draws())
	}
	term.Render(c, 70, 20)
	if term.Draws() != 3 {
		t.Fatalf("expected redraw after resize, draws=%d", term.Draws())
	}

	term.Release()
	if term.Cached() {
		t.Fatalf("expected release to drop the drawing")
	}
	term.Render(c, 70, 20)
	if term.Draws() != 4 {
		t.Fatalf("expected redraw after release, draws=%d", term.Draws())
	}
}

func TestTerminalDrawingShape(t *testing.T) {
	out := ansi.Strip(drawTerminal(sampleChart(), 60, 20))
	lines := strings.Split(out, "\n")
	if len(lines) != 20 {
		t.Fatalf("expected 20 rows, got %d", len(lines))
	}
	for i, line := range lines {
		if w := ansi.StringWidth(line); w != 60 {
			t.Fatalf("row %d: expected width 60, got %d", i, w)
		}
	}
	for _, label := range []string{"Career", "Health", "Spirit"} {
		if !strings.Contains(out, label) {
			t.Fatalf("expected label %q in drawing:\n%s", label, out)
		}
	}
	for _, glyph := range []string{string(glyphFill), string(glyphVertex), string(glyphGrid)} {
		if !strings.Contains(out, glyph) {
			t.Fatalf("expected glyph %q in drawing:\n%s", glyph, out)
		}
	}
	legend := lines[len(lines)-1]
	if !strings.Contains(legend, "Current") || !strings.Contains(legend, "Vision") || !strings.Contains(legend, "╍") {
		t.Fatalf("unexpected legend row %q", legend)
	}
}

func TestTerminalSingleDatasetHasNoLegend(t *testing.T) {
	s := wheel.NewState(wheel.DefaultDimensionLabels)
	out := ansi.Strip(drawTerminal(ForState(s, wheel.ChartCurrent), 60, 20))
	if strings.Contains(out, "Current") {
		t.Fatalf("expected no legend for a single dataset:\n%s", out)
	}
}

func TestTerminalWideLabels(t *testing.T) {
	labels := []string{"事业发展", "家庭亲密", "身体健康", "财务状况", "人际关系", "个人成长"}
	s := wheel.NewState(labels)
	out := ansi.Strip(drawTerminal(ForState(s, wheel.ChartCurrent), 60, 20))
	for i, line := range strings.Split(out, "\n") {
		if w := ansi.StringWidth(line); w != 60 {
			t.Fatalf("row %d: expected width 60, got %d", i, w)
		}
	}
	if !strings.Contains(out, "身体健康") {
		t.Fatalf("expected wide label in drawing:\n%s", out)
	}
}

func TestTerminalTooSmall(t *testing.T) {
	if out := drawTerminal(sampleChart(), 8, 4); out != "" {
		t.Fatalf("expected empty drawing for tiny area, got %q", out)
	}
	if out := drawTerminal(Chart{}, 60, 20); out != "" {
		t.Fatalf("expected empty drawing for empty chart, got %q", out)
	}
}

func TestDashRuns(t *testing.T) {
	runs := dashRuns([]int{5, 5})
	if diff := cmp.Diff([]int{2, 2}, runs); diff != "" {
		t.Fatalf("unexpected runs (-want +got):\n%s", diff)
	}
	var got []bool
	for step := 0; step < 6; step++ {
		got = append(got, dashOn(runs, step))
	}
	if diff := cmp.Diff([]bool{true, true, false, false, true, true}, got); diff != "" {
		t.Fatalf("unexpected dash (-want +got):\n%s", diff)
	}
	if !dashOn(nil, 7) {
		t.Fatalf("expected solid line without pattern")
	}
}

func TestInsidePolygon(t *testing.T) {
	square := []point{{0, 0}, {4, 0}, {4, 4}, {0, 4}}
	if !insidePolygon(square, point{2, 2}) {
		t.Fatalf("expected center inside")
	}
	if insidePolygon(square, point{5, 2}) {
		t.Fatalf("expected outside point")
	}
}

func TestImageRenderSVG(t *testing.T) {
	c := sampleChart()
	c.Labels[0] = "Work & <play>"
	var buf bytes.Buffer
	if err := NewImage().Render(&buf, c, FormatSVG); err != nil {
		t.Fatalf("Render: %v", err)
	}
	svg := buf.String()
	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatalf("unexpected svg envelope")
	}
	if !strings.Contains(svg, "Work &amp; &lt;play&gt;") {
		t.Fatalf("expected escaped label")
	}
	if !strings.Contains(svg, "stroke-dasharray") {
		t.Fatalf("expected dashed vision outline")
	}
}

func TestImageRenderPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := NewImage().Render(&buf, sampleChart(), FormatPNG); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Fatalf("expected png signature")
	}
}

func TestImageRenderErrors(t *testing.T) {
	var buf bytes.Buffer
	if err := NewImage().Render(&buf, Chart{}, FormatSVG); err == nil {
		t.Fatalf("expected error for empty chart")
	}
	if err := NewImage().Render(&buf, sampleChart(), ImageFormat("gif")); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
	if _, err := ParseImageFormat("jpeg"); err == nil {
		t.Fatalf("expected parse error")
	}
	if f, err := ParseImageFormat(" PNG "); err != nil || f != FormatPNG {
		t.Fatalf("expected png, got %q %v", f, err)
	}
}

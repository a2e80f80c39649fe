package chart

import (
	"fmt"
	"html"
	"io"
	"math"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

type ImageFormat string

const (
	FormatSVG ImageFormat = "svg"
	FormatPNG ImageFormat = "png"
)

func ParseImageFormat(raw string) (ImageFormat, error) {
	switch ImageFormat(strings.ToLower(strings.TrimSpace(raw))) {
	case FormatSVG, "":
		return FormatSVG, nil
	case FormatPNG:
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("unsupported chart image format %q", raw)
	}
}

func (f ImageFormat) Ext() string {
	return "." + string(f)
}

// fillAlpha matches a 0x44 alpha suffix on the series color.
const fillAlpha = 0x44

// Image draws radar charts as SVG or PNG files.
type Image struct {
	Width    int
	Height   int
	FontSize float64
}

func NewImage() Image {
	return Image{Width: 640, Height: 560, FontSize: 11}
}

func (im Image) Render(w io.Writer, c Chart, format ImageFormat) error {
	if c.Empty() {
		return fmt.Errorf("chart has no data")
	}
	width, height := im.Width, im.Height
	if width <= 0 || height <= 0 {
		def := NewImage()
		width, height = def.Width, def.Height
	}
	fontSize := im.FontSize
	if fontSize <= 0 {
		fontSize = 11
	}

	var (
		r   gochart.Renderer
		err error
	)
	switch format {
	case FormatSVG:
		r, err = gochart.SVG(width, height)
	case FormatPNG:
		r, err = gochart.PNG(width, height)
	default:
		return fmt.Errorf("unsupported chart image format %q", format)
	}
	if err != nil {
		return fmt.Errorf("create %s renderer: %w", format, err)
	}
	font, err := gochart.GetDefaultFont()
	if err != nil {
		return fmt.Errorf("load chart font: %w", err)
	}
	r.SetFont(font)
	r.SetFontSize(fontSize)

	legendHeight := 0
	if c.ShowLegend() {
		legendHeight = int(fontSize * 3)
	}
	plotHeight := height - legendHeight
	cx := float64(width) / 2
	cy := float64(plotHeight) / 2
	radius := math.Min(float64(width), float64(plotHeight))/2 - fontSize*5
	if radius < 10 {
		return fmt.Errorf("chart size %dx%d too small", width, height)
	}
	n := len(c.Labels)
	at := func(i int, value float64) (int, int) {
		theta := axisAngle(i, n)
		scale := value / ScaleMax
		return int(math.Round(cx + math.Sin(theta)*radius*scale)),
			int(math.Round(cy - math.Cos(theta)*radius*scale))
	}

	r.SetFillColor(drawing.ColorWhite)
	r.MoveTo(0, 0)
	r.LineTo(width, 0)
	r.LineTo(width, height)
	r.LineTo(0, height)
	r.Close()
	r.Fill()

	grid := hexColor(GridColor).WithAlpha(0x66)
	// The SVG backend fills every path, so stroke-only paths need a clear fill.
	r.SetFillColor(drawing.ColorTransparent)
	r.SetStrokeColor(grid)
	r.SetStrokeWidth(1)
	for ring := ScaleMin + 2; ring <= ScaleMax; ring += 2 {
		for i := 0; i <= n; i++ {
			x, y := at(i%n, float64(ring))
			if i == 0 {
				r.MoveTo(x, y)
			} else {
				r.LineTo(x, y)
			}
		}
		r.Stroke()
	}
	for i := 0; i < n; i++ {
		x, y := at(i, ScaleMax)
		r.MoveTo(int(cx), int(cy))
		r.LineTo(x, y)
		r.Stroke()
	}

	for _, ds := range c.Datasets {
		color := hexColor(ds.Color)
		r.SetStrokeColor(color)
		r.SetStrokeWidth(2)
		if ds.Dashed() {
			dash := make([]float64, len(ds.DashPattern))
			for i, v := range ds.DashPattern {
				dash[i] = float64(v)
			}
			r.SetStrokeDashArray(dash)
		} else {
			r.SetStrokeDashArray(nil)
		}
		for i := 0; i <= n; i++ {
			x, y := at(i%n, valueAt(ds, i%n))
			if i == 0 {
				r.MoveTo(x, y)
			} else {
				r.LineTo(x, y)
			}
		}
		r.Close()
		if ds.Fill {
			r.SetFillColor(color.WithAlpha(fillAlpha))
			r.FillStroke()
		} else {
			r.SetFillColor(drawing.ColorTransparent)
			r.Stroke()
		}
		r.SetStrokeDashArray(nil)
		r.SetFillColor(color)
		for i := 0; i < n; i++ {
			x, y := at(i, valueAt(ds, i))
			r.Circle(3, x, y)
			r.FillStroke()
		}
	}

	r.SetFontColor(hexColor("#334155"))
	for i, label := range c.Labels {
		theta := axisAngle(i, n)
		x, y := at(i, ScaleMax+1.2)
		box := r.MeasureText(label)
		switch {
		case math.Sin(theta) > 0.3:
		case math.Sin(theta) < -0.3:
			x -= box.Width()
		default:
			x -= box.Width() / 2
		}
		if math.Cos(theta) < -0.3 {
			y += box.Height()
		}
		r.Text(im.escape(label, format), x, y)
	}

	if c.ShowLegend() {
		im.legend(r, c.Datasets, width, height-legendHeight/2, fontSize, format)
	}
	if err := r.Save(w); err != nil {
		return fmt.Errorf("write %s chart: %w", format, err)
	}
	return nil
}

func (im Image) legend(r gochart.Renderer, datasets []Dataset, width, baseline int, fontSize float64, format ImageFormat) {
	swatch := int(fontSize * 2)
	gap := int(fontSize * 2)
	total := 0
	for _, ds := range datasets {
		total += swatch + int(fontSize/2) + r.MeasureText(ds.Label).Width() + gap
	}
	total -= gap
	x := (width - total) / 2
	r.SetFillColor(drawing.ColorTransparent)
	for _, ds := range datasets {
		color := hexColor(ds.Color)
		r.SetStrokeColor(color)
		r.SetStrokeWidth(3)
		if ds.Dashed() {
			r.SetStrokeDashArray([]float64{4, 3})
		}
		mid := baseline - int(fontSize/3)
		r.MoveTo(x, mid)
		r.LineTo(x+swatch, mid)
		r.Stroke()
		r.SetStrokeDashArray(nil)
		x += swatch + int(fontSize/2)
		r.Text(im.escape(ds.Label, format), x, baseline)
		x += r.MeasureText(ds.Label).Width() + gap
	}
}

// escape guards SVG text nodes, which go-chart writes unescaped.
func (Image) escape(s string, format ImageFormat) string {
	if format == FormatSVG {
		return html.EscapeString(s)
	}
	return s
}

func hexColor(s string) drawing.Color {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 3 && len(hex) != 6 {
		return drawing.ColorBlack
	}
	return drawing.ColorFromHex(hex)
}

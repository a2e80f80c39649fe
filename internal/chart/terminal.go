package chart

import (
	"math"
	"strings"
	"sync"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
)

const (
	minTerminalWidth  = 16
	minTerminalHeight = 7
	// dashCellUnit converts dash pattern lengths to grid cells.
	dashCellUnit = 2.5
)

const (
	glyphGrid   = '·'
	glyphFill   = '░'
	glyphLine   = '•'
	glyphVertex = '●'
)

var gridRings = []float64{5, 10}

type renderKey struct {
	fingerprint uint64
	width       int
	height      int
}

// Terminal draws radar charts onto a character grid. The last drawing is kept
// until the chart or the size changes, or until Release is called.
type Terminal struct {
	mu     sync.Mutex
	key    renderKey
	cached string
	valid  bool
	draws  int
}

func NewTerminal() *Terminal {
	return &Terminal{}
}

// Render returns the chart drawn into width columns and height rows.
func (t *Terminal) Render(c Chart, width, height int) string {
	if t == nil {
		return drawTerminal(c, width, height)
	}
	key := renderKey{fingerprint: c.Fingerprint(), width: width, height: height}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.valid && t.key == key {
		return t.cached
	}
	t.cached = drawTerminal(c, width, height)
	t.key = key
	t.valid = true
	t.draws++
	return t.cached
}

// Release drops the cached drawing.
func (t *Terminal) Release() {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cached = ""
	t.valid = false
	t.key = renderKey{}
}

// Draws reports how many full redraws have happened.
func (t *Terminal) Draws() int {
	if t == nil {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.draws
}

func (t *Terminal) Cached() bool {
	if t == nil {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.valid
}

type point struct {
	x, y float64
}

type cell struct {
	r     rune
	color string
	// cont marks the second column of a wide rune.
	cont bool
}

type grid struct {
	w, h  int
	cells [][]cell
}

func newGrid(w, h int) *grid {
	cells := make([][]cell, h)
	for y := range cells {
		cells[y] = make([]cell, w)
	}
	return &grid{w: w, h: h, cells: cells}
}

func (g *grid) in(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.w && y < g.h
}

func (g *grid) set(x, y int, r rune, color string) {
	if !g.in(x, y) || g.cells[y][x].cont {
		return
	}
	g.clear(x, y)
	g.cells[y][x] = cell{r: r, color: color}
}

// clear empties the cell and whichever half of a wide rune it belongs to.
func (g *grid) clear(x, y int) {
	if !g.in(x, y) {
		return
	}
	if g.cells[y][x].cont && x > 0 {
		g.cells[y][x-1] = cell{}
	}
	if x+1 < g.w && g.cells[y][x+1].cont {
		g.cells[y][x+1] = cell{}
	}
	g.cells[y][x] = cell{}
}

func (g *grid) get(x, y int) rune {
	if !g.in(x, y) {
		return 0
	}
	return g.cells[y][x].r
}

func (g *grid) text(x, y int, s, color string) {
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if x+rw > g.w {
			return
		}
		if x >= 0 && g.in(x, y) {
			for i := 0; i < rw; i++ {
				g.clear(x+i, y)
			}
			g.cells[y][x] = cell{r: r, color: color}
			for i := 1; i < rw; i++ {
				g.cells[y][x+i] = cell{cont: true}
			}
		}
		x += rw
	}
}

// line draws from a to b. A non-empty dash alternates on and off runs measured
// in cells.
func (g *grid) line(a, b point, r rune, color string, dash []int) {
	x0, y0 := int(math.Round(a.x)), int(math.Round(a.y))
	x1, y1 := int(math.Round(b.x)), int(math.Round(b.y))
	runs := dashRuns(dash)
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	errAcc := dx + dy
	step := 0
	for {
		if dashOn(runs, step) {
			g.set(x0, y0, r, color)
		}
		step++
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * errAcc
		if e2 >= dy {
			errAcc += dy
			x0 += sx
		}
		if e2 <= dx {
			errAcc += dx
			y0 += sy
		}
	}
}

func (g *grid) String() string {
	styles := map[string]lipgloss.Style{}
	styleFor := func(color string) lipgloss.Style {
		style, ok := styles[color]
		if !ok {
			style = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
			styles[color] = style
		}
		return style
	}
	lines := make([]string, 0, g.h)
	for _, row := range g.cells {
		var line strings.Builder
		var run strings.Builder
		runColor := ""
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runColor == "" {
				line.WriteString(run.String())
			} else {
				line.WriteString(styleFor(runColor).Render(run.String()))
			}
			run.Reset()
		}
		for _, c := range row {
			if c.cont {
				continue
			}
			r, color := c.r, c.color
			if r == 0 {
				r, color = ' ', ""
			}
			if color != runColor {
				flush()
				runColor = color
			}
			run.WriteRune(r)
		}
		flush()
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

type layout struct {
	cx, cy float64
	rx, ry float64
	n      int
}

func (l layout) at(i int, value float64) point {
	theta := axisAngle(i, l.n)
	scale := value / ScaleMax
	return point{
		x: l.cx + math.Sin(theta)*l.rx*scale,
		y: l.cy - math.Cos(theta)*l.ry*scale,
	}
}

func (l layout) polygon(values func(i int) float64) []point {
	pts := make([]point, l.n)
	for i := range pts {
		pts[i] = l.at(i, values(i))
	}
	return pts
}

func drawTerminal(c Chart, width, height int) string {
	if c.Empty() || width < minTerminalWidth || height < minTerminalHeight {
		return ""
	}
	rows := height
	if c.ShowLegend() {
		rows--
	}
	labelWidth := 0
	for _, label := range c.Labels {
		labelWidth = max(labelWidth, runewidth.StringWidth(label))
	}
	labelWidth = min(labelWidth, max(4, width/4))

	ry := float64(rows-1)/2 - 1
	rx := math.Min(ry*2, float64(width)/2-float64(labelWidth)-2)
	if rx < 4 {
		rx = 4
	}
	if ry > rx/2 {
		ry = rx / 2
	}
	if ry < 2 {
		return ""
	}
	l := layout{
		cx: float64(width-1) / 2,
		cy: float64(rows-1) / 2,
		rx: rx,
		ry: ry,
		n:  len(c.Labels),
	}

	g := newGrid(width, height)
	center := point{x: l.cx, y: l.cy}
	for _, ring := range gridRings {
		pts := l.polygon(func(int) float64 { return ring })
		for i := range pts {
			g.line(pts[i], pts[(i+1)%len(pts)], glyphGrid, GridColor, nil)
		}
	}
	for i := 0; i < l.n; i++ {
		g.line(center, l.at(i, ScaleMax), glyphGrid, GridColor, nil)
	}

	for _, ds := range c.Datasets {
		if !ds.Fill {
			continue
		}
		fillPolygon(g, l.polygon(func(i int) float64 { return valueAt(ds, i) }), ds.Color)
	}
	for _, ds := range c.Datasets {
		pts := l.polygon(func(i int) float64 { return valueAt(ds, i) })
		var dash []int
		if ds.Dashed() {
			dash = ds.DashPattern
		}
		for i := range pts {
			g.line(pts[i], pts[(i+1)%len(pts)], glyphLine, ds.Color, dash)
		}
		for _, p := range pts {
			g.set(int(math.Round(p.x)), int(math.Round(p.y)), glyphVertex, ds.Color)
		}
	}

	for i, label := range c.Labels {
		drawLabel(g, l, i, runewidth.Truncate(label, labelWidth, "…"))
	}
	if c.ShowLegend() {
		drawLegend(g, c.Datasets, height-1)
	}
	return g.String()
}

func drawLabel(g *grid, l layout, i int, label string) {
	theta := axisAngle(i, l.n)
	sin, cos := math.Sin(theta), math.Cos(theta)
	x := l.cx + sin*(l.rx+2)
	y := int(math.Round(l.cy - cos*(l.ry+1)))
	w := runewidth.StringWidth(label)
	var start int
	switch {
	case sin > 0.3:
		start = int(math.Round(x))
	case sin < -0.3:
		start = int(math.Round(x)) - w + 1
	default:
		start = int(math.Round(x - float64(w-1)/2))
	}
	start = max(0, min(start, g.w-w))
	g.text(start, y, label, "")
}

func drawLegend(g *grid, datasets []Dataset, y int) {
	type entry struct {
		swatch string
		label  string
		color  string
	}
	entries := make([]entry, 0, len(datasets))
	total := 0
	for _, ds := range datasets {
		swatch := "━━"
		if ds.Dashed() {
			swatch = "╍╍"
		}
		entries = append(entries, entry{swatch: swatch, label: ds.Label, color: ds.Color})
		total += 3 + runewidth.StringWidth(ds.Label)
	}
	total += 2 * (len(entries) - 1)
	x := max(0, (g.w-total)/2)
	for _, e := range entries {
		g.text(x, y, e.swatch, e.color)
		x += 3
		g.text(x, y, e.label, "")
		x += runewidth.StringWidth(e.label) + 2
	}
}

func fillPolygon(g *grid, pts []point, color string) {
	if len(pts) < 3 {
		return
	}
	minY, maxY := pts[0].y, pts[0].y
	minX, maxX := pts[0].x, pts[0].x
	for _, p := range pts[1:] {
		minX, maxX = math.Min(minX, p.x), math.Max(maxX, p.x)
		minY, maxY = math.Min(minY, p.y), math.Max(maxY, p.y)
	}
	for y := int(math.Floor(minY)); y <= int(math.Ceil(maxY)); y++ {
		for x := int(math.Floor(minX)); x <= int(math.Ceil(maxX)); x++ {
			if !insidePolygon(pts, point{x: float64(x), y: float64(y)}) {
				continue
			}
			if r := g.get(x, y); r == 0 || r == glyphGrid {
				g.set(x, y, glyphFill, color)
			}
		}
	}
}

func insidePolygon(pts []point, p point) bool {
	inside := false
	for i, j := 0, len(pts)-1; i < len(pts); j, i = i, i+1 {
		a, b := pts[i], pts[j]
		if (a.y > p.y) != (b.y > p.y) {
			xCross := (b.x-a.x)*(p.y-a.y)/(b.y-a.y) + a.x
			if p.x < xCross {
				inside = !inside
			}
		}
	}
	return inside
}

func dashRuns(pattern []int) []int {
	if len(pattern) == 0 {
		return nil
	}
	runs := make([]int, 0, len(pattern)*2)
	for _, v := range pattern {
		runs = append(runs, max(1, int(math.Round(float64(v)/dashCellUnit))))
	}
	if len(runs)%2 == 1 {
		runs = append(runs, runs...)
	}
	return runs
}

func dashOn(runs []int, step int) bool {
	if len(runs) == 0 {
		return true
	}
	period := 0
	for _, r := range runs {
		period += r
	}
	pos := step % period
	for i, r := range runs {
		if pos < r {
			return i%2 == 0
		}
		pos -= r
	}
	return true
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

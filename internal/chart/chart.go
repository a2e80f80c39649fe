package chart

import (
	"encoding/binary"
	"hash/fnv"
	"math"

	"lifewheel/internal/wheel"
)

// The radial scale is fixed regardless of data.
const (
	ScaleMin = 0
	ScaleMax = 10
)

const (
	CurrentColor = "#3b82f6"
	VisionColor  = "#f97316"
	GridColor    = "#64748b"
)

// VisionDash is the outline pattern of the vision series on comparison charts.
var VisionDash = []int{5, 5}

type Dataset struct {
	Label string
	Data  []float64
	// Color is a #rrggbb hex string.
	Color       string
	Fill        bool
	DashPattern []int
}

func (d Dataset) Dashed() bool {
	for _, v := range d.DashPattern {
		if v > 0 {
			return true
		}
	}
	return false
}

type Chart struct {
	Labels   []string
	Datasets []Dataset
}

func (c Chart) ShowLegend() bool {
	return len(c.Datasets) > 1
}

func (c Chart) Empty() bool {
	return len(c.Labels) == 0 || len(c.Datasets) == 0
}

// Fingerprint identifies the chart contents. Two charts with the same
// fingerprint draw identically.
func (c Chart) Fingerprint() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	writeInt := func(v int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		_, _ = h.Write(buf[:])
	}
	writeString := func(s string) {
		writeInt(len(s))
		_, _ = h.Write([]byte(s))
	}
	writeInt(len(c.Labels))
	for _, label := range c.Labels {
		writeString(label)
	}
	writeInt(len(c.Datasets))
	for _, ds := range c.Datasets {
		writeString(ds.Label)
		writeString(ds.Color)
		if ds.Fill {
			writeInt(1)
		} else {
			writeInt(0)
		}
		writeInt(len(ds.DashPattern))
		for _, v := range ds.DashPattern {
			writeInt(v)
		}
		writeInt(len(ds.Data))
		for _, v := range ds.Data {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			_, _ = h.Write(buf[:])
		}
	}
	return h.Sum64()
}

// ForState builds the chart a step shows. ChartNone yields an empty chart.
func ForState(s wheel.State, kind wheel.ChartKind) Chart {
	c := Chart{Labels: s.Labels()}
	switch kind {
	case wheel.ChartCurrent:
		c.Datasets = []Dataset{{Label: "Current", Data: scores(s.CurrentScores()), Color: CurrentColor, Fill: true}}
	case wheel.ChartVision:
		c.Datasets = []Dataset{{Label: "Vision", Data: scores(s.VisionScores()), Color: VisionColor, Fill: true}}
	case wheel.ChartComparison:
		c.Datasets = []Dataset{
			{Label: "Current", Data: scores(s.CurrentScores()), Color: CurrentColor, Fill: true},
			{Label: "Vision", Data: scores(s.VisionScores()), Color: VisionColor, DashPattern: append([]int(nil), VisionDash...)},
		}
	default:
		return Chart{}
	}
	return c
}

func scores(values []int) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}

func clampScore(v float64) float64 {
	if math.IsNaN(v) || v < ScaleMin {
		return ScaleMin
	}
	if v > ScaleMax {
		return ScaleMax
	}
	return v
}

// axisAngle is the angle of axis i of n, clockwise from twelve o'clock.
func axisAngle(i, n int) float64 {
	return 2 * math.Pi * float64(i) / float64(n)
}

// valueAt returns the dataset value for axis i, treating missing data as zero.
func valueAt(ds Dataset, i int) float64 {
	if i >= len(ds.Data) {
		return ScaleMin
	}
	return clampScore(ds.Data[i])
}

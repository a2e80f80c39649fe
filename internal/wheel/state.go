package wheel

import "strings"

const (
	MinDimensions = 6
	MaxDimensions = 10
	MinScore      = 0
	MaxScore      = 10
	DefaultScore  = 5
)

// DefaultDimensionLabels is the built-in starting wheel.
var DefaultDimensionLabels = []string{
	"Career",
	"Family",
	"Health",
	"Finances",
	"Relationships",
	"Personal growth",
	"Recreation",
	"Spirit",
}

type Step int

const (
	StepSetup Step = iota
	StepReality
	StepVision
	StepLeverage
	StepMicroAction
	StepSummary
)

// StepCount is the number of wizard steps.
const StepCount = int(StepSummary) + 1

func (s Step) String() string {
	switch s {
	case StepSetup:
		return "setup"
	case StepReality:
		return "reality"
	case StepVision:
		return "vision"
	case StepLeverage:
		return "leverage"
	case StepMicroAction:
		return "micro_action"
	case StepSummary:
		return "summary"
	default:
		return "unknown"
	}
}

func (s Step) Valid() bool {
	return s >= StepSetup && s <= StepSummary
}

// Dimension is one axis of the wheel together with both of its scores.
type Dimension struct {
	ID      int
	Label   string
	Current int
	Vision  int
}

type ReflectionSlot int

const (
	ReflectionNone ReflectionSlot = iota
	ReflectionReality
	ReflectionVision
	ReflectionLeverage
)

func (s ReflectionSlot) String() string {
	switch s {
	case ReflectionReality:
		return "reality"
	case ReflectionVision:
		return "vision"
	case ReflectionLeverage:
		return "leverage"
	default:
		return "none"
	}
}

type Reflections struct {
	Reality  string
	Vision   string
	Leverage string
}

func (r Reflections) Get(slot ReflectionSlot) string {
	switch slot {
	case ReflectionReality:
		return r.Reality
	case ReflectionVision:
		return r.Vision
	case ReflectionLeverage:
		return r.Leverage
	default:
		return ""
	}
}

type MicroAction struct {
	What   string
	When   string
	Check1 bool
	Check2 bool
}

// State is the wizard record. Leverage holds the ID of the chosen dimension;
// zero means unset.
type State struct {
	Step        Step
	Dimensions  []Dimension
	Reflections Reflections
	Leverage    int
	MicroAction MicroAction
}

// NewState builds the initial record for the given labels.
func NewState(labels []string) State {
	dims := make([]Dimension, 0, len(labels))
	for i, label := range labels {
		dims = append(dims, Dimension{
			ID:      i + 1,
			Label:   label,
			Current: DefaultScore,
			Vision:  DefaultScore,
		})
	}
	return State{Step: StepSetup, Dimensions: dims}
}

func (s State) Clone() State {
	out := s
	if s.Dimensions != nil {
		out.Dimensions = append([]Dimension(nil), s.Dimensions...)
	}
	return out
}

func (s State) Labels() []string {
	out := make([]string, len(s.Dimensions))
	for i, dim := range s.Dimensions {
		out[i] = dim.Label
	}
	return out
}

func (s State) CurrentScores() []int {
	out := make([]int, len(s.Dimensions))
	for i, dim := range s.Dimensions {
		out[i] = dim.Current
	}
	return out
}

func (s State) VisionScores() []int {
	out := make([]int, len(s.Dimensions))
	for i, dim := range s.Dimensions {
		out[i] = dim.Vision
	}
	return out
}

// LeveragePoint returns the label of the chosen dimension, or "" when unset.
func (s State) LeveragePoint() string {
	idx := s.LeverageIndex()
	if idx < 0 {
		return ""
	}
	return s.Dimensions[idx].Label
}

// LeverageIndex returns the position of the chosen dimension, or -1.
func (s State) LeverageIndex() int {
	if s.Leverage == 0 {
		return -1
	}
	return s.indexOfID(s.Leverage)
}

func (s State) indexOfID(id int) int {
	for i, dim := range s.Dimensions {
		if dim.ID == id {
			return i
		}
	}
	return -1
}

func (s State) maxID() int {
	maxID := 0
	for _, dim := range s.Dimensions {
		if dim.ID > maxID {
			maxID = dim.ID
		}
	}
	return maxID
}

// Valid reports whether the dimension and score invariants hold.
func (s State) Valid() bool {
	if len(s.Dimensions) < MinDimensions || len(s.Dimensions) > MaxDimensions {
		return false
	}
	for _, dim := range s.Dimensions {
		if !ValidScore(dim.Current) || !ValidScore(dim.Vision) {
			return false
		}
	}
	if s.Leverage != 0 && s.indexOfID(s.Leverage) < 0 {
		return false
	}
	return s.Step.Valid()
}

func ValidScore(score int) bool {
	return score >= MinScore && score <= MaxScore
}

// NormalizeLabels trims the configured default labels and reports whether the
// result can seed a wheel.
func NormalizeLabels(labels []string) ([]string, bool) {
	out := make([]string, 0, len(labels))
	for _, raw := range labels {
		label := strings.TrimSpace(raw)
		if label == "" {
			continue
		}
		out = append(out, label)
	}
	if len(out) < MinDimensions || len(out) > MaxDimensions {
		return nil, false
	}
	return out, true
}

package wheel

import "fmt"

// ChartKind selects which datasets a step shows.
type ChartKind int

const (
	ChartNone ChartKind = iota
	ChartCurrent
	ChartVision
	ChartComparison
)

func (k ChartKind) String() string {
	switch k {
	case ChartCurrent:
		return "current"
	case ChartVision:
		return "vision"
	case ChartComparison:
		return "comparison"
	default:
		return "none"
	}
}

// StepView is everything a front end needs to render the active step.
type StepView struct {
	Step         Step
	Title        string
	Intro        string
	Prompts      []string
	Examples     []string
	Reflection   ReflectionSlot
	Chart        ChartKind
	Scores       ScoreKind
	CanAdvance   bool
	CanRetreat   bool
	CanAdd       bool
	CanRemove    bool
	CanExport    bool
	CanRestart   bool
	Warning      string
	AdvanceLabel string
	RetreatLabel string
}

// ScoreKind selects which score series a step edits.
type ScoreKind int

const (
	ScoresNone ScoreKind = iota
	ScoresCurrent
	ScoresVision
)

type stepCopy struct {
	title    string
	intro    string
	prompts  []string
	examples []string
	slot     ReflectionSlot
	chart    ChartKind
	scores   ScoreKind
	advance  string
}

var stepCopies = map[Step]stepCopy{
	StepSetup: {
		title:   "Define your wheel",
		intro:   "Name the areas of life that matter to you. Keep between 6 and 10 of them; rename, add or remove until the wheel feels like yours.",
		advance: "Start scoring",
	},
	StepReality: {
		title: "Reality: where are you now?",
		intro: "Score your current satisfaction in each area from 0 (not at all) to 10 (completely). Go with your first instinct.",
		prompts: []string{
			"Looking at the wheel, what is your first feeling? Surprised, sad, or just as expected?",
			"Which area that you defined have you not cared for in a long time?",
			"Which area nourished you the most over the past year?",
			"If this were the wheel of your life, would the ride be smooth or bumpy?",
		},
		slot:    ReflectionReality,
		chart:   ChartCurrent,
		scores:  ScoresCurrent,
		advance: "Imagine the future",
	},
	StepVision: {
		title: "Vision: where do you want to be?",
		intro: "Your vision starts from today's scores. Raise each area to where you want it to be a year from now.",
		prompts: []string{
			"Describe a perfect ordinary day once all of this has come true.",
			"Who have you become? What new qualities do you have?",
			"Why does this matter to you? What deeper desire does it satisfy?",
		},
		slot:    ReflectionVision,
		chart:   ChartVision,
		scores:  ScoresVision,
		advance: "Find the leverage",
	},
	StepLeverage: {
		title: "Leverage: where does a small push move the most?",
		intro: "Compare today with your vision and pick the one area where improvement would lift the others.",
		prompts: []string{
			"Comparing the two shapes, what do you notice? Where are the largest gaps?",
			"If you could improve only one area next year, which would it be and why?",
			"If that area rose from its current score to its vision, how would the other areas change?",
		},
		slot:    ReflectionLeverage,
		chart:   ChartComparison,
		advance: "Plan the first step",
	},
	StepMicroAction: {
		title: "Micro-action: the smallest next step",
		intro: "Choose an action for your leverage area that is so small it cannot fail, and decide exactly when it happens.",
		examples: []string{
			"Health: not \"lose 20 pounds\" but \"walk 10 minutes after dinner\".",
			"Personal growth: not \"read 50 books\" but \"open a book and read one page before bed\".",
		},
		advance: "See the summary",
	},
	StepSummary: {
		title: "Your life wheel",
		intro: "Here is everything you discovered. Export it or copy it somewhere you will see it again.",
		chart: ChartComparison,
	},
}

// MicroActionChecks are the two self-check statements in order.
var MicroActionChecks = [2]string{
	"It is small enough that it needs no willpower.",
	"I have put it in my calendar or set a reminder.",
}

// Describe derives the view of the active step. It is a pure function of its
// inputs.
func Describe(s State, policy MicroActionPolicy) StepView {
	guards := NewGuardTable(policy)
	text := stepCopies[s.Step]
	view := StepView{
		Step:         s.Step,
		Title:        text.title,
		Intro:        text.intro,
		Prompts:      append([]string(nil), text.prompts...),
		Examples:     append([]string(nil), text.examples...),
		Reflection:   text.slot,
		Chart:        text.chart,
		Scores:       text.scores,
		CanRetreat:   s.Step > StepSetup,
		AdvanceLabel: text.advance,
		RetreatLabel: "Back",
	}
	if s.Step < StepSummary {
		view.CanAdvance = guards.Allows(s)
	}
	n := len(s.Dimensions)
	switch s.Step {
	case StepSetup:
		view.CanAdd = n < MaxDimensions
		view.CanRemove = n > MinDimensions
		if n < MinDimensions || n > MaxDimensions {
			view.Warning = fmt.Sprintf("Keep between %d and %d dimensions (currently %d).", MinDimensions, MaxDimensions, n)
		}
	case StepLeverage:
		if !view.CanAdvance {
			view.Warning = "Choose one leverage area to continue."
		}
	case StepMicroAction:
		if !view.CanAdvance {
			view.Warning = policy.requirement()
		}
		if point := s.LeveragePoint(); point != "" {
			view.Intro = fmt.Sprintf("%s Your leverage area is %s.", view.Intro, point)
		}
	case StepSummary:
		view.CanExport = true
		view.CanRestart = true
		view.RetreatLabel = "Edit"
	}
	return view
}

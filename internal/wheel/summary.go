package wheel

import "strings"

const (
	NoEntry   = "No entry"
	NotChosen = "Not chosen"
	NotSet    = "Not set"
)

// SummaryTitle and SummaryQuote head every rendering of the summary.
const (
	SummaryTitle = "Life Balance Wheel Report"
	SummaryQuote = "Balance is not stillness but constant adjustment. Once you start noticing, you take back the initiative."
)

// DimensionSummary is one row of the score table.
type DimensionSummary struct {
	Label    string `json:"label" toml:"label" yaml:"label"`
	Current  int    `json:"current" toml:"current" yaml:"current"`
	Vision   int    `json:"vision" toml:"vision" yaml:"vision"`
	Gap      int    `json:"gap" toml:"gap" yaml:"gap"`
	Leverage bool   `json:"leverage,omitempty" toml:"leverage,omitempty" yaml:"leverage,omitempty"`
}

type ReflectionSummary struct {
	Reality  string `json:"reality" toml:"reality" yaml:"reality"`
	Vision   string `json:"vision" toml:"vision" yaml:"vision"`
	Leverage string `json:"leverage" toml:"leverage" yaml:"leverage"`
}

type CommitmentSummary struct {
	What   string `json:"what" toml:"what" yaml:"what"`
	When   string `json:"when" toml:"when" yaml:"when"`
	Check1 bool   `json:"no_willpower_needed" toml:"no_willpower_needed" yaml:"no_willpower_needed"`
	Check2 bool   `json:"scheduled" toml:"scheduled" yaml:"scheduled"`
}

// Summary is the read-only digest shown on the final step and exported.
// Empty text is already replaced by its placeholder.
type Summary struct {
	Dimensions     []DimensionSummary `json:"dimensions" toml:"dimensions" yaml:"dimensions"`
	LeveragePoint  string             `json:"leverage_point" toml:"leverage_point" yaml:"leverage_point"`
	Commitment     CommitmentSummary  `json:"commitment" toml:"commitment" yaml:"commitment"`
	Reflections    ReflectionSummary  `json:"reflections" toml:"reflections" yaml:"reflections"`
	AverageCurrent float64            `json:"average_current" toml:"average_current" yaml:"average_current"`
	AverageVision  float64            `json:"average_vision" toml:"average_vision" yaml:"average_vision"`
	LargestGap     string             `json:"largest_gap,omitempty" toml:"largest_gap,omitempty" yaml:"largest_gap,omitempty"`
}

func Summarize(s State) Summary {
	out := Summary{
		Dimensions:    make([]DimensionSummary, 0, len(s.Dimensions)),
		LeveragePoint: orPlaceholder(s.LeveragePoint(), NotChosen),
		Commitment: CommitmentSummary{
			What:   orPlaceholder(s.MicroAction.What, NotSet),
			When:   orPlaceholder(s.MicroAction.When, NotSet),
			Check1: s.MicroAction.Check1,
			Check2: s.MicroAction.Check2,
		},
		Reflections: ReflectionSummary{
			Reality:  orPlaceholder(s.Reflections.Reality, NoEntry),
			Vision:   orPlaceholder(s.Reflections.Vision, NoEntry),
			Leverage: orPlaceholder(s.Reflections.Leverage, NoEntry),
		},
	}
	if len(s.Dimensions) == 0 {
		return out
	}
	var current, vision int
	largest := 0
	for _, dim := range s.Dimensions {
		gap := dim.Vision - dim.Current
		out.Dimensions = append(out.Dimensions, DimensionSummary{
			Label:    dim.Label,
			Current:  dim.Current,
			Vision:   dim.Vision,
			Gap:      gap,
			Leverage: dim.ID == s.Leverage,
		})
		current += dim.Current
		vision += dim.Vision
		if gap > largest {
			largest = gap
			out.LargestGap = dim.Label
		}
	}
	n := float64(len(s.Dimensions))
	out.AverageCurrent = float64(current) / n
	out.AverageVision = float64(vision) / n
	return out
}

func orPlaceholder(value, placeholder string) string {
	if strings.TrimSpace(value) == "" {
		return placeholder
	}
	return value
}

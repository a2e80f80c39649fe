package wheel

import (
	"fmt"
	"strings"
)

// MicroActionPolicy selects which micro-action fields gate the summary.
type MicroActionPolicy string

const (
	// MicroActionStrict requires what, when and both checks.
	MicroActionStrict MicroActionPolicy = "strict"
	// MicroActionRelaxed requires what and the first check.
	MicroActionRelaxed MicroActionPolicy = "relaxed"
)

func ParseMicroActionPolicy(raw string) (MicroActionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(MicroActionStrict):
		return MicroActionStrict, nil
	case string(MicroActionRelaxed):
		return MicroActionRelaxed, nil
	default:
		return "", fmt.Errorf("unknown micro action policy %q (want strict or relaxed)", raw)
	}
}

func (p MicroActionPolicy) Complete(action MicroAction) bool {
	if p == MicroActionRelaxed {
		return strings.TrimSpace(action.What) != "" && action.Check1
	}
	return strings.TrimSpace(action.What) != "" &&
		strings.TrimSpace(action.When) != "" &&
		action.Check1 &&
		action.Check2
}

func (p MicroActionPolicy) requirement() string {
	if p == MicroActionRelaxed {
		return "Describe the action and confirm it needs no willpower to continue."
	}
	return "Describe the action and its trigger, then confirm both checks to continue."
}

// Guard reports whether the step it is registered for may advance.
type Guard func(State) bool

// GuardTable maps each step to its completion predicate. A step without an
// entry never advances.
type GuardTable map[Step]Guard

func NewGuardTable(policy MicroActionPolicy) GuardTable {
	return GuardTable{
		StepSetup:       dimensionCountInRange,
		StepReality:     always,
		StepVision:      always,
		StepLeverage:    leverageChosen,
		StepMicroAction: func(s State) bool { return policy.Complete(s.MicroAction) },
	}
}

func (t GuardTable) Allows(s State) bool {
	guard, ok := t[s.Step]
	if !ok || guard == nil {
		return false
	}
	return guard(s)
}

func dimensionCountInRange(s State) bool {
	n := len(s.Dimensions)
	return n >= MinDimensions && n <= MaxDimensions
}

func leverageChosen(s State) bool {
	return s.LeverageIndex() >= 0
}

func always(State) bool { return true }

package wheel

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDescribeSetupBoundaries(t *testing.T) {
	state := NewState(DefaultDimensionLabels)
	view := Describe(state, MicroActionStrict)
	if !view.CanAdd || !view.CanRemove || !view.CanAdvance || view.CanRetreat {
		t.Fatalf("unexpected setup view: %+v", view)
	}
	if view.Warning != "" {
		t.Fatalf("expected no warning, got %q", view.Warning)
	}

	full := NewState(append(append([]string(nil), DefaultDimensionLabels...), "a", "b"))
	if Describe(full, MicroActionStrict).CanAdd {
		t.Fatalf("expected add disabled at %d dimensions", MaxDimensions)
	}
	minimal := NewState(DefaultDimensionLabels[:MinDimensions])
	if Describe(minimal, MicroActionStrict).CanRemove {
		t.Fatalf("expected remove disabled at %d dimensions", MinDimensions)
	}

	tooFew := NewState(DefaultDimensionLabels[:4])
	view = Describe(tooFew, MicroActionStrict)
	if view.CanAdvance || !strings.Contains(view.Warning, "currently 4") {
		t.Fatalf("expected blocked advance with warning, got %+v", view)
	}
}

func TestDescribeStepBindings(t *testing.T) {
	cases := []struct {
		step   Step
		slot   ReflectionSlot
		chart  ChartKind
		scores ScoreKind
		prompt int
	}{
		{step: StepSetup, slot: ReflectionNone, chart: ChartNone, scores: ScoresNone},
		{step: StepReality, slot: ReflectionReality, chart: ChartCurrent, scores: ScoresCurrent, prompt: 4},
		{step: StepVision, slot: ReflectionVision, chart: ChartVision, scores: ScoresVision, prompt: 3},
		{step: StepLeverage, slot: ReflectionLeverage, chart: ChartComparison, scores: ScoresNone, prompt: 3},
		{step: StepMicroAction, slot: ReflectionNone, chart: ChartNone, scores: ScoresNone},
		{step: StepSummary, slot: ReflectionNone, chart: ChartComparison, scores: ScoresNone},
	}
	for _, tc := range cases {
		t.Run(tc.step.String(), func(t *testing.T) {
			state := NewState(DefaultDimensionLabels)
			state.Step = tc.step
			view := Describe(state, MicroActionStrict)
			if view.Reflection != tc.slot || view.Chart != tc.chart || view.Scores != tc.scores {
				t.Fatalf("unexpected bindings: %+v", view)
			}
			if len(view.Prompts) != tc.prompt {
				t.Fatalf("expected %d prompts, got %d", tc.prompt, len(view.Prompts))
			}
			if view.Title == "" {
				t.Fatalf("expected a title")
			}
		})
	}
}

func TestDescribeLeverageWarning(t *testing.T) {
	state := NewState(DefaultDimensionLabels)
	state.Step = StepLeverage
	view := Describe(state, MicroActionStrict)
	if view.CanAdvance || view.Warning == "" {
		t.Fatalf("expected blocked advance with warning, got %+v", view)
	}
	state.Leverage = state.Dimensions[4].ID
	view = Describe(state, MicroActionStrict)
	if !view.CanAdvance || view.Warning != "" {
		t.Fatalf("expected open gate, got %+v", view)
	}
}

func TestDescribeMicroActionFollowsPolicy(t *testing.T) {
	state := NewState(DefaultDimensionLabels)
	state.Step = StepMicroAction
	state.Leverage = state.Dimensions[2].ID
	state.MicroAction = MicroAction{What: "walk", Check1: true}

	strict := Describe(state, MicroActionStrict)
	if strict.CanAdvance {
		t.Fatalf("expected strict policy to block")
	}
	if !strings.Contains(strict.Warning, "both checks") {
		t.Fatalf("unexpected strict warning %q", strict.Warning)
	}
	if !strings.Contains(strict.Intro, "Health") {
		t.Fatalf("expected intro to name the leverage area, got %q", strict.Intro)
	}
	if len(strict.Examples) != 2 {
		t.Fatalf("expected two examples, got %d", len(strict.Examples))
	}

	relaxed := Describe(state, MicroActionRelaxed)
	if !relaxed.CanAdvance || relaxed.Warning != "" {
		t.Fatalf("expected relaxed policy to pass, got %+v", relaxed)
	}
}

func TestDescribeSummaryActions(t *testing.T) {
	state := NewState(DefaultDimensionLabels)
	state.Step = StepSummary
	view := Describe(state, MicroActionStrict)
	if view.CanAdvance || !view.CanRetreat || !view.CanExport || !view.CanRestart {
		t.Fatalf("unexpected summary view: %+v", view)
	}
}

func TestDescribeIsPure(t *testing.T) {
	state := NewState(DefaultDimensionLabels)
	state.Step = StepReality
	before := state.Clone()
	first := Describe(state, MicroActionStrict)
	first.Prompts[0] = "changed"
	second := Describe(state, MicroActionStrict)
	if second.Prompts[0] == "changed" {
		t.Fatalf("view shares prompt storage")
	}
	if diff := cmp.Diff(before, state); diff != "" {
		t.Fatalf("describe mutated state (-want +got):\n%s", diff)
	}
}

func TestParseMicroActionPolicy(t *testing.T) {
	cases := map[string]MicroActionPolicy{
		"":         MicroActionStrict,
		"strict":   MicroActionStrict,
		" Relaxed": MicroActionRelaxed,
	}
	for raw, want := range cases {
		got, err := ParseMicroActionPolicy(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if got != want {
			t.Fatalf("parse %q: expected %q, got %q", raw, want, got)
		}
	}
	if _, err := ParseMicroActionPolicy("loose"); err == nil {
		t.Fatalf("expected error for unknown policy")
	}
}

func TestGuardTableHasNoSummaryEntry(t *testing.T) {
	table := NewGuardTable(MicroActionStrict)
	if _, ok := table[StepSummary]; ok {
		t.Fatalf("expected no guard for summary")
	}
	state := NewState(DefaultDimensionLabels)
	state.Step = StepSummary
	if table.Allows(state) {
		t.Fatalf("expected summary to be blocked")
	}
}

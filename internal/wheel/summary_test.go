package wheel

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSummarizePlaceholders(t *testing.T) {
	summary := Summarize(NewState(DefaultDimensionLabels))
	want := ReflectionSummary{Reality: NoEntry, Vision: NoEntry, Leverage: NoEntry}
	if diff := cmp.Diff(want, summary.Reflections); diff != "" {
		t.Fatalf("unexpected reflections (-want +got):\n%s", diff)
	}
	if summary.LeveragePoint != NotChosen {
		t.Fatalf("expected %q, got %q", NotChosen, summary.LeveragePoint)
	}
	if summary.Commitment.What != NotSet || summary.Commitment.When != NotSet {
		t.Fatalf("expected %q placeholders, got %+v", NotSet, summary.Commitment)
	}
	if summary.LargestGap != "" {
		t.Fatalf("expected no gap, got %q", summary.LargestGap)
	}
}

func TestSummarizeScoresAndGaps(t *testing.T) {
	state := NewState([]string{"a", "b", "c", "d", "e", "f"})
	for i := range state.Dimensions {
		state.Dimensions[i].Current = i
		state.Dimensions[i].Vision = i + 1
	}
	state.Dimensions[3].Vision = 9
	state.Leverage = state.Dimensions[3].ID
	state.Reflections.Vision = "steady"
	state.MicroAction = MicroAction{What: "stretch", When: "7am", Check1: true}

	summary := Summarize(state)
	if summary.LeveragePoint != "d" || summary.LargestGap != "d" {
		t.Fatalf("unexpected leverage or gap: %q %q", summary.LeveragePoint, summary.LargestGap)
	}
	if !summary.Dimensions[3].Leverage || summary.Dimensions[3].Gap != 6 {
		t.Fatalf("unexpected row: %+v", summary.Dimensions[3])
	}
	if summary.AverageCurrent != 2.5 {
		t.Fatalf("expected average current 2.5, got %v", summary.AverageCurrent)
	}
	if want := 26.0 / 6; summary.AverageVision != want {
		t.Fatalf("expected average vision %v, got %v", want, summary.AverageVision)
	}
	if summary.Reflections.Vision != "steady" || summary.Reflections.Reality != NoEntry {
		t.Fatalf("unexpected reflections: %+v", summary.Reflections)
	}
	want := CommitmentSummary{What: "stretch", When: "7am", Check1: true}
	if diff := cmp.Diff(want, summary.Commitment); diff != "" {
		t.Fatalf("unexpected commitment (-want +got):\n%s", diff)
	}
}

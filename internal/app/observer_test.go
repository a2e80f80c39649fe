package app

import (
	"bytes"
	"strings"
	"testing"

	"lifewheel/internal/logging"
	"lifewheel/internal/wheel"
)

func TestLogObserverRecordsStepChangesAtInfo(t *testing.T) {
	var buf bytes.Buffer
	ctrl := wheel.NewController(wheel.Options{})
	m := newTestModel(t, Options{Controller: ctrl, Logger: logging.New(&buf, logging.Info)})
	typeText(m, "x")
	press(m, ctrlKey('n'))
	out := buf.String()
	if !strings.Contains(out, "msg=step_changed") || !strings.Contains(out, "command=advance") {
		t.Fatalf("expected step change entry, got:\n%s", out)
	}
	if strings.Contains(out, "state_changed") {
		t.Fatalf("expected field edits to stay below info, got:\n%s", out)
	}
}

func TestLogObserverRecordsEditsAtDebug(t *testing.T) {
	var buf bytes.Buffer
	observer := newLogObserver(logging.New(&buf, logging.Debug))
	before := wheel.NewState(wheel.DefaultDimensionLabels)
	after := before.Clone()
	after.Dimensions[0].Label = "Work"
	observer.StateChanged(wheel.RenameDimension{Index: 0, Label: "Work"}, before, after)
	observer.StateChanged(wheel.AddDimension{}, before, after)
	out := buf.String()
	if !strings.Contains(out, "msg=state_changed") || !strings.Contains(out, "msg=dimensions_changed") {
		t.Fatalf("expected debug entries, got:\n%s", out)
	}
}

func TestNilLoggerFallsBackToNop(t *testing.T) {
	observer := newLogObserver(nil)
	observer.StateChanged(wheel.Advance{}, wheel.State{}, wheel.State{Step: wheel.StepReality})
}

package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	xansi "github.com/charmbracelet/x/ansi"
)

func TestConfirmEnterDefaultsToCancel(t *testing.T) {
	c := NewConfirmController()
	c.Open("Start over?", "", "Restart", "Keep")
	handled, choice := c.HandleKey(keyEnter)
	if !handled || choice != confirmChoiceCancel {
		t.Fatalf("expected enter to cancel, got %v %v", handled, choice)
	}
	c.HandleKey(keyLeft)
	if _, choice := c.HandleKey(keyEnter); choice != confirmChoiceConfirm {
		t.Fatalf("expected enter to confirm after moving left, got %v", choice)
	}
}

func TestConfirmKeys(t *testing.T) {
	c := NewConfirmController()
	c.Open("Start over?", "", "", "")
	cases := []struct {
		msg    tea.KeyPressMsg
		choice confirmChoice
	}{
		{runeKey('y'), confirmChoiceConfirm},
		{runeKey('n'), confirmChoiceCancel},
		{keyEsc, confirmChoiceCancel},
		{keyTab, confirmChoiceNone},
	}
	for _, tc := range cases {
		handled, choice := c.HandleKey(tc.msg)
		if !handled || choice != tc.choice {
			t.Fatalf("%s: expected %v, got %v/%v", tc.msg.String(), tc.choice, handled, choice)
		}
	}
	if handled, _ := c.HandleKey(runeKey('q')); handled {
		t.Fatalf("expected q to fall through")
	}
	c.Close()
	if handled, _ := c.HandleKey(runeKey('y')); handled {
		t.Fatalf("expected a closed dialog to ignore keys")
	}
}

func TestConfirmViewWrapsAndCapsWidth(t *testing.T) {
	c := NewConfirmController()
	c.Open("Start over?", strings.Repeat("long message ", 12), "Restart", "Keep")
	block, y := c.View(120, 40)
	if y <= 0 {
		t.Fatalf("expected the dialog below the first row, got %d", y)
	}
	lines := strings.Split(xansi.Strip(block), "\n")
	if len(lines) < 6 {
		t.Fatalf("expected a wrapped message, got %d lines", len(lines))
	}
	for _, line := range lines {
		if w := xansi.StringWidth(strings.TrimLeft(line, " ")); w > confirmMaxWidth {
			t.Fatalf("line exceeds dialog width (%d): %q", w, line)
		}
	}
	if !strings.Contains(xansi.Strip(block), "[Restart]") {
		t.Fatalf("expected confirm button in dialog")
	}
}

func TestConfirmMouseButtons(t *testing.T) {
	c := NewConfirmController()
	c.Open("Start over?", "", "Restart", "Keep")
	frame, accept, reject := c.regions(80, 24)
	if _, choice := c.HandleMouse(tea.MouseClickMsg{X: accept.x, Y: accept.y, Button: tea.MouseLeft}, 80, 24); choice != confirmChoiceConfirm {
		t.Fatalf("expected accept button to confirm, got %v", choice)
	}
	if _, choice := c.HandleMouse(tea.MouseClickMsg{X: reject.x + reject.w - 1, Y: reject.y, Button: tea.MouseLeft}, 80, 24); choice != confirmChoiceCancel {
		t.Fatalf("expected reject button to cancel, got %v", choice)
	}
	if handled, choice := c.HandleMouse(tea.MouseClickMsg{X: frame.x + 1, Y: frame.y + 1, Button: tea.MouseLeft}, 80, 24); !handled || choice != confirmChoiceNone {
		t.Fatalf("expected clicks on the title to be swallowed, got %v %v", handled, choice)
	}
	if handled, _ := c.HandleMouse(tea.MouseClickMsg{X: 0, Y: 0, Button: tea.MouseLeft}, 80, 24); handled {
		t.Fatalf("expected clicks outside the dialog to be ignored")
	}
}

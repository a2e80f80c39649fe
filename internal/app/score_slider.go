package app

import (
	tea "charm.land/bubbletea/v2"

	"lifewheel/internal/wheel"
)

// commandMatcher resolves key presses through the user's keybindings.
type commandMatcher interface {
	matchCommand(msg tea.KeyMsg, command string) bool
}

// scoreSlider maps key presses onto a score on the 0 to 10 scale.
type scoreSlider struct {
	keys commandMatcher
}

// HandleKey returns the score after msg and whether msg was a slider key.
func (s scoreSlider) HandleKey(msg tea.KeyMsg, score int) (int, bool) {
	key := msg.String()
	switch {
	case s.keys.matchCommand(msg, KeyCommandScoreUp), key == "+", key == "=":
		return clampScore(score + 1), true
	case s.keys.matchCommand(msg, KeyCommandScoreDown), key == "-":
		return clampScore(score - 1), true
	case key == "home":
		return wheel.MinScore, true
	case key == "end":
		return wheel.MaxScore, true
	}
	if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
		return int(key[0] - '0'), true
	}
	return score, false
}

func clampScore(score int) int {
	return max(wheel.MinScore, min(score, wheel.MaxScore))
}

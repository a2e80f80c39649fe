package app

import "lifewheel/internal/wheel"

type HotkeyContext int

const (
	HotkeyGlobal HotkeyContext = iota
	HotkeyForward
	HotkeyBackward
	HotkeySetup
	HotkeyScores
	HotkeyLeverage
	HotkeyMicroAction
	HotkeySummary
	HotkeyConfirm
)

type Hotkey struct {
	Key      string
	Command  string
	Label    string
	Context  HotkeyContext
	Priority int
}

type HotkeyResolver interface {
	ActiveContexts(*Model) []HotkeyContext
}

func DefaultHotkeys() []Hotkey {
	return []Hotkey{
		{Key: "ctrl+n", Command: KeyCommandNext, Label: "next", Context: HotkeyForward, Priority: 10},
		{Key: "ctrl+p", Command: KeyCommandBack, Label: "back", Context: HotkeyBackward, Priority: 11},
		{Key: "tab", Command: KeyCommandFocusNext, Label: "focus", Context: HotkeyGlobal, Priority: 12},
		{Key: "ctrl+c", Command: KeyCommandQuit, Label: "quit", Context: HotkeyGlobal, Priority: 90},
		{Key: "ctrl+t", Command: KeyCommandAddDimension, Label: "add", Context: HotkeySetup, Priority: 20},
		{Key: "ctrl+x", Command: KeyCommandRemoveDimension, Label: "remove", Context: HotkeySetup, Priority: 21},
		{Key: "↑/↓", Label: "move", Context: HotkeySetup, Priority: 40},
		{Key: "left", Command: KeyCommandScoreDown, Label: "lower", Context: HotkeyScores, Priority: 20},
		{Key: "right", Command: KeyCommandScoreUp, Label: "raise", Context: HotkeyScores, Priority: 21},
		{Key: "0-9", Label: "set", Context: HotkeyScores, Priority: 22},
		{Key: "↑/↓", Label: "move", Context: HotkeyScores, Priority: 40},
		{Key: "space", Command: KeyCommandToggle, Label: "choose", Context: HotkeyLeverage, Priority: 20},
		{Key: "↑/↓", Label: "move", Context: HotkeyLeverage, Priority: 40},
		{Key: "space", Command: KeyCommandToggle, Label: "check", Context: HotkeyMicroAction, Priority: 20},
		{Key: "ctrl+e", Command: KeyCommandExport, Label: "export", Context: HotkeySummary, Priority: 20},
		{Key: "ctrl+y", Command: KeyCommandCopySummary, Label: "copy", Context: HotkeySummary, Priority: 21},
		{Key: "ctrl+r", Command: KeyCommandRestart, Label: "restart", Context: HotkeySummary, Priority: 22},
		{Key: "pgup/pgdn", Label: "scroll", Context: HotkeySummary, Priority: 40},
		{Key: "y/enter", Label: "confirm", Context: HotkeyConfirm, Priority: 10},
		{Key: "n/esc", Label: "cancel", Context: HotkeyConfirm, Priority: 11},
	}
}

// ResolveHotkeys replaces each command-backed key with its bound key.
func ResolveHotkeys(hotkeys []Hotkey, bindings *Keybindings) []Hotkey {
	out := make([]Hotkey, len(hotkeys))
	for i, hotkey := range hotkeys {
		if hotkey.Command != "" {
			hotkey.Key = bindings.KeyFor(hotkey.Command, hotkey.Key)
		}
		out[i] = hotkey
	}
	return out
}

type DefaultHotkeyResolver struct{}

func (r DefaultHotkeyResolver) ActiveContexts(m *Model) []HotkeyContext {
	if m == nil {
		return []HotkeyContext{HotkeyGlobal}
	}
	if m.confirm.IsOpen() {
		return []HotkeyContext{HotkeyConfirm}
	}
	contexts := []HotkeyContext{HotkeyGlobal}
	step := m.ctrl.Step()
	if step < wheel.StepSummary {
		contexts = append(contexts, HotkeyForward)
	}
	if step > wheel.StepSetup {
		contexts = append(contexts, HotkeyBackward)
	}
	switch step {
	case wheel.StepSetup:
		contexts = append(contexts, HotkeySetup)
	case wheel.StepReality, wheel.StepVision:
		if m.focusedDimension() >= 0 {
			contexts = append(contexts, HotkeyScores)
		}
	case wheel.StepLeverage:
		if m.focusedDimension() >= 0 {
			contexts = append(contexts, HotkeyLeverage)
		}
	case wheel.StepMicroAction:
		if m.focus >= microFocusCheck1 {
			contexts = append(contexts, HotkeyMicroAction)
		}
	case wheel.StepSummary:
		contexts = append(contexts, HotkeySummary)
	}
	return contexts
}

package app

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"lifewheel/internal/logging"
)

const (
	keyScopeWizard      = "wizard"
	keyScopeSetup       = "setup"
	keyScopeScores      = "scores"
	keyScopeLeverage    = "leverage"
	keyScopeMicroAction = "micro_action"
	keyScopeSummary     = "summary"
)

// KeybindingConflict is a key bound to more than one command in a scope where
// both commands are live.
type KeybindingConflict struct {
	Key      string
	Scope    string
	Commands []string
}

func (c KeybindingConflict) ToastMessage() string {
	return fmt.Sprintf("keybinding conflict: %s in %s (%s)", c.Key, c.Scope, strings.Join(c.Commands, ", "))
}

func DetectKeybindingConflicts(bindings *Keybindings) []KeybindingConflict {
	if bindings == nil {
		bindings = DefaultKeybindings()
	}
	type scopeKey struct {
		scope string
		key   string
	}
	commandsByScopeKey := map[scopeKey][]string{}
	for _, command := range KnownKeybindingCommands() {
		bound := strings.TrimSpace(bindings.KeyFor(command, defaultKeyFor(command)))
		if bound == "" {
			continue
		}
		for _, scope := range keybindingScopesFor(command) {
			k := scopeKey{scope: scope, key: bound}
			commandsByScopeKey[k] = append(commandsByScopeKey[k], command)
		}
	}
	var conflicts []KeybindingConflict
	for scoped, commands := range commandsByScopeKey {
		if len(commands) < 2 {
			continue
		}
		slices.Sort(commands)
		conflicts = append(conflicts, KeybindingConflict{Key: scoped.key, Scope: scoped.scope, Commands: commands})
	}
	sort.Slice(conflicts, func(i, j int) bool {
		if conflicts[i].Scope != conflicts[j].Scope {
			return conflicts[i].Scope < conflicts[j].Scope
		}
		return conflicts[i].Key < conflicts[j].Key
	})
	return conflicts
}

func (m *Model) enqueueKeybindingConflictToasts(conflicts []KeybindingConflict) {
	for _, conflict := range conflicts {
		m.logger.Warn("keybinding_conflict", logging.F("key", conflict.Key), logging.F("scope", conflict.Scope), logging.F("commands", strings.Join(conflict.Commands, ",")))
		m.enqueueStartupToast(toastLevelError, conflict.ToastMessage())
	}
}

// keybindingScopesFor lists the steps on which command is handled. Global
// commands are checked against every step.
func keybindingScopesFor(command string) []string {
	switch command {
	case KeyCommandQuit, KeyCommandNext, KeyCommandBack, KeyCommandFocusNext, KeyCommandFocusPrev:
		return []string{keyScopeSetup, keyScopeScores, keyScopeLeverage, keyScopeMicroAction, keyScopeSummary}
	case KeyCommandAddDimension, KeyCommandRemoveDimension:
		return []string{keyScopeSetup}
	case KeyCommandScoreUp, KeyCommandScoreDown:
		return []string{keyScopeScores}
	case KeyCommandToggle:
		return []string{keyScopeLeverage, keyScopeMicroAction}
	case KeyCommandExport, KeyCommandCopySummary, KeyCommandRestart:
		return []string{keyScopeSummary}
	default:
		return []string{keyScopeWizard}
	}
}

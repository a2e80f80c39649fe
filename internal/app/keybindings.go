package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	KeyCommandQuit            = "ui.quit"
	KeyCommandNext            = "ui.next"
	KeyCommandBack            = "ui.back"
	KeyCommandFocusNext       = "ui.focusNext"
	KeyCommandFocusPrev       = "ui.focusPrev"
	KeyCommandAddDimension    = "ui.addDimension"
	KeyCommandRemoveDimension = "ui.removeDimension"
	KeyCommandToggle          = "ui.toggle"
	KeyCommandScoreUp         = "ui.scoreUp"
	KeyCommandScoreDown       = "ui.scoreDown"
	KeyCommandExport          = "ui.export"
	KeyCommandPrint           = "ui.print" // older name for ui.export
	KeyCommandCopySummary     = "ui.copySummary"
	KeyCommandRestart         = "ui.restart"
)

type keybindingDefault struct {
	command string
	key     string
}

// keybindingDefaults is ordered by command name.
var keybindingDefaults = []keybindingDefault{
	{KeyCommandAddDimension, "ctrl+t"},
	{KeyCommandBack, "ctrl+p"},
	{KeyCommandCopySummary, "ctrl+y"},
	{KeyCommandExport, "ctrl+e"},
	{KeyCommandFocusNext, "tab"},
	{KeyCommandFocusPrev, "shift+tab"},
	{KeyCommandNext, "ctrl+n"},
	{KeyCommandQuit, "ctrl+c"},
	{KeyCommandRemoveDimension, "ctrl+x"},
	{KeyCommandRestart, "ctrl+r"},
	{KeyCommandScoreDown, "left"},
	{KeyCommandScoreUp, "right"},
	{KeyCommandToggle, "space"},
}

var keybindingAliases = map[string]string{
	KeyCommandPrint: KeyCommandExport,
}

func defaultKeyFor(command string) string {
	i := slices.IndexFunc(keybindingDefaults, func(d keybindingDefault) bool { return d.command == command })
	if i < 0 {
		return ""
	}
	return keybindingDefaults[i].key
}

// canonicalCommand resolves aliases and reports whether command is known.
func canonicalCommand(command string) (string, bool) {
	command = strings.TrimSpace(command)
	if alias, ok := keybindingAliases[command]; ok {
		command = alias
	}
	return command, defaultKeyFor(command) != ""
}

// Keybindings maps wizard commands to keys. Pressing a rebound key acts like
// pressing the command's default key.
type Keybindings struct {
	keys  map[string]string
	remap map[string]string
}

func DefaultKeybindings() *Keybindings {
	return NewKeybindings(nil)
}

// NewKeybindings layers overrides over the defaults. Unknown commands and
// blank keys are ignored. A key bound to two rebound commands remaps to
// neither.
func NewKeybindings(overrides map[string]string) *Keybindings {
	k := &Keybindings{
		keys:  make(map[string]string, len(keybindingDefaults)),
		remap: map[string]string{},
	}
	for _, d := range keybindingDefaults {
		k.keys[d.command] = d.key
	}
	for command, key := range overrides {
		command, ok := canonicalCommand(command)
		if key = strings.TrimSpace(key); ok && key != "" {
			k.keys[command] = key
		}
	}
	claimed := map[string]int{}
	for _, d := range keybindingDefaults {
		if key := k.keys[d.command]; key != d.key {
			claimed[key]++
			k.remap[key] = d.key
		}
	}
	for key, n := range claimed {
		if n > 1 {
			delete(k.remap, key)
		}
	}
	return k
}

// LoadKeybindings reads overrides from path. JSON files hold either an
// object of command to key or a list of {command, key} entries; .toml and
// .yaml files hold a table of command to key. A missing or empty file yields
// the defaults.
func LoadKeybindings(path string) (*Keybindings, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return DefaultKeybindings(), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultKeybindings(), nil
	}
	if err != nil {
		return nil, err
	}
	overrides, err := decodeKeybindings(filepath.Ext(path), data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return NewKeybindings(overrides), nil
}

type keybindingEntry struct {
	Command string `json:"command"`
	Key     string `json:"key"`
}

func decodeKeybindings(ext string, data []byte) (map[string]string, error) {
	text := strings.TrimSpace(string(data))
	if text == "" {
		return nil, nil
	}
	out := map[string]string{}
	switch strings.ToLower(ext) {
	case ".toml":
		return out, toml.Unmarshal(data, &out)
	case ".yaml", ".yml":
		return out, yaml.Unmarshal(data, &out)
	}
	if text[0] != '[' {
		return out, json.Unmarshal(data, &out)
	}
	var entries []keybindingEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	for _, entry := range entries {
		out[entry.Command] = entry.Key
	}
	return out, nil
}

// KeyFor returns the key bound to command, or fallback for unknown commands.
func (k *Keybindings) KeyFor(command, fallback string) string {
	command, ok := canonicalCommand(command)
	if !ok {
		return fallback
	}
	if k != nil && k.keys[command] != "" {
		return k.keys[command]
	}
	return defaultKeyFor(command)
}

func (k *Keybindings) Bindings() map[string]string {
	out := make(map[string]string, len(keybindingDefaults))
	for _, d := range keybindingDefaults {
		out[d.command] = k.KeyFor(d.command, d.key)
	}
	return out
}

// Remap translates a rebound key to the default key of its command.
func (k *Keybindings) Remap(key string) string {
	key = strings.TrimSpace(key)
	if k == nil {
		return key
	}
	if canonical := k.remap[key]; canonical != "" {
		return canonical
	}
	return key
}

func KnownKeybindingCommands() []string {
	out := make([]string, len(keybindingDefaults))
	for i, d := range keybindingDefaults {
		out[i] = d.command
	}
	return out
}

func (m *Model) applyKeybindings(bindings *Keybindings) {
	if bindings == nil {
		bindings = DefaultKeybindings()
	}
	m.keybindings = bindings
	m.help = newHelpBar(ResolveHotkeys(DefaultHotkeys(), bindings), DefaultHotkeyResolver{})
}

// keyString is msg as the default bindings would see it.
func (m *Model) keyString(msg tea.KeyMsg) string {
	if m == nil {
		return msg.String()
	}
	return m.keybindings.Remap(msg.String())
}

// matchCommand reports whether msg is the bound key of command, or a key
// that remaps onto the command's default.
func (m *Model) matchCommand(msg tea.KeyMsg, command string) bool {
	fallback := defaultKeyFor(command)
	if fallback == "" {
		return false
	}
	if msg.String() == m.keybindings.KeyFor(command, fallback) {
		return true
	}
	return m.keyString(msg) == fallback
}

package app

import (
	"cmp"
	"slices"
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

const helpSeparator = " • "

// helpBar renders the hotkeys for the active contexts on one line. Entries
// are added in priority order and the first one that does not fit ends the
// line.
type helpBar struct {
	hotkeys  []Hotkey
	resolver HotkeyResolver
}

func newHelpBar(hotkeys []Hotkey, resolver HotkeyResolver) *helpBar {
	if resolver == nil {
		resolver = DefaultHotkeyResolver{}
	}
	return &helpBar{hotkeys: hotkeys, resolver: resolver}
}

func (b *helpBar) Render(m *Model, width int) string {
	if b == nil {
		return ""
	}
	var line strings.Builder
	used := 0
	for _, entry := range b.entries(m) {
		gap := 0
		if used > 0 {
			gap = xansi.StringWidth(helpSeparator)
		}
		w := xansi.StringWidth(entry)
		if width > 0 && used+gap+w > width {
			break
		}
		if gap > 0 {
			line.WriteString(helpSeparator)
		}
		line.WriteString(entry)
		used += gap + w
	}
	return line.String()
}

func (b *helpBar) entries(m *Model) []string {
	visible := FilterHotkeys(b.hotkeys, b.resolver.ActiveContexts(m))
	out := make([]string, 0, len(visible))
	for _, hk := range visible {
		entry := hk.Key + " " + hk.Label
		if !slices.Contains(out, entry) {
			out = append(out, entry)
		}
	}
	return out
}

// FilterHotkeys keeps the hotkeys whose context is active, ordered by
// priority then key.
func FilterHotkeys(hotkeys []Hotkey, contexts []HotkeyContext) []Hotkey {
	if len(contexts) == 0 {
		return nil
	}
	var out []Hotkey
	for _, hk := range hotkeys {
		if slices.Contains(contexts, hk.Context) {
			out = append(out, hk)
		}
	}
	slices.SortStableFunc(out, func(a, b Hotkey) int {
		return cmp.Or(cmp.Compare(a.Priority, b.Priority), cmp.Compare(a.Key, b.Key))
	})
	return out
}

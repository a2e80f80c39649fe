// Package sanitizer cleans text arriving from the terminal before it reaches
// wizard fields.
package sanitizer

import "strings"

type Mode int

const (
	// SingleLine folds line breaks and tabs into spaces.
	SingleLine Mode = iota
	// MultiLine keeps line breaks and turns tabs into spaces.
	MultiLine
)

// Clean strips escape sequences and control characters from s. A positive
// limit caps the result in runes.
func Clean(s string, mode Mode, limit int) string {
	if s == "" {
		return s
	}
	s = StripEscapes(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	var b strings.Builder
	b.Grow(len(s))
	n := 0
	for _, r := range s {
		if limit > 0 && n >= limit {
			break
		}
		switch {
		case r == '\n' && mode == MultiLine:
		case r == '\n' || r == '\t':
			r = ' '
		case r < 0x20 || r == 0x7f:
			continue
		}
		b.WriteRune(r)
		n++
	}
	return b.String()
}

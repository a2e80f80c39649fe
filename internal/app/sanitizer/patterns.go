package sanitizer

import "regexp"

// escapeSequences match terminal control sequences that leak into pasted
// text: CSI, OSC, charset selection, and SGR mouse reports whose ESC prefix
// was already consumed.
var escapeSequences = []*regexp.Regexp{
	regexp.MustCompile(`\x1b\[[<>?=]?[0-9;]*[A-Za-z@^` + "`" + `~{|}!]`),
	regexp.MustCompile(`\x1b\][^\x07\x1b]*(?:\x07|\x1b\\)`),
	regexp.MustCompile(`\x1b[()][AB012]`),
	regexp.MustCompile(`\[<[0-9]+;[0-9]+;[0-9]+[Mm]`),
}

// StripEscapes removes terminal control sequences from s.
func StripEscapes(s string) string {
	for _, re := range escapeSequences {
		s = re.ReplaceAllString(s, "")
	}
	return s
}

package sanitizer

import "testing"

func TestStripEscapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"color", "\x1b[31mred\x1b[0m", "red"},
		{"cursor", "a\x1b[2Kb", "ab"},
		{"osc title", "\x1b]0;title\x07text", "text"},
		{"osc st", "\x1b]52;c;aGk=\x1b\\x", "x"},
		{"charset", "\x1b(Bplain", "plain"},
		{"orphaned mouse", "note[<0;12;5M", "note"},
		{"plain", "Health & fitness", "Health & fitness"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripEscapes(tt.input); got != tt.want {
				t.Fatalf("StripEscapes(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		mode  Mode
		limit int
		want  string
	}{
		{"single line folds breaks", "walk\r\nafter\tlunch", SingleLine, 0, "walk after lunch"},
		{"multi line keeps breaks", "one\r\ntwo\rthree", MultiLine, 0, "one\ntwo\nthree"},
		{"drops controls", "a\x00b\x07c\x7f", MultiLine, 0, "abc"},
		{"limit counts runes", "家庭和睦", SingleLine, 2, "家庭"},
		{"escape then limit", "\x1b[1mbold\x1b[0m", SingleLine, 3, "bol"},
		{"empty", "", SingleLine, 5, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.input, tt.mode, tt.limit); got != tt.want {
				t.Fatalf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

package cli

// ABOUTME: Escape sequence stripping for text read from repositories.
// ABOUTME: Commit messages and branch names reach the terminal only after this.

import (
	"regexp"
	"strings"
)

// ansiPattern matches ANSI escape sequences: CSI (colors, cursor, erase),
// OSC (title setting), and character set selection.
var ansiPattern = regexp.MustCompile(`\x1b(?:\[[0-9;?]*[A-Za-z]|\][^\x07]*\x07|[()][AB012])`)

// stripANSI removes escape sequences and any other control characters except
// newline and tab from s, so repository content cannot drive the terminal or
// the pager.
func stripANSI(s string) string {
	s = ansiPattern.ReplaceAllString(s, "")
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}

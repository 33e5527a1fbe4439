package bubbletea

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
)

// tabWidth is the distance between tab stops.
const tabWidth = 8

// Sanitize prepares untrusted chat text for terminal display. Tabs expand to
// 8-column stops counted from the start of each line, CRLF line endings
// become LF, and other control characters are dropped.
func Sanitize(s string) string {
	if !strings.ContainsFunc(s, func(r rune) bool { return r != '\n' && unicode.IsControl(r) }) {
		return s
	}

	var sb strings.Builder
	col := 0
	for _, r := range s {
		switch {
		case r == '\n':
			sb.WriteRune(r)
			col = 0
		case r == '\t':
			nextStop := ((col / tabWidth) + 1) * tabWidth
			sb.WriteString(strings.Repeat(" ", nextStop-col))
			col = nextStop
		case unicode.IsControl(r):
			// dropped
		default:
			sb.WriteRune(r)
			col += lipgloss.Width(string(r))
		}
	}
	return sb.String()
}

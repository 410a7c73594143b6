package command

import (
	"strings"

	"github.com/yourusername/ytdl-go/internal/domain"
)

// ShellEscape quotes s for display in a shell command line.
// Commands are executed without a shell; this is for echo and logs only.
//
// Strings containing shell metacharacters are wrapped in single quotes,
// with embedded single quotes written as '"'"'.
func ShellEscape(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsFunc(s, isShellSpecialChar) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('\'')
	for _, c := range s {
		if c == '\'' {
			b.WriteString(`'"'"'`)
			continue
		}
		b.WriteRune(c)
	}
	b.WriteByte('\'')
	return b.String()
}

// FormatCommand renders cmd as a copy-pasteable shell line
func FormatCommand(cmd domain.Command) string {
	parts := make([]string, len(cmd))
	for i, tok := range cmd {
		parts[i] = ShellEscape(tok)
	}
	return strings.Join(parts, " ")
}

// isShellSpecialChar returns true if the character has special meaning in shell
func isShellSpecialChar(c rune) bool {
	switch c {
	case ' ', '\t', '\'', '"', '$', '`', '\\', '!', '*', '?', '[', ']',
		'(', ')', '{', '}', '|', ';', '<', '>', '&', '~', '#', '%', '\n', '\r':
		return true
	default:
		return false
	}
}

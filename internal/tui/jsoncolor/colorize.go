// Package jsoncolor renders JSON with theme-aware syntax coloring for
// terminal output.
package jsoncolor

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/pulse/internal/core/styles"
)

var literals = []struct {
	text  string
	style *lipgloss.Style
}{
	{"true", &styles.JSONBoolStyle},
	{"false", &styles.JSONBoolStyle},
	{"null", &styles.JSONNullStyle},
}

// Colorize pretty-prints JSON bytes with syntax coloring. Invalid JSON is
// returned unchanged.
func Colorize(data []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(data), "", "  "); err != nil {
		return string(data)
	}

	raw := buf.String()
	var out strings.Builder
	out.Grow(len(raw) * 2)

	for i := 0; i < len(raw); {
		ch := raw[i]
		switch {
		case ch == '"':
			end := stringEnd(raw, i)
			str := raw[i : end+1]
			if isKey(raw[end+1:]) {
				out.WriteString(styles.JSONKeyStyle.Render(str))
			} else {
				out.WriteString(styles.JSONStringStyle.Render(str))
			}
			i = end + 1

		case ch == '-' || (ch >= '0' && ch <= '9'):
			end := numberEnd(raw, i)
			out.WriteString(styles.JSONNumberStyle.Render(raw[i:end]))
			i = end

		case strings.ContainsRune("{}[]:,", rune(ch)):
			out.WriteString(styles.JSONPunctStyle.Render(string(ch)))
			i++

		default:
			if n := writeLiteral(&out, raw[i:]); n > 0 {
				i += n
				continue
			}
			out.WriteByte(ch)
			i++
		}
	}

	return out.String()
}

func writeLiteral(out *strings.Builder, rest string) int {
	for _, lit := range literals {
		if strings.HasPrefix(rest, lit.text) {
			out.WriteString(lit.style.Render(lit.text))
			return len(lit.text)
		}
	}
	return 0
}

func isKey(rest string) bool {
	rest = strings.TrimLeft(rest, " \t")
	return rest != "" && rest[0] == ':'
}

// stringEnd returns the index of the closing quote of the string at pos.
func stringEnd(s string, pos int) int {
	for i := pos + 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return len(s) - 1
}

func numberEnd(s string, pos int) int {
	end := pos + 1
	for end < len(s) && strings.IndexByte("0123456789.eE+-", s[end]) >= 0 {
		end++
	}
	return end
}

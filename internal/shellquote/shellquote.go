// Package shellquote splits and quotes command lines for the interactive
// shell.
package shellquote

import (
	"fmt"
	"strings"
)

// Quote wraps s in single quotes, escaping any internal single quotes.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// QuoteIfNeeded quotes strings that would otherwise be split or interpreted.
func QuoteIfNeeded(s string) string {
	if s == "" || strings.ContainsAny(s, " \t#[]()|!\"'") {
		return Quote(s)
	}
	return s
}

// Split breaks a command line into fields. Single quotes preserve their
// contents verbatim; double quotes preserve everything but allow \" and \\
// escapes; outside quotes a backslash escapes the next character. An
// unterminated quote is an error.
func Split(line string) ([]string, error) {
	var fields []string
	var cur strings.Builder
	inField := false

	i := 0
	for i < len(line) {
		c := line[i]
		switch {
		case c == ' ' || c == '\t':
			if inField {
				fields = append(fields, cur.String())
				cur.Reset()
				inField = false
			}
			i++
		case c == '\'':
			inField = true
			end := strings.IndexByte(line[i+1:], '\'')
			if end < 0 {
				return nil, fmt.Errorf("unterminated single quote")
			}
			cur.WriteString(line[i+1 : i+1+end])
			i += end + 2
		case c == '"':
			inField = true
			i++
			closed := false
			for i < len(line) {
				if line[i] == '\\' && i+1 < len(line) && (line[i+1] == '"' || line[i+1] == '\\') {
					cur.WriteByte(line[i+1])
					i += 2
					continue
				}
				if line[i] == '"' {
					closed = true
					i++
					break
				}
				cur.WriteByte(line[i])
				i++
			}
			if !closed {
				return nil, fmt.Errorf("unterminated double quote")
			}
		case c == '\\' && i+1 < len(line):
			inField = true
			cur.WriteByte(line[i+1])
			i += 2
		default:
			inField = true
			cur.WriteByte(c)
			i++
		}
	}
	if inField {
		fields = append(fields, cur.String())
	}
	return fields, nil
}

package note

import "strings"

// Header delimiters. A header opens with a line beginning with "---"
// and ends at a line that is exactly "---" or "...".
const (
	headerDelim = "---"
	headerClose = "..."
)

// SplitHeader splits a note file into its raw header block and body.
//
// If the first line does not begin with the header delimiter, the whole
// file is body and hasHeader is false. Otherwise lines accumulate into
// the header until a line that is exactly "---" or "...". The line
// immediately after the terminator is consumed only when it is blank or
// whitespace-only; a non-blank line there belongs to the body, since
// some header serializers emit no separator. An unterminated header
// block is treated as having no header at all.
//
// The body is returned verbatim, newlines included.
func SplitHeader(src string) (header, body string, hasHeader bool) {
	first, rest, _ := nextLine(src)
	if !strings.HasPrefix(strings.TrimSuffix(first, "\r"), headerDelim) {
		return "", src, false
	}

	var headerLines []string
	for rest != "" {
		line, after, _ := nextLine(rest)
		trimmed := strings.TrimSuffix(line, "\r")
		if trimmed == headerDelim || trimmed == headerClose {
			body = after
			next, afterNext, _ := nextLine(after)
			if strings.TrimSpace(next) == "" && after != "" {
				body = afterNext
			}
			return strings.Join(headerLines, "\n"), body, true
		}
		headerLines = append(headerLines, line)
		rest = after
	}

	return "", src, false
}

// nextLine splits off the first line of s, excluding the newline. ok is
// false when s is empty.
func nextLine(s string) (line, rest string, ok bool) {
	if s == "" {
		return "", "", false
	}
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i], s[i+1:], true
	}
	return s, "", true
}

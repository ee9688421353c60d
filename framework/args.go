package framework

import "strings"

// ParseQuotes tokenizes an argument string. Outside quotes, whitespace
// splits tokens; a double quote opens a span in which backslash escapes the
// next character. An unterminated span still yields its accumulated
// content. Empty tokens are dropped.
func ParseQuotes(s string) []string {
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	inQuotes := false
	escaped := false
	for _, r := range s {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case inQuotes && r == '\\':
			escaped = true
		case inQuotes && r == '"':
			inQuotes = false
			flush()
		case inQuotes:
			current.WriteRune(r)
		case r == '"':
			flush()
			inQuotes = true
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return tokens
}

// SplitArgs splits on the given delimiters in order, falling back to
// whitespace tokenizing when none are configured.
func SplitArgs(s string, delimiters []string) []string {
	if len(delimiters) == 0 {
		return ParseQuotes(s)
	}
	parts := []string{s}
	for _, d := range delimiters {
		var next []string
		for _, p := range parts {
			next = append(next, strings.Split(p, d)...)
		}
		parts = next
	}
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

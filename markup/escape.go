package markup

import "strings"

const escapeChar = '\\'

func isMeta(r rune) bool { return r == '<' || r == '>' || r == escapeChar }

// Escape makes s safe to use as literal text in markup.
func Escape(s string) string {
	if !strings.ContainsAny(s, `<>\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for _, r := range s {
		if isMeta(r) {
			b.WriteRune(escapeChar)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Unescape reverses Escape. It fails on a backslash that does not precede
// a metacharacter.
func Unescape(s string) (string, error) {
	var b strings.Builder
	b.Grow(len(s))
	escaped := false
	for i, r := range s {
		switch {
		case escaped:
			if !isMeta(r) {
				return "", &ParseError{Pos: i - 1, Msg: "invalid escape \\" + string(r)}
			}
			b.WriteRune(r)
			escaped = false
		case r == escapeChar:
			escaped = true
		default:
			b.WriteRune(r)
		}
	}
	if escaped {
		return "", &ParseError{Pos: len(s) - 1, Msg: "dangling escape"}
	}
	return b.String(), nil
}

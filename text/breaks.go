package text

import "unicode"

// breakClass is a simplified UAX #14 line breaking class.
type breakClass uint8

const (
	breakOther breakClass = iota
	breakSpace
	breakZero
	breakOpen
	breakClose
	breakHyphen
	breakIdeographic
)

func classifyRune(r rune) breakClass {
	switch r {
	case ' ', '\t':
		return breakSpace
	case '\u200B': // zero-width space
		return breakZero
	case '(', '[', '{', '\u201C', '\u2018', '\u00AB', '\u300C', '\u300E':
		return breakOpen
	case ')', ']', '}', '\u201D', '\u2019', '\u00BB', '\u300D', '\u300F',
		'.', ',', ';', ':', '!', '?', '\u3001', '\u3002', '\uFF0C', '\uFF0E':
		return breakClose
	case '-', '\u2010', '\u2011', '\u2013', '\u2014':
		return breakHyphen
	}
	if isCJKRune(r) {
		return breakIdeographic
	}
	return breakOther
}

// isClosing reports whether r must not start a line.
func isClosing(r rune) bool { return classifyRune(r) == breakClose }

func isCJKRune(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FFF) || // CJK Unified Ideographs
		(r >= 0x3400 && r <= 0x4DBF) || // CJK Extension A
		(r >= 0x20000 && r <= 0x2A6DF) || // CJK Extension B
		(r >= 0x3040 && r <= 0x309F) || // Hiragana
		(r >= 0x30A0 && r <= 0x30FF) || // Katakana
		(r >= 0xAC00 && r <= 0xD7AF) // Hangul Syllables
}

// breakOpportunities returns, for every rune index i, whether a line may
// start at i. Index 0 is never a break.
func breakOpportunities(runes []rune) []bool {
	ok := make([]bool, len(runes))
	for i := 1; i < len(runes); i++ {
		ok[i] = canBreakBetween(runes[i-1], runes[i])
	}
	return ok
}

func canBreakBetween(prev, curr rune) bool {
	pc, cc := classifyRune(prev), classifyRune(curr)
	switch {
	case cc == breakClose || cc == breakSpace:
		return false
	case pc == breakOpen:
		return false
	case pc == breakSpace || pc == breakZero:
		return true
	case pc == breakHyphen && cc != breakHyphen:
		return true
	case cc == breakIdeographic || pc == breakIdeographic:
		return true
	case unicode.IsPunct(prev) && prev != '\'' && unicode.IsLetter(curr) && pc != breakClose:
		return true
	}
	return false
}
